package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"

	"github.com/barasher/go-exiftool"
)

// ErrNoExiftool is returned when GPS data must be removed from a file that
// only exiftool can rewrite and exiftool is not running.
var ErrNoExiftool = errors.New("exiftool is required to remove GPS data")

// writableVideos are containers exiftool can rewrite in place.
var writableVideos = map[string]bool{
	".3gp": true,
	".m4v": true,
	".mov": true,
	".mp4": true,
}

// CanStripVideo reports whether GPS tags can be removed from a video of
// this name. Other containers are copied unchanged.
func CanStripVideo(name string) bool {
	return writableVideos[strings.ToLower(filepath.Ext(name))]
}

// GPSStripper deletes GPS tags from output copies with exiftool and carries
// tags over to re-encoded copies. A nil GPSStripper is valid and reports
// itself unavailable.
type GPSStripper struct {
	et *exiftool.Exiftool
}

// NewGPSStripper writes through et, which may be shared with metadata reads.
func NewGPSStripper(et *exiftool.Exiftool) *GPSStripper {
	if et == nil {
		return nil
	}
	return &GPSStripper{et: et}
}

// Available reports whether Strip can be called.
func (s *GPSStripper) Available() bool {
	return s != nil && s.et != nil
}

// Strip removes every GPS tag from the file at path, in place.
func (s *GPSStripper) Strip(path string) error {
	if !s.Available() {
		return ErrNoExiftool
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	fm.Clear("gps:all")
	fm.Clear("gps*")
	batch := []exiftool.FileMetadata{fm}

	start := time.Now()
	s.et.WriteMetadata(batch)
	err := batch[0].Err
	metrics.ObserveTool("exiftool", start, err)

	if err != nil {
		metrics.GPSStripsTotal.WithLabelValues("exiftool", "error").Inc()
		return fmt.Errorf("strip GPS from %s: %w", filepath.Base(path), err)
	}

	metrics.GPSStripsTotal.WithLabelValues("exiftool", "success").Inc()
	logging.Debug("Removed GPS tags from %s", path)
	return nil
}

// carriedGroups are the exiftool group-1 names copied onto re-encoded images.
var carriedGroups = map[string]bool{
	"IFD0":       true,
	"ExifIFD":    true,
	"InteropIFD": true,
	"GPS":        true,
	"IPTC":       true,
}

// carriedTag reports whether a "Group:Tag" key is copied. Orientation and the
// stored pixel size describe the source pixels, not the re-encoded ones.
func carriedTag(key string, value interface{}) bool {
	group, tag, ok := strings.Cut(key, ":")
	if !ok || !(carriedGroups[group] || strings.HasPrefix(group, "XMP-")) {
		return false
	}
	switch tag {
	case "Orientation", "ExifImageWidth", "ExifImageHeight":
		return false
	}
	if str, isString := value.(string); isString && strings.HasPrefix(str, "(Binary data") {
		return false
	}
	return true
}

// CopyTags writes the EXIF, IPTC and XMP tags of src onto dst, which must be
// a re-encoded copy of src. GPS tags are left out unless withGPS is set.
func (s *GPSStripper) CopyTags(src, dst string, withGPS bool) error {
	if !s.Available() {
		return ErrNoExiftool
	}

	start := time.Now()
	read := s.et.ExtractMetadata(src)
	if len(read) == 0 || read[0].Err != nil {
		err := errors.New("exiftool returned no result")
		if len(read) > 0 {
			err = read[0].Err
		}
		metrics.ObserveTool("exiftool", start, err)
		return fmt.Errorf("read tags of %s: %w", filepath.Base(src), err)
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = dst
	for key, value := range read[0].Fields {
		if !withGPS && strings.HasPrefix(key, "GPS:") {
			continue
		}
		if carriedTag(key, value) {
			fm.Fields[key] = value
		}
	}
	if len(fm.Fields) == 0 {
		metrics.ObserveTool("exiftool", start, nil)
		return nil
	}

	batch := []exiftool.FileMetadata{fm}
	s.et.WriteMetadata(batch)
	err := batch[0].Err
	metrics.ObserveTool("exiftool", start, err)
	if err != nil {
		return fmt.Errorf("copy tags to %s: %w", filepath.Base(dst), err)
	}
	logging.Debug("Copied %d tags from %s to %s", len(fm.Fields), filepath.Base(src), dst)
	return nil
}
