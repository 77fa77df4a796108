package metadata

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"media-gallery/internal/logging"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

var exifNames = []struct {
	field exif.FieldName
	name  string
}{
	{exif.DateTimeOriginal, TagDateTimeOriginal},
	{exif.DateTime, TagDateTime},
	{exif.DateTimeDigitized, TagDateTimeDigitized},
	{exif.ImageDescription, TagImageDescription},
	{exif.Orientation, TagOrientation},
	{exif.GPSLatitude, TagGPSLatitude},
	{exif.GPSLatitudeRef, TagGPSLatitudeRef},
	{exif.GPSLongitude, TagGPSLongitude},
	{exif.GPSLongitudeRef, TagGPSLongitudeRef},
}

// ExifSource reads the EXIF block embedded in JPEG and TIFF files.
type ExifSource struct{}

// Read decodes the file's EXIF block. Rationals are rendered as n/d and
// multi-valued tags are space separated.
func (ExifSource) Read(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close %s: %v", path, err)
		}
	}()

	x, err := exif.Decode(f)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	tags := Tags{}
	for _, n := range exifNames {
		tag, err := x.Get(n.field)
		if err != nil {
			continue
		}
		if v := tagString(tag); v != "" {
			tags[n.name] = v
		}
	}
	return tags, nil
}

func tagString(tag *tiff.Tag) string {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return ""
		}
		return strings.TrimRight(s, "\x00 ")
	case tiff.IntVal:
		parts := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			v, err := tag.Int(i)
			if err != nil {
				return ""
			}
			parts = append(parts, strconv.Itoa(v))
		}
		return strings.Join(parts, " ")
	case tiff.RatVal:
		parts := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return ""
			}
			parts = append(parts, fmt.Sprintf("%d/%d", num, den))
		}
		return strings.Join(parts, " ")
	case tiff.FloatVal:
		parts := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			v, err := tag.Float(i)
			if err != nil {
				return ""
			}
			parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
