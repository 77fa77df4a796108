package metadata

import (
	"path/filepath"
	"strconv"
	"time"

	"media-gallery/internal/config"
	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"
)

// Metadata is what an album page shows about one file.
type Metadata struct {
	// Caption comes from metadata, or from the file name when none is set.
	Caption string
	// CaptionFromFilename is true when Caption was derived from the name.
	CaptionFromFilename bool
	// Timestamp is the zero time when no capture time could be read.
	Timestamp time.Time
	// Location is free text, or the DMS form of GPS when that is allowed.
	Location string
	// GPS is nil when the file has no usable position.
	GPS *GPSCoordinates
	// Orientation is the EXIF orientation 1..8, or 0 when absent.
	Orientation int
}

// HasTimestamp reports whether a capture time was resolved.
func (m Metadata) HasTimestamp() bool {
	return !m.Timestamp.IsZero()
}

// Resolver turns tags into Metadata under one album's settings.
type Resolver struct {
	settings config.Settings
	image    Source
	sidecar  Source
}

// NewResolver returns a resolver that reads images with image and video
// sidecars as XMP.
func NewResolver(settings config.Settings, image Source) *Resolver {
	return &Resolver{
		settings: settings,
		image:    image,
		sidecar:  XMPSource{},
	}
}

// DefaultImageSource reads embedded EXIF and XMP, plus exiftool when et is
// non-nil.
func DefaultImageSource(et *ExiftoolSource) Source {
	chain := Chain{ExifSource{}}
	if et != nil {
		chain = append(chain, et)
	}
	return append(chain, XMPSource{})
}

// Resolve reads the metadata of the file at path. Videos are described only
// by their FILENAME.xmp sidecar.
func (r *Resolver) Resolve(path string, kind mediatypes.FileType) Metadata {
	var tags Tags
	if kind == mediatypes.FileTypeVideo {
		metrics.MetadataReadsTotal.WithLabelValues("sidecar").Inc()
		tags = r.read(r.sidecar, mediatypes.SidecarPath(path))
		tags.MirrorXMP()
	} else {
		metrics.MetadataReadsTotal.WithLabelValues("embedded").Inc()
		tags = r.read(r.image, path)
	}
	return r.FromTags(filepath.Base(path), tags)
}

func (r *Resolver) read(src Source, path string) Tags {
	if src == nil {
		return Tags{}
	}
	tags, err := src.Read(path)
	if err != nil {
		logging.Debug("    No metadata from %s: %v", path, err)
		return Tags{}
	}
	if tags == nil {
		return Tags{}
	}
	return tags
}

// FromTags resolves each attribute from its precedence list.
func (r *Resolver) FromTags(name string, tags Tags) Metadata {
	var m Metadata

	if caption, ok := tags.First(CaptionTags...); ok {
		m.Caption = caption
	} else {
		m.Caption = CaptionFromFilename(name)
		m.CaptionFromFilename = true
	}

	m.GPS = gpsFromTags(tags)

	if raw, ok := tags.First(TimestampTags...); ok {
		var zone *time.Location
		if r.settings.UseGPSTimeZone {
			zone = zoneAt(m.GPS)
		}
		if ts, ok := ParseTimestamp(raw, r.settings.DefaultTimeOffset, zone); ok {
			m.Timestamp = ts
		} else {
			logging.Debug("    Ignoring malformed timestamp %q in %s", raw, name)
		}
	}

	if location, ok := tags.First(LocationTags...); ok {
		m.Location = location
	} else if m.GPS != nil && !r.settings.StripsGPS(name) {
		m.Location = m.GPS.String()
	}

	if raw, ok := tags.First(OrientationTags...); ok {
		if o, err := strconv.Atoi(raw); err == nil && o >= 1 && o <= 8 {
			m.Orientation = o
		}
	}

	logging.Debug("    Caption: %s", m.Caption)
	logging.Debug("    Timestamp: %v", m.Timestamp)
	logging.Debug("    Location: %s", m.Location)
	logging.Debug("    Orientation: %d", m.Orientation)

	return m
}
