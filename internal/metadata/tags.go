package metadata

import (
	"maps"
	"strings"
)

// Tag names looked up by the resolver.
const (
	TagXmpTitle          = "Xmp.dc.title"
	TagXmpDescription    = "Xmp.dc.description"
	TagAcdseeCaption     = "Xmp.acdsee.caption"
	TagAcdseeNotes       = "Xmp.acdsee.notes"
	TagXmpUserComment    = "Xmp.exif.UserComment"
	TagXmpImageDesc      = "Xmp.tiff.ImageDescription"
	TagIptcObjectName    = "Iptc.Application2.ObjectName"
	TagIptcCaption       = "Iptc.Application2.Caption"
	TagDateTimeOriginal  = "Exif.Photo.DateTimeOriginal"
	TagDateTime          = "Exif.Image.DateTime"
	TagDateTimeDigitized = "Exif.Photo.DateTimeDigitized"
	TagImageDescription  = "Exif.Image.ImageDescription"
	TagOrientation       = "Exif.Image.Orientation"
	TagGPSLatitude       = "Exif.GPSInfo.GPSLatitude"
	TagGPSLatitudeRef    = "Exif.GPSInfo.GPSLatitudeRef"
	TagGPSLongitude      = "Exif.GPSInfo.GPSLongitude"
	TagGPSLongitudeRef   = "Exif.GPSInfo.GPSLongitudeRef"
)

// Precedence lists, first match wins.
var (
	CaptionTags = []string{
		TagXmpTitle,
		TagAcdseeCaption,
		TagIptcObjectName,
	}
	TimestampTags = []string{
		TagDateTimeOriginal,
		TagDateTime,
		TagDateTimeDigitized,
	}
	LocationTags = []string{
		TagImageDescription,
		TagIptcCaption,
		TagAcdseeNotes,
		TagXmpDescription,
		TagXmpUserComment,
		TagXmpImageDesc,
	}
	OrientationTags = []string{
		TagOrientation,
	}
)

// Tags holds raw metadata values keyed by exiv2-style tag names.
type Tags map[string]string

// First returns the first key with a non-blank value, trimmed.
func (t Tags) First(keys ...string) (string, bool) {
	for _, key := range keys {
		if v := strings.TrimSpace(t[key]); v != "" {
			return v, true
		}
	}
	return "", false
}

// Has reports whether every key has a non-blank value.
func (t Tags) Has(keys ...string) bool {
	for _, key := range keys {
		if strings.TrimSpace(t[key]) == "" {
			return false
		}
	}
	return true
}

// Merge copies other into t, replacing existing keys.
func (t Tags) Merge(other Tags) {
	maps.Copy(t, other)
}

// xmpMirrors maps XMP properties to the EXIF and IPTC names they stand in
// for when a file has no native block of that kind, as in a sidecar.
var xmpMirrors = []struct {
	from string
	to   string
}{
	{"Xmp.exif.DateTimeOriginal", TagDateTimeOriginal},
	{"Xmp.photoshop.DateCreated", TagDateTimeOriginal},
	{"Xmp.xmp.ModifyDate", TagDateTime},
	{"Xmp.tiff.DateTime", TagDateTime},
	{"Xmp.xmp.CreateDate", TagDateTimeDigitized},
	{"Xmp.exif.DateTimeDigitized", TagDateTimeDigitized},
	{"Xmp.tiff.Orientation", TagOrientation},
	{TagXmpImageDesc, TagImageDescription},
	{TagXmpTitle, TagIptcObjectName},
	{TagXmpDescription, TagIptcCaption},
}

// MirrorXMP fills EXIF and IPTC names from their XMP equivalents where the
// native name is absent, including GPS coordinates in XMP notation.
func (t Tags) MirrorXMP() {
	for _, m := range xmpMirrors {
		if _, ok := t.First(m.to); ok {
			continue
		}
		if v, ok := t.First(m.from); ok {
			t[m.to] = v
		}
	}

	mirrorGPS := func(from, to, toRef, pos, neg string) {
		if t.Has(to, toRef) {
			return
		}
		v, ok := t.First(from)
		if !ok {
			return
		}
		if dms, ref, ok := parseXMPCoordinate(v, pos, neg); ok {
			t[to] = dms
			t[toRef] = ref
		}
	}
	mirrorGPS("Xmp.exif.GPSLatitude", TagGPSLatitude, TagGPSLatitudeRef, "N", "S")
	mirrorGPS("Xmp.exif.GPSLongitude", TagGPSLongitude, TagGPSLongitudeRef, "E", "W")
}
