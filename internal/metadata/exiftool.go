package metadata

import (
	"errors"
	"fmt"
	"strconv"

	exiftool "github.com/barasher/go-exiftool"
)

// exiftoolNames maps exiftool group-1 keys to tag names.
var exiftoolNames = map[string]string{
	"XMP-dc:Title":              TagXmpTitle,
	"XMP-dc:Description":        TagXmpDescription,
	"XMP-acdsee:Caption":        TagAcdseeCaption,
	"XMP-acdsee:Notes":          TagAcdseeNotes,
	"XMP-exif:UserComment":      TagXmpUserComment,
	"XMP-tiff:ImageDescription": TagXmpImageDesc,
	"IPTC:ObjectName":           TagIptcObjectName,
	"IPTC:Caption-Abstract":     TagIptcCaption,
	"ExifIFD:DateTimeOriginal":  TagDateTimeOriginal,
	"IFD0:ModifyDate":           TagDateTime,
	"ExifIFD:CreateDate":        TagDateTimeDigitized,
	"IFD0:ImageDescription":     TagImageDescription,
	"IFD0:Orientation":          TagOrientation,
	"GPS:GPSLatitude":           TagGPSLatitude,
	"GPS:GPSLatitudeRef":        TagGPSLatitudeRef,
	"GPS:GPSLongitude":          TagGPSLongitude,
	"GPS:GPSLongitudeRef":       TagGPSLongitudeRef,
}

// ExiftoolSource reads tags through a long-running exiftool process. It
// covers IPTC and container formats the Go readers cannot parse.
type ExiftoolSource struct {
	et *exiftool.Exiftool
}

// NewExiftoolSource reads through an exiftool process started by StartExiftool.
func NewExiftoolSource(et *exiftool.Exiftool) *ExiftoolSource {
	return &ExiftoolSource{et: et}
}

// StartExiftool launches exiftool with numeric values and group names, the
// form ExiftoolSource expects.
func StartExiftool() (*exiftool.Exiftool, error) {
	et, err := exiftool.NewExiftool(
		exiftool.NoPrintConversion(),
		exiftool.PrintGroupNames("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return et, nil
}

// Read extracts the tags of a single file.
func (s *ExiftoolSource) Read(path string) (Tags, error) {
	results := s.et.ExtractMetadata(path)
	if len(results) == 0 {
		return nil, errors.New("exiftool returned no result")
	}
	fm := results[0]
	if fm.Err != nil {
		return nil, fm.Err
	}

	tags := Tags{}
	for key, value := range fm.Fields {
		name, ok := exiftoolNames[key]
		if !ok {
			continue
		}
		if v := fieldString(value); v != "" {
			tags[name] = v
		}
	}
	return tags, nil
}

func fieldString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		if len(v) == 0 {
			return ""
		}
		return fieldString(v[0])
	default:
		return fmt.Sprint(v)
	}
}
