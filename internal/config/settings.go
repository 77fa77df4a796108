package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"media-gallery/internal/logging"
)

// SortKey selects how album files are ordered.
type SortKey string

const (
	// SortByTimestamp orders files by their resolved capture time.
	SortByTimestamp SortKey = "timestamp"
	// SortByFilename orders files by natural file name order.
	SortByFilename SortKey = "filename"
)

// DefaultGalleryOutputDirectory is used when gallery.toml does not name one.
const DefaultGalleryOutputDirectory = "gallery"

// Settings is the effective configuration for a gallery or an album.
// Zero MaxImageWidth/MaxImageHeight mean no limit; empty strings mean unset.
type Settings struct {
	Title                       string
	OutputDirectory             string
	AppendHashToOutputDirectory bool
	HashValue                   string
	PrivateGalleryIndexFilename string
	PrivateGalleryTitle         string
	IsPublic                    bool
	StripGPSData                bool
	MaxImageWidth               int
	MaxImageHeight              int
	ThumbnailWidth              int
	ThumbnailHeight             int
	DefaultTimeOffset           string
	ShowTimestamps              bool
	SortKey                     SortKey
	ForegroundColor             string
	BackgroundColor             string
	LinkColor                   string
	FaviconHref                 string
	StripGPSDataFrom            []string
	UseGPSTimeZone              bool
}

// Defaults returns the settings used before any file is applied.
func Defaults() Settings {
	return Settings{
		PrivateGalleryTitle: "Media - Private",
		StripGPSData:        true,
		ThumbnailWidth:      100,
		ThumbnailHeight:     100,
		DefaultTimeOffset:   "+00:00",
		ShowTimestamps:      true,
		SortKey:             SortByTimestamp,
		ForegroundColor:     "#eeeeee",
		BackgroundColor:     "#333333",
		LinkColor:           "#44aadd",
	}
}

// Inherit returns a copy suitable as the starting point for an album. The
// hash_value is not inherited: an album without its own would otherwise land
// in the same output directory as every sibling.
func (s Settings) Inherit() Settings {
	child := s
	child.Title = ""
	child.OutputDirectory = ""
	child.HashValue = ""
	child.StripGPSDataFrom = slices.Clone(s.StripGPSDataFrom)
	return child
}

// StripsGPS reports whether GPS metadata must be removed from the output
// copy of the named file. A non-empty strip_gps_data_from list limits
// stripping to the files it names; otherwise strip_gps_data decides.
func (s Settings) StripsGPS(name string) bool {
	if len(s.StripGPSDataFrom) > 0 {
		return slices.Contains(s.StripGPSDataFrom, name)
	}
	return s.StripGPSData
}

var (
	reTimeOffset = regexp.MustCompile(`^[+-]\d{2}:\d{2}$`)
	reCSSColor   = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)
)

// Validate checks value ranges. The returned error names the first bad key.
func (s Settings) Validate() error {
	positive := []struct {
		key      string
		value    int
		optional bool
	}{
		{"max_image_width", s.MaxImageWidth, true},
		{"max_image_height", s.MaxImageHeight, true},
		{"thumbnail_width", s.ThumbnailWidth, false},
		{"thumbnail_height", s.ThumbnailHeight, false},
	}
	for _, p := range positive {
		if p.optional && p.value == 0 {
			continue
		}
		if p.value <= 0 {
			return &Error{Key: p.key, Err: fmt.Errorf("must be a positive integer, got %d", p.value)}
		}
	}

	if !reTimeOffset.MatchString(s.DefaultTimeOffset) {
		return &Error{Key: "default_time_offset", Err: fmt.Errorf("must look like +HH:MM or -HH:MM, got %q", s.DefaultTimeOffset)}
	}

	switch s.SortKey {
	case SortByTimestamp, SortByFilename:
	default:
		return &Error{Key: "sort_key", Err: fmt.Errorf("must be %q or %q, got %q", SortByTimestamp, SortByFilename, s.SortKey)}
	}

	colors := []struct {
		key   string
		value string
	}{
		{"foreground_color", s.ForegroundColor},
		{"background_color", s.BackgroundColor},
		{"link_color", s.LinkColor},
	}
	for _, c := range colors {
		if !reCSSColor.MatchString(c.value) {
			return &Error{Key: c.key, Err: fmt.Errorf("not a CSS color: %q", c.value)}
		}
	}

	if name := s.PrivateGalleryIndexFilename; name != "" {
		if strings.ContainsAny(name, `/\`) || name == "index.html" || name == "." || name == ".." {
			return &Error{Key: "private_gallery_index_filename", Err: fmt.Errorf("must be a plain file name other than index.html, got %q", name)}
		}
	}

	return nil
}

// LogDebug writes every setting at debug level.
func (s Settings) LogDebug() {
	if !logging.IsDebugEnabled() {
		return
	}
	logging.Debug("  title:                           %s", s.Title)
	logging.Debug("  output_directory:                %s", s.OutputDirectory)
	logging.Debug("  append_hash_to_output_directory: %v", s.AppendHashToOutputDirectory)
	logging.Debug("  hash_value:                      %s", s.HashValue)
	logging.Debug("  private_gallery_index_filename:  %s", s.PrivateGalleryIndexFilename)
	logging.Debug("  private_gallery_title:           %s", s.PrivateGalleryTitle)
	logging.Debug("  is_public:                       %v", s.IsPublic)
	logging.Debug("  strip_gps_data:                  %v", s.StripGPSData)
	logging.Debug("  strip_gps_data_from:             %v", s.StripGPSDataFrom)
	logging.Debug("  max_image_width:                 %d", s.MaxImageWidth)
	logging.Debug("  max_image_height:                %d", s.MaxImageHeight)
	logging.Debug("  thumbnail_width:                 %d", s.ThumbnailWidth)
	logging.Debug("  thumbnail_height:                %d", s.ThumbnailHeight)
	logging.Debug("  default_time_offset:             %s", s.DefaultTimeOffset)
	logging.Debug("  use_gps_time_zone:               %v", s.UseGPSTimeZone)
	logging.Debug("  show_timestamps:                 %v", s.ShowTimestamps)
	logging.Debug("  sort_key:                        %s", s.SortKey)
	logging.Debug("  colors:                          fg=%s bg=%s link=%s", s.ForegroundColor, s.BackgroundColor, s.LinkColor)
	logging.Debug("  favicon_href:                    %s", s.FaviconHref)
}
