package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"media-gallery/internal/logging"

	"github.com/BurntSushi/toml"
)

const (
	// GalleryFilename is the settings file that marks a gallery directory.
	GalleryFilename = "gallery.toml"
	// AlbumFilename is the settings file that marks an album directory.
	AlbumFilename = "album.toml"
)

// ErrNoSettings is returned when a directory has no settings file.
var ErrNoSettings = errors.New("no settings file")

// Error describes an unreadable or invalid settings file.
type Error struct {
	Path string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Key != "":
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// fileSettings mirrors the keys of a settings file. Pointers distinguish an
// absent key from a zero value.
type fileSettings struct {
	Title                       *string   `toml:"title"`
	OutputDirectory             *string   `toml:"output_directory"`
	AppendHashToOutputDirectory *bool     `toml:"append_hash_to_output_directory"`
	HashValue                   *string   `toml:"hash_value"`
	PrivateGalleryIndexFilename *string   `toml:"private_gallery_index_filename"`
	PrivateGalleryTitle         *string   `toml:"private_gallery_title"`
	IsPublic                    *bool     `toml:"is_public"`
	StripGPSData                *bool     `toml:"strip_gps_data"`
	MaxImageWidth               *int      `toml:"max_image_width"`
	MaxImageHeight              *int      `toml:"max_image_height"`
	ThumbnailWidth              *int      `toml:"thumbnail_width"`
	ThumbnailHeight             *int      `toml:"thumbnail_height"`
	DefaultTimeOffset           *string   `toml:"default_time_offset"`
	ShowTimestamps              *bool     `toml:"show_timestamps"`
	SortKey                     *string   `toml:"sort_key"`
	ForegroundColor             *string   `toml:"foreground_color"`
	BackgroundColor             *string   `toml:"background_color"`
	LinkColor                   *string   `toml:"link_color"`
	FaviconHref                 *string   `toml:"favicon_href"`
	StripGPSDataFrom            *[]string `toml:"strip_gps_data_from"`
	UseGPSTimeZone              *bool     `toml:"use_gps_time_zone"`
}

func (f fileSettings) applyTo(s *Settings) {
	setString(&s.Title, f.Title)
	setString(&s.OutputDirectory, f.OutputDirectory)
	setBool(&s.AppendHashToOutputDirectory, f.AppendHashToOutputDirectory)
	setString(&s.HashValue, f.HashValue)
	setString(&s.PrivateGalleryIndexFilename, f.PrivateGalleryIndexFilename)
	setString(&s.PrivateGalleryTitle, f.PrivateGalleryTitle)
	setBool(&s.IsPublic, f.IsPublic)
	setBool(&s.StripGPSData, f.StripGPSData)
	setInt(&s.MaxImageWidth, f.MaxImageWidth)
	setInt(&s.MaxImageHeight, f.MaxImageHeight)
	setInt(&s.ThumbnailWidth, f.ThumbnailWidth)
	setInt(&s.ThumbnailHeight, f.ThumbnailHeight)
	setString(&s.DefaultTimeOffset, f.DefaultTimeOffset)
	setBool(&s.ShowTimestamps, f.ShowTimestamps)
	if f.SortKey != nil {
		s.SortKey = SortKey(*f.SortKey)
	}
	setString(&s.ForegroundColor, f.ForegroundColor)
	setString(&s.BackgroundColor, f.BackgroundColor)
	setString(&s.LinkColor, f.LinkColor)
	setString(&s.FaviconHref, f.FaviconHref)
	if f.StripGPSDataFrom != nil {
		s.StripGPSDataFrom = append([]string(nil), (*f.StripGPSDataFrom)...)
	}
	setBool(&s.UseGPSTimeZone, f.UseGPSTimeZone)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// LoadGallery reads DIR/gallery.toml on top of Defaults.
func LoadGallery(dir string) (Settings, error) {
	s, err := load(filepath.Join(dir, GalleryFilename), Defaults())
	if err != nil {
		return Settings{}, err
	}
	if s.OutputDirectory == "" {
		s.OutputDirectory = DefaultGalleryOutputDirectory
	}
	if s.Title == "" {
		s.Title = filepath.Base(dir)
	}
	return s, nil
}

// LoadAlbum reads DIR/album.toml on top of the settings inherited from the
// gallery.
func LoadAlbum(dir string, gallery Settings) (Settings, error) {
	s, err := load(filepath.Join(dir, AlbumFilename), gallery.Inherit())
	if err != nil {
		return Settings{}, err
	}
	if s.Title == "" {
		s.Title = filepath.Base(dir)
	}
	return s, nil
}

func load(path string, base Settings) (Settings, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, ErrNoSettings
		}
		return Settings{}, &Error{Path: path, Err: err}
	}

	var f fileSettings
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Settings{}, &Error{Path: path, Err: err}
	}
	for _, key := range md.Undecoded() {
		logging.Warn("%s: ignoring unknown setting %q", path, key.String())
	}

	s := base
	f.applyTo(&s)
	if err := s.Validate(); err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return Settings{}, err
	}
	return s, nil
}
