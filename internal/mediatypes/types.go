package mediatypes

import (
	"path/filepath"
	"strings"
)

// FileType represents the type of a media file.
type FileType string

const (
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents a file that is not part of an album.
	FileTypeOther FileType = "other"
)

// SidecarExtension is appended to a video's full file name to find its
// metadata, so clip.mp4 is described by clip.mp4.xmp.
const SidecarExtension = ".xmp"

// ImageExtensions maps file extensions to whether they are album images.
var ImageExtensions = map[string]bool{
	".bmp":  true,
	".gif":  true,
	".jfif": true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// VideoExtensions maps file extensions to whether they are album videos.
var VideoExtensions = map[string]bool{
	".3gp":  true,
	".avi":  true,
	".m4v":  true,
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".mpeg": true,
	".mpg":  true,
	".webm": true,
	".wmv":  true,
}

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
// Returns FileTypeOther if the extension is not recognized.
func GetFileType(ext string) FileType {
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	return FileTypeOther
}

// TypeOf classifies a file name by its extension, ignoring case.
func TypeOf(name string) FileType {
	return GetFileType(strings.ToLower(filepath.Ext(name)))
}

// SidecarPath returns the XMP sidecar path for a media file.
func SidecarPath(path string) string {
	return path + SidecarExtension
}

// Stem returns the file name without its directory or final extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
