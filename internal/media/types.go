package media

import (
	"net/url"
	"path"
	"time"

	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metadata"
)

// ThumbnailDir is the album subdirectory holding thumbnails.
const ThumbnailDir = "thumbnails"

// MediaFile is one photo or video of an album. It is filled by ScanAlbum,
// enriched once with Metadata and the output fields set by the Processor,
// and read-only afterwards.
type MediaFile struct {
	Name        string
	Path        string
	Type        mediatypes.FileType
	SidecarPath string
	Size        int64
	ModTime     time.Time

	// OutputName is the file name of the copy in the album output directory.
	OutputName string
	// ThumbnailName is the file name inside ThumbnailDir.
	ThumbnailName string
	// Width and Height of the output copy, 0 when unknown.
	Width  int
	Height int

	Metadata metadata.Metadata
}

// IsVideo reports whether the file is a video.
func (f MediaFile) IsVideo() bool {
	return f.Type == mediatypes.FileTypeVideo
}

// URL is the href of the output copy relative to the album index.
func (f MediaFile) URL() string {
	return url.PathEscape(f.OutputName)
}

// ThumbnailURL is the href of the thumbnail relative to the album index.
func (f MediaFile) ThumbnailURL() string {
	return path.Join(ThumbnailDir, url.PathEscape(f.ThumbnailName))
}

// Result describes what processing did with a file.
type Result string

const (
	// ResultResized means the output was decoded, scaled and re-encoded.
	ResultResized Result = "resized"
	// ResultCopied means the source bytes were copied, possibly re-encoded
	// afterwards to drop metadata.
	ResultCopied Result = "copied"
	// ResultUnchanged means a previous run's output was reused.
	ResultUnchanged Result = "unchanged"
	// ResultUnreadable means the image could not be decoded and was skipped.
	ResultUnreadable Result = "unreadable"
	// ResultError means processing failed.
	ResultError Result = "error"
)
