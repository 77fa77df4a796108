package metadata

import (
	"strings"

	"media-gallery/internal/mediatypes"
)

// CaptionFromFilename derives a caption from a file name: the text after the
// first underscore of the name without its extension, or the whole name
// without its extension when there is no underscore or nothing follows it.
func CaptionFromFilename(name string) string {
	stem := mediatypes.Stem(name)
	if _, after, ok := strings.Cut(stem, "_"); ok && strings.TrimSpace(after) != "" {
		return after
	}
	return stem
}
