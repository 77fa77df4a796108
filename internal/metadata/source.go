package metadata

import (
	"errors"
	"io/fs"

	"media-gallery/internal/logging"
)

// Source reads raw tags from a file.
type Source interface {
	Read(path string) (Tags, error)
}

// Chain reads every source in order. Later sources replace values of earlier
// ones under the same name. A failing source contributes nothing.
type Chain []Source

// Read merges the tags of all sources. It never returns an error.
func (c Chain) Read(path string) (Tags, error) {
	tags := Tags{}
	for _, src := range c {
		if src == nil {
			continue
		}
		t, err := src.Read(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logging.Debug("    %T could not read %s: %v", src, path, err)
			}
			continue
		}
		tags.Merge(t)
	}
	return tags, nil
}
