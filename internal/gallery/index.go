package gallery

import (
	"io"
	"path/filepath"
	"slices"

	"media-gallery/internal/config"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/ordering"
	"media-gallery/internal/outdir"
	"media-gallery/internal/render"
)

// IndexFilename is the public gallery index and every album page.
const IndexFilename = "index.html"

// writeIndexes writes index.html with the public albums and, when
// private_gallery_index_filename is set, a second index with the others.
// Failed albums and albums written outside the gallery are never listed.
func writeIndexes(settings config.Settings, out string, albums []AlbumResult) error {
	var public, private []AlbumResult
	for _, a := range albums {
		if !a.Listed() {
			continue
		}
		if a.Settings.IsPublic {
			public = append(public, a)
		} else {
			private = append(private, a)
		}
	}

	if err := writeIndex(settings, filepath.Join(out, IndexFilename), settings.Title, public); err != nil {
		return err
	}

	if name := settings.PrivateGalleryIndexFilename; name != "" {
		return writeIndex(settings, filepath.Join(out, name), settings.PrivateGalleryTitle, private)
	}
	return nil
}

func writeIndex(settings config.Settings, path, title string, albums []AlbumResult) error {
	slices.SortStableFunc(albums, func(a, b AlbumResult) int {
		return ordering.CompareNames(a.Settings.Title, b.Settings.Title)
	})

	links := make([]render.AlbumLink, len(albums))
	for i, a := range albums {
		links[i] = render.AlbumLink{
			Title: a.Settings.Title,
			Href:  outdir.Href(a.OutputDir),
		}
	}

	logging.Debug("Writing %s with %d albums", path, len(links))
	page := render.NewGalleryPage(settings, title, links)
	return filesystem.WriteWith(path, func(w io.Writer) error {
		return render.Gallery(w, page)
	})
}
