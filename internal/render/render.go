package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"media-gallery/internal/config"
	"media-gallery/internal/media"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"inc":      func(i int) int { return i + 1 },
		"lines":    lines,
		"isoTime":  func(t time.Time) string { return t.Format(time.RFC3339) },
		"longDate": func(t time.Time) string { return t.Format("2 January 2006") },
	}).ParseFS(templateFS, "templates/*.html"),
)

// ReturnHref is the album page's link back to the gallery index.
const ReturnHref = "../index.html"

// Theme is the part of a page shared by album and gallery indexes.
type Theme struct {
	Title       string
	FaviconHref string
	Foreground  template.CSS
	Background  template.CSS
	Link        template.CSS
}

// NewTheme takes the colours and favicon from validated settings.
func NewTheme(s config.Settings, title string) Theme {
	return Theme{
		Title:       title,
		FaviconHref: s.FaviconHref,
		// colours are checked by Settings.Validate
		Foreground: template.CSS(s.ForegroundColor),
		Background: template.CSS(s.BackgroundColor),
		Link:       template.CSS(s.LinkColor),
	}
}

// AlbumPage is the data of an album index.
type AlbumPage struct {
	Theme           Theme
	GalleryHref     string
	ThumbnailWidth  int
	ThumbnailHeight int
	ShowTimestamps  bool
	Files           []media.MediaFile
}

// NewAlbumPage builds the index of an album whose files are already sorted.
func NewAlbumPage(s config.Settings, files []media.MediaFile) AlbumPage {
	return AlbumPage{
		Theme:           NewTheme(s, s.Title),
		GalleryHref:     ReturnHref,
		ThumbnailWidth:  s.ThumbnailWidth,
		ThumbnailHeight: s.ThumbnailHeight,
		ShowTimestamps:  s.ShowTimestamps,
		Files:           files,
	}
}

// AlbumLink is one entry of a gallery index.
type AlbumLink struct {
	Title string
	Href  string
}

// GalleryPage is the data of a gallery index.
type GalleryPage struct {
	Theme  Theme
	Albums []AlbumLink
}

// NewGalleryPage builds a gallery index titled title. The public and the
// private index share the gallery's colours.
func NewGalleryPage(s config.Settings, title string, albums []AlbumLink) GalleryPage {
	return GalleryPage{
		Theme:  NewTheme(s, title),
		Albums: albums,
	}
}

// Album writes the HTML of an album index to w.
func Album(w io.Writer, page AlbumPage) error {
	if err := templates.ExecuteTemplate(w, "album", page); err != nil {
		return fmt.Errorf("render album %q: %w", page.Theme.Title, err)
	}
	return nil
}

// Gallery writes the HTML of a gallery index to w.
func Gallery(w io.Writer, page GalleryPage) error {
	if err := templates.ExecuteTemplate(w, "gallery", page); err != nil {
		return fmt.Errorf("render gallery %q: %w", page.Theme.Title, err)
	}
	return nil
}

// lines escapes text and turns its line breaks into <br>.
func lines(text string) template.HTML {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, part := range parts {
		parts[i] = template.HTMLEscapeString(part)
	}
	return template.HTML(strings.Join(parts, "<br>"))
}
