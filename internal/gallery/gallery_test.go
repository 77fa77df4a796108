package gallery

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"media-gallery/internal/config"
	"media-gallery/internal/manifest"
	"media-gallery/internal/outdir"
	"media-gallery/internal/progress"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, buf.String())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// newGallery creates a gallery directory whose gallery.toml holds settings.
func newGallery(t *testing.T, settings string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "photos")
	writeFile(t, filepath.Join(dir, config.GalleryFilename), "strip_gps_data = false\n"+settings)
	return dir
}

func addAlbum(t *testing.T, gallery, name, settings string, images ...string) string {
	t.Helper()
	dir := filepath.Join(gallery, name)
	writeFile(t, filepath.Join(dir, config.AlbumFilename), settings)
	for _, img := range images {
		writePNG(t, filepath.Join(dir, img), 40, 30)
	}
	return dir
}

func TestGenerateWithoutGalleryToml(t *testing.T) {
	dir := t.TempDir()

	result, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !result.Skipped {
		t.Error("Expected gallery without gallery.toml to be skipped")
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultGalleryOutputDirectory)); !os.IsNotExist(err) {
		t.Errorf("Expected no output directory, stat error = %v", err)
	}
}

func TestGenerateGallery(t *testing.T) {
	dir := newGallery(t, `title = "Holidays"
private_gallery_index_filename = "private.html"
`)
	addAlbum(t, dir, "beach", "title = \"Beach\"\nis_public = true\n", "a.png", "b.png")
	addAlbum(t, dir, "family", "title = \"Family\"\n", "c.png")
	writePNG(t, filepath.Join(dir, "not-an-album", "d.png"), 10, 10)

	result, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Title != "Holidays" {
		t.Errorf("Title = %q, want Holidays", result.Title)
	}
	if len(result.Albums) != 2 {
		t.Fatalf("Expected 2 albums, got %d", len(result.Albums))
	}

	out := filepath.Join(dir, config.DefaultGalleryOutputDirectory)
	if result.OutputDir != out {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, out)
	}

	beach := outdir.Hash("beach")
	family := outdir.Hash("family")

	public := readFile(t, filepath.Join(out, IndexFilename))
	if !strings.Contains(public, beach+"/index.html") {
		t.Error("Public index does not link the public album")
	}
	if strings.Contains(public, family) {
		t.Error("Public index links a private album")
	}

	private := readFile(t, filepath.Join(out, "private.html"))
	if !strings.Contains(private, family+"/index.html") {
		t.Error("Private index does not link the private album")
	}
	if strings.Contains(private, beach) {
		t.Error("Private index links a public album")
	}

	for _, path := range []string{
		filepath.Join(out, beach, IndexFilename),
		filepath.Join(out, beach, "a.png"),
		filepath.Join(out, beach, "thumbnails", "a.jpg"),
		filepath.Join(out, beach, "thumbnails", "b.jpg"),
		filepath.Join(out, beach, manifest.Filename),
		filepath.Join(out, family, "c.png"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}

	page := readFile(t, filepath.Join(out, beach, IndexFilename))
	for _, want := range []string{"<title>Beach</title>", "thumbnails/a.jpg", "thumbnails/b.jpg", "../index.html"} {
		if !strings.Contains(page, want) {
			t.Errorf("Album page does not contain %q", want)
		}
	}
}

func TestGenerateNoPrivateIndexByDefault(t *testing.T) {
	dir := newGallery(t, "")
	addAlbum(t, dir, "family", "", "c.png")

	if _, err := New(Options{Jobs: 1}).Generate(context.Background(), dir); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	out := filepath.Join(dir, config.DefaultGalleryOutputDirectory)
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var html []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".html") {
			html = append(html, e.Name())
		}
	}
	if len(html) != 1 || html[0] != IndexFilename {
		t.Errorf("Expected only index.html, got %v", html)
	}
	if strings.Contains(readFile(t, filepath.Join(out, IndexFilename)), outdir.Hash("family")) {
		t.Error("Non-public album listed in public index")
	}
}

func TestGenerateAlbumOutputDirectories(t *testing.T) {
	absolute := filepath.Join(t.TempDir(), "elsewhere")
	dir := newGallery(t, "")
	addAlbum(t, dir, "named", "is_public = true\noutput_directory = \"named-out\"\n", "a.png")
	addAlbum(t, dir, "hashed", "is_public = true\nhash_value = \"secret\"\n", "a.png")
	addAlbum(t, dir, "suffixed", "is_public = true\noutput_directory = \"x-\"\nappend_hash_to_output_directory = true\n", "a.png")
	addAlbum(t, dir, "absolute", "is_public = true\noutput_directory = \""+filepath.ToSlash(absolute)+"\"\n", "a.png")

	result, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	out := result.OutputDir
	index := readFile(t, filepath.Join(out, IndexFilename))

	tests := []struct {
		name   string
		path   string
		href   string
		listed bool
	}{
		{"explicit", filepath.Join(out, "named-out"), "named-out/index.html", true},
		{"hash value", filepath.Join(out, outdir.Hash("secret")), outdir.Hash("secret") + "/index.html", true},
		{"appended hash", filepath.Join(out, "x-"+outdir.Hash("suffixed")), "x-" + outdir.Hash("suffixed") + "/index.html", true},
		{"absolute", absolute, "elsewhere/index.html", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := os.Stat(filepath.Join(tt.path, IndexFilename)); err != nil {
				t.Errorf("Album not written to %s: %v", tt.path, err)
			}
			if got := strings.Contains(index, tt.href); got != tt.listed {
				t.Errorf("index lists %s = %v, want %v", tt.href, got, tt.listed)
			}
		})
	}
}

func TestGenerateAlbumsSortedByTitle(t *testing.T) {
	dir := newGallery(t, "")
	addAlbum(t, dir, "one", "title = \"Trip 10\"\nis_public = true\n")
	addAlbum(t, dir, "two", "title = \"Trip 2\"\nis_public = true\n")
	addAlbum(t, dir, "three", "title = \"Autumn\"\nis_public = true\n")

	result, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	index := readFile(t, filepath.Join(result.OutputDir, IndexFilename))
	autumn := strings.Index(index, "Autumn")
	trip2 := strings.Index(index, "Trip 2")
	trip10 := strings.Index(index, "Trip 10")
	if autumn < 0 || trip2 < 0 || trip10 < 0 {
		t.Fatalf("index is missing albums:\n%s", index)
	}
	if !(autumn < trip2 && trip2 < trip10) {
		t.Errorf("albums not in natural title order: Autumn@%d, Trip 2@%d, Trip 10@%d", autumn, trip2, trip10)
	}

	page := readFile(t, filepath.Join(result.OutputDir, outdir.Hash("three"), IndexFilename))
	if !strings.Contains(page, "This album does not contain any photos or videos.") {
		t.Error("Empty album page is missing its message")
	}
}

func TestGenerateFilesSortedByFilename(t *testing.T) {
	dir := newGallery(t, "sort_key = \"filename\"\n")
	addAlbum(t, dir, "album", "", "10.png", "2.png", "a.png", "1.png")

	result, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	page := readFile(t, filepath.Join(result.OutputDir, outdir.Hash("album"), IndexFilename))
	last := -1
	for _, name := range []string{"thumbnails/1.jpg", "thumbnails/2.jpg", "thumbnails/10.jpg", "thumbnails/a.jpg"} {
		pos := strings.Index(page, name)
		if pos < 0 {
			t.Fatalf("page does not reference %s", name)
		}
		if pos < last {
			t.Errorf("%s out of order", name)
		}
		last = pos
	}
}

func TestGenerateAlbumFailureIsIsolated(t *testing.T) {
	dir := newGallery(t, "")
	addAlbum(t, dir, "broken", "is_public = true\nthumbnail_width = 0\n", "a.png")
	addAlbum(t, dir, "good", "is_public = true\n", "a.png")

	result, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	if err == nil {
		t.Fatal("Expected an error for the broken album")
	}

	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) || cfgErr.Key != "thumbnail_width" {
		t.Errorf("Expected a config error for thumbnail_width, got %v", err)
	}

	failed := result.Failed()
	if len(failed) != 1 || filepath.Base(failed[0].Dir) != "broken" {
		t.Fatalf("Failed() = %+v, want the broken album", failed)
	}

	index := readFile(t, filepath.Join(result.OutputDir, IndexFilename))
	if !strings.Contains(index, outdir.Hash("good")) {
		t.Error("Good album missing from index")
	}
	if strings.Contains(index, outdir.Hash("broken")) {
		t.Error("Broken album listed in index")
	}
}

func TestGenerateSkipsUnreadableImages(t *testing.T) {
	dir := newGallery(t, "")
	albumDir := addAlbum(t, dir, "album", "", "good.png")
	writeFile(t, filepath.Join(albumDir, "broken.jpg"), "not a jpeg")

	result, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	stats := result.Albums[0].Stats
	if stats.Processed != 1 || stats.Skipped != 1 {
		t.Errorf("Stats = %+v, want 1 processed and 1 skipped", stats)
	}

	page := readFile(t, filepath.Join(result.OutputDir, outdir.Hash("album"), IndexFilename))
	if strings.Contains(page, "broken") {
		t.Error("Unreadable image appears on the album page")
	}
}

func TestGenerateIsIncremental(t *testing.T) {
	dir := newGallery(t, "")
	addAlbum(t, dir, "album", "", "a.png", "b.png")

	tests := []struct {
		name      string
		force     bool
		setup     func()
		processed int
		unchanged int
	}{
		{name: "first run", processed: 2},
		{name: "second run", unchanged: 2},
		{
			name: "source changed",
			setup: func() {
				writePNG(t, filepath.Join(dir, "album", "b.png"), 60, 20)
			},
			processed: 1,
			unchanged: 1,
		},
		{
			name: "setting changed",
			setup: func() {
				writeFile(t, filepath.Join(dir, "album", config.AlbumFilename), "thumbnail_width = 50\n")
			},
			processed: 2,
		},
		{
			name: "output deleted",
			setup: func() {
				os.Remove(filepath.Join(dir, config.DefaultGalleryOutputDirectory, outdir.Hash("album"), "thumbnails", "a.jpg"))
			},
			processed: 1,
			unchanged: 1,
		},
		{name: "forced", force: true, processed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			result, err := New(Options{Jobs: 1, Force: tt.force}).Generate(context.Background(), dir)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			stats := result.Albums[0].Stats
			if stats.Processed != tt.processed || stats.Unchanged != tt.unchanged {
				t.Errorf("Stats = %+v, want processed=%d unchanged=%d", stats, tt.processed, tt.unchanged)
			}
		})
	}
}

func TestGenerateParallelAlbums(t *testing.T) {
	dir := newGallery(t, "")
	names := []string{"a", "b", "c", "d", "e"}
	for _, name := range names {
		addAlbum(t, dir, name, "is_public = true\n", "x.png", "y.png")
	}

	result, err := New(Options{Jobs: 3}).Generate(context.Background(), dir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	index := readFile(t, filepath.Join(result.OutputDir, IndexFilename))
	for i, a := range result.Albums {
		if a.Stats.Processed != 2 {
			t.Errorf("album %d: Stats = %+v", i, a.Stats)
		}
		if !strings.Contains(index, outdir.Hash(names[i])) {
			t.Errorf("album %s missing from index", names[i])
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	dir := newGallery(t, "")
	addAlbum(t, dir, "album", "is_public = true\n", "a.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Jobs: 1}).Generate(ctx, dir)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestGenerateInvalidGallerySettings(t *testing.T) {
	dir := newGallery(t, "sort_key = \"size\"\n")

	_, err := New(Options{Jobs: 1}).Generate(context.Background(), dir)
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) || cfgErr.Key != "sort_key" {
		t.Errorf("Generate() error = %v, want sort_key config error", err)
	}
}

func TestGenerateReportsProgress(t *testing.T) {
	dir := newGallery(t, "")
	addAlbum(t, dir, "album", "title = \"Summer\"\n", "a.png")

	var buf bytes.Buffer
	opts := Options{Jobs: 1, Progress: progress.NewWriter(&buf, true)}
	if _, err := New(opts).Generate(context.Background(), dir); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Summer", "[1/1] a.png", "1 processed"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q does not contain %q", out, want)
		}
	}
}

func TestAlbumVisibility(t *testing.T) {
	tests := []struct {
		name   string
		album  AlbumResult
		want   string
		listed bool
	}{
		{"public", AlbumResult{OutputDir: "abc", Settings: config.Settings{IsPublic: true}}, "public", true},
		{"private", AlbumResult{OutputDir: "abc"}, "private", true},
		{"absolute", AlbumResult{OutputDir: "/srv/www/abc", Settings: config.Settings{IsPublic: true}}, "unlisted", false},
		{"failed", AlbumResult{OutputDir: "abc", Err: errors.New("boom")}, "private", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.album.visibility(); got != tt.want {
				t.Errorf("visibility() = %q, want %q", got, tt.want)
			}
			if got := tt.album.Listed(); got != tt.listed {
				t.Errorf("Listed() = %v, want %v", got, tt.listed)
			}
		})
	}
}
