package gallery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"media-gallery/internal/config"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/metadata"
	"media-gallery/internal/metrics"
	"media-gallery/internal/ordering"
	"media-gallery/internal/outdir"
	"media-gallery/internal/progress"
	"media-gallery/internal/workers"

	exiftool "github.com/barasher/go-exiftool"
	"golang.org/x/sync/errgroup"
)

// Options are the run-wide switches shared by every gallery.
type Options struct {
	// Force regenerates every output, ignoring album manifests.
	Force bool
	// Jobs is the number of albums processed at once; 0 means one per CPU.
	Jobs int
	// Exiftool is a running exiftool process, or nil.
	Exiftool *exiftool.Exiftool
	// Vips resizes JPEGs with libvips.
	Vips bool
	// FFmpegPath is used for video thumbnails; empty means placeholders.
	FFmpegPath string
	// Progress draws the per-album status line; nil disables it.
	Progress *progress.Reporter
}

// Generator turns gallery directories into static sites.
type Generator struct {
	opts     Options
	images   metadata.Source
	stripper *media.GPSStripper
}

// New returns a generator. The exiftool process in opts, when set, is used
// both to read IPTC tags and to remove GPS data from output copies.
func New(opts Options) *Generator {
	var etSource *metadata.ExiftoolSource
	if opts.Exiftool != nil {
		etSource = metadata.NewExiftoolSource(opts.Exiftool)
	}
	return &Generator{
		opts:     opts,
		images:   metadata.DefaultImageSource(etSource),
		stripper: media.NewGPSStripper(opts.Exiftool),
	}
}

// Result describes one generated gallery.
type Result struct {
	// Skipped is set when the directory has no gallery.toml.
	Skipped   bool
	Title     string
	OutputDir string
	Albums    []AlbumResult
}

// Failed returns the albums that could not be generated.
func (r Result) Failed() []AlbumResult {
	var failed []AlbumResult
	for _, a := range r.Albums {
		if a.Err != nil {
			failed = append(failed, a)
		}
	}
	return failed
}

// Generate builds the gallery in dir: every album subdirectory, then the
// public index and, when configured, the private one. A directory without
// gallery.toml is skipped without error. Album failures do not stop the
// other albums; they are joined into the returned error.
func (g *Generator) Generate(ctx context.Context, dir string) (Result, error) {
	settings, err := config.LoadGallery(dir)
	if errors.Is(err, config.ErrNoSettings) {
		logging.Debug("Skipping %s: no %s", dir, config.GalleryFilename)
		metrics.GalleriesTotal.WithLabelValues("skipped").Inc()
		return Result{Skipped: true}, nil
	}
	if err != nil {
		metrics.GalleriesTotal.WithLabelValues("failed").Inc()
		return Result{}, err
	}

	logging.Debug("Gallery settings for %s:", dir)
	settings.LogDebug()

	result := Result{
		Title:     settings.Title,
		OutputDir: outdir.Join(dir, settings.OutputDirectory),
	}
	logging.Debug("Output path: %s", result.OutputDir)

	if err := g.generate(ctx, dir, settings, &result); err != nil {
		metrics.GalleriesTotal.WithLabelValues("failed").Inc()
		return result, err
	}
	metrics.GalleriesTotal.WithLabelValues("generated").Inc()
	return result, nil
}

func (g *Generator) generate(ctx context.Context, dir string, settings config.Settings, result *Result) error {
	if err := filesystem.EnsureDir(result.OutputDir); err != nil {
		return err
	}

	albumDirs, err := findAlbums(dir)
	if err != nil {
		return err
	}

	result.Albums = make([]AlbumResult, len(albumDirs))

	var eg errgroup.Group
	eg.SetLimit(workers.Jobs(g.opts.Jobs))
	for i, albumDir := range albumDirs {
		eg.Go(func() error {
			result.Albums[i] = g.generateAlbum(ctx, albumDir, settings, result.OutputDir)
			return nil
		})
	}
	_ = eg.Wait() // album errors are kept in result.Albums

	var errs []error
	for _, a := range result.Albums {
		if a.Err != nil {
			logging.Error("Unable to generate album %s: %v", a.Dir, a.Err)
			errs = append(errs, fmt.Errorf("album %s: %w", a.Dir, a.Err))
		}
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(append(errs, err)...)
	}

	if err := writeIndexes(settings, result.OutputDir, result.Albums); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// findAlbums returns the subdirectories of dir holding an album.toml.
func findAlbums(dir string) ([]string, error) {
	names, err := filesystem.SubDirs(dir)
	if err != nil {
		return nil, err
	}

	var albums []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if !filesystem.Exists(filepath.Join(path, config.AlbumFilename)) {
			logging.Debug("Skipping %s: no %s", path, config.AlbumFilename)
			continue
		}
		albums = append(albums, path)
	}
	slices.SortFunc(albums, ordering.CompareNames)
	return albums, nil
}

func (g *Generator) generateAlbum(ctx context.Context, dir string, gallery config.Settings, galleryOut string) AlbumResult {
	start := time.Now()
	a := AlbumResult{Dir: dir}

	settings, err := config.LoadAlbum(dir, gallery)
	if err != nil {
		a.Err = err
		metrics.AlbumsTotal.WithLabelValues("failed", a.visibility()).Inc()
		return a
	}
	logging.Debug("Album settings for %s:", dir)
	settings.LogDebug()

	a.Settings = settings
	a.OutputDir = outdir.Resolve(settings.OutputDirectory, settings.HashValue, filepath.Base(dir), settings.AppendHashToOutputDirectory)
	a.Path = outdir.Join(galleryOut, a.OutputDir)

	logging.Info("Generating album %q in %s", settings.Title, a.Path)
	a.Stats, a.Err = g.album(ctx, dir, settings, a.Path)
	g.opts.Progress.Finish(settings.Title, a.Stats, a.Err)

	status := "generated"
	if a.Err != nil {
		status = "failed"
	}
	metrics.AlbumsTotal.WithLabelValues(status, a.visibility()).Inc()
	metrics.AlbumDuration.Observe(time.Since(start).Seconds())
	return a
}
