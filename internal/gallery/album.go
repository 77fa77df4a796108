package gallery

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"media-gallery/internal/config"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/manifest"
	"media-gallery/internal/media"
	"media-gallery/internal/metadata"
	"media-gallery/internal/metrics"
	"media-gallery/internal/ordering"
	"media-gallery/internal/outdir"
	"media-gallery/internal/progress"
	"media-gallery/internal/render"
)

// AlbumResult describes one album directory of a gallery.
type AlbumResult struct {
	// Dir is the album source directory.
	Dir string
	// Settings are the effective album settings; zero when they failed to load.
	Settings config.Settings
	// OutputDir is the resolved output_directory, relative to the gallery
	// output unless absolute.
	OutputDir string
	// Path is where the album was written.
	Path  string
	Stats progress.Stats
	Err   error
}

// Listed reports whether the album may appear in a gallery index.
func (a AlbumResult) Listed() bool {
	return a.Err == nil && outdir.IsListed(a.OutputDir)
}

func (a AlbumResult) visibility() string {
	switch {
	case !outdir.IsListed(a.OutputDir):
		return "unlisted"
	case a.Settings.IsPublic:
		return "public"
	default:
		return "private"
	}
}

// album writes the output copies, thumbnails, index and manifest of the
// album in dir to out.
func (g *Generator) album(ctx context.Context, dir string, settings config.Settings, out string) (progress.Stats, error) {
	var stats progress.Stats

	if err := filesystem.EnsureDir(filepath.Join(out, media.ThumbnailDir)); err != nil {
		return stats, err
	}

	files, err := media.ScanAlbum(dir)
	if err != nil {
		return stats, err
	}
	metrics.AlbumFiles.Observe(float64(len(files)))

	previous := manifest.New(out)
	if !g.opts.Force {
		previous = manifest.Load(out)
	}
	next := manifest.New(out)

	resolver := metadata.NewResolver(settings, g.images)
	processor := media.NewProcessor(settings, g.stripper, media.Options{
		UseVips:    g.opts.Vips,
		FFmpegPath: g.opts.FFmpegPath,
	})

	kept := make([]media.MediaFile, 0, len(files))
	for i := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		file := &files[i]
		g.opts.Progress.Update(settings.Title, i+1, len(files), file.Name)
		logging.Debug("  %s", file.Name)

		file.Metadata = resolver.Resolve(file.Path, file.Type)

		fingerprint, err := manifest.Fingerprint(file.Path)
		if err != nil {
			return stats, err
		}
		sig := g.signature(settings, file)

		if entry, ok := previous.Fresh(file.Name, fingerprint, sig); ok {
			logging.Debug("    Outputs of %s are up to date", file.Name)
			file.OutputName = entry.OutputName
			file.ThumbnailName = entry.ThumbnailName
			file.Width, file.Height = entry.Width, entry.Height
			next.Set(file.Name, entry)
			metrics.FilesProcessedTotal.WithLabelValues(string(file.Type), string(media.ResultUnchanged)).Inc()
			stats.Unchanged++
			kept = append(kept, *file)
			continue
		}

		result, err := processor.Process(ctx, file, out)
		if errors.Is(err, media.ErrUnreadable) {
			logging.Warn("Skipping %s: %v", file.Path, err)
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, err
		}
		logging.Debug("    %s -> %s (%s)", file.Name, file.OutputName, result)

		next.Set(file.Name, manifest.Entry{
			Fingerprint:   fingerprint,
			Signature:     sig,
			OutputName:    file.OutputName,
			ThumbnailName: file.ThumbnailName,
			Width:         file.Width,
			Height:        file.Height,
		})
		stats.Processed++
		kept = append(kept, *file)
	}

	ordering.Sort(kept, settings.SortKey)

	page := render.NewAlbumPage(settings, kept)
	if err := filesystem.WriteWith(filepath.Join(out, IndexFilename), func(w io.Writer) error {
		return render.Album(w, page)
	}); err != nil {
		return stats, err
	}

	if err := next.Save(); err != nil {
		return stats, err
	}
	return stats, nil
}

// signature lists every setting that shapes the outputs of file.
func (g *Generator) signature(settings config.Settings, file *media.MediaFile) manifest.Signature {
	return manifest.Signature{
		MaxWidth:        settings.MaxImageWidth,
		MaxHeight:       settings.MaxImageHeight,
		ThumbnailWidth:  settings.ThumbnailWidth,
		ThumbnailHeight: settings.ThumbnailHeight,
		Orientation:     file.Metadata.Orientation,
		StripGPS:        settings.StripsGPS(file.Name),
		Vips:            g.opts.Vips && !file.IsVideo(),
	}
}
