package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"media-gallery/internal/config"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"

	"github.com/disintegration/imaging"
)

// ErrUnreadable marks an image that could not be decoded. The album skips
// the file instead of failing.
var ErrUnreadable = errors.New("unreadable image")

// Options are the process-wide processing switches.
type Options struct {
	// UseVips resizes JPEGs with libvips. InitVips must have succeeded.
	UseVips bool
	// FFmpegPath is used for video thumbnails; empty means placeholders.
	FFmpegPath string
}

// Processor writes the output copy and thumbnail of each file of one album.
type Processor struct {
	settings config.Settings
	stripper *GPSStripper
	opts     Options
}

// NewProcessor returns a processor for an album with the given settings.
// stripper may be nil when exiftool is not running.
func NewProcessor(settings config.Settings, stripper *GPSStripper, opts Options) *Processor {
	return &Processor{
		settings: settings,
		stripper: stripper,
		opts:     opts,
	}
}

// Process writes file's output copy into outDir and its thumbnail into
// outDir/thumbnails, and records the output name and size on file.
func (p *Processor) Process(ctx context.Context, file *MediaFile, outDir string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return ResultError, err
	}

	start := time.Now()
	var (
		result Result
		err    error
	)
	switch file.Type {
	case mediatypes.FileTypeImage:
		result, err = p.processImage(file, outDir)
	case mediatypes.FileTypeVideo:
		result, err = p.processVideo(ctx, file, outDir)
	default:
		return ResultError, fmt.Errorf("unsupported file type %q for %s", file.Type, file.Name)
	}

	metrics.FileProcessingDuration.WithLabelValues(string(file.Type)).Observe(time.Since(start).Seconds())
	metrics.FilesProcessedTotal.WithLabelValues(string(file.Type), string(result)).Inc()
	return result, err
}

func (p *Processor) processImage(file *MediaFile, outDir string) (Result, error) {
	img, err := openImage(file.Path)
	if err != nil {
		kind, _ := detectFileType(file.Path)
		return ResultUnreadable, fmt.Errorf("%w %s (content: %s): %v", ErrUnreadable, file.Name, kind, err)
	}

	b := img.Bounds()
	width, height := OrientedSize(b.Dx(), b.Dy(), file.Metadata.Orientation)
	targetW, targetH := FitDimensions(width, height, p.settings.MaxImageWidth, p.settings.MaxImageHeight)
	oriented := Orient(img, file.Metadata.Orientation)
	strip := p.settings.StripsGPS(file.Name)

	result := ResultCopied
	if targetW != width || targetH != height {
		result = ResultResized
		logging.Debug("Resizing %s from %dx%d to %dx%d", file.Name, width, height, targetW, targetH)
		targetW, targetH, err = p.resizeImage(file, oriented, outDir, targetW, targetH, strip)
	} else {
		err = p.copyImage(file, oriented, outDir, strip)
	}
	if err != nil {
		return ResultError, err
	}
	file.Width, file.Height = targetW, targetH

	if err := p.writeThumbnail(oriented, file, outDir); err != nil {
		return ResultError, err
	}
	metrics.ThumbnailsTotal.WithLabelValues("image").Inc()
	return result, nil
}

// resizeImage writes a scaled copy and returns its actual size. The encoder
// drops all metadata; carryTags restores it when exiftool is running.
func (p *Processor) resizeImage(file *MediaFile, oriented image.Image, outDir string, width, height int, strip bool) (int, int, error) {
	if p.opts.UseVips && isJPEG(file.Name) && IsVipsAvailable() {
		file.OutputName = file.Name
		w, h, err := ResizeWithVips(file.Path, filepath.Join(outDir, file.OutputName), width, height, strip)
		if err == nil {
			if strip {
				metrics.GPSStripsTotal.WithLabelValues("vips", "success").Inc()
			}
			return w, h, nil
		}
		logging.Warn("libvips could not resize %s, using the built-in resizer: %v", file.Name, err)
	}

	format, name := EncodeFormat(file.Name)
	file.OutputName = name
	dst := filepath.Join(outDir, name)
	resized := imaging.Resize(oriented, width, height, imaging.Lanczos)
	if err := saveImage(resized, dst, format); err != nil {
		return 0, 0, err
	}
	if strip {
		metrics.GPSStripsTotal.WithLabelValues("reencode", "success").Inc()
	}
	p.carryTags(file, dst, strip)
	return width, height, nil
}

// carryTags copies the source tags onto a re-encoded output, without GPS when
// strip is set. A failed copy leaves the output without metadata.
func (p *Processor) carryTags(file *MediaFile, dst string, strip bool) {
	if !p.stripper.Available() {
		logging.Debug("Resized %s without metadata, exiftool is not running", file.Name)
		return
	}
	if err := p.stripper.CopyTags(file.Path, dst, !strip); err != nil {
		logging.Warn("Resized %s without metadata: %v", file.Name, err)
	}
}

// copyImage copies the source unchanged. When GPS must go, the copy is
// cleaned with exiftool, or re-encoded without metadata when exiftool is
// missing or fails.
func (p *Processor) copyImage(file *MediaFile, oriented image.Image, outDir string, strip bool) error {
	file.OutputName = file.Name
	dst := filepath.Join(outDir, file.OutputName)

	if !strip || p.stripper.Available() {
		if err := filesystem.CopyFile(file.Path, dst); err != nil {
			return err
		}
		if !strip {
			return nil
		}
		err := p.stripper.Strip(dst)
		if err == nil {
			return nil
		}
		logging.Warn("Re-encoding %s without metadata: %v", file.Name, err)
		if rmErr := os.Remove(dst); rmErr != nil {
			return fmt.Errorf("remove %s after failed GPS removal: %w", dst, rmErr)
		}
	}

	format, name := EncodeFormat(file.Name)
	file.OutputName = name
	if err := saveImage(oriented, filepath.Join(outDir, name), format); err != nil {
		metrics.GPSStripsTotal.WithLabelValues("reencode", "error").Inc()
		return err
	}
	metrics.GPSStripsTotal.WithLabelValues("reencode", "success").Inc()
	return nil
}

func (p *Processor) processVideo(ctx context.Context, file *MediaFile, outDir string) (Result, error) {
	file.OutputName = file.Name
	dst := filepath.Join(outDir, file.OutputName)
	if err := filesystem.CopyFile(file.Path, dst); err != nil {
		return ResultError, err
	}

	if p.settings.StripsGPS(file.Name) {
		if err := p.stripVideo(dst, file.Name); err != nil {
			// A copy that still carries GPS must not be published.
			os.Remove(dst)
			return ResultError, err
		}
	}

	thumb := Placeholder(p.settings.ThumbnailWidth, p.settings.ThumbnailHeight)
	source := "placeholder"
	frame, err := extractFrame(ctx, p.opts.FFmpegPath, file.Path)
	switch {
	case err == nil:
		b := frame.Bounds()
		file.Width, file.Height = b.Dx(), b.Dy()
		thumb = Thumbnail(frame, p.settings.ThumbnailWidth, p.settings.ThumbnailHeight)
		source = "ffmpeg"
	case errors.Is(err, ErrNoFFmpeg):
		logging.Debug("Using placeholder thumbnail for %s: %v", file.Name, err)
	case ctx.Err() != nil:
		return ResultError, ctx.Err()
	default:
		logging.Warn("Using placeholder thumbnail for %s: %v", file.Name, err)
	}

	if err := saveImage(thumb, filepath.Join(outDir, ThumbnailDir, file.ThumbnailName), imaging.JPEG); err != nil {
		return ResultError, err
	}
	metrics.ThumbnailsTotal.WithLabelValues(source).Inc()
	return ResultCopied, nil
}

func (p *Processor) stripVideo(path, name string) error {
	if !CanStripVideo(name) {
		logging.Warn("GPS tags of %s are kept in the output, exiftool cannot rewrite this container", name)
		return nil
	}
	if !p.stripper.Available() {
		metrics.GPSStripsTotal.WithLabelValues("exiftool", "error").Inc()
		return fmt.Errorf("%s: %w", name, ErrNoExiftool)
	}
	return p.stripper.Strip(path)
}

func (p *Processor) writeThumbnail(img image.Image, file *MediaFile, outDir string) error {
	thumb := Thumbnail(img, p.settings.ThumbnailWidth, p.settings.ThumbnailHeight)
	return saveImage(thumb, filepath.Join(outDir, ThumbnailDir, file.ThumbnailName), imaging.JPEG)
}

func isJPEG(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".jfif":
		return true
	}
	return false
}
