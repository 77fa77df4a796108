package media

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"

	"github.com/davidbyttow/govips/v2/vips"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
)

// InitVips initializes the libvips library.
// This should be called once at startup, and only when --vips is given.
func InitVips() error {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}

	// Configure vips logging BEFORE Startup() so it follows our level
	vipsLogLevel, logHandler := vipsLogging(logging.GetLevel())
	vips.LoggingSettings(logHandler, vipsLogLevel)

	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024, // 50MB cache
		MaxCacheSize:     100,
		ReportLeaks:      false,
		CacheTrace:       false,
		CollectStats:     false,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized successfully (version: %s)", vips.Version)
	return nil
}

// vipsLogging maps our log level to the lowest vips level worth reporting
// and a handler that forwards vips messages to our logger.
func vipsLogging(level logging.LogLevel) (vips.LogLevel, func(string, vips.LogLevel, string)) {
	forward := func(threshold vips.LogLevel) func(string, vips.LogLevel, string) {
		return func(domain string, msgLevel vips.LogLevel, msg string) {
			if msgLevel > threshold {
				return
			}
			switch msgLevel {
			case vips.LogLevelError, vips.LogLevelCritical:
				logging.Error("[%s] %s", domain, msg)
			case vips.LogLevelWarning:
				logging.Warn("[%s] %s", domain, msg)
			default:
				logging.Debug("[%s] %s", domain, msg)
			}
		}
	}

	// vips levels grow more verbose as the value increases
	switch level {
	case logging.LevelDebug:
		return vips.LogLevelInfo, forward(vips.LogLevelDebug)
	case logging.LevelInfo, logging.LevelWarn:
		return vips.LogLevelWarning, forward(vips.LogLevelWarning)
	default:
		return vips.LogLevelError, forward(vips.LogLevelError)
	}
}

// ShutdownVips cleans up libvips resources
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Debug("libvips shutdown complete")
	}
}

// IsVipsAvailable returns whether libvips is initialized and available
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// ResizeWithVips writes a JPEG copy of src scaled to fit width×height to
// dst. libvips shrinks JPEGs while decoding and rotates them upright. The
// copy keeps the source metadata unless stripMetadata is set.
func ResizeWithVips(src, dst string, width, height int, stripMetadata bool) (int, int, error) {
	if !IsVipsAvailable() {
		return 0, 0, fmt.Errorf("libvips not available")
	}

	start := time.Now()
	w, h, err := resizeWithVips(src, dst, width, height, stripMetadata)
	metrics.ObserveTool("vips", start, err)
	return w, h, err
}

func resizeWithVips(src, dst string, width, height int, stripMetadata bool) (int, int, error) {
	ref, err := vips.LoadImageFromFile(src, vips.NewImportParams())
	if err != nil {
		return 0, 0, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	if err := ref.AutoRotate(); err != nil {
		return 0, 0, fmt.Errorf("vips rotate failed: %w", err)
	}

	logging.Debug("Vips loaded %s: %dx%d, shrinking to %dx%d",
		filepath.Base(src), ref.Width(), ref.Height(), width, height)

	if err := ref.Thumbnail(width, height, vips.InterestingNone); err != nil {
		return 0, 0, fmt.Errorf("vips resize failed: %w", err)
	}

	imgBytes, _, err := ref.ExportJpeg(&vips.JpegExportParams{
		Quality:        JPEGQuality,
		StripMetadata:  stripMetadata,
		OptimizeCoding: true,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("vips export failed: %w", err)
	}

	if err := filesystem.WriteFile(dst, imgBytes); err != nil {
		return 0, 0, err
	}
	return ref.Width(), ref.Height(), nil
}
