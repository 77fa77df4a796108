// Package startup reports what a generate-album run is about to do.
//
// It carries the build information injected with -ldflags:
//
//	go build -ldflags "-X media-gallery/internal/startup.Version=1.2.0" ./cmd/generate-album
//
// detects the optional external programs (ffmpeg for video thumbnails,
// exiftool for IPTC captions and GPS removal), and logs the run banner and
// summary. The banner, system information and tool versions are only shown
// at debug level.
package startup
