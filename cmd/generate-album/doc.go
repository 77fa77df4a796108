// Command generate-album builds static web galleries from directories of
// photos and videos.
//
// Usage:
//
//	generate-album [flags] [GALLERY_DIRECTORY ...]
//
// Each GALLERY_DIRECTORY (default: the current directory) holding a
// gallery.toml is generated; directories without one are skipped. Every
// subdirectory holding an album.toml becomes an album page with resized
// copies and thumbnails of its photos and videos.
//
// Flags:
//
//	-d, --debug         log every setting and per-file decision
//	-q, --quiet         only log warnings and errors
//	-f, --force         regenerate outputs that are up to date
//	-j, --jobs N        albums generated at once, 0 for one per CPU (default 1)
//	--exiftool          use exiftool when installed (default true)
//	--vips              resize JPEG images with libvips
//	--metrics-file F    write run metrics in the Prometheus text format
//
// Environment variables, optionally read from a .env file in the working
// directory:
//
//	LOG_LEVEL                     debug, info, warn or error (default info)
//	GENERATE_ALBUM_WORKERS        default for --jobs
//	GENERATE_ALBUM_METRICS_FILE   default for --metrics-file
//	GENERATE_ALBUM_MEMORY_LIMIT   memory available to the run, e.g. 2GiB
//	GENERATE_ALBUM_MEMORY_RATIO   share of it given to the Go heap (default 0.85)
//
// The exit status is 1 when any gallery or album failed.
package main
