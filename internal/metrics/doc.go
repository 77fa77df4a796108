// Package metrics provides Prometheus instrumentation for generate-album.
//
// generate-album is a batch tool, so nothing is scraped. When the
// --metrics-file flag is given, the registry is written once at the end of
// the run with WriteTextfile, in the format read by node_exporter's textfile
// collector. All metrics are prefixed with "generate_album_".
//
// # Metric Categories
//
// ## Gallery and Album Metrics
//
//   - GalleriesTotal: Counter of gallery directories by status
//   - AlbumsTotal: Counter of albums by status and index visibility
//   - AlbumDuration: Histogram of time spent per album
//   - AlbumFiles: Histogram of media files per album
//   - LastRunTimestamp: Gauge of the last completed run
//
// ## Media File Metrics
//
//   - FilesProcessedTotal: Counter of files by type and result
//   - FileProcessingDuration: Histogram of per-file processing time by type
//   - ThumbnailsTotal: Counter of thumbnails by source
//   - GPSStripsTotal: Counter of GPS removals by method and status
//   - MetadataReadsTotal: Counter of metadata lookups (embedded or sidecar)
//
// ## External Tool Metrics
//
//   - ExternalToolDuration: Histogram of ffmpeg, exiftool and libvips calls
//   - ExternalToolErrors: Counter of failed external tool calls
//
// # Usage
//
//	start := time.Now()
//	err := cmd.Run()
//	metrics.ObserveTool("ffmpeg", start, err)
//
//	metrics.FilesProcessedTotal.WithLabelValues("image", "resized").Inc()
//
// Call InitializeMetrics once at startup so that every series is present in
// the output even when it stays at zero.
package metrics
