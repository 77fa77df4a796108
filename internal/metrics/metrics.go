package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gallery and album metrics
var (
	GalleriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_album_galleries_total",
			Help: "Total number of gallery directories handled",
		},
		[]string{"status"}, // "generated", "skipped", "failed"
	)

	AlbumsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_album_albums_total",
			Help: "Total number of album directories handled",
		},
		[]string{"status", "visibility"}, // visibility: "public", "private", "unlisted"
	)

	AlbumDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generate_album_album_duration_seconds",
			Help:    "Time spent generating one album",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	AlbumFiles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generate_album_album_files",
			Help:    "Number of media files per album",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "generate_album_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed run",
		},
	)
)

// Media file metrics
var (
	FilesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_album_files_processed_total",
			Help: "Total number of media files processed",
		},
		[]string{"type", "result"}, // result: "resized", "copied", "unchanged", "unreadable", "error"
	)

	FileProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generate_album_file_processing_duration_seconds",
			Help:    "Time spent producing the output copy and thumbnail of one file",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"type"},
	)

	ThumbnailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_album_thumbnails_total",
			Help: "Total number of thumbnails written",
		},
		[]string{"source"}, // "image", "ffmpeg", "placeholder"
	)

	GPSStripsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_album_gps_strips_total",
			Help: "Total number of output files stripped of GPS metadata",
		},
		[]string{"method", "status"}, // method: "exiftool", "reencode", "vips"
	)

	MetadataReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_album_metadata_reads_total",
			Help: "Total number of metadata lookups by source file kind",
		},
		[]string{"kind"}, // "embedded", "sidecar"
	)
)

// External tool metrics
var (
	ExternalToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generate_album_external_tool_duration_seconds",
			Help:    "Duration of calls to external tools",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tool"}, // "ffmpeg", "exiftool", "vips"
	)

	ExternalToolErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_album_external_tool_errors_total",
			Help: "Total number of failed external tool calls",
		},
		[]string{"tool"},
	)
)
