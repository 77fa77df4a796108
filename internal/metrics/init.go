package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every series appears in the textfile even when it stays at zero.
func InitializeMetrics() {
	for _, status := range []string{"generated", "skipped", "failed"} {
		GalleriesTotal.WithLabelValues(status)
		for _, visibility := range []string{"public", "private", "unlisted"} {
			AlbumsTotal.WithLabelValues(status, visibility)
		}
	}

	for _, fileType := range []string{"image", "video"} {
		for _, result := range []string{"resized", "copied", "unchanged", "unreadable", "error"} {
			FilesProcessedTotal.WithLabelValues(fileType, result)
		}
		FileProcessingDuration.WithLabelValues(fileType)
	}

	for _, source := range []string{"image", "ffmpeg", "placeholder"} {
		ThumbnailsTotal.WithLabelValues(source)
	}

	for _, method := range []string{"exiftool", "reencode", "vips"} {
		GPSStripsTotal.WithLabelValues(method, "success")
		GPSStripsTotal.WithLabelValues(method, "error")
	}

	for _, kind := range []string{"embedded", "sidecar"} {
		MetadataReadsTotal.WithLabelValues(kind)
	}

	for _, tool := range []string{"ffmpeg", "exiftool", "vips"} {
		ExternalToolDuration.WithLabelValues(tool)
		ExternalToolErrors.WithLabelValues(tool)
	}
}
