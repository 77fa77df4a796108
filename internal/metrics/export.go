package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile stamps the run time and writes every registered metric to
// path in the text exposition format read by node_exporter's textfile
// collector. The file is replaced atomically.
func WriteTextfile(path string) error {
	LastRunTimestamp.Set(float64(time.Now().Unix()))
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

// ObserveTool records the duration of an external tool call that started at
// start, and counts it as failed when err is non-nil.
func ObserveTool(tool string, start time.Time, err error) {
	ExternalToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
	if err != nil {
		ExternalToolErrors.WithLabelValues(tool).Inc()
	}
}
