package memory

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"media-gallery/internal/logging"
)

const (
	// EnvMemoryLimit is the memory available to the run, as a byte count
	// or with a unit suffix such as 512MiB or 2G.
	EnvMemoryLimit = "GENERATE_ALBUM_MEMORY_LIMIT"
	// EnvMemoryRatio is the share of EnvMemoryLimit given to the Go heap.
	EnvMemoryRatio = "GENERATE_ALBUM_MEMORY_RATIO"

	// DefaultMemoryRatio leaves room for ffmpeg, exiftool and libvips,
	// which allocate outside the Go heap.
	DefaultMemoryRatio = 0.85
)

const (
	sourceGOMEMLIMIT = "GOMEMLIMIT"
	sourceLimit      = EnvMemoryLimit
	sourceNone       = "none"
)

// ConfigResult holds the result of memory configuration
type ConfigResult struct {
	// Configured indicates whether a Go memory limit is in effect
	Configured bool

	// Source is "GOMEMLIMIT", EnvMemoryLimit or "none"
	Source string

	// Limit is the parsed EnvMemoryLimit in bytes (0 if not set)
	Limit int64

	// GoMemLimit is the Go memory limit in bytes (0 if not set)
	GoMemLimit int64

	// Ratio is the memory ratio used (0 if not applicable)
	Ratio float64
}

// ConfigureFromEnv sets the Go memory limit from EnvMemoryLimit and
// EnvMemoryRatio. An explicit GOMEMLIMIT takes precedence. Call it before
// the first album is processed.
func ConfigureFromEnv() ConfigResult {
	if env := os.Getenv("GOMEMLIMIT"); env != "" {
		result := ConfigResult{Source: sourceNone}
		if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Configured = true
			result.Source = sourceGOMEMLIMIT
			result.GoMemLimit = limit
		}
		logging.Debug("GOMEMLIMIT set via environment: %s", env)
		return result
	}

	raw := os.Getenv(EnvMemoryLimit)
	if raw == "" {
		return ConfigResult{Source: sourceNone}
	}

	limit, err := ParseSize(raw)
	if err != nil {
		logging.Warn("Ignoring %s: %v", EnvMemoryLimit, err)
		return ConfigResult{Source: sourceNone}
	}

	ratio := ratioFromEnv()
	goMemLimit := int64(float64(limit) * ratio)
	debug.SetMemoryLimit(goMemLimit)

	logging.Debug("Configured GOMEMLIMIT: %s (%.1f%% of %s)",
		formatBytes(goMemLimit), ratio*100, formatBytes(limit))

	return ConfigResult{
		Configured: true,
		Source:     sourceLimit,
		Limit:      limit,
		GoMemLimit: goMemLimit,
		Ratio:      ratio,
	}
}

func ratioFromEnv() float64 {
	raw := os.Getenv(EnvMemoryRatio)
	if raw == "" {
		return DefaultMemoryRatio
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio <= 0 || ratio > 1 {
		logging.Warn("%s %q must be in (0, 1], using %.2f", EnvMemoryRatio, raw, DefaultMemoryRatio)
		return DefaultMemoryRatio
	}
	return ratio
}

var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"KiB", 1 << 10},
	{"MiB", 1 << 20},
	{"GiB", 1 << 30},
	{"TiB", 1 << 40},
	{"K", 1000},
	{"M", 1000 * 1000},
	{"G", 1000 * 1000 * 1000},
	{"T", 1000 * 1000 * 1000 * 1000},
	{"B", 1},
}

// ParseSize parses a positive byte count with an optional unit suffix:
// B, K, M, G, T (powers of 1000) or KiB, MiB, GiB, TiB (powers of 1024).
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	factor := int64(1)
	number := s
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			factor = u.factor
			number = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}

	n, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n <= 0 {
		return 0, errors.New("size must be positive")
	}
	bytes := n * float64(factor)
	if bytes >= math.MaxInt64 {
		return 0, fmt.Errorf("size %q is too large", s)
	}
	return int64(bytes), nil
}

// formatBytes formats bytes into human-readable string
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
