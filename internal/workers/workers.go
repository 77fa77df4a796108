package workers

import (
	"os"
	"runtime"
	"strconv"
)

// EnvWorkers overrides the automatic worker count when set to a positive integer.
const EnvWorkers = "GENERATE_ALBUM_WORKERS"

// Count returns the number of workers for a task type.
// It respects container CPU limits via GOMAXPROCS.
//
// The multiplier scales the CPU count; album generation is CPU-bound and
// uses 1.0.
//
// The limit parameter caps the worker count. Use 0 for no limit.
//
// Can be overridden with the GENERATE_ALBUM_WORKERS environment variable.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv(EnvWorkers); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	available := runtime.GOMAXPROCS(0)

	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}

	return workers
}

// ForCPU returns worker count for CPU-bound tasks (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// Jobs turns the value of the --jobs flag into a worker count. A positive
// value is used as given; zero or less selects one worker per CPU.
func Jobs(requested int) int {
	if requested > 0 {
		return requested
	}
	return ForCPU(0)
}
