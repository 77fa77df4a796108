package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	t.Setenv(EnvWorkers, "")

	availableCPU := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		minExpect  int
		maxExpect  int
	}{
		{
			name:       "CPU-bound task (1.0x multiplier)",
			multiplier: 1.0,
			minExpect:  1,
			maxExpect:  availableCPU,
		},
		{
			name:       "Mixed task (1.5x multiplier)",
			multiplier: 1.5,
			minExpect:  1,
			maxExpect:  int(float64(availableCPU) * 1.5),
		},
		{
			name:       "With limit lower than calculated",
			multiplier: 2.0,
			limit:      2,
			minExpect:  1,
			maxExpect:  2,
		},
		{
			name:       "Tiny multiplier still yields one worker",
			multiplier: 0.001,
			minExpect:  1,
			maxExpect:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.multiplier, tt.limit)
			if got < tt.minExpect || got > tt.maxExpect {
				t.Errorf("Count(%v, %d) = %d, want between %d and %d",
					tt.multiplier, tt.limit, got, tt.minExpect, tt.maxExpect)
			}
		})
	}
}

func TestCountEnvOverride(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		limit int
		want  int
	}{
		{"override used", "7", 0, 7},
		{"override capped by limit", "7", 3, 3},
		{"invalid override ignored", "abc", 1, 1},
		{"zero override ignored", "0", 1, 1},
		{"negative override ignored", "-4", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvWorkers, tt.env)
			if got := Count(1.0, tt.limit); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	t.Setenv(EnvWorkers, "")
	cpu := runtime.GOMAXPROCS(0)

	if got := ForCPU(0); got != cpu {
		t.Errorf("ForCPU(0) = %d, want %d", got, cpu)
	}
	if got := ForCPU(1); got != 1 {
		t.Errorf("ForCPU(1) = %d, want 1", got)
	}
}

func TestJobs(t *testing.T) {
	t.Setenv(EnvWorkers, "")
	cpu := runtime.GOMAXPROCS(0)

	tests := []struct {
		requested int
		want      int
	}{
		{1, 1},
		{4, 4},
		{0, cpu},
		{-1, cpu},
	}

	for _, tt := range tests {
		if got := Jobs(tt.requested); got != tt.want {
			t.Errorf("Jobs(%d) = %d, want %d", tt.requested, got, tt.want)
		}
	}
}
