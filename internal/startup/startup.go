package startup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"media-gallery/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
	OS        string
	Arch      string
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String is the one-line form printed by --version.
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		b.Version, b.Commit, b.BuildTime, b.GoVersion, b.OS, b.Arch)
}

// Tools lists the external programs found on this machine. An empty path
// means the program is missing.
type Tools struct {
	FFmpegPath   string
	ExiftoolPath string
}

// DetectTools looks up ffmpeg and exiftool in PATH and logs their versions.
func DetectTools(ctx context.Context) Tools {
	logSection("EXTERNAL TOOLS")

	tools := Tools{
		FFmpegPath:   findTool(ctx, "ffmpeg", "-version"),
		ExiftoolPath: findTool(ctx, "exiftool", "-ver"),
	}

	if tools.FFmpegPath == "" {
		logging.Warn("  ffmpeg not found, video thumbnails will be placeholders")
	}
	if tools.ExiftoolPath == "" {
		logging.Info("  exiftool not found, IPTC captions are not read and videos cannot be stripped of GPS data")
	}
	return tools
}

func findTool(ctx context.Context, name, versionFlag string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		logging.Debug("  %s not found in PATH", name)
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, versionFlag).Output()
	if err != nil {
		logging.Warn("  %s at %s did not report a version: %v", name, path, err)
		return path
	}

	version := strings.TrimSpace(strings.SplitN(string(output), "\n", 2)[0])
	logging.Debug("  [OK] %s %s (%s)", name, version, path)
	return path
}

// RunInfo describes one invocation for the startup log.
type RunInfo struct {
	Directories []string
	Jobs        int
	Force       bool
	Exiftool    bool
	Vips        bool
	MetricsFile string
}

// LogRunStart logs the banner, system information and the run settings.
// Everything except the directory list is debug output.
func LogRunStart(info RunInfo) {
	if logging.IsDebugEnabled() {
		printBanner()
		logSystemInfo()
		logSection("CONFIGURATION")
		logging.Debug("  Jobs:            %d", info.Jobs)
		logging.Debug("  Force:           %v", info.Force)
		logging.Debug("  Exiftool:        %s", enabledString(info.Exiftool))
		logging.Debug("  libvips:         %s", enabledString(info.Vips))
		if info.MetricsFile != "" {
			logging.Debug("  Metrics file:    %s", info.MetricsFile)
		}
		logging.Debug("  LOG_LEVEL:       %s", logging.GetLevel())
	}

	for _, dir := range info.Directories {
		logging.Info("Generating gallery %s", dir)
	}
}

// RunSummary is the outcome of a run.
type RunSummary struct {
	Duration  time.Duration
	Galleries int
	Albums    int
	Failed    int
}

// LogRunComplete logs the outcome of the run.
func LogRunComplete(s RunSummary) {
	if s.Failed > 0 {
		logging.Error("Finished in %v: %d galleries, %d albums, %d failed",
			s.Duration.Round(time.Millisecond), s.Galleries, s.Albums, s.Failed)
		return
	}
	logging.Info("Finished in %v: %d galleries, %d albums",
		s.Duration.Round(time.Millisecond), s.Galleries, s.Albums)
}

// Helper functions

func logSection(title string) {
	logging.Debug("------------------------------------------------------------")
	logging.Debug("%s", title)
	logging.Debug("------------------------------------------------------------")
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

func printBanner() {
	banner := `
------------------------------------------------------------
   ____                           _              _ _
  / ___| ___ _ __   ___ _ __ __ _| |_ ___       / \  | |__  _   _ _ __ ___
 | |  _ / _ \ '_ \ / _ \ '__/ _' | __/ _ \     / _ \ | '_ \| | | | '_ ' _ \
 | |_| |  __/ | | |  __/ | | (_| | ||  __/    / ___ \| |_) | |_| | | | | | |
  \____|\___|_| |_|\___|_|  \__,_|\__\___|   /_/   \_\_.__/ \__,_|_| |_| |_|

------------------------------------------------------------`
	fmt.Fprintln(os.Stderr, banner)
	logging.Debug("  Version:    %s", Version)
	logging.Debug("  Commit:     %s", Commit)
	logging.Debug("  Build Time: %s", BuildTime)
	logging.Debug("  Started:    %s", time.Now().Format(time.RFC1123))
}

func logSystemInfo() {
	logSection("SYSTEM INFORMATION")
	logging.Debug("  Go version:      %s", runtime.Version())
	logging.Debug("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Debug("  CPUs available:  %d", runtime.NumCPU())
	logging.Debug("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Debug("  (Container CPU limit detected)")
	}

	if wd, err := os.Getwd(); err == nil {
		logging.Debug("  Working dir:     %s", wd)
	}
}
