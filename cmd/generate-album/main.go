package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-gallery/internal/gallery"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/memory"
	"media-gallery/internal/metadata"
	"media-gallery/internal/metrics"
	"media-gallery/internal/progress"
	"media-gallery/internal/startup"
	"media-gallery/internal/workers"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

// errFailed is returned when at least one gallery or album failed. The
// failures themselves have already been logged.
var errFailed = errors.New("generation failed")

func main() {
	if err := loadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newApp().Run(os.Args); err != nil {
		if !errors.Is(err, errFailed) {
			logging.Error("%v", err)
		}
		logging.Debug("%s", tracerr.Sprint(err))
		os.Exit(1)
	}
}

// loadEnv reads LOG_LEVEL and friends from path into the environment.
// Variables already set win; a missing file is not an error.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "generate-album",
		Usage:                  "Generate static photo and video galleries",
		ArgsUsage:              "[GALLERY_DIRECTORY ...]",
		Version:                startup.GetBuildInfo().String(),
		UseShortOptionHandling: true,
		HideHelpCommand:        true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Log every setting and per-file decision.",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log warnings and errors, and hide the progress line.",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Regenerate every output, even when it is up to date.",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   1,
				Usage:   "Number of albums generated at once, 0 for one per CPU.",
				EnvVars: []string{workers.EnvWorkers},
			},
			&cli.BoolFlag{
				Name:  "exiftool",
				Value: true,
				Usage: "Use exiftool, when installed, for IPTC captions and GPS removal.",
			},
			&cli.BoolFlag{
				Name:  "vips",
				Usage: "Resize JPEG images with libvips.",
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write run metrics to this file in the Prometheus text format.",
				EnvVars: []string{"GENERATE_ALBUM_METRICS_FILE"},
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if err := configureLogging(c.Bool("debug"), c.Bool("quiet")); err != nil {
		return tracerr.Wrap(err)
	}

	dirs := c.Args().Slice()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	memory.ConfigureFromEnv()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.InitializeMetrics()
	start := time.Now()

	tools := startup.DetectTools(ctx)
	startup.LogRunStart(startup.RunInfo{
		Directories: dirs,
		Jobs:        workers.Jobs(c.Int("jobs")),
		Force:       c.Bool("force"),
		Exiftool:    c.Bool("exiftool") && tools.ExiftoolPath != "",
		Vips:        c.Bool("vips"),
		MetricsFile: c.String("metrics-file"),
	})

	opts := gallery.Options{
		Force:      c.Bool("force"),
		Jobs:       c.Int("jobs"),
		FFmpegPath: tools.FFmpegPath,
		Progress:   progress.New(!c.Bool("quiet") && workers.Jobs(c.Int("jobs")) == 1),
	}

	if c.Bool("exiftool") && tools.ExiftoolPath != "" {
		et, err := metadata.StartExiftool()
		if err != nil {
			logging.Warn("Continuing without exiftool: %v", err)
		} else {
			defer et.Close()
			opts.Exiftool = et
		}
	}

	if c.Bool("vips") {
		if err := media.InitVips(); err != nil {
			logging.Warn("Continuing without libvips: %v", err)
		} else {
			defer media.ShutdownVips()
			opts.Vips = true
		}
	}

	summary, err := generate(ctx, gallery.New(opts), dirs)
	summary.Duration = time.Since(start)
	startup.LogRunComplete(summary)

	if path := c.String("metrics-file"); path != "" {
		if mErr := metrics.WriteTextfile(path); mErr != nil {
			logging.Error("%v", mErr)
			if err == nil {
				err = errFailed
			}
		}
	}
	return err
}

// generate runs every gallery directory in turn. Failures are logged and
// the remaining galleries still run, unless ctx is cancelled.
func generate(ctx context.Context, gen *gallery.Generator, dirs []string) (startup.RunSummary, error) {
	var summary startup.RunSummary
	failed := false

	for _, dir := range dirs {
		if err := checkDir(dir); err != nil {
			logging.Error("%v", err)
			failed = true
			continue
		}

		result, err := gen.Generate(ctx, dir)
		if !result.Skipped {
			summary.Galleries++
		}
		summary.Albums += len(result.Albums)
		summary.Failed += len(result.Failed())

		if err != nil {
			failed = true
			if len(result.Failed()) == 0 {
				logging.Error("Unable to generate gallery %s: %v", dir, err)
			}
			logging.Debug("%s", tracerr.Sprint(tracerr.Wrap(err)))
		}
		if ctx.Err() != nil {
			logging.Warn("Interrupted, remaining galleries skipped")
			break
		}
	}

	if failed {
		return summary, errFailed
	}
	return summary, nil
}

func configureLogging(debug, quiet bool) error {
	switch {
	case debug && quiet:
		return errors.New("--debug and --quiet cannot be combined")
	case debug:
		logging.SetLevel(logging.LevelDebug)
	case quiet:
		logging.SetLevel(logging.LevelWarn)
	}
	return nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("gallery directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("gallery directory %s is not a directory", dir)
	}
	return nil
}
