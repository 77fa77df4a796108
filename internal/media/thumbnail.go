package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os/exec"
	"time"

	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"

	"github.com/disintegration/imaging"
)

// ErrNoFFmpeg is returned when a video frame is requested without ffmpeg.
var ErrNoFFmpeg = errors.New("ffmpeg not available")

// Thumbnail fits img into width×height without enlarging it and centres it
// on a black canvas of exactly that size.
func Thumbnail(img image.Image, width, height int) *image.NRGBA {
	fitted := imaging.Fit(img, width, height, imaging.Lanczos)
	b := fitted.Bounds()
	offset := image.Pt((width-b.Dx())/2, (height-b.Dy())/2)
	return imaging.Paste(Placeholder(width, height), fitted, offset)
}

// Placeholder is the black thumbnail used for videos without a frame.
func Placeholder(width, height int) *image.NRGBA {
	return imaging.New(width, height, color.Black)
}

// extractFrame decodes the first video frame with ffmpeg. ffmpeg applies
// the container's rotation itself.
func extractFrame(ctx context.Context, ffmpegPath, filePath string) (image.Image, error) {
	if ffmpegPath == "" {
		return nil, ErrNoFFmpeg
	}

	logging.Debug("Extracting video frame: %s", filePath)

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-v", "error",
		"-i", filePath,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	metrics.ObserveTool("ffmpeg", start, err)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", filePath)
	}

	logging.Debug("FFmpeg output size: %d bytes", stdout.Len())

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}

	return img, nil
}
