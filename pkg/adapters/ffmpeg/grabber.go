package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/flashframes/pkg/ports"
)

// Grabber decodes single frames by running ffmpeg once per timestamp and
// reading a PNG from its stdout.
type Grabber struct {
	ffmpegPath string
}

// NewGrabber locates ffmpeg and returns a Grabber.
func NewGrabber() (*Grabber, error) {
	p, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}
	return &Grabber{ffmpegPath: p}, nil
}

// GrabFrame decodes the frame shown at timestamp seconds.
func (g *Grabber) GrabFrame(ctx context.Context, path string, timestamp float64) (image.Image, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.ffmpegPath, grabArgs(path, timestamp)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffmpeg decode at %.2fs failed: %w\nstderr: %s",
			timestamp, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w %.2fs", ErrNoFrame, timestamp)
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}

// grabArgs seeks on the input side so ffmpeg jumps to the nearest keyframe
// and decodes forward to the exact timestamp.
func grabArgs(path string, timestamp float64) []string {
	return []string{
		"-hide_banner",
		"-v", "error",
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	}
}

var _ ports.FrameGrabber = (*Grabber)(nil)
