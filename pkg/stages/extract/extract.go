// Package extract implements the frame extraction stage: probe a video,
// sample frames at a fixed interval and write each one as an image file.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"

	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
)

const (
	// DefaultIntervalSec is the sampling interval when none is configured.
	DefaultIntervalSec = 1.0

	// DefaultQuality is the JPEG quality for --format jpg.
	DefaultQuality = 95

	// DefaultOutputDir is where frames go when no directory is given.
	DefaultOutputDir = "frames"

	// progressEvery controls how often progress is logged at info level.
	progressEvery = 10

	// epsilon absorbs float error in (end-start)/interval so that 10/0.1
	// yields 100 samples, not 99.
	epsilon = 1e-9
)

// Stage extracts frames from a video file.
type Stage struct {
	prober   ports.VideoProber
	grabber  ports.FrameGrabber
	renderer ports.Renderer
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(
	prober ports.VideoProber,
	grabber ports.FrameGrabber,
	renderer ports.Renderer,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Stage {
	return &Stage{
		prober:   prober,
		grabber:  grabber,
		renderer: renderer,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("extract"),
	}
}

// Execute probes input.VideoPath and writes sampled frames to input.OutputDir.
//
// Frames already written stay on disk when a later frame fails; the returned
// result lists them alongside the error.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{}

	input = withDefaults(input)
	if err := validate(input); err != nil {
		return result, err
	}

	exists, err := s.fs.Exists(input.VideoPath)
	if err != nil {
		return result, &pipeline.InputError{Path: input.VideoPath, Err: err}
	}
	if !exists {
		return result, &pipeline.InputError{Path: input.VideoPath, Err: pipeline.ErrNotFound}
	}
	if dir, err := s.fs.IsDir(input.VideoPath); err != nil || dir {
		if err == nil {
			err = pipeline.ErrIsDirectory
		}
		return result, &pipeline.InputError{Path: input.VideoPath, Err: err}
	}

	info, err := s.prober.Probe(ctx, input.VideoPath)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
			return result, &pipeline.InputError{Path: input.VideoPath, Err: err}
		}
		return result, &pipeline.DecodeError{Path: input.VideoPath, Err: err}
	}
	result.Video = info
	s.logger.Info("Video: %.2f s, %.2f fps, %d frames, %dx%d (%s)",
		info.Duration, info.FrameRate, info.FrameCount, info.Width, info.Height, info.Codec)

	if s.sink.Enabled() {
		if data, err := json.MarshalIndent(info, "", "  "); err == nil {
			s.sink.SaveVideoInfoJSON(data)
		}
	}

	var timestamps []float64
	single := input.AtSec != nil
	if single {
		at := *input.AtSec
		if at < 0 || at >= info.Duration {
			return result, &pipeline.InputError{
				Path: input.VideoPath,
				Err:  fmt.Errorf("timestamp %.2fs is outside the video (0 to %.2fs)", at, info.Duration),
			}
		}
		timestamps = []float64{at}
	} else {
		timestamps = PlanTimestamps(info.Duration, input.StartSec, input.EndSec, input.IntervalSec)
	}

	if err := s.fs.MkdirAll(input.OutputDir); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}

	s.logger.Info("Extracting %d frames every %.2f s into %s", len(timestamps), input.IntervalSec, input.OutputDir)

	ext := input.Format.Extension()
	for i, ts := range timestamps {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		img, err := s.grabber.GrabFrame(ctx, input.VideoPath, ts)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			return result, &pipeline.DecodeError{
				Path: input.VideoPath,
				Err:  fmt.Errorf("frame %d at %.2fs: %w", i, ts, err),
			}
		}

		data, err := s.renderer.EncodeImage(img, input.Format, input.Quality)
		if err != nil {
			return result, fmt.Errorf("encode frame %d: %w", i, err)
		}

		name := pipeline.FrameFileName(i, ts, ext)
		if single {
			name = pipeline.SingleFrameFileName(ts, ext)
		}
		path := filepath.Join(input.OutputDir, name)
		if err := s.fs.WriteFile(path, data); err != nil {
			return result, fmt.Errorf("write frame %d: %w", i, err)
		}

		b := img.Bounds()
		result.Frames = append(result.Frames, pipeline.FrameFile{
			Index:     i,
			Timestamp: ts,
			Width:     b.Dx(),
			Height:    b.Dy(),
			Path:      path,
		})
		s.logger.Debug("Wrote %s", path)

		if n := len(result.Frames); n%progressEvery == 0 {
			s.logger.Info("Extracted %d frames...", n)
		}
	}

	s.logger.Info("Extracted %d frames to %s", len(result.Frames), input.OutputDir)
	return result, nil
}

// PlanTimestamps returns the sample times start, start+interval, ... strictly
// before end. end <= 0 or end beyond duration means the duration. The count
// is floor((end - start) / interval).
func PlanTimestamps(duration, start, end, interval float64) []float64 {
	if interval <= 0 || duration <= 0 {
		return nil
	}
	if end <= 0 || end > duration {
		end = duration
	}
	if start >= end {
		return nil
	}

	n := int(math.Floor((end-start)/interval + epsilon))
	timestamps := make([]float64, n)
	for i := range timestamps {
		timestamps[i] = start + float64(i)*interval
	}
	return timestamps
}

func withDefaults(input pipeline.ExtractInput) pipeline.ExtractInput {
	if input.IntervalSec == 0 {
		input.IntervalSec = DefaultIntervalSec
	}
	if input.Quality == 0 {
		input.Quality = DefaultQuality
	}
	if input.OutputDir == "" {
		input.OutputDir = DefaultOutputDir
	}
	if input.Format == ports.FormatAuto {
		input.Format = ports.FormatPNG
	}
	return input
}

func validate(input pipeline.ExtractInput) error {
	switch {
	case input.VideoPath == "":
		return &pipeline.InputError{Err: errors.New("video path is required")}
	case input.IntervalSec < 0:
		return &pipeline.InputError{Err: fmt.Errorf("interval must be positive, got %v", input.IntervalSec)}
	case input.StartSec < 0:
		return &pipeline.InputError{Err: fmt.Errorf("start must not be negative, got %v", input.StartSec)}
	case input.EndSec < 0:
		return &pipeline.InputError{Err: fmt.Errorf("end must not be negative, got %v", input.EndSec)}
	case input.EndSec > 0 && input.EndSec <= input.StartSec:
		return &pipeline.InputError{Err: fmt.Errorf("end %.2fs must be after start %.2fs", input.EndSec, input.StartSec)}
	case input.Quality < 1 || input.Quality > 100:
		return &pipeline.InputError{Err: fmt.Errorf("quality must be 1-100, got %d", input.Quality)}
	}
	return nil
}
