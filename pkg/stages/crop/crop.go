// Package crop implements the box cropping stage.
package crop

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
)

// Stage cuts a fixed rectangle out of an image file and writes it as PNG.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewStage creates a new crop stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("crop"),
	}
}

// Execute crops input.ImagePath. The rectangle is never clamped: a rectangle
// past the image edges fails with *pipeline.BoundsError and nothing is written.
func (s *Stage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CropResult, error) {
	rect := pipeline.DefaultRect
	if input.Rect != nil {
		rect = *input.Rect
	}
	result := pipeline.CropResult{SourcePath: input.ImagePath, Rect: rect}

	if input.ImagePath == "" {
		return result, &pipeline.InputError{Err: errors.New("image path is required")}
	}
	if err := rect.Validate(); err != nil {
		return result, err
	}

	exists, err := s.fs.Exists(input.ImagePath)
	if err != nil {
		return result, &pipeline.InputError{Path: input.ImagePath, Err: err}
	}
	if !exists {
		return result, &pipeline.InputError{Path: input.ImagePath, Err: pipeline.ErrNotFound}
	}

	data, err := s.fs.ReadFile(input.ImagePath)
	if err != nil {
		return result, &pipeline.InputError{Path: input.ImagePath, Err: err}
	}
	img, err := s.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return result, &pipeline.InputError{Path: input.ImagePath, Err: fmt.Errorf("decode image: %w", err)}
	}

	bounds := img.Bounds()
	if err := rect.Fits(bounds); err != nil {
		return result, err
	}
	s.logger.Debug("Cropping %s (%dx%d) to %s", input.ImagePath, bounds.Dx(), bounds.Dy(), rect)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	cropped := s.renderer.CropImage(img, rect.Image())
	encoded, err := s.renderer.EncodeImage(cropped, ports.FormatPNG, 0)
	if err != nil {
		return result, fmt.Errorf("encode crop: %w", err)
	}

	outDir := input.OutputDir
	if outDir == "" {
		outDir = pipeline.DefaultCropDir(input.ImagePath)
	}
	outPath := filepath.Join(outDir, pipeline.CroppedFileName(input.ImagePath))
	if filepath.Clean(outPath) == filepath.Clean(input.ImagePath) {
		return result, &pipeline.InputError{
			Path: input.ImagePath,
			Err:  errors.New("output would overwrite the source image"),
		}
	}

	if err := s.fs.MkdirAll(outDir); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}
	if err := s.fs.WriteFile(outPath, encoded); err != nil {
		return result, fmt.Errorf("write crop: %w", err)
	}

	cb := cropped.Bounds()
	result.OutputPath = outPath
	result.Width = cb.Dx()
	result.Height = cb.Dy()
	result.Image = cropped

	s.logger.Info("Cropped %s -> %s (%dx%d)", input.ImagePath, outPath, result.Width, result.Height)
	return result, nil
}
