// Package orchestrator chains the extract, crop and detect stages.
package orchestrator

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
)

// Config contains all configuration for an extract run.
type Config struct {
	// Input
	VideoPath string
	OutputDir string

	// Sampling
	IntervalSec float64
	StartSec    float64
	EndSec      float64
	AtSec       *float64

	// Frame encoding
	Format  ports.ImageFormat
	Quality int

	// Cropping each frame
	CropFrames    bool
	CropRect      *pipeline.Rect
	CropOutputDir string

	// Box detection on each crop
	Detect          bool
	DetectOutputDir string
	MinArea         int
	MinWidth        int
	MinHeight       int
	EdgeThreshold   int
	BoxColor        color.Color
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputDir:       "frames",
		IntervalSec:     1.0,
		Format:          ports.FormatPNG,
		Quality:         95,
		DetectOutputDir: "cropped_boxes",
		MinArea:         5000,
		MinWidth:        809,
		MinHeight:       175,
	}
}

// CropConfig contains configuration for cropping a single image.
type CropConfig struct {
	ImagePath string
	Rect      *pipeline.Rect
	OutputDir string

	Detect          bool
	DetectOutputDir string
	MinArea         int
	MinWidth        int
	MinHeight       int
	EdgeThreshold   int
	BoxColor        color.Color
}

// Orchestrator coordinates the execution of the pipeline stages.
type Orchestrator struct {
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	cropStage    pipeline.Stage[pipeline.CropInput, pipeline.CropResult]
	detectStage  pipeline.Stage[pipeline.DetectInput, pipeline.DetectResult]
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	cropStage pipeline.Stage[pipeline.CropInput, pipeline.CropResult],
	detectStage pipeline.Stage[pipeline.DetectInput, pipeline.DetectResult],
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractStage: extractStage,
		cropStage:    cropStage,
		detectStage:  detectStage,
		logger:       logger,
	}
}

// Run extracts frames and, when configured, crops each written frame in
// order. The first failure stops the run; the result keeps what was written.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	started := time.Now()
	result := RunResult{Config: config}

	o.logger.Info("Extracting frames from %s", config.VideoPath)
	extracted, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{
		VideoPath:   config.VideoPath,
		OutputDir:   config.OutputDir,
		IntervalSec: config.IntervalSec,
		StartSec:    config.StartSec,
		EndSec:      config.EndSec,
		Format:      config.Format,
		Quality:     config.Quality,
		AtSec:       config.AtSec,
	})
	result.Video = extracted.Video
	result.Frames = extracted.Frames
	if err != nil {
		result.Elapsed = time.Since(started)
		return result, fmt.Errorf("extract stage: %w", err)
	}

	if config.CropFrames {
		o.logger.Info("Cropping %d frames to %s", len(extracted.Frames), rectLabel(config.CropRect))
		for _, frame := range extracted.Frames {
			crop, boxes, err := o.cropOne(ctx, CropConfig{
				ImagePath:       frame.Path,
				Rect:            config.CropRect,
				OutputDir:       config.CropOutputDir,
				Detect:          config.Detect,
				DetectOutputDir: config.DetectOutputDir,
				MinArea:         config.MinArea,
				MinWidth:        config.MinWidth,
				MinHeight:       config.MinHeight,
				EdgeThreshold:   config.EdgeThreshold,
				BoxColor:        config.BoxColor,
			})
			if err != nil {
				result.Elapsed = time.Since(started)
				return result, err
			}
			crop.Image = nil
			result.Crops = append(result.Crops, crop)
			result.Boxes = append(result.Boxes, boxes...)
		}
	}

	result.Elapsed = time.Since(started)
	o.logger.Info("Pipeline completed: %d frames, %d crops, %d boxes in %s",
		len(result.Frames), len(result.Crops), len(result.Boxes), result.Elapsed.Round(time.Millisecond))
	return result, nil
}

// Crop crops a single image and optionally runs box detection on the crop.
func (o *Orchestrator) Crop(ctx context.Context, config CropConfig) (pipeline.CropResult, []pipeline.Box, error) {
	return o.cropOne(ctx, config)
}

func (o *Orchestrator) cropOne(ctx context.Context, config CropConfig) (pipeline.CropResult, []pipeline.Box, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.CropResult{}, nil, err
	}

	crop, err := o.cropStage.Execute(ctx, pipeline.CropInput{
		ImagePath: config.ImagePath,
		Rect:      config.Rect,
		OutputDir: config.OutputDir,
	})
	if err != nil {
		return crop, nil, fmt.Errorf("crop stage: %w", err)
	}

	if !config.Detect || o.detectStage == nil {
		return crop, nil, nil
	}

	detected, err := o.detectStage.Execute(ctx, pipeline.DetectInput{
		Name:          pipeline.Stem(config.ImagePath),
		Image:         crop.Image,
		OutputDir:     config.DetectOutputDir,
		MinArea:       config.MinArea,
		MinWidth:      config.MinWidth,
		MinHeight:     config.MinHeight,
		EdgeThreshold: config.EdgeThreshold,
		BoxColor:      config.BoxColor,
	})
	if err != nil {
		return crop, nil, fmt.Errorf("detect stage: %w", err)
	}
	return crop, detected.Boxes, nil
}

func rectLabel(r *pipeline.Rect) string {
	if r == nil {
		return pipeline.DefaultRect.String()
	}
	return r.String()
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	Config Config

	Video  ports.VideoInfo
	Frames []pipeline.FrameFile
	Crops  []pipeline.CropResult
	Boxes  []pipeline.Box

	Elapsed time.Duration
}
