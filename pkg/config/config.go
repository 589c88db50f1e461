// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/user/flashframes/pkg/orchestrator"
	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for flashframes.
type Config struct {
	Extract ExtractConfig `yaml:"extract"`
	Crop    CropConfig    `yaml:"crop"`
	Detect  DetectConfig  `yaml:"detect"`
	Dedupe  DedupeConfig  `yaml:"dedupe"`

	// Tools
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ExtractConfig holds frame sampling settings.
type ExtractConfig struct {
	OutputDir  string  `yaml:"output_dir"`
	Interval   float64 `yaml:"interval"`
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
	Format     string  `yaml:"format"`
	Quality    int     `yaml:"quality"`
	CropFrames bool    `yaml:"crop_frames"`
}

// CropConfig holds the crop rectangle as [left, top, right, bottom].
type CropConfig struct {
	Rect      []int  `yaml:"rect"`
	OutputDir string `yaml:"output_dir"`
}

// DetectConfig holds box detection thresholds.
type DetectConfig struct {
	Enabled       bool   `yaml:"enabled"`
	OutputDir     string `yaml:"output_dir"`
	MinArea       int    `yaml:"min_area"`
	MinWidth      int    `yaml:"min_width"`
	MinHeight     int    `yaml:"min_height"`
	EdgeThreshold int    `yaml:"edge_threshold"`
	BoxColor      string `yaml:"box_color"`
}

// DedupeConfig holds duplicate finder settings.
type DedupeConfig struct {
	HashSize  int `yaml:"hash_size"`
	Threshold int `yaml:"threshold"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Extract: ExtractConfig{
			OutputDir: "frames",
			Interval:  1.0,
			Format:    "png",
			Quality:   95,
		},
		Crop: CropConfig{
			Rect: []int{
				pipeline.DefaultRect.Left,
				pipeline.DefaultRect.Top,
				pipeline.DefaultRect.Right,
				pipeline.DefaultRect.Bottom,
			},
		},
		Detect: DetectConfig{
			OutputDir:     "cropped_boxes",
			MinArea:       5000,
			MinWidth:      809,
			MinHeight:     175,
			EdgeThreshold: 100,
			BoxColor:      "#ff0000",
		},
		Dedupe: DedupeConfig{
			HashSize:  8,
			Threshold: 5,
		},
		LogLevel: "info",
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys absent from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be expressed by YAML types alone.
func (c Config) Validate() error {
	if _, ok := ports.ParseImageFormat(c.Extract.Format); !ok {
		return fmt.Errorf("extract.format must be png or jpg, got %q", c.Extract.Format)
	}
	if c.Extract.Interval <= 0 {
		return fmt.Errorf("extract.interval must be positive, got %v", c.Extract.Interval)
	}
	if c.Extract.Quality < 1 || c.Extract.Quality > 100 {
		return fmt.Errorf("extract.quality must be 1-100, got %d", c.Extract.Quality)
	}
	if _, err := c.CropRect(); err != nil {
		return err
	}
	if _, err := ParseColor(c.Detect.BoxColor); err != nil {
		return err
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// CropRect returns the configured rectangle.
func (c Config) CropRect() (pipeline.Rect, error) {
	if len(c.Crop.Rect) != 4 {
		return pipeline.Rect{}, fmt.Errorf("crop.rect needs 4 integers (left, top, right, bottom), got %d", len(c.Crop.Rect))
	}
	r := pipeline.Rect{Left: c.Crop.Rect[0], Top: c.Crop.Rect[1], Right: c.Crop.Rect[2], Bottom: c.Crop.Rect[3]}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// ParseColor parses "#rrggbb" (the leading # is optional).
func ParseColor(hex string) (color.Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config for videoPath.
// Call Validate first; invalid values fall back to defaults.
func (c Config) ToOrchestratorConfig(videoPath string) orchestrator.Config {
	format, _ := ports.ParseImageFormat(c.Extract.Format)
	cfg := orchestrator.Config{
		VideoPath:   videoPath,
		OutputDir:   c.Extract.OutputDir,
		IntervalSec: c.Extract.Interval,
		StartSec:    c.Extract.Start,
		EndSec:      c.Extract.End,
		Format:      format,
		Quality:     c.Extract.Quality,

		CropFrames:    c.Extract.CropFrames,
		CropOutputDir: c.Crop.OutputDir,

		Detect:          c.Detect.Enabled,
		DetectOutputDir: c.Detect.OutputDir,
		MinArea:         c.Detect.MinArea,
		MinWidth:        c.Detect.MinWidth,
		MinHeight:       c.Detect.MinHeight,
		EdgeThreshold:   c.Detect.EdgeThreshold,
	}
	if r, err := c.CropRect(); err == nil {
		cfg.CropRect = &r
	}
	if col, err := ParseColor(c.Detect.BoxColor); err == nil {
		cfg.BoxColor = col
	}
	return cfg
}

// ToCropConfig converts Config to orchestrator.CropConfig for imagePath.
func (c Config) ToCropConfig(imagePath string) orchestrator.CropConfig {
	run := c.ToOrchestratorConfig("")
	return orchestrator.CropConfig{
		ImagePath:       imagePath,
		Rect:            run.CropRect,
		OutputDir:       c.Crop.OutputDir,
		Detect:          c.Detect.Enabled,
		DetectOutputDir: c.Detect.OutputDir,
		MinArea:         c.Detect.MinArea,
		MinWidth:        c.Detect.MinWidth,
		MinHeight:       c.Detect.MinHeight,
		EdgeThreshold:   c.Detect.EdgeThreshold,
		BoxColor:        run.BoxColor,
	}
}
