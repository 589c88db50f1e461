// Package dedupe finds visually similar images in a directory.
package dedupe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
)

const (
	// DefaultHashSize is the side of the hash grid (64-bit hashes).
	DefaultHashSize = 8

	// DefaultThreshold is the largest Hamming distance reported as similar.
	DefaultThreshold = 5
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile reports whether name has an image extension the finder scans.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

type hashed struct {
	path string
	hashes
}

// Stage finds duplicate images.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewStage creates a new dedupe stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("dedupe"),
	}
}

// Execute hashes every image in input.Dir and reports each pair whose
// smallest distance across the three hashes is within input.Threshold.
// Files that cannot be read or decoded are skipped with a warning.
func (s *Stage) Execute(ctx context.Context, input pipeline.DedupeInput) (pipeline.DedupeResult, error) {
	result := pipeline.DedupeResult{}

	if input.Dir == "" {
		return result, &pipeline.InputError{Err: errors.New("directory is required")}
	}
	if input.Threshold < 0 {
		return result, &pipeline.InputError{Err: fmt.Errorf("threshold must not be negative, got %d", input.Threshold)}
	}
	size := input.HashSize
	if size == 0 {
		size = DefaultHashSize
	}
	if !validHashSize(size) {
		return result, &pipeline.InputError{Err: fmt.Errorf("hash size must be a power of two of at least 8, got %d", size)}
	}

	exists, err := s.fs.Exists(input.Dir)
	if err != nil {
		return result, &pipeline.InputError{Path: input.Dir, Err: err}
	}
	if !exists {
		return result, &pipeline.InputError{Path: input.Dir, Err: pipeline.ErrNotFound}
	}

	names, err := s.fs.ReadDir(input.Dir)
	if err != nil {
		return result, &pipeline.InputError{Path: input.Dir, Err: err}
	}

	var images []hashed
	for _, name := range names {
		if !IsImageFile(name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		path := filepath.Join(input.Dir, name)
		result.Scanned++

		data, err := s.fs.ReadFile(path)
		if err != nil {
			s.logger.Warn("Skipping %s: %v", path, err)
			result.Skipped++
			continue
		}
		img, err := s.renderer.DecodeImage(data, ports.FormatAuto)
		if err != nil {
			s.logger.Warn("Skipping %s: %v", path, err)
			result.Skipped++
			continue
		}

		h, err := computeHashes(img, size)
		if err != nil {
			s.logger.Warn("Skipping %s: %v", path, err)
			result.Skipped++
			continue
		}
		images = append(images, hashed{path: path, hashes: h})
	}

	for i := range images {
		for j := i + 1; j < len(images); j++ {
			d, err := images[i].minDistance(images[j].hashes)
			if err != nil {
				return result, fmt.Errorf("compare %s and %s: %w", images[i].path, images[j].path, err)
			}
			if d <= input.Threshold {
				result.Pairs = append(result.Pairs, pipeline.DuplicatePair{
					First:    images[i].path,
					Second:   images[j].path,
					Distance: d,
				})
			}
		}
	}

	s.logger.Info("Scanned %d images, found %d similar pairs", result.Scanned, len(result.Pairs))
	return result, nil
}
