// Package detect finds large rectangular panels in an image and writes each
// one as its own PNG.
package detect

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
)

// Defaults tuned for quiz panels in 1080p screen recordings.
const (
	DefaultMinArea       = 5000
	DefaultMinWidth      = 809
	DefaultMinHeight     = 175
	DefaultEdgeThreshold = 100
	DefaultOutputDir     = "cropped_boxes"
)

var defaultBoxColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}

// Stage detects boxes.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new detect stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("detect"),
	}
}

// Execute detects boxes in input.Image and writes <Name>_box_NN.png for each
// box strictly larger than all three minimums. Box rectangles are relative
// to the image's top-left corner.
func (s *Stage) Execute(ctx context.Context, input pipeline.DetectInput) (pipeline.DetectResult, error) {
	result := pipeline.DetectResult{}

	if input.Image == nil {
		return result, &pipeline.InputError{Err: errors.New("no image to scan")}
	}
	if input.MinArea < 0 || input.MinWidth < 0 || input.MinHeight < 0 {
		return result, &pipeline.InputError{Err: errors.New("box minimums must not be negative")}
	}
	name := input.Name
	if name == "" {
		name = "image"
	}
	outDir := input.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir
	}
	threshold := input.EdgeThreshold
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}

	edges := sobelEdges(input.Image, threshold)
	rects := filterBoxes(outermost(components(edges)), input.MinArea, input.MinWidth, input.MinHeight)
	s.logger.Info("Found %d boxes in %s", len(rects), name)

	if s.sink.Enabled() {
		boxColor := input.BoxColor
		if boxColor == nil {
			boxColor = defaultBoxColor
		}
		s.saveDebug(name, input.Image, edges, rects, boxColor)
	}
	if len(rects) == 0 {
		return result, nil
	}

	if err := s.fs.MkdirAll(outDir); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}

	for i, r := range rects {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		crop := s.renderer.CropImage(input.Image, r)
		data, err := s.renderer.EncodeImage(crop, ports.FormatPNG, 0)
		if err != nil {
			return result, fmt.Errorf("encode box %d: %w", i+1, err)
		}
		path := filepath.Join(outDir, pipeline.BoxFileName(name, i+1))
		if err := s.fs.WriteFile(path, data); err != nil {
			return result, fmt.Errorf("write box %d: %w", i+1, err)
		}

		result.Boxes = append(result.Boxes, pipeline.Box{
			Rect: pipeline.Rect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y},
			Path: path,
		})
		s.logger.Debug("Box %d: %dx%d at (%d, %d) -> %s", i+1, r.Dx(), r.Dy(), r.Min.X, r.Min.Y, path)
	}

	return result, nil
}

// Boxes returns the outer bounding rectangles of edge components in img that
// are strictly larger than minArea, minWidth and minHeight, in scan order.
func Boxes(img image.Image, threshold, minArea, minWidth, minHeight int) []image.Rectangle {
	edges := sobelEdges(img, threshold)
	return filterBoxes(outermost(components(edges)), minArea, minWidth, minHeight)
}

func filterBoxes(rects []image.Rectangle, minArea, minWidth, minHeight int) []image.Rectangle {
	var boxes []image.Rectangle
	for _, r := range rects {
		w, h := r.Dx(), r.Dy()
		if w*h > minArea && w > minWidth && h > minHeight {
			boxes = append(boxes, r)
		}
	}
	return boxes
}

func (s *Stage) saveDebug(name string, img image.Image, edges *image.Gray, rects []image.Rectangle, boxColor color.Color) {
	if err := s.sink.SaveRegion(name, img); err != nil {
		s.logger.Warn("Failed to save debug output: %v", err)
	}
	if err := s.sink.SaveEdgeMap(name, edges); err != nil {
		s.logger.Warn("Failed to save debug output: %v", err)
	}

	b := img.Bounds()
	canvas := s.renderer.CreateCanvas(b.Dx(), b.Dy(), color.White)
	canvas.DrawImage(img, 0, 0)
	for _, r := range rects {
		canvas.DrawRectStroke(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), boxColor, 3)
	}
	if err := s.sink.SaveAnnotated(name, canvas.ToImage()); err != nil {
		s.logger.Warn("Failed to save debug output: %v", err)
	}
}
