package orchestrator

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/flashframes/pkg/adapters/logger"
	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
)

// mockExtractStage is a mock for the extract stage.
type mockExtractStage struct {
	result pipeline.ExtractResult
	err    error
	input  pipeline.ExtractInput
}

func (m *mockExtractStage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	m.input = input
	return m.result, m.err
}

// mockCropStage is a mock for the crop stage.
type mockCropStage struct {
	failOn string
	inputs []pipeline.CropInput
}

func (m *mockCropStage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CropResult, error) {
	m.inputs = append(m.inputs, input)
	if input.ImagePath == m.failOn {
		return pipeline.CropResult{}, &pipeline.BoundsError{Width: 10, Height: 10}
	}
	return pipeline.CropResult{
		SourcePath: input.ImagePath,
		OutputPath: "cropped/" + pipeline.CroppedFileName(input.ImagePath),
		Width:      800,
		Height:     200,
		Image:      image.NewRGBA(image.Rect(0, 0, 800, 200)),
	}, nil
}

// mockDetectStage is a mock for the detect stage.
type mockDetectStage struct {
	inputs []pipeline.DetectInput
}

func (m *mockDetectStage) Execute(ctx context.Context, input pipeline.DetectInput) (pipeline.DetectResult, error) {
	m.inputs = append(m.inputs, input)
	return pipeline.DetectResult{Boxes: []pipeline.Box{
		{Path: "cropped_boxes/" + pipeline.BoxFileName(input.Name, 1)},
	}}, nil
}

func threeFrames() pipeline.ExtractResult {
	return pipeline.ExtractResult{
		Video: ports.VideoInfo{Path: "talk.mp4", Duration: 3, Width: 1920, Height: 1080},
		Frames: []pipeline.FrameFile{
			{Index: 0, Timestamp: 0, Path: "frames/frame_000000_t0.00s.png"},
			{Index: 1, Timestamp: 1, Path: "frames/frame_000001_t1.00s.png"},
			{Index: 2, Timestamp: 2, Path: "frames/frame_000002_t2.00s.png"},
		},
	}
}

func TestOrchestrator_Run_ExtractOnly(t *testing.T) {
	extract := &mockExtractStage{result: threeFrames()}
	crop := &mockCropStage{}
	orch := New(extract, crop, &mockDetectStage{}, logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "talk.mp4"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Frames) != 3 {
		t.Errorf("expected 3 frames, got %d", len(result.Frames))
	}
	if len(crop.inputs) != 0 {
		t.Error("crop stage should not run without CropFrames")
	}
	if extract.input.IntervalSec != 1.0 || extract.input.Format != ports.FormatPNG || extract.input.Quality != 95 {
		t.Errorf("defaults not passed to extract stage: %+v", extract.input)
	}
}

func TestOrchestrator_Run_CropFrames(t *testing.T) {
	extract := &mockExtractStage{result: threeFrames()}
	crop := &mockCropStage{}
	detect := &mockDetectStage{}
	orch := New(extract, crop, detect, logger.NewNoop())

	rect := pipeline.Rect{Left: 0, Top: 450, Right: 890, Bottom: 1080}
	config := DefaultConfig()
	config.VideoPath = "talk.mp4"
	config.CropFrames = true
	config.CropRect = &rect

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(crop.inputs) != 3 {
		t.Fatalf("expected 3 crops, got %d", len(crop.inputs))
	}
	for i, in := range crop.inputs {
		if in.ImagePath != result.Frames[i].Path {
			t.Errorf("crop %d got %s, want %s", i, in.ImagePath, result.Frames[i].Path)
		}
		if in.Rect == nil || *in.Rect != rect {
			t.Errorf("crop %d did not receive the configured rectangle", i)
		}
	}
	if len(result.Crops) != 3 {
		t.Errorf("expected 3 crop results, got %d", len(result.Crops))
	}
	if result.Crops[0].Image != nil {
		t.Error("crop images should not be retained in the run result")
	}
	if len(detect.inputs) != 0 {
		t.Error("detect stage should not run without Detect")
	}
}

func TestOrchestrator_Run_CropAndDetect(t *testing.T) {
	extract := &mockExtractStage{result: threeFrames()}
	detect := &mockDetectStage{}
	orch := New(extract, &mockCropStage{}, detect, logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "talk.mp4"
	config.CropFrames = true
	config.Detect = true

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(detect.inputs) != 3 {
		t.Fatalf("expected 3 detections, got %d", len(detect.inputs))
	}
	if detect.inputs[1].Name != "frame_000001_t1.00s" {
		t.Errorf("unexpected detection name %q", detect.inputs[1].Name)
	}
	if detect.inputs[0].Image == nil {
		t.Error("detect stage should receive the cropped image")
	}
	if detect.inputs[0].MinWidth != 809 {
		t.Errorf("expected default MinWidth, got %d", detect.inputs[0].MinWidth)
	}
	if len(result.Boxes) != 3 {
		t.Errorf("expected 3 boxes, got %d", len(result.Boxes))
	}
}

func TestOrchestrator_Run_ExtractError(t *testing.T) {
	extract := &mockExtractStage{
		result: pipeline.ExtractResult{Frames: threeFrames().Frames[:1]},
		err:    &pipeline.DecodeError{Path: "talk.mp4", Err: errors.New("bad stream")},
	}
	crop := &mockCropStage{}
	orch := New(extract, crop, &mockDetectStage{}, logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "talk.mp4"
	config.CropFrames = true

	result, err := orch.Run(context.Background(), config)
	if !pipeline.IsDecodeError(err) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if len(result.Frames) != 1 {
		t.Errorf("expected partial frames to be reported, got %d", len(result.Frames))
	}
	if len(crop.inputs) != 0 {
		t.Error("crop stage should not run after an extract failure")
	}
}

func TestOrchestrator_Run_CropErrorStops(t *testing.T) {
	extract := &mockExtractStage{result: threeFrames()}
	crop := &mockCropStage{failOn: "frames/frame_000001_t1.00s.png"}
	orch := New(extract, crop, &mockDetectStage{}, logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "talk.mp4"
	config.CropFrames = true

	result, err := orch.Run(context.Background(), config)
	if !pipeline.IsBoundsError(err) {
		t.Fatalf("expected BoundsError, got %v", err)
	}
	if len(crop.inputs) != 2 {
		t.Errorf("expected cropping to stop at the failing frame, got %d calls", len(crop.inputs))
	}
	if len(result.Crops) != 1 {
		t.Errorf("expected 1 successful crop, got %d", len(result.Crops))
	}
}

func TestOrchestrator_Run_Cancelled(t *testing.T) {
	extract := &mockExtractStage{result: threeFrames()}
	crop := &mockCropStage{}
	orch := New(extract, crop, &mockDetectStage{}, logger.NewNoop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := DefaultConfig()
	config.CropFrames = true

	_, err := orch.Run(ctx, config)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(crop.inputs) != 0 {
		t.Error("no crops should run after cancellation")
	}
}

func TestOrchestrator_Crop(t *testing.T) {
	detect := &mockDetectStage{}
	orch := New(&mockExtractStage{}, &mockCropStage{}, detect, logger.NewNoop())

	crop, boxes, err := orch.Crop(context.Background(), CropConfig{
		ImagePath: "shots/quiz.png",
		Detect:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if crop.OutputPath != "cropped/quiz_crop.png" {
		t.Errorf("unexpected output path %q", crop.OutputPath)
	}
	if len(boxes) != 1 || detect.inputs[0].Name != "quiz" {
		t.Errorf("expected detection on quiz, got %v", boxes)
	}
}

func TestOrchestrator_CropDetectFailure(t *testing.T) {
	detectErr := &pipeline.InputError{Err: errors.New("negative minimum")}
	detect := pipeline.StageFunc[pipeline.DetectInput, pipeline.DetectResult](
		func(ctx context.Context, input pipeline.DetectInput) (pipeline.DetectResult, error) {
			return pipeline.DetectResult{}, detectErr
		})
	orch := New(nil, &mockCropStage{}, detect, logger.NewNoop())

	crop, boxes, err := orch.Crop(context.Background(), CropConfig{ImagePath: "quiz.png", Detect: true})
	if !errors.Is(err, detectErr) {
		t.Fatalf("expected detect error, got %v", err)
	}
	if crop.OutputPath == "" {
		t.Error("crop result should survive a detection failure")
	}
	if boxes != nil {
		t.Errorf("expected no boxes, got %v", boxes)
	}
}
