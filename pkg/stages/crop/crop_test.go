package crop

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/user/flashframes/pkg/adapters/ggrenderer"
	"github.com/user/flashframes/pkg/adapters/logger"
	"github.com/user/flashframes/pkg/adapters/osfilesystem"
	"github.com/user/flashframes/pkg/mocks"
	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
	"github.com/user/flashframes/pkg/testutil"
)

// seedImage encodes a w x h gradient as PNG into the mock filesystem.
func seedImage(t *testing.T, fsys *mocks.FileSystem, path string, w, h int) {
	t.Helper()
	data, err := ggrenderer.New().EncodeImage(testutil.Gradient(w, h), ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	fsys.AddFile(path, data)
}

func TestStage_Execute_WithinBounds(t *testing.T) {
	fsys := mocks.NewFileSystem()
	seedImage(t, fsys, "frames/frame.png", 1920, 1080)
	stage := NewStage(ggrenderer.New(), fsys, logger.NewNoop())

	rect := pipeline.Rect{Left: 0, Top: 450, Right: 890, Bottom: 1080}
	result, err := stage.Execute(context.Background(), pipeline.CropInput{
		ImagePath: "frames/frame.png",
		Rect:      &rect,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Width != 890 || result.Height != 630 {
		t.Errorf("expected 890x630, got %dx%d", result.Width, result.Height)
	}
	want := filepath.Join("frames", "cropped", "frame_crop.png")
	if result.OutputPath != want {
		t.Errorf("output path = %q, want %q", result.OutputPath, want)
	}

	data, ok := fsys.GetFile(want)
	if !ok {
		t.Fatal("cropped file was not written")
	}
	img, err := ggrenderer.New().DecodeImage(data, ports.FormatPNG)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 890 || b.Dy() != 630 {
		t.Errorf("written image is %dx%d", b.Dx(), b.Dy())
	}

	// Source pixel (10, 460) must land at (10, 10).
	src := testutil.Gradient(1920, 1080).At(10, 460)
	if got := img.At(10, 10); !sameColor(got, src) {
		t.Errorf("pixel mismatch: got %v, want %v", got, src)
	}
}

func TestStage_Execute_OutOfBounds(t *testing.T) {
	fsys := mocks.NewFileSystem()
	seedImage(t, fsys, "frames/frame.png", 1920, 1080)
	stage := NewStage(ggrenderer.New(), fsys, logger.NewNoop())

	rect := pipeline.Rect{Left: 0, Top: 450, Right: 890, Bottom: 1250}
	_, err := stage.Execute(context.Background(), pipeline.CropInput{
		ImagePath: "frames/frame.png",
		Rect:      &rect,
	})
	if !pipeline.IsBoundsError(err) {
		t.Fatalf("expected BoundsError, got %v", err)
	}

	var be *pipeline.BoundsError
	if errors.As(err, &be) && (be.Width != 1920 || be.Height != 1080) {
		t.Errorf("BoundsError reports %dx%d", be.Width, be.Height)
	}
	if len(fsys.GetAllFiles()) != 1 {
		t.Error("nothing should be written for an out-of-bounds rectangle")
	}
}

func TestStage_Execute_DefaultRect(t *testing.T) {
	fsys := mocks.NewFileSystem()
	seedImage(t, fsys, "a.png", 1000, 700)
	stage := NewStage(ggrenderer.New(), fsys, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.CropInput{ImagePath: "a.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rect != pipeline.DefaultRect {
		t.Errorf("expected default rect, got %s", result.Rect)
	}
	if result.Width != 800 || result.Height != 200 {
		t.Errorf("expected 800x200, got %dx%d", result.Width, result.Height)
	}
}

func TestStage_Execute_InvalidRect(t *testing.T) {
	tests := []struct {
		name string
		rect pipeline.Rect
	}{
		{"inverted horizontally", pipeline.Rect{Left: 500, Top: 0, Right: 100, Bottom: 100}},
		{"inverted vertically", pipeline.Rect{Left: 0, Top: 100, Right: 100, Bottom: 50}},
		{"empty", pipeline.Rect{Left: 10, Top: 10, Right: 10, Bottom: 20}},
		{"negative", pipeline.Rect{Left: -1, Top: 0, Right: 10, Bottom: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := mocks.NewFileSystem()
			seedImage(t, fsys, "a.png", 640, 480)
			stage := NewStage(ggrenderer.New(), fsys, logger.NewNoop())

			rect := tt.rect
			_, err := stage.Execute(context.Background(), pipeline.CropInput{ImagePath: "a.png", Rect: &rect})
			if !pipeline.IsInputError(err) {
				t.Errorf("expected InputError, got %v", err)
			}
		})
	}
}

func TestStage_Execute_MissingFile(t *testing.T) {
	stage := NewStage(ggrenderer.New(), mocks.NewFileSystem(), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.CropInput{ImagePath: "nope.png"})
	if !pipeline.IsInputError(err) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStage_Execute_UndecodableFile(t *testing.T) {
	fsys := mocks.NewFileSystem()
	fsys.AddFile("notes.png", []byte("not an image"))
	stage := NewStage(ggrenderer.New(), fsys, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.CropInput{ImagePath: "notes.png"})
	if !pipeline.IsInputError(err) {
		t.Errorf("expected InputError, got %v", err)
	}
}

func TestStage_Execute_CustomOutputDir(t *testing.T) {
	fsys := mocks.NewFileSystem()
	seedImage(t, fsys, "frames/f.png", 1000, 700)
	stage := NewStage(ggrenderer.New(), fsys, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.CropInput{
		ImagePath: "frames/f.png",
		OutputDir: "cards",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("cards", "f_crop.png"); result.OutputPath != want {
		t.Errorf("output path = %q, want %q", result.OutputPath, want)
	}
}

func TestStage_Execute_UsesRendererCrop(t *testing.T) {
	fsys := mocks.NewFileSystem()
	fsys.AddFile("a.png", []byte{0x89, 0x50})

	var got image.Rectangle
	renderer := &mocks.Renderer{
		DecodeImageFunc: func(data []byte, format ports.ImageFormat) (image.Image, error) {
			return image.NewRGBA(image.Rect(0, 0, 1920, 1080)), nil
		},
		CropImageFunc: func(img image.Image, rect image.Rectangle) image.Image {
			got = rect
			return image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		},
	}
	stage := NewStage(renderer, fsys, logger.NewNoop())

	rect := pipeline.Rect{Left: 5, Top: 6, Right: 105, Bottom: 56}
	if _, err := stage.Execute(context.Background(), pipeline.CropInput{ImagePath: "a.png", Rect: &rect}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != image.Rect(5, 6, 105, 56) {
		t.Errorf("renderer cropped %v", got)
	}
	if len(renderer.EncodeFormats) != 1 || renderer.EncodeFormats[0] != ports.FormatPNG {
		t.Errorf("expected a single PNG encode, got %v", renderer.EncodeFormats)
	}
}

func TestStage_Execute_Deterministic(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WritePNG(t, dir, "frame.png", testutil.Gradient(1280, 720))
	fsys := osfilesystem.New()
	stage := NewStage(ggrenderer.New(), fsys, logger.NewNoop())
	rect := pipeline.Rect{Left: 100, Top: 400, Right: 900, Bottom: 600}

	first, err := stage.Execute(context.Background(), pipeline.CropInput{ImagePath: src, Rect: &rect})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	a, err := fsys.ReadFile(first.OutputPath)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}

	second, err := stage.Execute(context.Background(), pipeline.CropInput{ImagePath: src, Rect: &rect})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	b, err := fsys.ReadFile(second.OutputPath)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("cropping the same image twice produced different bytes")
	}

	original, err := fsys.ReadFile(src)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	img, err := ggrenderer.New().DecodeImage(original, ports.FormatPNG)
	if err != nil {
		t.Fatalf("decode source: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1280 || b.Dy() != 720 {
		t.Error("source image was modified")
	}
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
