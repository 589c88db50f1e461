package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/user/flashframes/pkg/ports"
)

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	img := r.CreateCanvas(100, 60, color.White).ToImage()
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 60 {
		t.Errorf("expected 100x60, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_CanvasStroke(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(50, 50, color.White)

	canvas.DrawRectStroke(10, 10, 20, 20, color.RGBA{R: 255, A: 255}, 2)

	c := color.RGBAModel.Convert(canvas.ToImage().At(10, 20)).(color.RGBA)
	if c.R < 200 || c.G > 100 {
		t.Errorf("expected red outline pixel, got %+v", c)
	}
	inside := color.RGBAModel.Convert(canvas.ToImage().At(20, 20)).(color.RGBA)
	if inside.G != 255 {
		t.Errorf("expected untouched interior, got %+v", inside)
	}
}

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data, ports.FormatJPEG)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_EncodePNGDeterministic(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	img.Set(3, 4, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	a, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	b, _ := r.EncodeImage(img, ports.FormatPNG, 0)
	if !bytes.Equal(a, b) {
		t.Error("expected identical PNG bytes for identical input")
	}
}

func TestRenderer_DecodeAutoBMP(t *testing.T) {
	r := New()

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 7))); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}

	img, err := r.DecodeImage(buf.Bytes(), ports.FormatAuto)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
		t.Errorf("expected 12x7, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_DecodeGarbage(t *testing.T) {
	if _, err := New().DecodeImage([]byte("nope"), ports.FormatAuto); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestRenderer_CropImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	marker := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	src.Set(15, 12, marker)

	cropped := New().CropImage(src, image.Rect(10, 10, 30, 25))

	b := cropped.Bounds()
	if b.Min != (image.Point{}) || b.Dx() != 20 || b.Dy() != 15 {
		t.Fatalf("expected 20x15 at origin, got %v", b)
	}
	if got := cropped.At(5, 2); got != marker {
		t.Errorf("expected marker at (5,2), got %v", got)
	}

	// Mutating the source must not affect the crop.
	src.Set(15, 12, color.RGBA{})
	if got := cropped.At(5, 2); got != marker {
		t.Error("expected crop to own its pixels")
	}
}

func TestRenderer_CropImageOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 25, 25))
	marker := color.RGBA{R: 200, A: 255}
	src.Set(6, 7, marker)

	cropped := New().CropImage(src, image.Rect(0, 0, 4, 4))
	if got := cropped.At(1, 2); got != marker {
		t.Errorf("expected crop relative to image origin, got %v", got)
	}
}
