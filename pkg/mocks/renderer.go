package mocks

import (
	"image"
	"image/color"

	"github.com/user/flashframes/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	CropImageFunc    func(img image.Image, rect image.Rectangle) image.Image

	// Recorded calls for verification
	EncodeFormats []ports.ImageFormat
	EncodeQuality []int
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return &Canvas{width: width, height: height}
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.EncodeFormats = append(m.EncodeFormats, format)
	m.EncodeQuality = append(m.EncodeQuality, quality)
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0x89, 0x50, 0x4E, 0x47}, nil
}

func (m *Renderer) CropImage(img image.Image, rect image.Rectangle) image.Image {
	if m.CropImageFunc != nil {
		return m.CropImageFunc(img, rect)
	}
	return image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas.
type Canvas struct {
	width  int
	height int

	Strokes []image.Rectangle
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.Strokes = append(m.Strokes, image.Rect(x, y, x+w, y+h))
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
