package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image codec and drawing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	// FormatAuto sniffs the format from the data.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// CropImage copies the given rectangle of img into a new image anchored at (0, 0).
	CropImage(img image.Image, rect image.Rectangle) image.Image
}

// Canvas provides drawing operations for annotated previews.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatAuto
)

// Extension returns the file extension (without dot) for the format.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	default:
		return "png"
	}
}

// ParseImageFormat parses "png", "jpg" or "jpeg".
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch s {
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	default:
		return FormatPNG, false
	}
}
