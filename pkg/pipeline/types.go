package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/user/flashframes/pkg/ports"
)

// =============================================================================
// Crop Rectangle
// =============================================================================

// Rect is a crop rectangle in pixel coordinates, expressed as edges.
// Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// DefaultRect is applied when no rectangle is supplied.
var DefaultRect = Rect{Left: 100, Top: 400, Right: 900, Bottom: 600}

// Width returns Right - Left.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() int { return r.Bottom - r.Top }

// String formats the rectangle as "(left, top, right, bottom)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Image converts to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// Validate checks 0 <= left < right and 0 <= top < bottom.
// It does not know the image size; see Fits.
func (r Rect) Validate() error {
	if r.Left < 0 || r.Top < 0 {
		return &InputError{Err: fmt.Errorf("rectangle %s has a negative edge", r)}
	}
	if r.Left >= r.Right || r.Top >= r.Bottom {
		return &InputError{Err: fmt.Errorf("rectangle %s is empty or inverted", r)}
	}
	return nil
}

// Fits returns a *BoundsError if the rectangle extends past bounds.
func (r Rect) Fits(bounds image.Rectangle) error {
	w, h := bounds.Dx(), bounds.Dy()
	if r.Right > w || r.Bottom > h {
		return &BoundsError{Rect: r, Width: w, Height: h}
	}
	return nil
}

// ParseRect parses four integers separated by commas or whitespace.
func ParseRect(s string) (Rect, error) {
	fields := strings.FieldsFunc(s, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t'
	})
	return rectFromFields(fields)
}

// rectFromFields builds a Rect from exactly four integer strings.
func rectFromFields(fields []string) (Rect, error) {
	if len(fields) != 4 {
		return Rect{}, &InputError{Err: fmt.Errorf("crop needs 4 integers (left top right bottom), got %d", len(fields))}
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Rect{}, &InputError{Err: fmt.Errorf("crop value %q is not an integer", f)}
		}
		v[i] = n
	}
	return Rect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput contains parameters for frame extraction.
type ExtractInput struct {
	VideoPath   string
	OutputDir   string
	IntervalSec float64 // Sampling interval (default: 1.0)
	StartSec    float64 // First sample time (default: 0)
	EndSec      float64 // Stop before this time; 0 means the video duration
	Format      ports.ImageFormat
	Quality     int // JPEG quality 1-100 (ignored for PNG)

	// AtSec, when set, extracts only the frame at that timestamp.
	AtSec *float64
}

// FrameFile is one sampled frame written to disk.
type FrameFile struct {
	Index     int
	Timestamp float64
	Width     int
	Height    int
	Path      string
}

// ExtractResult contains the probed video and the frames written.
type ExtractResult struct {
	Video  ports.VideoInfo
	Frames []FrameFile
}

// =============================================================================
// Crop Stage Types
// =============================================================================

// CropInput contains parameters for cropping one image.
type CropInput struct {
	ImagePath string
	Rect      *Rect  // nil applies DefaultRect
	OutputDir string // empty means a "cropped" directory next to the image
}

// CropResult describes the cropped image written to disk.
type CropResult struct {
	SourcePath string
	Rect       Rect
	OutputPath string
	Width      int
	Height     int

	// Image is the in-memory crop, handed to box detection when chained.
	Image image.Image
}

// =============================================================================
// Detect Stage Types
// =============================================================================

// DetectInput contains parameters for box detection.
type DetectInput struct {
	Name      string // Used for output file names (<Name>_box_NN.png)
	Image     image.Image
	OutputDir string
	MinArea   int
	MinWidth  int
	MinHeight int

	// EdgeThreshold is the Sobel magnitude at or above which a pixel is an
	// edge. Zero applies the detector default.
	EdgeThreshold int

	// BoxColor outlines boxes in the debug preview (default red).
	BoxColor color.Color
}

// Box is one detected rectangle, in coordinates of the input image.
type Box struct {
	Rect Rect
	Path string
}

// DetectResult lists detected boxes in scan order.
type DetectResult struct {
	Boxes []Box
}

// =============================================================================
// Dedupe Stage Types
// =============================================================================

// DedupeInput contains parameters for duplicate detection.
type DedupeInput struct {
	Dir       string
	HashSize  int // Side length of the hash grid (default: 8)
	Threshold int // Maximum Hamming distance considered a duplicate
}

// DuplicatePair is a pair of visually similar images.
type DuplicatePair struct {
	First    string
	Second   string
	Distance int
}

// DedupeResult contains the scanned file count and similar pairs.
type DedupeResult struct {
	Scanned int
	Skipped int
	Pairs   []DuplicatePair
}
