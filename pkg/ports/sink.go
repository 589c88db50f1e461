package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveVideoInfoJSON saves the probed video metadata as JSON.
	SaveVideoInfoJSON(data []byte) error

	// SaveRegion saves the cropped region that box detection runs on.
	SaveRegion(name string, img image.Image) error

	// SaveEdgeMap saves the binary edge map computed by box detection.
	SaveEdgeMap(name string, img image.Image) error

	// SaveAnnotated saves an image with detected boxes outlined.
	SaveAnnotated(name string, img image.Image) error
}
