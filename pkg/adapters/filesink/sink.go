// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/flashframes/pkg/ports"
)

// Sink writes debug output under baseDir:
//
//	video.json
//	regions/<name>_region.png
//	edges/<name>_edges.png
//	annotated/<name>_boxes.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveVideoInfoJSON saves the probed video metadata.
func (s *Sink) SaveVideoInfoJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "video.json"), data)
}

// SaveRegion saves the region box detection ran on.
func (s *Sink) SaveRegion(name string, img image.Image) error {
	return s.savePNG("regions", name+"_region.png", img)
}

// SaveEdgeMap saves the binary edge map.
func (s *Sink) SaveEdgeMap(name string, img image.Image) error {
	return s.savePNG("edges", name+"_edges.png", img)
}

// SaveAnnotated saves the region with detected boxes outlined.
func (s *Sink) SaveAnnotated(name string, img image.Image) error {
	return s.savePNG("annotated", name+"_boxes.png", img)
}

func (s *Sink) savePNG(subdir, file string, img image.Image) error {
	dir := filepath.Join(s.baseDir, subdir)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", file, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, file), data)
}

var _ ports.DebugSink = (*Sink)(nil)
