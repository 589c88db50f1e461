// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/flashframes/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool { return false }

func (s *Sink) SaveVideoInfoJSON(data []byte) error              { return nil }
func (s *Sink) SaveRegion(name string, img image.Image) error    { return nil }
func (s *Sink) SaveEdgeMap(name string, img image.Image) error   { return nil }
func (s *Sink) SaveAnnotated(name string, img image.Image) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
