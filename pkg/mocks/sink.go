package mocks

import (
	"image"
	"sync"

	"github.com/user/flashframes/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records
// what was saved.
type DebugSink struct {
	mu sync.Mutex

	VideoInfoJSON []byte
	Regions       []string
	EdgeMaps      []string
	Annotated     []string
}

// NewDebugSink creates a new enabled mock sink.
func NewDebugSink() *DebugSink {
	return &DebugSink{}
}

func (m *DebugSink) Enabled() bool { return true }

func (m *DebugSink) SaveVideoInfoJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VideoInfoJSON = data
	return nil
}

func (m *DebugSink) SaveRegion(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Regions = append(m.Regions, name)
	return nil
}

func (m *DebugSink) SaveEdgeMap(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EdgeMaps = append(m.EdgeMaps, name)
	return nil
}

func (m *DebugSink) SaveAnnotated(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Annotated = append(m.Annotated, name)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
