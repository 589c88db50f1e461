package mocks

import (
	"context"
	"image"

	"github.com/user/flashframes/pkg/ports"
)

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	Info  ports.VideoInfo
	Err   error
	Calls int
}

func (m *VideoProber) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	m.Calls++
	if m.Err != nil {
		return ports.VideoInfo{}, m.Err
	}
	info := m.Info
	info.Path = path
	return info, nil
}

var _ ports.VideoProber = (*VideoProber)(nil)

// FrameGrabber is a mock implementation of ports.FrameGrabber.
type FrameGrabber struct {
	GrabFrameFunc func(ctx context.Context, path string, timestamp float64) (image.Image, error)

	// Width and Height size the default frame (default 64x48).
	Width  int
	Height int

	// Recorded calls for verification
	Timestamps []float64
}

func (m *FrameGrabber) GrabFrame(ctx context.Context, path string, timestamp float64) (image.Image, error) {
	m.Timestamps = append(m.Timestamps, timestamp)
	if m.GrabFrameFunc != nil {
		return m.GrabFrameFunc(ctx, path, timestamp)
	}
	w, h := m.Width, m.Height
	if w == 0 || h == 0 {
		w, h = 64, 48
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

var _ ports.FrameGrabber = (*FrameGrabber)(nil)
