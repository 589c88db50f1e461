package ports

import (
	"context"
	"image"
)

// VideoInfo describes a video container as read from its metadata.
type VideoInfo struct {
	Path       string
	Container  string  // e.g. "mp4", "mov", "matroska,webm"
	Codec      string  // e.g. "h264", "av1"
	Duration   float64 // Duration in seconds
	FrameRate  float64 // Frames per second (0 if unknown)
	FrameCount int     // Number of video samples (0 if unknown)
	Width      int
	Height     int
}

// VideoProber reads container metadata without decoding frames.
type VideoProber interface {
	// Probe returns metadata for the video at path.
	Probe(ctx context.Context, path string) (VideoInfo, error)
}

// FrameGrabber decodes single frames out of a video file.
type FrameGrabber interface {
	// GrabFrame decodes the frame presented at the given timestamp (seconds).
	GrabFrame(ctx context.Context, path string, timestamp float64) (image.Image, error)
}
