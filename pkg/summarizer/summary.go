// Package summarizer provides summary generation for extraction runs.
package summarizer

import "time"

// Summary contains all data collected during an extraction run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Elapsed     time.Duration

	// Source video
	Source SourceInfo

	// Extraction settings
	Settings Settings

	// Files written
	Output OutputInfo
}

// SourceInfo describes the probed input video.
type SourceInfo struct {
	Path        string
	Container   string
	Codec       string
	DurationSec float64
	FrameRate   float64
	FrameCount  int
	Width       int
	Height      int
}

// Settings contains the run configuration.
type Settings struct {
	IntervalSec float64
	StartSec    float64
	EndSec      float64 // 0 means until the end of the video
	Format      string
	Quality     int
	OutputDir   string

	CropRect string // empty when frames were not cropped
	Detect   bool
}

// OutputInfo lists what the run wrote.
type OutputInfo struct {
	Frames    []FrameEntry
	CropCount int
	BoxCount  int
}

// FrameEntry is one row of the frame table.
type FrameEntry struct {
	Index     int
	Timestamp float64
	Path      string
	CropPath  string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets the source video information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithSettings sets the run settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithFrame appends a frame row.
func (b *Builder) WithFrame(entry FrameEntry) *Builder {
	b.summary.Output.Frames = append(b.summary.Output.Frames, entry)
	if entry.CropPath != "" {
		b.summary.Output.CropCount++
	}
	return b
}

// WithBoxes sets the number of detected boxes.
func (b *Builder) WithBoxes(n int) *Builder {
	b.summary.Output.BoxCount = n
	return b
}

// WithElapsed sets the run's wall-clock time.
func (b *Builder) WithElapsed(d time.Duration) *Builder {
	b.summary.Elapsed = d
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
