package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/user/flashframes/pkg/ports"
)

// Formatter renders a run summary as text.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc lets a plain function render summaries.
type FormatFunc func(summary *Summary) string

func (f FormatFunc) Format(summary *Summary) string { return f(summary) }

// Writer renders a summary and stores it through a FileSystem, so the
// summary of an extract run can sit next to its frames.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{formatter: formatter, fs: fs}
}

// Write renders summary to path, creating the parent directory.
func (w *Writer) Write(path string, summary *Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create summary directory %s: %w", dir, err)
		}
	}
	if err := w.fs.WriteFile(path, []byte(w.formatter.Format(summary))); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}
