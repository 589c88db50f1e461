package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Extraction Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Source\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	row(&b, "File", s.Source.Path)
	row(&b, "Container", orDash(s.Source.Container))
	row(&b, "Codec", orDash(s.Source.Codec))
	row(&b, "Duration", fmt.Sprintf("%.2f s", s.Source.DurationSec))
	row(&b, "Frame rate", fmt.Sprintf("%.2f fps", s.Source.FrameRate))
	if s.Source.FrameCount > 0 {
		row(&b, "Frames in video", fmt.Sprintf("%d", s.Source.FrameCount))
	}
	row(&b, "Resolution", fmt.Sprintf("%dx%d", s.Source.Width, s.Source.Height))
	b.WriteString("\n")

	b.WriteString("## Settings\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	row(&b, "Interval", fmt.Sprintf("%.2f s", s.Settings.IntervalSec))
	end := "end of video"
	if s.Settings.EndSec > 0 {
		end = fmt.Sprintf("%.2f s", s.Settings.EndSec)
	}
	row(&b, "Range", fmt.Sprintf("%.2f s to %s", s.Settings.StartSec, end))
	format := s.Settings.Format
	if format == "jpg" || format == "jpeg" {
		format = fmt.Sprintf("%s (quality %d)", format, s.Settings.Quality)
	}
	row(&b, "Format", format)
	row(&b, "Output directory", s.Settings.OutputDir)
	if s.Settings.CropRect != "" {
		row(&b, "Crop rectangle", s.Settings.CropRect)
	}
	if s.Settings.Detect {
		row(&b, "Box detection", "on")
	}
	b.WriteString("\n")

	b.WriteString("## Output\n\n")
	fmt.Fprintf(&b, "- Frames: %d\n", len(s.Output.Frames))
	if s.Settings.CropRect != "" {
		fmt.Fprintf(&b, "- Crops: %d\n", s.Output.CropCount)
	}
	if s.Settings.Detect {
		fmt.Fprintf(&b, "- Boxes: %d\n", s.Output.BoxCount)
	}
	if s.Elapsed > 0 {
		fmt.Fprintf(&b, "- Elapsed: %s\n", s.Elapsed.Round(time.Millisecond))
	}

	if len(s.Output.Frames) > 0 {
		b.WriteString("\n| # | Time | File |")
		if s.Output.CropCount > 0 {
			b.WriteString(" Crop |")
		}
		b.WriteString("\n|---|------|------|")
		if s.Output.CropCount > 0 {
			b.WriteString("------|")
		}
		b.WriteString("\n")
		for _, fr := range s.Output.Frames {
			fmt.Fprintf(&b, "| %d | %.2f s | %s |", fr.Index, fr.Timestamp, fr.Path)
			if s.Output.CropCount > 0 {
				fmt.Fprintf(&b, " %s |", orDash(fr.CropPath))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func row(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", name, value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var _ Formatter = (*MarkdownFormatter)(nil)
