package summarizer

import (
	"github.com/user/flashframes/pkg/orchestrator"
)

// FromRun builds a Summary from an orchestrator run.
func FromRun(result orchestrator.RunResult) *Summary {
	cfg := result.Config
	v := result.Video

	settings := Settings{
		IntervalSec: cfg.IntervalSec,
		StartSec:    cfg.StartSec,
		EndSec:      cfg.EndSec,
		Format:      cfg.Format.Extension(),
		Quality:     cfg.Quality,
		OutputDir:   cfg.OutputDir,
		Detect:      cfg.CropFrames && cfg.Detect,
	}
	if cfg.CropFrames && len(result.Crops) > 0 {
		settings.CropRect = result.Crops[0].Rect.String()
	}

	b := NewBuilder().
		WithSource(SourceInfo{
			Path:        v.Path,
			Container:   v.Container,
			Codec:       v.Codec,
			DurationSec: v.Duration,
			FrameRate:   v.FrameRate,
			FrameCount:  v.FrameCount,
			Width:       v.Width,
			Height:      v.Height,
		}).
		WithSettings(settings).
		WithBoxes(len(result.Boxes)).
		WithElapsed(result.Elapsed)

	crops := make(map[string]string, len(result.Crops))
	for _, c := range result.Crops {
		crops[c.SourcePath] = c.OutputPath
	}
	for _, f := range result.Frames {
		b.WithFrame(FrameEntry{
			Index:     f.Index,
			Timestamp: f.Timestamp,
			Path:      f.Path,
			CropPath:  crops[f.Path],
		})
	}

	return b.Build()
}
