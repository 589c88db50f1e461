package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/flashframes/pkg/adapters/ffmpeg"
	"github.com/user/flashframes/pkg/adapters/smartprobe"
	"github.com/user/flashframes/pkg/config"
	"github.com/user/flashframes/pkg/orchestrator"
	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/stages/crop"
	"github.com/user/flashframes/pkg/stages/dedupe"
	"github.com/user/flashframes/pkg/stages/detect"
	"github.com/user/flashframes/pkg/stages/extract"
	"github.com/user/flashframes/pkg/summarizer"
)

func cropFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "crop",
			Aliases:  []string{"c"},
			Usage:    l10n.T("Crop rectangle as LEFT TOP RIGHT BOTTOM (four values, or comma-separated)"),
			Category: categoryCrop,
		},
		&cli.BoolFlag{
			Name:     "detect",
			Usage:    l10n.T("Detect boxes inside each crop and save them separately"),
			Category: categoryDetect,
		},
		&cli.StringFlag{
			Name:     "boxes-dir",
			Usage:    l10n.T("Output directory for detected boxes"),
			Category: categoryDetect,
		},
		&cli.IntFlag{
			Name:     "min-area",
			Usage:    l10n.T("Minimum box area in pixels"),
			Category: categoryDetect,
		},
		&cli.IntFlag{
			Name:     "min-width",
			Usage:    l10n.T("Minimum box width in pixels"),
			Category: categoryDetect,
		},
		&cli.IntFlag{
			Name:     "min-height",
			Usage:    l10n.T("Minimum box height in pixels"),
			Category: categoryDetect,
		},
	}
}

func extractCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "output-dir",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Directory for extracted frames (default: frames)"),
			Category: categoryOutput,
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Usage:    l10n.T("Frame image format (png, jpg)"),
			Category: categoryOutput,
		},
		&cli.IntFlag{
			Name:     "quality",
			Aliases:  []string{"q"},
			Usage:    l10n.T("JPEG quality 1-100 (default: 95)"),
			Category: categoryOutput,
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write a Markdown summary of the run to this file"),
			Category: categoryOutput,
		},
		&cli.Float64Flag{
			Name:     "interval",
			Aliases:  []string{"i"},
			Usage:    l10n.T("Seconds between frames (default: 1.0)"),
			Category: categorySample,
		},
		&cli.Float64Flag{
			Name:     "start",
			Usage:    l10n.T("First frame time in seconds"),
			Category: categorySample,
		},
		&cli.Float64Flag{
			Name:     "end",
			Usage:    l10n.T("Stop before this time in seconds (default: end of video)"),
			Category: categorySample,
		},
		&cli.Float64Flag{
			Name:     "at",
			Usage:    l10n.T("Extract only the frame at this time in seconds"),
			Category: categorySample,
		},
		&cli.BoolFlag{
			Name:     "crop-frames",
			Usage:    l10n.T("Crop every extracted frame"),
			Category: categoryCrop,
		},
		&cli.StringFlag{
			Name:     "crop-dir",
			Usage:    l10n.T("Output directory for cropped frames"),
			Category: categoryCrop,
		},
	}

	return &cli.Command{
		Name:         "extract",
		Usage:        l10n.T("Extract frames from a video at a fixed interval"),
		ArgsUsage:    "<video>",
		Flags:        append(flags, cropFlags()...),
		OnUsageError: usageError,
		Action:       runExtract,
	}
}

func runExtract(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	cfg := e.cfg

	rect, err := cropArg(c)
	if err != nil {
		return err
	}
	args := c.Args().Slice()
	if len(args) != 1 {
		return &pipeline.InputError{Err: errors.New(l10n.T("extract needs exactly one video path"))}
	}

	if c.IsSet("output-dir") {
		cfg.Extract.OutputDir = c.String("output-dir")
	}
	if c.IsSet("interval") {
		cfg.Extract.Interval = c.Float64("interval")
	}
	if c.IsSet("start") {
		cfg.Extract.Start = c.Float64("start")
	}
	if c.IsSet("end") {
		cfg.Extract.End = c.Float64("end")
	}
	if c.IsSet("format") {
		cfg.Extract.Format = strings.ToLower(c.String("format"))
	}
	if c.IsSet("quality") {
		cfg.Extract.Quality = c.Int("quality")
	}
	if c.IsSet("crop-frames") {
		cfg.Extract.CropFrames = c.Bool("crop-frames")
	}
	if c.IsSet("crop-dir") {
		cfg.Crop.OutputDir = c.String("crop-dir")
	}
	applyDetectFlags(c, &cfg.Detect)
	if rect != nil {
		cfg.Crop.Rect = []int{rect.Left, rect.Top, rect.Right, rect.Bottom}
		cfg.Extract.CropFrames = true
	}
	if err := cfg.Validate(); err != nil {
		return &pipeline.InputError{Err: err}
	}

	runConfig := cfg.ToOrchestratorConfig(args[0])
	if c.IsSet("at") {
		at := c.Float64("at")
		runConfig.AtSec = &at
	}

	// Report a missing video as an input error even when ffmpeg is absent.
	if exists, _ := e.fs.Exists(args[0]); !exists {
		return &pipeline.InputError{Path: args[0], Err: pipeline.ErrNotFound}
	}
	if dir, _ := e.fs.IsDir(args[0]); dir {
		return &pipeline.InputError{Path: args[0], Err: pipeline.ErrIsDirectory}
	}
	grabber, err := ffmpeg.NewGrabber()
	if err != nil {
		return err
	}
	prober := smartprobe.New(e.log)

	orch := orchestrator.New(
		extract.NewStage(prober, grabber, e.renderer, e.fs, e.sink, e.log),
		crop.NewStage(e.renderer, e.fs, e.log),
		detect.NewStage(e.renderer, e.fs, e.sink, e.log),
		e.log,
	)

	result, err := orch.Run(c.Context, runConfig)
	if path := c.String("summary"); path != "" && len(result.Frames) > 0 {
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), e.fs)
		if werr := w.Write(path, summarizer.FromRun(result)); werr != nil {
			e.log.Warn("Failed to write summary: %s", werr)
		} else {
			e.log.Info("Summary written to %s", path)
		}
	}
	if err != nil {
		return err
	}

	e.log.Info("Output saved to %s", runConfig.OutputDir)
	return nil
}

func cropCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "output-dir",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output directory (default: \"cropped\" next to the image)"),
			Category: categoryOutput,
		},
	}

	return &cli.Command{
		Name:         "crop",
		Usage:        l10n.T("Crop a rectangle from an image"),
		ArgsUsage:    "<image>",
		Flags:        append(flags, cropFlags()...),
		OnUsageError: usageError,
		Action:       runCrop,
	}
}

func runCrop(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	cfg := e.cfg

	rect, err := cropArg(c)
	if err != nil {
		return err
	}
	args := c.Args().Slice()
	if len(args) != 1 {
		return &pipeline.InputError{Err: errors.New(l10n.T("crop needs exactly one image path"))}
	}

	if c.IsSet("output-dir") {
		cfg.Crop.OutputDir = c.String("output-dir")
	}
	applyDetectFlags(c, &cfg.Detect)
	if rect != nil {
		cfg.Crop.Rect = []int{rect.Left, rect.Top, rect.Right, rect.Bottom}
	}
	if err := cfg.Validate(); err != nil {
		return &pipeline.InputError{Err: err}
	}

	orch := orchestrator.New(
		nil,
		crop.NewStage(e.renderer, e.fs, e.log),
		detect.NewStage(e.renderer, e.fs, e.sink, e.log),
		e.log,
	)

	result, boxes, err := orch.Crop(c.Context, cfg.ToCropConfig(args[0]))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, result.OutputPath)
	for _, b := range boxes {
		fmt.Fprintln(c.App.Writer, b.Path)
	}
	return nil
}

func dedupeCommand() *cli.Command {
	return &cli.Command{
		Name:      "dedupe",
		Usage:     l10n.T("List visually similar images in a directory"),
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Usage:   l10n.T("Largest hash distance reported as similar (default: 5)"),
			},
			&cli.IntFlag{
				Name:  "hash-size",
				Usage: l10n.T("Hash grid size, a power of two of at least 8 (default: 8)"),
			},
		},
		OnUsageError: usageError,
		Action:       runDedupe,
	}
}

func runDedupe(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	cfg := e.cfg

	if c.NArg() != 1 {
		return &pipeline.InputError{Err: errors.New(l10n.T("dedupe needs exactly one directory"))}
	}
	if c.IsSet("threshold") {
		cfg.Dedupe.Threshold = c.Int("threshold")
	}
	if c.IsSet("hash-size") {
		cfg.Dedupe.HashSize = c.Int("hash-size")
	}

	stage := dedupe.NewStage(e.renderer, e.fs, e.log)
	result, err := stage.Execute(c.Context, pipeline.DedupeInput{
		Dir:       c.Args().First(),
		HashSize:  cfg.Dedupe.HashSize,
		Threshold: cfg.Dedupe.Threshold,
	})
	if err != nil {
		return err
	}

	for _, p := range result.Pairs {
		fmt.Fprintln(c.App.Writer, l10n.F("Similar images (difference: %d):", p.Distance))
		fmt.Fprintf(c.App.Writer, "  %s\n  %s\n\n", p.First, p.Second)
	}
	return nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("flashframes version %s", version))
			return nil
		},
	}
}

// applyDetectFlags overrides detection settings with explicitly set flags.
func applyDetectFlags(c *cli.Context, d *config.DetectConfig) {
	if c.IsSet("detect") {
		d.Enabled = c.Bool("detect")
	}
	if c.IsSet("boxes-dir") {
		d.OutputDir = c.String("boxes-dir")
	}
	if c.IsSet("min-area") {
		d.MinArea = c.Int("min-area")
	}
	if c.IsSet("min-width") {
		d.MinWidth = c.Int("min-width")
	}
	if c.IsSet("min-height") {
		d.MinHeight = c.Int("min-height")
	}
}

// cropArg reads --crop as "L,T,R,B" or "L T R B". It returns nil when the
// flag is absent so the configured rectangle applies.
func cropArg(c *cli.Context) (*pipeline.Rect, error) {
	if !c.IsSet("crop") {
		return nil, nil
	}
	rect, err := pipeline.ParseRect(c.String("crop"))
	if err != nil {
		return nil, err
	}
	return &rect, nil
}
