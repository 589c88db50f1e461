// Package main provides the CLI entry point for flashframes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/flashframes/pkg/adapters/ffmpeg"
	"github.com/user/flashframes/pkg/adapters/filesink"
	"github.com/user/flashframes/pkg/adapters/ggrenderer"
	"github.com/user/flashframes/pkg/adapters/logger"
	"github.com/user/flashframes/pkg/adapters/nullsink"
	"github.com/user/flashframes/pkg/adapters/osfilesystem"
	"github.com/user/flashframes/pkg/config"
	"github.com/user/flashframes/pkg/pipeline"
	"github.com/user/flashframes/pkg/ports"
)

var version = "dev"

// Exit codes.
const (
	exitOK     = 0
	exitOther  = 1
	exitInput  = 2
	exitDecode = 3
	exitBounds = 4
)

const (
	categoryGlobal  = "Global"
	categoryOutput  = "Output"
	categorySample  = "Sampling"
	categoryCrop    = "Cropping"
	categoryDetect  = "Box detection"
	categoryLogging = "Logging"
	categoryDebug   = "Debug"
)

func main() {
	// A .env file in the working directory may set FLASHFRAMES_* variables.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	os.Exit(run(ctx, os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.RunContext(ctx, normalizeArgs(app, args)); err != nil {
		fmt.Fprintln(stderr, l10n.F("Error: %s", err))
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case pipeline.IsInputError(err):
		return exitInput
	case pipeline.IsDecodeError(err):
		return exitDecode
	case pipeline.IsBoundsError(err):
		return exitBounds
	default:
		return exitOther
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "flashframes",
		Usage:     l10n.T("Extract video frames and crop regions for flashcards"),
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			extractCommand(),
			cropCommand(),
			dedupeCommand(),
			versionCommand(),
		},
		// Errors are reported by run; keep urfave from calling os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
		OnUsageError:   usageError,
	}
}

// usageError turns flag parsing failures into input errors.
func usageError(c *cli.Context, err error, isSubcommand bool) error {
	return &pipeline.InputError{Err: err}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			EnvVars:  []string{"FLASHFRAMES_CONFIG"},
			Usage:    l10n.T("YAML file with default settings"),
			Category: categoryGlobal,
		},
		&cli.StringFlag{
			Name:     "ffmpeg",
			Usage:    l10n.T("Path to the ffmpeg executable (ffprobe is looked up next to it)"),
			EnvVars:  []string{"FLASHFRAMES_FFMPEG"},
			Category: categoryGlobal,
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    "info",
			EnvVars:  []string{"FLASHFRAMES_LOG_LEVEL"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: categoryLogging,
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: categoryLogging,
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save intermediate images and metadata"),
			Category: categoryDebug,
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: categoryDebug,
		},
	}
}

// env holds the adapters shared by every command.
type env struct {
	cfg      config.Config
	log      ports.Logger
	fs       ports.FileSystem
	renderer ports.Renderer
	sink     ports.DebugSink
}

// setup loads configuration (defaults, then --config, then global flags)
// and builds the adapters.
func setup(c *cli.Context) (*env, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, &pipeline.InputError{Path: path, Err: err}
		}
		cfg = loaded
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}

	level, err := ports.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, &pipeline.InputError{Err: err}
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(level)
	}

	if cfg.FFmpegPath != "" {
		ffmpeg.SetFFmpegPath(cfg.FFmpegPath)
	}

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	return &env{cfg: cfg, log: log, fs: fs, renderer: renderer, sink: sink}, nil
}
