// Package ffmpeg drives the ffmpeg and ffprobe executables to probe videos
// and decode single frames.
package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH.
	ErrFFmpegNotFound = errors.New("ffmpeg: ffmpeg not found in PATH")

	// ErrFFprobeNotFound is returned when ffprobe is not found in PATH.
	ErrFFprobeNotFound = errors.New("ffmpeg: ffprobe not found in PATH")

	// ErrNoFrame is returned when ffmpeg produced no image for a timestamp.
	ErrNoFrame = errors.New("ffmpeg: no frame at timestamp")
)

var (
	customMu         sync.RWMutex
	customFFmpegPath string
)

// SetFFmpegPath overrides ffmpeg discovery. ffprobe is then looked up in the
// same directory first.
func SetFFmpegPath(path string) {
	customMu.Lock()
	defer customMu.Unlock()
	customFFmpegPath = path
}

func customPath() string {
	customMu.RLock()
	defer customMu.RUnlock()
	return customFFmpegPath
}

// FindFFmpeg searches for ffmpeg in the custom path, PATH and common locations.
func FindFFmpeg() (string, error) {
	if p := customPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, p)
	}
	if p, ok := findExecutable("ffmpeg"); ok {
		return p, nil
	}
	return "", ErrFFmpegNotFound
}

// FindFFprobe searches for ffprobe next to a custom ffmpeg, then in PATH and
// common locations.
func FindFFprobe() (string, error) {
	if p := customPath(); p != "" {
		sibling := filepath.Join(filepath.Dir(p), executableName("ffprobe"))
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	if p, ok := findExecutable("ffprobe"); ok {
		return p, nil
	}
	return "", ErrFFprobeNotFound
}

// Available reports whether both ffmpeg and ffprobe can be found.
func Available() bool {
	_, err1 := FindFFmpeg()
	_, err2 := FindFFprobe()
	return err1 == nil && err2 == nil
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func findExecutable(name string) (string, bool) {
	exe := executableName(name)
	if p, err := exec.LookPath(exe); err == nil {
		return p, true
	}

	var dirs []string
	if runtime.GOOS == "windows" {
		dirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	} else {
		dirs = []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, exe)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
