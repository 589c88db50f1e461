// Package testutil builds synthetic videos and images for tests.
package testutil

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireFFmpeg skips the test unless ffmpeg and ffprobe are installed.
func RequireFFmpeg(t *testing.T) {
	t.Helper()
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available in PATH", name)
		}
	}
}

// SyntheticVideo encodes an H.264 MP4 test pattern into dir and returns its path.
func SyntheticVideo(t *testing.T, dir string, durationSec, fps, width, height int) string {
	t.Helper()
	RequireFFmpeg(t)

	path := filepath.Join(dir, "synthetic.mp4")
	src := fmt.Sprintf("testsrc=duration=%d:size=%dx%d:rate=%d", durationSec, width, height, fps)
	cmd := exec.Command("ffmpeg",
		"-hide_banner", "-v", "error", "-y",
		"-f", "lavfi", "-i", src,
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot encode synthetic video (libx264 missing?): %v\n%s", err, out)
	}
	return path
}

// Gradient returns an RGBA image whose pixels depend on position.
func Gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes img to dir/name and returns the path.
func WritePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

// WriteJPEG encodes img at quality 95 to dir/name and returns the path.
func WriteJPEG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}
