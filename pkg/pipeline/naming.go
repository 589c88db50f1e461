package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FrameFileName returns frame_{index:06d}_t{timestamp:.2f}s.{ext}.
func FrameFileName(index int, timestamp float64, ext string) string {
	return fmt.Sprintf("frame_%06d_t%.2fs.%s", index, timestamp, ext)
}

// SingleFrameFileName names a frame extracted with --at.
func SingleFrameFileName(timestamp float64, ext string) string {
	return fmt.Sprintf("frame_t%.2fs.%s", timestamp, ext)
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CroppedFileName returns <stem>_crop.png for PNG sources and
// <stem>_<ext>_crop.png for anything else, so a.png and a.jpg in one
// directory do not share a crop.
func CroppedFileName(sourcePath string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(sourcePath), "."))
	if ext == "" || ext == "png" {
		return Stem(sourcePath) + "_crop.png"
	}
	return Stem(sourcePath) + "_" + ext + "_crop.png"
}

// BoxFileName returns <name>_box_{n:02d}.png, n starting at 1.
func BoxFileName(name string, n int) string {
	return fmt.Sprintf("%s_box_%02d.png", name, n)
}

// DefaultCropDir returns the "cropped" directory next to sourcePath.
func DefaultCropDir(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), "cropped")
}
