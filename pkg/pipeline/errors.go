package pipeline

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by InputError when the path does not exist.
var ErrNotFound = errors.New("file not found")

// ErrIsDirectory is wrapped by InputError when a file was expected.
var ErrIsDirectory = errors.New("is a directory")

// InputError reports a missing, unreadable or undecodable input file, or a
// malformed argument such as an inverted crop rectangle.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("input error: %v", e.Err)
	}
	return fmt.Sprintf("input error: %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// DecodeError reports a video container or codec that could not be parsed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// BoundsError reports a crop rectangle that falls outside the image.
type BoundsError struct {
	Rect   Rect
	Width  int
	Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("bounds error: rectangle %s exceeds image %dx%d", e.Rect, e.Width, e.Height)
}

// IsInputError reports whether err is or wraps an *InputError.
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsDecodeError reports whether err is or wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// IsBoundsError reports whether err is or wraps a *BoundsError.
func IsBoundsError(err error) bool {
	var target *BoundsError
	return errors.As(err, &target)
}
