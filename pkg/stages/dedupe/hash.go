package dedupe

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// hashes holds the average, difference and perceptual hash of one image.
type hashes struct {
	average    *goimagehash.ExtImageHash
	difference *goimagehash.ExtImageHash
	perceptual *goimagehash.ExtImageHash
}

// validHashSize reports whether size x size bits fit goimagehash: a power
// of two of at least 8, so the grid fills whole 64-bit words.
func validHashSize(size int) bool {
	return size >= 8 && size&(size-1) == 0
}

// computeHashes hashes img on a size x size grid.
func computeHashes(img image.Image, size int) (hashes, error) {
	var h hashes
	var err error
	if h.average, err = goimagehash.ExtAverageHash(img, size, size); err != nil {
		return h, fmt.Errorf("average hash: %w", err)
	}
	if h.difference, err = goimagehash.ExtDifferenceHash(img, size, size); err != nil {
		return h, fmt.Errorf("difference hash: %w", err)
	}
	if h.perceptual, err = goimagehash.ExtPerceptionHash(img, size, size); err != nil {
		return h, fmt.Errorf("perceptual hash: %w", err)
	}
	return h, nil
}

// minDistance returns the smallest Hamming distance of the three hashes.
func (h hashes) minDistance(o hashes) (int, error) {
	best := -1
	for _, pair := range [][2]*goimagehash.ExtImageHash{
		{h.average, o.average},
		{h.difference, o.difference},
		{h.perceptual, o.perceptual},
	} {
		d, err := pair[0].Distance(pair[1])
		if err != nil {
			return 0, err
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best, nil
}
