package detect

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
)

// Sobel kernels scaled by 1/8 so a response fits in a byte around gradientBias.
var (
	sobelX = &convolution.Kernel{Width: 3, Height: 3, Matrix: []float64{
		-1.0 / 8, 0, 1.0 / 8,
		-2.0 / 8, 0, 2.0 / 8,
		-1.0 / 8, 0, 1.0 / 8,
	}}
	sobelY = &convolution.Kernel{Width: 3, Height: 3, Matrix: []float64{
		-1.0 / 8, -2.0 / 8, -1.0 / 8,
		0, 0, 0,
		1.0 / 8, 2.0 / 8, 1.0 / 8,
	}}
)

const (
	gradientBias  = 128
	gradientScale = 8
)

// sobelEdges marks pixels whose Sobel gradient magnitude on the luma of img
// reaches threshold. The result is anchored at (0, 0); border pixels are
// never edges.
func sobelEdges(img image.Image, threshold int) *image.Gray {
	gray := effect.Grayscale(rebase(img))
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	edges := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return edges
	}

	opts := &convolution.Options{Bias: gradientBias, KeepAlpha: true}
	gx := convolution.Convolve(gray, sobelX, opts)
	gy := convolution.Convolve(gray, sobelY, opts)
	limit := float64(threshold)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			dx := float64(int(gx.Pix[gx.PixOffset(x, y)])-gradientBias) * gradientScale
			dy := float64(int(gy.Pix[gy.PixOffset(x, y)])-gradientBias) * gradientScale
			if math.Hypot(dx, dy) >= limit {
				edges.Pix[y*edges.Stride+x] = 0xFF
			}
		}
	}
	return edges
}

// rebase moves img to origin (0, 0) so pixel offsets match box coordinates.
func rebase(img image.Image) image.Image {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// components returns the bounding rectangle of every 8-connected group of
// edge pixels, ordered by the raster position of each group's first pixel.
func components(edges *image.Gray) []image.Rectangle {
	w, h := edges.Rect.Dx(), edges.Rect.Dy()
	seen := make([]bool, w*h)
	var rects []image.Rectangle
	var stack []int

	for start := 0; start < w*h; start++ {
		if seen[start] || edges.Pix[(start/w)*edges.Stride+start%w] == 0 {
			continue
		}

		r := image.Rect(start%w, start/w, start%w+1, start/w+1)
		seen[start] = true
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := p%w, p/w
			r = r.Union(image.Rect(x, y, x+1, y+1))

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					n := ny*w + nx
					if seen[n] || edges.Pix[ny*edges.Stride+nx] == 0 {
						continue
					}
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		rects = append(rects, r)
	}
	return rects
}

// outermost drops rectangles that lie inside another rectangle of the set.
func outermost(rects []image.Rectangle) []image.Rectangle {
	var kept []image.Rectangle
	for i, r := range rects {
		inside := false
		for j, o := range rects {
			if i != j && r.In(o) && r != o {
				inside = true
				break
			}
		}
		if !inside {
			kept = append(kept, r)
		}
	}
	return kept
}
