// Package preproc contains image pre-processing functions used to
// prepare a fingerprint image for binarization.
package preproc

import (
	"errors"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultKernelSize is the width and height of the Gaussian kernel
// used when no other size is given.
const DefaultKernelSize = 5

// ErrInvalidInput is returned for a missing or empty image.
var ErrInvalidInput = errors.New("invalid input image")

// autosigma derives the spread of a kernel from its size, the same
// way as common image libraries do when no sigma is given.
func autosigma(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// oddsize returns a usable kernel or window size: the default if
// size is not positive, otherwise size rounded up to an odd number.
func oddsize(size, def int) int {
	if size <= 0 {
		size = def
	}
	if size%2 == 0 {
		size++
	}
	return size
}

// Kernel returns the normalised one dimensional Gaussian kernel of
// the given size. A sigma of 0 or below is derived from ksize.
func Kernel(ksize int, sigma float64) []float64 {
	ksize = oddsize(ksize, DefaultKernelSize)
	if sigma <= 0 {
		sigma = autosigma(ksize)
	}

	k := make([]float64, ksize)
	c := ksize / 2
	for i := range k {
		d := float64(i - c)
		k[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(k), k)
	return k
}

// reflect101 maps an out of range index back into [0, n) by
// mirroring around the edge pixel without repeating it.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*(n-1) - i
		}
	}
	return i
}

func clamp(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Gaussian smooths an image with a ksize×ksize Gaussian kernel to
// suppress sensor noise. The kernel is separable, so it is applied
// as a horizontal then a vertical pass. Pixels near the edges are
// filled by reflecting the image, so the result has the same bounds
// as the input and no undefined border.
func Gaussian(img *image.Gray, ksize int, sigma float64) (*image.Gray, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidInput
	}

	k := Kernel(ksize, sigma)
	c := len(k) / 2
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rows := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i, kv := range k {
				xi := reflect101(x+i-c, w)
				sum += kv * float64(img.GrayAt(b.Min.X+xi, b.Min.Y+y).Y)
			}
			rows[y*w+x] = sum
		}
	}

	new := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i, kv := range k {
				yi := reflect101(y+i-c, h)
				sum += kv * rows[yi*w+x]
			}
			new.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{clamp(sum)})
		}
	}

	return new, nil
}
