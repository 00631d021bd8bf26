package binarize

import (
	"errors"
	"image"
)

// FallbackThreshold is used when a histogram has no meaningful split,
// halfway through the range of gray levels.
const FallbackThreshold = 127

// ErrDegenerateHistogram is returned alongside FallbackThreshold when
// fewer than two gray levels are present in an image, so there is no
// split between two classes to be found.
var ErrDegenerateHistogram = errors.New("degenerate histogram, using fallback threshold")

// OtsuThreshold finds the threshold which best separates a histogram
// into two classes, by maximising the variance between them, as
// described in Otsu's paper "A Threshold Selection Method from
// Gray-Level Histograms" (1979). Levels at or below the threshold
// are in the first class. Where several thresholds are equally good
// the lowest is used.
func OtsuThreshold(hist [256]int) (uint8, error) {
	var total, sumall float64
	for i, n := range hist {
		total += float64(n)
		sumall += float64(i) * float64(n)
	}

	var best float64
	var bestt int
	found := false
	var w0, sum0 float64
	for t := 0; t < 255; t++ {
		w0 += float64(hist[t])
		sum0 += float64(t) * float64(hist[t])
		w1 := total - w0
		if w0 == 0 || w1 == 0 {
			continue
		}
		m0 := sum0 / w0
		m1 := (sumall - sum0) / w1
		between := w0 * w1 * (m0 - m1) * (m0 - m1)
		if between > best {
			best = between
			bestt = t
			found = true
		}
	}

	if !found {
		return FallbackThreshold, ErrDegenerateHistogram
	}
	return uint8(bestt), nil
}

// Otsu binarizes an image with a single global threshold found with
// OtsuThreshold, returning the binary image and the threshold used.
// A degenerate histogram is not fatal: the image is thresholded at
// FallbackThreshold and returned together with ErrDegenerateHistogram.
// As with Threshold, binarizing the result again only leaves it
// unchanged when darkInk is set.
func Otsu(img *image.Gray, darkInk bool) (*image.Gray, uint8, error) {
	t, err := OtsuThreshold(Histogram(img))
	return Threshold(img, t, darkInk), t, err
}
