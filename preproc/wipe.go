package preproc

import (
	"errors"
	"image"

	"rescribe.xyz/integral"
	"rescribe.xyz/ridgemap/binarize"
)

// DefaultWipeSize and DefaultWipeThresh are the window size and
// standard deviation used by Wipe when none are given.
const (
	DefaultWipeSize   = 15
	DefaultWipeThresh = 10.0
)

// Wipe fills the sections of a binary image which fall outside the
// fingerprint with paper white. Whether a pixel is inside is decided
// from the smoothed gray image: where the standard deviation of the
// surrounding wsize window is below thresh there are no ridges, just
// background or smudges.
func Wipe(bin *image.Gray, gray *image.Gray, wsize int, thresh float64) (*image.Gray, error) {
	if bin == nil || gray == nil || bin.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	b := bin.Bounds()
	if !b.Eq(gray.Bounds()) {
		return nil, errors.New("bin and gray images need to be the same dimensions")
	}
	wsize = oddsize(wsize, DefaultWipeSize)
	if thresh <= 0 {
		thresh = DefaultWipeThresh
	}

	// the integral images start at 0,0
	intImg, intSqImg := binarize.Integrals(gray)
	area := image.Rect(0, 0, b.Dx(), b.Dy())
	step := wsize / 2

	new := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r := image.Rect(x-step, y-step, x+step+1, y+step+1).Intersect(area)
			_, dev := integral.MeanStdDev(intImg, intSqImg, r)
			if dev < thresh {
				new.SetGray(b.Min.X+x, b.Min.Y+y, binarize.Paper)
			} else {
				new.SetGray(b.Min.X+x, b.Min.Y+y, bin.GrayAt(b.Min.X+x, b.Min.Y+y))
			}
		}
	}

	return new, nil
}
