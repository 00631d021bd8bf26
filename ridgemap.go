// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"rescribe.xyz/ridgemap/binarize"
	"rescribe.xyz/ridgemap/preproc"
	"rescribe.xyz/ridgemap/thin"
)

// Errors returned by Thin. Only ErrInvalidInput is fatal; the others
// are diagnostics collected in Result.Warnings.
var (
	ErrInvalidInput        = preproc.ErrInvalidInput
	ErrDegenerateHistogram = binarize.ErrDegenerateHistogram
	ErrDidNotConverge      = thin.ErrDidNotConverge
)

// Result holds the images produced by Thin, and some details of how
// they were made.
type Result struct {
	Binary    *image.Gray
	Skeleton  *image.Gray
	Histogram [256]int
	// Threshold is only set by MethodOtsu
	Threshold  uint8
	Iterations int
	Removed    int
	Warnings   []error
}

// Thin makes a ridge map from a grayscale fingerprint image, using
// DefaultOptions.
func Thin(img image.Image) (Result, error) {
	return ThinOpts(img, DefaultOptions())
}

// ThinOpts makes a ridge map from a grayscale fingerprint image. The
// image is denoised, binarized and then thinned; both the binary image
// and the final skeleton are returned. img must be a non-empty
// *image.Gray or *image.Gray16, otherwise ErrInvalidInput is returned.
func ThinOpts(img image.Image, opts Options) (Result, error) {
	var res Result

	gray, err := single(img)
	if err != nil {
		return res, err
	}
	if err = opts.Validate(); err != nil {
		return res, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	warn := func(err error) {
		logger.Printf("Warning: %v", err)
		res.Warnings = append(res.Warnings, err)
	}

	logger.Print("Denoising")
	smooth, err := preproc.Gaussian(gray, opts.KernelSize, opts.Sigma)
	if err != nil {
		return res, fmt.Errorf("Error denoising image: %w", err)
	}
	res.Histogram = binarize.Histogram(smooth)

	logger.Print("Binarising")
	switch opts.Method {
	case MethodSauvola:
		res.Binary = binarize.Sauvola(smooth, opts.SauvolaK, opts.SauvolaWindow, opts.DarkRidges)
	default:
		var t uint8
		t, err = binarize.OtsuThreshold(res.Histogram)
		if errors.Is(err, binarize.ErrDegenerateHistogram) {
			warn(err)
		}
		logger.Printf("Threshold %d", t)
		res.Threshold = t
		res.Binary = binarize.Threshold(smooth, t, opts.DarkRidges)
	}

	// the skeleton is made from the wiped image, but the binary image
	// is returned as it came from the binarizer
	toThin := res.Binary
	if opts.Wipe {
		logger.Print("Wiping outside fingerprint")
		toThin, err = preproc.Wipe(res.Binary, smooth, opts.WipeWindow, opts.WipeThreshold)
		if err != nil {
			return Result{}, fmt.Errorf("Error wiping image: %w", err)
		}
	}

	logger.Print("Thinning")
	t := thin.Thinner{MaxIterations: opts.MaxIterations, Workers: opts.Workers}
	skel, stats, err := t.Thin(toThin)
	if errors.Is(err, thin.ErrDidNotConverge) {
		warn(fmt.Errorf("%w after %d iterations", err, stats.Iterations))
	}
	res.Skeleton = skel
	res.Iterations = stats.Iterations
	res.Removed = stats.Total()
	logger.Printf("Thinned in %d iterations, removing %d pixels", res.Iterations, res.Removed)

	return res, nil
}

// single returns img as an 8 bit gray image, if it is a single
// channel image with something in it.
func single(img image.Image) (*image.Gray, error) {
	switch i := img.(type) {
	case *image.Gray:
		if i == nil || i.Bounds().Empty() {
			return nil, ErrInvalidInput
		}
		return i, nil
	case *image.Gray16:
		if i == nil || i.Bounds().Empty() {
			return nil, ErrInvalidInput
		}
		b := i.Bounds()
		gray := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				gray.SetGray(x, y, color.GrayModel.Convert(i.Gray16At(x, y)).(color.Gray))
			}
		}
		return gray, nil
	case nil:
		return nil, ErrInvalidInput
	default:
		return nil, fmt.Errorf("%w: %T is not a single channel image", ErrInvalidInput, img)
	}
}
