// Package binarize reduces gray images to two levels, ink and paper.
//
// Ink pixels are FOREGROUND (ridges) and are black; paper pixels are
// BACKGROUND (valleys) and are white. Which class of gray levels is
// treated as ink is chosen by the darkInk argument of each method;
// ridges are normally the darker class.
package binarize

import (
	"image"
	"image/color"
)

// Ink and Paper are the only two values in a binarized image.
var (
	Ink   = color.Gray{0}
	Paper = color.Gray{255}
)

// IsInk reports whether a pixel of a binarized image is foreground.
// Anything closer to black than white counts.
func IsInk(c color.Gray) bool {
	return c.Y < 128
}

// Histogram counts the number of pixels at each gray level
func Histogram(img *image.Gray) [256]int {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}
	return hist
}

// Threshold splits an image at t: pixels at or below t form the dark
// class, the rest the light class. If darkInk is set the dark class
// becomes Ink, otherwise the light class does.
//
// Ink is always stored as black, so thresholding a binary image again
// with darkInk set leaves it unchanged, but with darkInk unset it
// swaps ink and paper.
func Threshold(img *image.Gray, t uint8, darkInk bool) *image.Gray {
	b := img.Bounds()
	new := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dark := img.GrayAt(x, y).Y <= t
			if dark == darkInk {
				new.SetGray(x, y, Ink)
			} else {
				new.SetGray(x, y, Paper)
			}
		}
	}

	return new
}
