package binarize

import (
	"image"
	"image/draw"

	"rescribe.xyz/integral"
	"rescribe.xyz/preproc"
)

// TODO: do more testing on fingerprint scans to see how good this
//       assumption is; it was tuned for book pages
func autowsize(bounds image.Rectangle) int {
	return max(bounds.Dx()/60, 3)
}

// atOrigin returns img moved so that its bounds start at 0,0
func atOrigin(img *image.Gray) *image.Gray {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		return img
	}
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// Integrals returns the integral image and square integral image of
// img, both starting at 0,0 whatever the bounds of img
func Integrals(img *image.Gray) (integral.Image, integral.SqImage) {
	gray := atOrigin(img)
	r := gray.Bounds()
	intImg := integral.NewImage(r)
	intSqImg := integral.NewSqImage(r)
	draw.Draw(intImg, r, gray, r.Min, draw.Src)
	draw.Draw(intSqImg, r, gray, r.Min, draw.Src)
	return *intImg, *intSqImg
}

// Sauvola binarizes an image with Sauvola's local threshold, see paper
// "Adaptive document image binarization" (2000), using precalculated
// Integral Images. It copes better than a global threshold with
// uneven finger pressure across a scan. A windowsize of 0 is set
// automatically from the image width.
func Sauvola(img *image.Gray, ksize float64, windowsize int, darkInk bool) *image.Gray {
	b := img.Bounds()
	if windowsize <= 0 {
		windowsize = autowsize(b)
	}
	if windowsize%2 == 0 {
		windowsize++
	}

	gray := atOrigin(img)
	intImg, intSqImg := Integrals(gray)
	bin := preproc.PreCalcedSauvola(intImg, intSqImg, gray, ksize, windowsize)

	new := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dark := bin.GrayAt(x, y).Y == 0
			if dark == darkInk {
				new.SetGray(b.Min.X+x, b.Min.Y+y, Ink)
			} else {
				new.SetGray(b.Min.X+x, b.Min.Y+y, Paper)
			}
		}
	}

	return new
}
