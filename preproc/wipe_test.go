package preproc

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"rescribe.xyz/ridgemap/binarize"
)

// halfprint returns an image whose left half has striped ridges and
// whose right half is blank
func halfprint(r image.Rectangle) *image.Gray {
	img := uniform(r, 200)
	mid := r.Min.X + r.Dx()/2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if (y-r.Min.Y)%2 == 1 {
			continue
		}
		for x := r.Min.X; x < mid; x++ {
			img.SetGray(x, y, color.Gray{0})
		}
	}
	return img
}

func TestWipe(t *testing.T) {
	r := image.Rect(0, 0, 40, 20)
	gray := halfprint(r)
	bin := uniform(r, binarize.Ink.Y)

	wiped, err := Wipe(bin, gray, 5, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < 18; x++ {
			if !binarize.IsInk(wiped.GrayAt(x, y)) {
				t.Fatalf("Expected %d,%d inside the print to be kept", x, y)
			}
		}
		for x := 22; x < r.Max.X; x++ {
			if wiped.GrayAt(x, y) != binarize.Paper {
				t.Fatalf("Expected %d,%d outside the print to be wiped", x, y)
			}
		}
	}

	for i := range bin.Pix {
		if bin.Pix[i] != binarize.Ink.Y {
			t.Fatalf("Wipe modified its input")
		}
	}
}

func TestWipeOffset(t *testing.T) {
	r := image.Rect(0, 0, 40, 20)
	offset := image.Rect(-13, 6, 27, 26)
	atzero, err := Wipe(uniform(r, binarize.Ink.Y), halfprint(r), 5, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	moved, err := Wipe(uniform(offset, binarize.Ink.Y), halfprint(offset), 5, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !moved.Bounds().Eq(offset) {
		t.Fatalf("Bounds changed from %v to %v", offset, moved.Bounds())
	}
	for i := range atzero.Pix {
		if atzero.Pix[i] != moved.Pix[i] {
			t.Fatalf("Result depends on image origin, differs at pixel %d", i)
		}
	}
}

func TestWipeErrors(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	_, err := Wipe(nil, uniform(r, 0), 5, 10)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	_, err = Wipe(uniform(r, 0), uniform(image.Rect(0, 0, 10, 9), 0), 5, 10)
	if err == nil {
		t.Errorf("Expected an error for mismatched images")
	}
}
