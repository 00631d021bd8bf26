package preproc

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func uniform(r image.Rectangle, v uint8) *image.Gray {
	img := image.NewGray(r)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestKernel(t *testing.T) {
	cases := []struct {
		name  string
		ksize int
		sigma float64
		len   int
	}{
		{"default", 5, 0, 5},
		{"even", 4, 0, 5},
		{"zero", 0, 0, DefaultKernelSize},
		{"wide", 9, 2.5, 9},
		{"single", 1, 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			k := Kernel(c.ksize, c.sigma)
			if len(k) != c.len {
				t.Fatalf("Expected kernel of size %d, got %d", c.len, len(k))
			}
			if math.Abs(floats.Sum(k)-1) > 1e-9 {
				t.Errorf("Kernel doesn't sum to 1: %v", k)
			}
			for i := range k {
				if math.Abs(k[i]-k[len(k)-1-i]) > 1e-12 {
					t.Errorf("Kernel isn't symmetric: %v", k)
				}
				if i > 0 && i <= len(k)/2 && k[i] < k[i-1] {
					t.Errorf("Kernel doesn't peak in the centre: %v", k)
				}
			}
		})
	}
}

func TestAutoSigma(t *testing.T) {
	if s := autosigma(5); math.Abs(s-1.1) > 1e-9 {
		t.Errorf("Expected sigma 1.1 for a 5 pixel kernel, got %f", s)
	}
	if s := autosigma(3); math.Abs(s-0.8) > 1e-9 {
		t.Errorf("Expected sigma 0.8 for a 3 pixel kernel, got %f", s)
	}
}

func TestReflect101(t *testing.T) {
	cases := []struct {
		i, n, want int
	}{
		{-2, 5, 2},
		{-1, 5, 1},
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 3},
		{6, 5, 2},
		{-3, 2, 1},
		{3, 1, 0},
	}
	for _, c := range cases {
		if got := reflect101(c.i, c.n); got != c.want {
			t.Errorf("reflect101(%d, %d): expected %d, got %d", c.i, c.n, c.want, got)
		}
	}
}

func TestGaussian(t *testing.T) {
	t.Run("uniform", func(t *testing.T) {
		r := image.Rect(3, 2, 20, 11)
		img, err := Gaussian(uniform(r, 137), 5, 0)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !img.Bounds().Eq(r) {
			t.Fatalf("Expected bounds %v, got %v", r, img.Bounds())
		}
		for _, v := range img.Pix {
			if v != 137 {
				t.Fatalf("Expected a uniform image to be unchanged, found %d", v)
			}
		}
	})

	t.Run("spot", func(t *testing.T) {
		img := uniform(image.Rect(0, 0, 9, 9), 0)
		img.SetGray(4, 4, color.Gray{255})
		blurred, err := Gaussian(img, 5, 0)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		centre := blurred.GrayAt(4, 4).Y
		if centre == 0 || centre == 255 {
			t.Errorf("Expected the spot to be spread out, centre is %d", centre)
		}
		for _, p := range []image.Point{{3, 4}, {5, 4}, {4, 3}, {4, 5}} {
			if v := blurred.GrayAt(p.X, p.Y).Y; v == 0 || v >= centre {
				t.Errorf("Expected %v to be between 0 and the centre, got %d", p, v)
			}
		}
		if blurred.GrayAt(4, 3) != blurred.GrayAt(4, 5) || blurred.GrayAt(3, 4) != blurred.GrayAt(5, 4) {
			t.Errorf("Expected the blur to be symmetric")
		}
		if v := blurred.GrayAt(0, 0).Y; v != 0 {
			t.Errorf("Expected distant pixel to be untouched, got %d", v)
		}
	})

	t.Run("tiny", func(t *testing.T) {
		img := uniform(image.Rect(0, 0, 1, 1), 42)
		blurred, err := Gaussian(img, 5, 0)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if v := blurred.GrayAt(0, 0).Y; v != 42 {
			t.Errorf("Expected single pixel to be unchanged, got %d", v)
		}
	})
}

func TestGaussianInvalid(t *testing.T) {
	for _, img := range []*image.Gray{nil, image.NewGray(image.Rect(0, 0, 0, 5))} {
		_, err := Gaussian(img, 5, 0)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, got %v", err)
		}
	}
}
