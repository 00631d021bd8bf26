// Package thin reduces the ink of a binary image to a skeleton one
// pixel wide, using the two sub-pass parallel thinning algorithm from
// Zhang and Suen's paper "A Fast Parallel Algorithm for Thinning
// Digital Patterns" (1984).
//
// Each sub-pass decides which pixels to remove by looking only at the
// image as it was before the sub-pass began, and then removes them
// all at once. This makes the result independent of the order in
// which pixels are visited, so the rows of a sub-pass can be worked
// on concurrently.
package thin

import (
	"errors"
	"image"
	"math/bits"

	"golang.org/x/sync/errgroup"
	"rescribe.xyz/ridgemap/binarize"
)

// DefaultMaxIterations is the iteration cap used when a Thinner
// doesn't set one.
const DefaultMaxIterations = 1000

// ErrDidNotConverge is returned along with the partially thinned
// image when the iteration cap is reached before a pass removes
// nothing.
var ErrDidNotConverge = errors.New("thinning did not converge")

// Bits of a neighbour mask, clockwise from north.
const (
	north = 1 << iota
	northeast
	east
	southeast
	south
	southwest
	west
	northwest
)

// removable holds, for each of the two sub-passes, whether a pixel
// with a given neighbour mask should be removed.
var removable [2][256]bool

func init() {
	for m := 0; m < 256; m++ {
		mask := uint8(m)
		n := Neighbours(mask)
		if n < 2 || n > 6 || Transitions(mask) != 1 {
			continue
		}
		removable[0][m] = !all(mask, north|east|south) && !all(mask, east|south|west)
		removable[1][m] = !all(mask, north|east|west) && !all(mask, north|south|west)
	}
}

func all(mask, set uint8) bool {
	return mask&set == set
}

// Neighbours returns the number of ink neighbours in a mask, B(p).
func Neighbours(mask uint8) int {
	return bits.OnesCount8(mask)
}

// Transitions returns the number of paper to ink transitions found
// walking clockwise once around the neighbours in a mask, A(p).
func Transitions(mask uint8) int {
	n := 0
	for i := 0; i < 8; i++ {
		next := (i + 1) % 8
		if mask&(1<<i) == 0 && mask&(1<<next) != 0 {
			n++
		}
	}
	return n
}

// Removable reports whether a pixel with the given neighbour mask is
// removed by sub-pass 1 or 2.
func Removable(mask uint8, subpass int) bool {
	return removable[subpass-1][mask]
}

// Stats describes a thinning run.
type Stats struct {
	Iterations int   // passes which removed at least one pixel
	Removed    []int // pixels removed by each of those passes
	Converged  bool
}

// Total returns the number of pixels removed over the whole run
func (s Stats) Total() int {
	total := 0
	for _, n := range s.Removed {
		total += n
	}
	return total
}

// Thinner thins binary images.
type Thinner struct {
	// MaxIterations caps the number of full passes; 0 means
	// DefaultMaxIterations.
	MaxIterations int
	// Workers is the number of goroutines evaluating each sub-pass;
	// 0 or 1 evaluates on the calling goroutine.
	Workers int
}

// Thin repeats full thinning passes over a copy of img until a pass
// removes nothing. Pixels for which binarize.IsInk is true are
// foreground; everything outside the image counts as paper. The
// returned image has the same bounds as img and contains only
// binarize.Ink and binarize.Paper.
//
// If MaxIterations passes all removed something and another pass
// would still remove more, the partially thinned image is returned
// with ErrDidNotConverge.
func (t Thinner) Thin(img *image.Gray) (*image.Gray, Stats, error) {
	maxiter := t.MaxIterations
	if maxiter <= 0 {
		maxiter = DefaultMaxIterations
	}

	g := newGrid(img)
	var s Stats
	for s.Iterations < maxiter {
		n := t.pass(g)
		if n == 0 {
			s.Converged = true
			break
		}
		s.Iterations++
		s.Removed = append(s.Removed, n)
	}
	// the last pass allowed may have been the one that finished
	if !s.Converged && g.settled() {
		s.Converged = true
	}

	out := g.image(img.Bounds())
	if !s.Converged {
		return out, s, ErrDidNotConverge
	}
	return out, s, nil
}

// ZhangSuen thins an image with the default settings.
func ZhangSuen(img *image.Gray) (*image.Gray, Stats, error) {
	return Thinner{}.Thin(img)
}

// Pass applies a single full pass (both sub-passes) to a copy of
// img, returning the result and the number of pixels removed.
func Pass(img *image.Gray) (*image.Gray, int) {
	g := newGrid(img)
	n := Thinner{}.pass(g)
	return g.image(img.Bounds()), n
}

// CountInk returns the number of foreground pixels in an image
func CountInk(img *image.Gray) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if binarize.IsInk(img.GrayAt(x, y)) {
				n++
			}
		}
	}
	return n
}

func (t Thinner) pass(g *grid) int {
	return t.subpass(g, 0) + t.subpass(g, 1)
}

// subpass marks every removable pixel against the current state of
// the grid, and only then removes them.
func (t Thinner) subpass(g *grid, sub int) int {
	rows := g.h - 2
	if t.Workers <= 1 || rows < 2 {
		g.mark(sub, 1, g.h-1)
	} else {
		// several bands per worker, so an uneven spread of ink
		// doesn't leave most workers idle
		bands := min(t.Workers*4, rows)
		size := (rows + bands - 1) / bands
		var eg errgroup.Group
		eg.SetLimit(t.Workers)
		for y0 := 1; y0 < g.h-1; y0 += size {
			y1 := min(y0+size, g.h-1)
			eg.Go(func() error {
				g.mark(sub, y0, y1)
				return nil
			})
		}
		_ = eg.Wait()
	}
	return g.sweep()
}
