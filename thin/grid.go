package thin

import (
	"image"
	"slices"

	"rescribe.xyz/ridgemap/binarize"
)

// grid is the working state of a thinning run: one byte per pixel,
// 1 for ink, with a border of paper one pixel wide all the way round
// so that neighbours can be read without bounds checks.
type grid struct {
	w, h  int
	px    []uint8
	marks []bool
}

func newGrid(img *image.Gray) *grid {
	b := img.Bounds()
	g := &grid{w: b.Dx() + 2, h: b.Dy() + 2}
	g.px = make([]uint8, g.w*g.h)
	g.marks = make([]bool, g.w*g.h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if binarize.IsInk(img.GrayAt(x, y)) {
				g.px[(y-b.Min.Y+1)*g.w+x-b.Min.X+1] = 1
			}
		}
	}
	return g
}

// image converts the grid back into a binary image with bounds b
func (g *grid) image(b image.Rectangle) *image.Gray {
	new := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g.px[(y-b.Min.Y+1)*g.w+x-b.Min.X+1] == 1 {
				new.SetGray(x, y, binarize.Ink)
			} else {
				new.SetGray(x, y, binarize.Paper)
			}
		}
	}
	return new
}

// mask returns the neighbour mask of the pixel at index i
func (g *grid) mask(i int) uint8 {
	w := g.w
	var m uint8
	if g.px[i-w] == 1 {
		m |= north
	}
	if g.px[i-w+1] == 1 {
		m |= northeast
	}
	if g.px[i+1] == 1 {
		m |= east
	}
	if g.px[i+w+1] == 1 {
		m |= southeast
	}
	if g.px[i+w] == 1 {
		m |= south
	}
	if g.px[i+w-1] == 1 {
		m |= southwest
	}
	if g.px[i-1] == 1 {
		m |= west
	}
	if g.px[i-w-1] == 1 {
		m |= northwest
	}
	return m
}

// mark flags the removable ink pixels of rows y0 to y1 (exclusive)
// for a sub-pass. It only reads px and only writes its own rows of
// marks, so disjoint row ranges can be marked concurrently.
func (g *grid) mark(sub int, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for i := y*g.w + 1; i < (y+1)*g.w-1; i++ {
			if g.px[i] == 1 && removable[sub][g.mask(i)] {
				g.marks[i] = true
			}
		}
	}
}

// sweep removes every marked pixel, clearing the marks, and returns
// how many were removed
func (g *grid) sweep() int {
	n := 0
	for i, m := range g.marks {
		if m {
			g.px[i] = 0
			g.marks[i] = false
			n++
		}
	}
	return n
}

// settled reports whether a full pass would remove nothing, leaving
// the grid unchanged
func (g *grid) settled() bool {
	for sub := 0; sub < 2; sub++ {
		g.mark(sub, 1, g.h-1)
		if slices.Contains(g.marks, true) {
			clear(g.marks)
			return false
		}
	}
	return true
}
