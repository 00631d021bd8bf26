// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeGray(t *testing.T) {
	r := image.Rect(0, 0, 7, 5)
	rgba := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := uint8(x * 30)
			rgba.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	var buf bytes.Buffer
	err := png.Encode(&buf, rgba)
	if err != nil {
		t.Fatalf("Could not encode test image: %v", err)
	}

	gray, err := DecodeGray(&buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !gray.Bounds().Eq(r) {
		t.Fatalf("Expected bounds %v, got %v", r, gray.Bounds())
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		if v := gray.GrayAt(x, 2).Y; v != uint8(x*30) {
			t.Errorf("Pixel %d: expected %d, got %d", x, x*30, v)
		}
	}

	_, err = DecodeGray(strings.NewReader("not an image"))
	if err == nil {
		t.Errorf("Expected an error decoding garbage")
	}
}

func TestToGray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	if ToGray(gray) != gray {
		t.Errorf("Expected a gray image to be returned unchanged")
	}

	rgba := image.NewRGBA(image.Rect(4, 6, 10, 9))
	converted := ToGray(rgba)
	if !converted.Bounds().Eq(image.Rect(0, 0, 6, 3)) {
		t.Errorf("Expected converted image to start at 0,0 with the same size, got %v", converted.Bounds())
	}
}

func TestWriteReadPNG(t *testing.T) {
	orig := ridges(image.Rect(0, 0, 16, 16))
	path := filepath.Join(t.TempDir(), "ridges.png")
	err := WritePNG(path, orig)
	if err != nil {
		t.Fatalf("Could not write image: %v", err)
	}
	read, err := ReadGray(path)
	if err != nil {
		t.Fatalf("Could not read image: %v", err)
	}
	if !imgsequal(orig, read) {
		t.Errorf("Image read differs from the one written")
	}

	_, err = ReadGray(filepath.Join(t.TempDir(), "notpresent.png"))
	if err == nil {
		t.Errorf("Expected an error reading a missing file")
	}
}
