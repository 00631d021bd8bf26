// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/nickjwhite/gofpdf"
)

// Page layout in pt, for a landscape A4 page
const (
	pageW    = 842.0
	pageH    = 595.0
	margin   = 28.0
	gap      = 14.0
	titleH   = 24.0
	captionH = 60.0
)

// Report is a PDF showing, for each page, a fingerprint image beside
// its binary image and skeleton.
type Report struct {
	fpdf  *gofpdf.Fpdf
	pages int
}

// Setup creates a new PDF with appropriate settings and fonts
func (r *Report) Setup() error {
	r.fpdf = gofpdf.New("L", "pt", "A4", "")
	r.fpdf.SetFont("Helvetica", "", 12)
	r.fpdf.SetAutoPageBreak(false, 0)
	return r.fpdf.Error()
}

// panel draws one image, with a title above it, in the column
// starting at x. The image is scaled to fit in w×h.
func (r *Report) panel(name, title string, img image.Image, x, w, h float64) error {
	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	if err != nil {
		return fmt.Errorf("Could not encode %s image: %w", title, err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	r.fpdf.RegisterImageOptionsReader(name, opts, &buf)

	b := img.Bounds()
	iw := w
	ih := w * float64(b.Dy()) / float64(b.Dx())
	if ih > h {
		ih = h
		iw = h * float64(b.Dx()) / float64(b.Dy())
	}

	r.fpdf.SetXY(x, margin)
	r.fpdf.CellFormat(w, titleH, title, "", 0, "C", false, 0, "")
	r.fpdf.ImageOptions(name, x+(w-iw)/2, margin+titleH, iw, ih, false, opts, 0, "")
	return r.fpdf.Error()
}

// AddResult adds a page with the original image, and the binary
// image and skeleton that Thin made from it
func (r *Report) AddResult(title string, orig image.Image, res Result) error {
	if r.fpdf == nil {
		return errors.New("Report has not been set up")
	}
	if orig == nil || res.Binary == nil || res.Skeleton == nil {
		return errors.New("Missing image for report")
	}
	r.pages++
	r.fpdf.AddPage()

	w := (pageW - 2*margin - 2*gap) / 3
	h := pageH - 2*margin - titleH - captionH
	panels := []struct {
		kind, title string
		img         image.Image
	}{
		{"orig", "Original Image", orig},
		{"bin", "Binary Image", res.Binary},
		{"thin", "Thinned Image", res.Skeleton},
	}
	for i, p := range panels {
		name := fmt.Sprintf("page%d-%s", r.pages, p.kind)
		err := r.panel(name, p.title, p.img, margin+float64(i)*(w+gap), w, h)
		if err != nil {
			return err
		}
	}

	r.fpdf.SetXY(margin, pageH-margin-captionH)
	caption := fmt.Sprintf("%s: threshold %d, %d thinning iterations, %d pixels removed",
		title, res.Threshold, res.Iterations, res.Removed)
	r.fpdf.CellFormat(pageW-2*margin, 16, caption, "", 1, "L", false, 0, "")
	for _, warning := range res.Warnings {
		r.fpdf.SetX(margin)
		r.fpdf.CellFormat(pageW-2*margin, 16, "Warning: "+warning.Error(), "", 1, "L", false, 0, "")
	}

	return r.fpdf.Error()
}

// Write writes the PDF to w
func (r *Report) Write(w io.Writer) error {
	return r.fpdf.Output(w)
}

// Save saves the PDF to the file at path
func (r *Report) Save(path string) error {
	return r.fpdf.OutputFileAndClose(path)
}
