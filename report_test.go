// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestReport(t *testing.T) {
	orig := ridges(image.Rect(0, 0, 48, 32))
	res, err := Thin(orig)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	res.Warnings = append(res.Warnings, errors.New("something odd"))

	var r Report
	err = r.AddResult("early", orig, res)
	if err == nil {
		t.Fatalf("Expected an error adding to a report which isn't set up")
	}

	err = r.Setup()
	if err != nil {
		t.Fatalf("Could not set up report: %v", err)
	}
	for _, title := range []string{"first", "second"} {
		err = r.AddResult(title, orig, res)
		if err != nil {
			t.Fatalf("Could not add %s result: %v", title, err)
		}
	}
	err = r.AddResult("incomplete", orig, Result{})
	if err == nil {
		t.Errorf("Expected an error adding a result with no images")
	}

	var buf bytes.Buffer
	err = r.Write(&buf)
	if err != nil {
		t.Fatalf("Could not write report: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("Report doesn't look like a PDF")
	}
}

func TestReportSave(t *testing.T) {
	orig := ridges(image.Rect(0, 0, 24, 24))
	res, err := Thin(orig)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var r Report
	err = r.Setup()
	if err != nil {
		t.Fatalf("Could not set up report: %v", err)
	}
	err = r.AddResult("saved", orig, res)
	if err != nil {
		t.Fatalf("Could not add result: %v", err)
	}
	path := filepath.Join(t.TempDir(), "report.pdf")
	err = r.Save(path)
	if err != nil {
		t.Fatalf("Could not save report: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Could not read saved report: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Errorf("Saved report doesn't look like a PDF")
	}
}
