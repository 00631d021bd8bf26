// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// createVLine creates a vertical line at a particular x value, from 0
// to maxy, for a graph
func createVLine(x float64, maxy float64, c drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{x, x},
		YValues: []float64{0, maxy},
		Style: chart.Style{
			StrokeColor:     c,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}

// HistogramGraph creates a graph of the number of pixels at each gray
// level of an image, marking the threshold used to binarize it
func HistogramGraph(hist [256]int, threshold uint8, title string, w io.Writer) error {
	var xvalues, yvalues []float64
	var maxy float64
	for i, n := range hist {
		xvalues = append(xvalues, float64(i))
		yvalues = append(yvalues, float64(n))
		if float64(n) > maxy {
			maxy = float64(n)
		}
	}
	if maxy == 0 {
		return errors.New("Empty histogram")
	}

	mainSeries := chart.ContinuousSeries{
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorAlternateBlue,
		},
		XValues: xvalues,
		YValues: yvalues,
	}

	t := float64(threshold)
	graph := chart.Chart{
		Title:  title,
		Width:  1920,
		Height: 1080,
		XAxis: chart.XAxis{
			Name: "Gray level",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: 255.0,
			},
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: maxy,
			},
		},
		Series: []chart.Series{
			mainSeries,
			createVLine(t, maxy, chart.ColorRed),
			chart.AnnotationSeries{
				Annotations: []chart.Value2{
					{Label: fmt.Sprintf("Threshold %d", threshold), XValue: t, YValue: maxy},
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
