// Package report renders an optional diagnostic plot of a split list's
// weight spectrum using the same plot.New/plotter.NewLinePoints/p.Save
// shape used for other rank-vs-metric plots in this codebase, applied
// here to split rank vs. weight. A plot showing the weight spectrum
// trailing off near the list's capacity is a visible sign that raising
// the split-list capacity might recover more splits.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"splitgraph/internal/splits"
)

const (
	plotH = 4 * vg.Inch
	plotW = 6 * vg.Inch
)

var (
	lineColor  = color.RGBA{R: 37, G: 150, B: 190, A: 255}
	markerShap = draw.SquareGlyph{}
)

// WeightSpectrum writes a rank-vs-weight line plot of every split in
// list (as returned by list.Splits, already weight-descending) to
// "<prefix>.png".
func WeightSpectrum(list *splits.List, prefix string) error {
	entries := list.Splits()
	p := plot.New()
	p.X.Label.Text = "Split rank"
	p.Y.Label.Text = "Weight"
	p.X.Min = 0
	if len(entries) > 0 {
		p.X.Max = float64(len(entries) - 1)
	}

	pts := make(plotter.XYs, len(entries))
	for i, s := range entries {
		pts[i].X = float64(i)
		pts[i].Y = s.Weight
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("building weight spectrum plot: %w", err)
	}
	line.Color = lineColor
	line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	points.Color = lineColor
	points.Shape = markerShap
	points.Radius = vg.Points(4)
	p.Add(line, points)
	return p.Save(plotW, plotH, prefix+".png")
}
