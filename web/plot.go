package web

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ezoic/perfindex/pipeline"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4.5 * vg.Inch
)

// writeHoldoutPlot draws actual vs predicted values over the holdout set as a
// PNG, with the y = x reference line.
func writeHoldoutPlot(w io.Writer, points []pipeline.Point) error {
	p := plot.New()
	p.Title.Text = "Holdout set: actual vs predicted"
	p.X.Label.Text = "Actual performance index"
	p.Y.Label.Text = "Predicted performance index"

	pts := make(plotter.XYs, len(points))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, pt := range points {
		pts[i].X = pt.Actual
		pts[i].Y = pt.Predicted
		lo = math.Min(lo, math.Min(pt.Actual, pt.Predicted))
		hi = math.Max(hi, math.Max(pt.Actual, pt.Predicted))
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("Holdout rows", scatter)

	if len(points) > 0 {
		identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
		if err != nil {
			return err
		}
		identity.Width = vg.Points(1)
		identity.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(identity)
		p.Legend.Add("y = x", identity)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
