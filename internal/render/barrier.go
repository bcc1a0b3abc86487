package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/advsampling/internal/landscape"
	"github.com/san-kum/advsampling/internal/sampler"
)

var (
	steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	curveBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	yellow    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	black     = color.RGBA{A: 255}
	red       = color.RGBA{R: 255, A: 255}
)

// Axis limits of the barrier figure.
const (
	BarrierXMax = 12.0
	BarrierYMax = 9.0
)

// Curve samples a surface on [0, 12.1) in steps of 0.1.
func Curve(surface sampler.Surface) plotter.XYs {
	xs := landscape.Arange(0, 12.1, 0.1)
	pts := make(plotter.XYs, len(xs))
	for i, x := range xs {
		pts[i].X = x
		pts[i].Y = surface.Evaluate(x)
	}
	return pts
}

// BarrierFrame draws one frame: the curve, the area beneath it and the
// marker resting on it.
func BarrierFrame(curve plotter.XYs, f sampler.Frame) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Normal MD simulations"
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Centers of mass separation distance (nm)"
	p.Y.Label.Text = "Free energy (kBT)"
	p.X.Min, p.X.Max = 0, BarrierXMax
	p.Y.Min, p.Y.Max = 0, BarrierYMax

	under := make(plotter.XYs, 0, len(curve)+2)
	under = append(under, curve...)
	if n := len(curve); n > 0 {
		under = append(under, plotter.XY{X: curve[n-1].X, Y: 0}, plotter.XY{X: curve[0].X, Y: 0})
	}
	fill, err := plotter.NewPolygon(under)
	if err != nil {
		return nil, err
	}
	fill.Color = steelBlue
	fill.LineStyle.Width = 0

	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.Color = curveBlue
	line.Width = vg.Points(2)

	ball, err := plotter.NewPolygon(f.Marker)
	if err != nil {
		return nil, fmt.Errorf("render: marker of frame %d: %w", f.Step, err)
	}
	ball.Color = yellow
	ball.LineStyle.Color = black
	ball.LineStyle.Width = vg.Points(1)

	// Later plotters are drawn on top.
	p.Add(fill, line, ball)
	return p, nil
}
