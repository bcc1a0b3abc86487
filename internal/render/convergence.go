package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/advsampling/internal/convergence"
)

// ConvergenceName is the file written for a hills file called name.
func ConvergenceName(name string) string {
	return fmt.Sprintf("RMSD_fes_%s.png", name)
}

// Convergence plots the RMSD series with each point labelled by its value.
func Convergence(s *convergence.Series, title string) (*plot.Plot, error) {
	if s == nil || s.Len() == 0 {
		return nil, convergence.ErrTooFew
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Simulation time (ns)"
	p.Y.Label.Text = "RMSD of the free energy (kT)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(s)
	if err != nil {
		return nil, err
	}
	line.Color = curveBlue

	dots, err := plotter.NewScatter(s)
	if err != nil {
		return nil, err
	}
	dots.GlyphStyle.Color = red
	dots.GlyphStyle.Shape = draw.CircleGlyph{}
	dots.GlyphStyle.Radius = vg.Points(3)

	tmin, tmax := bounds(s.Time)
	rmin, rmax := bounds(s.RMSD)
	dx, dy := 0.01*(tmax-tmin), 0.01*(rmax-rmin)

	marks := plotter.XYLabels{
		XYs:    make(plotter.XYs, s.Len()),
		Labels: make([]string, s.Len()),
	}
	for i := range marks.XYs {
		marks.XYs[i] = plotter.XY{X: s.Time[i] + dx, Y: s.RMSD[i] + dy}
		marks.Labels[i] = fmt.Sprintf("%.2f", s.RMSD[i])
	}
	labels, err := plotter.NewLabels(marks)
	if err != nil {
		return nil, err
	}

	note, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: tmin + 0.53*(tmax-tmin), Y: rmin + 0.94*(rmax-rmin)}},
		Labels: []string{"(Reference: the last time frame)"},
	})
	if err != nil {
		return nil, err
	}

	p.Add(line, dots, labels, note)
	// Room on the right for the last label.
	p.X.Max = tmax + 0.1*(tmax-tmin)
	return p, nil
}

// SaveConvergence writes the convergence plot of s to path.
func SaveConvergence(s *convergence.Series, title, path string) error {
	p, err := Convergence(s, title)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4.5*vg.Inch, path)
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}
