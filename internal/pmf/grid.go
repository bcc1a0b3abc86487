// Package pmf holds a two-dimensional potential of mean force sampled on
// a regular grid, as written by "plumed sum_hills" for two CVs.
package pmf

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/advsampling/internal/datafile"
	"github.com/san-kum/advsampling/internal/units"
)

var ErrShape = errors.New("pmf: data does not fit the grid")

// Grid stores x, y and f as xbins-by-ybins matrices in file order. It
// satisfies gonum's plotter.GridXYZ.
type Grid struct {
	x, y, f *mat.Dense
	// xAlongCols is set when x changes along a row of the file layout.
	xAlongCols bool
}

// NewGrid reshapes flat columns row-major into xbins rows of ybins.
func NewGrid(x, y, f []float64, xbins, ybins int) (*Grid, error) {
	if xbins <= 0 || ybins <= 0 {
		return nil, fmt.Errorf("%w: bins must be positive, got %d x %d", ErrShape, xbins, ybins)
	}
	n := xbins * ybins
	if len(x) != n || len(y) != n || len(f) != n {
		return nil, fmt.Errorf("%w: %d x %d needs %d values, got %d/%d/%d", ErrShape, xbins, ybins, n, len(x), len(y), len(f))
	}
	g := &Grid{
		x: mat.NewDense(xbins, ybins, append([]float64(nil), x...)),
		y: mat.NewDense(xbins, ybins, append([]float64(nil), y...)),
		f: mat.NewDense(xbins, ybins, append([]float64(nil), f...)),
	}
	g.xAlongCols = ybins > 1 && g.x.At(0, 0) != g.x.At(0, 1)
	return g, nil
}

// FromTable builds a grid from the first three columns of tab.
func FromTable(tab *datafile.Table, xbins, ybins int) (*Grid, error) {
	cols, err := tab.Columns(0, 1, 2)
	if err != nil {
		return nil, err
	}
	return NewGrid(cols[0], cols[1], cols[2], xbins, ybins)
}

// Convert turns y from radians into degrees and f from kJ/mol into kT.
func (g *Grid) Convert(T float64) {
	units.RadToDeg(g.y.RawMatrix().Data)
	units.ToKT(g.f.RawMatrix().Data, T)
}

func (g *Grid) Dims() (c, r int) {
	rows, cols := g.f.Dims()
	if g.xAlongCols {
		return cols, rows
	}
	return rows, cols
}

func (g *Grid) Z(c, r int) float64 {
	if g.xAlongCols {
		return g.f.At(r, c)
	}
	return g.f.At(c, r)
}

func (g *Grid) X(c int) float64 {
	if g.xAlongCols {
		return g.x.At(0, c)
	}
	return g.x.At(c, 0)
}

func (g *Grid) Y(r int) float64 {
	if g.xAlongCols {
		return g.y.At(r, 0)
	}
	return g.y.At(0, r)
}

// Range returns the smallest and largest free energy on the grid.
func (g *Grid) Range() (float64, float64) {
	return mat.Min(g.f), mat.Max(g.f)
}

// Levels returns n contour levels spread evenly over the free-energy range.
func (g *Grid) Levels(n int) []float64 {
	if n <= 0 {
		return nil
	}
	lo, hi := g.Range()
	if n == 1 {
		return []float64{(lo + hi) / 2}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
