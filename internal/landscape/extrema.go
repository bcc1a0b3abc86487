package landscape

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

type Kind int

const (
	Minimum Kind = iota
	Maximum
)

func (k Kind) String() string {
	if k == Maximum {
		return "maximum"
	}
	return "minimum"
}

// Extremum is a stationary point of the surface.
type Extremum struct {
	X    float64
	F    float64
	Kind Kind
}

// Refine polishes a stationary point near x0 with Nelder-Mead. Maxima are
// found by minimising the negated surface.
func (f *FreeEnergy) Refine(x0 float64, kind Kind) (Extremum, error) {
	sign := 1.0
	if kind == Maximum {
		sign = -1.0
	}
	p := optimize.Problem{
		Func: func(x []float64) float64 { return sign * f.Evaluate(x[0]) },
	}
	res, err := optimize.Minimize(p, []float64{x0}, nil, &optimize.NelderMead{})
	if err != nil {
		return Extremum{}, fmt.Errorf("refine %s near %g: %w", kind, x0, err)
	}
	return Extremum{X: res.X[0], F: f.Evaluate(res.X[0]), Kind: kind}, nil
}

// Extrema scans [lo, hi] with the given step for slope sign changes and
// refines each candidate. Results are ordered by position.
func (f *FreeEnergy) Extrema(lo, hi, step float64) ([]Extremum, error) {
	xs := Arange(lo, hi, step)
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: empty scan range [%g, %g)", ErrInvalidArgument, lo, hi)
	}
	var out []Extremum
	prev := f.Derivative(xs[0])
	for _, x := range xs[1:] {
		d := f.Derivative(x)
		switch {
		case prev < 0 && d >= 0:
			e, err := f.Refine(x, Minimum)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		case prev > 0 && d <= 0:
			e, err := f.Refine(x, Maximum)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		prev = d
	}
	return out, nil
}

// Barrier returns the highest maximum lying strictly between the first
// two minima found in [lo, hi].
func (f *FreeEnergy) Barrier(lo, hi float64) (Extremum, error) {
	ext, err := f.Extrema(lo, hi, 0.01)
	if err != nil {
		return Extremum{}, err
	}
	var minima []Extremum
	for _, e := range ext {
		if e.Kind == Minimum {
			minima = append(minima, e)
		}
	}
	if len(minima) < 2 {
		return Extremum{}, fmt.Errorf("landscape: fewer than two minima in [%g, %g]", lo, hi)
	}
	left, right := minima[0], minima[1]
	found := false
	var best Extremum
	for _, e := range ext {
		if e.Kind != Maximum || e.X <= left.X || e.X >= right.X {
			continue
		}
		if !found || e.F > best.F {
			best, found = e, true
		}
	}
	if !found {
		return Extremum{}, fmt.Errorf("landscape: no maximum between %g and %g", left.X, right.X)
	}
	return best, nil
}
