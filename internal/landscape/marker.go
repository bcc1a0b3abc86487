package landscape

import (
	"errors"
	"fmt"
	"math"
)

// MarkerPoints is the number of vertices of a circular marker.
const MarkerPoints = 100

// ErrInvalidArgument is returned for out-of-domain inputs.
var ErrInvalidArgument = errors.New("landscape: invalid argument")

// Marker is a closed polygon; the first and last vertices coincide.
type Marker struct {
	X []float64
	Y []float64
}

func (m Marker) Len() int { return len(m.X) }

// XY returns the i-th vertex. Together with Len it satisfies
// gonum's plotter.XYer.
func (m Marker) XY(i int) (float64, float64) { return m.X[i], m.Y[i] }

// CircleOnSurface returns a circle of radius r whose lowest point sits on
// the anchor (a, b), so the marker rests on top of the surface.
func CircleOnSurface(a, b, r float64) (Marker, error) {
	if r < 0 {
		return Marker{}, fmt.Errorf("%w: negative radius %g", ErrInvalidArgument, r)
	}
	theta := Linspace(0, 2*math.Pi, MarkerPoints)
	m := Marker{
		X: make([]float64, MarkerPoints),
		Y: make([]float64, MarkerPoints),
	}
	for i, t := range theta {
		m.X[i] = r*math.Cos(t) + a
		m.Y[i] = r*math.Sin(t) + b + r
	}
	return m, nil
}

// Linspace returns n evenly spaced samples over [start, stop], both ends
// included. The last sample is exactly stop.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	step := (stop - start) / float64(n-1)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = start + float64(i)*step
	}
	xs[n-1] = stop
	return xs
}
