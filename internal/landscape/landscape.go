package landscape

import "math"

// Coefficients of the free-energy polynomial, highest power first.
var Coefficients = [7]float64{-0.000481992, 0.0133127, -0.102597, -0.0406179, 2.84049, -7.0026, 6.84595}

// Degree of the free-energy polynomial.
const Degree = len(Coefficients) - 1

// FreeEnergy evaluates a polynomial free-energy surface. The zero value is
// not useful; use [Default] or [New].
type FreeEnergy struct {
	coef [7]float64
}

// Default is the surface built from [Coefficients].
var Default = New(Coefficients)

func New(coef [7]float64) *FreeEnergy {
	return &FreeEnergy{coef: coef}
}

// Coefficients returns a copy of the coefficients, highest power first.
func (f *FreeEnergy) Coefficients() [7]float64 { return f.coef }

// Evaluate returns the free energy in kT at CV value x.
func (f *FreeEnergy) Evaluate(x float64) float64 {
	y := 0.0
	for i, c := range f.coef {
		y += c * math.Pow(x, float64(Degree-i))
	}
	return y
}

// EvaluateAll evaluates the surface elementwise.
func (f *FreeEnergy) EvaluateAll(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f.Evaluate(x)
	}
	return ys
}

// Derivative returns dF/dx at x.
func (f *FreeEnergy) Derivative(x float64) float64 {
	d := 0.0
	for i, c := range f.coef[:Degree] {
		p := Degree - i
		d += float64(p) * c * math.Pow(x, float64(p-1))
	}
	return d
}

// Evaluate evaluates [Default] at x.
func Evaluate(x float64) float64 { return Default.Evaluate(x) }

// EvaluateAll evaluates [Default] elementwise.
func EvaluateAll(xs []float64) []float64 { return Default.EvaluateAll(xs) }

// Arange returns values from start up to, but excluding, stop in steps of
// step. It returns nil for a non-positive step.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = start + float64(i)*step
	}
	return xs
}
