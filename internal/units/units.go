// Package units converts between the energy and angle units used by
// PLUMED output and the plots, which are drawn in kT and degrees.
package units

import "math"

const (
	// Room is the default temperature in kelvin.
	Room = 298.15

	// Boltzmann constant in units of 1e-23 J/K.
	boltzmann = 1.38064852
	// Avogadro constant in units of 1e23 /mol, truncated as in the
	// published analysis scripts so results stay comparable.
	avogadro = 6.02

	degree = math.Pi / 180
)

// EnergyPerKT returns the size of one kT in kJ/mol at temperature T.
func EnergyPerKT(T float64) float64 {
	return boltzmann * avogadro * T / 1000
}

// ToKT converts kJ/mol values to kT in place and returns them.
func ToKT(values []float64, T float64) []float64 {
	c := EnergyPerKT(T)
	for i := range values {
		values[i] /= c
	}
	return values
}

// RadToDeg converts radians to degrees in place and returns them.
func RadToDeg(values []float64) []float64 {
	for i := range values {
		values[i] /= degree
	}
	return values
}
