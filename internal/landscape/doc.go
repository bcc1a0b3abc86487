// Package landscape provides the one-dimensional free-energy surface used
// to illustrate enhanced sampling.
//
// The surface is a fixed sixth-degree polynomial of a collective variable
// (CV), expressed in units of kT:
//
//   - [Coefficients]: the polynomial coefficients, highest power first
//   - [Evaluate] / [EvaluateAll]: scalar and elementwise evaluation
//   - [CircleOnSurface]: a circular marker resting on the curve
//   - [Extrema]: local minima and maxima located with gonum/optimize
//
// # Example
//
//	y := landscape.Evaluate(1.822) // 2.390088592634875
//	m, _ := landscape.CircleOnSurface(1.822, y, 0.2)
package landscape
