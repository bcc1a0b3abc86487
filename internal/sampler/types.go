package sampler

import "github.com/san-kum/advsampling/internal/landscape"

// DefaultMarkerRadius is the radius of the marker drawn on each frame.
const DefaultMarkerRadius = 0.2

// Source yields uniform draws in [0, 1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Surface maps a CV value to a free energy in kT.
type Surface interface {
	Evaluate(x float64) float64
}

// Walker is the current state of the chain. Energy always equals the
// surface evaluated at Position.
type Walker struct {
	surface  Surface
	position float64
	energy   float64
}

func NewWalker(surface Surface, x float64) *Walker {
	w := &Walker{surface: surface}
	w.moveTo(x)
	return w
}

func (w *Walker) Position() float64 { return w.position }
func (w *Walker) Energy() float64   { return w.energy }

func (w *Walker) moveTo(x float64) {
	w.position = x
	w.energy = w.surface.Evaluate(x)
}

// Trial is a single proposal. Acceptance is exp(-beta*Delta) and is not
// clamped to 1.
type Trial struct {
	Proposed       float64
	ProposedEnergy float64
	Delta          float64
	Acceptance     float64
	Draw           float64
}

// Accepted reports whether the draw passes the Metropolis test.
func (t Trial) Accepted() bool { return t.Draw < t.Acceptance }

// Frame is the walker after one trial, accepted or not.
type Frame struct {
	Step     int
	Position float64
	Energy   float64
	Accepted bool
	Trial    Trial
	Marker   landscape.Marker
}

type Options struct {
	Trials          int
	MaxDisplacement float64
	Beta            float64
	MarkerRadius    float64
}

func DefaultOptions() Options {
	return Options{
		Trials:          200,
		MaxDisplacement: 0.8,
		Beta:            1.0,
		MarkerRadius:    DefaultMarkerRadius,
	}
}

// Observer is notified of every emitted frame.
type Observer interface {
	OnFrame(f Frame)
}
