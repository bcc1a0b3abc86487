package sampler

import (
	"fmt"
	"math"

	"github.com/san-kum/advsampling/internal/landscape"
)

type Sampler struct {
	surface   Surface
	src       Source
	observers []Observer
}

func New(surface Surface, src Source) *Sampler {
	return &Sampler{
		surface:   surface,
		src:       src,
		observers: make([]Observer, 0),
	}
}

func (s *Sampler) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// NewWalker starts a walker at x on the sampler's surface.
func (s *Sampler) NewWalker(x float64) *Walker { return NewWalker(s.surface, x) }

// Step performs one Metropolis trial on w, moving it if the trial is
// accepted.
func (s *Sampler) Step(w *Walker, maxDisplacement, beta float64) Trial {
	dx := (2*s.src.Float64() - 1) * maxDisplacement
	proposed := w.position + dx
	proposedEnergy := s.surface.Evaluate(proposed)
	delta := proposedEnergy - w.energy
	tr := Trial{
		Proposed:       proposed,
		ProposedEnergy: proposedEnergy,
		Delta:          delta,
		Acceptance:     math.Exp(-beta * delta),
		Draw:           s.src.Float64(),
	}
	if tr.Accepted() {
		w.moveTo(w.position + dx)
	}
	return tr
}

// Run walks opts.Trials steps from initial and returns every frame.
func (s *Sampler) Run(initial float64, opts Options) ([]Frame, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	frames := make([]Frame, 0, opts.Trials)
	err := s.Stream(initial, opts, func(f Frame) bool {
		frames = append(frames, f)
		return true
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

// Stream walks like Run but hands each frame to visit instead of keeping
// it. Returning false from visit stops the walk with ErrStopped.
func (s *Sampler) Stream(initial float64, opts Options, visit func(Frame) bool) error {
	if err := validate(opts); err != nil {
		return err
	}

	w := s.NewWalker(initial)
	for i := 0; i < opts.Trials; i++ {
		tr := s.Step(w, opts.MaxDisplacement, opts.Beta)
		marker, err := landscape.CircleOnSurface(w.position, w.energy, opts.MarkerRadius)
		if err != nil {
			return err
		}
		f := Frame{
			Step:     i,
			Position: w.position,
			Energy:   w.energy,
			Accepted: tr.Accepted(),
			Trial:    tr,
			Marker:   marker,
		}
		for _, o := range s.observers {
			o.OnFrame(f)
		}
		if !visit(f) {
			return ErrStopped
		}
	}
	return nil
}

func validate(opts Options) error {
	if opts.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidArgument, opts.Trials)
	}
	if opts.MarkerRadius < 0 {
		return fmt.Errorf("%w: marker radius must be non-negative, got %g", ErrInvalidArgument, opts.MarkerRadius)
	}
	return nil
}
