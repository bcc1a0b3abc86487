package metrics

import (
	"math"

	"github.com/san-kum/advsampling/internal/sampler"
)

// Metric accumulates a scalar observable over the frames of a walk.
type Metric interface {
	Name() string
	Observe(f sampler.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to several metrics. It satisfies sampler.Observer.
type Set []Metric

func (s Set) OnFrame(f sampler.Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Default returns the metrics recorded for every stored run.
func Default(barrier float64) Set {
	return Set{
		NewAcceptanceRate(),
		NewMeanEnergy(),
		NewMinEnergy(),
		NewCrossings(barrier),
	}
}

type AcceptanceRate struct {
	accepted, total int
}

func NewAcceptanceRate() *AcceptanceRate { return &AcceptanceRate{} }

func (a *AcceptanceRate) Name() string { return "acceptance_rate" }

func (a *AcceptanceRate) Observe(f sampler.Frame) {
	a.total++
	if f.Accepted {
		a.accepted++
	}
}

func (a *AcceptanceRate) Value() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.total)
}

func (a *AcceptanceRate) Reset() { a.accepted, a.total = 0, 0 }

type MeanEnergy struct {
	samples int
	total   float64
}

func NewMeanEnergy() *MeanEnergy { return &MeanEnergy{} }

func (m *MeanEnergy) Name() string { return "mean_energy" }

func (m *MeanEnergy) Observe(f sampler.Frame) {
	m.total += f.Energy
	m.samples++
}

func (m *MeanEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEnergy) Reset() { m.samples, m.total = 0, 0 }

type MinEnergy struct {
	min float64
	any bool
}

func NewMinEnergy() *MinEnergy { return &MinEnergy{} }

func (m *MinEnergy) Name() string { return "min_energy" }

func (m *MinEnergy) Observe(f sampler.Frame) {
	if !m.any || f.Energy < m.min {
		m.min = f.Energy
	}
	m.any = true
}

func (m *MinEnergy) Value() float64 {
	if !m.any {
		return math.NaN()
	}
	return m.min
}

func (m *MinEnergy) Reset() { m.min, m.any = 0, false }

// Crossings counts how often the walker changes side of a barrier
// position. Frames sitting exactly on the barrier keep the previous side.
type Crossings struct {
	barrier float64
	side    int
	count   int
}

func NewCrossings(barrier float64) *Crossings { return &Crossings{barrier: barrier} }

func (c *Crossings) Name() string { return "barrier_crossings" }

func (c *Crossings) Observe(f sampler.Frame) {
	side := 0
	switch {
	case f.Position < c.barrier:
		side = -1
	case f.Position > c.barrier:
		side = 1
	}
	if side == 0 {
		return
	}
	if c.side != 0 && side != c.side {
		c.count++
	}
	c.side = side
}

func (c *Crossings) Value() float64 { return float64(c.count) }

func (c *Crossings) Reset() { c.side, c.count = 0, 0 }
