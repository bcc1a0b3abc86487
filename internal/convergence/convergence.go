// Package convergence measures how a 1D free-energy profile settles over
// simulation time, as the RMSD of each snapshot against the final one.
package convergence

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrTooFew = errors.New("convergence: need at least two snapshots")

// Series is RMSD against simulation time. The reference snapshot itself
// is not included.
type Series struct {
	Time []float64
	RMSD []float64
}

func (s *Series) Len() int { return len(s.Time) }

// XY satisfies gonum's plotter.XYer.
func (s *Series) XY(i int) (float64, float64) { return s.Time[i], s.RMSD[i] }

// Interval returns the time between snapshots given the sum_hills stride
// and the number of Gaussians deposited per ns.
func Interval(stride, gaussiansPerNs float64) (float64, error) {
	if stride <= 0 || gaussiansPerNs <= 0 {
		return 0, fmt.Errorf("convergence: stride and gaussians per ns must be positive, got %g and %g", stride, gaussiansPerNs)
	}
	return stride / gaussiansPerNs, nil
}

// RMSD compares every snapshot with the last. Snapshot i is stamped at
// dt*(i+1).
func RMSD(snapshots [][]float64, dt float64) (*Series, error) {
	n := len(snapshots)
	if n < 2 {
		return nil, ErrTooFew
	}
	if dt <= 0 {
		return nil, fmt.Errorf("convergence: interval must be positive, got %g", dt)
	}
	ref := snapshots[n-1]
	if len(ref) == 0 {
		return nil, fmt.Errorf("convergence: reference snapshot is empty")
	}
	s := &Series{
		Time: make([]float64, 0, n-1),
		RMSD: make([]float64, 0, n-1),
	}
	for i, snap := range snapshots[:n-1] {
		if len(snap) != len(ref) {
			return nil, fmt.Errorf("convergence: snapshot %d has %d points, reference has %d", i, len(snap), len(ref))
		}
		d := floats.Distance(snap, ref, 2)
		s.RMSD = append(s.RMSD, d/math.Sqrt(float64(len(ref))))
		s.Time = append(s.Time, dt*float64(i+1))
	}
	return s, nil
}
