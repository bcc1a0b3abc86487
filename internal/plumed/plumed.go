// Package plumed drives "plumed sum_hills" and collects the free-energy
// snapshots it writes.
package plumed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/advsampling/internal/datafile"
	"github.com/san-kum/advsampling/internal/runner"
	"github.com/san-kum/advsampling/internal/units"
)

// Binary is the PLUMED executable name.
var Binary = "plumed"

var ErrNoSnapshots = errors.New("plumed: no fes_*.dat files found")

// SnapshotName is the file sum_hills writes for snapshot i.
func SnapshotName(i int) string { return fmt.Sprintf("fes_%d.dat", i) }

// SumHillsCommand builds the sum_hills invocation for a HILLS file,
// writing one snapshot every stride Gaussians.
func SumHillsCommand(dir, hills string, stride int) runner.Command {
	return runner.Command{
		Name: Binary,
		Args: []string{"sum_hills", "--hills", hills, "--stride", strconv.Itoa(stride), "--mintozero"},
		Dir:  dir,
	}
}

func SumHills(ctx context.Context, r runner.Runner, dir, hills string, stride int) error {
	if stride <= 0 {
		return fmt.Errorf("plumed: stride must be positive, got %d", stride)
	}
	if _, err := r.Run(ctx, SumHillsCommand(dir, hills, stride)); err != nil {
		return fmt.Errorf("plumed: sum_hills: %w", err)
	}
	return nil
}

// Count returns how many consecutive snapshots, starting at fes_0.dat,
// exist in dir.
func Count(dir string) int {
	n := 0
	for {
		if _, err := os.Stat(filepath.Join(dir, SnapshotName(n))); err != nil {
			return n
		}
		n++
	}
}

// Snapshots reads the free-energy column of every snapshot in dir and
// converts it from kJ/mol to kT at temperature T.
func Snapshots(dir string, T float64) ([][]float64, error) {
	n := Count(dir)
	if n == 0 {
		return nil, ErrNoSnapshots
	}
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		tab, err := datafile.ReadFile(filepath.Join(dir, SnapshotName(i)))
		if err != nil {
			return nil, err
		}
		col, err := tab.Column(1)
		if err != nil {
			return nil, fmt.Errorf("plumed: %s: %w", SnapshotName(i), err)
		}
		out[i] = units.ToKT(col, T)
	}
	return out, nil
}

// Cleanup removes every fes_*.dat in dir.
func Cleanup(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "fes_*.dat"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}
