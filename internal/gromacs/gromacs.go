// Package gromacs selects time frames from a COLVAR series and dumps the
// matching structures with "gmx trjconv".
package gromacs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/advsampling/internal/runner"
)

var (
	ErrNoFrames = errors.New("gromacs: no frames selected")
	ErrLength   = errors.New("gromacs: time and CV series differ in length")
)

type Options struct {
	Trajectory string
	Structure  string
	// Prefix of the output files; DefaultPrefix(Trajectory) when empty.
	Prefix string
	// MPI selects gmx_mpi instead of gmx.
	MPI bool
	// Group is written to trjconv's stdin to answer the output group prompt.
	Group string
}

func (o Options) binary() string {
	if o.MPI {
		return "gmx_mpi"
	}
	return "gmx"
}

// DefaultPrefix strips everything from the first '.' of the trajectory
// file name, keeping its directory.
func DefaultPrefix(trajectory string) string {
	dir, base := filepath.Split(trajectory)
	stem, _, _ := strings.Cut(base, ".")
	return filepath.Join(dir, stem)
}

// FormatTime renders a time in ps with the shortest exact representation.
func FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func OutputName(prefix string, t float64) string {
	return fmt.Sprintf("%s_%sps.pdb", prefix, FormatTime(t))
}

func (o Options) prefix() string {
	if o.Prefix == "" {
		return DefaultPrefix(o.Trajectory)
	}
	return o.Prefix
}

// DumpCommand builds the trjconv call that writes the frame at time t.
func DumpCommand(o Options, t float64) runner.Command {
	prefix := o.prefix()
	c := runner.Command{
		Name: o.binary(),
		Args: []string{"trjconv", "-f", o.Trajectory, "-s", o.Structure, "-o", OutputName(prefix, t), "-dump", FormatTime(t)},
	}
	if o.Group != "" {
		c.Stdin = o.Group + "\n"
	}
	return c
}

// Dump writes one structure per time and returns the file names.
func Dump(ctx context.Context, r runner.Runner, o Options, times []float64) ([]string, error) {
	if len(times) == 0 {
		return nil, ErrNoFrames
	}
	if o.Trajectory == "" || o.Structure == "" {
		return nil, fmt.Errorf("gromacs: trajectory and structure files are required")
	}
	out := make([]string, 0, len(times))
	for _, t := range times {
		c := DumpCommand(o, t)
		if _, err := r.Run(ctx, c); err != nil {
			return out, fmt.Errorf("gromacs: dump t=%s: %w", FormatTime(t), err)
		}
		out = append(out, OutputName(o.prefix(), t))
	}
	return out, nil
}
