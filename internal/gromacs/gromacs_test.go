package gromacs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/advsampling/internal/runner"
)

func TestDefaultPrefix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"traj.xtc", "traj"},
		{"md.part0001.trr", "md"},
		{filepath.Join("runs", "meta.xtc"), filepath.Join("runs", "meta")},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := DefaultPrefix(tt.in); got != tt.want {
			t.Errorf("DefaultPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDumpCommand(t *testing.T) {
	o := Options{Trajectory: "traj.xtc", Structure: "topol.tpr", Group: "0"}
	c := DumpCommand(o, 1500)
	want := "gmx trjconv -f traj.xtc -s topol.tpr -o traj_1500ps.pdb -dump 1500"
	if c.String() != want {
		t.Errorf("expected %q, got %q", want, c.String())
	}
	if c.Stdin != "0\n" {
		t.Errorf("expected group on stdin, got %q", c.Stdin)
	}

	o.MPI = true
	o.Prefix = "out/frame"
	c = DumpCommand(o, 12.5)
	if c.Name != "gmx_mpi" || c.Args[6] != "out/frame_12.5ps.pdb" {
		t.Errorf("unexpected mpi command %q", c.String())
	}
}

func TestDump(t *testing.T) {
	d := &runner.DryRun{}
	o := Options{Trajectory: "traj.xtc", Structure: "topol.tpr"}
	files, err := Dump(context.Background(), d, o, []float64{10, 20})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	want := []string{"traj_10ps.pdb", "traj_20ps.pdb"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d: expected %q, got %q", i, want[i], files[i])
		}
	}
	if len(d.Commands) != 2 {
		t.Errorf("expected 2 commands, got %d", len(d.Commands))
	}

	if _, err := Dump(context.Background(), d, o, nil); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
	if _, err := Dump(context.Background(), d, Options{}, []float64{1}); err == nil {
		t.Error("expected error without input files")
	}
}

func TestSelect(t *testing.T) {
	time := []float64{0, 2, 4, 6, 8}
	cv := []float64{0.5, 1.9, 0.7, 1.9, 1.2}

	got, err := Select(time, cv, Selection{})
	if err != nil || len(got) != 1 || got[0] != 2 {
		t.Errorf("max selection: got %v (%v)", got, err)
	}

	got, err = Select(time, cv, Selection{UseThreshold: true, Threshold: 1.0})
	if err != nil || len(got) != 3 || got[0] != 2 || got[2] != 8 {
		t.Errorf("threshold selection: got %v (%v)", got, err)
	}

	got, err = Select(time, cv, Selection{Times: []float64{3}, UseThreshold: true, Threshold: 1.0})
	if err != nil || len(got) != 1 || got[0] != 3 {
		t.Errorf("explicit selection: got %v (%v)", got, err)
	}

	if _, err := Select(time, cv, Selection{UseThreshold: true, Threshold: 5}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
	if _, _, err := MaxCV(time, cv[:2]); !errors.Is(err, ErrLength) {
		t.Errorf("expected ErrLength, got %v", err)
	}
}
