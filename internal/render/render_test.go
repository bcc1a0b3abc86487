package render

import (
	"errors"
	"image/gif"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/san-kum/advsampling/internal/convergence"
	"github.com/san-kum/advsampling/internal/landscape"
	"github.com/san-kum/advsampling/internal/pmf"
	"github.com/san-kum/advsampling/internal/sampler"
)

func runFrames(t *testing.T, n int) []sampler.Frame {
	t.Helper()
	s := sampler.New(landscape.Default, rand.New(rand.NewSource(7)))
	opts := sampler.DefaultOptions()
	opts.Trials = n
	frames, err := s.Run(1.44908, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return frames
}

func nonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}

func TestCurve(t *testing.T) {
	c := Curve(landscape.Default)
	if len(c) != 121 {
		t.Fatalf("len = %d, want 121", len(c))
	}
	if math.Abs(c[0].Y-6.84595) > 1e-9 {
		t.Errorf("f(0) = %v", c[0].Y)
	}
	if math.Abs(c[120].X-12.0) > 1e-9 {
		t.Errorf("last x = %v, want 12", c[120].X)
	}
}

func TestBarrierFrame(t *testing.T) {
	f := runFrames(t, 1)[0]
	p, err := BarrierFrame(Curve(landscape.Default), f)
	if err != nil {
		t.Fatalf("BarrierFrame: %v", err)
	}
	if p.X.Max != BarrierXMax || p.Y.Max != BarrierYMax {
		t.Errorf("axes = %v/%v", p.X.Max, p.Y.Max)
	}
}

func TestAnimation(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "images_barrier")
	out := filepath.Join(dir, "energy_barrier.gif")

	a := NewAnimation(landscape.Default, frames, out)
	a.Width, a.Height = 3*vg.Inch, 2.25*vg.Inch
	for _, f := range runFrames(t, 12) {
		if err := a.Add(f); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if a.Frames() != 12 {
		t.Errorf("Frames() = %d", a.Frames())
	}
	nonEmpty(t, a.FrameName(11))
	if err := a.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	fh, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	g, err := gif.DecodeAll(fh)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 12 {
		t.Errorf("gif has %d frames, want 12", len(g.Image))
	}
	if g.Delay[0] != DefaultDelay {
		t.Errorf("delay = %d", g.Delay[0])
	}
	if _, err := os.Stat(frames); !os.IsNotExist(err) {
		t.Errorf("frame directory still present: %v", err)
	}
}

func TestAnimationKeep(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	a := NewAnimation(landscape.Default, frames, filepath.Join(dir, "out.gif"))
	a.Width, a.Height = 3*vg.Inch, 2.25*vg.Inch
	a.Keep = true
	for _, f := range runFrames(t, 2) {
		if err := a.Add(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Finish(); err != nil {
		t.Fatal(err)
	}
	nonEmpty(t, a.FrameName(0))
}

func addFrames(t *testing.T, a *Animation, n int) {
	t.Helper()
	a.Width, a.Height = 3*vg.Inch, 2.25*vg.Inch
	for _, f := range runFrames(t, n) {
		if err := a.Add(f); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
}

func TestAnimationReusedDir(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")

	kept := NewAnimation(landscape.Default, frames, filepath.Join(dir, "first.gif"))
	kept.Keep = true
	addFrames(t, kept, 7)
	if err := kept.Finish(); err != nil {
		t.Fatal(err)
	}

	next := NewAnimation(landscape.Default, frames, filepath.Join(dir, "second.gif"))
	next.Width, next.Height = 3*vg.Inch, 2.25*vg.Inch
	err := next.Add(runFrames(t, 1)[0])
	if !errors.Is(err, ErrFramesDir) {
		t.Fatalf("expected ErrFramesDir, got %v", err)
	}
	if err := next.Discard(); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	for i := 0; i < 7; i++ {
		nonEmpty(t, kept.FrameName(i))
	}
	if _, err := os.Stat(filepath.Join(dir, "second.gif")); !os.IsNotExist(err) {
		t.Errorf("gif written for a refused directory: %v", err)
	}
}

func TestAnimationExistingEmptyDir(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	if err := os.Mkdir(frames, 0755); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.gif")

	a := NewAnimation(landscape.Default, frames, out)
	addFrames(t, a, 3)
	if err := a.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	fh, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	g, err := gif.DecodeAll(fh)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 3 {
		t.Errorf("gif has %d frames, want 3", len(g.Image))
	}

	entries, err := os.ReadDir(frames)
	if err != nil {
		t.Fatalf("directory created by the caller was removed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("frames left behind: %d", len(entries))
	}
}

func TestAnimationWorkingDir(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}
	a := NewAnimation(landscape.Default, dir, filepath.Join(dir, "out.gif"))
	a.Width, a.Height = 3*vg.Inch, 2.25*vg.Inch
	if err := a.Add(runFrames(t, 1)[0]); !errors.Is(err, ErrFramesDir) {
		t.Fatalf("expected ErrFramesDir, got %v", err)
	}
	if err := a.Discard(); err != nil {
		t.Fatal(err)
	}
	nonEmpty(t, notes)
}

func TestAnimationEmpty(t *testing.T) {
	a := NewAnimation(landscape.Default, t.TempDir(), filepath.Join(t.TempDir(), "x.gif"))
	if err := a.Finish(); err == nil {
		t.Error("expected error with no frames")
	}
}

func TestSaveConvergence(t *testing.T) {
	s, err := convergence.RMSD([][]float64{
		{3, 2, 1},
		{2, 2, 1},
		{1, 1, 1},
	}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), ConvergenceName("HILLS"))
	if err := SaveConvergence(s, "RMSD", path); err != nil {
		t.Fatalf("SaveConvergence: %v", err)
	}
	nonEmpty(t, path)

	if _, err := Convergence(nil, ""); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestSaveContour(t *testing.T) {
	const nx, ny = 6, 5
	var x, y, f []float64
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x = append(x, float64(i))
			y = append(y, float64(j))
			f = append(f, float64((i-3)*(i-3)+(j-2)*(j-2)))
		}
	}
	g, err := pmf.NewGrid(x, y, f, nx, ny)
	if err != nil {
		t.Fatal(err)
	}
	o := DefaultContourOptions()
	o.Levels = 5
	path := filepath.Join(t.TempDir(), ContourName("pmf"))
	if err := SaveContour(g, o, path); err != nil {
		t.Fatalf("SaveContour: %v", err)
	}
	nonEmpty(t, path)
}

func TestContourFlat(t *testing.T) {
	g, err := pmf.NewGrid([]float64{0, 0, 1, 1}, []float64{0, 1, 0, 1}, []float64{2, 2, 2, 2}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Contour(g, DefaultContourOptions()); err == nil {
		t.Error("expected error for flat surface")
	}
}
