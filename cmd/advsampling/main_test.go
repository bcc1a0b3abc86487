package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	for _, name := range []string{"normal", "hot", "cold", "long"} {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %s:\n%s", name, out)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out, "barrier") || !strings.Contains(out, "minimum") {
		t.Errorf("unexpected info output:\n%s", out)
	}
}

func TestBarrierCommand(t *testing.T) {
	dir := t.TempDir()
	gif := filepath.Join(dir, "barrier.gif")
	data := filepath.Join(dir, "data")

	out, err := execute(t, "barrier",
		"--trials", "3",
		"--seed", "11",
		"--out", gif,
		"--frames-dir", filepath.Join(dir, "frames"),
		"--data", data,
		"--save",
	)
	if err != nil {
		t.Fatalf("barrier failed: %v\n%s", err, out)
	}
	if info, err := os.Stat(gif); err != nil || info.Size() == 0 {
		t.Fatalf("gif not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "frames")); !os.IsNotExist(err) {
		t.Error("frame directory should be removed")
	}
	if !strings.Contains(out, "run id: barrier_") {
		t.Errorf("missing run id:\n%s", out)
	}

	out, err = execute(t, "list", "--data", data)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "barrier_") {
		t.Errorf("list missing run:\n%s", out)
	}
}

func TestBarrierRefusesUsedFramesDir(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "barrier",
		"--trials", "2",
		"--seed", "3",
		"--out", filepath.Join(dir, "b.gif"),
		"--frames-dir", dir,
	)
	if err == nil {
		t.Fatal("expected error for a non-empty frame directory")
	}
	if _, err := os.Stat(notes); err != nil {
		t.Errorf("existing file removed: %v", err)
	}
}

func TestBarrierRejectsBadConfig(t *testing.T) {
	if _, err := execute(t, "barrier", "--trials", "0"); err == nil {
		t.Error("expected error for zero trials")
	}
	if _, err := execute(t, "barrier", "--preset", "missing"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestExtractDryRun(t *testing.T) {
	dir := t.TempDir()
	colvar := filepath.Join(dir, "COLVAR")
	body := "#! FIELDS time d\n0 1.0\n10 3.5\n20 2.0\n"
	if err := os.WriteFile(colvar, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "extract", "-f", "md.xtc", "-s", "md.tpr", "--cv-file", colvar, "--dry-run")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := "gmx trjconv -f md.xtc -s md.tpr -o md_10ps.pdb -dump 10"
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in:\n%s", want, out)
	}
	if !strings.Contains(out, "wrote md_10ps.pdb") {
		t.Errorf("expected output file in:\n%s", out)
	}

	out, err = execute(t, "extract", "-f", "md.xtc", "-s", "md.tpr", "--cv-file", colvar, "-c", "1.5", "--mpi", "--dry-run")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(out, "gmx_mpi trjconv") || !strings.Contains(out, "-dump 20") || strings.Contains(out, "-dump 0") {
		t.Errorf("unexpected threshold selection:\n%s", out)
	}
}

func TestNameOf(t *testing.T) {
	if got := nameOf("", "runs/HILLS.dat"); got != "HILLS" {
		t.Errorf("nameOf = %q", got)
	}
	if got := nameOf("x", "HILLS"); got != "x" {
		t.Errorf("nameOf = %q", got)
	}
}

func TestSweepCommand(t *testing.T) {
	out, err := execute(t, "sweep", "--trials", "20", "--seeds", "2", "--betas", "1,2", "--displacements", "0.8", "--seed", "3")
	if err != nil {
		t.Fatalf("sweep failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "BETA") || !strings.Contains(out, "most crossings") {
		t.Errorf("unexpected sweep output:\n%s", out)
	}
}
