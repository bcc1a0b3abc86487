package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InitialPosition != 1.44908 {
		t.Errorf("expected initial position 1.44908, got %f", cfg.InitialPosition)
	}
	if cfg.Trials != 200 {
		t.Errorf("expected 200 trials, got %d", cfg.Trials)
	}
	if cfg.MaxDisplacement != 0.8 {
		t.Errorf("expected max displacement 0.8, got %f", cfg.MaxDisplacement)
	}
	if cfg.Output != "energy_barrier.gif" || cfg.FramesDir != "images_barrier" {
		t.Errorf("unexpected output paths %q %q", cfg.Output, cfg.FramesDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cold")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Beta != 2.0 {
		t.Errorf("expected beta 2, got %f", cfg.Beta)
	}
	if cfg.Trials != DefaultTrials {
		t.Errorf("preset should keep default trials, got %d", cfg.Trials)
	}

	cfg.Beta = 99
	if GetPreset("cold").Beta != 2.0 {
		t.Error("preset copies must not share state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"cold", "hot", "long", "normal"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, presets[i], want[i])
		}
	}
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("trials: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve("hot", path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Trials != 50 {
		t.Errorf("file should override trials, got %d", cfg.Trials)
	}
	if cfg.Beta != 0.5 {
		t.Errorf("preset beta should survive, got %f", cfg.Beta)
	}
	if cfg.InitialPosition != DefaultInitialPosition {
		t.Errorf("default x0 should survive, got %f", cfg.InitialPosition)
	}

	if _, err := Resolve("missing", ""); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.KeepFrames = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero trials", func(c *Config) { c.Trials = 0 }},
		{"negative displacement", func(c *Config) { c.MaxDisplacement = -1 }},
		{"negative radius", func(c *Config) { c.MarkerRadius = -0.1 }},
		{"zero beta", func(c *Config) { c.Beta = 0 }},
		{"negative delay", func(c *Config) { c.FrameDelay = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 7
	opts := cfg.Options()
	if opts.Trials != 7 || opts.MaxDisplacement != 0.8 || opts.Beta != 1 || opts.MarkerRadius != 0.2 {
		t.Errorf("unexpected options %+v", opts)
	}
}
