package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"push_strength", cfg.Universe.PushStrength, 1.0},
		{"velocity_diffusion", cfg.Universe.VelocityDiffusion, 0.96},
		{"merge_factor", cfg.Universe.MergeFactor, 0.2},
		{"collapse_size", cfg.Universe.CollapseSize, 12.0},
		{"score_scale", cfg.Universe.ScoreScale, 0.1},
		{"spawn_duration", cfg.Spawn.Duration, 1.5},
		{"initial_countdown", cfg.Spawn.InitialCountdown, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if cfg.Spawn.Attempts != 8 {
		t.Errorf("spawn attempts = %d, want 8", cfg.Spawn.Attempts)
	}
	if cfg.Derived.ScreenW != 1280 || cfg.Derived.ScreenH != 720 {
		t.Errorf("derived screen = %vx%v, want 1280x720", cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("universe:\n  merge_factor: 0.5\nspawn:\n  attempts: 0\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if cfg.Universe.MergeFactor != 0.5 {
		t.Errorf("merge_factor = %v, want 0.5", cfg.Universe.MergeFactor)
	}
	// Untouched fields keep their defaults
	if cfg.Universe.VelocityDiffusion != 0.96 {
		t.Errorf("velocity_diffusion = %v, want 0.96", cfg.Universe.VelocityDiffusion)
	}
	// Zero attempts falls back to the built-in retry count
	if cfg.Spawn.Attempts != 8 {
		t.Errorf("attempts = %d, want 8", cfg.Spawn.Attempts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Universe.PushStrength = 2.5

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Universe.PushStrength != 2.5 {
		t.Errorf("push_strength = %v, want 2.5", loaded.Universe.PushStrength)
	}
}
