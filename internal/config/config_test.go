package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default yaml) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults drifted from DefaultConfig():\n got %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestParseLayersOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte("undo_limit: 5\ndifficulty: Easy\nglyphs:\n  box: { char: \"B\" }\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.UndoLimit != 5 {
		t.Errorf("UndoLimit = %d, expected 5", cfg.UndoLimit)
	}
	if cfg.Difficulty != DifficultyEasy {
		t.Errorf("Difficulty = %q, expected easy", cfg.Difficulty)
	}
	if cfg.TickRate != DefaultConfig().TickRate {
		t.Errorf("TickRate should keep default, got %d", cfg.TickRate)
	}
	if got := cfg.Glyphs.Box.Rune('?'); got != 'B' {
		t.Errorf("box glyph = %q, expected 'B'", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero tick rate", "tick_rate: 0"},
		{"negative undo", "undo_limit: -1"},
		{"negative delay", "complete_delay_ticks: -3"},
		{"bad difficulty", "difficulty: nightmare"},
		{"bad theme", "theme: neon"},
		{"not yaml", "tick_rate: [1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("tick_rate: 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickRate != 12 {
		t.Errorf("TickRate = %d, expected 12", cfg.TickRate)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".sbokena", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sbokena.yaml"), []byte("difficulty: medium\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Difficulty != DifficultyMedium {
		t.Errorf("Difficulty = %q, expected medium", cfg.Difficulty)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandPath("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := ExpandPath("~user/x"); got != "~user/x" {
		t.Errorf("~user form should be left alone, got %q", got)
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets {
		if got, ok := ParsePreset(string(p)); !ok || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, ok)
		}
	}
	if got, ok := ParsePreset(""); !ok || got != DifficultyAll {
		t.Errorf("empty preset should mean all, got %q", got)
	}
	if _, ok := ParsePreset("fixed"); ok {
		t.Error("fixed is not a preset")
	}
}
