package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var embedded TetrisConfig
	if err := yaml.Unmarshal(DefaultTetrisYAML(), &embedded); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if err := embedded.Validate(); err != nil {
		t.Fatalf("embedded default invalid: %v", err)
	}

	hard := DefaultTetrisConfig()
	if embedded.Theme != hard.Theme {
		t.Errorf("embedded theme = %+v, expected %+v", embedded.Theme, hard.Theme)
	}
	for action, keys := range hard.Controls.Bindings() {
		got := embedded.Controls.Bindings()[action]
		if strings.Join(got, ",") != strings.Join(keys, ",") {
			t.Errorf("embedded %s keys = %q, expected %q", action, got, keys)
		}
	}
}

func TestLoadTetrisCustomPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := "controls:\n  hard_drop: [\"x\"]\ntheme:\n  show_ghost: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}
	if got := cfg.Controls.HardDrop; len(got) != 1 || got[0] != "x" {
		t.Errorf("HardDrop = %q, expected [x]", got)
	}
	if cfg.Theme.ShowGhost {
		t.Error("ShowGhost = true, expected false")
	}
	if !cfg.Theme.ShowNext {
		t.Error("ShowNext should keep its default")
	}
	if got := cfg.Controls.Left; len(got) == 0 || got[0] != "left" {
		t.Errorf("Left = %q, expected defaults", got)
	}
}

func TestLoadTetrisCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("controls: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(bad); err == nil {
		t.Error("expected error for malformed custom config")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("theme:\n  colors:\n    t: mauve\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(invalid); err == nil {
		t.Error("expected error for unknown color")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TetrisConfig)
		wantErr string
	}{
		{"defaults", func(*TetrisConfig) {}, ""},
		{"unknown color", func(c *TetrisConfig) { c.Theme.Colors.S = "teal" }, "unknown color"},
		{"short block glyph", func(c *TetrisConfig) { c.Theme.Block = "#" }, "theme.block"},
		{"long ghost glyph", func(c *TetrisConfig) { c.Theme.GhostCell = "..." }, "theme.ghost"},
		{"empty binding", func(c *TetrisConfig) { c.Controls.Rotate = nil }, "controls.rotate"},
		{"duplicate key", func(c *TetrisConfig) { c.Controls.Pause = []string{"left"} }, "bound to both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	p, err := DefaultTetrisConfig().Theme.Colors.Palette()
	if err != nil {
		t.Fatalf("Palette() error = %v", err)
	}
	if p[0] != core.ColorCyan || p[6] != core.ColorOrange {
		t.Errorf("Palette() = %v, expected cyan first and orange last", p)
	}
}
