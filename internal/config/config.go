// Package config provides YAML-based configuration loading for the
// front-end of the game: key bindings and the visual theme. Rules such as
// the grid size, drop interval and scoring table are compile-time
// constants in the engine and are not configurable.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

// TetrisConfig contains all configuration for the Tetris front-end.
type TetrisConfig struct {
	Controls ControlsConfig `yaml:"controls"`
	Theme    ThemeConfig    `yaml:"theme"`
}

// ControlsConfig maps each game action to the keys that trigger it.
// Key names follow Bubble Tea's KeyMsg.String() ("left", "ctrl+c", " ").
type ControlsConfig struct {
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	SoftDrop []string `yaml:"soft_drop"`
	HardDrop []string `yaml:"hard_drop"`
	Rotate   []string `yaml:"rotate"`
	Pause    []string `yaml:"pause"`
	Restart  []string `yaml:"restart"`
	Back     []string `yaml:"back"`
	Quit     []string `yaml:"quit"`
}

// ThemeConfig defines how pieces are drawn.
type ThemeConfig struct {
	Colors    PieceColors `yaml:"colors"`
	Block     string      `yaml:"block"`      // Glyph pair for a settled or falling cell
	GhostCell string      `yaml:"ghost"`      // Glyph pair for the landing preview
	ShowGhost bool        `yaml:"show_ghost"` // Draw the landing preview
	ShowNext  bool        `yaml:"show_next"`  // Draw the next-piece preview
}

// PieceColors names the color of each piece variant.
type PieceColors struct {
	I string `yaml:"i"`
	O string `yaml:"o"`
	T string `yaml:"t"`
	S string `yaml:"s"`
	Z string `yaml:"z"`
	J string `yaml:"j"`
	L string `yaml:"l"`
}

// Bindings returns the key list for every bindable action.
func (c ControlsConfig) Bindings() map[core.Action][]string {
	return map[core.Action][]string{
		core.ActionLeft:     c.Left,
		core.ActionRight:    c.Right,
		core.ActionSoftDrop: c.SoftDrop,
		core.ActionHardDrop: c.HardDrop,
		core.ActionRotate:   c.Rotate,
		core.ActionPause:    c.Pause,
		core.ActionRestart:  c.Restart,
		core.ActionBack:     c.Back,
		core.ActionQuit:     c.Quit,
	}
}

// Palette resolves the configured color names, ordered by variant (I..L).
func (p PieceColors) Palette() ([7]core.Color, error) {
	var out [7]core.Color
	for i, name := range []string{p.I, p.O, p.T, p.S, p.Z, p.J, p.L} {
		c, ok := core.ColorByName(name)
		if !ok {
			return out, fmt.Errorf("unknown color %q for piece %c", name, "IOTSZJL"[i])
		}
		out[i] = c
	}
	return out, nil
}

// Validate checks the config for unusable values: unknown colors, empty
// bindings, a key bound to two actions, and glyphs that are not two cells wide.
func (c TetrisConfig) Validate() error {
	var errs []error

	if _, err := c.Theme.Colors.Palette(); err != nil {
		errs = append(errs, err)
	}
	if n := len([]rune(c.Theme.Block)); n != 2 {
		errs = append(errs, fmt.Errorf("theme.block must be 2 characters, got %d", n))
	}
	if n := len([]rune(c.Theme.GhostCell)); n != 2 {
		errs = append(errs, fmt.Errorf("theme.ghost must be 2 characters, got %d", n))
	}

	owner := make(map[string]core.Action)
	for action, keys := range c.Controls.Bindings() {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("controls.%s has no keys", action))
			continue
		}
		for _, k := range keys {
			if prev, dup := owner[k]; dup && prev != action {
				errs = append(errs, fmt.Errorf("key %q bound to both %s and %s", k, prev, action))
			}
			owner[k] = action
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
