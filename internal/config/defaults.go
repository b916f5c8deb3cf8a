package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisYAML returns the embedded default configuration file, used
// by `blockfall config` to seed a user config.
func DefaultTetrisYAML() []byte {
	out := make([]byte, len(defaultTetrisYAML))
	copy(out, defaultTetrisYAML)
	return out
}

// DefaultTetrisConfig returns the hardcoded default configuration.
// Used as a fallback when the embedded YAML cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Controls: ControlsConfig{
			Left:     []string{"left", "a", "h"},
			Right:    []string{"right", "d", "l"},
			SoftDrop: []string{"down", "s", "j"},
			HardDrop: []string{"enter"},
			Rotate:   []string{" ", "up", "w", "k"},
			Pause:    []string{"p"},
			Restart:  []string{"r"},
			Back:     []string{"esc", "b"},
			Quit:     []string{"q", "ctrl+c"},
		},
		Theme: ThemeConfig{
			Colors: PieceColors{
				I: "cyan",
				O: "yellow",
				T: "magenta",
				S: "green",
				Z: "red",
				J: "blue",
				L: "orange",
			},
			Block:     "██",
			GhostCell: "░░",
			ShowGhost: true,
			ShowNext:  true,
		},
	}
}
