package tetris

import (
	"sync"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
)

// Theme controls how the well is drawn.
type Theme struct {
	Colors    [engine.VariantCount]core.Color
	Block     [2]rune
	Ghost     [2]rune
	ShowGhost bool
	ShowNext  bool
}

var (
	themeMu sync.RWMutex
	theme   = mustTheme(defaultThemeConfig())
)

// SetTheme replaces the theme used by every game's Render. Games served
// over SSH share it, so it is set once at startup.
func SetTheme(tc config.ThemeConfig) error {
	t, err := themeFromConfig(tc)
	if err != nil {
		return err
	}
	themeMu.Lock()
	theme = t
	themeMu.Unlock()
	return nil
}

func currentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return theme
}

func themeFromConfig(tc config.ThemeConfig) (Theme, error) {
	palette, err := tc.Colors.Palette()
	if err != nil {
		return Theme{}, err
	}
	return Theme{
		Colors:    palette,
		Block:     glyphPair(tc.Block, '█'),
		Ghost:     glyphPair(tc.GhostCell, '░'),
		ShowGhost: tc.ShowGhost,
		ShowNext:  tc.ShowNext,
	}, nil
}

func defaultThemeConfig() config.ThemeConfig {
	return config.DefaultTetrisConfig().Theme
}

func mustTheme(tc config.ThemeConfig) Theme {
	t, err := themeFromConfig(tc)
	if err != nil {
		panic(err)
	}
	return t
}

// glyphPair takes the first two runes of s, padding with fallback.
func glyphPair(s string, fallback rune) [2]rune {
	out := [2]rune{fallback, fallback}
	for i, r := range []rune(s) {
		if i >= 2 {
			break
		}
		out[i] = r
	}
	return out
}
