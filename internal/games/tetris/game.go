// Package tetris adapts the falling-block rules engine to the registry's
// Game interface. Input frames become session operations and gravity
// advances by one fixed frame per Step.
package tetris

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// GameID is the registry identifier.
const GameID = "tetris"

// Game implements registry.Game on top of an engine.Session.
type Game struct {
	session *engine.Session
	seed    int64
	frame   time.Duration
	tick    uint64

	screenW int
	screenH int

	paused   bool
	restarts int
}

// New creates a game. Reset must be called before the first Step.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Reset starts a fresh session seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	cfg = cfg.Normalized()

	g.seed = cfg.Seed
	g.frame = time.Second / time.Duration(cfg.TickRate)
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.restarts = 0

	if g.session == nil {
		g.session = engine.NewSession(cfg.Seed)
	} else {
		g.session.Reset(cfg.Seed)
	}
}

// Resize updates the screen dimensions used for layout. It has no effect
// on the simulation.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Seed returns the seed of the session currently being played. It changes
// when the player restarts after a game over.
func (g *Game) Seed() int64 { return g.seed }

// Step advances the game by one frame. Discrete actions are applied in a
// fixed order (rotate, left, right, soft drop, hard drop) before gravity
// is advanced by one frame of time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if !g.session.Running() {
		if in.Has(core.ActionRestart) {
			g.restart()
			return core.StepResult{State: g.State(), Restarted: true}
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var out core.StepResult
	apply := func(r engine.Result) {
		if r.Locked {
			out.Locked = true
			out.LinesCleared += r.LinesCleared
		}
	}

	if in.Has(core.ActionRotate) {
		apply(g.session.Rotate())
	}
	if in.Has(core.ActionLeft) {
		apply(g.session.MoveLeft())
	}
	if in.Has(core.ActionRight) {
		apply(g.session.MoveRight())
	}
	if in.Has(core.ActionSoftDrop) {
		apply(g.session.SoftDrop())
	}
	if in.Has(core.ActionHardDrop) {
		apply(g.session.HardDrop())
	}
	apply(g.session.Advance(g.frame))

	out.State = g.State()
	return out
}

// restart reseeds deterministically so that a recorded run with restarts
// replays identically.
func (g *Game) restart() {
	g.restarts++
	g.seed++
	g.paused = false
	g.session.Reset(g.seed)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		GameOver: !g.session.Running(),
		Paused:   g.paused,
	}
}
