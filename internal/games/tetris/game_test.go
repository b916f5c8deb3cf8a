package tetris

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func newGame(seed int64) *Game {
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("registry.Create(%q) error = %v", GameID, err)
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title() = %q, expected Tetris", g.Title())
	}
}

func TestDeterminism(t *testing.T) {
	actions := []core.Action{
		core.ActionNone, core.ActionLeft, core.ActionRight, core.ActionRotate,
		core.ActionSoftDrop, core.ActionHardDrop,
	}
	rng := rand.New(rand.NewSource(7))
	inputs := make([]core.InputFrame, 3000)
	for i := range inputs {
		inputs[i] = frame(actions[rng.Intn(len(actions))])
	}

	run := func() Snapshot {
		g := newGame(12345)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestGravityFollowsFrameRate(t *testing.T) {
	g := newGame(1)
	startY := g.Snapshot().Session.Piece.Y

	// 60 frames of 1/60s do not exceed the one-second interval.
	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}
	if y := g.Snapshot().Session.Piece.Y; y != startY {
		t.Fatalf("piece fell after 60 frames: Y = %d, expected %d", y, startY)
	}

	g.Step(core.NewInputFrame())
	if y := g.Snapshot().Session.Piece.Y; y != startY+1 {
		t.Errorf("piece Y after 61 frames = %d, expected %d", y, startY+1)
	}
}

func TestHardDropLocks(t *testing.T) {
	g := newGame(3)
	res := g.Step(frame(core.ActionHardDrop))
	if !res.Locked {
		t.Fatal("hard drop did not lock")
	}
	if res.State.Score <= 0 {
		t.Errorf("Score = %d, expected hard drop bonus", res.State.Score)
	}
	if g.Snapshot().Session.Locks != 1 {
		t.Errorf("Locks = %d, expected 1", g.Snapshot().Session.Locks)
	}
}

func TestPauseStopsGravityAndInput(t *testing.T) {
	g := newGame(5)
	start := g.Snapshot().Session

	if res := g.Step(frame(core.ActionPause)); !res.State.Paused {
		t.Fatal("expected paused after pause action")
	}
	g.Step(frame(core.ActionLeft))
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := g.Snapshot().Session; got.Piece != start.Piece || got.Accumulated != start.Accumulated {
		t.Errorf("state changed while paused: %+v -> %+v", start.Piece, got.Piece)
	}

	if res := g.Step(frame(core.ActionPause)); res.State.Paused {
		t.Error("expected unpaused after second pause action")
	}
}

func playToGameOver(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if g.Step(frame(core.ActionHardDrop)).State.GameOver {
			return
		}
	}
	t.Fatal("game did not end after 200 hard drops")
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newGame(9)
	playToGameOver(t, g)

	// Input other than restart is ignored once the game is over.
	before := g.Snapshot()
	g.Step(frame(core.ActionLeft, core.ActionHardDrop, core.ActionPause))
	after := g.Snapshot()
	if after.Session != before.Session || after.Paused {
		t.Error("game over state changed without restart")
	}

	res := g.Step(frame(core.ActionRestart))
	if !res.Restarted {
		t.Fatal("expected Restarted")
	}
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("State after restart = %+v, expected fresh game", res.State)
	}
	if g.Seed() != 10 {
		t.Errorf("Seed() after restart = %d, expected 10", g.Seed())
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	g := newGame(9)
	if res := g.Step(frame(core.ActionRestart)); res.Restarted {
		t.Error("restart should only apply after game over")
	}
}

func TestRender(t *testing.T) {
	g := newGame(11)
	g.Step(frame(core.ActionHardDrop))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"TETRIS", "SCORE", "LINES", "NEXT", "██"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("render shows game over for a running game")
	}

	playToGameOver(t, g)
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("render missing game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(1)
	g.Resize(20, 10)

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Error("expected too small message")
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { theme = mustTheme(defaultThemeConfig()) })

	tc := defaultThemeConfig()
	tc.Block = "[]"
	tc.ShowNext = false
	if err := SetTheme(tc); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}

	g := newGame(2)
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()
	if strings.Contains(out, "NEXT") {
		t.Error("next preview drawn with show_next off")
	}
	if !strings.Contains(out, "[]") {
		t.Error("custom block glyph not used")
	}

	tc.Colors.I = "nope"
	if err := SetTheme(tc); err == nil {
		t.Error("expected error for unknown color")
	}
}
