package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKeyMapDefaults(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionHardDrop},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionRotate},
		{runes("p"), core.ActionPause},
		{runes("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestGameKeyMapRebinding(t *testing.T) {
	controls := config.DefaultTetrisConfig().Controls
	controls.HardDrop = []string{"x"}
	keys := NewGameKeyMap(controls)

	if got := keys.Action(runes("x")); got != core.ActionHardDrop {
		t.Errorf("Action(x) = %v, expected hard_drop", got)
	}
	if got := keys.Action(tea.KeyMsg{Type: tea.KeyEnter}); got != core.ActionNone {
		t.Errorf("Action(enter) = %v, expected none after rebinding", got)
	}
}

func newTestModel(t *testing.T, store *storage.Store) GameModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 2024
	m := NewGameModel(tetris.New(), store, cfg, Options{})
	m.Init()
	return m
}

func step(m GameModel, msgs ...tea.Msg) GameModel {
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model.(GameModel)
}

func TestGameModelSavesReplayOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	tick := TickMsg{ID: m.tickID}

	for i := 0; i < 500 && !m.gameState.GameOver; i++ {
		m = step(m, tea.KeyMsg{Type: tea.KeyEnter}, tick)
	}
	if !m.gameState.GameOver {
		t.Fatal("game did not end")
	}

	id := m.LastReplay()
	if id == "" {
		t.Fatal("no replay saved on game over")
	}
	if !strings.Contains(m.View(), "replay "+shortID(id)+" saved") {
		t.Error("view does not announce the saved replay")
	}

	rec, err := store.Replay(id)
	if err != nil {
		t.Fatalf("store.Replay() error = %v", err)
	}
	r, err := replay.FromRecord(*rec)
	if err != nil {
		t.Fatalf("FromRecord() error = %v", err)
	}
	st, err := replay.Verify(r)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if st.Score != m.gameState.Score {
		t.Errorf("replayed score = %d, expected %d", st.Score, m.gameState.Score)
	}

	// Restarting starts a new recording.
	m = step(m, runes("r"), tick)
	if m.gameState.GameOver || m.recorder == nil || m.LastReplay() != "" {
		t.Error("restart did not start a fresh recorded game")
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{ID: m.tickID - 1})
	if m.recorder.Ticks() != 0 {
		t.Errorf("stale tick advanced the game: %d frames recorded", m.recorder.Ticks())
	}
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m := newTestModel(t, nil)
	tick := TickMsg{ID: m.tickID}

	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back accepted during play")
	}

	m = step(m, runes("p"), tick, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back ignored while paused")
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	m := newTestModel(t, nil)
	tick := TickMsg{ID: m.tickID}
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter}, tick)
	score := m.gameState.Score

	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 40}, tick)
	if m.gameState.Score != score {
		t.Errorf("resize reset the game: score %d -> %d", score, m.gameState.Score)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40-helpHeight {
		t.Errorf("screen = %dx%d, expected 100x%d", m.screen.Width(), m.screen.Height(), 40-helpHeight)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, 'X', core.ColorRed)
	s.DrawTextColored(0, 1, "cd", core.ColorOrange)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "X", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q in %q", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", got)
	}
}
