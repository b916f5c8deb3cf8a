package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), nil)
	if len(m.items) < 3 {
		t.Fatalf("menu has %d items, expected play, replays and quit", len(m.items))
	}
	if !strings.Contains(m.View(), "Play Tetris") {
		t.Error("menu missing tetris entry")
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := model.(MenuModel).cursor; got != 0 {
		t.Errorf("cursor after up at top = %d, expected 0", got)
	}

	for i, n := 0, len(m.items)+2; i < n; i++ {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := model.(MenuModel).cursor; got != len(m.items)-1 {
		t.Errorf("cursor after many downs = %d, expected %d", got, len(m.items)-1)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !model.(MenuModel).IsQuitting() {
		t.Error("selecting Quit should quit")
	}
}

func TestMenuSelectPlay(t *testing.T) {
	var model tea.Model = NewMenuModel(core.DefaultConfig(), nil)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := model.(MenuModel).Selected()
	if sel == nil || sel.Choice != MenuPlay || sel.GameID != tetris.GameID {
		t.Errorf("Selected() = %+v, expected play tetris", sel)
	}
}

// saveFinishedGame plays a game of hard drops to the end and stores it.
func saveFinishedGame(t *testing.T, store *storage.Store) string {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 31
	g := tetris.New()
	g.Reset(cfg)
	rec := replay.NewRecorder(g.ID(), cfg)

	in := core.NewInputFrame()
	in.Set(core.ActionHardDrop)
	for i := 0; i < 500; i++ {
		rec.Record(in)
		if g.Step(in).State.GameOver {
			break
		}
	}

	r, err := rec.Finish(true).Record()
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	id, err := store.SaveReplay(r)
	if err != nil {
		t.Fatalf("SaveReplay() error = %v", err)
	}
	return id
}

func TestReplayBrowserVerifyAndDelete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()
	id := saveFinishedGame(t, store)

	var model tea.Model = NewReplayBrowserModel(store, 120, 30, "", nil)
	if n := len(model.(ReplayBrowserModel).records); n != 1 {
		t.Fatalf("browser loaded %d replays, expected 1", n)
	}
	if !strings.Contains(model.View(), shortID(id)) {
		t.Error("table missing replay id")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	b := model.(ReplayBrowserModel)
	if b.checked == nil || b.checked.err != nil {
		t.Fatalf("verification = %+v, expected success", b.checked)
	}
	if !strings.Contains(b.View(), "verified") {
		t.Error("info panel does not report verification")
	}

	model, _ = model.Update(runes("d"))
	b = model.(ReplayBrowserModel)
	if len(b.records) != 0 || b.checked != nil {
		t.Errorf("after delete: %d records, checked=%v", len(b.records), b.checked)
	}
	if n, _ := store.CountReplays(); n != 0 {
		t.Errorf("CountReplays() = %d after delete, expected 0", n)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(ReplayBrowserModel).IsGoingBack() {
		t.Error("esc should return to the menu")
	}
}

func TestReplayBrowserPreselect(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()
	id := saveFinishedGame(t, store)

	b := NewReplayBrowserModel(store, 120, 30, id[:6], nil)
	if b.checked == nil || b.checked.id != id {
		t.Errorf("preselected verification = %+v, expected %s", b.checked, id)
	}
}

func TestSessionModelMenuToGameAndBack(t *testing.T) {
	var model tea.Model = NewSessionModel(nil, core.DefaultConfig(), SessionOptions{})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	s := model.(SessionModel)
	if s.current != screenGame || s.game == nil {
		t.Fatalf("session screen = %v, expected game", s.current)
	}

	tick := TickMsg{ID: s.game.tickID}
	model, _ = model.Update(runes("p"))
	model, _ = model.Update(tick)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	s = model.(SessionModel)
	if s.current != screenMenu || s.game != nil {
		t.Errorf("session screen = %v, expected menu after back", s.current)
	}
}
