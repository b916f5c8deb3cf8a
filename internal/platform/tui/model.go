package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// helpHeight is the number of rows reserved below the game for the help bar.
const helpHeight = 1

// resizer is implemented by games that can relayout without a reset.
type resizer interface {
	Resize(w, h int)
}

// seeder is implemented by games that reseed themselves on restart.
type seeder interface {
	Seed() int64
}

// Options configures a GameModel. Zero values fall back to defaults.
type Options struct {
	Keys     *GameKeyMap
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
}

// GameModel is the Bubble Tea model for one game. Every frame it feeds the
// collected input to the game, records it for the replay and saves the
// replay once the game ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	renderer   *ScreenRenderer
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	recorder   *replay.Recorder
	lastReplay string
	tickID     int64
	standalone bool // Back exits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	cfg = cfg.Normalized()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	keys := DefaultGameKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1)),
		store:      store,
		config:     cfg,
		keys:       keys,
		help:       h,
		renderer:   NewScreenRenderer(opts.Renderer),
		logger:     logger.With("game", game.ID()),
		inputFrame: core.NewInputFrame(),
		recorder:   replay.NewRecorder(game.ID(), cfg),
		tickID:     nextTickID(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	m.game.Reset(cfg)
	m.logger.Debug("game started", "seed", m.config.Seed, "fps", m.config.TickRate)
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are collected into the
// frame and applied on the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.saveReplay(false)
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.saveReplay(false)
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionNone:
		return m, nil

	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize relayouts the screen. Unlike a reset this keeps the game
// in progress; the simulation never depends on the screen size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gameH := max(msg.Height-helpHeight, 1)
	m.screen.Resize(msg.Width, gameH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, gameH)
	}
	return m, nil
}

// handleTick runs one simulation frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.recorder != nil {
		m.recorder.Record(m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case result.Restarted:
		cfg := m.config
		if s, ok := m.game.(seeder); ok {
			cfg.Seed = s.Seed()
		}
		m.recorder = replay.NewRecorder(m.game.ID(), cfg)
		m.lastReplay = ""
		m.logger.Debug("game restarted", "seed", cfg.Seed)

	case m.gameState.GameOver && m.recorder != nil:
		m.logger.Info("game over", "score", m.gameState.Score, "lines", m.gameState.Lines)
		m.saveReplay(true)
	}

	if result.LinesCleared > 0 {
		m.logger.Debug("lines cleared", "count", result.LinesCleared, "score", m.gameState.Score)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// saveReplay stores the current recording, once. Failures are logged and
// the game continues.
func (m *GameModel) saveReplay(complete bool) {
	rc := m.recorder
	m.recorder = nil
	if rc == nil || rc.Ticks() == 0 || m.store == nil {
		return
	}

	r := rc.Finish(complete)
	rec, err := r.Record()
	if err != nil {
		m.logger.Error("could not encode replay", "error", err)
		return
	}
	id, err := m.store.SaveReplay(rec)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.lastReplay = id
	m.logger.Info("replay saved", "id", id, "ticks", r.Ticks, "complete", complete)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.DataPath("screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.renderer.help.Render(m.help.View(m.keys))
	if m.gameState.GameOver && m.lastReplay != "" {
		footer = m.renderer.notice.Render("replay "+shortID(m.lastReplay)+" saved  ") + footer
	}
	return m.renderer.Render(m.screen) + "\n" + footer
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastReplay returns the ID of the most recently saved replay, if any.
func (m GameModel) LastReplay() string {
	return m.lastReplay
}

// shortID abbreviates a replay UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run plays a single game in the current terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, store, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
