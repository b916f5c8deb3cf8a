package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/games/tetris"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: tetris).

Default controls (rebind them in the config file):
  Left/Right, A/D, H/L  - Move piece
  Space, Up, W, K       - Rotate
  Down, S, J            - Soft drop (+1 per row)
  Enter                 - Hard drop (+1 per row)
  P                     - Pause
  R                     - Restart (after game over)
  Esc/B                 - Back (when paused or over)
  Q/Ctrl+C              - Quit
  Ctrl+S                - Screenshot to ~/.blockfall/screenshots

The game is recorded and saved as a replay when it ends or you quit.
The terminal is owned by the game, so logs go to --log-file if given.

Examples:
  blockfall play
  blockfall play --seed 42
  blockfall play --config ./my-tetris.yaml --log-file /tmp/blockfall.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// gameLogger returns a logger for a TUI session: the terminal is busy, so
// it writes to --log-file or nowhere.
func gameLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fatalf("cannot open log file: %v", err)
	}
	return newLogger(f, "blockfall"), func() { f.Close() }
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := tetris.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fatalf("%v\nRun 'blockfall list' to see available games.", err)
	}

	keys := loadFrontend()
	logger, closeLog := gameLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database, replays disabled", "error", err)
		store = nil
	}

	cfg := runtimeConfig(terminalSize())
	runErr := tui.Run(game, store, cfg, tui.Options{Keys: &keys, Logger: logger})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fatalf("running game: %v", runErr)
	}
}
