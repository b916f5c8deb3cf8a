package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the title menu",
	Long: `Start blockfall in interactive menu mode (also the default with no command).

From the menu you can start a game or browse replays. After a game ends
press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	keys := loadFrontend()
	logger, closeLog := gameLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database, replays disabled", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig(terminalSize())

	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		switch result.Item.Choice {
		case tui.MenuReplays:
			goBack, err := tui.RunReplayBrowser(store, cfg.ScreenW, cfg.ScreenH, "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}

		case tui.MenuPlay:
			game, err := registry.Create(result.Item.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				continue
			}

			gameCfg := cfg
			if gameCfg.Seed == 0 {
				gameCfg.Seed = time.Now().UnixNano()
			}
			if err := tui.Run(game, store, gameCfg, tui.Options{Keys: &keys, Logger: logger}); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
		}
	}
}
