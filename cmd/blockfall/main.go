// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall                    - Start the title menu
//	blockfall list               - List available games
//	blockfall play [game]        - Play a game directly (default: tetris)
//	blockfall serve              - Start SSH server for remote play
//	blockfall replays <command>  - List, browse, verify or delete replays
//	blockfall config <command>   - Print, install or check the config file
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.blockfall/blockfall.db)
//	--config <path>      - Use a specific config file
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log file for interactive sessions
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - falling-block puzzles in your terminal",
	Long: `Blockfall is a terminal falling-block puzzle game. Steer the falling
piece, complete rows to clear them and keep the stack below the top.

Every finished game is recorded as a replay that can be re-simulated to
verify its score.

Examples:
  blockfall
  blockfall play --seed 42
  blockfall serve --ssh :2222
  blockfall replays list`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		return nil
	},
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DataPath("blockfall.db"), "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: ~/.blockfall/configs/tetris.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file during interactive sessions")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the CLI logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// loadFrontend loads the config, applies its theme and returns the key
// bindings. A broken config is fatal.
func loadFrontend() tui.GameKeyMap {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if err := tetris.SetTheme(cfg.Theme); err != nil {
		fatalf("config: %v", err)
	}
	return tui.NewGameKeyMap(cfg.Controls)
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fatalf prints an error and exits with status 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
