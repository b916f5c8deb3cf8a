package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print, install or check the config file",
	Long: `Blockfall reads key bindings and the theme from YAML.

Search order:
  --config <path>
  ~/.blockfall/configs/tetris.yaml
  ./configs/tetris.yaml
  built-in defaults

Files only need the keys they change; the rest keep their defaults.`,
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the default config",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultTetrisYAML())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to ~/.blockfall/configs/tetris.yaml",
	Args:  cobra.NoArgs,
	Run:   runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the effective config",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := config.LoadTetris(flagConfig); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("Config OK")
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) {
	path := flagConfig
	if path == "" {
		path = config.UserConfigPath("tetris.yaml")
	}
	if path == "" {
		fatalf("cannot determine home directory; pass --config")
	}

	if _, err := os.Stat(path); err == nil && !flagForce {
		fatalf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fatalf("%v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fatalf("%v", err)
	}
	if err := os.WriteFile(path, config.DefaultTetrisYAML(), 0o644); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
