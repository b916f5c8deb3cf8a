package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagReplayLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Manage recorded games",
	Long: `Every game is recorded as a replay: the seed, frame rate and input log.
Replays store no score; it is recomputed by re-simulating the input.

IDs may be abbreviated to any unique prefix.

Examples:
  blockfall replays list
  blockfall replays show
  blockfall replays verify 3f2a
  blockfall replays delete 3f2a`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent replays",
	Args:  cobra.NoArgs,
	Run:   runReplaysList,
}

var replaysShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Browse replays interactively",
	Long: `Open the replay browser. With an ID, that replay is selected and verified.

Controls:
  Up/Down  - Move
  Enter    - Verify the selected replay
  d        - Delete the selected replay
  Esc/Q    - Close`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplaysShow,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a replay and print its result",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysVerify,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

func init() {
	replaysListCmd.Flags().IntVarP(&flagReplayLimit, "limit", "n", 20, "Number of replays to list")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

// openStore opens the replay database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening replay database: %v", err)
	}
	return store
}

// loadReplay resolves an ID or prefix and decodes the replay, or exits.
func loadReplay(store *storage.Store, id string) replay.Replay {
	rec, err := store.Replay(id)
	if err != nil {
		store.Close()
		fatalf("%v", err)
	}
	r, err := replay.FromRecord(*rec)
	if err != nil {
		store.Close()
		fatalf("replay %s: %v", rec.ID, err)
	}
	return r
}

func runReplaysList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	recs, err := store.RecentReplays(flagReplayLimit)
	if err != nil {
		store.Close()
		fatalf("%v", err)
	}
	total, err := store.CountReplays()
	if err != nil {
		store.Close()
		fatalf("%v", err)
	}

	if len(recs) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println("Finish a game with 'blockfall play' to record one.")
		return
	}

	fmt.Printf("Replays (%s of %s)\n\n", humanize.Comma(int64(len(recs))), humanize.Comma(int64(total)))
	fmt.Printf("  %-8s  %-8s  %20s  %10s  %8s  %s\n", "ID", "Game", "Seed", "Frames", "Length", "Recorded")
	fmt.Printf("  %-8s  %-8s  %20s  %10s  %8s  %s\n", "--", "----", "----", "------", "------", "--------")
	for _, rec := range recs {
		length := replay.Replay{Ticks: rec.Ticks, TickRate: rec.TickRate}.Duration().Truncate(time.Second)
		fmt.Printf("  %-8s  %-8s  %20d  %10s  %8s  %s\n",
			rec.ID[:min(8, len(rec.ID))],
			rec.GameID,
			rec.Seed,
			humanize.Comma(int64(rec.Ticks)),
			length,
			humanize.Time(rec.CreatedAt),
		)
	}
}

func runReplaysShow(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	selectID := ""
	if len(args) == 1 {
		// Resolve early so a bad ID fails before the browser opens.
		rec, err := store.Replay(args[0])
		if err != nil {
			store.Close()
			fatalf("%v", err)
		}
		selectID = rec.ID
	}

	width, height := terminalSize()
	if _, err := tui.RunReplayBrowser(store, width, height, selectID); err != nil {
		store.Close()
		fatalf("%v", err)
	}
}

func runReplaysVerify(_ *cobra.Command, args []string) {
	store := openStore()
	r := loadReplay(store, args[0])
	store.Close()

	st, err := replay.Verify(r)

	fmt.Printf("Replay   %s\n", r.ID)
	fmt.Printf("Game     %s (seed %d, %d fps)\n", r.GameID, r.Seed, r.TickRate)
	fmt.Printf("Length   %s frames (%s)\n", humanize.Comma(int64(r.Ticks)), r.Duration().Truncate(time.Second))
	fmt.Printf("Inputs   %s\n", humanize.Comma(int64(r.Inputs())))
	fmt.Printf("Score    %s\n", humanize.Comma(int64(st.Score)))
	fmt.Printf("Lines    %d\n", st.Lines)

	switch {
	case errors.Is(err, replay.ErrDiverged):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	case err != nil:
		fatalf("%v", err)
	case r.Complete:
		fmt.Println("Status   verified")
	default:
		fmt.Println("Status   unfinished game, replays cleanly")
	}
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	rec, err := store.Replay(args[0])
	if err != nil {
		store.Close()
		fatalf("%v", err)
	}
	if err := store.DeleteReplay(rec.ID); err != nil {
		store.Close()
		fatalf("%v", err)
	}
	fmt.Printf("Deleted replay %s\n", rec.ID)
}
