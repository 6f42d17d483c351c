package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
	"github.com/vovakirdan/sbokena/internal/storage"
)

var (
	flagRecordsLevel string
	flagRecordsLimit int
	flagRecordsClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records <pack>",
	Short: "Show the best solves of a pack",
	Long: `Display the fewest moves recorded for every level of a pack, or the
top solves of one level with --level.

Examples:
  sbokena records classic
  sbokena records classic --level c03 --limit 5
  sbokena records classic --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&flagRecordsLevel, "level", "", "Show the top solves of one level")
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of solves listed with --level")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete every record of the pack")
}

func runRecords(_ *cobra.Command, args []string) {
	packID := args[0]

	info, err := registry.Info(packID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packID)
		fmt.Fprintln(os.Stderr, "Run 'sbokena list' to see available packs.")
		os.Exit(1)
	}

	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		fail("opening records database: %v", err)
	}
	defer store.Close()

	switch {
	case flagRecordsClear:
		if err := store.ClearPack(packID); err != nil {
			fail("clearing records: %v", err)
		}
		fmt.Printf("Cleared records of %s.\n", info.Title)
	case flagRecordsLevel != "":
		printLevelRecords(store, info, flagRecordsLevel)
	default:
		printPackRecords(store, info)
	}
}

func printPackRecords(store *storage.Store, info registry.PackInfo) {
	lvls, err := registry.Levels(info.ID, levels.Hard)
	if err != nil {
		fail("%v", err)
	}
	best, err := store.BestMoves(info.ID)
	if err != nil {
		fail("retrieving records: %v", err)
	}

	fmt.Printf("Records - %s\n", info.Title)
	fmt.Println()

	fmt.Printf("  %-3s  %-10s  %-24s  %s\n", "#", "ID", "Level", "Best")
	fmt.Printf("  %-3s  %-10s  %-24s  %s\n", "-", "--", "-----", "----")
	for i, lvl := range lvls {
		moves := "-"
		if m, ok := best[lvl.ID]; ok {
			moves = fmt.Sprintf("%d", m)
		}
		fmt.Printf("  %-3d  %-10s  %-24s  %s\n", i+1, lvl.ID, lvl.Title(), moves)
	}

	fmt.Println()
	stats, err := store.GetPackStats(info.ID)
	if err != nil || stats.Plays == 0 {
		fmt.Printf("No solves recorded yet. Play 'sbokena play %s' to set the first!\n", info.ID)
		return
	}
	fmt.Printf("Solved %d/%d levels in %d plays, last played %s\n",
		stats.LevelsSolved, len(lvls), stats.Plays, stats.LastPlayed.Format("2006-01-02 15:04"))
}

func printLevelRecords(store *storage.Store, info registry.PackInfo, levelID string) {
	lvl, err := registry.Level(info.ID, levelID)
	if err != nil {
		fail("%v", err)
	}
	top, err := store.TopCompletions(info.ID, levelID, flagRecordsLimit)
	if err != nil {
		fail("retrieving records: %v", err)
	}

	fmt.Printf("Records - %s / %s\n", info.Title, lvl.Title())
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No solves recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-12s  %-16s  %s\n", "Rank", "Moves", "Player", "Date", "Solution")
	fmt.Printf("  %-4s  %-6s  %-12s  %-16s  %s\n", "----", "-----", "------", "----", "--------")
	for i, c := range top {
		player := c.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-12s  %-16s  %s\n", i+1, c.Moves, player, c.CreatedAt.Format("2006-01-02 15:04"), c.Solution)
	}
}
