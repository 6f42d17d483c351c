package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sbokena/internal/config"
	"github.com/vovakirdan/sbokena/internal/registry"
	"github.com/vovakirdan/sbokena/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect recorded solutions",
	Long: `Every solved level is appended to a compressed replay file per pack
under replay_dir. These commands read them back.`,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <pack|file>",
	Short: "List the records in a replay file",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <pack|file>",
	Short: "Re-run recorded solutions against the current levels",
	Long: `Play every recorded solution on a freshly loaded level and report
whether it still completes it. Useful after editing levels.

Exits with status 1 if any solution fails.

Examples:
  sbokena replay verify classic
  sbokena replay verify ~/.sbokena/replays/classic.jsonl.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runReplayVerify,
}

func init() {
	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayVerifyCmd)
}

// replayPath resolves a pack ID to its replay file; anything else is a path.
func replayPath(arg string) string {
	if registry.Exists(arg) {
		return replay.NewWriter(config.ExpandPath(appConfig.ReplayDir)).PathFor(arg)
	}
	return config.ExpandPath(arg)
}

func readReplays(arg string) []replay.Record {
	recs, err := replay.ReadFile(replayPath(arg))
	if err != nil {
		fail("%v", err)
	}
	return recs
}

func runReplayShow(_ *cobra.Command, args []string) {
	recs := readReplays(args[0])
	if len(recs) == 0 {
		fmt.Println("No records.")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-6s  %-12s  %s\n", "Time", "Level", "Moves", "Player", "Solution")
	for _, r := range recs {
		fmt.Printf("  %-16s  %-12s  %-6d  %-12s  %s\n",
			r.Time.Format("2006-01-02 15:04"), r.Pack+"/"+r.LevelID, r.Moves, r.Player, r.Solution)
	}
}

func runReplayVerify(_ *cobra.Command, args []string) {
	recs := readReplays(args[0])

	failed := 0
	for _, v := range replay.Verify(recs, registry.Level) {
		if !v.OK() {
			failed++
		}
		fmt.Printf("%-12s %-12s %s\n", v.Record.Pack, v.Record.LevelID, v)
	}

	fmt.Println()
	fmt.Printf("%d solutions verified, %d failed\n", len(recs), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
