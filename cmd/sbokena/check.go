package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/replay"
)

var flagCheckSolutions bool

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Validate level files",
	Long: `Load level files or directories and report whether each one builds a
valid world. With --solutions, levels that carry a solution also have it
played through the engine.

Exits with status 1 if any level fails.

Examples:
  sbokena check ./levels
  sbokena check my-level.yaml other.json --solutions`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckSolutions, "solutions", false, "Also verify the solution stored in each level")
}

func runCheck(_ *cobra.Command, args []string) {
	failed := 0
	total := 0

	for _, p := range args {
		results, err := levels.CheckPath(p)
		if err != nil {
			fmt.Printf("%s: %v\n", p, err)
			failed++
			continue
		}
		for _, r := range results {
			total++
			status := checkStatus(r)
			if status != "ok" {
				failed++
			}
			id := r.Level.ID
			if id == "" {
				id = "?"
			}
			fmt.Printf("%-40s %-10s %s\n", r.Path, id, status)
		}
	}

	fmt.Println()
	fmt.Printf("%d levels checked, %d failed\n", total, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// checkStatus describes one result: ok, a validation code, or the error.
func checkStatus(r levels.CheckResult) string {
	if r.Err != nil {
		var verr core.ValidationError
		if errors.As(r.Err, &verr) {
			return verr.Code + ": " + verr.Message
		}
		return r.Err.Error()
	}
	if !flagCheckSolutions || r.Level.Solution == "" {
		return "ok"
	}
	res, played, err := replay.Play(r.Level, r.Level.Solution)
	v := replay.Verdict{Result: res, Played: played, Err: err}
	if v.OK() {
		return "ok"
	}
	return "solution: " + v.String()
}
