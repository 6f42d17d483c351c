package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sbokena/internal/registry"
	"github.com/vovakirdan/sbokena/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all level packs",
	Long: `Shows every registered level pack: the built-in ones and each
subdirectory of levels_dir.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	fmt.Println("Available packs:")
	fmt.Println()

	var stats map[string]*storage.PackStats
	if store, err := storage.Open(appConfig.DBPath); err == nil {
		stats, err = store.GetAllPackStats()
		if err != nil {
			logger.Warn("could not read records", "error", err)
		}
		store.Close()
	} else {
		logger.Warn("could not open records database", "error", err)
	}

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %-6s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Solved", "Title")
	fmt.Printf("  %-*s  %-6s  %-6s  %s\n", maxIDLen, "--", "------", "------", "-----")

	for _, p := range packs {
		count := "?"
		if lvls, err := registry.Levels(p.ID, ceiling()); err == nil {
			count = fmt.Sprintf("%d", len(lvls))
		}
		solved := 0
		if st, ok := stats[p.ID]; ok {
			solved = st.LevelsSolved
		}
		fmt.Printf("  %-*s  %-6s  %-6d  %s\n", maxIDLen, p.ID, count, solved, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'sbokena play <id>' to play a pack.")
}
