package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sbokena/internal/platform/tui"
	"github.com/vovakirdan/sbokena/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play <pack>",
	Short: "Play a level pack",
	Long: `Start playing the specified pack from its first level, or from
--level.

Controls:
  Arrows/WASD  - Move
  U/Z          - Undo
  R            - Restart level
  Enter        - Next level (on the level-complete screen)
  P            - Pause
  Ctrl+S       - Screenshot to ~/.sbokena/screenshots
  Esc/B, Q     - Quit

Examples:
  sbokena play classic
  sbokena play mechanisms --level 3
  sbokena play classic --difficulty easy`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level number to start at (1-based)")
}

func runPlay(_ *cobra.Command, args []string) {
	packID := args[0]

	if !registry.Exists(packID) {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packID)
		fmt.Fprintln(os.Stderr, "Run 'sbokena list' to see available packs.")
		os.Exit(1)
	}

	game, err := registry.Create(packID, ceiling())
	if err != nil {
		fail("%v", err)
	}

	cfg := runtimeConfig()
	cfg.StartLevel = max(flagLevel-1, 0)

	svc := openServices()
	defer closeServices(svc)

	if _, err := tui.Run(game, svc, cfg); err != nil {
		fail("running game: %v", err)
	}
}
