package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sbokena/internal/platform/tui"
	"github.com/vovakirdan/sbokena/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick packs and levels interactively",
	Long: `Start in interactive menu mode.

Pick a pack, then a level (or Continue from the first unsolved one).
Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Records board
  Esc/B        - Back
  Q            - Quit

Examples:
  sbokena menu
  sbokena menu --difficulty medium
  sbokena menu --db ./records.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	svc := openServices()
	defer closeServices(svc)

	cfg := runtimeConfig()
	limit := ceiling()

	for {
		menuResult, err := tui.RunMenu(svc.Store, cfg, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRecords {
			goBack, err := tui.RunRecords(svc.Store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		info, err := registry.Info(menuResult.PackID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		lvls, err := registry.Levels(info.ID, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		var best map[string]int
		if svc.Store != nil {
			if best, err = svc.Store.BestMoves(info.ID); err != nil {
				logger.Warn("could not load best moves", "pack", info.ID, "error", err)
			}
		}

		selection, err := tui.RunLevelPicker(info, lvls, best, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if selection == nil {
			continue
		}

		game, err := registry.Create(info.ID, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		gameCfg := cfg
		gameCfg.StartLevel = selection.Index
		back, err := tui.Run(game, svc, gameCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return
		}
	}
}
