// sbokena is a terminal box-pushing puzzle with buttons, doors, portals and
// one-way floors.
//
// Usage:
//
//	sbokena list                 - List level packs
//	sbokena play <pack>          - Play a pack
//	sbokena menu                 - Pick packs and levels interactively
//	sbokena records <pack>       - Show the best solves of a pack
//	sbokena check <path>...      - Validate level files
//	sbokena replay verify <file> - Re-run recorded solutions
//	sbokena export <pack> <id>   - Print a level as JSON
//	sbokena serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Config file (default: search path)
//	--db <path>          - Records database (default: from config)
//	--difficulty <name>  - Level filter: easy, medium, hard, all
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sbokena/internal/config"
	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/platform/tui"
	"github.com/vovakirdan/sbokena/internal/registry"
	"github.com/vovakirdan/sbokena/internal/replay"
	"github.com/vovakirdan/sbokena/internal/storage"

	// Register the game and the built-in packs
	_ "github.com/vovakirdan/sbokena/internal/games/sokoban"
	_ "github.com/vovakirdan/sbokena/internal/games/sokoban/packs"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagDifficulty string
	flagLogLevel   string
)

var (
	appConfig config.Config
	logger    = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sbokena"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sbokena",
	Short: "sbokena - push boxes through doors and portals in your terminal",
	Long: `sbokena is a terminal puzzle in the Sokoban family. Push every box onto
a goal; buttons open doors, portals carry you and boxes across the board,
and arrow floors only let you pass one way.

Available commands:
  list     - Show all level packs
  play     - Play a pack directly
  menu     - Interactive pack and level picker
  records  - View best solves
  check    - Validate level files
  replay   - Verify recorded solutions
  export   - Print a level as JSON
  serve    - Start SSH server for remote play

Examples:
  sbokena list
  sbokena play classic
  sbokena play mechanisms --level 3
  sbokena menu --difficulty easy
  sbokena serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: search path)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Level filter: easy, medium, hard, all")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config, applies global flags and registers the packs
// found in the levels directory.
func setup(_ *cobra.Command, _ []string) error {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(lvl)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		cfg.Difficulty = preset
	}
	appConfig = cfg
	tui.SetTheme(tui.ThemeByName(cfg.Theme))

	dir := config.ExpandPath(cfg.LevelsDir)
	added, err := registry.RegisterDir(dir, logger)
	if err != nil {
		logger.Warn("could not read levels directory", "dir", dir, "error", err)
	}
	logger.Debug("config loaded", "tick_rate", cfg.TickRate, "difficulty", cfg.Difficulty, "packs", added)
	return nil
}

// ceiling is the hardest level difficulty the current preset admits.
func ceiling() levels.Difficulty {
	d, err := levels.PresetCeiling(string(appConfig.Difficulty))
	if err != nil {
		return levels.Hard
	}
	return d
}

// runtimeConfig builds the game configuration for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.RuntimeFrom(appConfig)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// openServices opens the records database and the replay writer. Either
// may be missing; the game runs without them.
func openServices() tui.Services {
	svc := tui.Services{Logger: logger, Player: os.Getenv("USER")}

	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
	} else {
		svc.Store = store
	}

	if appConfig.ReplayDir != "" {
		svc.Replay = replay.NewWriter(config.ExpandPath(appConfig.ReplayDir))
	}
	return svc
}

// closeServices releases what openServices opened.
func closeServices(svc tui.Services) {
	if svc.Replay != nil {
		if err := svc.Replay.Close(); err != nil {
			logger.Warn("could not close replay file", "error", err)
		}
	}
	if svc.Store != nil {
		svc.Store.Close()
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
