package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <pack|file> [level-id]",
	Short: "Print a level in the JSON file format",
	Long: `Convert a level to JSON with an explicit tile and object list. The
source is either a registered pack with a level ID or a level file.

Examples:
  sbokena export classic c01
  sbokena export ./my-level.yaml --out my-level.json`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to a file instead of stdout")
}

func runExport(_ *cobra.Command, args []string) {
	var (
		lvl levels.Level
		err error
	)
	if len(args) == 2 {
		lvl, err = registry.Level(args[0], args[1])
	} else {
		lvl, err = levels.ReadFile(args[0])
	}
	if err != nil {
		fail("%v", err)
	}

	data, err := levels.Format(lvl)
	if err != nil {
		fail("%v", err)
	}
	data = append(data, '\n')

	if flagExportOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		fail("%v", err)
	}
}
