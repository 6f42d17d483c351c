package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sbokena/internal/core"
)

// Theme contains the visual styles of the menus and the board.
type Theme struct {
	// Board colors, keyed by screen cell color
	Palette map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemSolved  lipgloss.Style
	MenuDescription lipgloss.Style
	HUDControls     lipgloss.Style

	// Records board styles
	Border       lipgloss.Color
	TableHeader  lipgloss.Style
	TableCursor  lipgloss.Style
	EmptyMessage lipgloss.Style
}

func ansi(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// DefaultTheme returns the default colored theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorRed:           ansi("1"),
			core.ColorGreen:         ansi("2"),
			core.ColorYellow:        ansi("3"),
			core.ColorBlue:          ansi("4"),
			core.ColorMagenta:       ansi("5"),
			core.ColorCyan:          ansi("6"),
			core.ColorWhite:         ansi("7"),
			core.ColorBrightRed:     ansi("9"),
			core.ColorBrightGreen:   ansi("10"),
			core.ColorBrightYellow:  ansi("11"),
			core.ColorBrightBlue:    ansi("12"),
			core.ColorBrightMagenta: ansi("13"),
			core.ColorBrightCyan:    ansi("14"),
			core.ColorBrightWhite:   ansi("15").Bold(true),
			core.ColorOrange:        ansi("208"),
			core.ColorGray:          ansi("245"),
		},

		MenuTitle:       ansi("214").Bold(true), // Crate orange
		MenuItemNormal:  ansi("252"),
		MenuItemActive:  ansi("226").Bold(true),
		MenuItemSolved:  ansi("46"),
		MenuDescription: ansi("245"),
		HUDControls:     ansi("241"),

		Border:       lipgloss.Color("240"),
		TableHeader:  lipgloss.NewStyle().Bold(true),
		TableCursor:  ansi("229").Background(lipgloss.Color("57")),
		EmptyMessage: ansi("241").Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a theme without colors, for terminals that
// render them poorly.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	plain := lipgloss.NewStyle()
	for c := range theme.Palette {
		theme.Palette[c] = plain
	}
	theme.Palette[core.ColorBrightWhite] = plain.Bold(true)

	theme.MenuTitle = plain.Bold(true)
	theme.MenuItemNormal = plain
	theme.MenuItemActive = plain.Bold(true).Underline(true)
	theme.MenuItemSolved = plain
	theme.MenuDescription = plain.Faint(true)
	theme.HUDControls = plain.Faint(true)
	theme.TableCursor = plain.Reverse(true)
	return theme
}

// ThemeByName returns the named theme, or the default one.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}

// RenderScreen converts a screen buffer to a string styled with the theme
// palette. Cells of one color on a row are rendered as a single run.
func RenderScreen(s *core.Screen, t Theme) string {
	rows := make([]string, s.Height())
	var run []rune
	for y := range rows {
		var line strings.Builder
		flush := func(c core.Color) {
			if style, ok := t.Palette[c]; ok && c != core.ColorDefault {
				line.WriteString(style.Render(string(run)))
			} else {
				line.WriteString(string(run))
			}
			run = run[:0]
		}

		current := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current && len(run) > 0 {
				flush(current)
			}
			current = cell.Color
			run = append(run, cell.Rune)
		}
		flush(current)
		rows[y] = line.String()
	}
	return strings.Join(rows, "\n")
}
