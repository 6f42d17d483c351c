package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
)

// LevelSelection holds the user's choice from the level picker.
type LevelSelection struct {
	Index int // 0-based position in the pack's level list
}

// LevelPickerModel lets the player choose where to start in a pack.
// The first entry continues from the first level without a record.
type LevelPickerModel struct {
	pack         registry.PackInfo
	levels       []levels.Level
	best         map[string]int
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	theme        Theme
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
}

// NewLevelPickerModel creates a level picker over lvls. best maps level IDs
// to the fewest moves recorded and may be nil.
func NewLevelPickerModel(pack registry.PackInfo, lvls []levels.Level, best map[string]int, width, height int) LevelPickerModel {
	if best == nil {
		best = map[string]int{}
	}
	return LevelPickerModel{
		pack:      pack,
		levels:    lvls,
		best:      best,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levels) {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		m.choosing = false
		if m.cursor == 0 {
			m.selection = LevelSelection{Index: m.FirstUnsolved()}
		} else {
			m.selection = LevelSelection{Index: m.cursor - 1}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// FirstUnsolved returns the index of the first level without a record,
// or 0 when every level has one.
func (m LevelPickerModel) FirstUnsolved() int {
	for i, lvl := range m.levels {
		if _, ok := m.best[lvl.ID]; !ok {
			return i
		}
	}
	return 0
}

// visibleItems is how many level rows fit below the header.
func (m LevelPickerModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelPickerModel) updateScroll() {
	if m.cursor == 0 {
		m.scrollOffset = 0
		return
	}
	row := m.cursor - 1
	visible := m.visibleItems()
	if row < m.scrollOffset {
		m.scrollOffset = row
	} else if row >= m.scrollOffset+visible {
		m.scrollOffset = row - visible + 1
	}
}

// View renders the level selection.
func (m LevelPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(strings.ToUpper(m.pack.Title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	cursor, style := "  ", m.theme.MenuItemNormal
	if m.cursor == 0 {
		cursor, style = "> ", m.theme.MenuItemActive
	}
	b.WriteString(centerText(style.Render(cursor+"Continue"), m.width))
	b.WriteString("\n")

	startIdx := m.scrollOffset
	endIdx := min(startIdx+m.visibleItems(), len(m.levels))

	if startIdx > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		lvl := m.levels[i]
		cursor, style := "  ", m.theme.MenuItemNormal
		if i+1 == m.cursor {
			cursor, style = "> ", m.theme.MenuItemActive
		}

		line := style.Render(fmt.Sprintf("%s%2d. %-24s %-7s", cursor, i+1, lvl.Title(), difficultyLabel(lvl.Difficulty)))
		if moves, ok := m.best[lvl.ID]; ok {
			line += " " + m.theme.MenuItemSolved.Render(fmt.Sprintf("✓ %d", moves))
		} else {
			line += "    "
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if endIdx < len(m.levels) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func difficultyLabel(d levels.Difficulty) string {
	if d == levels.Unknown {
		return ""
	}
	return d.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelPickerModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelPickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelPickerModel) WantsBack() bool {
	return m.back
}

// RunLevelPicker runs the level picker and returns the selection, or nil
// when the player went back or quit.
func RunLevelPicker(pack registry.PackInfo, lvls []levels.Level, best map[string]int, cfg core.RuntimeConfig) (*LevelSelection, error) {
	p := tea.NewProgram(
		NewLevelPickerModel(pack, lvls, best, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelPickerModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
