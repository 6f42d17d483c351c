package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
	"github.com/vovakirdan/sbokena/internal/storage"
)

// MenuItem represents a selectable pack in the menu.
type MenuItem struct {
	PackID      string
	Title       string
	Description string
	Levels      int // Playable levels at the current difficulty
	Solved      int // Of those, how many have a record
}

// MenuModel is the Bubble Tea model for the pack picker menu.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	theme       Theme
	quitting    bool
	selected    *MenuItem // Set when user selects a pack
	openRecords bool      // True if user pressed Tab for records
}

// NewMenuModel creates a new menu model. Packs without playable levels at
// ceiling are left out.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, ceiling levels.Difficulty) MenuModel {
	packs := registry.List()
	items := make([]MenuItem, 0, len(packs))

	for _, p := range packs {
		lvls, err := registry.Levels(p.ID, ceiling)
		if err != nil || len(lvls) == 0 {
			continue
		}
		item := MenuItem{
			PackID:      p.ID,
			Title:       p.Title,
			Description: p.Description,
			Levels:      len(lvls),
		}
		if store != nil {
			if best, err := store.BestMoves(p.ID); err == nil {
				for _, lvl := range lvls {
					if _, ok := best[lvl.ID]; ok {
						item.Solved++
					}
				}
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to pick a level
		}

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("S B O K E N A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level pack"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No level packs found"), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		progress := fmt.Sprintf("%d/%d", item.Solved, item.Levels)
		if item.Solved == item.Levels {
			progress = m.theme.MenuItemSolved.Render(progress)
		} else {
			progress = m.theme.MenuDescription.Render(progress)
		}

		line := style.Render(fmt.Sprintf("%s%-16s", cursor, item.Title)) + " " + progress
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records board.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured by
// its printed width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	PackID       string
	Config       core.RuntimeConfig
	WantsRecords bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, ceiling levels.Difficulty) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, ceiling),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsRecords():
		result.WantsRecords = true
	case m.Selected() != nil:
		result.PackID = m.Selected().PackID
	default:
		result.Quit = true
	}
	return result, nil
}
