package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
	"github.com/vovakirdan/sbokena/internal/storage"
)

// Records board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show pack list sidebar
	sidebarWidth       = 20 // Width of pack list sidebar
	maxRecords         = 50 // Max completions listed for one level
)

// RecordsKeyMap defines the key bindings for the records board.
type RecordsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev pack"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next pack"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "level records"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pack"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// levelRow is one level of the selected pack with its best record.
type levelRow struct {
	level levels.Level
	best  *storage.Completion
}

// RecordsModel is the Bubble Tea model for the records board. It lists the
// levels of one pack with their best solves; Enter drills into one level.
type RecordsModel struct {
	packs       []registry.PackInfo
	packCursor  int
	store       *storage.Store
	stats       *storage.PackStats
	rows        []levelRow
	detail      *levelRow // Level whose completions are listed, nil for the pack view
	completions []storage.Completion
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show pack list sidebar
}

// NewRecordsModel creates a new records board.
func NewRecordsModel(store *storage.Store, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		packs:       registry.List(),
		store:       store,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		theme:       GetTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.packs) > 0 {
		m.loadPack()
	}
	return m
}

// tableWidth is the space left for the table after margins and sidebar.
func (m *RecordsModel) tableWidth() int {
	w := m.width - 4 // Margins
	if m.showSidebar {
		w -= sidebarWidth + 3 // Sidebar + border + gap
	}
	return w
}

// columns returns the table columns for the current view.
func (m *RecordsModel) columns() []table.Column {
	if m.detail != nil {
		solution := max(m.tableWidth()-6-7-12-14-8, 10)
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Moves", Width: 7},
			{Title: "Player", Width: 12},
			{Title: "Date", Width: 14},
			{Title: "Solution", Width: min(solution, 40)},
		}
	}
	name := max(m.tableWidth()-4-7-12-14-8, 12)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: min(name, 28)},
		{Title: "Best", Width: 7},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 14},
	}
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Inherit(m.theme.TableHeader).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true)
	s.Selected = m.theme.TableCursor
	t.SetStyles(s)

	return t
}

// loadPack loads levels, best solves and stats for the selected pack.
func (m *RecordsModel) loadPack() {
	m.detail = nil
	m.completions = nil
	m.rows = nil
	m.stats = nil

	id := m.packs[m.packCursor].ID
	lvls, err := registry.Levels(id, levels.Hard)
	if err != nil {
		lvls = nil
	}

	for _, lvl := range lvls {
		row := levelRow{level: lvl}
		if m.store != nil {
			if top, err := m.store.TopCompletions(id, lvl.ID, 1); err == nil && len(top) > 0 {
				row.best = &top[0]
			}
		}
		m.rows = append(m.rows, row)
	}
	if m.store != nil {
		if stats, err := m.store.GetPackStats(id); err == nil {
			m.stats = stats
		}
	}

	m.table = m.createTable()
	m.updateTableRows()
}

// loadDetail loads every recorded completion of the level under the cursor.
func (m *RecordsModel) loadDetail() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return
	}
	row := m.rows[i]
	m.detail = &row
	m.completions = nil
	if m.store != nil {
		if top, err := m.store.TopCompletions(m.packs[m.packCursor].ID, row.level.ID, maxRecords); err == nil {
			m.completions = top
		}
	}
	m.table = m.createTable()
	m.updateTableRows()
}

// updateTableRows fills the table for the current view.
func (m *RecordsModel) updateTableRows() {
	var rows []table.Row
	if m.detail != nil {
		for i, c := range m.completions {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", c.Moves),
				playerName(c.Player),
				c.CreatedAt.Format("Jan 02 15:04"),
				c.Solution,
			})
		}
	} else {
		for i, r := range m.rows {
			row := table.Row{fmt.Sprintf("%d", i+1), r.level.Title(), "-", "", ""}
			if r.best != nil {
				row[2] = fmt.Sprintf("%d", r.best.Moves)
				row[3] = playerName(r.best.Player)
				row[4] = r.best.CreatedAt.Format("Jan 02 15:04")
			}
			rows = append(rows, row)
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func playerName(p string) string {
	if p == "" {
		return "-"
	}
	return p
}

// movePack shifts the pack cursor by delta, wrapping around.
func (m *RecordsModel) movePack(delta int) {
	if len(m.packs) == 0 {
		return
	}
	m.packCursor = (m.packCursor + delta + len(m.packs)) % len(m.packs)
	m.loadPack()
}

// Init initializes the records board.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records board.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.detail != nil {
				m.loadPack()
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if m.detail == nil {
				m.loadDetail()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextPack), key.Matches(msg, m.keys.Right):
			m.movePack(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevPack), key.Matches(msg, m.keys.Left):
			m.movePack(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records board.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RECORDS"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("RECORDS - %s", m.packs[m.packCursor].Title)
		if m.detail != nil {
			title += " / " + m.detail.level.Title()
		}
	}
	b.WriteString(centerText(m.theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected pack.
func (m RecordsModel) statsLine() string {
	if m.stats == nil || m.stats.Plays == 0 {
		return fmt.Sprintf("%d levels, not played yet", len(m.rows))
	}
	return fmt.Sprintf("Solved %d/%d  |  Plays %d  |  Last played %s",
		m.stats.LevelsSolved, len(m.rows), m.stats.Plays, m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderWideLayout renders the board with a sidebar for pack selection.
func (m RecordsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Packs\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.packs {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.packCursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		name := []rune(p.Title)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = append(name[:maxLen-1], '.')
		}
		sidebar.WriteString(style.Render(cursor + string(name)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with pack tabs above the table.
func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder

	activeTab := m.theme.MenuItemActive.Padding(0, 1)
	tabs := make([]string, len(m.packs))
	for i, p := range m.packs {
		short := []rune(p.Title)
		if len(short) > 10 {
			short = append(short[:9], '.')
		}
		if i == m.packCursor {
			tabs[i] = activeTab.Render(string(short))
		} else {
			tabs[i] = m.theme.MenuDescription.Render(" " + string(short) + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.packs) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.packs[m.packCursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RecordsModel) renderTableContent() string {
	switch {
	case m.detail != nil && len(m.completions) == 0:
		return m.theme.EmptyMessage.Render("No solves recorded for this level yet.")
	case m.detail == nil && len(m.rows) == 0:
		return m.theme.EmptyMessage.Render("This pack has no levels.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords runs the records board.
// Returns true if user wants to go back to menu, false if quitting.
func RunRecords(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRecordsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
