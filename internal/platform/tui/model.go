// Package tui provides the Bubble Tea front end for sbokena.
// It handles the terminal UI loop, input mapping, pack and level menus,
// the records board and play over SSH.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/registry"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(tickRate, 1)), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for playing a pack.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	services   Services
	config     core.RuntimeConfig
	theme      Theme
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	svc.seedBest(game.ID(), game)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		services:   svc,
		config:     cfg,
		theme:      GetTheme(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board is centered at render time, so a resize keeps progress.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Completed != nil {
		m.services.Record(m.game.ID(), *result.Completed)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sbokena", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.services.warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.services.warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays the game until the player quits or goes back. It reports
// whether the player asked to go back to the menu.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(game, svc, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
