package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
	"github.com/vovakirdan/sbokena/internal/registry"
	"github.com/vovakirdan/sbokena/internal/replay"
	"github.com/vovakirdan/sbokena/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sbokena/host_key.
	HostKeyPath string

	// DBPath is the path to the records database.
	DBPath string

	// ReplayDir receives the replay files of every session. Empty disables replays.
	ReplayDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime is the game configuration; the screen size comes from each PTY.
	Runtime core.RuntimeConfig

	// Ceiling is the hardest level difficulty offered.
	Ceiling levels.Difficulty
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.sbokena/records.db",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
		Ceiling:     levels.Hard,
	}
}

// SSHServer wraps a Wish SSH server that serves the game to each session.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	services Services
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sbokena-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		store = nil
	}

	svc := Services{Store: store, Logger: logger}
	if cfg.ReplayDir != "" {
		svc.Replay = replay.NewWriter(cfg.ReplayDir)
	}

	srv := &SSHServer{
		config:   cfg,
		services: svc,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sbokena", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeServices()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := s.config.Runtime
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	svc := s.services
	svc.Player = sshSession.User()

	model := NewSessionModel(svc, cfg, s.config.Ceiling)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeServices()
	return err
}

func (s *SSHServer) closeServices() {
	if s.services.Replay != nil {
		if err := s.services.Replay.Close(); err != nil {
			s.logger.Warn("could not close replay file", "error", err)
		}
	}
	if s.services.Store != nil {
		s.services.Store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a session is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPicker
	screenGame
	screenRecords
)

// SessionModel manages the full session flow:
// pack menu -> level picker -> game -> pack menu, with Tab opening records.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	services Services
	config   core.RuntimeConfig
	ceiling  levels.Difficulty
	screen   sessionScreen
	menu     MenuModel
	picker   LevelPickerModel
	records  RecordsModel
	game     Model
	pack     registry.PackInfo
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, ceiling levels.Difficulty) SessionModel {
	return SessionModel{
		services: svc,
		config:   cfg,
		ceiling:  ceiling,
		menu:     NewMenuModel(svc.Store, cfg, ceiling),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPicker:
		return m.updatePicker(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	}
	return m.updateMenu(msg)
}

// toMenu rebuilds the pack menu so progress counts are current.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.services.Store, m.config, m.ceiling)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRecords():
		m.screen = screenRecords
		m.records = NewRecordsModel(m.services.Store, m.config.ScreenW, m.config.ScreenH)
		return m, m.records.Init()

	case m.menu.Selected() != nil:
		info, err := registry.Info(m.menu.Selected().PackID)
		if err != nil {
			return m.toMenu()
		}
		lvls, err := registry.Levels(info.ID, m.ceiling)
		if err != nil || len(lvls) == 0 {
			return m.toMenu()
		}
		var best map[string]int
		if m.services.Store != nil {
			best, _ = m.services.Store.BestMoves(info.ID)
		}
		m.pack = info
		m.screen = screenPicker
		m.picker = NewLevelPickerModel(info, lvls, best, m.config.ScreenW, m.config.ScreenH)
		return m, m.picker.Init()
	}

	return m, cmd
}

// updatePicker handles updates when picking a level.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(LevelPickerModel); ok {
		m.picker = picker
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsBack():
		return m.toMenu()

	case m.picker.Selected() != nil:
		game, err := registry.Create(m.pack.ID, m.ceiling)
		if err != nil {
			m.services.warn("could not create game", "pack", m.pack.ID, "error", err)
			return m.toMenu()
		}
		cfg := m.config
		cfg.StartLevel = m.picker.Selected().Index
		m.game = NewModel(game, m.services, cfg)
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateRecords handles updates when on the records board.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if records, ok := newModel.(RecordsModel); ok {
		m.records = records
	}

	if m.records.IsGoingBack() {
		return m.toMenu()
	}
	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPicker:
		return m.picker.View()
	case screenGame:
		return m.game.View()
	case screenRecords:
		return m.records.View()
	}
	return m.menu.View()
}
