package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/noseas/internal/core"
	"github.com/vovakirdan/noseas/internal/games/noseas"
)

// Game is what the model drives. *noseas.Game implements it.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	Snapshot() noseas.Snapshot
}

// Recorder persists game events. *storage.Store implements it.
type Recorder interface {
	Record(ev core.Event) error
}

// Publisher receives a snapshot after every tick.
type Publisher interface {
	Publish(snap noseas.Snapshot)
}

// Options wires optional collaborators into a Model.
type Options struct {
	Recorder  Recorder
	Publisher Publisher
	Logger    *log.Logger
	Palette   *Palette

	// ScreenshotDir is where ctrl+s writes text captures.
	// Empty means ~/.noseas/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	palette    Palette
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a model for game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	palette := NewPalette(nil)
	if opts.Palette != nil {
		palette = *opts.Palette
	}

	h := help.New()
	h.Width = cfg.ScreenW

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH, false)),
		config:     cfg,
		opts:       opts,
		palette:    palette,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// playHeight reserves the bottom rows for the help footer.
func playHeight(h int, fullHelp bool) int {
	footer := 1
	if fullHelp {
		footer = 3
	}
	return max(1, h-footer)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, playHeight(m.config.ScreenH, m.help.ShowAll))
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen buffer. The world is scaled to fit, so
// the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height, m.help.ShowAll))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step and hands its results off.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		m.record(ev)
	}
	if m.opts.Publisher != nil {
		m.opts.Publisher.Publish(m.game.Snapshot())
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record persists ev. Failures are logged and play continues.
func (m Model) record(ev core.Event) {
	if m.opts.Recorder == nil {
		return
	}
	if err := m.opts.Recorder.Record(ev); err != nil {
		m.opts.Logger.Error("could not save game event", "event", ev.Kind, "err", err)
		return
	}
	m.opts.Logger.Debug("game event saved", "event", ev.Kind, "score", ev.Score)
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".noseas", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// State returns the state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
