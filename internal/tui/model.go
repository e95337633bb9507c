// Package tui is the terminal front end: a bubbletea program that feeds
// mouse and key events into a workspace and draws it.
package tui

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/geometry"
	"pinboard/internal/gesture"
	"pinboard/internal/workspace"
)

const doubleClickWindow = 400 * time.Millisecond

// longPressMsg is delivered when a long-press timer armed on pointer down
// elapses. Gen identifies the gesture that armed it.
type longPressMsg struct {
	gen uint64
}

type ConfigMsg struct {
	Placer    geometry.Placer
	LongPress time.Duration
}

type Options struct {
	Workspace *workspace.Workspace
	Logger    *slog.Logger
	// ExportPath maps an export file name to where it is written.
	ExportPath func(name string) (string, error)
	Clipboard  Clipboard
	Now        func() time.Time
}

type Model struct {
	ws         *workspace.Workspace
	logger     *slog.Logger
	exportPath func(string) (string, error)
	clip       Clipboard
	now        func() time.Time

	width  int
	height int

	help        bool
	picker      bool
	pickerIndex int

	pressID     string
	lastClickID string
	lastClickAt time.Time

	status    string
	statusErr bool
}

func New(opts Options) *Model {
	m := &Model{
		ws:         opts.Workspace,
		logger:     opts.Logger,
		exportPath: opts.ExportPath,
		clip:       opts.Clipboard,
		now:        opts.Now,
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.exportPath == nil {
		m.exportPath = func(name string) (string, error) { return name, nil }
	}
	if m.clip == nil {
		m.clip = systemClipboard{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		m.syncViewport()
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.syncViewport()
		return m, cmd

	case longPressMsg:
		if m.ws.FireLongPress(msg.gen) {
			m.setStatus("editing card")
		}
		return m, nil

	case ConfigMsg:
		m.ws.Configure(msg.Placer, msg.LongPress)
		m.setStatus("config reloaded")
		m.logger.Info("config reloaded", "step", msg.Placer.Step, "max_attempts", msg.Placer.MaxAttempts, "long_press", msg.LongPress)
		return m, nil
	}
	return m, nil
}

// canvasHeight is the screen height minus the toolbar and status rows. The
// status row is dropped in preview.
func (m *Model) canvasHeight() int {
	if m.ws.Preview() {
		return max(m.height-1, 1)
	}
	return max(m.height-2, 1)
}

func (m *Model) syncViewport() {
	if m.width == 0 {
		return
	}
	m.ws.SetViewport(float64(m.width), float64(m.canvasHeight()))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Warn("command failed", "error", err)
}

func longPressCmd(t gesture.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return longPressMsg{gen: t.Gen}
	})
}
