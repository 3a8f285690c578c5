// Package ui provides the terminal front ends that drive a calendar session.
package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/daycal/internal/render"
	"github.com/nibzard/daycal/internal/session"
)

// ErrInterrupted is returned when the user presses ctrl+c.
var ErrInterrupted = errors.New("interrupted")

// Option configures the full-screen front end.
type Option func(*tuiConfig)

type tuiConfig struct {
	watchPath string
	logger    *log.Logger
	input     io.Reader
	output    io.Writer
}

// WithWatch redraws the screen whenever the file at path changes on disk.
func WithWatch(path string) Option {
	return func(c *tuiConfig) {
		c.watchPath = path
	}
}

// WithLogger sets the logger for watcher problems.
func WithLogger(logger *log.Logger) Option {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIO replaces the terminal's stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *tuiConfig) {
		c.input = in
		c.output = out
	}
}

// Run shows the calendar full-screen until the session exits. A storage
// error ends the program and is returned after the terminal is restored.
func Run(ctx context.Context, s *session.CalendarSession, r *render.Renderer, opts ...Option) error {
	c := &tuiConfig{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}

	var changes <-chan struct{}
	if c.watchPath != "" {
		ch, err := WatchFile(ctx, c.watchPath, c.logger)
		if err != nil {
			c.logger.Warn("not watching task file", "path", c.watchPath, "err", err)
		} else {
			changes = ch
		}
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.input != nil {
		programOpts = append(programOpts, tea.WithInput(c.input))
	}
	if c.output != nil {
		programOpts = append(programOpts, tea.WithOutput(c.output))
	}

	program := tea.NewProgram(newModel(s, r, changes), programOpts...)
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*model); ok {
		return m.err
	}
	return nil
}

type model struct {
	session  *session.CalendarSession
	renderer *render.Renderer
	input    textinput.Model
	changes  <-chan struct{}
	screen   render.Screen
	err      error
}

type fileChangedMsg struct{}

func newModel(s *session.CalendarSession, r *render.Renderer, changes <-chan struct{}) *model {
	ti := textinput.New()
	ti.Prompt = " "
	ti.CharLimit = maxLineLength
	ti.Width = 60
	ti.Focus()
	return &model{
		session:  s,
		renderer: r,
		input:    ti,
		changes:  changes,
	}
}

func (m *model) Init() tea.Cmd {
	if !m.refresh() {
		return tea.Quit
	}
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.err = ErrInterrupted
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}
	case fileChangedMsg:
		if !m.refresh() {
			return m, tea.Quit
		}
		return m, waitForChange(m.changes)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the typed line to the session and redraws.
func (m *model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()

	if err := m.session.Handle(line); err != nil {
		m.err = err
		return tea.Quit
	}
	if m.session.Exited() {
		m.screen = nil
		return tea.Quit
	}
	if !m.refresh() {
		return tea.Quit
	}
	return nil
}

// refresh rebuilds the screen from the store. It reports false when the
// store failed and the program has to stop.
func (m *model) refresh() bool {
	screen, err := m.session.Screen()
	if err != nil {
		m.err = err
		return false
	}
	m.screen = screen
	m.input.Prompt = render.Prompt(screen)
	return true
}

func (m *model) View() string {
	if m.screen == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderer.Render(m.screen))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
