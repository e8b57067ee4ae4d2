// Package terminal presents clock frames in a terminal using bubbletea.
//
// The analog face is drawn with half-block characters, two pixels per cell,
// and the digital readout is printed underneath as styled text.
package terminal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/clockface/pkg/platform"
	"github.com/go-drift/clockface/pkg/screen"
	"github.com/go-drift/clockface/pkg/theme"
)

// FrameMsg delivers a painted frame to the model.
type FrameMsg struct {
	Frame screen.Frame
}

// Surface forwards frames to a running bubbletea program.
type Surface struct {
	send func(tea.Msg)
}

// NewSurface returns a Surface that delivers frames with send, usually
// (*tea.Program).Send.
func NewSurface(send func(tea.Msg)) *Surface {
	return &Surface{send: send}
}

// Present implements screen.Surface.
func (s *Surface) Present(frame screen.Frame) error {
	if s.send != nil {
		s.send(FrameMsg{Frame: frame})
	}
	return nil
}

// footerRows is the space below the face: a blank line, the digital readout
// and the key help.
const footerRows = 3

// Model is the bubbletea model for the live clock.
type Model struct {
	lifecycle *platform.LifecycleService
	palette   theme.ClockPalette

	width, height int
	frame         screen.Frame
	haveFrame     bool
	face          string
	paused        bool
}

// NewModel returns a model that reports focus changes and the pause key to
// lifecycle. A nil lifecycle disables both.
func NewModel(lifecycle *platform.LifecycleService, palette theme.ClockPalette) *Model {
	return &Model{lifecycle: lifecycle, palette: palette}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles keys, resizes, focus changes and frames. Lifecycle changes
// run as commands because stopping the screen waits for the frame task,
// which may itself be waiting to deliver a frame to this loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
			if m.paused {
				return m, m.setState(platform.LifecycleStatePaused)
			}
			return m, m.setState(platform.LifecycleStateResumed)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.redraw()
	case tea.FocusMsg:
		if !m.paused {
			return m, m.setState(platform.LifecycleStateResumed)
		}
	case tea.BlurMsg:
		return m, m.setState(platform.LifecycleStateInactive)
	case FrameMsg:
		m.frame, m.haveFrame = msg.Frame, true
		m.redraw()
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.haveFrame {
		return "waiting for the clock…"
	}
	readout := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.palette.Text.RGBHex())).
		Width(m.faceWidth()).
		Align(lipgloss.Center).
		Render(m.frame.State.Digital)

	status := "q quit • p pause"
	if m.paused {
		status = "paused • " + status
	}
	help := lipgloss.NewStyle().Faint(true).Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, m.face, "", readout, help)
}

// Frame returns the most recent frame and whether one has arrived.
func (m *Model) Frame() (screen.Frame, bool) {
	return m.frame, m.haveFrame
}

// Paused reports whether the user paused the clock.
func (m *Model) Paused() bool {
	return m.paused
}

func (m *Model) redraw() {
	if !m.haveFrame {
		return
	}
	cols, rows := m.faceWidth(), m.height-footerRows
	if rows < 1 {
		m.face = ""
		return
	}
	m.face = Render(m.frame.List, cols, rows)
}

// faceWidth keeps the face roughly square: a cell is about twice as tall as
// it is wide and holds two pixels vertically.
func (m *Model) faceWidth() int {
	rows := m.height - footerRows
	if rows < 1 {
		return m.width
	}
	return min(m.width, rows*2)
}

func (m *Model) setState(state platform.LifecycleState) tea.Cmd {
	if m.lifecycle == nil {
		return nil
	}
	l := m.lifecycle
	return func() tea.Msg {
		l.SetState(state)
		return nil
	}
}
