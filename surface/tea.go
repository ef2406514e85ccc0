package surface

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Driver advances the dashboard by one frame. done ends the program; delay
// is the pause before the next frame.
type Driver interface {
	Step() (done bool, delay time.Duration)
}

// DriverFunc adapts a function to Driver.
type DriverFunc func() (bool, time.Duration)

func (f DriverFunc) Step() (bool, time.Duration) { return f() }

type teaKeyMap struct {
	Interrupt key.Binding
}

var teaKeys = teaKeyMap{
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "interrupt"),
	),
}

type (
	stepMsg     struct{}
	stepDoneMsg struct {
		done  bool
		delay time.Duration
	}
)

// TeaHost runs a Driver inside a bubbletea program. The driver draws on a
// Grid; bubbletea feeds the grid its window size and keys and renders the
// grid's last refreshed frame.
type TeaHost struct {
	grid        *Grid
	driver      Driver
	interrupted bool
}

func NewTeaHost(grid *Grid, driver Driver) *TeaHost {
	return &TeaHost{grid: grid, driver: driver}
}

// Interrupted reports whether the program ended on Ctrl+C or cancellation.
func (h *TeaHost) Interrupted() bool { return h.interrupted }

// Run blocks until the driver finishes, the user interrupts or ctx ends.
func (h *TeaHost) Run(ctx context.Context) error {
	p := tea.NewProgram(&teaModel{host: h}, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			h.interrupted = true
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInit, err)
	}
	return nil
}

type teaModel struct {
	host *TeaHost
}

func (m *teaModel) Init() tea.Cmd {
	return m.step()
}

// step runs one frame off the bubbletea event loop so slow metric sampling
// never stalls key delivery.
func (m *teaModel) step() tea.Cmd {
	return func() tea.Msg {
		done, delay := m.host.driver.Step()
		return stepDoneMsg{done: done, delay: delay}
	}
}

func (m *teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.host.grid.SetSize(msg.Height, msg.Width)
	case tea.KeyMsg:
		if key.Matches(msg, teaKeys.Interrupt) {
			m.host.interrupted = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyRunes {
			m.host.grid.Feed(msg.Runes...)
		}
	case stepDoneMsg:
		if msg.done {
			return m, tea.Quit
		}
		return m, tea.Tick(msg.delay, func(time.Time) tea.Msg { return stepMsg{} })
	case stepMsg:
		return m, m.step()
	}
	return m, nil
}

func (m *teaModel) View() string {
	return m.host.grid.Render()
}
