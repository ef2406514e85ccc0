package surface

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaHostForwardsSizeAndKeys(t *testing.T) {
	g := NewGrid(21, 80)
	h := NewTeaHost(g, DriverFunc(func() (bool, time.Duration) { return false, 0 }))
	m := &teaModel{host: h}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	height, width := g.Size()
	assert.Equal(t, 40, height)
	assert.Equal(t, 120, width)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	k, ok := g.PollKey()
	require.True(t, ok)
	assert.Equal(t, '2', k)
}

func TestTeaHostCtrlCInterrupts(t *testing.T) {
	h := NewTeaHost(NewGrid(1, 1), DriverFunc(func() (bool, time.Duration) { return false, 0 }))
	m := &teaModel{host: h}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, h.Interrupted())
}

func TestTeaHostStepsUntilDone(t *testing.T) {
	steps := 0
	h := NewTeaHost(NewGrid(1, 1), DriverFunc(func() (bool, time.Duration) {
		steps++
		return steps == 2, time.Millisecond
	}))
	m := &teaModel{host: h}

	msg := m.Init()()
	require.Equal(t, stepDoneMsg{done: false, delay: time.Millisecond}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, stepMsg{}, cmd())

	_, cmd = m.Update(stepMsg{})
	msg = cmd()
	require.Equal(t, stepDoneMsg{done: true, delay: time.Millisecond}, msg)

	_, cmd = m.Update(msg)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, h.Interrupted())
}

func TestTeaViewRendersGrid(t *testing.T) {
	g := NewGrid(1, 6)
	g.Print(0, 0, "frame", AttrNormal)
	g.Refresh()
	m := &teaModel{host: NewTeaHost(g, nil)}
	assert.Equal(t, "frame ", m.View())
}
