package surface

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTcell(t *testing.T, onInterrupt func()) (*Tcell, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	ts := NewTcellScreen(sim, onInterrupt)
	require.NoError(t, ts.Init())
	sim.SetSize(90, 24)
	t.Cleanup(ts.Close)
	return ts, sim
}

func TestTcellSizeIsHeightThenWidth(t *testing.T) {
	ts, _ := newSimTcell(t, nil)
	h, w := ts.Size()
	assert.Equal(t, 24, h)
	assert.Equal(t, 90, w)
}

func TestTcellPrintAppliesStyle(t *testing.T) {
	ts, sim := newSimTcell(t, nil)
	ts.Print(2, 3, "hi", AttrWarn|AttrBold)
	ts.Refresh()

	r, _, style, _ := sim.GetContent(3, 2)
	assert.Equal(t, 'h', r)
	fg, _, attrs := style.Decompose()
	assert.Equal(t, tcell.ColorRed, fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	r, _, _, _ = sim.GetContent(4, 2)
	assert.Equal(t, 'i', r)
}

func TestTcellBorderCorners(t *testing.T) {
	ts, sim := newSimTcell(t, nil)
	ts.Border()
	ts.Refresh()

	r, _, _, _ := sim.GetContent(0, 0)
	assert.Equal(t, runeULC, r)
	r, _, _, _ = sim.GetContent(89, 23)
	assert.Equal(t, runeLRC, r)
}

func TestTcellPollKeyNeverBlocks(t *testing.T) {
	ts, sim := newSimTcell(t, nil)
	_, ok := ts.PollKey()
	assert.False(t, ok)

	sim.InjectKey(tcell.KeyRune, '3', tcell.ModNone)
	var got rune
	require.Eventually(t, func() bool {
		k, ok := ts.PollKey()
		got = k
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, '3', got)
}

func TestTcellCtrlCCallsInterrupt(t *testing.T) {
	var fired atomic.Bool
	_, sim := newSimTcell(t, func() { fired.Store(true) })

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	require.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
}

func TestTcellCloseWithoutInit(t *testing.T) {
	ts := NewTcellScreen(tcell.NewSimulationScreen("UTF-8"), nil)
	ts.Close()
}
