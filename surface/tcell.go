package surface

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// keyBuffer bounds keys queued between frames; extra presses are dropped.
const keyBuffer = 16

// Tcell is a Surface on a real terminal through tcell.
//
// A single pump goroutine drains tcell events. Runes go to a buffered channel
// that PollKey reads without blocking; Ctrl+C calls onInterrupt.
type Tcell struct {
	screen      tcell.Screen
	keys        chan rune
	onInterrupt func()
	pumpDone    chan struct{}
	started     bool
}

// NewTcell opens the controlling terminal.
func NewTcell(onInterrupt func()) (*Tcell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	return NewTcellScreen(s, onInterrupt), nil
}

// NewTcellScreen wraps an existing tcell screen, such as a simulation screen.
func NewTcellScreen(s tcell.Screen, onInterrupt func()) *Tcell {
	if onInterrupt == nil {
		onInterrupt = func() {}
	}
	return &Tcell{
		screen:      s,
		keys:        make(chan rune, keyBuffer),
		onInterrupt: onInterrupt,
		pumpDone:    make(chan struct{}),
	}
}

func (t *Tcell) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrInit, err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	t.started = true
	go t.pump()
	return nil
}

func (t *Tcell) pump() {
	defer close(t.pumpDone)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue // resizes are picked up through Size
		}
		switch kev.Key() {
		case tcell.KeyCtrlC:
			t.onInterrupt()
		case tcell.KeyRune:
			select {
			case t.keys <- kev.Rune():
			default:
			}
		}
	}
}

func (t *Tcell) Size() (int, int) {
	w, h := t.screen.Size()
	return h, w
}

func (t *Tcell) Clear() { t.screen.Clear() }

func (t *Tcell) Border() {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	st := tcell.StyleDefault
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, 0, runeHLine, nil, st)
		t.screen.SetContent(x, h-1, runeHLine, nil, st)
	}
	for y := 0; y < h; y++ {
		t.screen.SetContent(0, y, runeVLine, nil, st)
		t.screen.SetContent(w-1, y, runeVLine, nil, st)
	}
	t.screen.SetContent(0, 0, runeULC, nil, st)
	t.screen.SetContent(w-1, 0, runeURC, nil, st)
	t.screen.SetContent(0, h-1, runeLLC, nil, st)
	t.screen.SetContent(w-1, h-1, runeLRC, nil, st)
}

func (t *Tcell) Print(row, col int, text string, attr Attr) {
	w, h := t.screen.Size()
	if row < 0 || row >= h || col < 0 {
		return
	}
	st := tcellStyle(attr)
	x := col
	for _, r := range text {
		if x >= w {
			return
		}
		t.screen.SetContent(x, row, r, nil, st)
		x++
	}
}

func tcellStyle(attr Attr) tcell.Style {
	st := tcell.StyleDefault.
		Bold(attr.Has(AttrBold)).
		Underline(attr.Has(AttrUnderline)).
		Reverse(attr.Has(AttrReverse))
	if attr.Has(AttrWarn) {
		st = st.Foreground(tcell.ColorRed)
	}
	return st
}

func (t *Tcell) Refresh() { t.screen.Show() }

func (t *Tcell) PollKey() (rune, bool) {
	select {
	case r := <-t.keys:
		return r, true
	default:
		return 0, false
	}
}

// Resize repaints the whole terminal at its new geometry.
func (t *Tcell) Resize(height, width int) { t.screen.Sync() }

// Close restores the terminal and waits for the event pump to exit.
func (t *Tcell) Close() {
	if !t.started {
		return
	}
	t.started = false
	t.screen.Fini()
	<-t.pumpDone
}
