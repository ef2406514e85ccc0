// Package surface abstracts the character grid the dashboard draws on.
//
// A Surface is cursor addressed: callers clear it, write text at (row, col)
// with attributes, then Refresh to make the frame visible. Input is polled
// one key at a time and never blocks.
package surface

import "errors"

// ErrInit marks failures to bring up a terminal surface.
var ErrInit = errors.New("screen surface initialization failed")

// Attr is a bit set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrUnderline
	AttrReverse
	AttrWarn // colour pair 1, red foreground

	AttrNormal Attr = 0
)

// Has reports whether all bits of flag are set.
func (a Attr) Has(flag Attr) bool { return a&flag == flag }

// Surface is the terminal capability consumed by the controller and pages.
type Surface interface {
	// Init registers colour pairs and hides the cursor.
	Init() error
	// Size reports the current terminal geometry.
	Size() (height, width int)
	Clear()
	Border()
	// Print writes text starting at (row, col), clipped to the surface.
	Print(row, col int, text string, attr Attr)
	// Refresh flushes everything written since the last Clear.
	Refresh()
	// PollKey returns one pending key, if any, without blocking.
	PollKey() (rune, bool)
	// Resize acknowledges a geometry change reported by Size.
	Resize(height, width int)
	Close()
}

// Box drawing runes shared by the surfaces.
const (
	runeHLine = '─'
	runeVLine = '│'
	runeULC   = '┌'
	runeURC   = '┐'
	runeLLC   = '└'
	runeLRC   = '┘'
)
