package ui

import (
	"context"

	"github.com/ftahirops/hostdash/surface"
)

// Content area geometry shared by every page. Row 0 is the border, row 1
// the title bar, row 2 a gap; the last row holds the footer.
const (
	ContentRow = 3
	ContentCol = 2
)

// Page is one selectable dashboard view.
type Page interface {
	Label() string
	Render(f Frame)
}

// Frame is everything a page may touch while drawing one frame.
type Frame struct {
	Ctx     context.Context
	Surface surface.Surface
	Height  int
	Width   int
	Demo    *DemoRunner
}

// Fits reports whether row lies above the footer.
func (f Frame) Fits(row int) bool { return row < f.Height-1 }

// Print writes text in the content column when row lies above the footer,
// clipped before the right border. It reports whether anything was written.
func (f Frame) Print(row int, text string, attr surface.Attr) bool {
	if !f.Fits(row) {
		return false
	}
	f.Surface.Print(row, ContentCol, TruncateName(text, f.Width-ContentCol-1), attr)
	return true
}

func (f Frame) context() context.Context {
	if f.Ctx == nil {
		return context.Background()
	}
	return f.Ctx
}
