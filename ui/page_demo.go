package ui

import (
	"fmt"
	"time"

	"github.com/ftahirops/hostdash/surface"
)

// ThreadingPage shows the one-shot concurrent demo. The elapsed time shown is
// the one recorded on the first visit.
type ThreadingPage struct{}

func (p *ThreadingPage) Label() string { return "Threading" }

func (p *ThreadingPage) Render(f Frame) {
	row := ContentRow
	if f.Demo == nil {
		f.Print(row, "Threading demo unavailable", surface.AttrWarn)
		return
	}
	res := f.Demo.Result()
	for _, line := range res.Log {
		f.Print(row, line, surface.AttrNormal)
		row++
	}
	f.Print(row, "Done with threading!", surface.AttrBold)
	row++
	f.Print(row, res.ElapsedLine(), surface.AttrNormal)
}

// ErrorPage divides by zero on every visit and shows how it was handled,
// with the time the attempt took. The attempt runs in well under a
// microsecond, so the elapsed line carries nanosecond precision.
type ErrorPage struct {
	now     func() time.Time
	divisor int
}

func (p *ErrorPage) Label() string { return "Errors" }

func (p *ErrorPage) Render(f Frame) {
	row := ContentRow
	f.Print(row, fmt.Sprintf("Dividing 10 by %d", p.divisor), surface.AttrNormal)
	row++

	start := p.now()
	out := Attempt(func() (int, error) { return Divide(10, p.divisor) })
	elapsed := p.now().Sub(start)

	attr := surface.AttrWarn
	if out.Kind == OutcomeOK {
		attr = surface.AttrNormal
	}
	f.Print(row, out.Message(), attr)
	row++
	f.Print(row, "Execution complete.", surface.AttrBold)
	row++
	f.Print(row, fmt.Sprintf("Elapsed: %.6f ms", float64(elapsed.Nanoseconds())/1e6), surface.AttrNormal)
}
