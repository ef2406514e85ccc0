// Package engine runs the dashboard: it owns the page selection and the
// resize-aware render loop, and draws the chrome around the active page.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ftahirops/hostdash/surface"
	"github.com/ftahirops/hostdash/ui"
	"github.com/sirupsen/logrus"
)

// Smallest terminal the pages are laid out for.
const (
	MinWidth  = 80
	MinHeight = 21
)

// Loop pacing defaults.
const (
	DefaultFrameDelay      = 100 * time.Millisecond
	DefaultUndersizedDelay = 100 * time.Millisecond
)

var resizeWarning = fmt.Sprintf("RESIZE: Terminal must be at least %dx%d", MinWidth, MinHeight)

// Mode is the controller's lifecycle state.
type Mode int

const (
	Running Mode = iota
	Undersized
	Terminated
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case Undersized:
		return "undersized"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// State is the controller's view of the dashboard. PageIndex always indexes
// a registered page.
type State struct {
	Mode       Mode
	PageIndex  int
	LastHeight int
	LastWidth  int
}

type Options struct {
	FrameDelay      time.Duration
	UndersizedDelay time.Duration
	Log             logrus.FieldLogger
	Metrics         *Metrics
	Demo            *ui.DemoRunner
}

// Controller drives one Surface through a Registry of pages.
type Controller struct {
	surface surface.Surface
	pages   *ui.Registry
	demo    *ui.DemoRunner

	frameDelay      time.Duration
	undersizedDelay time.Duration
	log             logrus.FieldLogger
	metrics         *Metrics

	state State
}

// New returns a controller showing the first page. pages must not be empty.
func New(s surface.Surface, pages *ui.Registry, opts Options) *Controller {
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = DefaultFrameDelay
	}
	if opts.UndersizedDelay <= 0 {
		opts.UndersizedDelay = DefaultUndersizedDelay
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Demo == nil {
		opts.Demo = ui.NewDemoRunner()
	}
	return &Controller{
		surface:         s,
		pages:           pages,
		demo:            opts.Demo,
		frameDelay:      opts.FrameDelay,
		undersizedDelay: opts.UndersizedDelay,
		log:             opts.Log,
		metrics:         opts.Metrics,
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Metrics() *Metrics { return c.metrics }

// Run steps the loop until the quit key or ctx cancellation. Cancellation is
// the user interrupt and is not an error.
func (c *Controller) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		mode, delay := c.Step(ctx)
		if mode == Terminated || !sleep(ctx, delay) {
			return nil
		}
	}
	return nil
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Step runs one loop iteration and returns the resulting mode and how long
// to wait before the next one.
func (c *Controller) Step(ctx context.Context) (Mode, time.Duration) {
	if c.state.Mode == Terminated {
		return Terminated, 0
	}

	h, w := c.surface.Size()
	if h != c.state.LastHeight || w != c.state.LastWidth {
		c.surface.Clear()
		c.surface.Resize(h, w)
		c.state.LastHeight, c.state.LastWidth = h, w
		c.metrics.resizes.Inc()
		c.log.WithFields(logrus.Fields{"height": h, "width": w}).Debug("terminal resized")
	}

	if w < MinWidth || h < MinHeight {
		c.setMode(Undersized)
		c.drawUndersized(h, w)
		c.metrics.frame(Undersized)
		return Undersized, c.undersizedDelay
	}

	c.setMode(Running)
	c.drawFrame(ctx, h, w)
	c.metrics.frame(Running)

	if k, ok := c.surface.PollKey(); ok {
		c.handleKey(k)
	}
	return c.state.Mode, c.frameDelay
}

func (c *Controller) setMode(m Mode) {
	if c.state.Mode == m {
		return
	}
	c.log.WithFields(logrus.Fields{"from": c.state.Mode, "to": m}).Info("mode change")
	c.state.Mode = m
}

func (c *Controller) drawUndersized(h, w int) {
	c.surface.Clear()
	row := h / 2
	col := (w - len(resizeWarning)) / 2
	if col < 0 {
		col = 0
	}
	c.surface.Print(row, col, resizeWarning, surface.AttrWarn)
	c.surface.Refresh()
}

func (c *Controller) drawFrame(ctx context.Context, h, w int) {
	c.surface.Clear()
	c.surface.Border()

	col := ui.ContentCol
	for _, seg := range c.pages.Title(c.state.PageIndex) {
		attr := surface.AttrNormal
		if seg.Active {
			attr = surface.AttrReverse | surface.AttrBold
		}
		c.surface.Print(1, col, seg.Text, attr)
		col += len([]rune(seg.Text)) + 1
	}

	c.renderPage(ctx, h, w)

	footer := fmt.Sprintf("Press 1-%d to switch pages, q to quit | %dx%d", c.pages.Len(), w, h)
	c.surface.Print(h-1, ui.ContentCol, footer, surface.AttrNormal)
	c.surface.Refresh()
}

// renderPage draws the active page. A panicking page is reported on its own
// content area and the loop carries on.
func (c *Controller) renderPage(ctx context.Context, h, w int) {
	page := c.pages.Page(c.state.PageIndex)
	start := time.Now()
	defer func() {
		c.metrics.rendered(page.Label(), time.Since(start))
		if r := recover(); r != nil {
			c.metrics.panicked(page.Label())
			c.log.WithFields(logrus.Fields{"page": page.Label(), "panic": r}).Error("page render failed")
			c.surface.Print(ui.ContentRow, ui.ContentCol, fmt.Sprintf("Page error: %v", r), surface.AttrWarn)
		}
	}()
	page.Render(ui.Frame{Ctx: ctx, Surface: c.surface, Height: h, Width: w, Demo: c.demo})
}

func (c *Controller) handleKey(k rune) {
	switch {
	case k == 'q':
		c.setMode(Terminated)
	case k >= '1' && k <= '9':
		c.Select(int(k - '1'))
	}
}

// Select makes page i active. Indexes outside the registry are ignored.
func (c *Controller) Select(i int) bool {
	if i < 0 || i >= c.pages.Len() {
		return false
	}
	if i != c.state.PageIndex {
		c.state.PageIndex = i
		c.metrics.pageSwitches.Inc()
		c.log.WithField("page", c.pages.Page(i).Label()).Debug("page selected")
	}
	return true
}
