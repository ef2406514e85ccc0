package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ftahirops/hostdash/metrics"
	"github.com/ftahirops/hostdash/surface"
	"github.com/sirupsen/logrus"
)

// maxCoreBars caps the per-core gauges so the process table still fits in
// a minimum sized terminal.
const maxCoreBars = 8

type CPUPage struct {
	provider metrics.Provider
	interval time.Duration
	log      logrus.FieldLogger
}

func (p *CPUPage) Label() string { return "CPU" }

func (p *CPUPage) Render(f Frame) {
	ctx := f.context()
	row := ContentRow

	stats, err := p.provider.CPU(ctx, p.interval)
	if err != nil {
		p.log.WithError(err).Debug("cpu sample failed")
		f.Print(row, fmt.Sprintf("CPU unavailable: %v", err), surface.AttrWarn)
		return
	}
	f.Print(row, "Overall  "+Bar(stats.OverallPercent, BarLength, '#'), surface.AttrBold)
	row++
	f.Print(row, fmt.Sprintf("Logical cores: %d", stats.CoreCount), surface.AttrNormal)
	row++

	for i, pct := range stats.PerCore {
		if i == maxCoreBars || !f.Fits(row) {
			break
		}
		f.Print(row, fmt.Sprintf("Core %-3d %s", i, Bar(pct, BarLength, '|')), surface.AttrNormal)
		row++
	}
	row++

	procs, err := p.provider.Processes(ctx)
	if err != nil {
		p.log.WithError(err).Debug("process list failed")
		f.Print(row, fmt.Sprintf("Processes unavailable: %v", err), surface.AttrWarn)
		return
	}
	f.Print(row, fmt.Sprintf("Top 5 CPU Processes (%s tracked)", humanize.Comma(int64(len(procs)))), surface.AttrUnderline)
	row++

	for _, rp := range RankProcesses(procs) {
		if !f.Fits(row) {
			break
		}
		f.Print(row, fmt.Sprintf("PID %-7d %5.1f%%  %s", rp.PID, rp.CPUPercent, TruncateName(rp.Name, f.Width-25)), surface.AttrNormal)
		row++
	}
}
