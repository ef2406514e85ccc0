package ui

import (
	"fmt"

	"github.com/ftahirops/hostdash/metrics"
	"github.com/ftahirops/hostdash/surface"
	"github.com/ftahirops/hostdash/util"
	"github.com/sirupsen/logrus"
)

type MemoryPage struct {
	provider metrics.Provider
	log      logrus.FieldLogger
}

func (p *MemoryPage) Label() string { return "Memory" }

func (p *MemoryPage) Render(f Frame) {
	row := ContentRow
	mem, err := p.provider.Memory(f.context())
	if err != nil {
		p.log.WithError(err).Debug("memory read failed")
		f.Print(row, fmt.Sprintf("Memory unavailable: %v", err), surface.AttrWarn)
		return
	}

	rows := []string{
		fmt.Sprintf("Total:      %.2f GB", util.BytesToGB(mem.Total)),
		fmt.Sprintf("Used:       %.2f GB", util.BytesToGB(mem.Used)),
		fmt.Sprintf("Available:  %.2f GB", util.BytesToGBPtr(mem.Available)),
	}
	for _, line := range rows {
		f.Print(row, line, surface.AttrNormal)
		row++
	}
	row++
	f.Print(row, "Usage      "+Bar(mem.Percent, BarLength, '#'), surface.AttrBold)
}
