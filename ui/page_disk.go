package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ftahirops/hostdash/metrics"
	"github.com/ftahirops/hostdash/surface"
	"github.com/ftahirops/hostdash/util"
	"github.com/sirupsen/logrus"
)

const modTimeLayout = "2006-01-02 15:04:05"

type DiskPage struct {
	provider metrics.Provider
	file     string
	mount    string
	stat     func(string) (os.FileInfo, error)
	now      func() time.Time
	log      logrus.FieldLogger
}

func (p *DiskPage) Label() string { return "Disk/File" }

func (p *DiskPage) Render(f Frame) {
	row := p.renderFile(f, ContentRow)
	p.renderMount(f, row+1)
}

// renderFile draws the tracked file's details and returns the next free row.
func (p *DiskPage) renderFile(f Frame, row int) int {
	f.Print(row, "File: "+p.file, surface.AttrBold)
	row++

	info, err := p.stat(p.file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f.Print(row, fmt.Sprintf("File %s not found", p.file), surface.AttrWarn)
		return row + 1
	case err != nil:
		p.log.WithError(err).WithField("file", p.file).Debug("stat failed")
		f.Print(row, fmt.Sprintf("File error: %v", err), surface.AttrWarn)
		return row + 1
	}

	f.Print(row, fmt.Sprintf("Size:      %.2f KB", util.BytesToKB(info.Size())), surface.AttrNormal)
	row++
	mod := info.ModTime()
	f.Print(row, fmt.Sprintf("Modified:  %s (%s)", mod.Format(modTimeLayout),
		humanize.RelTime(mod, p.now(), "ago", "from now")), surface.AttrNormal)
	return row + 1
}

func (p *DiskPage) renderMount(f Frame, row int) {
	f.Print(row, "Mount: "+p.mount, surface.AttrBold)
	row++

	d, err := p.provider.Disk(f.context(), p.mount)
	if err != nil {
		p.log.WithError(err).WithField("mount", p.mount).Debug("disk usage failed")
		f.Print(row, fmt.Sprintf("Disk error: %v", err), surface.AttrWarn)
		return
	}
	f.Print(row, fmt.Sprintf("Total:     %.2f GB", util.BytesToGB(d.Total)), surface.AttrNormal)
	row++
	f.Print(row, "Usage      "+Bar(d.Percent, BarLength, '#'), surface.AttrNormal)
}
