//go:build linux

package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ftahirops/hostdash/model"
	"github.com/ftahirops/hostdash/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Procfs reads metrics straight from /proc, without gopsutil.
type Procfs struct {
	root string
	log  logrus.FieldLogger
	now  func() time.Time

	mu       sync.Mutex
	prevAt   time.Time
	prevTick map[int]uint64
}

// NewProcfs creates a provider rooted at root (normally /proc).
func NewProcfs(root string, log logrus.FieldLogger) *Procfs {
	return &Procfs{
		root:     root,
		log:      log,
		now:      time.Now,
		prevTick: make(map[int]uint64),
	}
}

func newProcfs(root string, log logrus.FieldLogger) (Provider, error) {
	if _, err := os.Stat(filepath.Join(root, "stat")); err != nil {
		return nil, fmt.Errorf("procfs provider: %w", err)
	}
	return NewProcfs(root, log), nil
}

func (p *Procfs) readStat() (cpuTimes, []cpuTimes, error) {
	lines, err := util.ReadFileLines(filepath.Join(p.root, "stat"))
	if err != nil {
		return cpuTimes{}, nil, fmt.Errorf("read stat: %w", err)
	}
	total, perCPU := parseStat(lines)
	return total, perCPU, nil
}

func (p *Procfs) CPU(ctx context.Context, interval time.Duration) (model.CPUStats, error) {
	var st model.CPUStats
	total0, per0, err := p.readStat()
	if err != nil {
		return st, err
	}

	t := time.NewTimer(interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return st, ctx.Err()
	case <-t.C:
	}

	total1, per1, err := p.readStat()
	if err != nil {
		return st, err
	}

	st.OverallPercent = busyPercent(total0, total1)
	st.CoreCount = len(per1)
	st.PerCore = make([]float64, len(per1))
	for i := range per1 {
		if i < len(per0) {
			st.PerCore[i] = busyPercent(per0[i], per1[i])
		}
	}
	return st, nil
}

func (p *Procfs) Processes(ctx context.Context) ([]model.ProcessSample, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.root, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	elapsed := now.Sub(p.prevAt)
	first := p.prevAt.IsZero()

	ticks := make(map[int]uint64, len(entries))
	var out []model.ProcessSample
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid := util.ParseInt(e.Name())
		if pid <= 0 {
			continue
		}
		content, err := util.ReadFileString(filepath.Join(p.root, e.Name(), "stat"))
		if err != nil {
			continue // process may have exited
		}
		comm, cur, err := parsePIDStat(content)
		if err != nil {
			p.log.WithError(err).WithField("pid", pid).Debug("skip unparsable stat")
			continue
		}
		ticks[pid] = cur

		sample := model.ProcessSample{PID: int32(pid), Name: comm}
		prev, seen := p.prevTick[pid]
		switch {
		case first || !seen:
			sample.CPUPercent = model.Percent(0)
		case cur < prev:
			// PID was reused between samples; no meaningful delta.
		default:
			sample.CPUPercent = model.Percent(util.Rate(prev, cur, elapsed) / clockTicks * 100)
		}
		out = append(out, sample)
	}
	p.prevTick = ticks
	p.prevAt = now
	return out, nil
}

func (p *Procfs) Memory(ctx context.Context) (model.MemoryStats, error) {
	lines, err := util.ReadFileLines(filepath.Join(p.root, "meminfo"))
	if err != nil {
		return model.MemoryStats{}, fmt.Errorf("read meminfo: %w", err)
	}
	return parseMeminfo(lines), nil
}

func (p *Procfs) Disk(ctx context.Context, path string) (model.DiskStats, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return model.DiskStats{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(stat.Bsize)
	total := stat.Blocks * bsize
	free := stat.Bfree * bsize
	avail := stat.Bavail * bsize
	used := total - free

	ds := model.DiskStats{Path: path, Total: total, Used: used, Free: avail}
	if used+avail > 0 {
		ds.Percent = float64(used) / float64(used+avail) * 100
	}
	return ds, nil
}
