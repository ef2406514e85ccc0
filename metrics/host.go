package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ftahirops/hostdash/model"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

// Host reads metrics through gopsutil.
//
// Per-process CPU percent is a delta against the previous Processes call, so
// Host keeps the process handles it has seen. A PID observed for the first
// time reports 0.0.
type Host struct {
	log logrus.FieldLogger

	mu    sync.Mutex
	procs map[int32]*process.Process
}

// NewHost creates a gopsutil backed provider.
func NewHost(log logrus.FieldLogger) *Host {
	return &Host{
		log:   log,
		procs: make(map[int32]*process.Process),
	}
}

// CPU samples every core over one interval; the overall figure is their mean.
func (h *Host) CPU(ctx context.Context, interval time.Duration) (model.CPUStats, error) {
	var st model.CPUStats
	var err error

	st.PerCore, err = cpu.PercentWithContext(ctx, interval, true)
	if err != nil {
		return st, fmt.Errorf("per-core percent: %w", err)
	}
	if len(st.PerCore) > 0 {
		var sum float64
		for _, v := range st.PerCore {
			sum += v
		}
		st.OverallPercent = sum / float64(len(st.PerCore))
	}

	st.CoreCount, err = cpu.CountsWithContext(ctx, true)
	if err != nil {
		return st, fmt.Errorf("core count: %w", err)
	}
	return st, nil
}

func (h *Host) Processes(ctx context.Context) ([]model.ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[int32]*process.Process, len(procs))
	out := make([]model.ProcessSample, 0, len(procs))
	for _, p := range procs {
		prev, known := h.procs[p.Pid]
		if known {
			p = prev
		}
		seen[p.Pid] = p

		sample := model.ProcessSample{PID: p.Pid}
		if name, err := p.NameWithContext(ctx); err == nil {
			sample.Name = name
		}
		// The first reading only primes the handle's CPU times.
		pct, err := p.PercentWithContext(ctx, 0)
		switch {
		case err != nil:
			h.log.WithError(err).WithField("pid", p.Pid).Debug("cpu percent unavailable")
		case !known:
			sample.CPUPercent = model.Percent(0)
		default:
			sample.CPUPercent = model.Percent(pct)
		}
		out = append(out, sample)
	}
	h.procs = seen
	return out, nil
}

func (h *Host) Memory(ctx context.Context) (model.MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return model.MemoryStats{}, fmt.Errorf("virtual memory: %w", err)
	}
	avail := vm.Available
	return model.MemoryStats{
		Total:     vm.Total,
		Used:      vm.Used,
		Available: &avail,
		Percent:   vm.UsedPercent,
	}, nil
}

func (h *Host) Disk(ctx context.Context, path string) (model.DiskStats, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return model.DiskStats{}, fmt.Errorf("usage %s: %w", path, err)
	}
	return model.DiskStats{
		Path:    u.Path,
		Total:   u.Total,
		Used:    u.Used,
		Free:    u.Free,
		Percent: u.UsedPercent,
	}, nil
}
