package metrics

import (
	"context"
	"time"

	"github.com/ftahirops/hostdash/model"
)

// Static serves a fixed snapshot. It backs the report command's offline
// rendering in tests and lets pages be exercised without touching the host.
type Static struct {
	Snap model.Snapshot
	Err  error // returned by every call when set
}

func (s *Static) CPU(ctx context.Context, interval time.Duration) (model.CPUStats, error) {
	if s.Err != nil {
		return model.CPUStats{}, s.Err
	}
	return s.Snap.CPU, nil
}

func (s *Static) Processes(ctx context.Context) ([]model.ProcessSample, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.ProcessSample, len(s.Snap.Processes))
	copy(out, s.Snap.Processes)
	return out, nil
}

func (s *Static) Memory(ctx context.Context) (model.MemoryStats, error) {
	if s.Err != nil {
		return model.MemoryStats{}, s.Err
	}
	return s.Snap.Memory, nil
}

func (s *Static) Disk(ctx context.Context, path string) (model.DiskStats, error) {
	if s.Err != nil {
		return model.DiskStats{}, s.Err
	}
	d := s.Snap.Disk
	d.Path = path
	return d, nil
}
