// Package metrics supplies point-in-time host readings to the dashboard pages.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/ftahirops/hostdash/model"
	"github.com/sirupsen/logrus"
)

// Provider is the source of host metrics. Every call is a single best-effort
// read; sampling calls block for at most the interval they are given.
type Provider interface {
	CPU(ctx context.Context, interval time.Duration) (model.CPUStats, error)
	Processes(ctx context.Context) ([]model.ProcessSample, error)
	Memory(ctx context.Context) (model.MemoryStats, error)
	Disk(ctx context.Context, path string) (model.DiskStats, error)
}

// Provider kinds accepted by New.
const (
	KindGopsutil = "gopsutil"
	KindProcfs   = "procfs"
)

// New builds the provider named by kind.
func New(kind string, log logrus.FieldLogger) (Provider, error) {
	switch kind {
	case "", KindGopsutil:
		return NewHost(log), nil
	case KindProcfs:
		return newProcfs(DefaultProcRoot, log)
	default:
		return nil, fmt.Errorf("unknown metrics provider %q", kind)
	}
}

// Collect takes one full snapshot. The first failing read aborts the
// snapshot; callers that want partial data should call the provider directly.
func Collect(ctx context.Context, p Provider, interval time.Duration, mount string) (*model.Snapshot, error) {
	var snap model.Snapshot
	var err error

	if snap.CPU, err = p.CPU(ctx, interval); err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}
	if snap.Memory, err = p.Memory(ctx); err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	if snap.Disk, err = p.Disk(ctx, mount); err != nil {
		return nil, fmt.Errorf("disk %s: %w", mount, err)
	}
	if snap.Processes, err = p.Processes(ctx); err != nil {
		return nil, fmt.Errorf("processes: %w", err)
	}
	return &snap, nil
}
