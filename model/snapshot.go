package model

// Snapshot holds one point-in-time read of the host. It is built fresh for
// each page render and never retained.
type Snapshot struct {
	CPU       CPUStats
	Memory    MemoryStats
	Disk      DiskStats
	Processes []ProcessSample
}

// CPUStats holds utilization sampled over a bounded interval.
type CPUStats struct {
	OverallPercent float64
	PerCore        []float64
	CoreCount      int // logical cores
}

// MemoryStats mirrors the virtual memory counters in bytes.
type MemoryStats struct {
	Total     uint64
	Used      uint64
	Available *uint64 // nil when the source does not report it
	Percent   float64
}

// DiskStats holds usage of one mounted filesystem.
type DiskStats struct {
	Path    string
	Total   uint64
	Used    uint64
	Free    uint64
	Percent float64
}

// ProcessSample is one entry of the process table.
type ProcessSample struct {
	PID        int32
	Name       string
	CPUPercent *float64 // nil when the sample could not be taken
}

// Percent returns a pointer to v, for building samples.
func Percent(v float64) *float64 {
	return &v
}
