package ui

import (
	"sort"

	"github.com/ftahirops/hostdash/model"
)

// TopProcesses is how many processes the CPU page lists.
const TopProcesses = 5

// RankedProcess is one row of the CPU page's process table.
type RankedProcess struct {
	PID        int32
	CPUPercent float64
	Name       string
}

// RankProcesses keeps processes with a positive CPU reading, ordered from
// busiest to idlest, at most TopProcesses of them. Equal readings keep their
// sample order. procs is not modified.
func RankProcesses(procs []model.ProcessSample) []RankedProcess {
	out := make([]RankedProcess, 0, len(procs))
	for _, p := range procs {
		if p.CPUPercent == nil || *p.CPUPercent <= 0 {
			continue
		}
		out = append(out, RankedProcess{PID: p.PID, CPUPercent: *p.CPUPercent, Name: p.Name})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CPUPercent > out[j].CPUPercent
	})
	if len(out) > TopProcesses {
		out = out[:TopProcesses]
	}
	return out
}

// TruncateName cuts name to at most max runes. A non-positive max yields "".
func TruncateName(name string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	return string(r[:max])
}
