package metrics

import (
	"fmt"
	"strings"

	"github.com/ftahirops/hostdash/model"
	"github.com/ftahirops/hostdash/util"
)

// DefaultProcRoot is where the procfs provider looks for /proc.
const DefaultProcRoot = "/proc"

// clockTicks is USER_HZ, the unit of /proc/[pid]/stat utime and stime.
const clockTicks = 100

// cpuTimes is one "cpu" line of /proc/stat reduced to what a busy percentage needs.
type cpuTimes struct {
	total uint64
	idle  uint64 // idle + iowait
}

// parseCPULine parses "cpu  user nice system idle iowait irq softirq steal ...".
// guest and guest_nice are already counted in user and nice.
func parseCPULine(line string) cpuTimes {
	fields := strings.Fields(line)
	var ct cpuTimes
	for i := 1; i < len(fields) && i <= 8; i++ {
		v := util.ParseUint64(fields[i])
		ct.total += v
		if i == 4 || i == 5 {
			ct.idle += v
		}
	}
	return ct
}

// parseStat returns the aggregate and per-CPU lines of /proc/stat.
func parseStat(lines []string) (cpuTimes, []cpuTimes) {
	var total cpuTimes
	var perCPU []cpuTimes
	for _, line := range lines {
		if strings.HasPrefix(line, "cpu ") {
			total = parseCPULine(line)
		} else if strings.HasPrefix(line, "cpu") {
			perCPU = append(perCPU, parseCPULine(line))
		}
	}
	return total, perCPU
}

// busyPercent is the share of non-idle time between two samples.
func busyPercent(prev, cur cpuTimes) float64 {
	return util.CPUPct(prev.total-prev.idle, cur.total-cur.idle, prev.total, cur.total)
}

// parseMeminfo converts /proc/meminfo lines into MemoryStats. Used and
// Percent follow the "total minus available" definition when MemAvailable is
// present (kernels >= 3.14), else free+buffers+cached is treated as available.
func parseMeminfo(lines []string) model.MemoryStats {
	kv := util.ParseKeyValueLines(lines)
	var st model.MemoryStats
	st.Total = parseKB(kv["MemTotal"])

	var avail uint64
	if v, ok := kv["MemAvailable"]; ok {
		avail = parseKB(v)
		st.Available = &avail
	} else {
		avail = parseKB(kv["MemFree"]) + parseKB(kv["Buffers"]) + parseKB(kv["Cached"])
	}
	if avail < st.Total {
		st.Used = st.Total - avail
	}
	if st.Total > 0 {
		st.Percent = float64(st.Used) / float64(st.Total) * 100
	}
	return st
}

// parseKB parses a meminfo value like "1234 kB" and returns bytes.
func parseKB(s string) uint64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "kB")
	return util.ParseUint64(s) * 1024
}

// parsePIDStat extracts comm and utime+stime from /proc/[pid]/stat.
func parsePIDStat(content string) (string, uint64, error) {
	// comm can contain spaces and parens, so find the last ')' to split
	closeIdx := strings.LastIndex(content, ")")
	openIdx := strings.Index(content, "(")
	if openIdx < 0 || closeIdx < openIdx {
		return "", 0, fmt.Errorf("bad stat format")
	}
	comm := content[openIdx+1 : closeIdx]
	if closeIdx+2 > len(content) {
		return "", 0, fmt.Errorf("stat too short")
	}
	rest := strings.Fields(content[closeIdx+2:])
	if len(rest) < 13 {
		return "", 0, fmt.Errorf("stat too short")
	}
	return comm, util.ParseUint64(rest[11]) + util.ParseUint64(rest[12]), nil
}
