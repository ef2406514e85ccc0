package util

import "time"

// Rate computes the per-second rate between two counter values.
func Rate(prev, curr uint64, dt time.Duration) float64 {
	if dt <= 0 || curr < prev {
		return 0
	}
	return float64(curr-prev) / dt.Seconds()
}

// CPUPct computes the share of active ticks between two samples, as a
// percentage clamped to [0, 100]. A counter that went backwards yields 0.
func CPUPct(prevActive, currActive, prevTotal, currTotal uint64) float64 {
	dtotal := Delta(prevTotal, currTotal)
	if dtotal == 0 {
		return 0
	}
	pct := float64(Delta(prevActive, currActive)) / float64(dtotal) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Delta returns curr - prev, or 0 if curr < prev (counter wrap).
func Delta(prev, curr uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}
