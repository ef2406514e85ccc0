package util

import "math"

const bytesPerGB = 1024 * 1024 * 1024

// BytesToGB converts a byte count to gigabytes (1024^3), rounded to two
// decimals. Zero yields 0.
func BytesToGB(b uint64) float64 {
	if b == 0 {
		return 0
	}
	return math.Round(float64(b)/bytesPerGB*100) / 100
}

// BytesToGBPtr is BytesToGB for counters a source may not report.
func BytesToGBPtr(b *uint64) float64 {
	if b == nil {
		return 0
	}
	return BytesToGB(*b)
}

// BytesToKB converts a file size to kilobytes, rounded to two decimals.
func BytesToKB(b int64) float64 {
	if b <= 0 {
		return 0
	}
	return math.Round(float64(b)/1024*100) / 100
}
