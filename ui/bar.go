package ui

import (
	"fmt"
	"math"
	"strings"
)

// BarLength is the gauge width used when a caller passes a non-positive length.
const BarLength = 30

// Bar renders p as a bracketed gauge followed by its value:
//
//	[#########                     ] 30.0%
//
// The fill count is floor(length*p/100) clamped to [0, length], so values
// outside 0..100 give an empty or full gauge while the label shows p as is.
func Bar(p float64, length int, fill rune) string {
	if length <= 0 {
		length = BarLength
	}
	n := 0
	if v := math.Floor(float64(length) * p / 100); v > 0 {
		n = int(math.Min(v, float64(length)))
	}
	var sb strings.Builder
	sb.Grow(length + 10)
	sb.WriteByte('[')
	sb.WriteString(strings.Repeat(string(fill), n))
	sb.WriteString(strings.Repeat(" ", length-n))
	sb.WriteString("] ")
	fmt.Fprintf(&sb, "%.1f%%", p)
	return sb.String()
}
