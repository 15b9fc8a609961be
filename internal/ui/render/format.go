package render

import (
	"fmt"
	"strconv"
	"time"
)

// FormatTime renders d as MM:SS below an hour and H:MM:SS otherwise.
// Negative durations render as zero.
func FormatTime(d time.Duration) string {
	total := max(int(d/time.Second), 0)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatRate renders a playback rate, e.g. "1.5x".
func FormatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64) + "x"
}

// FormatPercent renders a [0,1] level as a whole percentage.
func FormatPercent(v float64) string {
	return strconv.Itoa(int(v*100+0.5)) + "%"
}
