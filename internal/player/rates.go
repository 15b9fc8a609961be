package player

import "slices"

// Rates is the ordered set of selectable playback rates.
var Rates = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2, 2.5, 3}

// DefaultRate is normal speed.
const DefaultRate = 1.0

// RateIndex returns the position of r in Rates, or -1.
func RateIndex(r float64) int {
	return slices.Index(Rates, r)
}

// StepRate moves dir steps through Rates from r, clamped at either end.
// A rate outside the set steps from normal speed.
func StepRate(r float64, dir int) float64 {
	i := RateIndex(r)
	if i < 0 {
		i = RateIndex(DefaultRate)
	}
	i = max(0, min(len(Rates)-1, i+dir))
	return Rates[i]
}
