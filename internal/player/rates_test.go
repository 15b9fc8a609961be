package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepRate(t *testing.T) {
	tests := []struct {
		name string
		from float64
		dir  int
		want float64
	}{
		{"up from normal", 1, 1, 1.25},
		{"down from normal", 1, -1, 0.75},
		{"clamped at top", 3, 1, 3},
		{"clamped at bottom", 0.25, -1, 0.25},
		{"two point five to three", 2.5, 1, 3},
		{"off-set rate steps from normal", 1.1, 1, 1.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StepRate(tt.from, tt.dir), 1e-9)
		})
	}
}

func TestRateIndex(t *testing.T) {
	assert.Equal(t, 3, RateIndex(1))
	assert.Equal(t, -1, RateIndex(0.3))
}
