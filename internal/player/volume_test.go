package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelToVolume(t *testing.T) {
	assert.InDelta(t, 0.0, levelToVolume(1), 1e-9)
	assert.InDelta(t, 0.0, levelToVolume(1.5), 1e-9)
	assert.InDelta(t, -1.0, levelToVolume(0.5), 1e-9)
	assert.InDelta(t, -2.0, levelToVolume(0.25), 1e-9)
	assert.InDelta(t, -10.0, levelToVolume(0), 1e-9)
	assert.InDelta(t, -10.0, levelToVolume(-0.2), 1e-9)
}

func TestClampLevel(t *testing.T) {
	assert.InDelta(t, 0.0, clampLevel(-1), 1e-9)
	assert.InDelta(t, 0.3, clampLevel(0.3), 1e-9)
	assert.InDelta(t, 1.0, clampLevel(7), 1e-9)
}
