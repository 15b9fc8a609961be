package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/theater/internal/playlist"
)

func TestPreferences_MissingKeysReadAsDefaults(t *testing.T) {
	p := NewPreferences(NewMock(), nil)

	assert.InDelta(t, 1.0, p.Volume(), 1e-9)
	assert.InDelta(t, 1.0, p.Rate(), 1e-9)
	assert.False(t, p.Muted())
	assert.Equal(t, playlist.RepeatOff, p.Repeat())
	assert.False(t, p.Shuffle())
	assert.True(t, p.Autoplay())
	assert.True(t, p.Sidebar())
}

func TestPreferences_NilStoreReadsDefaults(t *testing.T) {
	p := NewPreferences(nil, nil)

	p.SetVolume(0.2)
	assert.InDelta(t, 1.0, p.Volume(), 1e-9)
	assert.True(t, p.Autoplay())
}

func TestPreferences_InvalidValuesReadAsDefaults(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, p *Preferences)
	}{
		{KeyVolume, "loud", func(t *testing.T, p *Preferences) { assert.InDelta(t, 1.0, p.Volume(), 1e-9) }},
		{KeyVolume, "1.5", func(t *testing.T, p *Preferences) { assert.InDelta(t, 1.0, p.Volume(), 1e-9) }},
		{KeyVolume, "-0.1", func(t *testing.T, p *Preferences) { assert.InDelta(t, 1.0, p.Volume(), 1e-9) }},
		{KeyRate, "1.1", func(t *testing.T, p *Preferences) { assert.InDelta(t, 1.0, p.Rate(), 1e-9) }},
		{KeyRate, "fast", func(t *testing.T, p *Preferences) { assert.InDelta(t, 1.0, p.Rate(), 1e-9) }},
		{KeyRepeat, "forever", func(t *testing.T, p *Preferences) { assert.Equal(t, playlist.RepeatOff, p.Repeat()) }},
		{KeyMuted, "yes", func(t *testing.T, p *Preferences) { assert.False(t, p.Muted()) }},
		{KeyShuffle, "1", func(t *testing.T, p *Preferences) { assert.False(t, p.Shuffle()) }},
		{KeyAutoplay, "0", func(t *testing.T, p *Preferences) { assert.True(t, p.Autoplay()) }},
		{KeySidebar, "", func(t *testing.T, p *Preferences) { assert.True(t, p.Sidebar()) }},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			m := NewMock()
			m.Seed(tt.key, tt.value)
			tt.check(t, NewPreferences(m, nil))
		})
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	m := NewMock()
	p := NewPreferences(m, nil)

	p.SetVolume(0.35)
	p.SetRate(1.75)
	p.SetMuted(true)
	p.SetRepeat(playlist.RepeatOne)
	p.SetShuffle(true)
	p.SetAutoplay(false)
	p.SetSidebar(false)

	assert.InDelta(t, 0.35, p.Volume(), 1e-9)
	assert.InDelta(t, 1.75, p.Rate(), 1e-9)
	assert.True(t, p.Muted())
	assert.Equal(t, playlist.RepeatOne, p.Repeat())
	assert.True(t, p.Shuffle())
	assert.False(t, p.Autoplay())
	assert.False(t, p.Sidebar())

	assert.Equal(t, map[string]string{
		KeyVolume:   "0.35",
		KeyRate:     "1.75",
		KeyMuted:    "true",
		KeyRepeat:   "one",
		KeyShuffle:  "true",
		KeyAutoplay: "false",
		KeySidebar:  "false",
	}, m.Values())
}

func TestPreferences_StoreFailuresSwallowed(t *testing.T) {
	m := NewMock()
	m.Seed(KeyVolume, "0.5")
	m.FailGet(errors.New("disk gone"))
	m.FailSet(errors.New("disk gone"))
	p := NewPreferences(m, nil)

	assert.InDelta(t, 1.0, p.Volume(), 1e-9)
	assert.NotPanics(t, func() { p.SetVolume(0.1) })
	assert.Equal(t, 1, m.SetCalls())

	v, _ := m.Value(KeyVolume)
	assert.Equal(t, "0.5", v)
}

func TestPreferences_TogglesFlushVolumeDoesNot(t *testing.T) {
	m := NewMock()
	p := NewPreferences(m, nil)

	p.SetVolume(0.4)
	p.SetVolume(0.45)
	assert.Equal(t, 0, m.FlushCalls())

	p.SetMuted(true)
	p.SetRate(1.5)
	p.SetRepeat(playlist.RepeatAll)
	p.SetShuffle(true)
	p.SetAutoplay(false)
	p.SetSidebar(false)
	assert.Equal(t, 6, m.FlushCalls())
}

func TestPreferences_NilPreferencesIgnoreWrites(t *testing.T) {
	var p *Preferences
	assert.NotPanics(t, func() { p.SetShuffle(true) })
	assert.NotPanics(t, func() { NewPreferences(nil, nil).SetRepeat(playlist.RepeatOne) })
}
