package state

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
)

// Preference keys. These are persisted and must stay stable.
const (
	KeyVolume   = "player.volume"
	KeyRate     = "player.rate"
	KeyMuted    = "player.muted"
	KeyRepeat   = "player.repeat"
	KeyShuffle  = "player.shuffle"
	KeyAutoplay = "player.autoplay"
	KeySidebar  = "player.sidebar"
)

// Defaults for missing or unreadable preferences.
const (
	DefaultVolume   = 1.0
	DefaultRate     = player.DefaultRate
	DefaultMuted    = false
	DefaultRepeat   = playlist.RepeatOff
	DefaultShuffle  = false
	DefaultAutoplay = true
	DefaultSidebar  = true
)

// Preferences reads and writes typed preference values over a Store.
// Store failures are logged at debug level and otherwise ignored: reads fall
// back to defaults and writes are dropped.
type Preferences struct {
	store Store
	log   logrus.FieldLogger
}

// NewPreferences wraps store. A nil store yields defaults for every read.
func NewPreferences(store Store, log logrus.FieldLogger) *Preferences {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Preferences{
		store: store,
		log:   log.WithField("component", "preferences"),
	}
}

func (p *Preferences) get(key string) (string, bool) {
	if p == nil || p.store == nil {
		return "", false
	}
	v, ok, err := p.store.GetPreference(key)
	if err != nil {
		p.log.WithError(err).WithField("key", key).Debug("read preference")
		return "", false
	}
	return v, ok
}

func (p *Preferences) set(key, value string) {
	if p == nil || p.store == nil {
		return
	}
	if err := p.store.SetPreference(key, value); err != nil {
		p.log.WithError(err).WithField("key", key).Debug("write preference")
	}
}

// flusher is implemented by stores that buffer writes.
type flusher interface {
	Flush() error
}

// setNow writes key and flushes a buffering store. Volume is the only
// preference written in bursts; everything else goes straight to disk.
func (p *Preferences) setNow(key, value string) {
	p.set(key, value)
	if p == nil {
		return
	}
	f, ok := p.store.(flusher)
	if !ok {
		return
	}
	if err := f.Flush(); err != nil {
		p.log.WithError(err).WithField("key", key).Debug("flush preference")
	}
}

func (p *Preferences) float(key string, def float64, valid func(float64) bool) float64 {
	s, ok := p.get(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !valid(f) {
		return def
	}
	return f
}

// boolTrue is true only for a stored "true".
func (p *Preferences) boolTrue(key string) bool {
	s, ok := p.get(key)
	return ok && s == "true"
}

// boolNotFalse is true unless "false" is stored.
func (p *Preferences) boolNotFalse(key string) bool {
	s, ok := p.get(key)
	return !ok || s != "false"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Volume returns the stored volume in [0,1].
func (p *Preferences) Volume() float64 {
	return p.float(KeyVolume, DefaultVolume, func(f float64) bool { return f >= 0 && f <= 1 })
}

func (p *Preferences) SetVolume(v float64) { p.set(KeyVolume, formatFloat(v)) }

// Rate returns the stored rate if it belongs to the selectable set.
func (p *Preferences) Rate() float64 {
	return p.float(KeyRate, DefaultRate, func(f float64) bool { return player.RateIndex(f) >= 0 })
}

func (p *Preferences) SetRate(r float64) { p.setNow(KeyRate, formatFloat(r)) }

func (p *Preferences) Muted() bool { return p.boolTrue(KeyMuted) }

func (p *Preferences) SetMuted(m bool) { p.setNow(KeyMuted, strconv.FormatBool(m)) }

func (p *Preferences) Repeat() playlist.RepeatMode {
	s, ok := p.get(KeyRepeat)
	if !ok {
		return DefaultRepeat
	}
	m, ok := playlist.ParseRepeatMode(s)
	if !ok {
		return DefaultRepeat
	}
	return m
}

func (p *Preferences) SetRepeat(m playlist.RepeatMode) { p.setNow(KeyRepeat, m.String()) }

func (p *Preferences) Shuffle() bool { return p.boolTrue(KeyShuffle) }

func (p *Preferences) SetShuffle(b bool) { p.setNow(KeyShuffle, strconv.FormatBool(b)) }

func (p *Preferences) Autoplay() bool { return p.boolNotFalse(KeyAutoplay) }

func (p *Preferences) SetAutoplay(b bool) { p.setNow(KeyAutoplay, strconv.FormatBool(b)) }

func (p *Preferences) Sidebar() bool { return p.boolNotFalse(KeySidebar) }

func (p *Preferences) SetSidebar(b bool) { p.setNow(KeySidebar, strconv.FormatBool(b)) }
