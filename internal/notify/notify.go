// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/playlist"
)

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
	Transient  bool    // skip the daemon's history
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Discard is a Notifier that drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) (uint32, error) { return 0, nil }

func (Discard) Close(uint32) error { return nil }

// trackTimeout is how long a now-playing notification stays up, in ms.
const trackTimeout = 5000

// Source is what an Announcer watches.
type Source interface {
	Subscribe() *playback.Subscription
	PlaylistName() string
	Tracks() []playlist.Track
}

// Announcer shows a notification whenever a track starts playing, replacing
// the previous one so only the latest stays on screen.
type Announcer struct {
	notifier Notifier
	log      logrus.FieldLogger
	lastID   uint32
}

// NewAnnouncer creates an Announcer sending through n.
func NewAnnouncer(n Notifier, log logrus.FieldLogger) *Announcer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Announcer{notifier: n, log: log.WithField("component", "notify")}
}

// Run announces auto-started track changes until the source's subscription
// is closed.
func (a *Announcer) Run(src Source) {
	sub := src.Subscribe()
	for {
		select {
		case ev := <-sub.TrackChanged:
			if !ev.AutoStart || ev.Current == nil {
				continue
			}
			a.Announce(TrackNotification(*ev.Current, src.PlaylistName(), ev.Index, len(src.Tracks())))
		case <-sub.Done:
			return
		}
	}
}

// Announce sends n, replacing the previous announcement.
func (a *Announcer) Announce(n Notification) {
	n.ReplacesID = a.lastID
	id, err := a.notifier.Notify(n)
	if err != nil {
		a.log.WithError(err).Debug("notification failed")
		return
	}
	a.lastID = id
}

// TrackNotification builds the now-playing notification for t, the index-th
// of total tracks in the named playlist.
func TrackNotification(t playlist.Track, playlistName string, index, total int) Notification {
	var parts []string
	if t.Author != "" {
		parts = append(parts, t.Author)
	}
	if total > 1 {
		parts = append(parts, fmt.Sprintf("%d/%d", index+1, total))
	}
	if playlistName != "" && playlistName != t.DisplayName() {
		parts = append(parts, playlistName)
	}
	return Notification{
		Title:     t.DisplayName(),
		Body:      strings.Join(parts, " · "),
		Icon:      IconFor(t),
		Timeout:   trackTimeout,
		Urgency:   UrgencyLow,
		Transient: true,
	}
}
