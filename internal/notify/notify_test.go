package notify

import (
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/state"
)

func TestDiscard(t *testing.T) {
	var n Notifier = Discard{}
	id, err := n.Notify(Notification{Title: "x"})
	if err != nil || id != 0 {
		t.Errorf("Notify() = %d, %v, want 0, nil", id, err)
	}
	if err := n.Close(3); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []Notification
	nextID uint32
	err    error
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeNotifier) Close(_ uint32) error { return nil }

func (f *fakeNotifier) notifications() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.sent...)
}

func TestTrackNotification(t *testing.T) {
	tests := []struct {
		name     string
		track    playlist.Track
		playlist string
		index    int
		total    int
		want     string
	}{
		{"author and position", playlist.Track{Name: "Intro", Author: "Host"}, "Evening", 0, 3, "Host · 1/3 · Evening"},
		{"single track", playlist.Track{Name: "Intro"}, "Intro", 0, 1, ""},
		{"no author", playlist.Track{Name: "Talk"}, "Evening", 1, 2, "2/2 · Evening"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := TrackNotification(tt.track, tt.playlist, tt.index, tt.total)
			if n.Body != tt.want {
				t.Errorf("TrackNotification().Body = %q, want %q", n.Body, tt.want)
			}
			if n.Title != tt.track.Name {
				t.Errorf("TrackNotification().Title = %q, want %q", n.Title, tt.track.Name)
			}
			if !n.Transient || n.Urgency != UrgencyLow {
				t.Errorf("TrackNotification() = transient %v urgency %d, want transient low", n.Transient, n.Urgency)
			}
		})
	}
}

func TestAnnouncerReplacesPrevious(t *testing.T) {
	f := &fakeNotifier{}
	a := NewAnnouncer(f, nil)

	a.Announce(Notification{Title: "one"})
	a.Announce(Notification{Title: "two"})

	sent := f.notifications()
	if len(sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(sent))
	}
	if sent[0].ReplacesID != 0 {
		t.Errorf("first ReplacesID = %d, want 0", sent[0].ReplacesID)
	}
	if sent[1].ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", sent[1].ReplacesID)
	}
}

func TestAnnouncerSwallowsErrors(t *testing.T) {
	f := &fakeNotifier{err: errors.New("no server")}
	a := NewAnnouncer(f, nil)

	a.Announce(Notification{Title: "one"})
	if a.lastID != 0 {
		t.Errorf("lastID = %d, want 0", a.lastID)
	}
}

func TestAnnouncerRun(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tracks := []playlist.Track{
			{ID: "a", Name: "Opening", IsAudio: true, StreamURL: "https://media.test/a.mp3"},
			{ID: "b", Name: "Closing", IsAudio: true, StreamURL: "https://media.test/b.mp3"},
		}
		prefs := state.NewPreferences(state.NewMock(), nil)
		engine := playback.NewEngine(player.NewMockOpener(), prefs)
		ctrl := playback.New(engine, prefs, playback.Source{Name: "Evening", Tracks: tracks})

		f := &fakeNotifier{}
		done := make(chan struct{})
		go func() {
			NewAnnouncer(f, nil).Run(ctrl)
			close(done)
		}()
		synctest.Wait()

		ctrl.Start()
		synctest.Wait()
		if got := len(f.notifications()); got != 0 {
			t.Fatalf("sent %d notifications before playback, want 0", got)
		}

		ctrl.NextTrack()
		synctest.Wait()
		sent := f.notifications()
		if len(sent) != 1 {
			t.Fatalf("sent %d notifications, want 1", len(sent))
		}
		if sent[0].Title != "Closing" || sent[0].Body != "2/2 · Evening" {
			t.Errorf("notification = %q / %q", sent[0].Title, sent[0].Body)
		}

		ctrl.Stop()
		<-done
	})
}
