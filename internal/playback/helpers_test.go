package playback

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/state"
)

type harness struct {
	opener *player.MockOpener
	caps   *player.MockCapabilities
	store  *state.Mock
	prefs  *state.Preferences
	engine *Engine
	ctrl   *Controller
	logs   *logtest.Hook
}

// newHarness builds an engine and controller over mocks. Preferences may be
// seeded through seed before construction.
func newHarness(t *testing.T, src Source, seed map[string]string, opts ...Option) *harness {
	t.Helper()

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	h := &harness{
		opener: player.NewMockOpener(),
		caps:   &player.MockCapabilities{PiPSupported: true},
		store:  state.NewMock(),
		logs:   hook,
	}
	for k, v := range seed {
		h.store.Seed(k, v)
	}
	h.prefs = state.NewPreferences(h.store, log)
	h.engine = NewEngine(h.opener, h.prefs,
		WithEngineLogger(log),
		WithCapabilities(h.caps),
	)
	opts = append([]Option{WithLogger(log), WithShuffler(playlist.NewSeededFisherYates(1, 2))}, opts...)
	h.ctrl = New(h.engine, h.prefs, src, opts...)
	return h
}

// last returns the most recently opened media handle.
func (h *harness) last(t *testing.T) *player.Mock {
	t.Helper()
	m := h.opener.Last()
	if m == nil {
		t.Fatal("no media handle opened")
	}
	return m
}

// opened returns the track IDs of every handle opened so far.
func (h *harness) opened() []string {
	var ids []string
	for _, m := range h.opener.Handles() {
		ids = append(ids, idFromURL(m.URL()))
	}
	return ids
}

func makeTracks(ids ...string) []playlist.Track {
	tracks := make([]playlist.Track, len(ids))
	for i, id := range ids {
		tracks[i] = playlist.Track{
			ID:        id,
			Name:      "Track " + id,
			IsAudio:   true,
			StreamURL: "https://media.test/stream/" + id + ".mp3",
		}
	}
	return tracks
}

func idFromURL(u string) string {
	u = strings.TrimPrefix(u, "https://media.test/stream/")
	return strings.TrimSuffix(u, ".mp3")
}

// drainCountdown returns every countdown value queued on sub.
func drainCountdown(sub *Subscription) []int {
	var got []int
	for {
		select {
		case c := <-sub.CountdownChanged:
			got = append(got, c.Remaining)
		default:
			return got
		}
	}
}
