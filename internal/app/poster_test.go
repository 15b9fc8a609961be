package app

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/ui/poster"
)

func writeThumb(t *testing.T) (string, []byte) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	p := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o600))
	return p, buf.Bytes()
}

func posterSource(thumb string) playback.Source {
	src := playlistSource()
	src.Tracks[0].ThumbnailURL = thumb
	return src
}

func TestPoster_FetchedAndPlacedInFullscreen(t *testing.T) {
	thumb, data := writeThumb(t)
	h, m := newModel(t, posterSource(thumb))
	defer h.ctrl.Stop()
	m = m.WithPoster(poster.New())

	m, _ = press(t, m, runes("f"))
	assert.Equal(t, thumb, m.posterPending)

	m = update(t, m, PosterMsg{Source: thumb, Data: data})
	assert.Empty(t, m.posterPending)
	assert.True(t, m.posterShown())

	view := m.View()
	assert.Contains(t, view, "a=t,f=100", "upload precedes the view")
	assert.Contains(t, view, "a=p,", "placement follows the view")

	m, _ = press(t, m, runes("?"))
	view = m.View()
	assert.NotContains(t, view, "a=p,")
	assert.Contains(t, view, "a=d,d=i", "help hides the thumbnail")
}

func TestPoster_InlineModeDoesNotFetch(t *testing.T) {
	thumb, _ := writeThumb(t)
	h, m := newModel(t, posterSource(thumb))
	defer h.ctrl.Stop()
	m = m.WithPoster(poster.New())

	assert.Nil(t, m.syncPoster())
	assert.Empty(t, m.posterPending)
	assert.NotContains(t, m.View(), "\x1b_G")
}

func TestPoster_StaleResultIgnored(t *testing.T) {
	thumb, data := writeThumb(t)
	h, m := newModel(t, posterSource(thumb))
	defer h.ctrl.Stop()
	m = m.WithPoster(poster.New())
	m, _ = press(t, m, runes("f"))

	m = update(t, m, PosterMsg{Source: "/other/cover.png", Data: data})
	assert.False(t, m.poster.HasImage())
}

func TestPoster_FailedFetchNotRetried(t *testing.T) {
	thumb := filepath.Join(t.TempDir(), "missing.png")
	h, m := newModel(t, posterSource(thumb))
	defer h.ctrl.Stop()
	m = m.WithPoster(poster.New())
	m, _ = press(t, m, runes("f"))

	msg, ok := fetchPoster(thumb)().(PosterMsg)
	require.True(t, ok)
	require.Error(t, msg.Err)

	m = update(t, m, msg)
	assert.False(t, m.posterShown())
	assert.Nil(t, m.syncPoster())
}

func TestFetchPoster_ReadsLocalFile(t *testing.T) {
	thumb, data := writeThumb(t)
	msg, ok := fetchPoster(thumb)().(PosterMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, data, msg.Data)
	assert.Equal(t, thumb, msg.Source)
}
