//nolint:goconst // test cases intentionally repeat strings for readability
package tracksource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_RemoteURL(t *testing.T) {
	src, err := Load("https://media.test/shows/Episode%20One.mp3")
	require.NoError(t, err)

	assert.True(t, src.Single)
	require.Len(t, src.Tracks, 1)
	tr := src.Tracks[0]
	assert.Equal(t, "https://media.test/shows/Episode%20One.mp3", tr.ID)
	assert.Equal(t, "Episode One", tr.Name)
	assert.True(t, tr.IsAudio)
	assert.Equal(t, "Episode One", src.Name)
}

func TestLoad_RemoteVideo(t *testing.T) {
	src, err := Load("https://media.test/clip.mp4")
	require.NoError(t, err)
	require.Len(t, src.Tracks, 1)
	assert.False(t, src.Tracks[0].IsAudio)
}

func TestLoad_LocalFileWithoutTags(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "morning.wav", string(make([]byte, 2048)))

	src, err := Load(p)
	require.NoError(t, err)

	assert.True(t, src.Single)
	require.Len(t, src.Tracks, 1)
	tr := src.Tracks[0]
	assert.Equal(t, p, tr.StreamURL)
	assert.Equal(t, "morning", tr.Name)
	assert.Equal(t, "2.0 KiB", tr.FileSize)
	assert.True(t, tr.IsAudio)
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load("  ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.mp3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoad_Playlist(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "evening.toml", `
name = "Evening"
start = 1

[[tracks]]
id = "intro"
name = "Intro"
url = "https://media.test/intro.mp3"
author = "Host"
duration = "01:30"
size_bytes = 1048576

[[tracks]]
url = "clips/talk.mp4"
quality = "720p"

[[tracks]]
url = "https://media.test/stream?id=7"
audio = true
file_size = "3 MB"
`)

	src, err := Load(p)
	require.NoError(t, err)

	assert.False(t, src.Single)
	assert.Equal(t, "Evening", src.Name)
	assert.Equal(t, 1, src.StartIndex)
	require.Len(t, src.Tracks, 3)

	intro := src.Tracks[0]
	assert.Equal(t, "intro", intro.ID)
	assert.Equal(t, "Intro", intro.Name)
	assert.Equal(t, "Host", intro.Author)
	assert.Equal(t, "01:30", intro.Duration)
	assert.Equal(t, "1.0 MiB", intro.FileSize)
	assert.True(t, intro.IsAudio)

	talk := src.Tracks[1]
	assert.Equal(t, "2", talk.ID)
	assert.Equal(t, filepath.Join(dir, "clips", "talk.mp4"), talk.StreamURL)
	assert.Equal(t, "talk", talk.Name)
	assert.Equal(t, "720p", talk.Quality)
	assert.False(t, talk.IsAudio)

	stream := src.Tracks[2]
	assert.True(t, stream.IsAudio)
	assert.Equal(t, "3 MB", stream.FileSize)
	assert.Equal(t, "stream", stream.Name)
}

func TestLoad_PlaylistNameFromFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "road-trip.toml", `
[[tracks]]
url = "https://media.test/a.mp3"
`)

	src, err := LoadPlaylist(p)
	require.NoError(t, err)
	assert.Equal(t, "road-trip", src.Name)
	assert.Equal(t, 0, src.StartIndex)
}

func TestLoad_PlaylistWithoutTracks(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "empty.toml", `name = "Nothing"`)

	src, err := Load(p)
	require.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, "Nothing", src.Name)
}

func TestLoad_PlaylistMissingURL(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.toml", `
[[tracks]]
name = "Nowhere"
`)

	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "track 1: missing url")
}

func TestLoad_PlaylistInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "broken.toml", `name = "unterminated`)

	_, err := Load(p)
	assert.Error(t, err)
}

func TestNameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://media.test/a/b/song.flac", "song"},
		{"https://media.test/My%20Song.mp3", "My Song"},
		{"https://media.test/", "media.test"},
		{"https://media.test", "media.test"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := nameFromURL(tt.in); got != tt.want {
				t.Errorf("nameFromURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadPlaylist_LocalEntryKeepsExplicitFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "song.m4a", "not really an mp4")
	p := writeFile(t, dir, "list.toml", `
[[tracks]]
url = "song.m4a"
name = "Given Name"
author = "Given Author"
duration = "03:00"
quality = "AAC 256k"
thumbnail = "art/cover.jpg"

[[tracks]]
url = "https://media.test/b.mp3"
thumbnail = "https://media.test/b.jpg"
`)

	src, err := LoadPlaylist(p)
	require.NoError(t, err)
	require.Len(t, src.Tracks, 2)
	tr := src.Tracks[0]
	assert.Equal(t, filepath.Join(dir, "song.m4a"), tr.StreamURL)
	assert.Equal(t, filepath.Join(dir, "art", "cover.jpg"), tr.ThumbnailURL)
	assert.Equal(t, "https://media.test/b.jpg", src.Tracks[1].ThumbnailURL)
	assert.Equal(t, "Given Name", tr.Name)
	assert.Equal(t, "Given Author", tr.Author)
	assert.Equal(t, "03:00", tr.Duration)
	assert.Equal(t, "AAC 256k", tr.Quality)
	assert.True(t, tr.IsAudio)
}
