package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlaylist(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "evening.toml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

const twoTracks = `
name = "Evening"
start = 1

[[tracks]]
url = "https://media.test/a.mp3"

[[tracks]]
url = "https://media.test/b.mp3"
`

func TestLoadSource_Overrides(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	p := writePlaylist(t, twoTracks)

	src, err := loadSource(p, options{}, log)
	require.NoError(t, err)
	assert.Equal(t, "Evening", src.Name)
	assert.Equal(t, 1, src.StartIndex)

	src, err = loadSource(p, options{name: "Late", start: 0, startSet: true}, log)
	require.NoError(t, err)
	assert.Equal(t, "Late", src.Name)
	assert.Equal(t, 0, src.StartIndex)
}

func TestLoadSource_EmptyPlaylistRunsIdle(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	p := writePlaylist(t, `name = "Nothing"`)

	src, err := loadSource(p, options{}, log)
	require.NoError(t, err)
	assert.Empty(t, src.Tracks)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "nothing to play", hook.LastEntry().Message)
}

func TestLoadSource_Missing(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	_, err := loadSource(filepath.Join(t.TempDir(), "gone.mp3"), options{}, log)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootCmd_RequiresOneInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())

	for _, name := range []string{"start", "name", "config", "no-mpris"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
}
