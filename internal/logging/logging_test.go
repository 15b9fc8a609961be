package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_WritesAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theater.log")

	log, closer, err := Open(path, logrus.InfoLevel)
	require.NoError(t, err)

	log.WithField("component", "controller").Info("start")
	log.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=controller")
	assert.Contains(t, string(data), "msg=start")
	assert.NotContains(t, string(data), "hidden")
}

func TestOpen_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theater.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0o600))

	log, closer, err := Open(path, logrus.InfoLevel)
	require.NoError(t, err)
	log.Info("later")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "earlier\n")
	assert.Contains(t, string(data), "msg=later")
}

func TestOpen_MissingDirectory(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing", "theater.log"), logrus.InfoLevel)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("dropped")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
