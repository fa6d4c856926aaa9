package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutFileIsSilent(t *testing.T) {
	logger, closer, err := New("debug", "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskpoints.log")
	logger, closer, err := New("warn", path)
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	list := Component(logger, "list")
	list.Warn().Int("index", 3).Msg("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "component=list")
	assert.Contains(t, out, "index=3")
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New("loud", filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	debug := NewWithWriter(zerolog.DebugLevel, &buf)
	debug.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestNewReportsOpenError(t *testing.T) {
	_, _, err := New("info", filepath.Join(t.TempDir(), "missing", "x.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening log file")
}
