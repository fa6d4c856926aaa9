package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xqrs/tview/internal/config"
	"github.com/xqrs/tview/internal/task"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "task.db")

	out, err := executeRoot(t, "seed", "--config", filepath.Join(dir, "none.yaml"), "--db", db, "--count", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 12 task points")

	store, err := task.Open(context.Background(), db)
	require.NoError(t, err)
	defer store.Close()
	points, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 12)
}

func TestSeedCommandRejectsSmallCount(t *testing.T) {
	dir := t.TempDir()
	_, err := executeRoot(t, "seed", "--config", filepath.Join(dir, "none.yaml"), "--db", filepath.Join(dir, "task.db"), "--count", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count")
}

func TestSeedCommandInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskpoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("list:\n  item_height: 0\n"), 0o600))

	_, err := executeRoot(t, "seed", "--config", path, "--db", filepath.Join(dir, "task.db"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	var opts options
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "")
	cmd.Flags().IntVar(&opts.itemHeight, "item-height", 0, "")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--db", "other.db", "--item-height", "4", "--no-mouse"}))
	opts.configPath = filepath.Join(t.TempDir(), "none.yaml")

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Store.Path)
	assert.Equal(t, 4, cfg.List.ItemHeight)
	assert.False(t, cfg.List.Mouse)
	assert.Equal(t, "info", cfg.Log.Level, "unset flags keep the file value")

	require.NoError(t, cmd.Flags().Set("item-height", "0"))
	_, err = loadConfig(cmd, opts)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
