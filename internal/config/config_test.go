package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 450*time.Millisecond, cfg.LongPress())
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, 2.0, cfg.Placer().Step)
	assert.Equal(t, 150, cfg.Placer().MaxAttempts)
	assert.Equal(t, "pinboard.db", filepath.Base(cfg.Store.Path))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[placement]
step = 4

[gesture]
long_press = "1s"

[app]
debug = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.Placement.Step)
	assert.Equal(t, 150, cfg.Placement.MaxAttempts)
	assert.Equal(t, time.Second, cfg.LongPress())
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 50, cfg.History.Limit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "[placement\nstep = 1"},
		{"zero step", "[placement]\nstep = 0"},
		{"negative limit", "[history]\nlimit = -1"},
		{"bad duration", "[gesture]\nlong_press = \"soon\""},
		{"zero duration", "[gesture]\nlong_press = \"0s\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.History.Limit = 10
	cfg.Export.Directory = "/tmp/boards"

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestGetSavePath(t *testing.T) {
	cfg := DefaultConfig()

	p, err := cfg.GetSavePath("board.png")
	require.NoError(t, err)
	assert.Equal(t, "board.png", p)

	dir := filepath.Join(t.TempDir(), "exports")
	cfg.Export.Directory = dir
	p, err = cfg.GetSavePath("board.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "board.png"), p)
	assert.DirExists(t, dir)

	p, err = cfg.GetSavePath("/abs/board.png")
	require.NoError(t, err)
	assert.Equal(t, "/abs/board.png", p)
}
