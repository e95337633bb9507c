package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/internal/config"
	"pinboard/internal/tui"
	"pinboard/internal/workspace"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(dir, "pinboard.db")
	cfg.Export.Directory = filepath.Join(dir, "exports")
	cfg.App.LogFile = filepath.Join(dir, "pinboard.log")
	return cfg
}

func seedWorkspace(t *testing.T, cfg *config.Config, text string) {
	t.Helper()
	ctx := context.Background()
	logger, closer, err := newLogger(cfg)
	require.NoError(t, err)
	defer closer.Close()

	sess, err := openSession(ctx, cfg, logger)
	require.NoError(t, err)
	c := sess.ws.AddCard()
	sess.ws.UpdateCard(c.ID, workspace.Patch{Text: &text})
	sess.ws.EndEdit()
	require.NoError(t, sess.Close())
}

func TestSessionPersistsAcrossOpens(t *testing.T) {
	cfg := testConfig(t)
	seedWorkspace(t, cfg, "keep me")

	sess, err := openSession(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer sess.Close()

	cards := sess.ws.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "keep me", cards[0].Text)
	assert.False(t, sess.ws.CanUndo())
}

func TestNewLoggerWritesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.Debug = true

	logger, closer, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Debug("hello from test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.App.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestExportWorkspace(t *testing.T) {
	cfg := testConfig(t)
	seedWorkspace(t, cfg, "exported")

	path, err := exportWorkspace(context.Background(), cfg, discard(), "txt", "board.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Export.Directory, "board.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exported")

	path, err = exportWorkspace(context.Background(), cfg, discard(), "png", "board.png")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = exportWorkspace(context.Background(), cfg, discard(), "gif", "board.gif")
	assert.Error(t, err)
}

func TestExportEmptyWorkspace(t *testing.T) {
	cfg := testConfig(t)

	_, err := exportWorkspace(context.Background(), cfg, discard(), "png", "empty.png")

	assert.Error(t, err)
}

func TestReadSummary(t *testing.T) {
	cfg := testConfig(t)

	sum, err := readSummary(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Cards)
	assert.Equal(t, "dark", sum.Theme)

	seedWorkspace(t, cfg, "one")
	sum, err = readSummary(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Cards)
	assert.False(t, sum.SavedAt.IsZero())
	assert.False(t, sum.UpdatedAt.IsZero())
}

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

func TestWatchConfigSendsReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.DefaultConfig().Save(path))

	msgs := make(chanSender, 4)
	w, err := watchConfig(path, discard(), msgs)
	require.NoError(t, err)
	defer w.Close()

	cfg := config.DefaultConfig()
	cfg.Placement.Step = 6
	cfg.Gesture.LongPress = "300ms"
	require.NoError(t, cfg.Save(path))

	select {
	case msg := <-msgs:
		reload, ok := msg.(tui.ConfigMsg)
		require.True(t, ok)
		assert.Equal(t, 6.0, reload.Placer.Step)
		assert.Equal(t, 300*time.Millisecond, reload.LongPress)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload sent")
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
