package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/config"
	"pinboard/internal/store"
	"pinboard/internal/tui"
	"pinboard/internal/watcher"
	"pinboard/internal/workspace"
)

const configDebounce = 200 * time.Millisecond

// newLogger opens the configured log file. The terminal belongs to the UI,
// so nothing is logged to stderr.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if cfg.App.Debug {
		level = slog.LevelDebug
	}
	if cfg.App.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.App.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

type session struct {
	ws    *workspace.Workspace
	store *store.Store
}

func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session, error) {
	st, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	ws := workspace.New(workspace.Options{
		Store:        st,
		Logger:       logger,
		Placer:       cfg.Placer(),
		HistoryLimit: cfg.History.Limit,
		LongPress:    cfg.LongPress(),
	})
	ws.Restore(ctx)
	return &session{ws: ws, store: st}, nil
}

// Close saves the workspace and closes the store.
func (s *session) Close() error {
	return errors.Join(s.ws.Close(), s.store.Close())
}

func runUI(ctx context.Context, cfg *config.Config, configPath string) (err error) {
	logger, logCloser, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	sess, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Error("failed to close session", "error", cerr)
			err = errors.Join(err, cerr)
		}
	}()

	model := tui.New(tui.Options{
		Workspace:  sess.ws,
		Logger:     logger,
		ExportPath: cfg.GetSavePath,
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if w, werr := watchConfig(configPath, logger, p); werr != nil {
		logger.Warn("config reload disabled", "path", configPath, "error", werr)
	} else {
		defer w.Close()
	}

	logger.Info("pinboard started", "store", cfg.Store.Path, "cards", len(sess.ws.Cards()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// sender is the part of tea.Program the config watcher needs.
type sender interface {
	Send(msg tea.Msg)
}

func watchConfig(path string, logger *slog.Logger, p sender) (*watcher.FileWatcher, error) {
	w, err := watcher.NewFileWatcher(configDebounce, logger)
	if err != nil {
		return nil, err
	}
	err = w.Watch([]string{path}, func(changed string) {
		cfg, err := config.Load(changed)
		if err != nil {
			logger.Warn("ignoring invalid config change", "path", changed, "error", err)
			return
		}
		p.Send(tui.ConfigMsg{Placer: cfg.Placer(), LongPress: cfg.LongPress()})
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	w.Start()
	return w, nil
}

// exportWorkspace renders every persisted card to name, as "png" or "txt",
// under the export directory.
func exportWorkspace(ctx context.Context, cfg *config.Config, logger *slog.Logger, format, name string) (string, error) {
	path, err := cfg.GetSavePath(name)
	if err != nil {
		return "", err
	}

	sess, err := openSession(ctx, cfg, logger)
	if err != nil {
		return "", err
	}
	defer sess.store.Close()

	cards, theme := sess.ws.Cards(), sess.ws.Theme()
	switch format {
	case "png":
		err = tui.SavePNG(path, cards, theme)
	case "txt":
		err = tui.SaveText(path, cards, theme)
	default:
		return "", fmt.Errorf("unknown export format %q (want png or txt)", format)
	}
	if err != nil {
		return "", err
	}
	logger.Info("exported workspace", "format", format, "path", path)
	return path, nil
}

type summary struct {
	Store     string
	Theme     string
	Cards     int
	OffsetX   float64
	OffsetY   float64
	SavedAt   time.Time
	UpdatedAt time.Time
}

// readSummary reads the persisted record without opening a UI.
func readSummary(ctx context.Context, cfg *config.Config) (summary, error) {
	st, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return summary{}, err
	}
	defer st.Close()

	sum := summary{Store: cfg.Store.Path, Theme: string(workspace.ThemeDark)}
	data, err := st.Load(ctx, workspace.StateKey)
	if errors.Is(err, store.ErrNotFound) {
		return sum, nil
	}
	if err != nil {
		return summary{}, err
	}

	var state workspace.State
	if err := json.Unmarshal(data, &state); err != nil {
		return summary{}, fmt.Errorf("decode saved workspace: %w", err)
	}
	if state.Theme != "" {
		sum.Theme = string(state.Theme)
	}
	sum.Cards = len(state.Elements)
	sum.OffsetX, sum.OffsetY = state.OffsetX, state.OffsetY
	if state.Timestamp > 0 {
		sum.SavedAt = time.UnixMilli(state.Timestamp).UTC()
	}
	if at, err := st.UpdatedAt(ctx, workspace.StateKey); err == nil {
		sum.UpdatedAt = at.UTC()
	}
	return sum, nil
}
