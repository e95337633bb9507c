// Package workspace owns the card collection, pan offset, mode and edit
// focus of one editing session, and wires the gesture controller, history
// and placement logic together.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"pinboard/internal/geometry"
	"pinboard/internal/gesture"
	"pinboard/internal/history"
	"pinboard/internal/store"
)

type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// State is the persisted record.
type State struct {
	Theme     Theme   `json:"theme"`
	OffsetX   float64 `json:"offsetX"`
	OffsetY   float64 `json:"offsetY"`
	Elements  []Card  `json:"elements"`
	Timestamp int64   `json:"timestamp"`
}

// Options configures a Workspace. Zero values fall back to defaults.
type Options struct {
	Store        Store
	Logger       *slog.Logger
	Measurer     TextMeasurer
	Placer       geometry.Placer
	HistoryLimit int
	LongPress    time.Duration
	NewID        func() string
	Now          func() time.Time
}

// Workspace is the session model. It is driven from a single event loop and
// is not safe for concurrent use.
type Workspace struct {
	store    Store
	logger   *slog.Logger
	measurer TextMeasurer
	placer   geometry.Placer
	newID    func() string
	now      func() time.Time

	cards      []Card
	offset     geometry.Point
	viewport   geometry.Point
	theme      Theme
	mode       Mode
	editingID  string
	focusIndex int
	preview    bool
	lastStyle  Style

	history *history.History[Card]
	gesture *gesture.Controller
}

// New creates an empty workspace. Call Restore to load persisted state.
func New(opts Options) *Workspace {
	w := &Workspace{
		store:      opts.Store,
		logger:     opts.Logger,
		measurer:   opts.Measurer,
		placer:     opts.Placer,
		newID:      opts.NewID,
		now:        opts.Now,
		viewport:   geometry.Point{X: 80, Y: 24},
		theme:      ThemeDark,
		focusIndex: -1,
		history:    history.New[Card](opts.HistoryLimit),
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if w.measurer == nil {
		w.measurer = CellMeasurer{}
	}
	if w.placer.MaxAttempts == 0 {
		w.placer = geometry.DefaultPlacer()
	}
	if w.newID == nil {
		w.newID = uuid.NewString
	}
	if w.now == nil {
		w.now = time.Now
	}
	w.lastStyle = DefaultStyle(w.theme)
	w.history.Reset(nil)
	w.gesture = gesture.NewController(w, opts.LongPress, w.logger)
	return w
}

// Restore loads the persisted record. Missing or malformed data leaves the
// defaults in place and is only logged. History is reseeded with the
// restored collection so it cannot be undone past.
func (w *Workspace) Restore(ctx context.Context) {
	defer func() {
		w.history.Reset(w.cards)
		w.lastStyle = DefaultStyle(w.theme)
	}()

	if w.store == nil {
		return
	}
	data, err := w.store.Load(ctx, StateKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.logger.Info("no saved workspace, starting empty")
		} else {
			w.logger.Warn("failed to read saved workspace", "error", err)
		}
		return
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		w.logger.Warn("ignoring malformed saved workspace", "error", err)
		return
	}

	if st.Theme != "" {
		if t, err := ParseTheme(string(st.Theme)); err != nil {
			w.logger.Warn("ignoring saved theme", "error", err)
		} else {
			w.theme = t
		}
	}
	w.offset = geometry.Point{X: st.OffsetX, Y: st.OffsetY}
	w.cards = w.sanitize(st.Elements)
	w.logger.Info("workspace restored", "cards", len(w.cards), "theme", w.theme)
}

// sanitize repairs restored cards so the size invariants hold.
func (w *Workspace) sanitize(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		if c.ID == "" || seen[c.ID] {
			c.ID = w.newID()
		}
		seen[c.ID] = true
		minW, minH := w.minSizeFor(c.Text)
		c.Width = max(c.Width, minW)
		c.Height = max(c.Height, minH)
		out = append(out, c)
	}
	return out
}

// Close persists the final state. The store itself is owned by the caller.
func (w *Workspace) Close() error {
	if w.store == nil {
		return nil
	}
	if err := w.save(context.Background()); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}

func (w *Workspace) Snapshot() State {
	return State{
		Theme:     w.theme,
		OffsetX:   w.offset.X,
		OffsetY:   w.offset.Y,
		Elements:  append(make([]Card, 0, len(w.cards)), w.cards...),
		Timestamp: w.now().UnixMilli(),
	}
}

func (w *Workspace) save(ctx context.Context) error {
	data, err := json.Marshal(w.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return w.store.Save(ctx, StateKey, data)
}

// persist writes the record after a change. Failures are logged and
// otherwise ignored.
func (w *Workspace) persist() {
	if w.store == nil {
		return
	}
	if err := w.save(context.Background()); err != nil {
		w.logger.Warn("failed to persist workspace", "error", err)
	}
}

func (w *Workspace) commit() {
	if w.history.Commit(w.cards) {
		w.logger.Debug("history commit", "entries", w.history.Len(), "index", w.history.Index())
	}
}

func (w *Workspace) Cards() []Card            { return slices.Clone(w.cards) }
func (w *Workspace) Offset() geometry.Point   { return w.offset }
func (w *Workspace) Theme() Theme             { return w.theme }
func (w *Workspace) Mode() Mode               { return w.mode }
func (w *Workspace) EditingID() string        { return w.editingID }
func (w *Workspace) Preview() bool            { return w.preview }
func (w *Workspace) CanUndo() bool            { return w.history.CanUndo() }
func (w *Workspace) CanRedo() bool            { return w.history.CanRedo() }
func (w *Workspace) Viewport() geometry.Point { return w.viewport }

func (w *Workspace) Card(id string) (Card, bool) {
	i := w.indexOf(id)
	if i < 0 {
		return Card{}, false
	}
	return w.cards[i], true
}

func (w *Workspace) indexOf(id string) int {
	return slices.IndexFunc(w.cards, func(c Card) bool { return c.ID == id })
}

func (w *Workspace) SetViewport(width, height float64) {
	w.viewport = geometry.Point{X: width, Y: height}
}

// Configure applies tunables that can change at runtime.
func (w *Workspace) Configure(p geometry.Placer, longPress time.Duration) {
	if p.MaxAttempts > 0 {
		w.placer = p
	}
	w.gesture.SetLongPress(longPress)
}
