// Package gesture turns a pointer stream into canvas pans, card moves, card
// resizes and long-press edits.
//
// Geometry changes during a gesture live in a proposed rectangle owned by the
// Controller. The committed model is only touched when the gesture ends and
// the proposed rectangle passes drop validation.
package gesture

import (
	"io"
	"log/slog"
	"time"

	"pinboard/internal/geometry"
)

const DefaultLongPress = 450 * time.Millisecond

// State is the controller's current gesture.
type State int

const (
	Idle State = iota
	PanningCanvas
	DraggingCard
	ResizingCard
	PendingLongPress
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PanningCanvas:
		return "panning"
	case DraggingCard:
		return "dragging"
	case ResizingCard:
		return "resizing"
	case PendingLongPress:
		return "pending-long-press"
	}
	return "unknown"
}

// HitKind classifies what sits under the pointer on a down event.
type HitKind int

const (
	HitBackground HitKind = iota
	HitBody
	HitResizeHandle
	HitEditTrigger
)

// Hit is the result of hit testing a screen point.
type Hit struct {
	Kind HitKind
	ID   string
}

// Outcome reports how a gesture ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCommitted
	OutcomeUnchanged
	OutcomeRolledBack
)

// Surface is the workspace as seen by the controller. Points and rectangles
// passed to HitTest and returned by CardRect follow the comments on each
// method; the controller converts between screen and workspace space using
// Offset.
type Surface interface {
	// HitTest classifies a screen point.
	HitTest(p geometry.Point) Hit
	DeleteMode() bool
	Offset() geometry.Point
	// CardRect returns the committed rectangle in workspace space.
	CardRect(id string) (geometry.Rect, bool)
	// MinSize returns the smallest width and height the card's content allows.
	MinSize(id string) (w, h float64)
	ValidateDrop(id string, r geometry.Rect) bool
	// CommitGeometry writes r (workspace space) to the card and records history.
	CommitGeometry(id string, r geometry.Rect)
	DeleteCard(id string)
	BeginEdit(id string)
	// EndEdit drops edit focus, if any, and returns to normal mode.
	EndEdit()
	Pan(dx, dy float64)
}

// Timer describes an armed long-press. The caller schedules a wakeup after
// Delay and hands Gen back to FireLongPress.
type Timer struct {
	Gen      uint64
	Delay    time.Duration
	Deadline time.Time
}

// Controller is the pointer gesture state machine. It is not safe for
// concurrent use; events must arrive in down, move*, up order from one loop.
type Controller struct {
	surface   Surface
	longPress time.Duration
	logger    *slog.Logger

	state    State
	id       string
	last     geometry.Point
	start    geometry.Point
	proposed geometry.Rect

	gen      uint64
	armed    bool
	deadline time.Time
}

// NewController creates an idle controller. A nil logger discards output.
func NewController(s Surface, longPress time.Duration, logger *slog.Logger) *Controller {
	if longPress <= 0 {
		longPress = DefaultLongPress
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{surface: s, longPress: longPress, logger: logger}
}

func (c *Controller) State() State { return c.state }

// SetLongPress changes the long-press delay for future gestures.
func (c *Controller) SetLongPress(d time.Duration) {
	if d > 0 {
		c.longPress = d
	}
}

// Proposed returns the live screen-space rectangle of the card being moved
// or resized.
func (c *Controller) Proposed() (string, geometry.Rect, bool) {
	switch c.state {
	case DraggingCard, ResizingCard, PendingLongPress:
		return c.id, c.proposed, true
	}
	return "", geometry.Rect{}, false
}
