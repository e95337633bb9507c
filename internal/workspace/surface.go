package workspace

import (
	"time"

	"pinboard/internal/geometry"
	"pinboard/internal/gesture"
)

// HitTest classifies screen point p. The focused card is on top, then cards
// in reverse collection order.
func (w *Workspace) HitTest(p geometry.Point) gesture.Hit {
	q := p.Sub(w.offset)

	if c, ok := w.Card(w.editingID); ok && c.Rect().Contains(q) {
		r := c.Rect()
		if q.X >= r.Right()-1 && q.Y >= r.Bottom()-1 {
			return gesture.Hit{Kind: gesture.HitResizeHandle, ID: c.ID}
		}
		return gesture.Hit{Kind: gesture.HitBody, ID: c.ID}
	}

	for i := len(w.cards) - 1; i >= 0; i-- {
		c := w.cards[i]
		if c.ID == w.editingID || !c.Rect().Contains(q) {
			continue
		}
		if w.mode == ModeEdit && q.X < c.X+1 && q.Y < c.Y+1 {
			return gesture.Hit{Kind: gesture.HitEditTrigger, ID: c.ID}
		}
		return gesture.Hit{Kind: gesture.HitBody, ID: c.ID}
	}
	return gesture.Hit{Kind: gesture.HitBackground}
}

func (w *Workspace) DeleteMode() bool { return w.mode == ModeDelete }

func (w *Workspace) CardRect(id string) (geometry.Rect, bool) {
	c, ok := w.Card(id)
	if !ok {
		return geometry.Rect{}, false
	}
	return c.Rect(), true
}

// PointerDown starts a gesture. When a long-press was armed the caller must
// schedule FireLongPress(timer.Gen) after timer.Delay.
func (w *Workspace) PointerDown(p geometry.Point, at time.Time) (gesture.Timer, bool) {
	return w.gesture.Down(p, at)
}

func (w *Workspace) PointerMove(p geometry.Point, at time.Time) {
	w.gesture.Move(p, at)
}

func (w *Workspace) PointerUp(p geometry.Point, at time.Time) gesture.Outcome {
	return w.gesture.Up(p, at)
}

func (w *Workspace) PointerCancel() gesture.Outcome {
	return w.gesture.Cancel()
}

func (w *Workspace) FireLongPress(gen uint64) bool { return w.gesture.FireLongPress(gen) }
func (w *Workspace) Expire(now time.Time) bool     { return w.gesture.Expire(now) }
func (w *Workspace) GestureState() gesture.State   { return w.gesture.State() }

func (w *Workspace) Proposed() (string, geometry.Rect, bool) {
	return w.gesture.Proposed()
}
