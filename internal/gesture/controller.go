package gesture

import (
	"time"

	"pinboard/internal/geometry"
)

// Down starts a gesture at screen point p. The returned Timer is valid only
// when the bool is true, meaning a long-press was armed.
func (c *Controller) Down(p geometry.Point, at time.Time) (Timer, bool) {
	if c.state != Idle {
		c.logger.Debug("pointer down ignored, gesture in progress", "state", c.state)
		return Timer{}, false
	}

	c.last = p
	c.start = p
	hit := c.surface.HitTest(p)

	switch hit.Kind {
	case HitResizeHandle:
		if !c.capture(hit.ID) {
			return Timer{}, false
		}
		c.state = ResizingCard
		return Timer{}, false

	case HitEditTrigger:
		c.surface.BeginEdit(hit.ID)
		return Timer{}, false

	case HitBody:
		if c.surface.DeleteMode() {
			c.surface.DeleteCard(hit.ID)
			return Timer{}, false
		}
		if !c.capture(hit.ID) {
			return Timer{}, false
		}
		c.state = PendingLongPress
		c.gen++
		c.armed = true
		c.deadline = at.Add(c.longPress)
		return Timer{Gen: c.gen, Delay: c.longPress, Deadline: c.deadline}, true

	default:
		c.state = PanningCanvas
		// Pan-start ends any edit and leaves edit or delete mode.
		c.surface.EndEdit()
		return Timer{}, false
	}
}

// capture snapshots the committed rectangle of id, in screen space, as the
// starting proposed geometry.
func (c *Controller) capture(id string) bool {
	r, ok := c.surface.CardRect(id)
	if !ok {
		return false
	}
	c.id = id
	c.proposed = r.Translate(c.surface.Offset())
	return true
}

// Move feeds a pointer motion. Any motion disqualifies a pending long-press.
func (c *Controller) Move(p geometry.Point, at time.Time) {
	c.disarm()
	c.apply(p.Sub(c.last))
	c.last = p
}

func (c *Controller) apply(d geometry.Point) {
	if d == (geometry.Point{}) {
		return
	}
	switch c.state {
	case ResizingCard:
		minW, minH := c.surface.MinSize(c.id)
		c.proposed.W = max(minW, c.proposed.W+d.X)
		c.proposed.H = max(minH, c.proposed.H+d.Y)
	case PendingLongPress, DraggingCard:
		c.state = DraggingCard
		c.proposed = c.proposed.Translate(d)
	case PanningCanvas:
		c.surface.Pan(d.X, d.Y)
	}
}

// Up finishes the gesture with the pointer released at p.
func (c *Controller) Up(p geometry.Point, at time.Time) Outcome {
	c.disarm()
	c.apply(p.Sub(c.last))
	c.last = p
	return c.finish()
}

// Cancel finishes the gesture without a final position, as a pointer cancel.
func (c *Controller) Cancel() Outcome {
	c.disarm()
	return c.finish()
}

func (c *Controller) finish() Outcome {
	defer c.reset()

	switch c.state {
	case DraggingCard, ResizingCard, PendingLongPress:
	default:
		return OutcomeNone
	}

	committed, ok := c.surface.CardRect(c.id)
	if !ok {
		return OutcomeNone
	}

	offset := c.surface.Offset()
	final := c.proposed.Translate(geometry.Point{X: -offset.X, Y: -offset.Y})
	if final == committed {
		return OutcomeUnchanged
	}
	if !c.surface.ValidateDrop(c.id, final) {
		c.logger.Debug("drop rejected, restoring card", "id", c.id, "state", c.state)
		return OutcomeRolledBack
	}
	c.surface.CommitGeometry(c.id, final)
	return OutcomeCommitted
}

func (c *Controller) reset() {
	c.state = Idle
	c.id = ""
	c.proposed = geometry.Rect{}
}

// disarm cancels a pending long-press. Bumping the generation makes any
// timer already in flight stale.
func (c *Controller) disarm() {
	if c.armed {
		c.armed = false
		c.gen++
	}
}

// FireLongPress is called when the timer for gen elapses. It reports whether
// the card entered edit focus.
func (c *Controller) FireLongPress(gen uint64) bool {
	if !c.armed || gen != c.gen || c.state != PendingLongPress {
		return false
	}
	c.armed = false
	c.surface.BeginEdit(c.id)
	return true
}

// Expire fires the pending long-press if its deadline has passed by now.
func (c *Controller) Expire(now time.Time) bool {
	if !c.armed || now.Before(c.deadline) {
		return false
	}
	return c.FireLongPress(c.gen)
}
