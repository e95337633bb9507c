package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/internal/geometry"
)

// fakeSurface is an in-memory Surface with cards addressed by id.
type fakeSurface struct {
	cards    map[string]geometry.Rect
	order    []string
	offset   geometry.Point
	minW     float64
	minH     float64
	deleting bool
	editing  string
	commits  int
	deleted  []string
	endEdits int
	panCalls int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{cards: map[string]geometry.Rect{}, minW: 8, minH: 3}
}

func (f *fakeSurface) add(id string, r geometry.Rect) {
	f.cards[id] = r
	f.order = append(f.order, id)
}

func (f *fakeSurface) HitTest(p geometry.Point) Hit {
	for i := len(f.order) - 1; i >= 0; i-- {
		id := f.order[i]
		r := f.cards[id].Translate(f.offset)
		handle := geometry.Point{X: r.Right() - 1, Y: r.Bottom() - 1}
		if f.editing == id && p == handle {
			return Hit{Kind: HitResizeHandle, ID: id}
		}
		if f.editing != "" && f.editing != id && p == r.Origin() {
			return Hit{Kind: HitEditTrigger, ID: id}
		}
		if r.Contains(p) {
			return Hit{Kind: HitBody, ID: id}
		}
	}
	return Hit{Kind: HitBackground}
}

func (f *fakeSurface) DeleteMode() bool       { return f.deleting }
func (f *fakeSurface) Offset() geometry.Point { return f.offset }

func (f *fakeSurface) CardRect(id string) (geometry.Rect, bool) {
	r, ok := f.cards[id]
	return r, ok
}

func (f *fakeSurface) MinSize(string) (float64, float64) { return f.minW, f.minH }

func (f *fakeSurface) ValidateDrop(id string, r geometry.Rect) bool {
	var boxes []geometry.Box
	for other, rect := range f.cards {
		boxes = append(boxes, geometry.Box{ID: other, Rect: rect})
	}
	return !geometry.Collides(r, boxes, id)
}

func (f *fakeSurface) CommitGeometry(id string, r geometry.Rect) {
	f.cards[id] = r
	f.commits++
}

func (f *fakeSurface) DeleteCard(id string) {
	delete(f.cards, id)
	f.deleted = append(f.deleted, id)
	f.commits++
}

func (f *fakeSurface) BeginEdit(id string) { f.editing = id }

func (f *fakeSurface) EndEdit() {
	if f.editing != "" {
		f.editing = ""
		f.commits++
	}
	f.endEdits++
}

func (f *fakeSurface) Pan(dx, dy float64) {
	f.offset = f.offset.Add(geometry.Point{X: dx, Y: dy})
	f.panCalls++
}

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func pt(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

func TestDragToFreeSpaceCommits(t *testing.T) {
	s := newFakeSurface()
	s.offset = pt(5, 2)
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	s.add("b", geometry.Rect{X: 40, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	_, armed := c.Down(pt(6, 3), t0)
	require.True(t, armed)
	assert.Equal(t, PendingLongPress, c.State())

	c.Move(pt(8, 5), t0.Add(50*time.Millisecond))
	assert.Equal(t, DraggingCard, c.State())
	c.Move(pt(11, 13), t0.Add(80*time.Millisecond))

	// Nothing is committed while the gesture is live.
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, W: 10, H: 3}, s.cards["a"])
	_, live, ok := c.Proposed()
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{X: 10, Y: 12, W: 10, H: 3}, live)

	out := c.Up(pt(11, 13), t0.Add(100*time.Millisecond))
	assert.Equal(t, OutcomeCommitted, out)
	assert.Equal(t, geometry.Rect{X: 5, Y: 10, W: 10, H: 3}, s.cards["a"], "release position minus offset")
	assert.Equal(t, 1, s.commits)
	assert.Equal(t, Idle, c.State())
}

func TestDragOntoCardRollsBack(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	s.add("b", geometry.Rect{X: 20, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	c.Down(pt(1, 1), t0)
	c.Move(pt(22, 1), t0.Add(10*time.Millisecond))
	out := c.Up(pt(22, 1), t0.Add(20*time.Millisecond))

	assert.Equal(t, OutcomeRolledBack, out)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, W: 10, H: 3}, s.cards["a"])
	assert.Zero(t, s.commits)
	_, _, ok := c.Proposed()
	assert.False(t, ok)
}

func TestResizeClampsToContent(t *testing.T) {
	s := newFakeSurface()
	s.minW, s.minH = 9, 4
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 12, H: 5})
	s.editing = "a"
	c := NewController(s, 0, nil)

	c.Down(pt(11, 4), t0)
	require.Equal(t, ResizingCard, c.State())

	c.Move(pt(1, 0), t0.Add(10*time.Millisecond))
	_, live, _ := c.Proposed()
	assert.Equal(t, 9.0, live.W)
	assert.Equal(t, 4.0, live.H)

	c.Move(pt(3, 2), t0.Add(20*time.Millisecond))
	out := c.Up(pt(3, 2), t0.Add(30*time.Millisecond))
	assert.Equal(t, OutcomeCommitted, out)
	assert.GreaterOrEqual(t, s.cards["a"].W, 9.0)
	assert.GreaterOrEqual(t, s.cards["a"].H, 4.0)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, W: 11, H: 6}, s.cards["a"])
}

func TestResizeIntoNeighbourRollsBack(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	s.add("b", geometry.Rect{X: 12, Y: 0, W: 10, H: 3})
	s.editing = "a"
	c := NewController(s, 0, nil)

	c.Down(pt(9, 2), t0)
	c.Move(pt(15, 2), t0)
	assert.Equal(t, OutcomeRolledBack, c.Up(pt(15, 2), t0))
	assert.Equal(t, 10.0, s.cards["a"].W)
}

func TestLongPressEntersEdit(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	timer, armed := c.Down(pt(2, 1), t0)
	require.True(t, armed)
	assert.Equal(t, DefaultLongPress, timer.Delay)

	assert.False(t, c.Expire(t0.Add(449*time.Millisecond)))
	assert.Empty(t, s.editing)
	assert.True(t, c.Expire(t0.Add(450*time.Millisecond)))
	assert.Equal(t, "a", s.editing)

	assert.Equal(t, OutcomeUnchanged, c.Up(pt(2, 1), t0.Add(500*time.Millisecond)))
	assert.Zero(t, s.commits)
}

func TestLongPressCancelledByMove(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	timer, _ := c.Down(pt(2, 1), t0)
	c.Move(pt(3, 1), t0.Add(100*time.Millisecond))

	assert.False(t, c.FireLongPress(timer.Gen))
	assert.False(t, c.Expire(t0.Add(time.Second)))
	assert.Empty(t, s.editing)
}

func TestStaleTimerAfterGestureEnds(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	first, _ := c.Down(pt(2, 1), t0)
	c.Up(pt(2, 1), t0.Add(100*time.Millisecond))

	second, armed := c.Down(pt(2, 1), t0.Add(200*time.Millisecond))
	require.True(t, armed)
	assert.NotEqual(t, first.Gen, second.Gen)

	assert.False(t, c.FireLongPress(first.Gen), "timer from the finished gesture must not fire")
	assert.True(t, c.FireLongPress(second.Gen))
}

func TestDeleteModeDeletesOnDown(t *testing.T) {
	s := newFakeSurface()
	s.deleting = true
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	_, armed := c.Down(pt(2, 1), t0)
	assert.False(t, armed)
	assert.Equal(t, []string{"a"}, s.deleted)
	assert.Equal(t, Idle, c.State())
}

func TestEditTriggerFocusesWithoutDrag(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	s.add("b", geometry.Rect{X: 20, Y: 0, W: 10, H: 3})
	s.editing = "a"
	c := NewController(s, 0, nil)

	_, armed := c.Down(pt(20, 0), t0)
	assert.False(t, armed)
	assert.Equal(t, "b", s.editing)
	assert.Equal(t, Idle, c.State())
}

func TestBackgroundPanEndsEdit(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	s.editing = "a"
	c := NewController(s, 0, nil)

	c.Down(pt(50, 20), t0)
	assert.Equal(t, PanningCanvas, c.State())
	assert.Empty(t, s.editing)
	assert.Equal(t, 1, s.commits)

	c.Move(pt(53, 18), t0)
	c.Move(pt(55, 18), t0)
	assert.Equal(t, pt(5, -2), s.offset)

	assert.Equal(t, OutcomeNone, c.Up(pt(55, 18), t0))
	assert.Equal(t, Idle, c.State())
}

func TestDownRejectedWhileActive(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	c.Down(pt(50, 20), t0)
	_, armed := c.Down(pt(2, 1), t0)
	assert.False(t, armed)
	assert.Equal(t, PanningCanvas, c.State())
}

func TestCancelFinalizesLikeUp(t *testing.T) {
	s := newFakeSurface()
	s.add("a", geometry.Rect{X: 0, Y: 0, W: 10, H: 3})
	c := NewController(s, 0, nil)

	c.Down(pt(1, 1), t0)
	c.Move(pt(1, 11), t0)
	assert.Equal(t, OutcomeCommitted, c.Cancel())
	assert.Equal(t, 10.0, s.cards["a"].Y)
}
