// Package geometry holds the rectangle math used for card placement and drop validation.
package geometry

// Point is a position in workspace or screen space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Box is a rectangle owned by a card.
type Box struct {
	ID string
	Rect
}

// Overlaps reports whether a and b share any interior area.
// Rectangles that only touch along an edge do not overlap.
func Overlaps(a, b Rect) bool {
	return !(a.Right() <= b.X || a.X >= b.Right() || a.Bottom() <= b.Y || a.Y >= b.Bottom())
}

// Collides reports whether r overlaps any box except the one named excludeID.
func Collides(r Rect, boxes []Box, excludeID string) bool {
	for _, b := range boxes {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if Overlaps(r, b.Rect) {
			return true
		}
	}
	return false
}
