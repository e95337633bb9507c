package geometry

const (
	DefaultStep        = 2
	DefaultMaxAttempts = 150
)

// Placer searches for a free spot for a new card by walking diagonally away
// from a preferred position.
type Placer struct {
	Step        float64
	MaxAttempts int
}

// DefaultPlacer returns a Placer tuned for terminal cells.
func DefaultPlacer() Placer {
	return Placer{Step: DefaultStep, MaxAttempts: DefaultMaxAttempts}
}

// FindFreePosition returns the top-left corner for a w x h rectangle.
//
// The search starts at preferred and moves by Step on both axes while the
// candidate collides with a box other than excludeID. Once MaxAttempts steps
// have been taken the last candidate is returned even if it still collides;
// placement never fails.
func (p Placer) FindFreePosition(w, h float64, preferred Point, boxes []Box, excludeID string) Point {
	step := p.Step
	if step <= 0 {
		step = DefaultStep
	}
	candidate := Rect{X: preferred.X, Y: preferred.Y, W: w, H: h}
	for attempts := 0; attempts < p.MaxAttempts && Collides(candidate, boxes, excludeID); attempts++ {
		candidate.X += step
		candidate.Y += step
	}
	return candidate.Origin()
}
