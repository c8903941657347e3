package components

import "math"

// Position is a continuous coordinate on the landscape grid.
// X indexes columns of the height field, Y indexes rows.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Lerp returns the point a fraction t of the way from p to q.
// t >= 1 returns q exactly.
func (p Position) Lerp(q Position, t float64) Position {
	if t >= 1 {
		return q
	}
	return Position{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Distance returns the Euclidean distance between two positions.
func (p Position) Distance(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}
