// Package physics provides integer collision predicates.
// All coordinates are pixel units with the origin top-left and y growing downward.
package physics

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 int) int {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
// Points exactly on the rim count as inside.
func PointInCircle(px, py, cx, cy, radius int) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y int
	W, H int
}

// RectAround returns the rectangle of size w×h centred on (cx, cy).
func RectAround(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// CircleIntersectsRect reports whether the circle overlaps the rectangle.
// The circle centre is clamped to the rectangle bounds and the clamped point's
// distance is compared with the radius.
func CircleIntersectsRect(cx, cy, radius int, r Rect) bool {
	nx := clamp(cx, r.X, r.X+r.W)
	ny := clamp(cy, r.Y, r.Y+r.H)
	return DistanceSquared(cx, cy, nx, ny) <= radius*radius
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
