// pkg/geometry/line.go
package geometry

import "math"

// DefaultLineThreshold is how close a point must be to a segment to count as
// touching it. Half a unit absorbs pixel-grid snapping.
const DefaultLineThreshold = 0.5

// Line represents a segment between two points
type Line struct {
	From Vector2D
	To   Vector2D
}

// Length returns the length of the segment
func (l Line) Length() float64 {
	return l.From.Distance(l.To)
}

// ClosestPoint returns the point on the segment nearest to p
func (l Line) ClosestPoint(p Vector2D) Vector2D {
	d := l.To.Sub(l.From)
	lenSq := d.LengthSquared()
	if lenSq == 0 {
		return l.From
	}
	t := clamp(p.Sub(l.From).Dot(d)/lenSq, 0, 1)
	return l.From.Add(d.Scale(t))
}

// DistanceToPoint returns the shortest distance between p and the segment
func (l Line) DistanceToPoint(p Vector2D) float64 {
	return l.ClosestPoint(p).Distance(p)
}

// ContainsPoint reports whether p lies within threshold of the segment.
// A non-positive threshold uses DefaultLineThreshold.
func (l Line) ContainsPoint(p Vector2D, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultLineThreshold
	}
	return l.DistanceToPoint(p) <= threshold
}

// Intersects reports whether the two segments share at least one point,
// including shared endpoints and overlapping collinear segments.
func (l Line) Intersects(other Line) bool {
	p, r := l.From, l.To.Sub(l.From)
	q, s := other.From, other.To.Sub(other.From)
	qp := q.Sub(p)

	denom := r.Cross(s)
	if denom == 0 {
		// parallel; only collinear segments can touch
		if qp.Cross(r) != 0 || qp.Cross(s) != 0 {
			return false
		}
		rr := r.LengthSquared()
		if rr == 0 {
			if s.LengthSquared() == 0 {
				return p == q
			}
			return other.DistanceToPoint(p) == 0
		}
		t0 := qp.Dot(r) / rr
		t1 := t0 + s.Dot(r)/rr
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		return t0 <= 1 && t1 >= 0
	}

	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// BoundingBox returns the rectangle spanned by the segment
func (l Line) BoundingBox() Rect {
	return RectFromCorners(l.From, l.To)
}

// LinesBoundingBox returns the rectangle containing every endpoint
func LinesBoundingBox(lines []Line) Rect {
	if len(lines) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		minX = math.Min(minX, math.Min(l.From.X, l.To.X))
		minY = math.Min(minY, math.Min(l.From.Y, l.To.Y))
		maxX = math.Max(maxX, math.Max(l.From.X, l.To.X))
		maxY = math.Max(maxY, math.Max(l.From.Y, l.To.Y))
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
