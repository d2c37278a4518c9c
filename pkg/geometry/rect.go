// pkg/geometry/rect.go
package geometry

import "math"

// Rect represents an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromCorners builds a rectangle spanning two opposite corners
func RectFromCorners(a, b Vector2D) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// RectFromPoints returns the smallest rectangle containing all points.
// An empty slice yields the zero rectangle.
func RectFromPoints(points ...Vector2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) TopLeft() Vector2D     { return Vector2D{X: r.X, Y: r.Y} }
func (r Rect) TopRight() Vector2D    { return Vector2D{X: r.Right(), Y: r.Y} }
func (r Rect) BottomLeft() Vector2D  { return Vector2D{X: r.X, Y: r.Bottom()} }
func (r Rect) BottomRight() Vector2D { return Vector2D{X: r.Right(), Y: r.Bottom()} }

// Center returns the middle point of the rectangle
func (r Rect) Center() Vector2D {
	return Vector2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Size returns width and height as a vector
func (r Rect) Size() Vector2D {
	return Vector2D{X: r.Width, Y: r.Height}
}

// Contains reports whether point lies inside the rectangle, edges included
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.X &&
		point.X <= r.Right() &&
		point.Y >= r.Y &&
		point.Y <= r.Bottom()
}

// ContainsRect reports whether other lies fully inside r
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X &&
		other.Right() <= r.Right() &&
		other.Y >= r.Y &&
		other.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rectangles overlap.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return !(other.Left() >= r.Right() ||
		other.Right() <= r.Left() ||
		other.Top() >= r.Bottom() ||
		other.Bottom() <= r.Top())
}

// Overlaps is the inclusive variant of Intersects; touching edges count.
func (r Rect) Overlaps(other Rect) bool {
	return !(other.Left() > r.Right() ||
		other.Right() < r.Left() ||
		other.Top() > r.Bottom() ||
		other.Bottom() < r.Top())
}

// ClosestPoint returns the point of the rectangle nearest to p
func (r Rect) ClosestPoint(p Vector2D) Vector2D {
	return Vector2D{
		X: clamp(p.X, r.X, r.Right()),
		Y: clamp(p.Y, r.Y, r.Bottom()),
	}
}

// IntersectsCircle reports whether the circle touches or overlaps the rectangle
func (r Rect) IntersectsCircle(c Circle) bool {
	return r.ClosestPoint(c.Center).DistanceSquared(c.Center) <= c.Radius*c.Radius
}

// IntersectsLine reports whether the segment touches the rectangle
func (r Rect) IntersectsLine(line Line) bool {
	if r.Contains(line.From) || r.Contains(line.To) {
		return true
	}
	for _, edge := range r.Edges() {
		if line.Intersects(edge) {
			return true
		}
	}
	return false
}

// Edges returns the four sides: top, right, bottom, left
func (r Rect) Edges() [4]Line {
	tl, tr, br, bl := r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()
	return [4]Line{
		{From: tl, To: tr},
		{From: tr, To: br},
		{From: br, To: bl},
		{From: bl, To: tl},
	}
}

// Expand grows the rectangle by amount on every side
func (r Rect) Expand(amount float64) Rect {
	return Rect{
		X:      r.X - amount,
		Y:      r.Y - amount,
		Width:  r.Width + amount*2,
		Height: r.Height + amount*2,
	}
}

// Merge returns the smallest rectangle containing both
func (r Rect) Merge(other Rect) Rect {
	return RectFromPoints(r.TopLeft(), r.BottomRight(), other.TopLeft(), other.BottomRight())
}

// Offset returns the rectangle moved by delta
func (r Rect) Offset(delta Vector2D) Rect {
	return Rect{X: r.X + delta.X, Y: r.Y + delta.Y, Width: r.Width, Height: r.Height}
}

// BoundingCircle returns the circle around the center touching all corners
func (r Rect) BoundingCircle() Circle {
	center := r.Center()
	return Circle{Center: center, Radius: center.Distance(r.TopLeft())}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
