// pkg/geometry/circle.go
package geometry

// Circle represents a circular area
type Circle struct {
	Center Vector2D
	Radius float64
}

// Contains checks whether point is inside the circle or on its edge
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.DistanceSquared(point) <= c.Radius*c.Radius
}

// Intersects checks if two circles touch or overlap
func (c Circle) Intersects(other Circle) bool {
	sum := c.Radius + other.Radius
	return c.Center.DistanceSquared(other.Center) <= sum*sum
}

// IntersectsLine checks whether the segment passes through the circle
func (c Circle) IntersectsLine(line Line) bool {
	return line.DistanceToPoint(c.Center) <= c.Radius
}

// BoundingBox returns the square enclosing the circle
func (c Circle) BoundingBox() Rect {
	return Rect{
		X:      c.Center.X - c.Radius,
		Y:      c.Center.Y - c.Radius,
		Width:  c.Radius * 2,
		Height: c.Radius * 2,
	}
}
