package collision

import (
	"github.com/opd-ai/collide2d/pkg/geometry"
)

// PointShape is a single point
type PointShape struct {
	shapeBase
	position geometry.Vector2D
}

// NewPointShape creates a point shape at position
func NewPointShape(position geometry.Vector2D) *PointShape {
	s := &PointShape{shapeBase: newShapeBase()}
	s.SetPosition(position)
	return s
}

// Kind implements Shape
func (s *PointShape) Kind() Kind { return KindPoint }

// Position returns the point location
func (s *PointShape) Position() geometry.Vector2D { return s.position }

// SetPosition moves the point
func (s *PointShape) SetPosition(position geometry.Vector2D) {
	s.position = position
	s.setCache(geometry.Rect{X: position.X, Y: position.Y}, position, 0)
}

// CircleShape is a filled circle
type CircleShape struct {
	shapeBase
	circle geometry.Circle
}

// NewCircleShape creates a circle shape
func NewCircleShape(circle geometry.Circle) *CircleShape {
	s := &CircleShape{shapeBase: newShapeBase()}
	s.SetCircle(circle)
	return s
}

// Kind implements Shape
func (s *CircleShape) Kind() Kind { return KindCircle }

// Circle returns the circle geometry
func (s *CircleShape) Circle() geometry.Circle { return s.circle }

// SetCircle replaces the circle geometry
func (s *CircleShape) SetCircle(circle geometry.Circle) {
	s.circle = circle
	s.setCache(circle.BoundingBox(), circle.Center, circle.Radius)
}

// SetPosition moves the circle center, keeping its radius
func (s *CircleShape) SetPosition(center geometry.Vector2D) {
	s.SetCircle(geometry.Circle{Center: center, Radius: s.circle.Radius})
}

// RectangleShape is an axis-aligned rectangle
type RectangleShape struct {
	shapeBase
	rect geometry.Rect
}

// NewRectangleShape creates a rectangle shape
func NewRectangleShape(rect geometry.Rect) *RectangleShape {
	s := &RectangleShape{shapeBase: newShapeBase()}
	s.SetRectangle(rect)
	return s
}

// Kind implements Shape
func (s *RectangleShape) Kind() Kind { return KindRectangle }

// Rectangle returns the rectangle geometry
func (s *RectangleShape) Rectangle() geometry.Rect { return s.rect }

// SetRectangle replaces the rectangle geometry
func (s *RectangleShape) SetRectangle(rect geometry.Rect) {
	s.rect = rect
	bc := rect.BoundingCircle()
	s.setCache(rect, bc.Center, bc.Radius)
}

// SetPosition moves the rectangle's top-left corner, keeping its size
func (s *RectangleShape) SetPosition(topLeft geometry.Vector2D) {
	s.SetRectangle(geometry.Rect{X: topLeft.X, Y: topLeft.Y, Width: s.rect.Width, Height: s.rect.Height})
}
