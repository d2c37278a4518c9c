package collision

import "github.com/opd-ai/collide2d/pkg/geometry"

// Result describes a positive collision test. Position is set only by
// handlers that can name a contact point.
type Result struct {
	Position *geometry.Vector2D
	First    Shape
	Second   Shape
}

// HasPosition reports whether the handler reported a contact point
func (r *Result) HasPosition() bool { return r != nil && r.Position != nil }
