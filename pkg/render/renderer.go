// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/geometry"
	"github.com/opd-ai/collide2d/pkg/logging"
)

// NullDrawer is a collision.DebugDrawer that only logs the primitives it receives.
type NullDrawer struct {
	logger *logging.Logger
	calls  int
}

// NewNullDrawer creates a new NullDrawer with structured logging.
func NewNullDrawer(logger *logging.Logger) *NullDrawer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullDrawer{logger: logger}
}

// Calls returns how many primitives were drawn
func (d *NullDrawer) Calls() int { return d.calls }

// DrawFilledCircle implements collision.DebugDrawer.
func (d *NullDrawer) DrawFilledCircle(center geometry.Vector2D, radius float64, c color.Color, opacity float64) {
	d.calls++
	d.logger.Debug(context.Background(), "DrawFilledCircle called",
		"x", center.X,
		"y", center.Y,
		"radius", radius,
		"opacity", opacity,
	)
}

// DrawRectangleOutline implements collision.DebugDrawer.
func (d *NullDrawer) DrawRectangleOutline(rect geometry.Rect, c color.Color, opacity float64) {
	d.calls++
	d.logger.Debug(context.Background(), "DrawRectangleOutline called",
		"x", rect.X,
		"y", rect.Y,
		"width", rect.Width,
		"height", rect.Height,
		"opacity", opacity,
	)
}

// DrawLineSegment implements collision.DebugDrawer.
func (d *NullDrawer) DrawLineSegment(from, to geometry.Vector2D, c color.Color, opacity float64) {
	d.calls++
	d.logger.Debug(context.Background(), "DrawLineSegment called",
		"from_x", from.X,
		"from_y", from.Y,
		"to_x", to.X,
		"to_y", to.Y,
		"opacity", opacity,
	)
}

var _ collision.DebugDrawer = (*NullDrawer)(nil)
