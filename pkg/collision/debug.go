package collision

import (
	"image/color"
	"math"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// pointDebugRadius is the radius of the dot drawn for point shapes
const pointDebugRadius = 3.0

// DebugDrawer receives primitive draw requests from DebugDraw.
// Opacity is in [0, 1] and multiplies the color alpha.
type DebugDrawer interface {
	DrawFilledCircle(center geometry.Vector2D, radius float64, c color.Color, opacity float64)
	DrawRectangleOutline(rect geometry.Rect, c color.Color, opacity float64)
	DrawLineSegment(from, to geometry.Vector2D, c color.Color, opacity float64)
}

// DebugDrawOptions controls World.DebugDraw. Zero fields take defaults:
// black grid, red highlight for occupied cells and opacity 0.5.
type DebugDrawOptions struct {
	GridColor      color.Color
	HighlightColor color.Color
	Opacity        float64
	HideGrid       bool
}

func (o DebugDrawOptions) withDefaults() DebugDrawOptions {
	if o.GridColor == nil {
		o.GridColor = color.Black
	}
	if o.HighlightColor == nil {
		o.HighlightColor = color.RGBA{R: 0xff, A: 0xff}
	}
	if o.Opacity <= 0 {
		o.Opacity = 0.5
	}
	return o
}

// DebugDraw draws the grid cells intersecting region and every shape they
// hold, each shape once
func (w *World) DebugDraw(region geometry.Rect, opts DebugDrawOptions) error {
	if w.drawer == nil {
		return ErrNoDebugDrawer
	}
	w.performUpdates()
	opts = opts.withDefaults()
	gridOpacity := opts.Opacity * 0.75

	minX := int(math.Floor(region.Left() / w.cellSize.X))
	minY := int(math.Floor(region.Top() / w.cellSize.Y))
	maxX := minX + int(math.Ceil(region.Width/w.cellSize.X))
	maxY := minY + int(math.Ceil(region.Height/w.cellSize.Y))

	w.queryStamp++
	stamp := w.queryStamp
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			k := cellKey{X: x, Y: y}
			bucket := w.cells[k]
			if !opts.HideGrid {
				c := opts.GridColor
				if len(bucket) > 0 {
					c = opts.HighlightColor
				}
				w.drawer.DrawRectangleOutline(w.cellRect(k), c, gridOpacity)
			}
			for _, id := range bucket {
				e := &w.entries[id]
				if e.stamp == stamp {
					continue
				}
				e.stamp = stamp
				DebugDrawShape(e.shape, w.drawer, opts.Opacity)
			}
		}
	}
	return nil
}

// DebugDrawShape draws a single shape with its debug color
func DebugDrawShape(s Shape, drawer DebugDrawer, opacity float64) {
	c := s.DebugColor()
	switch shape := s.(type) {
	case *PointShape:
		drawer.DrawFilledCircle(shape.position, pointDebugRadius, c, opacity)
	case *CircleShape:
		drawer.DrawFilledCircle(shape.circle.Center, shape.circle.Radius, c, opacity)
	case *RectangleShape:
		drawer.DrawRectangleOutline(shape.rect, c, opacity)
	case *LinesShape:
		for _, l := range shape.lines {
			drawer.DrawLineSegment(l.From, l.To, c, opacity)
		}
	case *TilemapShape:
		if shape.border > 0 {
			drawer.DrawRectangleOutline(shape.bb, c, opacity)
		}
		shape.IterateTilesInRegion(shape.inner, func(t Tile) bool {
			tc := shape.debugColor
			if tc == nil {
				tc = DefaultDebugColor(t.Flags)
			}
			drawer.DrawRectangleOutline(t.Rect, tc, opacity)
			return true
		})
	}
}
