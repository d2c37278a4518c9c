package collision

import (
	"math"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// pointTolerance is how far apart, per axis, two points may be and still collide
const pointTolerance = 1.0

// contactTolerance is how far outside its bounding box s can still register
// a contact
func contactTolerance(s Shape) float64 {
	switch s := s.(type) {
	case *PointShape:
		return pointTolerance
	case *LinesShape:
		return s.threshold
	}
	return 0
}

// NewDefaultResolver creates a resolver with handlers for every pair of
// built-in shape kinds
func NewDefaultResolver() *Resolver {
	r := NewResolver()
	r.SetHandler(KindPoint, KindPoint, pointPoint)
	r.SetHandler(KindPoint, KindCircle, pointCircle)
	r.SetHandler(KindPoint, KindRectangle, pointRect)
	r.SetHandler(KindPoint, KindLines, pointLines)
	r.SetHandler(KindPoint, KindTilemap, pointTilemap)
	r.SetHandler(KindCircle, KindCircle, circleCircle)
	r.SetHandler(KindCircle, KindRectangle, circleRect)
	r.SetHandler(KindCircle, KindLines, circleLines)
	r.SetHandler(KindCircle, KindTilemap, circleTilemap)
	r.SetHandler(KindRectangle, KindRectangle, rectRect)
	r.SetHandler(KindRectangle, KindLines, rectLines)
	r.SetHandler(KindRectangle, KindTilemap, rectTilemap)
	r.SetHandler(KindLines, KindLines, linesLines)
	r.SetHandler(KindLines, KindTilemap, linesTilemap)
	r.SetHandler(KindTilemap, KindTilemap, tilemapTilemap)
	return r
}

func at(p geometry.Vector2D) (bool, *geometry.Vector2D) {
	return true, &p
}

func pointPoint(first, second Shape) (bool, *geometry.Vector2D) {
	a := first.(*PointShape).position
	b := second.(*PointShape).position
	if math.Abs(a.X-b.X) <= pointTolerance && math.Abs(a.Y-b.Y) <= pointTolerance {
		return at(a)
	}
	return false, nil
}

func pointCircle(first, second Shape) (bool, *geometry.Vector2D) {
	p := first.(*PointShape).position
	if second.(*CircleShape).circle.Contains(p) {
		return at(p)
	}
	return false, nil
}

func pointRect(first, second Shape) (bool, *geometry.Vector2D) {
	p := first.(*PointShape).position
	if second.(*RectangleShape).rect.Contains(p) {
		return at(p)
	}
	return false, nil
}

func pointLines(first, second Shape) (bool, *geometry.Vector2D) {
	p := first.(*PointShape).position
	lines := second.(*LinesShape)
	for _, l := range lines.lines {
		if l.ContainsPoint(p, lines.threshold) {
			return at(p)
		}
	}
	return false, nil
}

func pointTilemap(first, second Shape) (bool, *geometry.Vector2D) {
	p := first.(*PointShape).position
	tm := second.(*TilemapShape)
	if tm.inner.Contains(p) {
		if _, blocked, err := tm.TileAt(p); err == nil && blocked {
			return at(p)
		}
		return false, nil
	}
	if tm.borderTouchesPoint(p) {
		return at(p)
	}
	return false, nil
}

func circleCircle(first, second Shape) (bool, *geometry.Vector2D) {
	return first.(*CircleShape).circle.Intersects(second.(*CircleShape).circle), nil
}

func circleRect(first, second Shape) (bool, *geometry.Vector2D) {
	return second.(*RectangleShape).rect.IntersectsCircle(first.(*CircleShape).circle), nil
}

func circleLines(first, second Shape) (bool, *geometry.Vector2D) {
	c := first.(*CircleShape).circle
	for _, l := range second.(*LinesShape).lines {
		if c.IntersectsLine(l) {
			return true, nil
		}
	}
	return false, nil
}

func circleTilemap(first, second Shape) (bool, *geometry.Vector2D) {
	c := first.(*CircleShape).circle
	tm := second.(*TilemapShape)
	if tm.borderTouchesCircle(c) {
		return true, nil
	}
	return tm.anyTile(c.BoundingBox(), func(r geometry.Rect) bool {
		return r.IntersectsCircle(c)
	}), nil
}

func rectRect(first, second Shape) (bool, *geometry.Vector2D) {
	return first.(*RectangleShape).rect.Intersects(second.(*RectangleShape).rect), nil
}

func rectLines(first, second Shape) (bool, *geometry.Vector2D) {
	r := first.(*RectangleShape).rect
	for _, l := range second.(*LinesShape).lines {
		if r.IntersectsLine(l) {
			return true, nil
		}
	}
	return false, nil
}

func rectTilemap(first, second Shape) (bool, *geometry.Vector2D) {
	rect := first.(*RectangleShape).rect
	tm := second.(*TilemapShape)
	if tm.borderTouchesRect(rect) {
		return true, nil
	}
	return tm.anyTile(rect, rect.Intersects), nil
}

func linesLines(first, second Shape) (bool, *geometry.Vector2D) {
	for _, a := range first.(*LinesShape).lines {
		for _, b := range second.(*LinesShape).lines {
			if a.Intersects(b) {
				return true, nil
			}
		}
	}
	return false, nil
}

func linesTilemap(first, second Shape) (bool, *geometry.Vector2D) {
	tm := second.(*TilemapShape)
	for _, l := range first.(*LinesShape).lines {
		if tm.borderTouchesLine(l) {
			return true, nil
		}
		hit := tm.anyTile(l.BoundingBox(), func(r geometry.Rect) bool {
			return r.IntersectsLine(l)
		})
		if hit {
			return true, nil
		}
	}
	return false, nil
}

// tilemapTilemap collides when blocked tiles overlap or a blocked tile of
// one map enters the border of the other. Borders never collide with each other.
func tilemapTilemap(first, second Shape) (bool, *geometry.Vector2D) {
	a := first.(*TilemapShape)
	b := second.(*TilemapShape)
	hit := a.anyTile(b.bb, func(tile geometry.Rect) bool {
		return b.borderTouchesRect(tile) || b.anyTile(tile, tile.Intersects)
	})
	if hit {
		return true, nil
	}
	return b.anyTile(a.bb, a.borderTouchesRect), nil
}

// anyTile reports whether test holds for any blocking tile overlapping region
func (s *TilemapShape) anyTile(region geometry.Rect, test func(geometry.Rect) bool) bool {
	found := false
	s.IterateTilesInRegion(region, func(t Tile) bool {
		found = test(t.Rect)
		return !found
	})
	return found
}
