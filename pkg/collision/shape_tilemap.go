package collision

import (
	"fmt"
	"math"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// TileIndex addresses a tile by column and row
type TileIndex struct {
	X int
	Y int
}

// Tile is a blocking tile materialized for a query
type Tile struct {
	Index TileIndex
	Rect  geometry.Rect
	Flags uint32
}

// TilemapShape is a grid of tiles where each tile either blocks or not.
// Blocking tiles behave like rectangles in every collision test. An optional
// border ring around the grid blocks as well.
type TilemapShape struct {
	shapeBase

	offset   geometry.Vector2D
	gridSize TileIndex
	tileSize geometry.Vector2D
	border   float64

	inner geometry.Rect
	tiles map[TileIndex]uint32
}

// NewTilemapShape creates an empty tilemap whose top-left corner is offset
func NewTilemapShape(offset geometry.Vector2D, gridSize TileIndex, tileSize geometry.Vector2D, borderThickness float64) (*TilemapShape, error) {
	if gridSize.X <= 0 || gridSize.Y <= 0 || tileSize.X <= 0 || tileSize.Y <= 0 || borderThickness < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d, tile %vx%v, border %v",
			ErrInvalidTilemap, gridSize.X, gridSize.Y, tileSize.X, tileSize.Y, borderThickness)
	}
	s := &TilemapShape{
		shapeBase: newShapeBase(),
		gridSize:  gridSize,
		tileSize:  tileSize,
		border:    borderThickness,
		tiles:     make(map[TileIndex]uint32),
	}
	s.SetOffset(offset)
	return s, nil
}

// Kind implements Shape
func (s *TilemapShape) Kind() Kind { return KindTilemap }

func (s *TilemapShape) Offset() geometry.Vector2D   { return s.offset }
func (s *TilemapShape) GridSize() TileIndex         { return s.gridSize }
func (s *TilemapShape) TileSize() geometry.Vector2D { return s.tileSize }
func (s *TilemapShape) BorderThickness() float64    { return s.border }

// GridRect returns the area covered by tiles, without the border
func (s *TilemapShape) GridRect() geometry.Rect { return s.inner }

// BlockedCount returns how many tiles block
func (s *TilemapShape) BlockedCount() int { return len(s.tiles) }

// SetOffset moves the whole tilemap
func (s *TilemapShape) SetOffset(offset geometry.Vector2D) {
	s.offset = offset
	s.inner = geometry.Rect{
		X:      offset.X,
		Y:      offset.Y,
		Width:  float64(s.gridSize.X) * s.tileSize.X,
		Height: float64(s.gridSize.Y) * s.tileSize.Y,
	}
	outer := s.inner.Expand(s.border)
	bc := outer.BoundingCircle()
	s.setCache(outer, bc.Center, bc.Radius)
}

// InBounds reports whether index lies inside the grid
func (s *TilemapShape) InBounds(index TileIndex) bool {
	return index.X >= 0 && index.Y >= 0 && index.X < s.gridSize.X && index.Y < s.gridSize.Y
}

// SetTile marks a tile as blocking or free. Zero flags mean AllFlags.
func (s *TilemapShape) SetTile(index TileIndex, blocked bool, flags uint32) error {
	if !s.InBounds(index) {
		return fmt.Errorf("%w: %d,%d in %dx%d grid", ErrInvalidTileIndex, index.X, index.Y, s.gridSize.X, s.gridSize.Y)
	}
	if blocked {
		if flags == 0 {
			flags = AllFlags
		}
		s.tiles[index] = flags
	} else {
		delete(s.tiles, index)
	}
	s.setCache(s.bb, s.center, s.radius)
	return nil
}

// Tile returns the blocking tile at index
func (s *TilemapShape) Tile(index TileIndex) (Tile, bool, error) {
	if !s.InBounds(index) {
		return Tile{}, false, fmt.Errorf("%w: %d,%d in %dx%d grid", ErrInvalidTileIndex, index.X, index.Y, s.gridSize.X, s.gridSize.Y)
	}
	flags, ok := s.tiles[index]
	if !ok {
		return Tile{}, false, nil
	}
	return s.tile(index, flags), true, nil
}

// TileAt returns the blocking tile under a world position
func (s *TilemapShape) TileAt(position geometry.Vector2D) (Tile, bool, error) {
	return s.Tile(s.indexAt(position))
}

// IterateTilesInRegion calls fn for every blocking tile whose cell overlaps
// region, column by column. Returning false stops the iteration.
func (s *TilemapShape) IterateTilesInRegion(region geometry.Rect, fn func(Tile) bool) {
	if len(s.tiles) == 0 || !s.inner.Overlaps(region) {
		return
	}
	start := s.clampIndex(s.indexAt(region.TopLeft()))
	end := s.clampIndex(s.indexAt(region.BottomRight()))
	for i := start.X; i <= end.X; i++ {
		for j := start.Y; j <= end.Y; j++ {
			index := TileIndex{X: i, Y: j}
			flags, ok := s.tiles[index]
			if !ok {
				continue
			}
			if !fn(s.tile(index, flags)) {
				return
			}
		}
	}
}

// TilesInRegion collects the blocking tiles overlapping region
func (s *TilemapShape) TilesInRegion(region geometry.Rect) []Tile {
	var tiles []Tile
	s.IterateTilesInRegion(region, func(t Tile) bool {
		tiles = append(tiles, t)
		return true
	})
	return tiles
}

func (s *TilemapShape) tile(index TileIndex, flags uint32) Tile {
	return Tile{
		Index: index,
		Rect: geometry.Rect{
			X:      s.offset.X + float64(index.X)*s.tileSize.X,
			Y:      s.offset.Y + float64(index.Y)*s.tileSize.Y,
			Width:  s.tileSize.X,
			Height: s.tileSize.Y,
		},
		Flags: flags,
	}
}

// indexAt maps a world position to a tile index. Positions on the far edge
// of the grid belong to the last row or column.
func (s *TilemapShape) indexAt(p geometry.Vector2D) TileIndex {
	index := TileIndex{
		X: int(math.Floor((p.X - s.offset.X) / s.tileSize.X)),
		Y: int(math.Floor((p.Y - s.offset.Y) / s.tileSize.Y)),
	}
	if index.X == s.gridSize.X && p.X == s.inner.Right() {
		index.X--
	}
	if index.Y == s.gridSize.Y && p.Y == s.inner.Bottom() {
		index.Y--
	}
	return index
}

func (s *TilemapShape) clampIndex(index TileIndex) TileIndex {
	return TileIndex{
		X: max(0, min(s.gridSize.X-1, index.X)),
		Y: max(0, min(s.gridSize.Y-1, index.Y)),
	}
}

// borderTouchesPoint reports whether p lies in the border ring
func (s *TilemapShape) borderTouchesPoint(p geometry.Vector2D) bool {
	return s.border > 0 && s.bb.Contains(p) && !s.inner.Contains(p)
}

func (s *TilemapShape) borderTouchesRect(r geometry.Rect) bool {
	return s.border > 0 && s.bb.Intersects(r) && !s.inner.ContainsRect(r)
}

func (s *TilemapShape) borderTouchesCircle(c geometry.Circle) bool {
	return s.border > 0 && s.bb.IntersectsCircle(c) && !s.inner.ContainsRect(c.BoundingBox())
}

func (s *TilemapShape) borderTouchesLine(l geometry.Line) bool {
	return s.border > 0 && s.bb.IntersectsLine(l) && !(s.inner.Contains(l.From) && s.inner.Contains(l.To))
}
