package collision

import (
	"context"
	"math"

	"github.com/opd-ai/collide2d/pkg/event"
	"github.com/opd-ai/collide2d/pkg/geometry"
	"github.com/opd-ai/collide2d/pkg/logging"
)

// DefaultCellSize is the grid cell edge used when none is given
const DefaultCellSize = 512.0

type cellKey struct {
	X, Y int
}

// cellRange is the inclusive range of cell keys a bounding box covers
type cellRange struct {
	minX, minY, maxX, maxY int
}

// noCells is an empty range
var noCells = cellRange{minX: 1, maxX: 0}

func (r cellRange) contains(k cellKey) bool {
	return k.X >= r.minX && k.X <= r.maxX && k.Y >= r.minY && k.Y <= r.maxY
}

type entry struct {
	shape   Shape
	cells   cellRange
	placed  bool
	pending bool
	// stamp is the last query that collected this shape
	stamp uint64
}

// WorldOption configures a World
type WorldOption func(*World)

// WithLogger sets the logger used for world diagnostics
func WithLogger(logger *logging.Logger) WorldOption {
	return func(w *World) { w.logger = logger }
}

// WithEventBus publishes membership and collision events to bus
func WithEventBus(bus *event.Bus) WorldOption {
	return func(w *World) { w.bus = bus }
}

// WithDebugDrawer sets the drawer used by DebugDraw
func WithDebugDrawer(drawer DebugDrawer) WorldOption {
	return func(w *World) { w.drawer = drawer }
}

// World buckets shapes into a uniform grid and answers collision queries.
// A World is not safe for concurrent use.
type World struct {
	resolver *Resolver
	cellSize geometry.Vector2D

	cells      map[cellKey][]ShapeID
	emptyCells map[cellKey]struct{}

	entries []entry
	free    []ShapeID
	count   int
	pending []ShapeID

	queryStamp uint64
	stats      Stats
	// reach is the largest contact tolerance of any shape placed so far
	reach float64

	logger *logging.Logger
	bus    *event.Bus
	drawer DebugDrawer
	ctx    context.Context
}

// NewWorld creates an empty world. A nil resolver gets the default handlers;
// non-positive cell size components fall back to DefaultCellSize.
func NewWorld(resolver *Resolver, cellSize geometry.Vector2D, opts ...WorldOption) *World {
	if resolver == nil {
		resolver = NewDefaultResolver()
	}
	if cellSize.X <= 0 {
		cellSize.X = DefaultCellSize
	}
	if cellSize.Y <= 0 {
		cellSize.Y = DefaultCellSize
	}
	w := &World{
		resolver:   resolver,
		cellSize:   cellSize,
		cells:      make(map[cellKey][]ShapeID),
		emptyCells: make(map[cellKey]struct{}),
		ctx:        context.Background(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.NewNopLogger()
	}
	return w
}

// NewSquareWorld creates a world with square cells
func NewSquareWorld(resolver *Resolver, cellSize float64, opts ...WorldOption) *World {
	return NewWorld(resolver, geometry.Vector2D{X: cellSize, Y: cellSize}, opts...)
}

// Resolver returns the resolver used for narrow phase tests
func (w *World) Resolver() *Resolver { return w.resolver }

// CellSize returns the grid cell dimensions
func (w *World) CellSize() geometry.Vector2D { return w.cellSize }

// ShapeCount returns the number of shapes in the world
func (w *World) ShapeCount() int { return w.count }

// CellCount returns the number of live grid cells
func (w *World) CellCount() int {
	w.performUpdates()
	return len(w.cells)
}

// SetDebugDrawer replaces the drawer used by DebugDraw
func (w *World) SetDebugDrawer(drawer DebugDrawer) { w.drawer = drawer }

// AddShape inserts s into the grid. Adding a shape already in this world
// does nothing.
func (w *World) AddShape(s Shape) error {
	b := s.base()
	if b.world == w {
		return nil
	}
	if b.world != nil {
		return ErrShapeInAnotherWorld
	}

	var id ShapeID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		id = ShapeID(len(w.entries))
		w.entries = append(w.entries, entry{})
	}
	w.entries[id] = entry{shape: s}
	b.world = w
	b.id = id
	w.count++

	w.place(id)
	w.stats.AddedShapes++
	w.performUpdates()

	w.logger.Debug(w.ctx, "shape added", "shape_id", id, "shape_kind", s.Kind().String(), "shapes", w.count)
	if w.bus != nil {
		w.bus.Publish(event.NewShapeEvent(event.ShapeAdded, w, uint32(id), s.Kind().String()))
	}
	return nil
}

// RemoveShape takes s out of the grid
func (w *World) RemoveShape(s Shape) error {
	b := s.base()
	if b.world != w {
		w.logger.Warn(w.ctx, "rejected removal of foreign shape", "shape_kind", s.Kind().String())
		return ErrShapeNotInWorld
	}
	return w.remove(b.id)
}

func (w *World) remove(id ShapeID) error {
	if int(id) >= len(w.entries) || w.entries[id].shape == nil {
		return ErrShapeNotInWorld
	}
	e := &w.entries[id]
	s := e.shape
	if e.placed {
		w.unlinkRange(id, e.cells, noCells)
	}
	b := s.base()
	b.world = nil
	b.id = 0
	*e = entry{}
	w.free = append(w.free, id)
	w.count--
	w.performUpdates()

	w.logger.Debug(w.ctx, "shape removed", "shape_id", id, "shape_kind", s.Kind().String(), "shapes", w.count)
	if w.bus != nil {
		w.bus.Publish(event.NewShapeEvent(event.ShapeRemoved, w, uint32(id), s.Kind().String()))
	}
	return nil
}

// Clear removes every shape from the world
func (w *World) Clear() {
	removed := w.count
	for i := range w.entries {
		if s := w.entries[i].shape; s != nil {
			b := s.base()
			b.world = nil
			b.id = 0
		}
	}
	w.entries = w.entries[:0]
	w.free = w.free[:0]
	w.pending = w.pending[:0]
	w.stats.DeletedGridCells += len(w.cells)
	w.cells = make(map[cellKey][]ShapeID)
	w.emptyCells = make(map[cellKey]struct{})
	w.count = 0

	w.logger.Debug(w.ctx, "world cleared", "shapes", removed)
	if w.bus != nil {
		w.bus.Publish(event.NewWorldEvent(event.WorldCleared, w, removed))
	}
}

// IterateShapes calls fn for every shape in handle order until fn returns false
func (w *World) IterateShapes(fn func(Shape) bool) {
	for i := range w.entries {
		if s := w.entries[i].shape; s != nil {
			if !fn(s) {
				return
			}
		}
	}
}

// queueUpdate marks a shape as needing re-placement at the next drain
func (w *World) queueUpdate(id ShapeID) {
	e := &w.entries[id]
	if e.pending {
		return
	}
	e.pending = true
	w.pending = append(w.pending, id)
}

// performUpdates re-places every dirty shape and deletes cells left empty
func (w *World) performUpdates() {
	if len(w.pending) > 0 {
		updated := 0
		for _, id := range w.pending {
			e := &w.entries[id]
			if !e.pending {
				continue
			}
			e.pending = false
			w.place(id)
			updated++
		}
		w.pending = w.pending[:0]
		w.stats.UpdatedShapes += updated
		w.logger.Debug(w.ctx, "drained pending updates", "updated", updated)
	}

	for k := range w.emptyCells {
		if len(w.cells[k]) == 0 {
			delete(w.cells, k)
			w.stats.DeletedGridCells++
		}
		delete(w.emptyCells, k)
	}
}

// place syncs the grid with the shape's current bounding box
func (w *World) place(id ShapeID) {
	e := &w.entries[id]
	w.reach = max(w.reach, contactTolerance(e.shape))
	next := w.rangeFor(e.shape.BoundingBox())
	if e.placed && next == e.cells {
		return
	}
	prev := e.cells
	if !e.placed {
		prev = noCells
	}
	w.unlinkRange(id, prev, next)
	for x := next.minX; x <= next.maxX; x++ {
		for y := next.minY; y <= next.maxY; y++ {
			k := cellKey{X: x, Y: y}
			if prev.contains(k) {
				continue
			}
			bucket, ok := w.cells[k]
			if !ok {
				w.stats.CreatedGridCells++
			}
			w.cells[k] = append(bucket, id)
		}
	}
	e.cells = next
	e.placed = true
}

// unlinkRange drops id from every cell of r not covered by keep
func (w *World) unlinkRange(id ShapeID, r, keep cellRange) {
	for x := r.minX; x <= r.maxX; x++ {
		for y := r.minY; y <= r.maxY; y++ {
			k := cellKey{X: x, Y: y}
			if keep.contains(k) {
				continue
			}
			bucket := w.cells[k]
			for i, other := range bucket {
				if other == id {
					bucket = append(bucket[:i], bucket[i+1:]...)
					break
				}
			}
			w.cells[k] = bucket
			if len(bucket) == 0 {
				w.emptyCells[k] = struct{}{}
			}
		}
	}
}

// maxCellIndex bounds cell keys so far-off boxes cannot overflow int.
// Placing a box that spans many cells still costs one bucket per cell.
const maxCellIndex = 1 << 30

// rangeFor maps a box to its cell keys. A box with NaN bounds covers no cell.
func (w *World) rangeFor(bb geometry.Rect) cellRange {
	left, top, right, bottom := bb.Left(), bb.Top(), bb.Right(), bb.Bottom()
	if math.IsNaN(left) || math.IsNaN(top) || math.IsNaN(right) || math.IsNaN(bottom) {
		return noCells
	}
	return cellRange{
		minX: cellIndex(left, w.cellSize.X),
		minY: cellIndex(top, w.cellSize.Y),
		maxX: cellIndex(right, w.cellSize.X),
		maxY: cellIndex(bottom, w.cellSize.Y),
	}
}

func cellIndex(v, size float64) int {
	return int(math.Max(-maxCellIndex, math.Min(maxCellIndex, math.Floor(v/size))))
}

// queryRange is the cell range a query from source must visit. It is padded
// so tolerance based contacts across a cell edge are still gathered.
func (w *World) queryRange(source Shape) cellRange {
	pad := contactTolerance(source) + w.reach
	return w.rangeFor(source.BoundingBox().Expand(pad))
}

func (w *World) cellRect(k cellKey) geometry.Rect {
	return geometry.Rect{
		X:      float64(k.X) * w.cellSize.X,
		Y:      float64(k.Y) * w.cellSize.Y,
		Width:  w.cellSize.X,
		Height: w.cellSize.Y,
	}
}
