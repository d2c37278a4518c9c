package collision

import "errors"

var (
	// ErrUnsupportedShapePair is returned when the resolver has no handler for two kinds
	ErrUnsupportedShapePair = errors.New("unsupported shape pair")
	// ErrShapeNotInWorld is returned when removing a shape the world does not hold
	ErrShapeNotInWorld = errors.New("shape is not in this collision world")
	// ErrShapeInAnotherWorld is returned when adding a shape that already belongs to a world
	ErrShapeInAnotherWorld = errors.New("shape already belongs to another collision world")
	// ErrInvalidTileIndex is returned for tile indices outside the tilemap grid
	ErrInvalidTileIndex = errors.New("tile index out of bounds")
	// ErrInvalidTilemap is returned for tilemaps with non-positive dimensions
	ErrInvalidTilemap = errors.New("invalid tilemap dimensions")
	// ErrEmptyLines is returned when a lines shape would hold no segments
	ErrEmptyLines = errors.New("lines shape needs at least one line")
	// ErrNoDebugDrawer is returned by DebugDraw when no drawer was injected
	ErrNoDebugDrawer = errors.New("no debug drawer set")
	// ErrManagerNotSetup is returned when using a manager before Setup
	ErrManagerNotSetup = errors.New("collision manager is not set up")
)
