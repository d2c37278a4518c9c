package collision

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// AllFlags is the default collision flags value; it shares a bit with every mask.
const AllFlags uint32 = 0xFFFFFFFF

// ShapeID is the handle a world assigns to a shape it holds
type ShapeID uint32

// Shape is a collision shape. The set of implementations is closed:
// *PointShape, *CircleShape, *RectangleShape, *LinesShape and *TilemapShape.
type Shape interface {
	// Kind identifies the shape variant
	Kind() Kind
	// Flags returns the collision flags matched against query masks
	Flags() uint32
	// SetFlags replaces the collision flags
	SetFlags(flags uint32)
	// BoundingBox returns the cached world-space box around the shape
	BoundingBox() geometry.Rect
	// Center returns the cached center used for distance sorting
	Center() geometry.Vector2D
	// Radius returns the distance from Center to the furthest point of the shape
	Radius() float64
	// World returns the world holding the shape, or nil
	World() *World
	// DebugColor returns the override color, or the default for the shape flags
	DebugColor() color.Color
	// SetDebugColor sets an override color; nil restores the default
	SetDebugColor(c color.Color)
	// Remove takes the shape out of its world
	Remove() error

	base() *shapeBase
}

// shapeBase carries the state common to every shape variant
type shapeBase struct {
	world *World
	id    ShapeID

	flags      uint32
	debugColor color.Color

	bb     geometry.Rect
	center geometry.Vector2D
	radius float64
}

func newShapeBase() shapeBase {
	return shapeBase{flags: AllFlags}
}

func (b *shapeBase) base() *shapeBase { return b }

func (b *shapeBase) Flags() uint32 { return b.flags }

func (b *shapeBase) SetFlags(flags uint32) { b.flags = flags }

func (b *shapeBase) BoundingBox() geometry.Rect { return b.bb }

func (b *shapeBase) Center() geometry.Vector2D { return b.center }

func (b *shapeBase) Radius() float64 { return b.radius }

func (b *shapeBase) World() *World { return b.world }

func (b *shapeBase) SetDebugColor(c color.Color) { b.debugColor = c }

func (b *shapeBase) DebugColor() color.Color {
	if b.debugColor != nil {
		return b.debugColor
	}
	return DefaultDebugColor(b.flags)
}

func (b *shapeBase) Remove() error {
	if b.world == nil {
		return ErrShapeNotInWorld
	}
	return b.world.remove(b.id)
}

// setCache stores freshly computed bounds and notifies the owning world
func (b *shapeBase) setCache(bb geometry.Rect, center geometry.Vector2D, radius float64) {
	b.bb = bb
	b.center = center
	b.radius = radius
	if b.world != nil {
		b.world.queueUpdate(b.id)
	}
}

var debugPalette = []colorful.Color{
	mustHex("#ff0000"), // red
	mustHex("#0000ff"), // blue
	mustHex("#008000"), // green
	mustHex("#ffff00"), // yellow
	mustHex("#800080"), // purple
	mustHex("#008080"), // teal
	mustHex("#a52a2a"), // brown
	mustHex("#ffa500"), // orange
	mustHex("#f0e68c"), // khaki
	mustHex("#008b8b"), // darkcyan
	mustHex("#6495ed"), // cornflowerblue
	mustHex("#a9a9a9"), // darkgray
	mustHex("#d2691e"), // chocolate
	mustHex("#7fffd4"), // aquamarine
	mustHex("#5f9ea0"), // cadetblue
	mustHex("#ff00ff"), // magenta
	mustHex("#2e8b57"), // seagreen
	mustHex("#ffc0cb"), // pink
	mustHex("#808000"), // olive
	mustHex("#ee82ee"), // violet
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultDebugColor returns the palette color for a flags value.
// Shapes sharing flags share a color.
func DefaultDebugColor(flags uint32) color.Color {
	return debugPalette[flags%uint32(len(debugPalette))]
}
