// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/geometry"
)

// DefaultLineWidth is the pixel width of outlines and line segments
const DefaultLineWidth = 1.0

// EntityStore receives the entities a DebugDrawer creates.
// *common.RenderSystem satisfies it.
type EntityStore interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type debugEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// DebugDrawer implements collision.DebugDrawer by turning every primitive
// into an engo entity. Entities live until the next Clear.
type DebugDrawer struct {
	store     EntityStore
	camera    *CameraSystem
	lineWidth float32
	entities  []*debugEntity
}

// NewDebugDrawer creates a drawer adding entities to store, positioned by camera
func NewDebugDrawer(store EntityStore, camera *CameraSystem) *DebugDrawer {
	return &DebugDrawer{
		store:     store,
		camera:    camera,
		lineWidth: DefaultLineWidth,
	}
}

// SetLineWidth changes the pixel width of outlines and lines
func (d *DebugDrawer) SetLineWidth(width float32) {
	if width > 0 {
		d.lineWidth = width
	}
}

// EntityCount returns how many entities the drawer currently holds
func (d *DebugDrawer) EntityCount() int {
	return len(d.entities)
}

// Clear removes every entity created since the last Clear
func (d *DebugDrawer) Clear() {
	for _, e := range d.entities {
		d.store.Remove(e.BasicEntity)
	}
	d.entities = d.entities[:0]
}

// DrawFilledCircle implements collision.DebugDrawer
func (d *DebugDrawer) DrawFilledCircle(center geometry.Vector2D, radius float64, c color.Color, opacity float64) {
	topLeft := d.camera.WorldToScreen(geometry.Vector2D{X: center.X - radius, Y: center.Y - radius})
	size := float32(2 * radius * float64(d.camera.Zoom()))
	d.add(
		common.RenderComponent{Drawable: common.Circle{}, Color: withOpacity(c, opacity)},
		common.SpaceComponent{Position: point(topLeft), Width: size, Height: size},
	)
}

// DrawRectangleOutline implements collision.DebugDrawer
func (d *DebugDrawer) DrawRectangleOutline(rect geometry.Rect, c color.Color, opacity float64) {
	topLeft := d.camera.WorldToScreen(rect.TopLeft())
	zoom := d.camera.Zoom()
	d.add(
		common.RenderComponent{
			Drawable: common.Rectangle{BorderWidth: d.lineWidth, BorderColor: withOpacity(c, opacity)},
			Color:    color.Transparent,
		},
		common.SpaceComponent{
			Position: point(topLeft),
			Width:    float32(rect.Width) * zoom,
			Height:   float32(rect.Height) * zoom,
		},
	)
}

// DrawLineSegment implements collision.DebugDrawer. Segments become thin
// rectangles rotated around their start point.
func (d *DebugDrawer) DrawLineSegment(from, to geometry.Vector2D, c color.Color, opacity float64) {
	start := d.camera.WorldToScreen(from)
	delta := d.camera.WorldToScreen(to).Sub(start)
	d.add(
		common.RenderComponent{Drawable: common.Rectangle{}, Color: withOpacity(c, opacity)},
		common.SpaceComponent{
			Position: point(start),
			Width:    float32(delta.Length()),
			Height:   d.lineWidth,
			Rotation: float32(delta.Angle() * 180 / math.Pi),
		},
	)
}

func (d *DebugDrawer) add(render common.RenderComponent, space common.SpaceComponent) {
	e := &debugEntity{
		BasicEntity:     ecs.NewBasic(),
		RenderComponent: render,
		SpaceComponent:  space,
	}
	d.entities = append(d.entities, e)
	d.store.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
}

func point(v geometry.Vector2D) engo.Point {
	return engo.Point{X: float32(v.X), Y: float32(v.Y)}
}

// withOpacity scales the alpha of c by opacity
func withOpacity(c color.Color, opacity float64) color.Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	opacity = math.Max(0, math.Min(1, opacity))
	nc.A = uint8(math.Round(float64(nc.A) * opacity))
	return nc
}

var _ collision.DebugDrawer = (*DebugDrawer)(nil)
