// pkg/render/engo/renderer_test.go
package engo

import (
	"image/color"
	"math"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/geometry"
)

// fakeStore stands in for common.RenderSystem, which needs a GL context
type fakeStore struct {
	render  map[uint64]*common.RenderComponent
	space   map[uint64]*common.SpaceComponent
	order   []uint64
	removed int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		render: make(map[uint64]*common.RenderComponent),
		space:  make(map[uint64]*common.SpaceComponent),
	}
}

func (s *fakeStore) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	s.render[basic.ID()] = render
	s.space[basic.ID()] = space
	s.order = append(s.order, basic.ID())
}

func (s *fakeStore) Remove(basic ecs.BasicEntity) {
	delete(s.render, basic.ID())
	delete(s.space, basic.ID())
	s.removed++
}

func (s *fakeStore) last() (*common.RenderComponent, *common.SpaceComponent) {
	id := s.order[len(s.order)-1]
	return s.render[id], s.space[id]
}

// newIdentityCamera returns a camera where world and screen coordinates match
func newIdentityCamera() *CameraSystem {
	camera := NewCameraSystem(100, 100)
	camera.SetTarget(geometry.Vector2D{X: 50, Y: 50})
	return camera
}

var red = color.RGBA{R: 0xff, A: 0xff}

func TestDebugDrawer_DrawFilledCircle(t *testing.T) {
	store := newFakeStore()
	drawer := NewDebugDrawer(store, newIdentityCamera())
	drawer.DrawFilledCircle(geometry.Vector2D{X: 10, Y: 20}, 5, red, 0.5)

	render, space := store.last()
	if _, ok := render.Drawable.(common.Circle); !ok {
		t.Errorf("Expected a circle drawable, got %T", render.Drawable)
	}
	if render.Color != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("Expected half transparent red, got %v", render.Color)
	}
	if space.Position.X != 5 || space.Position.Y != 15 {
		t.Errorf("Expected position 5,15, got %v", space.Position)
	}
	if space.Width != 10 || space.Height != 10 {
		t.Errorf("Expected size 10x10, got %fx%f", space.Width, space.Height)
	}
}

func TestDebugDrawer_DrawRectangleOutline(t *testing.T) {
	store := newFakeStore()
	camera := newIdentityCamera()
	drawer := NewDebugDrawer(store, camera)
	drawer.SetLineWidth(2)
	drawer.DrawRectangleOutline(geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, red, 1)

	render, space := store.last()
	rect, ok := render.Drawable.(common.Rectangle)
	if !ok {
		t.Fatalf("Expected a rectangle drawable, got %T", render.Drawable)
	}
	if rect.BorderWidth != 2 {
		t.Errorf("Expected border width 2, got %f", rect.BorderWidth)
	}
	if rect.BorderColor != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("Expected red border, got %v", rect.BorderColor)
	}
	if render.Color != color.Transparent {
		t.Errorf("Expected transparent fill, got %v", render.Color)
	}
	if space.Position.X != 1 || space.Position.Y != 2 || space.Width != 3 || space.Height != 4 {
		t.Errorf("Unexpected space component %+v", *space)
	}

	camera.SetZoom(2)
	drawer.DrawRectangleOutline(geometry.Rect{X: 50, Y: 50, Width: 3, Height: 4}, red, 1)
	_, space = store.last()
	if space.Position.X != 50 || space.Width != 6 || space.Height != 8 {
		t.Errorf("Expected zoomed rectangle at 50 sized 6x8, got %+v", *space)
	}
}

func TestDebugDrawer_DrawLineSegment(t *testing.T) {
	store := newFakeStore()
	drawer := NewDebugDrawer(store, newIdentityCamera())
	drawer.DrawLineSegment(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{X: 0, Y: 10}, red, 1)

	render, space := store.last()
	if _, ok := render.Drawable.(common.Rectangle); !ok {
		t.Errorf("Expected a rectangle drawable, got %T", render.Drawable)
	}
	if space.Width != 10 || space.Height != DefaultLineWidth {
		t.Errorf("Expected 10x%v line, got %fx%f", DefaultLineWidth, space.Width, space.Height)
	}
	if math.Abs(float64(space.Rotation)-90) > 1e-4 {
		t.Errorf("Expected rotation 90, got %f", space.Rotation)
	}
}

func TestDebugDrawer_Clear(t *testing.T) {
	store := newFakeStore()
	drawer := NewDebugDrawer(store, newIdentityCamera())
	drawer.DrawFilledCircle(geometry.Vector2D{}, 1, red, 1)
	drawer.DrawRectangleOutline(geometry.Rect{Width: 1, Height: 1}, red, 1)
	drawer.DrawLineSegment(geometry.Vector2D{}, geometry.Vector2D{X: 1}, red, 1)

	if drawer.EntityCount() != 3 {
		t.Fatalf("Expected 3 entities, got %d", drawer.EntityCount())
	}
	drawer.Clear()
	if drawer.EntityCount() != 0 || len(store.render) != 0 || store.removed != 3 {
		t.Errorf("Expected all entities removed, have %d, store %d, removed %d",
			drawer.EntityCount(), len(store.render), store.removed)
	}
}

func TestWithOpacity(t *testing.T) {
	tests := []struct {
		name    string
		opacity float64
		alpha   uint8
	}{
		{"opaque", 1, 255},
		{"half", 0.5, 128},
		{"invisible", 0, 0},
		{"clamped", 2, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withOpacity(red, tt.opacity).(color.NRGBA)
			if got.A != tt.alpha || got.R != 255 {
				t.Errorf("withOpacity(%v) = %v, expected alpha %d", tt.opacity, got, tt.alpha)
			}
		})
	}
}

func TestDebugDrawer_WorldDebugDraw(t *testing.T) {
	store := newFakeStore()
	drawer := NewDebugDrawer(store, newIdentityCamera())
	world := collision.NewSquareWorld(nil, 50, collision.WithDebugDrawer(drawer))
	if err := world.AddShape(collision.NewCircleShape(geometry.Circle{Center: geometry.Vector2D{X: 25, Y: 25}, Radius: 5})); err != nil {
		t.Fatalf("AddShape failed: %v", err)
	}

	if err := world.DebugDraw(geometry.Rect{Width: 50, Height: 50}, collision.DebugDrawOptions{HideGrid: true}); err != nil {
		t.Fatalf("DebugDraw failed: %v", err)
	}
	if drawer.EntityCount() != 1 {
		t.Fatalf("Expected one entity for the circle, got %d", drawer.EntityCount())
	}
	_, space := store.last()
	if space.Position.X != 20 || space.Position.Y != 20 || space.Width != 10 {
		t.Errorf("Unexpected circle placement %+v", *space)
	}
}
