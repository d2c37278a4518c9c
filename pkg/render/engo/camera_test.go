// pkg/render/engo/camera_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

func TestNewCameraSystem(t *testing.T) {
	camera := NewCameraSystem(800, 600)

	if camera.zoom != 1.0 {
		t.Errorf("Expected default zoom 1.0, got %f", camera.zoom)
	}
	if min, max := camera.ZoomLimits(); min != 0.05 || max != 8.0 {
		t.Errorf("Expected zoom limits 0.05..8, got %f..%f", min, max)
	}
	if camera.FollowSpeed() != 2.0 {
		t.Errorf("Expected default followSpeed 2.0, got %f", camera.FollowSpeed())
	}
	if !camera.IsSmoothing() {
		t.Error("Expected smoothing to be enabled by default")
	}
	if camera.targetSet {
		t.Error("Expected targetSet to be false by default")
	}
	if camera.viewport != (geometry.Vector2D{X: 800, Y: 600}) {
		t.Errorf("Expected viewport 800x600, got %v", camera.viewport)
	}
}

func TestCameraSystem_SetTarget_ClearTarget(t *testing.T) {
	camera := NewCameraSystem(800, 600)
	first := geometry.Vector2D{X: 100, Y: 200}

	t.Run("SetTarget_FirstTime", func(t *testing.T) {
		camera.SetTarget(first)
		if !camera.targetSet {
			t.Error("Expected targetSet to be true after setting target")
		}
		if camera.Position() != first {
			t.Errorf("Expected position to jump to %v, got %v", first, camera.Position())
		}
	})

	t.Run("SetTarget_SmoothFollow", func(t *testing.T) {
		camera.SetTarget(geometry.Vector2D{X: 200, Y: 200})
		if camera.Position() != first {
			t.Errorf("Expected position to stay at %v until Update, got %v", first, camera.Position())
		}
		camera.Update(0.25)
		want := geometry.Vector2D{X: 150, Y: 200}
		if camera.Position() != want {
			t.Errorf("Expected position %v after Update, got %v", want, camera.Position())
		}
	})

	t.Run("ClearTarget", func(t *testing.T) {
		camera.ClearTarget()
		before := camera.Position()
		camera.Update(1)
		if camera.Position() != before {
			t.Error("Expected camera to stop following after ClearTarget")
		}
	})

	t.Run("NoSmoothing", func(t *testing.T) {
		camera.EnableSmoothing(false)
		target := geometry.Vector2D{X: -5, Y: 7}
		camera.SetTarget(target)
		if camera.Position() != target {
			t.Errorf("Expected immediate move to %v, got %v", target, camera.Position())
		}
	})
}

func TestCameraSystem_ZoomOperations(t *testing.T) {
	camera := NewCameraSystem(800, 600)

	testCases := []struct {
		name     string
		zoom     float32
		expected float32
	}{
		{"ValidZoom", 1.5, 1.5},
		{"BelowMinZoom", 0.01, 0.05},
		{"AboveMaxZoom", 10, 8},
		{"ExactMaxZoom", 8, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			camera.SetZoom(tc.zoom)
			if camera.Zoom() != tc.expected {
				t.Errorf("Expected zoom %f, got %f", tc.expected, camera.Zoom())
			}
		})
	}

	camera.SetZoom(4)
	camera.SetZoomLimits(0.5, 2)
	if camera.Zoom() != 2 {
		t.Errorf("Expected zoom to be clamped to the new limit 2, got %f", camera.Zoom())
	}
}

func TestCameraSystem_CoordinateConversion(t *testing.T) {
	camera := NewCameraSystem(800, 600)
	camera.SetTarget(geometry.Vector2D{X: 100, Y: 100})
	camera.SetZoom(2)

	world := geometry.Vector2D{X: 110, Y: 90}
	screen := camera.WorldToScreen(world)
	if screen != (geometry.Vector2D{X: 420, Y: 280}) {
		t.Errorf("WorldToScreen(%v) = %v, expected 420,280", world, screen)
	}
	if back := camera.ScreenToWorld(screen); back != world {
		t.Errorf("ScreenToWorld(%v) = %v, expected %v", screen, back, world)
	}
}

func TestCameraSystem_FitRegion(t *testing.T) {
	camera := NewCameraSystem(800, 600)
	camera.FitRegion(geometry.Rect{X: 0, Y: 0, Width: 400, Height: 100})

	if camera.Zoom() != 2 {
		t.Errorf("Expected zoom 2, got %f", camera.Zoom())
	}
	if camera.Position() != (geometry.Vector2D{X: 200, Y: 50}) {
		t.Errorf("Expected position 200,50, got %v", camera.Position())
	}

	visible := camera.VisibleRegion()
	want := geometry.Rect{X: 0, Y: -100, Width: 400, Height: 300}
	if visible != want {
		t.Errorf("VisibleRegion() = %v, expected %v", visible, want)
	}
}

func TestCameraSystem_Pan(t *testing.T) {
	camera := NewCameraSystem(800, 600)
	camera.SetTarget(geometry.Vector2D{X: 10, Y: 10})
	camera.Pan(geometry.Vector2D{X: 5, Y: -5})

	if camera.Position() != (geometry.Vector2D{X: 15, Y: 5}) {
		t.Errorf("Expected position 15,5 after pan, got %v", camera.Position())
	}
	camera.Update(1)
	if camera.Position() != (geometry.Vector2D{X: 15, Y: 5}) {
		t.Errorf("Expected pan to move the target too, got %v", camera.Position())
	}
}
