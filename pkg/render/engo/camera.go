// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// CameraSystem maps world positions of the collision world to window pixels
// and can follow a target, such as a shape being inspected
type CameraSystem struct {
	// Target to follow
	target    geometry.Vector2D
	targetSet bool

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32

	// Smooth following
	followSpeed float32
	smoothing   bool

	currentPos geometry.Vector2D
	viewport   geometry.Vector2D
}

// NewCameraSystem creates a camera for a viewport of the given pixel size
func NewCameraSystem(width, height float32) *CameraSystem {
	return &CameraSystem{
		zoom:        1.0,
		minZoom:     0.05,
		maxZoom:     8.0,
		followSpeed: 2.0,
		smoothing:   true,
		viewport:    geometry.Vector2D{X: float64(width), Y: float64(height)},
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update moves the camera toward its target
func (cs *CameraSystem) Update(dt float32) {
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// updateCameraPosition smoothly moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	step := math.Min(1, float64(cs.followSpeed)*float64(dt))
	cs.currentPos = cs.currentPos.Lerp(cs.target, step)
}

// SetTarget sets the position for the camera to follow
func (cs *CameraSystem) SetTarget(target geometry.Vector2D) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true
	if !cs.smoothing || first {
		cs.currentPos = target
	}
}

// ClearTarget stops following
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// Pan moves the camera by a world-space offset
func (cs *CameraSystem) Pan(delta geometry.Vector2D) {
	cs.currentPos = cs.currentPos.Add(delta)
	cs.target = cs.target.Add(delta)
}

// SetZoom sets the zoom level, clamped to the zoom limits
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// Zoom returns the current zoom level
func (cs *CameraSystem) Zoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}

// ZoomLimits returns the current zoom limits
func (cs *CameraSystem) ZoomLimits() (float32, float32) {
	return cs.minZoom, cs.maxZoom
}

func (cs *CameraSystem) SetFollowSpeed(speed float32) { cs.followSpeed = speed }
func (cs *CameraSystem) FollowSpeed() float32        { return cs.followSpeed }
func (cs *CameraSystem) EnableSmoothing(enabled bool) { cs.smoothing = enabled }
func (cs *CameraSystem) IsSmoothing() bool            { return cs.smoothing }

// Position returns the world position at the center of the viewport
func (cs *CameraSystem) Position() geometry.Vector2D {
	return cs.currentPos
}

// SetViewport changes the viewport size in pixels
func (cs *CameraSystem) SetViewport(width, height float32) {
	cs.viewport = geometry.Vector2D{X: float64(width), Y: float64(height)}
}

// FitRegion centers the camera on region and zooms so all of it is visible
func (cs *CameraSystem) FitRegion(region geometry.Rect) {
	cs.target = region.Center()
	cs.currentPos = cs.target
	if region.Width <= 0 || region.Height <= 0 {
		return
	}
	zoom := math.Min(cs.viewport.X/region.Width, cs.viewport.Y/region.Height)
	cs.SetZoom(float32(zoom))
}

// WorldToScreen converts world coordinates to viewport pixels
func (cs *CameraSystem) WorldToScreen(worldPos geometry.Vector2D) geometry.Vector2D {
	relative := worldPos.Sub(cs.currentPos).Scale(float64(cs.zoom))
	return relative.Add(cs.viewport.Scale(0.5))
}

// ScreenToWorld converts viewport pixels to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos geometry.Vector2D) geometry.Vector2D {
	relative := screenPos.Sub(cs.viewport.Scale(0.5)).Scale(1 / float64(cs.zoom))
	return relative.Add(cs.currentPos)
}

// VisibleRegion returns the world rectangle covered by the viewport
func (cs *CameraSystem) VisibleRegion() geometry.Rect {
	topLeft := cs.ScreenToWorld(geometry.Vector2D{})
	size := cs.viewport.Scale(1 / float64(cs.zoom))
	return geometry.Rect{X: topLeft.X, Y: topLeft.Y, Width: size.X, Height: size.Y}
}
