// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// Button names registered by SetupInputBindings
const (
	ButtonPanUp      = "panUp"
	ButtonPanDown    = "panDown"
	ButtonPanLeft    = "panLeft"
	ButtonPanRight   = "panRight"
	ButtonZoomIn     = "zoomIn"
	ButtonZoomOut    = "zoomOut"
	ButtonResetView  = "resetView"
	ButtonToggleGrid = "toggleGrid"
)

// inputState is the set of buttons held or pressed during one frame
type inputState struct {
	up, down, left, right bool
	zoomIn, zoomOut       bool
	reset                 bool
	toggleGrid            bool
}

// InputSystem pans and zooms the debug camera and toggles the grid overlay
type InputSystem struct {
	camera   *CameraSystem
	home     geometry.Rect
	panSpeed float64
	hideGrid bool
}

// NewInputSystem creates an input system controlling camera. home is the
// region the view returns to on reset.
func NewInputSystem(camera *CameraSystem, home geometry.Rect) *InputSystem {
	return &InputSystem{
		camera:   camera,
		home:     home,
		panSpeed: 400,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the engo buttons and applies them
func (is *InputSystem) Update(dt float32) {
	is.apply(inputState{
		up:         engo.Input.Button(ButtonPanUp).Down(),
		down:       engo.Input.Button(ButtonPanDown).Down(),
		left:       engo.Input.Button(ButtonPanLeft).Down(),
		right:      engo.Input.Button(ButtonPanRight).Down(),
		zoomIn:     engo.Input.Button(ButtonZoomIn).Down(),
		zoomOut:    engo.Input.Button(ButtonZoomOut).Down(),
		reset:      engo.Input.Button(ButtonResetView).JustPressed(),
		toggleGrid: engo.Input.Button(ButtonToggleGrid).JustPressed(),
	}, dt)
}

func (is *InputSystem) apply(in inputState, dt float32) {
	if in.reset {
		is.camera.ClearTarget()
		is.camera.FitRegion(is.home)
		return
	}
	if in.toggleGrid {
		is.hideGrid = !is.hideGrid
	}

	// panSpeed is in pixels per second
	step := is.panSpeed * float64(dt) / float64(is.camera.Zoom())
	var delta geometry.Vector2D
	if in.up {
		delta.Y -= step
	}
	if in.down {
		delta.Y += step
	}
	if in.left {
		delta.X -= step
	}
	if in.right {
		delta.X += step
	}
	if delta != (geometry.Vector2D{}) {
		is.camera.Pan(delta)
	}

	if in.zoomIn {
		is.camera.SetZoom(is.camera.Zoom() * 1.02)
	}
	if in.zoomOut {
		is.camera.SetZoom(is.camera.Zoom() * 0.98)
	}
}

// GridHidden reports whether the grid overlay was toggled off
func (is *InputSystem) GridHidden() bool {
	return is.hideGrid
}

// SetupInputBindings registers the debug view key bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonPanUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonPanDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonPanLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonPanRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyE)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyQ)
	engo.Input.RegisterButton(ButtonResetView, engo.KeyR)
	engo.Input.RegisterButton(ButtonToggleGrid, engo.KeyG)
}
