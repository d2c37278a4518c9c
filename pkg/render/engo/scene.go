// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/geometry"
	"github.com/opd-ai/collide2d/pkg/logging"
)

// SceneOptions configures a DebugScene
type SceneOptions struct {
	// Region is the part of the world shown at start
	Region geometry.Rect
	// Draw controls colors and opacity of the debug overlay
	Draw collision.DebugDrawOptions
	// Width and Height are the window size in pixels
	Width, Height float32
	// FontPath optionally points to a TTF file for the counters overlay
	FontPath string
	Logger   *logging.Logger
}

// DebugScene is an engo scene drawing a collision world every frame
type DebugScene struct {
	world *collision.World
	opts  SceneOptions

	logger *logging.Logger
	drawer *DebugDrawer
	camera *CameraSystem
	input  *InputSystem
	hud    *HUDSystem
	font   *common.Font
}

// NewDebugScene creates a scene for world
func NewDebugScene(world *collision.World, opts SceneOptions) *DebugScene {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 768
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return &DebugScene{
		world:  world,
		opts:   opts,
		logger: opts.Logger,
	}
}

// Type returns the scene type (required by Engo)
func (scene *DebugScene) Type() string {
	return "CollisionDebugScene"
}

// Preload loads the optional overlay font (required by Engo)
func (scene *DebugScene) Preload() {
	if scene.opts.FontPath == "" {
		return
	}
	ctx := context.Background()
	if err := engo.Files.Load(scene.opts.FontPath); err != nil {
		scene.logger.Error(ctx, "failed to load font", err, "path", scene.opts.FontPath)
		return
	}
	font := &common.Font{URL: scene.opts.FontPath, FG: color.White, Size: 12}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Error(ctx, "failed to prepare font", err, "path", scene.opts.FontPath)
		return
	}
	scene.font = font
}

// Setup is called when the scene starts (required by Engo)
func (scene *DebugScene) Setup(u engo.Updater) {
	w, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(context.Background(), "debug scene needs an ecs world")
		return
	}
	common.SetBackground(color.White)

	renderSystem := &common.RenderSystem{}
	w.AddSystem(renderSystem)
	scene.attach(renderSystem)
	SetupInputBindings()

	w.AddSystem(scene.camera)
	w.AddSystem(scene.input)
	w.AddSystem(&redrawSystem{scene: scene})
	w.AddSystem(scene.hud)

	scene.logger.Info(context.Background(), "debug scene started",
		"shapes", scene.world.ShapeCount(),
		"width", scene.opts.Width,
		"height", scene.opts.Height,
	)
}

// attach builds the scene systems around store
func (scene *DebugScene) attach(store EntityStore) {
	scene.camera = NewCameraSystem(scene.opts.Width, scene.opts.Height)
	scene.camera.FitRegion(scene.opts.Region)
	scene.input = NewInputSystem(scene.camera, scene.opts.Region)
	scene.drawer = NewDebugDrawer(store, scene.camera)
	scene.hud = NewHUDSystem(scene.world, store)
	scene.hud.SetColor(color.Black)
	scene.hud.SetFont(scene.font)
	scene.world.SetDebugDrawer(scene.drawer)
}

// redraw replaces last frame's entities with the current world state
func (scene *DebugScene) redraw() {
	scene.drawer.Clear()
	opts := scene.opts.Draw
	opts.HideGrid = opts.HideGrid || scene.input.GridHidden()
	if err := scene.world.DebugDraw(scene.camera.VisibleRegion(), opts); err != nil {
		scene.logger.Error(context.Background(), "debug draw failed", err)
	}
}

// Exit detaches the drawer from the world (required by Engo)
func (scene *DebugScene) Exit() {
	if scene.drawer != nil {
		scene.drawer.Clear()
	}
	scene.world.SetDebugDrawer(nil)
}

// redrawSystem calls DebugScene.redraw once per frame
type redrawSystem struct {
	scene *DebugScene
}

func (s *redrawSystem) Update(dt float32)            { s.scene.redraw() }
func (s *redrawSystem) Remove(basic ecs.BasicEntity) {}
