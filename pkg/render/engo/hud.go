// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/collide2d/pkg/collision"
)

const hudLineHeight = 16

// HUDSystem shows the world counters in the top-left corner of the window
type HUDSystem struct {
	world *collision.World
	store EntityStore

	hudEntities []*debugEntity

	// Font for text rendering; nothing is drawn without one
	font     *common.Font
	hudColor color.Color
	origin   engo.Point
}

// NewHUDSystem creates a HUD for world, adding text entities to store
func NewHUDSystem(world *collision.World, store EntityStore) *HUDSystem {
	return &HUDSystem{
		world:    world,
		store:    store,
		hudColor: color.RGBA{255, 255, 255, 255},
		origin:   engo.Point{X: 8, Y: 8},
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update redraws the counters
func (hud *HUDSystem) Update(dt float32) {
	hud.clearHUDEntities()
	if hud.font == nil {
		return
	}
	for i, line := range hud.Lines() {
		hud.renderText(line, hud.origin.X, hud.origin.Y+float32(i*hudLineHeight))
	}
}

// Lines formats the current world counters
func (hud *HUDSystem) Lines() []string {
	stats := hud.world.Stats()
	return []string{
		fmt.Sprintf("shapes: %d  cells: %d", hud.world.ShapeCount(), hud.world.CellCount()),
		fmt.Sprintf("added: %d  updated: %d", stats.AddedShapes, stats.UpdatedShapes),
		fmt.Sprintf("cells created: %d  deleted: %d", stats.CreatedGridCells, stats.DeletedGridCells),
		fmt.Sprintf("broad phases: %d  cells touched: %d", stats.BroadPhaseCalls, stats.CellsTouched),
		fmt.Sprintf("candidates: %d / %d", stats.BroadPhaseChecksPostPredicate, stats.BroadPhaseChecksPrePredicate),
		fmt.Sprintf("checks: %d  matches: %d", stats.CollisionChecks, stats.CollisionMatches),
	}
}

func (hud *HUDSystem) clearHUDEntities() {
	for _, e := range hud.hudEntities {
		hud.store.Remove(e.BasicEntity)
	}
	hud.hudEntities = hud.hudEntities[:0]
}

func (hud *HUDSystem) renderText(text string, x, y float32) {
	e := &debugEntity{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: common.Text{Font: hud.font, Text: text},
			Color:    hud.hudColor,
		},
		SpaceComponent: common.SpaceComponent{
			Position: engo.Point{X: x, Y: y},
			Width:    float32(len(text) * 8),
			Height:   hudLineHeight,
		},
	}
	e.RenderComponent.SetZIndex(100)
	hud.hudEntities = append(hud.hudEntities, e)
	hud.store.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
}

// SetFont sets the font used for the counters
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
}

// SetColor sets the text color
func (hud *HUDSystem) SetColor(c color.Color) {
	hud.hudColor = c
}
