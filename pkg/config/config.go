// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/collide2d/pkg/geometry"
	"github.com/opd-ai/collide2d/pkg/validation"
)

// SceneConfig describes a collision world, its shapes and the queries the
// demo runs against it
type SceneConfig struct {
	World   WorldConfig   `json:"world"`
	Debug   DebugConfig   `json:"debug"`
	Shapes  []ShapeConfig `json:"shapes"`
	Queries []QueryConfig `json:"queries"`
}

// WorldConfig contains grid settings
type WorldConfig struct {
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
}

// CellSize returns the cell dimensions as a vector
func (w WorldConfig) CellSize() geometry.Vector2D {
	return geometry.Vector2D{X: w.CellWidth, Y: w.CellHeight}
}

// DebugConfig contains debug draw settings
type DebugConfig struct {
	Opacity        float64    `json:"opacity"`
	GridColor      string     `json:"gridColor"`
	HighlightColor string     `json:"highlightColor"`
	Region         RectConfig `json:"region"`
}

// RectConfig is an axis-aligned rectangle
type RectConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect converts to a geometry rectangle
func (r RectConfig) Rect() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// PointConfig is a 2D position
type PointConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector converts to a geometry vector
func (p PointConfig) Vector() geometry.Vector2D {
	return geometry.Vector2D{X: p.X, Y: p.Y}
}

// TileConfig marks one tilemap tile as blocking
type TileConfig struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Flags uint32 `json:"flags,omitempty"`
}

// ShapeConfig describes one shape. Which fields apply depends on Kind:
// point uses X/Y, circle adds Radius, rect adds Width/Height, lines uses
// Points as a poly-line and tilemap uses X/Y as offset with the tile fields.
type ShapeConfig struct {
	Name  string  `json:"name" jsonschema:"pattern=^[a-zA-Z0-9_.-]+$,description=Identifier used by queries"`
	Kind  string  `json:"kind" jsonschema:"enum=point,enum=circle,enum=rect,enum=lines,enum=tilemap"`
	Flags uint32  `json:"flags,omitempty"`
	Color string  `json:"color,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	Radius float64 `json:"radius,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Points []PointConfig `json:"points,omitempty"`

	Columns    int          `json:"columns,omitempty"`
	Rows       int          `json:"rows,omitempty"`
	TileWidth  float64      `json:"tileWidth,omitempty"`
	TileHeight float64      `json:"tileHeight,omitempty"`
	Border     float64      `json:"border,omitempty"`
	Blocked    []TileConfig `json:"blocked,omitempty"`
}

// Query types
const (
	QueryPick = "pick"
	QueryTest = "test"
)

// QueryConfig describes a query to run. A pick probes X/Y with Radius;
// a test uses the named shape as source.
type QueryConfig struct {
	Name   string  `json:"name"`
	Type   string  `json:"type" jsonschema:"enum=pick,enum=test"`
	Source string  `json:"source,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Mask   uint32  `json:"mask,omitempty"`
	Sort   bool    `json:"sort,omitempty"`
	All    bool    `json:"all,omitempty"`
}

// LoadConfig loads a scene from a file
func LoadConfig(path string) (*SceneConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, validation.MaxSceneFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	if err := validation.ValidateSceneData(data); err != nil {
		return nil, fmt.Errorf("failed to validate scene file: %w", err)
	}

	var config SceneConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a scene to a file
func SaveConfig(config *SceneConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}

	return nil
}

// DefaultConfig returns a small demo scene
func DefaultConfig() *SceneConfig {
	return &SceneConfig{
		World: WorldConfig{CellWidth: 64, CellHeight: 64},
		Debug: DebugConfig{
			Opacity:        0.5,
			GridColor:      "#000000",
			HighlightColor: "#ff0000",
			Region:         RectConfig{Width: 320, Height: 192},
		},
		Shapes: []ShapeConfig{
			{Name: "ball", Kind: "circle", X: 10, Y: 10, Radius: 5, Flags: 0b10},
			{Name: "crate", Kind: "rect", Width: 20, Height: 20, Flags: 0b01},
			{
				Name: "level", Kind: "tilemap", X: 160, Y: 0,
				Columns: 10, Rows: 10, TileWidth: 16, TileHeight: 16,
				Blocked: []TileConfig{{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 0, Y: 9, Flags: 0b01}},
			},
			{
				Name: "ramp", Kind: "lines", Color: "#2e8b57",
				Points: []PointConfig{{X: 40, Y: 100}, {X: 100, Y: 60}, {X: 140, Y: 60}},
			},
			{Name: "marker", Kind: "point", X: 100, Y: 60},
		},
		Queries: []QueryConfig{
			{Name: "ball-hits", Type: QueryTest, Source: "ball", Sort: true, All: true},
			{Name: "tile-pick", Type: QueryPick, X: 3*16 + 8 + 160, Y: 3*16 + 8},
			{Name: "empty-pick", Type: QueryPick, X: 168, Y: 8},
			{Name: "crates-near-origin", Type: QueryPick, Radius: 30, Mask: 0b01, Sort: true, All: true},
		},
	}
}
