package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/geometry"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if config.World.CellWidth != 64 || config.World.CellHeight != 64 {
		t.Errorf("Expected 64x64 cells, got %vx%v", config.World.CellWidth, config.World.CellHeight)
	}
	if len(config.Shapes) != 5 {
		t.Errorf("Expected 5 shapes, got %d", len(config.Shapes))
	}
	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, expected nil", err)
	}
}

func TestLoadConfig_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	original := DefaultConfig()
	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(loaded.Shapes) != len(original.Shapes) {
		t.Errorf("Expected %d shapes, got %d", len(original.Shapes), len(loaded.Shapes))
	}
	level := loaded.Shapes[2]
	if level.Kind != "tilemap" || len(level.Blocked) != 3 {
		t.Errorf("Expected tilemap with 3 blocked tiles, got %s with %d", level.Kind, len(level.Blocked))
	}
	if loaded.Queries[0].Source != "ball" {
		t.Errorf("Expected first query source 'ball', got %q", loaded.Queries[0].Source)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"shapes": [`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{"missing file", filepath.Join(dir, "missing.json"), "failed to open"},
		{"invalid json", broken, "failed to validate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("LoadConfig() error = %v, expected containing %q", err, tt.errContains)
			}
		})
	}
}

func TestSceneValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*SceneConfig)
		errorField string
	}{
		{"valid", func(*SceneConfig) {}, ""},
		{"zero cell", func(s *SceneConfig) { s.World.CellWidth = 0 }, "world"},
		{"opacity too high", func(s *SceneConfig) { s.Debug.Opacity = 2 }, "debug.opacity"},
		{"bad grid color", func(s *SceneConfig) { s.Debug.GridColor = "black" }, "debug.gridColor"},
		{"duplicate name", func(s *SceneConfig) { s.Shapes[1].Name = "ball" }, "shapes[1].name"},
		{"bad name", func(s *SceneConfig) { s.Shapes[0].Name = "big ball" }, "shapes[0].name"},
		{"unknown kind", func(s *SceneConfig) { s.Shapes[0].Kind = "polygon" }, "shapes[0]"},
		{"short lines", func(s *SceneConfig) { s.Shapes[3].Points = s.Shapes[3].Points[:1] }, "shapes[3]"},
		{"tile out of grid", func(s *SceneConfig) { s.Shapes[2].Blocked[0].X = 10 }, "shapes[2]"},
		{"unknown query source", func(s *SceneConfig) { s.Queries[0].Source = "nobody" }, "queries[0].source"},
		{"unknown query type", func(s *SceneConfig) { s.Queries[1].Type = "sweep" }, "queries[1].type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := DefaultConfig()
			tt.modify(scene)
			err := scene.Validate()
			if tt.errorField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T: %v", err, err)
			}
			if validationErr.Field != tt.errorField {
				t.Errorf("Expected error for field %q, got %q", tt.errorField, validationErr.Field)
			}
		})
	}
}

func TestSceneValidate_TileIndexError(t *testing.T) {
	scene := DefaultConfig()
	scene.Shapes[2].Blocked[0].Y = -1
	if _, err := BuildShape(scene.Shapes[2]); !errors.Is(err, collision.ErrInvalidTileIndex) {
		t.Errorf("BuildShape() error = %v, expected ErrInvalidTileIndex", err)
	}
}

func TestBuildShapes(t *testing.T) {
	shapes, err := BuildShapes(DefaultConfig())
	if err != nil {
		t.Fatalf("BuildShapes failed: %v", err)
	}

	expected := []collision.Kind{
		collision.KindCircle,
		collision.KindRectangle,
		collision.KindTilemap,
		collision.KindLines,
		collision.KindPoint,
	}
	if len(shapes) != len(expected) {
		t.Fatalf("BuildShapes() returned %d shapes, expected %d", len(shapes), len(expected))
	}
	for i, kind := range expected {
		if shapes[i].Kind() != kind {
			t.Errorf("shape %d kind = %v, expected %v", i, shapes[i].Kind(), kind)
		}
	}

	if shapes[0].Flags() != 0b10 {
		t.Errorf("ball flags = %b, expected 10", shapes[0].Flags())
	}
	if shapes[4].Flags() != collision.AllFlags {
		t.Errorf("marker flags = %x, expected AllFlags", shapes[4].Flags())
	}

	tm := shapes[2].(*collision.TilemapShape)
	if tm.BlockedCount() != 3 {
		t.Errorf("BlockedCount() = %d, expected 3", tm.BlockedCount())
	}
	tile, ok, err := tm.Tile(collision.TileIndex{X: 0, Y: 9})
	if err != nil || !ok || tile.Flags != 0b01 {
		t.Errorf("Tile(0,9) = %+v, %v, %v", tile, ok, err)
	}

	lines := shapes[3].(*collision.LinesShape)
	if got := len(lines.Lines()); got != 2 {
		t.Errorf("ramp has %d segments, expected 2", got)
	}
	ramp, _ := ParseColor("#2e8b57")
	if lines.DebugColor() != ramp {
		t.Errorf("ramp color = %v, expected %v", lines.DebugColor(), ramp)
	}
}

func TestBuildShapesIntoWorld(t *testing.T) {
	scene := DefaultConfig()
	shapes, err := BuildShapes(scene)
	if err != nil {
		t.Fatalf("BuildShapes failed: %v", err)
	}
	world := collision.NewWorld(nil, scene.World.CellSize())
	for _, s := range shapes {
		if err := world.AddShape(s); err != nil {
			t.Fatalf("AddShape failed: %v", err)
		}
	}

	q := scene.Queries[1]
	found, err := world.Pick(geometry.Vector2D{X: q.X, Y: q.Y}, q.Radius, q.Sort, q.Mask, nil)
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if len(found) != 1 || found[0] != shapes[2] {
		t.Errorf("tile pick found %v, expected the level tilemap", found)
	}

	q = scene.Queries[2]
	found, err = world.Pick(geometry.Vector2D{X: q.X, Y: q.Y}, q.Radius, q.Sort, q.Mask, nil)
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("empty pick found %d shapes", len(found))
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#ff0000", false},
		{"#00FF7f", false},
		{"ff0000", true},
		{"#ff00", true},
		{"red", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestDebugOptions(t *testing.T) {
	opts, err := DefaultConfig().Debug.DebugOptions()
	if err != nil {
		t.Fatalf("DebugOptions failed: %v", err)
	}
	if opts.Opacity != 0.5 {
		t.Errorf("Opacity = %v, expected 0.5", opts.Opacity)
	}
	r, g, b, _ := opts.HighlightColor.RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Errorf("HighlightColor = %v, expected red", opts.HighlightColor)
	}

	_, err = DebugConfig{GridColor: "nope"}.DebugOptions()
	if err == nil {
		t.Error("DebugOptions() with a bad color should fail")
	}
}
