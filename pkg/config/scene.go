package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/geometry"
	"github.com/opd-ai/collide2d/pkg/validation"
)

// ParseColor parses a "#rrggbb" hex color
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse color %q: %w", hex, err)
	}
	return c, nil
}

// Validate checks the whole scene, returning every problem found
func (s *SceneConfig) Validate() error {
	var errs []error
	if err := validation.ValidateCellSize(s.World.CellWidth, s.World.CellHeight); err != nil {
		errs = append(errs, &ValidationError{Field: "world", Value: s.World.CellSize(), Message: err.Error()})
	}
	if err := validation.ValidateOpacity(s.Debug.Opacity); err != nil {
		errs = append(errs, &ValidationError{Field: "debug.opacity", Value: s.Debug.Opacity, Message: err.Error()})
	}
	colors := [][2]string{
		{"debug.gridColor", s.Debug.GridColor},
		{"debug.highlightColor", s.Debug.HighlightColor},
	}
	for _, fc := range colors {
		if fc[1] == "" {
			continue
		}
		if _, err := ParseColor(fc[1]); err != nil {
			errs = append(errs, &ValidationError{Field: fc[0], Value: fc[1], Message: err.Error()})
		}
	}
	if err := validation.ValidateShapeCount(len(s.Shapes)); err != nil {
		errs = append(errs, &ValidationError{Field: "shapes", Value: len(s.Shapes), Message: err.Error()})
	}

	names := make(map[string]bool, len(s.Shapes))
	for i := range s.Shapes {
		sc := &s.Shapes[i]
		field := fmt.Sprintf("shapes[%d]", i)
		name, err := validation.ValidateShapeName(sc.Name)
		if err != nil {
			errs = append(errs, &ValidationError{Field: field + ".name", Value: sc.Name, Message: err.Error()})
		} else if names[name] {
			errs = append(errs, &ValidationError{Field: field + ".name", Value: sc.Name, Message: "duplicate shape name"})
		}
		names[name] = true
		if err := sc.validate(); err != nil {
			errs = append(errs, &ValidationError{Field: field, Value: sc.Kind, Message: err.Error()})
		}
	}

	for i, q := range s.Queries {
		field := fmt.Sprintf("queries[%d]", i)
		switch q.Type {
		case QueryPick:
		case QueryTest:
			if !names[q.Source] {
				errs = append(errs, &ValidationError{Field: field + ".source", Value: q.Source, Message: "unknown shape"})
			}
		default:
			errs = append(errs, &ValidationError{Field: field + ".type", Value: q.Type, Message: "must be pick or test"})
		}
	}
	return errors.Join(errs...)
}

func (sc *ShapeConfig) validate() error {
	kind, ok := collision.ParseKind(sc.Kind)
	if !ok {
		return fmt.Errorf("unknown shape kind")
	}
	if sc.Color != "" {
		if _, err := ParseColor(sc.Color); err != nil {
			return err
		}
	}
	switch kind {
	case collision.KindCircle:
		if sc.Radius < 0 {
			return fmt.Errorf("radius must not be negative")
		}
	case collision.KindRectangle:
		if sc.Width < 0 || sc.Height < 0 {
			return fmt.Errorf("width and height must not be negative")
		}
	case collision.KindLines:
		if len(sc.Points) < 2 {
			return fmt.Errorf("lines need at least two points")
		}
	case collision.KindTilemap:
		if err := validation.ValidateTileGrid(sc.Columns, sc.Rows, sc.TileWidth, sc.TileHeight); err != nil {
			return err
		}
		if sc.Border < 0 {
			return fmt.Errorf("border must not be negative")
		}
		for _, tc := range sc.Blocked {
			if tc.X < 0 || tc.Y < 0 || tc.X >= sc.Columns || tc.Y >= sc.Rows {
				return fmt.Errorf("%w: %d,%d", collision.ErrInvalidTileIndex, tc.X, tc.Y)
			}
		}
	}
	return nil
}

// BuildShape creates the collision shape described by sc
func BuildShape(sc ShapeConfig) (collision.Shape, error) {
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("shape %q: %w", sc.Name, err)
	}
	kind, _ := collision.ParseKind(sc.Kind)
	position := geometry.Vector2D{X: sc.X, Y: sc.Y}

	var shape collision.Shape
	switch kind {
	case collision.KindPoint:
		shape = collision.NewPointShape(position)
	case collision.KindCircle:
		shape = collision.NewCircleShape(geometry.Circle{Center: position, Radius: sc.Radius})
	case collision.KindRectangle:
		shape = collision.NewRectangleShape(geometry.Rect{X: sc.X, Y: sc.Y, Width: sc.Width, Height: sc.Height})
	case collision.KindLines:
		points := make([]geometry.Vector2D, len(sc.Points))
		for i, p := range sc.Points {
			points[i] = p.Vector()
		}
		lines, err := collision.NewPolylineShape(points...)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sc.Name, err)
		}
		shape = lines
	case collision.KindTilemap:
		tm, err := collision.NewTilemapShape(position,
			collision.TileIndex{X: sc.Columns, Y: sc.Rows},
			geometry.Vector2D{X: sc.TileWidth, Y: sc.TileHeight},
			sc.Border)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sc.Name, err)
		}
		for _, tc := range sc.Blocked {
			if err := tm.SetTile(collision.TileIndex{X: tc.X, Y: tc.Y}, true, tc.Flags); err != nil {
				return nil, fmt.Errorf("shape %q: %w", sc.Name, err)
			}
		}
		shape = tm
	}

	if sc.Flags != 0 {
		shape.SetFlags(sc.Flags)
	}
	if sc.Color != "" {
		c, _ := ParseColor(sc.Color)
		shape.SetDebugColor(c)
	}
	return shape, nil
}

// BuildShapes creates every shape of the scene, in order
func BuildShapes(scene *SceneConfig) ([]collision.Shape, error) {
	shapes := make([]collision.Shape, 0, len(scene.Shapes))
	for _, sc := range scene.Shapes {
		shape, err := BuildShape(sc)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// DebugOptions converts the debug settings into draw options
func (d DebugConfig) DebugOptions() (collision.DebugDrawOptions, error) {
	opts := collision.DebugDrawOptions{Opacity: d.Opacity}
	if d.GridColor != "" {
		c, err := ParseColor(d.GridColor)
		if err != nil {
			return opts, err
		}
		opts.GridColor = c
	}
	if d.HighlightColor != "" {
		c, err := ParseColor(d.HighlightColor)
		if err != nil {
			return opts, err
		}
		opts.HighlightColor = c
	}
	return opts, nil
}
