package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// SceneSchema returns the JSON Schema describing scene files
func SceneSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(new(SceneConfig))
	schema.Title = "collide2d scene"
	schema.Description = "World grid, shapes and queries loaded by collide-demo"
	return schema
}

// WriteSchema writes the scene schema to path, replacing any existing file
func WriteSchema(path string) error {
	data, err := json.MarshalIndent(SceneSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace schema: %w", err)
	}
	return nil
}
