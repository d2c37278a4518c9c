// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/opd-ai/collide2d/pkg/validation"
)

// Environment variables read by LoadConfigFromEnv
const (
	EnvCellSize       = "COLLIDE_CELL_SIZE"
	EnvCellWidth      = "COLLIDE_CELL_WIDTH"
	EnvCellHeight     = "COLLIDE_CELL_HEIGHT"
	EnvDebugOpacity   = "COLLIDE_DEBUG_OPACITY"
	EnvGridColor      = "COLLIDE_GRID_COLOR"
	EnvHighlightColor = "COLLIDE_HIGHLIGHT_COLOR"
)

// EnvironmentConfig holds settings taken from the environment.
// Zero values mean the variable was not set.
type EnvironmentConfig struct {
	CellWidth      float64
	CellHeight     float64
	DebugOpacity   float64
	GridColor      string
	HighlightColor string
}

// ValidationError reports an invalid configuration field
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// LoadConfigFromEnv reads and validates the environment settings
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	size := getEnvAsFloatOrDefault(EnvCellSize, 0)
	config := &EnvironmentConfig{
		CellWidth:      getEnvAsFloatOrDefault(EnvCellWidth, size),
		CellHeight:     getEnvAsFloatOrDefault(EnvCellHeight, size),
		DebugOpacity:   getEnvAsFloatOrDefault(EnvDebugOpacity, 0),
		GridColor:      getEnvOrDefault(EnvGridColor, ""),
		HighlightColor: getEnvOrDefault(EnvHighlightColor, ""),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the values that were set
func (c *EnvironmentConfig) Validate() error {
	if c.CellWidth < 0 {
		return &ValidationError{Field: "CellWidth", Value: c.CellWidth, Message: "must not be negative"}
	}
	if c.CellHeight < 0 {
		return &ValidationError{Field: "CellHeight", Value: c.CellHeight, Message: "must not be negative"}
	}
	if err := validation.ValidateOpacity(c.DebugOpacity); err != nil {
		return &ValidationError{Field: "DebugOpacity", Value: c.DebugOpacity, Message: err.Error()}
	}
	if c.GridColor != "" {
		if _, err := ParseColor(c.GridColor); err != nil {
			return &ValidationError{Field: "GridColor", Value: c.GridColor, Message: err.Error()}
		}
	}
	if c.HighlightColor != "" {
		if _, err := ParseColor(c.HighlightColor); err != nil {
			return &ValidationError{Field: "HighlightColor", Value: c.HighlightColor, Message: err.Error()}
		}
	}
	return nil
}

// ApplyEnvironmentOverrides replaces scene settings with those set in the environment
func ApplyEnvironmentOverrides(scene *SceneConfig) error {
	env, err := LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	env.apply(scene)
	return nil
}

func (c *EnvironmentConfig) apply(scene *SceneConfig) {
	if c.CellWidth > 0 {
		scene.World.CellWidth = c.CellWidth
	}
	if c.CellHeight > 0 {
		scene.World.CellHeight = c.CellHeight
	}
	if c.DebugOpacity > 0 {
		scene.Debug.Opacity = c.DebugOpacity
	}
	if c.GridColor != "" {
		scene.Debug.GridColor = c.GridColor
	}
	if c.HighlightColor != "" {
		scene.Debug.HighlightColor = c.HighlightColor
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
