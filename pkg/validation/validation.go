// Package validation checks scene input before it reaches the collision core.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Size and content limits for scene files
const (
	MaxSceneFileSize = 4 * 1024 * 1024
	MaxShapeNameLen  = 64
	MaxShapes        = 100000
	MaxTilemapTiles  = 1 << 22
)

// Shape names are used as identifiers in query definitions and CLI flags
var validShapeNameChars = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)

// ValidateSceneData checks a raw scene file against size and format constraints
func ValidateSceneData(data []byte) error {
	if len(data) > MaxSceneFileSize {
		return fmt.Errorf("scene file too large: %d bytes (max %d)", len(data), MaxSceneFileSize)
	}
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON format")
	}
	return nil
}

// ValidateShapeName validates and trims a shape name
func ValidateShapeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("shape name cannot be empty")
	}
	if len(name) > MaxShapeNameLen {
		return "", fmt.Errorf("shape name too long: %d characters (max %d)", len(name), MaxShapeNameLen)
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("shape name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("shape name cannot be only whitespace")
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("shape name contains control characters")
		}
	}
	if !validShapeNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("shape name contains invalid characters (only alphanumeric, hyphens, underscores and dots allowed)")
	}
	return trimmed, nil
}

// ValidateCellSize checks grid cell dimensions
func ValidateCellSize(width, height float64) error {
	if !finitePositive(width) || !finitePositive(height) {
		return fmt.Errorf("invalid cell size: %vx%v (must be positive)", width, height)
	}
	return nil
}

// ValidateOpacity checks an opacity factor
func ValidateOpacity(opacity float64) error {
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return fmt.Errorf("invalid opacity: %v (must be between 0 and 1)", opacity)
	}
	return nil
}

// ValidateTileGrid checks tilemap dimensions
func ValidateTileGrid(columns, rows int, tileWidth, tileHeight float64) error {
	if columns <= 0 || rows <= 0 {
		return fmt.Errorf("invalid tile grid: %dx%d (must be positive)", columns, rows)
	}
	if int64(columns)*int64(rows) > MaxTilemapTiles {
		return fmt.Errorf("tile grid too large: %dx%d (max %d tiles)", columns, rows, MaxTilemapTiles)
	}
	if !finitePositive(tileWidth) || !finitePositive(tileHeight) {
		return fmt.Errorf("invalid tile size: %vx%v (must be positive)", tileWidth, tileHeight)
	}
	return nil
}

// ValidateShapeCount checks the number of shapes in a scene
func ValidateShapeCount(count int) error {
	if count > MaxShapes {
		return fmt.Errorf("too many shapes: %d (max %d)", count, MaxShapes)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
