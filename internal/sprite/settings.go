package sprite

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pixelfold/spritecut/internal/imaging"
)

// Mode selects the rectangle-discovery strategy.
type Mode string

const (
	// ModeGrid enumerates fixed-size cells from grid geometry.
	ModeGrid Mode = "grid"

	// ModeIslands detects connected opaque regions automatically.
	ModeIslands Mode = "islands"

	// ModeManual uses only externally supplied rectangles.
	ModeManual Mode = "manual"
)

// GridSettings describes the fixed-size cell layout for ModeGrid.
type GridSettings struct {
	Width    int `json:"width"`     // Cell width in pixels
	Height   int `json:"height"`    // Cell height in pixels
	MarginX  int `json:"margin_x"`  // Left offset of the first column
	MarginY  int `json:"margin_y"`  // Top offset of the first row
	SpacingX int `json:"spacing_x"` // Horizontal gap between cells
	SpacingY int `json:"spacing_y"` // Vertical gap between cells
}

// IslandSettings filters detected islands by minimum bounding-box size.
type IslandSettings struct {
	MinWidth  int `json:"min_width"`
	MinHeight int `json:"min_height"`
}

// ProcessingSettings controls the per-rectangle cleanup steps.
type ProcessingSettings struct {
	// AutoTrim crops each frame to its opaque bounding box.
	AutoTrim bool `json:"auto_trim"`

	// ColorKeyEnabled turns background removal on.
	ColorKeyEnabled bool `json:"color_key_enabled"`

	// ColorKeyColors lists target colors as "#RRGGBB" strings. Malformed
	// entries are skipped, not treated as errors.
	ColorKeyColors []string `json:"color_key_colors"`

	// ColorKeyTolerance is the RGB distance inside which a pixel is fully
	// keyed out.
	ColorKeyTolerance float64 `json:"color_key_tolerance"`

	// ColorKeyFeather is the extra distance band over which transparency is
	// blended linearly instead of hard-cut.
	ColorKeyFeather float64 `json:"color_key_feather"`
}

// KeyColors parses ColorKeyColors, dropping malformed entries.
func (p ProcessingSettings) KeyColors() []imaging.RGBColor {
	colors := make([]imaging.RGBColor, 0, len(p.ColorKeyColors))
	for _, s := range p.ColorKeyColors {
		if c, ok := imaging.ParseHexColor(s); ok {
			colors = append(colors, c)
		}
	}
	return colors
}

// Settings bundles everything a full extraction pass needs.
type Settings struct {
	Mode       Mode               `json:"mode"`
	Grid       GridSettings       `json:"grid"`
	Islands    IslandSettings     `json:"islands"`
	Processing ProcessingSettings `json:"processing"`
}

// DefaultSettings returns the values a fresh project starts from.
func DefaultSettings() Settings {
	return Settings{
		Mode: ModeIslands,
		Grid: GridSettings{
			Width:  32,
			Height: 32,
		},
		Islands: IslandSettings{
			MinWidth:  4,
			MinHeight: 4,
		},
		Processing: ProcessingSettings{
			AutoTrim:          false,
			ColorKeyTolerance: 0,
			ColorKeyFeather:   0,
		},
	}
}

// LoadSettings reads a Settings JSON file. Fields absent from the file keep
// their defaults, so a partial file only overrides what it names.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	switch s.Mode {
	case ModeGrid, ModeIslands, ModeManual:
	default:
		return nil, fmt.Errorf("unknown mode %q", s.Mode)
	}

	return &s, nil
}
