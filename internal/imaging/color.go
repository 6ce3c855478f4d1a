package imaging

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255. Alpha is deliberately absent: color
// keying compares RGB only and manages alpha separately.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// hexColorPattern matches an optional '#' followed by exactly six hex digits.
var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ParseHexColor converts a "#RRGGBB" or "RRGGBB" string to an RGBColor.
//
// Any other shape (shorthand "#abc", alpha suffixes, stray characters) yields
// ok=false. Absence is not an error: callers filter unparsable entries out of
// a key list rather than aborting.
func ParseHexColor(s string) (RGBColor, bool) {
	if !hexColorPattern.MatchString(s) {
		return RGBColor{}, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBColor{}, false
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, true
}

// Hex formats the color as "#RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// DistanceSquared returns the squared Euclidean distance between a pixel's
// RGB bytes and a target color. The square root is skipped so the tolerance
// test can compare against tolerance^2; only the feather ramp needs the
// linear distance.
func DistanceSquared(r, g, b uint8, target RGBColor) float64 {
	dr := float64(r) - float64(target.R)
	dg := float64(g) - float64(target.G)
	db := float64(b) - float64(target.B)
	return dr*dr + dg*dg + db*db
}
