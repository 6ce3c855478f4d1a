package sprite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SourceKind says which producer created a rectangle.
type SourceKind int

const (
	// SourceGrid marks rectangles enumerated from grid geometry.
	SourceGrid SourceKind = iota

	// SourceIsland marks rectangles found by island detection.
	SourceIsland

	// SourceManual marks rectangles supplied by the caller.
	SourceManual
)

// String returns the id namespace for the kind ("grid", "island", "manual").
func (k SourceKind) String() string {
	switch k {
	case SourceGrid:
		return "grid"
	case SourceIsland:
		return "island"
	case SourceManual:
		return "manual"
	default:
		return "unknown"
	}
}

// RectSource is the tagged provenance of a rectangle.
//
// Grid and island rectangles carry an ordinal assigned in emission order;
// manual rectangles carry a UUID. Keeping provenance as a tagged value
// instead of a string prefix means routing logic switches on Kind and
// illegal states are unrepresentable.
type RectSource struct {
	Kind    SourceKind
	Ordinal int       // Valid for SourceGrid and SourceIsland.
	UUID    uuid.UUID // Valid for SourceManual.
}

// GridSource returns the source tag for the n-th grid cell.
func GridSource(n int) RectSource {
	return RectSource{Kind: SourceGrid, Ordinal: n}
}

// IslandSource returns the source tag for the n-th detected island.
func IslandSource(n int) RectSource {
	return RectSource{Kind: SourceIsland, Ordinal: n}
}

// ManualSource returns a fresh source tag for a manually drawn rectangle.
func ManualSource() RectSource {
	return RectSource{Kind: SourceManual, UUID: uuid.New()}
}

// ID renders the source as the stable string join key used by manifests,
// file names, and hide lists.
func (s RectSource) ID() string {
	if s.Kind == SourceManual {
		return fmt.Sprintf("manual-%s", s.UUID)
	}
	return fmt.Sprintf("%s-%d", s.Kind, s.Ordinal)
}

// ParseRectID parses the string form back into a tagged source. Unknown
// namespaces, bad ordinals, and bad UUIDs yield ok=false.
func ParseRectID(id string) (RectSource, bool) {
	prefix, rest, found := strings.Cut(id, "-")
	if !found || rest == "" {
		return RectSource{}, false
	}

	switch prefix {
	case "grid", "island":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return RectSource{}, false
		}
		kind := SourceGrid
		if prefix == "island" {
			kind = SourceIsland
		}
		return RectSource{Kind: kind, Ordinal: n}, true
	case "manual":
		u, err := uuid.Parse(rest)
		if err != nil {
			return RectSource{}, false
		}
		return RectSource{Kind: SourceManual, UUID: u}, true
	default:
		return RectSource{}, false
	}
}

// Rect is an axis-aligned candidate frame rectangle in sheet coordinates.
//
// Accepted rectangles always have W > 0 and H > 0; producers reject
// degenerate sizes at the boundary, so the extractor treats a non-positive
// size as a programmer error.
type Rect struct {
	Source RectSource
	X      int
	Y      int
	W      int
	H      int
}

// ID returns the rectangle's string join key.
func (r Rect) ID() string {
	return r.Source.ID()
}

// Valid reports whether the rectangle has positive dimensions.
func (r Rect) Valid() bool {
	return r.W > 0 && r.H > 0
}

// ClampTo shrinks the rectangle to fit inside a width*height sheet.
// Returns ok=false when nothing of the rectangle remains inside.
func (r Rect) ClampTo(width, height int) (Rect, bool) {
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.W, r.Y+r.H
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > width {
		x2 = width
	}
	if y2 > height {
		y2 = height
	}
	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{Source: r.Source, X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, true
}
