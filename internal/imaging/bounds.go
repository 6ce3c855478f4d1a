package imaging

// Bounds is a tight axis-aligned bounding box in buffer-local coordinates.
type Bounds struct {
	X int `json:"x"` // Left edge (inclusive)
	Y int `json:"y"` // Top edge (inclusive)
	W int `json:"w"` // Width in pixels
	H int `json:"h"` // Height in pixels
}

// ScanBounds computes the bounding box of all pixels with alpha > 0.
//
// Returns ok=false when the buffer is fully transparent, which signals an
// empty region rather than an error. Runs in O(width*height).
func ScanBounds(buf *Buffer) (Bounds, bool) {
	minX, minY := buf.Width, buf.Height
	maxX, maxY := -1, -1

	i := 3
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if buf.Pix[i] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
			i += 4
		}
	}

	if maxX < 0 {
		return Bounds{}, false
	}
	return Bounds{
		X: minX,
		Y: minY,
		W: maxX - minX + 1,
		H: maxY - minY + 1,
	}, true
}
