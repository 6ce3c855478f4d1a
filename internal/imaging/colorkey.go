package imaging

import "math"

// ApplyColorKey makes pixels near a target color transparent, in place.
//
// For every pixel the squared RGB distance to target is computed:
//
//   - distance <= tolerance: alpha becomes 0
//   - tolerance < distance <= tolerance+feather: alpha is scaled by
//     (distance - tolerance) / feather, a linear ramp from fully transparent
//     at the tolerance boundary to the original alpha at the feather edge
//   - otherwise: the pixel is untouched
//
// RGB bytes are never modified. This is a soft key: a half-faded pixel keeps
// its color, which preserves anti-aliased sprite edges.
func ApplyColorKey(buf *Buffer, target RGBColor, tolerance, feather float64) {
	if tolerance < 0 {
		tolerance = 0
	}
	if feather < 0 {
		feather = 0
	}
	tol2 := tolerance * tolerance
	outer := tolerance + feather
	outer2 := outer * outer

	for i := 0; i < len(buf.Pix); i += 4 {
		d2 := DistanceSquared(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], target)
		switch {
		case d2 <= tol2:
			buf.Pix[i+3] = 0
		case feather > 0 && d2 <= outer2:
			t := (math.Sqrt(d2) - tolerance) / feather
			buf.Pix[i+3] = uint8(math.Round(float64(buf.Pix[i+3]) * t))
		}
	}
}

// ApplyColorKeys applies each target color in turn, each key operating on the
// alpha channel as already modified by the previous keys. Masking is
// cumulative: a pixel keyed out by one color stays keyed out no matter how
// far it is from the others. An empty target list is a no-op.
func ApplyColorKeys(buf *Buffer, targets []RGBColor, tolerance, feather float64) {
	for _, target := range targets {
		ApplyColorKey(buf, target, tolerance, feather)
	}
}
