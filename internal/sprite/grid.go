package sprite

// GridRects enumerates fixed-size cells over a width*height sheet.
//
// The cursor starts at (MarginX, MarginY) and emits one rectangle per step
// while the cell still fits horizontally, advancing by Width+SpacingX; when a
// row is exhausted the cursor returns to MarginX and moves down by
// Height+SpacingY, continuing while the cell fits vertically. Ordinals are
// assigned in emission order starting at 0.
//
// Degenerate cell sizes (Width or Height <= 0) yield an empty list, not an
// error. No pixel inspection happens here: empty cells are enumerated too
// and only vanish later when extraction finds them fully transparent.
func GridRects(width, height int, g GridSettings) []Rect {
	if g.Width <= 0 || g.Height <= 0 {
		return nil
	}

	rects := make([]Rect, 0)
	n := 0
	for y := g.MarginY; y+g.Height <= height; y += g.Height + g.SpacingY {
		for x := g.MarginX; x+g.Width <= width; x += g.Width + g.SpacingX {
			rects = append(rects, Rect{
				Source: GridSource(n),
				X:      x,
				Y:      y,
				W:      g.Width,
				H:      g.Height,
			})
			n++
		}
	}
	return rects
}
