package detection

import "github.com/pixelfold/spritecut/internal/imaging"

// Island is the bounding box of one 4-connected opaque region, with the
// number of pixels that formed it.
type Island struct {
	// X, Y is the top-left corner of the bounding box, in sheet coordinates.
	X int `json:"x"`
	Y int `json:"y"`

	// W, H are the bounding box dimensions in pixels.
	W int `json:"w"`
	H int `json:"h"`

	// PixelCount is the number of opaque pixels in the component. It can be
	// much smaller than W*H for sparse or diagonal shapes.
	PixelCount int `json:"pixel_count"`
}

// point is a stack entry for the iterative flood fill.
type point struct {
	x, y int
}

// DetectIslands finds all 4-connected regions of alpha > 0 pixels whose
// bounding boxes are at least minW by minH pixels.
//
// Thresholds below 1 are raised to 1. Islands are returned in discovery
// order, which follows the row-major scan and is deterministic for a given
// buffer. Undersized components are dropped without being merged into
// neighbors or retried.
func DetectIslands(buf *imaging.Buffer, minW, minH int) []Island {
	if minW < 1 {
		minW = 1
	}
	if minH < 1 {
		minH = 1
	}

	width := buf.Width
	height := buf.Height
	visited := make([]bool, width*height)
	islands := make([]Island, 0)

	// Reused across components so a large sheet allocates one stack.
	stack := make([]point, 0, 256)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if visited[idx] || buf.Pix[idx*4+3] == 0 {
				continue
			}

			minX, maxX := x, x
			minY, maxY := y, y
			count := 0

			visited[idx] = true
			stack = append(stack[:0], point{x, y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				count++

				if p.x < minX {
					minX = p.x
				}
				if p.x > maxX {
					maxX = p.x
				}
				if p.y < minY {
					minY = p.y
				}
				if p.y > maxY {
					maxY = p.y
				}

				// 4-connected neighbors, bounds-checked, no wraparound.
				if p.x > 0 {
					pushOpaque(buf, visited, &stack, p.x-1, p.y)
				}
				if p.x < width-1 {
					pushOpaque(buf, visited, &stack, p.x+1, p.y)
				}
				if p.y > 0 {
					pushOpaque(buf, visited, &stack, p.x, p.y-1)
				}
				if p.y < height-1 {
					pushOpaque(buf, visited, &stack, p.x, p.y+1)
				}
			}

			w := maxX - minX + 1
			h := maxY - minY + 1
			if w >= minW && h >= minH {
				islands = append(islands, Island{
					X:          minX,
					Y:          minY,
					W:          w,
					H:          h,
					PixelCount: count,
				})
			}
		}
	}

	return islands
}

// pushOpaque marks (x, y) visited and pushes it if it is opaque and new.
// Marking on push rather than on pop keeps each pixel on the stack at most
// once, bounding stack memory by the component size.
func pushOpaque(buf *imaging.Buffer, visited []bool, stack *[]point, x, y int) {
	idx := y*buf.Width + x
	if visited[idx] || buf.Pix[idx*4+3] == 0 {
		return
	}
	visited[idx] = true
	*stack = append(*stack, point{x, y})
}
