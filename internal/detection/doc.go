// Package detection finds sprite islands in a transparency mask.
//
// An island is a maximal 4-connected group of pixels with alpha > 0, treated
// as one candidate sprite frame. Detection runs over a pixel buffer that has
// already had any color keys applied, so keyed-out background never seeds or
// extends an island.
//
// # Algorithm
//
// The detector performs a single row-major scan. Each unvisited pixel with
// alpha > 0 seeds a flood fill over its 4-connected neighbors (up, down,
// left, right; diagonal contact does not join islands). The fill is iterative
// with an explicit stack, so recursion depth never depends on image size.
// While filling, the running min/max x and y are tracked; on exhaustion the
// component's bounding box is emitted if it meets the minimum size
// thresholds. Components below the thresholds are discarded silently and
// their pixels are never revisited.
//
// # Determinism
//
// Scan order is top-to-bottom, left-to-right, so island discovery order (and
// therefore island ordinals) is fully deterministic: running the detector
// twice on the same buffer yields identical results in identical order.
//
// # Complexity
//
// O(width*height) time and space: every pixel is visited at most once and
// the visited marker costs one byte per pixel.
package detection
