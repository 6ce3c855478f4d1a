// Package sprite implements the frame extraction pipeline.
//
// The pipeline turns a sprite sheet and a set of candidate rectangles into
// cleaned per-frame pixel buffers plus geometry metadata. Rectangles come
// from three producers: arithmetic grid enumeration, automatic island
// detection over the transparency mask, and externally supplied manual
// rectangles. Each accepted rectangle flows through the same steps:
//
//  1. Slice the rectangle from the sheet into a fresh buffer.
//  2. Apply any enabled color keys to the slice.
//  3. Scan the alpha bounds; a fully transparent result drops the frame.
//  4. Optionally trim the buffer to the alpha bounds.
//  5. Emit a Frame carrying the buffer and its trim geometry.
//
// A rectangle that resolves to "fully transparent" simply produces no frame;
// it is not an error, and the remaining frames keep their relative order.
//
// # Rectangle identity
//
// Every rectangle carries a RectSource: grid and island rectangles are
// identified by their ordinal in emission order, manual rectangles by a
// UUID. The derived string form ("grid-3", "island-0", "manual-<uuid>") is
// the join key that correlates an output frame back to its source rectangle
// in manifests and deletion lists. Parsing of that string form happens only
// at the boundary; internal routing switches on the tagged source, never on
// string prefixes.
//
// # Concurrency
//
// Rectangles are independent: each extraction slices and exclusively owns
// its working buffer, and the source sheet is only ever read. ExtractFrames
// exploits this by fanning rectangles out to a bounded worker pool while
// preserving input order in the output.
package sprite
