// Package imaging provides the pixel-level primitives for sprite extraction.
//
// This package implements the raw RGBA pixel buffer, the color model used for
// color-key background removal, alpha bounds scanning, image loading with
// caching, and frame encoding. All operations use a coordinate system where
// (0,0) is at the top-left corner, X increases rightward, and Y increases
// downward.
//
// # Pixel Buffers
//
// The Buffer type owns a contiguous byte slice of interleaved R,G,B,A values,
// row-major, exactly width*height*4 bytes long. Buffers are mutable: color
// keying edits the alpha channel in place. The safety model is exclusive
// ownership: every extraction slices its own fresh buffer from the source
// sheet, so no two goroutines ever mutate the same buffer.
//
// # Color Keying
//
// ApplyColorKey compares every pixel against a target color using squared
// Euclidean RGB distance (alpha excluded). Pixels within the tolerance radius
// become fully transparent; pixels inside the feather band beyond it get a
// linear alpha ramp. RGB bytes are never modified, so feathered edges keep
// their color for soft compositing.
//
// # Error Handling
//
// Malformed hex color strings are reported as absence (ok=false), not errors;
// callers filter them out. A fully transparent buffer yields "no bounds" from
// ScanBounds, which is an expected result, not a failure. File I/O and decode
// errors from the loader are wrapped with %w.
package imaging
