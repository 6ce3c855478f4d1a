package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// Buffer is a mutable RGBA pixel buffer.
//
// Pix holds interleaved R,G,B,A bytes, row-major with origin at the top-left
// corner. The invariant len(Pix) == Width*Height*4 holds for every Buffer
// produced by this package.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a zeroed (fully transparent black) buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// BufferFromImage copies a decoded image into a fresh Buffer.
//
// The image is converted to 8-bit RGBA regardless of its native color model,
// so paletted GIFs and 16-bit PNGs all end up in the same byte layout.
func BufferFromImage(img image.Image) *Buffer {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf := NewBuffer(width, height)
	for y := 0; y < height; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		copy(buf.Pix[y*width*4:], src)
	}
	return buf
}

// offset returns the index of the R byte for pixel (x, y).
// No bounds checking; callers iterate within the buffer dimensions.
func (b *Buffer) offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGBA returns the four channel bytes at (x, y).
func (b *Buffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := b.offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Alpha returns the alpha byte at (x, y).
func (b *Buffer) Alpha(x, y int) uint8 {
	return b.Pix[b.offset(x, y)+3]
}

// SetAlpha overwrites the alpha byte at (x, y), leaving RGB untouched.
func (b *Buffer) SetAlpha(x, y int, a uint8) {
	b.Pix[b.offset(x, y)+3] = a
}

// Slice copies the rectangle (x, y, w, h) into a fresh, exclusively owned
// Buffer. The region must lie fully inside the source buffer and have
// positive dimensions; anything else is a programmer error at the caller.
func (b *Buffer) Slice(x, y, w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("slice region %dx%d must have positive dimensions", w, h)
	}
	if x < 0 || y < 0 || x+w > b.Width || y+h > b.Height {
		return nil, fmt.Errorf("slice region (%d,%d %dx%d) outside buffer bounds %dx%d",
			x, y, w, h, b.Width, b.Height)
	}

	out := NewBuffer(w, h)
	for row := 0; row < h; row++ {
		srcStart := b.offset(x, y+row)
		copy(out.Pix[row*w*4:(row+1)*w*4], b.Pix[srcStart:srcStart+w*4])
	}
	return out, nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := NewBuffer(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// ToImage wraps the buffer in an *image.RGBA sharing the same pixel storage.
// Mutating the buffer afterwards mutates the returned image too.
func (b *Buffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
