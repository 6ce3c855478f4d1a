package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestBufferFromImage(t *testing.T) {
	img := createInMemoryImage(4, 3, color.RGBA{255, 128, 0, 255})

	buf := BufferFromImage(img)
	if buf.Width != 4 || buf.Height != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", buf.Width, buf.Height)
	}
	if len(buf.Pix) != 4*3*4 {
		t.Fatalf("pixel length: got %d, want %d", len(buf.Pix), 4*3*4)
	}

	r, g, b, a := buf.RGBA(2, 1)
	if r != 255 || g != 128 || b != 0 || a != 255 {
		t.Errorf("pixel (2,1): got (%d,%d,%d,%d), want (255,128,0,255)", r, g, b, a)
	}
}

func TestBufferFromImage_NonRGBASource(t *testing.T) {
	// Grayscale input must land in the same interleaved RGBA layout.
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 200})

	buf := BufferFromImage(img)
	r, g, b, a := buf.RGBA(0, 0)
	if r != 200 || g != 200 || b != 200 || a != 255 {
		t.Errorf("gray pixel: got (%d,%d,%d,%d), want (200,200,200,255)", r, g, b, a)
	}
}

func TestBuffer_Slice(t *testing.T) {
	src := NewBuffer(10, 10)
	// Mark a recognizable pixel inside the region to slice.
	i := src.offset(4, 5)
	src.Pix[i] = 9
	src.Pix[i+3] = 200

	out, err := src.Slice(3, 4, 4, 4)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if out.Width != 4 || out.Height != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", out.Width, out.Height)
	}

	r, _, _, a := out.RGBA(1, 1)
	if r != 9 || a != 200 {
		t.Errorf("sliced pixel: got r=%d a=%d, want r=9 a=200", r, a)
	}

	// The slice owns its pixels; mutating it must not touch the source.
	out.SetAlpha(1, 1, 0)
	if src.Alpha(4, 5) != 200 {
		t.Error("mutating slice leaked into the source buffer")
	}
}

func TestBuffer_Slice_Invalid(t *testing.T) {
	src := NewBuffer(10, 10)

	tests := []struct {
		name       string
		x, y, w, h int
	}{
		{"zero width", 0, 0, 0, 5},
		{"zero height", 0, 0, 5, 0},
		{"negative width", 0, 0, -1, 5},
		{"negative origin", -1, 0, 5, 5},
		{"overhangs right", 6, 0, 5, 5},
		{"overhangs bottom", 0, 6, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := src.Slice(tt.x, tt.y, tt.w, tt.h); err == nil {
				t.Error("Slice should fail for invalid region")
			}
		})
	}
}

func TestBuffer_Clone(t *testing.T) {
	src := NewBuffer(3, 3)
	src.SetAlpha(1, 1, 77)

	dup := src.Clone()
	if dup.Alpha(1, 1) != 77 {
		t.Fatal("clone did not copy pixels")
	}

	dup.SetAlpha(1, 1, 0)
	if src.Alpha(1, 1) != 77 {
		t.Error("mutating clone leaked into the source buffer")
	}
}

func TestBuffer_ToImage(t *testing.T) {
	buf := NewBuffer(2, 2)
	i := buf.offset(1, 0)
	buf.Pix[i] = 10
	buf.Pix[i+1] = 20
	buf.Pix[i+2] = 30
	buf.Pix[i+3] = 255

	img := buf.ToImage()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds: got %v", img.Bounds())
	}

	c := img.RGBAAt(1, 0)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("pixel (1,0): got %+v, want {10 20 30 255}", c)
	}
}
