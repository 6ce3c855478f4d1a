package imaging

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Output formats supported by Encode.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// EncodeOptions controls how an extracted frame is written out.
type EncodeOptions struct {
	// Format selects the container: FormatPNG (default) or FormatWebP.
	Format string

	// Scale resizes the frame before encoding. 1.0 (or 0) keeps the native
	// size. Upscaling uses Lanczos resampling.
	Scale float64

	// Quality is the WebP quality (0-100) when Lossless is false.
	// Ignored for PNG.
	Quality float32

	// Lossless selects lossless WebP encoding. Ignored for PNG.
	Lossless bool
}

// Ext returns the file extension for the selected format, including the dot.
func (o EncodeOptions) Ext() string {
	if o.Format == FormatWebP {
		return ".webp"
	}
	return ".png"
}

// Encode writes a frame buffer to w in the requested format.
//
// The buffer's pixels are shared, not copied; Encode does not mutate them.
func Encode(w io.Writer, buf *Buffer, opts EncodeOptions) error {
	var img image.Image = buf.ToImage()

	if opts.Scale > 0 && opts.Scale != 1.0 {
		newW := int(float64(buf.Width) * opts.Scale)
		newH := int(float64(buf.Height) * opts.Scale)
		if newW < 1 || newH < 1 {
			return fmt.Errorf("scale %g collapses %dx%d frame to zero size", opts.Scale, buf.Width, buf.Height)
		}
		img = imaging.Resize(img, newW, newH, imaging.Lanczos)
	}

	switch opts.Format {
	case FormatWebP:
		quality := opts.Quality
		if quality <= 0 {
			quality = 90
		}
		if err := webp.Encode(w, img, &webp.Options{Lossless: opts.Lossless, Quality: quality}); err != nil {
			return fmt.Errorf("failed to encode webp: %w", err)
		}
	case FormatPNG, "":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
	return nil
}

// EncodeFile encodes a frame buffer to a file, creating or truncating path.
func EncodeFile(path string, buf *Buffer, opts EncodeOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, buf, opts); err != nil {
		return err
	}
	return f.Close()
}
