package sprite

import (
	"runtime"
	"sync"

	"github.com/pixelfold/spritecut/internal/detection"
	"github.com/pixelfold/spritecut/internal/imaging"
)

// Offset is a pixel displacement inside a source rectangle.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a pixel extent.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Frame is one extracted sprite: its cleaned pixels plus the geometry needed
// to place it back inside its source rectangle.
//
// When trimming is disabled or removes nothing, TrimOffset is (0,0) and
// TrimmedSize equals OriginalSize.
type Frame struct {
	// Pixels is the frame's exclusively owned buffer.
	Pixels *imaging.Buffer

	// SourceRect is the rectangle this frame was cut from, in sheet
	// coordinates. The frame's identity is SourceRect's id.
	SourceRect Rect

	// TrimOffset is where the trimmed content sits inside the source
	// rectangle.
	TrimOffset Offset

	// TrimmedSize is the size of Pixels.
	TrimmedSize Size

	// OriginalSize is the untrimmed source rectangle size.
	OriginalSize Size
}

// ID returns the join key shared with the frame's source rectangle.
func (f *Frame) ID() string {
	return f.SourceRect.ID()
}

// Trimmed reports whether trimming actually removed pixels.
func (f *Frame) Trimmed() bool {
	return f.TrimmedSize != f.OriginalSize
}

// ExtractFrame runs one rectangle through the pipeline: slice, color-key,
// bounds-check, optional trim.
//
// Returns (nil, nil) when the rectangle is fully transparent after keying;
// that is the expected way blank grid cells and fully keyed-out regions
// vanish from the output. A rectangle with non-positive size or out of sheet
// bounds is a contract violation by the producer and returns an error.
func ExtractFrame(sheet *imaging.Buffer, r Rect, p ProcessingSettings) (*Frame, error) {
	buf, err := sheet.Slice(r.X, r.Y, r.W, r.H)
	if err != nil {
		return nil, err
	}

	if p.ColorKeyEnabled {
		if colors := p.KeyColors(); len(colors) > 0 {
			imaging.ApplyColorKeys(buf, colors, p.ColorKeyTolerance, p.ColorKeyFeather)
		}
	}

	bounds, ok := imaging.ScanBounds(buf)
	if !ok {
		return nil, nil
	}

	frame := &Frame{
		SourceRect:   r,
		TrimOffset:   Offset{},
		TrimmedSize:  Size{W: r.W, H: r.H},
		OriginalSize: Size{W: r.W, H: r.H},
	}

	if p.AutoTrim {
		trimmed, err := buf.Slice(bounds.X, bounds.Y, bounds.W, bounds.H)
		if err != nil {
			return nil, err
		}
		frame.Pixels = trimmed
		frame.TrimOffset = Offset{X: bounds.X, Y: bounds.Y}
		frame.TrimmedSize = Size{W: bounds.W, H: bounds.H}
	} else {
		frame.Pixels = buf
	}

	return frame, nil
}

// ExtractFrames runs every rectangle through ExtractFrame on a bounded
// worker pool and returns the frames in input order, with fully transparent
// rectangles dropped.
//
// Rectangles are independent (each slices its own buffer; the sheet is only
// read), so the fan-out needs no locking beyond the WaitGroup. Results land
// in a positional slice and are compacted afterwards, which keeps output
// order equal to input order regardless of worker scheduling. If any
// rectangle fails its contract the whole pass fails and no partial output
// escapes.
func ExtractFrames(sheet *imaging.Buffer, rects []Rect, p ProcessingSettings) ([]*Frame, error) {
	if len(rects) == 0 {
		return nil, nil
	}

	results := make([]*Frame, len(rects))
	errs := make([]error, len(rects))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(rects) {
		workers = len(rects)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = ExtractFrame(sheet, rects[i], p)
			}
		}()
	}
	for i := range rects {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	frames := make([]*Frame, 0, len(rects))
	for _, f := range results {
		if f != nil {
			frames = append(frames, f)
		}
	}
	return frames, nil
}

// CollectRects produces the candidate rectangle list for one extraction
// pass: the mode's producer output, then any manual rectangles (later
// entries sit on top), minus hidden ids.
//
// In ModeIslands the mask is computed before labeling: when color keying is
// active, detection runs on a keyed copy of the sheet so background pixels
// never seed or extend an island. The copy is discarded afterwards; the
// caller's sheet is never mutated.
//
// Manual rectangles with non-positive sizes or lying fully outside the sheet
// are rejected here, at the producer boundary; partially overhanging ones
// are clamped to the sheet.
func CollectRects(sheet *imaging.Buffer, s Settings, manual []Rect, hidden map[string]bool) []Rect {
	rects := make([]Rect, 0)

	switch s.Mode {
	case ModeGrid:
		rects = append(rects, GridRects(sheet.Width, sheet.Height, s.Grid)...)
	case ModeIslands:
		mask := sheet
		if s.Processing.ColorKeyEnabled {
			if colors := s.Processing.KeyColors(); len(colors) > 0 {
				mask = sheet.Clone()
				imaging.ApplyColorKeys(mask, colors, s.Processing.ColorKeyTolerance, s.Processing.ColorKeyFeather)
			}
		}
		for i, island := range detection.DetectIslands(mask, s.Islands.MinWidth, s.Islands.MinHeight) {
			rects = append(rects, Rect{
				Source: IslandSource(i),
				X:      island.X,
				Y:      island.Y,
				W:      island.W,
				H:      island.H,
			})
		}
	}

	for _, r := range manual {
		if !r.Valid() {
			continue
		}
		if clamped, ok := r.ClampTo(sheet.Width, sheet.Height); ok {
			rects = append(rects, clamped)
		}
	}

	if len(hidden) == 0 {
		return rects
	}
	kept := rects[:0]
	for _, r := range rects {
		if !hidden[r.ID()] {
			kept = append(kept, r)
		}
	}
	return kept
}
