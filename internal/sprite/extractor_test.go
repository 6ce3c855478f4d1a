package sprite

import (
	"testing"

	"github.com/pixelfold/spritecut/internal/imaging"
)

// testSheet builds a sheet from an ASCII map. '#' is opaque white, 'M' is
// opaque magenta (the usual key color in these tests), '.' is transparent.
func testSheet(rows []string) *imaging.Buffer {
	h := len(rows)
	w := len(rows[0])
	buf := imaging.NewBuffer(w, h)
	for y, row := range rows {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			switch row[x] {
			case '#':
				buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = 255, 255, 255, 255
			case 'M':
				buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = 255, 0, 255, 255
			}
		}
	}
	return buf
}

func manualRect(x, y, w, h int) Rect {
	return Rect{Source: ManualSource(), X: x, Y: y, W: w, H: h}
}

func TestExtractFrame_NoTrim(t *testing.T) {
	sheet := testSheet([]string{
		"......",
		".##...",
		".##...",
		"......",
	})

	frame, err := ExtractFrame(sheet, Rect{Source: GridSource(0), X: 0, Y: 0, W: 6, H: 4}, ProcessingSettings{})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}
	if frame == nil {
		t.Fatal("frame is nil for a rectangle with opaque content")
	}

	if frame.Pixels.Width != 6 || frame.Pixels.Height != 4 {
		t.Errorf("buffer: got %dx%d, want 6x4", frame.Pixels.Width, frame.Pixels.Height)
	}
	if frame.TrimOffset != (Offset{}) {
		t.Errorf("trim offset: got %+v, want (0,0)", frame.TrimOffset)
	}
	if frame.TrimmedSize != frame.OriginalSize {
		t.Errorf("sizes differ without trimming: %+v vs %+v", frame.TrimmedSize, frame.OriginalSize)
	}
	if frame.Trimmed() {
		t.Error("Trimmed() should be false without auto-trim")
	}
	if frame.ID() != "grid-0" {
		t.Errorf("id: got %s, want grid-0", frame.ID())
	}
}

func TestExtractFrame_AutoTrim(t *testing.T) {
	sheet := testSheet([]string{
		"......",
		".##...",
		".##...",
		"......",
	})

	frame, err := ExtractFrame(sheet, Rect{Source: GridSource(0), X: 0, Y: 0, W: 6, H: 4},
		ProcessingSettings{AutoTrim: true})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}
	if frame == nil {
		t.Fatal("frame is nil")
	}

	if frame.TrimOffset != (Offset{X: 1, Y: 1}) {
		t.Errorf("trim offset: got %+v, want (1,1)", frame.TrimOffset)
	}
	if frame.TrimmedSize != (Size{W: 2, H: 2}) {
		t.Errorf("trimmed size: got %+v, want 2x2", frame.TrimmedSize)
	}
	if frame.OriginalSize != (Size{W: 6, H: 4}) {
		t.Errorf("original size: got %+v, want 6x4", frame.OriginalSize)
	}
	if frame.Pixels.Width != 2 || frame.Pixels.Height != 2 {
		t.Errorf("buffer: got %dx%d, want 2x2", frame.Pixels.Width, frame.Pixels.Height)
	}
	if !frame.Trimmed() {
		t.Error("Trimmed() should be true")
	}
	if a := frame.Pixels.Alpha(0, 0); a != 255 {
		t.Errorf("trimmed content alpha: got %d, want 255", a)
	}
}

func TestExtractFrame_TrimNoOp(t *testing.T) {
	// Content fills the whole rectangle: trimming changes nothing and the
	// frame reports itself untrimmed.
	sheet := testSheet([]string{
		"##",
		"##",
	})

	frame, err := ExtractFrame(sheet, Rect{Source: GridSource(0), X: 0, Y: 0, W: 2, H: 2},
		ProcessingSettings{AutoTrim: true})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}
	if frame.TrimOffset != (Offset{}) || frame.Trimmed() {
		t.Errorf("no-op trim: offset %+v trimmed %v", frame.TrimOffset, frame.Trimmed())
	}
}

func TestExtractFrame_EmptyRect(t *testing.T) {
	sheet := testSheet([]string{
		"##..",
		"##..",
	})

	frame, err := ExtractFrame(sheet, Rect{Source: GridSource(1), X: 2, Y: 0, W: 2, H: 2}, ProcessingSettings{})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}
	if frame != nil {
		t.Error("fully transparent rectangle should yield no frame")
	}
}

func TestExtractFrame_ColorKeyEmptiesFrame(t *testing.T) {
	sheet := testSheet([]string{
		"MM",
		"MM",
	})
	rect := Rect{Source: GridSource(0), X: 0, Y: 0, W: 2, H: 2}

	// Without keying the magenta block is a regular frame.
	frame, err := ExtractFrame(sheet, rect, ProcessingSettings{})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}
	if frame == nil {
		t.Fatal("frame should exist with keying disabled")
	}

	// Keying magenta out leaves nothing.
	frame, err = ExtractFrame(sheet, rect, ProcessingSettings{
		ColorKeyEnabled: true,
		ColorKeyColors:  []string{"#FF00FF"},
	})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}
	if frame != nil {
		t.Error("fully keyed-out rectangle should yield no frame")
	}
}

func TestExtractFrame_ColorKeyDoesNotMutateSheet(t *testing.T) {
	sheet := testSheet([]string{
		"M#",
	})

	_, err := ExtractFrame(sheet, Rect{Source: GridSource(0), X: 0, Y: 0, W: 2, H: 1}, ProcessingSettings{
		ColorKeyEnabled: true,
		ColorKeyColors:  []string{"#FF00FF"},
	})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}

	if a := sheet.Alpha(0, 0); a != 255 {
		t.Errorf("source sheet was mutated: alpha %d", a)
	}
}

func TestExtractFrame_MalformedKeyColorsIgnored(t *testing.T) {
	sheet := testSheet([]string{
		"M#",
	})

	// Only malformed colors: keying is effectively off, frame survives whole.
	frame, err := ExtractFrame(sheet, Rect{Source: GridSource(0), X: 0, Y: 0, W: 2, H: 1}, ProcessingSettings{
		ColorKeyEnabled: true,
		ColorKeyColors:  []string{"nope", "#FFF"},
	})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}
	if frame == nil {
		t.Fatal("frame is nil")
	}
	if a := frame.Pixels.Alpha(0, 0); a != 255 {
		t.Errorf("magenta pixel alpha: got %d, want 255 (no valid keys)", a)
	}
}

func TestExtractFrame_InvalidRect(t *testing.T) {
	sheet := testSheet([]string{"##"})

	if _, err := ExtractFrame(sheet, Rect{Source: GridSource(0), W: 0, H: 1}, ProcessingSettings{}); err == nil {
		t.Error("zero-size rectangle should be rejected")
	}
	if _, err := ExtractFrame(sheet, Rect{Source: GridSource(0), X: 1, Y: 0, W: 5, H: 1}, ProcessingSettings{}); err == nil {
		t.Error("out-of-bounds rectangle should be rejected")
	}
}

func TestExtractFrames_OrderAndCompaction(t *testing.T) {
	sheet := testSheet([]string{
		"##....##",
		"##....##",
	})

	rects := []Rect{
		{Source: GridSource(0), X: 0, Y: 0, W: 2, H: 2},
		{Source: GridSource(1), X: 2, Y: 0, W: 2, H: 2}, // empty
		{Source: GridSource(2), X: 4, Y: 0, W: 2, H: 2}, // empty
		{Source: GridSource(3), X: 6, Y: 0, W: 2, H: 2},
	}

	frames, err := ExtractFrames(sheet, rects, ProcessingSettings{})
	if err != nil {
		t.Fatalf("ExtractFrames failed: %v", err)
	}

	if len(frames) != 2 {
		t.Fatalf("frame count: got %d, want 2", len(frames))
	}
	if frames[0].ID() != "grid-0" || frames[1].ID() != "grid-3" {
		t.Errorf("order: got %s, %s; want grid-0, grid-3", frames[0].ID(), frames[1].ID())
	}
}

func TestExtractFrames_ManyRectsKeepOrder(t *testing.T) {
	// Enough rectangles that the worker pool actually interleaves.
	const cells = 64
	rows := make([]byte, cells)
	for i := range rows {
		rows[i] = '#'
	}
	sheet := testSheet([]string{string(rows)})

	rects := make([]Rect, cells)
	for i := range rects {
		rects[i] = Rect{Source: GridSource(i), X: i, Y: 0, W: 1, H: 1}
	}

	frames, err := ExtractFrames(sheet, rects, ProcessingSettings{})
	if err != nil {
		t.Fatalf("ExtractFrames failed: %v", err)
	}
	if len(frames) != cells {
		t.Fatalf("frame count: got %d, want %d", len(frames), cells)
	}
	for i, f := range frames {
		if f.SourceRect.Source.Ordinal != i {
			t.Fatalf("frame %d out of order: got ordinal %d", i, f.SourceRect.Source.Ordinal)
		}
	}
}

func TestExtractFrames_Empty(t *testing.T) {
	sheet := testSheet([]string{"#"})
	frames, err := ExtractFrames(sheet, nil, ProcessingSettings{})
	if err != nil {
		t.Fatalf("ExtractFrames failed: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("frame count: got %d, want 0", len(frames))
	}
}

func TestExtractFrames_ContractViolationFailsPass(t *testing.T) {
	sheet := testSheet([]string{"##"})
	rects := []Rect{
		{Source: GridSource(0), X: 0, Y: 0, W: 1, H: 1},
		{Source: GridSource(1), X: 0, Y: 0, W: 0, H: 1},
	}

	if _, err := ExtractFrames(sheet, rects, ProcessingSettings{}); err == nil {
		t.Error("pass should fail when a rectangle violates the contract")
	}
}

func TestCollectRects_GridMode(t *testing.T) {
	sheet := testSheet([]string{
		"####",
		"####",
	})

	s := DefaultSettings()
	s.Mode = ModeGrid
	s.Grid = GridSettings{Width: 2, Height: 2}

	rects := CollectRects(sheet, s, nil, nil)
	if len(rects) != 2 {
		t.Fatalf("rect count: got %d, want 2", len(rects))
	}
	if rects[0].ID() != "grid-0" || rects[1].ID() != "grid-1" {
		t.Errorf("ids: got %s, %s", rects[0].ID(), rects[1].ID())
	}
}

func TestCollectRects_IslandsMode(t *testing.T) {
	sheet := testSheet([]string{
		"##..##",
		"##..##",
	})

	s := DefaultSettings()
	s.Mode = ModeIslands
	s.Islands = IslandSettings{MinWidth: 1, MinHeight: 1}

	rects := CollectRects(sheet, s, nil, nil)
	if len(rects) != 2 {
		t.Fatalf("rect count: got %d, want 2", len(rects))
	}
	if rects[0].ID() != "island-0" || rects[1].ID() != "island-1" {
		t.Errorf("ids: got %s, %s", rects[0].ID(), rects[1].ID())
	}
	if rects[0].X != 0 || rects[1].X != 4 {
		t.Errorf("positions: got x=%d and x=%d, want 0 and 4", rects[0].X, rects[1].X)
	}
}

func TestCollectRects_IslandsMode_KeyedMask(t *testing.T) {
	// The two white squares are bridged by magenta. Without keying they are
	// one island; keying magenta out before labeling splits them.
	sheet := testSheet([]string{
		"##MM##",
		"##MM##",
	})

	s := DefaultSettings()
	s.Mode = ModeIslands
	s.Islands = IslandSettings{MinWidth: 1, MinHeight: 1}

	if rects := CollectRects(sheet, s, nil, nil); len(rects) != 1 {
		t.Fatalf("unkeyed rect count: got %d, want 1", len(rects))
	}

	s.Processing.ColorKeyEnabled = true
	s.Processing.ColorKeyColors = []string{"#FF00FF"}
	rects := CollectRects(sheet, s, nil, nil)
	if len(rects) != 2 {
		t.Fatalf("keyed rect count: got %d, want 2", len(rects))
	}

	// Labeling ran on a copy; the caller's sheet is untouched.
	if a := sheet.Alpha(2, 0); a != 255 {
		t.Errorf("sheet mutated by island detection: alpha %d", a)
	}
}

func TestCollectRects_ManualMergedOnTop(t *testing.T) {
	sheet := testSheet([]string{
		"##..",
		"##..",
	})

	s := DefaultSettings()
	s.Mode = ModeIslands
	s.Islands = IslandSettings{MinWidth: 1, MinHeight: 1}

	manual := []Rect{manualRect(1, 0, 2, 2)}
	rects := CollectRects(sheet, s, manual, nil)

	if len(rects) != 2 {
		t.Fatalf("rect count: got %d, want 2", len(rects))
	}
	// Manual rects come after producer output (drawn/considered on top).
	if rects[1].Source.Kind != SourceManual {
		t.Errorf("last rect kind: got %v, want manual", rects[1].Source.Kind)
	}
}

func TestCollectRects_ManualMode(t *testing.T) {
	sheet := testSheet([]string{
		"####",
		"####",
	})

	s := DefaultSettings()
	s.Mode = ModeManual

	manual := []Rect{
		manualRect(0, 0, 2, 2),
		manualRect(0, 0, 0, 2),   // invalid, dropped
		manualRect(10, 10, 2, 2), // fully outside, dropped
		manualRect(3, 0, 4, 2),   // clamped to width 1
	}

	rects := CollectRects(sheet, s, manual, nil)
	if len(rects) != 2 {
		t.Fatalf("rect count: got %d, want 2", len(rects))
	}
	if rects[1].W != 1 {
		t.Errorf("clamped width: got %d, want 1", rects[1].W)
	}
}

func TestCollectRects_HiddenFiltered(t *testing.T) {
	sheet := testSheet([]string{
		"####",
		"####",
	})

	s := DefaultSettings()
	s.Mode = ModeGrid
	s.Grid = GridSettings{Width: 2, Height: 2}

	rects := CollectRects(sheet, s, nil, map[string]bool{"grid-0": true})
	if len(rects) != 1 {
		t.Fatalf("rect count: got %d, want 1", len(rects))
	}
	if rects[0].ID() != "grid-1" {
		t.Errorf("remaining id: got %s, want grid-1", rects[0].ID())
	}
}
