// Command spritecut cuts individual sprite frames out of a sprite-sheet
// image and writes them as per-frame files plus a JSON atlas manifest.
//
// Rectangles are discovered by fixed-grid enumeration, automatic island
// detection over the transparency mask, or supplied manually; frames are
// optionally background-keyed and trimmed before export.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelfold/spritecut/internal/atlas"
	"github.com/pixelfold/spritecut/internal/imaging"
	"github.com/pixelfold/spritecut/internal/sprite"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// rectList collects repeated -rect flags of the form "x,y,w,h".
type rectList []sprite.Rect

func (r *rectList) String() string {
	parts := make([]string, 0, len(*r))
	for _, rect := range *r {
		parts = append(parts, fmt.Sprintf("%d,%d,%d,%d", rect.X, rect.Y, rect.W, rect.H))
	}
	return strings.Join(parts, ";")
}

func (r *rectList) Set(value string) error {
	var x, y, w, h int
	if _, err := fmt.Sscanf(value, "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
		return fmt.Errorf("expected x,y,w,h: %w", err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("rect %s must have positive width and height", value)
	}
	*r = append(*r, sprite.Rect{Source: sprite.ManualSource(), X: x, Y: y, W: w, H: h})
	return nil
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("spritecut %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		in       = flag.String("in", "", "sprite sheet image (png, jpeg, gif, webp)")
		outDir   = flag.String("out", "frames", "output directory for frame files")
		settings = flag.String("settings", "", "optional JSON settings file; flags override it")

		mode = flag.String("mode", "", "rectangle discovery mode: grid, islands, or manual")

		gridW    = flag.Int("grid-w", 0, "grid cell width")
		gridH    = flag.Int("grid-h", 0, "grid cell height")
		marginX  = flag.Int("margin-x", 0, "grid left margin")
		marginY  = flag.Int("margin-y", 0, "grid top margin")
		spacingX = flag.Int("spacing-x", 0, "horizontal gap between grid cells")
		spacingY = flag.Int("spacing-y", 0, "vertical gap between grid cells")

		minW = flag.Int("min-w", 0, "minimum island width")
		minH = flag.Int("min-h", 0, "minimum island height")

		trim      = flag.Bool("trim", false, "trim frames to their opaque bounds")
		keys      = flag.String("key", "", "comma-separated background colors to key out, e.g. #FF00FF,00FF00")
		tolerance = flag.Float64("tolerance", -1, "color key tolerance (RGB distance)")
		feather   = flag.Float64("feather", -1, "color key feather band beyond the tolerance")

		format   = flag.String("format", "png", "output format: png or webp")
		quality  = flag.Float64("quality", 90, "webp quality (0-100), ignored for png")
		lossless = flag.Bool("lossless", false, "lossless webp encoding")
		scale    = flag.Float64("scale", 1.0, "output scale factor")

		hide     = flag.String("hide", "", "comma-separated rectangle ids to exclude, e.g. grid-3,island-0")
		manifest = flag.String("atlas", "", "atlas manifest path (default <out>/atlas.json)")
	)
	var manual rectList
	flag.Var(&manual, "rect", "manual rectangle as x,y,w,h (repeatable)")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "spritecut: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := sprite.DefaultSettings()
	if *settings != "" {
		loaded, err := sprite.LoadSettings(*settings)
		if err != nil {
			log.Fatalf("Settings error: %v", err)
		}
		cfg = *loaded
	}
	applyFlags(&cfg, *mode, *gridW, *gridH, *marginX, *marginY, *spacingX, *spacingY,
		*minW, *minH, *trim, *keys, *tolerance, *feather)

	if err := run(*in, *outDir, *manifest, cfg, manual, parseHidden(*hide), imaging.EncodeOptions{
		Format:   *format,
		Scale:    *scale,
		Quality:  float32(*quality),
		Lossless: *lossless,
	}); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
}

// applyFlags layers explicitly set flag values over the settings file.
// Zero values mean "not set" for the geometry flags, which is safe because a
// zero cell size or threshold is never a useful override.
func applyFlags(cfg *sprite.Settings, mode string, gridW, gridH, marginX, marginY, spacingX, spacingY,
	minW, minH int, trim bool, keys string, tolerance, feather float64) {
	if mode != "" {
		cfg.Mode = sprite.Mode(mode)
	}
	if gridW > 0 {
		cfg.Grid.Width = gridW
	}
	if gridH > 0 {
		cfg.Grid.Height = gridH
	}
	if marginX > 0 {
		cfg.Grid.MarginX = marginX
	}
	if marginY > 0 {
		cfg.Grid.MarginY = marginY
	}
	if spacingX > 0 {
		cfg.Grid.SpacingX = spacingX
	}
	if spacingY > 0 {
		cfg.Grid.SpacingY = spacingY
	}
	if minW > 0 {
		cfg.Islands.MinWidth = minW
	}
	if minH > 0 {
		cfg.Islands.MinHeight = minH
	}
	if trim {
		cfg.Processing.AutoTrim = true
	}
	if keys != "" {
		cfg.Processing.ColorKeyEnabled = true
		cfg.Processing.ColorKeyColors = strings.Split(keys, ",")
	}
	if tolerance >= 0 {
		cfg.Processing.ColorKeyTolerance = tolerance
	}
	if feather >= 0 {
		cfg.Processing.ColorKeyFeather = feather
	}
}

func parseHidden(list string) map[string]bool {
	hidden := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := sprite.ParseRectID(id); !ok {
			log.Printf("Ignoring malformed rectangle id %q", id)
			continue
		}
		hidden[id] = true
	}
	return hidden
}

func run(in, outDir, manifestPath string, cfg sprite.Settings, manual []sprite.Rect,
	hidden map[string]bool, enc imaging.EncodeOptions) error {
	switch cfg.Mode {
	case sprite.ModeGrid, sprite.ModeIslands, sprite.ModeManual:
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	cache := imaging.NewImageCache()
	info, err := imaging.LoadSheetInfo(cache, in)
	if err != nil {
		return err
	}
	img, err := cache.Load(in)
	if err != nil {
		return err
	}
	sheet := imaging.BufferFromImage(img)
	log.Printf("Loaded %s: %dx%d %s", in, info.Width, info.Height, info.Format)

	rects := sprite.CollectRects(sheet, cfg, manual, hidden)
	log.Printf("Collected %d candidate rectangles (mode %s)", len(rects), cfg.Mode)

	frames, err := sprite.ExtractFrames(sheet, rects, cfg.Processing)
	if err != nil {
		return err
	}
	log.Printf("Extracted %d frames (%d rectangles were empty)", len(frames), len(rects)-len(frames))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fileName := func(id string) string { return id + enc.Ext() }
	for _, f := range frames {
		path := filepath.Join(outDir, fileName(f.ID()))
		if err := imaging.EncodeFile(path, f.Pixels, enc); err != nil {
			return fmt.Errorf("frame %s: %w", f.ID(), err)
		}
	}

	if manifestPath == "" {
		manifestPath = filepath.Join(outDir, "atlas.json")
	}
	m := atlas.Build(frames, fileName, Version, filepath.Base(in), info.Width, info.Height)
	if err := m.WriteFile(manifestPath); err != nil {
		return err
	}
	log.Printf("Wrote %d frame files and %s", len(frames), manifestPath)
	return nil
}
