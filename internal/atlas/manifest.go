// Package atlas serializes extracted frame metadata to a sprite-atlas
// manifest.
//
// The manifest follows the common TexturePacker-style JSON layout consumed
// by most game engines: per-frame geometry under "frames" keyed by file
// name, sheet-level info under "meta". Since frames are exported as
// individual files rather than re-packed, each frame's "frame" rect starts
// at the origin of its own file.
package atlas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pixelfold/spritecut/internal/sprite"
)

// RectSpec is a positioned rectangle in manifest coordinates.
type RectSpec struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// SizeSpec is a bare extent.
type SizeSpec struct {
	W int `json:"w"`
	H int `json:"h"`
}

// FrameEntry is one frame's geometry record.
type FrameEntry struct {
	// Frame is the pixel rect inside the exported file. Always at the
	// origin, sized to the (possibly trimmed) output.
	Frame RectSpec `json:"frame"`

	// Rotated is always false; frames are never rotated on export.
	Rotated bool `json:"rotated"`

	// Trimmed reports whether transparent borders were cropped away.
	Trimmed bool `json:"trimmed"`

	// SpriteSourceSize places the trimmed content inside the untrimmed
	// source rectangle.
	SpriteSourceSize RectSpec `json:"spriteSourceSize"`

	// SourceSize is the untrimmed source rectangle size.
	SourceSize SizeSpec `json:"sourceSize"`

	// SourceRect is where the frame was cut from the sheet. Engines ignore
	// this; it preserves provenance for round-tripping.
	SourceRect RectSpec `json:"sourceRect"`
}

// Meta is the sheet-level manifest header.
type Meta struct {
	App     string   `json:"app"`
	Version string   `json:"version"`
	Image   string   `json:"image"`
	Size    SizeSpec `json:"size"`
}

// Manifest is the full atlas document.
type Manifest struct {
	Frames map[string]FrameEntry `json:"frames"`
	Meta   Meta                  `json:"meta"`
}

// Build assembles a manifest for a set of extracted frames.
//
// fileName maps a frame id to the name of its exported file; that name is
// the key in the frames table, matching how engines look frames up. sheet
// names the original sheet image and sheetW/sheetH are its dimensions.
func Build(frames []*sprite.Frame, fileName func(id string) string, appVersion, sheet string, sheetW, sheetH int) *Manifest {
	m := &Manifest{
		Frames: make(map[string]FrameEntry, len(frames)),
		Meta: Meta{
			App:     "spritecut",
			Version: appVersion,
			Image:   sheet,
			Size:    SizeSpec{W: sheetW, H: sheetH},
		},
	}

	for _, f := range frames {
		m.Frames[fileName(f.ID())] = FrameEntry{
			Frame: RectSpec{
				W: f.TrimmedSize.W,
				H: f.TrimmedSize.H,
			},
			Trimmed: f.Trimmed(),
			SpriteSourceSize: RectSpec{
				X: f.TrimOffset.X,
				Y: f.TrimOffset.Y,
				W: f.TrimmedSize.W,
				H: f.TrimmedSize.H,
			},
			SourceSize: SizeSpec{
				W: f.OriginalSize.W,
				H: f.OriginalSize.H,
			},
			SourceRect: RectSpec{
				X: f.SourceRect.X,
				Y: f.SourceRect.Y,
				W: f.SourceRect.W,
				H: f.SourceRect.H,
			},
		}
	}
	return m
}

// Write encodes the manifest as indented JSON.
func (m *Manifest) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}

// WriteFile writes the manifest to a file, creating or truncating path.
func (m *Manifest) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	defer f.Close()

	if err := m.Write(f); err != nil {
		return err
	}
	return f.Close()
}
