// Package fonts exposes the embedded Go typefaces used for all rasterized
// text (keyword glyphs, video frames), so no font file is needed on disk.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	once        sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	parseErr    error
)

func load() {
	regularFont, parseErr = opentype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	boldFont, parseErr = opentype.Parse(gobold.TTF)
}

// Regular returns a Go Regular face at the given point size.
func Regular(size float64) (font.Face, error) {
	return face(false, size)
}

// Bold returns a Go Bold face at the given point size.
func Bold(size float64) (font.Face, error) {
	return face(true, size)
}

func face(bold bool, size float64) (font.Face, error) {
	once.Do(load)
	if parseErr != nil {
		return nil, fmt.Errorf("parse embedded font: %w", parseErr)
	}
	f := regularFont
	if bold {
		f = boldFont
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}
