// Package visual derives keywords per slide and attaches an illustrative
// image: either a fixed icon from the icon library or a generated keyword
// glyph diagram.
package visual

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/slidecast/slidecast/fonts"
	"github.com/slidecast/slidecast/summarize"
	"github.com/slidecast/slidecast/textproc"
)

// Strategies. icon_library is a deliberate stub: it always returns the
// default icon, keyword-to-icon matching is not implemented.
const (
	StrategyIconLibrary      = "icon_library"
	StrategySimpleGeneration = "simple_generation"

	defaultIconPath = "assets/icons/default.png"

	slideKeywords = 3
	maxGlyphs     = 5
)

// Palette shared with the video frames: slide background plus the glyph
// color cycle.
const backgroundColor = "#E8F4F8"

var glyphPalette = []string{"#4A90E2", "#50C878", "#F5A623", "#E74C3C", "#9B59B6"}

// Attacher populates slide visuals.
type Attacher struct {
	logger   *slog.Logger
	strategy string
	width    int
	height   int
}

func NewAttacher(logger *slog.Logger, strategy string, width, height int) *Attacher {
	return &Attacher{logger: logger, strategy: strategy, width: width, height: height}
}

// Attach extracts keywords from each slide's title and bullets and attaches
// a visual in place. Generated images land under dir/images.
func (a *Attacher) Attach(slides []summarize.Slide, dir string) error {
	a.logger.Info("generating visuals", "slides", len(slides), "strategy", a.strategy)

	for i := range slides {
		keywords := slideText(&slides[i])

		var path string
		if a.strategy == StrategyIconLibrary {
			path = defaultIconPath
		} else {
			var err error
			path, err = a.generateImage(keywords, dir, slides[i].Number)
			if err != nil {
				return fmt.Errorf("generate visual for slide %d: %w", slides[i].Number, err)
			}
		}

		slides[i].Visual = &summarize.Visual{
			Type:            a.strategy,
			Path:            path,
			KeywordsMatched: keywords,
		}
	}
	return nil
}

func slideText(slide *summarize.Slide) []string {
	text := slide.Title
	for _, b := range slide.Bullets {
		text += " " + b
	}
	return textproc.ExtractKeywords(text, slideKeywords)
}

// generateImage renders keyword-labeled colored circles on the slide
// background palette and saves a per-slide PNG.
func (a *Attacher) generateImage(keywords []string, dir string, slideNum int) (string, error) {
	imageDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	dc := gg.NewContext(a.width, a.height)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	face, err := fonts.Bold(28)
	if err != nil {
		return "", err
	}
	dc.SetFontFace(face)

	glyphs := keywords
	if len(glyphs) > maxGlyphs {
		glyphs = glyphs[:maxGlyphs]
	}
	for i, keyword := range glyphs {
		x := float64(100 + (i*150)%(a.width-200))
		y := float64(100 + (i*100)%(a.height-200))

		dc.SetHexColor(glyphPalette[i%len(glyphPalette)])
		dc.DrawCircle(x+50, y+50, 50)
		dc.FillPreserve()
		dc.SetHexColor("#FFFFFF")
		dc.SetLineWidth(3)
		dc.Stroke()

		if keyword != "" {
			initial := strings.ToUpper(string([]rune(keyword)[0]))
			dc.SetHexColor("#FFFFFF")
			dc.DrawStringAnchored(initial, x+50, y+50, 0.5, 0.5)
		}
	}

	path := filepath.Join(imageDir, fmt.Sprintf("slide_%d.png", slideNum))
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save visual: %w", err)
	}
	return path, nil
}
