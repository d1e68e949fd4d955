package video

import (
	"strings"

	"github.com/fogleman/gg"

	"github.com/slidecast/slidecast/deck"
	"github.com/slidecast/slidecast/fonts"
)

// Frame palette, shared with the generated slide visuals.
const (
	frameBackground = "#E8F4F8"
	accentColor     = "#4A90E2"
	bodyColor       = "#2C3E50"
)

// Frame layout, tuned for the 1920x1080 default and scaled nowhere: ffmpeg
// rescales the encoded stream to the configured resolution.
const (
	titleFontSize   = 64
	bodyFontSize    = 32
	captionFontSize = 28

	titleY        = 150.0
	contentX      = 250.0
	contentTopY   = 350.0
	contentBottom = 100.0 // reserved margin at the frame's lower edge
	wrapMargin    = 600.0

	lineHeightFirst = 60.0
	lineHeightWrap  = 45.0
	itemSpacing     = 30.0

	captionBoxHeight = 60.0
)

// Caption texts for lost-narration playback. Each slide opens with the
// unavailability notice, then a shorter prompt takes over for the remainder
// of the slide's time.
const (
	captionUnavailable = "Text to Speech unavailable - displaying text captions"
	captionDefault     = "View the slide content above"
)

// renderFrame draws one slide onto a fresh canvas and writes it as PNG.
func (g *Generator) renderFrame(slide deck.SlideText, caption, path string) error {
	dc := gg.NewContext(g.opts.Width, g.opts.Height)
	dc.SetHexColor(frameBackground)
	dc.Clear()

	w := float64(g.opts.Width)
	h := float64(g.opts.Height)

	titleFace, err := fonts.Bold(titleFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(titleFace)
	dc.SetHexColor(accentColor)
	dc.DrawStringAnchored(slide.Title, w/2, titleY, 0.5, 0.5)

	bodyFace, err := fonts.Regular(bodyFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(bodyFace)

	y := contentTopY
	for _, line := range slide.Content {
		if y > h-contentBottom {
			break
		}
		text, isBullet := strings.CutPrefix(line, "• ")
		x := contentX
		if isBullet {
			dc.SetHexColor(accentColor)
			dc.DrawString("•", x, y)
			x += 40
		}
		dc.SetHexColor(bodyColor)
		wrapped := dc.WordWrap(text, w-wrapMargin)
		for j, part := range wrapped {
			if y > h-contentBottom {
				break
			}
			dc.DrawString(part, x, y)
			if j == 0 {
				y += lineHeightFirst
			} else {
				y += lineHeightWrap
			}
		}
		y += itemSpacing
	}

	if caption != "" {
		if err := g.drawCaption(dc, caption, w, h); err != nil {
			return err
		}
	}

	return dc.SavePNG(path)
}

// drawCaption draws a bordered caption box along the frame's lower edge.
func (g *Generator) drawCaption(dc *gg.Context, text string, w, h float64) error {
	face, err := fonts.Regular(captionFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	boxY := h - captionBoxHeight
	dc.SetHexColor("#FFFFFF")
	dc.DrawRectangle(0, boxY-captionBoxHeight/2, w, captionBoxHeight)
	dc.Fill()
	dc.SetHexColor(accentColor)
	dc.SetLineWidth(2)
	dc.DrawRectangle(0, boxY-captionBoxHeight/2, w, captionBoxHeight)
	dc.Stroke()

	dc.SetHexColor(bodyColor)
	dc.DrawStringAnchored(text, w/2, boxY, 0.5, 0.5)
	return nil
}
