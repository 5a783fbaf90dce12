package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	colTrackBG      = color.RGBA{0xAB, 0xC7, 0x98, 0xFF}
	colRegionFill   = color.RGBA{0xF1, 0xDE, 0xDC, 0xFF}
	colRegionBorder = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colHitZone      = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colNote         = color.RGBA{0x22, 0x74, 0xA5, 0xFF}

	colBarBG        = color.RGBA{0x2B, 0x41, 0x62, 0xFF}
	colButtonBorder = color.RGBA{240, 240, 240, 255}
	colPlayButton   = color.RGBA{40, 200, 40, 255}
	colStopButton   = color.RGBA{200, 40, 40, 255}
	colTempoBox     = color.RGBA{40, 40, 40, 255}
	colError        = color.RGBA{255, 60, 60, 255}
	colorWhite      = color.White
)

// TempoBoxStyle is the look of the transport's tempo input.
var TempoBoxStyle = TextInputStyle{Fill: colTempoBox, Border: colButtonBorder}

// TextInputStyle styles a text input box.
type TextInputStyle struct {
	Fill   color.Color
	Border color.Color
}

// DrawAnimated renders the box with its border brightened by anim (0..1).
func (s TextInputStyle) DrawAnimated(dst *ebiten.Image, r Rect, focused bool, anim float64) {
	drawButton(dst, r, s.Fill, s.Border, false)
	if focused || anim > 0 {
		a := anim
		if focused {
			a = 1
		}
		drawRect(dst, r, fadeColor(colorWhite, a), false)
	}
}

// fadeColor scales c by a (0..1). color.RGBA is premultiplied, so every
// channel fades, not just alpha.
func fadeColor(c color.Color, a float64) color.Color {
	r, g, b, al := c.RGBA()
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	f := func(v uint32) uint8 { return uint8(float64(v>>8) * a) }
	return color.RGBA{f(r), f(g), f(b), f(al)}
}
