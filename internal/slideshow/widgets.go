package slideshow

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const glyphWidth = 6 // debug font advance

var (
	buttonNormal   = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	buttonHover    = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	buttonPress    = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	buttonDisabled = color.RGBA{R: 60, G: 64, B: 74, A: 255}
	buttonBorder   = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	skipNormal     = color.RGBA{R: 200, G: 80, B: 140, A: 255}
	panelColor     = color.RGBA{R: 20, G: 25, B: 35, A: 220}
	panelBorder    = color.RGBA{R: 60, G: 70, B: 90, A: 255}
)

// button is a clickable box. A click registers when the mouse is pressed and
// released while over it.
type button struct {
	label    string
	bounds   rect
	base     color.RGBA
	hovered  bool
	pressed  bool
	disabled bool
}

func newButton(label string) *button {
	return &button{label: label, base: buttonNormal}
}

// update processes the mouse for this frame and reports a click.
func (b *button) update(mouseX, mouseY int) bool {
	b.hovered = !b.disabled && b.bounds.contains(mouseX, mouseY)

	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.pressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		clicked := b.pressed && b.hovered
		b.pressed = false
		return clicked
	}
	return false
}

func (b *button) draw(screen *ebiten.Image) {
	var bg color.RGBA
	switch {
	case b.disabled:
		bg = buttonDisabled
	case b.pressed:
		bg = buttonPress
	case b.hovered:
		bg = buttonHover
	default:
		bg = b.base
	}

	x, y, w, h := float32(b.bounds.x), float32(b.bounds.y), float32(b.bounds.w), float32(b.bounds.h)
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 2, buttonBorder, false)

	textWidth := len(b.label) * glyphWidth
	textX := int(b.bounds.x) + (int(b.bounds.w)-textWidth)/2
	textY := int(b.bounds.y) + (int(b.bounds.h)-16)/2
	ebitenutil.DebugPrintAt(screen, b.label, textX, textY)
}

// drawPanel draws the translucent background used behind overlays.
func drawPanel(screen *ebiten.Image, r rect) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), panelColor, false)
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1, panelBorder, false)
}

// drawCheckbox draws a small box, filled when checked.
func drawCheckbox(screen *ebiten.Image, x, y float32, checked bool) {
	const size = 12
	vector.StrokeRect(screen, x, y, size, size, 1, buttonBorder, false)
	if checked {
		vector.DrawFilledRect(screen, x+3, y+3, size-6, size-6, buttonBorder, false)
	}
}

func drawPanelFill(screen *ebiten.Image, r rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), c, false)
}
