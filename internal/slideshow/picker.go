package slideshow

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/sketchdeck/internal/catalog"
	"github.com/iburimskiy/sketchdeck/internal/config"
)

const (
	panelWidth   = 280
	smallButton  = 32
	rowButtonGap = 8
)

var (
	pickerBackground = color.RGBA{R: 16, G: 18, B: 24, A: 255}
	rowHover         = color.RGBA{R: 40, G: 46, B: 60, A: 255}
)

type pickerRow struct {
	heading  bool
	group    string
	category string
	label    string
	count    int
}

// picker is the category selection screen.
type picker struct {
	g      *Game
	rows   []pickerRow
	scroll float64
	hover  int

	limitDown, limitUp *button
	timerDown, timerUp *button
	recent             []*button
	selectAll, clear   *button
	togglButton        *button
	fullscreen         *button
	start              *button
}

func newPicker(g *Game) *picker {
	p := &picker{
		g:           g,
		hover:       -1,
		limitDown:   newButton("-"),
		limitUp:     newButton("+"),
		timerDown:   newButton("-"),
		timerUp:     newButton("+"),
		selectAll:   newButton("All"),
		clear:       newButton("None"),
		togglButton: newButton("Toggl"),
		fullscreen:  newButton("Fullscreen"),
		start:       newButton("Start"),
	}
	for _, group := range g.catalog.Groups() {
		p.rows = append(p.rows, pickerRow{heading: true, group: group.Name, label: group.Title})
		for _, category := range group.Categories {
			p.rows = append(p.rows, pickerRow{
				group:    group.Name,
				category: category,
				label:    catalog.Label(group.Name, category),
				count:    len(g.catalog.Images(category)),
			})
		}
	}
	return p
}

func (p *picker) listTop() float64 { return config.PickerMarginY + 32 }

func (p *picker) rowRect(i int) rect {
	return rect{
		x: config.PickerMarginX,
		y: p.listTop() + float64(i*config.PickerLineHeight) - p.scroll,
		w: float64(p.g.width - panelWidth - 3*config.PickerMarginX),
		h: config.PickerLineHeight,
	}
}

func (p *picker) listBottom() float64 { return float64(p.g.height - config.PickerMarginY) }

// rowVisible reports whether row i lies fully inside the scrolled list area.
func (p *picker) rowVisible(i int) bool {
	r := p.rowRect(i)
	return r.y >= p.listTop()-1 && r.y+r.h <= p.listBottom()
}

// rowAt returns the visible row under the cursor, or -1.
func (p *picker) rowAt(mouseX, mouseY int) int {
	if mouseY < int(p.listTop()) {
		return -1
	}
	for i := range p.rows {
		if p.rowVisible(i) && p.rowRect(i).contains(mouseX, mouseY) {
			return i
		}
	}
	return -1
}

func (p *picker) layout() {
	x := float64(p.g.width - panelWidth - config.PickerMarginX)
	y := p.listTop()
	line := float64(config.ButtonHeight + rowButtonGap)

	p.limitDown.bounds = rect{x: x + panelWidth - 2*smallButton - rowButtonGap, y: y, w: smallButton, h: smallButton}
	p.limitUp.bounds = rect{x: x + panelWidth - smallButton, y: y, w: smallButton, h: smallButton}
	y += line
	p.timerDown.bounds = rect{x: x + panelWidth - 2*smallButton - rowButtonGap, y: y, w: smallButton, h: smallButton}
	p.timerUp.bounds = rect{x: x + panelWidth - smallButton, y: y, w: smallButton, h: smallButton}
	y += line

	recent := p.g.settings.RecentTimers
	if len(p.recent) != len(recent) {
		p.recent = make([]*button, len(recent))
		for i := range p.recent {
			p.recent[i] = newButton("")
		}
	}
	chipW := float64(56)
	for i, b := range p.recent {
		b.label = formatTimer(recent[i])
		col := i % 4
		row := i / 4
		b.bounds = rect{x: x + float64(col)*(chipW+rowButtonGap), y: y + float64(row)*(smallButton+rowButtonGap), w: chipW, h: smallButton}
	}
	if len(p.recent) > 0 {
		y += float64((len(p.recent)+3)/4) * (smallButton + rowButtonGap)
	}
	y += rowButtonGap

	half := (panelWidth - rowButtonGap) / 2.0
	p.selectAll.bounds = rect{x: x, y: y, w: half, h: config.ButtonHeight}
	p.clear.bounds = rect{x: x + half + rowButtonGap, y: y, w: half, h: config.ButtonHeight}
	y += line
	p.togglButton.bounds = rect{x: x, y: y, w: half, h: config.ButtonHeight}
	p.fullscreen.bounds = rect{x: x + half + rowButtonGap, y: y, w: half, h: config.ButtonHeight}
	y += line + rowButtonGap
	p.start.bounds = rect{x: x, y: y, w: panelWidth, h: config.ButtonHeight + 8}
}

func (p *picker) update(mouseX, mouseY int) {
	s := p.g.settings
	p.layout()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		p.g.quit = true
		return
	}

	_, dy := ebiten.Wheel()
	if dy != 0 {
		p.scroll -= dy * config.PickerLineHeight * 3
	}
	maxScroll := float64(len(p.rows)*config.PickerLineHeight) - float64(p.g.height) + p.listTop() + config.PickerMarginY
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}
	if p.scroll < 0 {
		p.scroll = 0
	}

	p.hover = p.rowAt(mouseX, mouseY)
	if p.hover >= 0 && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.toggleRow(p.rows[p.hover])
	}

	p.start.disabled = len(p.g.catalog.Select(s.SelectedCategories)) == 0
	p.togglButton.label = "Toggl: off"
	if s.TogglConfigured() {
		p.togglButton.label = "Toggl: on"
	}
	p.togglButton.disabled = p.g.togglBusy

	changed := false
	if p.limitDown.update(mouseX, mouseY) {
		s.Limit = stepLimit(s.Limit, -1)
		changed = true
	}
	if p.limitUp.update(mouseX, mouseY) {
		s.Limit = stepLimit(s.Limit, 1)
		changed = true
	}
	if p.timerDown.update(mouseX, mouseY) {
		s.TimerSeconds = stepTimer(s.TimerSeconds, -1)
		changed = true
	}
	if p.timerUp.update(mouseX, mouseY) {
		s.TimerSeconds = stepTimer(s.TimerSeconds, 1)
		changed = true
	}
	for i, b := range p.recent {
		if b.update(mouseX, mouseY) && i < len(s.RecentTimers) {
			s.TimerSeconds = s.RecentTimers[i]
			changed = true
		}
	}
	if p.selectAll.update(mouseX, mouseY) {
		s.SelectedCategories = p.g.catalog.Categories()
		changed = true
	}
	if p.clear.update(mouseX, mouseY) {
		s.SelectedCategories = nil
		changed = true
	}
	if changed {
		p.g.saveSettings()
	}

	if p.togglButton.update(mouseX, mouseY) {
		if s.TogglConfigured() {
			p.g.dialogs.confirmDisconnect()
		} else {
			p.g.dialogs.askAPIKey()
		}
	}
	if p.fullscreen.update(mouseX, mouseY) {
		p.g.toggleFullscreen()
	}
	if p.start.update(mouseX, mouseY) || (!p.start.disabled && inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		p.g.startSession()
	}
}

// toggleRow flips a category, or a whole group when its heading is clicked.
func (p *picker) toggleRow(row pickerRow) {
	s := p.g.settings
	if !row.heading {
		s.ToggleCategory(row.category)
		p.g.saveSettings()
		return
	}

	var members []string
	allSelected := true
	for _, r := range p.rows {
		if r.heading || r.group != row.group {
			continue
		}
		members = append(members, r.category)
		if !s.Selected(r.category) {
			allSelected = false
		}
	}
	for _, category := range members {
		if s.Selected(category) == allSelected {
			s.ToggleCategory(category)
		}
	}
	p.g.saveSettings()
}

func (p *picker) draw(screen *ebiten.Image) {
	screen.Fill(pickerBackground)
	s := p.g.settings

	images := len(p.g.catalog.Select(s.SelectedCategories))
	header := fmt.Sprintf("%d images selected from %d categories", images, len(s.SelectedCategories))
	if p.g.catalog.Len() == 0 {
		header = "No images found in " + p.g.cfg.Paths.Catalog
	}
	ebitenutil.DebugPrintAt(screen, header, config.PickerMarginX, config.PickerMarginY)

	for i, row := range p.rows {
		if !p.rowVisible(i) {
			continue
		}
		r := p.rowRect(i)
		if i == p.hover {
			drawPanelFill(screen, r, rowHover)
		}
		if row.heading {
			ebitenutil.DebugPrintAt(screen, row.label, int(r.x), int(r.y)+1)
			continue
		}
		drawCheckbox(screen, float32(r.x+12), float32(r.y+3), s.Selected(row.category))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%d)", row.label, row.count), int(r.x)+32, int(r.y)+1)
	}

	x := p.g.width - panelWidth - config.PickerMarginX
	top := p.listTop()
	drawPanel(screen, rect{
		x: float64(x - 12), y: top - 12,
		w: panelWidth + 24, h: p.start.bounds.y + p.start.bounds.h - top + 24,
	})

	limit := "off"
	if s.Limit > 0 {
		limit = strconv.Itoa(s.Limit)
	}
	ebitenutil.DebugPrintAt(screen, "Limit: "+limit, x, int(p.limitDown.bounds.y)+8)
	ebitenutil.DebugPrintAt(screen, "Timer: "+formatTimer(s.TimerSeconds), x, int(p.timerDown.bounds.y)+8)

	for _, b := range []*button{p.limitDown, p.limitUp, p.timerDown, p.timerUp, p.selectAll, p.clear, p.togglButton, p.fullscreen, p.start} {
		b.draw(screen)
	}
	for _, b := range p.recent {
		b.draw(screen)
	}

	help := "Click a category to toggle it, a heading for the whole group. Enter: start, F11: fullscreen, Esc: quit"
	ebitenutil.DebugPrintAt(screen, help, config.PickerMarginX, p.g.height-config.PickerMarginY+4)
}
