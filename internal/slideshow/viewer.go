package slideshow

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/iburimskiy/sketchdeck/internal/config"
	"github.com/iburimskiy/sketchdeck/internal/imageload"
	"github.com/iburimskiy/sketchdeck/internal/session"
)

var (
	viewerBackground = color.RGBA{R: 8, G: 8, B: 10, A: 255}
	trackingDot      = color.RGBA{R: 230, G: 70, B: 70, A: 255}
)

// viewer shows the current image of a running session.
type viewer struct {
	g       *Game
	session *session.Session
	loader  *imageload.Loader
	ctx     context.Context
	cancel  context.CancelFunc

	texture     *ebiten.Image
	textureName string
	inflight    string
	loadErr     error
	errName     string

	prev, closeBtn, pause, skip, next *button
}

func newViewer(g *Game, s *session.Session) (*viewer, error) {
	loader, err := imageload.New(g.cfg.Paths.ImageRoot, g.cfg.Slideshow.MaxTextureSize, nil, g.logger)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	v := &viewer{
		g:        g,
		session:  s,
		loader:   loader,
		ctx:      ctx,
		cancel:   cancel,
		prev:     newButton("< Back"),
		closeBtn: newButton("Close"),
		pause:    newButton("Pause"),
		skip:     newButton("Skip"),
		next:     newButton("Next >"),
	}
	v.skip.base = skipNormal
	return v, nil
}

func (v *viewer) layout() {
	y := float64(v.g.height) - config.ControlBarHeight + (config.ControlBarHeight-config.ButtonHeight)/2
	boxes := rowOf(5, config.ButtonWidth, config.ButtonHeight, config.ButtonGap, float64(v.g.width), y)
	for i, b := range []*button{v.prev, v.closeBtn, v.pause, v.skip, v.next} {
		b.bounds = boxes[i]
	}
}

func (v *viewer) update(mouseX, mouseY int) {
	v.drainLoads()
	select {
	case stop := <-v.g.dialogs.limitAnswers:
		v.session.ResolveLimit(stop)
	default:
	}

	v.layout()
	view := v.session.Snapshot()

	v.prev.disabled = !view.CanGoBack
	v.pause.disabled = !view.TimerEnabled || view.LimitPending
	v.skip.disabled = !view.CanAdvance()
	v.next.disabled = !view.CanAdvance()
	v.closeBtn.disabled = view.LimitPending
	v.pause.label = "Pause"
	if view.Paused() {
		v.pause.label = "Resume"
	}

	closeClicked := v.closeBtn.update(mouseX, mouseY)
	nextClicked := v.next.update(mouseX, mouseY)
	skipClicked := v.skip.update(mouseX, mouseY)
	prevClicked := v.prev.update(mouseX, mouseY)
	pauseClicked := v.pause.update(mouseX, mouseY)

	switch {
	case closeClicked || inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if !view.LimitPending {
			v.session.Close()
			return
		}
	case nextClicked || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyN):
		v.session.Next()
	case skipClicked || inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.session.Skip()
	case prevClicked || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.session.Back()
	case pauseClicked || inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.session.TogglePause()
	}

	v.session.Update()
	v.requestCurrent()
}

// requestCurrent starts a load for the image the session is waiting on.
func (v *viewer) requestCurrent() {
	view := v.session.Snapshot()
	if !view.AwaitingLoad || view.Image == "" || v.inflight == view.Image {
		return
	}
	if view.Image == v.textureName || view.Image == v.errName {
		v.session.ImageLoaded(view.Image)
		return
	}
	v.inflight = view.Image
	v.loader.Request(v.ctx, view.Image)
}

// drainLoads applies finished loads. Results for images that are no longer
// current are discarded.
func (v *viewer) drainLoads() {
	for {
		select {
		case res := <-v.loader.Results():
			v.applyLoad(res)
		default:
			return
		}
	}
}

func (v *viewer) applyLoad(res imageload.Result) {
	if res.Name == v.inflight {
		v.inflight = ""
	}
	if res.Name != v.session.Snapshot().Image {
		return
	}
	if res.Err != nil {
		v.g.logger.Warn("load image", zap.String("image", res.Name), zap.Error(res.Err))
		v.loadErr = res.Err
		v.errName = res.Name
	} else {
		if v.texture != nil {
			v.texture.Deallocate()
		}
		v.texture = ebiten.NewImageFromImage(res.Image)
		v.textureName = res.Name
		v.loadErr = nil
		v.errName = ""
	}
	v.session.ImageLoaded(res.Name)
}

func (v *viewer) draw(screen *ebiten.Image) {
	screen.Fill(viewerBackground)
	view := v.session.Snapshot()
	area := rect{
		x: 0,
		y: config.CountdownBarHeight,
		w: float64(v.g.width),
		h: float64(v.g.height) - config.ControlBarHeight - config.CountdownBarHeight,
	}

	switch {
	case view.Empty:
		v.centerText(screen, area, "No images in the selected categories")
	case view.Image == v.errName && v.loadErr != nil:
		v.centerText(screen, area, "Could not load "+view.Image)
	case view.Image == v.textureName && v.texture != nil:
		b := v.texture.Bounds()
		scale, dst := fitRect(b.Dx(), b.Dy(), area)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(dst.x, dst.y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(v.texture, op)
	default:
		v.centerText(screen, area, "Loading...")
	}

	if view.TimerEnabled {
		w := float32(float64(v.g.width) * view.Fraction)
		vector.DrawFilledRect(screen, 0, 0, w, config.CountdownBarHeight, countdownColor(view.Fraction, 255), false)

		badge := formatTimer(view.DisplaySeconds)
		if view.Paused() {
			badge += " paused"
		}
		box := rect{x: float64(v.g.width) - float64(len(badge)*glyphWidth) - 36, y: config.CountdownBarHeight + 12, h: 24}
		box.w = float64(len(badge)*glyphWidth) + 24
		drawPanel(screen, box)
		ebitenutil.DebugPrintAt(screen, badge, int(box.x)+12, int(box.y)+4)
	}

	bar := rect{x: 0, y: float64(v.g.height) - config.ControlBarHeight, w: float64(v.g.width), h: config.ControlBarHeight}
	drawPanel(screen, bar)
	for _, b := range []*button{v.prev, v.closeBtn, v.pause, v.skip, v.next} {
		b.draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, view.Counter(), 16, int(bar.y)+20)
	if view.Tracking {
		x := float32(v.g.width - 24)
		vector.DrawFilledCircle(screen, x, float32(bar.y)+config.ControlBarHeight/2, 6, trackingDot, true)
	}
	if view.LimitPending {
		v.centerText(screen, area, "Limit reached")
	}
}

func (v *viewer) centerText(screen *ebiten.Image, area rect, msg string) {
	x := int(area.x + (area.w-float64(len(msg)*glyphWidth))/2)
	y := int(area.y + area.h/2 - 8)
	ebitenutil.DebugPrintAt(screen, msg, x, y)
}

// dispose cancels pending loads and frees the texture.
func (v *viewer) dispose() {
	v.cancel()
	if v.texture != nil {
		v.texture.Deallocate()
		v.texture = nil
	}
}
