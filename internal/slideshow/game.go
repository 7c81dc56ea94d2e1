// Package slideshow is the ebiten front end: a category picker and an image
// viewer sharing one window.
package slideshow

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/sketchdeck/internal/audio"
	"github.com/iburimskiy/sketchdeck/internal/catalog"
	"github.com/iburimskiy/sketchdeck/internal/config"
	"github.com/iburimskiy/sketchdeck/internal/session"
	"github.com/iburimskiy/sketchdeck/internal/settings"
	"github.com/iburimskiy/sketchdeck/internal/toggl"
)

const (
	overlayMessageDuration = config.OverlayMessageSeconds * time.Second
	storeTimeout           = 5 * time.Second
	trackerDrainTimeout    = 5 * time.Second
)

// Store persists settings and finished sessions.
type Store interface {
	settings.KV
	AddSession(ctx context.Context, rec settings.SessionRecord) error
}

// Options wires the game to its collaborators.
type Options struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Settings *settings.Settings
	Store    Store
	Player   audio.Player
	Logger   *zap.Logger
	// AutoStart opens the viewer with the stored selection right away.
	AutoStart bool
}

type screenKind int

const (
	screenPicker screenKind = iota
	screenViewer
)

type togglResult struct {
	key       string
	workspace int64
	err       error
}

// Game implements ebiten.Game.
type Game struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	settings *settings.Settings
	store    Store
	player   audio.Player
	logger   *zap.Logger
	dialogs  *dialogs

	screen screenKind
	picker *picker
	viewer *viewer

	tracker      session.Tracker
	closed       []*session.Session
	togglResults chan togglResult
	togglBusy    bool

	width, height int
	unlocked      bool
	quit          bool

	fullscreen bool
	savedWinW  int
	savedWinH  int

	overlayMessage     string
	overlayMessageTime time.Time
}

// New builds the game. Call Run to open the window.
func New(opts Options) (*Game, error) {
	if opts.Config == nil || opts.Settings == nil || opts.Store == nil {
		return nil, errors.New("slideshow: config, settings and store are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Build(nil)
	}
	player := opts.Player
	if player == nil {
		player = audio.Nop{}
	}

	g := &Game{
		cfg:          opts.Config,
		catalog:      cat,
		settings:     opts.Settings,
		store:        opts.Store,
		player:       player,
		logger:       logger.Named("slideshow"),
		togglResults: make(chan togglResult, 1),
		width:        opts.Config.Window.Width,
		height:       opts.Config.Window.Height,
		fullscreen:   opts.Settings.Fullscreen,
	}
	g.dialogs = newDialogs(opts.Config.Window.Title, g.logger)
	g.picker = newPicker(g)
	g.rebuildTracker()
	if g.settings.TogglConfigured() && g.settings.TogglWorkspaceID == 0 {
		g.connectToggl(g.settings.TogglAPIKey)
	}
	if opts.AutoStart {
		g.startSession()
	}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if g.fullscreen {
		g.savedWinW, g.savedWinH = g.cfg.Window.Width, g.cfg.Window.Height
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.quit = true
	}
	if g.quit {
		g.shutdown()
		return ebiten.Termination
	}

	if !g.unlocked && (inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedKeys(nil)) > 0) {
		g.player.Unlock()
		g.unlocked = true
	}

	g.drainToggl()
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.toggleFullscreen()
	}

	mouseX, mouseY := ebiten.CursorPosition()
	switch g.screen {
	case screenViewer:
		g.viewer.update(mouseX, mouseY)
		if g.viewer.session.Done() {
			g.finishSession()
		}
	default:
		g.picker.update(mouseX, mouseY)
	}

	if g.overlayMessage != "" && time.Since(g.overlayMessageTime) >= overlayMessageDuration {
		g.overlayMessage = ""
		g.overlayMessageTime = time.Time{}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.screen {
	case screenViewer:
		g.viewer.draw(screen)
	default:
		g.picker.draw(screen)
	}
	g.drawOverlayMessage(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.fullscreen {
		g.savedWinW, g.savedWinH = outsideWidth, outsideHeight
	}
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Notify shows message as an overlay and a desktop notification.
func (g *Game) Notify(message string) {
	g.showOverlayMessage(message)
	g.dialogs.notify(message)
}

func (g *Game) showOverlayMessage(message string) {
	g.overlayMessage = message
	if message != "" {
		g.overlayMessageTime = time.Now()
	} else {
		g.overlayMessageTime = time.Time{}
	}
}

func (g *Game) drawOverlayMessage(screen *ebiten.Image) {
	if g.overlayMessage == "" {
		return
	}
	w := float64(len(g.overlayMessage)*glyphWidth + 24)
	box := rect{x: (float64(g.width) - w) / 2, y: 24, w: w, h: 28}
	drawPanel(screen, box)
	ebitenutil.DebugPrintAt(screen, g.overlayMessage, int(box.x)+12, int(box.y)+6)
}

func (g *Game) toggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
	g.settings.Fullscreen = g.fullscreen
	g.saveSettings()
}

// startSession switches to the viewer with the current selection.
func (g *Game) startSession() {
	images := g.catalog.Select(g.settings.SelectedCategories)
	timerSeconds := g.settings.TimerSeconds
	g.settings.RememberTimer(timerSeconds, g.cfg.Slideshow.RecentTimers)
	g.saveSettings()

	s := session.New(session.Config{
		Images:       images,
		Categories:   g.settings.SelectedCategories,
		Limit:        g.settings.Limit,
		Timer:        time.Duration(timerSeconds) * time.Second,
		HistorySize:  g.settings.MaxHistorySize,
		TickInterval: time.Duration(g.cfg.Slideshow.TickIntervalMS) * time.Millisecond,
	}, session.Deps{
		Player:   g.player,
		Tracker:  g.tracker,
		Notifier: g,
		Prompter: g.dialogs,
		Logger:   g.logger,
	})

	v, err := newViewer(g, s)
	if err != nil {
		g.logger.Error("open viewer", zap.Error(err))
		g.showOverlayMessage("Cannot open images: " + err.Error())
		s.Close()
		return
	}
	g.viewer = v
	g.screen = screenViewer
	s.Start()
}

// finishSession records the session and returns to the picker.
func (g *Game) finishSession() {
	if g.viewer == nil {
		return
	}
	s := g.viewer.session
	s.Close()
	g.closed = append(g.closed, s)
	g.viewer.dispose()
	g.viewer = nil
	g.screen = screenPicker

	rec := s.Record()
	if rec.Shown == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := g.store.AddSession(ctx, rec); err != nil {
		g.logger.Warn("record session", zap.Error(err))
	}
}

func (g *Game) shutdown() {
	g.finishSession()
	g.saveSettings()
	g.waitForTracking()
}

// waitForTracking gives queued time-tracking calls of closed sessions a
// bounded chance to reach the service before the process exits.
func (g *Game) waitForTracking() {
	ctx, cancel := context.WithTimeout(context.Background(), trackerDrainTimeout)
	defer cancel()
	for _, s := range g.closed {
		if err := s.Wait(ctx); err != nil {
			g.logger.Warn("time tracking did not finish", zap.String("session_id", s.ID()), zap.Error(err))
		}
	}
	g.closed = nil
}

func (g *Game) saveSettings() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := g.settings.Flush(ctx, g.store); err != nil {
		g.logger.Warn("save settings", zap.Error(err))
	}
}

func (g *Game) togglClient(apiKey string) (*toggl.Client, error) {
	return toggl.New(toggl.Config{
		APIKey:      apiKey,
		BaseURL:     g.cfg.Toggl.BaseURL,
		CreatedWith: g.cfg.Toggl.CreatedWith,
		Timeout:     time.Duration(g.cfg.Toggl.RequestTimeout) * time.Second,
	})
}

// rebuildTracker derives the tracker from the stored credential.
func (g *Game) rebuildTracker() {
	g.tracker = nil
	if !g.settings.TogglConfigured() || g.settings.TogglWorkspaceID == 0 {
		return
	}
	client, err := g.togglClient(g.settings.TogglAPIKey)
	if err != nil {
		g.logger.Warn("toggl client", zap.Error(err))
		return
	}
	g.tracker = toggl.NewTracker(client, g.settings.TogglWorkspaceID)
}

// connectToggl resolves the workspace for apiKey in the background.
func (g *Game) connectToggl(apiKey string) {
	if g.togglBusy {
		return
	}
	client, err := g.togglClient(apiKey)
	if err != nil {
		g.showOverlayMessage("Toggl: " + err.Error())
		return
	}
	g.togglBusy = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(g.cfg.Toggl.RequestTimeout)*time.Second)
		defer cancel()
		candidate := settings.Settings{TogglAPIKey: apiKey}
		_, err := toggl.ResolveWorkspace(ctx, client, &candidate)
		g.togglResults <- togglResult{key: apiKey, workspace: candidate.TogglWorkspaceID, err: err}
	}()
}

func (g *Game) disconnectToggl() {
	g.settings.TogglAPIKey = ""
	g.settings.TogglWorkspaceID = 0
	g.saveSettings()
	g.rebuildTracker()
	g.showOverlayMessage("Toggl disconnected")
}

func (g *Game) drainToggl() {
	select {
	case key := <-g.dialogs.apiKeys:
		g.connectToggl(key)
	case <-g.dialogs.disconnects:
		g.disconnectToggl()
	case res := <-g.togglResults:
		g.togglBusy = false
		if res.err != nil {
			g.logger.Warn("toggl connect failed", zap.Error(res.err))
			g.showOverlayMessage("Toggl: " + res.err.Error())
			return
		}
		g.settings.TogglAPIKey = res.key
		g.settings.TogglWorkspaceID = res.workspace
		g.saveSettings()
		g.rebuildTracker()
		g.logger.Info("toggl connected", zap.Int64("workspace", res.workspace))
		g.showOverlayMessage("Toggl connected")
	default:
	}
}
