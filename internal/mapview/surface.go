package mapview

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// Default map extent in cells when the snapshot does not bound it.
const (
	defaultMapCols = 60
	defaultMapRows = 40
)

// SnapshotFunc supplies the current authoritative map state. Called once per
// frame; the returned snapshot is read-only input.
type SnapshotFunc func() *MapSnapshot

// MapSurface is the top-level map component: it owns the viewport, fog
// engine, token cache, interaction controller, and scene, runs the
// init/resize/teardown lifecycle, and wires snapshots into renders.
// Everything here runs on the Ebiten update thread; external state is never
// mutated, only intents are emitted through Callbacks.
type MapSurface struct {
	log      *zap.Logger
	snapFn   SnapshotFunc
	viewport *Viewport
	ctrl     *Controller
	fog      *FogEngine
	tokens   *TokenCache
	scene    *Scene
	newScene func(w, h int) (*Scene, error)

	background *ebiten.Image
	banner     string // inline warning, e.g. background load failure
	fatal      error  // category 1/2 terminal error, shown with retry hint

	viewW int
	viewH int

	cancelled bool
	ready     bool
	showHPBar bool
	aoe       *AoETemplate

	prevKeys   map[ebiten.Key]bool
	prevMouseL bool
	prevMouseR bool
	lastFrame  time.Time
	weatherAge float64
}

// NewMapSurface wires the surface; Init must run before the first frame.
func NewMapSurface(log *zap.Logger, snapFn SnapshotFunc, cb Callbacks) *MapSurface {
	if log == nil {
		log = zap.NewNop()
	}
	v := NewViewport()
	return &MapSurface{
		log:       log,
		snapFn:    snapFn,
		viewport:  v,
		ctrl:      NewController(v, cb),
		fog:       NewFogEngine(),
		tokens:    NewTokenCache(),
		newScene:  allocScene,
		showHPBar: true,
		prevKeys:  make(map[ebiten.Key]bool),
	}
}

// Init runs the setup sequence: wait for a non-zero layout, allocate the
// scene, and load the background. The cancelled flag is honoured between
// steps so a surface torn down mid-init never attaches to a stale host.
func (s *MapSurface) Init(snap *MapSnapshot) error {
	policy := defaultRetryPolicy()
	switch policy.await(&s.cancelled, func() bool { return s.viewW > 0 && s.viewH > 0 }) {
	case statusCancelled:
		return ErrSetupCancelled
	case statusTimeout:
		s.fatal = ErrLayoutNotReady
		return ErrLayoutNotReady
	}
	if s.cancelled {
		return ErrSetupCancelled
	}

	w, h := mapPixelSize(snap)
	scene, err := s.newScene(w, h)
	if err != nil {
		// Terminal until the user retries; Draw shows the hint.
		s.fatal = err
		return err
	}
	s.scene = scene
	s.fog.AttachTicker()

	if snap.BackgroundPath != "" {
		img, err := loadBackground(snap.BackgroundPath)
		if err != nil {
			// Non-fatal: keep rendering without a background.
			s.log.Warn("background load failed", zap.Error(err))
			s.banner = "background image failed to load"
		} else {
			s.background = img
		}
	}
	if s.cancelled {
		s.teardownLocked()
		return ErrSetupCancelled
	}

	s.ready = true
	s.fatal = nil
	s.lastFrame = time.Now()
	s.log.Info("map surface ready",
		zap.String("map", snap.MapID), zap.Int("w", w), zap.Int("h", h))
	return nil
}

// Retry clears a terminal error state and re-runs Init. Exposed to the
// hosting UI's manual retry action.
func (s *MapSurface) Retry(snap *MapSnapshot) error {
	s.fatal = nil
	s.cancelled = false
	return s.Init(snap)
}

// Teardown cancels any in-flight setup and releases the scene.
func (s *MapSurface) Teardown() {
	s.cancelled = true
	s.teardownLocked()
}

func (s *MapSurface) teardownLocked() {
	s.ready = false
	s.fog.DetachTicker()
	if s.scene != nil {
		s.scene.Dispose()
		s.scene = nil
	}
	if s.background != nil {
		s.background.Deallocate()
		s.background = nil
	}
}

// SetAoEPreview installs or clears the transient area-of-effect template.
func (s *MapSurface) SetAoEPreview(t *AoETemplate) {
	s.aoe = t
}

// Controller exposes the interaction controller for the hosting shell
// (tool palette buttons call SetTool here).
func (s *MapSurface) Controller() *Controller {
	return s.ctrl
}

// CenterOnEntity forwards a center request from the host UI.
func (s *MapSurface) CenterOnEntity(entityID string) {
	if snap := s.snapFn(); snap != nil {
		s.ctrl.CenterOnEntity(entityID, snap, s.viewW, s.viewH)
	}
}

func mapPixelSize(snap *MapSnapshot) (int, int) {
	cs := snap.Grid.CellSize
	if cs <= 0 {
		cs = DefaultGridSettings().CellSize
	}
	return defaultMapCols * cs, defaultMapRows * cs
}

// Update implements ebiten.Game. It polls input, advances the fog animation
// by real elapsed time, and repaints every layer from the current snapshot.
func (s *MapSurface) Update() error {
	snap := s.snapFn()
	if snap == nil {
		return nil
	}
	if !s.ready || s.scene == nil {
		if s.fatal != nil {
			// Terminal state: only the manual retry key does anything.
			if ebiten.IsKeyPressed(ebiten.KeyR) && !s.prevKeys[ebiten.KeyR] {
				_ = s.Retry(snap)
			}
			s.prevKeys[ebiten.KeyR] = ebiten.IsKeyPressed(ebiten.KeyR)
			return nil
		}
		if s.viewW > 0 && s.viewH > 0 && !s.cancelled {
			if err := s.Init(snap); err != nil {
				s.log.Error("map surface init failed", zap.Error(err))
			}
		}
		return nil
	}

	now := time.Now()
	dtMS := float64(now.Sub(s.lastFrame)) / float64(time.Millisecond)
	s.lastFrame = now
	if dtMS > 250 {
		dtMS = 250 // clamp after a stall so fog does not snap
	}
	s.weatherAge += dtMS

	// Track grid changes between snapshots: a new cell size means a new
	// layer extent.
	w, h := mapPixelSize(snap)
	if cw, ch := s.scene.Size(); cw != w || ch != h {
		s.scene.Resize(w, h)
	}

	s.handleInput(snap)
	s.fog.Advance(dtMS)
	s.renderLayers(snap)
	return nil
}

// toolKeys maps the number row to tools, 1 through 8.
var toolKeys = map[ebiten.Key]Tool{
	ebiten.KeyDigit1: ToolSelect,
	ebiten.KeyDigit2: ToolTokenPlace,
	ebiten.KeyDigit3: ToolFogReveal,
	ebiten.KeyDigit4: ToolFogHide,
	ebiten.KeyDigit5: ToolMeasure,
	ebiten.KeyDigit6: ToolTerrain,
	ebiten.KeyDigit7: ToolWall,
	ebiten.KeyDigit8: ToolFill,
}

// handleInput polls Ebiten input and feeds the controller. Keys are
// edge-triggered against the previous frame's state.
func (s *MapSurface) handleInput(snap *MapSnapshot) {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !s.prevKeys[k]
	}

	for k, tool := range toolKeys {
		if pressed(k) {
			s.ctrl.SetTool(tool)
		}
	}
	if pressed(ebiten.KeyHome) {
		s.ctrl.Home()
	}
	if pressed(ebiten.KeyC) {
		if err := CopyMapReport(snap); err != nil {
			s.log.Warn("copy map report failed", zap.Error(err))
		}
	}
	if pressed(ebiten.KeyB) {
		s.showHPBar = !s.showHPBar
	}

	s.ctrl.SetSpaceHeld(ebiten.IsKeyPressed(ebiten.KeySpace))

	// Continuous keyboard pan while held.
	dirX, dirY := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dirX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dirX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dirY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dirY++
	}
	s.ctrl.KeyPan(dirX, dirY, 1000.0/float64(ebiten.TPS()))

	mx, my := ebiten.CursorPosition()
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.ctrl.Wheel(wy, float64(mx), float64(my))
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !s.prevMouseL {
		s.ctrl.PointerDown(float64(mx), float64(my), snap, s.tokens)
	} else if left {
		s.ctrl.PointerMove(float64(mx), float64(my), snap)
	} else if s.prevMouseL {
		s.ctrl.PointerUp(float64(mx), float64(my), snap)
	}
	s.prevMouseL = left

	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right && !s.prevMouseR {
		s.ctrl.RightClick(float64(mx), float64(my), snap, s.tokens)
	}
	s.prevMouseR = right

	s.prevKeys = currentKeys
}

// renderLayers repaints every layer from the snapshot.
func (s *MapSurface) renderLayers(snap *MapSnapshot) {
	w, h := s.scene.Size()
	gs := snap.Grid
	if gs.CellSize <= 0 {
		gs = DefaultGridSettings()
	}

	DrawGrid(s.scene.Canvas(LayerGrid), gs, 0, 0, float64(w), float64(h))
	DrawTerrainOverlay(s.scene.Canvas(LayerTerrain), gs, snap.Terrain)

	walls := NewWallSet(snap.Walls)
	terrain := NewTerrainMap(snap.Terrain)
	if m := snap.Movement; m != nil {
		DrawMovementOverlay(s.scene.Canvas(LayerMovement), gs, m.Origin, m.Budget, walls, terrain)
	} else {
		s.scene.Canvas(LayerMovement).Clear()
	}

	DrawAoEOverlay(s.scene.Canvas(LayerAoE), s.aoe)

	s.tokens.Sync(snap.Tokens, gs, snap.ViewerRole,
		s.ctrl.SelectedTokenID(), snap.ActiveEntityID, s.showHPBar)
	s.drawTokens(snap, gs)

	viewport := gs.VisibleCells(0, 0, float64(w), float64(h))
	s.fog.Render(s.scene.Canvas(LayerFog), gs, snap.Fog, viewport, snap.Vision, walls)

	DrawLightingOverlay(s.scene.Canvas(LayerLighting), gs, snap.Lights)
	DrawWallOverlay(s.scene.Canvas(LayerWalls), gs, snap.Walls)

	mc := s.scene.Canvas(LayerMeasurement)
	if m := s.ctrl.Measure(); m != nil {
		DrawMeasurementOverlay(mc, gs, m.AnchorX, m.AnchorY, m.CurX, m.CurY)
	} else {
		mc.Clear()
	}

	DrawWeatherOverlay(s.scene.Canvas(LayerWeather), snap.Weather,
		float64(w), float64(h), s.weatherAge)
}

// drawTokens renders the cached sprites plus the drag ghost.
func (s *MapSurface) drawTokens(snap *MapSnapshot, gs GridSettings) {
	c := s.scene.Canvas(LayerTokens)
	visible := snap.Tokens
	if snap.ViewerRole != RoleHost {
		visible = visible[:0:0]
		for _, t := range snap.Tokens {
			if t.VisibleToPlayers {
				visible = append(visible, t)
			}
		}
	}
	s.tokens.Draw(c, visible, snap.SpeakingIDs)

	if d := s.ctrl.Drag(); d != nil {
		dest := gs.PixelToCell(d.CurX-d.OffsetX, d.CurY-d.OffsetY)
		px, py := gs.CellToPixel(dest)
		cs := float32(gs.CellSize)
		c.StrokeRect(float32(px), float32(py), cs, cs, 1.5,
			color.RGBA{R: 255, G: 255, B: 255, A: 160})
	}
}

// Draw implements ebiten.Game.
func (s *MapSurface) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 14, B: 18, A: 255})

	if s.fatal != nil {
		msg := fmt.Sprintf("map unavailable: %v\npress R to retry", s.fatal)
		ebitenutil.DebugPrintAt(screen, msg, 12, 12)
		return
	}
	if !s.ready || s.scene == nil {
		ebitenutil.DebugPrintAt(screen, "preparing map...", 12, 12)
		return
	}

	if s.background != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.viewport.Zoom, s.viewport.Zoom)
		op.GeoM.Translate(s.viewport.PanX, s.viewport.PanY)
		screen.DrawImage(s.background, op)
	}
	s.scene.Composite(screen, s.viewport)

	if s.banner != "" {
		ebitenutil.DebugPrintAt(screen, "! "+s.banner, 8, 6)
	}
	if s.viewport.Zoom != 1.0 {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("zoom: %.2fx", s.viewport.Zoom), 8, s.viewH-16)
	}
}

// Layout implements ebiten.Game; the surface follows the window size.
func (s *MapSurface) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.viewW = outsideWidth
	s.viewH = outsideHeight
	return outsideWidth, outsideHeight
}
