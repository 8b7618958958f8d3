package mapview

import "math"

// Tool is the active editing tool.
type Tool uint8

const (
	ToolSelect Tool = iota
	ToolTokenPlace
	ToolFogReveal
	ToolFogHide
	ToolMeasure
	ToolTerrain
	ToolWall
	ToolFill
)

// gesture is the in-flight pointer gesture. One gesture at a time; switching
// tools resets to idle so no partial gesture can straddle a tool change.
type gesture uint8

const (
	gestureIdle gesture = iota
	gestureDraggingToken
	gesturePaintingFog
	gestureDrawingWall
	gestureMeasuring
	gesturePanning
)

// doorHitRadiusPx is the screen-space pick radius around a door marker.
const doorHitRadiusPx = 10.0

// DragState exists only between pointer-down on a token and pointer-up.
type DragState struct {
	TokenID    string
	StartGridX int
	StartGridY int
	OffsetX    float64 // map-local pixel offset pointer -> token origin
	OffsetY    float64
	CurX       float64 // current pointer position, map-local pixels
	CurY       float64
}

// MeasureState is the live ruler while the measure tool is held down.
type MeasureState struct {
	AnchorX float64 // map-local pixels
	AnchorY float64
	CurX    float64
	CurY    float64
}

// wallStroke is the in-progress wall segment, endpoints snapped to corners.
type wallStroke struct {
	x1, y1 float64 // grid-corner coordinates
	curX   float64
	curY   float64
}

// Controller translates pointer/key events into viewport mutations and
// outbound intents. It owns only transient input state; all authoritative
// state arrives through the snapshot it is handed per event.
type Controller struct {
	tool      Tool
	gesture   gesture
	viewport  *Viewport
	callbacks Callbacks

	drag       *DragState
	measure    *MeasureState
	wall       *wallStroke
	fogStroke  map[Cell]struct{}
	spaceHeld  bool
	lastPanX   float64
	lastPanY   float64
	selectedID string
}

func NewController(v *Viewport, cb Callbacks) *Controller {
	return &Controller{viewport: v, callbacks: cb}
}

// Tool returns the active tool.
func (ic *Controller) Tool() Tool {
	return ic.tool
}

// SetTool switches tools and drops any in-flight gesture so a drag, paint
// stroke, or measurement can never survive the switch.
func (ic *Controller) SetTool(t Tool) {
	ic.tool = t
	ic.clearGesture()
}

func (ic *Controller) clearGesture() {
	ic.gesture = gestureIdle
	ic.drag = nil
	ic.measure = nil
	ic.wall = nil
	ic.fogStroke = nil
}

// Drag exposes the live drag for ghost rendering, nil when idle.
func (ic *Controller) Drag() *DragState {
	return ic.drag
}

// Measure exposes the live ruler, nil when idle.
func (ic *Controller) Measure() *MeasureState {
	return ic.measure
}

// SelectedTokenID returns the id last reported through OnTokenSelect.
func (ic *Controller) SelectedTokenID() string {
	return ic.selectedID
}

// SetSpaceHeld flips the alternate-pan mode. While held, pointer-down pans
// instead of using the active tool, and keyboard pan is suppressed.
func (ic *Controller) SetSpaceHeld(held bool) {
	ic.spaceHeld = held
	if !held && ic.gesture == gesturePanning {
		ic.gesture = gestureIdle
	}
}

// canDrag reports whether the viewer may drag this token.
func canDrag(t MapToken, snap *MapSnapshot) bool {
	return snap.ViewerRole == RoleHost || t.EntityID == snap.ViewerID
}

// PointerDown handles a primary-button press at screen coordinates.
func (ic *Controller) PointerDown(sx, sy float64, snap *MapSnapshot, cache *TokenCache) {
	if ic.spaceHeld {
		ic.gesture = gesturePanning
		ic.lastPanX = sx
		ic.lastPanY = sy
		return
	}
	mx, my := ic.viewport.ScreenToMap(sx, sy)
	cell := snap.Grid.PixelToCell(mx, my)

	switch ic.tool {
	case ToolSelect:
		if id, ok := cache.HitTest(snap.Tokens, mx, my); ok {
			ic.select_(id)
			if tok, found := findToken(snap.Tokens, id); found && canDrag(tok, snap) {
				px, py := snap.Grid.CellToPixel(Cell{X: tok.GridX, Y: tok.GridY})
				ic.gesture = gestureDraggingToken
				ic.drag = &DragState{
					TokenID:    id,
					StartGridX: tok.GridX,
					StartGridY: tok.GridY,
					OffsetX:    mx - px,
					OffsetY:    my - py,
					CurX:       mx,
					CurY:       my,
				}
			}
			return
		}
		if id, ok := doorAt(snap, mx, my, doorHitRadiusPx/ic.viewport.Zoom); ok {
			if ic.callbacks.OnDoorToggle != nil {
				ic.callbacks.OnDoorToggle(id)
			}
			return
		}
		ic.select_("")
	case ToolTokenPlace, ToolTerrain, ToolFill:
		if ic.callbacks.OnCellClick != nil {
			ic.callbacks.OnCellClick(cell.X, cell.Y)
		}
	case ToolFogReveal, ToolFogHide:
		ic.gesture = gesturePaintingFog
		ic.fogStroke = map[Cell]struct{}{cell: {}}
	case ToolMeasure:
		ic.gesture = gestureMeasuring
		ic.measure = &MeasureState{AnchorX: mx, AnchorY: my, CurX: mx, CurY: my}
	case ToolWall:
		gx, gy := snapToCorner(snap.Grid, mx, my)
		ic.gesture = gestureDrawingWall
		ic.wall = &wallStroke{x1: gx, y1: gy, curX: gx, curY: gy}
	}
}

// PointerMove handles pointer motion at screen coordinates.
func (ic *Controller) PointerMove(sx, sy float64, snap *MapSnapshot) {
	if ic.gesture == gesturePanning {
		ic.viewport.PanBy(sx-ic.lastPanX, sy-ic.lastPanY)
		ic.lastPanX = sx
		ic.lastPanY = sy
		return
	}
	mx, my := ic.viewport.ScreenToMap(sx, sy)
	switch ic.gesture {
	case gestureDraggingToken:
		ic.drag.CurX = mx
		ic.drag.CurY = my
	case gesturePaintingFog:
		ic.fogStroke[snap.Grid.PixelToCell(mx, my)] = struct{}{}
	case gestureMeasuring:
		ic.measure.CurX = mx
		ic.measure.CurY = my
	case gestureDrawingWall:
		ic.wall.curX, ic.wall.curY = snapToCorner(snap.Grid, mx, my)
	}
}

// PointerUp completes the active gesture and emits its intent.
func (ic *Controller) PointerUp(sx, sy float64, snap *MapSnapshot) {
	defer ic.clearGesture()

	switch ic.gesture {
	case gestureDraggingToken:
		mx, my := ic.viewport.ScreenToMap(sx, sy)
		dest := snap.Grid.PixelToCell(mx-ic.drag.OffsetX, my-ic.drag.OffsetY)
		if (dest.X != ic.drag.StartGridX || dest.Y != ic.drag.StartGridY) &&
			ic.callbacks.OnTokenMove != nil {
			ic.callbacks.OnTokenMove(ic.drag.TokenID, dest.X, dest.Y)
		}
	case gesturePaintingFog:
		cells := make([]Cell, 0, len(ic.fogStroke))
		for c := range ic.fogStroke {
			cells = append(cells, c)
		}
		if ic.tool == ToolFogReveal {
			if ic.callbacks.OnFogReveal != nil {
				ic.callbacks.OnFogReveal(cells)
			}
		} else if ic.callbacks.OnFogHide != nil {
			ic.callbacks.OnFogHide(cells)
		}
	case gestureDrawingWall:
		w := ic.wall
		if (w.x1 != w.curX || w.y1 != w.curY) && ic.callbacks.OnWallPlace != nil {
			ic.callbacks.OnWallPlace(w.x1, w.y1, w.curX, w.curY)
		}
	}
}

// RightClick reports a context-menu request for the token under the pointer.
// Screen coordinates are passed through untranslated; the host overlays its
// menu in screen space.
func (ic *Controller) RightClick(sx, sy float64, snap *MapSnapshot, cache *TokenCache) {
	mx, my := ic.viewport.ScreenToMap(sx, sy)
	id, ok := cache.HitTest(snap.Tokens, mx, my)
	if !ok {
		return
	}
	if tok, found := findToken(snap.Tokens, id); found && ic.callbacks.OnTokenContextMenu != nil {
		ic.callbacks.OnTokenContextMenu(int(sx), int(sy), tok, snap.MapID)
	}
}

// Wheel zooms around the cursor.
func (ic *Controller) Wheel(dy, sx, sy float64) {
	ic.viewport.ZoomWheel(dy, sx, sy)
}

// KeyPan applies held-key panning for one frame. dirX/dirY are -1/0/1.
// Suppressed while space-pan is engaged.
func (ic *Controller) KeyPan(dirX, dirY int, dtMS float64) {
	if ic.spaceHeld || (dirX == 0 && dirY == 0) {
		return
	}
	step := keyPanSpeedPxS * dtMS / 1000
	ic.viewport.PanBy(-float64(dirX)*step, -float64(dirY)*step)
}

// Home resets the view to zoom 1, pan (0,0).
func (ic *Controller) Home() {
	ic.viewport.Reset()
}

// CenterOnEntity pans so the token bound to entityID sits at the viewport
// center. Unknown entities leave the view unchanged.
func (ic *Controller) CenterOnEntity(entityID string, snap *MapSnapshot, viewW, viewH int) bool {
	for _, t := range snap.Tokens {
		if t.EntityID != entityID {
			continue
		}
		sx, sy := footprint(t)
		px, py := snap.Grid.CellToPixel(Cell{X: t.GridX, Y: t.GridY})
		cx := px + float64(sx*snap.Grid.CellSize)/2
		cy := py + float64(sy*snap.Grid.CellSize)/2
		ic.viewport.CenterOn(cx, cy, viewW, viewH)
		return true
	}
	return false
}

func (ic *Controller) select_(id string) {
	ic.selectedID = id
	if ic.callbacks.OnTokenSelect != nil {
		ic.callbacks.OnTokenSelect(id)
	}
}

func findToken(tokens []MapToken, id string) (MapToken, bool) {
	for _, t := range tokens {
		if t.ID == id {
			return t, true
		}
	}
	return MapToken{}, false
}

// snapToCorner rounds a map-local pixel point to the nearest grid corner, in
// grid-corner coordinates.
func snapToCorner(gs GridSettings, mx, my float64) (float64, float64) {
	cs := float64(gs.CellSize)
	return math.Round((mx - float64(gs.OffsetX)) / cs), math.Round((my - float64(gs.OffsetY)) / cs)
}

// doorAt finds a door whose midpoint lies within radius of a map-local
// point. radius is map-local; callers divide the screen-space pick radius by
// the zoom so the on-screen target keeps a constant size.
func doorAt(snap *MapSnapshot, mx, my, radius float64) (string, bool) {
	cs := float64(snap.Grid.CellSize)
	ox := float64(snap.Grid.OffsetX)
	oy := float64(snap.Grid.OffsetY)
	for _, w := range snap.Walls {
		if w.Type != WallDoor {
			continue
		}
		midX := (w.X1+w.X2)/2*cs + ox
		midY := (w.Y1+w.Y2)/2*cs + oy
		dx := mx - midX
		dy := my - midY
		if dx*dx+dy*dy <= radius*radius {
			return w.ID, true
		}
	}
	return "", false
}
