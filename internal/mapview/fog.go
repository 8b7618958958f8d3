package mapview

import "image/color"

// Fog animation tuning. Hiding is deliberately slower than revealing so a
// cell dropping out of vision darkens gently instead of snapping shut.
const (
	fogTargetAlpha   = 0.75 // steady-state opacity over never-explored cells
	fogExploredAlpha = 0.60 // lighter shroud over explored-but-hidden cells
	revealDurationMS = 350.0
	hideDurationMS   = 900.0
	fogAlphaBands    = 10 // draw-call budget: one batched fill per band
	fogAlphaEpsilon  = 0.01
)

// fogColor is the concealment overlay colour before alpha is applied.
var fogColor = color.RGBA{R: 8, G: 10, B: 14, A: 255}

// VisionSource is a party-vision emitter that subtracts cells from the
// unrevealed set when dynamic fog is on. Radius is in cells.
type VisionSource struct {
	Cell   Cell
	Radius int
}

// fogAnimState holds the per-cell interpolation data for one surface. It is
// owned by exactly one FogEngine and discarded on teardown, so two map
// surfaces can never bleed animation state into each other.
type fogAnimState struct {
	prevUnrevealed map[Cell]struct{}
	alphas         map[Cell]float64
}

func newFogAnimState() *fogAnimState {
	return &fogAnimState{
		prevUnrevealed: make(map[Cell]struct{}),
		alphas:         make(map[Cell]float64),
	}
}

// FogEngine renders the concealment overlay and animates per-cell opacity.
// It never mutates the authoritative reveal sets it is handed.
type FogEngine struct {
	anim     *fogAnimState
	attached bool // an animation ticker is driving Advance

	// Current frame inputs, refreshed by Render.
	unrevealed map[Cell]struct{}
	explored   map[Cell]struct{}
}

func NewFogEngine() *FogEngine {
	return &FogEngine{anim: newFogAnimState()}
}

// AttachTicker switches the engine into animated mode.
func (f *FogEngine) AttachTicker() {
	f.attached = true
}

// DetachTicker drops back to static rendering and clears animation state.
func (f *FogEngine) DetachTicker() {
	f.attached = false
	f.anim = newFogAnimState()
}

// targetFor returns the steady-state alpha for a cell given the current sets.
func (f *FogEngine) targetFor(c Cell) float64 {
	if _, hidden := f.unrevealed[c]; !hidden {
		return 0
	}
	if f.explored != nil {
		if _, seen := f.explored[c]; seen {
			return fogExploredAlpha
		}
	}
	return fogTargetAlpha
}

// ComputeUnrevealed derives the set of viewport cells that should carry fog:
// everything not in revealedCells, minus cells inside a party vision radius
// with clear line of sight when dynamic fog is enabled.
func ComputeUnrevealed(data FogOfWarData, viewport []Cell, vision []VisionSource, walls *WallSet) map[Cell]struct{} {
	out := make(map[Cell]struct{}, len(viewport))
	for _, c := range viewport {
		if _, ok := data.RevealedCells[c]; ok {
			continue
		}
		out[c] = struct{}{}
	}
	if !data.DynamicFogEnabled {
		return out
	}
	for _, vs := range vision {
		r := vs.Radius
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				c := Cell{X: vs.Cell.X + dx, Y: vs.Cell.Y + dy}
				if _, ok := out[c]; !ok {
					continue
				}
				if walls != nil && walls.BlocksSight(vs.Cell, c) {
					continue
				}
				delete(out, c)
			}
		}
	}
	return out
}

// Reconcile absorbs a new unrevealed set, starting fades for cells whose
// membership changed. Called once per external data update, not per frame.
func (f *FogEngine) Reconcile(unrevealed map[Cell]struct{}, explored map[Cell]struct{}) {
	f.unrevealed = unrevealed
	f.explored = explored
	if !f.attached {
		return
	}
	// Cells newly concealed start from fully transparent.
	for c := range unrevealed {
		if _, was := f.anim.prevUnrevealed[c]; !was {
			if _, tracked := f.anim.alphas[c]; !tracked {
				f.anim.alphas[c] = 0
			}
		}
	}
	// Cells newly revealed keep their alpha and drain toward zero in Advance.
	f.anim.prevUnrevealed = unrevealed
}

// Advance steps every tracked alpha toward its target by dtMS of animation
// time. Rates derive from the duration constants, so speed is frame-rate
// independent. Cells that settle at zero are pruned.
func (f *FogEngine) Advance(dtMS float64) {
	if !f.attached || dtMS <= 0 {
		return
	}
	for c, a := range f.anim.alphas {
		target := f.targetFor(c)
		if a < target {
			a += fogTargetAlpha / hideDurationMS * dtMS
			if a > target {
				a = target
			}
		} else if a > target {
			a -= fogTargetAlpha / revealDurationMS * dtMS
			if a < target {
				a = target
			}
		}
		if target == 0 && a <= fogAlphaEpsilon {
			delete(f.anim.alphas, c)
			continue
		}
		if diff := target - a; diff < fogAlphaEpsilon && diff > -fogAlphaEpsilon {
			a = target
		}
		f.anim.alphas[c] = a
	}
}

// Render draws the fog layer. Disabled fog always clears and draws nothing.
// With a ticker attached it draws the animated alpha field bucketed into
// fogAlphaBands batched fills; without one it falls back to a single static
// pass at each cell's target alpha.
func (f *FogEngine) Render(c Canvas, gs GridSettings, data FogOfWarData, viewport []Cell, vision []VisionSource, walls *WallSet) {
	c.Clear()
	if !data.Enabled {
		return
	}
	unrevealed := ComputeUnrevealed(data, viewport, vision, walls)
	f.Reconcile(unrevealed, data.ExploredCells)

	if !f.attached {
		f.drawStatic(c, gs, unrevealed)
		return
	}
	f.drawBanded(c, gs)
}

// drawStatic fills every unrevealed cell at its fixed target alpha.
func (f *FogEngine) drawStatic(c Canvas, gs GridSettings, unrevealed map[Cell]struct{}) {
	var full, dim []Cell
	for cell := range unrevealed {
		if f.targetFor(cell) == fogExploredAlpha {
			dim = append(dim, cell)
		} else {
			full = append(full, cell)
		}
	}
	if len(full) > 0 {
		c.FillCells(full, gs, fogAlpha(fogTargetAlpha))
	}
	if len(dim) > 0 {
		c.FillCells(dim, gs, fogAlpha(fogExploredAlpha))
	}
}

// drawBanded buckets live alphas into discrete bands and issues one batched
// fill per band, keeping draw cost at O(bands) rather than O(cells).
func (f *FogEngine) drawBanded(c Canvas, gs GridSettings) {
	var bands [fogAlphaBands + 1][]Cell
	for cell, a := range f.anim.alphas {
		if a <= 0 {
			continue
		}
		b := int(a/fogTargetAlpha*fogAlphaBands + 0.5)
		if b < 0 {
			b = 0
		}
		if b > fogAlphaBands {
			b = fogAlphaBands
		}
		bands[b] = append(bands[b], cell)
	}
	for b := 1; b <= fogAlphaBands; b++ {
		if len(bands[b]) == 0 {
			continue
		}
		a := float64(b) / fogAlphaBands * fogTargetAlpha
		c.FillCells(bands[b], gs, fogAlpha(a))
	}
}

// AlphaAt exposes the current interpolated alpha for a cell. Untracked cells
// report their target, which is also their steady state.
func (f *FogEngine) AlphaAt(c Cell) float64 {
	if f.attached {
		if a, ok := f.anim.alphas[c]; ok {
			return a
		}
	}
	return f.targetFor(c)
}

// TrackedCells reports how many cells are currently animating.
func (f *FogEngine) TrackedCells() int {
	return len(f.anim.alphas)
}

func fogAlpha(a float64) color.RGBA {
	col := fogColor
	col.A = uint8(clamp01(a) * 255)
	return col
}
