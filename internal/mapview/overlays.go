package mapview

import (
	"fmt"
	"image/color"
	"math"
)

// Overlay passes are stateless: clear, then draw from the data handed in.
// Empty or disabled input always leaves a cleared, consistent surface.

var (
	movementFill  = color.RGBA{R: 60, G: 140, B: 240, A: 70}
	movementEdge  = color.RGBA{R: 90, G: 170, B: 255, A: 140}
	wallColor     = color.RGBA{R: 225, G: 225, B: 230, A: 255}
	doorOpenCol   = color.RGBA{R: 120, G: 200, B: 120, A: 255}
	doorClosedCol = color.RGBA{R: 200, G: 160, B: 60, A: 255}
	measureCol    = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	aoeFill       = color.RGBA{R: 230, G: 80, B: 60, A: 60}
	aoeEdge       = color.RGBA{R: 255, G: 110, B: 80, A: 170}
)

// DrawMovementOverlay computes the reachable set and fills one rect per
// reachable cell. A non-positive budget clears and returns without drawing,
// which is also the empty-but-consistent state for tokens out of movement.
func DrawMovementOverlay(c Canvas, gs GridSettings, origin Cell, budget float64, walls *WallSet, terrain TerrainMap) {
	c.Clear()
	if budget <= 0 {
		return
	}
	cs := float32(gs.CellSize)
	for _, rc := range ReachableCells(origin, budget, walls, terrain) {
		px, py := gs.CellToPixel(Cell{X: rc.X, Y: rc.Y})
		c.FillRect(float32(px), float32(py), cs, cs, movementFill)
	}
	opx, opy := gs.CellToPixel(origin)
	c.StrokeRect(float32(opx), float32(opy), cs, cs, 1.5, movementEdge)
}

// DrawTerrainOverlay renders each terrain cell as a base rect plus a
// type-specific pattern, so the encoding survives without colour vision:
// cross-hatch for difficult ground, vertical lines for climbs.
func DrawTerrainOverlay(c Canvas, gs GridSettings, cells []TerrainCell) {
	c.Clear()
	cs := float32(gs.CellSize)
	for _, tc := range cells {
		pxf, pyf := gs.CellToPixel(tc.GridCell())
		px, py := float32(pxf), float32(pyf)
		base := terrainBaseColor(tc.Type)
		c.FillRect(px, py, cs, cs, base)

		lineCol := base
		lineCol.A = 180
		switch tc.Type {
		case TerrainDifficult:
			step := cs / 4
			for o := step; o < cs; o += step {
				c.StrokeLine(px+o, py, px, py+o, 1.0, lineCol)
				c.StrokeLine(px+cs-o, py+cs, px+cs, py+cs-o, 1.0, lineCol)
			}
			c.StrokeLine(px+cs, py, px, py+cs, 1.0, lineCol)
		case TerrainClimbing:
			step := cs / 4
			for o := step; o < cs; o += step {
				c.StrokeLine(px+o, py, px+o, py+cs, 1.0, lineCol)
			}
		}
	}
}

// DrawWallOverlay strokes wall segments in grid space and marks doors with a
// small state-coloured square at the segment midpoint.
func DrawWallOverlay(c Canvas, gs GridSettings, walls []Wall) {
	c.Clear()
	cs := float64(gs.CellSize)
	ox := float64(gs.OffsetX)
	oy := float64(gs.OffsetY)
	for _, w := range walls {
		x1 := float32(w.X1*cs + ox)
		y1 := float32(w.Y1*cs + oy)
		x2 := float32(w.X2*cs + ox)
		y2 := float32(w.Y2*cs + oy)
		col := wallColor
		width := float32(3.0)
		if w.Type == WallDoor && w.IsOpen {
			col = doorOpenCol
			width = 1.5
		}
		c.StrokeLine(x1, y1, x2, y2, width, col)
		if w.Type == WallDoor {
			mark := doorClosedCol
			if w.IsOpen {
				mark = doorOpenCol
			}
			mx := (x1 + x2) / 2
			my := (y1 + y2) / 2
			c.FillRect(mx-3, my-3, 6, 6, mark)
		}
	}
}

// DrawMeasurementOverlay draws the anchor-to-cursor ruler with a cell
// distance label. Both points are map-local pixels; the distance is measured
// between the centers of the cells under them.
func DrawMeasurementOverlay(c Canvas, gs GridSettings, anchorX, anchorY, curX, curY float64) {
	c.Clear()
	c.StrokeLine(float32(anchorX), float32(anchorY), float32(curX), float32(curY), 1.5, measureCol)
	c.FillCircle(float32(anchorX), float32(anchorY), 3, measureCol)
	c.FillCircle(float32(curX), float32(curY), 3, measureCol)

	a := gs.PixelToCell(anchorX, anchorY)
	b := gs.PixelToCell(curX, curY)
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	label := fmt.Sprintf("%.1f cells", dist)
	c.Label(label, float32((anchorX+curX)/2)+6, float32((anchorY+curY)/2)-14,
		color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// AoEShape selects the area-of-effect template.
type AoEShape uint8

const (
	AoECircle AoEShape = iota
	AoECone
	AoELine
)

// AoETemplate is a transient area-of-effect preview anchored at a map-local
// pixel origin, pointing toward a map-local target.
type AoETemplate struct {
	Shape    AoEShape
	OriginX  float64
	OriginY  float64
	TargetX  float64
	TargetY  float64
	RadiusPx float64 // circle radius / cone length / line length
}

// DrawAoEOverlay renders one area-of-effect template.
func DrawAoEOverlay(c Canvas, t *AoETemplate) {
	c.Clear()
	if t == nil || t.RadiusPx <= 0 {
		return
	}
	ox := float32(t.OriginX)
	oy := float32(t.OriginY)
	switch t.Shape {
	case AoECircle:
		c.FillCircle(ox, oy, float32(t.RadiusPx), aoeFill)
		c.StrokeCircle(ox, oy, float32(t.RadiusPx), 1.5, aoeEdge)
	case AoECone:
		ang := math.Atan2(t.TargetY-t.OriginY, t.TargetX-t.OriginX)
		const halfSpread = math.Pi / 6 // 60 degree cone
		la := ang - halfSpread
		ra := ang + halfSpread
		lx := ox + float32(math.Cos(la)*t.RadiusPx)
		ly := oy + float32(math.Sin(la)*t.RadiusPx)
		rx := ox + float32(math.Cos(ra)*t.RadiusPx)
		ry := oy + float32(math.Sin(ra)*t.RadiusPx)
		c.StrokeLine(ox, oy, lx, ly, 1.5, aoeEdge)
		c.StrokeLine(ox, oy, rx, ry, 1.5, aoeEdge)
		c.StrokeLine(lx, ly, rx, ry, 1.5, aoeEdge)
	case AoELine:
		ang := math.Atan2(t.TargetY-t.OriginY, t.TargetX-t.OriginX)
		ex := ox + float32(math.Cos(ang)*t.RadiusPx)
		ey := oy + float32(math.Sin(ang)*t.RadiusPx)
		c.StrokeLine(ox, oy, ex, ey, 6.0, aoeFill)
		c.StrokeLine(ox, oy, ex, ey, 1.5, aoeEdge)
	}
}

// DrawLightingOverlay renders each light source as concentric translucent
// discs fading outward from the center.
func DrawLightingOverlay(c Canvas, gs GridSettings, lights []LightSource) {
	c.Clear()
	cs := float64(gs.CellSize)
	for _, l := range lights {
		cx, cy := gs.CellCenter(l.Cell)
		r := l.Radius * cs
		if r <= 0 {
			continue
		}
		col := l.Color
		for i, frac := range [3]float64{1.0, 0.6, 0.3} {
			col.A = uint8(18 * (i + 1))
			c.FillCircle(float32(cx), float32(cy), float32(r*frac), col)
		}
	}
}

// DrawWeatherOverlay renders the ambient weather streaks. phase advances with
// animation time so the streaks drift.
func DrawWeatherOverlay(c Canvas, kind WeatherKind, w, h, phase float64) {
	c.Clear()
	if kind == WeatherNone || w <= 0 || h <= 0 {
		return
	}
	switch kind {
	case WeatherRain:
		col := color.RGBA{R: 140, G: 170, B: 220, A: 70}
		const spacing = 48.0
		off := math.Mod(phase*0.25, spacing)
		for x := -spacing; x < w+spacing; x += spacing {
			for y := off; y < h; y += spacing {
				c.StrokeLine(float32(x+y*0.2), float32(y), float32(x+y*0.2-4), float32(y+12), 1.0, col)
			}
		}
	case WeatherSnow:
		col := color.RGBA{R: 235, G: 240, B: 245, A: 90}
		const spacing = 56.0
		off := math.Mod(phase*0.1, spacing)
		for x := spacing / 2; x < w; x += spacing {
			for y := off; y < h; y += spacing {
				drift := math.Sin((y+x)*0.05) * 6
				c.FillCircle(float32(x+drift), float32(y), 1.5, col)
			}
		}
	}
}
