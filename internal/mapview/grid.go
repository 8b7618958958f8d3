package mapview

import "image/color"

// GridType selects the cell geometry. Only square grids are fully supported;
// hex settings are accepted but rendered as squares until the hex renderer lands.
type GridType uint8

const (
	GridSquare GridType = iota
	GridHex
)

// GridSettings describes the map grid for one render pass. Supplied by the
// host game state and treated as immutable here.
type GridSettings struct {
	CellSize int // pixels per cell edge
	OffsetX  int // pixel offset of cell (0,0) from the map origin
	OffsetY  int
	Enabled  bool
	Color    color.RGBA
	Opacity  float64 // 0..1, multiplied into Color's alpha
	Type     GridType
}

// DefaultGridSettings returns the grid used when the snapshot carries none.
func DefaultGridSettings() GridSettings {
	return GridSettings{
		CellSize: 50,
		Enabled:  true,
		Color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Opacity:  0.25,
		Type:     GridSquare,
	}
}

// Cell addresses one grid cell by integer coordinates.
type Cell struct {
	X int
	Y int
}

// PixelToCell converts map-local pixel coordinates to the containing cell,
// honouring the grid offset. Negative pixels floor toward negative cells so
// the mapping has no double-width cell at zero.
func (gs GridSettings) PixelToCell(px, py float64) Cell {
	return Cell{
		X: floorDiv(px-float64(gs.OffsetX), float64(gs.CellSize)),
		Y: floorDiv(py-float64(gs.OffsetY), float64(gs.CellSize)),
	}
}

// CellToPixel returns the top-left pixel corner of a cell.
func (gs GridSettings) CellToPixel(c Cell) (float64, float64) {
	return float64(c.X*gs.CellSize + gs.OffsetX), float64(c.Y*gs.CellSize + gs.OffsetY)
}

// CellCenter returns the pixel center of a cell.
func (gs GridSettings) CellCenter(c Cell) (float64, float64) {
	px, py := gs.CellToPixel(c)
	half := float64(gs.CellSize) / 2
	return px + half, py + half
}

func floorDiv(a, b float64) int {
	q := a / b
	n := int(q)
	if q < 0 && float64(n) != q {
		n--
	}
	return n
}

// VisibleCells returns every cell whose rectangle intersects the map-local
// pixel window (x0,y0)-(x1,y1), in row-major order.
func (gs GridSettings) VisibleCells(x0, y0, x1, y1 float64) []Cell {
	if gs.CellSize <= 0 || x1 <= x0 || y1 <= y0 {
		return nil
	}
	min := gs.PixelToCell(x0, y0)
	max := gs.PixelToCell(x1-1, y1-1)
	out := make([]Cell, 0, (max.X-min.X+1)*(max.Y-min.Y+1))
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// DrawGrid strokes the grid lines over the window (x0,y0)-(x1,y1).
// Disabled grids draw nothing.
func DrawGrid(c Canvas, gs GridSettings, x0, y0, x1, y1 float64) {
	c.Clear()
	if !gs.Enabled || gs.CellSize <= 0 {
		return
	}
	col := gs.Color
	col.A = uint8(float64(col.A) * clamp01(gs.Opacity))
	cs := float64(gs.CellSize)
	startX := float64(gs.OffsetX) + cs*float64(floorDiv(x0-float64(gs.OffsetX), cs))
	startY := float64(gs.OffsetY) + cs*float64(floorDiv(y0-float64(gs.OffsetY), cs))
	for x := startX; x <= x1; x += cs {
		c.StrokeLine(float32(x), float32(y0), float32(x), float32(y1), 1.0, col)
	}
	for y := startY; y <= y1; y += cs {
		c.StrokeLine(float32(x0), float32(y), float32(x1), float32(y), 1.0, col)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
