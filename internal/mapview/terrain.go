package mapview

import (
	"image/color"
	"math"
)

// TerrainType identifies the surface of a terrain cell.
type TerrainType uint8

const (
	TerrainDifficult TerrainType = iota
	TerrainWater
	TerrainClimbing
	TerrainHazard
)

// TerrainCell marks one grid cell with a non-default surface. Absent cells
// cost 1.0 to enter. Hosts occasionally send fractional coordinates; they are
// floored onto the grid wherever the cell is consumed.
type TerrainCell struct {
	X            float64
	Y            float64
	Type         TerrainType
	MovementCost float64 // multiplier applied to the base step cost
}

// GridCell returns the integer cell this terrain entry occupies.
func (tc TerrainCell) GridCell() Cell {
	return Cell{X: int(math.Floor(tc.X)), Y: int(math.Floor(tc.Y))}
}

// TerrainMap is a sparse lookup of terrain cells by position.
type TerrainMap map[Cell]TerrainCell

// NewTerrainMap indexes a terrain cell list for cost lookups.
func NewTerrainMap(cells []TerrainCell) TerrainMap {
	if len(cells) == 0 {
		return nil
	}
	tm := make(TerrainMap, len(cells))
	for _, tc := range cells {
		tm[tc.GridCell()] = tc
	}
	return tm
}

// CostAt returns the movement multiplier for entering a cell. Multipliers at
// or below zero are treated as 1 so bad host data cannot wedge the expansion.
func (tm TerrainMap) CostAt(c Cell) float64 {
	if tm == nil {
		return 1.0
	}
	tc, ok := tm[c]
	if !ok || tc.MovementCost <= 0 {
		return 1.0
	}
	return tc.MovementCost
}

// terrainBaseColor returns the fill colour for a terrain type.
func terrainBaseColor(t TerrainType) color.RGBA {
	switch t {
	case TerrainDifficult:
		return color.RGBA{R: 120, G: 84, B: 40, A: 90}
	case TerrainWater:
		return color.RGBA{R: 40, G: 90, B: 160, A: 100}
	case TerrainClimbing:
		return color.RGBA{R: 110, G: 110, B: 110, A: 95}
	case TerrainHazard:
		return color.RGBA{R: 160, G: 40, B: 40, A: 95}
	default:
		return color.RGBA{R: 100, G: 100, B: 100, A: 80}
	}
}
