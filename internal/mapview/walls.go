package mapview

// WallType distinguishes solid walls from other barrier kinds the host may
// send (fences, windows). Only solid walls block sight; every closed wall
// blocks movement.
type WallType uint8

const (
	WallSolid WallType = iota
	WallDoor
	WallWindow
)

// Wall is one barrier segment with endpoints in grid-corner coordinates.
// A door is a wall that can be open (IsOpen permits traversal and sight).
type Wall struct {
	ID     string
	X1, Y1 float64
	X2, Y2 float64
	Type   WallType
	IsOpen bool
}

// WallSet answers traversal and sight queries against a wall list.
// It is rebuilt from the snapshot each pass; the list itself stays read-only.
type WallSet struct {
	walls []Wall
}

// NewWallSet wraps a wall list. A nil or empty list yields a set that blocks
// nothing, which is also what legacy maps without wall data send.
func NewWallSet(walls []Wall) *WallSet {
	return &WallSet{walls: walls}
}

// Empty reports whether the set has no wall data at all.
func (ws *WallSet) Empty() bool {
	return ws == nil || len(ws.walls) == 0
}

// BlocksStep reports whether moving between the centers of two adjacent cells
// crosses any closed wall. Centers are at (x+0.5, y+0.5) in grid space.
func (ws *WallSet) BlocksStep(from, to Cell) bool {
	if ws.Empty() {
		return false
	}
	ax := float64(from.X) + 0.5
	ay := float64(from.Y) + 0.5
	bx := float64(to.X) + 0.5
	by := float64(to.Y) + 0.5
	for i := range ws.walls {
		w := &ws.walls[i]
		if w.IsOpen {
			continue
		}
		if segmentsCross(ax, ay, bx, by, w.X1, w.Y1, w.X2, w.Y2) {
			return true
		}
	}
	return false
}

// BlocksSight reports whether the line between two cell centers crosses a
// closed, sight-blocking wall. Windows never block sight.
func (ws *WallSet) BlocksSight(from, to Cell) bool {
	if ws.Empty() {
		return false
	}
	ax := float64(from.X) + 0.5
	ay := float64(from.Y) + 0.5
	bx := float64(to.X) + 0.5
	by := float64(to.Y) + 0.5
	for i := range ws.walls {
		w := &ws.walls[i]
		if w.IsOpen || w.Type == WallWindow {
			continue
		}
		if segmentsCross(ax, ay, bx, by, w.X1, w.Y1, w.X2, w.Y2) {
			return true
		}
	}
	return false
}

// ToggleDoor flips the open state of the wall with the given id and returns
// whether a door was found. Non-door walls are left alone.
func ToggleDoor(walls []Wall, id string) bool {
	for i := range walls {
		if walls[i].ID == id && walls[i].Type == WallDoor {
			walls[i].IsOpen = !walls[i].IsOpen
			return true
		}
	}
	return false
}

// segmentsCross reports proper intersection of segments AB and CD, counting
// touches at a shared endpoint or collinear overlap as crossings. Movement
// through the very end of a wall still counts as crossing it.
func segmentsCross(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	d1 := cross(dx-cx, dy-cy, ax-cx, ay-cy)
	d2 := cross(dx-cx, dy-cy, bx-cx, by-cy)
	d3 := cross(bx-ax, by-ay, cx-ax, cy-ay)
	d4 := cross(bx-ax, by-ay, dx-ax, dy-ay)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(cx, cy, dx, dy, ax, ay) {
		return true
	}
	if d2 == 0 && onSegment(cx, cy, dx, dy, bx, by) {
		return true
	}
	if d3 == 0 && onSegment(ax, ay, bx, by, cx, cy) {
		return true
	}
	if d4 == 0 && onSegment(ax, ay, bx, by, dx, dy) {
		return true
	}
	return false
}

func cross(ux, uy, vx, vy float64) float64 {
	return ux*vy - uy*vx
}

// onSegment assumes P is collinear with AB and checks it lies within the box.
func onSegment(ax, ay, bx, by, px, py float64) bool {
	return minf(ax, bx) <= px && px <= maxf(ax, bx) &&
		minf(ay, by) <= py && py <= maxf(ay, by)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
