package mapview

import (
	"reflect"
	"testing"
)

func reachSet(cells []ReachableCell) map[Cell]float64 {
	out := make(map[Cell]float64, len(cells))
	for _, rc := range cells {
		out[Cell{X: rc.X, Y: rc.Y}] = rc.Cost
	}
	return out
}

func TestReachableCells_ZeroBudget(t *testing.T) {
	if got := ReachableCells(Cell{}, 0, nil, nil); got != nil {
		t.Fatalf("zero budget should reach nothing, got %d cells", len(got))
	}
	if got := ReachableCells(Cell{}, -3, nil, nil); got != nil {
		t.Fatal("negative budget should reach nothing")
	}
}

func TestReachableCells_OriginIncluded(t *testing.T) {
	got := ReachableCells(Cell{X: 2, Y: 2}, 1, nil, nil)
	if len(got) == 0 {
		t.Fatal("expected at least the origin")
	}
	if got[0].X != 2 || got[0].Y != 2 || got[0].Cost != 0 {
		t.Fatalf("origin should settle first at cost 0, got %+v", got[0])
	}
}

func TestReachableCells_BudgetOne(t *testing.T) {
	got := reachSet(ReachableCells(Cell{}, 1, nil, nil))
	// Origin + 4 orthogonal neighbours; diagonals cost 1.5 and exceed budget.
	if len(got) != 5 {
		t.Fatalf("expected 5 cells at budget 1, got %d", len(got))
	}
	if _, ok := got[Cell{X: 1, Y: 1}]; ok {
		t.Fatal("diagonal should not be reachable at budget 1")
	}
}

func TestReachableCells_DiagonalCost(t *testing.T) {
	got := reachSet(ReachableCells(Cell{}, 1.5, nil, nil))
	cost, ok := got[Cell{X: 1, Y: 1}]
	if !ok {
		t.Fatal("diagonal should be reachable at budget 1.5")
	}
	if cost != 1.5 {
		t.Fatalf("diagonal cost should be 1.5, got %.2f", cost)
	}
}

func TestReachableCells_WallBlocksOnlyEdge(t *testing.T) {
	// A long wall isolating (1,0) from every neighbour of the origin side
	// except around the ends — use a budget too small to route around.
	walls := NewWallSet([]Wall{{ID: "w", X1: 1, Y1: -2, X2: 1, Y2: 3}})
	got := reachSet(ReachableCells(Cell{X: 0, Y: 0}, 1, walls, nil))
	if _, ok := got[Cell{X: 1, Y: 0}]; ok {
		t.Fatal("cell behind a closed wall must not be reachable")
	}
	if _, ok := got[Cell{X: -1, Y: 0}]; !ok {
		t.Fatal("cell away from the wall should still be reachable")
	}
}

func TestReachableCells_WallBlockedEvenWithLargeBudget(t *testing.T) {
	// Box the target cell in completely; no budget can reach it.
	walls := NewWallSet([]Wall{
		{ID: "n", X1: 3, Y1: 3, X2: 4, Y2: 3},
		{ID: "s", X1: 3, Y1: 4, X2: 4, Y2: 4},
		{ID: "w", X1: 3, Y1: 3, X2: 3, Y2: 4},
		{ID: "e", X1: 4, Y1: 3, X2: 4, Y2: 4},
	})
	got := reachSet(ReachableCells(Cell{X: 0, Y: 0}, 50, walls, nil))
	if _, ok := got[Cell{X: 3, Y: 3}]; ok {
		t.Fatal("fully walled cell must be unreachable at any budget")
	}
	if _, ok := got[Cell{X: 2, Y: 3}]; !ok {
		t.Fatal("cell outside the box should be reachable")
	}
}

func TestReachableCells_OpenDoorAdmits(t *testing.T) {
	walls := []Wall{
		{ID: "n", X1: 3, Y1: 3, X2: 4, Y2: 3},
		{ID: "s", X1: 3, Y1: 4, X2: 4, Y2: 4},
		{ID: "d", X1: 3, Y1: 3, X2: 3, Y2: 4, Type: WallDoor},
		{ID: "e", X1: 4, Y1: 3, X2: 4, Y2: 4},
	}
	before := reachSet(ReachableCells(Cell{X: 0, Y: 0}, 50, NewWallSet(walls), nil))
	if _, ok := before[Cell{X: 3, Y: 3}]; ok {
		t.Fatal("closed door should seal the room")
	}
	ToggleDoor(walls, "d")
	after := reachSet(ReachableCells(Cell{X: 0, Y: 0}, 50, NewWallSet(walls), nil))
	if _, ok := after[Cell{X: 3, Y: 3}]; !ok {
		t.Fatal("opening the door should admit the room")
	}
}

func TestReachableCells_BudgetMonotonic(t *testing.T) {
	walls := NewWallSet([]Wall{{ID: "w", X1: 2, Y1: -1, X2: 2, Y2: 2}})
	small := reachSet(ReachableCells(Cell{}, 3, walls, nil))
	large := reachSet(ReachableCells(Cell{}, 9, walls, nil))
	for c := range small {
		if _, ok := large[c]; !ok {
			t.Fatalf("raising the budget lost cell %v", c)
		}
	}
	if len(large) < len(small) {
		t.Fatal("larger budget should never shrink the reachable set")
	}
}

func TestReachableCells_TerrainMultiplier(t *testing.T) {
	terrain := NewTerrainMap([]TerrainCell{
		{X: 1, Y: 0, Type: TerrainDifficult, MovementCost: 2},
	})
	got := reachSet(ReachableCells(Cell{}, 1, nil, terrain))
	if _, ok := got[Cell{X: 1, Y: 0}]; ok {
		t.Fatal("difficult cell should cost 2 and exceed budget 1")
	}
	got = reachSet(ReachableCells(Cell{}, 2, nil, terrain))
	if cost, ok := got[Cell{X: 1, Y: 0}]; !ok || cost != 2 {
		t.Fatalf("difficult cell should enter at cost 2, got %v %v", cost, ok)
	}
}

func TestReachableCells_Deterministic(t *testing.T) {
	walls := NewWallSet([]Wall{{ID: "w", X1: 1, Y1: 0, X2: 1, Y2: 2}})
	terrain := NewTerrainMap([]TerrainCell{{X: 0, Y: 1, Type: TerrainWater, MovementCost: 2}})
	a := ReachableCells(Cell{}, 4, walls, terrain)
	b := ReachableCells(Cell{}, 4, walls, terrain)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs must return identical ordered results")
	}
}

func TestReachableCells_NoCornerCutting(t *testing.T) {
	// Walls meet at corner (1,1): one along the east edge of (0,0), one along
	// the south edge. The diagonal into (1,1) must not squeeze through.
	walls := NewWallSet([]Wall{
		{ID: "v", X1: 1, Y1: 0, X2: 1, Y2: 1},
		{ID: "h", X1: 0, Y1: 1, X2: 1, Y2: 1},
	})
	got := reachSet(ReachableCells(Cell{}, 1.5, walls, nil))
	if _, ok := got[Cell{X: 1, Y: 1}]; ok {
		t.Fatal("diagonal must not cut the wall corner")
	}
}
