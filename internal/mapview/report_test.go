package mapview

import (
	"strings"
	"testing"
)

func TestMapReport_Contents(t *testing.T) {
	snap := testSnapshot(RoleHost, "")
	snap.Walls = []Wall{
		{ID: "w1", X1: 0, Y1: 0, X2: 3, Y2: 0},
		{ID: "d1", X1: 3, Y1: 0, X2: 3, Y2: 1, Type: WallDoor, IsOpen: true},
	}
	snap.Fog = FogOfWarData{Enabled: true, RevealedCells: cellSetOf(Cell{X: 1, Y: 1})}
	snap.Movement = &MovementHint{Origin: Cell{X: 2, Y: 2}, Budget: 2}

	r := MapReport(snap)
	for _, want := range []string{
		"map report: m1",
		"cell=50px",
		"fog: enabled=true",
		"revealed=1",
		"walls: 2 segments (1 doors, 1 closed)",
		`t1 "Aela" at (2,2) hp=20/30 visible`,
		"reachable from (2,2) budget 2.0",
	} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}

func TestMapReport_TokensSortedByID(t *testing.T) {
	snap := testSnapshot(RoleHost, "")
	b := testToken("b2")
	a := testToken("a1")
	snap.Tokens = []MapToken{b, a}

	r := MapReport(snap)
	if strings.Index(r, "a1") > strings.Index(r, "b2") {
		t.Fatal("tokens should be listed in id order")
	}
}

func TestMapReport_NoMovementHint(t *testing.T) {
	snap := testSnapshot(RoleHost, "")
	r := MapReport(snap)
	if strings.Contains(r, "reachable from") {
		t.Fatal("report without a movement hint should omit the reachability line")
	}
}
