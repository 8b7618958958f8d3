package mapview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// MapReport builds a plain-text snapshot summary: grid, fog coverage, token
// roster, and a reachability sample for the active token. Used by the C-key
// clipboard action and the mapreport command.
func MapReport(snap *MapSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- map report: %s ---\n", snap.MapID)
	fmt.Fprintf(&b, "grid: cell=%dpx offset=(%d,%d) enabled=%v\n",
		snap.Grid.CellSize, snap.Grid.OffsetX, snap.Grid.OffsetY, snap.Grid.Enabled)

	fmt.Fprintf(&b, "fog: enabled=%v dynamic=%v revealed=%d explored=%d\n",
		snap.Fog.Enabled, snap.Fog.DynamicFogEnabled,
		len(snap.Fog.RevealedCells), len(snap.Fog.ExploredCells))

	doors, closed := 0, 0
	for _, w := range snap.Walls {
		if w.Type == WallDoor {
			doors++
		}
		if !w.IsOpen {
			closed++
		}
	}
	fmt.Fprintf(&b, "walls: %d segments (%d doors, %d closed)\n", len(snap.Walls), doors, closed)
	fmt.Fprintf(&b, "terrain: %d cells  lights: %d\n", len(snap.Terrain), len(snap.Lights))

	tokens := append([]MapToken(nil), snap.Tokens...)
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].ID < tokens[j].ID })
	fmt.Fprintf(&b, "tokens: %d\n", len(tokens))
	for _, t := range tokens {
		vis := "hidden"
		if t.VisibleToPlayers {
			vis = "visible"
		}
		fmt.Fprintf(&b, "  - %s %q at (%d,%d) hp=%d/%d %s\n",
			t.ID, t.Label, t.GridX, t.GridY, t.CurrentHP, t.MaxHP, vis)
	}

	if snap.Movement != nil && snap.Movement.Budget > 0 {
		reach := ReachableCells(snap.Movement.Origin, snap.Movement.Budget,
			NewWallSet(snap.Walls), NewTerrainMap(snap.Terrain))
		fmt.Fprintf(&b, "reachable from (%d,%d) budget %.1f: %d cells\n",
			snap.Movement.Origin.X, snap.Movement.Origin.Y,
			snap.Movement.Budget, len(reach))
	}
	return b.String()
}

// CopyMapReport writes the report to the system clipboard.
func CopyMapReport(snap *MapSnapshot) error {
	return clipboard.WriteAll(MapReport(snap))
}
