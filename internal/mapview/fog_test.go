package mapview

import "testing"

func cellSetOf(cells ...Cell) map[Cell]struct{} {
	out := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		out[c] = struct{}{}
	}
	return out
}

func gridWindow(w, h int) []Cell {
	var out []Cell
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

func TestComputeUnrevealed_ExcludesRevealed(t *testing.T) {
	data := FogOfWarData{
		Enabled: true,
		RevealedCells: cellSetOf(
			Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: 0, Y: 1},
		),
	}
	got := ComputeUnrevealed(data, gridWindow(2, 2), nil, nil)
	if len(got) != 1 {
		t.Fatalf("expected exactly one fogged cell, got %d", len(got))
	}
	if _, ok := got[Cell{X: 1, Y: 1}]; !ok {
		t.Fatal("cell (1,1) should be the only fogged cell")
	}
}

func TestComputeUnrevealed_DynamicVision(t *testing.T) {
	data := FogOfWarData{Enabled: true, DynamicFogEnabled: true}
	vision := []VisionSource{{Cell: Cell{X: 1, Y: 1}, Radius: 1}}
	got := ComputeUnrevealed(data, gridWindow(4, 4), vision, nil)
	if _, ok := got[Cell{X: 1, Y: 1}]; ok {
		t.Fatal("vision source cell should be clear")
	}
	if _, ok := got[Cell{X: 2, Y: 1}]; ok {
		t.Fatal("cell inside vision radius should be clear")
	}
	if _, ok := got[Cell{X: 3, Y: 3}]; !ok {
		t.Fatal("cell outside vision radius should stay fogged")
	}
}

func TestComputeUnrevealed_WallBlocksVision(t *testing.T) {
	data := FogOfWarData{Enabled: true, DynamicFogEnabled: true}
	vision := []VisionSource{{Cell: Cell{X: 0, Y: 0}, Radius: 2}}
	walls := NewWallSet([]Wall{{ID: "w", X1: 1, Y1: -1, X2: 1, Y2: 2}})
	got := ComputeUnrevealed(data, gridWindow(3, 1), vision, walls)
	if _, ok := got[Cell{X: 0, Y: 0}]; ok {
		t.Fatal("source side of the wall should be clear")
	}
	if _, ok := got[Cell{X: 2, Y: 0}]; !ok {
		t.Fatal("cell behind the wall should stay fogged")
	}
}

func TestFogRender_DisabledDrawsNothing(t *testing.T) {
	f := NewFogEngine()
	rc := newRecordCanvas()
	f.Render(rc, DefaultGridSettings(), FogOfWarData{Enabled: false}, gridWindow(4, 4), nil, nil)
	if rc.clears != 1 {
		t.Fatalf("expected one clear, got %d", rc.clears)
	}
	if rc.drawOps() != 0 {
		t.Fatalf("disabled fog must not draw, got %d ops", rc.drawOps())
	}
}

func TestFogRender_StaticFallback(t *testing.T) {
	f := NewFogEngine()
	rc := newRecordCanvas()
	data := FogOfWarData{
		Enabled:       true,
		RevealedCells: cellSetOf(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: 0, Y: 1}),
	}
	f.Render(rc, DefaultGridSettings(), data, gridWindow(2, 2), nil, nil)
	cells := rc.batchedCells()
	if len(cells) != 1 {
		t.Fatalf("expected one fogged cell in static mode, got %d", len(cells))
	}
	if _, ok := cells[Cell{X: 1, Y: 1}]; !ok {
		t.Fatal("cell (1,1) should be the fogged cell")
	}
	if a := f.AlphaAt(Cell{X: 1, Y: 1}); a != fogTargetAlpha {
		t.Fatalf("static alpha should be the target, got %.2f", a)
	}
}

func TestFogRender_ExploredShroudLighter(t *testing.T) {
	f := NewFogEngine()
	data := FogOfWarData{
		Enabled:       true,
		ExploredCells: cellSetOf(Cell{X: 0, Y: 0}),
	}
	rc := newRecordCanvas()
	f.Render(rc, DefaultGridSettings(), data, gridWindow(2, 1), nil, nil)
	if a := f.AlphaAt(Cell{X: 0, Y: 0}); a != fogExploredAlpha {
		t.Fatalf("explored cell should use the lighter shroud, got %.2f", a)
	}
	if a := f.AlphaAt(Cell{X: 1, Y: 0}); a != fogTargetAlpha {
		t.Fatalf("unexplored cell should use full fog, got %.2f", a)
	}
}

func TestFogAdvance_ConvergesWithoutOvershoot(t *testing.T) {
	f := NewFogEngine()
	f.AttachTicker()
	target := Cell{X: 0, Y: 0}
	f.Reconcile(cellSetOf(target), nil)

	last := 0.0
	for i := 0; i < 200; i++ {
		f.Advance(16.0)
		a := f.AlphaAt(target)
		if a > fogTargetAlpha {
			t.Fatalf("alpha overshot target: %.3f", a)
		}
		if a < last {
			t.Fatalf("alpha regressed while rising: %.3f < %.3f", a, last)
		}
		last = a
	}
	if last != fogTargetAlpha {
		t.Fatalf("alpha should settle at the target, got %.3f", last)
	}

	// Reveal the cell: alpha drains to zero and the entry is pruned.
	f.Reconcile(cellSetOf(), nil)
	for i := 0; i < 200; i++ {
		f.Advance(16.0)
	}
	if f.TrackedCells() != 0 {
		t.Fatalf("settled cells should be pruned, %d still tracked", f.TrackedCells())
	}
	if a := f.AlphaAt(target); a != 0 {
		t.Fatalf("revealed cell should read zero alpha, got %.3f", a)
	}
}

func TestFogAdvance_HideSlowerThanReveal(t *testing.T) {
	f := NewFogEngine()
	f.AttachTicker()
	c := Cell{X: 2, Y: 2}
	f.Reconcile(cellSetOf(c), nil)

	ticks := 0
	for f.AlphaAt(c) < fogTargetAlpha {
		f.Advance(16.0)
		ticks++
		if ticks > 1000 {
			t.Fatal("hide animation never converged")
		}
	}
	hideTicks := ticks

	f.Reconcile(cellSetOf(), nil)
	ticks = 0
	for f.TrackedCells() > 0 {
		f.Advance(16.0)
		ticks++
		if ticks > 1000 {
			t.Fatal("reveal animation never converged")
		}
	}
	if ticks >= hideTicks {
		t.Fatalf("reveal (%d ticks) should be faster than hide (%d ticks)", ticks, hideTicks)
	}
}

func TestFogRender_BandedDrawBudget(t *testing.T) {
	f := NewFogEngine()
	f.AttachTicker()
	data := FogOfWarData{Enabled: true}
	viewport := gridWindow(30, 30)

	rc := newRecordCanvas()
	f.Render(rc, DefaultGridSettings(), data, viewport, nil, nil)
	// Let the fade-in run a few frames so cells carry a mid-range alpha.
	for i := 0; i < 5; i++ {
		f.Advance(40.0)
		rc = newRecordCanvas()
		f.Render(rc, DefaultGridSettings(), data, viewport, nil, nil)
	}
	if rc.drawOps() > fogAlphaBands {
		t.Fatalf("banded rendering issued %d fills, budget is %d", rc.drawOps(), fogAlphaBands)
	}
	if got := len(rc.batchedCells()); got != 900 {
		t.Fatalf("every fogged cell should be batched, got %d of 900", got)
	}
}

func TestFogDetachTicker_ResetsAnimation(t *testing.T) {
	f := NewFogEngine()
	f.AttachTicker()
	f.Reconcile(cellSetOf(Cell{X: 1, Y: 1}), nil)
	f.Advance(100)
	if f.TrackedCells() == 0 {
		t.Fatal("expected a tracked cell before detach")
	}
	f.DetachTicker()
	if f.TrackedCells() != 0 {
		t.Fatal("detach should discard animation state")
	}
}
