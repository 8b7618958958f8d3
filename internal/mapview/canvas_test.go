package mapview

import "image/color"

// recordCanvas is a headless Canvas that counts primitives, used by the
// overlay and fog tests the way the sim tests use the headless harness.
type recordCanvas struct {
	clears      int
	fillRects   int
	strokeRects int
	lines       int
	fillCircles int
	ringCircles int
	labels      int

	batches     [][]Cell     // one entry per FillCells call
	batchColors []color.RGBA // colour per batch
	lastLabel   string
}

func newRecordCanvas() *recordCanvas {
	return &recordCanvas{}
}

func (r *recordCanvas) Clear() { r.clears++ }

func (r *recordCanvas) FillRect(x, y, w, h float32, c color.RGBA) { r.fillRects++ }

func (r *recordCanvas) StrokeRect(x, y, w, h, width float32, c color.RGBA) { r.strokeRects++ }

func (r *recordCanvas) StrokeLine(x0, y0, x1, y1, width float32, c color.RGBA) { r.lines++ }

func (r *recordCanvas) FillCircle(cx, cy, rad float32, c color.RGBA) { r.fillCircles++ }

func (r *recordCanvas) StrokeCircle(cx, cy, rad, width float32, c color.RGBA) { r.ringCircles++ }

func (r *recordCanvas) FillCells(cells []Cell, gs GridSettings, c color.RGBA) {
	r.batches = append(r.batches, append([]Cell(nil), cells...))
	r.batchColors = append(r.batchColors, c)
}

func (r *recordCanvas) Label(s string, x, y float32, c color.RGBA) {
	r.labels++
	r.lastLabel = s
}

// drawOps counts every drawing primitive issued since construction.
func (r *recordCanvas) drawOps() int {
	return r.fillRects + r.strokeRects + r.lines + r.fillCircles +
		r.ringCircles + r.labels + len(r.batches)
}

// batchedCells flattens every FillCells batch into one set.
func (r *recordCanvas) batchedCells() map[Cell]struct{} {
	out := make(map[Cell]struct{})
	for _, b := range r.batches {
		for _, c := range b {
			out[c] = struct{}{}
		}
	}
	return out
}
