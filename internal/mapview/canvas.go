package mapview

import "image/color"

// Canvas is the drawing surface handed to the stateless overlay passes.
// The interactive build backs it with an Ebiten layer image; tests back it
// with a recording implementation that counts primitives.
type Canvas interface {
	// Clear wipes the surface to fully transparent.
	Clear()
	FillRect(x, y, w, h float32, c color.RGBA)
	StrokeRect(x, y, w, h, width float32, c color.RGBA)
	StrokeLine(x0, y0, x1, y1, width float32, c color.RGBA)
	FillCircle(cx, cy, r float32, c color.RGBA)
	StrokeCircle(cx, cy, r, width float32, c color.RGBA)
	// FillCells fills one square per cell in a single batched operation.
	// The fog pass relies on this to keep its draw cost at O(alpha bands).
	FillCells(cells []Cell, gs GridSettings, c color.RGBA)
	// Label draws small text anchored at (x, y) top-left.
	Label(s string, x, y float32, c color.RGBA)
}
