package mapview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// labelFace is the small fixed face used for token names and measurements.
var labelFace = text.NewGoXFace(basicfont.Face7x13)

// ebitenCanvas draws onto one layer image.
type ebitenCanvas struct {
	img *ebiten.Image
}

func newEbitenCanvas(img *ebiten.Image) *ebitenCanvas {
	return &ebitenCanvas{img: img}
}

func (e *ebitenCanvas) Clear() {
	e.img.Clear()
}

func (e *ebitenCanvas) FillRect(x, y, w, h float32, c color.RGBA) {
	vector.FillRect(e.img, x, y, w, h, c, false)
}

func (e *ebitenCanvas) StrokeRect(x, y, w, h, width float32, c color.RGBA) {
	vector.StrokeRect(e.img, x, y, w, h, width, c, false)
}

func (e *ebitenCanvas) StrokeLine(x0, y0, x1, y1, width float32, c color.RGBA) {
	vector.StrokeLine(e.img, x0, y0, x1, y1, width, c, false)
}

func (e *ebitenCanvas) FillCircle(cx, cy, r float32, c color.RGBA) {
	vector.FillCircle(e.img, cx, cy, r, c, false)
}

func (e *ebitenCanvas) StrokeCircle(cx, cy, r, width float32, c color.RGBA) {
	vector.StrokeCircle(e.img, cx, cy, r, width, c, false)
}

func (e *ebitenCanvas) FillCells(cells []Cell, gs GridSettings, c color.RGBA) {
	cs := float32(gs.CellSize)
	for _, cell := range cells {
		px, py := gs.CellToPixel(cell)
		vector.FillRect(e.img, float32(px), float32(py), cs, cs, c, false)
	}
}

func (e *ebitenCanvas) Label(s string, x, y float32, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(e.img, s, labelFace, op)
}
