package mapview

// Zoom limits and the per-wheel-tick factor.
const (
	zoomMin        = 0.25
	zoomMax        = 4.0
	zoomWheelStep  = 1.12
	keyPanSpeedPxS = 420.0 // screen pixels per second while a pan key is held
)

// Viewport is the pan/zoom transform from map space to screen space.
// screen = map*Zoom + Pan.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

// Reset restores the identity view.
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.PanX = 0
	v.PanY = 0
}

// ScreenToMap converts a screen point to map-local pixels.
func (v *Viewport) ScreenToMap(sx, sy float64) (float64, float64) {
	return (sx - v.PanX) / v.Zoom, (sy - v.PanY) / v.Zoom
}

// MapToScreen converts map-local pixels to screen space.
func (v *Viewport) MapToScreen(mx, my float64) (float64, float64) {
	return mx*v.Zoom + v.PanX, my*v.Zoom + v.PanY
}

// ZoomAt multiplies the zoom by factor, clamps it, and adjusts pan so the
// map point under the screen anchor (ax, ay) stays fixed.
func (v *Viewport) ZoomAt(factor, ax, ay float64) {
	mx, my := v.ScreenToMap(ax, ay)
	v.Zoom *= factor
	if v.Zoom < zoomMin {
		v.Zoom = zoomMin
	}
	if v.Zoom > zoomMax {
		v.Zoom = zoomMax
	}
	v.PanX = ax - mx*v.Zoom
	v.PanY = ay - my*v.Zoom
}

// ZoomWheel applies one wheel tick. Positive dy zooms in.
func (v *Viewport) ZoomWheel(dy, ax, ay float64) {
	if dy > 0 {
		v.ZoomAt(zoomWheelStep, ax, ay)
	} else if dy < 0 {
		v.ZoomAt(1/zoomWheelStep, ax, ay)
	}
}

// PanBy shifts the view by screen-space pixels.
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// CenterOn recomputes pan so the map point (mx, my) sits at the middle of a
// viewWidth x viewHeight screen, honouring the current zoom.
func (v *Viewport) CenterOn(mx, my float64, viewWidth, viewHeight int) {
	v.PanX = float64(viewWidth)/2 - mx*v.Zoom
	v.PanY = float64(viewHeight)/2 - my*v.Zoom
}
