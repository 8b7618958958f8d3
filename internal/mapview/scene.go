package mapview

import "github.com/hajimehoshi/ebiten/v2"

// LayerID names one drawing surface in the fixed stack.
type LayerID uint8

const (
	LayerGrid LayerID = iota
	LayerTerrain
	LayerMovement
	LayerAoE
	LayerTokens
	LayerFog
	LayerLighting
	LayerWalls
	LayerMeasurement
	LayerWeather
	layerCount
)

// layerOrder is the bottom-to-top composition order. Fog sits above tokens so
// hidden tokens stay hidden; walls and measurement render above fog so the
// host can keep editing through it.
var layerOrder = [layerCount]LayerID{
	LayerGrid, LayerTerrain, LayerMovement, LayerAoE, LayerTokens,
	LayerFog, LayerLighting, LayerWalls, LayerMeasurement, LayerWeather,
}

// Scene owns the offscreen image per layer and composites them through the
// viewport transform, the same world-buffer-then-camera-blit scheme the rest
// of the app renders with.
type Scene struct {
	w, h   int
	layers [layerCount]*ebiten.Image
}

// NewScene allocates the layer stack at the given map pixel size.
func NewScene(w, h int) *Scene {
	s := &Scene{w: w, h: h}
	for i := range s.layers {
		s.layers[i] = ebiten.NewImage(w, h)
	}
	return s
}

// allocScene builds the layer stack, converting an allocation panic from a
// dead graphics environment or degenerate size into ErrGraphicsUnavailable
// so the surface can surface it as a terminal, retryable state.
func allocScene(w, h int) (s *Scene, err error) {
	defer func() {
		if recover() != nil {
			s = nil
			err = ErrGraphicsUnavailable
		}
	}()
	if w <= 0 || h <= 0 {
		return nil, ErrGraphicsUnavailable
	}
	return NewScene(w, h), nil
}

// Resize reallocates every layer. Cheap enough to do only on map changes.
func (s *Scene) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	for i := range s.layers {
		s.layers[i].Deallocate()
	}
	*s = *NewScene(w, h)
}

// Canvas returns the draw surface for one layer.
func (s *Scene) Canvas(id LayerID) Canvas {
	return newEbitenCanvas(s.layers[id])
}

// Size returns the map pixel dimensions of the scene.
func (s *Scene) Size() (int, int) {
	return s.w, s.h
}

// Composite blits every layer in order onto the screen with the pan/zoom
// transform applied.
func (s *Scene) Composite(screen *ebiten.Image, v *Viewport) {
	var geo ebiten.GeoM
	geo.Scale(v.Zoom, v.Zoom)
	geo.Translate(v.PanX, v.PanY)
	for _, id := range layerOrder {
		op := &ebiten.DrawImageOptions{GeoM: geo}
		screen.DrawImage(s.layers[id], op)
	}
}

// Dispose releases the layer images on teardown.
func (s *Scene) Dispose() {
	for i := range s.layers {
		if s.layers[i] != nil {
			s.layers[i].Deallocate()
			s.layers[i] = nil
		}
	}
}
