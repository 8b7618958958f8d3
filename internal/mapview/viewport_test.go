package mapview

import (
	"math"
	"testing"
)

func TestViewport_ZoomClamp(t *testing.T) {
	v := NewViewport()
	v.ZoomAt(100, 0, 0)
	if v.Zoom != zoomMax {
		t.Fatalf("zoom should clamp at %.2f, got %.2f", zoomMax, v.Zoom)
	}
	v.ZoomAt(0.0001, 0, 0)
	if v.Zoom != zoomMin {
		t.Fatalf("zoom should clamp at %.2f, got %.2f", zoomMin, v.Zoom)
	}
}

func TestViewport_TwentyWheelOutsLandAtMin(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 20; i++ {
		v.ZoomWheel(-1, 400, 300)
	}
	if v.Zoom != zoomMin {
		t.Fatalf("repeated zoom-out should settle exactly at %.2f, got %.6f", zoomMin, v.Zoom)
	}
}

func TestViewport_Reset(t *testing.T) {
	v := NewViewport()
	v.ZoomAt(2, 100, 100)
	v.PanBy(37, -12)
	v.Reset()
	if v.Zoom != 1 || v.PanX != 0 || v.PanY != 0 {
		t.Fatalf("reset should restore identity, got %+v", v)
	}
}

func TestViewport_ZoomAtKeepsAnchorFixed(t *testing.T) {
	v := NewViewport()
	v.PanBy(50, -30)
	ax, ay := 320.0, 240.0
	mx, my := v.ScreenToMap(ax, ay)

	v.ZoomAt(1.7, ax, ay)
	sx, sy := v.MapToScreen(mx, my)
	if math.Abs(sx-ax) > 1e-9 || math.Abs(sy-ay) > 1e-9 {
		t.Fatalf("anchor drifted to (%.4f, %.4f)", sx, sy)
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	v := NewViewport()
	v.ZoomAt(1.5, 10, 20)
	v.PanBy(-7, 3)
	mx, my := v.ScreenToMap(123, 456)
	sx, sy := v.MapToScreen(mx, my)
	if math.Abs(sx-123) > 1e-9 || math.Abs(sy-456) > 1e-9 {
		t.Fatalf("round trip drifted to (%.4f, %.4f)", sx, sy)
	}
}

func TestViewport_CenterOn(t *testing.T) {
	v := NewViewport()
	v.Zoom = 2
	v.CenterOn(100, 80, 800, 600)
	sx, sy := v.MapToScreen(100, 80)
	if sx != 400 || sy != 300 {
		t.Fatalf("centered point should land mid-screen, got (%.1f, %.1f)", sx, sy)
	}
}

func TestViewport_WheelZeroIsNoop(t *testing.T) {
	v := NewViewport()
	v.PanBy(11, 22)
	before := *v
	v.ZoomWheel(0, 100, 100)
	if *v != before {
		t.Fatalf("zero wheel delta should change nothing, got %+v", v)
	}
}
