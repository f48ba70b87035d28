package soromap

import (
	"math"
	"testing"
)

// finishAnim drives the navigation tween to completion.
func finishAnim(v *Viewport) {
	for i := 0; i < 120 && v.animating(); i++ {
		v.update(1.0 / 60.0)
	}
}

// --- transform ---

func TestViewportStartsCentered(t *testing.T) {
	v := newViewport(800, 600)
	assertNear(t, "Scale", v.Scale, 1)
	assertNear(t, "TX", v.TX, 400)
	assertNear(t, "TY", v.TY, 300)
}

func TestApplyInvertRoundTrip(t *testing.T) {
	v := newViewport(800, 600)
	v.Scale = 2.5
	v.TX = 123
	v.TY = -45

	points := [][2]float64{{0, 0}, {10, 20}, {-300, 450}, {0.5, -0.25}}
	for _, p := range points {
		sx, sy := v.Apply(p[0], p[1])
		x, y := v.Invert(sx, sy)
		assertNear(t, "round-trip x", x, p[0])
		assertNear(t, "round-trip y", y, p[1])
	}
}

// --- pan ---

func TestPanShiftsTranslation(t *testing.T) {
	v := newViewport(800, 600)
	v.Pan(30, -20)
	assertNear(t, "TX", v.TX, 430)
	assertNear(t, "TY", v.TY, 280)
	assertNear(t, "Scale unchanged", v.Scale, 1)
}

func TestPanCancelsAnimation(t *testing.T) {
	v := newViewport(800, 600)
	v.ZoomIn()
	if !v.animating() {
		t.Fatal("ZoomIn did not start an animation")
	}
	v.Pan(1, 1)
	if v.animating() {
		t.Error("Pan left the animation running")
	}
}

// --- wheel zoom ---

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	v := newViewport(800, 600)
	cursorX, cursorY := 200.0, 150.0
	simX, simY := v.Invert(cursorX, cursorY)

	v.ZoomAt(1.5, cursorX, cursorY)

	gotX, gotY := v.Apply(simX, simY)
	assertNear(t, "cursor x after zoom", gotX, cursorX)
	assertNear(t, "cursor y after zoom", gotY, cursorY)
	assertNear(t, "scale", v.Scale, 1.5)
}

func TestZoomAtClampsScale(t *testing.T) {
	v := newViewport(800, 600)
	for i := 0; i < 50; i++ {
		v.ZoomAt(10, 400, 300)
	}
	assertNear(t, "max scale", v.Scale, maxScale)
	for i := 0; i < 100; i++ {
		v.ZoomAt(0.1, 400, 300)
	}
	assertNear(t, "min scale", v.Scale, minScale)
}

// --- animated navigation ---

func TestZoomInAnimatesToStep(t *testing.T) {
	v := newViewport(800, 600)
	centerX, centerY := v.Invert(400, 300)
	v.ZoomIn()
	if !v.animating() {
		t.Fatal("ZoomIn did not start an animation")
	}
	finishAnim(v)
	if v.animating() {
		t.Fatal("animation never completed")
	}
	// gween tweens run in float32; allow coarser tolerance.
	if math.Abs(v.Scale-zoomStep) > 1e-3 {
		t.Errorf("Scale = %v, want %v", v.Scale, zoomStep)
	}
	gotX, gotY := v.Apply(centerX, centerY)
	if math.Abs(gotX-400) > 1e-2 || math.Abs(gotY-300) > 1e-2 {
		t.Errorf("visible center moved to (%v, %v), want (400, 300)", gotX, gotY)
	}
}

func TestZoomOutInvertsZoomIn(t *testing.T) {
	v := newViewport(800, 600)
	v.ZoomIn()
	finishAnim(v)
	v.ZoomOut()
	finishAnim(v)
	if math.Abs(v.Scale-1) > 1e-3 {
		t.Errorf("Scale = %v after zoom in + out, want 1", v.Scale)
	}
}

func TestResetRestoresInitialTransform(t *testing.T) {
	v := newViewport(800, 600)
	v.Pan(123, -45)
	v.ZoomAt(3, 10, 10)
	v.Reset()
	finishAnim(v)
	if math.Abs(v.Scale-1) > 1e-3 {
		t.Errorf("Scale = %v after reset, want 1", v.Scale)
	}
	if math.Abs(v.TX-400) > 1e-2 || math.Abs(v.TY-300) > 1e-2 {
		t.Errorf("T = (%v, %v) after reset, want (400, 300)", v.TX, v.TY)
	}
}

func TestFocusOnCentersPoint(t *testing.T) {
	v := newViewport(800, 600)
	v.FocusOn(50, -70)
	finishAnim(v)
	if math.Abs(v.Scale-focusScale) > 1e-3 {
		t.Errorf("Scale = %v after focus, want %v", v.Scale, focusScale)
	}
	gotX, gotY := v.Apply(50, -70)
	if math.Abs(gotX-400) > 1e-2 || math.Abs(gotY-300) > 1e-2 {
		t.Errorf("focused point lands at (%v, %v), want (400, 300)", gotX, gotY)
	}
}

// --- resize ---

func TestResizeKeepsTransform(t *testing.T) {
	v := newViewport(800, 600)
	v.Resize(1024, 768)
	assertNear(t, "Width", v.Width, 1024)
	assertNear(t, "Height", v.Height, 768)
	assertNear(t, "TX preserved", v.TX, 400)
	assertNear(t, "Scale preserved", v.Scale, 1)
}
