package soromap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom and focus constants.
const (
	zoomStep    = 1.5
	focusScale  = 2.0
	minScale    = 0.05
	maxScale    = 10.0
	navDuration = 0.35 // seconds
)

// navAnim holds the active navigation tweens for scale and translation.
type navAnim struct {
	scale *gween.Tween
	tx    *gween.Tween
	ty    *gween.Tween
}

// Viewport is the affine mapping between simulation space and the drawing
// surface: surface = sim*Scale + T. It is owned by the interaction layer;
// the renderer and hit tester only read it.
//
// Navigation operations (ZoomIn, ZoomOut, Reset, FocusOn) are tweened over a
// short duration; live pan and wheel zoom apply immediately and cancel any
// animation in flight.
type Viewport struct {
	Scale  float64
	TX, TY float64

	// Surface dimensions, updated on layout changes.
	Width, Height float64

	anim *navAnim
}

// newViewport creates a viewport centered on the simulation origin.
func newViewport(width, height float64) *Viewport {
	return &Viewport{
		Scale:  1,
		TX:     width / 2,
		TY:     height / 2,
		Width:  width,
		Height: height,
	}
}

// Apply maps a simulation-space point to surface space.
func (v *Viewport) Apply(x, y float64) (sx, sy float64) {
	return x*v.Scale + v.TX, y*v.Scale + v.TY
}

// Invert maps a surface-space point back to simulation space.
func (v *Viewport) Invert(sx, sy float64) (x, y float64) {
	return (sx - v.TX) / v.Scale, (sy - v.TY) / v.Scale
}

// Resize updates the surface dimensions. The transform itself is preserved;
// callers re-center explicitly if they want to.
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// Pan shifts the view by a surface-space delta immediately.
func (v *Viewport) Pan(dx, dy float64) {
	v.anim = nil
	v.TX += dx
	v.TY += dy
}

// ZoomAt rescales by factor keeping the surface point (sx, sy) fixed.
// Used for wheel gestures; applies immediately.
func (v *Viewport) ZoomAt(factor, sx, sy float64) {
	v.anim = nil
	next := clamp(minScale, maxScale, v.Scale*factor)
	if next == v.Scale {
		return
	}
	ratio := next / v.Scale
	v.TX = sx - (sx-v.TX)*ratio
	v.TY = sy - (sy-v.TY)*ratio
	v.Scale = next
}

// ZoomIn animates a zoomStep magnification about the visible center.
func (v *Viewport) ZoomIn() { v.zoomCenter(zoomStep) }

// ZoomOut animates a zoomStep reduction about the visible center.
func (v *Viewport) ZoomOut() { v.zoomCenter(1 / zoomStep) }

func (v *Viewport) zoomCenter(factor float64) {
	next := clamp(minScale, maxScale, v.Scale*factor)
	cx, cy := v.Width/2, v.Height/2
	ratio := next / v.Scale
	v.animateTo(next, cx-(cx-v.TX)*ratio, cy-(cy-v.TY)*ratio)
}

// Reset animates back to the initial centered transform.
func (v *Viewport) Reset() {
	v.animateTo(1, v.Width/2, v.Height/2)
}

// FocusOn animates to focusScale with the simulation point (x, y) at the
// viewport center.
func (v *Viewport) FocusOn(x, y float64) {
	v.animateTo(focusScale, v.Width/2-x*focusScale, v.Height/2-y*focusScale)
}

// animateTo starts tweens from the current transform to the target.
func (v *Viewport) animateTo(scale, tx, ty float64) {
	v.anim = &navAnim{
		scale: gween.New(float32(v.Scale), float32(scale), navDuration, ease.OutQuad),
		tx:    gween.New(float32(v.TX), float32(tx), navDuration, ease.OutQuad),
		ty:    gween.New(float32(v.TY), float32(ty), navDuration, ease.OutQuad),
	}
}

// update advances any navigation animation. Called once per tick.
func (v *Viewport) update(dt float32) {
	if v.anim == nil {
		return
	}
	s, doneS := v.anim.scale.Update(dt)
	x, doneX := v.anim.tx.Update(dt)
	y, doneY := v.anim.ty.Update(dt)
	v.Scale = float64(s)
	v.TX = float64(x)
	v.TY = float64(y)
	if doneS && doneX && doneY {
		v.anim = nil
	}
}

// animating reports whether a navigation tween is in flight.
func (v *Viewport) animating() bool { return v.anim != nil }
