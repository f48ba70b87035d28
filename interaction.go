package soromap

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// hitSlop widens every node's hit circle so small nodes stay clickable.
	hitSlop = 3.0
	// dragDeadZone is the minimum surface-space movement before a press
	// becomes a drag instead of a click.
	dragDeadZone = 4.0
	// wheelZoomBase is the per-notch zoom factor for wheel gestures.
	wheelZoomBase = 1.15
)

// pointerState tracks one pointer through a press/move/release cycle.
type pointerState struct {
	down           bool
	startX, startY float64
	lastX, lastY   float64
	hit            *Node
	dragging       bool
}

// interaction translates pointer input into model mutations (pins), viewport
// gestures (pan, wheel zoom), and selection callbacks. It owns the hovered
// reference and the pin lifecycle; the simulation only reads pins.
type interaction struct {
	view    *GraphView
	ps      pointerState
	hovered *Node
}

// hitTest finds the node under the surface-space point (sx, sy), or nil.
// Nodes are scanned in reverse draw order so the topmost-drawn node wins
// when circles overlap.
func (in *interaction) hitTest(sx, sy float64) *Node {
	x, y := in.view.vp.Invert(sx, sy)
	nodes := in.view.model.Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		dx := x - n.X
		dy := y - n.Y
		if dx*dx+dy*dy <= (n.Radius+hitSlop)*(n.Radius+hitSlop) {
			return n
		}
	}
	return nil
}

// processInput reads the device state for this tick. Injected synthetic
// events take priority over the real mouse so tests and scripted runs behave
// identically to live input.
func (in *interaction) processInput() {
	if in.view.consumeInjected() {
		return
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.processPointer(sx, sy, pressed)

	if _, wy := ebiten.Wheel(); wy != 0 {
		in.view.vp.ZoomAt(math.Pow(wheelZoomBase, wy), sx, sy)
	}
}

// processPointer runs the pointer state machine for one event.
//
// Press over a node pins it in place and warms the simulation; moves update
// the pin through the inverse transform; release unpins and lets the layout
// relax. Press over empty space pans the viewport. A press-release cycle
// inside the dead zone is a click: selection for a node, deselection for
// background.
func (in *interaction) processPointer(sx, sy float64, pressed bool) {
	ps := &in.ps

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.dragging = false
		ps.hit = in.hitTest(sx, sy)
		if ps.hit != nil {
			ps.hit.Pin(ps.hit.X, ps.hit.Y)
			in.view.sim.SetAlphaTarget(dragAlpha)
		}

	case pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		if !ps.dragging {
			dx := sx - ps.startX
			dy := sy - ps.startY
			if math.Hypot(dx, dy) > dragDeadZone {
				ps.dragging = true
			}
		}
		if ps.dragging {
			if ps.hit != nil {
				x, y := in.view.vp.Invert(sx, sy)
				ps.hit.Pin(x, y)
			} else {
				in.view.vp.Pan(sx-ps.lastX, sy-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = sx, sy

	case !pressed && ps.down:
		if ps.hit != nil {
			ps.hit.Unpin()
			in.view.sim.SetAlphaTarget(0)
		}
		if !ps.dragging {
			in.view.emitSelect(ps.hit)
		}
		ps.down = false
		ps.hit = nil
		ps.dragging = false

	default:
		// Hover move.
		if sx != ps.lastX || sy != ps.lastY {
			in.hovered = in.hitTest(sx, sy)
			ps.lastX, ps.lastY = sx, sy
		}
	}
}
