package soromap

// syntheticPointerEvent is a single injected pointer event in surface
// coordinates, routed through the same state machine as real mouse input.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a pointer press at the given surface coordinates.
// The event is consumed on the next Update tick.
func (v *GraphView) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a drag.
func (v *GraphView) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectHover queues a pointer move with the button up.
func (v *GraphView) InjectHover(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectRelease queues a pointer release at the given surface coordinates.
func (v *GraphView) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two ticks.
func (v *GraphView) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), steps-2
// interpolated moves ending exactly at (toX, toY), then release there.
// The last move lands on the destination so the full travel is observed
// before the button comes up, matching how real pointer streams arrive.
// Minimum steps is 3.
func (v *GraphView) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 3 {
		steps = 3
	}
	v.InjectPress(fromX, fromY)
	mid := steps - 2
	for i := 1; i <= mid; i++ {
		t := float64(i) / float64(mid)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(toX, toY)
}

// consumeInjected pops one queued event and feeds it through the pointer
// state machine. Returns true if an event was consumed, in which case real
// mouse input is skipped for this tick.
func (v *GraphView) consumeInjected() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]
	v.in.processPointer(evt.x, evt.y, evt.pressed)
	return true
}
