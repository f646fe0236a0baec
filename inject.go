package feather

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used and fed through the same pointer state
// machine as real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectPressed = true
	s.enqueueInjected(x, y)
}

// InjectMove queues a pointer move to the given screen coordinates. The
// button state follows the last InjectPress/InjectRelease, so a move between
// the two is a drag and any other move is a hover.
func (s *Scene) InjectMove(x, y float64) {
	s.enqueueInjected(x, y)
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectPressed = false
	s.enqueueInjected(x, y)
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectLeave queues a move to a point outside every node, which makes the
// pointer leave whatever it was hovering.
func (s *Scene) InjectLeave() {
	s.enqueueInjected(offscreen, offscreen)
}

// offscreen is a coordinate no node is expected to cover.
const offscreen = -1e9

func (s *Scene) enqueueInjected(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: s.injectPressed,
		button:  MouseButtonLeft,
	})
}

// PendingInput reports how many injected events are still queued.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real mouse
// input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button, 0)
	return true
}
