package feather

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	moved     bool        // lastX/lastY hold a real position
	hitNode   *Node       // node under the pointer at press time
	hoverNode *Node       // last node the pointer was hovering over (for enter/leave)
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeClickHandler(h.reg.click, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

func (s *Scene) addPointerHandler(list *[]pointerHandler, ev EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: ev}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// It fires once for every node whose subtree the pointer enters.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// It fires once for every node whose subtree the pointer leaves.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// CapturePointer routes all pointer events to the given node until the
// button is released or ReleasePointer is called.
func (s *Scene) CapturePointer(node *Node) {
	s.captured = node
}

// ReleasePointer stops routing events to a captured node.
func (s *Scene) ReleasePointer() {
	s.captured = nil
}

// IsPointerOver reports whether the pointer is over n or one of its descendants.
func (s *Scene) IsPointerOver(n *Node) bool {
	h := s.pointer.hoverNode
	return h != nil && n != nil && isAncestor(n, h)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Width x Height box.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range paintOrder(n) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput handles one frame of pointer input. A queued synthetic event
// replaces the real mouse for the frame it is consumed on.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button, mods)
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer

	// Determine target node: captured node or hit test.
	var target *Node
	if s.captured != nil {
		target = s.captured
	} else {
		target = s.hitTest(wx, wy)
	}
	// Hover tracks what is under the pointer even while captured.
	hover := target
	if s.captured != nil {
		hover = s.hitTest(wx, wy)
	}
	s.updateHover(hover, wx, wy, button, mods)

	movedNow := !ps.moved || wx != ps.lastX || wy != ps.lastY

	switch {
	case pressed && !ps.down:
		// Just pressed — capture button for the duration of this interaction.
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.dispatchPointer(EventPointerDown, target, wx, wy, ps.button, mods)
	case !pressed && ps.down:
		// Click requires release over the node that was pressed.
		if ps.hitNode != nil && hover != nil && isAncestor(ps.hitNode, hover) {
			s.fireClick(ps.hitNode, wx, wy, ps.button, mods)
		}
		s.dispatchPointer(EventPointerUp, target, wx, wy, ps.button, mods)

		// Auto-release capture.
		s.captured = nil
		ps.down = false
		ps.hitNode = nil
	default:
		if movedNow {
			s.dispatchPointer(EventPointerMove, target, wx, wy, ps.button, mods)
		}
	}
	ps.lastX = wx
	ps.lastY = wy
	ps.moved = true
}

// updateHover fires leave on every node whose subtree the pointer left,
// innermost first, then enter on every node whose subtree it entered,
// outermost first.
func (s *Scene) updateHover(target *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	old := s.pointer.hoverNode
	if old == target {
		return
	}
	s.pointer.hoverNode = target

	for n := old; n != nil; n = n.Parent {
		if target != nil && isAncestor(n, target) {
			break
		}
		if !n.disposed {
			s.fireHover(EventPointerLeave, n, wx, wy, button, mods)
		}
	}

	s.chainBuf = s.chainBuf[:0]
	for n := target; n != nil; n = n.Parent {
		if old != nil && isAncestor(n, old) {
			break
		}
		s.chainBuf = append(s.chainBuf, n)
	}
	for i := len(s.chainBuf) - 1; i >= 0; i-- {
		s.fireHover(EventPointerEnter, s.chainBuf[i], wx, wy, button, mods)
	}
	clear(s.chainBuf)
}

// --- Event dispatch ---

func pointerContextFor(node, target *Node, wx, wy float64, button MouseButton, mods KeyModifiers) PointerContext {
	ctx := PointerContext{
		Node: node, Target: target,
		GlobalX: wx, GlobalY: wy,
		Button: button, Modifiers: mods,
	}
	if node != nil {
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}
	if target != nil {
		ctx.LocalX, ctx.LocalY = target.WorldToLocal(wx, wy)
	}
	return ctx
}

func nodePointerCallback(n *Node, ev EventType) func(PointerContext) {
	switch ev {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

func (r *handlerRegistry) pointerList(ev EventType) []pointerHandler {
	switch ev {
	case EventPointerDown:
		return r.pointerDown
	case EventPointerUp:
		return r.pointerUp
	case EventPointerMove:
		return r.pointerMove
	case EventPointerEnter:
		return r.pointerEnter
	case EventPointerLeave:
		return r.pointerLeave
	}
	return nil
}

// dispatchPointer fires scene-level handlers once, then bubbles the event
// from node to the root, invoking each node's callback.
func (s *Scene) dispatchPointer(ev EventType, node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := pointerContextFor(node, node, wx, wy, button, mods)
	for _, h := range s.handlers.pointerList(ev) {
		h.fn(ctx)
	}
	for t := node; t != nil; t = t.Parent {
		if fn := nodePointerCallback(t, ev); fn != nil {
			fn(pointerContextFor(node, t, wx, wy, button, mods))
		}
	}
	s.emitInteractionEvent(ev, node, wx, wy, ctx.LocalX, ctx.LocalY, button, mods)
}

// fireHover delivers enter/leave to a single node without bubbling.
func (s *Scene) fireHover(ev EventType, node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := pointerContextFor(node, node, wx, wy, button, mods)
	for _, h := range s.handlers.pointerList(ev) {
		h.fn(ctx)
	}
	if fn := nodePointerCallback(node, ev); fn != nil {
		fn(ctx)
	}
	s.emitInteractionEvent(ev, node, wx, wy, ctx.LocalX, ctx.LocalY, button, mods)
}

func (s *Scene) fireClick(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	pc := pointerContextFor(node, node, wx, wy, button, mods)
	ctx := ClickContext(pc)
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	for t := node; t != nil; t = t.Parent {
		if t.OnClick != nil {
			t.OnClick(ClickContext(pointerContextFor(node, t, wx, wy, button, mods)))
		}
	}
	s.emitInteractionEvent(EventClick, node, wx, wy, pc.LocalX, pc.LocalY, button, mods)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, wx, wy, lx, ly float64,
	button MouseButton, mods KeyModifiers) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      eventType,
		EntityID:  node.EntityID,
		GlobalX:   wx,
		GlobalY:   wy,
		LocalX:    lx,
		LocalY:    ly,
		Button:    button,
		Modifiers: mods,
	})
}
