package feather

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// layoutClient is anything the scene's layout pass keeps up to date.
type layoutClient interface {
	layoutIfNeeded() bool
}

// Scene is the top-level object that owns the node tree, input state,
// animations, the layout pass, and the idle queue.
//
// Each Update runs, in order: input dispatch, the layout pass, the idle
// queue, animations, then per-node OnUpdate hooks. Work queued with
// Dispatcher().BeginInvoke therefore always observes the layout produced
// by the input that caused it.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	updateFunc func() error

	layouts    []layoutClient
	dispatcher Dispatcher
	animator   Animator

	// Input state
	handlers      handlerRegistry
	captured      *Node
	pointer       pointerState
	hitBuf        []*Node
	chainBuf      []*Node
	injectQueue   []syntheticPointerEvent
	injectPressed bool
	testRunner    *TestRunner
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{root: root}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Dispatcher returns the scene's idle queue.
func (s *Scene) Dispatcher() *Dispatcher {
	return &s.dispatcher
}

// Animator returns the scene's animation driver.
func (s *Scene) Animator() *Animator {
	return &s.animator
}

// SetUpdateFunc sets a callback that Run invokes before every Scene.Update.
// A non-nil error stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// addLayoutClient registers c with the layout pass.
func (s *Scene) addLayoutClient(c layoutClient) {
	s.layouts = append(s.layouts, c)
}

// Update processes input, runs layout and idle work, and advances
// animations by one tick.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	// Refresh world transforms first so hit testing has accurate positions
	// this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.processInput()
	var stats debugStats
	if s.debug {
		stats.inputTime = time.Since(t0)
	}
	s.advance(dt, &stats)
	s.debugLog(stats)
}

// advance runs everything in a frame after input dispatch.
func (s *Scene) advance(dt float32, stats *debugStats) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	for _, c := range s.layouts {
		if c.layoutIfNeeded() {
			stats.layoutPasses++
		}
	}
	if s.debug {
		stats.layoutTime = time.Since(t0)
	}

	stats.idleTasks = s.dispatcher.Drain()

	s.animator.Update(dt)
	stats.tweens = s.animator.Len()

	runUpdateHooks(s.root, float64(dt))
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// runUpdateHooks calls OnUpdate on every visible node, parents first.
func runUpdateHooks(n *Node, dt float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		runUpdateHooks(child, dt)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame stats and carousel diagnostics are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
