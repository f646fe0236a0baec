// Package feather is a mouse-reactive horizontal carousel for [Ebitengine],
// built on a small retained-mode scene graph.
//
// A [Carousel] lays out a row of [Item] values bottom-aligned and centered.
// While the pointer is over it, each item is magnified, lifted, and rotated
// according to a Gaussian lobe centered on the pointer's x position, so the
// items near the pointer swell like a dock. Clicking an item selects it;
// the selection can also be moved one step at a time with
// [Carousel.MoveLeft] and [Carousel.MoveRight].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := feather.NewScene()
//	dock := feather.NewCarousel(scene, "dock", feather.DefaultOptions(640, 120))
//	scene.Root().AddChild(dock.Node())
//	dock.AddItem(feather.NewItem("mail", 48, 48))
//	dock.AddItem(feather.NewItem("music", 48, 48))
//	feather.Run(scene, feather.RunConfig{Title: "dock", Width: 640, Height: 120})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *feather.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Frame order
//
// Every [Scene.Update] dispatches pointer input, runs the layout pass for
// carousels whose layout was invalidated, drains the idle queue returned by
// [Scene.Dispatcher], advances tweens, and finally runs [Node.OnUpdate]
// hooks. Selection requests made with [Carousel.SetSelectedIndex] and the
// Move methods are queued on the idle queue, so they always observe the
// layout produced by the input that triggered them.
//
// # Magnification
//
// [Gauss] evaluates the lobe. Its integral is computed with adaptive
// Gauss-Legendre quadrature and used to normalize the per-item offset so the
// lobe stays centered on the pointer whatever the item widths.
//
// # Testing
//
// Pointer input can be injected with [Scene.InjectMove], [Scene.InjectClick]
// and friends, and whole interaction scripts can be replayed from JSON with
// [LoadTestScript] and [Scene.SetTestRunner].
//
// ECS integration lives in the feather/ecs submodule (via [Donburi]).
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package feather
