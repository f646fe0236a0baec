package feather

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Defaults for Options, matching the classic feather dock.
const (
	DefaultSigma            = 128
	DefaultSwing            = 72
	DefaultOffset           = 88
	DefaultIntegrationBound = math.MaxInt32
	DefaultEnterDurationMs  = 100
	DefaultLeaveDurationMs  = 200

	DefaultAccelerationRatio = 0.2
	DefaultDecelerationRatio = 0.7
)

// Options configures a Carousel.
type Options struct {
	// Width and Height are the carousel's size; items are centred
	// horizontally and sit on the bottom edge.
	Width, Height float64

	// Spacing is the gap between adjacent items.
	Spacing int
	// Padding shifts items vertically by Top-Bottom.
	Padding Thickness
	// PopupDeviation displaces item title popups.
	PopupDeviation Vec2

	// Sigma, Swing and Offset shape the magnification falloff. Offset is
	// also the largest outward displacement of an item.
	Sigma, Swing, Offset float64
	// IntegrationBound stands in for infinity when normalising the falloff.
	IntegrationBound float64

	// EnterDurationMs is the animation time of the first transform after the
	// pointer enters; LeaveDurationMs is used when it leaves. Continuous
	// hovering snaps.
	EnterDurationMs float64
	LeaveDurationMs float64

	// AccelerationRatio and DecelerationRatio shape the item easing.
	AccelerationRatio float64
	DecelerationRatio float64
}

// DefaultOptions returns the standard tuning for a carousel of size w x h.
func DefaultOptions(w, h float64) Options {
	return Options{
		Width:             w,
		Height:            h,
		Sigma:             DefaultSigma,
		Swing:             DefaultSwing,
		Offset:            DefaultOffset,
		IntegrationBound:  DefaultIntegrationBound,
		EnterDurationMs:   DefaultEnterDurationMs,
		LeaveDurationMs:   DefaultLeaveDurationMs,
		AccelerationRatio: DefaultAccelerationRatio,
		DecelerationRatio: DefaultDecelerationRatio,
	}
}

// SelectionChange describes an effective change of a carousel's selection.
type SelectionChange struct {
	Carousel *Carousel
	OldIndex int
	NewIndex int
	OldItem  *Item
	NewItem  *Item
}

// Carousel lays items out side by side and magnifies those near the pointer
// along a Gaussian falloff. It owns a single selection that can be driven by
// clicks, by index, or by item.
type Carousel struct {
	Spacing        *Property[int]
	Padding        *Property[Thickness]
	PopupDeviation *Property[Vec2]

	// SelectionChanged fires exactly once per effective selection change.
	SelectionChanged Event[SelectionChange]

	scene  *Scene
	node   *Node
	items  []*Item
	gauss  *Gauss
	easing ease.TweenFunc

	width, height    float64
	integrationBound float64
	enterDurationMs  float64
	leaveDurationMs  float64

	selectedIndex *Property[int]
	selectedItem  *Property[*Item]

	layoutDirty    bool
	pointerOver    bool
	wasPointerOver bool
	hasPhase       bool
	warnedDegen    bool
}

// NewCarousel creates a carousel node named name and registers it with the
// scene's layout pass and idle queue. Add c.Node() to the scene tree to show
// it. Panics if scene is nil.
func NewCarousel(scene *Scene, name string, opts Options) *Carousel {
	if scene == nil {
		panic("feather: carousel needs a scene")
	}
	c := &Carousel{
		Spacing:          NewProperty(max(opts.Spacing, 0)),
		Padding:          NewProperty(opts.Padding),
		PopupDeviation:   NewProperty(opts.PopupDeviation),
		scene:            scene,
		node:             NewContainer(name),
		gauss:            NewGauss(opts.Sigma, opts.Swing, opts.Offset),
		easing:           AccelDecel(opts.AccelerationRatio, opts.DecelerationRatio),
		integrationBound: opts.IntegrationBound,
		enterDurationMs:  opts.EnterDurationMs,
		leaveDurationMs:  opts.LeaveDurationMs,
		selectedIndex:    NewProperty(-1),
		selectedItem:     NewProperty[*Item](nil),
		layoutDirty:      true,
	}
	if !(c.integrationBound > 0) {
		c.integrationBound = DefaultIntegrationBound
	}
	c.node.Interactable = true
	c.node.UserData = c
	c.SetSize(opts.Width, opts.Height)

	c.node.OnPointerEnter = func(PointerContext) { c.pointerOver = true }
	c.node.OnPointerMove = func(ctx PointerContext) {
		// Moves also bubble up from a captured item while the pointer is
		// outside the carousel.
		c.pointerOver = c.scene.IsPointerOver(c.node)
		if c.pointerOver {
			c.Transform(Vec2{ctx.LocalX, ctx.LocalY})
		}
	}
	c.node.OnPointerLeave = func(PointerContext) {
		c.pointerOver = false
		c.Reset()
	}

	c.Spacing.OnChange(func(_, cur int) {
		if cur < 0 {
			c.Spacing.Set(0)
			return
		}
		c.InvalidateLayout()
	})
	c.Padding.OnChange(func(_, _ Thickness) { c.InvalidateLayout() })
	c.PopupDeviation.OnChange(func(_, _ Vec2) {
		for _, it := range c.items {
			it.applyTransform()
		}
	})
	c.gauss.Sigma.OnChange(func(_, _ float64) { c.warnedDegen = false })

	scene.addLayoutClient(c)
	return c
}

// Node returns the carousel's container node.
func (c *Carousel) Node() *Node { return c.node }

// Gauss returns the falloff driving the magnification. Its parameters may be
// changed at any time; Phase is overwritten on every pointer move.
func (c *Carousel) Gauss() *Gauss { return c.gauss }

// Size returns the carousel's width and height.
func (c *Carousel) Size() (w, h float64) { return c.width, c.height }

// SetSize resizes the carousel, including its hit area, and invalidates
// layout.
func (c *Carousel) SetSize(w, h float64) {
	c.width, c.height = w, h
	c.node.Width, c.node.Height = w, h
	c.node.HitShape = HitRect{Width: w, Height: h}
	c.InvalidateLayout()
}

// --- Items ---

// Items returns the items in visual left-to-right order. The returned slice
// MUST NOT be mutated by the caller.
func (c *Carousel) Items() []*Item { return c.items }

// Len returns the number of items.
func (c *Carousel) Len() int { return len(c.items) }

// ItemAt returns the item at index i.
func (c *Carousel) ItemAt(i int) *Item { return c.items[i] }

// IndexOf returns the position of it, or -1 if it is not an item of c.
func (c *Carousel) IndexOf(it *Item) int {
	if it == nil || it.owner != c {
		return -1
	}
	for i, x := range c.items {
		if x == it {
			return i
		}
	}
	return -1
}

// AddItem appends it as the rightmost item.
func (c *Carousel) AddItem(it *Item) {
	c.InsertItem(len(c.items), it)
}

// InsertItem inserts it before the item currently at index i, or at the end
// when i equals Len. An item that belongs to another carousel, or already
// to c, is removed from it first. Panics if it is nil or i is out of range.
func (c *Carousel) InsertItem(i int, it *Item) {
	if it == nil {
		panic("feather: cannot add nil item")
	}
	if i < 0 || i > len(c.items) {
		panic("feather: item index out of range")
	}
	if it.owner == c && c.IndexOf(it) < i {
		i--
	}
	if it.owner != nil {
		it.owner.RemoveItem(it)
	}
	c.items = append(c.items, nil)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = it
	c.node.AddChildAt(it.slot, i)

	it.owner = c
	it.unsubscribe = it.Click.Subscribe(c.SelectItem)
	it.applyTransform()
	if sel := c.selectedIndex.Get(); c.selectedItem.Get() != nil && sel >= i {
		c.selectedIndex.Set(sel + 1)
	}
	c.InvalidateLayout()
}

// RemoveItem removes it from the carousel. No-op if it is not an item of c.
func (c *Carousel) RemoveItem(it *Item) {
	if i := c.IndexOf(it); i >= 0 {
		c.RemoveItemAt(i)
	}
}

// RemoveItemAt removes and returns the item at index i. Removing the
// selected item clears the selection and raises SelectionChanged. Panics if
// i is out of range.
func (c *Carousel) RemoveItemAt(i int) *Item {
	if i < 0 || i >= len(c.items) {
		panic("feather: item index out of range")
	}
	it := c.items[i]
	copy(c.items[i:], c.items[i+1:])
	c.items[len(c.items)-1] = nil
	c.items = c.items[:len(c.items)-1]
	c.node.RemoveChild(it.slot)

	it.unsubscribe()
	it.unsubscribe = nil
	c.scene.animator.Stop(it, channelTransform)
	c.scene.animator.Stop(it, channelState)
	it.owner = nil

	switch {
	case it == c.selectedItem.Get():
		it.setSelected(false)
		c.commitSelection(-1, nil)
	case c.selectedIndex.Get() > i:
		c.selectedIndex.Set(c.selectedIndex.Get() - 1)
	}
	c.InvalidateLayout()
	return it
}

// --- Layout ---

// InvalidateLayout schedules a layout pass for the next frame.
func (c *Carousel) InvalidateLayout() {
	c.layoutDirty = true
}

// layoutIfNeeded runs the layout pass when something invalidated it.
func (c *Carousel) layoutIfNeeded() bool {
	if !c.layoutDirty {
		return false
	}
	c.UpdateLayout()
	return true
}

// UpdateLayout measures every item and arranges them in a horizontally
// centred row whose bottoms rest on the carousel's bottom edge, shifted by
// Padding.Top-Padding.Bottom. Each item's anchor is the centre of the
// rectangle it is arranged in.
func (c *Carousel) UpdateLayout() {
	c.layoutDirty = false
	avail := Size{Width: c.width, Height: c.height}
	spacing := float64(c.Spacing.Get())
	pad := c.Padding.Get()

	var total float64
	sizes := make([]Size, len(c.items))
	for i, it := range c.items {
		sizes[i] = it.Measure(avail)
		total += sizes[i].Width
	}
	if n := len(c.items); n > 1 {
		total += spacing * float64(n-1)
	}

	left := (c.width - total) / 2
	for i, it := range c.items {
		sz := sizes[i]
		top := c.height - sz.Height + pad.Top - pad.Bottom
		it.Arrange(Rect{X: left, Y: top, Width: sz.Width, Height: sz.Height})
		it.anchor = Vec2{X: left + sz.Width/2, Y: top + sz.Height/2}
		left += spacing + sz.Width
	}

	// Items added while the pointer is over the carousel join the lobe.
	if c.hasPhase {
		c.applyPhase(c.gauss.Phase.Get(), 0)
	}
}

// --- Pointer transform ---

// PointerOver reports whether the pointer is over the carousel.
func (c *Carousel) PointerOver() bool { return c.pointerOver }

// Transform magnifies items around the pointer position p, given in
// carousel coordinates. The first transform after the pointer enters eases
// in over the enter duration; later ones snap.
func (c *Carousel) Transform(p Vec2) {
	if c.layoutDirty {
		c.UpdateLayout()
	}
	var duration float64
	if c.wasPointerOver != c.pointerOver {
		duration = c.enterDurationMs
	}
	c.hasPhase = true
	c.applyPhase(p.X, duration)
	c.wasPointerOver = c.pointerOver
}

// Reset returns every item to its rest transform, easing out over the leave
// duration when the pointer has just left.
func (c *Carousel) Reset() {
	var duration float64
	if c.wasPointerOver != c.pointerOver {
		duration = c.leaveDurationMs
	}
	c.hasPhase = false
	for _, it := range c.items {
		t := IdentityTransform
		it.AnimateTo(t.OffsetX, t.OffsetY, t.ScaleX, t.ScaleY, t.Rotation, duration)
	}
	c.wasPointerOver = c.pointerOver
}

// Phase returns the pointer x the falloff is centred on and whether the
// pointer is currently driving the carousel.
func (c *Carousel) Phase() (float64, bool) {
	return c.gauss.Phase.Get(), c.hasPhase
}

func (c *Carousel) applyPhase(phase, duration float64) {
	c.gauss.Phase.Set(phase)
	psMax := c.gauss.Integrate(phase, c.integrationBound)
	for _, it := range c.items {
		t := c.target(it.anchor.X, psMax)
		it.AnimateTo(t.OffsetX, t.OffsetY, t.ScaleX, t.ScaleY, t.Rotation, duration)
	}
}

// TargetTransform returns the transform an item anchored at anchorX would
// animate to with the falloff centred on its current phase.
func (c *Carousel) TargetTransform(anchorX float64) ItemTransform {
	return c.target(anchorX, c.gauss.Integrate(c.gauss.Phase.Get(), c.integrationBound))
}

// target maps an anchor to its magnified transform. The signed area between
// the phase and the anchor, normalised by the one-sided total, pushes the
// item outward by up to Offset and shrinks its scale from 2 at the phase to
// 1 far away. A degenerate falloff (no area) leaves items at rest.
func (c *Carousel) target(anchorX, psMax float64) ItemTransform {
	if psMax == 0 || math.IsNaN(psMax) || math.IsInf(psMax, 0) {
		c.warnDegenerate(psMax)
		return IdentityTransform
	}
	x := c.gauss.Integrate(c.gauss.Phase.Get(), anchorX)
	ratio := x / psMax
	ratio = math.Max(-1, math.Min(1, ratio))
	scale := (1 - math.Abs(ratio)) + 1
	return ItemTransform{
		OffsetX: ratio * c.gauss.Offset.Get(),
		ScaleX:  scale,
		ScaleY:  scale,
	}
}

func (c *Carousel) warnDegenerate(psMax float64) {
	if c.warnedDegen {
		return
	}
	c.warnedDegen = true
	c.scene.debugf("carousel %q: falloff area is %v (sigma=%v swing=%v); items stay at rest",
		c.node.Name, psMax, c.gauss.Sigma.Get(), c.gauss.Swing.Get())
}

// --- Selection ---

// SelectedIndex returns the selected item's index, or -1.
func (c *Carousel) SelectedIndex() int { return c.selectedIndex.Get() }

// SelectedItem returns the selected item, or nil.
func (c *Carousel) SelectedItem() *Item { return c.selectedItem.Get() }

// OnSelectedIndexChange registers fn to run whenever SelectedIndex changes,
// including shifts caused by inserting or removing earlier items.
func (c *Carousel) OnSelectedIndexChange(fn func(old, cur int)) (remove func()) {
	return c.selectedIndex.OnChange(fn)
}

// OnSelectedItemChange registers fn to run whenever SelectedItem changes.
func (c *Carousel) OnSelectedItemChange(fn func(old, cur *Item)) (remove func()) {
	return c.selectedItem.OnChange(fn)
}

// SelectIndex selects the item at index i. Out of range indices are ignored.
func (c *Carousel) SelectIndex(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.SelectItem(c.items[i])
}

// SelectItem makes it the selection. It is ignored when nil, already
// selected, or not an item of c.
func (c *Carousel) SelectItem(it *Item) {
	if it == nil || it == c.selectedItem.Get() {
		return
	}
	i := c.IndexOf(it)
	if i < 0 {
		return
	}
	if prev := c.selectedItem.Get(); prev != nil {
		prev.setSelected(false)
	}
	it.setSelected(true)
	c.commitSelection(i, it)
}

func (c *Carousel) commitSelection(i int, it *Item) {
	change := SelectionChange{
		Carousel: c,
		OldIndex: c.selectedIndex.Get(),
		OldItem:  c.selectedItem.Get(),
		NewIndex: i,
		NewItem:  it,
	}
	c.selectedItem.Set(it)
	c.selectedIndex.Set(i)
	c.SelectionChanged.Emit(change)
}

// SetSelectedIndex requests selection of index i on the next idle turn,
// after any layout the current frame triggers.
func (c *Carousel) SetSelectedIndex(i int) {
	c.scene.Dispatcher().BeginInvoke(func() { c.SelectIndex(i) })
}

// SetSelectedItem requests selection of it on the next idle turn.
func (c *Carousel) SetSelectedItem(it *Item) {
	c.scene.Dispatcher().BeginInvoke(func() { c.SelectItem(it) })
}

// CanMoveLeft reports whether an item left of the selection exists.
func (c *Carousel) CanMoveLeft() bool {
	return c.selectedIndex.Get() >= 1
}

// CanMoveRight reports whether MoveRight would select another item. With
// no selection that is the first item.
func (c *Carousel) CanMoveRight() bool {
	return c.selectedIndex.Get() <= len(c.items)-2
}

// MoveLeft requests selection of the item left of the current one.
func (c *Carousel) MoveLeft() {
	c.SetSelectedIndex(c.selectedIndex.Get() - 1)
}

// MoveRight requests selection of the item right of the current one.
func (c *Carousel) MoveRight() {
	c.SetSelectedIndex(c.selectedIndex.Get() + 1)
}
