package feather

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween/ease"
)

// Visual state names passed to Item.OnVisualState.
const (
	StateSelected   = "Selected"
	StateUnSelected = "UnSelected"
)

const (
	channelTransform = "transform"
	channelState     = "state"

	// stateTransitionSeconds is how long the default skin takes to fade
	// between the selected and normal tint.
	stateTransitionSeconds = 0.15
	// popupGap separates the title popup from the top of the presenter.
	popupGap = 4
)

// ItemTransform is the live render transform of an item: a translation
// followed by a scale and rotation about the bottom-centre of the item.
// Rotation is in radians.
type ItemTransform struct {
	OffsetX, OffsetY float64
	ScaleX, ScaleY   float64
	Rotation         float64
}

// IdentityTransform leaves an item at its arranged rest position.
var IdentityTransform = ItemTransform{ScaleX: 1, ScaleY: 1}

// Item is one feather of a Carousel. Its slot node is placed by the
// carousel's layout pass; its presenter node carries the animated
// translate/scale/rotate transform.
type Item struct {
	Title      *Property[string]
	isSelected *Property[bool]

	// Click fires when the item is clicked with the left button.
	Click Event[*Item]

	// NormalColor and SelectedColor are the presenter tints used by the
	// default visual states.
	NormalColor   Color
	SelectedColor Color

	// OnVisualState, when set, replaces the default tint change on every
	// selection state change.
	OnVisualState func(state string, useTransitions bool)

	// OnAnimationCompleted runs when an AnimateTo finishes, or immediately
	// when it snaps.
	OnAnimationCompleted func()

	slot      *Node
	presenter *Node
	popup     *Node

	anchor    Vec2
	arranged  Rect
	transform ItemTransform
	hovered   bool

	owner       *Carousel
	unsubscribe func()
}

// NewItem creates an item whose presenter is a solid rectangle of the given
// size.
func NewItem(title string, w, h float64) *Item {
	c := Color{R: 0.55, G: 0.6, B: 0.7, A: 1}
	return NewItemWithPresenter(title, NewRect(title, w, h, c))
}

// NewItemWithPresenter creates an item around a caller-supplied presenter
// node. The presenter's Width and Height are the item's natural size, and
// its Color is the normal tint. Panics if presenter is nil.
func NewItemWithPresenter(title string, presenter *Node) *Item {
	if presenter == nil {
		panic("feather: item presenter is nil")
	}
	it := &Item{
		Title:         NewProperty(title),
		isSelected:    NewProperty(false),
		NormalColor:   presenter.Color,
		SelectedColor: highlight(presenter.Color),
		slot:          NewContainer("item:" + title),
		presenter:     presenter,
		popup:         NewLabel("popup:"+title, title),
		transform:     IdentityTransform,
	}
	it.slot.Interactable = true
	it.slot.UserData = it
	presenter.Interactable = true
	it.popup.Visible = false

	it.slot.AddChild(presenter)
	it.slot.AddChild(it.popup)
	it.applyTransform()

	it.slot.OnClick = func(ctx ClickContext) {
		if ctx.Button == MouseButtonLeft {
			it.Click.Emit(it)
		}
	}
	it.slot.OnPointerDown = func(ctx PointerContext) {
		if ctx.Button == MouseButtonLeft && it.scene() != nil {
			it.scene().CapturePointer(ctx.Node)
		}
	}
	it.slot.OnPointerEnter = func(PointerContext) { it.setHovered(true) }
	it.slot.OnPointerLeave = func(PointerContext) { it.setHovered(false) }
	it.Title.OnChange(func(_, cur string) {
		it.popup.SetText(cur)
		it.applyTransform()
	})
	return it
}

// highlight returns a lighter version of c for the selected state.
func highlight(c Color) Color {
	base := colorful.Color{R: c.R, G: c.G, B: c.B}
	h := base.BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, 0.35).Clamped()
	return Color{R: h.R, G: h.G, B: h.B, A: c.A}
}

// Node returns the slot node placed by the carousel.
func (it *Item) Node() *Node { return it.slot }

// Presenter returns the node that carries the animated transform.
func (it *Item) Presenter() *Node { return it.presenter }

// Carousel returns the carousel the item belongs to, or nil.
func (it *Item) Carousel() *Carousel { return it.owner }

// IsSelected reports whether the item is the carousel's selection.
func (it *Item) IsSelected() bool { return it.isSelected.Get() }

// OnSelectedChange registers fn to run when IsSelected flips.
func (it *Item) OnSelectedChange(fn func(selected bool)) (remove func()) {
	return it.isSelected.OnChange(func(_, cur bool) { fn(cur) })
}

// Anchor returns the item's rest-state centre in carousel coordinates, as
// computed by the last layout pass.
func (it *Item) Anchor() Vec2 { return it.anchor }

// Bounds returns the rectangle the last layout pass arranged the item in.
func (it *Item) Bounds() Rect { return it.arranged }

// Transform returns the item's current, possibly mid-animation, transform.
func (it *Item) Transform() ItemTransform { return it.transform }

// Hovered reports whether the pointer is over the item.
func (it *Item) Hovered() bool { return it.hovered }

// Measure returns the item's desired size. The item does not shrink to the
// available space; the carousel lets items overflow.
func (it *Item) Measure(Size) Size {
	return Size{Width: it.presenter.Width, Height: it.presenter.Height}
}

// Arrange places the item's slot at r.
func (it *Item) Arrange(r Rect) {
	it.arranged = r
	it.slot.SetPosition(r.X, r.Y)
	it.applyTransform()
}

// SetSize changes the presenter's natural size and invalidates the owning
// carousel's layout.
func (it *Item) SetSize(w, h float64) {
	it.presenter.Width = w
	it.presenter.Height = h
	it.applyTransform()
	if it.owner != nil {
		it.owner.InvalidateLayout()
	}
}

// AnimateTo moves the item's transform to the given target over durationMs
// milliseconds with the carousel's easing. A zero duration, or an item
// outside any carousel, snaps immediately. A new call supersedes any
// animation still running.
func (it *Item) AnimateTo(offsetX, offsetY, scaleX, scaleY, rotation, durationMs float64) {
	target := ItemTransform{offsetX, offsetY, scaleX, scaleY, rotation}
	anim := it.animator()
	if durationMs <= 0 || anim == nil {
		if anim != nil {
			anim.Stop(it, channelTransform)
		}
		it.transform = target
		it.applyTransform()
		it.animationCompleted()
		return
	}

	t := &it.transform
	g := TweenFields(it.presenter,
		[]*float64{&t.OffsetX, &t.OffsetY, &t.ScaleX, &t.ScaleY, &t.Rotation},
		[]float64{offsetX, offsetY, scaleX, scaleY, rotation},
		float32(durationMs/1000), it.easing())
	g.OnApply = it.applyTransform
	g.OnComplete = it.animationCompleted
	anim.Start(it, channelTransform, g)
}

func (it *Item) animationCompleted() {
	if it.OnAnimationCompleted != nil {
		it.OnAnimationCompleted()
	}
}

func (it *Item) easing() ease.TweenFunc {
	if it.owner != nil {
		return it.owner.easing
	}
	return AccelDecel(DefaultAccelerationRatio, DefaultDecelerationRatio)
}

func (it *Item) scene() *Scene {
	if it.owner == nil {
		return nil
	}
	return it.owner.scene
}

func (it *Item) animator() *Animator {
	if s := it.scene(); s != nil {
		return &s.animator
	}
	return nil
}

// applyTransform writes the item transform into the presenter, scaling and
// rotating about its bottom-centre, and keeps the title popup above it.
func (it *Item) applyTransform() {
	p := it.presenter
	t := it.transform
	w, h := p.Width, p.Height
	p.PivotX = w / 2
	p.PivotY = h
	p.X = w/2 + t.OffsetX
	p.Y = h + t.OffsetY
	p.ScaleX = t.ScaleX
	p.ScaleY = t.ScaleY
	p.Rotation = t.Rotation
	p.MarkDirty()

	var dev Vec2
	if it.owner != nil {
		dev = it.owner.PopupDeviation.Get()
	}
	it.popup.SetPosition(
		w/2+t.OffsetX-it.popup.Width/2+dev.X,
		h+t.OffsetY-h*t.ScaleY-it.popup.Height-popupGap+dev.Y,
	)
}

func (it *Item) setHovered(v bool) {
	it.hovered = v
	it.popup.Visible = v
}

// setSelected flips the selection flag and runs the matching visual state.
func (it *Item) setSelected(v bool) {
	if it.isSelected.Set(v) {
		it.goToState(true)
	}
}

func (it *Item) goToState(useTransitions bool) {
	state := StateUnSelected
	target := it.NormalColor
	if it.IsSelected() {
		state = StateSelected
		target = it.SelectedColor
	}
	if it.OnVisualState != nil {
		it.OnVisualState(state, useTransitions)
		return
	}
	anim := it.animator()
	if !useTransitions || anim == nil {
		if anim != nil {
			anim.Stop(it, channelState)
		}
		it.presenter.Color = target
		return
	}
	anim.Start(it, channelState, TweenColor(it.presenter, target, stateTransitionSeconds, ease.OutQuad))
}
