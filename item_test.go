package feather

import (
	"math"
	"testing"
)

func TestNewItem(t *testing.T) {
	it := NewItem("mail", 40, 30)
	if it.Title.Get() != "mail" || it.IsSelected() || it.Carousel() != nil {
		t.Errorf("new item state: %+v", it)
	}
	if it.Presenter().Parent != it.Node() {
		t.Error("presenter should be a child of the slot")
	}
	if got := it.Measure(Size{}); got != (Size{Width: 40, Height: 30}) {
		t.Errorf("Measure = %+v", got)
	}
	if it.Transform() != IdentityTransform {
		t.Errorf("initial transform = %+v", it.Transform())
	}
	if it.popup.Visible || it.popup.Text != "mail" {
		t.Error("popup should start hidden with the title")
	}
}

func TestNewItemWithPresenterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewItemWithPresenter("x", nil)
}

func TestItemTitleUpdatesPopup(t *testing.T) {
	it := NewItem("a", 40, 40)
	it.Title.Set("longer")
	if it.popup.Text != "longer" || it.popup.Width != 6*debugGlyphW {
		t.Errorf("popup = %q width %v", it.popup.Text, it.popup.Width)
	}
	// The popup is centred over the presenter.
	assertNear(t, "popup x", it.popup.X+it.popup.Width/2, 20)
}

func TestItemHighlight(t *testing.T) {
	c := Color{R: 0.2, G: 0.3, B: 0.5, A: 0.8}
	h := highlight(c)
	if h.A != c.A {
		t.Error("highlight should keep alpha")
	}
	if h.R+h.G+h.B <= c.R+c.G+c.B {
		t.Errorf("highlight %+v should be lighter than %+v", h, c)
	}
	for _, v := range []float64{h.R, h.G, h.B} {
		if v < 0 || v > 1 {
			t.Errorf("highlight out of gamut: %+v", h)
		}
	}
}

func TestAnimateToWithoutCarouselSnaps(t *testing.T) {
	it := NewItem("a", 40, 40)
	var done int
	it.OnAnimationCompleted = func() { done++ }

	it.AnimateTo(10, -5, 1.5, 1.5, 0.25, 500)
	want := ItemTransform{OffsetX: 10, OffsetY: -5, ScaleX: 1.5, ScaleY: 1.5, Rotation: 0.25}
	if it.Transform() != want || done != 1 {
		t.Errorf("transform = %+v, completions = %d", it.Transform(), done)
	}

	p := it.Presenter()
	assertNear(t, "presenter x", p.X, 20+10)
	assertNear(t, "presenter y", p.Y, 40-5)
	assertNear(t, "pivot x", p.PivotX, 20)
	assertNear(t, "pivot y", p.PivotY, 40)
	assertNear(t, "scale", p.ScaleX, 1.5)
	assertNear(t, "rotation", p.Rotation, 0.25)
}

func TestAnimateToScalesAboutBottomCentre(t *testing.T) {
	it := NewItem("a", 40, 40)
	it.AnimateTo(0, 0, 2, 2, 0, 0)
	updateWorldTransform(it.Node(), identityTransform, 1, false)

	p := it.Presenter()
	x0, y0 := p.LocalToWorld(0, 0)
	x1, y1 := p.LocalToWorld(40, 40)
	assertNear(t, "left", x0, -20)
	assertNear(t, "right", x1, 60)
	assertNear(t, "top", y0, -40)
	assertNear(t, "bottom", y1, 40)
}

func TestAnimateToInCarousel(t *testing.T) {
	s, c := newTestCarousel(uniform(1, 40), 0)
	it := c.ItemAt(0)
	var done int
	it.OnAnimationCompleted = func() { done++ }

	it.AnimateTo(30, 0, 2, 2, 0, 100)
	if it.Transform() != IdentityTransform {
		t.Fatal("timed animation should not jump")
	}
	tick(s, 0.05)
	mid := it.Transform()
	if !(mid.OffsetX > 0 && mid.OffsetX < 30) {
		t.Errorf("mid offset = %v", mid.OffsetX)
	}

	// A new request supersedes the running one without completing it.
	it.AnimateTo(-30, 0, 1, 1, 0, 100)
	tick(s, 0.2)
	if done != 1 {
		t.Errorf("completions = %d, want 1", done)
	}
	if math.Abs(it.Transform().OffsetX+30) > 1e-4 || math.Abs(it.Transform().ScaleX-1) > 1e-6 {
		t.Errorf("final transform = %+v", it.Transform())
	}

	// Zero duration snaps and cancels anything in flight.
	it.AnimateTo(5, 0, 1, 1, 0, 100)
	tick(s, 0.01)
	it.AnimateTo(0, 0, 1, 1, 0, 0)
	if s.Animator().Active(it, channelTransform) || it.Transform() != IdentityTransform {
		t.Error("zero duration should snap")
	}
	if done != 2 {
		t.Errorf("completions = %d, want 2", done)
	}
}

func TestItemVisualStates(t *testing.T) {
	s, c := newTestCarousel(uniform(2, 40), 0)
	a, b := c.ItemAt(0), c.ItemAt(1)

	var states []string
	a.OnVisualState = func(state string, useTransitions bool) {
		if !useTransitions {
			t.Error("selection changes should use transitions")
		}
		states = append(states, state)
	}

	var flips []bool
	a.OnSelectedChange(func(sel bool) { flips = append(flips, sel) })

	c.SelectItem(a)
	c.SelectItem(b)
	if joinStrings(states) != "Selected,UnSelected" {
		t.Errorf("states = %v", states)
	}
	if len(flips) != 2 || !flips[0] || flips[1] {
		t.Errorf("flips = %v", flips)
	}

	// Default skin fades the tint.
	if !s.Animator().Active(b, channelState) {
		t.Fatal("default visual state should animate")
	}
	settle(s)
	got := b.Presenter().Color
	want := b.SelectedColor
	if math.Abs(got.R-want.R) > 1e-6 || math.Abs(got.G-want.G) > 1e-6 || math.Abs(got.B-want.B) > 1e-6 {
		t.Errorf("selected tint = %+v, want %+v", got, want)
	}
}

func TestItemHoverShowsPopup(t *testing.T) {
	s, c := newTestCarousel(uniform(1, 40), 0)
	it := c.ItemAt(0)
	a := it.Anchor()

	s.InjectMove(a.X, a.Y)
	tick(s, 0)
	if !it.Hovered() || !it.popup.Visible {
		t.Error("hovering should show the popup")
	}
	s.InjectMove(a.X, 5)
	tick(s, 0)
	if it.Hovered() || it.popup.Visible {
		t.Error("leaving the item should hide the popup")
	}
}

func TestPopupDeviation(t *testing.T) {
	s, c := newTestCarousel(uniform(1, 40), 0)
	it := c.ItemAt(0)
	x0, y0 := it.popup.X, it.popup.Y

	c.PopupDeviation.Set(Vec2{X: 7, Y: -3})
	tick(s, 0)
	assertNear(t, "dx", it.popup.X-x0, 7)
	assertNear(t, "dy", it.popup.Y-y0, -3)

	// The popup rides above the scaled presenter.
	it.AnimateTo(0, 0, 2, 2, 0, 0)
	assertNear(t, "scaled dy", it.popup.Y-y0, -3-40)
}
