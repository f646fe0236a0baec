package feather

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const maxTweenFields = 5

// TweenGroup animates up to 5 float64 fields simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenColor, TweenFields) and either call Update(dt) each frame or hand it
// to an Animator. The group writes values straight into the target fields
// and marks the node dirty. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	count  int
	fields [maxTweenFields]*float64
	target *Node

	// OnApply runs after every write, for owners that derive node state
	// from the animated fields.
	OnApply func()
	// OnComplete runs once when every field has reached its target.
	// It does not run when the group is superseded or its node disposed.
	OnComplete func()

	Done bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.OnApply != nil {
		g.OnApply()
	}
	if g.Done && g.OnComplete != nil {
		g.OnComplete()
	}
}

// TweenFields creates a TweenGroup that animates each of fields toward the
// value at the same index in to. Panics if the slices differ in length or
// hold more than five fields.
func TweenFields(node *Node, fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if len(fields) != len(to) || len(fields) > maxTweenFields {
		panic("feather: TweenFields needs matching slices of at most 5 fields")
	}
	g := &TweenGroup{count: len(fields), target: node}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields(node, []*float64{&node.X, &node.Y}, []float64{toX, toY}, duration, fn)
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields(node, []*float64{&node.ScaleX, &node.ScaleY}, []float64{toSX, toSY}, duration, fn)
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields(node,
		[]*float64{&node.Color.R, &node.Color.G, &node.Color.B, &node.Color.A},
		[]float64{to.R, to.G, to.B, to.A}, duration, fn)
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields(node, []*float64{&node.Alpha}, []float64{to}, duration, fn)
}

// TweenRotation creates a TweenGroup that animates node.Rotation to the target
// value over the specified duration using the easing function.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields(node, []*float64{&node.Rotation}, []float64{to}, duration, fn)
}

// AccelDecel returns an easing function that accelerates uniformly over the
// first accel fraction of the duration, cruises, then decelerates uniformly
// over the last decel fraction. accel+decel must not exceed 1; out of range
// ratios are clamped.
func AccelDecel(accel, decel float64) ease.TweenFunc {
	accel = clamp01(accel)
	decel = clamp01(decel)
	if accel+decel > 1 {
		decel = 1 - accel
	}
	// Peak velocity so the area under the velocity curve is 1.
	v := 1 / (1 - accel/2 - decel/2)
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		p := float64(t / d)
		var y float64
		switch {
		case p <= 0:
			y = 0
		case p >= 1:
			y = 1
		case p < accel:
			y = v * p * p / (2 * accel)
		case p <= 1-decel:
			y = v * (p - accel/2)
		default:
			r := 1 - p
			y = 1 - v*r*r/(2*decel)
		}
		return b + c*float32(y)
	}
}

// --- Animator ---

type animKey struct {
	owner   any
	channel string
}

type animEntry struct {
	key   animKey
	group *TweenGroup
}

// Animator drives a set of TweenGroups, at most one per (owner, channel).
// Starting a group on a busy channel supersedes the running one, the same way
// a new animation on a property replaces the active one.
type Animator struct {
	entries []animEntry
	scratch []animEntry
}

// Start registers g on the owner's channel, replacing any group already
// running there. owner must be comparable (typically a pointer).
func (a *Animator) Start(owner any, channel string, g *TweenGroup) {
	key := animKey{owner, channel}
	for i := range a.entries {
		if a.entries[i].key == key {
			a.entries[i].group = g
			return
		}
	}
	a.entries = append(a.entries, animEntry{key: key, group: g})
}

// Stop drops the group running on the owner's channel without completing it.
func (a *Animator) Stop(owner any, channel string) {
	key := animKey{owner, channel}
	for i := range a.entries {
		if a.entries[i].key == key {
			copy(a.entries[i:], a.entries[i+1:])
			a.entries[len(a.entries)-1] = animEntry{}
			a.entries = a.entries[:len(a.entries)-1]
			return
		}
	}
}

// Active reports whether a group is running on the owner's channel.
func (a *Animator) Active(owner any, channel string) bool {
	key := animKey{owner, channel}
	for i := range a.entries {
		if a.entries[i].key == key {
			return true
		}
	}
	return false
}

// Len returns the number of running groups.
func (a *Animator) Len() int {
	return len(a.entries)
}

// Update advances every running group by dt seconds and drops finished ones.
// Groups started from completion callbacks begin on the next Update.
func (a *Animator) Update(dt float32) {
	a.scratch = append(a.scratch[:0], a.entries...)
	for _, e := range a.scratch {
		e.group.Update(dt)
	}
	clear(a.scratch)

	kept := a.entries[:0]
	for _, e := range a.entries {
		if !e.group.Done {
			kept = append(kept, e)
		}
	}
	clear(a.entries[len(kept):])
	a.entries = kept
}
