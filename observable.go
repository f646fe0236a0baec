package feather

// Property is an observable value. Set notifies registered observers
// synchronously when the value actually changes.
type Property[T comparable] struct {
	value     T
	observers []propertyObserver[T]
	nextID    uint32
}

type propertyObserver[T comparable] struct {
	id uint32
	fn func(old, cur T)
}

// NewProperty returns a property holding v.
func NewProperty[T comparable](v T) *Property[T] {
	return &Property[T]{value: v}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores v and notifies observers if it differs from the current value.
// It reports whether the value changed.
func (p *Property[T]) Set(v T) bool {
	if p.value == v {
		return false
	}
	old := p.value
	p.value = v
	for _, o := range p.observers {
		o.fn(old, v)
	}
	return true
}

// OnChange registers fn to run after every effective change and returns a
// function that unregisters it.
func (p *Property[T]) OnChange(fn func(old, cur T)) (remove func()) {
	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, propertyObserver[T]{id: id, fn: fn})
	return func() {
		for i := range p.observers {
			if p.observers[i].id == id {
				copy(p.observers[i:], p.observers[i+1:])
				p.observers[len(p.observers)-1] = propertyObserver[T]{}
				p.observers = p.observers[:len(p.observers)-1]
				return
			}
		}
	}
}

// Event is a synchronous notification channel with removable subscribers.
type Event[T any] struct {
	subs   []eventSub[T]
	nextID uint32
}

type eventSub[T any] struct {
	id uint32
	fn func(T)
}

// Subscribe registers fn and returns a function that unregisters it.
func (e *Event[T]) Subscribe(fn func(T)) (remove func()) {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, eventSub[T]{id: id, fn: fn})
	return func() {
		for i := range e.subs {
			if e.subs[i].id == id {
				copy(e.subs[i:], e.subs[i+1:])
				e.subs[len(e.subs)-1] = eventSub[T]{}
				e.subs = e.subs[:len(e.subs)-1]
				return
			}
		}
	}
}

// Emit calls every subscriber in registration order.
func (e *Event[T]) Emit(v T) {
	for _, s := range e.subs {
		s.fn(v)
	}
}

// Len returns the number of subscribers.
func (e *Event[T]) Len() int {
	return len(e.subs)
}
