package feather

// Dispatcher queues work for the next idle turn of the scene's loop. Tasks
// run after the frame's input handlers have returned and after the layout
// pass they triggered, in the order they were queued.
type Dispatcher struct {
	queue   []func()
	running []func()
}

// BeginInvoke schedules fn for the next idle turn. A task queued while the
// queue is draining runs on the following turn, never in the current one.
func (d *Dispatcher) BeginInvoke(fn func()) {
	if fn == nil {
		return
	}
	d.queue = append(d.queue, fn)
}

// Pending returns the number of queued tasks.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Drain runs every task queued before the call and returns how many ran.
func (d *Dispatcher) Drain() int {
	if len(d.queue) == 0 {
		return 0
	}
	d.running, d.queue = d.queue, d.running[:0]
	for _, fn := range d.running {
		fn()
	}
	n := len(d.running)
	clear(d.running)
	d.running = d.running[:0]
	return n
}
