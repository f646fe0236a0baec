package feather

import "testing"

func TestDispatcherRunsInOrder(t *testing.T) {
	var d Dispatcher
	var got []int
	for i := range 3 {
		d.BeginInvoke(func() { got = append(got, i) })
	}
	d.BeginInvoke(nil)
	if d.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", d.Pending())
	}
	if n := d.Drain(); n != 3 {
		t.Errorf("Drain = %d, want 3", n)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("order = %v", got)
	}
	if d.Drain() != 0 {
		t.Error("second drain should be empty")
	}
}

func TestDispatcherDefersNestedTasks(t *testing.T) {
	var d Dispatcher
	var log []string
	d.BeginInvoke(func() {
		log = append(log, "outer")
		d.BeginInvoke(func() { log = append(log, "inner") })
	})

	d.Drain()
	if joinStrings(log) != "outer" || d.Pending() != 1 {
		t.Fatalf("first turn: %v, pending %d", log, d.Pending())
	}
	d.Drain()
	if joinStrings(log) != "outer,inner" {
		t.Errorf("second turn: %v", log)
	}
}
