package feather

import "testing"

func TestInjectClick(t *testing.T) {
	s, _, back, _ := buildTree()

	var clicked bool
	s.OnClick(func(ctx ClickContext) {
		clicked = true
		if ctx.Node != back {
			t.Error("expected back node")
		}
	})

	s.InjectClick(25, 25)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInput())
	}

	// Frame 1: press
	s.processInput()
	if s.PendingInput() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", s.PendingInput())
	}
	if clicked {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release, click fires
	s.processInput()
	if s.PendingInput() != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", s.PendingInput())
	}
	if !clicked {
		t.Error("click should fire on release frame")
	}
}

func TestInjectMoveAndLeave(t *testing.T) {
	s, panel, _, _ := buildTree()

	var entered, left, moves int
	panel.OnPointerEnter = func(PointerContext) { entered++ }
	panel.OnPointerLeave = func(PointerContext) { left++ }
	panel.OnPointerMove = func(PointerContext) { moves++ }

	s.InjectMove(10, 10)
	s.InjectMove(20, 10)
	s.InjectLeave()
	for s.PendingInput() > 0 {
		s.processInput()
	}

	if entered != 1 || left != 1 {
		t.Errorf("enter=%d leave=%d, want 1 and 1", entered, left)
	}
	if moves != 2 {
		t.Errorf("moves = %d, want 2", moves)
	}
}

func TestInjectPressState(t *testing.T) {
	s := NewScene()
	s.InjectMove(1, 1)
	s.InjectPress(2, 2)
	s.InjectMove(3, 3)
	s.InjectRelease(4, 4)
	s.InjectMove(5, 5)

	want := []bool{false, true, true, false, false}
	if len(s.injectQueue) != len(want) {
		t.Fatalf("queued %d events", len(s.injectQueue))
	}
	for i, ev := range s.injectQueue {
		if ev.pressed != want[i] {
			t.Errorf("event %d pressed = %v, want %v", i, ev.pressed, want[i])
		}
		if ev.screenX != float64(i+1) {
			t.Errorf("event %d x = %v", i, ev.screenX)
		}
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScene()
	if s.processInjectedInput() {
		t.Error("empty queue should report no event consumed")
	}
}
