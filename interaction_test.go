package glaze

import (
	"math"
	"testing"
)

const tick = 1.0 / 60.0

func easedTracker() *Tracker {
	return NewTracker(TrackerConfig{Policy: MotionEased})
}

func runTicks(tr *Tracker, n int) {
	for i := 0; i < n; i++ {
		tr.Update(tick)
	}
}

func TestHoverProgressConvergesWithinDuration(t *testing.T) {
	tr := NewTracker(TrackerConfig{Policy: MotionEased, EnterDuration: 0.12, ExitDuration: 0.22})
	tr.PointerEnter(Vec2{10, 10})

	// 0.12s is a bit over 7 ticks; duration plus one tick must be enough.
	runTicks(tr, 9)
	if got := tr.Snapshot().Hover; got != 1 {
		t.Errorf("hover = %v after enter duration + one tick, want 1", got)
	}

	tr.PointerLeave()
	runTicks(tr, 15)
	if got := tr.Snapshot().Hover; got != 0 {
		t.Errorf("hover = %v after exit duration + one tick, want 0", got)
	}
}

func TestProgressStaysInRange(t *testing.T) {
	for _, policy := range []MotionPolicy{MotionEased, MotionSpring} {
		tr := NewTracker(TrackerConfig{Policy: policy})
		// Hammer the tracker with rapid flapping input.
		for i := 0; i < 200; i++ {
			switch i % 7 {
			case 0:
				tr.PointerEnter(Vec2{1, 1})
			case 2:
				tr.Press(Vec2{2, 2})
			case 3:
				tr.DragStart()
			case 4:
				tr.Release()
			case 5:
				tr.PointerLeave()
			}
			tr.Update(tick)
			snap := tr.Snapshot()
			for name, v := range map[string]float64{"hover": snap.Hover, "press": snap.Press, "drag": snap.Drag} {
				if v < 0 || v > 1 {
					t.Fatalf("policy %d: %s progress %v out of [0,1] at step %d", policy, name, v, i)
				}
			}
		}
	}
}

func TestRetargetMidAnimationIsContinuous(t *testing.T) {
	tr := easedTracker()
	tr.PointerEnter(Vec2{0, 0})
	runTicks(tr, 3)

	before := tr.Snapshot().Hover
	if before <= 0 || before >= 1 {
		t.Fatalf("hover = %v mid-animation, expected interior value", before)
	}

	// Leave mid-flight: the exit animation starts from the current value.
	tr.PointerLeave()
	tr.Update(tick)
	after := tr.Snapshot().Hover
	if math.Abs(after-before) > 0.3 {
		t.Errorf("hover jumped from %v to %v on retarget", before, after)
	}
}

func TestDisableForcesProgressToZero(t *testing.T) {
	tr := easedTracker()
	tr.PointerEnter(Vec2{5, 5})
	tr.Press(Vec2{5, 5})
	runTicks(tr, 30)

	if tr.Snapshot().Hover != 1 || tr.Snapshot().Press != 1 {
		t.Fatal("setup failed: expected saturated hover and press")
	}

	tr.SetEnabled(false)
	tr.Update(tick)

	snap := tr.Snapshot()
	if snap.Hover != 0 || snap.Press != 0 || snap.Drag != 0 {
		t.Errorf("progress after disable = %v/%v/%v, want all 0", snap.Hover, snap.Press, snap.Drag)
	}
	if snap.Hovered || snap.Pressed || snap.Dragging {
		t.Error("interaction booleans survived disable")
	}
}

func TestReEnableRequiresFreshEnter(t *testing.T) {
	tr := easedTracker()
	tr.PointerEnter(Vec2{5, 5})
	runTicks(tr, 30)

	tr.SetEnabled(false)
	tr.Update(tick)
	tr.SetEnabled(true)
	runTicks(tr, 30)

	if got := tr.Snapshot().Hover; got != 0 {
		t.Errorf("hover = %v after re-enable without enter, want 0", got)
	}

	tr.PointerEnter(Vec2{5, 5})
	runTicks(tr, 30)
	if got := tr.Snapshot().Hover; got != 1 {
		t.Errorf("hover = %v after fresh enter, want 1", got)
	}
}

func TestDisabledIgnoresEvents(t *testing.T) {
	tr := easedTracker()
	tr.SetEnabled(false)

	tr.PointerEnter(Vec2{1, 1})
	tr.Press(Vec2{1, 1})
	tr.FocusIn()
	runTicks(tr, 10)

	snap := tr.Snapshot()
	if snap.Hover != 0 || snap.Press != 0 || snap.Focused {
		t.Errorf("disabled tracker reacted to events: %+v", snap)
	}
	if tr.StateName() != "disabled" {
		t.Errorf("state = %q, want disabled", tr.StateName())
	}
}

func TestPointerPositionIsLastKnown(t *testing.T) {
	tr := easedTracker()
	tr.PointerEnter(Vec2{10, 20})
	tr.PointerMove(Vec2{30, 40})
	tr.PointerLeave()

	// Move after leave must not update, and the position must not reset.
	tr.PointerMove(Vec2{99, 99})
	if got := tr.Snapshot().Pointer; got != (Vec2{30, 40}) {
		t.Errorf("pointer = %v, want last-known {30 40}", got)
	}
}

func TestPointerTracksWhilePressed(t *testing.T) {
	tr := easedTracker()
	tr.PointerEnter(Vec2{1, 1})
	tr.Press(Vec2{2, 2})
	tr.PointerLeave()

	// Pressed without hover (capture semantics): moves still record.
	tr.PointerMove(Vec2{50, 60})
	if got := tr.Snapshot().Pointer; got != (Vec2{50, 60}) {
		t.Errorf("pointer = %v, want {50 60}", got)
	}
}

func TestDragOnlyFromPressed(t *testing.T) {
	tr := easedTracker()
	tr.PointerEnter(Vec2{0, 0})
	tr.DragStart()
	if tr.Snapshot().Dragging {
		t.Error("drag started without press")
	}

	tr.Press(Vec2{0, 0})
	tr.DragStart()
	if !tr.Snapshot().Dragging {
		t.Error("drag did not start from pressed")
	}
	if tr.StateName() != "dragging" {
		t.Errorf("state = %q, want dragging", tr.StateName())
	}

	tr.Release()
	if tr.Snapshot().Dragging {
		t.Error("release did not end drag")
	}
}

func TestFocusIsOrthogonal(t *testing.T) {
	tr := easedTracker()
	tr.FocusIn()
	tr.PointerEnter(Vec2{0, 0})
	runTicks(tr, 30)

	snap := tr.Snapshot()
	if !snap.Focused {
		t.Error("focus lost on hover")
	}
	if tr.StateName() != "hovered" {
		t.Errorf("state = %q, focus must not affect the label", tr.StateName())
	}
	tr.FocusOut()
	if tr.Snapshot().Focused {
		t.Error("focus out ignored")
	}
}

func TestSpringPolicyPressRelease(t *testing.T) {
	tr := NewTracker(TrackerConfig{Policy: MotionSpring})
	tr.PointerEnter(Vec2{0, 0})
	tr.Press(Vec2{0, 0})
	runTicks(tr, 120)
	if got := tr.Snapshot().Press; math.Abs(got-1) > 1e-2 {
		t.Fatalf("press = %v after 2s of spring, want ~1", got)
	}

	tr.Release()
	runTicks(tr, 240)
	if got := tr.Snapshot().Press; got > 1e-2 {
		t.Errorf("press = %v long after release, want ~0", got)
	}
}
