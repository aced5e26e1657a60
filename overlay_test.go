package glaze

import "testing"

func TestRippleIdleContributesNothing(t *testing.T) {
	r := NewRipple()
	for _, uv := range [][2]float32{{0.5, 0.5}, {0, 0}, {1, 1}} {
		if got := r.Add(uv[0], uv[1]); got != 0 {
			t.Errorf("idle ripple at %v = %v, want 0", uv, got)
		}
	}
}

func TestRippleSweepsAndFades(t *testing.T) {
	r := NewRipple()
	r.Trigger(Vec2{0.5, 0.5})

	// Partway in there must be a visible ring somewhere on the surface. Scan
	// the corner diagonal: distance from the center reaches ~0.71 there, so
	// the ring stays in range even late in the sweep.
	for i := 0; i < 10; i++ {
		r.Update(tick)
	}
	var peak float32
	for i := 0; i <= 50; i++ {
		p := float32(i) * 0.02
		if got := r.Add(p, p); got > peak {
			peak = got
		}
	}
	if peak <= 0 {
		t.Fatal("active ripple contributed nothing anywhere")
	}

	// After the full duration it is inert again.
	for i := 0; i < 60; i++ {
		r.Update(tick)
	}
	if r.Active() {
		t.Error("ripple still active after duration")
	}
	if got := r.Add(0.5, 0.5); got != 0 {
		t.Errorf("finished ripple = %v, want 0", got)
	}
}

func TestRippleRetrigger(t *testing.T) {
	r := NewRipple()
	r.Trigger(Vec2{0.2, 0.2})
	for i := 0; i < 20; i++ {
		r.Update(tick)
	}
	r.Trigger(Vec2{0.8, 0.8})
	if !r.Active() {
		t.Fatal("retrigger did not restart the sweep")
	}
	if r.progress != 0 {
		t.Errorf("progress = %v after retrigger, want 0", r.progress)
	}
}
