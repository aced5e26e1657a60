package glaze

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MotionPolicy selects how interaction progress values approach their
// targets.
type MotionPolicy uint8

const (
	// MotionEased interpolates with a fixed duration and easing curve:
	// ease-out-cubic going in, ease-in-cubic going out.
	MotionEased MotionPolicy = iota
	// MotionSpring integrates a mass-spring-damper, allowing a slight
	// overshoot for press-release bounce.
	MotionSpring
)

// TrackerConfig configures a Tracker. Zero durations fall back to the token
// defaults (0.12 s in, 0.22 s out); a zero Spring falls back to
// DefaultSpring.
type TrackerConfig struct {
	Policy        MotionPolicy
	EnterDuration float64
	ExitDuration  float64
	Spring        SpringConfig
}

// InteractionSnapshot is the tracker state consumed by Resolve: the smoothed
// progress scalars, the raw booleans, and the last-known pointer position in
// surface-local pixels.
type InteractionSnapshot struct {
	Hover, Press, Drag float64
	Pointer            Vec2
	Hovered, Pressed   bool
	Dragging, Focused  bool
	Enabled            bool
}

// progressAnim animates one scalar toward 0 or 1 under either policy. The
// value only changes inside update; events just move the target.
type progressAnim struct {
	policy MotionPolicy
	value  float64
	target float64
	tween  *gween.Tween
	spr    spring
}

func (p *progressAnim) setTarget(t float64, cfg *TrackerConfig) {
	if t == p.target {
		return
	}
	p.target = t
	switch p.policy {
	case MotionEased:
		// Restart from the current value so a mid-flight retarget stays
		// continuous.
		dur := cfg.ExitDuration
		fn := ease.InCubic
		if t > p.value {
			dur = cfg.EnterDuration
			fn = ease.OutCubic
		}
		p.tween = gween.New(float32(p.value), float32(t), float32(dur), fn)
	case MotionSpring:
		p.spr.target = t
	}
}

func (p *progressAnim) update(dt float64) {
	switch p.policy {
	case MotionEased:
		if p.tween == nil {
			return
		}
		v, done := p.tween.Update(float32(dt))
		p.value = float64(v)
		if done {
			p.tween = nil
			p.value = p.target
		}
	case MotionSpring:
		p.spr.update(dt)
		p.value = p.spr.value
	}
}

// zero snaps the animation to rest. Only the disabled path uses this.
func (p *progressAnim) zero() {
	p.value = 0
	p.target = 0
	p.tween = nil
	p.spr.reset(0)
}

// current returns the progress clamped to [0, 1]. A spring may overshoot
// internally; callers never see out-of-range progress.
func (p *progressAnim) current() float64 { return clamp01(p.value) }

// Tracker converts raw interaction events on one surface into the smoothed
// hover/press/drag progress scalars the resolver consumes. It is owned by a
// single surface and updated once per frame via Update.
//
// A disabled tracker ignores all pointer and focus events and forces every
// progress value to 0 on the next Update. Re-enabling does not restore hover;
// a fresh PointerEnter is required.
type Tracker struct {
	cfg TrackerConfig

	enabled  bool
	hovered  bool
	pressed  bool
	dragging bool
	focused  bool
	pointer  Vec2

	hover progressAnim
	press progressAnim
	drag  progressAnim
}

// NewTracker creates an enabled tracker with all progress at 0.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.EnterDuration <= 0 {
		cfg.EnterDuration = 0.12
	}
	if cfg.ExitDuration <= 0 {
		cfg.ExitDuration = 0.22
	}
	if cfg.Spring.Mass <= 0 {
		cfg.Spring = DefaultSpring()
	}
	tr := &Tracker{cfg: cfg, enabled: true}
	for _, p := range []*progressAnim{&tr.hover, &tr.press, &tr.drag} {
		p.policy = cfg.Policy
		p.spr.cfg = cfg.Spring
	}
	return tr
}

// PointerEnter marks the surface hovered and records the pointer position in
// local coordinates.
func (tr *Tracker) PointerEnter(p Vec2) {
	if !tr.enabled {
		return
	}
	tr.hovered = true
	tr.pointer = p
	tr.hover.setTarget(1, &tr.cfg)
}

// PointerMove records the pointer position while the surface is hovered or
// pressed. Outside those states the last-known position is kept.
func (tr *Tracker) PointerMove(p Vec2) {
	if !tr.enabled {
		return
	}
	if tr.hovered || tr.pressed {
		tr.pointer = p
	}
}

// PointerLeave clears hover. The pointer position keeps its last-known value.
func (tr *Tracker) PointerLeave() {
	if !tr.enabled {
		return
	}
	tr.hovered = false
	tr.hover.setTarget(0, &tr.cfg)
}

// Press marks the surface pressed at the given local position.
func (tr *Tracker) Press(p Vec2) {
	if !tr.enabled {
		return
	}
	tr.pressed = true
	tr.pointer = p
	tr.press.setTarget(1, &tr.cfg)
}

// Release clears the pressed state, ending any drag in progress.
func (tr *Tracker) Release() {
	if !tr.enabled {
		return
	}
	tr.pressed = false
	tr.press.setTarget(0, &tr.cfg)
	if tr.dragging {
		tr.dragging = false
		tr.drag.setTarget(0, &tr.cfg)
	}
}

// DragStart begins a drag. Only valid while pressed; the call is ignored
// otherwise, since drag is reachable only from the pressed state.
func (tr *Tracker) DragStart() {
	if !tr.enabled || !tr.pressed {
		return
	}
	tr.dragging = true
	tr.drag.setTarget(1, &tr.cfg)
}

// DragEnd ends a drag without releasing the press.
func (tr *Tracker) DragEnd() {
	if !tr.enabled {
		return
	}
	tr.dragging = false
	tr.drag.setTarget(0, &tr.cfg)
}

// FocusIn sets the focus flag. Focus is orthogonal to hover/press/drag and
// has no progress scalar.
func (tr *Tracker) FocusIn() {
	if !tr.enabled {
		return
	}
	tr.focused = true
}

// FocusOut clears the focus flag.
func (tr *Tracker) FocusOut() {
	if !tr.enabled {
		return
	}
	tr.focused = false
}

// SetEnabled enables or disables the tracker. Disabling clears every
// interaction boolean and forces all progress to 0 on the next Update;
// further events are ignored until re-enabled.
func (tr *Tracker) SetEnabled(enabled bool) {
	if enabled == tr.enabled {
		return
	}
	tr.enabled = enabled
	if !enabled {
		tr.hovered = false
		tr.pressed = false
		tr.dragging = false
		tr.focused = false
	}
}

// Enabled reports whether the tracker accepts events.
func (tr *Tracker) Enabled() bool { return tr.enabled }

// Update advances all progress animations by dt seconds. While disabled it
// holds every progress value at 0 instead.
func (tr *Tracker) Update(dt float64) {
	if !tr.enabled {
		tr.hover.zero()
		tr.press.zero()
		tr.drag.zero()
		return
	}
	tr.hover.update(dt)
	tr.press.update(dt)
	tr.drag.update(dt)
}

// Snapshot returns the current progress values and interaction booleans.
func (tr *Tracker) Snapshot() InteractionSnapshot {
	return InteractionSnapshot{
		Hover:    tr.hover.current(),
		Press:    tr.press.current(),
		Drag:     tr.drag.current(),
		Pointer:  tr.pointer,
		Hovered:  tr.hovered,
		Pressed:  tr.pressed,
		Dragging: tr.dragging,
		Focused:  tr.focused,
		Enabled:  tr.enabled,
	}
}

// StateName returns a label for the dominant interaction state, mostly for
// debugging and tests: disabled > dragging > pressed > hovered > default.
// Focus is orthogonal and not part of the label.
func (tr *Tracker) StateName() string {
	switch {
	case !tr.enabled:
		return "disabled"
	case tr.dragging:
		return "dragging"
	case tr.pressed:
		return "pressed"
	case tr.hovered:
		return "hovered"
	}
	return "default"
}
