package glaze

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ripple is an optional additive press-release sweep layered on top of the
// base glass shading: an expanding, fading ring from the release point. It is
// external to the core refraction math and contributes nothing while idle.
type Ripple struct {
	origin   Vec2 // normalized surface coordinates
	tween    *gween.Tween
	progress float32
	active   bool
}

// rippleDuration is the sweep length in seconds.
const rippleDuration = 0.45

// NewRipple returns an idle ripple.
func NewRipple() *Ripple {
	return &Ripple{}
}

// Trigger starts a sweep from the given normalized origin, superseding any
// sweep in flight.
func (r *Ripple) Trigger(origin Vec2) {
	r.origin = origin
	r.progress = 0
	r.tween = gween.New(0, 1, rippleDuration, ease.OutQuad)
	r.active = true
}

// Update advances the sweep by dt seconds.
func (r *Ripple) Update(dt float64) {
	if !r.active {
		return
	}
	v, done := r.tween.Update(float32(dt))
	r.progress = v
	if done {
		r.active = false
		r.tween = nil
	}
}

// Active reports whether a sweep is in flight.
func (r *Ripple) Active() bool { return r.active }

// Add returns the additive white contribution at normalized (u, v):
// a soft ring expanding from the origin, fading as it grows. Zero when idle.
func (r *Ripple) Add(u, v float32) float32 {
	if !r.active {
		return 0
	}
	dx := u - float32(r.origin.X)
	dy := v - float32(r.origin.Y)
	d := math32.Sqrt(dx*dx + dy*dy)

	radius := r.progress * 1.1
	width := 0.06 + 0.1*r.progress
	band := smoothstepf(radius-width, radius, d) * (1 - smoothstepf(radius, radius+width, d))
	return band * (1 - r.progress) * 0.35
}
