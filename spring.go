package glaze

import "math"

// SpringConfig parameterizes the mass-spring-damper used by the spring
// interpolation policy. The defaults are slightly under-damped so a released
// press visibly springs back.
type SpringConfig struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// DefaultSpring returns an under-damped configuration (damping ratio ~0.69
// at mass 1, stiffness 170) suitable for press-release bounce.
func DefaultSpring() SpringConfig {
	return SpringConfig{Mass: 1, Stiffness: 170, Damping: 18}
}

// spring integrates one progress scalar toward its target with semi-implicit
// Euler. The raw value may overshoot past the target; callers clamp to [0, 1]
// when reporting, keeping the bounce in the dynamics without leaking
// out-of-range progress.
type spring struct {
	cfg      SpringConfig
	value    float64
	velocity float64
	target   float64
}

// springMaxStep bounds one integration step. Larger frame deltas are split so
// a dropped frame cannot make the integrator explode.
const springMaxStep = 1.0 / 120.0

// settle thresholds: once displacement and velocity are both tiny, snap to
// the target so the value actually converges instead of ringing forever.
const (
	springSettleDist = 1e-3
	springSettleVel  = 1e-3
)

func (s *spring) update(dt float64) {
	if dt <= 0 {
		return
	}
	cfg := s.cfg
	if cfg.Mass <= 0 {
		cfg = DefaultSpring()
	}
	for dt > 0 {
		h := math.Min(dt, springMaxStep)
		dt -= h

		force := -cfg.Stiffness*(s.value-s.target) - cfg.Damping*s.velocity
		s.velocity += force / cfg.Mass * h
		s.value += s.velocity * h
	}
	if math.Abs(s.value-s.target) < springSettleDist && math.Abs(s.velocity) < springSettleVel {
		s.value = s.target
		s.velocity = 0
	}
}

// reset snaps the spring to a value and kills velocity. Used at
// initialization and when a surface is disabled.
func (s *spring) reset(v float64) {
	s.value = v
	s.velocity = 0
	s.target = v
}
