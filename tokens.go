package glaze

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidParameter is returned when a token name is unknown, a value lies
// outside its documented domain, or a derived token is written directly.
// The store keeps the previous value on failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// QualityPreset selects the rendering quality tier. It drives the derived
// blur radius and background downsample factor through a fixed table.
type QualityPreset uint8

const (
	QualityLow QualityPreset = iota
	QualityMedium
	QualityHigh
)

// String returns the preset name.
func (p QualityPreset) String() string {
	switch p {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}
	return fmt.Sprintf("QualityPreset(%d)", uint8(p))
}

// qualityTable maps each preset to (downsample factor, blur radius).
// These pairs are fixed; they are never tuned per instance.
var qualityTable = [3]struct {
	downsample float64
	blur       float64
}{
	QualityLow:    {0.25, 20},
	QualityMedium: {0.5, 32},
	QualityHigh:   {1.0, 48},
}

// Tokens is the process-wide design token store: every named parameter that
// controls the glass material, plus the quality preset and readability mode.
//
// Create one store with NewTokens at startup and share it by reference across
// all surfaces. Writes go through Set / SetQualityPreset /
// SetReadabilityMode; out-of-domain writes are rejected and the previous
// value is retained. Derived values (blur radius, downsample factor, the
// effective readability-adjusted values) are computed on demand from the
// current base tokens, so they can never go stale.
//
// The store is not safe for concurrent mutation; the intended model is a
// single frame-driven goroutine, matching the rest of the library.
type Tokens struct {
	preset      QualityPreset
	readability bool

	opacity      float64 // [0, 1]
	highlight    float64 // [0, 2]
	distortion   float64 // [0, 0.5]
	tint         Color
	tintStrength float64 // [0, 1]
	fresnelPower float64 // [1, 8]
	noiseAmount  float64 // [0, 0.25]
	cornerRadius float64 // >= 0, pixels
	elevation    float64 // >= 0, pixels

	hoverBoost           float64 // [0, 1]
	pressBoost           float64 // [0, 1]
	hoverDistortionBoost float64 // [0, 0.5]
	pressDistortionBoost float64 // [0, 0.5]
	hoverOpacityDelta    float64 // [0, 1]
	disabledOpacity      float64 // [0, 1]
	dragScale            float64 // [0, 2]
	readabilityOverlay   float64 // [0, 1]

	durationFast   float64 // seconds, > 0
	durationNormal float64
	durationSlow   float64
}

// NewTokens returns a token store populated with the library defaults:
// a cool translucent tint at 35% opacity, medium quality, readability off.
func NewTokens() *Tokens {
	return &Tokens{
		preset:               QualityMedium,
		opacity:              0.35,
		highlight:            0.6,
		distortion:           0.05,
		tint:                 Color{0.72, 0.8, 0.88, 1},
		tintStrength:         0.3,
		fresnelPower:         2.5,
		noiseAmount:          0.012,
		cornerRadius:         24,
		elevation:            8,
		hoverBoost:           0.25,
		pressBoost:           0.4,
		hoverDistortionBoost: 0.02,
		pressDistortionBoost: 0.035,
		hoverOpacityDelta:    0.08,
		disabledOpacity:      0.5,
		dragScale:            0.35,
		readabilityOverlay:   0.25,
		durationFast:         0.12,
		durationNormal:       0.22,
		durationSlow:         0.4,
	}
}

// SetQualityPreset changes the quality tier driving blur radius and
// downsample factor.
func (t *Tokens) SetQualityPreset(p QualityPreset) error {
	if p > QualityHigh {
		return fmt.Errorf("glaze: quality preset %d out of range: %w", p, ErrInvalidParameter)
	}
	t.preset = p
	return nil
}

// QualityPreset returns the current quality tier.
func (t *Tokens) QualityPreset() QualityPreset { return t.preset }

// SetReadabilityMode toggles the accessibility policy that raises opacity and
// blur while softening highlights so text behind the glass stays legible.
func (t *Tokens) SetReadabilityMode(on bool) { t.readability = on }

// ReadabilityMode reports whether the readability policy is active.
func (t *Tokens) ReadabilityMode() bool { return t.readability }

// DownsampleFactor returns the background capture scale for the current
// preset: 0.25, 0.5, or 1.0.
func (t *Tokens) DownsampleFactor() float64 { return qualityTable[t.preset].downsample }

// BlurRadius returns the preset's base blur radius in pixels: 20, 32, or 48.
func (t *Tokens) BlurRadius() float64 { return qualityTable[t.preset].blur }

// EffectiveOpacity is the base opacity adjusted for readability mode:
// min(base+0.2, 0.8) when active, the base value otherwise.
func (t *Tokens) EffectiveOpacity() float64 {
	if t.readability {
		return min(t.opacity+0.2, 0.8)
	}
	return t.opacity
}

// EffectiveBlurRadius is the preset blur radius, scaled by 1.2 in
// readability mode.
func (t *Tokens) EffectiveBlurRadius() float64 {
	if t.readability {
		return t.BlurRadius() * 1.2
	}
	return t.BlurRadius()
}

// EffectiveHighlight is the base highlight intensity, scaled by 0.7 in
// readability mode.
func (t *Tokens) EffectiveHighlight() float64 {
	if t.readability {
		return t.highlight * 0.7
	}
	return t.highlight
}

// Get returns the value of a token by name. Base tokens return what was set;
// derived tokens ("blurRadius", "downsampleFactor", "effectiveOpacity",
// "effectiveBlurRadius", "effectiveHighlight") return their computed values.
func (t *Tokens) Get(name string) (any, error) {
	switch name {
	case "opacity":
		return t.opacity, nil
	case "highlight":
		return t.highlight, nil
	case "distortion":
		return t.distortion, nil
	case "tintColor":
		return t.tint, nil
	case "tintStrength":
		return t.tintStrength, nil
	case "fresnelPower":
		return t.fresnelPower, nil
	case "noiseAmount":
		return t.noiseAmount, nil
	case "cornerRadius":
		return t.cornerRadius, nil
	case "elevation":
		return t.elevation, nil
	case "hoverBoost":
		return t.hoverBoost, nil
	case "pressBoost":
		return t.pressBoost, nil
	case "hoverDistortionBoost":
		return t.hoverDistortionBoost, nil
	case "pressDistortionBoost":
		return t.pressDistortionBoost, nil
	case "hoverOpacityDelta":
		return t.hoverOpacityDelta, nil
	case "disabledOpacityFactor":
		return t.disabledOpacity, nil
	case "dragScale":
		return t.dragScale, nil
	case "readabilityOverlayOpacity":
		return t.readabilityOverlay, nil
	case "durationFast":
		return t.durationFast, nil
	case "durationNormal":
		return t.durationNormal, nil
	case "durationSlow":
		return t.durationSlow, nil
	case "blurRadius":
		return t.BlurRadius(), nil
	case "downsampleFactor":
		return t.DownsampleFactor(), nil
	case "effectiveOpacity":
		return t.EffectiveOpacity(), nil
	case "effectiveBlurRadius":
		return t.EffectiveBlurRadius(), nil
	case "effectiveHighlight":
		return t.EffectiveHighlight(), nil
	}
	return nil, fmt.Errorf("glaze: unknown token %q: %w", name, ErrInvalidParameter)
}

// Set writes a base token by name. Scalar tokens accept float64 (or int for
// convenience); "tintColor" accepts a Color or a hex string such as
// "#8AB4F8". Out-of-domain values and derived-token names are rejected with
// ErrInvalidParameter, leaving the previous value in place.
func (t *Tokens) Set(name string, value any) error {
	if name == "tintColor" {
		c, err := coerceColor(value)
		if err != nil {
			return err
		}
		t.tint = c
		return nil
	}

	dst, lo, hi, ok := t.scalarSlot(name)
	if !ok {
		return fmt.Errorf("glaze: unknown or derived token %q: %w", name, ErrInvalidParameter)
	}
	v, err := coerceFloat(name, value)
	if err != nil {
		return err
	}
	if v < lo || v > hi {
		return fmt.Errorf("glaze: token %q value %v outside [%v, %v]: %w",
			name, v, lo, hi, ErrInvalidParameter)
	}
	*dst = v
	return nil
}

// scalarSlot maps a settable scalar token name to its storage and domain.
func (t *Tokens) scalarSlot(name string) (dst *float64, lo, hi float64, ok bool) {
	const unbounded = 1e9
	switch name {
	case "opacity":
		return &t.opacity, 0, 1, true
	case "highlight":
		return &t.highlight, 0, 2, true
	case "distortion":
		return &t.distortion, 0, 0.5, true
	case "tintStrength":
		return &t.tintStrength, 0, 1, true
	case "fresnelPower":
		return &t.fresnelPower, 1, 8, true
	case "noiseAmount":
		return &t.noiseAmount, 0, 0.25, true
	case "cornerRadius":
		return &t.cornerRadius, 0, unbounded, true
	case "elevation":
		return &t.elevation, 0, unbounded, true
	case "hoverBoost":
		return &t.hoverBoost, 0, 1, true
	case "pressBoost":
		return &t.pressBoost, 0, 1, true
	case "hoverDistortionBoost":
		return &t.hoverDistortionBoost, 0, 0.5, true
	case "pressDistortionBoost":
		return &t.pressDistortionBoost, 0, 0.5, true
	case "hoverOpacityDelta":
		return &t.hoverOpacityDelta, 0, 1, true
	case "disabledOpacityFactor":
		return &t.disabledOpacity, 0, 1, true
	case "dragScale":
		return &t.dragScale, 0, 2, true
	case "readabilityOverlayOpacity":
		return &t.readabilityOverlay, 0, 1, true
	case "durationFast":
		return &t.durationFast, 0.001, 10, true
	case "durationNormal":
		return &t.durationNormal, 0.001, 10, true
	case "durationSlow":
		return &t.durationSlow, 0.001, 10, true
	}
	return nil, 0, 0, false
}

func coerceFloat(name string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("glaze: token %q expects a number, got %T: %w",
		name, value, ErrInvalidParameter)
}

func coerceColor(value any) (Color, error) {
	switch v := value.(type) {
	case Color:
		if v.R < 0 || v.R > 1 || v.G < 0 || v.G > 1 || v.B < 0 || v.B > 1 || v.A < 0 || v.A > 1 {
			return Color{}, fmt.Errorf("glaze: color components outside [0, 1]: %w", ErrInvalidParameter)
		}
		return v, nil
	case string:
		c, err := colorful.Hex(v)
		if err != nil {
			return Color{}, fmt.Errorf("glaze: bad hex color %q: %w", v, ErrInvalidParameter)
		}
		return Color{c.R, c.G, c.B, 1}, nil
	}
	return Color{}, fmt.Errorf("glaze: tintColor expects Color or hex string, got %T: %w",
		value, ErrInvalidParameter)
}
