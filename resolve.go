package glaze

// Geometry describes one surface: size in pixels and corner radius. A zero
// width or height is degenerate; the resolver still produces a valid
// parameter set and the shader outputs a transparent no-op color.
type Geometry struct {
	Width, Height float64
	CornerRadius  float64
}

// Degenerate reports whether the geometry has no area.
func (g Geometry) Degenerate() bool { return g.Width <= 0 || g.Height <= 0 }

// Overrides is a sparse per-instance token subset. Keys are token names as
// accepted by Tokens.Set; entries that fail validation are ignored at resolve
// time (Surface.SetOverride validates up front so this only happens when a
// map is built by hand).
type Overrides map[string]any

// Params is the resolved material parameter set handed to the shading
// algorithm: base tokens plus overrides plus state-dependent boosts, every
// value clamped to its documented range. Ephemeral; recompute whenever
// tokens, overrides, or progress values change.
type Params struct {
	Opacity      float64
	BlurRadius   float64
	Downsample   float64
	Highlight    float64
	Distortion   float64
	Tint         Color
	TintStrength float64
	FresnelPower float64
	NoiseAmount  float64
	CornerRadius float64
	Elevation    float64

	// ReadabilityOverlay is the opacity of the flat contrast layer drawn
	// above the glass when readability mode is on; 0 otherwise.
	ReadabilityOverlay float64

	Hover, Press, Drag float64
	// Pointer is the pointer position normalized to [0,1] surface
	// coordinates; (0.5, 0.5) when the geometry is degenerate.
	Pointer    Vec2
	Degenerate bool
}

// Resolve combines the token store, per-instance overrides, and the
// interaction snapshot into the final parameter set. It is a pure function of
// its inputs: identical inputs produce identical output.
//
// Boosts are additive. Press dominates hover: the hover contribution fades
// out by (1 - pressProgress) so a press never stacks a full hover boost on
// top. Drag scales blur radius and elevation by (1 + dragScale*dragProgress).
func Resolve(t *Tokens, ov Overrides, in InteractionSnapshot, geom Geometry) Params {
	base := *t
	for name, v := range ov {
		_ = base.Set(name, v)
	}

	hoverTerm := in.Hover * (1 - in.Press)

	var p Params
	p.Highlight = clamp(base.EffectiveHighlight()+
		base.hoverBoost*hoverTerm+
		base.pressBoost*in.Press, 0, 2)
	p.Distortion = clamp(base.distortion+
		base.hoverDistortionBoost*hoverTerm+
		base.pressDistortionBoost*in.Press, 0, 0.5)

	if in.Enabled {
		p.Opacity = clamp01(base.EffectiveOpacity() + base.hoverOpacityDelta*in.Hover)
	} else {
		p.Opacity = clamp01(base.EffectiveOpacity() * base.disabledOpacity)
	}

	dragScale := 1 + base.dragScale*in.Drag
	p.BlurRadius = base.EffectiveBlurRadius() * dragScale
	p.Elevation = base.elevation * dragScale
	p.Downsample = base.DownsampleFactor()

	p.Tint = base.tint
	p.TintStrength = clamp01(base.tintStrength)
	p.FresnelPower = base.fresnelPower
	p.NoiseAmount = base.noiseAmount
	// Geometry wins over the token when it specifies a radius; either way the
	// radius cannot exceed half the smaller side.
	radius := base.cornerRadius
	if geom.CornerRadius > 0 {
		radius = geom.CornerRadius
	}
	p.CornerRadius = clamp(radius, 0, minDim(geom)/2)
	if base.readability {
		p.ReadabilityOverlay = base.readabilityOverlay
	}

	p.Hover = clamp01(in.Hover)
	p.Press = clamp01(in.Press)
	p.Drag = clamp01(in.Drag)

	if geom.Degenerate() {
		p.Degenerate = true
		p.Pointer = Vec2{0.5, 0.5}
	} else {
		p.Pointer = Vec2{
			clamp01(in.Pointer.X / geom.Width),
			clamp01(in.Pointer.Y / geom.Height),
		}
	}
	return p
}

func minDim(g Geometry) float64 {
	if g.Width < g.Height {
		return g.Width
	}
	return g.Height
}
