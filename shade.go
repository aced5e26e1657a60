package glaze

import "github.com/chewxy/math32"

// RGBA is a premultiplied-alpha fragment color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// ShadeInputs is the float32 form of Params consumed per fragment. Convert
// once per frame with Params.ShadeInputs, not per pixel.
type ShadeInputs struct {
	Opacity      float32
	Highlight    float32
	Distortion   float32
	TintR        float32
	TintG        float32
	TintB        float32
	TintStrength float32
	FresnelPower float32
	NoiseAmount  float32
	Hover        float32
	Press        float32
	PointerX     float32
	PointerY     float32
	// AlphaMultiplier is the ambient opacity inherited from the embedding
	// component (1 for a standalone surface).
	AlphaMultiplier float32
	Degenerate      bool
}

// ShadeInputs converts the resolved parameters for the shading loop.
func (p Params) ShadeInputs() ShadeInputs {
	return ShadeInputs{
		Opacity:         float32(p.Opacity),
		Highlight:       float32(p.Highlight),
		Distortion:      float32(p.Distortion),
		TintR:           float32(p.Tint.R),
		TintG:           float32(p.Tint.G),
		TintB:           float32(p.Tint.B),
		TintStrength:    float32(p.TintStrength),
		FresnelPower:    float32(p.FresnelPower),
		NoiseAmount:     float32(p.NoiseAmount),
		Hover:           float32(p.Hover),
		Press:           float32(p.Press),
		PointerX:        float32(p.Pointer.X),
		PointerY:        float32(p.Pointer.Y),
		AlphaMultiplier: 1,
		Degenerate:      p.Degenerate,
	}
}

// Fixed light direction for the specular and rim terms.
var shadeLight = vec3f{-0.4, -0.6, 0.7}.normalize()

// noiseFrequency scales the uv lattice of the refraction micro-noise.
const noiseFrequency = 14.0

// diffusionTap is the UV offset of the 4-tap box blur used for sub-surface
// softness.
const diffusionTap = 0.012

// Shade evaluates the glass material at normalized surface coordinate (u, v):
// lens refraction with per-channel dispersion, soft diffusion, edge rainbow
// tint, Fresnel glow, specular and rim highlights, and a caustic inner glow,
// composed over the sampled background. The returned color is premultiplied
// by the volumetric alpha and the ambient alpha multiplier.
//
// bg may be nil, in which case a flat neutral gray stands in for the
// background and the surface stays visible. time is a monotonically
// increasing clock in seconds driving the noise and dispersion shimmer.
//
// Shade is pure and never produces NaN: degenerate geometry yields a
// transparent no-op fragment and every normalization is epsilon-guarded.
func Shade(u, v float32, in *ShadeInputs, bg Sampler, time float32) RGBA {
	if in.Degenerate {
		return RGBA{}
	}
	if bg == nil {
		bg = NeutralSampler
	}

	// Interaction-biased center: hover and press pull the lens toward the
	// pointer.
	bias := 0.15*in.Hover + 0.08*in.Press
	center := vec2f{
		lerpf(0.5, in.PointerX, bias),
		lerpf(0.5, in.PointerY, bias),
	}
	delta := vec2f{u, v}.sub(center)
	dist := delta.length()

	// Pseudo-sphere normal: treat the surface as a unit hemisphere bulging
	// toward the viewer.
	sphere := delta.scale(2)
	height := math32.Sqrt(math32.Max(1-sphere.dot(sphere), 0))
	curvature := 0.65 + in.Distortion*8
	normal := vec3f{sphere.x * curvature, sphere.y * curvature, height}.normalize()

	// Procedural micro-noise keeps the refraction organic rather than a
	// static lens.
	if in.NoiseAmount > 0 {
		nx := surfaceNoise(u*noiseFrequency, v*noiseFrequency, time)
		ny := surfaceNoise(u*noiseFrequency+57.7, v*noiseFrequency+113.3, time)
		normal.x += nx * in.NoiseAmount
		normal.y += ny * in.NoiseAmount
		normal = normal.normalize()
	}

	// Per-channel dispersion: three indices of refraction spread by an
	// edge-dependent factor, shimmering slowly over time.
	edgeFactor := smoothstepf(0.2, 0.95, dist*1.4)
	timeMod := 1 + 0.12*math32.Sin(2*time+6*dist)
	iorBase := 1.08 + in.Distortion*4
	iorR := iorBase - 0.010*edgeFactor
	iorG := iorBase + 0.004*edgeFactor
	iorB := iorBase + 0.018*edgeFactor

	view := vec3f{0, 0, -1}
	refractMag := (0.035 + in.Distortion*1.4) * timeMod

	refR := refractf(view, normal, 1/iorR)
	refG := refractf(view, normal, 1/iorG)
	refB := refractf(view, normal, 1/iorB)

	r, _, _ := bg.Sample(u+refR.x*refractMag, v+refR.y*refractMag)
	_, g, _ := bg.Sample(u+refG.x*refractMag, v+refG.y*refractMag)
	_, _, b := bg.Sample(u+refB.x*refractMag, v+refB.y*refractMag)

	// Soft diffusion: blend toward a 4-tap box blur of the unrefracted
	// background to simulate sub-surface softness.
	br0, bg0, bb0 := bg.Sample(u-diffusionTap, v-diffusionTap)
	br1, bg1, bb1 := bg.Sample(u+diffusionTap, v-diffusionTap)
	br2, bg2, bb2 := bg.Sample(u-diffusionTap, v+diffusionTap)
	br3, bg3, bb3 := bg.Sample(u+diffusionTap, v+diffusionTap)
	soft := clamp01f(in.Opacity+in.Distortion*2) * 0.35
	r = lerpf(r, (br0+br1+br2+br3)*0.25, soft)
	g = lerpf(g, (bg0+bg1+bg2+bg3)*0.25, soft)
	b = lerpf(b, (bb0+bb1+bb2+bb3)*0.25, soft)
	bgCol := vec3f{r, g, b}

	// Edge rainbow tint from the angular position around the center.
	var rainbow vec3f
	if edgeFactor > 0.2 {
		hue := math32.Atan2(delta.y, delta.x)/(2*math32.Pi) + 0.5
		rainbow = rainbowRGB(hue).scale((edgeFactor - 0.2) * 0.22 * in.Highlight)
	}

	// Fresnel edge glow.
	fresnelFactor := clamp01f(math32.Pow(dist*1.8, in.FresnelPower))
	fresnelGlow := fresnelFactor * in.Highlight * 0.6

	// Specular and rim highlights from the fixed light.
	nl := math32.Max(normal.dot(shadeLight), 0)
	specular := math32.Pow(nl, 48)
	rimSpecular := math32.Pow(nl, 12) * fresnelFactor
	specAmount := (specular*0.9 + rimSpecular*0.5) * in.Highlight
	warm := vec3f{1, 0.97, 0.92}.scale(specAmount)

	// Caustic inner glow plus a secondary ring.
	caustic := math32.Exp(-dist*dist*6) * in.Highlight * 0.32
	ring := smoothstepf(0.28, 0.35, dist) * (1 - smoothstepf(0.35, 0.42, dist))
	caustic += ring * 0.18 * in.Highlight

	tint := vec3f{in.TintR, in.TintG, in.TintB}
	col := mixv3(bgCol, tint, in.TintStrength*0.5)
	col = col.add(rainbow)
	col.x += fresnelGlow + caustic
	col.y += fresnelGlow + caustic
	col.z += fresnelGlow + caustic
	col = col.add(warm)

	volumeOpacity := clampf(in.Opacity+fresnelFactor*0.18-(1-dist)*0.06, 0.1, 0.95)
	a := volumeOpacity * in.AlphaMultiplier

	return RGBA{
		R: clamp01f(col.x) * a,
		G: clamp01f(col.y) * a,
		B: clamp01f(col.z) * a,
		A: a,
	}
}

// rainbowRGB converts a hue in [0, 1) to an RGB rainbow via the
// piecewise-linear HSV approximation (full saturation and value).
func rainbowRGB(h float32) vec3f {
	h -= math32.Floor(h)
	return vec3f{
		clamp01f(math32.Abs(h*6-3) - 1),
		clamp01f(2 - math32.Abs(h*6-2)),
		clamp01f(2 - math32.Abs(h*6-4)),
	}
}
