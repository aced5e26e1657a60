package glaze

import "github.com/hajimehoshi/ebiten/v2"

// Filter is the interface for effects that render src into dst. Material and
// BlurFilter both satisfy it so a capture/material chain can be composed by
// the embedding renderer.
type Filter interface {
	// Apply renders src into dst with the effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source. Zero means
	// no padding.
	Padding() int
}

// glassShaderSrc mirrors the CPU Shade function. The CPU path is the
// reference; any change here must be made there as well (and vice versa) or
// the two backends drift apart visually.
const glassShaderSrc = `//kage:unit pixels
package main

var Opacity float
var Highlight float
var Distortion float
var Tint vec3
var TintStrength float
var FresnelPower float
var NoiseAmount float
var Hover float
var Press float
var Pointer vec2
var Time float
var AlphaMult float
var CornerRadius float

func hash21(p vec2) float {
	return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453)
}

func valueNoise(p vec2) float {
	i := floor(p)
	f := fract(p)
	u := f * f * (3.0 - 2.0*f)
	a := hash21(i)
	b := hash21(i + vec2(1, 0))
	c := hash21(i + vec2(0, 1))
	d := hash21(i + vec2(1, 1))
	return mix(mix(a, b, u.x), mix(c, d, u.x), u.y)
}

func surfaceNoise(p vec2, t float) float {
	n := valueNoise(p + vec2(t*0.35, -t*0.21))
	n += 0.5 * valueNoise(p*2.7+vec2(-t*0.17, t*0.29))
	return n/1.5 - 0.5
}

func refr(i vec3, n vec3, eta float) vec3 {
	cosi := -dot(i, n)
	k := 1.0 - eta*eta*(1.0-cosi*cosi)
	if k < 0.0 {
		return vec3(0)
	}
	return i*eta + n*(eta*cosi-sqrt(k))
}

func rainbowRGB(h float) vec3 {
	hh := fract(h)
	r := clamp(abs(hh*6.0-3.0)-1.0, 0.0, 1.0)
	g := clamp(2.0-abs(hh*6.0-2.0), 0.0, 1.0)
	b := clamp(2.0-abs(hh*6.0-4.0), 0.0, 1.0)
	return vec3(r, g, b)
}

func sampleBG(uv vec2) vec3 {
	o := imageSrc0Origin()
	s := imageSrc0Size()
	// Clamp to the last texel center, matching the CPU sampler's edge clamp;
	// sampling at exactly origin+size falls outside the sub-image.
	p := clamp(uv*s, vec2(0.5), s-vec2(0.5))
	c := imageSrc0At(o + p)
	if c.a > 0.0 {
		c.rgb /= c.a
	}
	return c.rgb
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	size := imageSrc0Size()
	uv := (src - imageSrc0Origin()) / size

	bias := 0.15*Hover + 0.08*Press
	center := mix(vec2(0.5), Pointer, bias)
	delta := uv - center
	dist := length(delta)

	sphere := delta * 2.0
	height := sqrt(max(1.0-dot(sphere, sphere), 0.0))
	curvature := 0.65 + Distortion*8.0
	normal := normalize(vec3(sphere*curvature, height))

	if NoiseAmount > 0.0 {
		np := uv * 14.0
		nx := surfaceNoise(np, Time)
		ny := surfaceNoise(np+vec2(57.7, 113.3), Time)
		normal = normalize(normal + vec3(nx, ny, 0)*NoiseAmount)
	}

	edgeFactor := smoothstep(0.2, 0.95, dist*1.4)
	timeMod := 1.0 + 0.12*sin(2.0*Time+6.0*dist)
	iorBase := 1.08 + Distortion*4.0
	iorR := iorBase - 0.010*edgeFactor
	iorG := iorBase + 0.004*edgeFactor
	iorB := iorBase + 0.018*edgeFactor

	view := vec3(0, 0, -1)
	refractMag := (0.035 + Distortion*1.4) * timeMod

	rr := refr(view, normal, 1.0/iorR)
	rg := refr(view, normal, 1.0/iorG)
	rb := refr(view, normal, 1.0/iorB)

	bgR := sampleBG(uv + rr.xy*refractMag).r
	bgG := sampleBG(uv + rg.xy*refractMag).g
	bgB := sampleBG(uv + rb.xy*refractMag).b

	tap := vec2(0.012, 0.012)
	blurred := sampleBG(uv-tap) + sampleBG(uv+vec2(tap.x, -tap.y)) + sampleBG(uv+vec2(-tap.x, tap.y)) + sampleBG(uv+tap)
	blurred *= 0.25
	soft := clamp(Opacity+Distortion*2.0, 0.0, 1.0) * 0.35
	bgCol := mix(vec3(bgR, bgG, bgB), blurred, soft)

	rainbow := vec3(0)
	if edgeFactor > 0.2 {
		hue := atan2(delta.y, delta.x)/6.2831853 + 0.5
		rainbow = rainbowRGB(hue) * ((edgeFactor - 0.2) * 0.22 * Highlight)
	}

	fresnelFactor := clamp(pow(dist*1.8, FresnelPower), 0.0, 1.0)
	fresnelGlow := fresnelFactor * Highlight * 0.6

	light := normalize(vec3(-0.4, -0.6, 0.7))
	nl := max(dot(normal, light), 0.0)
	specular := pow(nl, 48.0)
	rimSpecular := pow(nl, 12.0) * fresnelFactor
	warm := vec3(1.0, 0.97, 0.92) * ((specular*0.9 + rimSpecular*0.5) * Highlight)

	caustic := exp(-dist*dist*6.0) * Highlight * 0.32
	ring := smoothstep(0.28, 0.35, dist) * (1.0 - smoothstep(0.35, 0.42, dist))
	caustic += ring * 0.18 * Highlight

	col := mix(bgCol, Tint, TintStrength*0.5)
	col += rainbow + vec3(fresnelGlow+caustic) + warm

	volumeOpacity := clamp(Opacity+fresnelFactor*0.18-(1.0-dist)*0.06, 0.1, 0.95)

	// Rounded-corner mask, 1px feather.
	p := uv * size
	half := size * 0.5
	q := abs(p-half) - (half - vec2(CornerRadius))
	sd := length(max(q, vec2(0))) + min(max(q.x, q.y), 0.0) - CornerRadius
	mask := clamp(0.5-sd, 0.0, 1.0)

	a := volumeOpacity * AlphaMult * mask
	return vec4(clamp(col, vec3(0), vec3(1))*a, a)
}
`

// Lazy shader compilation (no sync.Once — glaze is single-threaded).
var glassShader *ebiten.Shader

func ensureGlassShader() *ebiten.Shader {
	if glassShader == nil {
		s, err := ebiten.NewShader([]byte(glassShaderSrc))
		if err != nil {
			panic("glaze: failed to compile glass shader: " + err.Error())
		}
		glassShader = s
	}
	return glassShader
}

// Material renders the glass effect on the GPU: Apply draws the full glass
// shading over the source background region. Set the resolved parameters with
// SetInputs once per frame, then Apply per surface.
//
// The source image is the (blurred, downsampled) background region behind the
// surface; dst receives the shaded glass at the same size. Padding is 0: the
// effect never writes outside the surface rect.
type Material struct {
	// Time is the animation clock in seconds, driving noise and shimmer.
	Time float64

	in           ShadeInputs
	cornerRadius float32

	uniforms     map[string]any
	tintF32      [3]float32 // persistent buffer to avoid per-frame slice escape
	tintSlice    []float32
	pointerF32   [2]float32
	pointerSlice []float32
	shaderOp     ebiten.DrawRectShaderOptions
}

// NewMaterial creates a glass material with identity inputs.
func NewMaterial() *Material {
	m := &Material{
		uniforms: make(map[string]any, 13),
	}
	m.tintSlice = m.tintF32[:]
	m.pointerSlice = m.pointerF32[:]
	m.uniforms["Tint"] = m.tintSlice
	m.uniforms["Pointer"] = m.pointerSlice
	m.in.AlphaMultiplier = 1
	m.in.PointerX = 0.5
	m.in.PointerY = 0.5
	return m
}

// SetInputs loads the resolved parameters into the material's uniform
// buffers.
func (m *Material) SetInputs(p Params) {
	m.in = p.ShadeInputs()
	m.cornerRadius = float32(p.CornerRadius)
}

// SetAlphaMultiplier sets the ambient opacity inherited from the embedding
// component.
func (m *Material) SetAlphaMultiplier(a float64) {
	m.in.AlphaMultiplier = float32(clamp01(a))
}

// Apply renders the glass shading of src into dst. With degenerate inputs it
// draws nothing.
func (m *Material) Apply(src, dst *ebiten.Image) {
	if m.in.Degenerate {
		return
	}
	shader := ensureGlassShader()

	m.tintF32[0] = m.in.TintR
	m.tintF32[1] = m.in.TintG
	m.tintF32[2] = m.in.TintB
	m.pointerF32[0] = m.in.PointerX
	m.pointerF32[1] = m.in.PointerY

	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	m.uniforms["Opacity"] = m.in.Opacity
	m.uniforms["Highlight"] = m.in.Highlight
	m.uniforms["Distortion"] = m.in.Distortion
	m.uniforms["TintStrength"] = m.in.TintStrength
	m.uniforms["FresnelPower"] = m.in.FresnelPower
	m.uniforms["NoiseAmount"] = m.in.NoiseAmount
	m.uniforms["Hover"] = m.in.Hover
	m.uniforms["Press"] = m.in.Press
	m.uniforms["Time"] = float32(m.Time)
	m.uniforms["AlphaMult"] = m.in.AlphaMultiplier
	m.uniforms["CornerRadius"] = m.cornerRadius

	bounds := src.Bounds()
	m.shaderOp.Images[0] = src
	m.shaderOp.Uniforms = m.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &m.shaderOp)
}

// Padding returns 0; the glass effect never draws outside the surface rect.
func (m *Material) Padding() int { return 0 }
