package glaze

import "github.com/chewxy/math32"

// The shading path runs in float32 so the CPU reference and the Kage program
// agree in precision. These small value types stay internal; the public API
// speaks float64 and Vec2.

type vec2f struct {
	x, y float32
}

func (a vec2f) add(b vec2f) vec2f     { return vec2f{a.x + b.x, a.y + b.y} }
func (a vec2f) sub(b vec2f) vec2f     { return vec2f{a.x - b.x, a.y - b.y} }
func (a vec2f) scale(s float32) vec2f { return vec2f{a.x * s, a.y * s} }
func (a vec2f) dot(b vec2f) float32   { return a.x*b.x + a.y*b.y }
func (a vec2f) length() float32       { return math32.Sqrt(a.dot(a)) }

type vec3f struct {
	x, y, z float32
}

func (a vec3f) add(b vec3f) vec3f     { return vec3f{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3f) scale(s float32) vec3f { return vec3f{a.x * s, a.y * s, a.z * s} }
func (a vec3f) dot(b vec3f) float32   { return a.x*b.x + a.y*b.y + a.z*b.z }

// normEpsilon matches the guard used for refraction-vector normalization.
// Near-zero vectors normalize to the surface normal's rest direction instead
// of producing NaN.
const normEpsilon = 1e-5

func (a vec3f) normalize() vec3f {
	l := math32.Sqrt(a.dot(a))
	if l < normEpsilon {
		return vec3f{0, 0, 1}
	}
	inv := 1 / l
	return vec3f{a.x * inv, a.y * inv, a.z * inv}
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerpf(a, b, t float32) float32 {
	return a + (b-a)*t
}

func mixv3(a, b vec3f, t float32) vec3f {
	return vec3f{lerpf(a.x, b.x, t), lerpf(a.y, b.y, t), lerpf(a.z, b.z, t)}
}

// smoothstepf is the GLSL smoothstep: 0 below e0, 1 above e1, Hermite between.
func smoothstepf(e0, e1, v float32) float32 {
	if e0 == e1 {
		if v < e0 {
			return 0
		}
		return 1
	}
	t := clamp01f((v - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// refractf refracts incident vector i against normal n with relative index of
// refraction eta (GLSL semantics). Returns the zero vector on total internal
// reflection.
func refractf(i, n vec3f, eta float32) vec3f {
	cosi := -i.dot(n)
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return vec3f{}
	}
	return i.scale(eta).add(n.scale(eta*cosi - math32.Sqrt(k)))
}
