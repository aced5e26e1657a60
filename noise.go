package glaze

import "github.com/chewxy/math32"

// Hash-based 2D value noise. The same lattice hash and smoothstep
// interpolation run in the Kage program, so the CPU and GPU surfaces wobble
// identically for a given clock.

// hash21 maps a lattice point to a pseudo-random value in [0, 1).
func hash21(x, y float32) float32 {
	h := math32.Sin(x*127.1+y*311.7) * 43758.5453
	return h - math32.Floor(h)
}

// valueNoise is smoothstep-interpolated lattice noise in [0, 1).
func valueNoise(x, y float32) float32 {
	ix := math32.Floor(x)
	iy := math32.Floor(y)
	fx := x - ix
	fy := y - iy

	// Hermite weights, same curve as smoothstep(0, 1, f).
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := hash21(ix, iy)
	b := hash21(ix+1, iy)
	c := hash21(ix, iy+1)
	d := hash21(ix+1, iy+1)

	return lerpf(lerpf(a, b, ux), lerpf(c, d, ux), uy)
}

// surfaceNoise is the two-octave, time-offset noise field added to the
// refraction normal. Output is centered on zero, roughly [-0.5, 0.5].
func surfaceNoise(x, y, t float32) float32 {
	n := valueNoise(x+t*0.35, y-t*0.21)
	n += 0.5 * valueNoise(x*2.7-t*0.17, y*2.7+t*0.29)
	return n/1.5 - 0.5
}
