package glaze

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestUniformSampler(t *testing.T) {
	s := UniformSampler{C: Color{0.2, 0.4, 0.6, 1}}
	r, g, b := s.Sample(0.1, 0.9)
	if math.Abs(float64(r)-0.2) > 1e-6 || math.Abs(float64(g)-0.4) > 1e-6 || math.Abs(float64(b)-0.6) > 1e-6 {
		t.Errorf("sample = (%v, %v, %v), want (0.2, 0.4, 0.6)", r, g, b)
	}
}

func TestImageSamplerCenters(t *testing.T) {
	// 2x1 image: black left, white right. The texel centers map to u=0.25
	// and u=0.75.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{255, 255, 255, 255})
	s := NewImageSampler(img)

	r, _, _ := s.Sample(0.25, 0.5)
	if r > 0.01 {
		t.Errorf("left texel r = %v, want ~0", r)
	}
	r, _, _ = s.Sample(0.75, 0.5)
	if r < 0.99 {
		t.Errorf("right texel r = %v, want ~1", r)
	}

	// Halfway between the texel centers the filter is an even blend.
	r, _, _ = s.Sample(0.5, 0.5)
	if math.Abs(float64(r)-0.5) > 0.01 {
		t.Errorf("midpoint r = %v, want ~0.5", r)
	}
}

func TestImageSamplerClampsAtEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{128, 128, 128, 255})
		}
	}
	s := NewImageSampler(img)

	for _, uv := range [][2]float32{{-1, 0.5}, {2, 0.5}, {0.5, -3}, {0.5, 5}} {
		r, g, b := s.Sample(uv[0], uv[1])
		if math.Abs(float64(r)-128.0/255.0) > 0.01 {
			t.Errorf("out-of-range sample at %v = (%v, %v, %v)", uv, r, g, b)
		}
	}
}

func TestImageSamplerEdgeReturnsEdgeTexel(t *testing.T) {
	// The rightmost column is distinct; sampling at and beyond u = 1 must
	// return that texel rather than falling off the image.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	for x := 0; x < 3; x++ {
		img.Set(x, 0, color.NRGBA{0, 0, 0, 255})
	}
	img.Set(3, 0, color.NRGBA{255, 0, 0, 255})
	s := NewImageSampler(img)

	for _, u := range []float32{1, 1.5} {
		r, _, _ := s.Sample(u, 0.5)
		if math.Abs(float64(r)-1) > 0.01 {
			t.Errorf("edge sample at u = %v: r = %v, want 1", u, r)
		}
	}
}

func TestImageSamplerZeroSize(t *testing.T) {
	s := NewImageSampler(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	r, g, b := s.Sample(0.5, 0.5)
	if math.Abs(float64(r)-0.5) > 1e-6 || math.Abs(float64(g)-0.5) > 1e-6 || math.Abs(float64(b)-0.5) > 1e-6 {
		t.Errorf("zero-size sample = (%v, %v, %v), want neutral gray", r, g, b)
	}
}
