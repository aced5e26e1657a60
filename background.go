package glaze

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sampler is the background-sample capability: normalized coordinate in, RGB
// out. Coordinates outside [0, 1] clamp to the edge. Implementations must be
// pure per frame so the shading function stays deterministic.
type Sampler interface {
	Sample(u, v float32) (r, g, b float32)
}

// UniformSampler returns the same color everywhere. Useful for tests and for
// surfaces over flat backdrops.
type UniformSampler struct {
	C Color
}

// Sample returns the uniform color regardless of position.
func (s UniformSampler) Sample(u, v float32) (r, g, b float32) {
	return float32(s.C.R), float32(s.C.G), float32(s.C.B)
}

// NeutralSampler is the flat gray used when a surface has no background
// source. The surface stays visible at its logical opacity.
var NeutralSampler Sampler = UniformSampler{C: neutralGray}

// ImageSampler samples an image.Image bilinearly with edge clamping. This is
// the CPU path: software rendering and tests. For the GPU path the capture
// below feeds the material's Kage program directly.
type ImageSampler struct {
	pix  []float32 // RGB triples, row-major
	w, h int
}

// NewImageSampler converts img into a float RGB grid once up front, so
// per-fragment sampling does no color-model conversions.
func NewImageSampler(img image.Image) *ImageSampler {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return &ImageSampler{w: 0, h: 0}
	}
	s := &ImageSampler{pix: make([]float32, w*h*3), w: w, h: h}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			s.pix[i] = float32(r) / 0xffff
			s.pix[i+1] = float32(g) / 0xffff
			s.pix[i+2] = float32(b) / 0xffff
			i += 3
		}
	}
	return s
}

func (s *ImageSampler) texel(x, y int) (float32, float32, float32) {
	if x < 0 {
		x = 0
	} else if x >= s.w {
		x = s.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= s.h {
		y = s.h - 1
	}
	i := (y*s.w + x) * 3
	return s.pix[i], s.pix[i+1], s.pix[i+2]
}

// Sample returns the bilinearly filtered color at normalized (u, v).
// A zero-size image samples as neutral gray.
func (s *ImageSampler) Sample(u, v float32) (r, g, b float32) {
	if s.w == 0 || s.h == 0 {
		return NeutralSampler.Sample(u, v)
	}
	fx := clamp01f(u)*float32(s.w) - 0.5
	fy := clamp01f(v)*float32(s.h) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	r00, g00, b00 := s.texel(x0, y0)
	r10, g10, b10 := s.texel(x0+1, y0)
	r01, g01, b01 := s.texel(x0, y0+1)
	r11, g11, b11 := s.texel(x0+1, y0+1)

	r = lerpf(lerpf(r00, r10, tx), lerpf(r01, r11, tx), ty)
	g = lerpf(lerpf(g00, g10, tx), lerpf(g01, g11, tx), ty)
	b = lerpf(lerpf(b00, b10, tx), lerpf(b01, b11, tx), ty)
	return r, g, b
}

// --- GPU background capture ---

// Capture prepares a background image for the GPU material: downsampled by
// the quality preset's factor, then Kawase-blurred at the effective blur
// radius. Re-run Refresh after the background content, the preset, or
// readability mode changes; Refresh is cheap to call every frame if the
// backdrop animates.
type Capture struct {
	src     *ebiten.Image
	scaled  *ebiten.Image
	blurred *ebiten.Image
	blur    BlurFilter
	imgOp   ebiten.DrawImageOptions
}

// NewCapture wraps an existing background image. src may be nil until the
// embedding component has laid out; Image returns nil in that case and
// surfaces fall back to the neutral color.
func NewCapture(src *ebiten.Image) *Capture {
	return &Capture{src: src}
}

// SetSource replaces the background image.
func (c *Capture) SetSource(src *ebiten.Image) { c.src = src }

// Refresh downsamples and blurs the source according to the token store's
// current preset and readability mode.
func (c *Capture) Refresh(t *Tokens) {
	if c.src == nil {
		return
	}
	bounds := c.src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	if sw == 0 || sh == 0 {
		return
	}

	factor := t.DownsampleFactor()
	w := max(int(float64(sw)*factor), 1)
	h := max(int(float64(sh)*factor), 1)

	if c.scaled == nil || c.scaled.Bounds().Dx() != w || c.scaled.Bounds().Dy() != h {
		if c.scaled != nil {
			c.scaled.Deallocate()
		}
		if c.blurred != nil {
			c.blurred.Deallocate()
		}
		c.scaled = ebiten.NewImage(w, h)
		c.blurred = ebiten.NewImage(w, h)
	} else {
		c.scaled.Clear()
		c.blurred.Clear()
	}

	op := &c.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale(float64(w)/float64(sw), float64(h)/float64(sh))
	op.Filter = ebiten.FilterLinear
	c.scaled.DrawImage(c.src, op)

	// The blur runs on the downsampled image, so scale the radius down too.
	c.blur.Radius = int(t.EffectiveBlurRadius() * factor)
	c.blur.Apply(c.scaled, c.blurred)
}

// Image returns the blurred capture, or nil when no source is set or Refresh
// has not run.
func (c *Capture) Image() *ebiten.Image {
	return c.blurred
}

// --- Kawase blur ---

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// No shader needed — bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// Apply renders a Kawase blur from src into dst. Radius <= 0 copies.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	if f.Radius <= 0 {
		f.imgOp.GeoM.Reset()
		f.imgOp.ColorScale.Reset()
		f.imgOp.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &f.imgOp)
		return
	}

	// Number of iterations: log2(radius), minimum 1.
	passes := int(math.Ceil(math.Log2(float64(f.Radius))))
	if passes < 1 {
		passes = 1
	}

	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	// Grow/shrink the temp chain; the downscale chain is reused on the way up.
	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	op := &f.imgOp

	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		op.GeoM.Reset()
		op.ColorScale.Reset()
		sw := float64(current.Bounds().Dx())
		sh := float64(current.Bounds().Dy())
		op.GeoM.Scale(float64(w)/sw, float64(h)/sh)
		op.Filter = ebiten.FilterLinear
		f.temps[i].DrawImage(current, op)
		current = f.temps[i]
	}

	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		op.GeoM.Reset()
		op.ColorScale.Reset()
		sw := float64(current.Bounds().Dx())
		sh := float64(current.Bounds().Dy())
		tw := float64(f.temps[i].Bounds().Dx())
		th := float64(f.temps[i].Bounds().Dy())
		op.GeoM.Scale(tw/sw, th/sh)
		op.Filter = ebiten.FilterLinear
		f.temps[i].DrawImage(current, op)
		current = f.temps[i]
	}

	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw := float64(current.Bounds().Dx())
	sh := float64(current.Bounds().Dy())
	tw := float64(dst.Bounds().Dx())
	th := float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(current, op)
}

// Padding returns 0; the blur stays within the source bounds.
func (f *BlurFilter) Padding() int { return 0 }
