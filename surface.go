package glaze

import (
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is one glass-material element: geometry, per-instance token
// overrides, an interaction tracker, and a reference to a background sampler.
// It is owned by its embedding component (button, slider, panel) and lives
// for that component's lifetime.
//
// Call Update once per frame (and after discrete input events if immediate
// feedback matters); read the result through Resolved, ShadeAt, or Draw.
type Surface struct {
	// X, Y position the surface on screen, used by the pointer dispatcher
	// and the GPU draw path.
	X, Y     float64
	Geometry Geometry
	// DragCapable marks surfaces (sliders) whose press can become a drag.
	DragCapable bool

	tokens    *Tokens
	overrides Overrides
	tracker   *Tracker
	sampler   Sampler
	ripple    *Ripple

	resolved Params
	inputs   ShadeInputs
	clock    float64

	prevPressed bool

	material *Material
	scratch  *ebiten.Image

	warnedNoSampler bool
}

// NewSurface creates a surface over the shared token store. The tracker uses
// the eased policy with the store's fast duration in and normal duration out;
// reconfigure with SetTracker for spring motion or other timings.
func NewSurface(tokens *Tokens, geom Geometry) *Surface {
	s := &Surface{
		Geometry: geom,
		tokens:   tokens,
		tracker: NewTracker(TrackerConfig{
			Policy:        MotionEased,
			EnterDuration: tokens.durationFast,
			ExitDuration:  tokens.durationNormal,
		}),
	}
	s.resolve()
	return s
}

// Tracker returns the surface's interaction tracker. Embedding components
// feed it pointer, press, drag, and focus events.
func (s *Surface) Tracker() *Tracker { return s.tracker }

// SetTracker replaces the tracker, e.g. to switch to the spring policy.
func (s *Surface) SetTracker(tr *Tracker) {
	if tr != nil {
		s.tracker = tr
	}
}

// SetSampler sets the background-sample capability. A nil sampler is allowed:
// the surface shades a flat neutral color and stays visible.
func (s *Surface) SetSampler(sampler Sampler) {
	s.sampler = sampler
	if sampler != nil {
		s.warnedNoSampler = false
	}
}

// SetOverride overrides one token for this surface only. The value is
// validated against the token's domain exactly like Tokens.Set.
func (s *Surface) SetOverride(name string, value any) error {
	scratch := *s.tokens
	if err := scratch.Set(name, value); err != nil {
		return err
	}
	if s.overrides == nil {
		s.overrides = Overrides{}
	}
	s.overrides[name] = value
	s.resolve()
	return nil
}

// ClearOverride removes a per-instance override, falling back to the store
// value.
func (s *Surface) ClearOverride(name string) {
	delete(s.overrides, name)
	s.resolve()
}

// EnableRipple attaches the optional press-release sweep overlay.
func (s *Surface) EnableRipple() {
	if s.ripple == nil {
		s.ripple = NewRipple()
	}
}

// Update advances the interaction animations and the ripple by dt seconds and
// re-resolves the material parameters from the current tokens, overrides, and
// progress values.
func (s *Surface) Update(dt float64) {
	s.clock += dt
	s.tracker.Update(dt)

	snap := s.tracker.Snapshot()
	if s.ripple != nil {
		if s.prevPressed && !snap.Pressed && snap.Enabled {
			s.ripple.Trigger(s.pointerNorm(snap.Pointer))
		}
		s.ripple.Update(dt)
	}
	s.prevPressed = snap.Pressed

	s.resolve()
}

func (s *Surface) resolve() {
	s.resolved = Resolve(s.tokens, s.overrides, s.tracker.Snapshot(), s.Geometry)
	s.inputs = s.resolved.ShadeInputs()
}

func (s *Surface) pointerNorm(p Vec2) Vec2 {
	if s.Geometry.Degenerate() {
		return Vec2{0.5, 0.5}
	}
	return Vec2{clamp01(p.X / s.Geometry.Width), clamp01(p.Y / s.Geometry.Height)}
}

// Resolved returns the current resolved parameter snapshot. Embedding
// components branch on it, e.g. showing a slider tooltip while Drag > 0.
func (s *Surface) Resolved() Params { return s.resolved }

// Clock returns the surface's animation clock in seconds.
func (s *Surface) Clock() float64 { return s.clock }

// Contains reports whether the screen point (x, y) lies inside the surface's
// rounded rectangle.
func (s *Surface) Contains(x, y float64) bool {
	return s.mask(
		(x-s.X)/math.Max(s.Geometry.Width, 1),
		(y-s.Y)/math.Max(s.Geometry.Height, 1),
	) > 0.5
}

// mask is the rounded-rect coverage at normalized (u, v): 1 well inside,
// 0 outside, with a ~1px feather at the boundary.
func (s *Surface) mask(u, v float64) float32 {
	g := s.Geometry
	if g.Degenerate() {
		return 0
	}
	r := s.resolved.CornerRadius
	px := u*g.Width - g.Width/2
	py := v*g.Height - g.Height/2
	qx := math.Abs(px) - (g.Width/2 - r)
	qy := math.Abs(py) - (g.Height/2 - r)
	sd := math.Hypot(math.Max(qx, 0), math.Max(qy, 0)) + math.Min(math.Max(qx, qy), 0) - r
	return clamp01f(float32(0.5 - sd))
}

// ShadeAt evaluates the full material at normalized surface coordinate
// (u, v) on the CPU: core glass shading, then the ripple overlay, the
// readability scrim, and the rounded-corner mask. This is the reference path;
// the GPU material must match it.
func (s *Surface) ShadeAt(u, v float64) RGBA {
	if s.Geometry.Degenerate() {
		return RGBA{}
	}
	if s.sampler == nil && !s.warnedNoSampler {
		log.Printf("glaze: surface has no background sampler, shading flat neutral")
		s.warnedNoSampler = true
	}

	c := Shade(float32(u), float32(v), &s.inputs, s.sampler, float32(s.clock))

	if s.ripple != nil && s.ripple.Active() {
		add := s.ripple.Add(float32(u), float32(v)) * s.inputs.Highlight
		c.R = clamp01f(c.R + add*c.A)
		c.G = clamp01f(c.G + add*c.A)
		c.B = clamp01f(c.B + add*c.A)
	}

	if o := float32(s.resolved.ReadabilityOverlay); o > 0 {
		// Near-white scrim composited over the glass for text contrast.
		c.R = 0.96*o + c.R*(1-o)
		c.G = 0.96*o + c.G*(1-o)
		c.B = 0.96*o + c.B*(1-o)
		c.A = o + c.A*(1-o)
	}

	m := s.mask(u, v)
	c.R *= m
	c.G *= m
	c.B *= m
	c.A *= m
	return c
}

// Draw renders the surface on the GPU: the region of the blurred capture
// behind the surface is shaded by the glass material at capture resolution,
// then scaled into place. capture may be nil or not yet refreshed, in which
// case a flat neutral rect at the surface's logical opacity is drawn instead.
func (s *Surface) Draw(dst *ebiten.Image, capture *Capture) {
	if s.Geometry.Degenerate() {
		return
	}

	var bg *ebiten.Image
	if capture != nil {
		bg = capture.Image()
	}
	if bg == nil {
		if !s.warnedNoSampler {
			log.Printf("glaze: surface has no background capture, drawing flat neutral")
			s.warnedNoSampler = true
		}
		s.drawNeutral(dst)
		return
	}

	// Capture coordinates are the screen scaled by the downsample factor.
	factor := s.resolved.Downsample
	rx := int(s.X * factor)
	ry := int(s.Y * factor)
	rw := max(int(s.Geometry.Width*factor), 1)
	rh := max(int(s.Geometry.Height*factor), 1)
	region := bg.SubImage(imageRect(rx, ry, rw, rh)).(*ebiten.Image)

	if s.scratch == nil || s.scratch.Bounds().Dx() != rw || s.scratch.Bounds().Dy() != rh {
		if s.scratch != nil {
			s.scratch.Deallocate()
		}
		s.scratch = ebiten.NewImage(rw, rh)
	} else {
		s.scratch.Clear()
	}

	if s.material == nil {
		s.material = NewMaterial()
	}
	s.material.Time = s.clock
	s.material.SetInputs(s.resolved)
	// The corner mask runs at capture resolution.
	s.material.cornerRadius = float32(s.resolved.CornerRadius * factor)
	s.material.Apply(region, s.scratch)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s.Geometry.Width/float64(rw), s.Geometry.Height/float64(rh))
	op.GeoM.Translate(s.X, s.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.scratch, &op)

	if o := s.resolved.ReadabilityOverlay; o > 0 {
		s.drawScrim(dst, o)
	}
}

func (s *Surface) drawNeutral(dst *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s.Geometry.Width, s.Geometry.Height)
	op.GeoM.Translate(s.X, s.Y)
	a := float32(s.resolved.Opacity)
	op.ColorScale.Scale(float32(neutralGray.R)*a, float32(neutralGray.G)*a, float32(neutralGray.B)*a, a)
	dst.DrawImage(whitePixel(), &op)
}

func (s *Surface) drawScrim(dst *ebiten.Image, opacity float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s.Geometry.Width, s.Geometry.Height)
	op.GeoM.Translate(s.X, s.Y)
	a := float32(opacity)
	op.ColorScale.Scale(0.96*a, 0.96*a, 0.96*a, a)
	dst.DrawImage(whitePixel(), &op)
}

func imageRect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// whitePixelImg is created lazily so CPU-only users never touch the GPU.
var whitePixelImg *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImg == nil {
		whitePixelImg = ebiten.NewImage(1, 1)
		whitePixelImg.Fill(ColorWhite.NRGBA())
	}
	return whitePixelImg
}
