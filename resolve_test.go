package glaze

import (
	"math"
	"testing"
)

func idleSnapshot() InteractionSnapshot {
	return InteractionSnapshot{Enabled: true, Pointer: Vec2{60, 40}}
}

func testGeometry() Geometry {
	return Geometry{Width: 120, Height: 80, CornerRadius: 16}
}

func TestResolveIdleDefaults(t *testing.T) {
	tok := NewTokens()
	tok.SetQualityPreset(QualityHigh)

	p := Resolve(tok, nil, idleSnapshot(), testGeometry())

	if math.Abs(p.Opacity-0.35) > 1e-9 {
		t.Errorf("opacity = %v, want 0.35", p.Opacity)
	}
	if p.BlurRadius != 48 {
		t.Errorf("blur = %v, want 48", p.BlurRadius)
	}
	if math.Abs(p.Highlight-0.6) > 1e-9 {
		t.Errorf("highlight = %v, want 0.6", p.Highlight)
	}
	if p.Downsample != 1.0 {
		t.Errorf("downsample = %v, want 1.0", p.Downsample)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	tok := NewTokens()
	ov := Overrides{"opacity": 0.5, "tintColor": "#336699"}
	snap := InteractionSnapshot{Enabled: true, Hover: 0.7, Press: 0.3, Pointer: Vec2{33, 21}}

	a := Resolve(tok, ov, snap, testGeometry())
	b := Resolve(tok, ov, snap, testGeometry())
	if a != b {
		t.Errorf("identical inputs resolved differently:\n%+v\n%+v", a, b)
	}
}

func TestResolveBoostsAreAdditive(t *testing.T) {
	tok := NewTokens()

	idle := Resolve(tok, nil, idleSnapshot(), testGeometry())

	snap := idleSnapshot()
	snap.Hover = 1
	hovered := Resolve(tok, nil, snap, testGeometry())

	if math.Abs(hovered.Highlight-(idle.Highlight+0.25)) > 1e-9 {
		t.Errorf("hover highlight = %v, want base + 0.25", hovered.Highlight)
	}
	if math.Abs(hovered.Distortion-(idle.Distortion+0.02)) > 1e-9 {
		t.Errorf("hover distortion = %v, want base + 0.02", hovered.Distortion)
	}
	if math.Abs(hovered.Opacity-(idle.Opacity+0.08)) > 1e-9 {
		t.Errorf("hover opacity = %v, want base + 0.08", hovered.Opacity)
	}
}

func TestResolvePressDominatesHover(t *testing.T) {
	tok := NewTokens()

	snap := idleSnapshot()
	snap.Hover = 1
	snap.Press = 1
	p := Resolve(tok, nil, snap, testGeometry())

	// With press fully in, the hover boost contributes nothing.
	want := tok.EffectiveHighlight() + 0.4
	if math.Abs(p.Highlight-want) > 1e-9 {
		t.Errorf("highlight = %v, want %v (press boost only)", p.Highlight, want)
	}
}

func TestResolveDisabledOpacity(t *testing.T) {
	tok := NewTokens()

	snap := idleSnapshot()
	snap.Enabled = false
	p := Resolve(tok, nil, snap, testGeometry())

	if math.Abs(p.Opacity-0.35*0.5) > 1e-9 {
		t.Errorf("disabled opacity = %v, want %v", p.Opacity, 0.35*0.5)
	}
}

func TestResolveDragScalesBlurAndElevation(t *testing.T) {
	tok := NewTokens()

	idle := Resolve(tok, nil, idleSnapshot(), testGeometry())

	snap := idleSnapshot()
	snap.Drag = 1
	dragged := Resolve(tok, nil, snap, testGeometry())

	scale := 1 + 0.35
	if math.Abs(dragged.BlurRadius-idle.BlurRadius*scale) > 1e-9 {
		t.Errorf("drag blur = %v, want %v", dragged.BlurRadius, idle.BlurRadius*scale)
	}
	if math.Abs(dragged.Elevation-idle.Elevation*scale) > 1e-9 {
		t.Errorf("drag elevation = %v, want %v", dragged.Elevation, idle.Elevation*scale)
	}
}

func TestResolveOverridesApply(t *testing.T) {
	tok := NewTokens()
	ov := Overrides{"opacity": 0.6, "fresnelPower": 4.0}

	p := Resolve(tok, ov, idleSnapshot(), testGeometry())
	if math.Abs(p.Opacity-0.6) > 1e-9 {
		t.Errorf("opacity = %v, want overridden 0.6", p.Opacity)
	}
	if p.FresnelPower != 4.0 {
		t.Errorf("fresnelPower = %v, want overridden 4.0", p.FresnelPower)
	}
	// The shared store is untouched.
	if v, _ := tok.Get("opacity"); v.(float64) != 0.35 {
		t.Errorf("store opacity mutated to %v by override", v)
	}
}

func TestResolveInvalidOverrideIgnored(t *testing.T) {
	tok := NewTokens()
	p := Resolve(tok, Overrides{"opacity": 7.0}, idleSnapshot(), testGeometry())
	if math.Abs(p.Opacity-0.35) > 1e-9 {
		t.Errorf("opacity = %v, out-of-domain override must be ignored", p.Opacity)
	}
}

func TestResolveClampsOutputs(t *testing.T) {
	tok := NewTokens()
	if err := tok.Set("opacity", 0.98); err != nil {
		t.Fatal(err)
	}
	if err := tok.Set("hoverOpacityDelta", 0.5); err != nil {
		t.Fatal(err)
	}

	snap := idleSnapshot()
	snap.Hover = 1
	p := Resolve(tok, nil, snap, testGeometry())
	if p.Opacity > 1 {
		t.Errorf("opacity = %v, want clamped to 1", p.Opacity)
	}
}

func TestResolveNormalizesPointer(t *testing.T) {
	tok := NewTokens()
	snap := idleSnapshot()
	snap.Pointer = Vec2{60, 20}
	p := Resolve(tok, nil, snap, Geometry{Width: 120, Height: 80})

	if math.Abs(p.Pointer.X-0.5) > 1e-9 || math.Abs(p.Pointer.Y-0.25) > 1e-9 {
		t.Errorf("pointer = %v, want {0.5 0.25}", p.Pointer)
	}

	// Off-surface positions clamp into [0,1].
	snap.Pointer = Vec2{-50, 900}
	p = Resolve(tok, nil, snap, Geometry{Width: 120, Height: 80})
	if p.Pointer.X != 0 || p.Pointer.Y != 1 {
		t.Errorf("pointer = %v, want clamped {0 1}", p.Pointer)
	}
}

func TestResolveDegenerateGeometry(t *testing.T) {
	tok := NewTokens()
	snap := idleSnapshot()
	snap.Pointer = Vec2{10, 10}

	p := Resolve(tok, nil, snap, Geometry{Width: 0, Height: 80})
	if !p.Degenerate {
		t.Fatal("zero width not flagged degenerate")
	}
	if p.Pointer != (Vec2{0.5, 0.5}) {
		t.Errorf("pointer = %v, want centered fallback", p.Pointer)
	}
	if math.IsNaN(p.Pointer.X) || math.IsNaN(p.CornerRadius) {
		t.Error("degenerate geometry produced NaN")
	}
}

func TestResolveCornerRadiusBounded(t *testing.T) {
	tok := NewTokens()
	p := Resolve(tok, nil, idleSnapshot(), Geometry{Width: 40, Height: 30, CornerRadius: 50})
	if p.CornerRadius != 15 {
		t.Errorf("corner radius = %v, want clamped to half the short side (15)", p.CornerRadius)
	}
}

func TestResolveReadabilityOverlay(t *testing.T) {
	tok := NewTokens()
	p := Resolve(tok, nil, idleSnapshot(), testGeometry())
	if p.ReadabilityOverlay != 0 {
		t.Errorf("overlay = %v with readability off, want 0", p.ReadabilityOverlay)
	}

	tok.SetReadabilityMode(true)
	p = Resolve(tok, nil, idleSnapshot(), testGeometry())
	if math.Abs(p.ReadabilityOverlay-0.25) > 1e-9 {
		t.Errorf("overlay = %v with readability on, want 0.25", p.ReadabilityOverlay)
	}
}
