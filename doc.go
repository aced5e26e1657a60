// Package glaze renders a translucent "liquid glass" material over arbitrary
// background content for [Ebitengine]: a surface that refracts, tints, and
// highlights whatever is behind it, and reacts continuously to hover, press,
// drag, and focus.
//
// # Quick start
//
// Create a shared token store, a surface, and feed it a background sampler:
//
//	tokens := glaze.NewTokens()
//	panel := glaze.NewSurface(tokens, glaze.Geometry{Width: 260, Height: 180, CornerRadius: 28})
//	panel.SetSampler(glaze.NewImageSampler(backdrop))
//
//	// each frame:
//	panel.Update(1.0 / 60.0)
//	c := panel.ShadeAt(u, v) // CPU path, premultiplied RGBA
//
// On the GPU, wrap the backdrop in a [Capture] and call [Surface.Draw]; the
// same shading runs as a Kage program. See examples/glasspanel.
//
// # Design tokens
//
// All visual parameters live in a [Tokens] store shared by every surface:
// opacity, highlight and distortion strengths, tint, Fresnel power, state
// boosts, motion durations, and a quality preset (Low/Medium/High) that
// derives the background blur radius and downsample factor. Any token can be
// overridden per surface with [Surface.SetOverride]. Out-of-domain writes are
// rejected with [ErrInvalidParameter] and keep the previous value.
//
// Readability mode ([Tokens.SetReadabilityMode]) is an accessibility policy:
// it raises effective opacity (capped at 0.8), widens the blur, softens
// highlights, and adds a near-white scrim so text above the glass stays
// legible.
//
// # Interaction
//
// Each surface owns a [Tracker] that turns discrete events (pointer
// enter/leave, press/release, drag, focus, enable/disable) into smooth [0,1]
// progress scalars, either duration-eased (via [gween]) or integrated through
// a mass-spring-damper for press-release bounce. [Resolve] combines tokens,
// overrides, and progress into the final parameter set each frame.
//
// A [Dispatcher] is provided for plain ebiten games: it hit-tests the mouse
// against registered surfaces and delivers the right tracker events,
// including press capture and a drag dead zone.
//
// # Shading
//
// [Shade] is the portable core: a pure function from normalized coordinate,
// resolved parameters, a background [Sampler], and a clock to a premultiplied
// RGBA fragment. It models a pseudo-spherical lens with animated micro-noise,
// per-channel chromatic dispersion, soft diffusion, an edge rainbow, Fresnel
// glow, specular and rim highlights, and a caustic inner glow. [Material]
// runs the identical math as a Kage shader for the GPU path.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package glaze
