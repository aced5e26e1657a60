package glaze

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultDragDeadZone is the movement in pixels before a press on a
// drag-capable surface becomes a drag.
const defaultDragDeadZone = 4.0

// Dispatcher translates raw pointer input into tracker events across a set of
// surfaces: enter/leave on hover changes, press/release with capture, and
// drag start past a dead zone on drag-capable surfaces. Embedding code may
// skip it and drive each Tracker directly; the dispatcher exists so a plain
// ebiten game gets correct interaction semantics with one Update call.
type Dispatcher struct {
	surfaces []*Surface
	deadZone float64

	down     bool
	dragging bool
	active   *Surface // surface captured by the current press
	hover    *Surface
	startX   float64
	startY   float64
}

// NewDispatcher creates an empty dispatcher with the default drag dead zone.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{deadZone: defaultDragDeadZone}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (d *Dispatcher) SetDragDeadZone(pixels float64) { d.deadZone = pixels }

// Add registers a surface. Later additions are on top for hit testing.
func (d *Dispatcher) Add(s *Surface) {
	d.surfaces = append(d.surfaces, s)
}

// Remove unregisters a surface and drops any hover or capture it holds.
func (d *Dispatcher) Remove(s *Surface) {
	for i, cur := range d.surfaces {
		if cur == s {
			copy(d.surfaces[i:], d.surfaces[i+1:])
			d.surfaces[len(d.surfaces)-1] = nil
			d.surfaces = d.surfaces[:len(d.surfaces)-1]
			break
		}
	}
	if d.hover == s {
		d.hover = nil
	}
	if d.active == s {
		d.active = nil
		d.down = false
		d.dragging = false
	}
}

// Update reads the mouse from ebiten and processes it. Call once per frame
// before the surfaces' Update.
func (d *Dispatcher) Update() {
	mx, my := ebiten.CursorPosition()
	d.Process(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// Process runs the pointer state machine for one sample at screen position
// (x, y). Split from Update so tests and non-ebiten frontends can feed
// positions directly.
func (d *Dispatcher) Process(x, y float64, pressed bool) {
	target := d.hitTest(x, y)

	// Hover transitions are suppressed while a press has capture.
	if !d.down && target != d.hover {
		if d.hover != nil {
			d.hover.Tracker().PointerLeave()
		}
		if target != nil {
			target.Tracker().PointerEnter(localPoint(target, x, y))
		}
		d.hover = target
	}

	switch {
	case pressed && !d.down:
		d.down = true
		d.active = target
		d.dragging = false
		d.startX, d.startY = x, y
		if target != nil {
			target.Tracker().Press(localPoint(target, x, y))
		}

	case !pressed && d.down:
		if d.active != nil {
			// Release ends any drag as well.
			d.active.Tracker().Release()
		}
		d.down = false
		d.dragging = false
		d.active = nil

	case pressed && d.down:
		if d.active == nil {
			return
		}
		d.active.Tracker().PointerMove(localPoint(d.active, x, y))
		if !d.dragging && d.active.DragCapable {
			if math.Hypot(x-d.startX, y-d.startY) > d.deadZone {
				d.dragging = true
				d.active.Tracker().DragStart()
			}
		}

	default:
		if d.hover != nil {
			d.hover.Tracker().PointerMove(localPoint(d.hover, x, y))
		}
	}
}

// hitTest returns the topmost surface containing (x, y), or nil.
func (d *Dispatcher) hitTest(x, y float64) *Surface {
	for i := len(d.surfaces) - 1; i >= 0; i-- {
		if d.surfaces[i].Contains(x, y) {
			return d.surfaces[i]
		}
	}
	return nil
}

func localPoint(s *Surface, x, y float64) Vec2 {
	return Vec2{x - s.X, y - s.Y}
}
