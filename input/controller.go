// Package input translates pointer gestures into viewport mutations and
// track hit-tests: a small state machine over {Idle, Dragging} that
// distinguishes drags from clicks by a cumulative pixel threshold.
package input

import (
	"math"

	"github.com/argosdef/tacmap/geo"
	"github.com/argosdef/tacmap/track"
	"github.com/argosdef/tacmap/viewport"
)

const (
	// dragThresholdPx arms the "moved" flag; sub-threshold jitter between
	// press and release still counts as a click.
	dragThresholdPx = 2.0

	// hitRadiusPx accepts clicks near a track center even when its
	// bounding box is tiny.
	hitRadiusPx = 12.0

	minHitBoxPx = 8.0
)

// Phase is the drag state.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

// Controller owns the gesture state for one viewport.
type Controller struct {
	View *viewport.Viewport

	phase      Phase
	lastX      float64
	lastY      float64
	cumulative float64
	moved      bool
}

// NewController binds a controller to a viewport.
func NewController(v *viewport.Viewport) *Controller {
	return &Controller{View: v}
}

// Phase exposes the current state, mostly for tests.
func (c *Controller) Phase() Phase { return c.phase }

// PointerDown starts a potential drag at the anchor position.
func (c *Controller) PointerDown(x, y float64) {
	c.phase = Dragging
	c.lastX, c.lastY = x, y
	c.cumulative = 0
	c.moved = false
}

// PointerMove pans the viewport while dragging. It reports whether the
// viewport changed.
func (c *Controller) PointerMove(x, y float64) bool {
	if c.phase != Dragging {
		return false
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.cumulative += math.Hypot(dx, dy)
	if c.cumulative > dragThresholdPx {
		c.moved = true
	}
	if !c.moved {
		return false
	}
	c.View.Pan(dx, dy)
	return true
}

// PointerUp ends the gesture. It reports true when the gesture never armed
// the moved flag, i.e. the release should be treated as a click.
func (c *Controller) PointerUp() (click bool) {
	click = c.phase == Dragging && !c.moved
	c.phase = Idle
	c.moved = false
	c.cumulative = 0
	return click
}

// Wheel zooms at the pointer anchor. Scrolling up (negative Y) zooms in,
// matching the usual map convention.
func (c *Controller) Wheel(x, y, scrollY float64) {
	if scrollY == 0 {
		return
	}
	delta := 1
	if scrollY > 0 {
		delta = -1
	}
	c.View.ZoomAt(x, y, delta)
}

// HitTest picks the track under a screen point: any object whose bounding
// box contains the point or whose center lies within the hit radius, nearest
// center first. Returns "" when nothing is hit.
func (c *Controller) HitTest(x, y float64, objs []track.Object) string {
	bestID := ""
	bestDist := math.Inf(1)
	for _, o := range objs {
		px, py := c.View.GeoToScreen(o.Pos)
		dist := math.Hypot(px-x, py-y)

		mpp := geo.MetersPerPixel(o.Pos.Lat, c.View.Zoom)
		halfW := math.Max(o.SizeMeters[0]/mpp, minHitBoxPx) / 2
		halfH := math.Max(o.SizeMeters[1]/mpp, minHitBoxPx) / 2
		inBox := math.Abs(px-x) <= halfW && math.Abs(py-y) <= halfH

		if (inBox || dist <= hitRadiusPx) && dist < bestDist {
			bestDist = dist
			bestID = o.ID
		}
	}
	return bestID
}
