// Package mapview is the Gio widget tying the engine together: it feeds
// pointer events to the interaction controller, debounces grid recomputes
// after view changes and paints the composited frame.
package mapview

import (
	"sync"
	"sync/atomic"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/argosdef/tacmap/grid"
	"github.com/argosdef/tacmap/input"
	"github.com/argosdef/tacmap/metrics"
	"github.com/argosdef/tacmap/overlay"
	"github.com/argosdef/tacmap/render"
	"github.com/argosdef/tacmap/tiles"
	"github.com/argosdef/tacmap/track"
	"github.com/argosdef/tacmap/viewport"
)

// View owns the live map state for one window.
type View struct {
	ctrl *input.Controller
	comp *render.Compositor
	gen  *grid.Generator
	deb  grid.Debouncer

	tiles    *tiles.Cache
	overlays *overlay.Set
	metrics  *metrics.Engine
	refresh  chan struct{}

	gridDirty atomic.Bool

	mu       sync.Mutex
	opts     render.Options
	gridSet  grid.Set
	tracks   []track.Object
	selected string
	hovered  string
}

// New wires a view over an existing viewport, tile cache and overlay set.
// refresh receives a signal whenever something arrives asynchronously and
// the window should redraw; the caller forwards it to window invalidation.
func New(v *viewport.Viewport, tc *tiles.Cache, ov *overlay.Set, eng *metrics.Engine, opts render.Options, comp *render.Compositor, refresh chan struct{}) *View {
	mv := &View{
		ctrl:     input.NewController(v),
		comp:     comp,
		gen:      grid.NewGenerator(),
		tiles:    tc,
		overlays: ov,
		metrics:  eng,
		opts:     opts,
		refresh:  refresh,
	}
	if tc != nil {
		tc.SetOnChange(mv.signal)
	}
	mv.recomputeGrid()
	return mv
}

// Viewport exposes the underlying view state.
func (mv *View) Viewport() *viewport.Viewport { return mv.ctrl.View }

// Selected returns the id of the selected track, or "".
func (mv *View) Selected() string {
	mv.mu.Lock()
	defer mv.mu.Unlock()
	return mv.selected
}

// SetTracks replaces the track list for the next frame.
func (mv *View) SetTracks(objs []track.Object) {
	mv.mu.Lock()
	mv.tracks = append(mv.tracks[:0], objs...)
	mv.mu.Unlock()
	mv.signal()
}

// SetTheme switches the palette and the basemap tile set together.
func (mv *View) SetTheme(theme string) {
	mv.mu.Lock()
	mv.opts.Theme = theme
	mv.mu.Unlock()
	if mv.tiles != nil {
		mv.tiles.SetTheme(theme)
	}
	mv.comp.InvalidateSnapshot()
	mv.signal()
}

// SetSpeedMode toggles the reduced-detail fast path.
func (mv *View) SetSpeedMode(on bool) {
	mv.mu.Lock()
	mv.opts.SpeedMode = on
	mv.mu.Unlock()
	mv.signal()
}

// Options returns a copy of the current render options.
func (mv *View) Options() render.Options {
	mv.mu.Lock()
	defer mv.mu.Unlock()
	return mv.opts
}

func (mv *View) signal() {
	if mv.refresh == nil {
		return
	}
	select {
	case mv.refresh <- struct{}{}:
	default:
	}
}

func (mv *View) gridFlags() grid.Flags {
	return grid.Flags{Lines: mv.opts.ShowGrid, Labels: mv.opts.ShowGridLabels}
}

// recomputeGrid regenerates grid lines and labels for the current view.
// Only the construction path and Layout call it, so the viewport is never
// read off the frame timeline.
func (mv *View) recomputeGrid() {
	set := mv.gen.Generate(mv.ctrl.View, mv.gridFlags())
	mv.metrics.GridRecompute()
	mv.mu.Lock()
	mv.gridSet = set
	mv.mu.Unlock()
}

// scheduleGrid defers the recompute so a burst of pans costs one pass. The
// timer only flags the work and wakes the window; the recompute itself runs
// on the next frame.
func (mv *View) scheduleGrid() {
	mv.deb.Schedule(grid.RecomputeDelay, func() {
		mv.gridDirty.Store(true)
		mv.signal()
	})
}

// applyPendingGrid runs a flagged recompute on the frame timeline.
func (mv *View) applyPendingGrid() {
	if mv.gridDirty.Swap(false) {
		mv.recomputeGrid()
	}
}

// Layout processes input and paints one frame.
func (mv *View) Layout(gtx layout.Context) layout.Dimensions {
	tag := mv

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Scroll | pointer.Move | pointer.Drag | pointer.Press | pointer.Release | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -10, Max: 10},
		})
		if !ok {
			break
		}
		x, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		px, py := float64(x.Position.X), float64(x.Position.Y)

		switch x.Kind {
		case pointer.Press:
			mv.ctrl.PointerDown(px, py)
		case pointer.Drag:
			if mv.ctrl.PointerMove(px, py) {
				mv.scheduleGrid()
			}
		case pointer.Move:
			mv.updateHover(px, py)
		case pointer.Scroll:
			mv.ctrl.Wheel(px, py, float64(x.Scroll.Y))
			mv.scheduleGrid()
		case pointer.Release:
			if mv.ctrl.PointerUp() {
				mv.click(px, py)
			}
		case pointer.Cancel:
			mv.ctrl.PointerUp()
		}
	}

	if mv.ctrl.View.Size != gtx.Constraints.Max {
		mv.ctrl.View.Resize(gtx.Constraints.Max)
		mv.scheduleGrid()
	}
	mv.applyPendingGrid()

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, tag)

	mv.mu.Lock()
	objs := mv.flaggedTracks()
	set := mv.gridSet
	opts := mv.opts
	mv.mu.Unlock()

	frame := mv.comp.Render(mv.ctrl.View, objs, mv.overlays, set, opts)
	paint.NewImageOp(frame).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

// flaggedTracks stamps selection and hover state onto a copy of the track
// list. Callers must hold mu.
func (mv *View) flaggedTracks() []track.Object {
	objs := make([]track.Object, len(mv.tracks))
	copy(objs, mv.tracks)
	for i := range objs {
		objs[i].Selected = objs[i].ID == mv.selected
		objs[i].Hovered = objs[i].ID == mv.hovered
	}
	return objs
}

func (mv *View) click(x, y float64) {
	mv.mu.Lock()
	hit := mv.ctrl.HitTest(x, y, mv.tracks)
	if hit == mv.selected {
		mv.selected = ""
	} else {
		mv.selected = hit
	}
	mv.mu.Unlock()
	mv.signal()
}

func (mv *View) updateHover(x, y float64) {
	mv.mu.Lock()
	hit := mv.ctrl.HitTest(x, y, mv.tracks)
	changed := hit != mv.hovered
	mv.hovered = hit
	mv.mu.Unlock()
	if changed {
		mv.signal()
	}
}
