package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/argosdef/tacmap/geo"
	"github.com/argosdef/tacmap/track"
	"github.com/argosdef/tacmap/viewport"
)

const (
	minBoxPixels    = 8  // floor so small, slow classes stay visible
	hitMarkerSize   = 2  // half-size of the center marker
	trackLabelBoxH  = 16
	velocityBaseLen = 14.0
)

var statusRank = map[string]int{
	"ACTIVE":   3,
	"COASTING": 2,
	"LOST":     1,
}

// priority orders tracks for drawing: selected over hovered over risk over
// status. Higher priority draws later (on top) and claims label space first.
func priority(o track.Object) int {
	p := statusRank[o.Status]
	p += o.NormRisk() << 4
	if o.Hovered {
		p += 1 << 10
	}
	if o.Selected {
		p += 1 << 20
	}
	return p
}

func (c *Compositor) drawTracks(img *image.RGBA, v *viewport.Viewport, objs []track.Object, pal Palette) {
	ordered := make([]track.Object, len(objs))
	copy(ordered, objs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return priority(ordered[i]) > priority(ordered[j])
	})

	anyFocused := false
	for _, o := range ordered {
		if o.Selected {
			anyFocused = true
			break
		}
	}

	// Glyphs back-to-front: lowest priority first, so higher-priority
	// glyphs are never occluded.
	for i := len(ordered) - 1; i >= 0; i-- {
		o := ordered[i]
		dim := anyFocused && !o.Selected
		drawTrackGlyph(img, v, o, pal, dim)
	}

	// Labels on top, claimed in priority order.
	var pl placer
	for _, o := range ordered {
		drawTrackLabel(img, v, o, pal, &pl, anyFocused && !o.Selected)
	}
}

func drawTrackGlyph(img *image.RGBA, v *viewport.Viewport, o track.Object, pal Palette, dim bool) {
	x, y := v.GeoToScreen(o.Pos)
	mpp := geo.MetersPerPixel(o.Pos.Lat, v.Zoom)

	shade := func(c color.RGBA) color.RGBA {
		if dim {
			return dimmed(c, pal.Background, 0.4)
		}
		return c
	}

	// History trail.
	if len(o.History) > 1 {
		pts := make([][2]float64, 0, len(o.History))
		for _, p := range o.History {
			px, py := v.GeoToScreen(p)
			pts = append(pts, [2]float64{px, py})
		}
		drawPolyline(img, pts, shade(pal.Trail))
	}

	// Dashed predicted path from the current position onward.
	if len(o.Predicted) > 0 {
		pts := make([][2]float64, 0, len(o.Predicted)+1)
		pts = append(pts, [2]float64{x, y})
		for _, p := range o.Predicted {
			px, py := v.GeoToScreen(p)
			pts = append(pts, [2]float64{px, py})
		}
		drawDashed(img, pts, shade(pal.Predicted), 5, 4)
	}

	// Velocity vector with arrowhead.
	if dir, ok := o.Heading(); ok {
		speed := math.Hypot(o.VelocityEN[0], o.VelocityEN[1])
		length := velocityBaseLen + math.Min(speed, 60)/60*22
		// North is up on screen: east is +x, north is -y.
		ex, ey := x+dir[0]*length, y-dir[1]*length
		col := shade(pal.Velocity)
		drawLine(img, x, y, ex, ey, col)
		drawArrowHead(img, ex, ey, dir[0], -dir[1], 5, col)
	}

	// Bounding box from physical size with a pixel floor.
	halfW := math.Max(o.SizeMeters[0]/mpp, minBoxPixels) / 2
	halfH := math.Max(o.SizeMeters[1]/mpp, minBoxPixels) / 2
	box := image.Rect(int(x-halfW), int(y-halfH), int(x+halfW), int(y+halfH))
	drawRectOutline(img, box, shade(pal.RiskBox[o.NormRisk()]))

	// Center marker.
	fillRect(img, image.Rect(int(x)-hitMarkerSize, int(y)-hitMarkerSize,
		int(x)+hitMarkerSize+1, int(y)+hitMarkerSize+1), shade(pal.Marker))
}

func drawTrackLabel(img *image.RGBA, v *viewport.Viewport, o track.Object, pal Palette, pl *placer, dim bool) {
	x, y := v.GeoToScreen(o.Pos)

	text := o.ID
	if o.Selected {
		text = fmt.Sprintf("%s %s %.0f%%", o.ID, track.NormalizeClass(o.Class), o.NormConfidence())
	}
	w := textWidth(text)
	box := image.Rect(int(x)-w/2, int(y)+10, int(x)+w/2, int(y)+10+trackLabelBoxH)

	if o.Selected {
		// Focused labels always render; they still occupy space.
		pl.claim(box)
	} else if !pl.tryClaim(box) {
		return
	}

	col := pal.LabelText
	if dim {
		col = dimmed(col, pal.Background, 0.4)
	}
	drawText(img, int(x)-w/2, int(y)+10+12, text, col)
}
