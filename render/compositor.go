// Package render composites the map frame: basemap, reference grid, overlay
// and administrative layers, sensor furniture, and the tactical tracks on
// top, in a fixed z-order. Everything below the tracks is a static layer and
// may be served from a baked raster when the signature of its inputs has not
// changed and the profile prioritizes speed.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"
	"time"

	"github.com/argosdef/tacmap/geo"
	"github.com/argosdef/tacmap/grid"
	"github.com/argosdef/tacmap/metrics"
	"github.com/argosdef/tacmap/overlay"
	"github.com/argosdef/tacmap/tiles"
	"github.com/argosdef/tacmap/track"
	"github.com/argosdef/tacmap/viewport"
)

// Options are the per-frame configuration inputs.
type Options struct {
	Theme          string
	LabelLevel     int // 1 province, 2 +district, 3 +settlement
	ShowGrid       bool
	ShowGridLabels bool
	ShowRings      bool
	SpeedMode      bool
}

// Admin label visibility gates.
const (
	provinceMinZoom   = 7
	districtMinZoom   = 10
	settlementMinZoom = 12
	labelThinZoom     = 9 // below this, every 2nd admin label is dropped

	adminBoxW = 72
	adminBoxH = 18
)

var ringRadiiMeters = []float64{5000, 10000, 20000, 40000}

// Compositor renders frames. Caches are injected so tests can substitute
// empty ones; the compositor owns only the static-layer snapshot.
type Compositor struct {
	tiles   *tiles.Cache
	metrics *metrics.Engine

	snapSig  string
	snapshot *image.RGBA
}

// New builds a compositor. Both arguments may be nil: without a tile cache
// the basemap layer is skipped, without metrics nothing is recorded.
func New(tc *tiles.Cache, m *metrics.Engine) *Compositor {
	return &Compositor{tiles: tc, metrics: m}
}

// Render composes one frame. It is deterministic for identical inputs and
// never fails: missing tiles render as neutral fills, bad geometry is
// already filtered, and over-cap grid sets arrive empty.
func (c *Compositor) Render(v *viewport.Viewport, objs []track.Object, ov *overlay.Set, g grid.Set, opts Options) *image.RGBA {
	start := time.Now()

	static := c.staticLayers(v, ov, g, opts)
	frame := cloneRGBA(static)
	c.drawTracks(frame, v, objs, PaletteFor(opts.Theme))

	c.metrics.ObserveFrame(time.Since(start))
	return frame
}

// InvalidateSnapshot drops the baked static raster.
func (c *Compositor) InvalidateSnapshot() {
	c.snapSig = ""
	c.snapshot = nil
}

func signature(v *viewport.Viewport, ov *overlay.Set, g grid.Set, opts Options) string {
	return fmt.Sprintf("%s|%d|%.7f,%.7f|%dx%d|lvl%d|ov%d|z%d.%d|g%v/%v|r%v|s%v",
		opts.Theme, v.Zoom, v.Center.Lat, v.Center.Lon,
		v.Size.X, v.Size.Y, opts.LabelLevel, ov.Generation(), g.Zone, g.Gen,
		opts.ShowGrid, opts.ShowGridLabels, opts.ShowRings, opts.SpeedMode)
}

func (c *Compositor) staticLayers(v *viewport.Viewport, ov *overlay.Set, g grid.Set, opts Options) *image.RGBA {
	sig := signature(v, ov, g, opts)
	if opts.SpeedMode && c.snapshot != nil && sig == c.snapSig {
		if c.metrics != nil {
			c.metrics.SnapshotReuse.Inc()
		}
		return c.snapshot
	}

	pal := PaletteFor(opts.Theme)
	img := image.NewRGBA(image.Rect(0, 0, v.Size.X, v.Size.Y))
	fillRect(img, img.Bounds(), pal.Background)

	if pal.ShowBasemap && c.tiles != nil {
		c.drawBasemap(img, v, pal)
		if pal.Veil.A > 0 {
			fillRect(img, img.Bounds(), pal.Veil)
		}
	}

	if opts.ShowGrid {
		drawGridLines(img, v, g.Minor, pal.GridMinor)
		drawGridLines(img, v, g.Major, pal.GridMajor)
		drawGridLines(img, v, g.Boundary, pal.GridBoundary)
	}
	if opts.ShowGridLabels {
		drawGridLabels(img, v, g.Labels, pal)
	}
	if opts.ShowRings {
		drawRangeRings(img, v, pal)
	}
	drawOverlays(img, v, ov, pal)
	drawAdminLabels(img, v, ov, opts, pal)
	drawCrosshair(img, pal)

	c.snapSig = sig
	c.snapshot = img
	return img
}

func (c *Compositor) drawBasemap(img *image.RGBA, v *viewport.Viewport, pal Palette) {
	cx, cy := geo.ToWorld(v.Center, v.Zoom)
	originX := cx - float64(v.Size.X)/2
	originY := cy - float64(v.Size.Y)/2

	for _, tile := range tiles.Visible(v.Center, v.Zoom, v.Size) {
		sx := int(float64(tile.X*geo.TileSize) - originX)
		sy := int(float64(tile.Y*geo.TileSize) - originY)
		rect := image.Rect(sx, sy, sx+geo.TileSize, sy+geo.TileSize)

		h := c.tiles.Get(tile)
		if h.State() == tiles.Loaded {
			draw.Draw(img, rect, h.Image(), image.Point{}, draw.Src)
		} else {
			// Pending and failed tiles both read as neutral ground.
			fillRect(img, rect, pal.TileFailed)
		}
	}
}

func drawGridLines(img *image.RGBA, v *viewport.Viewport, lines []grid.Line, col color.RGBA) {
	for _, l := range lines {
		pts := make([][2]float64, 0, len(l.Points))
		for _, p := range l.Points {
			x, y := v.GeoToScreen(p)
			pts = append(pts, [2]float64{x, y})
		}
		drawPolyline(img, pts, col)
	}
}

func drawGridLabels(img *image.RGBA, v *viewport.Viewport, labels []grid.Label, pal Palette) {
	for _, l := range labels {
		x, y := v.GeoToScreen(l.Anchor)
		drawText(img, int(x), int(y), l.Cell, pal.GridLabel)
		drawText(img, int(x), int(y)+textFace.Metrics().Height.Round(), l.Ref, pal.GridLabel)
	}
}

func drawRangeRings(img *image.RGBA, v *viewport.Viewport, pal Palette) {
	mpp := geo.MetersPerPixel(v.Center.Lat, v.Zoom)
	cx := float64(v.Size.X) / 2
	cy := float64(v.Size.Y) / 2
	for _, r := range ringRadiiMeters {
		px := r / mpp
		if px < 12 || px > float64(v.Size.X+v.Size.Y) {
			continue
		}
		drawCircle(img, cx, cy, px, pal.RangeRing)
	}
}

func drawOverlays(img *image.RGBA, v *viewport.Viewport, ov *overlay.Set, pal Palette) {
	if ov == nil {
		return
	}
	for _, pl := range ov.Polylines {
		pts := make([][2]float64, 0, len(pl.Points))
		for _, p := range pl.Points {
			x, y := v.GeoToScreen(p)
			pts = append(pts, [2]float64{x, y})
		}
		switch pl.Kind {
		case overlay.KindSea:
			drawPolyline(img, pts, pal.Sea)
		case overlay.KindAirspace:
			drawDashed(img, pts, pal.Airspace, 6, 4)
		default:
			drawPolyline(img, pts, pal.Boundary)
		}
	}
}

func tierVisible(tier overlay.Tier, zoom, level int) bool {
	switch tier {
	case overlay.TierProvince:
		return zoom >= provinceMinZoom
	case overlay.TierDistrict:
		return zoom >= districtMinZoom && level >= 2
	case overlay.TierSettlement:
		return zoom >= settlementMinZoom && level >= 3
	}
	return false
}

func drawAdminLabels(img *image.RGBA, v *viewport.Viewport, ov *overlay.Set, opts Options, pal Palette) {
	if ov == nil {
		return
	}
	b := v.GeoBounds()
	labels := ov.LabelsIn(b.Min.Lat, b.Min.Lon, b.Max.Lat, b.Max.Lon)

	// The index returns labels in tree order; sort for a deterministic
	// frame and a stable first-wins outcome.
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Tier != labels[j].Tier {
			return labels[i].Tier < labels[j].Tier
		}
		return labels[i].Name < labels[j].Name
	})

	placers := map[overlay.Tier]*placer{
		overlay.TierProvince:   {},
		overlay.TierDistrict:   {},
		overlay.TierSettlement: {},
	}
	shown := 0
	for _, l := range labels {
		if !tierVisible(l.Tier, v.Zoom, opts.LabelLevel) {
			continue
		}
		shown++
		if v.Zoom < labelThinZoom && shown%2 == 0 {
			continue
		}
		x, y := v.GeoToScreen(l.Pos)
		box := image.Rect(int(x)-adminBoxW/2, int(y)-adminBoxH/2, int(x)+adminBoxW/2, int(y)+adminBoxH/2)
		if !placers[l.Tier].tryClaim(box) {
			continue
		}
		drawText(img, int(x)-textWidth(l.Name)/2, int(y)+4, l.Name, pal.AdminLabel)
	}
}

func drawCrosshair(img *image.RGBA, pal Palette) {
	b := img.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2

	drawLine(img, cx-10, cy, cx+10, cy, pal.Crosshair)
	drawLine(img, cx, cy-10, cx, cy+10, pal.Crosshair)

	// Corner brackets framing the sensor field of view.
	inset, arm := 14.0, 18.0
	w, h := float64(b.Dx()), float64(b.Dy())
	corners := [][3]float64{
		{inset, inset, 1}, {w - inset, inset, -1},
	}
	for _, c := range corners {
		x, sign := c[0], c[2]
		drawLine(img, x, c[1], x+sign*arm, c[1], pal.Crosshair)
		drawLine(img, x, c[1], x, c[1]+arm, pal.Crosshair)
		drawLine(img, x, h-inset, x+sign*arm, h-inset, pal.Crosshair)
		drawLine(img, x, h-inset, x, h-inset-arm, pal.Crosshair)
	}
}
