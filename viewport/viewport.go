// Package viewport holds the single source of truth for what is on screen:
// a geographic center, an integer zoom level and the canvas pixel size, plus
// the derived geographic and planar bounds of the visible area.
package viewport

import (
	"image"
	"math"

	"github.com/argosdef/tacmap/geo"
)

// Region is an operational bounding box; viewport centers are clamped to it.
type Region struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p geo.Point) bool {
	return p.Lat >= r.MinLat && p.Lat <= r.MaxLat && p.Lon >= r.MinLon && p.Lon <= r.MaxLon
}

// ClampPoint moves p to the nearest point inside the region.
func (r Region) ClampPoint(p geo.Point) geo.Point {
	lat := math.Min(math.Max(p.Lat, r.MinLat), r.MaxLat)
	lon := math.Min(math.Max(p.Lon, r.MinLon), r.MaxLon)
	return geo.Point{Lat: lat, Lon: lon}
}

// GeoBounds is a lat/lon envelope.
type GeoBounds struct {
	Min, Max geo.Point
}

// PlanarBounds is a meter envelope in one zone.
type PlanarBounds struct {
	Zone                   int
	MinEasting, MaxEasting float64
	MinNorthing, MaxNorthing float64
}

// Viewport is the mutable view state. All mutations clamp zoom to the
// configured limits and the center to the operational region.
type Viewport struct {
	Center geo.Point
	Zoom   int
	Size   image.Point

	MinZoom, MaxZoom int
	Bounds           Region
}

// New returns a viewport clamped into the given limits.
func New(center geo.Point, zoom int, size image.Point, minZoom, maxZoom int, bounds Region) *Viewport {
	v := &Viewport{
		Center:  center,
		Zoom:    zoom,
		Size:    size,
		MinZoom: minZoom,
		MaxZoom: maxZoom,
		Bounds:  bounds,
	}
	v.Center = bounds.ClampPoint(v.Center)
	v.SetZoom(zoom)
	return v
}

// SetZoom clamps and applies a zoom level.
func (v *Viewport) SetZoom(zoom int) {
	if zoom < v.MinZoom {
		zoom = v.MinZoom
	}
	if zoom > v.MaxZoom {
		zoom = v.MaxZoom
	}
	v.Zoom = zoom
}

// Resize applies a new canvas size.
func (v *Viewport) Resize(size image.Point) { v.Size = size }

// ScreenToGeo converts a canvas pixel position to a geographic point.
func (v *Viewport) ScreenToGeo(px, py float64) geo.Point {
	cx, cy := geo.ToWorld(v.Center, v.Zoom)
	wx := cx + px - float64(v.Size.X)/2
	wy := cy + py - float64(v.Size.Y)/2
	return geo.FromWorld(wx, wy, v.Zoom)
}

// GeoToScreen converts a geographic point to canvas pixel coordinates.
func (v *Viewport) GeoToScreen(p geo.Point) (float64, float64) {
	cx, cy := geo.ToWorld(v.Center, v.Zoom)
	wx, wy := geo.ToWorld(p, v.Zoom)
	return wx - cx + float64(v.Size.X)/2, wy - cy + float64(v.Size.Y)/2
}

// samplePoints projects the canvas corners, edge midpoints and center back to
// geographic space. A rectangular screen region is not rectangular on the
// ellipsoid, so corners alone under-estimate the footprint.
func (v *Viewport) samplePoints() []geo.Point {
	w, h := float64(v.Size.X), float64(v.Size.Y)
	samples := [][2]float64{
		{0, 0}, {w, 0}, {0, h}, {w, h},
		{w / 2, 0}, {w / 2, h}, {0, h / 2}, {w, h / 2},
		{w / 2, h / 2},
	}
	pts := make([]geo.Point, 0, len(samples))
	for _, s := range samples {
		pts = append(pts, v.ScreenToGeo(s[0], s[1]))
	}
	return pts
}

// GeoBounds returns the visible geographic envelope clamped to the
// operational region.
func (v *Viewport) GeoBounds() GeoBounds {
	pts := v.samplePoints()
	b := GeoBounds{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.Lat = math.Min(b.Min.Lat, p.Lat)
		b.Min.Lon = math.Min(b.Min.Lon, p.Lon)
		b.Max.Lat = math.Max(b.Max.Lat, p.Lat)
		b.Max.Lon = math.Max(b.Max.Lon, p.Lon)
	}
	b.Min = v.Bounds.ClampPoint(b.Min)
	b.Max = v.Bounds.ClampPoint(b.Max)
	return b
}

// PlanarBounds returns the min/max planar envelope of the visible area in the
// given zone, padded outward by padMeters to avoid seams at the canvas edge.
func (v *Viewport) PlanarBounds(zone int, padMeters float64) PlanarBounds {
	pts := v.samplePoints()
	first := geo.ToPlanar(pts[0], zone)
	b := PlanarBounds{
		Zone:        zone,
		MinEasting:  first.Easting,
		MaxEasting:  first.Easting,
		MinNorthing: first.Northing,
		MaxNorthing: first.Northing,
	}
	for _, p := range pts[1:] {
		pl := geo.ToPlanar(p, zone)
		b.MinEasting = math.Min(b.MinEasting, pl.Easting)
		b.MaxEasting = math.Max(b.MaxEasting, pl.Easting)
		b.MinNorthing = math.Min(b.MinNorthing, pl.Northing)
		b.MaxNorthing = math.Max(b.MaxNorthing, pl.Northing)
	}
	b.MinEasting -= padMeters
	b.MaxEasting += padMeters
	b.MinNorthing -= padMeters
	b.MaxNorthing += padMeters
	return b
}

// Pan shifts the view by a screen pixel delta.
func (v *Viewport) Pan(dx, dy float64) {
	cx, cy := geo.ToWorld(v.Center, v.Zoom)
	v.Center = v.Bounds.ClampPoint(geo.FromWorld(cx-dx, cy-dy, v.Zoom))
}

// ZoomAt changes the zoom level by delta steps while keeping the geographic
// point under the given canvas pixel anchored to that same pixel.
func (v *Viewport) ZoomAt(anchorX, anchorY float64, delta int) {
	oldZoom := v.Zoom
	v.SetZoom(v.Zoom + delta)
	if v.Zoom == oldZoom {
		return
	}

	offX := anchorX - float64(v.Size.X)/2
	offY := anchorY - float64(v.Size.Y)/2

	cx, cy := geo.ToWorld(v.Center, oldZoom)
	anchorGeo := geo.FromWorld(cx+offX, cy+offY, oldZoom)

	// Solve for the center that keeps anchorGeo at the same pixel offset.
	ax, ay := geo.ToWorld(anchorGeo, v.Zoom)
	v.Center = v.Bounds.ClampPoint(geo.FromWorld(ax-offX, ay-offY, v.Zoom))
}
