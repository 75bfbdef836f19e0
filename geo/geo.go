// Package geo provides the coordinate transforms used by the map engine:
// geographic lat/lon, Web-Mercator world pixels, zoned planar (UTM) meters
// and military grid references. All functions are pure and clamp out-of-range
// inputs instead of returning errors; this package feeds a render loop that
// must never blank the display.
package geo

import "math"

// Point is a geographic position in degrees.
type Point struct {
	Lat, Lon float64
}

// NewPoint returns a Point with latitude clamped to [-90,90] and longitude
// normalized into (-180,180].
func NewPoint(lat, lon float64) Point {
	return Point{Lat: clamp(lat, -90, 90), Lon: NormalizeLon(lon)}
}

// NormalizeLon wraps a longitude into (-180,180]. The projection seam at
// -180 resolves to +180 so a point on the seam has exactly one representation.
func NormalizeLon(lon float64) float64 {
	m := math.Mod(lon+180, 360)
	if m < 0 {
		m += 360
	}
	l := m - 180
	if l == -180 {
		l = 180
	}
	return l
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
