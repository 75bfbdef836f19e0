package geo

import "math"

const (
	// TileSize is the pixel size of one basemap tile.
	TileSize = 256

	earthCircumference = 40075016.686 // meters at equator

	// maxMercatorLat bounds the cylindrical projection; beyond it the scale
	// factor diverges. Distinct from the ±80° planar clamp in utm.go.
	maxMercatorLat = 85.05112878
)

// ToWorld converts a geographic point to world pixel coordinates at the given
// zoom level. Latitude is clamped to the mercator limit and longitude is
// normalized before projection.
func ToWorld(p Point, zoom int) (float64, float64) {
	lat := clamp(p.Lat, -maxMercatorLat, maxMercatorLat)
	lon := NormalizeLon(p.Lon)
	n := math.Pow(2, float64(zoom))
	latRad := degToRad(lat)
	x := TileSize * n * (lon + 180) / 360
	y := TileSize * n * (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2
	return x, y
}

// FromWorld converts world pixel coordinates back to a geographic point.
func FromWorld(x, y float64, zoom int) Point {
	n := math.Pow(2, float64(zoom))
	lon := (x/(TileSize*n))*360 - 180
	latRad := math.Pi * (1 - 2*y/(TileSize*n))
	lat := radToDeg(math.Atan(math.Sinh(latRad)))
	return NewPoint(lat, lon)
}

// MetersPerPixel reports the ground resolution at a latitude and zoom level.
func MetersPerPixel(lat float64, zoom int) float64 {
	lat = clamp(lat, -maxMercatorLat, maxMercatorLat)
	return earthCircumference * math.Cos(degToRad(lat)) / (math.Pow(2, float64(zoom)) * TileSize)
}
