package viewport

import (
	"image"
	"testing"

	"github.com/argosdef/tacmap/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegion = Region{MinLat: 32, MaxLat: 44, MinLon: 122, MaxLon: 132}

func seoulView() *Viewport {
	return New(geo.Point{Lat: 37.5665, Lon: 126.9780}, 11, image.Pt(700, 820), 5, 17, testRegion)
}

func TestNewClampsZoomAndCenter(t *testing.T) {
	v := New(geo.Point{Lat: 50, Lon: 100}, 30, image.Pt(100, 100), 5, 17, testRegion)
	assert.Equal(t, 17, v.Zoom)
	assert.Equal(t, 44.0, v.Center.Lat)
	assert.Equal(t, 122.0, v.Center.Lon)
}

func TestScreenGeoRoundTrip(t *testing.T) {
	v := seoulView()
	p := v.ScreenToGeo(123, 456)
	x, y := v.GeoToScreen(p)
	assert.InDelta(t, 123, x, 1e-6)
	assert.InDelta(t, 456, y, 1e-6)
}

func TestGeoBoundsContainCenter(t *testing.T) {
	v := seoulView()
	b := v.GeoBounds()
	assert.Less(t, b.Min.Lat, v.Center.Lat)
	assert.Greater(t, b.Max.Lat, v.Center.Lat)
	assert.Less(t, b.Min.Lon, v.Center.Lon)
	assert.Greater(t, b.Max.Lon, v.Center.Lon)
}

func TestPlanarBoundsPadding(t *testing.T) {
	v := seoulView()
	plain := v.PlanarBounds(52, 0)
	padded := v.PlanarBounds(52, 1000)
	assert.InDelta(t, plain.MinEasting-1000, padded.MinEasting, 1e-6)
	assert.InDelta(t, plain.MaxNorthing+1000, padded.MaxNorthing, 1e-6)
	require.Less(t, plain.MinEasting, plain.MaxEasting)
	require.Less(t, plain.MinNorthing, plain.MaxNorthing)
}

func TestPanMovesCenterOpposite(t *testing.T) {
	v := seoulView()
	before := v.Center
	v.Pan(100, 0) // drag content east: center moves west
	assert.Less(t, v.Center.Lon, before.Lon)
	assert.InDelta(t, before.Lat, v.Center.Lat, 1e-9)

	v.Pan(0, -50) // drag content up: center moves south
	assert.Less(t, v.Center.Lat, before.Lat)
}

func TestPanClampsToRegion(t *testing.T) {
	v := seoulView()
	for i := 0; i < 500; i++ {
		v.Pan(-5000, 0)
	}
	assert.LessOrEqual(t, v.Center.Lon, testRegion.MaxLon)
}

func TestZoomAtPreservesFocus(t *testing.T) {
	anchors := [][2]float64{{350, 410}, {10, 10}, {690, 800}, {120, 700}}
	for _, a := range anchors {
		for _, delta := range []int{1, -1, 2} {
			v := seoulView()
			before := v.ScreenToGeo(a[0], a[1])
			v.ZoomAt(a[0], a[1], delta)
			after := v.ScreenToGeo(a[0], a[1])
			assert.InDelta(t, before.Lat, after.Lat, 1e-6, "anchor %v delta %d", a, delta)
			assert.InDelta(t, before.Lon, after.Lon, 1e-6, "anchor %v delta %d", a, delta)
		}
	}
}

func TestZoomAtLimitIsNoop(t *testing.T) {
	v := seoulView()
	v.SetZoom(17)
	before := v.Center
	v.ZoomAt(10, 10, 1)
	assert.Equal(t, before, v.Center)
	assert.Equal(t, 17, v.Zoom)
}
