package input

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argosdef/tacmap/geo"
	"github.com/argosdef/tacmap/track"
	"github.com/argosdef/tacmap/viewport"
)

var testRegion = viewport.Region{MinLat: 32, MaxLat: 44, MinLon: 122, MaxLon: 132}

func seoulController() *Controller {
	v := viewport.New(geo.NewPoint(37.5665, 126.9780), 11, image.Pt(700, 820), 5, 17, testRegion)
	return NewController(v)
}

func TestJitterIsClick(t *testing.T) {
	c := seoulController()
	center := c.View.Center

	c.PointerDown(350, 410)
	assert.False(t, c.PointerMove(350.4, 410.2))
	assert.True(t, c.PointerUp())
	assert.Equal(t, center, c.View.Center, "sub-threshold jitter must not pan")
	assert.Equal(t, Idle, c.Phase())
}

func TestDragPansAndSuppressesClick(t *testing.T) {
	c := seoulController()
	startLon := c.View.Center.Lon

	c.PointerDown(350, 410)
	c.PointerMove(360, 410)
	assert.True(t, c.PointerMove(380, 410))
	assert.False(t, c.PointerUp(), "a real drag is not a click")
	assert.Less(t, c.View.Center.Lon, startLon, "dragging east moves the map west")
}

func TestCumulativeSmallMovesArmDrag(t *testing.T) {
	c := seoulController()
	c.PointerDown(100, 100)
	for i := 1; i <= 5; i++ {
		c.PointerMove(100+float64(i), 100)
	}
	assert.False(t, c.PointerUp(), "five 1px moves exceed the threshold together")
}

func TestMoveWithoutDownIgnored(t *testing.T) {
	c := seoulController()
	center := c.View.Center
	assert.False(t, c.PointerMove(10, 10))
	assert.Equal(t, center, c.View.Center)
}

func TestWheelZoomsAtAnchor(t *testing.T) {
	c := seoulController()
	anchor := c.View.ScreenToGeo(175, 205)

	c.Wheel(175, 205, -1)
	require.Equal(t, 12, c.View.Zoom)
	after := c.View.ScreenToGeo(175, 205)
	assert.InDelta(t, anchor.Lat, after.Lat, 1e-6)
	assert.InDelta(t, anchor.Lon, after.Lon, 1e-6)

	c.Wheel(175, 205, 1)
	assert.Equal(t, 11, c.View.Zoom)

	c.Wheel(175, 205, 0)
	assert.Equal(t, 11, c.View.Zoom)
}

func TestHitTestNearestCenterWins(t *testing.T) {
	c := seoulController()
	center := c.View.Center

	near := track.Object{ID: "near", Pos: center, SizeMeters: [2]float64{60, 30}, Class: track.ClassHelicopter}
	offPx := c.View.ScreenToGeo(350+6, 410)
	far := track.Object{ID: "far", Pos: offPx, SizeMeters: [2]float64{60, 30}, Class: track.ClassHelicopter}

	got := c.HitTest(350, 410, []track.Object{far, near})
	assert.Equal(t, "near", got)
}

func TestHitTestRadiusAndMiss(t *testing.T) {
	c := seoulController()
	obj := track.Object{ID: "a", Pos: c.View.Center, SizeMeters: [2]float64{10, 10}, Class: track.ClassUAV}

	assert.Equal(t, "a", c.HitTest(350+10, 410, []track.Object{obj}), "within hit radius")
	assert.Equal(t, "", c.HitTest(350+200, 410, []track.Object{obj}), "far misses")
	assert.Equal(t, "", c.HitTest(350, 410, nil))
}
