package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneFor(t *testing.T) {
	assert.Equal(t, 52, ZoneFor(126.9780)) // Seoul
	assert.Equal(t, 51, ZoneFor(125.7))    // west of the 126°E boundary
	assert.Equal(t, 1, ZoneFor(-179.9))
	assert.Equal(t, 60, ZoneFor(179.9))
	assert.Equal(t, 31, ZoneFor(0))
}

func TestZoneTrackerSweepSwitchesOnce(t *testing.T) {
	var tr ZoneTracker
	changes := 0
	prev := tr.Select(124.5)
	for lon := 124.5; lon <= 128.0; lon += 0.05 {
		z := tr.Select(lon)
		if z != prev {
			changes++
			prev = z
		}
	}
	assert.Equal(t, 1, changes)
	assert.Equal(t, 52, tr.Active())
}

func TestZoneTrackerHoldsInsideBuffer(t *testing.T) {
	var tr ZoneTracker
	tr.Select(125.5) // establishes zone 51; boundary to 52 is at 126°E
	for i := 0; i < 20; i++ {
		assert.Equal(t, 51, tr.Select(126.2)) // inside the +0.5° band
		assert.Equal(t, 51, tr.Select(125.9))
	}
	// Crossing beyond the band finally switches.
	assert.Equal(t, 52, tr.Select(126.7))
	// And it does not switch back while hovering inside the band.
	assert.Equal(t, 52, tr.Select(125.8))
}

func TestZoneTrackerFirstSelectAdoptsNominal(t *testing.T) {
	var tr ZoneTracker
	assert.Equal(t, 52, tr.Select(126.2))
}
