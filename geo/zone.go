package geo

import "math"

// zoneHysteresisDeg is the buffer band around a zone boundary. A viewport or
// track oscillating inside the band keeps its current zone, so the reference
// grid does not flicker between zones.
const zoneHysteresisDeg = 0.5

// ZoneFor returns the nominal UTM zone for a longitude.
func ZoneFor(lon float64) int {
	lon = NormalizeLon(lon)
	z := int(math.Floor((lon+180)/6)) + 1
	if z < 1 {
		z = 1
	} else if z > 60 {
		z = 60
	}
	return z
}

// CentralMeridian returns the central meridian of a UTM zone in degrees.
func CentralMeridian(zone int) float64 {
	return float64((zone-1)*6 - 180 + 3)
}

// ZoneTracker selects the active zone for a stream of longitudes, applying
// hysteresis at zone boundaries. The zero value starts with no active zone.
type ZoneTracker struct {
	active int
}

// Select reports the zone to use for lon. The first call adopts the nominal
// zone; afterwards the zone only switches once lon has crossed the boundary
// by more than the hysteresis band.
func (t *ZoneTracker) Select(lon float64) int {
	lon = NormalizeLon(lon)
	nominal := ZoneFor(lon)
	if t.active == 0 || nominal == t.active {
		t.active = nominal
		return t.active
	}
	boundary := CentralMeridian(t.active) - 3
	if nominal > t.active {
		boundary = CentralMeridian(t.active) + 3
	}
	if math.Abs(lon-boundary) > zoneHysteresisDeg {
		t.active = nominal
	}
	return t.active
}

// Active returns the currently held zone, or 0 before the first Select.
func (t *ZoneTracker) Active() int { return t.active }
