package geo

import (
	"fmt"
	"math"
	"strings"
)

// CellSize is the edge length of one grid-reference cell in meters.
const CellSize = 100000

// Letter tables for the military grid. I and O are skipped throughout. The
// column set repeats every 3 zones and the row offset every 2, so the cell
// lettering has a period of 6 zones.
var (
	latBandLetters = "CDEFGHJKLMNPQRSTUVWX"
	colLetterSets  = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}
	rowLetters     = "ABCDEFGHJKLMNPQRSTUV"
)

// LatBand returns the 8° latitude band letter for a latitude.
func LatBand(lat float64) byte {
	idx := int(math.Floor((clamp(lat, -80, 83.999) + 80) / 8))
	if idx >= len(latBandLetters) {
		idx = len(latBandLetters) - 1
	}
	return latBandLetters[idx]
}

// CellID returns the two-letter 100km cell identifier for a planar coordinate.
func CellID(pl Planar) string {
	colSet := colLetterSets[(pl.Zone-1)%3]
	col := int(math.Floor(pl.Easting/CellSize)) - 1
	col = ((col % 8) + 8) % 8

	rowOffset := 0
	if pl.Zone%2 == 0 {
		rowOffset = 5
	}
	row := int(math.Floor(pl.Northing/CellSize)) + rowOffset
	row = ((row % 20) + 20) % 20

	return string([]byte{colSet[col], rowLetters[row]})
}

// GridReference formats the full grid reference of a geographic point in the
// given zone, e.g. "52S CG 213 581" at 3 digits per axis. digits<=0 yields the
// zone/band/cell portion only; digits is capped at 5 (one-meter precision).
func GridReference(p Point, zone int, digits int) string {
	pl := ToPlanar(p, zone)
	var b strings.Builder
	fmt.Fprintf(&b, "%d%c %s", pl.Zone, LatBand(clamp(p.Lat, -maxPlanarLat, maxPlanarLat)), CellID(pl))
	if digits > 0 {
		if digits > 5 {
			digits = 5
		}
		e := int(math.Floor(pl.Easting)) % CellSize
		n := int(math.Floor(pl.Northing)) % CellSize
		if e < 0 {
			e += CellSize
		}
		if n < 0 {
			n += CellSize
		}
		// Truncated, not rounded: a reference names the cell the point is in.
		es := fmt.Sprintf("%05d", e)[:digits]
		ns := fmt.Sprintf("%05d", n)[:digits]
		fmt.Fprintf(&b, " %s %s", es, ns)
	}
	return b.String()
}
