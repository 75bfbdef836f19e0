// Package track defines the tactical-object records the engine draws. The
// records arrive from the classification backend and are read-only here: the
// engine projects and renders them, never mutates them, and treats each
// update as a wholesale replacement of the list.
package track

import (
	"math"

	"github.com/argosdef/tacmap/geo"
)

// Classification classes as reported by the backend.
const (
	ClassHelicopter = "HELICOPTER"
	ClassUAV        = "UAV"
	ClassCivilAir   = "CIVIL_AIR"
	ClassBirdFlock  = "BIRD_FLOCK"
	ClassBird       = "BIRD"
	ClassUnknown    = "UNKNOWN"
)

// classAliases maps backend synonyms onto the canonical classes.
var classAliases = map[string]string{
	"HELICOPTER":          ClassHelicopter,
	"HELI":                ClassHelicopter,
	"ROTORCRAFT":          ClassHelicopter,
	"UAV":                 ClassUAV,
	"DRONE":               ClassUAV,
	"UAS":                 ClassUAV,
	"CIVIL_AIR":           ClassCivilAir,
	"COMMERCIAL_AIRCRAFT": ClassCivilAir,
	"BIRD_FLOCK":          ClassBirdFlock,
	"FLOCK":               ClassBirdFlock,
	"BIRDS":               ClassBirdFlock,
	"BIRD":                ClassBird,
}

// NormalizeClass maps a backend class string onto a canonical class.
func NormalizeClass(raw string) string {
	if c, ok := classAliases[raw]; ok {
		return c
	}
	return ClassUnknown
}

// Object is one tactical track.
type Object struct {
	ID    string
	Pos   geo.Point
	// VelocityEN is ground velocity in m/s, east and north components.
	VelocityEN [2]float64
	// SizeMeters is the physical extent (width, length).
	SizeMeters [2]float64

	Class      string
	Confidence float64 // 0..100
	Risk       int     // 0 (none) .. 3 (high)
	Status     string

	History   []geo.Point
	Predicted []geo.Point

	Selected bool
	Hovered  bool
}

// NormConfidence returns the confidence clamped into [0,100].
func (o Object) NormConfidence() float64 {
	if o.Confidence < 0 {
		return 0
	}
	if o.Confidence > 100 {
		return 100
	}
	return o.Confidence
}

// NormRisk returns the risk level clamped into [0,3].
func (o Object) NormRisk() int {
	if o.Risk < 0 {
		return 0
	}
	if o.Risk > 3 {
		return 3
	}
	return o.Risk
}

// Heading returns the unit direction the object is moving in east/north
// terms, preferring the first predicted-path point over raw velocity. The
// second return is false when neither source yields a direction.
func (o Object) Heading() ([2]float64, bool) {
	if len(o.Predicted) > 0 {
		pl := geo.ToPlanar(o.Pos, geo.ZoneFor(o.Pos.Lon))
		next := geo.ToPlanar(o.Predicted[0], pl.Zone)
		return unit(next.Easting-pl.Easting, next.Northing-pl.Northing)
	}
	return unit(o.VelocityEN[0], o.VelocityEN[1])
}

func unit(dx, dy float64) ([2]float64, bool) {
	n := math.Hypot(dx, dy)
	if n == 0 {
		return [2]float64{}, false
	}
	return [2]float64{dx / n, dy / n}, true
}
