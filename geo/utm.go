package geo

import "math"

// Planar is a zoned planar coordinate in meters (UTM on WGS84).
type Planar struct {
	Zone     int
	Easting  float64
	Northing float64
}

// WGS84 ellipsoid and UTM constants.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563
	utmScale      = 0.9996
	falseEasting  = 500000.0
	falseNorthing = 10000000.0 // southern hemisphere offset

	// maxPlanarLat bounds the transverse-mercator series. Narrower than the
	// tile projection clamp on purpose; the two projections have different
	// valid domains.
	maxPlanarLat = 80.0
)

var (
	ecc2  = flattening * (2 - flattening) // first eccentricity squared
	eccP2 = ecc2 / (1 - ecc2)             // second eccentricity squared
)

// ToPlanar projects a geographic point into the given UTM zone using the
// closed-form ellipsoidal series. Latitude is clamped to the supported band.
func ToPlanar(p Point, zone int) Planar {
	if zone < 1 {
		zone = 1
	} else if zone > 60 {
		zone = 60
	}
	lat := clamp(p.Lat, -maxPlanarLat, maxPlanarLat)
	phi := degToRad(lat)
	lam := degToRad(NormalizeLon(p.Lon) - CentralMeridian(zone))

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	tanPhi := sinPhi / cosPhi

	n := semiMajorAxis / math.Sqrt(1-ecc2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := eccP2 * cosPhi * cosPhi
	a := cosPhi * lam
	m := meridianArc(phi)

	a2, a3 := a*a, a*a*a
	a4, a5, a6 := a2*a2, a2*a3, a3*a3

	easting := utmScale*n*(a+(1-t+c)*a3/6+(5-18*t+t*t+72*c-58*eccP2)*a5/120) + falseEasting
	northing := utmScale * (m + n*tanPhi*(a2/2+(5-t+9*c+4*c*c)*a4/24+(61-58*t+t*t+600*c-330*eccP2)*a6/720))
	if lat < 0 {
		northing += falseNorthing
	}
	return Planar{Zone: zone, Easting: easting, Northing: northing}
}

// FromPlanar is the inverse series expansion, returning the geographic point
// for a planar coordinate. Northings at or above the southern-hemisphere
// offset are interpreted as southern latitudes.
func FromPlanar(pl Planar) Point {
	zone := pl.Zone
	if zone < 1 {
		zone = 1
	} else if zone > 60 {
		zone = 60
	}
	x := pl.Easting - falseEasting
	y := pl.Northing
	if y >= falseNorthing {
		y -= falseNorthing
	}

	e1 := (1 - math.Sqrt(1-ecc2)) / (1 + math.Sqrt(1-ecc2))
	mu := (y / utmScale) / (semiMajorAxis * (1 - ecc2/4 - 3*ecc2*ecc2/64 - 5*ecc2*ecc2*ecc2/256))

	phi1 := mu +
		(3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sin1, cos1 := math.Sin(phi1), math.Cos(phi1)
	tan1 := sin1 / cos1
	c1 := eccP2 * cos1 * cos1
	t1 := tan1 * tan1
	n1 := semiMajorAxis / math.Sqrt(1-ecc2*sin1*sin1)
	r1 := semiMajorAxis * (1 - ecc2) / math.Pow(1-ecc2*sin1*sin1, 1.5)
	d := x / (n1 * utmScale)

	d2, d3 := d*d, d*d*d
	d4, d5, d6 := d2*d2, d2*d3, d3*d3

	phi := phi1 - (n1*tan1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*eccP2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*eccP2-3*c1*c1)*d6/720)
	lam := (d - (1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*eccP2+24*t1*t1)*d5/120) / cos1

	return NewPoint(radToDeg(phi), CentralMeridian(zone)+radToDeg(lam))
}

func meridianArc(phi float64) float64 {
	e2 := ecc2
	e4 := e2 * e2
	e6 := e4 * e2
	return semiMajorAxis * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
