// Package overlay ingests boundary/sea/airspace polylines and administrative
// name labels from GeoJSON feature collections. Malformed or unrecognized
// features are skipped, never fatal: the engine draws whatever survived.
package overlay

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/argosdef/tacmap/geo"
)

// Kind classifies an overlay polyline.
type Kind int

const (
	KindBoundary Kind = iota
	KindSea
	KindAirspace
)

// Tier is the administrative label density tier.
type Tier int

const (
	TierProvince Tier = iota + 1
	TierDistrict
	TierSettlement
)

// Polyline is a drawable overlay line.
type Polyline struct {
	Kind   Kind
	Points []geo.Point
}

// LabelPoint is a named administrative label anchor.
type LabelPoint struct {
	Name string
	Tier Tier
	Pos  geo.Point
}

// nameKeys are the recognized name properties, tried in priority order.
var nameKeys = []string{"name:ko", "name", "NAME", "title"}

var generation atomic.Int64

// Set is one loaded overlay collection plus its spatial label index.
type Set struct {
	Polylines []Polyline
	Labels    []LabelPoint

	gen   int64
	index *Index
}

// Generation identifies this load; it feeds the static-layer signature.
func (s *Set) Generation() int64 {
	if s == nil {
		return 0
	}
	return s.gen
}

// Advisory returns the status string surfaced to collaborators when no
// overlay data is loaded, or "" when data is present. This is advisory, not
// an error.
func (s *Set) Advisory() string {
	if s == nil || (len(s.Polylines) == 0 && len(s.Labels) == 0) {
		return "no official overlay data loaded"
	}
	return ""
}

// LabelsIn returns the labels inside a geographic envelope.
func (s *Set) LabelsIn(minLat, minLon, maxLat, maxLon float64) []LabelPoint {
	if s == nil || s.index == nil {
		return nil
	}
	return s.index.Search(minLat, minLon, maxLat, maxLon)
}

// LoadFile parses an overlay GeoJSON file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a feature collection. Only a collection that cannot be
// decoded at all is an error; individual bad features are dropped.
func Parse(data []byte) (*Set, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}

	s := &Set{gen: generation.Add(1)}
	for _, f := range fc.Features {
		s.addFeature(f)
	}
	s.index = NewIndex(s.Labels)
	return s, nil
}

func (s *Set) addFeature(f *geojson.Feature) {
	if f == nil || f.Geometry == nil {
		return
	}
	name := featureName(f)
	kind := featureKind(f)
	tier := featureTier(f)

	switch g := f.Geometry.(type) {
	case orb.Point:
		if name != "" {
			s.Labels = append(s.Labels, LabelPoint{Name: name, Tier: tier, Pos: toGeo(g)})
		}
	case orb.MultiPoint:
		for _, pt := range g {
			if name != "" {
				s.Labels = append(s.Labels, LabelPoint{Name: name, Tier: tier, Pos: toGeo(pt)})
			}
		}
	case orb.LineString:
		s.addLine(kind, g)
	case orb.MultiLineString:
		for _, ls := range g {
			s.addLine(kind, ls)
		}
	case orb.Polygon:
		s.addPolygon(kind, name, tier, g)
	case orb.MultiPolygon:
		for _, poly := range g {
			s.addPolygon(kind, name, tier, poly)
		}
	default:
		slog.Debug("overlay feature skipped", "geometry", f.Geometry.GeoJSONType())
	}
}

func (s *Set) addLine(kind Kind, ls orb.LineString) {
	if len(ls) < 2 {
		return
	}
	pts := make([]geo.Point, 0, len(ls))
	for _, pt := range ls {
		pts = append(pts, toGeo(pt))
	}
	s.Polylines = append(s.Polylines, Polyline{Kind: kind, Points: pts})
}

func (s *Set) addPolygon(kind Kind, name string, tier Tier, poly orb.Polygon) {
	for _, ring := range poly {
		s.addLine(kind, orb.LineString(ring))
	}
	if name != "" && len(poly) > 0 && len(poly[0]) > 0 {
		c, _ := planarCentroid(poly[0])
		s.Labels = append(s.Labels, LabelPoint{Name: name, Tier: tier, Pos: c})
	}
}

// planarCentroid averages ring vertices; good enough for a label anchor.
func planarCentroid(ring orb.Ring) (geo.Point, bool) {
	if len(ring) == 0 {
		return geo.Point{}, false
	}
	var lat, lon float64
	for _, pt := range ring {
		lat += pt.Lat()
		lon += pt.Lon()
	}
	n := float64(len(ring))
	return geo.NewPoint(lat/n, lon/n), true
}

func toGeo(pt orb.Point) geo.Point {
	return geo.NewPoint(pt.Lat(), pt.Lon())
}

func featureName(f *geojson.Feature) string {
	for _, key := range nameKeys {
		if v, ok := f.Properties[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func featureKind(f *geojson.Feature) Kind {
	for _, key := range []string{"kind", "type"} {
		v, ok := f.Properties[key].(string)
		if !ok {
			continue
		}
		switch v {
		case "sea", "coastline":
			return KindSea
		case "airspace":
			return KindAirspace
		case "boundary":
			return KindBoundary
		}
	}
	return KindBoundary
}

func featureTier(f *geojson.Feature) Tier {
	if v, ok := f.Properties["tier"].(string); ok {
		switch v {
		case "province":
			return TierProvince
		case "district":
			return TierDistrict
		case "settlement":
			return TierSettlement
		}
	}
	if lvl, ok := numericProperty(f, "admin_level"); ok {
		switch {
		case lvl <= 4:
			return TierProvince
		case lvl <= 7:
			return TierDistrict
		default:
			return TierSettlement
		}
	}
	return TierProvince
}

func numericProperty(f *geojson.Feature, key string) (float64, bool) {
	switch v := f.Properties[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
