package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"kind": "boundary", "name": "MDL"},
      "geometry": {"type": "LineString", "coordinates": [[126.6, 37.9], [127.1, 38.3], [128.3, 38.6]]}
    },
    {
      "type": "Feature",
      "properties": {"kind": "sea"},
      "geometry": {"type": "MultiLineString", "coordinates": [[[126.2, 37.2], [126.3, 37.0]], [[126.4, 36.9], [126.5, 36.7]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "서울특별시", "tier": "province"},
      "geometry": {"type": "Point", "coordinates": [126.9780, 37.5665]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Gangnam", "admin_level": 6},
      "geometry": {"type": "Point", "coordinates": [127.0473, 37.5172]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Restricted P-73", "kind": "airspace"},
      "geometry": {"type": "Polygon", "coordinates": [[[126.9, 37.5], [127.0, 37.5], [127.0, 37.6], [126.9, 37.6], [126.9, 37.5]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "unsupported"},
      "geometry": {"type": "GeometryCollection", "geometries": []}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "Point", "coordinates": [127.5, 37.5]}
    }
  ]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sampleGeoJSON))
	require.NoError(t, err)

	// 1 boundary + 2 sea + 1 airspace ring.
	require.Len(t, s.Polylines, 4)
	assert.Equal(t, KindBoundary, s.Polylines[0].Kind)
	assert.Equal(t, KindSea, s.Polylines[1].Kind)
	assert.Equal(t, KindAirspace, s.Polylines[3].Kind)

	// Coordinates arrive lon-first and must come out lat/lon.
	assert.InDelta(t, 37.9, s.Polylines[0].Points[0].Lat, 1e-9)
	assert.InDelta(t, 126.6, s.Polylines[0].Points[0].Lon, 1e-9)

	// Two named points plus the airspace polygon centroid; the unnamed
	// point and the geometry collection are dropped without error.
	require.Len(t, s.Labels, 3)
	assert.Equal(t, "서울특별시", s.Labels[0].Name)
	assert.Equal(t, TierProvince, s.Labels[0].Tier)
	assert.Equal(t, TierDistrict, s.Labels[1].Tier)

	assert.Empty(t, s.Advisory())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.Error(t, err)
}

func TestAdvisoryWhenEmpty(t *testing.T) {
	s, err := Parse([]byte(`{"type": "FeatureCollection", "features": []}`))
	require.NoError(t, err)
	assert.Equal(t, "no official overlay data loaded", s.Advisory())

	var nilSet *Set
	assert.Equal(t, "no official overlay data loaded", nilSet.Advisory())
}

func TestGenerationAdvances(t *testing.T) {
	a, err := Parse([]byte(`{"type": "FeatureCollection", "features": []}`))
	require.NoError(t, err)
	b, err := Parse([]byte(`{"type": "FeatureCollection", "features": []}`))
	require.NoError(t, err)
	assert.NotEqual(t, a.Generation(), b.Generation())
}

func TestLabelsIn(t *testing.T) {
	s, err := Parse([]byte(sampleGeoJSON))
	require.NoError(t, err)

	hits := s.LabelsIn(37.4, 126.8, 37.7, 127.2)
	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.Name)
	}
	assert.Contains(t, names, "서울특별시")
	assert.Contains(t, names, "Gangnam")

	// Far away box finds nothing.
	assert.Empty(t, s.LabelsIn(33.0, 124.0, 33.5, 124.5))
}
