// Package grid generates the metric reference grid and 100km cell labels for
// a viewport. Lines are laid out in planar space and reprojected point by
// point; straight planar lines are curves on screen, so every line carries
// enough interior samples to render visually straight.
package grid

import (
	"fmt"
	"math"

	"github.com/argosdef/tacmap/geo"
	"github.com/argosdef/tacmap/viewport"
)

// Grid spacings in meters.
const (
	MinorSpacing    = 1000.0
	MajorSpacing    = 10000.0
	BoundarySpacing = 100000.0
)

// Per-layer minimum zoom levels and generation limits.
const (
	minZoomBoundary = 6
	minZoomMajor    = 9
	minZoomMinor    = 12
	minZoomLabels   = 8

	// lineSamples interior points per line; enough that a reprojected grid
	// line stays visually straight at screen scale.
	lineSamples = 12

	// maxLinesPerSpacing is a hard cap. A spacing that would exceed it is
	// dropped wholesale for the frame rather than truncated.
	maxLinesPerSpacing = 160

	// labelAnchorInset fixes the label anchor relative to the cell origin so
	// the anchor does not move as the viewport pans.
	labelAnchorInset = 10000.0
)

// Line is a reprojected grid polyline.
type Line struct {
	Points        []geo.Point
	SpacingMeters float64
}

// Label marks one 100km cell, e.g. Ref "52S", Cell "CG".
type Label struct {
	Ref    string
	Cell   string
	Anchor geo.Point
}

// Flags selects which grid products to generate.
type Flags struct {
	Lines  bool
	Labels bool
}

// Set is the grid output for one frame. Gen identifies the generation pass
// that produced it; consumers that bake static rasters key on it so a
// recomputed grid is never mistaken for the one already drawn.
type Set struct {
	Zone                   int
	Gen                    uint64
	Minor, Major, Boundary []Line
	Labels                 []Label
}

// Empty reports whether the set has nothing to draw.
func (s Set) Empty() bool {
	return len(s.Minor) == 0 && len(s.Major) == 0 && len(s.Boundary) == 0 && len(s.Labels) == 0
}

// Generator derives grid sets from viewports. It carries the active zone
// across calls (hysteresis) and caches cell labels between frames.
type Generator struct {
	tracker geo.ZoneTracker
	labels  *labelCache
	gen     uint64
}

// NewGenerator returns a Generator with an empty label cache.
func NewGenerator() *Generator {
	return &Generator{labels: newLabelCache(labelCacheLimit)}
}

// Zone returns the zone the generator is currently holding.
func (g *Generator) Zone() int { return g.tracker.Active() }

// Generate produces the grid set for a viewport. Layers below their minimum
// zoom, or over the line cap, are omitted rather than truncated.
func (g *Generator) Generate(v *viewport.Viewport, flags Flags) Set {
	zone := g.tracker.Select(v.Center.Lon)
	g.gen++
	set := Set{Zone: zone, Gen: g.gen}

	if flags.Lines {
		if v.Zoom >= minZoomBoundary {
			set.Boundary = g.lines(v, zone, BoundarySpacing)
		}
		if v.Zoom >= minZoomMajor {
			set.Major = g.lines(v, zone, MajorSpacing)
		}
		if v.Zoom >= minZoomMinor {
			set.Minor = g.lines(v, zone, MinorSpacing)
		}
	}
	if flags.Labels && v.Zoom >= minZoomLabels {
		set.Labels = g.cellLabels(v, zone)
	}
	return set
}

func (g *Generator) lines(v *viewport.Viewport, zone int, spacing float64) []Line {
	b := v.PlanarBounds(zone, spacing)
	minE := math.Floor(b.MinEasting/spacing) * spacing
	maxE := math.Ceil(b.MaxEasting/spacing) * spacing
	minN := math.Floor(b.MinNorthing/spacing) * spacing
	maxN := math.Ceil(b.MaxNorthing/spacing) * spacing

	vertical := int(math.Round((maxE-minE)/spacing)) + 1
	horizontal := int(math.Round((maxN-minN)/spacing)) + 1
	if vertical+horizontal > maxLinesPerSpacing {
		return nil
	}

	lines := make([]Line, 0, vertical+horizontal)
	for e := minE; e <= maxE+spacing/2; e += spacing {
		lines = append(lines, sampleLine(zone, spacing,
			func(t float64) geo.Planar {
				return geo.Planar{Zone: zone, Easting: e, Northing: minN + t*(maxN-minN)}
			}))
	}
	for n := minN; n <= maxN+spacing/2; n += spacing {
		lines = append(lines, sampleLine(zone, spacing,
			func(t float64) geo.Planar {
				return geo.Planar{Zone: zone, Easting: minE + t*(maxE-minE), Northing: n}
			}))
	}
	return lines
}

func sampleLine(zone int, spacing float64, at func(t float64) geo.Planar) Line {
	pts := make([]geo.Point, 0, lineSamples+2)
	for i := 0; i <= lineSamples+1; i++ {
		t := float64(i) / float64(lineSamples+1)
		pts = append(pts, geo.FromPlanar(at(t)))
	}
	return Line{Points: pts, SpacingMeters: spacing}
}

func (g *Generator) cellLabels(v *viewport.Viewport, zone int) []Label {
	b := v.PlanarBounds(zone, 0)
	minCol := int(math.Floor(b.MinEasting / BoundarySpacing))
	maxCol := int(math.Floor(b.MaxEasting / BoundarySpacing))
	minRow := int(math.Floor(b.MinNorthing / BoundarySpacing))
	maxRow := int(math.Floor(b.MaxNorthing / BoundarySpacing))

	labels := make([]Label, 0, (maxCol-minCol+1)*(maxRow-minRow+1))
	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			labels = append(labels, g.labels.get(zone, v.Zoom/2, col, row, func() Label {
				anchor := geo.Planar{
					Zone:     zone,
					Easting:  float64(col)*BoundarySpacing + labelAnchorInset,
					Northing: float64(row)*BoundarySpacing + labelAnchorInset,
				}
				p := geo.FromPlanar(anchor)
				return Label{
					Ref:    refPrefix(zone, p.Lat),
					Cell:   geo.CellID(anchor),
					Anchor: p,
				}
			}))
		}
	}
	return labels
}

func refPrefix(zone int, lat float64) string {
	return fmt.Sprintf("%d%c", zone, geo.LatBand(lat))
}
