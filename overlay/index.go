package overlay

import (
	"github.com/dhconnelly/rtreego"
)

const (
	indexDimensions  = 2
	indexMinChildren = 25
	indexMaxChildren = 50
	pointTolerance   = 0.0001
)

type labelItem struct {
	label LabelPoint
	rect  *rtreego.Rect
}

func (it *labelItem) Bounds() *rtreego.Rect { return it.rect }

// Index is an R-tree over label anchor points, queried per frame with the
// visible geographic envelope.
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex builds the label index.
func NewIndex(labels []LabelPoint) *Index {
	tree := rtreego.NewTree(indexDimensions, indexMinChildren, indexMaxChildren)
	for _, l := range labels {
		pt := rtreego.Point{l.Pos.Lat, l.Pos.Lon}
		tree.Insert(&labelItem{label: l, rect: pt.ToRect(pointTolerance)})
	}
	return &Index{tree: tree}
}

// Search returns the labels within the lat/lon box.
func (ix *Index) Search(minLat, minLon, maxLat, maxLon float64) []LabelPoint {
	if maxLat < minLat || maxLon < minLon {
		return nil
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{minLat, minLon},
		[]float64{maxLat - minLat + pointTolerance, maxLon - minLon + pointTolerance},
	)
	if err != nil {
		return nil
	}
	hits := ix.tree.SearchIntersect(rect)
	out := make([]LabelPoint, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*labelItem).label)
	}
	return out
}
