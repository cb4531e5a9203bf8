package legality

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
)

// minExtent keeps R-tree rectangles non-degenerate; rtreego rejects zero
// lengths. It also pads boxes so contacts within Epsilon are not filtered out.
const minExtent = 2 * geometry.Epsilon

// hazardEntry wraps a hazard for R-tree storage
type hazardEntry struct {
	hazard hazard.Hazard
	bbox   rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *hazardEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// spatialIndex answers "which hazards could a segment touch" queries
type spatialIndex struct {
	tree *rtreego.Rtree
}

func newSpatialIndex(hazards []hazard.Hazard) *spatialIndex {
	tree := rtreego.NewTree(2, 4, 16) // 2D, small fan-out: hazard counts are modest

	for _, h := range hazards {
		b := h.Bound()
		bbox, err := paddedRect(b.Min[0], b.Min[1], b.Max[0], b.Max[1])
		if err != nil {
			continue
		}
		tree.Insert(&hazardEntry{hazard: h, bbox: bbox})
	}

	return &spatialIndex{tree: tree}
}

// query returns the hazards whose extent meets the segment's extent
func (si *spatialIndex) query(s geometry.Segment) []hazard.Hazard {
	min, max := geometry.Bounds([]geometry.Point{s.A, s.B})
	bbox, err := paddedRect(min.X, min.Y, max.X, max.Y)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	hazards := make([]hazard.Hazard, 0, len(results))
	for _, item := range results {
		hazards = append(hazards, item.(*hazardEntry).hazard)
	}
	return hazards
}

func (si *spatialIndex) size() int {
	return si.tree.Size()
}

// paddedRect computes an rtreego rectangle grown by minExtent on every side
func paddedRect(minX, minY, maxX, maxY float64) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{minX - minExtent, minY - minExtent},
		[]float64{
			math.Max(maxX-minX, 0) + 2*minExtent,
			math.Max(maxY-minY, 0) + 2*minExtent,
		},
	)
}
