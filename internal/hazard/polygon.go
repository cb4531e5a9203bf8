package hazard

import (
	"fmt"

	"github.com/paulmach/orb"

	"deepspace-navigator/internal/geometry"
)

// Polygon is an impassable zone bounded by a simple closed polygon
type Polygon struct {
	Vertices []geometry.Point
}

// NewPolygon creates a polygon zone. A trailing vertex repeating the first
// one (GeoJSON style closed ring) is dropped.
func NewPolygon(vertices []geometry.Point) *Polygon {
	vs := make([]geometry.Point, len(vertices))
	copy(vs, vertices)
	if n := len(vs); n > 1 && vs[0].Equal(vs[n-1]) {
		vs = vs[:n-1]
	}
	return &Polygon{Vertices: vs}
}

func (p *Polygon) Kind() Kind { return KindPolygon }

// BoundarySamples returns the polygon's own vertices; density is ignored
func (p *Polygon) BoundarySamples(SampleConfig) []geometry.Point {
	out := make([]geometry.Point, len(p.Vertices))
	copy(out, p.Vertices)
	return out
}

func (p *Polygon) Bound() orb.Bound {
	return p.Ring().Bound()
}

// Ring converts the vertices into a closed orb ring
func (p *Polygon) Ring() orb.Ring {
	r := make(orb.Ring, 0, len(p.Vertices)+1)
	for _, v := range p.Vertices {
		r = append(r, orb.Point{v.X, v.Y})
	}
	if len(r) > 0 {
		r = append(r, r[0])
	}
	return r
}

func (p *Polygon) Validate() error {
	distinct := make(map[geometry.Key]struct{}, len(p.Vertices))
	for i, v := range p.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d is not finite", ErrInvalidHazard, i)
		}
		distinct[v.Key()] = struct{}{}
	}
	if len(distinct) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 distinct vertices, got %d", ErrInvalidHazard, len(distinct))
	}
	return nil
}

// Contains reports whether q lies in the open interior
func (p *Polygon) Contains(q geometry.Point) bool {
	return geometry.PointInPolygon(q, p.Vertices)
}

func (p *Polygon) sealed() {}
