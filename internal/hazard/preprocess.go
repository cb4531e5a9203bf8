package hazard

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"deepspace-navigator/internal/geometry"
)

// DropContained removes polygon zones that lie entirely inside another polygon
// zone. The inner zone adds waypoints that can never be reached and legality
// checks that can never fail first. Other hazards pass through unchanged and
// the relative order of the survivors is kept.
func DropContained(hazards []Hazard) []Hazard {
	if len(hazards) <= 1 {
		return hazards
	}

	contained := make([]bool, len(hazards))
	for i, hi := range hazards {
		pi, ok := hi.(*Polygon)
		if !ok || contained[i] {
			continue
		}
		for j, hj := range hazards {
			pj, ok := hj.(*Polygon)
			if !ok || i == j || contained[j] {
				continue
			}
			if isPolygonContainedIn(pi, pj) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]Hazard, 0, len(hazards))
	for i, h := range hazards {
		if !contained[i] {
			result = append(result, h)
		}
	}
	return result
}

// isPolygonContainedIn checks if polygon a is fully contained within polygon b
func isPolygonContainedIn(a, b *Polygon) bool {
	if len(a.Vertices) == 0 || len(b.Vertices) < 3 {
		return false
	}

	// Quick bounding box check first
	ab, bb := a.Bound(), b.Bound()
	if ab.Min[0] < bb.Min[0] || ab.Min[1] < bb.Min[1] || ab.Max[0] > bb.Max[0] || ab.Max[1] > bb.Max[1] {
		return false
	}

	ring := b.Ring()
	for _, v := range a.Vertices {
		if !planar.RingContains(ring, toOrb(v)) {
			return false
		}
	}
	// Vertices inside a concave container do not rule out edges leaving it
	n := len(a.Vertices)
	for i := 0; i < n; i++ {
		edge := geometry.Seg(a.Vertices[i], a.Vertices[(i+1)%n])
		if !planar.RingContains(ring, toOrb(edge.Midpoint())) {
			return false
		}
	}
	return true
}

func toOrb(p geometry.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// Simplify reduces the vertex count of polygon zones with the Douglas-Peucker
// algorithm. Zones that would drop below 3 vertices are kept as they are.
// Simplification can move the boundary inward by up to epsilon, so it is only
// meant for dense imported outlines.
func Simplify(hazards []Hazard, epsilon float64) []Hazard {
	if epsilon <= 0 {
		return hazards
	}
	out := make([]Hazard, len(hazards))
	for i, h := range hazards {
		p, ok := h.(*Polygon)
		if !ok || len(p.Vertices) <= 3 {
			out[i] = h
			continue
		}
		// Close the ring so the closing edge is simplified too, then reopen it
		closed := append(append([]geometry.Point{}, p.Vertices...), p.Vertices[0])
		simplified := douglasPeucker(closed, epsilon)
		simplified = simplified[:len(simplified)-1]
		if len(simplified) < 3 {
			out[i] = h
			continue
		}
		out[i] = &Polygon{Vertices: simplified}
	}
	return out
}

// douglasPeucker implements the Douglas-Peucker line simplification algorithm
func douglasPeucker(points []geometry.Point, epsilon float64) []geometry.Point {
	if len(points) <= 2 {
		return points
	}

	// Find the point with maximum distance from the chord between first and last
	dmax := 0.0
	index := 0
	end := len(points) - 1
	chord := geometry.Seg(points[0], points[end])

	for i := 1; i < end; i++ {
		d := chordDistance(chord, points[i])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax > epsilon {
		left := douglasPeucker(points[0:index+1], epsilon)
		right := douglasPeucker(points[index:], epsilon)

		result := make([]geometry.Point, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return []geometry.Point{points[0], points[end]}
}

// chordDistance falls back to point distance when the chord collapses, which
// happens for the closed ring's first pass
func chordDistance(chord geometry.Segment, p geometry.Point) float64 {
	if chord.Degenerate() {
		return p.Distance(chord.A)
	}
	return math.Abs(chord.LineDistanceTo(p))
}
