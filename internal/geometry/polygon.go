package geometry

import (
	"math"
	"sort"
)

// Bounds returns the axis-aligned bounding box of a set of points
func Bounds(points []Point) (min, max Point) {
	if len(points) == 0 {
		return Point{}, Point{}
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// polygonEdges iterates the closed ring of edges of a polygon
func polygonEdges(vertices []Point, fn func(edge Segment) bool) {
	n := len(vertices)
	for i := 0; i < n; i++ {
		if !fn(Segment{A: vertices[i], B: vertices[(i+1)%n]}) {
			return
		}
	}
}

// PointOnPolygonBoundary checks if p lies on one of the polygon's edges
func PointOnPolygonBoundary(p Point, vertices []Point) bool {
	on := false
	polygonEdges(vertices, func(edge Segment) bool {
		if edge.DistanceTo(p) <= Epsilon {
			on = true
			return false
		}
		return true
	})
	return on
}

// PointInPolygon checks if p lies in the open interior of the polygon using
// ray casting. Points on the boundary are not inside.
func PointInPolygon(p Point, vertices []Point) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}
	if PointOnPolygonBoundary(p, vertices) {
		return false
	}

	count := 0
	for i := 0; i < n; i++ {
		v1 := vertices[i]
		v2 := vertices[(i+1)%n]

		// Check if the ray from p to the right crosses the edge
		if (v1.Y > p.Y) != (v2.Y > p.Y) {
			slope := (p.X-v1.X)*(v2.Y-v1.Y) - (v2.X-v1.X)*(p.Y-v1.Y)
			if v2.Y > v1.Y {
				if slope < 0 {
					count++
				}
			} else {
				if slope > 0 {
					count++
				}
			}
		}
	}

	return count%2 == 1
}

// SegmentCrossesPolygon reports whether some piece of positive length of the
// segment lies in the polygon's open interior. Contact with the boundary alone
// (a shared vertex, a touching point, running along an edge) is not a crossing.
func SegmentCrossesPolygon(s Segment, vertices []Point) bool {
	if len(vertices) < 3 || s.Degenerate() {
		return false
	}

	// Split the segment at every boundary contact; each piece is then either
	// wholly inside, wholly outside or on the boundary.
	params := []float64{0, 1}
	polygonEdges(vertices, func(edge Segment) bool {
		params = append(params, ContactParams(s, edge)...)
		return true
	})
	sort.Float64s(params)

	length := s.Length()
	for i := 0; i+1 < len(params); i++ {
		t0, t1 := params[i], params[i+1]
		if (t1-t0)*length <= Epsilon {
			continue
		}
		if PointInPolygon(s.At((t0+t1)/2), vertices) {
			return true
		}
	}
	return false
}

// SignedArea returns the shoelace area; positive for counter-clockwise rings
func SignedArea(vertices []Point) float64 {
	area := 0.0
	n := len(vertices)
	for i := 0; i < n; i++ {
		area += vertices[i].Cross(vertices[(i+1)%n])
	}
	return area / 2
}
