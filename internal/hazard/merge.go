package hazard

import (
	"math"
	"sort"

	"deepspace-navigator/internal/geometry"
)

// MergeAdjacent replaces groups of polygon zones that share an edge with the
// convex hull of the group. Edges match when both endpoints agree within
// tolerance, in either direction, and grouping is transitive.
//
// The hull covers at least the union of the group, so a merge can only
// remove routes, never open new ones. The merged zone takes the position of
// the group's first member; other hazards keep their order.
func MergeAdjacent(hazards []Hazard, tolerance float64) []Hazard {
	if len(hazards) <= 1 || tolerance < 0 {
		return hazards
	}

	var polys []int
	for i, h := range hazards {
		if _, ok := h.(*Polygon); ok {
			polys = append(polys, i)
		}
	}

	group := make(map[int]int, len(polys)) // hazard index -> group leader
	for _, i := range polys {
		if _, done := group[i]; done {
			continue
		}
		group[i] = i
		queue := []int{i}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, j := range polys {
				if _, done := group[j]; done {
					continue
				}
				if shareEdge(hazards[cur].(*Polygon), hazards[j].(*Polygon), tolerance) {
					group[j] = i
					queue = append(queue, j)
				}
			}
		}
	}

	members := make(map[int][]geometry.Point)
	sizes := make(map[int]int)
	for _, i := range polys {
		leader := group[i]
		members[leader] = append(members[leader], hazards[i].(*Polygon).Vertices...)
		sizes[leader]++
	}

	out := make([]Hazard, 0, len(hazards))
	for i, h := range hazards {
		leader, isPoly := group[i]
		switch {
		case !isPoly:
			out = append(out, h)
		case leader != i:
			// folded into the leader's hull
		case sizes[i] == 1:
			out = append(out, h)
		default:
			out = append(out, &Polygon{Vertices: convexHull(members[i])})
		}
	}
	return out
}

// shareEdge checks if two polygons share a common edge
func shareEdge(a, b *Polygon, tolerance float64) bool {
	na, nb := len(a.Vertices), len(b.Vertices)
	for i := 0; i < na; i++ {
		v1, v2 := a.Vertices[i], a.Vertices[(i+1)%na]
		for j := 0; j < nb; j++ {
			v3, v4 := b.Vertices[j], b.Vertices[(j+1)%nb]
			if (pointsEqual(v1, v3, tolerance) && pointsEqual(v2, v4, tolerance)) ||
				(pointsEqual(v1, v4, tolerance) && pointsEqual(v2, v3, tolerance)) {
				return true
			}
		}
	}
	return false
}

func pointsEqual(a, b geometry.Point, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance
}

// convexHull returns the hull in counter-clockwise order starting from the
// leftmost point, without collinear vertices (monotone chain)
func convexHull(points []geometry.Point) []geometry.Point {
	pts := make([]geometry.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b geometry.Point) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}

	hull := make([]geometry.Point, 0, 2*len(pts))
	// lower chain
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper chain
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
