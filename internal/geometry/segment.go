package geometry

import "math"

// Segment represents a line segment between two points
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{A: a, B: b}
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Direction returns B - A
func (s Segment) Direction() Point {
	return s.B.Sub(s.A)
}

// Length returns the Euclidean length of the segment
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Degenerate reports whether both endpoints coincide within Epsilon
func (s Segment) Degenerate() bool {
	return s.A.Equal(s.B)
}

// At returns the point A + t·(B - A)
func (s Segment) At(t float64) Point {
	return s.A.Add(s.Direction().Scale(t))
}

// Midpoint returns the point halfway between A and B
func (s Segment) Midpoint() Point {
	return s.At(0.5)
}

// Reversed swaps the endpoints
func (s Segment) Reversed() Segment {
	return Segment{A: s.B, B: s.A}
}

// Project returns the parameter of the orthogonal projection of p onto the
// supporting line, unclamped. Degenerate segments project everything to 0.
func (s Segment) Project(p Point) float64 {
	d := s.Direction()
	dd := d.Dot(d)
	if dd == 0 {
		return 0
	}
	return p.Sub(s.A).Dot(d) / dd
}

// ClosestPoint returns the point of the segment nearest to p
func (s Segment) ClosestPoint(p Point) Point {
	t := math.Max(0, math.Min(1, s.Project(p)))
	return s.At(t)
}

// DistanceTo returns the distance from p to the nearest point of the segment
func (s Segment) DistanceTo(p Point) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// LineDistanceTo returns the distance from p to the infinite supporting line
func (s Segment) LineDistanceTo(p Point) float64 {
	d := s.Direction()
	n := d.Norm()
	if n == 0 {
		return p.Distance(s.A)
	}
	return math.Abs(d.Cross(p.Sub(s.A))) / n
}

// direction calculates the cross product to determine orientation of c
// relative to the directed line a→b
func direction(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment checks if point q lies within the bounding box of segment pr
func onSegment(p, r, q Point) bool {
	return q.X <= math.Max(p.X, r.X)+Epsilon && q.X >= math.Min(p.X, r.X)-Epsilon &&
		q.Y <= math.Max(p.Y, r.Y)+Epsilon && q.Y >= math.Min(p.Y, r.Y)-Epsilon
}

// SegmentIntersectsSegment checks if two segments share at least one point,
// touching endpoints included
func SegmentIntersectsSegment(s1, s2 Segment) bool {
	p1, p2 := s1.A, s1.B
	p3, p4 := s2.A, s2.B

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Touching and collinear cases
	if s2.DistanceTo(p1) <= Epsilon || s2.DistanceTo(p2) <= Epsilon {
		return true
	}
	if s1.DistanceTo(p3) <= Epsilon || s1.DistanceTo(p4) <= Epsilon {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}

	return false
}

// ContactParams returns the parameters along s at which it meets other,
// clamped to [0, 1]. A proper crossing yields one value; a collinear overlap
// yields the parameters of the overlap's ends.
func ContactParams(s, other Segment) []float64 {
	d := s.Direction()
	f := other.Direction()
	length := d.Norm()
	if length == 0 {
		return nil
	}
	tol := Epsilon / length

	var params []float64
	add := func(t float64) {
		if t >= -tol && t <= 1+tol {
			params = append(params, math.Max(0, math.Min(1, t)))
		}
	}

	// Endpoints of other lying on s (touches, collinear overlaps)
	for _, q := range [2]Point{other.A, other.B} {
		if s.DistanceTo(q) <= Epsilon {
			add(s.Project(q))
		}
	}
	// Endpoints of s lying on other
	for i, q := range [2]Point{s.A, s.B} {
		if other.DistanceTo(q) <= Epsilon {
			add(float64(i))
		}
	}

	denom := d.Cross(f)
	if math.Abs(denom) <= 1e-12*length*f.Norm() {
		return params
	}
	w := other.A.Sub(s.A)
	t := w.Cross(f) / denom
	u := w.Cross(d) / denom
	otherTol := Epsilon / math.Max(f.Norm(), Epsilon)
	if u >= -otherTol && u <= 1+otherTol {
		add(t)
	}
	return params
}

// LineCircleIntersections returns the parameters t1 <= t2 along the supporting
// line of s where it meets the circle. ok is false when the line misses the
// circle or only touches it.
func LineCircleIntersections(s Segment, center Point, radius float64) (t1, t2 float64, ok bool) {
	d := s.Direction()
	a := d.Dot(d)
	if a == 0 {
		return 0, 0, false
	}
	f := s.A.Sub(center)
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius
	disc := b*b - 4*a*c
	if disc <= 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-b - sq) / (2 * a), (-b + sq) / (2 * a), true
}

// SegmentIntersectsDisc reports whether the segment enters the open disc.
// Closest approach equal to the radius (within Epsilon) counts as touching
// and is not an intersection.
func SegmentIntersectsDisc(s Segment, center Point, radius float64) bool {
	return s.DistanceTo(center) < radius-Epsilon
}
