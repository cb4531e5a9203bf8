package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointArithmetic(t *testing.T) {
	a := Pt(2, 3)
	b := Pt(-3, 2)

	assert.Equal(t, Pt(-1, 5), a.Add(b))
	assert.Equal(t, Pt(5, 1), a.Sub(b))
	assert.Equal(t, Pt(4, 6), a.Scale(2))
	assert.Equal(t, Pt(1, 1.5), a.Div(2))
	assert.Equal(t, 0.0, a.Dot(b))
	assert.Equal(t, 13.0, a.Cross(b))
	assert.InDelta(t, math.Sqrt(13), a.Norm(), 1e-12)
	assert.InDelta(t, math.Sqrt(26), Distance(a, b), 1e-12)
	assert.InDelta(t, 26.0, DistanceSquared(a, b), 1e-12)
}

func TestBearingWrapsAcrossQuadrants(t *testing.T) {
	o := Pt(0, 0)
	assert.InDelta(t, 0, Bearing(o, Pt(1, 0)), 1e-12)
	assert.InDelta(t, math.Pi/2, Bearing(o, Pt(0, 1)), 1e-12)
	assert.InDelta(t, math.Pi, Bearing(o, Pt(-1, 0)), 1e-12)
	assert.InDelta(t, -math.Pi/2, Bearing(o, Pt(0, -1)), 1e-12)
	assert.InDelta(t, math.Atan2(2, 4), Bearing(Pt(1, 4), Pt(5, 6)), 1e-12)
}

func TestPointShifted(t *testing.T) {
	p := PointShifted(Pt(1, 1), 2, math.Pi/2)
	assert.True(t, p.Equal(Pt(1, 3)))

	q := Pt(3, -2).Shifted(5, Bearing(Pt(3, -2), Pt(6, 2)))
	assert.True(t, q.Equal(Pt(6, 2)))
}

func TestEqualAndKey(t *testing.T) {
	a := Pt(1.5, -2.25)
	assert.True(t, a.Equal(Pt(1.5+1e-7, -2.25-1e-7)))
	assert.Equal(t, a.Key(), Pt(1.5+1e-7, -2.25-1e-7).Key())

	assert.False(t, a.Equal(Pt(1.5+1e-5, -2.25)))
	assert.NotEqual(t, a.Key(), Pt(1.5+1e-5, -2.25).Key())
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 0, AngleBetween(Pt(1, 0), Pt(3, 0)), 1e-12)
	assert.InDelta(t, math.Pi, AngleBetween(Pt(1, 0), Pt(-3, 0)), 1e-12)
	assert.InDelta(t, math.Pi/2, AngleBetween(Pt(1, 0), Pt(0, 2)), 1e-12)
	assert.Equal(t, 0.0, AngleBetween(Pt(0, 0), Pt(0, 2)))
}

func TestSegmentClosestPoint(t *testing.T) {
	s := Seg(Pt(0, 0), Pt(10, 0))

	assert.Equal(t, Pt(5, 0), s.ClosestPoint(Pt(5, 3)))
	assert.Equal(t, Pt(0, 0), s.ClosestPoint(Pt(-4, 3)))
	assert.Equal(t, Pt(10, 0), s.ClosestPoint(Pt(14, -3)))
	assert.InDelta(t, 5, s.DistanceTo(Pt(-4, 3)), 1e-12)
	assert.InDelta(t, 3, s.LineDistanceTo(Pt(-4, 3)), 1e-12)
}

func TestSegmentIntersectsSegment(t *testing.T) {
	tests := []struct {
		name string
		s1   Segment
		s2   Segment
		want bool
	}{
		{"proper crossing", Seg(Pt(0, 0), Pt(4, 4)), Seg(Pt(0, 4), Pt(4, 0)), true},
		{"disjoint", Seg(Pt(0, 0), Pt(1, 1)), Seg(Pt(3, 0), Pt(4, 1)), false},
		{"shared endpoint", Seg(Pt(0, 0), Pt(1, 1)), Seg(Pt(1, 1), Pt(2, 0)), true},
		{"T junction", Seg(Pt(0, 0), Pt(4, 0)), Seg(Pt(2, 0), Pt(2, 3)), true},
		{"collinear overlap", Seg(Pt(0, 0), Pt(4, 0)), Seg(Pt(2, 0), Pt(6, 0)), true},
		{"collinear apart", Seg(Pt(0, 0), Pt(1, 0)), Seg(Pt(2, 0), Pt(3, 0)), false},
		{"parallel", Seg(Pt(0, 0), Pt(4, 0)), Seg(Pt(0, 1), Pt(4, 1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentIntersectsSegment(tt.s1, tt.s2))
			assert.Equal(t, tt.want, SegmentIntersectsSegment(tt.s2, tt.s1))
		})
	}
}

func TestLineCircleIntersections(t *testing.T) {
	s := Seg(Pt(0, 0), Pt(10, 0))

	t1, t2, ok := LineCircleIntersections(s, Pt(5, 0), 3)
	require.True(t, ok)
	assert.InDelta(t, 0.2, t1, 1e-12)
	assert.InDelta(t, 0.8, t2, 1e-12)

	_, _, ok = LineCircleIntersections(s, Pt(5, 3), 3)
	assert.False(t, ok, "tangent line only touches")

	_, _, ok = LineCircleIntersections(s, Pt(5, 5), 3)
	assert.False(t, ok)
}

func TestSegmentIntersectsDisc(t *testing.T) {
	center := Pt(5, 0)
	assert.True(t, SegmentIntersectsDisc(Seg(Pt(0, 0), Pt(10, 0)), center, 2))
	assert.False(t, SegmentIntersectsDisc(Seg(Pt(0, 2), Pt(10, 2)), center, 2), "tangent is legal")
	assert.False(t, SegmentIntersectsDisc(Seg(Pt(0, 2.5), Pt(10, 2.5)), center, 2))
	assert.False(t, SegmentIntersectsDisc(Seg(Pt(0, 0), Pt(2, 0)), center, 2), "closest approach clamps to the segment")
}

func square() []Point {
	return []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}
}

func TestPointInPolygon(t *testing.T) {
	sq := square()
	assert.True(t, PointInPolygon(Pt(2, 2), sq))
	assert.False(t, PointInPolygon(Pt(5, 2), sq))
	assert.False(t, PointInPolygon(Pt(4, 2), sq), "boundary is not interior")
	assert.False(t, PointInPolygon(Pt(0, 0), sq), "vertex is not interior")
	assert.True(t, PointOnPolygonBoundary(Pt(4, 2), sq))

	// concave "U"
	u := []Point{Pt(0, 0), Pt(6, 0), Pt(6, 6), Pt(4, 6), Pt(4, 2), Pt(2, 2), Pt(2, 6), Pt(0, 6)}
	assert.True(t, PointInPolygon(Pt(1, 4), u))
	assert.False(t, PointInPolygon(Pt(3, 4), u))
}

func TestSegmentCrossesPolygon(t *testing.T) {
	sq := square()
	u := []Point{Pt(0, 0), Pt(6, 0), Pt(6, 6), Pt(4, 6), Pt(4, 2), Pt(2, 2), Pt(2, 6), Pt(0, 6)}

	tests := []struct {
		name     string
		seg      Segment
		vertices []Point
		want     bool
	}{
		{"through the middle", Seg(Pt(-1, 2), Pt(5, 2)), sq, true},
		{"far away", Seg(Pt(10, 10), Pt(20, 12)), sq, false},
		{"along an edge", Seg(Pt(0, 0), Pt(4, 0)), sq, false},
		{"extends an edge", Seg(Pt(-2, 0), Pt(6, 0)), sq, false},
		{"enters through a vertex", Seg(Pt(-1, 5), Pt(1, 3)), sq, true},
		{"grazes a corner", Seg(Pt(-2, 2), Pt(2, -2)), sq, false},
		{"diagonal", Seg(Pt(0, 0), Pt(4, 4)), sq, true},
		{"inside", Seg(Pt(1, 1), Pt(3, 3)), sq, true},
		{"one endpoint on boundary outward", Seg(Pt(4, 2), Pt(8, 2)), sq, false},
		{"one endpoint on boundary inward", Seg(Pt(4, 2), Pt(3, 2)), sq, true},
		{"across the notch of a U", Seg(Pt(2, 6), Pt(4, 6)), u, false},
		{"down the notch", Seg(Pt(3, 7), Pt(3, 2)), u, false},
		{"through the notch floor", Seg(Pt(3, 7), Pt(3, 1)), u, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentCrossesPolygon(tt.seg, tt.vertices))
			assert.Equal(t, tt.want, SegmentCrossesPolygon(tt.seg.Reversed(), tt.vertices))
		})
	}
}

func TestSignedAreaAndBounds(t *testing.T) {
	assert.InDelta(t, 16, SignedArea(square()), 1e-12)
	min, max := Bounds(square())
	assert.Equal(t, Pt(0, 0), min)
	assert.Equal(t, Pt(4, 4), max)
}

func TestPathLength(t *testing.T) {
	assert.InDelta(t, 7, PathLength([]Point{Pt(0, 0), Pt(3, 4), Pt(5, 4)}), 1e-12)
	assert.Equal(t, 0.0, PathLength(nil))
}
