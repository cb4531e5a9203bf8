package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for approximate point equality
const Epsilon = 1e-6

// Point represents a position (or a 2D vector) on the plane
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + other
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale multiplies both coordinates by f
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Div divides both coordinates by f
func (p Point) Div(f float64) Point {
	return Point{X: p.X / f, Y: p.Y / f}
}

// Dot returns the dot product of p and other
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the z component of the cross product of p and other
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

// Norm returns the length of p seen as a vector
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared avoids the square root when only comparisons are needed
func (p Point) DistanceSquared(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Bearing returns the direction from p towards other in radians, in (-π, π]
func (p Point) Bearing(other Point) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Shifted moves p by distance along bearing
func (p Point) Shifted(distance, bearing float64) Point {
	return Point{
		X: p.X + distance*math.Cos(bearing),
		Y: p.Y + distance*math.Sin(bearing),
	}
}

// Equal compares two points within Epsilon on each axis
func (p Point) Equal(other Point) bool {
	return math.Abs(p.X-other.X) <= Epsilon && math.Abs(p.Y-other.Y) <= Epsilon
}

// IsFinite reports whether neither coordinate is NaN or infinite
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Key is a point snapped to the Epsilon grid. Two points with the same Key
// are treated as the same graph node.
type Key struct {
	X, Y int64
}

// Key canonicalizes p onto the Epsilon grid
func (p Point) Key() Key {
	return Key{
		X: int64(math.Round(p.X / Epsilon)),
		Y: int64(math.Round(p.Y / Epsilon)),
	}
}

// Distance is the package-level form of Point.Distance
func Distance(a, b Point) float64 {
	return a.Distance(b)
}

// DistanceSquared is the package-level form of Point.DistanceSquared
func DistanceSquared(a, b Point) float64 {
	return a.DistanceSquared(b)
}

// Bearing is the package-level form of Point.Bearing
func Bearing(a, b Point) float64 {
	return a.Bearing(b)
}

// PointShifted is the package-level form of Point.Shifted
func PointShifted(origin Point, distance, bearing float64) Point {
	return origin.Shifted(distance, bearing)
}

// AngleBetween returns the unsigned angle between vectors u and v, in [0, π].
// Zero vectors yield 0.
func AngleBetween(u, v Point) float64 {
	nu, nv := u.Norm(), v.Norm()
	if nu == 0 || nv == 0 {
		return 0
	}
	c := u.Dot(v) / (nu * nv)
	// clamp rounding noise before acos
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// PathLength sums the lengths of consecutive legs
func PathLength(path []Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += path[i].Distance(path[i+1])
	}
	return total
}
