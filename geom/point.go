// Package geom provides planar geometric primitives for 2D range-sensor
// processing: points, poses, rigid transforms, line segments, circles,
// polylines, and free-standing helpers for projections, angle arithmetic and
// Bezier splines.
//
// All types are small value types with float64 fields, distances in meters
// and angles in radians. Operations never panic: division-like steps clamp
// their denominators, so results stay finite for finite inputs.
package geom

import (
	"fmt"
	"math"
)

const (
	// PointEqualityTolerance is the distance below which two points compare
	// equal via Point.Equal. Range sensors do not resolve below a millimeter.
	PointEqualityTolerance = 1e-3

	// minScalarDivisor replaces near-zero divisors in Point.Div so scaling by
	// a degenerate factor stays finite.
	minScalarDivisor = 1e-9
)

// Point is a position (or free vector) in the sensor plane.
type Point struct {
	X float64
	Y float64
}

// Vec2 is a free 2D vector. It shares the representation and operations of
// Point; the alias only documents intent at call sites.
type Vec2 = Point

// PointFromPolar converts a polar coordinate (range, bearing) to Cartesian.
func PointFromPolar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Div returns p scaled by 1/f. Divisors with magnitude below 1e-9 are
// treated as 1e-9 so the result stays finite.
func (p Point) Div(f float64) Point {
	if math.Abs(f) < minScalarDivisor {
		f = minScalarDivisor
	}
	return Point{X: p.X / f, Y: p.Y / f}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Magnitude returns the Euclidean length of p viewed as a vector.
func (p Point) Magnitude() float64 {
	return math.Hypot(p.X, p.Y)
}

// Unit returns the unit vector in the direction of p. The zero vector is
// returned unchanged.
func (p Point) Unit() Point {
	mag := p.Magnitude()
	if mag == 0 {
		return p
	}
	return Point{X: p.X / mag, Y: p.Y / mag}
}

// Angle returns the bearing of p from the origin, atan2(Y, X).
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// DistTo returns the Euclidean distance between p and q.
func (p Point) DistTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// SquaredDistTo returns the squared Euclidean distance between p and q.
// Cheaper than DistTo when only comparisons are needed.
func (p Point) SquaredDistTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Equal reports whether p and q are within PointEqualityTolerance of each
// other.
func (p Point) Equal(q Point) bool {
	return p.DistTo(q) < PointEqualityTolerance
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}
