package geom

import (
	"fmt"
	"math"
)

// Point3 is a position in 3D space. The fitting algorithms in this module
// are strictly planar; Point3 exists so callers that carry elevation (for
// example multi-ring sensors) can share the primitive layer before
// projecting down to Point.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scale returns p scaled by f.
func (p Point3) Scale(f float64) Point3 {
	return Point3{X: p.X * f, Y: p.Y * f, Z: p.Z * f}
}

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product of p and q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Magnitude returns the Euclidean length of p viewed as a vector.
func (p Point3) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// DistTo returns the Euclidean distance between p and q.
func (p Point3) DistTo(q Point3) float64 {
	return p.Sub(q).Magnitude()
}

// XY projects p onto the sensor plane, discarding elevation.
func (p Point3) XY() Point {
	return Point{X: p.X, Y: p.Y}
}

func (p Point3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", p.X, p.Y, p.Z)
}
