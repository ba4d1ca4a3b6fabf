package geom

import (
	"fmt"
	"math"
)

// circumcircleEpsilon is the determinant magnitude below which three points
// are considered collinear and admit no circumcircle.
const circumcircleEpsilon = 1e-10

// Circle is a circle in the sensor plane.
type Circle struct {
	Center Point
	Radius float64
}

// CircleFromPoints constructs the unique circle through three points. ok is
// false when the points are collinear within tolerance, in which case the
// zero Circle is returned.
func CircleFromPoints(a, b, c Point) (Circle, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < circumcircleEpsilon {
		return Circle{}, false
	}
	aSq := a.X*a.X + a.Y*a.Y
	bSq := b.X*b.X + b.Y*b.Y
	cSq := c.X*c.X + c.Y*c.Y
	center := Point{
		X: (aSq*(b.Y-c.Y) + bSq*(c.Y-a.Y) + cSq*(a.Y-b.Y)) / d,
		Y: (aSq*(c.X-b.X) + bSq*(a.X-c.X) + cSq*(b.X-a.X)) / d,
	}
	return Circle{Center: center, Radius: center.DistTo(a)}, true
}

// PointAt returns the point on the circle at bearing theta from the center.
func (c Circle) PointAt(theta float64) Point {
	return c.Center.Add(PointFromPolar(c.Radius, theta))
}

// DistTo returns the distance from p to the circle center.
func (c Circle) DistTo(p Point) float64 {
	return c.Center.DistTo(p)
}

// ContainsPoint reports whether p lies inside or on the circle.
func (c Circle) ContainsPoint(p Point) bool {
	return c.DistTo(p) <= c.Radius
}

func (c Circle) String() string {
	return fmt.Sprintf("center %v radius %.3f", c.Center, c.Radius)
}
