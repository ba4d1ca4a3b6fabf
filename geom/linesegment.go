package geom

import (
	"fmt"
	"math"
)

const (
	// minSlopeRun is the substitute for a near-zero x displacement when
	// computing a segment slope, so near-vertical segments produce a large
	// finite slope instead of dividing by zero.
	minSlopeRun = 1e-6

	// intersectionEpsilon bounds the cross products below which two segments
	// are treated as parallel or collinear during intersection tests.
	intersectionEpsilon = 1e-10
)

// LineSegment is a directed segment from Start to End.
type LineSegment struct {
	Start Point
	End   Point
}

// NewLineSegment builds a segment from start to end.
func NewLineSegment(start, end Point) LineSegment {
	return LineSegment{Start: start, End: end}
}

// Angle returns the bearing of the segment direction, atan2 of End-Start.
func (l LineSegment) Angle() float64 {
	diff := l.End.Sub(l.Start)
	return math.Atan2(diff.Y, diff.X)
}

// Length returns the segment length.
func (l LineSegment) Length() float64 {
	return l.Start.DistTo(l.End)
}

// SquaredLength returns the squared segment length.
func (l LineSegment) SquaredLength() float64 {
	return l.Start.SquaredDistTo(l.End)
}

// Slope returns dy/dx of the segment. Runs smaller than 1e-6 in magnitude
// are substituted with 1e-6, so near-vertical segments yield a large finite
// slope whose sign follows the y displacement.
func (l LineSegment) Slope() float64 {
	diff := l.End.Sub(l.Start)
	if math.Abs(diff.X) < minSlopeRun {
		diff.X = minSlopeRun
	}
	return diff.Y / diff.X
}

// Intercept returns the y-intercept of the segment's carrying line, using
// the guarded Slope.
func (l LineSegment) Intercept() float64 {
	return l.Start.Y - l.Slope()*l.Start.X
}

// Center returns the segment midpoint.
func (l LineSegment) Center() Point {
	return l.Start.Add(l.End).Scale(0.5)
}

// UnitVector returns the unit direction from Start to End. Zero-length
// segments yield the zero vector via the guarded scalar division.
func (l LineSegment) UnitVector() Point {
	return l.End.Sub(l.Start).Div(l.Length())
}

// Intersects reports whether the two segments intersect within their bounds.
func (l LineSegment) Intersects(other LineSegment) bool {
	_, ok := l.Intersection(other)
	return ok
}

// Intersection returns the intersection point of two segments, if any.
// Collinear overlapping segments report the overlap point closest to
// l.Start along l's direction.
func (l LineSegment) Intersection(other LineSegment) (Point, bool) {
	vec1 := l.End.Sub(l.Start)
	vec2 := other.End.Sub(other.Start)
	vec3 := other.Start.Sub(l.Start)
	cross12 := vec1.Cross(vec2)
	cross31 := vec3.Cross(vec1)
	cross32 := vec3.Cross(vec2)

	if math.Abs(cross12) < intersectionEpsilon && math.Abs(cross31) < intersectionEpsilon {
		// Collinear. Project other's endpoints onto l and check the
		// parameter interval against [0, 1].
		t0 := vec3.Dot(vec1) / vec1.Dot(vec1)
		t1 := t0 + vec2.Dot(vec1)/vec1.Dot(vec1)
		opposite := vec2.Dot(vec1) < 0
		if (!opposite && (t0 > 1 || t1 < 0)) || (opposite && (t1 > 1 || t0 < 0)) {
			return Point{}, false
		}
		// The overlap is a sub-segment; report its start.
		return l.Start.Add(vec1.Scale(math.Max(0, math.Min(t0, t1)))), true
	}

	if math.Abs(cross12) < intersectionEpsilon && math.Abs(cross31) > intersectionEpsilon {
		// Parallel, non-intersecting.
		return Point{}, false
	}

	t := cross32 / cross12
	u := cross31 / cross12
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return l.Start.Add(vec1.Scale(t)), true
}

// ClosestPointTo returns the point on the segment nearest to p.
func (l LineSegment) ClosestPointTo(p Point) Point {
	return ProjectPointOnSegment(l.Start, l.End, p, true)
}

// MinDistTo returns the distance from p to the nearest point on the segment.
func (l LineSegment) MinDistTo(p Point) float64 {
	return p.DistTo(l.ClosestPointTo(p))
}

// SquaredMinDistTo returns the squared distance from p to the nearest point
// on the segment.
func (l LineSegment) SquaredMinDistTo(p Point) float64 {
	return SquaredDistToSegment(l.Start, l.End, p, true)
}

// ContainsPoint reports whether p lies on the segment within
// PointEqualityTolerance.
func (l LineSegment) ContainsPoint(p Point) bool {
	return l.MinDistTo(p) < PointEqualityTolerance
}

func (l LineSegment) String() string {
	return fmt.Sprintf("%v -> %v", l.Start, l.End)
}
