package geom

import "math"

const (
	// flatSlopeEpsilon is the slope magnitude below which a line is treated
	// as horizontal when constructing its perpendicular; the perpendicular
	// slope is substituted with 1e8 rather than dividing by zero.
	flatSlopeEpsilon = 1e-8

	// perpendicularSlopeSubstitute replaces the perpendicular slope of a
	// near-horizontal line.
	perpendicularSlopeSubstitute = 1e8

	// minProjectionLengthSq is the squared segment length below which a
	// two-point projection collapses to the segment start.
	minProjectionLengthSq = 1e-10
)

// PerpendicularLineAt returns the slope and intercept of the line through p
// perpendicular to y = m*x + c. Near-horizontal input slopes substitute a
// steep perpendicular slope instead of dividing by zero.
func PerpendicularLineAt(m, c float64, p Point) (pm, pc float64) {
	if math.Abs(m) < flatSlopeEpsilon {
		pm = perpendicularSlopeSubstitute
	} else {
		pm = -1 / m
	}
	pc = p.Y - pm*p.X
	return pm, pc
}

// ProjectPointOnLine returns the foot of the perpendicular from p onto the
// line y = m*x + c, computed by intersecting the line with its perpendicular
// through p.
func ProjectPointOnLine(m, c float64, p Point) Point {
	pm, pc := PerpendicularLineAt(m, c, p)
	x := (pc - c) / (m - pm)
	return Point{X: x, Y: m*x + c}
}

// ProjectPointOnSegment projects p onto the line through a and b. When clamp
// is true the projection is limited to the segment between them. A segment
// shorter than the degeneracy guard projects everything onto a.
func ProjectPointOnSegment(a, b, p Point, clamp bool) Point {
	lengthSq := a.SquaredDistTo(b)
	if lengthSq < minProjectionLengthSq {
		return a
	}
	lineVec := b.Sub(a)
	t := p.Sub(a).Dot(lineVec) / lengthSq
	if clamp {
		t = Clip(t, 1, 0)
	}
	return a.Add(lineVec.Scale(t))
}

// SquaredDistToLine returns the squared distance from p to the line
// y = m*x + c.
func SquaredDistToLine(m, c float64, p Point) float64 {
	return p.SquaredDistTo(ProjectPointOnLine(m, c, p))
}

// SquaredDistToSegment returns the squared distance from p to the line
// through a and b, clamped to the segment when clamp is true.
func SquaredDistToSegment(a, b, p Point, clamp bool) float64 {
	return p.SquaredDistTo(ProjectPointOnSegment(a, b, p, clamp))
}

// ProjectPointOnMajorAxis drops p onto the line y = m*x + c along the axis
// the line is less aligned with: shallow lines (|m| < 1) keep the point's X
// and take Y from the line, steep lines keep Y and solve for X. This keeps
// the projection well-conditioned for near-vertical lines.
func ProjectPointOnMajorAxis(m, c float64, p Point) Point {
	if majorAxisX(m) {
		return Point{X: p.X, Y: m*p.X + c}
	}
	return Point{X: (p.Y - c) / m, Y: p.Y}
}

// majorAxisX reports whether a line with slope m is more aligned with the X
// axis than the Y axis.
func majorAxisX(m float64) bool {
	return math.Abs(m) < 1
}
