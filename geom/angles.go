package geom

import "math"

// windingCollinearTolerance is the default angular tolerance below which
// three points are treated as collinear by WindingOrder.
const windingCollinearTolerance = 1e-6

// WindingDirection classifies the turn described by three consecutive points.
type WindingDirection int

const (
	// WindingCollinear means the three points lie on one line within tolerance.
	WindingCollinear WindingDirection = iota
	// WindingClockwise means the interior angle at the middle point turns clockwise.
	WindingClockwise
	// WindingCounterClockwise means the turn is counter-clockwise.
	WindingCounterClockwise
)

func (w WindingDirection) String() string {
	switch w {
	case WindingClockwise:
		return "clockwise"
	case WindingCounterClockwise:
		return "counter-clockwise"
	default:
		return "collinear"
	}
}

// WrapAngle normalises an angle to [-pi, pi]. Inputs beyond a full turn are
// reduced first, so arbitrarily large magnitudes are fine.
func WrapAngle(raw float64) float64 {
	const twoPi = 2 * math.Pi
	angle := raw
	if math.Abs(angle) > twoPi {
		angle -= math.Floor(angle/twoPi) * twoPi
	}
	if angle > math.Pi {
		angle -= twoPi
	} else if angle < -math.Pi {
		angle += twoPi
	}
	return angle
}

// ShortestAngleDiff returns the signed smallest rotation from b to a,
// in [-pi, pi].
func ShortestAngleDiff(a, b float64) float64 {
	return math.Atan2(math.Sin(a-b), math.Cos(a-b))
}

// PerpendicularAngle returns the angle rotated a quarter turn
// counter-clockwise, wrapped to [-pi, pi].
func PerpendicularAngle(angle float64) float64 {
	perp := angle + math.Pi/2
	if perp > math.Pi {
		perp -= 2 * math.Pi
	}
	return perp
}

// ReverseAngle returns the opposite heading, wrapped to [-pi, pi].
func ReverseAngle(angle float64) float64 {
	rev := angle + math.Pi
	if rev > math.Pi {
		rev -= 2 * math.Pi
	}
	return rev
}

// AngleWithinBounds reports whether angle lies between the two bounds,
// inclusive. The bounds may be given in either order; no wraparound across
// +-pi is applied.
func AngleWithinBounds(angle, max, min float64) bool {
	if min < max {
		return angle >= min && angle <= max
	}
	return angle <= min && angle >= max
}

// AngleBetweenPoints returns the signed angle at vertex b formed by the rays
// b->c and b->a, wrapped to [-pi, pi].
func AngleBetweenPoints(a, b, c Point) float64 {
	ba := a.Sub(b)
	bc := c.Sub(b)
	return WrapAngle(math.Atan2(bc.Y, bc.X) - math.Atan2(ba.Y, ba.X))
}

// WindingOrder classifies the turn a->b->c using the default collinearity
// tolerance.
func WindingOrder(a, b, c Point) WindingDirection {
	return WindingOrderTol(a, b, c, windingCollinearTolerance)
}

// WindingOrderTol is WindingOrder with an explicit angular tolerance.
// Turns whose vertex angle is within tolerance of 0 or +-pi are collinear.
func WindingOrderTol(a, b, c Point, tolerance float64) WindingDirection {
	angle := AngleBetweenPoints(a, b, c)
	collinear := math.Abs(angle) <= tolerance ||
		math.Abs(math.Abs(angle)-math.Pi) <= tolerance
	switch {
	case collinear:
		return WindingCollinear
	case angle > 0:
		return WindingClockwise
	default:
		return WindingCounterClockwise
	}
}

// PerpendicularPoints samples points on the line through the pose position
// perpendicular to the pose heading. Points are emitted in symmetric pairs
// at spacing step on either side, strictly closer than maxDist. The pose
// position itself is not included.
func PerpendicularPoints(pose Pose, maxDist, step float64) []Point {
	perp := PerpendicularAngle(pose.Theta)
	unit := Point{X: math.Cos(perp), Y: math.Sin(perp)}
	at := pose.Position()
	var pts []Point
	for dist := step; dist < maxDist; dist += step {
		offset := unit.Scale(dist)
		pts = append(pts, at.Add(offset), at.Sub(offset))
	}
	return pts
}
