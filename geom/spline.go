package geom

import "math"

// PascalTriangleRow returns row n of Pascal's triangle (n+1 binomial
// coefficients). The iterative recurrence stays in integers, so the
// coefficients are exact.
func PascalTriangleRow(n int) []int {
	if n < 0 {
		n = 0
	}
	coefficients := make([]int, 0, n+1)
	coefficients = append(coefficients, 1)
	for i := 1; i <= n; i++ {
		coefficients = append(coefficients, coefficients[len(coefficients)-1]*(n+1-i)/i)
	}
	return coefficients
}

// SplineCurvePoint evaluates the Bezier curve defined by the control points
// at parameter t in [0, 1]. coefficients must be
// PascalTriangleRow(len(controlPoints)-1); a mismatched length yields the
// zero Point. A single control point is returned as-is.
func SplineCurvePoint(controlPoints []Point, coefficients []int, t float64) Point {
	if len(controlPoints) < 2 {
		if len(controlPoints) == 1 {
			return controlPoints[0]
		}
		return Point{}
	}
	if len(coefficients) != len(controlPoints) {
		return Point{}
	}
	order := len(controlPoints) - 1
	var curvePoint Point
	for i := 0; i <= order; i++ {
		weight := float64(coefficients[i]) *
			math.Pow(1-t, float64(order-i)) *
			math.Pow(t, float64(i))
		curvePoint.X += weight * controlPoints[i].X
		curvePoint.Y += weight * controlPoints[i].Y
	}
	return curvePoint
}

// SplineCurvePoints samples numPoints points along the Bezier curve defined
// by the control points, uniformly in parameter space. The first and last
// samples are the exact first and last control points. Fewer than two
// control points or fewer than two requested samples yield nil.
func SplineCurvePoints(controlPoints []Point, numPoints int) []Point {
	if len(controlPoints) < 2 || numPoints < 2 {
		return nil
	}
	order := len(controlPoints) - 1
	coefficients := PascalTriangleRow(order)
	offset := 1.0 / float64(numPoints-1)
	curvePoints := make([]Point, 0, numPoints)
	curvePoints = append(curvePoints, controlPoints[0])
	for factor := 1; factor+1 < numPoints; factor++ {
		t := offset * float64(factor)
		curvePoints = append(curvePoints, SplineCurvePoint(controlPoints, coefficients, t))
	}
	curvePoints = append(curvePoints, controlPoints[len(controlPoints)-1])
	return curvePoints
}
