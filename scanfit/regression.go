package scanfit

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/scangeom/geom"
)

// regressionDenominatorFloor substitutes for the least-squares denominator
// when the points have no spread along the independent axis.
const regressionDenominatorFloor = 1e-8

// FitLineRegression fits a least-squares line through the points and returns
// it bounded to a segment, along with the sum of squared distances from each
// point to that segment. The dependent axis follows the extent of the range:
// when the points span more in y than x the fit computes x as a function of
// y, avoiding runaway slopes on near-vertical walls. With ordered set, the
// segment endpoints project from the first and last input points; otherwise
// they project from the coordinate extrema. Fewer than two points returns a
// zero segment and error 0.
func FitLineRegression(points []geom.Point, ordered bool) (geom.LineSegment, float64) {
	n := len(points)
	if n < 2 {
		return geom.LineSegment{}, 0
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, pt := range points {
		xs[i] = pt.X
		ys[i] = pt.Y
	}
	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)

	var startPt, endPt geom.Point
	if ordered {
		startPt = points[0]
		endPt = points[n-1]
	} else {
		startPt = geom.Point{X: floats.Min(xs), Y: floats.Min(ys)}
		endPt = geom.Point{X: floats.Max(xs), Y: floats.Max(ys)}
	}

	swapAxis := math.Abs(endPt.X-startPt.X) < math.Abs(endPt.Y-startPt.Y)

	var numerator, denominator float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		if swapAxis {
			denominator += dy * dy
		} else {
			denominator += dx * dx
		}
	}
	if denominator < regressionDenominatorFloor {
		denominator = regressionDenominatorFloor
	}
	slope := numerator / denominator

	var seg geom.LineSegment
	if swapAxis {
		// x as a function of y.
		intercept := meanX - slope*meanY
		seg = geom.LineSegment{
			Start: geom.Point{X: slope*startPt.Y + intercept, Y: startPt.Y},
			End:   geom.Point{X: slope*endPt.Y + intercept, Y: endPt.Y},
		}
	} else {
		intercept := meanY - slope*meanX
		seg = geom.LineSegment{
			Start: geom.Point{X: startPt.X, Y: slope*startPt.X + intercept},
			End:   geom.Point{X: endPt.X, Y: slope*endPt.X + intercept},
		}
	}

	var sumSq float64
	for _, pt := range points {
		sumSq += seg.SquaredMinDistTo(pt)
	}
	return seg, sumSq
}
