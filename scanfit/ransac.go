package scanfit

import (
	"math"
	"math/rand"

	"github.com/banshee-data/scangeom/geom"
)

// Default RANSAC parameters.
const (
	DefaultRANSACDelta      = 0.2 // meters
	DefaultRANSACIterations = 10
)

// ransacSlopeEpsilon substitutes for the slope denominator when the winning
// sample pair shares an x coordinate.
const ransacSlopeEpsilon = 1e-8

// segmentSentinel is the initial endpoint bound for segment extent scans.
// Only qualifying inliers overwrite it; with no inliers it passes through
// to the returned segment.
const segmentSentinel = 1e6

// RANSACParams contains parameters for the RANSAC line and circle fitters.
// A nil Rand samples from the shared process-wide source.
type RANSACParams struct {
	Delta      float64 // Inlier distance in meters
	Iterations int     // Sampling trial budget
	Rand       *rand.Rand
}

// DefaultRANSACParams returns default RANSAC parameters.
func DefaultRANSACParams() RANSACParams {
	return RANSACParams{
		Delta:      DefaultRANSACDelta,
		Iterations: DefaultRANSACIterations,
	}
}

func (p RANSACParams) intn(n int) int {
	if p.Rand != nil {
		return p.Rand.Intn(n)
	}
	return rand.Intn(n)
}

// FitLineRANSAC fits an infinite line y = mx + c by drawing random point
// pairs and counting points within Delta perpendicular distance of each
// candidate. Pairs are drawn with replacement, so a duplicate draw forms a
// degenerate candidate that simply scores low. The best pair seen wins, first
// found on ties. The returned score is the winning inlier fraction in [0, 1].
// Fewer than two points returns m=0, c=0, score 0.
func FitLineRANSAC(points []geom.Point, params RANSACParams) (m, c, score float64) {
	if params.Delta <= 0 {
		panic("scanfit: RANSAC delta must be positive")
	}
	n := len(points)
	if n < 2 {
		return 0, 0, 0
	}

	deltaSq := params.Delta * params.Delta
	bestFirst, bestSecond := 0, n-1
	maxCount := 0

	for iter := 0; iter < params.Iterations; iter++ {
		first := params.intn(n)
		second := params.intn(n)

		count := 0
		for _, pt := range points {
			if geom.SquaredDistToSegment(points[first], points[second], pt, false) < deltaSq {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
			bestFirst, bestSecond = first, second
			Tracef("FitLineRANSAC: iter %d new best pair (%d, %d) count %d", iter, first, second, count)
		}
	}

	run := points[bestFirst].X - points[bestSecond].X
	if math.Abs(run) < ransacSlopeEpsilon {
		run = ransacSlopeEpsilon
	}
	m = (points[bestFirst].Y - points[bestSecond].Y) / run
	c = points[bestFirst].Y - m*points[bestFirst].X
	return m, c, float64(maxCount) / float64(n)
}

// FitLineSegmentRANSAC fits a line by RANSAC and bounds it to its visible
// extent: among the points within Delta of the line, the extremes along the
// line's major axis are projected onto the line to form the segment
// endpoints. The major axis is x when |slope| < 1, y otherwise. If no point
// qualifies the sentinel endpoints (+-1e6) pass through uncorrected.
func FitLineSegmentRANSAC(points []geom.Point, params RANSACParams) (geom.LineSegment, float64) {
	m, c, score := FitLineRANSAC(points, params)

	deltaSq := params.Delta * params.Delta
	seg := geom.LineSegment{
		Start: geom.Point{X: segmentSentinel, Y: segmentSentinel},
		End:   geom.Point{X: -segmentSentinel, Y: -segmentSentinel},
	}
	majorX := math.Abs(m) < 1

	for _, pt := range points {
		if geom.SquaredDistToLine(m, c, pt) >= deltaSq {
			continue
		}
		if majorX {
			if pt.X < seg.Start.X {
				seg.Start = geom.ProjectPointOnMajorAxis(m, c, pt)
			}
			if pt.X > seg.End.X {
				seg.End = geom.ProjectPointOnMajorAxis(m, c, pt)
			}
		} else {
			if pt.Y < seg.Start.Y {
				seg.Start = geom.ProjectPointOnMajorAxis(m, c, pt)
			}
			if pt.Y > seg.End.Y {
				seg.End = geom.ProjectPointOnMajorAxis(m, c, pt)
			}
		}
	}

	if seg.Start.X == segmentSentinel && seg.Start.Y == segmentSentinel {
		Opsf("FitLineSegmentRANSAC: no points within %.3f of the fitted line, sentinel endpoints returned", params.Delta)
	}
	return seg, score
}
