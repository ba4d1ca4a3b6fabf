package scanfit

import (
	"math"

	"github.com/banshee-data/scangeom/geom"
)

// FitCircleRANSAC fits a circle by drawing three pairwise-distinct random
// points per trial and constructing their circumcircle. Collinear triples
// produce no candidate but still consume the trial. A point is an inlier when
// its distance to the candidate centre differs from the radius by less than
// Delta. The best candidate seen wins, first found on ties. The returned
// score is the winning inlier fraction in [0, 1]. Fewer than three points
// returns a zero circle and score 0.
func FitCircleRANSAC(points []geom.Point, params RANSACParams) (geom.Circle, float64) {
	if params.Delta <= 0 {
		panic("scanfit: RANSAC delta must be positive")
	}
	n := len(points)
	if n < 3 {
		return geom.Circle{}, 0
	}

	var best geom.Circle
	maxCount := 0

	for iter := 0; iter < params.Iterations; iter++ {
		first := params.intn(n)
		second := params.intn(n)
		for second == first {
			second = params.intn(n)
		}
		third := params.intn(n)
		for third == first || third == second {
			third = params.intn(n)
		}

		candidate, ok := geom.CircleFromPoints(points[first], points[second], points[third])
		if !ok {
			continue
		}

		count := 0
		for _, pt := range points {
			if math.Abs(candidate.DistTo(pt)-candidate.Radius) < params.Delta {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
			best = candidate
			Tracef("FitCircleRANSAC: iter %d new best centre %v radius %.3f count %d",
				iter, candidate.Center, candidate.Radius, count)
		}
	}

	if maxCount == 0 {
		Opsf("FitCircleRANSAC: no circumcircle candidate in %d trials", params.Iterations)
	}
	return best, float64(maxCount) / float64(n)
}
