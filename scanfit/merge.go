package scanfit

import (
	"math"

	"github.com/banshee-data/scangeom/geom"
)

// Default segment merge parameters.
const (
	DefaultMergeDistThreshold  = 0.2 // meters
	DefaultMergeAngleThreshold = 0.2 // radians
	DefaultMergePerpThreshold  = 0.1 // meters
)

// MergeParams contains thresholds for the segment merge heuristics.
type MergeParams struct {
	DistThreshold  float64 // Endpoint gap in meters
	AngleThreshold float64 // Angular difference in radians
	PerpThreshold  float64 // Lateral offset in meters, collinear merge only
}

// DefaultMergeParams returns default merge parameters.
func DefaultMergeParams() MergeParams {
	return MergeParams{
		DistThreshold:  DefaultMergeDistThreshold,
		AngleThreshold: DefaultMergeAngleThreshold,
		PerpThreshold:  DefaultMergePerpThreshold,
	}
}

// MergeCloseSegments joins consecutive segments whose endpoint gap and
// angular difference both fall below the thresholds. The scan is a single
// forward pass that re-examines the same index after each merge, so a run of
// short collinear segments collapses into one. Returns a new slice; the
// input is not modified.
func MergeCloseSegments(segments []geom.LineSegment, params MergeParams) []geom.LineSegment {
	if params.DistThreshold <= 0 || params.AngleThreshold <= 0 {
		panic("scanfit: merge thresholds must be positive")
	}
	out := append([]geom.LineSegment(nil), segments...)
	for i := 0; i < len(out)-1; {
		gap := out[i].End.DistTo(out[i+1].Start)
		turn := geom.ShortestAngleDiff(out[i].Angle(), out[i+1].Angle())
		if gap < params.DistThreshold && math.Abs(turn) < params.AngleThreshold {
			out[i].End = out[i+1].End
			out = append(out[:i+1], out[i+2:]...)
			continue
		}
		i++
	}
	return out
}

// MergeCloseSegmentsAllPairs joins segment pairs at increasing index
// separation, checking both orientations at each pair: the left segment's
// end against the right's start, then the right's end against the left's
// start. A merge re-examines the same position before moving on, and the
// separation only advances once a full pass at that separation joins
// nothing. This catches joins the adjacent pass misses when an unrelated
// segment sits between two halves of one edge. Returns a new slice; the
// input is not modified.
func MergeCloseSegmentsAllPairs(segments []geom.LineSegment, params MergeParams) []geom.LineSegment {
	if params.DistThreshold <= 0 || params.AngleThreshold <= 0 {
		panic("scanfit: merge thresholds must be positive")
	}
	out := append([]geom.LineSegment(nil), segments...)
	for skip := 1; skip < len(out); skip++ {
		for i := 0; i+skip < len(out); {
			turn := geom.ShortestAngleDiff(out[i].Angle(), out[i+skip].Angle())
			if math.Abs(turn) < params.AngleThreshold {
				if out[i].End.DistTo(out[i+skip].Start) < params.DistThreshold {
					out[i].End = out[i+skip].End
					out = append(out[:i+skip], out[i+skip+1:]...)
					continue
				}
				if out[i+skip].End.DistTo(out[i].Start) < params.DistThreshold {
					out[i].Start = out[i+skip].Start
					out = append(out[:i+skip], out[i+skip+1:]...)
					continue
				}
			}
			i++
		}
	}
	return out
}

// MergeCollinearSegments joins segment pairs that are truly collinear: the
// endpoint gap and angular difference fall below the thresholds AND both
// endpoints of the absorbed segment lie within PerpThreshold of the
// absorbing segment's infinite line. The lateral test rejects near-parallel
// segments that are offset sideways, such as opposite faces of a thin wall.
// The whole scan restarts after every merge until a full pass joins nothing.
// Returns a new slice; the input is not modified.
func MergeCollinearSegments(segments []geom.LineSegment, params MergeParams) []geom.LineSegment {
	if params.DistThreshold <= 0 || params.AngleThreshold <= 0 || params.PerpThreshold <= 0 {
		panic("scanfit: merge thresholds must be positive")
	}
	out := append([]geom.LineSegment(nil), segments...)
	for {
		merged := false
	scan:
		for i := 0; i < len(out); i++ {
			for j := 0; j < len(out); j++ {
				if j == i {
					continue
				}
				gap := out[i].End.DistTo(out[j].Start)
				turn := geom.ShortestAngleDiff(out[i].Angle(), out[j].Angle())
				if gap >= params.DistThreshold || math.Abs(turn) >= params.AngleThreshold {
					continue
				}
				startPerp := out[j].Start.DistTo(geom.ProjectPointOnSegment(out[i].Start, out[i].End, out[j].Start, false))
				endPerp := out[j].End.DistTo(geom.ProjectPointOnSegment(out[i].Start, out[i].End, out[j].End, false))
				if startPerp >= params.PerpThreshold || endPerp >= params.PerpThreshold {
					continue
				}
				out[i].End = out[j].End
				out = append(out[:j], out[j+1:]...)
				merged = true
				break scan
			}
		}
		if !merged {
			break
		}
	}
	return out
}
