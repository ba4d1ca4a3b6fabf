// Package scanfit fits geometric shape models to 2D range-scan point clouds.
// It provides clustering for ordered and unordered clouds, RANSAC line and
// circle fitting with inlier scoring, least-squares line regression,
// piecewise segmentation in merge-growth and split-recursive variants, and
// segment merge heuristics, composed into a line extraction pipeline by
// FitLineSegments.
//
// Degenerate input never fails: undersized point sets, collinear triples and
// zero-spread ranges produce zero-valued shapes and zero scores so a
// perception loop degrades instead of aborting. Non-positive thresholds are
// caller bugs and panic.
package scanfit

import "github.com/banshee-data/scangeom/geom"

// DefaultRegressionErrorThreshold is the default merge error gate for
// piecewise segmentation.
const DefaultRegressionErrorThreshold = 0.1

// SegmentationParams configures the end-to-end line extraction pipeline.
type SegmentationParams struct {
	RegressionThreshold float64 // Piecewise merge error gate
	MergeDistThreshold  float64 // Endpoint gap for the merge pass, meters
	MergeAngleThreshold float64 // Angular difference for the merge pass, radians
}

// DefaultSegmentationParams returns default pipeline parameters.
func DefaultSegmentationParams() SegmentationParams {
	return SegmentationParams{
		RegressionThreshold: DefaultRegressionErrorThreshold,
		MergeDistThreshold:  DefaultMergeDistThreshold,
		MergeAngleThreshold: DefaultMergeAngleThreshold,
	}
}

// FitLineSegments extracts line segments from an angularly ordered scan:
// merge-growth piecewise regression followed by the adjacent segment merge
// pass. Fewer than two points returns nil.
func FitLineSegments(points []geom.Point, params SegmentationParams) []geom.LineSegment {
	if params.RegressionThreshold <= 0 || params.MergeDistThreshold <= 0 || params.MergeAngleThreshold <= 0 {
		panic("scanfit: segmentation thresholds must be positive")
	}
	pieces := PiecewiseRegression(points, params.RegressionThreshold)
	merged := MergeCloseSegments(pieces, MergeParams{
		DistThreshold:  params.MergeDistThreshold,
		AngleThreshold: params.MergeAngleThreshold,
	})
	Diagf("FitLineSegments: %d points -> %d pieces -> %d segments", len(points), len(pieces), len(merged))
	return merged
}
