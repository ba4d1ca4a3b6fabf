package scanfit

import (
	"github.com/banshee-data/scangeom/geom"
)

// mergeErrorSentinel bounds the lowest-merge-cost scan. A merge candidate
// must cost less than this to be considered at all.
const mergeErrorSentinel = 1e6

// pointRange is an inclusive index range into the point slice being
// segmented. Ranges live only for the duration of one segmentation call.
type pointRange struct {
	start, end int
}

func (r pointRange) slice(points []geom.Point) []geom.Point {
	return points[r.start : r.end+1]
}

// PiecewiseRegression partitions an ordered point sequence into fitted line
// segments by greedy merging. It starts from consecutive point pairs (a
// trailing odd point joins the final pair) and repeatedly merges the adjacent
// pair of pieces whose combined regression error is lowest, until the best
// remaining merge would exceed errorThreshold. Each surviving piece is
// refitted once for its final endpoints. Fewer than two points returns nil.
func PiecewiseRegression(points []geom.Point, errorThreshold float64) []geom.LineSegment {
	if errorThreshold <= 0 {
		panic("scanfit: regression error threshold must be positive")
	}
	ranges := piecewiseRegressionRanges(points, errorThreshold)
	segments := make([]geom.LineSegment, 0, len(ranges))
	for _, r := range ranges {
		seg, _ := FitLineRegression(r.slice(points), true)
		segments = append(segments, seg)
	}
	return segments
}

// piecewiseRegressionRanges runs the merge-growth pass and returns the final
// index partition of [0, n-1].
func piecewiseRegressionRanges(points []geom.Point, errorThreshold float64) []pointRange {
	n := len(points)
	if n < 2 {
		return nil
	}

	count := n / 2
	ranges := make([]pointRange, count)
	for i := 0; i < count; i++ {
		r := pointRange{start: 2 * i, end: 2*i + 1}
		if 2*i+3 >= n {
			r.end = n - 1
		}
		ranges[i] = r
	}

	// mergeErrors[i] is the regression error of ranges i and i+1 combined.
	mergeErrors := make([]float64, len(ranges)-1)
	for i := range mergeErrors {
		span := pointRange{start: ranges[i].start, end: ranges[i+1].end}
		_, mergeErrors[i] = FitLineRegression(span.slice(points), true)
	}

	for len(ranges) > 1 {
		lowest := mergeErrorSentinel
		idx := 0
		for i, e := range mergeErrors {
			if e < lowest {
				lowest = e
				idx = i
			}
		}
		if lowest > errorThreshold {
			break
		}

		Tracef("PiecewiseRegression: merge ranges %d+%d error %.5f", idx, idx+1, lowest)
		ranges[idx].end = ranges[idx+1].end
		ranges = append(ranges[:idx+1], ranges[idx+2:]...)

		if idx > 0 {
			span := pointRange{start: ranges[idx-1].start, end: ranges[idx].end}
			_, mergeErrors[idx-1] = FitLineRegression(span.slice(points), true)
		}
		if idx < len(ranges)-1 {
			span := pointRange{start: ranges[idx].start, end: ranges[idx+1].end}
			_, mergeErrors[idx+1] = FitLineRegression(span.slice(points), true)
		}
		mergeErrors = append(mergeErrors[:idx], mergeErrors[idx+1:]...)
	}

	return ranges
}

// PiecewiseRegressionSplit partitions an ordered point sequence into fitted
// line segments by recursive splitting. It starts from one piece spanning the
// whole sequence and repeatedly splits the worst-fitting piece at the point
// farthest from the chord between the piece's own endpoints, until every
// piece fits within errorThreshold or is too small to split. Degenerate
// single-point residue is discarded from the output. Fewer than two points
// returns nil.
func PiecewiseRegressionSplit(points []geom.Point, errorThreshold float64) []geom.LineSegment {
	if errorThreshold <= 0 {
		panic("scanfit: regression error threshold must be positive")
	}
	ranges, segments := piecewiseSplitRanges(points, errorThreshold)
	out := make([]geom.LineSegment, 0, len(segments))
	for i, r := range ranges {
		if r.start == r.end {
			continue
		}
		out = append(out, segments[i])
	}
	return out
}

// piecewiseSplitRanges runs the split-recursive pass, returning the final
// index ranges and the segment fitted to each.
func piecewiseSplitRanges(points []geom.Point, errorThreshold float64) ([]pointRange, []geom.LineSegment) {
	n := len(points)
	if n < 2 {
		return nil, nil
	}

	whole := pointRange{start: 0, end: n - 1}
	seg, fitError := FitLineRegression(whole.slice(points), true)
	if fitError < errorThreshold {
		return []pointRange{whole}, []geom.LineSegment{seg}
	}

	ranges := []pointRange{whole}
	segments := []geom.LineSegment{seg}
	fitErrors := []float64{fitError}

	for {
		highest := 0.0
		idx := 0
		for i, e := range fitErrors {
			if e > highest {
				highest = e
				idx = i
			}
		}
		if highest < errorThreshold {
			break
		}
		r := ranges[idx]
		if r.end-r.start < 3 {
			break
		}

		splitIdx := splitIndex(points, r)
		Tracef("PiecewiseRegressionSplit: split [%d, %d] at %d error %.5f", r.start, r.end, splitIdx, highest)
		left := pointRange{start: r.start, end: splitIdx}
		right := pointRange{start: splitIdx + 1, end: r.end}

		ranges = append(ranges, pointRange{})
		copy(ranges[idx+1:], ranges[idx:])
		ranges[idx] = left
		ranges[idx+1] = right

		segments = append(segments, geom.LineSegment{})
		copy(segments[idx+1:], segments[idx:])
		fitErrors = append(fitErrors, 0)
		copy(fitErrors[idx+1:], fitErrors[idx:])

		segments[idx], fitErrors[idx] = FitLineRegression(left.slice(points), true)
		segments[idx+1], fitErrors[idx+1] = FitLineRegression(right.slice(points), true)
	}

	return ranges, segments
}

// splitIndex finds the interior point of the range farthest from the chord
// between the range's own endpoints, measured as clamped distance to the
// chord.
func splitIndex(points []geom.Point, r pointRange) int {
	idx := r.start
	maxDist := 0.0
	for j := r.start + 1; j < r.end; j++ {
		dist := geom.SquaredDistToSegment(points[r.start], points[r.end], points[j], true)
		if dist > maxDist {
			maxDist = dist
			idx = j
		}
	}
	return idx
}

// FitLineSegmentsRANSAC fits an ordered point sequence with multiple RANSAC
// segments. The whole sequence is fitted first and returned alone when its
// score clears scoreThreshold. Otherwise the sequence is split repeatedly at
// the point farthest from the current piece's chord, descending into the
// leftmost piece until it has fewer than four points. All fitted pieces are
// returned, including any degenerate single-point residue. Fewer than two
// points returns nil.
func FitLineSegmentsRANSAC(points []geom.Point, scoreThreshold float64, params RANSACParams) []geom.LineSegment {
	if scoreThreshold <= 0 {
		panic("scanfit: RANSAC score threshold must be positive")
	}
	n := len(points)
	if n < 2 {
		return nil
	}

	whole := pointRange{start: 0, end: n - 1}
	seg, score := FitLineSegmentRANSAC(whole.slice(points), params)
	if score > scoreThreshold {
		return []geom.LineSegment{seg}
	}

	ranges := []pointRange{whole}
	segments := []geom.LineSegment{seg}
	scores := []float64{score}

	for {
		lowest := 0.0
		idx := 0
		for i, s := range scores {
			if s < lowest {
				lowest = s
				idx = i
			}
		}
		if lowest > scoreThreshold {
			break
		}
		r := ranges[idx]
		if r.end-r.start < 3 {
			break
		}

		splitIdx := splitIndex(points, r)
		Tracef("FitLineSegmentsRANSAC: split [%d, %d] at %d score %.3f", r.start, r.end, splitIdx, scores[idx])
		left := pointRange{start: r.start, end: splitIdx}
		right := pointRange{start: splitIdx + 1, end: r.end}

		ranges = append(ranges, pointRange{})
		copy(ranges[idx+1:], ranges[idx:])
		ranges[idx] = left
		ranges[idx+1] = right

		segments = append(segments, geom.LineSegment{})
		copy(segments[idx+1:], segments[idx:])
		scores = append(scores, 0)
		copy(scores[idx+1:], scores[idx:])

		segments[idx], scores[idx] = FitLineSegmentRANSAC(left.slice(points), params)
		segments[idx+1], scores[idx+1] = FitLineSegmentRANSAC(right.slice(points), params)
	}

	return segments
}
