package scanfit

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/scangeom/geom"
)

func seg(x1, y1, x2, y2 float64) geom.LineSegment {
	return geom.LineSegment{
		Start: geom.Point{X: x1, Y: y1},
		End:   geom.Point{X: x2, Y: y2},
	}
}

func TestMergeCloseSegments(t *testing.T) {
	segs := []geom.LineSegment{
		seg(0, 0, 1, 0),
		seg(1.1, 0, 2, 0),
		seg(2.05, 0, 3, 0),
	}
	merged := MergeCloseSegments(segs, DefaultMergeParams())
	if len(merged) != 1 {
		t.Fatalf("segment count = %d, want 1", len(merged))
	}
	if merged[0] != seg(0, 0, 3, 0) {
		t.Errorf("merged = %v, want (0, 0) -> (3, 0)", merged[0])
	}
	// The input is untouched.
	if segs[0] != seg(0, 0, 1, 0) || len(segs) != 3 {
		t.Error("MergeCloseSegments modified its input")
	}
}

func TestMergeCloseSegmentsAngleGate(t *testing.T) {
	segs := []geom.LineSegment{
		seg(0, 0, 9, 0),
		seg(9, 0, 9, 9),
	}
	// Touching endpoints but a right-angle turn: no merge.
	merged := MergeCloseSegments(segs, DefaultMergeParams())
	if len(merged) != 2 {
		t.Errorf("segment count = %d, want 2", len(merged))
	}
}

func TestMergeCloseSegmentsGapGate(t *testing.T) {
	segs := []geom.LineSegment{
		seg(0, 0, 1, 0),
		seg(3, 0, 4, 0),
	}
	merged := MergeCloseSegments(segs, DefaultMergeParams())
	if len(merged) != 2 {
		t.Errorf("segment count = %d, want 2 across a wide gap", len(merged))
	}
}

func TestMergeCloseSegmentsAllPairsSkipsInterloper(t *testing.T) {
	// Two halves of one edge with an unrelated segment between them.
	segs := []geom.LineSegment{
		seg(0, 0, 1, 0),
		seg(5, 5, 6, 5),
		seg(1.1, 0, 2, 0),
	}
	merged := MergeCloseSegmentsAllPairs(segs, DefaultMergeParams())
	if len(merged) != 2 {
		t.Fatalf("segment count = %d, want 2", len(merged))
	}
	if merged[0] != seg(0, 0, 2, 0) {
		t.Errorf("joined edge = %v, want (0, 0) -> (2, 0)", merged[0])
	}
	if merged[1] != seg(5, 5, 6, 5) {
		t.Errorf("interloper = %v, want untouched", merged[1])
	}
}

func TestMergeCloseSegmentsAllPairsReverseOrientation(t *testing.T) {
	// The later segment leads into the earlier one.
	segs := []geom.LineSegment{
		seg(1.1, 0, 2, 0),
		seg(0, 0, 1, 0),
	}
	merged := MergeCloseSegmentsAllPairs(segs, DefaultMergeParams())
	if len(merged) != 1 {
		t.Fatalf("segment count = %d, want 1", len(merged))
	}
	if merged[0] != seg(0, 0, 2, 0) {
		t.Errorf("merged = %v, want (0, 0) -> (2, 0)", merged[0])
	}
}

func TestMergeCollinearSegments(t *testing.T) {
	segs := []geom.LineSegment{
		seg(0, 0, 1, 0),
		seg(1.1, 0, 2, 0),
	}
	merged := MergeCollinearSegments(segs, DefaultMergeParams())
	if len(merged) != 1 {
		t.Fatalf("segment count = %d, want 1", len(merged))
	}
	if merged[0] != seg(0, 0, 2, 0) {
		t.Errorf("merged = %v, want (0, 0) -> (2, 0)", merged[0])
	}
}

func TestMergeCollinearSegmentsRejectsLateralOffset(t *testing.T) {
	// Near-parallel, close endpoints, but offset sideways beyond the
	// perpendicular gate. The plain close merge accepts this pair; the
	// collinear merge must not.
	segs := []geom.LineSegment{
		seg(0, 0, 1, 0),
		seg(1.05, 0.15, 2, 0.15),
	}
	if got := MergeCloseSegments(segs, DefaultMergeParams()); len(got) != 1 {
		t.Fatalf("close merge count = %d, want 1", len(got))
	}
	if got := MergeCollinearSegments(segs, DefaultMergeParams()); len(got) != 2 {
		t.Errorf("collinear merge count = %d, want 2", len(got))
	}
}

func TestMergeIdempotence(t *testing.T) {
	segs := []geom.LineSegment{
		seg(0, 0, 1, 0),
		seg(1.1, 0, 2, 0),
		seg(2, 0.5, 3, 2),
		seg(5, 5, 6, 5),
		seg(6.1, 5, 7, 5),
	}
	params := DefaultMergeParams()

	passes := map[string]func([]geom.LineSegment, MergeParams) []geom.LineSegment{
		"close":     MergeCloseSegments,
		"all pairs": MergeCloseSegmentsAllPairs,
		"collinear": MergeCollinearSegments,
	}
	for name, pass := range passes {
		t.Run(name, func(t *testing.T) {
			once := pass(segs, params)
			twice := pass(once, params)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("second pass changed the segments (-first +second):\n%s", diff)
			}
		})
	}
}

func TestMergeEmptyAndSingle(t *testing.T) {
	params := DefaultMergeParams()
	if got := MergeCloseSegments(nil, params); len(got) != 0 {
		t.Errorf("merge of nil = %v, want empty", got)
	}
	single := []geom.LineSegment{seg(0, 0, 1, 1)}
	if got := MergeCollinearSegments(single, params); len(got) != 1 || got[0] != single[0] {
		t.Errorf("merge of single = %v, want unchanged", got)
	}
}

func TestMergeRejectsBadThresholds(t *testing.T) {
	cases := map[string]func(){
		"close":     func() { MergeCloseSegments(nil, MergeParams{DistThreshold: 0, AngleThreshold: 1}) },
		"all pairs": func() { MergeCloseSegmentsAllPairs(nil, MergeParams{DistThreshold: 1, AngleThreshold: 0}) },
		"collinear": func() { MergeCollinearSegments(nil, MergeParams{DistThreshold: 1, AngleThreshold: 1}) },
	}
	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic for non-positive threshold")
				}
			}()
			call()
		})
	}
}
