package geom

import (
	"math"
	"testing"
)

func TestLineSegmentBasics(t *testing.T) {
	seg := NewLineSegment(Point{X: 1, Y: 1}, Point{X: 4, Y: 5})
	if !floatEquals(seg.Length(), 5, 1e-12) {
		t.Errorf("Length = %f, want 5", seg.Length())
	}
	if !floatEquals(seg.SquaredLength(), 25, 1e-12) {
		t.Errorf("SquaredLength = %f, want 25", seg.SquaredLength())
	}
	if got := seg.Center(); !pointNear(got, Point{X: 2.5, Y: 3}, 1e-12) {
		t.Errorf("Center = %v, want (2.5, 3)", got)
	}
	if got := seg.Angle(); !floatEquals(got, math.Atan2(4, 3), 1e-12) {
		t.Errorf("Angle = %f", got)
	}
	unit := seg.UnitVector()
	if !floatEquals(unit.Magnitude(), 1, 1e-12) {
		t.Errorf("UnitVector magnitude = %f, want 1", unit.Magnitude())
	}
}

func TestLineSegmentSlopeIntercept(t *testing.T) {
	seg := NewLineSegment(Point{X: 1, Y: 2}, Point{X: 3, Y: 6})
	if got := seg.Slope(); !floatEquals(got, 2, 1e-12) {
		t.Errorf("Slope = %f, want 2", got)
	}
	if got := seg.Intercept(); !floatEquals(got, 0, 1e-12) {
		t.Errorf("Intercept = %f, want 0", got)
	}
}

func TestLineSegmentVerticalSlopeGuard(t *testing.T) {
	up := NewLineSegment(Point{X: 1, Y: 0}, Point{X: 1, Y: 5})
	if got := up.Slope(); got < 1e6 {
		t.Errorf("vertical slope = %g, want very large positive", got)
	}
	down := NewLineSegment(Point{X: 1, Y: 5}, Point{X: 1, Y: 0})
	if got := down.Slope(); got > -1e6 {
		t.Errorf("descending vertical slope = %g, want very large negative", got)
	}
}

func TestLineSegmentDegenerateUnitVector(t *testing.T) {
	seg := NewLineSegment(Point{X: 2, Y: 2}, Point{X: 2, Y: 2})
	if got := seg.UnitVector(); got.Magnitude() > 1e-3 {
		t.Errorf("degenerate unit vector = %v, want near zero", got)
	}
}

func TestIntersectionCrossing(t *testing.T) {
	a := NewLineSegment(Point{X: 0, Y: -1}, Point{X: 0, Y: 1})
	b := NewLineSegment(Point{X: -1, Y: 0}, Point{X: 1, Y: 0})

	pt, ok := a.Intersection(b)
	if !ok {
		t.Fatal("crossing segments should intersect")
	}
	if !pointNear(pt, Point{X: 0, Y: 0}, 1e-9) {
		t.Errorf("intersection = %v, want origin", pt)
	}
	if !a.Intersects(b) {
		t.Error("Intersects should agree with Intersection")
	}
}

func TestIntersectionParallel(t *testing.T) {
	a := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 1, Y: 0})
	b := NewLineSegment(Point{X: 0, Y: 1}, Point{X: 1, Y: 1})
	if _, ok := a.Intersection(b); ok {
		t.Error("parallel offset segments should not intersect")
	}
}

func TestIntersectionOutsideBounds(t *testing.T) {
	a := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 1, Y: 0})
	b := NewLineSegment(Point{X: 2, Y: 1}, Point{X: 2, Y: -1})
	if _, ok := a.Intersection(b); ok {
		t.Error("lines cross beyond the segment extents, should not intersect")
	}
}

func TestIntersectionCollinearOverlap(t *testing.T) {
	a := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 4, Y: 0})
	b := NewLineSegment(Point{X: 2, Y: 0}, Point{X: 6, Y: 0})

	pt, ok := a.Intersection(b)
	if !ok {
		t.Fatal("overlapping collinear segments should intersect")
	}
	if !pointNear(pt, Point{X: 2, Y: 0}, 1e-9) {
		t.Errorf("overlap start = %v, want (2, 0)", pt)
	}
}

func TestIntersectionCollinearContained(t *testing.T) {
	a := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 4, Y: 0})
	b := NewLineSegment(Point{X: 1, Y: 0}, Point{X: 2, Y: 0})

	pt, ok := a.Intersection(b)
	if !ok {
		t.Fatal("contained collinear segment should intersect")
	}
	if !pointNear(pt, Point{X: 1, Y: 0}, 1e-9) {
		t.Errorf("contained start = %v, want (1, 0)", pt)
	}
}

func TestIntersectionCollinearDisjoint(t *testing.T) {
	a := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 1, Y: 0})
	b := NewLineSegment(Point{X: 3, Y: 0}, Point{X: 5, Y: 0})
	if _, ok := a.Intersection(b); ok {
		t.Error("disjoint collinear segments should not intersect")
	}
}

func TestIntersectionSharedEndpoint(t *testing.T) {
	a := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 1, Y: 1})
	b := NewLineSegment(Point{X: 1, Y: 1}, Point{X: 2, Y: 0})

	pt, ok := a.Intersection(b)
	if !ok {
		t.Fatal("segments sharing an endpoint should intersect")
	}
	if !pointNear(pt, Point{X: 1, Y: 1}, 1e-9) {
		t.Errorf("intersection = %v, want shared endpoint", pt)
	}
}

func TestClosestPointTo(t *testing.T) {
	seg := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 4, Y: 0})
	if got := seg.ClosestPointTo(Point{X: 2, Y: 3}); !pointNear(got, Point{X: 2, Y: 0}, 1e-9) {
		t.Errorf("interior closest = %v, want (2, 0)", got)
	}
	// Past the end clamps to the endpoint.
	if got := seg.ClosestPointTo(Point{X: 7, Y: 1}); !pointNear(got, Point{X: 4, Y: 0}, 1e-9) {
		t.Errorf("clamped closest = %v, want (4, 0)", got)
	}
}

func TestMinDistTo(t *testing.T) {
	seg := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 4, Y: 0})
	if got := seg.MinDistTo(Point{X: 2, Y: 3}); !floatEquals(got, 3, 1e-9) {
		t.Errorf("MinDistTo = %f, want 3", got)
	}
	if got := seg.SquaredMinDistTo(Point{X: 7, Y: 4}); !floatEquals(got, 25, 1e-9) {
		t.Errorf("SquaredMinDistTo past end = %f, want 25", got)
	}
}

func TestContainsPoint(t *testing.T) {
	seg := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 4, Y: 0})
	if !seg.ContainsPoint(Point{X: 2, Y: 0.0005}) {
		t.Error("point within tolerance should be contained")
	}
	if seg.ContainsPoint(Point{X: 2, Y: 0.5}) {
		t.Error("point off the segment should not be contained")
	}
}

func TestCircleFromPoints(t *testing.T) {
	// Three points on the unit circle.
	c, ok := CircleFromPoints(Point{X: 1, Y: 0}, Point{X: 0, Y: 1}, Point{X: -1, Y: 0})
	if !ok {
		t.Fatal("valid triple should produce a circle")
	}
	if !pointNear(c.Center, Point{X: 0, Y: 0}, 1e-9) {
		t.Errorf("center = %v, want origin", c.Center)
	}
	if !floatEquals(c.Radius, 1, 1e-9) {
		t.Errorf("radius = %f, want 1", c.Radius)
	}
}

func TestCircleFromPointsOffCenter(t *testing.T) {
	// Circle of radius 2 centred at (3, -1), sampled at three angles.
	want := Circle{Center: Point{X: 3, Y: -1}, Radius: 2}
	a := want.PointAt(0.3)
	b := want.PointAt(2.0)
	d := want.PointAt(-1.9)

	c, ok := CircleFromPoints(a, b, d)
	if !ok {
		t.Fatal("valid triple should produce a circle")
	}
	if !pointNear(c.Center, want.Center, 1e-9) {
		t.Errorf("center = %v, want %v", c.Center, want.Center)
	}
	if !floatEquals(c.Radius, want.Radius, 1e-9) {
		t.Errorf("radius = %f, want %f", c.Radius, want.Radius)
	}
}

func TestCircleFromCollinearPoints(t *testing.T) {
	_, ok := CircleFromPoints(Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 2, Y: 2})
	if ok {
		t.Error("collinear points should not produce a circle")
	}
}

func TestCircleContainsPoint(t *testing.T) {
	c := Circle{Center: Point{X: 0, Y: 0}, Radius: 2}
	if !c.ContainsPoint(Point{X: 1, Y: 0}) {
		t.Error("interior point should be contained")
	}
	if c.ContainsPoint(Point{X: 3, Y: 0}) {
		t.Error("exterior point should not be contained")
	}
	if !floatEquals(c.DistTo(Point{X: 0, Y: 5}), 5, 1e-12) {
		t.Errorf("DistTo = %f, want 5", c.DistTo(Point{X: 0, Y: 5}))
	}
}

func TestPolylineLength(t *testing.T) {
	pl := Polyline{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}
	if got := pl.Length(); !floatEquals(got, 7, 1e-12) {
		t.Errorf("Length = %f, want 7", got)
	}
	if got := (Polyline{{X: 1, Y: 1}}).Length(); got != 0 {
		t.Errorf("single point length = %f, want 0", got)
	}
}

func TestPolylineSegments(t *testing.T) {
	pl := Polyline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	segs := pl.Segments()
	if len(segs) != 2 {
		t.Fatalf("len = %d, want 2", len(segs))
	}
	if segs[1].Start != (Point{X: 1, Y: 0}) || segs[1].End != (Point{X: 1, Y: 1}) {
		t.Errorf("second segment = %v", segs[1])
	}
}

func TestPolylineIntersects(t *testing.T) {
	pl := Polyline{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}}
	crossing := NewLineSegment(Point{X: 1, Y: -1}, Point{X: 1, Y: 1})
	if !pl.Intersects(crossing) {
		t.Error("segment crossing the first edge should intersect")
	}
	missing := NewLineSegment(Point{X: 5, Y: 5}, Point{X: 6, Y: 6})
	if pl.Intersects(missing) {
		t.Error("distant segment should not intersect")
	}
}

func TestPolylineClosestIntersection(t *testing.T) {
	pl := Polyline{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: -1}}
	ray := NewLineSegment(Point{X: 0, Y: 0}, Point{X: 5, Y: 0})

	pt, ok := pl.ClosestIntersection(ray)
	if !ok {
		t.Fatal("ray should hit the polyline")
	}
	// Both vertical edges cross the ray; the nearer one to the ray start wins.
	if !pointNear(pt, Point{X: 1, Y: 0}, 1e-9) {
		t.Errorf("closest intersection = %v, want (1, 0)", pt)
	}
}

func TestPolylineSplit(t *testing.T) {
	pl := Polyline{{X: 0, Y: 0}, {X: 5, Y: 0}}
	segs := pl.Split(2)
	if len(segs) != 3 {
		t.Fatalf("len = %d, want 3", len(segs))
	}
	if !floatEquals(segs[0].Length(), 2, 1e-9) || !floatEquals(segs[2].Length(), 1, 1e-9) {
		t.Errorf("chunk lengths = %f, %f, %f", segs[0].Length(), segs[1].Length(), segs[2].Length())
	}
	// Non-positive max falls back to plain edges.
	if got := pl.Split(0); len(got) != 1 {
		t.Errorf("Split(0) len = %d, want 1", len(got))
	}
}

func TestPolylineReverse(t *testing.T) {
	pl := Polyline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	rev := pl.Reversed()
	if rev[0] != (Point{X: 2, Y: 0}) || rev[2] != (Point{X: 0, Y: 0}) {
		t.Errorf("Reversed = %v", rev)
	}
	// Original untouched by Reversed.
	if pl[0] != (Point{X: 0, Y: 0}) {
		t.Error("Reversed should not modify the receiver")
	}
	pl.Reverse()
	if pl[0] != (Point{X: 2, Y: 0}) {
		t.Errorf("Reverse in place = %v", pl)
	}
}
