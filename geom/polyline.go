package geom

// Polyline is an ordered chain of vertices. Consecutive vertices form the
// polyline's edges.
type Polyline []Point

// Length returns the total length along the chain. Fewer than two vertices
// yield 0.
func (pl Polyline) Length() float64 {
	var length float64
	for i := 0; i+1 < len(pl); i++ {
		length += pl[i].DistTo(pl[i+1])
	}
	return length
}

// Segments returns the consecutive edges of the polyline.
func (pl Polyline) Segments() []LineSegment {
	if len(pl) < 2 {
		return nil
	}
	segments := make([]LineSegment, 0, len(pl)-1)
	for i := 0; i+1 < len(pl); i++ {
		segments = append(segments, LineSegment{Start: pl[i], End: pl[i+1]})
	}
	return segments
}

// Intersects reports whether any edge intersects the given segment.
func (pl Polyline) Intersects(seg LineSegment) bool {
	for i := 0; i+1 < len(pl); i++ {
		if (LineSegment{Start: pl[i], End: pl[i+1]}).Intersects(seg) {
			return true
		}
	}
	return false
}

// IntersectsPolyline reports whether any edge of pl intersects any edge of
// other.
func (pl Polyline) IntersectsPolyline(other Polyline) bool {
	for i := 0; i+1 < len(other); i++ {
		if pl.Intersects(LineSegment{Start: other[i], End: other[i+1]}) {
			return true
		}
	}
	return false
}

// ClosestIntersection returns, among the intersections of seg with the
// polyline's edges, the one nearest to seg.Start. ok is false when no edge
// intersects.
func (pl Polyline) ClosestIntersection(seg LineSegment) (Point, bool) {
	var closest Point
	found := false
	minDist := 0.0
	for i := 0; i+1 < len(pl); i++ {
		edge := LineSegment{Start: pl[i], End: pl[i+1]}
		pt, ok := edge.Intersection(seg)
		if !ok {
			continue
		}
		dist := seg.Start.DistTo(pt)
		if !found || dist < minDist {
			closest = pt
			minDist = dist
			found = true
		}
	}
	return closest, found
}

// Split chops the polyline into segments no longer than maxSegmentLength.
// Edges longer than the limit emit consecutive pieces of exactly the limit
// with the remainder last; shorter edges are emitted whole. A non-positive
// limit returns the plain edges.
func (pl Polyline) Split(maxSegmentLength float64) []LineSegment {
	var segments []LineSegment
	for i := 0; i+1 < len(pl); i++ {
		edge := LineSegment{Start: pl[i], End: pl[i+1]}
		unit := edge.UnitVector()
		if maxSegmentLength > 0 {
			for edge.Length() > maxSegmentLength {
				splitPoint := edge.Start.Add(unit.Scale(maxSegmentLength))
				segments = append(segments, LineSegment{Start: edge.Start, End: splitPoint})
				edge.Start = splitPoint
			}
		}
		segments = append(segments, edge)
	}
	return segments
}

// Reverse flips the vertex order in place.
func (pl Polyline) Reverse() {
	for i, j := 0, len(pl)-1; i < j; i, j = i+1, j-1 {
		pl[i], pl[j] = pl[j], pl[i]
	}
}

// Reversed returns a reversed copy, leaving pl unchanged.
func (pl Polyline) Reversed() Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[len(pl)-1-i] = p
	}
	return out
}
