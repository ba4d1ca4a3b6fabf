package scanfit

import (
	"math"
	"sort"

	"github.com/banshee-data/scangeom/geom"
)

// Default clustering parameters suitable for indoor room-scale scans.
const (
	DefaultClusterDistThreshold = 0.1 // meters
	DefaultMinClusterSize       = 3
)

// ClusterParams contains parameters for distance-based point clustering.
type ClusterParams struct {
	DistThreshold  float64 // Neighbour distance in meters
	MinClusterSize int     // Clusters must hold strictly more points than this
}

// DefaultClusterParams returns default clustering parameters.
func DefaultClusterParams() ClusterParams {
	return ClusterParams{
		DistThreshold:  DefaultClusterDistThreshold,
		MinClusterSize: DefaultMinClusterSize,
	}
}

// ClusterPoints groups an unordered point cloud into spatially connected
// clusters. A cluster grows breadth-first: any remaining point within
// DistThreshold of a point already accepted joins the frontier. Clusters with
// MinClusterSize or fewer points are discarded. Iteration over the remaining
// points follows input order, so boundary points between near-equidistant
// clusters resolve deterministically.
func ClusterPoints(points []geom.Point, params ClusterParams) [][]geom.Point {
	if params.DistThreshold <= 0 {
		panic("scanfit: cluster distance threshold must be positive")
	}
	distSq := params.DistThreshold * params.DistThreshold

	remaining := append([]geom.Point(nil), points...)
	var clusters [][]geom.Point

	for len(remaining) > 0 {
		fringe := []geom.Point{remaining[0]}
		remaining = remaining[1:]

		var cluster []geom.Point
		for len(fringe) > 0 {
			point := fringe[0]
			fringe = fringe[1:]
			cluster = append(cluster, point)

			for i := 0; i < len(remaining); {
				if point.SquaredDistTo(remaining[i]) < distSq {
					fringe = append(fringe, remaining[i])
					remaining = append(remaining[:i], remaining[i+1:]...)
					continue
				}
				i++
			}
		}

		if len(cluster) > params.MinClusterSize {
			clusters = append(clusters, cluster)
		}
	}

	Diagf("ClusterPoints: %d points -> %d clusters", len(points), len(clusters))
	return clusters
}

// ClusterOrderedPoints groups an angularly ordered point cloud in a single
// left-to-right pass. The current cluster accepts the next point while it is
// within DistThreshold of the last point added; the first gap closes the
// cluster. A closed cluster is kept only when it holds strictly more than
// MinClusterSize points. When more than one cluster survives and the first
// point of the first cluster sits within DistThreshold of the last point of
// the last cluster, the last cluster is merged onto the front of the first,
// joining objects split across the sweep seam of a 360 degree scan.
func ClusterOrderedPoints(points []geom.Point, params ClusterParams) [][]geom.Point {
	if params.DistThreshold <= 0 {
		panic("scanfit: cluster distance threshold must be positive")
	}
	if len(points) == 0 {
		return nil
	}
	distSq := params.DistThreshold * params.DistThreshold

	var clusters [][]geom.Point
	cluster := []geom.Point{points[0]}
	for _, pt := range points[1:] {
		if cluster[len(cluster)-1].SquaredDistTo(pt) < distSq {
			cluster = append(cluster, pt)
			continue
		}
		if len(cluster) > params.MinClusterSize {
			clusters = append(clusters, cluster)
		}
		cluster = []geom.Point{pt}
	}
	if len(cluster) > params.MinClusterSize {
		clusters = append(clusters, cluster)
	}

	if len(clusters) > 1 {
		first := clusters[0]
		last := clusters[len(clusters)-1]
		if first[0].SquaredDistTo(last[len(last)-1]) < distSq {
			clusters[0] = append(last, first...)
			clusters = clusters[:len(clusters)-1]
		}
	}

	Diagf("ClusterOrderedPoints: %d points -> %d clusters", len(points), len(clusters))
	return clusters
}

// SortByBearing returns a copy of the points sorted by bearing from the
// origin. The circular order is cut at -pi rotated by offset, so a sweep that
// starts mid-quadrant keeps its natural seam out of the sorted sequence.
func SortByBearing(points []geom.Point, offset float64) []geom.Point {
	out := append([]geom.Point(nil), points...)
	sort.Slice(out, func(i, j int) bool {
		return bearingKey(out[i], offset) < bearingKey(out[j], offset)
	})
	return out
}

func bearingKey(p geom.Point, offset float64) float64 {
	angle := p.Angle()
	if angle < -math.Pi+offset {
		angle += 2 * math.Pi
	}
	return angle
}
