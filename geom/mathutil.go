package geom

import "math"

// Clip limits value to [min, max]. The maximum bound is applied first, so a
// min above max yields min, matching the argument order used throughout the
// motion helpers.
func Clip(value, max, min float64) float64 {
	return math.Max(math.Min(value, max), min)
}

// ClipSigned limits the magnitude of value to [min, max] while preserving
// its sign.
func ClipSigned(value, max, min float64) float64 {
	return math.Copysign(Clip(math.Abs(value), max, min), value)
}

// RoundTo rounds value to the given number of decimal places.
func RoundTo(value float64, decimalPlaces int) float64 {
	multiplier := math.Pow(10, float64(decimalPlaces))
	return math.Round(value*multiplier) / multiplier
}

// LinearInterpolate blends from src to target by t in [0, 1]; t outside the
// interval clamps to the nearer endpoint.
func LinearInterpolate(src, target, t float64) float64 {
	if t >= 1 {
		return target
	}
	if t <= 0 {
		return src
	}
	return src*(1-t) + target*t
}

// MeanPoint returns the centroid of points. An empty slice yields the zero
// Point.
func MeanPoint(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Div(float64(len(points)))
}

// MeanPoint3 returns the centroid of points. An empty slice yields the zero
// Point3.
func MeanPoint3(points []Point3) Point3 {
	if len(points) == 0 {
		return Point3{}
	}
	var sum Point3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// ClosestPoint returns the member of points nearest to target. ok is false
// only when points is empty.
func ClosestPoint(points []Point, target Point) (closest Point, ok bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	minIdx := 0
	minDistSq := math.MaxFloat64
	for i, p := range points {
		if distSq := p.SquaredDistTo(target); distSq < minDistSq {
			minIdx = i
			minDistSq = distSq
		}
	}
	return points[minIdx], true
}
