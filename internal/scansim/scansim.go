// Package scansim generates synthetic 2D range scans for demos and tests.
//
// Each scene is a set of walls placed around a scanner at the origin. Rays
// are cast across the scene's bearing window and a point is emitted where
// each ray first hits a wall, so the output is ordered by bearing exactly as
// a sweeping rangefinder would produce it. Rays that exit the scene without
// hitting anything (open corridor ends, past the edge of a pillar) emit no
// point, which mirrors the max-range dropouts of real scans.
package scansim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/scangeom/geom"
)

// Scene names accepted by Generate.
const (
	SceneRoom     = "room"
	SceneCorridor = "corridor"
	SceneArc      = "arc"
	SceneZigzag   = "zigzag"
)

// Scenes returns the available scene names.
func Scenes() []string {
	return []string{SceneRoom, SceneCorridor, SceneArc, SceneZigzag}
}

const (
	// maxProbeRange bounds ray casting; longer than any scene dimension.
	maxProbeRange = 100.0

	roomHalfWidth  = 5.0
	roomHalfHeight = 4.0

	corridorHalfLength = 8.0
	corridorHalfWidth  = 1.5

	// The arc scene is the front face of a circular pillar ahead of the
	// scanner, approximated by an inscribed polygon. At 5 degree steps the
	// polygon is within 1e-3 of the true circle.
	arcCenterX     = 4.0
	arcRadius      = 1.0
	arcPolygonStep = 2 * math.Pi / 72

	// arcHalfWindow keeps rays inside the pillar's tangent bearings
	// (asin(radius/distance), about 0.2527 rad).
	arcHalfWindow = 0.24
)

// zigzagChain is a wall that alternates slope every two metres. Vertex
// bearings from the origin increase monotonically, so no part of the chain
// occludes another.
var zigzagChain = geom.Polyline{
	{X: 4, Y: -3},
	{X: 2, Y: -1},
	{X: 4, Y: 1},
	{X: 2, Y: 3},
}

// zigzag window bearings sit just inside the chain's end vertices.
const (
	zigzagWindowLo = -0.6
	zigzagWindowHi = 0.95
)

// sweepWindow is the bearing interval rays are cast across. A wrapping
// window covers the full circle without duplicating the seam bearing.
type sweepWindow struct {
	lo, hi float64
	wrap   bool
}

// Generate casts n rays across the named scene and returns the wall hits in
// bearing order. noise is the standard deviation in metres of Gaussian range
// error added along each ray; zero leaves the hits exact. src seeds the
// noise distribution; nil uses the global source.
func Generate(scene string, n int, noise float64, src rand.Source) ([]geom.Point, error) {
	if n <= 0 {
		return nil, fmt.Errorf("point count must be positive, got %d", n)
	}
	if noise < 0 {
		return nil, fmt.Errorf("noise must be non-negative, got %g", noise)
	}

	walls, window, err := sceneWalls(scene)
	if err != nil {
		return nil, err
	}

	rangeNoise := distuv.Normal{Mu: 0, Sigma: noise, Src: src}

	span := window.hi - window.lo
	pts := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		var bearing float64
		if window.wrap {
			bearing = window.lo + span*float64(i)/float64(n)
		} else if n == 1 {
			bearing = window.lo
		} else {
			bearing = window.lo + span*float64(i)/float64(n-1)
		}

		probe := geom.NewLineSegment(geom.Point{}, geom.PointFromPolar(maxProbeRange, bearing))
		hit, ok := nearestHit(walls, probe)
		if !ok {
			continue
		}

		if noise > 0 {
			r := hit.Magnitude() + rangeNoise.Rand()
			hit = geom.PointFromPolar(r, bearing)
		}
		pts = append(pts, hit)
	}

	return pts, nil
}

// nearestHit returns the wall intersection closest to the probe's start.
func nearestHit(walls []geom.Polyline, probe geom.LineSegment) (geom.Point, bool) {
	var closest geom.Point
	found := false
	minDist := 0.0
	for _, wall := range walls {
		pt, ok := wall.ClosestIntersection(probe)
		if !ok {
			continue
		}
		dist := probe.Start.DistTo(pt)
		if !found || dist < minDist {
			closest = pt
			minDist = dist
			found = true
		}
	}
	return closest, found
}

func sceneWalls(scene string) ([]geom.Polyline, sweepWindow, error) {
	switch scene {
	case SceneRoom:
		room := geom.Polyline{
			{X: roomHalfWidth, Y: roomHalfHeight},
			{X: -roomHalfWidth, Y: roomHalfHeight},
			{X: -roomHalfWidth, Y: -roomHalfHeight},
			{X: roomHalfWidth, Y: -roomHalfHeight},
			{X: roomHalfWidth, Y: roomHalfHeight},
		}
		return []geom.Polyline{room}, sweepWindow{lo: -math.Pi, hi: math.Pi, wrap: true}, nil

	case SceneCorridor:
		upper := geom.Polyline{
			{X: -corridorHalfLength, Y: corridorHalfWidth},
			{X: corridorHalfLength, Y: corridorHalfWidth},
		}
		lower := geom.Polyline{
			{X: -corridorHalfLength, Y: -corridorHalfWidth},
			{X: corridorHalfLength, Y: -corridorHalfWidth},
		}
		return []geom.Polyline{upper, lower}, sweepWindow{lo: -math.Pi, hi: math.Pi, wrap: true}, nil

	case SceneArc:
		pillar := geom.Circle{Center: geom.Point{X: arcCenterX}, Radius: arcRadius}
		steps := int(math.Round(2 * math.Pi / arcPolygonStep))
		outline := make(geom.Polyline, 0, steps+1)
		for k := 0; k < steps; k++ {
			outline = append(outline, pillar.PointAt(float64(k)*arcPolygonStep))
		}
		outline = append(outline, outline[0])
		return []geom.Polyline{outline}, sweepWindow{lo: -arcHalfWindow, hi: arcHalfWindow}, nil

	case SceneZigzag:
		return []geom.Polyline{zigzagChain}, sweepWindow{lo: zigzagWindowLo, hi: zigzagWindowHi}, nil
	}

	return nil, sweepWindow{}, fmt.Errorf("unknown scene %q (have %v)", scene, Scenes())
}
