package geom

import (
	"fmt"
	"math"
)

// Pose is a position plus heading in the sensor plane. Theta is in radians,
// wrapped to [-pi, pi] by the operations that produce poses.
type Pose struct {
	X     float64
	Y     float64
	Theta float64
}

// PoseFromPoint builds a pose at pt facing theta.
func PoseFromPoint(pt Point, theta float64) Pose {
	return Pose{X: pt.X, Y: pt.Y, Theta: theta}
}

// Position returns the pose position as a Point.
func (p Pose) Position() Point {
	return Point{X: p.X, Y: p.Y}
}

// DistTo returns the Euclidean distance between the positions of p and q,
// ignoring headings.
func (p Pose) DistTo(q Pose) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f rad)", p.X, p.Y, p.Theta)
}

// MeanPose averages positions component-wise and headings circularly
// (atan2 of averaged sin and cos, so headings straddling +-pi average
// correctly). An empty slice yields the zero Pose.
func MeanPose(poses []Pose) Pose {
	if len(poses) == 0 {
		return Pose{}
	}
	var mean Pose
	var cosSum, sinSum float64
	for _, p := range poses {
		mean.X += p.X
		mean.Y += p.Y
		cosSum += math.Cos(p.Theta)
		sinSum += math.Sin(p.Theta)
	}
	n := float64(len(poses))
	mean.X /= n
	mean.Y /= n
	mean.Theta = math.Atan2(sinSum/n, cosSum/n)
	return mean
}

// Velocity is a planar twist: linear rates along X and Y plus angular rate
// Omega, all per second.
type Velocity struct {
	X     float64
	Y     float64
	Omega float64
}

// Scale returns the displacement accumulated over dt seconds at this rate,
// expressed as another Velocity.
func (v Velocity) Scale(dt float64) Velocity {
	return Velocity{X: v.X * dt, Y: v.Y * dt, Omega: v.Omega * dt}
}
