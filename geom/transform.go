package geom

import (
	"fmt"
	"math"
)

// Transform is a planar rigid transform stored as a row-major 2x3 matrix:
//
//	[ r00 r01 tx ]
//	[ r10 r11 ty ]
//
// with an implicit [0 0 1] bottom row. The zero value is not a valid
// transform; use NewTransform or TransformFromPose.
type Transform [6]float64

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return NewTransform(0, 0, 0)
}

// NewTransform builds a transform translating by (x, y) and rotating by
// theta radians.
func NewTransform(x, y, theta float64) Transform {
	sin, cos := math.Sincos(theta)
	return Transform{cos, -sin, x, sin, cos, y}
}

// TransformFromPose builds the transform that maps the origin pose to p.
func TransformFromPose(p Pose) Transform {
	return NewTransform(p.X, p.Y, p.Theta)
}

// X returns the translation along X.
func (t Transform) X() float64 { return t[2] }

// Y returns the translation along Y.
func (t Transform) Y() float64 { return t[5] }

// Theta returns the rotation angle in [-pi, pi].
func (t Transform) Theta() float64 { return math.Atan2(t[3], t[0]) }

// AsPose returns the pose this transform maps the origin pose to.
func (t Transform) AsPose() Pose {
	return Pose{X: t.X(), Y: t.Y(), Theta: t.Theta()}
}

// Mul returns the composition t then-applied-after o, i.e. the transform
// equivalent to applying o first in t's frame.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		t[0]*o[0] + t[1]*o[3],
		t[0]*o[1] + t[1]*o[4],
		t[0]*o[2] + t[1]*o[5] + t[2],
		t[3]*o[0] + t[4]*o[3],
		t[3]*o[1] + t[4]*o[4],
		t[3]*o[2] + t[4]*o[5] + t[5],
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t[0]*p.X + t[1]*p.Y + t[2],
		Y: t[3]*p.X + t[4]*p.Y + t[5],
	}
}

// ApplyToPose maps a pose through the transform: position transformed,
// heading summed and wrapped.
func (t Transform) ApplyToPose(p Pose) Pose {
	pos := t.Apply(p.Position())
	return Pose{X: pos.X, Y: pos.Y, Theta: WrapAngle(p.Theta + t.Theta())}
}

// Inverse returns the rigid inverse: transposed rotation, rotated and
// negated translation.
func (t Transform) Inverse() Transform {
	return Transform{
		t[0], t[3], -(t[0]*t[2] + t[3]*t[5]),
		t[1], t[4], -(t[1]*t[2] + t[4]*t[5]),
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f; %.3f %.3f %.3f]",
		t[0], t[1], t[2], t[3], t[4], t[5])
}

// Trajectory rolls a constant twist forward by Euler integration. The
// result holds steps+1 poses beginning with the origin pose; each step
// composes the accumulated transform with the per-step displacement
// vel.Scale(dt).
func Trajectory(vel Velocity, steps int, dt float64) []Pose {
	trajectory := make([]Pose, 0, steps+1)
	trajectory = append(trajectory, Pose{})
	tf := IdentityTransform()
	step := vel.Scale(dt)
	stepTf := NewTransform(step.X, step.Y, step.Omega)
	for i := 0; i < steps; i++ {
		tf = tf.Mul(stepTf)
		trajectory = append(trajectory, tf.AsPose())
	}
	return trajectory
}
