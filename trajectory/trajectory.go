// Package trajectory holds sequences of camera poses and the file formats they are stored in.
package trajectory

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/pose-utils/poseutils/spatialmath"
)

// A Trajectory is an ordered sequence of camera poses.
type Trajectory []spatialmath.RigidTransform

// Translations returns the translation column of every pose.
func (tr Trajectory) Translations() []r3.Vector {
	out := make([]r3.Vector, len(tr))
	for i, pose := range tr {
		out[i] = pose.Translation()
	}
	return out
}

// Quaternions returns the rotation of every pose as a quaternion.
func (tr Trajectory) Quaternions() []quat.Number {
	out := make([]quat.Number, len(tr))
	for i, pose := range tr {
		out[i] = pose.Quaternion()
	}
	return out
}

// Flip returns a copy of the trajectory with the given axis of every pose negated.
func (tr Trajectory) Flip(axis int) (Trajectory, error) {
	out := make(Trajectory, len(tr))
	for i, pose := range tr {
		flipped, err := spatialmath.FlipCoordinateSystem(pose, axis)
		if err != nil {
			return nil, err
		}
		out[i] = flipped
	}
	return out, nil
}

// Bounds returns the component-wise minimum and maximum of the translations.
func (tr Trajectory) Bounds() (minPt, maxPt r3.Vector) {
	for i, t := range tr.Translations() {
		if i == 0 {
			minPt, maxPt = t, t
			continue
		}
		minPt = r3.Vector{X: min(minPt.X, t.X), Y: min(minPt.Y, t.Y), Z: min(minPt.Z, t.Z)}
		maxPt = r3.Vector{X: max(maxPt.X, t.X), Y: max(maxPt.Y, t.Y), Z: max(maxPt.Z, t.Z)}
	}
	return minPt, maxPt
}

// PathLength returns the total distance travelled between consecutive poses.
func (tr Trajectory) PathLength() float64 {
	var total float64
	ts := tr.Translations()
	for i := 1; i < len(ts); i++ {
		total += ts[i].Sub(ts[i-1]).Norm()
	}
	return total
}
