// Package testutils provides fixtures shared by tests: random rigid transforms, trajectories
// and ray bundles, plus small file helpers.
package testutils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pose-utils/poseutils/spatialmath"
	"github.com/pose-utils/poseutils/trajectory"
)

// RandomUnitVector samples a direction uniformly on the unit sphere.
func RandomUnitVector(rng *rand.Rand) r3.Vector {
	for {
		v := r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
		if n := v.Norm(); n > 1e-6 {
			return v.Mul(1 / n)
		}
	}
}

// RandomTransform returns a rigid transform with a random rotation and a translation with
// components in [-scale, scale].
func RandomTransform(rng *rand.Rand, scale float64) spatialmath.RigidTransform {
	axis := RandomUnitVector(rng)
	aa := &spatialmath.R4AA{Theta: rng.Float64() * math.Pi, RX: axis.X, RY: axis.Y, RZ: axis.Z}
	t := r3.Vector{
		X: (rng.Float64()*2 - 1) * scale,
		Y: (rng.Float64()*2 - 1) * scale,
		Z: (rng.Float64()*2 - 1) * scale,
	}
	return spatialmath.NewRigidTransformFromQuat(aa.ToQuat(), t)
}

// RandomTrajectory returns n random rigid transforms.
func RandomTrajectory(rng *rand.Rand, n int, scale float64) trajectory.Trajectory {
	tr := make(trajectory.Trajectory, n)
	for i := range tr {
		tr[i] = RandomTransform(rng, scale)
	}
	return tr
}

// CircleTrajectory returns n poses on a circle of the given radius in the XY plane, each looking
// at the origin.
func CircleTrajectory(n int, radius float64) trajectory.Trajectory {
	tr := make(trajectory.Trajectory, n)
	for i := range tr {
		theta := 2 * math.Pi * float64(i) / float64(n)
		aa := &spatialmath.R4AA{Theta: theta + math.Pi, RZ: 1}
		tr[i] = spatialmath.NewRigidTransformFromQuat(
			aa.ToQuat(),
			r3.Vector{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)},
		)
	}
	return tr
}

// RaysThrough returns n rays passing through point with random directions. Each endpoint is
// perturbed by Gaussian noise with standard deviation sigma; sigma == 0 gives exact rays.
func RaysThrough(rng *rand.Rand, point r3.Vector, n int, sigma float64) []spatialmath.Ray {
	noise := func() r3.Vector { return r3.Vector{} }
	if sigma > 0 {
		dist := distuv.Normal{Mu: 0, Sigma: sigma}
		noise = func() r3.Vector {
			return r3.Vector{X: dist.Rand(), Y: dist.Rand(), Z: dist.Rand()}
		}
	}

	rays := make([]spatialmath.Ray, n)
	for i := range rays {
		dir := RandomUnitVector(rng)
		start := point.Add(dir.Mul(-(1 + 4*rng.Float64())))
		end := point.Add(dir.Mul(1 + 4*rng.Float64()))
		rays[i] = spatialmath.NewRay(start.Add(noise()), end.Add(noise()))
	}
	return rays
}
