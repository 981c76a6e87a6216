package spatialmath_test

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"github.com/pose-utils/poseutils/spatialmath"
	"github.com/pose-utils/poseutils/testutils"
)

func TestIntersectRays(t *testing.T) {
	target := r3.Vector{X: 2, Y: 3, Z: -1}

	t.Run("exact rays", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		rays := testutils.RaysThrough(rng, target, 20, 0)
		pt, err := spatialmath.IntersectRays(rays)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pt.Sub(target).Norm(), test.ShouldBeLessThan, 1e-9)

		residual, err := spatialmath.SumSquaredRayDistances(pt, rays)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, residual, test.ShouldBeLessThan, 1e-12)
	})

	t.Run("two perpendicular rays", func(t *testing.T) {
		pt, err := spatialmath.IntersectRays([]spatialmath.Ray{
			spatialmath.NewRay(r3.Vector{X: -1}, r3.Vector{X: 1}),
			spatialmath.NewRay(r3.Vector{Y: -1, Z: 2}, r3.Vector{Y: 1, Z: 2}),
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pt.X, test.ShouldAlmostEqual, 0)
		test.That(t, pt.Y, test.ShouldAlmostEqual, 0)
		test.That(t, pt.Z, test.ShouldAlmostEqual, 1)
	})

	t.Run("noisy rays degrade gracefully", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		for _, sigma := range []float64{1e-4, 1e-3, 1e-2} {
			rays := testutils.RaysThrough(rng, target, 50, sigma)
			pt, err := spatialmath.IntersectRays(rays)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, pt.Sub(target).Norm(), test.ShouldBeLessThan, 20*sigma)
		}
	})

	t.Run("solution minimizes squared distances", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		rays := testutils.RaysThrough(rng, target, 10, 0.05)
		pt, err := spatialmath.IntersectRays(rays)
		test.That(t, err, test.ShouldBeNil)
		best, err := spatialmath.SumSquaredRayDistances(pt, rays)
		test.That(t, err, test.ShouldBeNil)
		for i := 0; i < 20; i++ {
			moved := pt.Add(testutils.RandomUnitVector(rng).Mul(0.01))
			other, err := spatialmath.SumSquaredRayDistances(moved, rays)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, other, test.ShouldBeGreaterThan, best)
		}
	})

	t.Run("parallel rays are singular", func(t *testing.T) {
		_, err := spatialmath.IntersectRays([]spatialmath.Ray{
			spatialmath.NewRay(r3.Vector{}, r3.Vector{Z: 1}),
			spatialmath.NewRay(r3.Vector{X: 1}, r3.Vector{X: 1, Z: 1}),
			spatialmath.NewRay(r3.Vector{Y: 1}, r3.Vector{Y: 1, Z: 5}),
		})
		test.That(t, errors.Is(err, spatialmath.ErrSingularSystem), test.ShouldBeTrue)
	})

	t.Run("single ray is singular", func(t *testing.T) {
		_, err := spatialmath.IntersectRays([]spatialmath.Ray{spatialmath.NewRay(r3.Vector{}, r3.Vector{Z: 1})})
		test.That(t, errors.Is(err, spatialmath.ErrSingularSystem), test.ShouldBeTrue)
	})

	t.Run("zero length ray", func(t *testing.T) {
		_, err := spatialmath.IntersectRays([]spatialmath.Ray{
			spatialmath.NewRay(r3.Vector{}, r3.Vector{Z: 1}),
			spatialmath.NewRay(r3.Vector{X: 1}, r3.Vector{X: 1}),
		})
		test.That(t, errors.Is(err, spatialmath.ErrDegenerateRay), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "ray 1")
	})
}

func TestLeastSquaresIntersection(t *testing.T) {
	starts := []r3.Vector{{X: -1}, {Y: -1}, {Z: -1}}
	ends := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}

	pt, err := spatialmath.LeastSquaresIntersection(starts, ends)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pt.Norm(), test.ShouldBeLessThan, 1e-12)

	_, err = spatialmath.LeastSquaresIntersection(starts, ends[:2])
	test.That(t, errors.Is(err, spatialmath.ErrRayCountMismatch), test.ShouldBeTrue)

	t.Run("dense", func(t *testing.T) {
		s := mat.NewDense(3, 3, []float64{
			-1, 5, 5,
			5, -1, 5,
			5, 5, -1,
		})
		e := mat.NewDense(3, 3, []float64{
			1, 5, 5,
			5, 1, 5,
			5, 5, 1,
		})
		pt, err := spatialmath.LeastSquaresIntersectionDense(s, e)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pt.X, test.ShouldAlmostEqual, 5, 1e-9)
		test.That(t, pt.Y, test.ShouldAlmostEqual, 5, 1e-9)
		test.That(t, pt.Z, test.ShouldAlmostEqual, 5, 1e-9)

		_, err = spatialmath.LeastSquaresIntersectionDense(mat.NewDense(2, 2, nil), e)
		test.That(t, err, test.ShouldNotBeNil)

		_, err = spatialmath.LeastSquaresIntersectionDense(s, mat.NewDense(2, 3, []float64{1, 5, 5, 5, 1, 5}))
		test.That(t, errors.Is(err, spatialmath.ErrRayCountMismatch), test.ShouldBeTrue)
	})
}

func TestDistanceToRay(t *testing.T) {
	ray := spatialmath.NewRay(r3.Vector{}, r3.Vector{X: 2})
	d, err := spatialmath.DistanceToRay(r3.Vector{X: 10, Y: 3, Z: 4}, ray)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldAlmostEqual, 5)

	_, err = spatialmath.DistanceToRay(r3.Vector{}, spatialmath.NewRay(r3.Vector{X: 1}, r3.Vector{X: 1}))
	test.That(t, errors.Is(err, spatialmath.ErrDegenerateRay), test.ShouldBeTrue)
}
