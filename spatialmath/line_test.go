package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestLineLineIntersection(t *testing.T) {
	t.Run("crossing at origin", func(t *testing.T) {
		pt, err := LineLineIntersection(
			r3.Vector{X: -1}, r3.Vector{X: 1},
			r3.Vector{Y: -1}, r3.Vector{Y: 1},
		)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pt.Norm(), test.ShouldAlmostEqual, 0)
	})

	t.Run("skew lines return midpoint of shortest segment", func(t *testing.T) {
		// x axis at z=0 and y axis shifted to z=2
		pt, err := LineLineIntersection(
			r3.Vector{X: -1}, r3.Vector{X: 1},
			r3.Vector{Y: -1, Z: 2}, r3.Vector{Y: 1, Z: 2},
		)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pt.X, test.ShouldAlmostEqual, 0)
		test.That(t, pt.Y, test.ShouldAlmostEqual, 0)
		test.That(t, pt.Z, test.ShouldAlmostEqual, 1)
	})

	t.Run("intersection outside of the segments", func(t *testing.T) {
		pt, err := LineLineIntersection(
			r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 2, Y: 2, Z: 2},
			r3.Vector{X: 5, Y: 0, Z: 0}, r3.Vector{X: 4, Y: 0, Z: 0},
		)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pt.Norm(), test.ShouldAlmostEqual, 0)
	})

	t.Run("parallel lines fail", func(t *testing.T) {
		_, err := LineLineIntersection(
			r3.Vector{}, r3.Vector{X: 1},
			r3.Vector{Y: 1}, r3.Vector{X: 1, Y: 1},
		)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
	})

	t.Run("identical lines are treated as parallel", func(t *testing.T) {
		_, err := LineLineIntersection(
			r3.Vector{}, r3.Vector{X: 1},
			r3.Vector{}, r3.Vector{X: 1},
		)
		test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
	})

	t.Run("zero length lines fail", func(t *testing.T) {
		p := r3.Vector{X: 3, Y: 2, Z: 1}
		_, err := LineLineIntersection(p, p, r3.Vector{}, r3.Vector{X: 1})
		test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "first line")

		_, err = LineLineIntersection(r3.Vector{}, r3.Vector{X: 1}, p, p)
		test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "second line")
	})

	t.Run("negative direction components are not degenerate", func(t *testing.T) {
		// every component of p4-p3 is negative, which an elementwise check would reject
		pt, err := LineLineIntersection(
			r3.Vector{X: -1, Y: 1}, r3.Vector{X: 1, Y: 1},
			r3.Vector{Y: 3, Z: 1}, r3.Vector{Y: -1, Z: -1},
		)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pt.Y, test.ShouldAlmostEqual, 1)
	})
}

func TestLineLineIntersectionTolerance(t *testing.T) {
	// nearly parallel lines: accepted with machine epsilon, rejected with a loose tolerance
	p1, p2 := r3.Vector{}, r3.Vector{X: 1}
	p3, p4 := r3.Vector{Y: 1}, r3.Vector{X: 1, Y: 1 + 1e-5}

	_, err := LineLineIntersectionTolerance(p1, p2, p3, p4, 1e-6)
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)

	pt, err := LineLineIntersectionTolerance(p1, p2, p3, p4, MachineEpsilon)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pt.X, test.ShouldAlmostEqual, -1e5, 1)
}

func TestClosestPointsBetweenLines(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randVec := func() r3.Vector {
		return r3.Vector{X: rng.Float64()*10 - 5, Y: rng.Float64()*10 - 5, Z: rng.Float64()*10 - 5}
	}
	for i := 0; i < 50; i++ {
		p1, p2, p3, p4 := randVec(), randVec(), randVec(), randVec()
		pa, pb, mua, mub, err := ClosestPointsBetweenLines(p1, p2, p3, p4, DefaultLineEpsilon)
		test.That(t, err, test.ShouldBeNil)

		test.That(t, pa.Sub(p1.Add(p2.Sub(p1).Mul(mua))).Norm(), test.ShouldAlmostEqual, 0, 1e-9)
		test.That(t, pb.Sub(p3.Add(p4.Sub(p3).Mul(mub))).Norm(), test.ShouldAlmostEqual, 0, 1e-9)

		// the connecting segment is perpendicular to both lines
		seg := pb.Sub(pa)
		test.That(t, seg.Dot(p2.Sub(p1).Normalize()), test.ShouldAlmostEqual, 0, 1e-6)
		test.That(t, seg.Dot(p4.Sub(p3).Normalize()), test.ShouldAlmostEqual, 0, 1e-6)

		mid, err := LineLineIntersection(p1, p2, p3, p4)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mid.Sub(pa.Add(pb).Mul(0.5)).Norm(), test.ShouldBeLessThan, 1e-9)
		test.That(t, math.IsNaN(mid.X), test.ShouldBeFalse)
	}
}
