package trajectory_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/pose-utils/poseutils/spatialmath"
	"github.com/pose-utils/poseutils/testutils"
	"github.com/pose-utils/poseutils/trajectory"
)

func TestTrajectoryAccessors(t *testing.T) {
	tr := testutils.CircleTrajectory(4, 1)
	ts := tr.Translations()
	test.That(t, len(ts), test.ShouldEqual, 4)
	test.That(t, ts[0].X, test.ShouldAlmostEqual, 1)
	test.That(t, ts[1].Y, test.ShouldAlmostEqual, 1)

	qs := tr.Quaternions()
	test.That(t, len(qs), test.ShouldEqual, 4)
	test.That(t, spatialmath.QuaternionAngularDistance(qs[0], qs[1]), test.ShouldAlmostEqual, 90)

	minPt, maxPt := tr.Bounds()
	test.That(t, minPt.X, test.ShouldAlmostEqual, -1)
	test.That(t, maxPt.Y, test.ShouldAlmostEqual, 1)
	test.That(t, tr.PathLength(), test.ShouldAlmostEqual, 3*math.Sqrt2)

	empty := trajectory.Trajectory{}
	test.That(t, empty.PathLength(), test.ShouldEqual, 0.)
	minPt, maxPt = empty.Bounds()
	test.That(t, minPt, test.ShouldResemble, r3.Vector{})
	test.That(t, maxPt, test.ShouldResemble, r3.Vector{})
}

func TestTrajectoryFlip(t *testing.T) {
	tr := testutils.CircleTrajectory(5, 3)
	flipped, err := tr.Flip(1)
	test.That(t, err, test.ShouldBeNil)
	for i := range tr {
		test.That(t, flipped[i].RotationColumn(1), test.ShouldResemble, tr[i].RotationColumn(1).Mul(-1))
		test.That(t, flipped[i].Translation(), test.ShouldResemble, tr[i].Translation())
	}

	_, err = tr.Flip(5)
	test.That(t, errors.Is(err, spatialmath.ErrInvalidAxis), test.ShouldBeTrue)
}
