package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestRigidTransform(t *testing.T) {
	rot := mgl64.Rotate3DZ(math.Pi / 2)
	tf := NewRigidTransform(rot, r3.Vector{X: 1, Y: 2, Z: 3})

	t.Run("accessors", func(t *testing.T) {
		test.That(t, tf.Translation(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, tf.Rotation().ApproxEqual(rot), test.ShouldBeTrue)
		test.That(t, tf.At(3, 3), test.ShouldEqual, 1.)
		// local x axis points along world y after a quarter turn around z
		test.That(t, tf.RotationColumn(0).Sub(r3.Vector{Y: 1}).Norm(), test.ShouldBeLessThan, 1e-12)
	})

	t.Run("quaternion", func(t *testing.T) {
		expected := (&R4AA{Theta: math.Pi / 2, RZ: 1}).ToQuat()
		test.That(t, QuaternionAlmostEqual(tf.Quaternion(), expected, 1e-9), test.ShouldBeTrue)

		back := NewRigidTransformFromQuat(tf.Quaternion(), tf.Translation())
		test.That(t, back.AlmostEqual(tf, 1e-9), test.ShouldBeTrue)
	})

	t.Run("rows round trip", func(t *testing.T) {
		rows := tf.Rows()
		test.That(t, len(rows), test.ShouldEqual, 4)
		test.That(t, rows[0][3], test.ShouldEqual, 1.)
		test.That(t, rows[1][3], test.ShouldEqual, 2.)
		test.That(t, rows[2][3], test.ShouldEqual, 3.)

		var flat []float64
		for _, row := range rows {
			flat = append(flat, row...)
		}
		again, err := NewRigidTransformFromRows(flat)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, again, test.ShouldResemble, tf)

		_, err = NewRigidTransformFromRows(flat[:12])
		test.That(t, err, test.ShouldBeError, errors.New("a 4x4 transform needs 16 values, got 12"))
	})

	t.Run("compose", func(t *testing.T) {
		shift := NewRigidTransform(mgl64.Ident3(), r3.Vector{X: 1})
		composed := tf.Compose(shift)
		// the shift is applied in the rotated frame, so +x becomes +y
		test.That(t, composed.Translation().Sub(r3.Vector{X: 1, Y: 3, Z: 3}).Norm(), test.ShouldBeLessThan, 1e-12)
		test.That(t, IdentityTransform().Compose(tf), test.ShouldResemble, tf)
	})
}

func TestFlipCoordinateSystem(t *testing.T) {
	tf := NewRigidTransform(mgl64.Ident3(), r3.Vector{X: 1, Y: 2, Z: 3})

	for axis := 0; axis < 3; axis++ {
		flipped, err := FlipCoordinateSystem(tf, axis)
		test.That(t, err, test.ShouldBeNil)
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				expected := tf.At(row, col)
				if col == axis {
					expected = -expected
				}
				test.That(t, flipped.At(row, col), test.ShouldEqual, expected)
			}
		}
		// flipping a single axis changes handedness
		test.That(t, flipped.Rotation().Det(), test.ShouldAlmostEqual, -1)

		twice, err := FlipCoordinateSystem(flipped, axis)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, twice, test.ShouldResemble, tf)
	}

	test.That(t, FlipZ(tf).RotationColumn(2), test.ShouldResemble, r3.Vector{Z: -1})
	test.That(t, FlipZ(tf).Translation(), test.ShouldResemble, tf.Translation())

	_, err := FlipCoordinateSystem(tf, 3)
	test.That(t, errors.Is(err, ErrInvalidAxis), test.ShouldBeTrue)
	_, err = FlipCoordinateSystem(tf, -1)
	test.That(t, errors.Is(err, ErrInvalidAxis), test.ShouldBeTrue)
}

func TestQuaternionHelpers(t *testing.T) {
	q45x := quat.Number{Real: math.Cos(math.Pi / 8), Imag: math.Sin(math.Pi / 8)}

	t.Run("axis angle", func(t *testing.T) {
		aa := QuatToR4AA(q45x)
		test.That(t, aa.Theta, test.ShouldAlmostEqual, math.Pi/4)
		test.That(t, aa.RX, test.ShouldAlmostEqual, 1)
		q := aa.ToQuat()
		test.That(t, QuaternionAlmostEqual(q, q45x, 1e-12), test.ShouldBeTrue)
		test.That(t, aa.ToR3().Norm(), test.ShouldAlmostEqual, math.Pi/4)

		zero := NewR4AA()
		test.That(t, zero.ToQuat(), test.ShouldResemble, quat.Number{Real: 1})

		noAxis := &R4AA{Theta: 1}
		test.That(t, QuaternionAngularDistance(noAxis.ToQuat(), quat.Number{Real: 1}), test.ShouldAlmostEqual, 180/math.Pi)
	})

	t.Run("flip describes the same rotation", func(t *testing.T) {
		test.That(t, QuaternionAlmostEqual(q45x, Flip(q45x), 1e-12), test.ShouldBeTrue)
		test.That(t, QuaternionAngularDistance(q45x, Flip(q45x)), test.ShouldAlmostEqual, 0, 1e-5)
	})

	t.Run("angular distance", func(t *testing.T) {
		identity := quat.Number{Real: 1}
		test.That(t, QuaternionAngularDistance(identity, q45x), test.ShouldAlmostEqual, 45)
		// scaling does not change the rotation
		test.That(t, QuaternionAngularDistance(quat.Scale(3, identity), quat.Scale(0.5, q45x)), test.ShouldAlmostEqual, 45)
		// drift past one is clamped instead of producing NaN
		test.That(t, QuaternionAngularDistance(identity, quat.Number{Real: 1 + 1e-15}), test.ShouldEqual, 0.)
		test.That(t, Norm(q45x), test.ShouldAlmostEqual, math.Sin(math.Pi/8))
		test.That(t, Normalized(quat.Number{}), test.ShouldResemble, quat.Number{})
	})
}
