package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// RigidTransform is a 4x4 homogeneous transform made of a 3x3 rotation block and a translation column.
// Orthonormality of the rotation block is not enforced.
type RigidTransform struct {
	Mat mgl64.Mat4
}

// IdentityTransform returns the transform that neither rotates nor translates.
func IdentityTransform() RigidTransform {
	return RigidTransform{mgl64.Ident4()}
}

// NewRigidTransform builds a transform from a rotation matrix and a translation.
func NewRigidTransform(rotation mgl64.Mat3, translation r3.Vector) RigidTransform {
	m := rotation.Mat4()
	m.Set(0, 3, translation.X)
	m.Set(1, 3, translation.Y)
	m.Set(2, 3, translation.Z)
	return RigidTransform{m}
}

// NewRigidTransformFromQuat builds a transform from a rotation quaternion and a translation.
// The quaternion is normalized first.
func NewRigidTransformFromQuat(q quat.Number, translation r3.Vector) RigidTransform {
	mq := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Normalize()
	return NewRigidTransform(mq.Mat4().Mat3(), translation)
}

// NewRigidTransformFromRows builds a transform from 16 values in row-major order.
func NewRigidTransformFromRows(values []float64) (RigidTransform, error) {
	if len(values) != 16 {
		return RigidTransform{}, errors.Errorf("a 4x4 transform needs 16 values, got %d", len(values))
	}
	var m mgl64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.Set(row, col, values[row*4+col])
		}
	}
	return RigidTransform{m}, nil
}

// At returns the element at the given row and column.
func (t RigidTransform) At(row, col int) float64 {
	return t.Mat.At(row, col)
}

// Translation returns the translation column.
func (t RigidTransform) Translation() r3.Vector {
	col := t.Mat.Col(3)
	return r3.Vector{X: col.X(), Y: col.Y(), Z: col.Z()}
}

// Rotation returns the top left 3x3 block.
func (t RigidTransform) Rotation() mgl64.Mat3 {
	return t.Mat.Mat3()
}

// RotationColumn returns column i of the rotation block, i.e. the direction of the i-th local axis.
func (t RigidTransform) RotationColumn(i int) r3.Vector {
	col := t.Mat.Col(i)
	return r3.Vector{X: col.X(), Y: col.Y(), Z: col.Z()}
}

// Quaternion returns the rotation block as a quaternion.
func (t RigidTransform) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(t.Rotation().Mat4())
	return quat.Number{Real: q.W, Imag: q.V.X(), Jmag: q.V.Y(), Kmag: q.V.Z()}
}

// Compose returns t * other, i.e. other applied first.
func (t RigidTransform) Compose(other RigidTransform) RigidTransform {
	return RigidTransform{t.Mat.Mul4(other.Mat)}
}

// Rows returns the matrix as four rows.
func (t RigidTransform) Rows() [][]float64 {
	rows := make([][]float64, 4)
	for row := range rows {
		rows[row] = make([]float64, 4)
		for col := 0; col < 4; col++ {
			rows[row][col] = t.Mat.At(row, col)
		}
	}
	return rows
}

// AlmostEqual returns whether every element of the two transforms is within eps.
func (t RigidTransform) AlmostEqual(other RigidTransform, eps float64) bool {
	return t.Mat.ApproxEqualThreshold(other.Mat, eps)
}

// FlipCoordinateSystem converts a transform between right-handed and left-handed conventions by
// negating one axis column. axis must be 0, 1 or 2.
func FlipCoordinateSystem(t RigidTransform, axis int) (RigidTransform, error) {
	if axis < 0 || axis > 2 {
		return RigidTransform{}, errors.Wrapf(ErrInvalidAxis, "got %d", axis)
	}
	flipped := t.Mat
	for row := 0; row < 4; row++ {
		flipped.Set(row, axis, -flipped.At(row, axis))
	}
	return RigidTransform{flipped}, nil
}

// FlipZ flips the Z axis, the conventional choice when moving between right- and left-handed frames.
func FlipZ(t RigidTransform) RigidTransform {
	//nolint:errcheck
	flipped, _ := FlipCoordinateSystem(t, 2)
	return flipped
}
