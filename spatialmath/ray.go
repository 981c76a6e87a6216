package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Above this condition number the normal equations are treated as singular.
const singularConditionLimit = 1e12

// Ray is a line through Start and End. For intersections it is treated as an infinite line.
type Ray struct {
	Start r3.Vector `json:"start"`
	End   r3.Vector `json:"end"`
}

// NewRay returns the ray from start to end.
func NewRay(start, end r3.Vector) Ray {
	return Ray{Start: start, End: end}
}

// Direction returns the unit direction of the ray, or ErrDegenerateRay if it has no length.
func (r Ray) Direction() (r3.Vector, error) {
	s := r.End.Sub(r.Start)
	norm := s.Norm()
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return r3.Vector{}, ErrDegenerateRay
	}
	return s.Mul(1 / norm), nil
}

// DistanceToRay returns the perpendicular distance from p to the infinite line through the ray.
func DistanceToRay(p r3.Vector, ray Ray) (float64, error) {
	n, err := ray.Direction()
	if err != nil {
		return 0, err
	}
	w := p.Sub(ray.Start)
	return w.Sub(n.Mul(w.Dot(n))).Norm(), nil
}

// SumSquaredRayDistances returns the sum over all rays of the squared distance from p to the ray.
// This is the quantity minimized by IntersectRays.
func SumSquaredRayDistances(p r3.Vector, rays []Ray) (float64, error) {
	var total float64
	for i, ray := range rays {
		d, err := DistanceToRay(p, ray)
		if err != nil {
			return 0, errors.Wrapf(err, "ray %d", i)
		}
		total += d * d
	}
	return total, nil
}

// LeastSquaresIntersection returns the point closest, in the least-squares sense, to all the lines
// defined by starts[i] and ends[i].
func LeastSquaresIntersection(starts, ends []r3.Vector) (r3.Vector, error) {
	if len(starts) != len(ends) {
		return r3.Vector{}, errors.Wrapf(ErrRayCountMismatch, "%d starts, %d ends", len(starts), len(ends))
	}
	rays := make([]Ray, len(starts))
	for i := range starts {
		rays[i] = Ray{Start: starts[i], End: ends[i]}
	}
	return IntersectRays(rays)
}

// LeastSquaresIntersectionDense is LeastSquaresIntersection for rays stored as two N×3 matrices.
func LeastSquaresIntersectionDense(starts, ends mat.Matrix) (r3.Vector, error) {
	sr, sc := starts.Dims()
	er, ec := ends.Dims()
	if sc != 3 || ec != 3 {
		return r3.Vector{}, errors.Errorf("ray matrices must have 3 columns, got %d and %d", sc, ec)
	}
	if sr != er {
		return r3.Vector{}, errors.Wrapf(ErrRayCountMismatch, "%d starts, %d ends", sr, er)
	}
	rays := make([]Ray, sr)
	for i := range rays {
		rays[i] = Ray{
			Start: r3.Vector{X: starts.At(i, 0), Y: starts.At(i, 1), Z: starts.At(i, 2)},
			End:   r3.Vector{X: ends.At(i, 0), Y: ends.At(i, 1), Z: ends.At(i, 2)},
		}
	}
	return IntersectRays(rays)
}

// IntersectRays solves for the point x minimizing the sum of squared perpendicular distances to every
// ray. With n_i the unit direction and a_i the start of ray i, x solves
//
//	Σ (n_i n_iᵀ - I) x = Σ (n_i n_iᵀ - I) a_i
//
// See Traa, "Least-Squares Intersection of Lines".
func IntersectRays(rays []Ray) (r3.Vector, error) {
	if len(rays) < 2 {
		return r3.Vector{}, errors.Wrapf(ErrSingularSystem, "need at least 2 rays, got %d", len(rays))
	}

	s := mat.NewSymDense(3, nil)
	c := mat.NewVecDense(3, nil)
	for i, ray := range rays {
		n, err := ray.Direction()
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "ray %d", i)
		}
		nv := [3]float64{n.X, n.Y, n.Z}
		a := [3]float64{ray.Start.X, ray.Start.Y, ray.Start.Z}
		for row := 0; row < 3; row++ {
			var proj float64
			for col := 0; col < 3; col++ {
				m := nv[row] * nv[col]
				if row == col {
					m--
				}
				if col >= row {
					s.SetSym(row, col, s.At(row, col)+m)
				}
				proj += m * a[col]
			}
			c.SetVec(row, c.AtVec(row)+proj)
		}
	}

	var lu mat.LU
	lu.Factorize(s)
	if cond := lu.Cond(); cond > singularConditionLimit || math.IsNaN(cond) {
		return r3.Vector{}, errors.Wrapf(ErrSingularSystem, "condition number %g", cond)
	}
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, c); err != nil {
		return r3.Vector{}, errors.Wrap(ErrSingularSystem, err.Error())
	}
	return r3.Vector{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)}, nil
}
