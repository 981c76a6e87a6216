// Package spatialmath defines the geometric operations used to reason about camera poses:
// line intersections, rigid transforms and quaternion helpers.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

const (
	// DefaultLineEpsilon is the tolerance used by LineLineIntersection.
	DefaultLineEpsilon = 1e-8

	// MachineEpsilon is the float64 machine epsilon, the tolerance used by MATLAB ports of the
	// line-line intersection routine.
	MachineEpsilon = 2.220446049250313e-16
)

// LineLineIntersection returns the midpoint of the shortest segment connecting the infinite line
// through p1 and p2 with the infinite line through p3 and p4, using DefaultLineEpsilon.
func LineLineIntersection(p1, p2, p3, p4 r3.Vector) (r3.Vector, error) {
	return LineLineIntersectionTolerance(p1, p2, p3, p4, DefaultLineEpsilon)
}

// LineLineIntersectionTolerance is LineLineIntersection with an explicit tolerance.
// Identical lines are parallel and therefore fail with ErrDegenerateGeometry.
func LineLineIntersectionTolerance(p1, p2, p3, p4 r3.Vector, eps float64) (r3.Vector, error) {
	pa, pb, _, _, err := ClosestPointsBetweenLines(p1, p2, p3, p4, eps)
	if err != nil {
		return r3.Vector{}, err
	}
	return pa.Add(pb).Mul(0.5), nil
}

// ClosestPointsBetweenLines calculates the segment pa-pb that is the shortest route between the
// lines p1-p2 and p3-p4, where
//
//	pa = p1 + mua (p2 - p1)
//	pb = p3 + mub (p4 - p3)
//
// See http://paulbourke.net/geometry/pointlineplane/ for the derivation.
func ClosestPointsBetweenLines(p1, p2, p3, p4 r3.Vector, eps float64) (pa, pb r3.Vector, mua, mub float64, err error) {
	p13 := p1.Sub(p3)
	p43 := p4.Sub(p3)
	if p43.Norm() < eps {
		return r3.Vector{}, r3.Vector{}, 0, 0, errors.Wrap(ErrDegenerateGeometry, "second line has zero length")
	}
	p21 := p2.Sub(p1)
	if p21.Norm() < eps {
		return r3.Vector{}, r3.Vector{}, 0, 0, errors.Wrap(ErrDegenerateGeometry, "first line has zero length")
	}

	d1343 := p13.Dot(p43)
	d4321 := p43.Dot(p21)
	d1321 := p13.Dot(p21)
	d4343 := p43.Dot(p43)
	d2121 := p21.Dot(p21)

	denom := d2121*d4343 - d4321*d4321
	if denom < eps {
		return r3.Vector{}, r3.Vector{}, 0, 0, errors.Wrapf(ErrDegenerateGeometry, "lines are parallel (denominator %g)", denom)
	}
	numer := d1343*d4321 - d1321*d4343

	mua = numer / denom
	mub = (d1343 + d4321*mua) / d4343

	pa = p1.Add(p21.Mul(mua))
	pb = p3.Add(p43.Mul(mub))
	return pa, pb, mua, mub, nil
}
