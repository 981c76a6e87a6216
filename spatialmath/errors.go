package spatialmath

import "github.com/pkg/errors"

var (
	// ErrDegenerateGeometry is returned when a line has no direction or two lines are (nearly) parallel,
	// so that no unique closest pair of points exists.
	ErrDegenerateGeometry = errors.New("could not find an intersection: degenerate or parallel lines")

	// ErrDegenerateRay is returned when a ray's start and end coincide.
	ErrDegenerateRay = errors.New("degenerate ray: start and end points coincide")

	// ErrSingularSystem is returned when the least-squares normal equations have no unique solution.
	ErrSingularSystem = errors.New("singular system: rays do not determine a unique intersection")

	// ErrRayCountMismatch is returned when the number of ray starts differs from the number of ray ends.
	ErrRayCountMismatch = errors.New("number of ray starts and ends differ")

	// ErrInvalidAxis is returned when a coordinate axis outside of {0, 1, 2} is requested.
	ErrInvalidAxis = errors.New("axis must be 0, 1 or 2")
)
