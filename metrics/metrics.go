// Package metrics compares an estimated camera trajectory against ground truth.
//
// For every index the translation error is the Euclidean distance between the two camera
// centers, and the rotation error is the angle, in degrees, of the rotation taking one
// orientation onto the other:
//
//	theta = 2 * acos(|q1 . q2|) * 180 / pi
//
// where q1 and q2 are the unit quaternions of the two rotation blocks. The absolute value folds
// q and -q together, and the dot product is clamped to [-1, 1] so rounding never produces NaN.
package metrics

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/pose-utils/poseutils/spatialmath"
	"github.com/pose-utils/poseutils/trajectory"
)

var (
	// ErrLengthMismatch is returned when the two trajectories do not have the same number of poses.
	ErrLengthMismatch = errors.New("trajectories have different lengths")
	// ErrNoErrors is returned when statistics are requested over an empty set of errors.
	ErrNoErrors = errors.New("no pose errors to summarize")
)

// PoseError is the difference between a true and a predicted pose.
type PoseError struct {
	// Translation is the distance between the two camera centers, in trajectory units.
	Translation float64 `json:"translation"`
	// RotationDeg is the angle between the two orientations, in degrees within [0, 180].
	RotationDeg float64 `json:"rotation_deg"`
}

// Between returns the error of pred against truth.
func Between(truth, pred spatialmath.RigidTransform) PoseError {
	return PoseError{
		Translation: truth.Translation().Sub(pred.Translation()).Norm(),
		RotationDeg: spatialmath.QuaternionAngularDistance(truth.Quaternion(), pred.Quaternion()),
	}
}

// RotationAndTranslationErrors returns the per-index errors of pred against truth. The two
// trajectories must have the same length; nothing is truncated.
func RotationAndTranslationErrors(truth, pred trajectory.Trajectory) ([]PoseError, error) {
	seq, err := Errors(truth, pred)
	if err != nil {
		return nil, err
	}
	results := make([]PoseError, 0, len(truth))
	for _, e := range seq {
		results = append(results, e)
	}
	return results, nil
}

// Errors is the lazy form of RotationAndTranslationErrors. The returned sequence yields
// (index, error) pairs in order, stops early if the consumer does, and can be ranged over
// more than once.
func Errors(truth, pred trajectory.Trajectory) (iter.Seq2[int, PoseError], error) {
	if len(truth) != len(pred) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d true poses, %d predicted", len(truth), len(pred))
	}
	return func(yield func(int, PoseError) bool) {
		for i := range truth {
			if !yield(i, Between(truth[i], pred[i])) {
				return
			}
		}
	}, nil
}
