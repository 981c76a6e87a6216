package openpose

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// ErrInvalidKeypoints is returned when a keypoints file does not describe exactly one fully
// specified person.
var ErrInvalidKeypoints = errors.New("invalid openpose keypoints")

// valuesPerJoint is x, y and confidence.
const valuesPerJoint = 3

type keypointsFile struct {
	People []struct {
		// pointers so that JSON nulls can be told apart from zeros
		PoseKeypoints2D []*float64 `json:"pose_keypoints_2d"`
	} `json:"people"`
}

// ReadJSON reads the keypoints of the single person in an OpenPose JSON file.
func ReadJSON(path string) ([]JointDescriptor, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)

	joints, err := ParseJSON(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	return joints, nil
}

// ParseJSON decodes OpenPose JSON output holding exactly one person with all 25 joints.
func ParseJSON(r io.Reader) ([]JointDescriptor, error) {
	var file keypointsFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decoding keypoints")
	}
	if len(file.People) != 1 {
		return nil, errors.Wrapf(ErrInvalidKeypoints, "expected exactly one person, got %d", len(file.People))
	}
	values := file.People[0].PoseKeypoints2D
	if len(values) != NumJoints*valuesPerJoint {
		return nil, errors.Wrapf(ErrInvalidKeypoints,
			"expected %d values (x, y, confidence per joint), got %d", NumJoints*valuesPerJoint, len(values))
	}

	var errs error
	joints := make([]JointDescriptor, 0, NumJoints)
	for i, triple := range lo.Chunk(values, valuesPerJoint) {
		joint := Joint(i)
		for k, name := range []string{"x", "y", "confidence"} {
			if triple[k] == nil {
				errs = multierr.Append(errs, errors.Errorf("%v: %s is null", joint, name))
			}
		}
		if errs != nil {
			continue
		}
		joints = append(joints, JointDescriptor{X: *triple[0], Y: *triple[1], Confidence: *triple[2], Joint: joint})
	}
	if errs != nil {
		return nil, errors.Wrap(ErrInvalidKeypoints, errs.Error())
	}
	return joints, nil
}

// Lookup indexes joints by type. Later duplicates win.
func Lookup(joints []JointDescriptor) map[Joint]JointDescriptor {
	return lo.SliceToMap(joints, func(j JointDescriptor) (Joint, JointDescriptor) {
		return j.Joint, j
	})
}
