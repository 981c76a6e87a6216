// Package openpose reads the body keypoints OpenPose predicts from RGB images and draws the
// resulting skeleton, either as a plot or on top of the source frame.
package openpose

import "fmt"

// Joint is one of the 25 BODY_25 keypoints, plus the background channel.
type Joint int

// The BODY_25 joints, in the order OpenPose writes them.
const (
	Nose Joint = iota
	Neck
	RShoulder
	RElbow
	RWrist
	LShoulder
	LElbow
	LWrist
	MidHip
	RHip
	RKnee
	RAnkle
	LHip
	LKnee
	LAnkle
	REye
	LEye
	REar
	LEar
	LBigToe
	LSmallToe
	LHeel
	RBigToe
	RSmallToe
	RHeel
	Background
)

// NumJoints is the number of keypoints written per person.
const NumJoints = int(Background)

var jointNames = [...]string{
	"Nose", "Neck", "RShoulder", "RElbow", "RWrist", "LShoulder", "LElbow", "LWrist",
	"MidHip", "RHip", "RKnee", "RAnkle", "LHip", "LKnee", "LAnkle", "REye", "LEye",
	"REar", "LEar", "LBigToe", "LSmallToe", "LHeel", "RBigToe", "RSmallToe", "RHeel",
	"Background",
}

func (j Joint) String() string {
	if j < 0 || int(j) >= len(jointNames) {
		return fmt.Sprintf("Joint(%d)", int(j))
	}
	return jointNames[j]
}

// JointsOfInterest are the joints of the head, arms, torso and legs; the face and feet
// keypoints are left out.
var JointsOfInterest = []Joint{
	Nose, Neck,
	RShoulder, RElbow, RWrist,
	LShoulder, LElbow, LWrist,
	MidHip,
	RHip, RKnee, RAnkle,
	LHip, LKnee, LAnkle,
}

// JointDescriptor is a single detected keypoint in image coordinates.
type JointDescriptor struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
	Joint      Joint   `json:"joint"`
}

// Bone connects two joints of the skeleton.
type Bone struct {
	From Joint
	To   Joint
}

func (b Bone) String() string {
	return b.From.String() + "-" + b.To.String()
}

// The skeleton's bones.
var (
	NoseNeck                 = Bone{Nose, Neck}
	NeckRightShoulder        = Bone{Neck, RShoulder}
	RightShoulderRightElbow  = Bone{RShoulder, RElbow}
	RightElbowRightWrist     = Bone{RElbow, RWrist}
	NeckLeftShoulder         = Bone{Neck, LShoulder}
	LeftShoulderLeftElbow    = Bone{LShoulder, LElbow}
	LeftElbowLeftWrist       = Bone{LElbow, LWrist}
	NeckMidHip               = Bone{Neck, MidHip}
	MidHipRightHip           = Bone{MidHip, RHip}
	RightHipRightKnee        = Bone{RHip, RKnee}
	RightKneeRightAnkle      = Bone{RKnee, RAnkle}
	MidHipLeftHip            = Bone{MidHip, LHip}
	LeftHipLeftKnee          = Bone{LHip, LKnee}
	LeftKneeLeftAnkle        = Bone{LKnee, LAnkle}
	NoseRightEye             = Bone{Nose, REye}
	NoseLeftEye              = Bone{Nose, LEye}
	RightEyeRightEar         = Bone{REye, REar}
	LeftEyeLeftEar           = Bone{LEye, LEar}
)

// Bones lists every named bone.
var Bones = []Bone{
	NoseNeck, NeckRightShoulder, RightShoulderRightElbow, RightElbowRightWrist,
	NeckLeftShoulder, LeftShoulderLeftElbow, LeftElbowLeftWrist,
	NeckMidHip, MidHipRightHip, RightHipRightKnee, RightKneeRightAnkle,
	MidHipLeftHip, LeftHipLeftKnee, LeftKneeLeftAnkle,
	NoseRightEye, NoseLeftEye, RightEyeRightEar, LeftEyeLeftEar,
}

// BonesOfInterest connects JointsOfInterest.
var BonesOfInterest = Bones[:14]
