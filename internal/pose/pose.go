// Package pose defines the skeleton data model consumed by the scoring engines.
package pose

// JointLabel names one of the 17 body keypoints produced by MoveNet-style
// detectors, following the COCO ordering convention.
type JointLabel string

// Joint labels in detector output order.
const (
	Nose          JointLabel = "nose"
	LeftEye       JointLabel = "left_eye"
	RightEye      JointLabel = "right_eye"
	LeftEar       JointLabel = "left_ear"
	RightEar      JointLabel = "right_ear"
	LeftShoulder  JointLabel = "left_shoulder"
	RightShoulder JointLabel = "right_shoulder"
	LeftElbow     JointLabel = "left_elbow"
	RightElbow    JointLabel = "right_elbow"
	LeftWrist     JointLabel = "left_wrist"
	RightWrist    JointLabel = "right_wrist"
	LeftHip       JointLabel = "left_hip"
	RightHip      JointLabel = "right_hip"
	LeftKnee      JointLabel = "left_knee"
	RightKnee     JointLabel = "right_knee"
	LeftAnkle     JointLabel = "left_ankle"
	RightAnkle    JointLabel = "right_ankle"

	// NumJoints is the size of the full joint set.
	NumJoints = 17
)

// JointLabels returns all joint labels in detector output order.
func JointLabels() []JointLabel {
	return []JointLabel{
		Nose, LeftEye, RightEye, LeftEar, RightEar,
		LeftShoulder, RightShoulder, LeftElbow, RightElbow,
		LeftWrist, RightWrist, LeftHip, RightHip,
		LeftKnee, RightKnee, LeftAnkle, RightAnkle,
	}
}

// Keypoint is a named 2D joint location with detection confidence.
type Keypoint struct {
	Name       JointLabel `json:"name"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Confidence float64    `json:"confidence"`
}

// Snapshot is one captured frame's full skeleton plus the detection score
// and the dimensions of the source image.
type Snapshot struct {
	Keypoints      []Keypoint `json:"keypoints"`
	DetectionScore float64    `json:"detection_score"`
	ImageWidth     int        `json:"image_width"`
	ImageHeight    int        `json:"image_height"`
}

// Keypoint returns the first keypoint with the given label.
func (s *Snapshot) Keypoint(name JointLabel) (Keypoint, bool) {
	if s == nil {
		return Keypoint{}, false
	}
	for _, kp := range s.Keypoints {
		if kp.Name == name {
			return kp, true
		}
	}
	return Keypoint{}, false
}
