package record

// Tags as they appear at the start of a log line.
const (
	TagReferencePosition = "P"
	TagScan              = "S"
	TagPoleIndices       = "I"
	TagMotorTicks        = "M"
	TagFilteredPose      = "F"
	TagPoseUncertainty   = "E"
	TagLandmark          = "L"
	TagDetection         = "D"
	TagWorld             = "W"
	TagParticles         = "PA"
)

// Sub-type tokens following `L`, `D` and `W`.
const (
	SubtypeCylinder = "C"
	SubtypeEllipse  = "E"
)

// HasSubtype reports whether lines of tag carry a sub-type token after the tag.
func HasSubtype(tag string) bool {
	return tag == TagLandmark || tag == TagDetection || tag == TagWorld
}

// Kind identifies one of the sequences a decoded line lands in.
type Kind int

// The known kinds. KindNone marks a line that carries nothing to store.
const (
	KindNone Kind = iota
	KindReferencePosition
	KindScan
	KindPoleIndices
	KindMotorTicks
	KindFilteredPose
	KindPoseUncertainty
	KindLandmark
	KindDetections
	KindWorldLandmarks
	KindWorldEllipses
	KindParticles

	// NumKinds is one past the largest kind and sizes per-kind tables.
	NumKinds
)

var kindNames = [NumKinds]string{
	KindNone:              "none",
	KindReferencePosition: "P",
	KindScan:              "S",
	KindPoleIndices:       "I",
	KindMotorTicks:        "M",
	KindFilteredPose:      "F",
	KindPoseUncertainty:   "E",
	KindLandmark:          "L",
	KindDetections:        "D C",
	KindWorldLandmarks:    "W C",
	KindWorldEllipses:     "W E",
	KindParticles:         "PA",
}

// String returns the tag, with sub-type where there is one, that produces this kind.
func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return kindNames[k]
}
