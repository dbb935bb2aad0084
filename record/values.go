package record

import (
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/slamlog/ellipse"
)

// A Value is the decoded payload of one log line.
type Value interface {
	Kind() Kind
}

// ReferencePosition is a ground truth position in integer millimeters.
type ReferencePosition struct {
	X, Y int
}

// Kind implements Value.
func (ReferencePosition) Kind() Kind { return KindReferencePosition }

// Scan is one sensor sweep of distances in millimeters.
type Scan []float64

// Kind implements Value.
func (Scan) Kind() Kind { return KindScan }

// PoleIndices are scan indices of detected poles, -1 where a pole was seen but not located.
type PoleIndices []int

// Kind implements Value.
func (PoleIndices) Kind() Kind { return KindPoleIndices }

// MotorTicks is a left/right encoder tick pair.
type MotorTicks struct {
	Left, Right float64
}

// Kind implements Value.
func (MotorTicks) Kind() Kind { return KindMotorTicks }

// FilteredPose is the output of a position filter. It is either a Position or a Pose, depending on
// whether the filter estimated a heading.
type FilteredPose interface {
	Value
	Point() r2.Point
	isFilteredPose()
}

// Position is a filtered position without heading.
type Position struct {
	X, Y float64
}

// Kind implements Value.
func (Position) Kind() Kind { return KindFilteredPose }

// Point returns the position as a 2-D point.
func (p Position) Point() r2.Point { return r2.Point{X: p.X, Y: p.Y} }

func (Position) isFilteredPose() {}

// Pose is a position with heading in radians. It is also the element of a particle swarm.
type Pose struct {
	X, Y    float64
	Heading float64
}

// Kind implements Value.
func (Pose) Kind() Kind { return KindFilteredPose }

// Point returns the position part of the pose.
func (p Pose) Point() r2.Point { return r2.Point{X: p.X, Y: p.Y} }

// Values returns x, y and heading in wire order.
func (p Pose) Values() []float64 { return []float64{p.X, p.Y, p.Heading} }

func (Pose) isFilteredPose() {}

// PoseUncertainty is the error of a filtered pose. It is either a PositionUncertainty or a
// HeadingUncertainty, the latter adding the standard deviation of the heading.
type PoseUncertainty interface {
	Value
	ErrorEllipse() ellipse.Ellipse
	isPoseUncertainty()
}

// PositionUncertainty is the error ellipse of a filtered position.
type PositionUncertainty struct {
	Ellipse ellipse.Ellipse
}

// Kind implements Value.
func (PositionUncertainty) Kind() Kind { return KindPoseUncertainty }

// ErrorEllipse returns the position error ellipse.
func (u PositionUncertainty) ErrorEllipse() ellipse.Ellipse { return u.Ellipse }

func (PositionUncertainty) isPoseUncertainty() {}

// HeadingUncertainty is the error ellipse of a filtered position plus the heading standard
// deviation in radians.
type HeadingUncertainty struct {
	Ellipse       ellipse.Ellipse
	HeadingStddev float64
}

// Kind implements Value.
func (HeadingUncertainty) Kind() Kind { return KindPoseUncertainty }

// ErrorEllipse returns the position error ellipse.
func (u HeadingUncertainty) ErrorEllipse() ellipse.Ellipse { return u.Ellipse }

func (HeadingUncertainty) isPoseUncertainty() {}

// Landmark is a background landmark definition. Fields keep the decimal text the reader rendered
// so that a landmark written back out is byte for byte what was read.
type Landmark struct {
	Type   string
	Fields []string
}

// Kind implements Value.
func (Landmark) Kind() Kind { return KindLandmark }

// Cylinder parses the center and diameter of a cylinder landmark.
func (l Landmark) Cylinder() (x, y, diameter float64, err error) {
	if l.Type != SubtypeCylinder {
		return 0, 0, 0, errors.Errorf("landmark type %q is not a cylinder", l.Type)
	}
	if len(l.Fields) < 3 {
		return 0, 0, 0, errors.Errorf("cylinder needs x, y and diameter, got %d fields", len(l.Fields))
	}
	var vals [3]float64
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(l.Fields[i], 64); err != nil {
			return 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], nil
}

// Detections are the landmark positions detected in one scan.
type Detections []r2.Point

// Kind implements Value.
func (Detections) Kind() Kind { return KindDetections }

// WorldLandmarks are landmark positions in world coordinates for one scan.
type WorldLandmarks []r2.Point

// Kind implements Value.
func (WorldLandmarks) Kind() Kind { return KindWorldLandmarks }

// WorldEllipses are the error ellipses of one scan's world landmarks, matched by position.
type WorldEllipses []ellipse.Ellipse

// Kind implements Value.
func (WorldEllipses) Kind() Kind { return KindWorldEllipses }

// Swarm is the full particle set of one time step.
type Swarm []Pose

// Kind implements Value.
func (Swarm) Kind() Kind { return KindParticles }
