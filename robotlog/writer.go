package robotlog

import (
	"io"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/slamlog/ellipse"
	"go.viam.com/slamlog/record"
)

// Each writer below formats one line, the label followed by its values, and writes it to w in a
// single call. Nothing is written when an error occurs before the write.

// WriteLandmarks writes the x and y of each landmark position.
func WriteLandmarks(w io.Writer, label string, points []r2.Point) error {
	values := make([]float64, 0, 2*len(points))
	for _, p := range points {
		values = append(values, p.X, p.Y)
	}
	return writeLine(w, label, values)
}

// WriteErrorEllipses writes the error ellipse of each 2x2 covariance matrix as angle, axis1 and
// axis2. An invalid covariance fails the whole line.
func WriteErrorEllipses(w io.Writer, label string, covariances []mat.Matrix) error {
	values := make([]float64, 0, 3*len(covariances))
	for i, cov := range covariances {
		e, err := ellipse.FromCovariance(cov)
		if err != nil {
			return errors.Wrapf(err, "covariance %d", i)
		}
		values = append(values, e.Values()...)
	}
	return writeLine(w, label, values)
}

// WriteRobotVariance writes the four values of a robot pose error as given.
func WriteRobotVariance(w io.Writer, label string, variance [4]float64) error {
	return writeLine(w, label, variance[:])
}

// WriteDisplacedPose writes a pose moved forward along its heading by scannerDisplacement, which
// turns the pose of the robot's reference point into the pose of its scanner.
func WriteDisplacedPose(w io.Writer, label string, pose record.Pose, scannerDisplacement float64) error {
	return writeLine(w, label, DisplacePose(pose, scannerDisplacement).Values())
}

// DisplacePose moves pose forward along its heading by distance.
func DisplacePose(pose record.Pose, distance float64) record.Pose {
	return record.Pose{
		X:       pose.X + math.Cos(pose.Heading)*distance,
		Y:       pose.Y + math.Sin(pose.Heading)*distance,
		Heading: pose.Heading,
	}
}

// WriteParticles writes the pose of every particle. An empty swarm writes nothing, not even the
// label.
func WriteParticles(w io.Writer, label string, particles []record.Pose) error {
	if len(particles) == 0 {
		return nil
	}
	values := make([]float64, 0, 3*len(particles))
	for _, p := range particles {
		values = append(values, p.Values()...)
	}
	return writeLine(w, label, values)
}

func writeLine(w io.Writer, label string, values []float64) error {
	_, err := io.WriteString(w, record.FormatLine(label, values...))
	return err
}
