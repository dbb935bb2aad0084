// Package ellipse converts 2-D covariance matrices into error ellipses.
package ellipse

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// An Ellipse is the orientation and half-axis lengths of a 2-D uncertainty region.
type Ellipse struct {
	// Angle is the orientation of the first axis in radians.
	Angle float64
	// Axis1 is the standard deviation along the axis at Angle.
	Axis1 float64
	// Axis2 is the standard deviation along the orthogonal axis.
	Axis2 float64
}

// Values returns the ellipse in its wire order: angle, axis1, axis2.
func (e Ellipse) Values() []float64 {
	return []float64{e.Angle, e.Axis1, e.Axis2}
}

// CovarianceFromStddev returns the covariance matrix whose error ellipse is e: variance Axis1² along
// Angle and Axis2² across it.
func CovarianceFromStddev(e Ellipse) *mat.SymDense {
	sin, cos := math.Sincos(e.Angle)
	v1, v2 := e.Axis1*e.Axis1, e.Axis2*e.Axis2
	return mat.NewSymDense(2, []float64{
		v1*cos*cos + v2*sin*sin, (v1 - v2) * sin * cos,
		(v1 - v2) * sin * cos, v1*sin*sin + v2*cos*cos,
	})
}

// NumericError is returned when a covariance matrix has eigenvalues that do not describe a
// real ellipse.
type NumericError struct {
	Eigenvalues []complex128
	Reason      string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("invalid covariance: %s (eigenvalues %v)", e.Reason, e.Eigenvalues)
}

// FromCovariance returns the error ellipse of a 2x2 covariance matrix.
//
// The axes are reported in the order the eigen-decomposition produces them, which is not sorted by
// size: Axis1 is not necessarily the major axis. Angle is the direction of the eigenvector that
// belongs to Axis1. Consumers of logged ellipses rely on this ordering, so it is kept as is.
func FromCovariance(cov mat.Matrix) (Ellipse, error) {
	if r, c := cov.Dims(); r != 2 || c != 2 {
		return Ellipse{}, errors.Errorf("covariance must be 2x2, got %dx%d", r, c)
	}
	a, b, c, d := cov.At(0, 0), cov.At(0, 1), cov.At(1, 0), cov.At(1, 1)
	for _, v := range []float64{a, b, c, d} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Ellipse{}, &NumericError{Reason: "non-finite covariance entry"}
		}
	}

	if a == d && b == c {
		if values, angle, ok := equalDiagonal(d, b); ok {
			return fromEigen(values, angle)
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(cov, mat.EigenRight); !ok {
		return Ellipse{}, errors.New("eigen-decomposition of covariance did not converge")
	}
	values := eig.Values(nil)
	var vectors mat.CDense
	eig.VectorsTo(&vectors)
	return fromEigen(values, math.Atan2(real(vectors.At(1, 0)), real(vectors.At(0, 0))))
}

func fromEigen(values []complex128, angle float64) (Ellipse, error) {
	for _, v := range values {
		switch {
		case math.IsNaN(real(v)) || math.IsNaN(imag(v)) || math.IsInf(real(v), 0):
			return Ellipse{}, &NumericError{Eigenvalues: values, Reason: "non-finite eigenvalue"}
		case imag(v) != 0:
			return Ellipse{}, &NumericError{Eigenvalues: values, Reason: "complex eigenvalue"}
		case real(v) < 0:
			return Ellipse{}, &NumericError{Eigenvalues: values, Reason: "negative eigenvalue"}
		}
	}
	return Ellipse{
		Angle: angle,
		Axis1: math.Sqrt(real(values[0])),
		Axis2: math.Sqrt(real(values[1])),
	}, nil
}

// dlamchP is the relative machine precision used by LAPACK's 2x2 Schur step.
const dlamchP = 0x1p-52

// equalDiagonal decomposes the symmetric matrix [d b; b d] the way LAPACK's dlanv2 does. With equal
// diagonal entries dlanv2 takes the positive root, so the eigenvalue d+|b| comes first; gonum takes
// the negative one and reverses the pair. ok is false when the off-diagonal is too small for the
// real-eigenvalue branch, where both agree.
func equalDiagonal(d, b float64) (values []complex128, angle float64, ok bool) {
	bcmax := math.Abs(b)
	z := bcmax
	if z < 4*dlamchP {
		return nil, 0, false
	}
	z = math.Sqrt(bcmax) * math.Sqrt(z)
	aa := d + z
	dd := d - bcmax/z*bcmax
	tau := math.Hypot(b, z)
	return []complex128{complex(aa, 0), complex(dd, 0)}, math.Atan2(b/tau, z/tau), true
}
