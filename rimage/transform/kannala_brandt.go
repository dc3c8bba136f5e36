package transform

import (
	"math"

	"github.com/pkg/errors"
)

// KannalaBrandt is the equidistant fisheye distortion model. The distorted
// radius is a polynomial in the angle θ between the bearing and the optical
// axis:
//
//	θ_d = θ * (1 + k1*θ² + k2*θ⁴ + k3*θ⁶ + k4*θ⁸), θ = atan(r)
//
// with the result scaled back into x/y by the ratio θ_d/r.
type KannalaBrandt struct {
	K1 float64 `json:"k1"`
	K2 float64 `json:"k2"`
	K3 float64 `json:"k3"`
	K4 float64 `json:"k4"`
}

// NewKannalaBrandt takes exactly 4 angular-polynomial coefficients (k1, k2, k3, k4).
func NewKannalaBrandt(inp []float64) (*KannalaBrandt, error) {
	if len(inp) != 4 {
		return nil, errors.Errorf("expected 4 coefficients (k1, k2, k3, k4), got %d", len(inp))
	}
	return &KannalaBrandt{inp[0], inp[1], inp[2], inp[3]}, nil
}

// CheckValid checks if the fields for KannalaBrandt have valid inputs.
func (kb *KannalaBrandt) CheckValid() error {
	if kb == nil {
		return InvalidDistortionError("KannalaBrandt shaped distortion_parameters not provided")
	}
	return nil
}

// ModelType returns the type of distortion model.
func (kb *KannalaBrandt) ModelType() DistortionType {
	return KannalaBrandtDistortionType
}

// Parameters returns the parameters of the distortion model as a list of floats.
func (kb *KannalaBrandt) Parameters() []float64 {
	if kb == nil {
		return []float64{}
	}
	return []float64{kb.K1, kb.K2, kb.K3, kb.K4}
}

func (kb *KannalaBrandt) distortTheta(theta float64) float64 {
	t2 := theta * theta
	return theta * (1.0 + kb.K1*t2 + kb.K2*t2*t2 + kb.K3*t2*t2*t2 + kb.K4*t2*t2*t2*t2)
}

// Transform applies the forward equidistant model to a normalized undistorted
// coordinate. Points at the optical center are returned unchanged.
func (kb *KannalaBrandt) Transform(xu, yu float64) (float64, float64) {
	if kb == nil {
		return xu, yu
	}
	r := math.Hypot(xu, yu)
	if r < 1e-12 {
		return xu, yu
	}
	theta := math.Atan(r)
	scale := kb.distortTheta(theta) / r
	return xu * scale, yu * scale
}

// Undistort solves θ_d → θ by Newton iteration over the monotone part of the
// angular polynomial, then rescales the distorted coordinate by tan(θ)/θ_d.
func (kb *KannalaBrandt) Undistort(xd, yd float64) (float64, float64, bool) {
	if kb == nil {
		return xd, yd, true
	}
	rd := math.Hypot(xd, yd)
	if rd < 1e-12 {
		return xd, yd, true
	}

	theta := rd // distorted radius is the angle to first order
	converged := false
	for i := 0; i < maxUndistortIterations; i++ {
		t2 := theta * theta
		f := theta*(1.0+kb.K1*t2+kb.K2*t2*t2+kb.K3*t2*t2*t2+kb.K4*t2*t2*t2*t2) - rd
		if math.Abs(f) < undistortTolerance {
			converged = true
			break
		}
		deriv := 1.0 + 3.0*kb.K1*t2 + 5.0*kb.K2*t2*t2 + 7.0*kb.K3*t2*t2*t2 + 9.0*kb.K4*t2*t2*t2*t2
		if deriv == 0 {
			break
		}
		theta -= f / deriv
	}

	scale := math.Tan(theta) / rd
	return xd * scale, yd * scale, converged
}
