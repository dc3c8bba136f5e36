// Package transform converts raw pixel observations from a calibrated pinhole
// camera into normalized, undistorted bearing measurements and back.
package transform

import "github.com/pkg/errors"

// DistortionType is the name of the distortion model.
type DistortionType string

const (
	// BrownConradyDistortionType is for simple lenses of narrow field easily modeled as a pinhole camera.
	BrownConradyDistortionType = DistortionType("brown_conrady")
	// KannalaBrandtDistortionType is for wide-angle and fisheye lens distortion.
	KannalaBrandtDistortionType = DistortionType("kannala_brandt")
)

// Distorter models lens distortion over normalized camera-frame coordinates.
// Transform applies the forward model, mapping an ideal (undistorted) point to
// where the lens actually images it. Undistort inverts the model iteratively;
// the returned flag reports whether the solve converged within tolerance, and
// on non-convergence the last iterate is still returned so pipelines can
// degrade gracefully instead of halting.
type Distorter interface {
	ModelType() DistortionType
	CheckValid() error
	Parameters() []float64
	Transform(x, y float64) (float64, float64)
	Undistort(x, y float64) (float64, float64, bool)
}

// InvalidDistortionError is used when the distortion_parameters are invalid.
func InvalidDistortionError(msg string) error {
	return errors.Wrapf(errors.New("invalid distortion_parameters"), msg)
}

// NewDistorter returns a Distorter given a valid DistortionType and its parameters.
// This switch is the single extension point for adding new distortion models.
func NewDistorter(distortionType DistortionType, parameters []float64) (Distorter, error) {
	switch distortionType {
	case BrownConradyDistortionType:
		return NewBrownConrady(parameters)
	case KannalaBrandtDistortionType:
		return NewKannalaBrandt(parameters)
	default:
		return nil, errors.Errorf("do not know how to parse %q distortion model", distortionType)
	}
}
