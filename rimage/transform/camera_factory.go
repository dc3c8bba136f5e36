package transform

// NewCamera builds a camera for the given distortion model from its
// coefficients and intrinsics. An unsupported model type or a coefficient
// count that does not fit the model yields a nil camera and an error; callers
// must check the error before use.
func NewCamera(model DistortionType, coefficients []float64, intrinsics *PinholeCameraIntrinsics) (*PinholeCamera, error) {
	if err := intrinsics.CheckValid(); err != nil {
		return nil, err
	}
	distortion, err := NewDistorter(model, coefficients)
	if err != nil {
		return nil, err
	}
	in := *intrinsics
	return &PinholeCamera{intrinsics: &in, distortion: distortion}, nil
}
