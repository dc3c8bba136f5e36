package transform

import "github.com/pkg/errors"

// Iteration budget shared by the iterative undistortion solvers. Tolerance is
// in normalized (metric bearing) units.
const (
	maxUndistortIterations = 20
	undistortTolerance     = 1e-10
)

// BrownConrady is the radial-tangential ("radtan") distortion model.
type BrownConrady struct {
	RadialK1     float64 `json:"rk1"`
	RadialK2     float64 `json:"rk2"`
	RadialK3     float64 `json:"rk3"`
	TangentialP1 float64 `json:"tp1"`
	TangentialP2 float64 `json:"tp2"`
}

// NewBrownConrady takes 4 or 5 coefficients ordered (k1, k2, p1, p2[, k3]);
// a missing k3 is treated as zero.
func NewBrownConrady(inp []float64) (*BrownConrady, error) {
	if len(inp) != 4 && len(inp) != 5 {
		return nil, errors.Errorf("expected 4 or 5 coefficients (k1, k2, p1, p2, k3), got %d", len(inp))
	}
	k3 := 0.0
	if len(inp) == 5 {
		k3 = inp[4]
	}
	return &BrownConrady{
		RadialK1:     inp[0],
		RadialK2:     inp[1],
		RadialK3:     k3,
		TangentialP1: inp[2],
		TangentialP2: inp[3],
	}, nil
}

// CheckValid checks if the fields for BrownConrady have valid inputs.
func (bc *BrownConrady) CheckValid() error {
	if bc == nil {
		return InvalidDistortionError("BrownConrady shaped distortion_parameters not provided")
	}
	return nil
}

// ModelType returns the type of distortion model.
func (bc *BrownConrady) ModelType() DistortionType {
	return BrownConradyDistortionType
}

// Parameters returns the parameters of the distortion model in the
// (k1, k2, p1, p2, k3) order they were given in.
func (bc *BrownConrady) Parameters() []float64 {
	if bc == nil {
		return []float64{}
	}
	return []float64{bc.RadialK1, bc.RadialK2, bc.TangentialP1, bc.TangentialP2, bc.RadialK3}
}

// Transform applies the forward Brown-Conrady model to a normalized
// undistorted coordinate:
//
//	x_d = x_u * (1 + k1*r² + k2*r⁴ + k3*r⁶) + 2*p1*x_u*y_u + p2*(r² + 2*x_u²)
//	y_d = y_u * (1 + k1*r² + k2*r⁴ + k3*r⁶) + 2*p2*x_u*y_u + p1*(r² + 2*y_u²)
//
// where r² = x_u² + y_u².
func (bc *BrownConrady) Transform(xu, yu float64) (float64, float64) {
	if bc == nil {
		return xu, yu
	}
	r2 := xu*xu + yu*yu
	r4 := r2 * r2
	r6 := r4 * r2
	radDist := 1.0 + bc.RadialK1*r2 + bc.RadialK2*r4 + bc.RadialK3*r6
	xd := xu*radDist + 2.0*bc.TangentialP1*xu*yu + bc.TangentialP2*(r2+2.0*xu*xu)
	yd := yu*radDist + 2.0*bc.TangentialP2*xu*yu + bc.TangentialP1*(r2+2.0*yu*yu)
	return xd, yd
}

// Undistort solves the forward model for the undistorted coordinate using an
// iterative Newton-Raphson method, starting from the distorted point as the
// initial guess. The model has no closed-form inverse.
func (bc *BrownConrady) Undistort(xd, yd float64) (float64, float64, bool) {
	if bc == nil {
		return xd, yd, true
	}

	xu, yu := xd, yd
	converged := false

	for i := 0; i < maxUndistortIterations; i++ {
		r2 := xu*xu + yu*yu
		r4 := r2 * r2

		radDist := 1.0 + bc.RadialK1*r2 + bc.RadialK2*r4 + bc.RadialK3*r4*r2
		tanDistX := 2.0*bc.TangentialP1*xu*yu + bc.TangentialP2*(r2+2.0*xu*xu)
		tanDistY := 2.0*bc.TangentialP2*xu*yu + bc.TangentialP1*(r2+2.0*yu*yu)

		errX := xu*radDist + tanDistX - xd
		errY := yu*radDist + tanDistY - yd

		if errX*errX+errY*errY < undistortTolerance*undistortTolerance {
			converged = true
			break
		}

		// Jacobian of the forward model at the current estimate,
		// J = [[dxd/dxu, dxd/dyu], [dyd/dxu, dyd/dyu]]
		dRadDistDxu := 2.0 * xu * (bc.RadialK1 + 2.0*bc.RadialK2*r2 + 3.0*bc.RadialK3*r4)
		dRadDistDyu := 2.0 * yu * (bc.RadialK1 + 2.0*bc.RadialK2*r2 + 3.0*bc.RadialK3*r4)

		dxdDxu := radDist + xu*dRadDistDxu + 2.0*bc.TangentialP1*yu + 6.0*bc.TangentialP2*xu
		dxdDyu := xu*dRadDistDyu + 2.0*bc.TangentialP1*xu + 2.0*bc.TangentialP2*yu
		dydDxu := yu*dRadDistDxu + 2.0*bc.TangentialP2*yu + 2.0*bc.TangentialP1*xu
		dydDyu := radDist + yu*dRadDistDyu + 2.0*bc.TangentialP2*xu + 6.0*bc.TangentialP1*yu

		det := dxdDxu*dydDyu - dxdDyu*dydDxu
		if det == 0 {
			break
		}

		// [xu, yu] -= J^-1 * [errX, errY]
		xu -= (dydDyu*errX - dxdDyu*errY) / det
		yu -= (-dydDxu*errX + dxdDxu*errY) / det
	}

	return xu, yu, converged
}
