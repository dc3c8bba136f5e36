package transform

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/mat"
)

// ErrNoIntrinsics is when a camera does not have intrinsics parameters or other parameters.
var ErrNoIntrinsics = errors.New("camera intrinsic parameters are not available")

// NewNoIntrinsicsError is used when the intrinsics are not defined.
func NewNoIntrinsicsError(msg string) error {
	return errors.Wrapf(ErrNoIntrinsics, msg)
}

// PinholeCameraIntrinsics holds the linear part of a pinhole projection: the
// focal lengths and principal point, plus the image size the calibration was
// made for.
type PinholeCameraIntrinsics struct {
	Width  int     `json:"width_px" yaml:"width_px"`
	Height int     `json:"height_px" yaml:"height_px"`
	Fx     float64 `json:"fx" yaml:"fx"`
	Fy     float64 `json:"fy" yaml:"fy"`
	Ppx    float64 `json:"ppx" yaml:"ppx"`
	Ppy    float64 `json:"ppy" yaml:"ppy"`
}

// NewPinholeCameraIntrinsics builds intrinsics from an image size and a
// 4-vector ordered (fx, fy, cx, cy), validating the result.
func NewPinholeCameraIntrinsics(width, height int, intrinsics mat.Vector) (*PinholeCameraIntrinsics, error) {
	if intrinsics.Len() != 4 {
		return nil, errors.Errorf("expected a 4-vector (fx, fy, cx, cy), got length %d", intrinsics.Len())
	}
	params := &PinholeCameraIntrinsics{
		Width:  width,
		Height: height,
		Fx:     intrinsics.AtVec(0),
		Fy:     intrinsics.AtVec(1),
		Ppx:    intrinsics.AtVec(2),
		Ppy:    intrinsics.AtVec(3),
	}
	if err := params.CheckValid(); err != nil {
		return nil, err
	}
	return params, nil
}

// CheckValid checks if the fields for PinholeCameraIntrinsics have valid inputs.
func (params *PinholeCameraIntrinsics) CheckValid() error {
	if params == nil {
		return NewNoIntrinsicsError("Intrinsics do not exist")
	}
	if params.Width <= 0 || params.Height <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid size (%#v, %#v)", params.Width, params.Height))
	}
	if params.Fx <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid focal length Fx = %#v", params.Fx))
	}
	if params.Fy <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid focal length Fy = %#v", params.Fy))
	}
	if params.Ppx < 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal X point Ppx = %#v", params.Ppx))
	}
	if params.Ppy < 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal Y point Ppy = %#v", params.Ppy))
	}
	return nil
}

// NewPinholeCameraIntrinsicsFromJSONFile takes in a file path to a JSON and turns it into PinholeCameraIntrinsics.
func NewPinholeCameraIntrinsicsFromJSONFile(jsonPath string) (*PinholeCameraIntrinsics, error) {
	//nolint:gosec
	jsonFile, err := os.Open(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, "error opening JSON file")
	}
	defer utils.UncheckedErrorFunc(jsonFile.Close)
	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading JSON data")
	}
	intrinsics := &PinholeCameraIntrinsics{}
	if err := json.Unmarshal(byteValue, intrinsics); err != nil {
		return nil, errors.Wrap(err, "error parsing JSON string")
	}
	return intrinsics, nil
}

// NormalizePoint maps a pixel coordinate into the normalized camera frame,
// removing the intrinsic linear transform. It does not touch distortion.
func (params *PinholeCameraIntrinsics) NormalizePoint(pt r2.Point) r2.Point {
	return r2.Point{X: (pt.X - params.Ppx) / params.Fx, Y: (pt.Y - params.Ppy) / params.Fy}
}

// DenormalizePoint is the exact inverse of NormalizePoint, mapping a
// normalized coordinate back into pixel space.
func (params *PinholeCameraIntrinsics) DenormalizePoint(pt r2.Point) r2.Point {
	return r2.Point{X: pt.X*params.Fx + params.Ppx, Y: pt.Y*params.Fy + params.Ppy}
}

// NormalizePoints normalizes an ordered batch of points, preserving order.
func (params *PinholeCameraIntrinsics) NormalizePoints(pts []r2.Point) []r2.Point {
	out := make([]r2.Point, len(pts))
	for i, pt := range pts {
		out[i] = params.NormalizePoint(pt)
	}
	return out
}

// DenormalizePoints denormalizes an ordered batch of points, preserving order.
func (params *PinholeCameraIntrinsics) DenormalizePoints(pts []r2.Point) []r2.Point {
	out := make([]r2.Point, len(pts))
	for i, pt := range pts {
		out[i] = params.DenormalizePoint(pt)
	}
	return out
}

// NormalizeVector is NormalizePoint for the gonum vector representation.
func (params *PinholeCameraIntrinsics) NormalizeVector(v mat.Vector) *mat.VecDense {
	pt := params.NormalizePoint(r2.Point{X: v.AtVec(0), Y: v.AtVec(1)})
	return mat.NewVecDense(2, []float64{pt.X, pt.Y})
}

// DenormalizeVector is DenormalizePoint for the gonum vector representation.
func (params *PinholeCameraIntrinsics) DenormalizeVector(v mat.Vector) *mat.VecDense {
	pt := params.DenormalizePoint(r2.Point{X: v.AtVec(0), Y: v.AtVec(1)})
	return mat.NewVecDense(2, []float64{pt.X, pt.Y})
}

// NormalizeVectors normalizes an ordered batch of gonum vectors.
func (params *PinholeCameraIntrinsics) NormalizeVectors(vs []*mat.VecDense) []*mat.VecDense {
	out := make([]*mat.VecDense, len(vs))
	for i, v := range vs {
		out[i] = params.NormalizeVector(v)
	}
	return out
}

// DenormalizeVectors denormalizes an ordered batch of gonum vectors.
func (params *PinholeCameraIntrinsics) DenormalizeVectors(vs []*mat.VecDense) []*mat.VecDense {
	out := make([]*mat.VecDense, len(vs))
	for i, v := range vs {
		out[i] = params.DenormalizeVector(v)
	}
	return out
}

// GetCameraMatrix creates a new camera matrix and returns it.
// Camera matrix:
// [[fx 0 ppx],
//
//	[0 fy ppy],
//	[0 0  1]]
func (params *PinholeCameraIntrinsics) GetCameraMatrix() *mat.Dense {
	if params == nil {
		return nil
	}
	cameraMatrix := mat.NewDense(3, 3, nil)
	cameraMatrix.Set(0, 0, params.Fx)
	cameraMatrix.Set(1, 1, params.Fy)
	cameraMatrix.Set(0, 2, params.Ppx)
	cameraMatrix.Set(1, 2, params.Ppy)
	cameraMatrix.Set(2, 2, 1)
	return cameraMatrix
}
