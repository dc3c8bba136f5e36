package transform

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/openvnav/camlens/rimage"
)

// PinholeCamera pairs pinhole intrinsics with a single lens distortion model
// and converts between raw pixel space, undistorted pixel space, and the
// normalized camera frame. Distortion coefficients and image size are fixed
// at construction; only the intrinsics are replaceable. The camera does no
// internal locking, so an owner sharing it across goroutines must serialize
// SetIntrinsics against concurrent reads.
type PinholeCamera struct {
	intrinsics *PinholeCameraIntrinsics
	distortion Distorter
	remap      []r2.Point // row-major per-pixel source lookup for UndistortImage
}

// Intrinsics returns a copy of the current intrinsic parameters.
func (c *PinholeCamera) Intrinsics() PinholeCameraIntrinsics {
	return *c.intrinsics
}

// SetIntrinsics replaces fx, fy, cx, cy from a 4-vector. The image size stays
// as calibrated. Any cached undistortion remap is discarded.
func (c *PinholeCamera) SetIntrinsics(intrinsics mat.Vector) error {
	if intrinsics.Len() != 4 {
		return errors.Errorf("expected a 4-vector (fx, fy, cx, cy), got length %d", intrinsics.Len())
	}
	in := *c.intrinsics
	in.Fx = intrinsics.AtVec(0)
	in.Fy = intrinsics.AtVec(1)
	in.Ppx = intrinsics.AtVec(2)
	in.Ppy = intrinsics.AtVec(3)
	if err := in.CheckValid(); err != nil {
		return err
	}
	c.intrinsics = &in
	c.remap = nil
	return nil
}

// Distortion returns the camera's distortion model.
func (c *PinholeCamera) Distortion() Distorter {
	return c.distortion
}

// DistortionCoefficients returns the model's coefficients in construction order.
func (c *PinholeCamera) DistortionCoefficients() []float64 {
	return c.distortion.Parameters()
}

// CameraMatrix returns the 3x3 intrinsic camera matrix.
func (c *PinholeCamera) CameraMatrix() *mat.Dense {
	return c.intrinsics.GetCameraMatrix()
}

// NormalizePoint maps a pixel coordinate into the normalized camera frame.
func (c *PinholeCamera) NormalizePoint(pt r2.Point) r2.Point {
	return c.intrinsics.NormalizePoint(pt)
}

// DenormalizePoint maps a normalized coordinate back into pixel space.
func (c *PinholeCamera) DenormalizePoint(pt r2.Point) r2.Point {
	return c.intrinsics.DenormalizePoint(pt)
}

// NormalizePoints normalizes an ordered batch of points.
func (c *PinholeCamera) NormalizePoints(pts []r2.Point) []r2.Point {
	return c.intrinsics.NormalizePoints(pts)
}

// DenormalizePoints denormalizes an ordered batch of points.
func (c *PinholeCamera) DenormalizePoints(pts []r2.Point) []r2.Point {
	return c.intrinsics.DenormalizePoints(pts)
}

// NormalizeVector is NormalizePoint for the gonum vector representation.
func (c *PinholeCamera) NormalizeVector(v mat.Vector) *mat.VecDense {
	return c.intrinsics.NormalizeVector(v)
}

// DenormalizeVector is DenormalizePoint for the gonum vector representation.
func (c *PinholeCamera) DenormalizeVector(v mat.Vector) *mat.VecDense {
	return c.intrinsics.DenormalizeVector(v)
}

// NormalizeVectors normalizes an ordered batch of gonum vectors.
func (c *PinholeCamera) NormalizeVectors(vs []*mat.VecDense) []*mat.VecDense {
	return c.intrinsics.NormalizeVectors(vs)
}

// DenormalizeVectors denormalizes an ordered batch of gonum vectors.
func (c *PinholeCamera) DenormalizeVectors(vs []*mat.VecDense) []*mat.VecDense {
	return c.intrinsics.DenormalizeVectors(vs)
}

// UndistortPoint removes lens distortion from a raw pixel coordinate. With
// normalize false the result stays in pixel units (undistorted pixel space);
// with normalize true it is returned in the normalized camera frame. The flag
// reports solver convergence; on non-convergence the best available estimate
// is still returned.
func (c *PinholeCamera) UndistortPoint(pt r2.Point, normalize bool) (r2.Point, bool) {
	n := c.intrinsics.NormalizePoint(pt)
	x, y, converged := c.distortion.Undistort(n.X, n.Y)
	out := r2.Point{X: x, Y: y}
	if !normalize {
		out = c.intrinsics.DenormalizePoint(out)
	}
	return out, converged
}

// UndistortPoints undistorts an ordered batch of raw pixel coordinates,
// elementwise identical to calling UndistortPoint on each.
func (c *PinholeCamera) UndistortPoints(pts []r2.Point, normalize bool) []r2.Point {
	out := make([]r2.Point, len(pts))
	for i, pt := range pts {
		out[i], _ = c.UndistortPoint(pt, normalize)
	}
	return out
}

// UndistortVector undistorts a point in the gonum vector representation by
// converting to the point representation and delegating, so both
// representations share one solver per model.
func (c *PinholeCamera) UndistortVector(v mat.Vector, normalize bool) (*mat.VecDense, bool) {
	pt, converged := c.UndistortPoint(r2.Point{X: v.AtVec(0), Y: v.AtVec(1)}, normalize)
	return mat.NewVecDense(2, []float64{pt.X, pt.Y}), converged
}

// UndistortVectors undistorts an ordered batch of gonum vectors.
func (c *PinholeCamera) UndistortVectors(vs []*mat.VecDense, normalize bool) []*mat.VecDense {
	out := make([]*mat.VecDense, len(vs))
	for i, v := range vs {
		out[i], _ = c.UndistortVector(v, normalize)
	}
	return out
}

// DistortionMap is a function that transforms undistorted input pixels (u,v)
// to the distorted pixels (x,y) under the camera's forward model.
func (c *PinholeCamera) DistortionMap() func(u, v float64) (float64, float64) {
	in := c.intrinsics
	return func(u, v float64) (float64, float64) {
		x := (u - in.Ppx) / in.Fx
		y := (v - in.Ppy) / in.Fy
		x, y = c.distortion.Transform(x, y)
		x = x*in.Fx + in.Ppx
		y = y*in.Fy + in.Ppy
		return x, y
	}
}

// undistortionRemap builds the per-pixel source lookup table once per
// intrinsics/coefficient configuration and reuses it across frames.
func (c *PinholeCamera) undistortionRemap() []r2.Point {
	if c.remap != nil {
		return c.remap
	}
	distortionMap := c.DistortionMap()
	remap := make([]r2.Point, c.intrinsics.Width*c.intrinsics.Height)
	i := 0
	for v := 0; v < c.intrinsics.Height; v++ {
		for u := 0; u < c.intrinsics.Width; u++ {
			x, y := distortionMap(float64(u), float64(v))
			remap[i] = r2.Point{X: x, Y: y}
			i++
		}
	}
	c.remap = remap
	return remap
}

// UndistortImage takes an input image and creates a new image the same size,
// undistorted according to the camera's distortion model. A bilinear
// interpolation is used to interpolate values between image pixels; output
// pixels whose source falls outside the input are black.
func (c *PinholeCamera) UndistortImage(img *rimage.Image) (*rimage.Image, error) {
	if img == nil {
		return nil, errors.New("input image is nil")
	}
	if c.intrinsics.Width != img.Width() || c.intrinsics.Height != img.Height() {
		return nil, errors.Errorf("img dimension and intrinsics don't match Image(%d,%d) != Intrinsics(%d,%d)",
			img.Width(), img.Height(), c.intrinsics.Width, c.intrinsics.Height)
	}
	remap := c.undistortionRemap()
	undistorted := rimage.NewImage(c.intrinsics.Width, c.intrinsics.Height)
	i := 0
	for v := 0; v < c.intrinsics.Height; v++ {
		for u := 0; u < c.intrinsics.Width; u++ {
			if col := rimage.BilinearInterpolationColor(remap[i], img); col != nil {
				undistorted.SetXY(u, v, *col)
			} else {
				undistorted.SetXY(u, v, rimage.Black)
			}
			i++
		}
	}
	return undistorted, nil
}
