package transform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	params := &PinholeCameraIntrinsics{Width: 640, Height: 480, Fx: 500, Fy: 500, Ppx: 320, Ppy: 240}
	pts := []r2.Point{
		{0, 0},
		{320, 240},
		{420, 240},
		{639, 479},
		{-5.5, 700.25},
	}
	for _, pt := range pts {
		got := params.DenormalizePoint(params.NormalizePoint(pt))
		test.That(t, got.X, test.ShouldAlmostEqual, pt.X, 1e-9)
		test.That(t, got.Y, test.ShouldAlmostEqual, pt.Y, 1e-9)
	}
}

func TestNormalizePoint(t *testing.T) {
	params := &PinholeCameraIntrinsics{Width: 640, Height: 480, Fx: 500, Fy: 500, Ppx: 320, Ppy: 240}
	n := params.NormalizePoint(r2.Point{X: 420, Y: 240})
	test.That(t, n.X, test.ShouldAlmostEqual, 0.2, 1e-12)
	test.That(t, n.Y, test.ShouldAlmostEqual, 0.0, 1e-12)
}

func TestNormalizeBatchMatchesSingle(t *testing.T) {
	params := &PinholeCameraIntrinsics{Width: 640, Height: 480, Fx: 833.1, Fy: 830.7, Ppx: 322.4, Ppy: 249.9}
	pts := []r2.Point{{10, 20}, {320, 240}, {600, 10}}
	batch := params.NormalizePoints(pts)
	test.That(t, batch, test.ShouldHaveLength, len(pts))
	for i, pt := range pts {
		single := params.NormalizePoint(pt)
		test.That(t, batch[i].X, test.ShouldEqual, single.X)
		test.That(t, batch[i].Y, test.ShouldEqual, single.Y)
	}
}

func TestNormalizeVectorMatchesPoint(t *testing.T) {
	params := &PinholeCameraIntrinsics{Width: 640, Height: 480, Fx: 500, Fy: 500, Ppx: 320, Ppy: 240}
	pt := params.NormalizePoint(r2.Point{X: 101.5, Y: 333.25})
	vec := params.NormalizeVector(mat.NewVecDense(2, []float64{101.5, 333.25}))
	test.That(t, vec.AtVec(0), test.ShouldEqual, pt.X)
	test.That(t, vec.AtVec(1), test.ShouldEqual, pt.Y)

	back := params.DenormalizeVector(vec)
	test.That(t, back.AtVec(0), test.ShouldAlmostEqual, 101.5, 1e-9)
	test.That(t, back.AtVec(1), test.ShouldAlmostEqual, 333.25, 1e-9)

	vecs := params.NormalizeVectors([]*mat.VecDense{mat.NewVecDense(2, []float64{101.5, 333.25})})
	test.That(t, vecs, test.ShouldHaveLength, 1)
	test.That(t, vecs[0].AtVec(0), test.ShouldEqual, pt.X)
	roundTrip := params.DenormalizeVectors(vecs)
	test.That(t, roundTrip[0].AtVec(1), test.ShouldAlmostEqual, 333.25, 1e-9)
}

func TestCheckValid(t *testing.T) {
	var nilParams *PinholeCameraIntrinsics
	test.That(t, nilParams.CheckValid(), test.ShouldNotBeNil)

	params := &PinholeCameraIntrinsics{Width: 640, Height: 480, Fx: 500, Fy: 500, Ppx: 320, Ppy: 240}
	test.That(t, params.CheckValid(), test.ShouldBeNil)

	bad := *params
	bad.Fx = 0
	err := bad.CheckValid()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "Fx")

	bad = *params
	bad.Width = 0
	test.That(t, bad.CheckValid(), test.ShouldNotBeNil)
}

func TestNewPinholeCameraIntrinsics(t *testing.T) {
	params, err := NewPinholeCameraIntrinsics(640, 480, mat.NewVecDense(4, []float64{500, 501, 320, 240}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.Fy, test.ShouldEqual, 501)

	_, err = NewPinholeCameraIntrinsics(640, 480, mat.NewVecDense(3, []float64{500, 501, 320}))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "4-vector")

	_, err = NewPinholeCameraIntrinsics(640, 480, mat.NewVecDense(4, []float64{0, 501, 320, 240}))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCameraMatrix(t *testing.T) {
	params := &PinholeCameraIntrinsics{Width: 640, Height: 480, Fx: 500, Fy: 510, Ppx: 320, Ppy: 240}
	m := params.GetCameraMatrix()
	test.That(t, m.At(0, 0), test.ShouldEqual, 500)
	test.That(t, m.At(1, 1), test.ShouldEqual, 510)
	test.That(t, m.At(0, 2), test.ShouldEqual, 320)
	test.That(t, m.At(1, 2), test.ShouldEqual, 240)
	test.That(t, m.At(2, 2), test.ShouldEqual, 1)
	test.That(t, m.At(0, 1), test.ShouldEqual, 0)
}

func TestIntrinsicsFromJSONFile(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "intrinsics.json")
	data := `{"width_px": 640, "height_px": 480, "fx": 500, "fy": 500, "ppx": 320, "ppy": 240}`
	test.That(t, os.WriteFile(jsonPath, []byte(data), 0o600), test.ShouldBeNil)

	params, err := NewPinholeCameraIntrinsicsFromJSONFile(jsonPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.Width, test.ShouldEqual, 640)
	test.That(t, params.Fx, test.ShouldEqual, 500)
	test.That(t, params.CheckValid(), test.ShouldBeNil)

	_, err = NewPinholeCameraIntrinsicsFromJSONFile(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}
