package rimage

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func makeTestImage() *Image {
	img := NewImage(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetXY(x, y, NewColor(uint8(x*40), uint8(y*80), 100))
		}
	}
	return img
}

func TestNearestNeighborColor(t *testing.T) {
	img := makeTestImage()

	c := NearestNeighborColor(r2.Point{X: 1.2, Y: 0.4}, img)
	test.That(t, c, test.ShouldNotBeNil)
	test.That(t, *c, test.ShouldResemble, img.GetXY(1, 0))

	c = NearestNeighborColor(r2.Point{X: 1.6, Y: 1.5}, img)
	test.That(t, c, test.ShouldNotBeNil)
	test.That(t, *c, test.ShouldResemble, img.GetXY(2, 2))

	test.That(t, NearestNeighborColor(r2.Point{X: -3, Y: 0}, img), test.ShouldBeNil)
	test.That(t, NearestNeighborColor(r2.Point{X: 0, Y: 5}, img), test.ShouldBeNil)
}

func TestBilinearInterpolationColor(t *testing.T) {
	img := makeTestImage()

	// integer coordinates return the pixel exactly
	c := BilinearInterpolationColor(r2.Point{X: 2, Y: 1}, img)
	test.That(t, c, test.ShouldNotBeNil)
	test.That(t, *c, test.ShouldResemble, img.GetXY(2, 1))

	// halfway between two horizontal neighbors blends their red channels
	c = BilinearInterpolationColor(r2.Point{X: 0.5, Y: 0}, img)
	test.That(t, c, test.ShouldNotBeNil)
	test.That(t, c.R, test.ShouldEqual, uint8(20))
	test.That(t, c.G, test.ShouldEqual, uint8(0))
	test.That(t, c.B, test.ShouldEqual, uint8(100))

	// center of a 2x2 block averages all four pixels
	c = BilinearInterpolationColor(r2.Point{X: 0.5, Y: 0.5}, img)
	test.That(t, c, test.ShouldNotBeNil)
	test.That(t, c.R, test.ShouldEqual, uint8(20))
	test.That(t, c.G, test.ShouldEqual, uint8(40))

	// out of bounds
	test.That(t, BilinearInterpolationColor(r2.Point{X: -0.1, Y: 0}, img), test.ShouldBeNil)
	test.That(t, BilinearInterpolationColor(r2.Point{X: 3.01, Y: 0}, img), test.ShouldBeNil)
	test.That(t, BilinearInterpolationColor(r2.Point{X: 0, Y: 2.5}, img), test.ShouldBeNil)

	// the far corner is still in bounds
	c = BilinearInterpolationColor(r2.Point{X: 3, Y: 2}, img)
	test.That(t, c, test.ShouldNotBeNil)
	test.That(t, *c, test.ShouldResemble, img.GetXY(3, 2))
}
