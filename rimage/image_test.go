package rimage

import (
	"image"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestImageBasics(t *testing.T) {
	img := NewImage(10, 5)
	test.That(t, img.Width(), test.ShouldEqual, 10)
	test.That(t, img.Height(), test.ShouldEqual, 5)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 10, 5))
	test.That(t, img.In(9, 4), test.ShouldBeTrue)
	test.That(t, img.In(10, 4), test.ShouldBeFalse)
	test.That(t, img.In(-1, 0), test.ShouldBeFalse)

	c := NewColor(10, 20, 30)
	img.SetXY(3, 2, c)
	test.That(t, img.GetXY(3, 2), test.ShouldResemble, c)
	test.That(t, img.Get(image.Point{3, 2}), test.ShouldResemble, c)

	clone := img.Clone()
	clone.SetXY(3, 2, NewColor(1, 1, 1))
	test.That(t, img.GetXY(3, 2), test.ShouldResemble, c)
}

func TestNewImageFromStdImage(t *testing.T) {
	std := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	std.Set(1, 2, NewColor(50, 60, 70))
	img := NewImageFromStdImage(std)
	test.That(t, img.Width(), test.ShouldEqual, 4)
	test.That(t, img.GetXY(1, 2), test.ShouldResemble, NewColor(50, 60, 70))
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, NewColor(0, 0, 0))
}

func TestImageFileRoundTrip(t *testing.T) {
	img := NewImage(8, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetXY(x, y, NewColor(uint8(x*30), uint8(y*40), uint8(x+y)))
		}
	}
	path := filepath.Join(t.TempDir(), "out.png")
	test.That(t, img.WriteTo(path), test.ShouldBeNil)

	read, err := NewImageFromFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read.Width(), test.ShouldEqual, 8)
	test.That(t, read.Height(), test.ShouldEqual, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			test.That(t, read.GetXY(x, y), test.ShouldResemble, img.GetXY(x, y))
		}
	}

	_, err = NewImageFromFile(filepath.Join(t.TempDir(), "missing.png"))
	test.That(t, err, test.ShouldNotBeNil)
}
