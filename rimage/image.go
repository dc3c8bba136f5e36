// Package rimage provides the raster image type consumed and produced by the
// camera undistortion routines.
package rimage

import (
	"image"
	"image/color"
)

// Image is a 2D RGB raster stored as a flat row-major slice of colors.
type Image struct {
	data          []Color
	width, height int
}

// NewImage returns a blank (black) image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		data:   make([]Color, width*height),
		width:  width,
		height: height,
	}
}

// NewImageFromBounds returns a blank image the size of the given rectangle.
func NewImageFromBounds(bounds image.Rectangle) *Image {
	return NewImage(bounds.Max.X, bounds.Max.Y)
}

// NewImageFromStdImage converts a stdlib image, copying its pixels.
func NewImageFromStdImage(img image.Image) *Image {
	if ri, ok := img.(*Image); ok {
		return ri.Clone()
	}
	bounds := img.Bounds()
	out := NewImage(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetXY(x-bounds.Min.X, y-bounds.Min.Y, NewColorFromColor(img.At(x, y)))
		}
	}
	return out
}

// Clone returns a deep copy.
func (i *Image) Clone() *Image {
	out := NewImage(i.width, i.height)
	copy(out.data, i.data)
	return out
}

func (i *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// In reports whether (x, y) lies inside the image.
func (i *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < i.width && y < i.height
}

func (i *Image) kxy(x, y int) int {
	return (y * i.width) + x
}

func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

func (i *Image) Width() int {
	return i.width
}

func (i *Image) Height() int {
	return i.height
}

func (i *Image) At(x, y int) color.Color {
	return i.data[i.kxy(x, y)]
}

func (i *Image) Get(p image.Point) Color {
	return i.data[i.kxy(p.X, p.Y)]
}

func (i *Image) GetXY(x, y int) Color {
	return i.data[i.kxy(x, y)]
}

func (i *Image) SetXY(x, y int, c Color) {
	i.data[i.kxy(x, y)] = c
}

func (i *Image) Set(p image.Point, c Color) {
	i.data[i.kxy(p.X, p.Y)] = c
}

// WriteTo writes the image to the given file, with the format determined by
// the file extension.
func (i *Image) WriteTo(fn string) error {
	return WriteImageToFile(fn, i)
}
