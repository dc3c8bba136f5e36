package rimage

import (
	"math"

	"github.com/golang/geo/r2"
)

// NearestNeighborColor returns the color of the pixel closest to pt, or nil
// if pt falls outside the image.
func NearestNeighborColor(pt r2.Point, img *Image) *Color {
	x := int(math.Round(pt.X))
	y := int(math.Round(pt.Y))
	if !img.In(x, y) {
		return nil
	}
	c := img.GetXY(x, y)
	return &c
}

// BilinearInterpolationColor approximates the color at a sub-pixel location
// by blending the four surrounding pixels, weighted by area. Returns nil if
// pt falls outside the image.
func BilinearInterpolationColor(pt r2.Point, img *Image) *Color {
	width, height := float64(img.Width()), float64(img.Height())
	if pt.X < 0 || pt.Y < 0 || pt.X > width-1 || pt.Y > height-1 {
		return nil
	}
	xmin := int(math.Floor(pt.X))
	ymin := int(math.Floor(pt.Y))
	xmax := int(math.Min(math.Ceil(pt.X), width-1))
	ymax := int(math.Min(math.Ceil(pt.Y), height-1))
	dx := pt.X - float64(xmin)
	dy := pt.Y - float64(ymin)
	c00 := img.GetXY(xmin, ymin)
	c10 := img.GetXY(xmax, ymin)
	c01 := img.GetXY(xmin, ymax)
	c11 := img.GetXY(xmax, ymax)
	r := lerp(lerp(float64(c00.R), float64(c10.R), dx), lerp(float64(c01.R), float64(c11.R), dx), dy)
	g := lerp(lerp(float64(c00.G), float64(c10.G), dx), lerp(float64(c01.G), float64(c11.G), dx), dy)
	b := lerp(lerp(float64(c00.B), float64(c10.B), dx), lerp(float64(c01.B), float64(c11.B), dx), dy)
	c := NewColor(uint8(math.Round(r)), uint8(math.Round(g)), uint8(math.Round(b)))
	return &c
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
