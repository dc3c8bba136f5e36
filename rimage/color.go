package rimage

import (
	"fmt"
	"image/color"
)

// Color is an 8-bit RGB triplet.
type Color struct {
	R, G, B uint8
}

// Black is the zero color, used for pixels with no source data.
var Black = NewColor(0, 0, 0)

// NewColor returns a color from 8-bit RGB components.
func NewColor(r, g, b uint8) Color {
	return Color{r, g, b}
}

// NewColorFromColor converts any stdlib color into a Color, dropping alpha.
func NewColorFromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func (c Color) String() string {
	return c.Hex()
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%.2x%.2x%.2x", c.R, c.G, c.B)
}

// RGBA implements color.Color, treating the color as fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}
