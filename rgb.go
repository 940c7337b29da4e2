package palgen

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255. There is no alpha channel;
// every RGB is fully opaque.
type RGB struct {
	R, G, B uint8
}

// Black is the fill color for unused palette and lightmap cells.
var Black = RGB{0, 0, 0}

// toUint32 converts an RGB color to a 32-bit unsigned integer
func (c RGB) toUint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// rgbFromUint32 converts a 32-bit unsigned integer to an RGB color
func rgbFromUint32(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGBFromColor converts any color.Color to RGB, discarding alpha.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// ParseHex parses a "#rrggbb" (or "#rgb") string into an RGB color.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("error parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// distanceSq is the sum of squared per-channel differences between two
// colors. No normalisation and no color-space conversion is applied.
func (c RGB) distanceSq(other RGB) int {
	dr := int(c.R) - int(other.R)
	dg := int(c.G) - int(other.G)
	db := int(c.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// darken scales every channel of c toward black by factor, truncating
// toward zero. A factor of 0 returns c unchanged.
func (c RGB) darken(factor float64) RGB {
	scale := func(v uint8) uint8 {
		x := float64(v)
		return uint8(x - float64(x*factor))
	}
	return RGB{scale(c.R), scale(c.G), scale(c.B)}
}

// component returns the channel of c along the given axis (0=R, 1=G, 2=B).
func (c RGB) component(axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}
