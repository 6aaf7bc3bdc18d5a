package regionmap

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a color in the RGB color space with 8-bit channels.
// Region colors are matched against pixels by exact equality on all
// three channels.
type RGB struct {
	R, G, B uint8
}

// Uint32 packs the color into the low 24 bits of an unsigned integer.
func (c RGB) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBFromUint32 unpacks a color produced by Uint32.
func RGBFromUint32(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGBFromColor converts a color.Color to RGB. The channels are taken
// before alpha premultiplication and alpha is then discarded, so a
// translucent pixel keeps the color it was painted with.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// RGBFromBGR converts a pixel stored in blue-green-red channel order,
// as OpenCV stores it, to RGB.
func RGBFromBGR(bgr [3]uint8) RGB {
	return RGB{R: bgr[2], G: bgr[1], B: bgr[0]}
}

// Hex returns the lowercase six digit hexadecimal form without a prefix.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return "#" + c.Hex()
}

// ToColor converts RGB to an opaque color.RGBA.
func (c RGB) ToColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Colorful converts c to a go-colorful color.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Blend mixes c toward other by t in [0, 1] in RGB space.
func (c RGB) Blend(other RGB, t float64) RGB {
	r, g, b := c.Colorful().BlendRgb(other.Colorful(), t).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// IsLight reports whether c has a CIE L* above 0.6, so dark text reads
// better over it than light text.
func (c RGB) IsLight() bool {
	l, _, _ := c.Colorful().Lab()
	return l > 0.6
}
