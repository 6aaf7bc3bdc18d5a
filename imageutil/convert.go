package imageutil

import "image/color"

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 standard used by OpenCV's COLOR_BGR2GRAY.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.Gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// GrayscaleToRGBA converts a grayscale image back to RGBA.
func GrayscaleToRGBA(gray *GrayImage) *RGBAImage {
	width, height := gray.Width(), gray.Height()
	rgba := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := gray.GrayAt(x, y).Y
			rgba.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}

	return rgba
}

// Desaturate returns a copy of img with its colors reduced to luminance,
// used as the backdrop of region previews.
func Desaturate(img *RGBAImage) *RGBAImage {
	return GrayscaleToRGBA(ToGrayscale(img))
}
