package regionmap

import (
	"image"
	"image/color"
)

// Raster is a decoded image, or a rectangular view into one, addressed by
// pixel coordinates relative to its own top-left corner.
type Raster interface {
	// Dimensions returns the width and height in pixels.
	Dimensions() (width, height int)
	// Channels returns the number of color channels per pixel.
	Channels() int
	// RGBAt returns the pixel at (x, y) converted from the raster's
	// native channel order to RGB.
	RGBAt(x, y int) RGB
	// SubRaster returns a view of r, given in this raster's coordinates.
	// The view is clipped to the raster bounds.
	SubRaster(r image.Rectangle) Raster
}

// imageRaster adapts a standard library image.Image to Raster.
type imageRaster struct {
	img      image.Image
	rect     image.Rectangle
	channels int
}

// NewImageRaster wraps img as a Raster. Single channel images (gray and
// alpha) report one channel; every other color model is read as RGB and
// reports three, matching how a color decode treats them.
func NewImageRaster(img image.Image) Raster {
	return &imageRaster{
		img:      img,
		rect:     img.Bounds(),
		channels: channelsOf(img),
	}
}

func channelsOf(img image.Image) int {
	switch img.(type) {
	case interface{ GrayAt(x, y int) color.Gray },
		interface{ Gray16At(x, y int) color.Gray16 },
		interface{ AlphaAt(x, y int) color.Alpha },
		interface{ Alpha16At(x, y int) color.Alpha16 }:
		return 1
	}
	return 3
}

func (r *imageRaster) Dimensions() (int, int) {
	return r.rect.Dx(), r.rect.Dy()
}

func (r *imageRaster) Channels() int {
	return r.channels
}

func (r *imageRaster) RGBAt(x, y int) RGB {
	return RGBFromColor(r.img.At(r.rect.Min.X+x, r.rect.Min.Y+y))
}

func (r *imageRaster) SubRaster(sub image.Rectangle) Raster {
	return &imageRaster{
		img:      r.img,
		rect:     sub.Add(r.rect.Min).Intersect(r.rect),
		channels: r.channels,
	}
}
