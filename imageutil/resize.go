package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationNearest keeps cell edges sharp and is the default for
	// region previews.
	InterpolationNearest Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationArea uses Catmull-Rom, the closest equivalent to
	// OpenCV's INTER_AREA.
	InterpolationArea
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationArea:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// Scale resizes img by factor on both axes. A factor of 1 or less than
// or equal to 0 returns img unchanged.
func Scale(img *RGBAImage, factor float64, interp Interpolation) *RGBAImage {
	if factor <= 0 || factor == 1 {
		return img
	}
	w := int(float64(img.Width()) * factor)
	h := int(float64(img.Height()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Resize(img, w, h, interp)
}

// ScaleRect maps r from an image of size from to an image of size to.
func ScaleRect(r image.Rectangle, from, to image.Point) image.Rectangle {
	if from.X == 0 || from.Y == 0 {
		return r
	}
	return image.Rect(
		r.Min.X*to.X/from.X, r.Min.Y*to.Y/from.Y,
		r.Max.X*to.X/from.X, r.Max.Y*to.Y/from.Y,
	)
}
