// Package cvimage reads region maps through OpenCV. A Mat keeps OpenCV's
// BGR channel order internally and converts to RGB at the pixel boundary.
package cvimage

import (
	"fmt"
	"image"

	"github.com/wbrown/regionmap"
	"gocv.io/x/gocv"
)

// Mat is a regionmap.Raster backed by a gocv.Mat. It holds native memory
// and must be closed.
type Mat struct {
	mat gocv.Mat
}

// Load decodes the image at path as 3 channel color, the way the map
// tool has always read its input. Gray and alpha inputs are expanded.
func Load(path string) (*Mat, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("%w: could not decode image %q", regionmap.ErrInvalidInput, path)
	}
	return &Mat{mat: mat}, nil
}

func (m *Mat) Dimensions() (int, int) {
	return m.mat.Cols(), m.mat.Rows()
}

func (m *Mat) Channels() int {
	return m.mat.Channels()
}

// RGBAt reads the pixel at (x, y). Single channel mats return gray.
func (m *Mat) RGBAt(x, y int) regionmap.RGB {
	if m.mat.Channels() == 1 {
		v := m.mat.GetUCharAt(y, x)
		return regionmap.RGB{R: v, G: v, B: v}
	}
	return regionmap.RGBFromBGR([3]uint8(m.mat.GetVecbAt(y, x)[:3]))
}

// SubRaster returns a view sharing this Mat's pixels. The view must be
// closed independently of its parent.
func (m *Mat) SubRaster(r image.Rectangle) regionmap.Raster {
	w, h := m.Dimensions()
	r = r.Intersect(image.Rect(0, 0, w, h))
	if r.Empty() {
		return &Mat{mat: gocv.NewMat()}
	}
	return &Mat{mat: m.mat.Region(r)}
}

// Image converts the Mat to a standard library image.
func (m *Mat) Image() (image.Image, error) {
	return m.mat.ToImage()
}

// Close releases the native memory.
func (m *Mat) Close() error {
	return m.mat.Close()
}
