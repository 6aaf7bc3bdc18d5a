package regionmap

import (
	"fmt"
	"image"
)

// AxisRange is an inclusive range of integer coordinates on one axis. Max
// may be smaller than Min, which inverts the axis.
type AxisRange struct {
	Min, Max int
}

func (a AxisRange) degenerate() bool { return a.Min == a.Max }

// CellTransform maps grid indices (column, row) to cell coordinates by
// linearly rescaling each axis from a source range to a destination range.
type CellTransform struct {
	SrcX, SrcY AxisRange
	DstX, DstY AxisRange
}

// DefaultCellTransform maps the grid index range [0,149]x[0,99] onto cell
// coordinates [-74,75]x[49,-50]. The destination Y axis is inverted so
// that row 0 is the top of the map.
func DefaultCellTransform() CellTransform {
	return CellTransform{
		SrcX: AxisRange{Min: 0, Max: 149},
		SrcY: AxisRange{Min: 0, Max: 99},
		DstX: AxisRange{Min: -74, Max: 75},
		DstY: AxisRange{Min: 49, Max: -50},
	}
}

// Validate fails with ErrInvalidInput when any range is degenerate.
func (t CellTransform) Validate() error {
	if t.SrcX.degenerate() || t.DstX.degenerate() {
		return fmt.Errorf("%w: invalid X translation ( %d - %d ) => ( %d - %d )",
			ErrInvalidInput, t.SrcX.Min, t.SrcX.Max, t.DstX.Min, t.DstX.Max)
	}
	if t.SrcY.degenerate() || t.DstY.degenerate() {
		return fmt.Errorf("%w: invalid Y translation ( %d - %d ) => ( %d - %d )",
			ErrInvalidInput, t.SrcY.Min, t.SrcY.Max, t.DstY.Min, t.DstY.Max)
	}
	return nil
}

// Apply translates a grid index to cell coordinates. Integer division
// truncates toward zero.
func (t CellTransform) Apply(p image.Point) (image.Point, error) {
	if err := t.Validate(); err != nil {
		return image.Point{}, err
	}
	return image.Point{
		X: translateAxis(p.X, t.SrcX, t.DstX),
		Y: translateAxis(p.Y, t.SrcY, t.DstY),
	}, nil
}

func translateAxis(v int, src, dst AxisRange) int {
	srcRange := src.Max - src.Min
	dstRange := dst.Max - dst.Min
	return ((v-src.Min)*dstRange)/srcRange + dst.Min
}
