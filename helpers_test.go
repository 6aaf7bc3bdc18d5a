package regionmap

import (
	"fmt"
	"testing"

	"github.com/wbrown/regionmap/imageutil"
)

var (
	red   = RGB{R: 255}
	green = RGB{G: 255}
	blue  = RGB{B: 255}
	white = RGB{R: 255, G: 255, B: 255}
)

// identityTransform leaves grid indices unchanged.
func identityTransform() CellTransform {
	unit := AxisRange{Min: 0, Max: 1}
	return CellTransform{SrcX: unit, SrcY: unit, DstX: unit, DstY: unit}
}

func mustColorMap(t *testing.T, specs ...RegionSpec) *ColorMap {
	t.Helper()
	for i := range specs {
		if specs[i].MapName == "" {
			specs[i].MapName = specs[i].EditorID
		}
	}
	cm, err := NewColorMap(NewRegionList(specs))
	if err != nil {
		t.Fatalf("NewColorMap: %v", err)
	}
	return cm
}

// gridRaster paints one cellSize x cellSize block per entry of cells.
func gridRaster(cellSize int, cells [][]RGB) Raster {
	rows := make([][]imageutil.RGB, len(cells))
	for y, row := range cells {
		rows[y] = make([]imageutil.RGB, len(row))
		for x, c := range row {
			rows[y][x] = imageutil.RGB(c)
		}
	}
	return NewImageRaster(imageutil.CreateCellGridImage(cellSize, cellSize, rows))
}

// captureLog redirects Logf for the duration of the test.
func captureLog(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	prev := Logf
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { SetLogger(prev) })
	return &lines
}
