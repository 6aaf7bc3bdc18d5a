package imageutil

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateCellGridImage paints a region map from a grid of cell colors.
// cells is indexed [row][column]; every row must have the same length.
// Each entry fills one cellWidth x cellHeight block.
func CreateCellGridImage(cellWidth, cellHeight int, cells [][]RGB) *RGBAImage {
	rows := len(cells)
	cols := 0
	if rows > 0 {
		cols = len(cells[0])
	}
	img := NewRGBAImage(cols*cellWidth, rows*cellHeight)
	for y, row := range cells {
		for x, c := range row {
			img.FillRect(CellRect(x, y, cellWidth, cellHeight), c)
		}
	}
	return img
}

// CreateColorBarsImage creates vertical bars, one per color, spanning the
// full width. The last bar absorbs any remainder.
func CreateColorBarsImage(width, height int, colors []RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	if len(colors) == 0 {
		return img
	}
	barWidth := width / len(colors)
	if barWidth == 0 {
		barWidth = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := x / barWidth
			if idx >= len(colors) {
				idx = len(colors) - 1
			}
			img.SetRGB(x, y, colors[idx])
		}
	}
	return img
}

// CalculateMaxDiff returns the maximum per-channel difference between two
// images of equal size, or 255 when the sizes differ.
func CalculateMaxDiff(img1, img2 *RGBAImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 255
	}
	maxDiff := 0
	for i := range img1.Pix {
		if i%4 == 3 {
			continue
		}
		d := abs(int(img1.Pix[i]) - int(img2.Pix[i]))
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
