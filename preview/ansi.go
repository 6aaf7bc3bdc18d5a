package preview

import (
	"fmt"
	"strings"

	"github.com/wbrown/regionmap"
)

// ESC is the escape byte that starts an ANSI control sequence.
const ESC = "\u001b"

// ANSIOptions controls the terminal grid.
type ANSIOptions struct {
	// CellWidth is the number of terminal columns per grid cell. 0 uses 2,
	// which keeps cells roughly square in most fonts.
	CellWidth int
	// Legend appends one line per observed region with its color swatch.
	Legend bool
}

// ANSI renders the scan grid with 24-bit background colors. Each held
// cell shows its dominant region's color; unmatched cells are left at the
// terminal default. Runs of equal color share one escape sequence.
func ANSI(res *regionmap.ScanResult, opts ANSIOptions) string {
	width := opts.CellWidth
	if width <= 0 {
		width = 2
	}

	grid := make([][]*regionmap.Region, res.Rows)
	for y := range grid {
		grid[y] = make([]*regionmap.Region, res.Cols)
	}
	for _, h := range res.Holds {
		if h.Index.Y < res.Rows && h.Index.X < res.Cols {
			r := Dominant(h)
			grid[h.Index.Y][h.Index.X] = &r
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		writeRow(&sb, row, width)
	}
	if opts.Legend {
		for _, r := range res.Regions.Regions() {
			sb.WriteString(backgroundCode(r.Color))
			sb.WriteString(strings.Repeat(" ", width))
			fmt.Fprintf(&sb, "%s[0m %s (%s)\n", ESC, r.MapName, r.EditorID)
		}
	}
	return sb.String()
}

// writeRow emits one grid row, merging adjacent cells of the same color
// into a single run.
func writeRow(sb *strings.Builder, row []*regionmap.Region, width int) {
	var current *regionmap.Region
	count := 0
	flush := func() {
		if count == 0 {
			return
		}
		if current == nil {
			sb.WriteString(ESC + "[49m")
		} else {
			sb.WriteString(backgroundCode(current.Color))
		}
		sb.WriteString(strings.Repeat(" ", count*width))
	}
	for _, cell := range row {
		if sameRegion(cell, current) {
			count++
			continue
		}
		flush()
		current, count = cell, 1
	}
	flush()
	// Reset colors at the end of each line
	sb.WriteString(ESC + "[0m\n")
}

func sameRegion(a, b *regionmap.Region) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

func backgroundCode(c regionmap.RGB) string {
	return fmt.Sprintf("%s[48;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}
