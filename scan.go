package regionmap

import (
	"fmt"
	"image"
	"io"
	"time"
)

// HoldEntry records one cell that had at least one region above the
// threshold.
type HoldEntry struct {
	// Cell is the transformed cell coordinate.
	Cell image.Point
	// Index is the (column, row) grid index the cell was cropped from.
	Index image.Point
	// Regions are the matched regions in ascending ID order.
	Regions []Region
	// Coverage holds the matching fraction of each entry in Regions.
	Coverage []float64
}

// HoldMap is the complete per-cell record of a scan, in scan order.
type HoldMap []HoldEntry

// ScanResult is everything a scan produced. It is not modified after Scan
// returns.
type ScanResult struct {
	Regions *RegionStatsMap
	Holds   HoldMap

	// Cols and Rows are the grid dimensions; a partial trailing cell on
	// either axis is dropped.
	Cols, Rows int
	// Processed counts the cells that were analyzed.
	Processed int
	// StoppedEarly is set when a blank row after a matching one ended the
	// scan; StopRow is that row's index, or -1.
	StoppedEarly bool
	StopRow      int
	// Unobserved lists configured regions that matched no cell.
	Unobserved []Region
	Elapsed    time.Duration
}

// Scan walks the grid row by row and classifies every cell.
//
// A matching cell is appended to the HoldMap and to the RegionStatsMap
// entry of every matched region. After each row, if that row matched
// nothing but an earlier row did, the scan stops: the remainder is assumed
// to be blank margin. Regions lying wholly below such a gap are not
// found.
//
// Scan fails with ErrPartition when the image is smaller than one cell and
// with ErrInvalidInput for a bad configuration or pixel format.
func (p *Parser) Scan(img Raster) (*ScanResult, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	width, height := img.Dimensions()
	cols := width / p.CellWidth
	rows := height / p.CellHeight

	result := &ScanResult{
		Regions: NewRegionStatsMap(),
		Cols:    cols,
		Rows:    rows,
		StopRow: -1,
	}
	if cols > 0 && rows > 0 {
		result.Holds = make(HoldMap, 0, cols*rows)
	}

	start := time.Now()
	for y := 0; y < rows; y++ {
		rowCount := 0
		for x := 0; x < cols; x++ {
			index := image.Point{X: x, Y: y}
			cell, err := p.Transform.Apply(index)
			if err != nil {
				return nil, err
			}
			rect := image.Rect(x*p.CellWidth, y*p.CellHeight,
				(x+1)*p.CellWidth, (y+1)*p.CellHeight)

			regions, coverage, err := p.classify(img.SubRaster(rect))
			result.Processed++
			if err != nil {
				return nil, fmt.Errorf("partition ( %d, %d ): %w", x, y, err)
			}
			if p.Verbose {
				Logf("partition #%d index ( %d, %d ) cell ( %d, %d ) %s",
					result.Processed-1, x, y, cell.X, cell.Y,
					FormatRegionList(regions))
			}
			if len(regions) == 0 {
				continue
			}

			result.Holds = append(result.Holds, HoldEntry{
				Cell:     cell,
				Index:    index,
				Regions:  regions,
				Coverage: coverage,
			})
			for _, r := range regions {
				result.Regions.Append(r, cell)
			}
			rowCount++
		}
		if rowCount == 0 && result.Regions.Len() > 0 {
			result.StoppedEarly = true
			result.StopRow = y
			Logf("stopping early: row %d contained no regions", y)
			break
		}
	}
	result.Elapsed = time.Since(start)

	if result.Processed == 0 {
		return nil, fmt.Errorf("%w: image [ %d x %d ] is smaller than one partition [ %d x %d ]",
			ErrPartition, width, height, p.CellWidth, p.CellHeight)
	}

	for _, r := range p.colors.Regions() {
		if !result.Regions.Contains(r) {
			result.Unobserved = append(result.Unobserved, r)
			Logf("warning: no cells found for region editorID='%s' mapName='%s' color='%s'",
				r.EditorID, r.MapName, r.Color.Hex())
		}
	}
	return result, nil
}

// classify analyzes one cell and returns the regions at or above the
// threshold together with their coverage. The cell is closed afterwards
// when it holds native resources.
func (p *Parser) classify(cell Raster) ([]Region, []float64, error) {
	if c, ok := cell.(io.Closer); ok {
		defer c.Close()
	}
	stats, err := AnalyzePartition(cell, p.colors)
	if err != nil {
		return nil, nil, err
	}
	if !stats.Valid() || stats.Empty() {
		return nil, nil, nil
	}
	regions, err := stats.RegionsAboveThreshold(p.Threshold)
	if err != nil {
		return nil, nil, err
	}
	coverage := make([]float64, len(regions))
	for i, r := range regions {
		coverage[i] = stats.Percentage(r)
	}
	return regions, coverage, nil
}
