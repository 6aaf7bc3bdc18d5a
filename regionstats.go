package regionmap

import (
	"fmt"
	"image"
)

// RegionStats is the ordered list of cell coordinates classified as one
// region, in scan order.
type RegionStats []image.Point

// Top returns the largest Y coordinate. In cell coordinates Y grows upward,
// so this is the topmost row.
func (s RegionStats) Top() (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	top := s[0].Y
	for _, p := range s[1:] {
		if p.Y > top {
			top = p.Y
		}
	}
	return top, true
}

// Bottom returns the smallest Y coordinate.
func (s RegionStats) Bottom() (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	bottom := s[0].Y
	for _, p := range s[1:] {
		if p.Y < bottom {
			bottom = p.Y
		}
	}
	return bottom, true
}

// FirstAt returns the point with the smallest X on row y.
func (s RegionStats) FirstAt(y int) (image.Point, error) {
	var best image.Point
	found := false
	for _, p := range s {
		if p.Y == y && (!found || p.X < best.X) {
			best, found = p, true
		}
	}
	if !found {
		return image.Point{}, fmt.Errorf("%w: no cell at Y %d", ErrNotFound, y)
	}
	return best, nil
}

// LastAt returns the point with the largest X on row y.
func (s RegionStats) LastAt(y int) (image.Point, error) {
	var best image.Point
	found := false
	for _, p := range s {
		if p.Y == y && (!found || p.X > best.X) {
			best, found = p, true
		}
	}
	if !found {
		return image.Point{}, fmt.Errorf("%w: no cell at Y %d", ErrNotFound, y)
	}
	return best, nil
}

// Contains reports whether p is one of the region's cells.
func (s RegionStats) Contains(p image.Point) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

// Boundary computes a simplified outline of the region's cells.
//
// For every row from the bottom to the top, the leftmost and rightmost
// cells are collected. Interior points of vertical runs are dropped from
// each side. The outline walks the left side upward, each point moved one
// unit left, then the right side downward, each point moved one unit right.
// Points in the first half of a side are nudged one unit in Y away from
// that side's midpoint, the second half the other way, so that the outline
// encloses the blocks rather than passing through their centers.
//
// The returned polygon is open; consumers close it by joining the last
// point to the first. A row without any cell between the bottom and the
// top fails with ErrNotFound.
func (s RegionStats) Boundary() ([]image.Point, error) {
	top, ok := s.Top()
	if !ok {
		return nil, fmt.Errorf("%w: region has no cells", ErrNotFound)
	}
	bottom, _ := s.Bottom()

	firsts := make([]image.Point, 0, top-bottom+1)
	lasts := make([]image.Point, 0, top-bottom+1)
	for y := bottom; y <= top; y++ {
		first, err := s.FirstAt(y)
		if err != nil {
			return nil, err
		}
		last, err := s.LastAt(y)
		if err != nil {
			return nil, err
		}
		firsts = append(firsts, first)
		lasts = append(lasts, last)
	}

	firsts = dropVerticalRunInteriors(firsts)
	lasts = dropVerticalRunInteriors(lasts)

	edge := make([]image.Point, 0, len(firsts)+len(lasts))
	half := len(firsts) / 2
	for i, p := range firsts {
		dy := 1
		if i < half {
			dy = -1
		}
		edge = append(edge, image.Point{X: p.X - 1, Y: p.Y + dy})
	}
	half = len(lasts) / 2
	for i := range lasts {
		p := lasts[len(lasts)-1-i]
		dy := -1
		if i < half {
			dy = 1
		}
		edge = append(edge, image.Point{X: p.X + 1, Y: p.Y + dy})
	}
	return edge, nil
}

// dropVerticalRunInteriors removes every point that is neither the first
// nor the last and shares its X with both neighbors. Neighbors are judged
// in the input order, so each run of equal X shrinks to its two endpoints.
func dropVerticalRunInteriors(pts []image.Point) []image.Point {
	if len(pts) < 3 {
		return pts
	}
	keep := make([]bool, len(pts))
	keep[0], keep[len(pts)-1] = true, true
	for i := 1; i < len(pts)-1; i++ {
		keep[i] = !(pts[i].X == pts[i-1].X && pts[i].X == pts[i+1].X)
	}
	out := make([]image.Point, 0, len(pts))
	for i, p := range pts {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// RegionStatsMap records, per region, every cell matched to it. Iteration
// is in ascending region ID order.
type RegionStatsMap struct {
	entries *OrderedMap[RegionID, *regionEntry]
}

type regionEntry struct {
	region Region
	stats  RegionStats
}

// NewRegionStatsMap creates an empty map.
func NewRegionStatsMap() *RegionStatsMap {
	return &RegionStatsMap{entries: NewOrderedMap[RegionID, *regionEntry]()}
}

// Append records cell as belonging to region.
func (m *RegionStatsMap) Append(region Region, cell image.Point) {
	e, ok := m.entries.Get(region.ID)
	if !ok {
		e = &regionEntry{region: region}
		m.entries.Set(region.ID, e)
	}
	e.stats = append(e.stats, cell)
}

// Get returns the cells recorded for region.
func (m *RegionStatsMap) Get(region Region) (RegionStats, bool) {
	e, ok := m.entries.Get(region.ID)
	if !ok {
		return nil, false
	}
	return e.stats, true
}

// Contains reports whether any cell was recorded for region.
func (m *RegionStatsMap) Contains(region Region) bool {
	_, ok := m.entries.Get(region.ID)
	return ok
}

// Len returns the number of regions with at least one cell.
func (m *RegionStatsMap) Len() int {
	return m.entries.Len()
}

// Regions returns the recorded regions in ID order.
func (m *RegionStatsMap) Regions() []Region {
	out := make([]Region, 0, m.entries.Len())
	m.entries.Iterate(func(_ RegionID, e *regionEntry) {
		out = append(out, e.region)
	})
	return out
}

// Each calls f for every region in ID order.
func (m *RegionStatsMap) Each(f func(Region, RegionStats)) {
	m.entries.Iterate(func(_ RegionID, e *regionEntry) {
		f(e.region, e.stats)
	})
}

// RegionOutline pairs a region with its boundary polygon.
type RegionOutline struct {
	Region  Region
	Outline []image.Point
}

// Outlines computes the boundary of every region in ID order. The first
// failure aborts with the region's editor ID in the error.
func (m *RegionStatsMap) Outlines() ([]RegionOutline, error) {
	out := make([]RegionOutline, 0, m.Len())
	var err error
	m.Each(func(r Region, s RegionStats) {
		if err != nil {
			return
		}
		var outline []image.Point
		if outline, err = s.Boundary(); err != nil {
			err = fmt.Errorf("region '%s': %w", r.EditorID, err)
			return
		}
		out = append(out, RegionOutline{Region: r, Outline: outline})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
