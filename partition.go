package regionmap

import "fmt"

// PartitionStats holds the per-region pixel tallies of one grid cell.
type PartitionStats struct {
	width, height int
	valid         bool
	colors        *ColorMap
	// counts is indexed like colors.regions.
	counts []int
}

// AnalyzePartition tallies every pixel of block against the color map in
// row-major order. Pixels without a matching region are skipped.
//
// A block with a zero dimension yields stats that are not Valid and no
// error. A block whose channel count is not three fails with
// ErrInvalidInput.
func AnalyzePartition(block Raster, colors *ColorMap) (*PartitionStats, error) {
	w, h := block.Dimensions()
	stats := &PartitionStats{
		width:  w,
		height: h,
		colors: colors,
		counts: make([]int, colors.Len()),
	}
	if w <= 0 || h <= 0 {
		return stats, nil
	}
	stats.valid = true

	if ch := block.Channels(); ch != 3 {
		return nil, fmt.Errorf("%w: partition has %d color channels, expected 3",
			ErrInvalidInput, ch)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if i, ok := colors.index(block.RGBAt(x, y)); ok {
				stats.counts[i]++
			}
		}
	}
	return stats, nil
}

// Valid reports whether the partition had a positive width and height.
func (s *PartitionStats) Valid() bool { return s.valid }

// Empty reports whether no pixel matched any region. Only meaningful when
// the partition is Valid.
func (s *PartitionStats) Empty() bool {
	for _, c := range s.counts {
		if c > 0 {
			return false
		}
	}
	return true
}

// Size returns the partition dimensions in pixels.
func (s *PartitionStats) Size() (width, height int) { return s.width, s.height }

// Area returns width*height, or 0 for an invalid partition.
func (s *PartitionStats) Area() int {
	if !s.valid {
		return 0
	}
	return s.width * s.height
}

// Count returns the number of pixels matching region, 0 if none did.
func (s *PartitionStats) Count(region Region) int {
	for i, r := range s.colors.regions {
		if r.ID == region.ID {
			return s.counts[i]
		}
	}
	return 0
}

// Total returns the number of pixels that matched any region.
func (s *PartitionStats) Total() int {
	total := 0
	for _, c := range s.counts {
		total += c
	}
	return total
}

// Percentage returns the fraction of the partition's pixels matching
// region, in [0, 1].
func (s *PartitionStats) Percentage(region Region) float64 {
	area := s.Area()
	if area == 0 {
		return 0
	}
	return float64(s.Count(region)) / float64(area)
}

// RegionsAboveThreshold returns, in ascending ID order, the regions whose
// percentage is at least threshold. The threshold must lie in [0, 1].
// Regions without any matching pixel are never returned, even for a zero
// threshold.
func (s *PartitionStats) RegionsAboveThreshold(threshold float64) ([]Region, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %g is out of range [0, 1]",
			ErrInvalidInput, threshold)
	}
	area := float64(s.Area())
	var out []Region
	for i, c := range s.counts {
		if c == 0 {
			continue
		}
		if float64(c)/area >= threshold {
			out = append(out, s.colors.regions[i])
		}
	}
	return out, nil
}

// AllRegions returns every region with at least one matching pixel,
// regardless of threshold.
func (s *PartitionStats) AllRegions() []Region {
	var out []Region
	for i, c := range s.counts {
		if c > 0 {
			out = append(out, s.colors.regions[i])
		}
	}
	return out
}
