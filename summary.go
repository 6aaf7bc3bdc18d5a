package regionmap

import (
	"image"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/stat"
)

// RegionSummary describes how one region appeared in a scan.
type RegionSummary struct {
	Region Region
	// Cells is the number of cells assigned to the region.
	Cells int
	// GridFraction is Cells divided by the number of processed cells.
	GridFraction float64
	// MeanCoverage and StdDevCoverage describe the matching fraction over
	// the region's cells.
	MeanCoverage   float64
	StdDevCoverage float64
	// OutlineArea is the planar area enclosed by the closed boundary, in
	// square cell units. It is zero when OutlineErr is set.
	OutlineArea float64
	OutlineErr  error
}

// Summarize computes a RegionSummary for every observed region, in ID
// order.
func Summarize(res *ScanResult) []RegionSummary {
	coverage := make(map[RegionID][]float64)
	for _, h := range res.Holds {
		for i, r := range h.Regions {
			coverage[r.ID] = append(coverage[r.ID], h.Coverage[i])
		}
	}

	var out []RegionSummary
	res.Regions.Each(func(r Region, cells RegionStats) {
		s := RegionSummary{Region: r, Cells: len(cells)}
		if res.Processed > 0 {
			s.GridFraction = float64(len(cells)) / float64(res.Processed)
		}
		if c := coverage[r.ID]; len(c) == 1 {
			s.MeanCoverage = c[0]
		} else if len(c) > 1 {
			s.MeanCoverage, s.StdDevCoverage = stat.MeanStdDev(c, nil)
		}
		if outline, err := cells.Boundary(); err != nil {
			s.OutlineErr = err
		} else {
			s.OutlineArea = math.Abs(planar.Area(OutlinePolygon(outline)))
		}
		out = append(out, s)
	})
	return out
}

// OutlinePolygon converts an open boundary to a closed orb polygon.
func OutlinePolygon(outline []image.Point) orb.Polygon {
	ring := make(orb.Ring, 0, len(outline)+1)
	for _, p := range outline {
		ring = append(ring, orb.Point{float64(p.X), float64(p.Y)})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}
