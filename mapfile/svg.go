package mapfile

import (
	"fmt"
	"image"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/paulmach/orb/planar"
	"github.com/wbrown/regionmap"
)

// SVGOptions controls the SVG export.
type SVGOptions struct {
	// Scale is the number of SVG units per cell. Values below 1 use 8.
	Scale int
	// Labels draws each region's map name at its outline centroid.
	Labels bool
}

// WriteSVG draws every region outline as a filled polygon in the region's
// color. Cell Y grows upward, so it is negated for SVG's downward Y.
func WriteSVG(w io.Writer, res *regionmap.ScanResult, opts SVGOptions) error {
	outlines, err := res.Regions.Outlines()
	if err != nil {
		return err
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 8
	}

	bounds := outlineBounds(outlines).Inset(-1)
	width, height := bounds.Dx()*scale, bounds.Dy()*scale
	canvas := svg.New(w)
	canvas.Startview(width, height,
		bounds.Min.X*scale, bounds.Min.Y*scale, width, height)
	canvas.Title("region outlines")

	for _, o := range outlines {
		xs := make([]int, len(o.Outline))
		ys := make([]int, len(o.Outline))
		for i, p := range o.Outline {
			xs[i], ys[i] = p.X*scale, -p.Y*scale
		}
		canvas.Gid(o.Region.EditorID)
		canvas.Polygon(xs, ys, fmt.Sprintf(
			"fill:%s;fill-opacity:0.6;stroke:%s;stroke-width:1",
			o.Region.Color, o.Region.Color))
		if opts.Labels {
			c := labelPoint(o.Outline)
			canvas.Text(int(c[0]*float64(scale)), int(-c[1]*float64(scale)),
				o.Region.MapName, fmt.Sprintf(
					"text-anchor:middle;font-family:sans-serif;font-size:%dpx;fill:%s",
					scale*2, contrastColor(o.Region.Color)))
		}
		canvas.Gend()
	}
	canvas.End()
	return nil
}

// SaveSVG writes the SVG export to path.
func SaveSVG(path string, res *regionmap.ScanResult, opts SVGOptions) error {
	return saveWith(path, func(w io.Writer) error { return WriteSVG(w, res, opts) })
}

// outlineBounds returns the bounding box of every outline in SVG space.
func outlineBounds(outlines []regionmap.RegionOutline) image.Rectangle {
	var r image.Rectangle
	first := true
	for _, o := range outlines {
		for _, p := range o.Outline {
			q := image.Pt(p.X, -p.Y)
			cell := image.Rectangle{Min: q, Max: q.Add(image.Pt(1, 1))}
			if first {
				r, first = cell, false
				continue
			}
			r = r.Union(cell)
		}
	}
	return r
}

// labelPoint returns the area centroid of the closed outline, or the mean
// of its points when the polygon has no area.
func labelPoint(outline []image.Point) [2]float64 {
	poly := regionmap.OutlinePolygon(outline)
	if c, area := planar.CentroidArea(poly); area != 0 && !math.IsNaN(c[0]) {
		return [2]float64{c[0], c[1]}
	}
	var sx, sy float64
	for _, p := range outline {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	n := float64(len(outline))
	if n == 0 {
		return [2]float64{}
	}
	return [2]float64{sx / n, sy / n}
}

// contrastColor picks black or white text for legibility over c.
func contrastColor(c regionmap.RGB) string {
	if c.IsLight() {
		return "#000000"
	}
	return "#ffffff"
}
