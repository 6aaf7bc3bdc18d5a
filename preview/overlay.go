// Package preview renders scan results for people: a PNG overlay of the
// matched cells on the source map, and a colored ANSI grid for terminals.
package preview

import (
	"fmt"
	"image"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/regionmap"
	"github.com/wbrown/regionmap/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Options controls the PNG overlay.
type Options struct {
	// CellWidth and CellHeight are the partition size used for the scan.
	CellWidth, CellHeight int
	// Scale resizes the finished preview; 0 or 1 keeps the source size.
	Scale float64
	// Opacity of the region tint over the desaturated map, in [0, 1].
	Opacity float64
	// Labels draws each region's map name over its cells.
	Labels bool
	// FontSize of labels in points, before scaling. 0 uses 12.
	FontSize float64
}

// DefaultOptions returns labeled, half opaque options for the given cell
// size.
func DefaultOptions(cellWidth, cellHeight int) Options {
	return Options{
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Opacity:    0.5,
		Labels:     true,
		FontSize:   12,
	}
}

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = freetype.ParseFont(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// Render draws the scan over a desaturated copy of base. Every held cell
// is tinted with its dominant region's color. base is not modified.
func Render(base *imageutil.RGBAImage, res *regionmap.ScanResult, opts Options) (*imageutil.RGBAImage, error) {
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		return nil, fmt.Errorf("%w: preview cell size [ %d x %d ] must be positive",
			regionmap.ErrInvalidInput, opts.CellWidth, opts.CellHeight)
	}

	out := imageutil.Desaturate(base)
	for _, h := range res.Holds {
		tint := imageutil.RGB(Dominant(h).Color)
		rect := imageutil.CellRect(h.Index.X, h.Index.Y, opts.CellWidth, opts.CellHeight).
			Intersect(out.Bounds())
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				px := regionmap.RGB(out.GetRGB(x, y))
				out.SetRGB(x, y, imageutil.RGB(px.Blend(regionmap.RGB(tint), opts.Opacity)))
			}
		}
	}

	srcSize := image.Pt(out.Width(), out.Height())
	out = imageutil.Scale(out, opts.Scale, imageutil.InterpolationNearest)

	if opts.Labels {
		if err := drawLabels(out, res, opts, srcSize); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Dominant returns the region of h with the highest coverage. Ties go to
// the lower region ID.
func Dominant(h regionmap.HoldEntry) regionmap.Region {
	best := 0
	for i := range h.Regions {
		if i < len(h.Coverage) && h.Coverage[i] > h.Coverage[best] {
			best = i
		}
	}
	return h.Regions[best]
}

// labelAnchors returns, per region ID, the mean pixel center of the cells
// where that region is dominant, in source image coordinates.
func labelAnchors(res *regionmap.ScanResult, opts Options) map[regionmap.RegionID]image.Point {
	type acc struct{ x, y, n int }
	sums := make(map[regionmap.RegionID]*acc)
	for _, h := range res.Holds {
		id := Dominant(h).ID
		a, ok := sums[id]
		if !ok {
			a = &acc{}
			sums[id] = a
		}
		a.x += h.Index.X*opts.CellWidth + opts.CellWidth/2
		a.y += h.Index.Y*opts.CellHeight + opts.CellHeight/2
		a.n++
	}
	anchors := make(map[regionmap.RegionID]image.Point, len(sums))
	for id, a := range sums {
		anchors[id] = image.Pt(a.x/a.n, a.y/a.n)
	}
	return anchors
}

func drawLabels(img *imageutil.RGBAImage, res *regionmap.ScanResult, opts Options, srcSize image.Point) error {
	ttf, err := loadLabelFont()
	if err != nil {
		return fmt.Errorf("parse label font: %w", err)
	}
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}
	if opts.Scale > 0 {
		size *= opts.Scale
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img.RGBA)
	ctx.SetHinting(font.HintingFull)

	dstSize := image.Pt(img.Width(), img.Height())
	anchors := labelAnchors(res, opts)
	ascent := face.Metrics().Ascent

	for _, r := range res.Regions.Regions() {
		at, ok := anchors[r.ID]
		if !ok {
			continue
		}
		at = imageutil.ScaleRect(image.Rectangle{Min: at, Max: at}, srcSize, dstSize).Min

		text := image.Black
		if !r.Color.IsLight() {
			text = image.White
		}
		ctx.SetSrc(text)

		width := font.MeasureString(face, r.MapName)
		pt := fixed.P(at.X, at.Y).Sub(fixed.Point26_6{X: width / 2, Y: -ascent / 2})
		if _, err := ctx.DrawString(r.MapName, pt); err != nil {
			return fmt.Errorf("draw label '%s': %w", r.EditorID, err)
		}
	}
	return nil
}

// Save renders the preview and writes it as a PNG.
func Save(path string, base *imageutil.RGBAImage, res *regionmap.ScanResult, opts Options) error {
	img, err := Render(base, res, opts)
	if err != nil {
		return err
	}
	return imageutil.SaveImage(img.RGBA, path)
}
