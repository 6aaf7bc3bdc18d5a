// Package mapfile serializes scan results: the plain text lookup file
// consumed by the game-side scripts, plus GeoJSON and SVG renderings of
// the region outlines.
package mapfile

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wbrown/regionmap"
)

// File name suffixes for a worldspace's outputs.
const (
	RegionSuffix = ".region.txt"
	MapSuffix    = ".map.txt"
)

// RegionPath returns the region echo file for worldspace in dir.
func RegionPath(dir, worldspace string) string {
	return filepath.Join(dir, worldspace+RegionSuffix)
}

// MapPath returns the lookup file for worldspace in dir.
func MapPath(dir, worldspace string) string {
	return filepath.Join(dir, worldspace+MapSuffix)
}

// FormatPoint renders p as "x,y".
func FormatPoint(p image.Point) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// FormatOutline renders a boundary as "[(x,y), (x,y)]".
func FormatOutline(outline []image.Point) string {
	parts := make([]string, len(outline))
	for i, p := range outline {
		parts[i] = "(" + FormatPoint(p) + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// WriteText writes the lookup file:
//
//	[RegionAreas]
//	<EditorID> = [(x,y), ...]
//
//	[HoldMap]
//	(x,y) = [ "A", "B" ]
//
// Regions appear in ID order and holds in scan order. Every boundary is
// computed before anything is written, so a region whose outline cannot
// be extracted fails the call with nothing written.
func WriteText(w io.Writer, res *regionmap.ScanResult) error {
	outlines, err := res.Regions.Outlines()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "[RegionAreas]\n")
	for _, o := range outlines {
		fmt.Fprintf(bw, "%s = %s\n", o.Region.EditorID, FormatOutline(o.Outline))
	}
	fmt.Fprint(bw, "\n[HoldMap]\n")
	for _, h := range res.Holds {
		fmt.Fprintf(bw, "(%s) = %s\n", FormatPoint(h.Cell), regionmap.FormatRegionList(h.Regions))
	}
	return bw.Flush()
}

// SaveText writes the lookup file to path. A failed write removes the
// partial file.
func SaveText(path string, res *regionmap.ScanResult) error {
	return saveWith(path, func(w io.Writer) error { return WriteText(w, res) })
}

func saveWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
