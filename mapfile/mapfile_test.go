package mapfile

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/regionmap"
	"github.com/wbrown/regionmap/imageutil"
)

var (
	red  = imageutil.RGB{R: 255}
	blue = imageutil.RGB{B: 255}
)

func identity() regionmap.CellTransform {
	unit := regionmap.AxisRange{Min: 0, Max: 1}
	return regionmap.CellTransform{SrcX: unit, SrcY: unit, DstX: unit, DstY: unit}
}

// scanFixture scans a 2x1 grid, Red then Blue, with identity coordinates.
func scanFixture(t *testing.T) *regionmap.ScanResult {
	t.Helper()
	regions := regionmap.NewRegionList([]regionmap.RegionSpec{
		{EditorID: "Red", MapName: "Red Hold", Color: regionmap.RGB{R: 255}},
		{EditorID: "Blue", MapName: "Blue Hold", Color: regionmap.RGB{B: 255}},
	})
	colors, err := regionmap.NewColorMap(regions)
	require.NoError(t, err)

	img := imageutil.CreateCellGridImage(2, 2, [][]imageutil.RGB{{red, blue}})
	p := regionmap.NewParser(colors,
		regionmap.WithCellSize(2, 2),
		regionmap.WithTransform(identity()))
	res, err := p.Scan(regionmap.NewImageRaster(img))
	require.NoError(t, err)
	return res
}

// gapFixture has one region whose rows skip Y=1.
func gapFixture() *regionmap.ScanResult {
	r := regionmap.NewRegionList([]regionmap.RegionSpec{{EditorID: "Gap"}})[0]
	res := &regionmap.ScanResult{Regions: regionmap.NewRegionStatsMap()}
	res.Regions.Append(r, image.Pt(0, 0))
	res.Regions.Append(r, image.Pt(0, 2))
	return res
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, scanFixture(t)))

	want := "[RegionAreas]\n" +
		"Red = [(-1,1), (1,-1)]\n" +
		"Blue = [(0,1), (2,-1)]\n" +
		"\n[HoldMap]\n" +
		"(0,0) = [ \"Red\" ]\n" +
		"(1,0) = [ \"Blue\" ]\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTextDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteText(&a, scanFixture(t)))
	require.NoError(t, WriteText(&b, scanFixture(t)))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWriteTextBoundaryFailure(t *testing.T) {
	var buf bytes.Buffer
	err := WriteText(&buf, gapFixture())
	assert.ErrorIs(t, err, regionmap.ErrNotFound)
	assert.Contains(t, err.Error(), "Gap")
	assert.Zero(t, buf.Len(), "nothing may be written on failure")
}

func TestSaveTextRemovesPartialFile(t *testing.T) {
	path := MapPath(t.TempDir(), "skyrim")
	assert.Error(t, SaveText(path, gapFixture()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveText(t *testing.T) {
	dir := t.TempDir()
	path := MapPath(dir, "tamriel")
	assert.Equal(t, filepath.Join(dir, "tamriel.map.txt"), path)
	assert.Equal(t, filepath.Join(dir, "tamriel.region.txt"), RegionPath(dir, "tamriel"))

	require.NoError(t, SaveText(path, scanFixture(t)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[RegionAreas]\n"))
}

func TestFormatOutline(t *testing.T) {
	assert.Equal(t, "[]", FormatOutline(nil))
	assert.Equal(t, "[(-1,-1), (3,3)]",
		FormatOutline([]image.Point{{-1, -1}, {3, 3}}))
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, scanFixture(t)))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Red", f.Properties.MustString("editorID"))
	assert.Equal(t, "Red Hold", f.Properties.MustString("mapName"))
	assert.Equal(t, "#ff0000", f.Properties.MustString("color"))
	assert.Equal(t, 1, f.Properties.MustInt("cells"))

	poly, ok := f.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.True(t, poly[0].Closed())
	assert.Equal(t, orb.Point{-1, 1}, poly[0][0])
}

func TestFeatureCollectionBoundaryFailure(t *testing.T) {
	_, err := FeatureCollection(gapFixture())
	assert.ErrorIs(t, err, regionmap.ErrNotFound)
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, scanFixture(t), SVGOptions{Scale: 10, Labels: true}))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `id="Red"`)
	assert.Contains(t, out, "fill:#0000ff")
	assert.Contains(t, out, "Blue Hold")
	assert.Equal(t, 2, strings.Count(out, "<polygon"))
}
