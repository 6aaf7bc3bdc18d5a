package cvimage

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/regionmap"
	"gocv.io/x/gocv"
)

// newBGRMat paints an 8x4 mat: left half red, right half blue.
func newBGRMat(t *testing.T) *Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(4, 8, gocv.MatTypeCV8UC3)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				mat.SetUCharAt(y, x*3+2, 255)
			} else {
				mat.SetUCharAt(y, x*3, 255)
			}
		}
	}
	m := &Mat{mat: mat}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestMatReadsRGB(t *testing.T) {
	m := newBGRMat(t)

	w, h := m.Dimensions()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, 3, m.Channels())
	assert.Equal(t, regionmap.RGB{R: 255}, m.RGBAt(0, 0))
	assert.Equal(t, regionmap.RGB{B: 255}, m.RGBAt(7, 3))
}

func TestMatSubRaster(t *testing.T) {
	m := newBGRMat(t)

	sub := m.SubRaster(image.Rect(2, 1, 6, 3))
	defer sub.(*Mat).Close()

	w, h := sub.Dimensions()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, regionmap.RGB{R: 255}, sub.RGBAt(0, 0))
	assert.Equal(t, regionmap.RGB{B: 255}, sub.RGBAt(2, 0))

	empty := m.SubRaster(image.Rect(20, 20, 24, 24))
	defer empty.(*Mat).Close()
	w, h = empty.Dimensions()
	assert.Zero(t, w*h)
}

func TestMatScan(t *testing.T) {
	m := newBGRMat(t)
	regions := regionmap.NewRegionList([]regionmap.RegionSpec{
		{EditorID: "Red", MapName: "Red", Color: regionmap.RGB{R: 255}},
		{EditorID: "Blue", MapName: "Blue", Color: regionmap.RGB{B: 255}},
	})
	colors, err := regionmap.NewColorMap(regions)
	require.NoError(t, err)

	p := regionmap.NewParser(colors, regionmap.WithCellSize(4, 4),
		regionmap.WithThreshold(0.5))
	res, err := p.Scan(m)
	require.NoError(t, err)

	require.Len(t, res.Holds, 2)
	assert.Equal(t, "Red", res.Holds[0].Regions[0].EditorID)
	assert.Equal(t, "Blue", res.Holds[1].Regions[0].EditorID)
	assert.Equal(t, 2, res.Processed)
}

func TestLoad(t *testing.T) {
	m := newBGRMat(t)
	path := filepath.Join(t.TempDir(), "map.png")
	require.True(t, gocv.IMWrite(path, m.mat))

	loaded, err := Load(path)
	require.NoError(t, err)
	defer loaded.Close()

	assert.Equal(t, 3, loaded.Channels())
	assert.Equal(t, regionmap.RGB{R: 255}, loaded.RGBAt(1, 1))

	img, err := loaded.Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, regionmap.ErrInvalidInput)
}
