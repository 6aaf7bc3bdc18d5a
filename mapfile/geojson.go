package mapfile

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb/geojson"
	"github.com/wbrown/regionmap"
)

// FeatureCollection builds one Polygon feature per region, in ID order,
// with the outline in cell coordinates. Properties carry the region's
// identity and cell count.
func FeatureCollection(res *regionmap.ScanResult) (*geojson.FeatureCollection, error) {
	outlines, err := res.Regions.Outlines()
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for _, o := range outlines {
		cells, _ := res.Regions.Get(o.Region)
		f := geojson.NewFeature(regionmap.OutlinePolygon(o.Outline))
		f.ID = o.Region.EditorID
		f.Properties["id"] = int(o.Region.ID)
		f.Properties["editorID"] = o.Region.EditorID
		f.Properties["mapName"] = o.Region.MapName
		f.Properties["color"] = o.Region.Color.String()
		f.Properties["priority"] = o.Region.Priority
		f.Properties["cells"] = len(cells)
		fc.Append(f)
	}
	return fc, nil
}

// WriteGeoJSON writes the outlines as an indented GeoJSON
// FeatureCollection.
func WriteGeoJSON(w io.Writer, res *regionmap.ScanResult) error {
	fc, err := FeatureCollection(res)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

// SaveGeoJSON writes the GeoJSON export to path.
func SaveGeoJSON(path string, res *regionmap.ScanResult) error {
	return saveWith(path, func(w io.Writer) error { return WriteGeoJSON(w, res) })
}
