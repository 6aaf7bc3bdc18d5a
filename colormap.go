package regionmap

import "sort"

// ColorMap is the exact-match lookup table from a pixel color to the
// configured region. It is built once and is read-only afterwards.
type ColorMap struct {
	byColor map[RGB]int
	regions []Region
}

// NewColorMap validates regions and builds the lookup table. Duplicate
// IDs, colors or map names are rejected with a *ValidationError rather than
// being resolved by insertion order.
func NewColorMap(regions []Region) (*ColorMap, error) {
	if err := ValidateRegions(regions); err != nil {
		return nil, err
	}

	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	cm := &ColorMap{
		byColor: make(map[RGB]int, len(sorted)),
		regions: sorted,
	}
	for i, r := range sorted {
		cm.byColor[r.Color] = i
	}
	return cm, nil
}

// Lookup returns the region configured for color c. A miss is normal for
// background and border pixels.
func (cm *ColorMap) Lookup(c RGB) (Region, bool) {
	if i, ok := cm.byColor[c]; ok {
		return cm.regions[i], true
	}
	return Region{}, false
}

// index returns the dense position of the region for color c.
func (cm *ColorMap) index(c RGB) (int, bool) {
	i, ok := cm.byColor[c]
	return i, ok
}

// Regions returns the regions in ascending ID order.
func (cm *ColorMap) Regions() []Region {
	out := make([]Region, len(cm.regions))
	copy(out, cm.regions)
	return out
}

// Len returns the number of configured regions.
func (cm *ColorMap) Len() int {
	return len(cm.regions)
}
