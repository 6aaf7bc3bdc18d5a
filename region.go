package regionmap

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultPriority is assigned to regions whose configuration does not
// specify one.
const DefaultPriority uint16 = 56

// RegionID identifies a region within one run. IDs are allocated from the
// region's position in the configured list.
type RegionID int

// Region is one named, colored classification target. Regions are values
// and are never mutated after construction.
type Region struct {
	ID       RegionID
	EditorID string
	MapName  string
	// Priority is a tie-break hint for consumers of the output; the
	// scanner does not use it.
	Priority uint16
	Color    RGB
}

func (r Region) String() string {
	return r.EditorID
}

// RegionSpec describes a region before an ID has been allocated.
type RegionSpec struct {
	EditorID string
	MapName  string
	Priority uint16
	Color    RGB
}

// NewRegionList allocates IDs to specs by list position and returns the
// resulting regions in the same order.
func NewRegionList(specs []RegionSpec) []Region {
	regions := make([]Region, len(specs))
	for i, s := range specs {
		regions[i] = Region{
			ID:       RegionID(i),
			EditorID: s.EditorID,
			MapName:  s.MapName,
			Priority: s.Priority,
			Color:    s.Color,
		}
	}
	return regions
}

// FormatRegionList renders regions as `[ "A", "B" ]`, the list form used
// in logs and the map output file.
func FormatRegionList(regions []Region) string {
	if len(regions) == 0 {
		return "[  ]"
	}
	quoted := make([]string, len(regions))
	for i, r := range regions {
		quoted[i] = `"` + r.EditorID + `"`
	}
	return "[ " + strings.Join(quoted, ", ") + " ]"
}

// ValidateRegions checks every pair of distinct regions for a shared ID,
// a shared color or a shared map name. It collects all conflicts before
// returning, so a single *ValidationError describes every offending group.
// It returns nil when the list is consistent.
func ValidateRegions(regions []Region) error {
	idGroups := conflicts(regions, func(r Region) RegionID { return r.ID })
	colorGroups := conflicts(regions, func(r Region) RGB { return r.Color })
	nameGroups := conflicts(regions, func(r Region) string { return r.MapName })
	if len(idGroups) == 0 && len(colorGroups) == 0 && len(nameGroups) == 0 {
		return nil
	}

	verr := &ValidationError{}
	ids := make([]RegionID, 0, len(idGroups))
	for id := range idGroups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		verr.IDs = append(verr.IDs, ConflictGroup{
			Key:     strconv.Itoa(int(id)),
			Regions: pick(regions, idGroups[id]),
		})
	}

	colors := make([]RGB, 0, len(colorGroups))
	for c := range colorGroups {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		return colors[i].Uint32() < colors[j].Uint32()
	})
	for _, c := range colors {
		verr.Colors = append(verr.Colors, ConflictGroup{
			Key:     c.String(),
			Regions: pick(regions, colorGroups[c]),
		})
	}

	names := make([]string, 0, len(nameGroups))
	for n := range nameGroups {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		verr.Names = append(verr.Names, ConflictGroup{
			Key:     n,
			Regions: pick(regions, nameGroups[n]),
		})
	}
	return verr
}

// conflicts returns, for every key shared by two or more regions, the list
// positions of the regions carrying it. Each region appears once per key.
func conflicts[K comparable](regions []Region, key func(Region) K) map[K][]int {
	byKey := make(map[K][]int)
	for i, r := range regions {
		k := key(r)
		byKey[k] = append(byKey[k], i)
	}
	for k, idx := range byKey {
		if len(idx) < 2 {
			delete(byKey, k)
		}
	}
	return byKey
}

func pick(regions []Region, idx []int) []Region {
	sort.Ints(idx)
	out := make([]Region, len(idx))
	for i, k := range idx {
		out[i] = regions[k]
	}
	return out
}
