// Package config loads region definitions from INI and JSON files.
//
// An INI file has one section per region, named by the region's editor ID:
//
//	[WhiterunHold]
//	color = 7f7f00
//	mapName = Whiterun Hold
//	priority = 56
//
// Only color is required. Files are merged in the order they are added;
// a later file overrides keys of a section that an earlier one defined.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wbrown/regionmap"
	"gopkg.in/ini.v1"
)

// ErrNoRegions is returned when the loaded files define no usable region.
var ErrNoRegions = errors.New("no valid region data in config")

// Keys of a region section.
const (
	KeyColor    = "color"
	KeyMapName  = "mapName"
	KeyPriority = "priority"
)

// Loader accumulates region definitions from any number of sources.
type Loader struct {
	// DefaultPriority applies to sections without a priority key.
	DefaultPriority uint16

	file *ini.File
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{
		DefaultPriority: regionmap.DefaultPriority,
		file:            ini.Empty(),
	}
}

// AddFile merges the file at path. Files ending in .json are read as a
// JSON region list, everything else as INI.
func (l *Loader) AddFile(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := l.AddJSON(f); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	}
	if err := l.file.Append(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// AddINI merges INI data. source is anything ini.Load accepts: a file
// name, []byte or io.ReadCloser.
func (l *Loader) AddINI(source interface{}) error {
	return l.file.Append(source)
}

// jsonRegion is one entry of a JSON region list.
type jsonRegion struct {
	EditorID string  `json:"editorID"`
	MapName  string  `json:"mapName,omitempty"`
	Color    string  `json:"color"`
	Priority *uint16 `json:"priority,omitempty"`
}

// AddJSON merges a JSON array of region objects. Each object becomes a
// section, so JSON and INI sources can be mixed and echoed together.
func (l *Loader) AddJSON(r io.Reader) error {
	var list []jsonRegion
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return fmt.Errorf("decode region list: %w", err)
	}
	for i, jr := range list {
		if jr.EditorID == "" {
			return fmt.Errorf("%w: region #%d has no editorID", regionmap.ErrInvalidInput, i)
		}
		sec, err := l.file.NewSection(jr.EditorID)
		if err != nil {
			return err
		}
		sec.Key(KeyColor).SetValue(strings.TrimPrefix(jr.Color, "#"))
		if jr.MapName != "" {
			sec.Key(KeyMapName).SetValue(jr.MapName)
		}
		if jr.Priority != nil {
			sec.Key(KeyPriority).SetValue(strconv.FormatUint(uint64(*jr.Priority), 10))
		}
	}
	return nil
}

// Empty reports whether no region section has been loaded.
func (l *Loader) Empty() bool {
	for _, sec := range l.file.Sections() {
		if sec.Name() != ini.DefaultSection {
			return false
		}
	}
	return true
}

// Specs converts every section to a RegionSpec, in the order sections
// were first defined. Sections without a usable color are skipped with a
// logged message, as are unparsable priorities, which fall back to
// DefaultPriority.
func (l *Loader) Specs() []regionmap.RegionSpec {
	var specs []regionmap.RegionSpec
	for _, sec := range l.file.Sections() {
		edid := sec.Name()
		if edid == ini.DefaultSection {
			continue
		}
		if !sec.HasKey(KeyColor) {
			regionmap.Logf("warning: skipping region '%s' because it doesn't specify a color", edid)
			continue
		}
		color, err := ParseColor(sec.Key(KeyColor).String())
		if err != nil {
			regionmap.Logf("error: skipping region '%s': %v", edid, err)
			continue
		}

		spec := regionmap.RegionSpec{
			EditorID: edid,
			MapName:  sec.Key(KeyMapName).MustString(DefaultMapName(edid)),
			Priority: l.DefaultPriority,
			Color:    color,
		}
		if sec.HasKey(KeyPriority) {
			v := sec.Key(KeyPriority).String()
			p, err := strconv.ParseUint(v, 10, 16)
			if err != nil {
				regionmap.Logf("warning: region '%s' has invalid priority '%s', using %d",
					edid, v, l.DefaultPriority)
			} else {
				spec.Priority = uint16(p)
			}
		}
		specs = append(specs, spec)
	}
	return specs
}

// Regions returns the loaded regions with IDs assigned by position. It
// fails with ErrNoRegions when nothing usable was loaded. Duplicate colors
// and names are not checked here; regionmap.NewColorMap does that.
func (l *Loader) Regions() ([]regionmap.Region, error) {
	specs := l.Specs()
	if len(specs) == 0 {
		return nil, ErrNoRegions
	}
	return regionmap.NewRegionList(specs), nil
}

// WriteTo writes the merged configuration as INI.
func (l *Loader) WriteTo(w io.Writer) (int64, error) {
	return l.file.WriteTo(w)
}

// SaveTo writes the merged configuration to path, the region echo file
// that accompanies a map.
func (l *Loader) SaveTo(path string) error {
	return l.file.SaveTo(path)
}
