package regionmap

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Functions wrap these with context, so callers should
// test with errors.Is.
var (
	// ErrInvalidInput reports a bad threshold, channel count, cell size or
	// degenerate coordinate range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound reports a gap in a region's Y coverage during boundary
	// extraction.
	ErrNotFound = errors.New("not found")
	// ErrPartition reports that the image could not be divided into any
	// cells.
	ErrPartition = errors.New("failed to partition the image")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("region validation failed")
)

// ConflictGroup lists every region sharing one ID, one color or one map
// name.
type ConflictGroup struct {
	// Key is the shared value: a decimal ID, a color in "#rrggbb" form or a
	// map name.
	Key     string
	Regions []Region
}

func (g ConflictGroup) String() string {
	return FormatRegionList(g.Regions)
}

// ValidationError is returned when two or more regions share an ID, a
// color or a map name. All conflicts are collected before it is returned.
type ValidationError struct {
	IDs    []ConflictGroup
	Colors []ConflictGroup
	Names  []ConflictGroup
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("one or more regions have identical mapping data")
	for _, g := range e.IDs {
		fmt.Fprintf(&b, "; ID %s is assigned to multiple regions %s", g.Key, g)
	}
	for _, g := range e.Colors {
		fmt.Fprintf(&b, "; color '%s' is assigned to multiple regions %s", g.Key, g)
	}
	for _, g := range e.Names {
		fmt.Fprintf(&b, "; map name '%s' is assigned to multiple regions %s", g.Key, g)
	}
	return b.String()
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Groups returns the ID groups, then the color groups, then the name
// groups.
func (e *ValidationError) Groups() []ConflictGroup {
	out := make([]ConflictGroup, 0, len(e.IDs)+len(e.Colors)+len(e.Names))
	out = append(out, e.IDs...)
	out = append(out, e.Colors...)
	return append(out, e.Names...)
}
