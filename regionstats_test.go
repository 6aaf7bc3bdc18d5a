package regionmap

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func squareStats(n int) RegionStats {
	var s RegionStats
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			s = append(s, image.Pt(x, y))
		}
	}
	return s
}

func TestRegionStatsExtents(t *testing.T) {
	s := RegionStats{{3, 5}, {1, -2}, {7, 5}, {2, 0}}
	if top, ok := s.Top(); !ok || top != 5 {
		t.Errorf("Expected top 5, got %d", top)
	}
	if bottom, ok := s.Bottom(); !ok || bottom != -2 {
		t.Errorf("Expected bottom -2, got %d", bottom)
	}
	if p, err := s.FirstAt(5); err != nil || p != image.Pt(3, 5) {
		t.Errorf("Expected first (3,5), got %v, %v", p, err)
	}
	if p, err := s.LastAt(5); err != nil || p != image.Pt(7, 5) {
		t.Errorf("Expected last (7,5), got %v, %v", p, err)
	}
	if _, err := s.FirstAt(4); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for empty row, got %v", err)
	}
	if !s.Contains(image.Pt(2, 0)) || s.Contains(image.Pt(0, 2)) {
		t.Error("Contains returned the wrong answer")
	}
	if _, ok := (RegionStats{}).Top(); ok {
		t.Error("Empty stats should have no top")
	}
}

func TestBoundarySquare(t *testing.T) {
	got, err := squareStats(3).Boundary()
	if err != nil {
		t.Fatal(err)
	}
	want := []image.Point{{-1, -1}, {-1, 3}, {3, 3}, {3, -1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Boundary() = %v, want %v", got, want)
	}

	// The closed outline must enclose every cell of the square.
	outline := OutlinePolygon(got)
	bound := outline.Bound()
	for _, p := range squareStats(3) {
		if float64(p.X) <= bound.Min[0] || float64(p.X) >= bound.Max[0] ||
			float64(p.Y) <= bound.Min[1] || float64(p.Y) >= bound.Max[1] {
			t.Errorf("Cell %v is not strictly inside the outline", p)
		}
	}
}

func TestBoundaryScanOrderIndependent(t *testing.T) {
	// Scan order visits the top row first in cell coordinates.
	s := RegionStats{{0, 2}, {1, 2}, {2, 2}, {0, 1}, {1, 1}, {2, 1}, {0, 0}, {1, 0}, {2, 0}}
	got, err := s.Boundary()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := squareStats(3).Boundary()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Boundary() = %v, want %v", got, want)
	}
}

func TestBoundaryIrregular(t *testing.T) {
	// Rows from the bottom: x 0..1, 1..3, 1..3, 1..3, 2..2.
	s := RegionStats{
		{0, 0}, {1, 0},
		{1, 1}, {2, 1}, {3, 1},
		{1, 2}, {3, 2},
		{1, 3}, {3, 3},
		{2, 4},
	}
	got, err := s.Boundary()
	if err != nil {
		t.Fatal(err)
	}
	// firsts (0,0) (1,1) (1,2) (1,3) (2,4) lose (1,2).
	// lasts (1,0) (3,1) (3,2) (3,3) (2,4) lose (3,2).
	want := []image.Point{
		{-1, -1}, {0, 0}, {0, 4}, {1, 5},
		{3, 5}, {4, 4}, {4, 0}, {2, -1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Boundary() mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundarySingleCell(t *testing.T) {
	got, err := RegionStats{{4, 7}}.Boundary()
	if err != nil {
		t.Fatal(err)
	}
	want := []image.Point{{3, 8}, {5, 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Boundary() = %v, want %v", got, want)
	}
}

func TestBoundaryErrors(t *testing.T) {
	if _, err := (RegionStats{}).Boundary(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for empty stats, got %v", err)
	}
	gap := RegionStats{{0, 0}, {0, 2}}
	if _, err := gap.Boundary(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a Y gap, got %v", err)
	}
}

func TestDropVerticalRunInteriors(t *testing.T) {
	tests := []struct {
		in, want []image.Point
	}{
		{nil, nil},
		{[]image.Point{{0, 0}, {0, 1}}, []image.Point{{0, 0}, {0, 1}}},
		{
			[]image.Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
			[]image.Point{{0, 0}, {0, 3}},
		},
		{
			[]image.Point{{0, 0}, {0, 1}, {1, 2}, {1, 3}, {1, 4}},
			[]image.Point{{0, 0}, {0, 1}, {1, 2}, {1, 4}},
		},
	}
	for _, tt := range tests {
		got := dropVerticalRunInteriors(tt.in)
		if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
			t.Errorf("dropVerticalRunInteriors(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRegionStatsMapOrder(t *testing.T) {
	regions := NewRegionList([]RegionSpec{{EditorID: "A"}, {EditorID: "B"}, {EditorID: "C"}})
	m := NewRegionStatsMap()
	m.Append(regions[2], image.Pt(0, 0))
	m.Append(regions[0], image.Pt(1, 0))
	m.Append(regions[2], image.Pt(1, 1))

	if m.Len() != 2 {
		t.Fatalf("Expected 2 regions, got %d", m.Len())
	}
	got := m.Regions()
	if got[0].EditorID != "A" || got[1].EditorID != "C" {
		t.Errorf("Expected ID order [A C], got %v", got)
	}
	cells, ok := m.Get(regions[2])
	if !ok || !reflect.DeepEqual(cells, RegionStats{{0, 0}, {1, 1}}) {
		t.Errorf("Expected C cells in append order, got %v", cells)
	}
	if m.Contains(regions[1]) {
		t.Error("B was never appended")
	}
}

func TestRegionStatsMapOutlines(t *testing.T) {
	regions := NewRegionList([]RegionSpec{{EditorID: "Ok"}, {EditorID: "Broken"}})
	m := NewRegionStatsMap()
	m.Append(regions[0], image.Pt(0, 0))
	outlines, err := m.Outlines()
	if err != nil || len(outlines) != 1 {
		t.Fatalf("Expected one outline, got %v, %v", outlines, err)
	}

	m.Append(regions[1], image.Pt(0, 0))
	m.Append(regions[1], image.Pt(0, 5))
	_, err = m.Outlines()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if want := "region 'Broken'"; err.Error()[:len(want)] != want {
		t.Errorf("Expected error to name the region, got %q", err)
	}
}
