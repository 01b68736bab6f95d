package core

import (
	"sort"
	"testing"
)

func sortedCells(cells []Position) []Position {
	out := append([]Position(nil), cells...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func samePositions(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := sortedCells(a), sortedCells(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func TestFindHorizontalRun(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RRRGB",
		"GBYOR",
		"BGOYR",
	})
	d := NewDetector(b)

	matches := d.FindAllMatches()
	if len(matches) != 1 {
		t.Fatalf("found %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Shape != ShapeHorizontal {
		t.Errorf("Shape = %v, want Horizontal", m.Shape)
	}
	if m.Kind != KindRed {
		t.Errorf("Kind = %v, want Red", m.Kind)
	}
	want := []Position{{0, 0}, {1, 0}, {2, 0}}
	if !samePositions(m.Cells, want) {
		t.Errorf("Cells = %v, want %v", m.Cells, want)
	}
	if m.Score != 300 {
		t.Errorf("Score = %d, want 300", m.Score)
	}
	if m.Special != SpecialNone {
		t.Errorf("Special = %v, want None", m.Special)
	}
}

func TestFindVerticalRun(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RGB",
		"RBY",
		"RYG",
	})
	d := NewDetector(b)

	matches := d.FindAllMatches()
	if len(matches) != 1 {
		t.Fatalf("found %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Shape != ShapeVertical || m.Kind != KindRed {
		t.Errorf("match = %v %v, want Vertical Red", m.Shape, m.Kind)
	}
	if !samePositions(m.Cells, []Position{{0, 0}, {0, 1}, {0, 2}}) {
		t.Errorf("Cells = %v, want column 0", m.Cells)
	}
}

func TestLongRunsAndSpecialTiers(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		cells   int
		score   int
		special SpecialKind
	}{
		{"run of four", "RRRRG", 4, 450, SpecialLine},
		{"run of five", "RRRRRG", 5, 600, SpecialColorBomb},
		{"run of six", "RRRRRRG", 6, 750, SpecialRainbow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromRows(t, 6, []string{tt.row})
			matches := NewDetector(b).FindAllMatches()
			if len(matches) != 1 {
				t.Fatalf("found %d matches, want 1", len(matches))
			}
			m := matches[0]
			if len(m.Cells) != tt.cells {
				t.Errorf("cells = %d, want %d", len(m.Cells), tt.cells)
			}
			if m.Score != tt.score {
				t.Errorf("Score = %d, want %d", m.Score, tt.score)
			}
			if m.Special != tt.special {
				t.Errorf("Special = %v, want %v", m.Special, tt.special)
			}
		})
	}
}

func TestLShapeDetection(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"GBRYO",
		"BGROY",
		"RRRGB",
	})
	d := NewDetector(b)

	matches := d.FindAllMatches()
	if len(matches) != 1 {
		t.Fatalf("found %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Shape != ShapeL {
		t.Errorf("Shape = %v, want LShape", m.Shape)
	}
	want := []Position{{2, 2}, {1, 2}, {0, 2}, {2, 1}, {2, 0}}
	if !samePositions(m.Cells, want) {
		t.Errorf("Cells = %v, want %v", m.Cells, want)
	}
	if m.Score != 800 {
		t.Errorf("Score = %d, want 800", m.Score)
	}
	if m.Special != SpecialBomb {
		t.Errorf("Special = %v, want Bomb", m.Special)
	}
}

func TestTShapeDetection(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RRRGB",
		"YRGOB",
		"GRYBO",
	})
	d := NewDetector(b)

	matches := d.FindAllMatches()
	if len(matches) != 1 {
		t.Fatalf("found %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Shape != ShapeT {
		t.Errorf("Shape = %v, want TShape", m.Shape)
	}
	want := []Position{{1, 0}, {1, 1}, {1, 2}, {0, 0}, {2, 0}}
	if !samePositions(m.Cells, want) {
		t.Errorf("Cells = %v, want %v", m.Cells, want)
	}
	if m.Score != 800 {
		t.Errorf("Score = %d, want 800", m.Score)
	}
	if m.Special != SpecialBomb {
		t.Errorf("Special = %v, want Bomb", m.Special)
	}
}

func TestCrossShapeDetection(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"GBRYO",
		"BGROY",
		"RRRRR",
		"GBRYO",
		"BGROY",
	})
	d := NewDetector(b)

	matches := d.FindAllMatches()
	if len(matches) != 1 {
		t.Fatalf("found %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Shape != ShapeCross {
		t.Errorf("Shape = %v, want Cross", m.Shape)
	}
	if len(m.Cells) != 9 {
		t.Errorf("cells = %d, want 9", len(m.Cells))
	}
	want := []Position{
		{2, 2},
		{2, 0}, {2, 1}, {2, 3}, {2, 4},
		{0, 2}, {1, 2}, {3, 2}, {4, 2},
	}
	if !samePositions(m.Cells, want) {
		t.Errorf("Cells = %v, want %v", m.Cells, want)
	}
	if m.Score != 1700 {
		t.Errorf("Score = %d, want 1700", m.Score)
	}
	if m.Special != SpecialCrossLine {
		t.Errorf("Special = %v, want CrossLine", m.Special)
	}
}

func TestDisjointMatchesAllReported(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RRRGB",
		"GBOYB",
		"BGYOB",
	})
	d := NewDetector(b)

	matches := d.FindAllMatches()
	if len(matches) != 2 {
		t.Fatalf("found %d matches, want 2", len(matches))
	}
	kinds := map[TokenKind]bool{}
	claimed := map[Position]bool{}
	for _, m := range matches {
		kinds[m.Kind] = true
		for _, cell := range m.Cells {
			if claimed[cell] {
				t.Errorf("cell %v claimed by two matches", cell)
			}
			claimed[cell] = true
		}
	}
	if !kinds[KindRed] || !kinds[KindBlue] {
		t.Errorf("match kinds = %v, want Red and Blue", kinds)
	}
}

func TestDedupePrefersLargerMatch(t *testing.T) {
	h4 := Match{Shape: ShapeHorizontal, Kind: KindRed, Cells: []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}}}
	v3 := Match{Shape: ShapeVertical, Kind: KindRed, Cells: []Position{{1, 0}, {1, 1}, {1, 2}}}

	kept := dedupe([]Match{v3, h4})
	if len(kept) != 1 {
		t.Fatalf("kept %d matches, want 1", len(kept))
	}
	if kept[0].Shape != ShapeHorizontal {
		t.Errorf("kept %v, want the larger Horizontal", kept[0].Shape)
	}

	far := Match{Shape: ShapeVertical, Kind: KindBlue, Cells: []Position{{4, 0}, {4, 1}, {4, 2}}}
	kept = dedupe([]Match{v3, far})
	if len(kept) != 2 {
		t.Errorf("kept %d disjoint matches, want 2", len(kept))
	}
}

func TestEmptyAndObstacleNeverMatch(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RR#RR",
		"00000",
		"#####",
	})
	d := NewDetector(b)

	if matches := d.FindAllMatches(); len(matches) != 0 {
		t.Errorf("found %d matches, want 0", len(matches))
	}
}

func TestDetectorCache(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RRRGB",
		"GBYOR",
		"BGOYR",
	})
	d := NewDetector(b)

	d.FindAllMatches()
	if len(d.cache) != 1 {
		t.Errorf("cache entries = %d, want 1", len(d.cache))
	}

	// A mutated board has a new fingerprint and its own entry.
	b.SetToken(4, 2, KindGreen)
	d.FindAllMatches()
	if len(d.cache) != 2 {
		t.Errorf("cache entries = %d, want 2", len(d.cache))
	}

	d.InvalidateCache()
	if len(d.cache) != 0 {
		t.Errorf("cache entries after invalidate = %d, want 0", len(d.cache))
	}

	matches := d.FindAllMatches()
	if len(matches) != 1 {
		t.Errorf("found %d matches after invalidate, want 1", len(matches))
	}
}

func TestMatchScoreFormula(t *testing.T) {
	tests := []struct {
		name  string
		shape MatchShape
		cells int
		want  int
	}{
		{"three in a line", ShapeHorizontal, 3, 300},
		{"four in a line", ShapeVertical, 4, 450},
		{"five in a line", ShapeHorizontal, 5, 600},
		{"L shape", ShapeL, 5, 800},
		{"T shape", ShapeT, 5, 800},
		{"cross", ShapeCross, 9, 1700},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchScore(tt.shape, tt.cells); got != tt.want {
				t.Errorf("matchScore(%v, %d) = %d, want %d", tt.shape, tt.cells, got, tt.want)
			}
		})
	}
}

func TestSpecialTiers(t *testing.T) {
	tests := []struct {
		name  string
		shape MatchShape
		cells int
		want  SpecialKind
	}{
		{"plain three", ShapeHorizontal, 3, SpecialNone},
		{"line of four", ShapeHorizontal, 4, SpecialLine},
		{"line of five", ShapeVertical, 5, SpecialColorBomb},
		{"line of six", ShapeHorizontal, 6, SpecialRainbow},
		{"L is a bomb", ShapeL, 5, SpecialBomb},
		{"T is a bomb", ShapeT, 5, SpecialBomb},
		{"cross clears lines", ShapeCross, 9, SpecialCrossLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := specialTier(tt.shape, tt.cells); got != tt.want {
				t.Errorf("specialTier(%v, %d) = %v, want %v", tt.shape, tt.cells, got, tt.want)
			}
		})
	}
}
