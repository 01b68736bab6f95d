package core

import (
	"math/rand"
	"testing"
)

// boardFromRows builds a board from one encoded string per row, using
// the EncodeKinds character set.
func boardFromRows(t *testing.T, colors int, rows []string) *Board {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("boardFromRows: no rows")
	}
	width := len(rows[0])
	b := NewBoard(width, len(rows), colors, rand.New(rand.NewSource(1)))
	for r, row := range rows {
		kinds, ok := DecodeKinds(row)
		if !ok || len(kinds) != width {
			t.Fatalf("boardFromRows: bad row %q", row)
		}
		for c, k := range kinds {
			b.SetToken(c, r, k)
		}
	}
	return b
}

func TestNewBoardStartsEmpty(t *testing.T) {
	b := NewBoard(5, 4, 6, rand.New(rand.NewSource(1)))

	if b.Width() != 5 || b.Height() != 4 {
		t.Errorf("size = %dx%d, want 5x4", b.Width(), b.Height())
	}
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if k := b.KindAt(c, r); k != KindEmpty {
				t.Errorf("cell (%d,%d) = %v, want Empty", c, r, k)
			}
		}
	}
}

func TestBoardColorClamping(t *testing.T) {
	tests := []struct {
		name   string
		colors int
		want   int
	}{
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -3, 1},
		{"in range", 4, 4},
		{"above palette clamps", 99, len(NormalKinds)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(3, 3, tt.colors, rand.New(rand.NewSource(1)))
			if got := b.Colors(); got != tt.want {
				t.Errorf("Colors() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetAndGetToken(t *testing.T) {
	b := NewBoard(3, 3, 6, rand.New(rand.NewSource(1)))

	if !b.SetToken(1, 2, KindBlue) {
		t.Fatal("SetToken(1,2) rejected in-range write")
	}
	tok, ok := b.GetToken(1, 2)
	if !ok {
		t.Fatal("GetToken(1,2) reported out of bounds")
	}
	if tok.Kind != KindBlue {
		t.Errorf("GetToken(1,2).Kind = %v, want Blue", tok.Kind)
	}
	if tok.Pos != (Position{Col: 1, Row: 2}) {
		t.Errorf("GetToken(1,2).Pos = %v, want {1 2}", tok.Pos)
	}

	if b.SetToken(3, 0, KindRed) {
		t.Error("SetToken(3,0) accepted out-of-bounds write")
	}
	if _, ok := b.GetToken(-1, 0); ok {
		t.Error("GetToken(-1,0) reported in bounds")
	}
	if k := b.KindAt(0, 3); k != KindEmpty {
		t.Errorf("KindAt(0,3) = %v, want Empty", k)
	}
}

func TestSwapTokens(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RG",
		"BY",
	})

	if !b.SwapTokens(0, 0, 1, 1) {
		t.Fatal("SwapTokens rejected in-range swap")
	}
	if b.KindAt(0, 0) != KindYellow || b.KindAt(1, 1) != KindRed {
		t.Errorf("after swap: (0,0)=%v (1,1)=%v, want Yellow Red", b.KindAt(0, 0), b.KindAt(1, 1))
	}

	fp := b.Fingerprint()
	if b.SwapTokens(0, 0, 2, 0) {
		t.Error("SwapTokens accepted out-of-bounds swap")
	}
	if b.Fingerprint() != fp {
		t.Error("rejected swap mutated the board")
	}
}

func TestIsAdjacent(t *testing.T) {
	b := NewBoard(4, 4, 6, rand.New(rand.NewSource(1)))
	tests := []struct {
		name string
		p1   Position
		p2   Position
		want bool
	}{
		{"horizontal neighbors", Position{1, 1}, Position{2, 1}, true},
		{"vertical neighbors", Position{1, 1}, Position{1, 0}, true},
		{"same cell", Position{1, 1}, Position{1, 1}, false},
		{"diagonal", Position{1, 1}, Position{2, 2}, false},
		{"two apart", Position{0, 0}, Position{2, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsAdjacent(tt.p1, tt.p2); got != tt.want {
				t.Errorf("IsAdjacent(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestGenerateFillsBoard(t *testing.T) {
	b := NewBoard(8, 8, 6, rand.New(rand.NewSource(1)))
	b.Generate()

	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if k := b.KindAt(c, r); !k.IsNormal() {
				t.Errorf("cell (%d,%d) = %v after Generate, want a color", c, r, k)
			}
		}
	}

	d := NewDetector(b)
	if matches := d.FindAllMatches(); len(matches) != 0 {
		t.Errorf("fresh board has %d matches, want 0", len(matches))
	}
}

func TestGeneratePreservesObstacles(t *testing.T) {
	b := NewBoard(6, 6, 6, rand.New(rand.NewSource(3)))
	b.SetToken(2, 3, KindObstacle)
	b.SetToken(0, 0, KindObstacle)
	b.Generate()

	if b.KindAt(2, 3) != KindObstacle || b.KindAt(0, 0) != KindObstacle {
		t.Error("Generate overwrote obstacle cells")
	}
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			k := b.KindAt(c, r)
			if k == KindObstacle {
				continue
			}
			if !k.IsNormal() {
				t.Errorf("cell (%d,%d) = %v after Generate, want a color", c, r, k)
			}
		}
	}
}

func TestCompletesBackwardRun(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RRG",
		"RBY",
		"ROP",
	})
	tests := []struct {
		name string
		c, r int
		kind TokenKind
		want bool
	}{
		{"two to the left", 2, 0, KindRed, true},
		{"two above", 0, 2, KindRed, true},
		{"different color", 2, 0, KindGreen, false},
		{"not enough room left", 1, 0, KindRed, false},
		{"not enough room above", 0, 1, KindRed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.completesBackwardRun(tt.c, tt.r, tt.kind); got != tt.want {
				t.Errorf("completesBackwardRun(%d,%d,%v) = %v, want %v", tt.c, tt.r, tt.kind, got, tt.want)
			}
		})
	}
}

func TestCompletesRunFullNeighborhood(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RGRB",
		"YBOP",
		"GYBO",
	})
	// placing Red at (1,0) bridges the Reds at (0,0) and (2,0)
	if !b.completesRun(1, 0, KindRed) {
		t.Error("completesRun missed a bridging horizontal run")
	}
	if b.completesRun(1, 0, KindBlue) {
		t.Error("completesRun reported a run for a non-matching color")
	}
	if b.completesRun(1, 0, KindObstacle) {
		t.Error("completesRun reported a run for an obstacle")
	}
}

func TestEncodeDecodeKinds(t *testing.T) {
	kinds := []TokenKind{KindEmpty, KindRed, KindOrange, KindYellow, KindGreen, KindBlue, KindPurple, KindObstacle}
	encoded := EncodeKinds(kinds)
	if encoded != "0ROYGBP#" {
		t.Errorf("EncodeKinds = %q, want %q", encoded, "0ROYGBP#")
	}

	decoded, clean := DecodeKinds(encoded)
	if !clean {
		t.Error("DecodeKinds reported unknown characters in clean input")
	}
	for i, k := range decoded {
		if k != kinds[i] {
			t.Errorf("decoded[%d] = %v, want %v", i, k, kinds[i])
		}
	}

	dirty, clean := DecodeKinds("R?G")
	if clean {
		t.Error("DecodeKinds accepted unknown character as clean")
	}
	if dirty[1] != KindEmpty {
		t.Errorf("unknown character decoded to %v, want Empty", dirty[1])
	}
}

func TestFingerprintTracksBoard(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RG",
		"BY",
	})
	fp := b.Fingerprint()
	if fp != "RGBY" {
		t.Errorf("Fingerprint = %q, want %q", fp, "RGBY")
	}
	b.SetToken(0, 0, KindPurple)
	if b.Fingerprint() == fp {
		t.Error("Fingerprint unchanged after mutation")
	}
}

func TestSnapshotRestore(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RGB",
		"YOP",
	})
	snap := b.Snapshot()
	fp := b.Fingerprint()

	b.SetToken(0, 0, KindBlue)
	b.SetToken(2, 1, KindEmpty)
	b.Restore(snap)
	if b.Fingerprint() != fp {
		t.Errorf("Fingerprint after restore = %q, want %q", b.Fingerprint(), fp)
	}

	b.Restore(snap[:3])
	if b.Fingerprint() != fp {
		t.Error("Restore with mismatched length mutated the board")
	}
}

func TestImportState(t *testing.T) {
	b := NewBoard(2, 2, 6, rand.New(rand.NewSource(1)))

	if err := b.ImportState([]TokenKind{KindRed, KindObstacle, KindEmpty, KindBlue}); err != nil {
		t.Fatalf("ImportState: %v", err)
	}
	if b.Fingerprint() != "R#0B" {
		t.Errorf("Fingerprint after import = %q, want %q", b.Fingerprint(), "R#0B")
	}

	if err := b.ImportState([]TokenKind{KindRed}); err == nil {
		t.Error("ImportState accepted wrong cell count")
	}
	if err := b.ImportState([]TokenKind{KindRed, KindBlue, TokenKind(42), KindGreen}); err == nil {
		t.Error("ImportState accepted invalid kind")
	}
}
