package core

import (
	"fmt"
	"math/rand"
)

// generateRetryCap bounds color redraws per cell during board generation.
// After this many rejected draws the last candidate is accepted, so the
// no-immediate-match guarantee is best effort rather than absolute.
const generateRetryCap = 10

// Board is a fixed-size rectangular grid of token kinds. Every in-range
// coordinate always holds exactly one kind; Empty is itself a valid kind.
// All mutation goes through SetToken and SwapTokens, which reject
// out-of-bounds coordinates.
type Board struct {
	width   int
	height  int
	cells   []TokenKind // row-major
	palette []TokenKind // colors drawn by Generate and refills
	rng     *rand.Rand
}

// NewBoard creates a board of the given size filled with Empty cells.
// colors selects how many of the normal kinds are in play (clamped to
// the available palette; values below 1 become 1).
func NewBoard(width, height, colors int, rng *rand.Rand) *Board {
	if colors < 1 {
		colors = 1
	}
	if colors > len(NormalKinds) {
		colors = len(NormalKinds)
	}
	return &Board{
		width:   width,
		height:  height,
		cells:   make([]TokenKind, width*height),
		palette: append([]TokenKind(nil), NormalKinds[:colors]...),
		rng:     rng,
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Colors returns the number of normal kinds currently in play.
func (b *Board) Colors() int { return len(b.palette) }

// SetColors changes the number of normal kinds drawn by future refills.
// Existing cells are untouched.
func (b *Board) SetColors(colors int) {
	if colors < 1 {
		colors = 1
	}
	if colors > len(NormalKinds) {
		colors = len(NormalKinds)
	}
	b.palette = append(b.palette[:0], NormalKinds[:colors]...)
}

func (b *Board) idx(c, r int) int {
	return r*b.width + c
}

// IsValidPosition reports whether (c, r) is inside the board.
func (b *Board) IsValidPosition(c, r int) bool {
	return c >= 0 && c < b.width && r >= 0 && r < b.height
}

// GetToken returns the token at (c, r). The bool is false for
// out-of-bounds coordinates.
func (b *Board) GetToken(c, r int) (Token, bool) {
	if !b.IsValidPosition(c, r) {
		return Token{}, false
	}
	return Token{Kind: b.cells[b.idx(c, r)], Pos: Position{Col: c, Row: r}}, true
}

// KindAt returns the kind at (c, r), or Empty for out-of-bounds
// coordinates. Detection loops use it on known-valid positions.
func (b *Board) KindAt(c, r int) TokenKind {
	if !b.IsValidPosition(c, r) {
		return KindEmpty
	}
	return b.cells[b.idx(c, r)]
}

// SetToken writes a kind at (c, r). Returns false without mutating for
// out-of-bounds coordinates.
func (b *Board) SetToken(c, r int, kind TokenKind) bool {
	if !b.IsValidPosition(c, r) {
		return false
	}
	b.cells[b.idx(c, r)] = kind
	return true
}

// SwapTokens exchanges the kinds at two positions. Returns false without
// mutating if either position is out of bounds.
func (b *Board) SwapTokens(c1, r1, c2, r2 int) bool {
	if !b.IsValidPosition(c1, r1) || !b.IsValidPosition(c2, r2) {
		return false
	}
	i, j := b.idx(c1, r1), b.idx(c2, r2)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	return true
}

// IsAdjacent reports whether two positions share an edge. Diagonals do
// not count.
func (b *Board) IsAdjacent(p1, p2 Position) bool {
	dc := p1.Col - p2.Col
	if dc < 0 {
		dc = -dc
	}
	dr := p1.Row - p2.Row
	if dr < 0 {
		dr = -dr
	}
	return dc+dr == 1
}

// randomKind draws a uniformly random color from the palette.
func (b *Board) randomKind() TokenKind {
	return b.palette[b.rng.Intn(len(b.palette))]
}

// Generate fills every non-obstacle cell with a uniformly random color,
// rejecting a candidate when placing it would immediately complete a run
// of three with the already-placed neighbors to the left or above. Only
// backward neighbors are checked, since forward cells are not placed yet.
// Each cell redraws at most generateRetryCap times and then keeps the
// last draw. Obstacle cells are preserved.
func (b *Board) Generate() {
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			if b.cells[b.idx(c, r)] == KindObstacle {
				continue
			}
			kind := b.randomKind()
			for try := 0; try < generateRetryCap && b.completesBackwardRun(c, r, kind); try++ {
				kind = b.randomKind()
			}
			b.cells[b.idx(c, r)] = kind
		}
	}
}

// completesBackwardRun reports whether placing kind at (c, r) finishes a
// run of three with the two cells to the left or the two cells above.
func (b *Board) completesBackwardRun(c, r int, kind TokenKind) bool {
	if c >= 2 && b.KindAt(c-1, r) == kind && b.KindAt(c-2, r) == kind {
		return true
	}
	if r >= 2 && b.KindAt(c, r-1) == kind && b.KindAt(c, r-2) == kind {
		return true
	}
	return false
}

// completesRun reports whether placing kind at (c, r) would form any run
// of three through that cell, checking the full neighborhood in both
// axes. Used by the post-generation cleanup, where all neighbors exist.
func (b *Board) completesRun(c, r int, kind TokenKind) bool {
	if !kind.CanMatch() {
		return false
	}
	// Three horizontal windows containing (c, r)
	for start := c - 2; start <= c; start++ {
		if b.windowMatches(start, r, 1, 0, c, r, kind) {
			return true
		}
	}
	// Three vertical windows containing (c, r)
	for start := r - 2; start <= r; start++ {
		if b.windowMatches(c, start, 0, 1, c, r, kind) {
			return true
		}
	}
	return false
}

// windowMatches checks a 3-cell window starting at (c0, r0) stepping by
// (dc, dr), treating (tc, tr) as holding kind.
func (b *Board) windowMatches(c0, r0, dc, dr, tc, tr int, kind TokenKind) bool {
	for i := 0; i < 3; i++ {
		c, r := c0+i*dc, r0+i*dr
		if !b.IsValidPosition(c, r) {
			return false
		}
		k := b.KindAt(c, r)
		if c == tc && r == tr {
			k = kind
		}
		if k != kind {
			return false
		}
	}
	return true
}

// Fingerprint returns a cheap serialization of the grid, one character
// per cell, usable as a detection cache key.
func (b *Board) Fingerprint() string {
	return EncodeKinds(b.cells)
}

// Snapshot returns a copy of the kind grid in row-major order.
func (b *Board) Snapshot() []TokenKind {
	return append([]TokenKind(nil), b.cells...)
}

// Restore overwrites the grid from a snapshot taken on a board of the
// same dimensions. Mismatched lengths are ignored.
func (b *Board) Restore(snapshot []TokenKind) {
	if len(snapshot) != len(b.cells) {
		return
	}
	copy(b.cells, snapshot)
}

// ExportState returns the persisted artifact: the kind grid, row-major.
func (b *Board) ExportState() []TokenKind {
	return b.Snapshot()
}

// ImportState replaces the grid from a previously exported state.
func (b *Board) ImportState(kinds []TokenKind) error {
	if len(kinds) != len(b.cells) {
		return fmt.Errorf("match3: state has %d cells, board needs %d", len(kinds), len(b.cells))
	}
	for i, k := range kinds {
		if k != KindEmpty && k != KindObstacle && !k.IsNormal() {
			return fmt.Errorf("match3: invalid kind %d at cell %d", int(k), i)
		}
	}
	copy(b.cells, kinds)
	return nil
}
