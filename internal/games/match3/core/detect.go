package core

import "sort"

const (
	minRunLength = 3
	shapeRayCap  = 2

	// maxCacheEntries bounds the detection cache. Exceeding it resets the
	// cache rather than evicting, keeping bookkeeping trivial.
	maxCacheEntries = 128
)

// Detector finds matched groups on a board. Results are memoized against
// the board fingerprint; InvalidateCache must be called after any board
// mutation the detector did not perform itself.
type Detector struct {
	board *Board
	cache map[string][]Match
}

// NewDetector creates a detector bound to a board.
func NewDetector(board *Board) *Detector {
	return &Detector{
		board: board,
		cache: make(map[string][]Match),
	}
}

// InvalidateCache drops all memoized results.
func (d *Detector) InvalidateCache() {
	d.cache = make(map[string][]Match)
}

// FindAllMatches returns every matched group on the board. The result
// honors the non-overlap invariant: no two matches share a cell. Repeated
// calls on an unchanged board hit the fingerprint cache.
func (d *Detector) FindAllMatches() []Match {
	fp := d.board.Fingerprint()
	if cached, ok := d.cache[fp]; ok {
		return cached
	}

	candidates := d.findRuns()
	candidates = append(candidates, d.findShapes()...)
	matches := dedupe(candidates)
	for i := range matches {
		matches[i].Special = specialTier(matches[i].Shape, len(matches[i].Cells))
		matches[i].Score = matchScore(matches[i].Shape, len(matches[i].Cells))
	}

	if len(d.cache) >= maxCacheEntries {
		d.cache = make(map[string][]Match)
	}
	d.cache[fp] = matches
	return matches
}

// findRuns scans every row and every column for runs of three or more
// consecutive equal matchable kinds.
func (d *Detector) findRuns() []Match {
	b := d.board
	var runs []Match

	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); {
			kind := b.KindAt(c, r)
			if !kind.CanMatch() {
				c++
				continue
			}
			end := c + 1
			for end < b.Width() && b.KindAt(end, r) == kind {
				end++
			}
			if end-c >= minRunLength {
				cells := make([]Position, 0, end-c)
				for x := c; x < end; x++ {
					cells = append(cells, Position{Col: x, Row: r})
				}
				runs = append(runs, Match{Shape: ShapeHorizontal, Kind: kind, Cells: cells})
			}
			c = end
		}
	}

	for c := 0; c < b.Width(); c++ {
		for r := 0; r < b.Height(); {
			kind := b.KindAt(c, r)
			if !kind.CanMatch() {
				r++
				continue
			}
			end := r + 1
			for end < b.Height() && b.KindAt(c, end) == kind {
				end++
			}
			if end-r >= minRunLength {
				cells := make([]Position, 0, end-r)
				for y := r; y < end; y++ {
					cells = append(cells, Position{Col: c, Row: y})
				}
				runs = append(runs, Match{Shape: ShapeVertical, Kind: kind, Cells: cells})
			}
			r = end
		}
	}

	return runs
}

// findShapes treats every cell as a candidate shape center, ray-casting
// up to shapeRayCap cells in each axis direction over same-kind tokens.
// An arm of length three means a ray of two beyond the center, so an L
// needs one horizontal and one vertical ray of two, a T needs a stem ray
// of two plus single rays on both perpendicular sides, and a Cross needs
// rays of two in all four directions.
func (d *Detector) findShapes() []Match {
	b := d.board
	var shapes []Match

	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			kind := b.KindAt(c, r)
			if !kind.CanMatch() {
				continue
			}
			up := d.rayLen(c, r, 0, -1, kind)
			down := d.rayLen(c, r, 0, 1, kind)
			left := d.rayLen(c, r, -1, 0, kind)
			right := d.rayLen(c, r, 1, 0, kind)

			center := Position{Col: c, Row: r}

			// L orientations: corner cell with two full arms.
			for _, h := range [2]struct{ ray, dc int }{{left, -1}, {right, 1}} {
				for _, v := range [2]struct{ ray, dr int }{{up, -1}, {down, 1}} {
					if h.ray >= 2 && v.ray >= 2 {
						cells := []Position{center}
						cells = appendRay(cells, c, r, h.dc, 0, 2)
						cells = appendRay(cells, c, r, 0, v.dr, 2)
						shapes = append(shapes, Match{Shape: ShapeL, Kind: kind, Cells: cells})
					}
				}
			}

			// T orientations: stem plus a bar straddling the center.
			type stem struct {
				ray    int
				dc, dr int
				barA   int
				barB   int
				bc, br int
			}
			for _, s := range [4]stem{
				{up, 0, -1, left, right, 1, 0},
				{down, 0, 1, left, right, 1, 0},
				{left, -1, 0, up, down, 0, 1},
				{right, 1, 0, up, down, 0, 1},
			} {
				if s.ray >= 2 && s.barA >= 1 && s.barB >= 1 {
					cells := []Position{center}
					cells = appendRay(cells, c, r, s.dc, s.dr, 2)
					cells = appendRay(cells, c, r, -s.bc, -s.br, 1)
					cells = appendRay(cells, c, r, s.bc, s.br, 1)
					shapes = append(shapes, Match{Shape: ShapeT, Kind: kind, Cells: cells})
				}
			}

			// Cross: full arms in all four directions.
			if up >= 2 && down >= 2 && left >= 2 && right >= 2 {
				cells := []Position{center}
				cells = appendRay(cells, c, r, 0, -1, 2)
				cells = appendRay(cells, c, r, 0, 1, 2)
				cells = appendRay(cells, c, r, -1, 0, 2)
				cells = appendRay(cells, c, r, 1, 0, 2)
				shapes = append(shapes, Match{Shape: ShapeCross, Kind: kind, Cells: cells})
			}
		}
	}

	return shapes
}

// rayLen counts consecutive cells of the given kind outward from (c, r)
// in direction (dc, dr), capped at shapeRayCap.
func (d *Detector) rayLen(c, r, dc, dr int, kind TokenKind) int {
	n := 0
	for n < shapeRayCap {
		c += dc
		r += dr
		if d.board.KindAt(c, r) != kind {
			break
		}
		n++
	}
	return n
}

// appendRay appends n positions stepping from (c, r) by (dc, dr),
// excluding the origin.
func appendRay(cells []Position, c, r, dc, dr, n int) []Position {
	for i := 1; i <= n; i++ {
		cells = append(cells, Position{Col: c + i*dc, Row: r + i*dr})
	}
	return cells
}

// dedupe resolves overlapping candidates: sorted by descending cell
// count, a candidate survives only if none of its cells is already
// claimed. Largest wins; first found among equal sizes wins.
func dedupe(candidates []Match) []Match {
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].Cells) > len(candidates[j].Cells)
	})

	claimed := make(map[Position]bool)
	kept := make([]Match, 0, len(candidates))
	for _, cand := range candidates {
		overlap := false
		for _, cell := range cand.Cells {
			if claimed[cell] {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		for _, cell := range cand.Cells {
			claimed[cell] = true
		}
		kept = append(kept, cand)
	}
	return kept
}

// specialTier labels a match with its advisory special-token tier.
func specialTier(shape MatchShape, cells int) SpecialKind {
	switch shape {
	case ShapeL, ShapeT:
		return SpecialBomb
	case ShapeCross:
		return SpecialCrossLine
	}
	switch {
	case cells >= 6:
		return SpecialRainbow
	case cells == 5:
		return SpecialColorBomb
	case cells == 4:
		return SpecialLine
	}
	return SpecialNone
}

// matchScore computes the detection-time score for one match.
func matchScore(shape MatchShape, cells int) int {
	score := 100 * cells
	if cells > minRunLength {
		score += 50 * (cells - minRunLength)
	}
	switch shape {
	case ShapeL, ShapeT:
		score += 200
	case ShapeCross:
		score += 500
	}
	return score
}
