package core

import "math"

// MaxChainLength is the hard cap on cascade rounds. Reaching it stops the
// chain with whatever has accrued; the result carries a Truncated flag.
const MaxChainLength = 10

// GravityState tracks whether a collapse pass is in flight.
type GravityState int

const (
	GravityIdle GravityState = iota
	GravityActive
)

// GravityStep records one token's vertical relocation during a collapse
// pass. Spawned steps describe refill tokens entering from above their
// column segment; their FromRow lies outside the segment.
type GravityStep struct {
	Kind         TokenKind
	Column       int
	FromRow      int
	ToRow        int
	FallDistance int
	Spawned      bool
}

// ChainRound is the outcome of a single cascade round: the matches
// removed, the score awarded for them after the combo multiplier, and
// the gravity steps that followed.
type ChainRound struct {
	Index      int
	Matches    []Match
	Score      int
	Multiplier float64
	Steps      []GravityStep
}

// ChainResult is the outcome of a full cascade started by one committed
// move. ChainBonus is already included in TotalScore. ComboMultiplier is
// the multiplier reached by the final round.
type ChainResult struct {
	Matches         []Match
	TotalScore      int
	ChainLength     int
	ComboMultiplier float64
	SpecialsCreated []SpecialKind
	ChainBonus      int
	Truncated       bool
	Steps           []GravityStep
}

// Gravity collapses columns after removals, spawns replacement tokens,
// and drives the match-remove-collapse cascade loop.
type Gravity struct {
	board    *Board
	detector *Detector
	state    GravityState
	chaining bool
}

// NewGravity creates a gravity system over a board and its detector.
func NewGravity(board *Board, detector *Detector) *Gravity {
	return &Gravity{board: board, detector: detector}
}

// State returns the current gravity state.
func (g *Gravity) State() GravityState { return g.state }

// ApplyGravity collapses every column and refills uncovered cells.
// Returns nil without touching the board if a pass or a chain is already
// in progress; concurrent invocation is rejected, never queued.
func (g *Gravity) ApplyGravity() []GravityStep {
	if g.state != GravityIdle || g.chaining {
		return nil
	}
	g.state = GravityActive
	steps := g.collapse()
	g.detector.InvalidateCache()
	g.state = GravityIdle
	return steps
}

// collapse rewrites every column bottom-up, preserving the relative
// order of surviving tokens, and fills uncovered cells at the top of
// each column segment with fresh random colors. Refills deliberately
// skip the immediate-match avoidance used at board generation: new
// matches are legitimate cascade fuel. Obstacles split a column into
// independently collapsing segments and never move.
func (g *Gravity) collapse() []GravityStep {
	b := g.board
	var steps []GravityStep

	for c := 0; c < b.Width(); c++ {
		r := 0
		for r < b.Height() {
			if b.KindAt(c, r) == KindObstacle {
				r++
				continue
			}
			lo := r
			for r < b.Height() && b.KindAt(c, r) != KindObstacle {
				r++
			}
			steps = g.collapseSegment(c, lo, r-1, steps)
		}
	}
	return steps
}

// collapseSegment compacts the rows [lo, hi] of column c.
func (g *Gravity) collapseSegment(c, lo, hi int, steps []GravityStep) []GravityStep {
	b := g.board

	type survivor struct {
		kind TokenKind
		row  int
	}
	var survivors []survivor
	for r := hi; r >= lo; r-- {
		if k := b.KindAt(c, r); k != KindEmpty {
			survivors = append(survivors, survivor{kind: k, row: r})
		}
	}

	writeRow := hi
	for _, s := range survivors {
		b.SetToken(c, writeRow, s.kind)
		if writeRow != s.row {
			steps = append(steps, GravityStep{
				Kind:         s.kind,
				Column:       c,
				FromRow:      s.row,
				ToRow:        writeRow,
				FallDistance: writeRow - s.row,
			})
		}
		writeRow--
	}

	spawned := writeRow - lo + 1
	for i := 0; i < spawned; i++ {
		r := lo + i
		kind := b.randomKind()
		b.SetToken(c, r, kind)
		steps = append(steps, GravityStep{
			Kind:         kind,
			Column:       c,
			FromRow:      lo - (spawned - i),
			ToRow:        r,
			FallDistance: spawned,
			Spawned:      true,
		})
	}
	return steps
}

// removeMatches clears every matched cell to Empty.
func (g *Gravity) removeMatches(matches []Match) {
	for _, m := range matches {
		for _, cell := range m.Cells {
			g.board.SetToken(cell.Col, cell.Row, KindEmpty)
		}
	}
}

// ChainRunner steps a cascade one round at a time, letting the caller
// interleave animation between rounds. ProcessChainReaction drives it to
// completion for synchronous use.
type ChainRunner struct {
	g       *Gravity
	pending []Match
	index   int
	result  ChainResult
	done    bool
}

// StartChain begins a cascade from an initial match set. Returns nil if
// a chain or gravity pass is already in progress.
func (g *Gravity) StartChain(initial []Match) *ChainRunner {
	if g.chaining || g.state != GravityIdle {
		return nil
	}
	g.chaining = true
	cr := &ChainRunner{g: g, pending: initial}
	if len(initial) == 0 {
		cr.finish()
	}
	return cr
}

// Pending returns the matches the next round will remove.
func (cr *ChainRunner) Pending() []Match { return cr.pending }

// Done reports whether the cascade has finished.
func (cr *ChainRunner) Done() bool { return cr.done }

// StepRound removes the pending matches, applies gravity, and detects
// the next chain link. Returns false once the cascade is complete.
func (cr *ChainRunner) StepRound() (ChainRound, bool) {
	if cr.done || len(cr.pending) == 0 {
		cr.finish()
		return ChainRound{}, false
	}

	idx := cr.index + 1
	mult := comboMultiplier(idx)
	base := 0
	for _, m := range cr.pending {
		base += m.Score
	}
	score := int(math.Floor(float64(base) * mult))

	cr.result.Matches = append(cr.result.Matches, cr.pending...)
	for _, m := range cr.pending {
		if m.Special != SpecialNone {
			cr.result.SpecialsCreated = append(cr.result.SpecialsCreated, m.Special)
		}
	}
	cr.result.TotalScore += score
	cr.result.ChainLength = idx
	cr.result.ComboMultiplier = mult
	cr.index = idx

	cr.g.removeMatches(cr.pending)
	steps := cr.g.collapse()
	cr.g.detector.InvalidateCache()
	cr.result.Steps = append(cr.result.Steps, steps...)

	round := ChainRound{
		Index:      idx,
		Matches:    cr.pending,
		Score:      score,
		Multiplier: mult,
		Steps:      steps,
	}

	next := cr.g.detector.FindAllMatches()
	switch {
	case idx >= MaxChainLength:
		if len(next) > 0 {
			cr.result.Truncated = true
		}
		cr.pending = nil
		cr.finish()
	case len(next) == 0:
		cr.pending = nil
		cr.finish()
	default:
		cr.pending = next
	}
	return round, true
}

// Result returns the accumulated cascade outcome. Complete once Done.
func (cr *ChainRunner) Result() ChainResult { return cr.result }

func (cr *ChainRunner) finish() {
	if cr.done {
		return
	}
	cr.done = true
	cr.result.ChainBonus = chainBonus(cr.result.ChainLength)
	cr.result.TotalScore += cr.result.ChainBonus
	cr.g.chaining = false
}

// ProcessChainReaction runs a full cascade from the initial match set.
// Returns an empty result if a chain is already in progress.
func (g *Gravity) ProcessChainReaction(initial []Match) ChainResult {
	cr := g.StartChain(initial)
	if cr == nil {
		return ChainResult{}
	}
	for {
		if _, ok := cr.StepRound(); !ok {
			break
		}
	}
	return cr.Result()
}

// comboMultiplier returns the score multiplier for a 1-based chain index.
func comboMultiplier(chainIndex int) float64 {
	return 1 + float64(chainIndex-1)*0.25
}

// chainBonus is the flat end-of-cascade bonus, rewarding longer chains
// super-linearly.
func chainBonus(chainLength int) int {
	if chainLength <= 1 {
		return 0
	}
	return int(math.Floor(math.Pow(float64(chainLength-1), 1.5) * 100))
}
