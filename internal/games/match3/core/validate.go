package core

// RejectReason explains why a candidate move was not accepted. Rejections
// are ordinary values consumed for player feedback, never errors.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectSamePosition
	RejectOutOfBounds
	RejectNotAdjacent
	RejectEmptyOrObstacle
	RejectNoMatch
)

// String returns a human-readable name for the rejection.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "None"
	case RejectSamePosition:
		return "SamePosition"
	case RejectOutOfBounds:
		return "OutOfBounds"
	case RejectNotAdjacent:
		return "NotAdjacent"
	case RejectEmptyOrObstacle:
		return "EmptyOrObstacle"
	case RejectNoMatch:
		return "NoResultingMatch"
	default:
		return "Unknown"
	}
}

// MoveResult is the outcome of validating one candidate swap. Score is
// the advisory hint score, deliberately smaller than the cascade-time
// scoring; the score actually awarded comes from chain resolution.
type MoveResult struct {
	Accepted bool
	Matches  []Match
	Score    int
	Reason   RejectReason
}

// ScoredMove pairs a legal move with its hint score.
type ScoredMove struct {
	Move  Move
	Score int
}

// Validator checks candidate swaps by simulating them against the live
// board. Simulation swaps, detects, and swaps back, restoring the board
// exactly before returning; callers may treat it as read-only.
type Validator struct {
	board    *Board
	detector *Detector
}

// NewValidator creates a validator over a board and its detector.
func NewValidator(board *Board, detector *Detector) *Validator {
	return &Validator{board: board, detector: detector}
}

// ValidateMove checks a candidate swap. Failures short-circuit in a fixed
// order: same position, out of bounds, not adjacent, empty or obstacle
// endpoint, then no resulting match after simulation.
func (v *Validator) ValidateMove(from, to Position) MoveResult {
	if from == to {
		return MoveResult{Reason: RejectSamePosition}
	}
	if !v.board.IsValidPosition(from.Col, from.Row) || !v.board.IsValidPosition(to.Col, to.Row) {
		return MoveResult{Reason: RejectOutOfBounds}
	}
	if !v.board.IsAdjacent(from, to) {
		return MoveResult{Reason: RejectNotAdjacent}
	}
	if !v.board.KindAt(from.Col, from.Row).CanMatch() || !v.board.KindAt(to.Col, to.Row).CanMatch() {
		return MoveResult{Reason: RejectEmptyOrObstacle}
	}

	v.board.SwapTokens(from.Col, from.Row, to.Col, to.Row)
	v.detector.InvalidateCache()
	matches := v.detector.FindAllMatches()
	v.board.SwapTokens(from.Col, from.Row, to.Col, to.Row)
	v.detector.InvalidateCache()

	if len(matches) == 0 {
		return MoveResult{Reason: RejectNoMatch}
	}
	return MoveResult{
		Accepted: true,
		Matches:  matches,
		Score:    hintScore(matches),
	}
}

// hintScore computes the advisory score for a legal move's match set.
func hintScore(matches []Match) int {
	total := 0
	for _, m := range matches {
		cells := len(m.Cells)
		total += 10 * cells
		if cells > minRunLength {
			total += 20 * (cells - minRunLength)
		}
		switch m.Shape {
		case ShapeL, ShapeT:
			total += 50
		case ShapeCross:
			total += 100
		}
	}
	return total
}

// FindAllValidMoves exhaustively probes every adjacent pair once and
// returns the full legal-move set with hint scores.
func (v *Validator) FindAllValidMoves() []ScoredMove {
	var moves []ScoredMove
	for r := 0; r < v.board.Height(); r++ {
		for c := 0; c < v.board.Width(); c++ {
			from := Position{Col: c, Row: r}
			for _, to := range [2]Position{
				{Col: c + 1, Row: r},
				{Col: c, Row: r + 1},
			} {
				res := v.ValidateMove(from, to)
				if res.Accepted {
					moves = append(moves, ScoredMove{
						Move:  Move{From: from, To: to},
						Score: res.Score,
					})
				}
			}
		}
	}
	return moves
}

// BestMove returns the legal move with the highest hint score. The bool
// is false on a deadlocked board.
func (v *Validator) BestMove() (ScoredMove, bool) {
	var best ScoredMove
	found := false
	for _, m := range v.FindAllValidMoves() {
		if !found || m.Score > best.Score {
			best = m
			found = true
		}
	}
	return best, found
}

// HasValidMoves reports whether at least one legal move exists. Stops at
// the first accepted probe.
func (v *Validator) HasValidMoves() bool {
	for r := 0; r < v.board.Height(); r++ {
		for c := 0; c < v.board.Width(); c++ {
			from := Position{Col: c, Row: r}
			if v.ValidateMove(from, Position{Col: c + 1, Row: r}).Accepted {
				return true
			}
			if v.ValidateMove(from, Position{Col: c, Row: r + 1}).Accepted {
				return true
			}
		}
	}
	return false
}
