package core

import "testing"

func TestValidateMoveRejections(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"R#B",
		"B0G",
		"GBR",
	})
	v := NewValidator(b, NewDetector(b))
	fp := b.Fingerprint()

	tests := []struct {
		name   string
		from   Position
		to     Position
		reason RejectReason
	}{
		{"same position", Position{0, 0}, Position{0, 0}, RejectSamePosition},
		{"out of bounds", Position{0, 0}, Position{-1, 0}, RejectOutOfBounds},
		{"both out of bounds", Position{5, 5}, Position{5, 6}, RejectOutOfBounds},
		{"not adjacent", Position{0, 0}, Position{2, 0}, RejectNotAdjacent},
		{"diagonal", Position{0, 0}, Position{1, 1}, RejectNotAdjacent},
		{"obstacle endpoint", Position{0, 0}, Position{1, 0}, RejectEmptyOrObstacle},
		{"empty endpoint", Position{0, 1}, Position{1, 1}, RejectEmptyOrObstacle},
		{"no resulting match", Position{0, 0}, Position{0, 1}, RejectNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateMove(tt.from, tt.to)
			if res.Accepted {
				t.Fatalf("ValidateMove(%v, %v) accepted, want rejection", tt.from, tt.to)
			}
			if res.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", res.Reason, tt.reason)
			}
			if len(res.Matches) != 0 || res.Score != 0 {
				t.Errorf("rejection carried matches=%d score=%d, want none", len(res.Matches), res.Score)
			}
			if b.Fingerprint() != fp {
				t.Fatalf("board mutated by validation: %q", b.Fingerprint())
			}
		})
	}
}

func TestValidateMoveAccepts(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RGB",
		"RBG",
		"BRG",
	})
	v := NewValidator(b, NewDetector(b))
	fp := b.Fingerprint()

	res := v.ValidateMove(Position{0, 2}, Position{1, 2})
	if !res.Accepted {
		t.Fatalf("ValidateMove rejected with %v, want accept", res.Reason)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("Matches = %d, want 1", len(res.Matches))
	}
	m := res.Matches[0]
	if m.Shape != ShapeVertical || m.Kind != KindRed {
		t.Errorf("match = %v %v, want Vertical Red", m.Shape, m.Kind)
	}
	if !samePositions(m.Cells, []Position{{0, 0}, {0, 1}, {0, 2}}) {
		t.Errorf("Cells = %v, want column 0", m.Cells)
	}
	if m.Score != 300 {
		t.Errorf("match Score = %d, want detection-time 300", m.Score)
	}
	if res.Score != 30 {
		t.Errorf("move Score = %d, want hint-scale 30", res.Score)
	}
	if b.Fingerprint() != fp {
		t.Fatalf("board mutated by accepted validation: %q", b.Fingerprint())
	}
}

func TestHintScoreFormula(t *testing.T) {
	line := func(n int) []Position {
		cells := make([]Position, n)
		for i := range cells {
			cells[i] = Position{Col: i, Row: 0}
		}
		return cells
	}
	tests := []struct {
		name    string
		matches []Match
		want    int
	}{
		{"three in a line", []Match{{Shape: ShapeHorizontal, Cells: line(3)}}, 30},
		{"four in a line", []Match{{Shape: ShapeVertical, Cells: line(4)}}, 60},
		{"L shape", []Match{{Shape: ShapeL, Cells: line(5)}}, 140},
		{"cross", []Match{{Shape: ShapeCross, Cells: line(9)}}, 310},
		{"two matches sum", []Match{
			{Shape: ShapeHorizontal, Cells: line(3)},
			{Shape: ShapeVertical, Cells: line(3)},
		}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hintScore(tt.matches); got != tt.want {
				t.Errorf("hintScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindAllValidMoves(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RGB",
		"RBG",
		"BRG",
	})
	v := NewValidator(b, NewDetector(b))

	moves := v.FindAllValidMoves()
	if len(moves) != 2 {
		t.Fatalf("found %d moves, want 2", len(moves))
	}
	wantFirst := Move{From: Position{1, 0}, To: Position{2, 0}}
	wantSecond := Move{From: Position{0, 2}, To: Position{1, 2}}
	if !moves[0].Move.Equals(wantFirst) {
		t.Errorf("moves[0] = %v, want %v", moves[0].Move, wantFirst)
	}
	if !moves[1].Move.Equals(wantSecond) {
		t.Errorf("moves[1] = %v, want %v", moves[1].Move, wantSecond)
	}
	for _, m := range moves {
		if m.Score != 30 {
			t.Errorf("move %v score = %d, want 30", m.Move, m.Score)
		}
	}

	if !v.HasValidMoves() {
		t.Error("HasValidMoves = false, want true")
	}
	best, ok := v.BestMove()
	if !ok {
		t.Fatal("BestMove found nothing")
	}
	if !best.Move.Equals(wantFirst) {
		t.Errorf("BestMove = %v, want first of equal-scored %v", best.Move, wantFirst)
	}
}

func TestBestMovePrefersHigherScore(t *testing.T) {
	// Swapping (2,0) down pulls the Red up from (2,1) and completes a
	// run of four on the top row; swapping (2,0) right only completes a
	// plain run of three. Both touch (2,0); the four wins.
	b := boardFromRows(t, 6, []string{
		"RRGR",
		"YBRG",
		"BGYB",
	})
	v := NewValidator(b, NewDetector(b))

	moves := v.FindAllValidMoves()
	if len(moves) != 2 {
		t.Fatalf("found %d moves, want 2", len(moves))
	}

	best, ok := v.BestMove()
	if !ok {
		t.Fatal("BestMove found nothing")
	}
	want := Move{From: Position{2, 0}, To: Position{2, 1}}
	if !best.Move.Equals(want) {
		t.Errorf("BestMove = %v, want %v", best.Move, want)
	}
	if best.Score != 60 {
		t.Errorf("BestMove score = %d, want 60", best.Score)
	}
}

func TestDeadlockedBoard(t *testing.T) {
	// Two-color row pairs in a period-two weave: every swap leaves a
	// maximum run of two everywhere.
	b := boardFromRows(t, 6, []string{
		"RGRG",
		"BYBY",
		"RGRG",
		"BYBY",
	})
	v := NewValidator(b, NewDetector(b))

	if v.HasValidMoves() {
		t.Error("HasValidMoves = true on deadlocked board")
	}
	if moves := v.FindAllValidMoves(); len(moves) != 0 {
		t.Errorf("found %d moves on deadlocked board, want 0", len(moves))
	}
	if _, ok := v.BestMove(); ok {
		t.Error("BestMove found a move on deadlocked board")
	}
}
