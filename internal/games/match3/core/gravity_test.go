package core

import (
	"reflect"
	"testing"
)

func TestApplyGravityCollapsesColumn(t *testing.T) {
	b := boardFromRows(t, 1, []string{
		"R",
		"0",
		"G",
		"0",
	})
	g := NewGravity(b, NewDetector(b))

	steps := g.ApplyGravity()

	if fp := b.Fingerprint(); fp != "RRRG" {
		t.Errorf("board after gravity = %q, want %q", fp, "RRRG")
	}
	want := []GravityStep{
		{Kind: KindGreen, Column: 0, FromRow: 2, ToRow: 3, FallDistance: 1},
		{Kind: KindRed, Column: 0, FromRow: 0, ToRow: 2, FallDistance: 2},
		{Kind: KindRed, Column: 0, FromRow: -2, ToRow: 0, FallDistance: 2, Spawned: true},
		{Kind: KindRed, Column: 0, FromRow: -1, ToRow: 1, FallDistance: 2, Spawned: true},
	}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("steps = %v, want %v", steps, want)
	}
	if g.State() != GravityIdle {
		t.Errorf("State = %v after pass, want Idle", g.State())
	}
}

func TestGravityObstacleSplitsColumn(t *testing.T) {
	b := boardFromRows(t, 1, []string{
		"R",
		"0",
		"#",
		"G",
		"0",
	})
	g := NewGravity(b, NewDetector(b))

	steps := g.ApplyGravity()

	if fp := b.Fingerprint(); fp != "RR#RG" {
		t.Errorf("board after gravity = %q, want %q", fp, "RR#RG")
	}
	if b.KindAt(0, 2) != KindObstacle {
		t.Error("obstacle moved during gravity")
	}
	want := []GravityStep{
		{Kind: KindRed, Column: 0, FromRow: 0, ToRow: 1, FallDistance: 1},
		{Kind: KindRed, Column: 0, FromRow: -1, ToRow: 0, FallDistance: 1, Spawned: true},
		{Kind: KindGreen, Column: 0, FromRow: 3, ToRow: 4, FallDistance: 1},
		{Kind: KindRed, Column: 0, FromRow: 2, ToRow: 3, FallDistance: 1, Spawned: true},
	}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("steps = %v, want %v", steps, want)
	}
}

func TestGravityRejectedDuringChain(t *testing.T) {
	b := boardFromRows(t, 1, []string{
		"R",
		"0",
		"G",
	})
	g := NewGravity(b, NewDetector(b))

	cr := g.StartChain([]Match{{Kind: KindGreen, Cells: []Position{{0, 2}}}})
	if cr == nil {
		t.Fatal("StartChain returned nil on idle gravity")
	}
	if cr.Done() {
		t.Fatal("chain done before any round")
	}

	if steps := g.ApplyGravity(); steps != nil {
		t.Errorf("ApplyGravity during chain = %v, want nil", steps)
	}
	if fp := b.Fingerprint(); fp != "R0G" {
		t.Errorf("rejected gravity mutated board: %q", fp)
	}
	if second := g.StartChain(nil); second != nil {
		t.Error("second StartChain succeeded during active chain")
	}
}

func TestProcessChainReactionSingleRound(t *testing.T) {
	b := boardFromRows(t, 1, []string{
		"G#PY",
		"YBOG",
		"RRRB",
	})
	d := NewDetector(b)
	g := NewGravity(b, d)

	initial := d.FindAllMatches()
	if len(initial) != 1 {
		t.Fatalf("initial matches = %d, want 1", len(initial))
	}

	result := g.ProcessChainReaction(initial)

	if result.ChainLength != 1 {
		t.Errorf("ChainLength = %d, want 1", result.ChainLength)
	}
	if result.TotalScore != 300 {
		t.Errorf("TotalScore = %d, want 300", result.TotalScore)
	}
	if result.ComboMultiplier != 1.0 {
		t.Errorf("ComboMultiplier = %v, want 1.0", result.ComboMultiplier)
	}
	if result.ChainBonus != 0 {
		t.Errorf("ChainBonus = %d, want 0 for a single round", result.ChainBonus)
	}
	if result.Truncated {
		t.Error("Truncated = true, want false")
	}

	if fp := b.Fingerprint(); fp != "R#RYGRPGYBOB" {
		t.Errorf("board after cascade = %q, want %q", fp, "R#RYGRPGYBOB")
	}

	want := []GravityStep{
		{Kind: KindYellow, Column: 0, FromRow: 1, ToRow: 2, FallDistance: 1},
		{Kind: KindGreen, Column: 0, FromRow: 0, ToRow: 1, FallDistance: 1},
		{Kind: KindRed, Column: 0, FromRow: -1, ToRow: 0, FallDistance: 1, Spawned: true},
		{Kind: KindBlue, Column: 1, FromRow: 1, ToRow: 2, FallDistance: 1},
		{Kind: KindRed, Column: 1, FromRow: 0, ToRow: 1, FallDistance: 1, Spawned: true},
		{Kind: KindOrange, Column: 2, FromRow: 1, ToRow: 2, FallDistance: 1},
		{Kind: KindPurple, Column: 2, FromRow: 0, ToRow: 1, FallDistance: 1},
		{Kind: KindRed, Column: 2, FromRow: -1, ToRow: 0, FallDistance: 1, Spawned: true},
	}
	if !reflect.DeepEqual(result.Steps, want) {
		t.Errorf("steps = %v, want %v", result.Steps, want)
	}
}

func TestChainCascadeTruncation(t *testing.T) {
	// A single one-color column refills into the same triple every
	// round, so the cascade runs forever and must be cut at the cap.
	b := boardFromRows(t, 1, []string{
		"R",
		"R",
		"R",
	})
	d := NewDetector(b)
	g := NewGravity(b, d)

	cr := g.StartChain(d.FindAllMatches())
	if cr == nil {
		t.Fatal("StartChain returned nil")
	}

	var rounds []ChainRound
	for {
		round, ok := cr.StepRound()
		if !ok {
			break
		}
		rounds = append(rounds, round)
	}

	if len(rounds) != MaxChainLength {
		t.Fatalf("rounds = %d, want %d", len(rounds), MaxChainLength)
	}
	wantScores := []int{300, 375, 450, 525, 600, 675, 750, 825, 900, 975}
	for i, round := range rounds {
		if round.Index != i+1 {
			t.Errorf("rounds[%d].Index = %d, want %d", i, round.Index, i+1)
		}
		if round.Score != wantScores[i] {
			t.Errorf("rounds[%d].Score = %d, want %d", i, round.Score, wantScores[i])
		}
	}
	if rounds[0].Multiplier != 1.0 || rounds[9].Multiplier != 3.25 {
		t.Errorf("multipliers = %v and %v, want 1.0 and 3.25", rounds[0].Multiplier, rounds[9].Multiplier)
	}

	result := cr.Result()
	if !result.Truncated {
		t.Error("Truncated = false, want true")
	}
	if result.ChainLength != MaxChainLength {
		t.Errorf("ChainLength = %d, want %d", result.ChainLength, MaxChainLength)
	}
	if result.ChainBonus != 2700 {
		t.Errorf("ChainBonus = %d, want 2700", result.ChainBonus)
	}
	if result.TotalScore != 9075 {
		t.Errorf("TotalScore = %d, want 9075", result.TotalScore)
	}
	if result.ComboMultiplier != 3.25 {
		t.Errorf("ComboMultiplier = %v, want 3.25", result.ComboMultiplier)
	}
	if len(result.Matches) != 10 {
		t.Errorf("Matches = %d, want 10", len(result.Matches))
	}
	if len(result.SpecialsCreated) != 0 {
		t.Errorf("SpecialsCreated = %v, want none for plain threes", result.SpecialsCreated)
	}
	if !cr.Done() {
		t.Error("runner not done after truncation")
	}
}

func TestChainRunnerEmptyInitial(t *testing.T) {
	b := boardFromRows(t, 6, []string{
		"RG",
		"BY",
	})
	g := NewGravity(b, NewDetector(b))

	cr := g.StartChain(nil)
	if cr == nil {
		t.Fatal("StartChain(nil) returned nil runner")
	}
	if !cr.Done() {
		t.Error("empty chain not immediately done")
	}
	result := cr.Result()
	if result.TotalScore != 0 || result.ChainLength != 0 || result.ChainBonus != 0 {
		t.Errorf("empty chain result = %+v, want zeroes", result)
	}

	if g.StartChain(nil) == nil {
		t.Error("gravity not released after empty chain")
	}
}

func TestComboMultiplier(t *testing.T) {
	tests := []struct {
		index int
		want  float64
	}{
		{1, 1.0},
		{2, 1.25},
		{3, 1.5},
		{5, 2.0},
		{10, 3.25},
	}
	for _, tt := range tests {
		if got := comboMultiplier(tt.index); got != tt.want {
			t.Errorf("comboMultiplier(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestChainBonus(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 282},
		{5, 800},
		{10, 2700},
	}
	for _, tt := range tests {
		if got := chainBonus(tt.length); got != tt.want {
			t.Errorf("chainBonus(%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}
