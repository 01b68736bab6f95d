package core

import (
	"fmt"
	"math/rand"
)

// TurnState is the manager's pipeline state. It acts as the single
// mutual-exclusion gate: any operation attempted while not in the
// expected state is a no-op.
type TurnState int

const (
	StateIdle TurnState = iota
	StatePlayerTurn
	StateValidatingMove
	StateProcessingMatch
	StateApplyingGravity
	StateGameOver
	StatePaused
)

// String returns a human-readable name for the state.
func (s TurnState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlayerTurn:
		return "PlayerTurn"
	case StateValidatingMove:
		return "ValidatingMove"
	case StateProcessingMatch:
		return "ProcessingMatch"
	case StateApplyingGravity:
		return "ApplyingGravity"
	case StateGameOver:
		return "GameOver"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

const (
	// cleanupPassCap bounds the initial-match cleanup after generation.
	// Generation is best effort, so leftovers are possible; after this
	// many passes the board is accepted with a warning.
	cleanupPassCap = 5

	// reshuffleRetryCap bounds consecutive regenerations when recovering
	// from a deadlocked board.
	reshuffleRetryCap = 10
)

// Animator receives the pipeline's animation requests. Each request
// carries a completion callback; the pipeline suspends until it fires.
// NopAnimator completes synchronously, making the whole pipeline
// synchronous for tests and headless use.
type Animator interface {
	AnimateSwap(from, to Position, done func())
	AnimateReject(from, to Position, done func())
	AnimateClear(matches []Match, done func())
	AnimateFall(steps []GravityStep, done func())
}

// NopAnimator completes every request immediately.
type NopAnimator struct{}

func (NopAnimator) AnimateSwap(_, _ Position, done func())   { done() }
func (NopAnimator) AnimateReject(_, _ Position, done func()) { done() }
func (NopAnimator) AnimateClear(_ []Match, done func())      { done() }
func (NopAnimator) AnimateFall(_ []GravityStep, done func()) { done() }

// Stats summarizes a run for the game-over callback and scoreboards.
type Stats struct {
	Score        int
	MovesUsed    int
	MoveLimit    int
	Chains       int
	LongestChain int
	Specials     int
}

// Callbacks are the manager's outward hooks. All fields are optional;
// nil callbacks are skipped. They fire at fixed pipeline points: score
// and chain callbacks after cascade resolution, the move callback after
// each commit, game over at the terminal transition, and the match
// removal hook once per match as its cells clear.
type Callbacks struct {
	OnScoreUpdate   func(total int)
	OnMoveUpdate    func(used, limit int)
	OnGameOver      func(success bool, reason string, stats Stats)
	OnMatchRemoved  func(kind TokenKind, cells []Position)
	OnHint          func(move Move)
	OnInvalidMove   func(reason RejectReason)
	OnReshuffle     func()
	OnWarning       func(msg string)
	OnChainResolved func(result ChainResult)
}

// Config sets up a manager. Zero MoveLimit means no move budget (endless
// play); zero TargetScore disables the success condition; zero
// HintDelayTicks disables automatic hints.
type Config struct {
	Width          int
	Height         int
	Colors         int
	MoveLimit      int
	TargetScore    int
	HintDelayTicks int
	Obstacles      []Position
}

// Manager is the orchestrating turn state machine. It owns the board and
// is its only writer; the validator and detector only read it. Exactly
// one move is in flight at a time.
type Manager struct {
	cfg       Config
	board     *Board
	detector  *Detector
	validator *Validator
	gravity   *Gravity
	animator  Animator
	cb        Callbacks

	state        TurnState
	selected     Position
	hasSelection bool
	pendingMove  Move
	chain        *ChainRunner

	totalScore     int
	movesUsed      int
	chainsResolved int
	longestChain   int
	specialsSeen   int

	hintTicks int
	hint      Move
	hasHint   bool
}

// NewManager wires the resolution pipeline together. A nil animator
// defaults to NopAnimator.
func NewManager(cfg Config, rng *rand.Rand, animator Animator, cb Callbacks) *Manager {
	if animator == nil {
		animator = NopAnimator{}
	}
	board := NewBoard(cfg.Width, cfg.Height, cfg.Colors, rng)
	for _, p := range cfg.Obstacles {
		board.SetToken(p.Col, p.Row, KindObstacle)
	}
	detector := NewDetector(board)
	return &Manager{
		cfg:       cfg,
		board:     board,
		detector:  detector,
		validator: NewValidator(board, detector),
		gravity:   NewGravity(board, detector),
		animator:  animator,
		cb:        cb,
		state:     StateIdle,
	}
}

// Board exposes the grid for rendering and persistence. The pipeline
// remains the only writer during play.
func (m *Manager) Board() *Board { return m.board }

// State returns the current turn state.
func (m *Manager) State() TurnState { return m.state }

// Score returns the running total.
func (m *Manager) Score() int { return m.totalScore }

// MovesUsed returns the number of committed moves.
func (m *Manager) MovesUsed() int { return m.movesUsed }

// MoveLimit returns the move budget, zero when unlimited.
func (m *Manager) MoveLimit() int { return m.cfg.MoveLimit }

// Stats returns the running run summary.
func (m *Manager) Stats() Stats {
	return Stats{
		Score:        m.totalScore,
		MovesUsed:    m.movesUsed,
		MoveLimit:    m.cfg.MoveLimit,
		Chains:       m.chainsResolved,
		LongestChain: m.longestChain,
		Specials:     m.specialsSeen,
	}
}

// Selected returns the currently selected cell, if any.
func (m *Manager) Selected() (Position, bool) {
	return m.selected, m.hasSelection
}

// Hint returns the currently surfaced hint move, if any.
func (m *Manager) Hint() (Move, bool) {
	return m.hint, m.hasHint
}

// Start populates the board and opens play. Only valid from Idle.
func (m *Manager) Start() {
	if m.state != StateIdle {
		return
	}
	m.populate()
	if !m.validator.HasValidMoves() {
		m.fireReshuffle()
		m.reshuffle()
	}
	m.state = StatePlayerTurn
	m.resetHintTimer()
	m.fireScoreUpdate()
	m.fireMoveUpdate()
}

// populate generates a fresh board and runs the initial-match cleanup.
func (m *Manager) populate() {
	m.board.Generate()
	m.detector.InvalidateCache()
	m.cleanupInitialMatches()
}

// cleanupInitialMatches resolves matches left by best-effort generation,
// redrawing each matched cell with a color that does not re-match in its
// full neighborhood. Capped passes; leftovers produce a warning and the
// game proceeds, relying on normal cascade resolution.
func (m *Manager) cleanupInitialMatches() {
	for pass := 0; pass < cleanupPassCap; pass++ {
		matches := m.detector.FindAllMatches()
		if len(matches) == 0 {
			return
		}
		for _, match := range matches {
			for _, cell := range match.Cells {
				kind := m.board.randomKind()
				for try := 0; try < generateRetryCap && m.board.completesRun(cell.Col, cell.Row, kind); try++ {
					kind = m.board.randomKind()
				}
				m.board.SetToken(cell.Col, cell.Row, kind)
			}
		}
		m.detector.InvalidateCache()
	}
	if len(m.detector.FindAllMatches()) > 0 {
		m.fireWarning(fmt.Sprintf("board still has matches after %d cleanup passes", cleanupPassCap))
	}
}

// reshuffle regenerates the board until a legal move exists, bounded by
// reshuffleRetryCap.
func (m *Manager) reshuffle() {
	for try := 0; try < reshuffleRetryCap; try++ {
		m.populate()
		if m.validator.HasValidMoves() {
			return
		}
	}
	m.fireWarning("board still deadlocked after reshuffle attempts")
}

// Select handles a "select token" gesture at a position. The first
// selection marks a cell; a second selection completes the gesture and
// submits the pair for validation. Selecting the same cell deselects.
// Ignored outside PlayerTurn.
func (m *Manager) Select(pos Position) {
	if m.state != StatePlayerTurn {
		return
	}
	m.resetHintTimer()
	if !m.hasSelection {
		if !m.board.IsValidPosition(pos.Col, pos.Row) {
			return
		}
		m.selected = pos
		m.hasSelection = true
		return
	}
	if pos == m.selected {
		m.hasSelection = false
		return
	}
	from := m.selected
	m.hasSelection = false
	m.submitMove(from, pos)
}

// Drag handles a "drag in direction" gesture from the current selection,
// completing it against the neighbor in that direction. Ignored without
// a selection or outside PlayerTurn.
func (m *Manager) Drag(d Direction) {
	if m.state != StatePlayerTurn || !m.hasSelection {
		return
	}
	m.resetHintTimer()
	dc, dr := d.Delta()
	from := m.selected
	m.hasSelection = false
	m.submitMove(from, Position{Col: from.Col + dc, Row: from.Row + dr})
}

// ClearSelection drops the current selection.
func (m *Manager) ClearSelection() {
	if m.state != StatePlayerTurn {
		return
	}
	m.hasSelection = false
}

// submitMove validates a completed gesture and, on acceptance, commits
// the swap and starts the cascade pipeline. Rejections never mutate the
// board and never consume a move.
func (m *Manager) submitMove(from, to Position) {
	m.state = StateValidatingMove
	m.pendingMove = Move{From: from, To: to}

	res := m.validator.ValidateMove(from, to)
	if !res.Accepted {
		m.fireInvalidMove(res.Reason)
		m.animator.AnimateReject(from, to, m.onRejectDone)
		return
	}

	m.board.SwapTokens(from.Col, from.Row, to.Col, to.Row)
	m.detector.InvalidateCache()
	m.movesUsed++
	m.fireMoveUpdate()

	m.chain = m.gravity.StartChain(res.Matches)
	if m.chain == nil {
		m.state = StatePlayerTurn
		return
	}
	m.animator.AnimateSwap(from, to, m.onSwapDone)
}

func (m *Manager) onRejectDone() {
	if m.state == StateValidatingMove {
		m.state = StatePlayerTurn
		m.resetHintTimer()
	}
}

func (m *Manager) onSwapDone() {
	m.advanceChain()
}

// advanceChain announces the next round's removals and requests the
// clear animation, or finishes the move when the cascade is spent.
func (m *Manager) advanceChain() {
	if m.chain == nil || m.chain.Done() || len(m.chain.Pending()) == 0 {
		m.finishMove()
		return
	}
	m.state = StateProcessingMatch
	pending := m.chain.Pending()
	for _, match := range pending {
		m.fireMatchRemoved(match.Kind, match.Cells)
	}
	m.animator.AnimateClear(pending, m.onClearDone)
}

func (m *Manager) onClearDone() {
	round, ok := m.chain.StepRound()
	if !ok {
		m.finishMove()
		return
	}
	m.state = StateApplyingGravity
	m.animator.AnimateFall(round.Steps, m.onFallDone)
}

func (m *Manager) onFallDone() {
	m.advanceChain()
}

// finishMove folds the cascade result into the running totals and runs
// the end-of-turn checks.
func (m *Manager) finishMove() {
	var result ChainResult
	if m.chain != nil {
		result = m.chain.Result()
		m.chain = nil
	}
	m.totalScore += result.TotalScore
	m.chainsResolved++
	if result.ChainLength > m.longestChain {
		m.longestChain = result.ChainLength
	}
	m.specialsSeen += len(result.SpecialsCreated)
	m.fireChainResolved(result)
	m.fireScoreUpdate()
	m.endTurnChecks()
}

// endTurnChecks runs after every committed move: success target first,
// then the move budget, then deadlock recovery.
func (m *Manager) endTurnChecks() {
	if m.cfg.TargetScore > 0 && m.totalScore >= m.cfg.TargetScore {
		m.gameOver(true, "target score reached")
		return
	}
	if m.cfg.MoveLimit > 0 && m.movesUsed >= m.cfg.MoveLimit {
		m.gameOver(false, "out of moves")
		return
	}
	if !m.validator.HasValidMoves() {
		m.fireReshuffle()
		m.reshuffle()
	}
	m.state = StatePlayerTurn
	m.resetHintTimer()
}

func (m *Manager) gameOver(success bool, reason string) {
	m.state = StateGameOver
	m.hasSelection = false
	m.fireGameOver(success, reason)
}

// Tick advances the hint timer. Runs only during PlayerTurn; any input
// or state transition resets it.
func (m *Manager) Tick() {
	if m.state != StatePlayerTurn || m.cfg.HintDelayTicks <= 0 || m.hasHint {
		return
	}
	m.hintTicks++
	if m.hintTicks >= m.cfg.HintDelayTicks {
		m.computeHint()
	}
}

// RequestHint surfaces the best move immediately.
func (m *Manager) RequestHint() {
	if m.state != StatePlayerTurn {
		return
	}
	m.computeHint()
}

func (m *Manager) computeHint() {
	best, ok := m.validator.BestMove()
	if !ok {
		return
	}
	m.hint = best.Move
	m.hasHint = true
	m.fireHint(best.Move)
}

func (m *Manager) resetHintTimer() {
	m.hintTicks = 0
	m.hasHint = false
	m.hint = Move{}
}

// Pause suspends play. Only valid from PlayerTurn; input is ignored and
// the board never mutates while paused.
func (m *Manager) Pause() {
	if m.state == StatePlayerTurn {
		m.state = StatePaused
	}
}

// Resume returns from Paused to PlayerTurn.
func (m *Manager) Resume() {
	if m.state == StatePaused {
		m.state = StatePlayerTurn
		m.resetHintTimer()
	}
}

// SetColors changes the number of colors drawn by future refills.
func (m *Manager) SetColors(colors int) {
	m.board.SetColors(colors)
}

// ExportState returns the board's kind grid, the sole persisted artifact.
func (m *Manager) ExportState() []TokenKind {
	return m.board.ExportState()
}

// ImportState replaces the board from a previously exported grid and
// reopens play, recovering via reshuffle if the restored board is
// deadlocked.
func (m *Manager) ImportState(kinds []TokenKind) error {
	if err := m.board.ImportState(kinds); err != nil {
		return err
	}
	m.detector.InvalidateCache()
	m.hasSelection = false
	if m.state == StateIdle {
		m.state = StatePlayerTurn
	}
	m.resetHintTimer()
	if !m.validator.HasValidMoves() {
		m.fireReshuffle()
		m.reshuffle()
	}
	return nil
}

// SetProgress restores score and move counters alongside ImportState
// when resuming a saved run.
func (m *Manager) SetProgress(score, movesUsed int) {
	m.totalScore = score
	m.movesUsed = movesUsed
	m.fireScoreUpdate()
	m.fireMoveUpdate()
}

func (m *Manager) fireScoreUpdate() {
	if m.cb.OnScoreUpdate != nil {
		m.cb.OnScoreUpdate(m.totalScore)
	}
}

func (m *Manager) fireMoveUpdate() {
	if m.cb.OnMoveUpdate != nil {
		m.cb.OnMoveUpdate(m.movesUsed, m.cfg.MoveLimit)
	}
}

func (m *Manager) fireGameOver(success bool, reason string) {
	if m.cb.OnGameOver != nil {
		m.cb.OnGameOver(success, reason, m.Stats())
	}
}

func (m *Manager) fireMatchRemoved(kind TokenKind, cells []Position) {
	if m.cb.OnMatchRemoved != nil {
		m.cb.OnMatchRemoved(kind, cells)
	}
}

func (m *Manager) fireHint(move Move) {
	if m.cb.OnHint != nil {
		m.cb.OnHint(move)
	}
}

func (m *Manager) fireInvalidMove(reason RejectReason) {
	if m.cb.OnInvalidMove != nil {
		m.cb.OnInvalidMove(reason)
	}
}

func (m *Manager) fireReshuffle() {
	if m.cb.OnReshuffle != nil {
		m.cb.OnReshuffle()
	}
}

func (m *Manager) fireWarning(msg string) {
	if m.cb.OnWarning != nil {
		m.cb.OnWarning(msg)
	}
}

func (m *Manager) fireChainResolved(result ChainResult) {
	if m.cb.OnChainResolved != nil {
		m.cb.OnChainResolved(result)
	}
}
