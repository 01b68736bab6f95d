package match3

import (
	"github.com/lausiv7/candysoda-sub007/internal/config"
	"github.com/lausiv7/candysoda-sub007/internal/games/match3/core"
)

// animPhase identifies which board effect is currently playing.
type animPhase int

const (
	phaseNone animPhase = iota
	phaseSwap
	phaseReject
	phaseClear
	phaseFall
)

// TickAnimator plays board effects over a fixed number of ticks per
// phase. The resolution pipeline hands it one effect at a time with a
// completion callback; Advance counts ticks and fires the callback when
// the phase runs out. A phase budget of zero completes synchronously,
// which keeps headless runs and tests free of timing concerns.
type TickAnimator struct {
	cfg config.Match3Animation

	phase     animPhase
	ticksLeft int
	done      func()

	// Payload for the renderer.
	swapFrom core.Position
	swapTo   core.Position
	cells    []core.Position
	steps    []core.GravityStep
}

var _ core.Animator = (*TickAnimator)(nil)

// NewTickAnimator creates an animator with the given tick budgets.
func NewTickAnimator(cfg config.Match3Animation) *TickAnimator {
	return &TickAnimator{cfg: cfg}
}

// AnimateSwap plays the two tokens trading places.
func (a *TickAnimator) AnimateSwap(from, to core.Position, done func()) {
	a.swapFrom = from
	a.swapTo = to
	a.begin(phaseSwap, a.cfg.SwapTicks, done)
}

// AnimateReject plays the bounce-back of a refused swap.
func (a *TickAnimator) AnimateReject(from, to core.Position, done func()) {
	a.swapFrom = from
	a.swapTo = to
	a.begin(phaseReject, a.cfg.RejectTicks, done)
}

// AnimateClear flashes the matched cells before they are removed.
func (a *TickAnimator) AnimateClear(matches []core.Match, done func()) {
	a.cells = a.cells[:0]
	for _, m := range matches {
		a.cells = append(a.cells, m.Cells...)
	}
	a.begin(phaseClear, a.cfg.ClearTicks, done)
}

// AnimateFall holds the new board for a beat after tokens drop in.
func (a *TickAnimator) AnimateFall(steps []core.GravityStep, done func()) {
	a.steps = steps
	a.begin(phaseFall, a.cfg.FallTicks, done)
}

func (a *TickAnimator) begin(phase animPhase, ticks int, done func()) {
	if ticks <= 0 {
		a.phase = phaseNone
		done()
		return
	}
	a.phase = phase
	a.ticksLeft = ticks
	a.done = done
}

// Advance counts down the current phase by one tick, firing its
// completion callback at zero. Returns true while an effect is playing.
// The callback frequently starts the next phase, so animator state is
// cleared before it runs.
func (a *TickAnimator) Advance() bool {
	if a.phase == phaseNone {
		return false
	}
	a.ticksLeft--
	if a.ticksLeft > 0 {
		return true
	}
	cb := a.done
	a.phase = phaseNone
	a.done = nil
	if cb != nil {
		cb()
	}
	return true
}

// Busy reports whether an effect is currently playing.
func (a *TickAnimator) Busy() bool {
	return a.phase != phaseNone
}

// SwapCells returns the pair trading places during a swap or reject
// effect.
func (a *TickAnimator) SwapCells() (from, to core.Position, ok bool) {
	if a.phase != phaseSwap && a.phase != phaseReject {
		return core.Position{}, core.Position{}, false
	}
	return a.swapFrom, a.swapTo, true
}

// Rejecting reports whether the current effect is a refused swap.
func (a *TickAnimator) Rejecting() bool {
	return a.phase == phaseReject
}

// ClearingCells returns the cells being flashed during a clear effect,
// or nil outside it.
func (a *TickAnimator) ClearingCells() []core.Position {
	if a.phase != phaseClear {
		return nil
	}
	return a.cells
}

// FallingSteps returns the gravity steps of the current fall effect, or
// nil outside it.
func (a *TickAnimator) FallingSteps() []core.GravityStep {
	if a.phase != phaseFall {
		return nil
	}
	return a.steps
}

// TicksLeft returns the remaining ticks of the current phase. The
// renderer uses its parity for blink effects.
func (a *TickAnimator) TicksLeft() int {
	return a.ticksLeft
}
