// Package match3 adapts the match-3 resolution core to the terminal
// platform: cursor-driven input, tick-budgeted board effects, and
// screen-buffer rendering.
package match3

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lausiv7/candysoda-sub007/internal/config"
	platformcore "github.com/lausiv7/candysoda-sub007/internal/core"
	"github.com/lausiv7/candysoda-sub007/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub007/internal/registry"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeClassic GameMode = iota // Beat the target score within the move budget
	ModeEndless                 // No budget; the palette widens as the score grows
)

// endlessBaseColors is the starting palette size in endless mode; the
// difficulty ramp grows it toward the full six.
const endlessBaseColors = 4

// messageTicksBudget is how long a transient footer message stays up.
const messageTicksBudget = 90

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// layoutName overrides the configured board layout when non-empty
var layoutName string

// resume holds a saved game to restore on the next Reset
var resume *Snapshot

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetLayout selects a named obstacle layout for the next game.
func SetLayout(name string) {
	layoutName = name
}

// SetResume queues a saved game to restore on the next Reset. The
// snapshot is consumed once; later resets start fresh.
func SetResume(snap Snapshot) {
	resume = &snap
}

// Game adapts the match-3 core to the platform's Game interface.
type Game struct {
	mode GameMode

	mgr      *core.Manager
	animator *TickAnimator

	// Cursor and transient UI state
	cursor       core.Position
	message      string
	messageTicks int
	lastChain    *core.ChainResult

	// Terminal state mirrored from the manager's game-over callback
	gameOver   bool
	success    bool
	endReason  string
	finalStats core.Stats

	tickCount   int
	paletteSize int

	// Configuration
	runtime    platformcore.RuntimeConfig
	cfg        config.Match3Config
	difficulty *config.DifficultyManager

	// Layout (computed from screen size)
	screenW    int
	screenH    int
	minScreenW int
	minScreenH int
	tooSmall   bool
}

// New creates a new match-3 game instance (classic mode).
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates a new match-3 game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Candy Soda (Endless)"
	}
	return "Candy Soda"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH

	// Load game config
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyMatch3Preset(&cfg, difficultyPreset)
	}
	if layoutName != "" {
		cfg.Board.Layout = layoutName
	}
	g.cfg = cfg

	// Initialize difficulty manager
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if g.mode == ModeEndless {
		g.difficulty.SetEnabled(true)
	}

	coreCfg := core.Config{
		Width:          cfg.Board.Width,
		Height:         cfg.Board.Height,
		Colors:         cfg.Board.Colors,
		MoveLimit:      cfg.Rules.MoveLimit,
		TargetScore:    cfg.Rules.TargetScore,
		HintDelayTicks: cfg.Hints.DelayTicks,
		Obstacles:      obstaclePositions(cfg.LayoutRows(), cfg.Board.Width, cfg.Board.Height),
	}
	if g.mode == ModeEndless {
		coreCfg.Colors = endlessBaseColors
		coreCfg.MoveLimit = 0
		coreCfg.TargetScore = 0
	}
	g.paletteSize = coreCfg.Colors

	// Check screen size
	g.calculateLayout(coreCfg.Width, coreCfg.Height)
	g.tooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	// Reset per-run state
	g.cursor = core.Position{}
	g.message = ""
	g.messageTicks = 0
	g.lastChain = nil
	g.gameOver = false
	g.success = false
	g.endReason = ""
	g.finalStats = core.Stats{}
	g.tickCount = 0

	g.animator = NewTickAnimator(cfg.Animation)
	rng := rand.New(rand.NewSource(runtime.Seed))
	g.mgr = core.NewManager(coreCfg, rng, g.animator, g.callbacks())

	// Restore a queued saved game if it fits this mode and board,
	// otherwise start fresh. The snapshot is consumed either way.
	if snap := resume; snap != nil {
		resume = nil
		if snap.Mode == g.ID() && snap.Width == coreCfg.Width && snap.Height == coreCfg.Height {
			if kinds, ok := core.DecodeKinds(snap.Grid); ok {
				if err := g.mgr.ImportState(kinds); err == nil {
					g.mgr.SetProgress(snap.Score, snap.MovesUsed)
					return
				}
			}
		}
	}
	g.mgr.Start()
}

// calculateLayout computes cell sizes and minimum screen dimensions.
func (g *Game) calculateLayout(boardCols, boardRows int) {
	boardW := boardCols*cellWidth + 1
	boardH := boardRows*cellHeight + 1
	g.minScreenW = boardW + 2
	g.minScreenH = hudHeight + boardH + 3
}

// callbacks wires the manager's hooks to adapter UI state.
func (g *Game) callbacks() core.Callbacks {
	return core.Callbacks{
		OnGameOver: func(success bool, reason string, stats core.Stats) {
			g.gameOver = true
			g.success = success
			g.endReason = reason
			g.finalStats = stats
		},
		OnInvalidMove: func(reason core.RejectReason) {
			g.flash("Invalid move: " + rejectText(reason))
		},
		OnReshuffle: func() {
			g.flash("No moves left, reshuffling...")
		},
		OnChainResolved: func(result core.ChainResult) {
			g.lastChain = &result
			if result.ChainLength >= 2 {
				g.flash(fmt.Sprintf("%d-chain! +%d", result.ChainLength, result.TotalScore))
			}
		},
		OnWarning: func(msg string) {
			log.Warn("match3: " + msg)
		},
	}
}

// flash shows a transient footer message.
func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = messageTicksBudget
}

// rejectText renders a rejection reason for the footer.
func rejectText(reason core.RejectReason) string {
	switch reason {
	case core.RejectSamePosition:
		return "same cell"
	case core.RejectOutOfBounds:
		return "off the board"
	case core.RejectNotAdjacent:
		return "cells not adjacent"
	case core.RejectEmptyOrObstacle:
		return "that cell cannot move"
	case core.RejectNoMatch:
		return "no match from that swap"
	default:
		return reason.String()
	}
}

// obstaclePositions parses layout mask rows into board positions.
// '#' marks an obstacle; rows and columns outside the board are ignored.
func obstaclePositions(rows []string, width, height int) []core.Position {
	var obstacles []core.Position
	for r, row := range rows {
		if r >= height {
			break
		}
		for c, ch := range row {
			if c >= width {
				break
			}
			if ch == '#' {
				obstacles = append(obstacles, core.Position{Col: c, Row: r})
			}
		}
	}
	return obstacles
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(platformcore.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(platformcore.ActionPause) {
		if g.mgr.State() == core.StatePaused {
			g.mgr.Resume()
		} else {
			g.mgr.Pause()
		}
	}

	g.tickCount++

	// Drive any playing board effect; its completion callbacks walk the
	// resolution pipeline forward.
	g.animator.Advance()

	g.handleInput(in)

	// Hint timer counts only during the player's turn.
	g.mgr.Tick()

	// Endless mode widens the palette as the score grows.
	if g.mode == ModeEndless {
		colors := g.difficulty.Colors(endlessBaseColors, g.mgr.Score(), g.tickCount)
		if colors != g.paletteSize {
			g.paletteSize = colors
			g.mgr.SetColors(colors)
			g.flash(fmt.Sprintf("New candy color! %d in play", colors))
		}
	}

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// handleInput maps platform actions onto the cursor and the manager's
// selection gestures. With a selection active, a direction completes the
// move toward that neighbor; otherwise it moves the cursor.
func (g *Game) handleInput(in platformcore.InputFrame) {
	if dir, ok := directionFor(in); ok {
		if _, selected := g.mgr.Selected(); selected {
			g.mgr.Drag(dir)
		} else {
			g.moveCursor(dir)
		}
	}

	if in.Has(platformcore.ActionConfirm) {
		g.mgr.Select(g.cursor)
	}
	if in.Has(platformcore.ActionBack) {
		g.mgr.ClearSelection()
	}
	if in.Has(platformcore.ActionHint) {
		g.mgr.RequestHint()
	}
}

// directionFor extracts a single direction from the input frame.
func directionFor(in platformcore.InputFrame) (core.Direction, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return core.DirUp, false
}

// moveCursor shifts the cursor one cell, clamped to the board.
func (g *Game) moveCursor(dir core.Direction) {
	dc, dr := dir.Delta()
	board := g.mgr.Board()
	g.cursor.Col = platformcore.Clamp(g.cursor.Col+dc, 0, board.Width()-1)
	g.cursor.Row = platformcore.Clamp(g.cursor.Row+dr, 0, board.Height()-1)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.mgr == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:    g.mgr.Score(),
		GameOver: g.gameOver,
		Paused:   g.mgr.State() == core.StatePaused,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Cursor | Space/Enter: Select+Swap | H: Hint | P: Pause | R: Restart | Q: Quit"
}

// Register the games with the registry
func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_endless", func() registry.Game {
		return NewEndless()
	})
}
