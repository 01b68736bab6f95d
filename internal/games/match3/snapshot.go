package match3

import "github.com/lausiv7/candysoda-sub007/internal/games/match3/core"

// Snapshot captures a resumable game for the saved-games store. Grid is
// the row-major board encoded one character per cell.
type Snapshot struct {
	Mode      string
	Width     int
	Height    int
	Grid      string
	Score     int
	MovesUsed int

	// InProgress is false once the run has ended; finished snapshots
	// are not worth restoring.
	InProgress bool
}

// Snapshot exports the current game for saving. Returns a zero snapshot
// before the first Reset.
func (g *Game) Snapshot() Snapshot {
	if g.mgr == nil {
		return Snapshot{}
	}
	board := g.mgr.Board()
	return Snapshot{
		Mode:       g.ID(),
		Width:      board.Width(),
		Height:     board.Height(),
		Grid:       core.EncodeKinds(g.mgr.ExportState()),
		Score:      g.mgr.Score(),
		MovesUsed:  g.mgr.MovesUsed(),
		InProgress: !g.gameOver,
	}
}
