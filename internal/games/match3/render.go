package match3

import (
	"fmt"

	platformcore "github.com/lausiv7/candysoda-sub007/internal/core"
	"github.com/lausiv7/candysoda-sub007/internal/games/match3/core"
)

const (
	cellWidth  = 4 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 3
)

// ObstacleGlyph marks immovable cells.
const ObstacleGlyph = '▒'

// ClearGlyph flashes over matched cells as they pop.
const ClearGlyph = '*'

// tokenGlyphs keeps the candies distinguishable on monochrome terminals.
var tokenGlyphs = map[core.TokenKind]rune{
	core.KindRed:    '●',
	core.KindOrange: '◆',
	core.KindYellow: '▲',
	core.KindGreen:  '■',
	core.KindBlue:   '◉',
	core.KindPurple: '♦',
}

var tokenColors = map[core.TokenKind]platformcore.Color{
	core.KindRed:    platformcore.ColorBrightRed,
	core.KindOrange: platformcore.ColorOrange,
	core.KindYellow: platformcore.ColorBrightYellow,
	core.KindGreen:  platformcore.ColorBrightGreen,
	core.KindBlue:   platformcore.ColorBrightBlue,
	core.KindPurple: platformcore.ColorBrightMagenta,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.mgr.Board()
	boardW := board.Width()*cellWidth + 1
	boardH := board.Height()*cellHeight + 1
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	msg := "Window too small"
	hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
	dst.DrawTextCentered(g.screenH/2-1, msg)
	dst.DrawTextCentered(g.screenH/2+1, hint)
}

// renderHUD draws the score, move budget, and target info.
func (g *Game) renderHUD(dst *platformcore.Screen, boardX, boardW int) {
	title := "CANDY SODA"
	titleX := boardX + (boardW-len(title))/2
	dst.DrawTextWithColor(titleX, 0, title, platformcore.ColorBrightMagenta)

	scoreStr := fmt.Sprintf("Score: %d", g.mgr.Score())
	dst.DrawText(boardX, 1, scoreStr)

	var infoStr string
	if g.mode == ModeEndless {
		infoStr = fmt.Sprintf("Moves: %d  Colors: %d", g.mgr.MovesUsed(), g.paletteSize)
	} else {
		infoStr = fmt.Sprintf("Moves: %d/%d  Target: %d",
			g.mgr.MovesUsed(), g.mgr.MoveLimit(), g.cfg.Rules.TargetScore)
	}
	infoX := boardX + boardW - len(infoStr)
	if infoX < boardX {
		infoX = boardX
	}
	dst.DrawText(infoX, 1, infoStr)

	modeStr := "Classic"
	if g.mode == ModeEndless {
		modeStr = "Endless"
	}
	modeX := boardX + (boardW-len(modeStr))/2
	dst.DrawText(modeX, 2, modeStr)
}

// renderBoard draws the grid, the candies, and the cell markers.
func (g *Game) renderBoard(dst *platformcore.Screen, boardX, boardY int) {
	board := g.mgr.Board()
	cols := board.Width()
	rows := board.Height()

	// Draw grid borders
	for y := 0; y <= rows; y++ {
		for x := 0; x <= cols; x++ {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			// Draw corner/intersection
			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == cols:
				corner = '┐'
			case y == rows && x == 0:
				corner = '└'
			case y == rows && x == cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			// Draw horizontal line to the right
			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}

			// Draw vertical line down
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	clearing := positionSet(g.animator.ClearingCells())
	landed := positionSet(landedCells(g.animator.FallingSteps()))
	flashOn := g.animator.TicksLeft()%2 == 0

	// Draw tokens
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			kind := board.KindAt(x, y)
			px := boardX + x*cellWidth + cellWidth/2
			py := boardY + y*cellHeight + 1

			if clearing[core.Position{Col: x, Row: y}] {
				if flashOn {
					dst.SetWithColor(px, py, ClearGlyph, platformcore.ColorBrightWhite)
				}
				continue
			}

			switch {
			case kind == core.KindEmpty:
				// Leave the cell blank
			case kind == core.KindObstacle:
				dst.SetWithColor(px-1, py, ObstacleGlyph, platformcore.ColorGray)
				dst.SetWithColor(px, py, ObstacleGlyph, platformcore.ColorGray)
				dst.SetWithColor(px+1, py, ObstacleGlyph, platformcore.ColorGray)
			case landed[core.Position{Col: x, Row: y}] && flashOn:
				dst.SetWithColor(px, py, tokenGlyphs[kind], platformcore.ColorBrightWhite)
			default:
				dst.SetWithColor(px, py, tokenGlyphs[kind], tokenColors[kind])
			}
		}
	}

	g.renderMarkers(dst, boardX, boardY)
}

// renderMarkers draws either the marker pair of the playing board
// effect, or the hint, cursor, and selection brackets, selection last so
// it wins overlapping cells.
func (g *Game) renderMarkers(dst *platformcore.Screen, boardX, boardY int) {
	if g.animator.Busy() {
		if from, to, ok := g.animator.SwapCells(); ok {
			color := platformcore.ColorBrightCyan
			if g.animator.Rejecting() {
				color = platformcore.ColorBrightRed
			}
			g.drawBrackets(dst, boardX, boardY, from, '<', '>', color)
			g.drawBrackets(dst, boardX, boardY, to, '<', '>', color)
		}
		return
	}

	if hint, ok := g.mgr.Hint(); ok && (g.tickCount/8)%2 == 0 {
		g.drawBrackets(dst, boardX, boardY, hint.From, '(', ')', platformcore.ColorBrightCyan)
		g.drawBrackets(dst, boardX, boardY, hint.To, '(', ')', platformcore.ColorBrightCyan)
	}

	g.drawBrackets(dst, boardX, boardY, g.cursor, '[', ']', platformcore.ColorWhite)

	if sel, ok := g.mgr.Selected(); ok {
		g.drawBrackets(dst, boardX, boardY, sel, '[', ']', platformcore.ColorBrightYellow)
	}
}

// drawBrackets frames a cell's interior with a marker pair.
func (g *Game) drawBrackets(dst *platformcore.Screen, boardX, boardY int, pos core.Position, left, right rune, color platformcore.Color) {
	px := boardX + pos.Col*cellWidth
	py := boardY + pos.Row*cellHeight + 1
	dst.SetWithColor(px+1, py, left, color)
	dst.SetWithColor(px+cellWidth-1, py, right, color)
}

// renderFooter draws the transient message and the control hints.
func (g *Game) renderFooter(dst *platformcore.Screen, msgY int) {
	if g.message != "" && msgY < g.screenH {
		msgX := (g.screenW - len(g.message)) / 2
		dst.DrawTextWithColor(msgX, msgY, g.message, platformcore.ColorBrightYellow)
	}
	controls := "Arrows: Cursor | Space: Select | H: Hint | P: Pause | Q: Quit"
	dst.DrawTextWithColor(1, g.screenH-1, controls, platformcore.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, boardX, boardY, boardW, boardH int) {
	centerX, centerY := platformcore.NewRect(boardX, boardY, boardW, boardH).Center()

	if g.State().Paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		scoreStr := fmt.Sprintf("Score: %d", g.finalStats.Score)
		chainStr := fmt.Sprintf("Best chain: x%d", g.finalStats.LongestChain)
		if g.success {
			g.drawOverlay(dst, centerX, centerY, "TARGET REACHED!", scoreStr, chainStr, "Press R to restart")
		} else {
			g.drawOverlay(dst, centerX, centerY, "GAME OVER", g.endReason, scoreStr, chainStr, "Press R to restart")
		}
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = platformcore.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(platformcore.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// landedCells collects the destination cells of a fall effect's steps.
func landedCells(steps []core.GravityStep) []core.Position {
	if len(steps) == 0 {
		return nil
	}
	cells := make([]core.Position, 0, len(steps))
	for _, s := range steps {
		cells = append(cells, core.Position{Col: s.Column, Row: s.ToRow})
	}
	return cells
}

// positionSet indexes a slice of positions for membership checks.
func positionSet(cells []core.Position) map[core.Position]bool {
	if len(cells) == 0 {
		return nil
	}
	set := make(map[core.Position]bool, len(cells))
	for _, p := range cells {
		set[p] = true
	}
	return set
}
