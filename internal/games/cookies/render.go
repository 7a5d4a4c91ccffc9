package cookies

import (
	"fmt"

	"github.com/vovakirdan/cookie-crush/internal/core"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies/engine"
)

const (
	cellWidth = 4 // "[♥] "
	hudHeight = 3
	footerH   = 3
)

// glyph is how one cookie kind is drawn.
type glyph struct {
	r     rune
	color core.Color
}

var glyphs = map[engine.Kind]glyph{
	engine.KindStrawberry: {'♥', core.ColorPink},
	engine.KindGrape:      {'♣', core.ColorPurple},
	engine.KindBlueberry:  {'●', core.ColorBrightBlue},
	engine.KindLemon:      {'◆', core.ColorBrightYellow},
	engine.KindOrange:     {'■', core.ColorOrange},
	engine.KindMint:       {'▲', core.ColorBrightGreen},
}

// layout places the board on the screen.
type layout struct {
	boardX, boardY int
	cellH          int
	size           int
	tooSmall       bool
}

// computeLayout centers the board, using two rows per cell when they fit.
func computeLayout(screenW, screenH, size int) layout {
	l := layout{size: size, cellH: 2}
	if screenH < hudHeight+l.boxHeight()+footerH {
		l.cellH = 1
	}
	box := l.box()
	l.tooSmall = screenW < box.W || screenH < hudHeight+box.H+footerH
	l.boardX = (screenW - box.W) / 2
	l.boardY = hudHeight
	return l
}

func (l layout) boxHeight() int {
	return l.size*l.cellH + 3 - l.cellH
}

// box returns the board frame.
func (l layout) box() core.Rect {
	return core.NewRect(l.boardX, l.boardY, l.size*cellWidth+1, l.boxHeight())
}

// origin returns the screen cell of the left bracket of p.
func (l layout) origin(p engine.Pos) (int, int) {
	return l.boardX + 1 + p.Col*cellWidth, l.boardY + 1 + p.Row*l.cellH
}

// cellAt maps a screen position back to a board cell.
func (l layout) cellAt(x, y int) (engine.Pos, bool) {
	inner := core.NewRect(l.boardX+1, l.boardY+1, l.size*cellWidth, l.size*l.cellH)
	if l.tooSmall || !inner.Contains(x, y) {
		return engine.Pos{}, false
	}
	return engine.Pos{Row: (y - inner.Y) / l.cellH, Col: (x - inner.X) / cellWidth}, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.layout.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.session.State()
	box := g.layout.box()

	dst.DrawTextCenteredColored(0, "COOKIE CRUSH · "+g.preset.Title, core.ColorPink)

	score := fmt.Sprintf("Score: %d", st.Score)
	dst.DrawTextColored(box.X, 1, score, core.ColorBrightWhite)

	moves := fmt.Sprintf("Moves: %d", st.MovesRemaining)
	movesColor := core.ColorBrightWhite
	if st.MovesRemaining <= 5 {
		movesColor = core.ColorBrightRed
	}
	mx := box.Right() - len(moves)
	if mx < box.X+len(score)+1 {
		mx = box.X + len(score) + 1
	}
	dst.DrawTextColored(mx, 1, moves, movesColor)

	if g.popupTicks > 0 && g.popup > 0 {
		dst.DrawTextCenteredColored(2, fmt.Sprintf("+%d", g.popup), core.ColorBrightYellow)
	}
}

func (g *Game) renderBoard(dst *core.Screen) {
	box := g.layout.box()
	dst.DrawBoxColored(box, core.ColorGray)

	snap := g.session.Snapshot()
	st := g.session.State()

	for r := 0; r < snap.Size; r++ {
		for c := 0; c < snap.Size; c++ {
			p := engine.Pos{Row: r, Col: c}
			x, y := g.layout.origin(p)

			if snap.IsMarked(p) {
				dst.SetColored(x+1, y, '*', core.ColorBrightWhite)
			} else if gl, ok := glyphs[snap.At(p)]; ok {
				dst.SetColored(x+1, y, gl.r, gl.color)
			} else {
				dst.SetColored(x+1, y, '?', core.ColorRed)
			}

			if st.Selection != nil && *st.Selection == p {
				dst.Highlight(x+1, y, true)
			}
			if g.hint != nil && (g.hint.A == p || g.hint.B == p) {
				dst.SetColored(x, y, '(', core.ColorBrightCyan)
				dst.SetColored(x+2, y, ')', core.ColorBrightCyan)
			}
		}
	}

	if st.Phase != engine.PhaseGameOver {
		x, y := g.layout.origin(g.cursor)
		dst.SetColored(x, y, '[', core.ColorBrightWhite)
		dst.SetColored(x+2, y, ']', core.ColorBrightWhite)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	box := g.layout.box()
	st := g.session.State()

	var status string
	switch st.Phase {
	case engine.PhaseIdle:
		status = "Pick a cookie"
	case engine.PhaseAwaitingSecondTap:
		status = "Swap with a neighbour"
	case engine.PhaseResolving:
		status = "Crumbling..."
		if g.frame.Step > 1 {
			status = fmt.Sprintf("Chain x%d!", g.frame.Step)
		}
	case engine.PhaseGameOver:
		status = "Out of moves"
	}
	dst.DrawTextCenteredColored(box.Bottom(), status, core.ColorCyan)

	if g.bestChain > 1 {
		dst.DrawTextCenteredColored(box.Bottom()+1, fmt.Sprintf("Best chain: x%d", g.bestChain), core.ColorGray)
	}
}

func (g *Game) renderOverlays(dst *core.Screen) {
	box := g.layout.box()
	cx, cy := box.Center()
	st := g.session.State()

	if g.paused {
		g.drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
		return
	}
	if st.Fault != nil {
		g.drawOverlay(dst, cx, cy, "BOARD ERROR", "This board could not settle", "Press R for a new board")
		return
	}
	if st.Phase == engine.PhaseGameOver {
		g.drawOverlay(dst, cx, cy, "GAME OVER", fmt.Sprintf("Final score: %d", st.Score), "R: New board | B: Menu")
	}
}

// drawOverlay draws a centered text box over the board.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	r := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBoxColored(r, core.ColorBrightWhite)
	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColored(x, r.Y+1+i, line, core.ColorBrightWhite)
	}
}
