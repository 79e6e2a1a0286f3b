package match3

import (
	"fmt"
	"math"
	"strings"

	platformcore "github.com/vovakirdan/fruitmatch/internal/core"
	"github.com/vovakirdan/fruitmatch/internal/games/match3/core"
)

const (
	cellWidth  = 4 // columns per board cell
	cellHeight = 2 // rows per board cell
	hudHeight  = 3
)

// Tile glyphs and colors, indexed by TileType.
var (
	tileGlyphs = [...]rune{' ', '●', '▲', '◆', '■', '♣'}
	tileColors = [...]platformcore.Color{
		platformcore.ColorDefault,
		platformcore.ColorBrightRed,
		platformcore.ColorBrightYellow,
		platformcore.ColorOrange,
		platformcore.ColorBrightGreen,
		platformcore.ColorBrightMagenta,
	}
)

// layout places the HUD, board frame and message line on the screen.
type layout struct {
	width, height int
	frame         platformcore.Rect // board including its border
	inner         platformcore.Rect // cell area
	fits          bool
}

func computeLayout(width, height int) layout {
	boardW := core.Size*cellWidth + 2
	boardH := core.Size*cellHeight + 2
	minW := boardW + 2
	minH := hudHeight + boardH + 1

	frame := platformcore.NewRect((width-boardW)/2, hudHeight, boardW, boardH)
	return layout{
		width:  width,
		height: height,
		frame:  frame,
		inner:  frame.Inset(1),
		fits:   width >= minW && height >= minH,
	}
}

// cellOrigin returns the screen position of a cell's top-left corner.
func (l layout) cellOrigin(row, col int) (int, int) {
	return l.inner.X + col*cellWidth, l.inner.Y + row*cellHeight
}

// cellAt maps a screen coordinate to a board cell.
func (l layout) cellAt(x, y int) (core.Position, bool) {
	if !l.inner.Contains(x, y) {
		return core.Position{}, false
	}
	p := core.P((y-l.inner.Y)/cellHeight, (x-l.inner.X)/cellWidth)
	return p, p.InBounds()
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderMessage(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.layout.height / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorYellow)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorGray)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	f := g.layout.frame
	dst.DrawTextCentered(0, "F R U I T M A T C H  -  "+strings.ToUpper(g.level.Title), platformcore.ColorBrightCyan)

	left := fmt.Sprintf("Score %d", g.board.Score())
	if g.session.Engine().Resolving() {
		left += fmt.Sprintf("  x%d", g.session.Engine().Multiplier())
	}
	dst.DrawTextColored(f.X, 1, left, platformcore.ColorBrightWhite)

	right := fmt.Sprintf("Moves %d", g.board.MovesLeft())
	if g.board.Timed() {
		secs := (g.board.TicksLeft() + g.runtime.TickRate - 1) / g.runtime.TickRate
		right += fmt.Sprintf("  Time %d:%02d", secs/60, secs%60)
	}
	rightColor := platformcore.ColorWhite
	if g.board.MovesLeft() <= 3 {
		rightColor = platformcore.ColorBrightRed
	}
	dst.DrawTextColored(f.Right()-len(right), 1, right, rightColor)

	// Objectives line: glyph and remaining count per fruit.
	objectives := g.board.Objectives()
	x := f.X
	for _, t := range core.AllTypes() {
		dst.SetColored(x, 2, tileGlyphs[t], tileColors[t])
		n := objectives[t.Index()]
		text := fmt.Sprintf(" %d", n)
		color := platformcore.ColorWhite
		if n == 0 {
			text = " ✓"
			color = platformcore.ColorGreen
		}
		dst.DrawTextColored(x+1, 2, text, color)
		x += 6
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	l := g.layout
	frameColor := platformcore.ColorGray
	if g.board.Won() {
		frameColor = platformcore.ColorYellow
	}
	dst.DrawBox(l.frame, frameColor)

	for p := range g.animator.bursts {
		x, y := l.cellOrigin(p.Row, p.Col)
		dst.SetColored(x+1, y, '✶', platformcore.ColorBrightWhite)
	}

	grid := g.session.Grid()
	for r := range core.Size {
		for c := range core.Size {
			p := core.P(r, c)
			t := grid.Get(p)
			if t == core.Empty || g.animator.Landing(p) {
				continue
			}
			x, y := l.cellOrigin(r, c)
			dst.SetCell(x+1, y, platformcore.Cell{
				Rune:  tileGlyphs[t],
				Color: tileColors[t],
				Bold:  g.animator.Swapping(p),
			})
		}
	}

	for _, f := range g.animator.falls {
		row := f.row(g.animator.fallTicks)
		if row < 0 {
			continue
		}
		x, _ := l.cellOrigin(0, f.req.To.Col)
		y := l.inner.Y + int(math.Round(row*cellHeight))
		dst.SetColored(x+1, y, tileGlyphs[f.req.Type], tileColors[f.req.Type])
	}

	if sel, ok := g.session.Selected(); ok {
		x, y := l.cellOrigin(sel.Row, sel.Col)
		color := platformcore.ColorYellow
		if g.animator.pulse > 0 {
			color = platformcore.ColorBrightYellow
		}
		dst.SetColored(x, y, '«', color)
		dst.SetColored(x+2, y, '»', color)
		cell := dst.GetCell(x+1, y)
		cell.Bold = true
		dst.SetCell(x+1, y, cell)
	}

	if !g.gameOver {
		x, y := l.cellOrigin(g.cursor.Row, g.cursor.Col)
		if dst.Get(x, y) == ' ' {
			dst.SetColored(x, y, '[', platformcore.ColorBrightWhite)
			dst.SetColored(x+2, y, ']', platformcore.ColorBrightWhite)
		}
	}
}

func (g *Game) renderMessage(dst *platformcore.Screen) {
	if g.message == "" {
		return
	}
	dst.DrawTextCentered(g.layout.frame.Bottom(), g.message, platformcore.ColorCyan)
}

func (g *Game) renderOverlay(dst *platformcore.Screen) {
	var lines []string
	color := platformcore.ColorBrightWhite

	switch {
	case g.paused:
		lines = []string{"PAUSED", "Press P to resume"}
	case g.gameOver && g.board.Won():
		stars := strings.Repeat("★", g.board.Stars()) + strings.Repeat("☆", 3-g.board.Stars())
		lines = []string{"YOU WIN", stars, fmt.Sprintf("Score %d", g.board.Score()), "R to play again"}
		color = platformcore.ColorBrightYellow
	case g.gameOver:
		lines = []string{"GAME OVER", string(g.endReason), fmt.Sprintf("Score %d", g.board.Score()), "R to play again"}
		color = platformcore.ColorBrightRed
	default:
		return
	}

	f := g.layout.frame
	_, cy := f.Center()
	box := platformcore.NewRect(f.X+4, cy-len(lines)/2-1, f.W-8, len(lines)+2)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, color)
	for i, line := range lines {
		dst.DrawTextCentered(box.Y+1+i, line, color)
	}
}
