package sokoban

import (
	"fmt"

	"github.com/vovakirdan/sbokena/internal/config"
	platformcore "github.com/vovakirdan/sbokena/internal/core"
	"github.com/vovakirdan/sbokena/internal/games/sokoban/core"
)

const (
	cellWidth = 2 // Terminal columns per grid cell
	hudHeight = 3
	footerH   = 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.world == nil {
		g.renderError(dst)
		return
	}

	minPos, maxPos := g.world.Bounds()
	// One ring of wall around the tiles
	cols := maxPos.X - minPos.X + 3
	rows := maxPos.Y - minPos.Y + 3
	boardW := cols * cellWidth

	if boardW > dst.Width() || rows+hudHeight+footerH > dst.Height() {
		g.renderTooSmall(dst)
		return
	}

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerH)
	board := area.Centered(boardW, rows)
	origin := core.P(minPos.X-1, minPos.Y-1)

	g.renderHUD(dst)
	g.renderBoard(dst, board, origin)
	g.renderFooter(dst)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderError explains why no level is shown.
func (g *Game) renderError(dst *platformcore.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCenteredColor(y, "Level failed to load", platformcore.ColorRed)
	if g.loadErr != nil {
		dst.DrawTextCentered(y+1, g.loadErr.Error())
	}
}

// renderHUD draws the pack, level and move counters.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	lvl := g.Level()
	title := fmt.Sprintf("%s  Level %d/%d: %s", g.Title(), g.levelIndex+1, len(g.levels), lvl.Title())
	dst.DrawTextCenteredColor(0, title, platformcore.ColorBrightWhite)

	stats := fmt.Sprintf("Moves: %d", g.moves)
	if best := g.best[lvl.ID]; best > 0 {
		stats += fmt.Sprintf("  Best: %d", best)
	}
	stats += fmt.Sprintf("  Goals: %d/%d", g.world.CoveredGoals(), g.world.GoalCount())
	dst.DrawTextCentered(1, stats)
	dst.DrawHLine(0, 2, dst.Width(), '─', platformcore.ColorGray)
}

// renderBoard draws tiles, objects and the surrounding walls.
func (g *Game) renderBoard(dst *platformcore.Screen, board platformcore.Rect, origin core.Position) {
	glyphs := g.cfg.Glyphs
	for row := range board.H {
		for col := range board.W / cellWidth {
			pos := core.P(origin.X+col, origin.Y+row)
			x := board.X + col*cellWidth
			y := board.Y + row

			left, right := g.cellGlyphs(pos, glyphs)
			dst.SetColor(x, y, left.r, left.c)
			dst.SetColor(x+1, y, right.r, right.c)
		}
	}
}

// glyph is one drawn character.
type glyph struct {
	r rune
	c platformcore.Color
}

var blank = glyph{r: ' '}

func glyphOf(g config.Glyph, fallback rune) glyph {
	c, _ := platformcore.ParseColor(g.Color)
	return glyph{r: g.Rune(fallback), c: c}
}

// cellGlyphs returns the two characters drawn for a grid cell.
func (g *Game) cellGlyphs(pos core.Position, gl config.Glyphs) (glyph, glyph) {
	tile, ok := g.world.TileAt(pos)
	if !ok {
		if g.nearTile(pos) {
			w := glyphOf(gl.Wall, '#')
			return w, w
		}
		return blank, blank
	}

	if obj, ok := g.world.ObjectAt(pos); ok {
		switch o := obj.(type) {
		case core.Player:
			return glyphOf(gl.Player, '@'), blank
		case core.Box:
			if _, onGoal := tile.(core.Goal); onGoal {
				return glyphOf(gl.BoxOnGoal, '*'), blank
			}
			return glyphOf(gl.Box, '$'), blank
		case core.DirBox:
			b := glyphOf(gl.DirBox, '%')
			return b, glyph{r: o.Dir.Arrow(), c: b.c}
		}
	}

	switch t := tile.(type) {
	case core.Goal:
		return glyphOf(gl.Goal, '.'), blank
	case core.Button:
		return glyphOf(gl.Button, '_'), blank
	case core.Door:
		if g.world.IsDoorOpen(t.DoorID) {
			return glyphOf(gl.DoorOpen, '\''), blank
		}
		d := glyphOf(gl.Door, '|')
		return d, d
	case core.Portal:
		p := glyphOf(gl.Portal, 'O')
		return p, glyph{r: t.InDir.Arrow(), c: p.c}
	case core.DirFloor:
		d := glyphOf(gl.DirFloor, ' ')
		return glyph{r: t.Dir.Arrow(), c: d.c}, blank
	default:
		return glyphOf(gl.Floor, ' '), blank
	}
}

// nearTile reports whether any of the eight neighbours of pos is a tile.
func (g *Game) nearTile(pos core.Position) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if _, ok := g.world.TileAt(core.P(pos.X+dx, pos.Y+dy)); ok {
				return true
			}
		}
	}
	return false
}

// renderFooter draws the last message and the controls.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	h := dst.Height()
	if g.message != "" {
		c := platformcore.ColorYellow
		if g.lastResult == core.LevelComplete {
			c = platformcore.ColorBrightGreen
		}
		dst.DrawTextCenteredColor(h-2, g.message, c)
	}
	dst.DrawTextCenteredColor(h-1, g.Controls(), platformcore.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, board platformcore.Rect) {
	switch {
	case g.paused:
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.won:
		g.drawOverlay(dst, board, "PACK COMPLETE!", fmt.Sprintf("All %d levels solved", len(g.levels)), "Press R to play again")
	case g.solved:
		lvl := g.Level()
		lines := []string{"LEVEL COMPLETE!", fmt.Sprintf("Moves: %d", g.moves)}
		if best := g.best[lvl.ID]; best > 0 {
			lines = append(lines, fmt.Sprintf("Best: %d", best))
		}
		if g.levelIndex < len(g.levels)-1 {
			lines = append(lines, "Enter: next level")
		} else {
			lines = append(lines, "Enter: finish")
		}
		g.drawOverlay(dst, board, lines...)
	}
}

// drawOverlay draws a centered text box over the board.
func (g *Game) drawOverlay(dst *platformcore.Screen, board platformcore.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	cx := board.X + board.W/2
	cy := board.Y + board.H/2
	box := platformcore.Rect{X: cx - boxW/2, Y: cy - boxH/2, W: boxW, H: boxH}

	// Clear area behind overlay
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, platformcore.ColorBrightCyan)

	for i, line := range lines {
		x := cx - len([]rune(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | U: Undo | R: Restart | P: Pause | Q: Quit"
}
