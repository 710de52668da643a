package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/object"
)

// overlay is the full-screen message shown over the playfield, if any.
type overlay int

const (
	overlayNone overlay = iota
	overlayGameOver
	overlayPaused
	overlayIdle
	overlayShutdown
)

// currentOverlay picks the overlay for this frame, most urgent first.
func (g *Game) currentOverlay() overlay {
	switch {
	case !g.shutdownAt.IsZero():
		return overlayShutdown
	case g.inactive:
		return overlayIdle
	case g.paused.Load():
		return overlayPaused
	case g.world.HUD().GameOver:
		return overlayGameOver
	default:
		return overlayNone
	}
}

// updateScreen follows terminal resizes, keeping the playfield's aspect ratio.
func (g *Game) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(g.opts.TermSizeFunc)
	if err != nil {
		return
	}
	cols, rows, offCol, offRow := draw.Fit(termWidth, termHeight, g.opts.Width, g.opts.Height)
	if cols != g.canvas.TerminalWidth() || rows != g.canvas.TerminalHeight() ||
		offCol != g.canvas.OffsetCol() || offRow != g.canvas.OffsetRow() {
		g.canvas.Resize(cols, rows)
		g.canvas.SetOffset(offCol, offRow)
		g.frame.SetOrigin(offCol, offRow)
		g.fullRedraw = true
	}
}

// drawFrame draws the current frame. While paused only the first paused
// frame, and the first one after a resize, is drawn.
func (g *Game) drawFrame(now time.Time) error {
	ov := g.currentOverlay()
	if ov != g.prevOverlay || g.fullRedraw {
		g.frame.Clear()
		g.canvas.ForceRedraw()
		g.borderDirty = true
		g.fullRedraw = false
	} else if ov == overlayPaused {
		return g.frame.Send()
	}
	g.prevOverlay = ov

	g.canvas.Clear()
	g.drawBuf = g.world.DrawList(g.drawBuf[:0])
	for _, req := range g.drawBuf {
		g.drawEntity(req)
	}
	g.canvas.StrokeRect(0, 0, g.opts.Width, g.opts.Height)
	g.canvas.Render(g.frame)

	if g.borderDirty {
		g.canvas.RenderBorder(g.frame)
		g.borderDirty = false
	}

	g.drawHUD()
	g.drawOverlay(ov, now)
	return g.frame.Send()
}

// drawEntity draws one request: the sprite frame when its sheet loaded,
// the fallback primitive otherwise.
func (g *Game) drawEntity(req object.DrawRequest) {
	if req.Sheet != object.SheetNone {
		if sheet, ok := g.catalog.Sheet(req.Sheet); ok {
			g.canvas.Blit(sheet.Frame(req.Frame), req.X-sheet.FrameWidth/2, req.Y-sheet.FrameHeight/2)
			return
		}
	}

	switch req.Shape {
	case object.ShapeCircle:
		g.canvas.FillCircle(req.X, req.Y, req.W)
	case object.ShapeRect:
		g.canvas.FillRect(req.X-req.W/2, req.Y-req.H/2, req.W, req.H)
	case object.ShapePoint:
		g.canvas.Set(req.X, req.Y)
	}
}

// drawHUD draws the score and the health bar in the top-left corner.
// Fields are fixed width so a shrinking value leaves no residue.
func (g *Game) drawHUD() {
	hud := g.world.HUD()
	width := g.canvas.TerminalWidth()
	if width < 4 || g.canvas.TerminalHeight() < 3 {
		return
	}

	g.frame.Text(2, 1, clip(fmt.Sprintf("Score: %-8d", hud.Score), width-2))

	barCols := int(float64(min(g.opts.Width-8, 84)) * g.canvas.ScaleX())
	barCols = max(3, min(barCols, width-4))
	g.frame.Text(2, 2, healthBar(hud.Health, hud.HealthMax, barCols))
}

// drawOverlay draws the centred message for ov.
func (g *Game) drawOverlay(ov overlay, now time.Time) {
	centerY := g.canvas.TerminalHeight() / 2
	switch ov {
	case overlayGameOver:
		g.writeCentered(centerY-1, "GAME OVER")
		g.writeCentered(centerY+1, "FIRE: restart")
	case overlayPaused:
		g.writeCentered(centerY-1, "PAUSED")
		g.writeCentered(centerY+1, "P: resume  Q: quit")
	case overlayIdle:
		remaining := g.opts.IdleDisconnect - now.Sub(g.lastInput)
		g.writeCentered(centerY-2, "INACTIVITY WARNING")
		g.writeCentered(centerY, fmt.Sprintf("Disconnecting in %3d s", max(0, int(remaining.Seconds()))))
		g.writeCentered(centerY+2, "Press any key")
	case overlayShutdown:
		remaining := g.shutdownAt.Sub(now)
		g.writeCentered(centerY-3, "SERVER SHUTTING DOWN")
		g.writeCentered(centerY-1, fmt.Sprintf("Final score: %d", g.world.Score))
		g.writeCentered(centerY+1, fmt.Sprintf("Disconnecting in %2d s", int(remaining.Seconds())+1))
		g.writeCentered(centerY+3, "Q: disconnect now")
	}
}

// writeCentered writes s centred on row, clipped to the render area.
func (g *Game) writeCentered(row int, s string) {
	width := g.canvas.TerminalWidth()
	if row < 1 || row > g.canvas.TerminalHeight() || width <= 0 {
		return
	}
	s = clip(s, width)
	g.frame.Text(max(1, (width-len(s))/2+1), row, s)
}

func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

// healthColor picks the bar colour: red at a third or less, amber at half
// or less, green otherwise.
func healthColor(health, healthMax int) string {
	switch {
	case health*3 <= healthMax:
		return draw.ColorRed
	case health*2 <= healthMax:
		return draw.ColorAmber
	default:
		return draw.ColorGreen
	}
}

// healthBar renders a bar of width cells, filled in proportion to health.
func healthBar(health, healthMax, width int) string {
	filled := health * width / max(1, healthMax)
	filled = min(max(filled, 0), width)

	var b strings.Builder
	b.WriteString(healthColor(health, healthMax))
	b.WriteString(strings.Repeat(string(draw.BlockFull), filled))
	b.WriteString(draw.ColorGray)
	b.WriteString(strings.Repeat(string(draw.BlockLight), width-filled))
	b.WriteString(draw.ColorReset)
	return b.String()
}
