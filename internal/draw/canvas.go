package draw

import (
	"io"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Game code draws in integer logical coordinates which are scaled to terminal pixels.
// Render only emits the cells that changed since the previous frame.
type Canvas struct {
	termWidth      int    // Render area columns
	termHeight     int    // Render area rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x]
	prev           []rune // Cell contents on screen after the last Render; 0 = unknown

	logicalWidth  int
	logicalHeight int
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // subPixelHeight / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight, logicalWidth, logicalHeight int) *Canvas {
	c := &Canvas{
		logicalWidth:  max(1, logicalWidth),
		logicalHeight: max(1, logicalHeight),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(0, termWidth)
	termHeight = max(0, termHeight)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.prev = make([]rune, termWidth*termHeight)
	}
	c.scaleX = float64(c.termWidth) / float64(c.logicalWidth)
	c.scaleY = float64(c.subPixelHeight) / float64(c.logicalHeight)
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// ScaleX returns terminal columns per logical pixel.
func (c *Canvas) ScaleX() float64 {
	return c.scaleX
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// Pixel reports whether the terminal pixel at (px, py) is set.
func (c *Canvas) Pixel(px, py int) bool {
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return false
	}
	return c.pixels[py*c.termWidth+px]
}

// setPixel sets a pixel at terminal pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// toPixel maps a logical coordinate to the terminal pixel containing it.
func (c *Canvas) toPixel(x, y int) (px, py int) {
	return int(float64(x) * c.scaleX), int(float64(y) * c.scaleY)
}

// toLogical maps the centre of a terminal pixel back to logical space.
func (c *Canvas) toLogical(px, py int) (x, y float64) {
	return (float64(px) + 0.5) / c.scaleX, (float64(py) + 0.5) / c.scaleY
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(x, y int) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py)
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position (col, row) inside the render area.
func (c *Canvas) LogicalToTerminal(x, y int) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// Render writes every cell that changed since the last call.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	lastRow, lastCol := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				ch = BlockEmpty
			}

			idx := row*c.termWidth + col
			if c.prev[idx] == ch {
				continue
			}
			c.prev[idx] = ch

			// Consecutive cells on one row need no cursor move.
			if row != lastRow || col != lastCol+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.renderBuf.WriteRune(ch)
			lastRow, lastCol = row, col
		}
	}

	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder draws a box around the render area when the terminal leaves
// room for it.
func (c *Canvas) RenderBorder(w io.Writer) {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return
	}
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	c.renderBuf.Reset()
	c.moveCursor(left, top)
	c.renderBuf.WriteString("┌" + bar + "┐")
	c.moveCursor(left, bottom)
	c.renderBuf.WriteString("└" + bar + "┘")
	for row := top + 1; row < bottom; row++ {
		c.moveCursor(left, row)
		c.renderBuf.WriteString("│")
		c.moveCursor(right, row)
		c.renderBuf.WriteString("│")
	}
	io.WriteString(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}
