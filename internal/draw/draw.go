// Package draw renders a logical pixel playfield to an ANSI terminal using
// half-block characters, two vertical pixels per character cell.
package draw

import (
	"fmt"
	"io"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// ANSI colours used by the HUD.
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[91m"
	ColorAmber = "\033[33m"
	ColorGreen = "\033[32m"
	ColorGray  = "\033[90m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// Mask is one sprite frame: a W×H grid of opaque pixels.
type Mask struct {
	W, H int
	Bits []bool // Row-major, len W*H
}

// NewMask allocates an empty w×h mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Bits: make([]bool, w*h)}
}

// At reports whether the pixel at (x, y) is opaque. Out of range is transparent.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Bits[y*m.W+x]
}

// SetBit marks the pixel at (x, y) opaque.
func (m *Mask) SetBit(x, y int) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Bits[y*m.W+x] = true
}

// Fit computes the largest render area that shows a logicalW×logicalH
// playfield without distortion inside a termW×termH terminal, and the
// 0-based offset that centres it. One terminal row holds two pixels.
func Fit(termW, termH, logicalW, logicalH int) (cols, rows, offsetCol, offsetRow int) {
	if termW <= 0 || termH <= 0 || logicalW <= 0 || logicalH <= 0 {
		return 0, 0, 0, 0
	}
	scale := min(float64(termW)/float64(logicalW), float64(termH*2)/float64(logicalH))
	cols = max(1, min(termW, int(float64(logicalW)*scale)))
	rows = max(1, min(termH, (int(float64(logicalH)*scale)+1)/2))
	return cols, rows, (termW - cols) / 2, (termH - rows) / 2
}
