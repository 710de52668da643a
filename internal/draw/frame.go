package draw

import (
	"fmt"
	"io"
	"strconv"
)

// packetSize caps a single write to the terminal. Over SSH each write
// becomes at least one channel packet; keeping them near the MTU lets the
// first rows of a frame arrive before the whole frame is encoded.
const packetSize = 1400

// Frame collects everything drawn during one tick (canvas cells, HUD text
// and overlays) and sends it to the terminal in one go. Text positions are
// relative to the playfield's top-left cell.
type Frame struct {
	out    io.Writer
	data   []byte
	origin [2]int // Terminal column and row offset of the playfield
}

// NewFrame returns an empty frame that sends to out.
func NewFrame(out io.Writer) *Frame {
	return &Frame{out: out, data: make([]byte, 0, 4*packetSize)}
}

// SetOrigin moves the playfield's top-left cell, e.g. after a resize.
func (f *Frame) SetOrigin(col, row int) {
	f.origin = [2]int{col, row}
}

// Write appends raw output. Canvas.Render writes through it.
func (f *Frame) Write(p []byte) (int, error) {
	f.data = append(f.data, p...)
	return len(p), nil
}

// Clear appends a clear-screen, so the frame repaints from scratch.
func (f *Frame) Clear() {
	f.data = append(f.data, "\033[H\033[2J"...)
}

// Text writes s starting at the 1-based playfield cell (col, row).
func (f *Frame) Text(col, row int, s string) {
	f.data = append(f.data, "\033["...)
	f.data = strconv.AppendInt(f.data, int64(row+f.origin[1]), 10)
	f.data = append(f.data, ';')
	f.data = strconv.AppendInt(f.data, int64(col+f.origin[0]), 10)
	f.data = append(f.data, 'H')
	f.data = append(f.data, s...)
}

// Pending returns the number of bytes not yet sent.
func (f *Frame) Pending() int {
	return len(f.data)
}

// Send writes the collected output in packet-sized pieces and starts a new,
// empty frame. An empty frame sends nothing.
func (f *Frame) Send() error {
	data := f.data
	f.data = f.data[:0]
	for len(data) > 0 {
		n := min(len(data), packetSize)
		if _, err := f.out.Write(data[:n]); err != nil {
			return fmt.Errorf("send frame: %w", err)
		}
		data = data[n:]
	}
	return nil
}
