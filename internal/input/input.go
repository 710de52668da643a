// Package input turns a raw terminal byte stream into per-tick key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals deliver key repeats rather than key-up events, so a key stays held
// for a little longer than one tick.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current tick's input state.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Pause   bool // Toggle pause (edge, not held)
	Quit    bool
	Pressed []byte // Raw bytes seen this tick
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	fire  time.Time
	quit  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	now     func() time.Time
	partial []byte // Unfinished escape sequence carried to the next read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine only feeds the channel; key state is touched by ReadInput alone.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream(time.Now)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(now func() time.Time) *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: now,
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	now := s.now()
	buf := s.partial
	s.partial = nil
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	// Hold back an escape sequence cut off by the read boundary, so its
	// final byte is not read as a letter key next tick.
	if !closed {
		if n := partialEscape(buf); n > 0 {
			s.partial = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	pause := false
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		if b == 'p' || b == 'P' {
			pause = true
			continue
		}
		applyByteToState(&s.state, b, now)
	}

	return Input{
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Fire:    now.Sub(s.state.fire) < keyHoldDuration,
		Pause:   pause,
		Quit:    closed || now.Sub(s.state.quit) < keyHoldDuration,
		Pressed: buf,
	}
}

// ResetKeyInput forgets all held keys, so a key held across a restart
// is not read as a fresh press.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// partialEscape returns the length of an unfinished "ESC" or "ESC [" at the
// end of buf, or 0.
func partialEscape(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	}
	return 0
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'h', 'H', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', 'w', 'W', 'k', 'K', '\n', '\r':
		state.fire = now
	}
}
