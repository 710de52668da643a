// Package loop drives the simulation: World holds and steps the game state,
// Game runs it at a fixed tick against a terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/asset"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/session"
)

// Options configures a Game. Zero values select the defaults.
type Options struct {
	TermSizeFunc   draw.TermSizeFunc
	Seed           int32         // Used as given; 0 is a valid seed
	TickPeriod     time.Duration // 0 selects config.TickPeriod
	Width, Height  int           // Playfield size; 0 selects the defaults
	Catalog        *asset.Catalog
	Logger         *log.Logger
	Events         <-chan session.Event // Host notifications; nil for a local game
	IdleWarn       time.Duration        // 0 disables the inactivity warning
	IdleDisconnect time.Duration        // 0 disables the inactivity disconnect
}

// Game runs one World against one terminal. Pause, Resume and Stop may be
// called from any goroutine; everything else belongs to the Run goroutine.
type Game struct {
	world   *World
	opts    Options
	logger  *log.Logger
	catalog *asset.Catalog

	reader    *bufio.Reader
	writer    io.Writer
	stream    *input.Stream
	readInput func() input.Input

	canvas      *draw.Canvas
	frame       *draw.Frame
	drawBuf     []object.DrawRequest

	paused  atomic.Bool
	stopped atomic.Bool

	lastInput      time.Time
	inactive       bool
	shutdownAt     time.Time // Zero until the host announces shutdown
	prevOverlay    overlay
	fullRedraw     bool // Clear and repaint everything on the next frame
	borderDirty    bool
	lastPauseState bool
}

// NewGame creates a game reading keys from r and drawing to w.
func NewGame(r *bufio.Reader, w io.Writer, opts Options) *Game {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = config.TickPeriod
	}
	if opts.Width <= 0 {
		opts.Width = config.PlayfieldWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.PlayfieldHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	world := NewWorld(opts.Width, opts.Height, opts.Seed)
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(opts.TermSizeFunc)
	cols, rows, offCol, offRow := draw.Fit(termWidth, termHeight, opts.Width, opts.Height)
	canvas := draw.NewScaledCanvas(cols, rows, opts.Width, opts.Height)
	canvas.SetOffset(offCol, offRow)

	return &Game{
		world:       world,
		opts:        opts,
		logger:      logger,
		catalog:     opts.Catalog,
		reader:      r,
		writer:      w,
		canvas:      canvas,
		frame:       newFrame(w, offCol, offRow),
		borderDirty: true,
	}
}

func newFrame(w io.Writer, offCol, offRow int) *draw.Frame {
	f := draw.NewFrame(w)
	f.SetOrigin(offCol, offRow)
	return f
}

// World returns the simulated world.
func (g *Game) World() *World {
	return g.world
}

// Pause freezes simulation and rendering at the next tick boundary.
func (g *Game) Pause() {
	g.paused.Store(true)
}

// Resume continues a paused game.
func (g *Game) Resume() {
	g.paused.Store(false)
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused.Load()
}

// Stop ends Run at the next tick boundary.
func (g *Game) Stop() {
	g.stopped.Store(true)
}

// Run starts the game loop. Blocks until the player quits, the context is
// cancelled, Stop is called, or the session is closed by the host.
func (g *Game) Run(ctx context.Context) error {
	if g.readInput == nil {
		g.stream = input.StartStream(g.reader)
		g.readInput = func() input.Input { return input.ReadInput(g.stream) }
	}

	draw.HideCursor(g.writer)
	defer draw.ShowCursor(g.writer)
	draw.ClearScreen(g.writer)

	g.lastInput = time.Now()
	g.logger.Info("game started", "seed", g.opts.Seed, "tick", g.opts.TickPeriod,
		"playfield", [2]int{g.opts.Width, g.opts.Height}, "sprites", g.catalog.Len())

	timer := time.NewTimer(g.opts.TickPeriod)
	timer.Stop()
	defer timer.Stop()

	reason := "quit"
	for {
		if ctx.Err() != nil {
			reason = "cancelled"
			break
		}
		if g.stopped.Load() {
			reason = "stopped"
			break
		}

		frameStart := time.Now()
		done, why, err := g.tick(frameStart)
		if err != nil {
			g.logger.Error("game error", "err", err)
			return err
		}
		if done {
			reason = why
			break
		}

		// No catch-up: a long tick just shortens the next sleep down to the floor.
		sleep := max(g.opts.TickPeriod-time.Since(frameStart), config.MinSleep)
		timer.Reset(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	g.logger.Info("game ended", "reason", reason, "score", g.world.Score, "ticks", g.world.Tick)
	draw.ClearScreen(g.writer)
	return nil
}

// tick runs one input → simulate → render pass. done is true when the game
// should end, with why naming the reason.
func (g *Game) tick(now time.Time) (done bool, why string, err error) {
	in := g.readInput()

	if g.trackActivity(in, now) {
		return true, "idle", nil
	}
	if in.Quit {
		return true, "quit", nil
	}
	if !g.processEvents(now) {
		return true, "host closed", nil
	}
	if !g.shutdownAt.IsZero() && !now.Before(g.shutdownAt) {
		return true, "shutdown", nil
	}

	if in.Pause && g.shutdownAt.IsZero() {
		g.paused.Store(!g.paused.Load())
	}
	paused := g.paused.Load()
	if paused != g.lastPauseState {
		g.lastPauseState = paused
		g.logger.Debug("pause toggled", "paused", paused, "tick", g.world.Tick)
	}

	if !paused && g.shutdownAt.IsZero() && !g.inactive {
		g.step(in)
	}

	g.updateScreen()
	return false, "", g.drawFrame(now)
}

// step advances the world and logs ship state transitions.
func (g *Game) step(in input.Input) {
	before := g.world.Ship.State
	g.world.Step(in)
	after := g.world.Ship.State
	if before == after {
		return
	}

	switch after {
	case object.ShipExploding:
		g.logger.Debug("ship destroyed", "tick", g.world.Tick)
	case object.ShipGameOver:
		g.logger.Info("game over", "score", g.world.Score, "tick", g.world.Tick)
	case object.ShipAlive:
		// Restart: drop keys still held from the restart press.
		if g.stream != nil {
			input.ResetKeyInput(g.stream)
		}
		g.logger.Info("game restarted", "tick", g.world.Tick)
	}
}

// trackActivity updates the inactivity state. It returns true when the
// player has been idle long enough to be disconnected.
func (g *Game) trackActivity(in input.Input, now time.Time) bool {
	if len(in.Pressed) > 0 {
		g.lastInput = now
		g.inactive = false
		return false
	}
	idle := now.Sub(g.lastInput)
	if g.opts.IdleDisconnect > 0 && idle > g.opts.IdleDisconnect {
		return true
	}
	if g.opts.IdleWarn > 0 && idle > g.opts.IdleWarn {
		g.inactive = true
	}
	return false
}

// processEvents handles host events. It returns false when the host closed
// the event channel.
func (g *Game) processEvents(now time.Time) bool {
	if g.opts.Events == nil {
		return true
	}
	for {
		select {
		case ev, ok := <-g.opts.Events:
			if !ok {
				return false
			}
			if ev.Type == session.EventServerShutdown && g.shutdownAt.IsZero() {
				g.shutdownAt = now.Add(config.ShutdownDisplay)
				g.logger.Info("shutdown notice received", "score", g.world.Score)
			}
		default:
			return true
		}
	}
}
