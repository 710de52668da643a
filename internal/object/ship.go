package object

import (
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
)

// ShipState is the phase of the ship's life.
type ShipState int

const (
	ShipAlive     ShipState = iota // Player-controlled
	ShipExploding                  // Death animation playing, input ignored
	ShipGameOver                   // Terminal until restart
)

func (s ShipState) String() string {
	switch s {
	case ShipAlive:
		return "alive"
	case ShipExploding:
		return "exploding"
	case ShipGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Ship geometry and animation.
const (
	ShipWidth  = 31
	ShipHeight = 48

	shipAnimDelay       = 5
	ShipExplosionFrames = 10
	ShipExplosionDelay  = 2
	ShipExplosionSize   = 32
)

// shipSequence is the ship's engine flicker loop.
var shipSequence = [...]int{0, 1, 2, 1}

// Ship is the player-controlled singleton. Only X moves after construction.
type Ship struct {
	X, Y      int
	Speed     int
	Health    int
	InvTicks  int // Remaining invincibility
	State     ShipState
	Cooldown  int // Ticks until the next shot is allowed
	Anim      Animation
	Explosion Animation
}

// NewShip centres a fresh ship above the ground line.
func NewShip(pf Playfield) Ship {
	return Ship{
		X:      pf.Width / 2,
		Y:      pf.GroundY - ShipHeight/2 - 2,
		Speed:  max(2, pf.Cell/3),
		Health: config.HealthMax,
		State:  ShipAlive,
		Anim:   Animation{Frames: len(shipSequence), Delay: shipAnimDelay},
	}
}

// Steer applies one tick of movement input and counts down the fire cooldown.
// It returns true when a shot should be fired this tick.
func (s *Ship) Steer(in Input, pf Playfield) bool {
	if s.State != ShipAlive {
		return false
	}

	if in.Left {
		s.X -= s.Speed
	}
	if in.Right {
		s.X += s.Speed
	}
	s.X = min(max(s.X, ShipWidth/2), pf.Width-ShipWidth/2)

	if s.Cooldown > 0 {
		s.Cooldown--
	}
	if in.Fire && s.Cooldown == 0 {
		s.Cooldown = config.FireCooldown
		return true
	}
	return false
}

// Muzzle returns the point bullets leave the ship from.
func (s *Ship) Muzzle() (x, y int) {
	return s.X, s.Y - ShipHeight/2 - 2
}

// Bounds returns the ship's collision rectangle.
func (s *Ship) Bounds() physics.Rect {
	return physics.RectAround(s.X, s.Y, ShipWidth, ShipHeight)
}

// Hit applies an asteroid impact. Damage is ignored while invincible.
// It returns true when the impact destroyed the ship, which starts the
// explosion sequence exactly once.
func (s *Ship) Hit(damage int) bool {
	if s.State != ShipAlive || s.InvTicks > 0 {
		return false
	}
	s.Health = max(0, s.Health-damage)
	if s.Health <= 0 {
		s.explode()
		return true
	}
	s.InvTicks = config.InvDuration
	return false
}

// Heal restores health up to the maximum.
func (s *Ship) Heal(amount int) {
	s.Health = min(config.HealthMax, s.Health+amount)
}

func (s *Ship) explode() {
	s.State = ShipExploding
	s.InvTicks = 0
	s.Explosion = Animation{Frames: ShipExplosionFrames, Delay: ShipExplosionDelay}
}

// Tick advances the engine flicker, the death animation and the
// invincibility countdown. The death animation does not loop: once its last
// frame is exhausted the ship enters ShipGameOver.
func (s *Ship) Tick() {
	switch s.State {
	case ShipAlive:
		s.Anim.Advance()
	case ShipExploding:
		if s.Explosion.Play() {
			s.State = ShipGameOver
		}
	}
	if s.InvTicks > 0 {
		s.InvTicks--
	}
}

// DrawRequest returns the ship or its explosion. ok is false when nothing
// should be drawn this tick (blinking while invincible, or game over).
func (s *Ship) DrawRequest() (req DrawRequest, ok bool) {
	switch s.State {
	case ShipExploding:
		return DrawRequest{
			Sheet: SheetExplosionLarge,
			Frame: s.Explosion.Frame,
			X:     s.X,
			Y:     s.Y,
			Shape: ShapeCircle,
			W:     (ShipExplosionSize / 2) * (ShipExplosionFrames - s.Explosion.Frame) / ShipExplosionFrames,
		}, true
	case ShipAlive:
		if !ShouldRenderBlink(s.InvTicks) {
			return DrawRequest{}, false
		}
		return DrawRequest{
			Sheet: SheetShip,
			Frame: shipSequence[s.Anim.Frame],
			X:     s.X,
			Y:     s.Y,
			Shape: ShapeRect,
			W:     ShipWidth,
			H:     ShipHeight,
		}, true
	default:
		return DrawRequest{}, false
	}
}
