package object

import (
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/rng"
)

// AsteroidSpawner periodically rolls for a new asteroid above the playfield.
type AsteroidSpawner struct {
	Counter int
}

// Update counts one tick. Every config.SpawnInterval ticks it rolls a coin and,
// on success, places a new asteroid in the first free slot. It returns the slot
// used, or -1 when nothing was spawned.
func (s *AsteroidSpawner) Update(r *rng.LCG, pf Playfield, asteroids *AsteroidPool, effects *EffectPool) int {
	s.Counter++
	if s.Counter < config.SpawnInterval {
		return -1
	}
	s.Counter = 0
	if r.Bit() == 0 {
		return -1
	}

	slot := asteroids.FreeSlot(effects)
	if slot < 0 {
		return -1
	}

	kind := AsteroidKind(r.Intn(3))
	frame := r.Intn(AsteroidFrames)
	radius := kind.Radius()

	span := max(1, pf.Width-2*pf.Cell)
	x := pf.Cell + r.Intn(span)
	y := -(5 + r.Intn(60))

	// Fresh asteroids fall a third slower than fragments.
	vy := max(1, (SlownessByRadius(radius, pf.Cell)*2)/3)
	drift := r.Intn(max(1, pf.Cell/3+1)) - pf.Cell/6
	delay := 4 + r.Intn(4)

	asteroids[slot] = Asteroid{
		Alive: true,
		Kind:  kind,
		X:     x,
		Y:     y,
		R:     radius,
		VX:    drift,
		VY:    vy,
		Anim: Animation{
			Frame:  frame,
			Frames: AsteroidFrames,
			Delay:  delay,
		},
	}
	return slot
}
