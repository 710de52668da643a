package loop

import (
	"github.com/tomz197/rockfall/internal/object"
)

// Step advances the simulation by exactly one tick:
// input, then (unless the game is over) stars, bullets, spawner, asteroids,
// effects, ship timers, pickups and collisions.
func (w *World) Step(in object.Input) {
	w.processInput(in)
	if w.Ship.State != object.ShipGameOver {
		w.updateObjects()
		w.checkCollisions()
	}
	w.Tick++
}

// processInput steers the ship, fires, or restarts after a game over.
// The ship ignores input entirely while it is exploding.
func (w *World) processInput(in object.Input) {
	switch w.Ship.State {
	case object.ShipExploding:
		return
	case object.ShipGameOver:
		if in.Fire {
			w.Reset()
		}
		return
	}

	if w.Ship.Steer(in, w.Field) {
		x, y := w.Ship.Muzzle()
		w.Bullets.Fire(x, y, -w.Field.Cell)
	}
}

// updateObjects runs every movement integrator and animation timer.
func (w *World) updateObjects() {
	w.Stars.Update(w.Rand, w.Field)
	w.Bullets.Update()
	w.Spawner.Update(w.Rand, w.Field, &w.Asteroids, &w.Effects)
	w.Asteroids.Update(w.Field)
	w.Effects.Update()
	w.Ship.Tick()
	w.Pickups.Update(w.Field)
}
