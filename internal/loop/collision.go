package loop

import (
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
)

// checkCollisions resolves bullet↔asteroid, pickup↔ship and asteroid↔ship
// contacts, in that order. Nothing involving the ship is resolved unless it
// is alive.
func (w *World) checkCollisions() {
	if w.Ship.State != object.ShipAlive {
		return
	}

	w.checkBulletAsteroidCollisions()
	w.checkPickupCollisions()
	w.checkShipAsteroidCollisions()
}

// checkBulletAsteroidCollisions destroys at most one asteroid per bullet:
// the first live one, in slot order, whose circle contains the bullet.
func (w *World) checkBulletAsteroidCollisions() {
	for b := range w.Bullets {
		bullet := &w.Bullets[b]
		if !bullet.Alive {
			continue
		}
		for a := range w.Asteroids {
			ast := &w.Asteroids[a]
			if !ast.Alive {
				continue
			}
			if physics.PointInCircle(bullet.X, bullet.Y, ast.X, ast.Y, ast.R) {
				bullet.Alive = false
				w.Score += config.ScorePerAsteroid
				w.explodeAsteroid(a)
				break
			}
		}
	}
}

// checkPickupCollisions heals the ship for every heal star it touches.
func (w *World) checkPickupCollisions() {
	bounds := w.Ship.Bounds()
	for i := range w.Pickups {
		pk := &w.Pickups[i]
		if !pk.Alive {
			continue
		}
		if physics.CircleIntersectsRect(pk.X, pk.Y, pk.R, bounds) {
			w.Ship.Heal(config.HealAmount)
			pk.Alive = false
		}
	}
}

// checkShipAsteroidCollisions damages the ship for every asteroid touching
// it. The asteroid is destroyed even when the ship is invincible. A fatal hit
// starts the ship explosion and ends collision processing for the tick.
func (w *World) checkShipAsteroidCollisions() {
	bounds := w.Ship.Bounds()
	for a := range w.Asteroids {
		ast := &w.Asteroids[a]
		if !ast.Alive {
			continue
		}
		if !physics.CircleIntersectsRect(ast.X, ast.Y, ast.R, bounds) {
			continue
		}
		if w.Ship.Hit(ast.Kind.Damage()) {
			return
		}
		w.explodeAsteroid(a)
	}
}

// explodeAsteroid starts the explosion effect on slot idx, frees the slot,
// spawns the two fragments of a Large or Medium asteroid, then rolls the
// heal-star drop at the original position.
func (w *World) explodeAsteroid(idx int) {
	ast := w.Asteroids[idx]

	w.Effects.Start(idx, ast.Kind, ast.X, ast.Y)
	w.Asteroids[idx].Alive = false

	if child, offset, drift, ok := ast.Kind.Fragments(w.Field); ok {
		w.Asteroids.SpawnChild(w.Rand, w.Field, &w.Effects, ast.X-offset, ast.Y, child, -drift)
		w.Asteroids.SpawnChild(w.Rand, w.Field, &w.Effects, ast.X+offset, ast.Y, child, drift)
	}

	if w.Rand.Intn(config.DropChance) == 0 {
		w.Pickups.Drop(w.Rand, w.Field, ast.X, ast.Y)
	}
}
