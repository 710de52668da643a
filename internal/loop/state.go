package loop

import (
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/rng"
)

// World is the whole simulation state. It exclusively owns every pool, the
// ship and the random source; nothing outside Step touches them between ticks.
type World struct {
	Field     object.Playfield
	Rand      *rng.LCG
	Stars     object.Starfield
	Asteroids object.AsteroidPool
	Effects   object.EffectPool
	Bullets   object.BulletPool
	Pickups   object.PickupPool
	Ship      object.Ship
	Spawner   object.AsteroidSpawner
	Score     int
	Tick      uint64 // Simulated ticks since construction
}

// NewWorld creates a world of the given size seeded with seed.
// The background stars draw from the generator first, so the seed alone
// determines the whole play-through for a given input sequence.
func NewWorld(width, height int, seed int32) *World {
	field := object.NewPlayfield(width, height)
	r := rng.New(seed)
	return &World{
		Field: field,
		Rand:  r,
		Stars: object.NewStarfield(r, field),
		Ship:  object.NewShip(field),
	}
}

// NewDefaultWorld creates a world with the default playfield and seed.
func NewDefaultWorld() *World {
	return NewWorld(config.PlayfieldWidth, config.PlayfieldHeight, rng.DefaultSeed)
}

// Reset clears every pool, the score and the ship back to their initial
// values. The random source and background stars keep running.
func (w *World) Reset() {
	w.Asteroids = object.AsteroidPool{}
	w.Effects = object.EffectPool{}
	w.Bullets = object.BulletPool{}
	w.Pickups = object.PickupPool{}
	w.Ship = object.NewShip(w.Field)
	w.Spawner = object.AsteroidSpawner{}
	w.Score = 0
}

// HUD holds the values the overlay displays.
type HUD struct {
	Score     int
	Health    int
	HealthMax int
	GameOver  bool
}

// HUD returns the current overlay values.
func (w *World) HUD() HUD {
	return HUD{
		Score:     w.Score,
		Health:    w.Ship.Health,
		HealthMax: config.HealthMax,
		GameOver:  w.Ship.State == object.ShipGameOver,
	}
}

// DrawList appends one draw request per visible entity to dst, back to front.
func (w *World) DrawList(dst []object.DrawRequest) []object.DrawRequest {
	for i := range w.Stars {
		dst = append(dst, w.Stars[i].DrawRequest())
	}
	for i := range w.Asteroids {
		if w.Asteroids[i].Alive {
			dst = append(dst, w.Asteroids[i].DrawRequest())
		}
	}
	for i := range w.Effects {
		if w.Effects[i].Active {
			dst = append(dst, w.Effects[i].DrawRequest())
		}
	}
	for i := range w.Pickups {
		if w.Pickups[i].Alive {
			dst = append(dst, w.Pickups[i].DrawRequest())
		}
	}
	for i := range w.Bullets {
		if w.Bullets[i].Alive {
			dst = append(dst, w.Bullets[i].DrawRequest())
		}
	}
	if req, ok := w.Ship.DrawRequest(); ok {
		dst = append(dst, req)
	}
	return dst
}
