// Package config centralizes all gameplay balance parameters.
// These are fixed constants; only the seed and tick period are runtime-configurable.
package config

import "time"

// Tick timing
const (
	TickPeriod = 40 * time.Millisecond // ~25 ticks per second
	MinSleep   = 5 * time.Millisecond  // Sleep floor so a slow tick never starves the host
)

// Playfield defaults (logical pixels, portrait like the handset the game was tuned on)
const (
	PlayfieldWidth  = 240
	PlayfieldHeight = 320
	PlayfieldCols   = 24 // Playfield width divided into this many cells
	MinCell         = 4
)

// Scoring
const (
	ScorePerAsteroid = 10
)

// Ship health
const (
	HealthMax   = 8
	InvDuration = 25 // Ticks of invincibility after a hit (~1 second)
	HealAmount  = 2
)

// Asteroid damage by kind
const (
	DamageSmall  = 1
	DamageMedium = 2
	DamageLarge  = 3
)

// Spawning and drops
const (
	SpawnInterval = 6 // Ticks between spawn rolls
	DropChance    = 5 // One in DropChance destroyed asteroids drops a heal star
	FireCooldown  = 6 // Ticks between shots
)

// Shutdown and inactivity (SSH sessions)
const (
	ShutdownDisplay          = 10 * time.Second // Notice shown before a session is closed
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
