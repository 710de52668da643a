package object

import (
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/rng"
)

// AsteroidKind represents the size category of an asteroid.
type AsteroidKind int

const (
	AsteroidSmall AsteroidKind = iota
	AsteroidMedium
	AsteroidLarge
)

// MaxAsteroids is the capacity of the asteroid pool (and of the explosion effects).
const MaxAsteroids = 16

// AsteroidFrames is the length of every asteroid rotation loop.
const AsteroidFrames = 12

// kindSpec is the constant table entry for one asteroid kind.
type kindSpec struct {
	size      int // Sprite frame width and height
	damage    int
	sheet     Sheet
	explosion Sheet
	name      string
}

var asteroidKinds = [...]kindSpec{
	AsteroidSmall:  {size: 16, damage: config.DamageSmall, sheet: SheetAsteroidSmall, explosion: SheetExplosionSmall, name: "small"},
	AsteroidMedium: {size: 24, damage: config.DamageMedium, sheet: SheetAsteroidMedium, explosion: SheetExplosionMedium, name: "medium"},
	AsteroidLarge:  {size: 32, damage: config.DamageLarge, sheet: SheetAsteroidLarge, explosion: SheetExplosionLarge, name: "large"},
}

// Size returns the sprite frame width of the kind.
func (k AsteroidKind) Size() int { return asteroidKinds[k].size }

// Radius returns the collision radius: half the sprite width.
func (k AsteroidKind) Radius() int { return asteroidKinds[k].size / 2 }

// Damage returns the health an impact with the ship costs.
func (k AsteroidKind) Damage() int { return asteroidKinds[k].damage }

// Sheet returns the rotation sprite sheet of the kind.
func (k AsteroidKind) Sheet() Sheet { return asteroidKinds[k].sheet }

// ExplosionSheet returns the explosion sprite sheet sized to the kind.
func (k AsteroidKind) ExplosionSheet() Sheet { return asteroidKinds[k].explosion }

func (k AsteroidKind) String() string { return asteroidKinds[k].name }

// Fragments returns the kind of the two children produced when an asteroid of
// kind k is destroyed, their horizontal offset from the parent, and their drift
// speed. ok is false for kinds that leave no children.
func (k AsteroidKind) Fragments(pf Playfield) (child AsteroidKind, offset, drift int, ok bool) {
	r := k.Radius()
	switch k {
	case AsteroidLarge:
		return AsteroidMedium, r / 2, max(1, pf.Cell/4), true
	case AsteroidMedium:
		return AsteroidSmall, r / 3, max(1, pf.Cell/5), true
	default:
		return 0, 0, 0, false
	}
}

// SlownessByRadius maps a radius to a fall speed. The ratio grows with the
// radius, so bigger asteroids fall slower. Integer truncation is part of the
// behaviour.
func SlownessByRadius(r, cell int) int {
	cellSafe := max(1, cell)
	ratio := max(1, r/cellSafe)
	v := (cellSafe * 2) / ratio
	return min(max(v, 1), cellSafe)
}

// Asteroid is one slot of the asteroid pool.
type Asteroid struct {
	Alive  bool
	Kind   AsteroidKind
	X, Y   int
	R      int // Collision radius
	VX, VY int
	Anim   Animation
}

// Update moves the asteroid, bounces it off the side walls, advances its
// rotation and frees the slot once it has fallen past the bottom edge.
func (a *Asteroid) Update(pf Playfield) {
	a.Y += a.VY
	a.X += a.VX
	if a.X < a.R {
		a.X = a.R
		a.VX = -a.VX
	}
	if a.X > pf.Width-a.R {
		a.X = pf.Width - a.R
		a.VX = -a.VX
	}

	a.Anim.Advance()

	if a.Y-a.R > pf.Height {
		a.Alive = false
	}
}

// DrawRequest returns the sprite frame, or a filled circle when the sheet is missing.
func (a *Asteroid) DrawRequest() DrawRequest {
	return DrawRequest{
		Sheet: a.Kind.Sheet(),
		Frame: a.Anim.Frame,
		X:     a.X,
		Y:     a.Y,
		Shape: ShapeCircle,
		W:     a.R,
	}
}

// AsteroidPool is the fixed-capacity asteroid arena.
type AsteroidPool [MaxAsteroids]Asteroid

// FreeSlot returns the first slot that is neither alive nor still showing its
// explosion, or -1 when the pool is exhausted.
func (p *AsteroidPool) FreeSlot(effects *EffectPool) int {
	for i := range p {
		if !p[i].Alive && !effects[i].Active {
			return i
		}
	}
	return -1
}

// Live returns the number of live asteroids.
func (p *AsteroidPool) Live() int {
	n := 0
	for i := range p {
		if p[i].Alive {
			n++
		}
	}
	return n
}

// Update integrates every live asteroid.
func (p *AsteroidPool) Update(pf Playfield) {
	for i := range p {
		if p[i].Alive {
			p[i].Update(pf)
		}
	}
}

// SpawnChild places a fragment of the given kind at (x, y) drifting at vx.
// It returns the slot used, or -1 (consuming no randomness) when the pool is full.
func (p *AsteroidPool) SpawnChild(r *rng.LCG, pf Playfield, effects *EffectPool, x, y int, kind AsteroidKind, vx int) int {
	slot := p.FreeSlot(effects)
	if slot < 0 {
		return -1
	}

	frame := r.Intn(AsteroidFrames)
	radius := kind.Radius()
	p[slot] = Asteroid{
		Alive: true,
		Kind:  kind,
		X:     x,
		Y:     y,
		R:     radius,
		VX:    vx,
		VY:    max(1, SlownessByRadius(radius, pf.Cell)),
		Anim: Animation{
			Frame:  frame,
			Frames: AsteroidFrames,
			Delay:  4 + r.Intn(4), // 4..7 ticks per frame
		},
	}
	return slot
}

// Place puts an asteroid of the given kind into a specific slot with the
// given velocity, bypassing the spawner. Scenario setups and tests use it.
func (p *AsteroidPool) Place(slot int, kind AsteroidKind, x, y, vx, vy int) {
	p[slot] = Asteroid{
		Alive: true,
		Kind:  kind,
		X:     x,
		Y:     y,
		R:     kind.Radius(),
		VX:    vx,
		VY:    vy,
		Anim:  Animation{Frames: AsteroidFrames, Delay: 4},
	}
}
