package object

import "github.com/tomz197/rockfall/internal/rng"

// Heal star constants.
const (
	MaxPickups   = 4
	PickupRadius = 7  // Pickup radius, smaller than the 16px sprite
	PickupFrames = 11 // Twinkle loop length
	PickupSize   = 16
)

// Pickup is a falling heal star.
type Pickup struct {
	Alive bool
	X, Y  int
	R     int
	VY    int
	Anim  Animation
}

// PickupPool is the fixed-capacity pickup arena.
type PickupPool [MaxPickups]Pickup

// Drop places a heal star at (x, y). It returns the slot used, or -1
// (consuming no randomness) when the pool is full.
func (p *PickupPool) Drop(r *rng.LCG, pf Playfield, x, y int) int {
	slot := -1
	for i := range p {
		if !p[i].Alive {
			slot = i
			break
		}
	}
	if slot < 0 {
		return -1
	}

	frame := r.Intn(PickupFrames)
	p[slot] = Pickup{
		Alive: true,
		X:     x,
		Y:     y,
		R:     PickupRadius,
		VY:    max(1, pf.Cell/3),
		Anim: Animation{
			Frame:  frame,
			Frames: PickupFrames,
			Delay:  5 + r.Intn(3), // 5..7 ticks per frame
		},
	}
	return slot
}

// Update moves every live pickup down and frees those that left the bottom edge.
func (p *PickupPool) Update(pf Playfield) {
	for i := range p {
		pk := &p[i]
		if !pk.Alive {
			continue
		}
		pk.Y += pk.VY
		pk.Anim.Advance()
		if pk.Y-pk.R > pf.Height {
			pk.Alive = false
		}
	}
}

// Live returns the number of pickups on the field.
func (p *PickupPool) Live() int {
	n := 0
	for i := range p {
		if p[i].Alive {
			n++
		}
	}
	return n
}

// DrawRequest returns the star frame, or a small circle when the sheet is missing.
func (pk *Pickup) DrawRequest() DrawRequest {
	return DrawRequest{
		Sheet: SheetHealStar,
		Frame: pk.Anim.Frame,
		X:     pk.X,
		Y:     pk.Y,
		Shape: ShapeCircle,
		W:     3,
	}
}
