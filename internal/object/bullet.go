package object

// MaxBullets is the capacity of the bullet pool.
const MaxBullets = 10

// BulletDespawnY is the height above which a bullet is removed.
const BulletDespawnY = -6

// Bullet is a shot fired straight up by the ship.
type Bullet struct {
	Alive bool
	X, Y  int
	VY    int
}

// BulletPool is the fixed-capacity bullet arena.
type BulletPool [MaxBullets]Bullet

// Fire places a bullet in the first free slot.
// It returns false when every slot is in flight.
func (p *BulletPool) Fire(x, y, vy int) bool {
	for i := range p {
		if !p[i].Alive {
			p[i] = Bullet{Alive: true, X: x, Y: y, VY: vy}
			return true
		}
	}
	return false
}

// Update moves every live bullet and frees those that left the top edge.
func (p *BulletPool) Update() {
	for i := range p {
		b := &p[i]
		if !b.Alive {
			continue
		}
		b.Y += b.VY
		if b.Y < BulletDespawnY {
			b.Alive = false
		}
	}
}

// Live returns the number of bullets in flight.
func (p *BulletPool) Live() int {
	n := 0
	for i := range p {
		if p[i].Alive {
			n++
		}
	}
	return n
}

// DrawRequest returns a 2×6 rectangle; bullets have no sprite sheet.
func (b *Bullet) DrawRequest() DrawRequest {
	return DrawRequest{
		Sheet: SheetNone,
		X:     b.X,
		Y:     b.Y - 1,
		Shape: ShapeRect,
		W:     2,
		H:     6,
	}
}
