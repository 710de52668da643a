package object

// Explosion effect constants.
const (
	ExplosionFrames = 10
	ExplosionDelay  = 2 // Ticks per frame
)

// Effect is an explosion animation. Effects live in an array parallel to the
// asteroid pool; while one is active its asteroid slot cannot be reused.
type Effect struct {
	Active bool
	Sheet  Sheet
	Size   int
	X, Y   int
	Anim   Animation
}

// EffectPool is indexed by asteroid slot.
type EffectPool [MaxAsteroids]Effect

// Start begins the explosion for slot idx at the asteroid's last position,
// sized to its kind.
func (p *EffectPool) Start(idx int, kind AsteroidKind, x, y int) {
	p[idx] = Effect{
		Active: true,
		Sheet:  kind.ExplosionSheet(),
		Size:   kind.Size(),
		X:      x,
		Y:      y,
		Anim:   Animation{Frames: ExplosionFrames, Delay: ExplosionDelay},
	}
}

// Update advances every active effect; an effect ends after its last frame.
func (p *EffectPool) Update() {
	for i := range p {
		e := &p[i]
		if e.Active && e.Anim.Play() {
			e.Active = false
		}
	}
}

// Active returns the number of running effects.
func (p *EffectPool) Active() int {
	n := 0
	for i := range p {
		if p[i].Active {
			n++
		}
	}
	return n
}

// DrawRequest returns the explosion frame, or a shrinking circle when the
// sheet is missing.
func (e *Effect) DrawRequest() DrawRequest {
	r := (e.Size / 2) * (ExplosionFrames - e.Anim.Frame) / ExplosionFrames
	return DrawRequest{
		Sheet: e.Sheet,
		Frame: e.Anim.Frame,
		X:     e.X,
		Y:     e.Y,
		Shape: ShapeCircle,
		W:     r,
	}
}
