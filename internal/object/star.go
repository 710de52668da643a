package object

import "github.com/tomz197/rockfall/internal/rng"

// MaxStars is the number of background stars.
const MaxStars = 80

// Star is a cosmetic background point falling at one of three speeds.
type Star struct {
	X, Y  int
	Speed int // 1..3
}

// Starfield is the fixed set of background stars.
type Starfield [MaxStars]Star

// NewStarfield scatters the stars over the whole playfield.
func NewStarfield(r *rng.LCG, pf Playfield) Starfield {
	var s Starfield
	for i := range s {
		s[i].X = r.Intn(pf.Width)
		s[i].Y = r.Intn(pf.Height)
		s[i].Speed = 1 + r.Intn(3)
	}
	return s
}

// Update moves every star down; stars leaving the bottom re-enter at the top
// with a new column and speed.
func (s *Starfield) Update(r *rng.LCG, pf Playfield) {
	for i := range s {
		st := &s[i]
		st.Y += st.Speed
		if st.Y >= pf.Height {
			st.Y = -r.Intn(20)
			st.X = r.Intn(pf.Width)
			st.Speed = 1 + r.Intn(3)
		}
	}
}

// DrawRequest returns a single point; slow stars are drawn only every other
// column so the field reads as depth on a monochrome canvas.
func (st *Star) DrawRequest() DrawRequest {
	shape := ShapePoint
	if st.Speed == 1 && st.X&1 == 1 {
		shape = ShapeNone
	}
	return DrawRequest{X: st.X, Y: st.Y, Shape: shape}
}
