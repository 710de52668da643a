package draw

// Filled shapes are rasterised in terminal pixel space: every pixel whose
// centre maps inside the logical shape is set. This keeps shapes solid at any
// scale.

// FillRect fills the logical rectangle with top-left (x, y) and size w×h.
func (c *Canvas) FillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	px0, py0 := c.toPixel(x, y)
	px1, py1 := c.toPixel(x+w, y+h)
	// Shapes thinner than a terminal pixel still cover one.
	px1 = max(px1, px0+1)
	py1 = max(py1, py0+1)
	for py := max(0, py0); py < min(c.subPixelHeight, py1); py++ {
		for px := max(0, px0); px < min(c.termWidth, px1); px++ {
			c.pixels[py*c.termWidth+px] = true
		}
	}
}

// StrokeRect outlines the logical rectangle with top-left (x, y) and size w×h.
func (c *Canvas) StrokeRect(x, y, w, h int) {
	px0, py0 := c.toPixel(x, y)
	px1, py1 := c.toPixel(x+w-1, y+h-1)
	for px := px0; px <= px1; px++ {
		c.setPixel(px, py0)
		c.setPixel(px, py1)
	}
	for py := py0; py <= py1; py++ {
		c.setPixel(px0, py)
		c.setPixel(px1, py)
	}
}

// FillCircle fills the logical circle centred on (cx, cy).
// A radius of zero sets the single centre pixel.
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r < 0 {
		return
	}
	if r == 0 {
		c.Set(cx, cy)
		return
	}
	px0, py0 := c.toPixel(cx-r, cy-r)
	px1, py1 := c.toPixel(cx+r, cy+r)
	rr := float64(r * r)
	drawn := false
	for py := max(0, py0); py <= min(c.subPixelHeight-1, py1); py++ {
		for px := max(0, px0); px <= min(c.termWidth-1, px1); px++ {
			x, y := c.toLogical(px, py)
			dx := x - float64(cx)
			dy := y - float64(cy)
			if dx*dx+dy*dy <= rr {
				c.pixels[py*c.termWidth+px] = true
				drawn = true
			}
		}
	}
	if !drawn {
		c.Set(cx, cy)
	}
}

// Blit draws the opaque pixels of m with its top-left corner at logical (x, y).
func (c *Canvas) Blit(m *Mask, x, y int) {
	if m == nil {
		return
	}
	px0, py0 := c.toPixel(x, y)
	px1, py1 := c.toPixel(x+m.W, y+m.H)
	for py := max(0, py0); py < min(c.subPixelHeight, py1); py++ {
		for px := max(0, px0); px < min(c.termWidth, px1); px++ {
			lx, ly := c.toLogical(px, py)
			if m.At(int(lx)-x, int(ly)-y) {
				c.pixels[py*c.termWidth+px] = true
			}
		}
	}
}
