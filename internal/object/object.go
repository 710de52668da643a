// Package object holds the fixed-capacity entity pools, the ship state machine,
// and the per-kind constant tables of the simulation.
package object

import (
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/loop/config"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Playfield describes the simulated area in logical pixels.
type Playfield struct {
	Width   int
	Height  int
	Cell    int // Base unit for speeds and margins
	GroundY int // Line the ship sits above
}

// NewPlayfield derives the cell size and ground line for a width×height area.
func NewPlayfield(width, height int) Playfield {
	cell := max(config.MinCell, width/config.PlayfieldCols)
	return Playfield{
		Width:   width,
		Height:  height,
		Cell:    cell,
		GroundY: height - cell*2,
	}
}

// Animation is a per-entity frame counter.
// The frame advances once every Delay ticks.
type Animation struct {
	Frame  int
	Frames int
	Delay  int
	Tick   int
}

// Advance counts one tick and steps to the next frame, wrapping to 0.
func (a *Animation) Advance() {
	a.Tick++
	if a.Tick < a.Delay {
		return
	}
	a.Tick = 0
	a.Frame++
	if a.Frame >= a.Frames {
		a.Frame = 0
	}
}

// Play counts one tick like Advance but does not wrap.
// It returns true once the last frame has been shown for its full delay.
func (a *Animation) Play() bool {
	a.Tick++
	if a.Tick < a.Delay {
		return false
	}
	a.Tick = 0
	if a.Frame+1 >= a.Frames {
		return true
	}
	a.Frame++
	return false
}

// Sheet identifies a sprite sheet supplied by the asset collaborator.
type Sheet int

const (
	SheetNone Sheet = iota
	SheetShip
	SheetAsteroidSmall
	SheetAsteroidMedium
	SheetAsteroidLarge
	SheetExplosionSmall
	SheetExplosionMedium
	SheetExplosionLarge
	SheetHealStar
)

var sheetNames = [...]string{
	SheetNone:            "none",
	SheetShip:            "ship",
	SheetAsteroidSmall:   "asteroid_small",
	SheetAsteroidMedium:  "asteroid_medium",
	SheetAsteroidLarge:   "asteroid_large",
	SheetExplosionSmall:  "explosion_small",
	SheetExplosionMedium: "explosion_medium",
	SheetExplosionLarge:  "explosion_large",
	SheetHealStar:        "heal_star",
}

// String returns the manifest name of the sheet.
func (s Sheet) String() string {
	if s < 0 || int(s) >= len(sheetNames) {
		return "unknown"
	}
	return sheetNames[s]
}

// Sheets lists every sheet that has a manifest entry.
func Sheets() []Sheet {
	return []Sheet{
		SheetShip,
		SheetAsteroidSmall, SheetAsteroidMedium, SheetAsteroidLarge,
		SheetExplosionSmall, SheetExplosionMedium, SheetExplosionLarge,
		SheetHealStar,
	}
}

// Shape is the primitive drawn when a sprite sheet is unavailable.
type Shape int

const (
	ShapeNone   Shape = iota
	ShapeCircle       // Filled circle of radius W
	ShapeRect         // Filled W×H rectangle centred on X, Y
	ShapePoint        // Single pixel
)

// DrawRequest is what the renderer needs for one entity:
// a sprite frame at a reference pixel, or a fallback primitive.
type DrawRequest struct {
	Sheet Sheet
	Frame int
	X, Y  int // Reference pixel (sprite centre)
	Shape Shape
	W, H  int
}

// ShouldRenderBlink reports whether an invincible entity is drawn this tick.
// Entities without remaining invincibility are always drawn.
func ShouldRenderBlink(invTicks int) bool {
	return invTicks&1 == 0
}
