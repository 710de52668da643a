package object

import (
	"testing"

	"github.com/tomz197/rockfall/internal/loop/config"
)

func TestNewShip(t *testing.T) {
	s := NewShip(testField)
	if s.X != 120 || s.Y != 274 || s.Speed != 3 || s.Health != config.HealthMax || s.State != ShipAlive {
		t.Errorf("unexpected ship %+v", s)
	}
	x, y := s.Muzzle()
	if x != 120 || y != 248 {
		t.Errorf("muzzle = (%d, %d), want (120, 248)", x, y)
	}
}

func TestShipSteerClamps(t *testing.T) {
	s := NewShip(testField)
	for i := 0; i < 100; i++ {
		s.Steer(Input{Left: true}, testField)
	}
	if s.X != ShipWidth/2 {
		t.Errorf("left clamp X = %d, want %d", s.X, ShipWidth/2)
	}
	for i := 0; i < 100; i++ {
		s.Steer(Input{Right: true}, testField)
	}
	if s.X != testField.Width-ShipWidth/2 {
		t.Errorf("right clamp X = %d, want %d", s.X, testField.Width-ShipWidth/2)
	}
}

func TestShipFireCooldown(t *testing.T) {
	s := NewShip(testField)
	var shots []int
	for tick := 0; tick < 20; tick++ {
		if s.Steer(Input{Fire: true}, testField) {
			shots = append(shots, tick)
		}
	}
	want := []int{0, 6, 12, 18}
	if len(shots) != len(want) {
		t.Fatalf("shots at %v, want %v", shots, want)
	}
	for i := range want {
		if shots[i] != want[i] {
			t.Fatalf("shots at %v, want %v", shots, want)
		}
	}
}

func TestShipHitAndInvincibility(t *testing.T) {
	s := NewShip(testField)
	if s.Hit(3) {
		t.Fatal("a 3 damage hit at full health should not destroy the ship")
	}
	if s.Health != 5 || s.InvTicks != config.InvDuration {
		t.Fatalf("after hit: health %d inv %d", s.Health, s.InvTicks)
	}
	if s.Hit(3) || s.Health != 5 {
		t.Fatal("damage while invincible must be ignored")
	}

	for i := 0; i < config.InvDuration; i++ {
		s.Tick()
	}
	if s.InvTicks != 0 {
		t.Fatalf("inv = %d after %d ticks", s.InvTicks, config.InvDuration)
	}
	s.Hit(1)
	if s.Health != 4 {
		t.Errorf("health = %d, want 4", s.Health)
	}
}

func TestShipDestroyedOnce(t *testing.T) {
	s := NewShip(testField)
	s.Health = 1
	if !s.Hit(config.DamageLarge) {
		t.Fatal("fatal hit not reported")
	}
	if s.Health != 0 || s.State != ShipExploding || s.InvTicks != 0 {
		t.Fatalf("after fatal hit: %+v", s)
	}
	if s.Hit(config.DamageLarge) {
		t.Fatal("an exploding ship must not be destroyed again")
	}
	if s.Steer(Input{Left: true, Fire: true}, testField) || s.X != 120 {
		t.Fatal("an exploding ship must ignore input")
	}

	ticks := ShipExplosionFrames * ShipExplosionDelay
	for i := 1; i < ticks; i++ {
		s.Tick()
		if s.State != ShipExploding {
			t.Fatalf("left exploding after %d ticks", i)
		}
	}
	s.Tick()
	if s.State != ShipGameOver {
		t.Fatalf("state = %s after %d ticks, want game over", s.State, ticks)
	}
	if _, ok := s.DrawRequest(); ok {
		t.Error("nothing is drawn after game over")
	}
}

func TestShipHeal(t *testing.T) {
	s := NewShip(testField)
	s.Health = 7
	s.Heal(config.HealAmount)
	if s.Health != config.HealthMax {
		t.Errorf("health = %d, want capped at %d", s.Health, config.HealthMax)
	}
}

func TestShipBlink(t *testing.T) {
	s := NewShip(testField)
	s.InvTicks = 3
	if _, ok := s.DrawRequest(); ok {
		t.Error("ship is hidden on odd invincibility ticks")
	}
	s.InvTicks = 2
	req, ok := s.DrawRequest()
	if !ok || req.Sheet != SheetShip || req.Shape != ShapeRect || req.W != ShipWidth || req.H != ShipHeight {
		t.Errorf("unexpected draw request %+v %v", req, ok)
	}
}

func TestShipEngineSequence(t *testing.T) {
	s := NewShip(testField)
	var frames []int
	for i := 0; i < 4*shipAnimDelay; i++ {
		req, _ := s.DrawRequest()
		if i%shipAnimDelay == 0 {
			frames = append(frames, req.Frame)
		}
		s.Tick()
	}
	want := []int{0, 1, 2, 1}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames %v, want %v", frames, want)
		}
	}
}
