package object

import (
	"testing"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/rng"
)

var testField = NewPlayfield(config.PlayfieldWidth, config.PlayfieldHeight)

func TestNewPlayfield(t *testing.T) {
	tests := []struct {
		w, h          int
		cell, groundY int
	}{
		{240, 320, 10, 300},
		{176, 208, 7, 194},
		{48, 96, 4, 88}, // cell floor
	}
	for _, tt := range tests {
		pf := NewPlayfield(tt.w, tt.h)
		if pf.Cell != tt.cell || pf.GroundY != tt.groundY {
			t.Errorf("NewPlayfield(%d, %d) = cell %d ground %d; want %d, %d",
				tt.w, tt.h, pf.Cell, pf.GroundY, tt.cell, tt.groundY)
		}
	}
}

func TestAnimationAdvanceWraps(t *testing.T) {
	a := Animation{Frames: 3, Delay: 2}
	want := []int{0, 1, 1, 2, 2, 0, 0, 1}
	for i, w := range want {
		a.Advance()
		if a.Frame != w {
			t.Fatalf("after %d ticks frame = %d, want %d", i+1, a.Frame, w)
		}
	}
}

func TestAnimationPlayDoesNotWrap(t *testing.T) {
	a := Animation{Frames: 10, Delay: 2}
	for tick := 1; tick < 20; tick++ {
		if a.Play() {
			t.Fatalf("finished early at tick %d", tick)
		}
	}
	if a.Frame != 9 {
		t.Fatalf("frame = %d before the last tick, want 9", a.Frame)
	}
	if !a.Play() {
		t.Fatal("10 frames at 2 ticks each should finish on tick 20")
	}
}

func TestSlownessByRadius(t *testing.T) {
	tests := []struct {
		r, cell, want int
	}{
		{8, 4, 4},
		{12, 4, 2},
		{16, 4, 2},
		{16, 10, 10},
		{8, 0, 1},
		{30, 7, 3},
	}
	for _, tt := range tests {
		if got := SlownessByRadius(tt.r, tt.cell); got != tt.want {
			t.Errorf("SlownessByRadius(%d, %d) = %d, want %d", tt.r, tt.cell, got, tt.want)
		}
	}
}

func TestSlownessBiggerIsNotFaster(t *testing.T) {
	for cell := 1; cell <= 20; cell++ {
		prev := SlownessByRadius(1, cell)
		for r := 2; r <= 64; r++ {
			v := SlownessByRadius(r, cell)
			if v > prev {
				t.Fatalf("cell %d: radius %d falls faster (%d) than radius %d (%d)", cell, r, v, r-1, prev)
			}
			if v < 1 || v > cell {
				t.Fatalf("cell %d radius %d: speed %d out of [1, cell]", cell, r, v)
			}
			prev = v
		}
	}
}

func TestKindTable(t *testing.T) {
	tests := []struct {
		kind   AsteroidKind
		radius int
		damage int
		sheet  Sheet
	}{
		{AsteroidSmall, 8, 1, SheetAsteroidSmall},
		{AsteroidMedium, 12, 2, SheetAsteroidMedium},
		{AsteroidLarge, 16, 3, SheetAsteroidLarge},
	}
	for _, tt := range tests {
		if tt.kind.Radius() != tt.radius || tt.kind.Damage() != tt.damage || tt.kind.Sheet() != tt.sheet {
			t.Errorf("%s: radius %d damage %d sheet %s", tt.kind, tt.kind.Radius(), tt.kind.Damage(), tt.kind.Sheet())
		}
	}
}

func TestFragments(t *testing.T) {
	child, offset, drift, ok := AsteroidLarge.Fragments(testField)
	if !ok || child != AsteroidMedium || offset != 8 || drift != 2 {
		t.Errorf("large: %s %d %d %v", child, offset, drift, ok)
	}
	child, offset, drift, ok = AsteroidMedium.Fragments(testField)
	if !ok || child != AsteroidSmall || offset != 4 || drift != 2 {
		t.Errorf("medium: %s %d %d %v", child, offset, drift, ok)
	}
	if _, _, _, ok := AsteroidSmall.Fragments(testField); ok {
		t.Error("small asteroids have no fragments")
	}
}

func TestAsteroidUpdateBouncesAndDespawns(t *testing.T) {
	a := Asteroid{Alive: true, Kind: AsteroidSmall, X: 5, Y: 0, R: 8, VX: -2, VY: 1, Anim: Animation{Frames: 12, Delay: 4}}
	a.Update(testField)
	if a.X != 8 || a.VX != 2 {
		t.Errorf("left wall: X=%d VX=%d, want 8, 2", a.X, a.VX)
	}

	a = Asteroid{Alive: true, X: testField.Width - 9, R: 8, VX: 3, VY: 1, Anim: Animation{Frames: 12, Delay: 4}}
	a.Update(testField)
	if a.X != testField.Width-8 || a.VX != -3 {
		t.Errorf("right wall: X=%d VX=%d", a.X, a.VX)
	}

	a = Asteroid{Alive: true, Y: testField.Height + 7, R: 8, VY: 1, Anim: Animation{Frames: 12, Delay: 4}}
	a.Update(testField)
	if !a.Alive {
		t.Error("y - r == height should still be alive")
	}
	a = Asteroid{Alive: true, Y: testField.Height + 8, R: 8, VY: 1, Anim: Animation{Frames: 12, Delay: 4}}
	a.Update(testField)
	if a.Alive {
		t.Error("asteroid below the playfield should despawn")
	}
}

func TestFreeSlotSkipsActiveEffects(t *testing.T) {
	var asteroids AsteroidPool
	var effects EffectPool
	asteroids.Place(0, AsteroidSmall, 10, 10, 0, 1)
	effects.Start(1, AsteroidSmall, 10, 10)

	if got := asteroids.FreeSlot(&effects); got != 2 {
		t.Fatalf("FreeSlot = %d, want 2", got)
	}

	for i := 0; i < ExplosionFrames*ExplosionDelay; i++ {
		effects.Update()
	}
	if got := asteroids.FreeSlot(&effects); got != 1 {
		t.Fatalf("FreeSlot after the effect ended = %d, want 1", got)
	}
}

func TestSpawnChildFullPool(t *testing.T) {
	var asteroids AsteroidPool
	var effects EffectPool
	for i := range asteroids {
		asteroids.Place(i, AsteroidSmall, 0, 0, 0, 1)
	}
	r := rng.New(rng.DefaultSeed)
	if slot := asteroids.SpawnChild(r, testField, &effects, 0, 0, AsteroidSmall, 1); slot != -1 {
		t.Fatalf("slot = %d, want -1", slot)
	}
	if r.Seed() != rng.DefaultSeed {
		t.Error("a skipped spawn must not consume randomness")
	}
}

func TestSpawnChild(t *testing.T) {
	var asteroids AsteroidPool
	var effects EffectPool
	r := rng.New(99)
	ref := rng.New(99)

	slot := asteroids.SpawnChild(r, testField, &effects, 50, 60, AsteroidMedium, -2)
	if slot != 0 {
		t.Fatalf("slot = %d", slot)
	}
	a := asteroids[0]
	wantFrame := ref.Intn(AsteroidFrames)
	wantDelay := 4 + ref.Intn(4)
	if a.Anim.Frame != wantFrame || a.Anim.Delay != wantDelay {
		t.Errorf("anim = %+v, want frame %d delay %d", a.Anim, wantFrame, wantDelay)
	}
	if a.X != 50 || a.Y != 60 || a.VX != -2 || a.R != 12 || a.VY != SlownessByRadius(12, testField.Cell) {
		t.Errorf("unexpected child %+v", a)
	}
}

func TestSpawnerDrawOrder(t *testing.T) {
	pf := testField
	r := rng.New(rng.DefaultSeed)
	ref := rng.New(rng.DefaultSeed)
	var s AsteroidSpawner
	var asteroids AsteroidPool
	var effects EffectPool

	spawned := 0
	for round := 0; round < 20; round++ {
		for i := 1; i < config.SpawnInterval; i++ {
			if slot := s.Update(r, pf, &asteroids, &effects); slot != -1 {
				t.Fatalf("spawned between rolls")
			}
		}
		if r.Seed() != ref.Seed() {
			t.Fatal("the spawner consumed randomness between rolls")
		}

		slot := s.Update(r, pf, &asteroids, &effects)
		if ref.Bit() == 0 {
			if slot != -1 {
				t.Fatalf("round %d: spawned on a failed gate", round)
			}
			continue
		}

		kind := AsteroidKind(ref.Intn(3))
		frame := ref.Intn(AsteroidFrames)
		x := pf.Cell + ref.Intn(pf.Width-2*pf.Cell)
		y := -(5 + ref.Intn(60))
		drift := ref.Intn(pf.Cell/3+1) - pf.Cell/6
		delay := 4 + ref.Intn(4)

		if slot != spawned {
			t.Fatalf("round %d: slot %d, want %d", round, slot, spawned)
		}
		a := asteroids[slot]
		if a.Kind != kind || a.X != x || a.Y != y || a.VX != drift || a.Anim.Frame != frame || a.Anim.Delay != delay {
			t.Fatalf("round %d: got %+v", round, a)
		}
		if a.VY != max(1, SlownessByRadius(kind.Radius(), pf.Cell)*2/3) {
			t.Fatalf("round %d: vy %d", round, a.VY)
		}
		if a.X < pf.Cell || a.X >= pf.Width-pf.Cell || a.Y > -5 || a.Y < -64 {
			t.Fatalf("round %d: spawned out of range at (%d, %d)", round, a.X, a.Y)
		}
		spawned++
	}
	if spawned == 0 {
		t.Fatal("no spawn in 20 rolls")
	}
	if r.Seed() != ref.Seed() {
		t.Error("generator states diverged")
	}
}

func TestBulletPool(t *testing.T) {
	var p BulletPool
	for i := 0; i < MaxBullets; i++ {
		if !p.Fire(10, 100, -10) {
			t.Fatalf("shot %d rejected", i)
		}
	}
	if p.Fire(10, 100, -10) {
		t.Fatal("pool over capacity")
	}
	if p.Live() != MaxBullets {
		t.Fatalf("live = %d", p.Live())
	}

	p = BulletPool{}
	p.Fire(0, 3, -10)
	p.Update()
	if p[0].Alive {
		t.Error("bullet above y=-6 should be gone")
	}
	p.Fire(0, 5, -10)
	p.Update()
	if !p[0].Alive || p[0].Y != -5 {
		t.Errorf("bullet at y=-5 should survive: %+v", p[0])
	}
}

func TestPickupPool(t *testing.T) {
	var p PickupPool
	r := rng.New(7)
	for i := 0; i < MaxPickups; i++ {
		if slot := p.Drop(r, testField, 10*i, 20); slot != i {
			t.Fatalf("drop %d got slot %d", i, slot)
		}
	}
	seed := r.Seed()
	if slot := p.Drop(r, testField, 0, 0); slot != -1 {
		t.Fatalf("full pool accepted a drop in slot %d", slot)
	}
	if r.Seed() != seed {
		t.Error("a skipped drop must not consume randomness")
	}

	pk := p[0]
	if pk.R != PickupRadius || pk.VY != max(1, testField.Cell/3) {
		t.Errorf("unexpected pickup %+v", pk)
	}
	if pk.Anim.Frame < 0 || pk.Anim.Frame >= PickupFrames || pk.Anim.Delay < 5 || pk.Anim.Delay > 7 {
		t.Errorf("animation out of range: %+v", pk.Anim)
	}

	p[0].Y = testField.Height + PickupRadius
	p.Update(testField)
	if p[0].Alive {
		t.Error("pickup below the playfield should despawn")
	}
}

func TestEffectLifetime(t *testing.T) {
	var p EffectPool
	p.Start(3, AsteroidLarge, 40, 50)
	if p[3].Sheet != SheetExplosionLarge || p[3].Size != 32 {
		t.Fatalf("effect %+v", p[3])
	}
	for i := 1; i < ExplosionFrames*ExplosionDelay; i++ {
		p.Update()
		if !p[3].Active {
			t.Fatalf("effect ended after %d ticks", i)
		}
	}
	p.Update()
	if p.Active() != 0 {
		t.Error("effect should end after its last frame")
	}
}

func TestStarfield(t *testing.T) {
	r := rng.New(rng.DefaultSeed)
	stars := NewStarfield(r, testField)
	for i, st := range stars {
		if st.X < 0 || st.X >= testField.Width || st.Y < 0 || st.Y >= testField.Height || st.Speed < 1 || st.Speed > 3 {
			t.Fatalf("star %d out of range: %+v", i, st)
		}
	}
	for tick := 0; tick < 400; tick++ {
		stars.Update(r, testField)
		for i, st := range stars {
			if st.Y < -19 || st.Y >= testField.Height {
				t.Fatalf("tick %d star %d at y=%d", tick, i, st.Y)
			}
		}
	}
}
