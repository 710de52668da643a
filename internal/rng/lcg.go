// Package rng provides the seeded pseudo-random source that drives every
// stochastic decision in the simulation.
package rng

// DefaultSeed is the seed used when none is configured.
const DefaultSeed int32 = 123456789

// LCG is a 31-bit linear-congruential generator.
// Two generators built from the same seed yield identical sequences.
type LCG struct {
	seed int32
}

// New creates a generator starting from seed.
func New(seed int32) *LCG {
	return &LCG{seed: seed}
}

// Next advances the generator and returns the new state, always in [0, 2^31).
func (r *LCG) Next() int32 {
	// int32 multiplication wraps, matching 32-bit two's complement arithmetic.
	r.seed = (r.seed*1103515245 + 12345) & 0x7fffffff
	return r.seed
}

// Intn returns Next() mod n, sign-corrected to be non-negative.
// It returns 0 without advancing the generator when n <= 0.
func (r *LCG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Next()) % n
	if v < 0 {
		v = -v
	}
	return v
}

// Bit returns the lowest bit of the next draw.
func (r *LCG) Bit() int {
	return int(r.Next() & 1)
}

// Seed returns the current generator state.
func (r *LCG) Seed() int32 {
	return r.seed
}
