package discrepancy

import "math/bits"

// Xoshiro256 is the wide (256-bit state) generator of this package, using the
// xoshiro256** update rule (see https://prng.di.unimi.it/xoshiro256starstar.c).
// It has a period of 2^256-1.
// This random number generator is deterministic in the sequence of numbers it generates.
// This random number generator is not cryptographically secure.
// This random number generator is not thread-safe.
// The state must never be all zero; the constructors guarantee this.
type Xoshiro256 struct {
	state [4]uint64
}

// NewXoshiro256 expands seed into the four state words with the fixed
// multiply/xor/complement mixing used by the reference implementation:
//
//	s0 = seed
//	s1 = seed * 0x9E3779B97F4A7C15
//	s2 = seed ^ 0xBF58476D1CE4E5B9
//	s3 = ^seed + 0x94D049BB133111EB
//
// This mixing is weak (nearby seeds start from correlated states) but it
// reproduces the reference streams bit for bit. Use NewXoshiro256SplitMix
// when parity with those streams is not needed.
func NewXoshiro256(seed int64) *Xoshiro256 {
	s := uint64(seed)
	return &Xoshiro256{state: [4]uint64{
		s,
		s * 0x9E3779B97F4A7C15,
		s ^ 0xBF58476D1CE4E5B9,
		^s + 0x94D049BB133111EB,
	}}
}

// NewXoshiro256SplitMix fills the state from a SplitMix64 stream started at seed.
func NewXoshiro256SplitMix(seed int64) *Xoshiro256 {
	sm := uint64(seed)
	x := &Xoshiro256{}
	for i := range x.state {
		x.state[i] = splitMix64(&sm)
	}
	if x.state == [4]uint64{} {
		x.state[0] = splitMixGamma
	}
	return x
}

// Uint64 returns the next value. It runs in constant time.
func (x *Xoshiro256) Uint64() uint64 {
	s := &x.state
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

// Uint64N returns Uint64() % max. See boundedModulo for the bias this implies.
func (x *Xoshiro256) Uint64N(max uint64) (uint64, error) {
	if max == 0 {
		return 0, invalidArgument("bounded draw with max=0")
	}
	return boundedModulo(x.Uint64(), max), nil
}

// Float64 returns a uniformly distributed float64 in [0.0, 1.0) built from 53 random bits.
func (x *Xoshiro256) Float64() float64 {
	return float64FromBits(x.Uint64())
}

// Clone returns an independent copy of the generator. Both copies produce
// the same sequence from here on.
func (x *Xoshiro256) Clone() *Xoshiro256 {
	c := *x
	return &c
}

var xoshiro256Jump = [4]uint64{0x180EC6D33CFD0ABA, 0xD5A61266F0C9392C, 0xA9582618E03FC9AA, 0x39ABDC4529B1661C}

// Jump advances the generator by 2^128 calls to Uint64. Calling Clone followed
// by Jump yields 2^128 non-overlapping subsequences for parallel use.
func (x *Xoshiro256) Jump() {
	var s0, s1, s2, s3 uint64
	for _, j := range xoshiro256Jump {
		for b := range 64 {
			if j&(uint64(1)<<b) != 0 {
				s0 ^= x.state[0]
				s1 ^= x.state[1]
				s2 ^= x.state[2]
				s3 ^= x.state[3]
			}
			x.Uint64()
		}
	}
	x.state = [4]uint64{s0, s1, s2, s3}
}
