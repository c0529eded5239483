package discrepancy

import "math/bits"

// Xoroshiro128 is the narrow (128-bit state) generator of this package, using
// the xoroshiro128++ update rule (see https://prng.di.unimi.it/xoroshiro128plusplus.c).
// It has a period of 2^128-1.
// This random number generator is deterministic in the sequence of numbers it generates.
// This random number generator is not cryptographically secure.
// This random number generator is not thread-safe.
type Xoroshiro128 struct {
	state [2]uint64
}

// NewXoroshiro128 expands seed with SplitMix64 into the two state words.
func NewXoroshiro128(seed int64) *Xoroshiro128 {
	sm := uint64(seed)
	x := &Xoroshiro128{state: [2]uint64{splitMix64(&sm), splitMix64(&sm)}}
	if x.state == [2]uint64{} {
		x.state[0] = splitMixGamma
	}
	return x
}

// Uint64 returns the next value. It runs in constant time.
func (x *Xoroshiro128) Uint64() uint64 {
	s0, s1 := x.state[0], x.state[1]
	result := bits.RotateLeft64(s0+s1, 17) + s0

	s1 ^= s0
	x.state[0] = bits.RotateLeft64(s0, 49) ^ s1 ^ (s1 << 21)
	x.state[1] = bits.RotateLeft64(s1, 28)

	return result
}

// Uint64N returns Uint64() % max. See boundedModulo for the bias this implies.
func (x *Xoroshiro128) Uint64N(max uint64) (uint64, error) {
	if max == 0 {
		return 0, invalidArgument("bounded draw with max=0")
	}
	return boundedModulo(x.Uint64(), max), nil
}

// Float64 returns a uniformly distributed float64 in [0.0, 1.0) built from 53 random bits.
func (x *Xoroshiro128) Float64() float64 {
	return float64FromBits(x.Uint64())
}

// Clone returns an independent copy of the generator.
func (x *Xoroshiro128) Clone() *Xoroshiro128 {
	c := *x
	return &c
}

var xoroshiro128Jump = [2]uint64{0x2BD7A6A6E99C2DDC, 0x0992CCAF6A6FCA05}

// Jump advances the generator by 2^64 calls to Uint64.
func (x *Xoroshiro128) Jump() {
	var s0, s1 uint64
	for _, j := range xoroshiro128Jump {
		for b := range 64 {
			if j&(uint64(1)<<b) != 0 {
				s0 ^= x.state[0]
				s1 ^= x.state[1]
			}
			x.Uint64()
		}
	}
	x.state = [2]uint64{s0, s1}
}
