package discrepancy

// DPRNG is a small Deterministic Pseudo-Random Number Generator based on the xorshift* algorithm
// (see https://en.wikipedia.org/wiki/Xorshift#xorshift*).
// It has a period of 2^64-1 and a memory footprint of 16 bytes. It is used where a cheap
// deterministic stream suffices (pivot selection) and is offered as an additional point source.
// This random number generator is not cryptographically secure.
// This random number generator is not thread-safe.
// The state must not be zero.
type DPRNG struct {
	State uint64
	Round uint64 // for debugging purposes
}

// NewDPRNG returns a DPRNG starting at seed. A zero seed would lock the
// generator at zero forever, so it is replaced by a fixed non-zero constant.
func NewDPRNG(seed uint64) *DPRNG {
	if seed == 0 {
		seed = splitMixGamma
	}
	return &DPRNG{State: seed}
}

// Uint64 returns the next pseudo-random number in the sequence.
// It has a constant runtime and a high probability to be inlined by the compiler.
func (thisState *DPRNG) Uint64() uint64 {
	x := thisState.State
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	thisState.State = x
	thisState.Round++
	return x * 0x2545F4914F6CDD1D
}

// Uint64N returns Uint64() % max.
func (thisState *DPRNG) Uint64N(max uint64) (uint64, error) {
	if max == 0 {
		return 0, invalidArgument("bounded draw with max=0")
	}
	return boundedModulo(thisState.Uint64(), max), nil
}

// Float64 returns a value in [0.0, 1.0).
func (thisState *DPRNG) Float64() float64 {
	return float64FromBits(thisState.Uint64())
}
