package discrepancy

// Engine is the generation contract shared by all deterministic generators
// in this package. Engines are not thread-safe: a single Engine must only be
// advanced by one goroutine at a time. Use Clone or Jump (where available)
// to hand each worker its own stream.
type Engine interface {
	// Uint64 advances the engine one step and returns 64 pseudo-random bits.
	Uint64() uint64
	// Uint64N returns a value in [0, max). It fails with ErrInvalidArgument for max == 0.
	Uint64N(max uint64) (uint64, error)
	// Float64 returns a value in the half-open interval [0.0, 1.0).
	Float64() float64
}

const float64Scale = 1.0 / (1 << 53)

// float64FromBits maps the upper 53 bits of x to [0.0, 1.0).
// The result is never 1.0, never negative and never NaN.
func float64FromBits(x uint64) float64 {
	return float64(x>>11) * float64Scale
}

// boundedModulo reduces x into [0, max) with a plain remainder.
// For max values that do not divide 2^64 evenly the low residues are
// slightly more likely (at most max/2^64 relative bias). Kept for
// stream compatibility with the reference generators.
// Callers reject max == 0 before drawing x so that a failed call does not
// consume a value from the stream.
func boundedModulo(x, max uint64) uint64 {
	return x % max
}

const splitMixGamma = 0x9E3779B97F4A7C15

// splitMix64 advances *s by the golden gamma and returns the mixed value.
// See https://prng.di.unimi.it/splitmix64.c
func splitMix64(s *uint64) uint64 {
	*s += splitMixGamma
	z := *s
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
