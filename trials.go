package discrepancy

import (
	"context"
	"fmt"
	"strings"
)

// PointSource names a generator of point sets.
type PointSource int

// Point sources. PRNG sources draw uniform points; Sobol sources draw low-discrepancy points.
const (
	SourceXoshiro256 PointSource = iota + 1
	SourceXoroshiro128
	// SourceXorshift uses the DPRNG generator.
	SourceXorshift
	// SourceSobol rescrambles the sequence for every stream.
	SourceSobol
	// SourceSobolUnscrambled yields the same points for every stream.
	SourceSobolUnscrambled
)

var pointSourceNames = map[PointSource]string{
	SourceXoshiro256:       "xoshiro256",
	SourceXoroshiro128:     "xoroshiro128",
	SourceXorshift:         "xorshift",
	SourceSobol:            "sobol",
	SourceSobolUnscrambled: "sobol-unscrambled",
}

func (s PointSource) String() string {
	if name, ok := pointSourceNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParsePointSource is the inverse of PointSource.String, ignoring case and surrounding space.
func ParsePointSource(s string) (PointSource, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for src, name := range pointSourceNames {
		if name == s {
			return src, nil
		}
	}
	return 0, invalidArgument("unknown point source %q", s)
}

// Engine returns the engine behind stream number stream of a PRNG source. Stream 0 of
// xoshiro256 and xoroshiro128 is the plain engine built from seed and stream k is that engine
// after k jumps, so streams never overlap and can be created in any order. For xorshift,
// stream k starts from the (k+1)-th SplitMix64 output of seed. Sobol sources draw their
// scrambling from the xoshiro256 stream of the same number.
func (s PointSource) Engine(seed int64, stream int) (Engine, error) {
	if stream < 0 {
		return nil, invalidArgument("negative stream %d", stream)
	}
	switch s {
	case SourceXoshiro256, SourceSobol, SourceSobolUnscrambled:
		e := NewXoshiro256(seed)
		for range stream {
			e.Jump()
		}
		return e, nil
	case SourceXoroshiro128:
		e := NewXoroshiro128(seed)
		for range stream {
			e.Jump()
		}
		return e, nil
	case SourceXorshift:
		sm := uint64(seed)
		var state uint64
		for range stream + 1 {
			state = splitMix64(&sm)
		}
		return NewDPRNG(state), nil
	}
	return nil, invalidArgument("unknown point source %d", int(s))
}

// Generate returns n points of dimension d from stream number stream of the source.
// See Engine for how streams are derived.
func (s PointSource) Generate(seed int64, stream, n, d int) (*PointSet, error) {
	if s == SourceSobolUnscrambled {
		return GenerateSobolPoints(n, d, false, 0)
	}
	e, err := s.Engine(seed, stream)
	if err != nil {
		return nil, err
	}
	if s != SourceSobol {
		return GeneratePoints(e, n, d)
	}
	if err := checkShape(n, d); err != nil {
		return nil, err
	}
	seq, err := NewSobol(d, true, e)
	if err != nil {
		return nil, err
	}
	return seq.Draw(n)
}

// RunTrials generates trials independent point sets of size n×d from src (streams
// 0..trials-1) and returns the discrepancy of each. Trial t samples its candidates with
// seed opts.Seed+t. On cancellation the values computed so far are returned with the error.
func RunTrials(ctx context.Context, src PointSource, seed int64, n, d, trials int, opts Options) ([]float64, error) {
	if trials < 1 {
		return nil, invalidArgument("number of trials must be at least 1, got %d", trials)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	values := make([]float64, 0, trials)
	for t := range trials {
		points, err := src.Generate(seed, t, n, d)
		if err != nil {
			return values, err
		}
		o := opts
		o.Seed = opts.Seed + int64(t)
		r, err := Run(ctx, points, o)
		if err != nil {
			return values, fmt.Errorf("trial %d: %w", t, err)
		}
		values = append(values, r.Discrepancy)
	}
	return values, nil
}
