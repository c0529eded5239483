package discrepancy

import (
	"math/bits"

	"gonum.org/v1/gonum/mat"
)

const (
	// SobolMaxDim is the largest dimension for which direction numbers are tabulated.
	SobolMaxDim = len(joeKuo) + 1

	sobolBits      = 32
	sobolMaxPoints = uint64(1) << sobolBits
	sobolScale     = 1.0 / float64(sobolMaxPoints)
)

// Primitive polynomials and initial direction numbers from
// S. Joe and F. Y. Kuo, "Constructing Sobol sequences with better two-dimensional
// projections" (new-joe-kuo-6.21201), dimensions 2..21. Dimension 1 is the van der Corput sequence.
var joeKuo = [...]struct {
	s uint   // degree
	a uint32 // interior coefficients
	m []uint32
}{
	{1, 0, []uint32{1}},
	{2, 1, []uint32{1, 3}},
	{3, 1, []uint32{1, 3, 1}},
	{3, 2, []uint32{1, 1, 1}},
	{4, 1, []uint32{1, 1, 3, 3}},
	{4, 4, []uint32{1, 3, 5, 13}},
	{5, 2, []uint32{1, 1, 5, 5, 17}},
	{5, 4, []uint32{1, 1, 5, 5, 5}},
	{5, 7, []uint32{1, 1, 7, 11, 19}},
	{5, 11, []uint32{1, 1, 5, 1, 1}},
	{5, 13, []uint32{1, 1, 1, 3, 11}},
	{5, 14, []uint32{1, 3, 5, 5, 31}},
	{6, 1, []uint32{1, 3, 3, 9, 7, 49}},
	{6, 13, []uint32{1, 1, 1, 15, 21, 21}},
	{6, 16, []uint32{1, 3, 1, 13, 27, 49}},
	{6, 19, []uint32{1, 1, 1, 15, 7, 5}},
	{6, 22, []uint32{1, 3, 1, 15, 13, 25}},
	{6, 25, []uint32{1, 1, 5, 5, 19, 61}},
	{7, 1, []uint32{1, 3, 7, 11, 23, 15, 103}},
	{7, 4, []uint32{1, 3, 7, 13, 13, 15, 69}},
}

// Sobol generates a base-2 digital (t,s)-sequence in Gray-code order with 32 bits of resolution.
// Unscrambled, the first point is the origin and every prefix of length 2^m is a (t,m,s)-net.
// Scrambling applies a random linear matrix scramble followed by a random digital shift;
// it keeps the net property while making the sequence usable for randomized estimates.
// A Sobol value is not thread-safe.
type Sobol struct {
	dim   int
	v     [][sobolBits]uint32
	x     []uint32
	index uint64
}

// NewSobol returns a sequence of dimension d. When scramble is set, the scramble matrices
// and the shift are drawn from e, so the same engine state gives the same sequence.
func NewSobol(d int, scramble bool, e Engine) (*Sobol, error) {
	if d < 1 || d > SobolMaxDim {
		return nil, invalidArgument("sobol dimension %d outside [1,%d]", d, SobolMaxDim)
	}
	if scramble && e == nil {
		return nil, invalidArgument("scrambled sobol sequence needs an engine")
	}
	s := &Sobol{
		dim: d,
		v:   make([][sobolBits]uint32, d),
		x:   make([]uint32, d),
	}
	for j := range d {
		s.v[j] = directionNumbers(j)
	}
	if scramble {
		for j := range d {
			linearScramble(&s.v[j], e)
		}
		for j := range d {
			s.x[j] = uint32(e.Uint64() >> 32)
		}
	}
	return s, nil
}

func directionNumbers(j int) (v [sobolBits]uint32) {
	if j == 0 {
		for i := range sobolBits {
			v[i] = 1 << (sobolBits - 1 - i)
		}
		return v
	}
	p := joeKuo[j-1]
	s := int(p.s)
	for i := range s {
		v[i] = p.m[i] << (sobolBits - 1 - i)
	}
	for i := s; i < sobolBits; i++ {
		w := v[i-s] ^ (v[i-s] >> p.s)
		for k := 1; k < s; k++ {
			if (p.a>>(s-1-k))&1 == 1 {
				w ^= v[i-k]
			}
		}
		v[i] = w
	}
	return v
}

// linearScramble multiplies every direction number by a random lower-triangular
// binary matrix with unit diagonal. Digit i of a direction number is bit 31-i.
func linearScramble(v *[sobolBits]uint32, e Engine) {
	var rows [sobolBits]uint32
	for i := range sobolBits {
		lower := ^uint32(0) << (sobolBits - i) // digits k < i; zero for i == 0
		rows[i] = uint32(e.Uint64())&lower | 1<<(sobolBits-1-i)
	}
	for k := range v {
		var w uint32
		for i, r := range rows {
			w |= uint32(bits.OnesCount32(v[k]&r)&1) << (sobolBits - 1 - i)
		}
		v[k] = w
	}
}

// Dim returns the dimension of the sequence.
func (s *Sobol) Dim() int { return s.dim }

// Next writes the next point into dst, which must have length Dim().
func (s *Sobol) Next(dst []float64) error {
	if len(dst) != s.dim {
		return dimensionMismatch(s.dim, len(dst))
	}
	if s.index >= sobolMaxPoints {
		return invalidArgument("sobol sequence exhausted after %d points", sobolMaxPoints)
	}
	for j, x := range s.x {
		dst[j] = float64(x) * sobolScale
	}
	s.index++
	if s.index < sobolMaxPoints {
		c := bits.TrailingZeros64(s.index)
		for j := range s.x {
			s.x[j] ^= s.v[j][c]
		}
	}
	return nil
}

// Draw returns the next n points as a PointSet.
func (s *Sobol) Draw(n int) (*PointSet, error) {
	if n < 1 {
		return nil, invalidArgument("cannot draw %d points", n)
	}
	if uint64(n) > sobolMaxPoints-s.index {
		return nil, invalidArgument("sobol sequence has only %d points left", sobolMaxPoints-s.index)
	}
	data := make([]float64, n*s.dim)
	for i := range n {
		if err := s.Next(data[i*s.dim : (i+1)*s.dim]); err != nil {
			return nil, err
		}
	}
	return &PointSet{m: mat.NewDense(n, s.dim, data)}, nil
}

// DrawBase2 returns the next 2^m points, which keeps the balance properties of the sequence.
func (s *Sobol) DrawBase2(m int) (*PointSet, error) {
	if m < 0 || m > 30 {
		return nil, invalidArgument("base-2 exponent %d outside [0,30]", m)
	}
	return s.Draw(1 << m)
}
