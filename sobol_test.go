package discrepancy

import (
	"testing"

	set3 "github.com/TomTonic/Set3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSobolUnscrambledFirstPoints(t *testing.T) {
	want := [][]float64{
		{0, 0, 0, 0},
		{0.5, 0.5, 0.5, 0.5},
		{0.75, 0.25, 0.25, 0.25},
		{0.25, 0.75, 0.75, 0.75},
		{0.375, 0.375, 0.625, 0.875},
		{0.875, 0.875, 0.125, 0.375},
		{0.625, 0.125, 0.875, 0.625},
		{0.125, 0.625, 0.375, 0.125},
	}
	s, err := NewSobol(4, false, nil)
	require.NoError(t, err)
	p, err := s.Draw(len(want))
	require.NoError(t, err)
	for i, w := range want {
		assert.Equal(t, w, p.Row(i), "point %d", i)
	}
}

// TestSobolStratification checks the (0,m,1)-net property in every coordinate: each of the
// 2^m intervals [k/2^m, (k+1)/2^m) holds exactly one of the first 2^m points.
func TestSobolStratification(t *testing.T) {
	const m = 10
	for _, scramble := range []bool{false, true} {
		s, err := NewSobol(SobolMaxDim, scramble, NewXoshiro256(2024))
		require.NoError(t, err)
		p, err := s.DrawBase2(m)
		require.NoError(t, err)
		for j := range SobolMaxDim {
			seen := make([]bool, 1<<m)
			for i := range 1 << m {
				k := int(p.At(i, j) * (1 << m))
				if seen[k] {
					t.Fatalf("scramble=%v dim %d: interval %d hit twice", scramble, j, k)
				}
				seen[k] = true
			}
		}
	}
}

// TestSobolTwoDimensionalNet checks that the first two coordinates form a (0,m,2)-net:
// every elementary box of area 2^-m holds exactly one point.
func TestSobolTwoDimensionalNet(t *testing.T) {
	const m = 8
	s, err := NewSobol(2, true, NewXoroshiro128(3))
	require.NoError(t, err)
	p, err := s.DrawBase2(m)
	require.NoError(t, err)
	for a := 0; a <= m; a++ {
		bx, by := 1<<a, 1<<(m-a)
		seen := make(map[[2]int]bool)
		for i := range 1 << m {
			box := [2]int{int(p.At(i, 0) * float64(bx)), int(p.At(i, 1) * float64(by))}
			assert.False(t, seen[box], "a=%d box %v hit twice", a, box)
			seen[box] = true
		}
	}
}

func TestSobolScrambleIsDeterministic(t *testing.T) {
	s1, err := NewSobol(5, true, NewXoshiro256(9))
	require.NoError(t, err)
	s2, err := NewSobol(5, true, NewXoshiro256(9))
	require.NoError(t, err)
	s3, err := NewSobol(5, true, NewXoshiro256(10))
	require.NoError(t, err)
	a, b, c := make([]float64, 5), make([]float64, 5), make([]float64, 5)
	differs := false
	for range 100 {
		require.NoError(t, s1.Next(a))
		require.NoError(t, s2.Next(b))
		require.NoError(t, s3.Next(c))
		assert.Equal(t, a, b)
		if a[0] != c[0] {
			differs = true
		}
	}
	assert.True(t, differs, "different scramble seeds should give different points")
}

func TestSobolPointsAreDistinct(t *testing.T) {
	s, err := NewSobol(1, true, NewXoshiro256(1))
	require.NoError(t, err)
	p, err := s.Draw(1 << 16)
	require.NoError(t, err)
	set := set3.EmptyWithCapacity[float64](1 << 17)
	for i := range 1 << 16 {
		set.Add(p.At(i, 0))
	}
	assert.Equal(t, uint32(1<<16), set.Size())
}

func TestSobolRejectsBadArguments(t *testing.T) {
	_, err := NewSobol(0, false, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewSobol(SobolMaxDim+1, false, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewSobol(2, true, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	s, err := NewSobol(2, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Dim())
	assert.ErrorIs(t, s.Next(make([]float64, 3)), ErrDimensionMismatch)
	_, err = s.Draw(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.DrawBase2(31)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
