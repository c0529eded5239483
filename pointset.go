package discrepancy

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PointSet is an immutable (n × d) matrix of points, n ≥ 1 and d ≥ 1, meant to lie in [0,1]^d.
// Values outside the unit cube are allowed; see CheckDomain and Clip.
// A PointSet is owned by whoever generated or loaded it. Consumers only read it.
type PointSet struct {
	m *mat.Dense
}

// NewPointSet copies rows into a new PointSet. All rows must have the same, non-zero length.
func NewPointSet(rows [][]float64) (*PointSet, error) {
	m, err := denseFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &PointSet{m: m}, nil
}

// PointSetFromDense copies m into a new PointSet.
func PointSetFromDense(m *mat.Dense) (*PointSet, error) {
	if m == nil || m.IsEmpty() {
		return nil, invalidArgument("empty matrix")
	}
	return &PointSet{m: mat.DenseCopyOf(m)}, nil
}

// Dims returns the number of points n and the dimension d. A nil or zero PointSet has (0, 0).
func (p *PointSet) Dims() (n, d int) {
	if p == nil || p.m == nil {
		return 0, 0
	}
	return p.m.Dims()
}

// At returns coordinate j of point i.
func (p *PointSet) At(i, j int) float64 {
	return p.m.At(i, j)
}

// Row returns a copy of point i.
func (p *PointSet) Row(i int) []float64 {
	return append([]float64(nil), p.m.RawRowView(i)...)
}

// Dense returns a copy of the underlying matrix.
func (p *PointSet) Dense() *mat.Dense {
	return mat.DenseCopyOf(p.m)
}

// CheckDomain returns a *DomainWarning if any coordinate lies outside [0,1] or is NaN, or nil.
func (p *PointSet) CheckDomain() *DomainWarning {
	n, _ := p.Dims()
	var w DomainWarning
	for i := range n {
		bad := false
		for _, v := range p.m.RawRowView(i) {
			switch {
			case math.IsNaN(v):
				w.NaN++
				bad = true
			case v < 0:
				w.Below++
				bad = true
			case v > 1:
				w.Above++
				bad = true
			}
		}
		if bad {
			w.Rows++
		}
	}
	if w.Rows == 0 {
		return nil
	}
	return &w
}

// Clip returns a new PointSet with every coordinate clamped to [0,1]. NaN stays NaN.
func (p *PointSet) Clip() *PointSet {
	var c mat.Dense
	c.Apply(func(_, _ int, v float64) float64 {
		return min(max(v, 0), 1)
	}, p.m)
	return &PointSet{m: &c}
}

// AxisSummary holds the mean and population standard deviation of one coordinate.
type AxisSummary struct {
	Mean   float64
	StdDev float64
}

// AxisStats summarizes every coordinate of the point set. A uniform set in [0,1]^d has
// means near 1/2 and standard deviations near 1/sqrt(12) ≈ 0.2887.
func (p *PointSet) AxisStats() []AxisSummary {
	n, d := p.Dims()
	if n == 0 {
		return nil
	}
	out := make([]AxisSummary, d)
	col := make([]float64, n)
	for j := range d {
		mat.Col(col, j, p.m)
		mean, variance := stat.PopMeanVariance(col, nil)
		out[j] = AxisSummary{Mean: mean, StdDev: math.Sqrt(variance)}
	}
	return out
}

// CandidateSet is an (m × d) matrix of test corners x; each row defines the box [0, x].
type CandidateSet struct {
	m *mat.Dense

	// Mode is the assembly policy that produced the set (zero for hand-built sets).
	Mode Mode
	// Sampled is the number of leading rows that came from the sampler.
	Sampled int
}

// NewCandidateSet copies rows into a hand-built CandidateSet.
func NewCandidateSet(rows [][]float64) (*CandidateSet, error) {
	m, err := denseFromRows(rows)
	if err != nil {
		return nil, err
	}
	r, _ := m.Dims()
	return &CandidateSet{m: m, Sampled: r}, nil
}

// Dims returns the number of candidates m and the dimension d.
func (c *CandidateSet) Dims() (m, d int) {
	if c == nil || c.m == nil {
		return 0, 0
	}
	return c.m.Dims()
}

// Row returns a copy of candidate i.
func (c *CandidateSet) Row(i int) []float64 {
	return append([]float64(nil), c.m.RawRowView(i)...)
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, invalidArgument("no rows")
	}
	d := len(rows[0])
	if d == 0 {
		return nil, invalidArgument("rows have zero columns")
	}
	data := make([]float64, 0, len(rows)*d)
	for i, r := range rows {
		if len(r) != d {
			return nil, invalidArgument("row %d has %d columns, expected %d", i, len(r), d)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), d, data), nil
}
