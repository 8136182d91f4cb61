package vectorizer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// Sparse is an immutable compressed-sparse-row matrix. It satisfies
// mat.Matrix and mat.RowNonZeroDoer so that consumers can treat it like
// any dense gonum matrix.
type Sparse struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

var (
	_ mat.Matrix         = (*Sparse)(nil)
	_ mat.RowNonZeroDoer = (*Sparse)(nil)
)

// NewSparse builds a Sparse matrix with one row per map. Zero entries are dropped.
func NewSparse(cols int, rows []map[int]float64) *Sparse {
	s := &Sparse{rows: len(rows), cols: cols, indptr: make([]int, len(rows)+1)}
	for i, row := range rows {
		idx := make([]int, 0, len(row))
		for j, v := range row {
			if v != 0 {
				idx = append(idx, j)
			}
		}
		sort.Ints(idx)
		for _, j := range idx {
			s.indices = append(s.indices, j)
			s.data = append(s.data, row[j])
		}
		s.indptr[i+1] = len(s.indices)
	}
	return s
}

func (s *Sparse) Dims() (r, c int) { return s.rows, s.cols }

func (s *Sparse) At(i, j int) float64 {
	if i < 0 || i >= s.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= s.cols {
		panic(mat.ErrColAccess)
	}
	lo, hi := s.indptr[i], s.indptr[i+1]
	k := lo + sort.SearchInts(s.indices[lo:hi], j)
	if k < hi && s.indices[k] == j {
		return s.data[k]
	}
	return 0
}

func (s *Sparse) T() mat.Matrix { return mat.Transpose{Matrix: s} }

// DoRowNonZero calls fn for every stored entry of row i in column order.
func (s *Sparse) DoRowNonZero(i int, fn func(i, j int, v float64)) {
	if i < 0 || i >= s.rows {
		panic(mat.ErrRowAccess)
	}
	for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
		fn(i, s.indices[k], s.data[k])
	}
}

// NNZ returns the number of stored non-zero entries.
func (s *Sparse) NNZ() int { return len(s.data) }

// normalizeRows scales each row in place to unit l1 or l2 norm.
func normalizeRows(rows []map[int]float64, norm domain.Norm) {
	if norm == domain.NormNone {
		return
	}
	for _, row := range rows {
		total := 0.0
		for _, v := range row {
			if norm == domain.NormL1 {
				total += math.Abs(v)
			} else {
				total += v * v
			}
		}
		if norm != domain.NormL1 {
			total = math.Sqrt(total)
		}
		if total == 0 {
			continue
		}
		for j, v := range row {
			row[j] = v / total
		}
	}
}
