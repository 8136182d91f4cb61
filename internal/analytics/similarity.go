package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// Pair is two document rows and their cosine similarity.
type Pair struct {
	I, J  int
	Score float64
}

// SimilarityResult is the documents × documents cosine similarity view.
type SimilarityResult struct {
	Status Status
	Reason string
	Matrix *mat.SymDense
	Best   Pair
}

// Similarity computes pairwise cosine similarity between documents and the
// most similar distinct pair (first in row-major order on ties).
func Similarity(enc *domain.Encoding) SimilarityResult {
	n, _ := enc.Dims()
	if n < 2 {
		return SimilarityResult{
			Status: StatusNotApplicable,
			Reason: "similarity needs at least two documents",
		}
	}
	sim := CosineMatrix(enc.Matrix)
	best := Pair{Score: math.Inf(-1)}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v := sim.At(i, j); v > best.Score {
				best = Pair{I: i, J: j, Score: v}
			}
		}
	}
	return SimilarityResult{Status: StatusOK, Matrix: sim, Best: best}
}

// CosineMatrix returns the row-wise cosine similarity of m. The diagonal is 1
// for rows with any non-zero entry; all-zero rows are 0 everywhere.
func CosineMatrix(m mat.Matrix) *mat.SymDense {
	r, c := m.Dims()
	out := mat.NewSymDense(r, nil)
	if r == 0 || c == 0 {
		return out
	}
	x := mat.DenseCopyOf(m)
	norms := make([]float64, r)
	for i := range norms {
		norms[i] = floats.Norm(x.RawRowView(i), 2)
	}
	var gram mat.SymDense
	gram.SymOuterK(1, x)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			var v float64
			switch {
			case norms[i] == 0 || norms[j] == 0:
				v = 0
			case i == j:
				v = 1
			default:
				v = math.Max(-1, math.Min(1, gram.At(i, j)/(norms[i]*norms[j])))
			}
			out.SetSym(i, j, v)
		}
	}
	return out
}
