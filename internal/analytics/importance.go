package analytics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// DefaultTopFeatures is the ranking length when none is requested.
const DefaultTopFeatures = 15

// FeatureScore is one feature and its summed weight across documents.
type FeatureScore struct {
	Feature string
	Column  int
	Score   float64
}

// ImportanceResult ranks features by their summed column weight.
type ImportanceResult struct {
	Status   Status
	Reason   string
	Features []FeatureScore
}

// Importance ranks the topK features by column sum, descending, keeping
// column order among equal sums. Hashed features carry no meaning and are
// reported as not applicable.
func Importance(enc *domain.Encoding, topK int) ImportanceResult {
	if !enc.Strategy.HasVocabulary() {
		return ImportanceResult{
			Status: StatusNotApplicable,
			Reason: "hashed features have no readable vocabulary",
		}
	}
	if topK <= 0 {
		topK = DefaultTopFeatures
	}
	sums := columnSums(enc.Matrix)
	scores := make([]FeatureScore, len(sums))
	for j, s := range sums {
		scores[j] = FeatureScore{Feature: enc.Features[j], Column: j, Score: s}
	}
	sort.SliceStable(scores, func(a, b int) bool { return scores[a].Score > scores[b].Score })
	if len(scores) > topK {
		scores = scores[:topK]
	}
	return ImportanceResult{Status: StatusOK, Features: scores}
}

func columnSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	sums := make([]float64, c)
	if nz, ok := m.(mat.RowNonZeroDoer); ok {
		for i := 0; i < r; i++ {
			nz.DoRowNonZero(i, func(_, j int, v float64) { sums[j] += v })
		}
		return sums
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sums[j] += m.At(i, j)
		}
	}
	return sums
}
