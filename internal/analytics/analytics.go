// Package analytics derives read-only views from a finished encoding:
// pairwise cosine similarity, a 2-D projection and feature importance.
// Each view reports whether it applies instead of failing on small inputs.
package analytics

import (
	"textenc/internal/domain"
)

// Status tells a caller how a view was computed.
type Status string

const (
	StatusOK             Status = "ok"
	StatusNotApplicable  Status = "not_applicable"
	StatusPairSimilarity Status = "pair_similarity"
	StatusFailed         Status = "failed"
)

// Options configures Analyze.
type Options struct {
	TopFeatures int
	Projector   *Projector
}

// Report bundles the three views of one encoding.
type Report struct {
	Similarity SimilarityResult
	Projection ProjectionResult
	Importance ImportanceResult
}

// Analyze computes every view of enc. A failing projection is recorded in
// the report and does not affect the other views.
func Analyze(enc *domain.Encoding, opts Options) Report {
	projector := opts.Projector
	if projector == nil {
		projector = NewProjector(DefaultTSNE())
	}
	return Report{
		Similarity: Similarity(enc),
		Projection: projector.Project(enc),
		Importance: Importance(enc, opts.TopFeatures),
	}
}
