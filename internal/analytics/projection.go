package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// Point is one document placed on the 2-D projection.
type Point struct {
	X, Y  float64
	Label string
}

// ProjectionResult is the outcome of Projector.Project. Status tells apart a
// projection that does not apply, a two-document similarity substitute and a
// projection that failed.
type ProjectionResult struct {
	Status     Status
	Reason     string
	Points     []Point
	Perplexity float64
	Similarity float64
	Err        error
}

// Embedder reduces the rows of x to two dimensions.
type Embedder interface {
	Embed(x *mat.Dense, perplexity float64) (*mat.Dense, error)
}

// Projector places documents on a plane for visualization.
type Projector struct {
	embedder Embedder
}

func NewProjector(e Embedder) *Projector {
	return &Projector{embedder: e}
}

// Perplexity returns n/5 clamped to [5, 30] and kept below n.
func Perplexity(n int) float64 {
	p := min(30, max(5, n/5))
	if p >= n {
		p = n - 1
	}
	return float64(p)
}

// Project embeds the document rows of enc. Fewer than two documents is not
// applicable and exactly two yields their cosine similarity without running
// the embedder. Embedder failures, including panics, come back as
// StatusFailed with an error wrapping domain.ErrProjection.
func (p *Projector) Project(enc *domain.Encoding) (res ProjectionResult) {
	n, _ := enc.Dims()
	switch {
	case n < 2:
		return ProjectionResult{
			Status: StatusNotApplicable,
			Reason: "projection needs at least two documents",
		}
	case n == 2:
		sim := CosineMatrix(enc.Matrix)
		return ProjectionResult{
			Status:     StatusPairSimilarity,
			Reason:     "two documents: showing their cosine similarity instead of a projection",
			Similarity: sim.At(0, 1),
		}
	}

	perplexity := Perplexity(n)
	fail := func(err error) ProjectionResult {
		return ProjectionResult{
			Status:     StatusFailed,
			Reason:     fmt.Sprintf("could not compute projection: %v", err),
			Perplexity: perplexity,
			Err:        fmt.Errorf("%w: %w", domain.ErrProjection, err),
		}
	}
	defer func() {
		if r := recover(); r != nil {
			res = fail(fmt.Errorf("embedder panic: %v", r))
		}
	}()

	y, err := p.embedder.Embed(mat.DenseCopyOf(enc.Matrix), perplexity)
	if err != nil {
		return fail(err)
	}
	if r, c := y.Dims(); r != n || c != 2 {
		return fail(fmt.Errorf("embedder returned %dx%d coordinates for %d documents", r, c, n))
	}
	labels := enc.Labels()
	points := make([]Point, n)
	for i := range points {
		x, yy := y.At(i, 0), y.At(i, 1)
		if math.IsNaN(x) || math.IsNaN(yy) || math.IsInf(x, 0) || math.IsInf(yy, 0) {
			return fail(fmt.Errorf("non-finite coordinate for %s", labels[i]))
		}
		points[i] = Point{X: x, Y: yy, Label: labels[i]}
	}
	return ProjectionResult{Status: StatusOK, Points: points, Perplexity: perplexity}
}
