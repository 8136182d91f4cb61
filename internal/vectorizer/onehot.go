package vectorizer

import (
	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// OneHot marks term presence. It is Count with Binary forced on whatever the
// caller asked for: one-hot encoding is binary by definition.
type OneHot struct {
	count Count
}

func NewOneHot() *OneHot { return &OneHot{} }

func (o *OneHot) Strategy() domain.Strategy { return domain.StrategyOneHot }

func (o *OneHot) FitTransform(corpus []string, cfg domain.EncodingConfig) (mat.Matrix, []string, error) {
	cfg.Binary = true
	return o.count.FitTransform(corpus, cfg)
}
