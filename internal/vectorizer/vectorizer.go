package vectorizer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// Vectorizer fits a strategy to a corpus of normalized documents.
// The returned vocabulary is nil for strategies without an invertible one.
type Vectorizer interface {
	Strategy() domain.Strategy
	FitTransform(corpus []string, cfg domain.EncodingConfig) (mat.Matrix, []string, error)
}

// Registry resolves a strategy to its Vectorizer.
type Registry struct {
	byStrategy map[domain.Strategy]Vectorizer
}

// NewRegistry registers vs; a later vectorizer replaces an earlier one with the same strategy.
func NewRegistry(vs ...Vectorizer) *Registry {
	r := &Registry{byStrategy: make(map[domain.Strategy]Vectorizer, len(vs))}
	for _, v := range vs {
		r.byStrategy[v.Strategy()] = v
	}
	return r
}

// DefaultRegistry holds the count, tfidf, onehot and hashing strategies.
func DefaultRegistry() *Registry {
	return NewRegistry(NewCount(), NewTFIDF(), NewOneHot(), NewHashing())
}

// Get returns the Vectorizer registered for s.
func (r *Registry) Get(s domain.Strategy) (Vectorizer, error) {
	v, ok := r.byStrategy[s]
	if !ok {
		return nil, fmt.Errorf("no vectorizer registered for strategy %q", s)
	}
	return v, nil
}
