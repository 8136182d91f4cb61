package vectorizer

import (
	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// Count is the bag-of-words strategy: raw term frequencies per document.
type Count struct{}

func NewCount() *Count { return &Count{} }

func (c *Count) Strategy() domain.Strategy { return domain.StrategyCount }

func (c *Count) FitTransform(corpus []string, cfg domain.EncodingConfig) (mat.Matrix, []string, error) {
	docs := analyzeCorpus(corpus, cfg.NgramRange)
	vocab, err := buildVocabulary(docs, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewSparse(len(vocab.terms), countRows(docs, vocab, cfg.Binary)), vocab.terms, nil
}
