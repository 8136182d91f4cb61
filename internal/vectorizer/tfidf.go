package vectorizer

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// TFIDF weights term frequencies by smoothed inverse document frequency
// and normalizes each document row.
type TFIDF struct{}

func NewTFIDF() *TFIDF { return &TFIDF{} }

func (t *TFIDF) Strategy() domain.Strategy { return domain.StrategyTFIDF }

func (t *TFIDF) FitTransform(corpus []string, cfg domain.EncodingConfig) (mat.Matrix, []string, error) {
	docs := analyzeCorpus(corpus, cfg.NgramRange)
	vocab, err := buildVocabulary(docs, cfg)
	if err != nil {
		return nil, nil, err
	}
	rows := countRows(docs, vocab, cfg.Binary)

	var idf []float64
	if cfg.UseIDF {
		idf = inverseDocumentFrequency(rows, len(vocab.terms))
	}
	for _, row := range rows {
		for j, tf := range row {
			if cfg.SublinearTF {
				tf = 1 + math.Log(tf)
			}
			if idf != nil {
				tf *= idf[j]
			}
			row[j] = tf
		}
	}
	normalizeRows(rows, cfg.EffectiveNorm())
	return NewSparse(len(vocab.terms), rows), vocab.terms, nil
}

// inverseDocumentFrequency computes ln((1+n)/(1+df))+1 per column.
func inverseDocumentFrequency(rows []map[int]float64, cols int) []float64 {
	df := make([]float64, cols)
	for _, row := range rows {
		for j := range row {
			df[j]++
		}
	}
	n := float64(len(rows))
	idf := make([]float64, cols)
	for j := range idf {
		idf[j] = math.Log((1+n)/(1+df[j])) + 1.0
	}
	return idf
}
