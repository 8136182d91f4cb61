package vectorizer

import (
	"hash/fnv"

	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
)

// DefaultHashingWidth is the feature-space size when MaxFeatures is unset.
const DefaultHashingWidth = 1024

// Hashing maps n-grams into a fixed number of columns with FNV-1a.
// Document-frequency bounds and IDF do not apply and are ignored.
type Hashing struct{}

func NewHashing() *Hashing { return &Hashing{} }

func (h *Hashing) Strategy() domain.Strategy { return domain.StrategyHashing }

func (h *Hashing) FitTransform(corpus []string, cfg domain.EncodingConfig) (mat.Matrix, []string, error) {
	width := HashingWidth(cfg)
	rows := make([]map[int]float64, len(corpus))
	for i, doc := range corpus {
		row := make(map[int]float64)
		for _, f := range analyze(doc, cfg.NgramRange) {
			idx := hashIndex(f, width)
			if cfg.Binary {
				row[idx] = 1
			} else {
				row[idx]++
			}
		}
		rows[i] = row
	}
	normalizeRows(rows, cfg.EffectiveNorm())
	return NewSparse(width, rows), nil, nil
}

// HashingWidth returns the column count the hashing strategy produces for cfg.
func HashingWidth(cfg domain.EncodingConfig) int {
	if cfg.MaxFeatures > 0 {
		return cfg.MaxFeatures
	}
	return DefaultHashingWidth
}

func hashIndex(feature string, width int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	return int(h.Sum32() % uint32(width))
}
