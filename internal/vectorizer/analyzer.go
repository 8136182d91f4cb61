package vectorizer

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"textenc/internal/domain"
)

var (
	// ErrEmptyVocabulary is returned when no document yields a single term.
	ErrEmptyVocabulary = errors.New("empty vocabulary; perhaps the documents only contain stop words")
	// ErrNoTermsRemain is returned when document-frequency bounds prune every term.
	ErrNoTermsRemain = errors.New("after pruning, no terms remain; try a lower min_df or a higher max_df")
)

// tokenPattern keeps runs of two or more letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// analyze splits a normalized document into n-gram features.
func analyze(doc string, ngrams domain.NgramRange) []string {
	tokens := tokenPattern.FindAllString(doc, -1)
	lo, hi := ngrams.Min, ngrams.Max
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	if lo == 1 && hi == 1 {
		return tokens
	}
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func analyzeCorpus(corpus []string, ngrams domain.NgramRange) [][]string {
	out := make([][]string, len(corpus))
	for i, doc := range corpus {
		out[i] = analyze(doc, ngrams)
	}
	return out
}

// vocabulary maps terms to columns; terms are sorted alphabetically.
type vocabulary struct {
	terms []string
	index map[string]int
}

// buildVocabulary applies document-frequency bounds and the max-features cap.
// Capping keeps the terms with the highest corpus frequency, ties alphabetical.
func buildVocabulary(docs [][]string, cfg domain.EncodingConfig) (vocabulary, error) {
	df := make(map[string]int)
	tf := make(map[string]int)
	for _, features := range docs {
		seen := make(map[string]struct{}, len(features))
		for _, f := range features {
			tf[f]++
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			df[f]++
		}
	}
	if len(df) == 0 {
		return vocabulary{}, ErrEmptyVocabulary
	}

	minDocs := cfg.MinDF
	if minDocs < 1 {
		minDocs = 1
	}
	maxDF := cfg.MaxDF
	if maxDF <= 0 {
		maxDF = 1
	}
	maxDocs := maxDF * float64(len(docs))
	if maxDocs < float64(minDocs) {
		return vocabulary{}, fmt.Errorf("max_df=%.2f corresponds to fewer documents than min_df=%d", maxDF, minDocs)
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= minDocs && float64(n) <= maxDocs {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return vocabulary{}, ErrNoTermsRemain
	}

	if cfg.MaxFeatures > 0 && len(terms) > cfg.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:cfg.MaxFeatures]
	}
	sort.Strings(terms)

	v := vocabulary{terms: terms, index: make(map[string]int, len(terms))}
	for i, term := range terms {
		v.index[term] = i
	}
	return v, nil
}

// countRows counts vocabulary terms per document, clipping to 1 when binary.
func countRows(docs [][]string, vocab vocabulary, binary bool) []map[int]float64 {
	rows := make([]map[int]float64, len(docs))
	for i, features := range docs {
		row := make(map[int]float64)
		for _, f := range features {
			idx, ok := vocab.index[f]
			if !ok {
				continue
			}
			if binary {
				row[idx] = 1
			} else {
				row[idx]++
			}
		}
		rows[i] = row
	}
	return rows
}
