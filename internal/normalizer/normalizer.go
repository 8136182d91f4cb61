package normalizer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"textenc/internal/domain"
)

// Punctuation is the fixed ASCII punctuation set stripped before tokenization.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalizer applies the configured text transformations to a document.
type Normalizer struct {
	res *Resources
}

// New creates a Normalizer over res. A nil or partial bundle is accepted here
// and reported by Normalize.
func New(res *Resources) *Normalizer {
	return &Normalizer{res: res}
}

// Ready reports whether the linguistic resources are loaded.
func (n *Normalizer) Ready() bool {
	return n != nil && n.res.ready()
}

// Normalize lowercases, strips punctuation, tokenizes, drops stopwords and
// lemmatizes document, in that order, according to cfg.
func (n *Normalizer) Normalize(document string, cfg domain.PreprocessingConfig) ([]string, error) {
	if !n.Ready() {
		return nil, fmt.Errorf("%w: tokenizer, stopwords and lemmatizer must be loaded before normalizing", domain.ErrResourceUnavailable)
	}
	text := document
	if cfg.Lowercase {
		// a Caser is stateful; one per call
		text = cases.Lower(language.English).String(text)
	}
	if cfg.RemovePunctuation {
		text = stripPunctuation(text)
	}
	raw := n.res.Tokenizer.Tokenize(text)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if cfg.RemoveStopwords && n.res.Stopwords.Contains(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	if cfg.Lemmatize {
		for i, tok := range tokens {
			tokens[i] = n.res.Lemmatizer.Lemma(tok)
		}
	}
	return tokens, nil
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, s)
}
