package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball/english"
)

// Tokenizer splits a string into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Stopwords reports whether a token is a stopword.
type Stopwords interface {
	Contains(token string) bool
}

// Lemmatizer maps a token to its base form.
type Lemmatizer interface {
	Lemma(token string) string
}

// Resources bundles the read-only linguistic data used by a Normalizer.
// It is loaded once and may be shared between goroutines.
type Resources struct {
	Tokenizer  Tokenizer
	Stopwords  Stopwords
	Lemmatizer Lemmatizer
}

// LoadResources returns the English resource bundle. Loading the lemma
// dictionary is the expensive part; load once and share the result.
func LoadResources() (*Resources, error) {
	lemmatizer, err := NewDictionaryLemmatizer()
	if err != nil {
		return nil, err
	}
	return &Resources{
		Tokenizer:  NewWordTokenizer(),
		Stopwords:  EnglishStopwords{},
		Lemmatizer: lemmatizer,
	}, nil
}

func (r *Resources) ready() bool {
	return r != nil && r.Tokenizer != nil && r.Stopwords != nil && r.Lemmatizer != nil
}

// WordTokenizer extracts words (with inner apostrophes), numbers and
// standalone punctuation runes.
type WordTokenizer struct {
	pattern *regexp.Regexp
}

func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{
		pattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+(?:[.,]\p{N}+)*|[^\s\p{L}\p{N}]`),
	}
}

func (t *WordTokenizer) Tokenize(text string) []string {
	return t.pattern.FindAllString(text, -1)
}

// EnglishStopwords is the Snowball English stopword list. Entries are lowercase.
type EnglishStopwords struct{}

func (EnglishStopwords) Contains(token string) bool {
	return english.IsStopWord(token)
}

// DictionaryLemmatizer maps lowercase tokens to their English dictionary
// base form. Unknown words and tokens carrying uppercase letters are
// returned unchanged, so that lemmatization never performs case folding.
type DictionaryLemmatizer struct {
	dict *golem.Lemmatizer
}

func NewDictionaryLemmatizer() (*DictionaryLemmatizer, error) {
	g, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemma dictionary: %w", err)
	}
	return &DictionaryLemmatizer{dict: g}, nil
}

func (l *DictionaryLemmatizer) Lemma(token string) string {
	if token == "" || strings.ToLower(token) != token {
		return token
	}
	if lemma := l.dict.Lemma(token); lemma != "" {
		return lemma
	}
	return token
}
