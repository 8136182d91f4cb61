package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PreprocessingConfig selects the text transformations applied before vectorization.
type PreprocessingConfig struct {
	Lowercase         bool `yaml:"lowercase"`
	RemovePunctuation bool `yaml:"remove_punctuation"`
	RemoveStopwords   bool `yaml:"remove_stopwords"`
	Lemmatize         bool `yaml:"lemmatize"`
}

// Strategy names a vectorization strategy.
type Strategy string

const (
	StrategyCount   Strategy = "count"
	StrategyTFIDF   Strategy = "tfidf"
	StrategyOneHot  Strategy = "onehot"
	StrategyHashing Strategy = "hashing"
)

// Strategies lists every supported strategy in display order.
var Strategies = []Strategy{StrategyCount, StrategyTFIDF, StrategyOneHot, StrategyHashing}

// ParseStrategy maps a strategy name to its Strategy value.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown encoding strategy %q", name)
}

func (s Strategy) String() string { return string(s) }

// HasVocabulary reports whether the strategy keeps an invertible vocabulary.
func (s Strategy) HasVocabulary() bool { return s != StrategyHashing }

// Norm selects the per-document normalization of weighted strategies.
type Norm string

const (
	NormL2   Norm = "l2"
	NormL1   Norm = "l1"
	NormNone Norm = "none"
)

// NgramRange is the inclusive range of n-gram lengths extracted as features.
type NgramRange struct {
	Min int `yaml:"min" validate:"gte=1"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// EncodingConfig configures one encode request.
//
// MaxFeatures of zero means no cap (and the default width for hashing).
// MinDF is an absolute document count; MaxDF is a proportion of documents.
// UseIDF and SublinearTF only affect tfidf; Norm affects tfidf and hashing.
type EncodingConfig struct {
	Strategy    Strategy   `yaml:"strategy" validate:"oneof=count tfidf onehot hashing"`
	MaxFeatures int        `yaml:"max_features" validate:"gte=0"`
	Binary      bool       `yaml:"binary"`
	NgramRange  NgramRange `yaml:"ngram_range"`
	MinDF       int        `yaml:"min_df" validate:"gte=0"`
	MaxDF       float64    `yaml:"max_df" validate:"gt=0,lte=1"`
	UseIDF      bool       `yaml:"use_idf"`
	SublinearTF bool       `yaml:"sublinear_tf"`
	Norm        Norm       `yaml:"norm" validate:"omitempty,oneof=l2 l1 none"`
}

// DefaultEncodingConfig returns the configuration used when nothing is specified.
func DefaultEncodingConfig() EncodingConfig {
	return EncodingConfig{
		Strategy:   StrategyCount,
		NgramRange: NgramRange{Min: 1, Max: 1},
		MinDF:      1,
		MaxDF:      1.0,
		UseIDF:     true,
		Norm:       NormL2,
	}
}

// WithDefaults returns a copy with unset n-gram range, MinDF, MaxDF and Norm
// filled in, so that a literal with only a Strategy is usable.
func (c EncodingConfig) WithDefaults() EncodingConfig {
	if c.NgramRange == (NgramRange{}) {
		c.NgramRange = NgramRange{Min: 1, Max: 1}
	}
	if c.MinDF == 0 {
		c.MinDF = 1
	}
	if c.MaxDF == 0 {
		c.MaxDF = 1.0
	}
	if c.Norm == "" {
		c.Norm = NormL2
	}
	return c
}

// Validate checks the configuration against its field constraints.
func (c EncodingConfig) Validate() error {
	return validate.Struct(c)
}

// EffectiveNorm resolves an unset Norm to l2.
func (c EncodingConfig) EffectiveNorm() Norm {
	if c.Norm == "" {
		return NormL2
	}
	return c.Norm
}
