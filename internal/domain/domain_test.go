package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStrategy("bert")
	require.Error(t, err)
	assert.False(t, StrategyHashing.HasVocabulary())
	assert.True(t, StrategyTFIDF.HasVocabulary())
}

func TestEncodingConfig_Validate(t *testing.T) {
	t.Run("Should accept the default configuration", func(t *testing.T) {
		require.NoError(t, DefaultEncodingConfig().Validate())
	})

	t.Run("Should fill a strategy-only literal", func(t *testing.T) {
		cfg := EncodingConfig{Strategy: StrategyTFIDF}.WithDefaults()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, NgramRange{Min: 1, Max: 1}, cfg.NgramRange)
		assert.Equal(t, NormL2, cfg.EffectiveNorm())
	})

	invalid := map[string]func(*EncodingConfig){
		"unknown strategy":   func(c *EncodingConfig) { c.Strategy = "glove" },
		"negative features":  func(c *EncodingConfig) { c.MaxFeatures = -1 },
		"inverted ngrams":    func(c *EncodingConfig) { c.NgramRange = NgramRange{Min: 3, Max: 2} },
		"zero ngram minimum": func(c *EncodingConfig) { c.NgramRange = NgramRange{Min: 0, Max: 2} },
		"max_df above one":   func(c *EncodingConfig) { c.MaxDF = 1.5 },
		"unknown norm":       func(c *EncodingConfig) { c.Norm = "max" },
	}
	for name, mutate := range invalid {
		t.Run("Should reject "+name, func(t *testing.T) {
			cfg := DefaultEncodingConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestNewEncoding(t *testing.T) {
	docs := DocumentsFromTexts([]string{"a b", "c"})
	m := mat.NewDense(2, 3, nil)

	t.Run("Should keep rows and features aligned", func(t *testing.T) {
		enc, err := NewEncoding(StrategyCount, docs, m, []string{"a", "b", "c"})
		require.NoError(t, err)
		rows, cols := enc.Dims()
		assert.Equal(t, 2, rows)
		assert.Equal(t, 3, cols)
		assert.Equal(t, []string{"Doc 1", "Doc 2"}, enc.Labels())
	})

	t.Run("Should reject mismatched shapes", func(t *testing.T) {
		_, err := NewEncoding(StrategyCount, docs[:1], m, []string{"a", "b", "c"})
		require.Error(t, err)
		_, err = NewEncoding(StrategyCount, docs, m, []string{"a", "b"})
		require.Error(t, err)
	})

	t.Run("Should fall back to positional labels", func(t *testing.T) {
		enc, err := NewEncoding(StrategyCount, []Document{{Content: "x"}, {Label: "named", Content: "y"}}, m, []string{"a", "b", "c"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Doc 1", "named"}, enc.Labels())
	})
}

func TestDocument_Blank(t *testing.T) {
	assert.True(t, Document{Content: " \n\t"}.Blank())
	assert.False(t, Document{Content: "x"}.Blank())
}
