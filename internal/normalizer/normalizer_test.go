package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textenc/internal/domain"
)

func loadResources(t *testing.T) *Resources {
	t.Helper()
	res, err := LoadResources()
	require.NoError(t, err)
	return res
}

func TestNormalizer_Normalize(t *testing.T) {
	n := New(loadResources(t))

	tests := []struct {
		name     string
		input    string
		cfg      domain.PreprocessingConfig
		expected []string
	}{
		{
			name:     "No transformations keeps case and punctuation tokens",
			input:    "The Cat sat.",
			cfg:      domain.PreprocessingConfig{},
			expected: []string{"The", "Cat", "sat", "."},
		},
		{
			name:     "Lowercase and punctuation removal",
			input:    "The Cat, sat!",
			cfg:      domain.PreprocessingConfig{Lowercase: true, RemovePunctuation: true},
			expected: []string{"the", "cat", "sat"},
		},
		{
			name:     "Punctuation is removed before tokenization",
			input:    "don't stop-words",
			cfg:      domain.PreprocessingConfig{RemovePunctuation: true},
			expected: []string{"dont", "stopwords"},
		},
		{
			name:     "Stopwords are removed after lowercasing",
			input:    "The cat is on the mat",
			cfg:      domain.PreprocessingConfig{Lowercase: true, RemoveStopwords: true},
			expected: []string{"cat", "mat"},
		},
		{
			name:     "Stopword matching is case sensitive without lowercasing",
			input:    "The cat",
			cfg:      domain.PreprocessingConfig{RemoveStopwords: true},
			expected: []string{"The", "cat"},
		},
		{
			name:     "Lemmatization runs on surviving tokens",
			input:    "The cats were running",
			cfg:      domain.PreprocessingConfig{Lowercase: true, RemoveStopwords: true, Lemmatize: true},
			expected: []string{"cat", "run"},
		},
		{
			name:     "Lemmatization yields dictionary words",
			input:    "Hello world, don't stop running studies!",
			cfg:      domain.PreprocessingConfig{Lowercase: true, RemovePunctuation: true, RemoveStopwords: true, Lemmatize: true},
			expected: []string{"hello", "world", "dont", "stop", "run", "study"},
		},
		{
			name:     "Empty document",
			input:    "",
			cfg:      domain.PreprocessingConfig{Lowercase: true, RemovePunctuation: true},
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := n.Normalize(tc.input, tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNormalizer_ResourcesUnavailable(t *testing.T) {
	t.Run("Should fail without resources", func(t *testing.T) {
		n := New(nil)
		assert.False(t, n.Ready())

		_, err := n.Normalize("text", domain.PreprocessingConfig{})
		require.ErrorIs(t, err, domain.ErrResourceUnavailable)
	})

	t.Run("Should fail with a partial bundle", func(t *testing.T) {
		n := New(&Resources{Tokenizer: NewWordTokenizer()})

		_, err := n.Normalize("text", domain.PreprocessingConfig{})
		require.ErrorIs(t, err, domain.ErrResourceUnavailable)
	})
}

func TestDictionaryLemmatizer_Lemma(t *testing.T) {
	l, err := NewDictionaryLemmatizer()
	require.NoError(t, err)

	tests := map[string]string{
		"cats":    "cat",
		"running": "run",
		"studies": "study",
		"Cats":    "Cats",
		"":        "",
	}
	for token, expected := range tests {
		assert.Equal(t, expected, l.Lemma(token), token)
	}
}
