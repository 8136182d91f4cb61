package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"textenc/internal/analytics"
	"textenc/internal/chunker"
	"textenc/internal/domain"
	"textenc/internal/logging"
	"textenc/internal/normalizer"
	"textenc/internal/vectorizer"
)

var defaultPreprocessing = domain.PreprocessingConfig{Lowercase: true, RemovePunctuation: true}

func newTestService(t *testing.T) *EncodingService {
	t.Helper()
	res, err := normalizer.LoadResources()
	require.NoError(t, err)
	return NewEncodingService(
		normalizer.New(res),
		vectorizer.DefaultRegistry(),
		analytics.Options{Projector: analytics.NewProjector(&analytics.TSNE{Iterations: 100, EarlyExaggeration: 12, Seed: 1})},
		logging.Discard(),
	)
}

type failingNormalizer struct{ err error }

func (f failingNormalizer) Normalize(string, domain.PreprocessingConfig) ([]string, error) {
	return nil, f.err
}

func TestEncodingService_Encode_Shape(t *testing.T) {
	svc := newTestService(t)
	texts := []string{
		"The cat sat on the mat.",
		"Dogs and cats living together!",
		"",
		"A completely different sentence about encoders.",
	}

	for _, strategy := range domain.Strategies {
		for _, ngram := range []domain.NgramRange{{Min: 1, Max: 1}, {Min: 1, Max: 3}} {
			t.Run(fmt.Sprintf("%s ngram %d-%d", strategy, ngram.Min, ngram.Max), func(t *testing.T) {
				cfg := domain.DefaultEncodingConfig()
				cfg.Strategy = strategy
				cfg.NgramRange = ngram

				enc, err := svc.EncodeTexts(texts, defaultPreprocessing, cfg)
				require.NoError(t, err)

				rows, cols := enc.Matrix.Dims()
				assert.Equal(t, len(texts), rows)
				assert.Equal(t, cols, len(enc.Features))
				assert.Equal(t, strategy, enc.Strategy)
			})
		}
	}
}

func TestEncodingService_Encode_Example(t *testing.T) {
	svc := newTestService(t)
	docs := []string{"the cat sat", "the dog sat"}

	t.Run("Should count the example corpus", func(t *testing.T) {
		enc, err := svc.EncodeTexts(docs, defaultPreprocessing, domain.EncodingConfig{Strategy: domain.StrategyCount})
		require.NoError(t, err)

		assert.Equal(t, []string{"cat", "dog", "sat", "the"}, enc.Features)
		assert.True(t, mat.Equal(mat.NewDense(2, 4, []float64{1, 0, 1, 1, 0, 1, 1, 1}), enc.Matrix))
		assert.Equal(t, []string{"Doc 1", "Doc 2"}, enc.Labels())
	})

	t.Run("Should weigh shared terms lower with tfidf", func(t *testing.T) {
		cfg := domain.DefaultEncodingConfig()
		cfg.Strategy = domain.StrategyTFIDF
		enc, err := svc.EncodeTexts(docs, defaultPreprocessing, cfg)
		require.NoError(t, err)

		m := enc.Matrix
		for _, shared := range []int{2, 3} {
			assert.Less(t, m.At(0, shared), m.At(0, 0))
			assert.Less(t, m.At(1, shared), m.At(1, 1))
		}
	})

	t.Run("Should force binary one-hot entries", func(t *testing.T) {
		cfg := domain.DefaultEncodingConfig()
		cfg.Strategy = domain.StrategyOneHot
		cfg.Binary = false
		enc, err := svc.EncodeTexts([]string{"go go go", "go stop"}, defaultPreprocessing, cfg)
		require.NoError(t, err)
		assert.Equal(t, 1.0, enc.Matrix.At(0, 0))
	})

	t.Run("Should synthesize positional hashing identifiers", func(t *testing.T) {
		cfg := domain.DefaultEncodingConfig()
		cfg.Strategy = domain.StrategyHashing
		cfg.MaxFeatures = 8
		enc, err := svc.EncodeTexts(docs, defaultPreprocessing, cfg)
		require.NoError(t, err)

		require.Len(t, enc.Features, 8)
		assert.Equal(t, "feature_0", enc.Features[0])
		assert.Equal(t, "feature_7", enc.Features[7])
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		for _, strategy := range domain.Strategies {
			cfg := domain.DefaultEncodingConfig()
			cfg.Strategy = strategy
			a, err := svc.EncodeTexts(docs, defaultPreprocessing, cfg)
			require.NoError(t, err)
			b, err := svc.EncodeTexts(docs, defaultPreprocessing, cfg)
			require.NoError(t, err)
			assert.Equal(t, a.Features, b.Features)
			assert.True(t, mat.Equal(a.Matrix, b.Matrix))
		}
	})
}

func TestEncodingService_Encode_Errors(t *testing.T) {
	svc := newTestService(t)
	cfg := domain.DefaultEncodingConfig()

	t.Run("Should reject empty input", func(t *testing.T) {
		_, err := svc.EncodeTexts(nil, defaultPreprocessing, cfg)
		require.ErrorIs(t, err, domain.ErrEmptyInput)

		_, err = svc.EncodeTexts([]string{"", "   "}, defaultPreprocessing, cfg)
		require.ErrorIs(t, err, domain.ErrEmptyInput)
	})

	t.Run("Should fail when stopword removal empties the vocabulary", func(t *testing.T) {
		pre := defaultPreprocessing
		pre.RemoveStopwords = true
		_, err := svc.EncodeTexts([]string{"the and of", "it is a"}, pre, cfg)
		require.ErrorIs(t, err, domain.ErrEncoding)
		require.ErrorIs(t, err, vectorizer.ErrEmptyVocabulary)
	})

	t.Run("Should reject an invalid configuration", func(t *testing.T) {
		bad := cfg
		bad.NgramRange = domain.NgramRange{Min: 2, Max: 1}
		_, err := svc.EncodeTexts([]string{"text"}, defaultPreprocessing, bad)
		require.ErrorIs(t, err, domain.ErrEncoding)

		bad = cfg
		bad.Strategy = "word2vec"
		_, err = svc.EncodeTexts([]string{"text"}, defaultPreprocessing, bad)
		require.ErrorIs(t, err, domain.ErrEncoding)
	})

	t.Run("Should report unavailable resources", func(t *testing.T) {
		unloaded := NewEncodingService(normalizer.New(nil), nil, analytics.Options{}, nil)
		_, err := unloaded.EncodeTexts([]string{"text"}, defaultPreprocessing, cfg)
		require.ErrorIs(t, err, domain.ErrResourceUnavailable)

		missing := NewEncodingService(nil, nil, analytics.Options{}, nil)
		_, err = missing.EncodeTexts([]string{"text"}, defaultPreprocessing, cfg)
		require.ErrorIs(t, err, domain.ErrResourceUnavailable)
	})

	t.Run("Should wrap other normalizer failures", func(t *testing.T) {
		cause := errors.New("tokenizer exploded")
		failing := NewEncodingService(failingNormalizer{err: cause}, nil, analytics.Options{}, nil)
		_, err := failing.EncodeTexts([]string{"text"}, defaultPreprocessing, cfg)
		require.ErrorIs(t, err, domain.ErrEncoding)
		require.ErrorIs(t, err, cause)
	})
}

func TestEncodingService_Run(t *testing.T) {
	svc := newTestService(t)

	t.Run("Should analyze the sample corpus", func(t *testing.T) {
		res, err := svc.Run(SampleDocuments(), defaultPreprocessing, domain.DefaultEncodingConfig())
		require.NoError(t, err)

		assert.Equal(t, analytics.StatusOK, res.Analytics.Similarity.Status)
		assert.Equal(t, analytics.StatusOK, res.Analytics.Projection.Status)
		assert.Len(t, res.Analytics.Projection.Points, len(SampleDocuments()))
		assert.Equal(t, analytics.StatusOK, res.Analytics.Importance.Status)
		assert.LessOrEqual(t, len(res.Analytics.Importance.Features), analytics.DefaultTopFeatures)
	})

	t.Run("Should report pair similarity for two documents", func(t *testing.T) {
		res, err := svc.Run(domain.DocumentsFromTexts([]string{"the cat sat", "the dog sat"}), defaultPreprocessing, domain.DefaultEncodingConfig())
		require.NoError(t, err)
		assert.Equal(t, analytics.StatusPairSimilarity, res.Analytics.Projection.Status)
		assert.InDelta(t, 2.0/3.0, res.Analytics.Projection.Similarity, 1e-12)
	})

	t.Run("Should not rank hashed features", func(t *testing.T) {
		cfg := domain.DefaultEncodingConfig()
		cfg.Strategy = domain.StrategyHashing
		res, err := svc.Run(SampleDocuments(), defaultPreprocessing, cfg)
		require.NoError(t, err)
		assert.Equal(t, analytics.StatusNotApplicable, res.Analytics.Importance.Status)
	})
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("First file. Second sentence."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("Another file."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.md"), []byte("ignored"), 0o644))

	t.Run("Should read text files matched by a glob", func(t *testing.T) {
		docs, err := LoadDocuments([]string{filepath.Join(dir, "*")}, nil)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a.txt", docs[0].Label)
		assert.Equal(t, "Another file.", docs[1].Content)
		assert.NotEmpty(t, docs[0].ID)
	})

	t.Run("Should split files into sentence documents", func(t *testing.T) {
		docs, err := LoadDocuments([]string{filepath.Join(dir, "a.txt")}, chunker.NewSentenceChunker(1, 0))
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "Second sentence.", docs[1].Content)
	})

	t.Run("Should fail without text files", func(t *testing.T) {
		_, err := LoadDocuments([]string{filepath.Join(dir, "*.md")}, nil)
		require.Error(t, err)
	})
}
