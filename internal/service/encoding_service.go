package service

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"textenc/internal/analytics"
	"textenc/internal/domain"
	"textenc/internal/logging"
	"textenc/internal/vectorizer"
)

// Result is one encode request and its derived views.
type Result struct {
	Encoding  *domain.Encoding
	Analytics analytics.Report
}

// EncodingService normalizes documents, fits the selected vectorizer and
// derives analytics. It keeps no state between requests.
type EncodingService struct {
	normalizer domain.Normalizer
	registry   *vectorizer.Registry
	analysis   analytics.Options
	log        logging.Logger
}

func NewEncodingService(normalizer domain.Normalizer, registry *vectorizer.Registry, analysis analytics.Options, log logging.Logger) *EncodingService {
	if registry == nil {
		registry = vectorizer.DefaultRegistry()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &EncodingService{normalizer: normalizer, registry: registry, analysis: analysis, log: log}
}

// Encode turns docs into a document-feature matrix with matching feature
// identifiers. It fails with domain.ErrEmptyInput when every document is
// blank, domain.ErrResourceUnavailable when the normalizer is not ready and
// domain.ErrEncoding when the configuration is invalid or fitting fails.
func (s *EncodingService) Encode(docs []domain.Document, pre domain.PreprocessingConfig, enc domain.EncodingConfig) (*domain.Encoding, error) {
	if len(docs) == 0 || lo.EveryBy(docs, domain.Document.Blank) {
		return nil, domain.ErrEmptyInput
	}
	if s.normalizer == nil {
		return nil, fmt.Errorf("%w: no normalizer configured", domain.ErrResourceUnavailable)
	}
	enc = enc.WithDefaults()
	if err := enc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid configuration: %w", domain.ErrEncoding, err)
	}
	v, err := s.registry.Get(enc.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}

	corpus := make([]string, len(docs))
	for i, d := range docs {
		tokens, err := s.normalizer.Normalize(d.Content, pre)
		if err != nil {
			if errors.Is(err, domain.ErrResourceUnavailable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: normalizing %s: %w", domain.ErrEncoding, d.Label, err)
		}
		corpus[i] = strings.Join(tokens, " ")
	}
	s.log.Debug("normalized corpus", "documents", len(corpus), "preprocessing", fmt.Sprintf("%+v", pre))

	m, vocab, err := v.FitTransform(corpus, enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrEncoding, enc.Strategy, err)
	}
	if vocab == nil {
		_, cols := m.Dims()
		vocab = lo.Times(cols, func(i int) string { return fmt.Sprintf("feature_%d", i) })
	}
	out, err := domain.NewEncoding(enc.Strategy, docs, m, vocab)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}
	_, features := out.Dims()
	s.log.Info("encoded documents", "strategy", enc.Strategy, "documents", len(docs), "features", features)
	return out, nil
}

// EncodeTexts is Encode over plain strings labelled "Doc 1", "Doc 2", ...
func (s *EncodingService) EncodeTexts(texts []string, pre domain.PreprocessingConfig, enc domain.EncodingConfig) (*domain.Encoding, error) {
	return s.Encode(domain.DocumentsFromTexts(texts), pre, enc)
}

// Analyze derives similarity, projection and feature importance from enc.
func (s *EncodingService) Analyze(enc *domain.Encoding) analytics.Report {
	report := analytics.Analyze(enc, s.analysis)
	if report.Projection.Status == analytics.StatusFailed {
		s.log.Warn("projection downgraded", "reason", report.Projection.Err)
	}
	return report
}

// Run encodes docs and analyzes the result.
func (s *EncodingService) Run(docs []domain.Document, pre domain.PreprocessingConfig, enc domain.EncodingConfig) (Result, error) {
	encoding, err := s.Encode(docs, pre, enc)
	if err != nil {
		return Result{}, err
	}
	return Result{Encoding: encoding, Analytics: s.Analyze(encoding)}, nil
}

// LoadDocuments reads the .txt files matched by paths (globs allowed). When
// chunker is not nil every file is split into several documents.
func LoadDocuments(paths []string, chunker domain.Chunker) ([]domain.Document, error) {
	var documents []domain.Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			doc := domain.Document{ID: hashString(m), Label: filepath.Base(m), Path: m, Content: string(data)}
			if chunker == nil {
				documents = append(documents, doc)
				continue
			}
			chunks, err := chunker.Chunk(doc)
			if err != nil {
				return nil, fmt.Errorf("chunking %s: %w", m, err)
			}
			documents = append(documents, chunks...)
		}
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("no .txt documents found")
	}
	return documents, nil
}

// SampleDocuments is the corpus used when no files are given.
func SampleDocuments() []domain.Document {
	return domain.DocumentsFromTexts([]string{
		"The quick brown fox jumps over the lazy dog.",
		"A quick brown dog outpaces a quick fox!",
		"Natural language processing turns text into numbers.",
		"Bag-of-words and TF-IDF are classic text encodings.",
		"Word embeddings capture meaning beyond simple counts.",
		"The lazy dog sleeps all day in the sun.",
	})
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
