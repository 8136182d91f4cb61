package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"textenc/internal/domain"
)

// SentenceChunker splits a text into documents of N sentences with overlap,
// so that one long file can be explored as a corpus.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	splitter          *regexp.Regexp
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 1
	}
	if overlapSentences < 0 || overlapSentences >= sentencesPerChunk {
		overlapSentences = 0
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		splitter:          regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

// Chunk returns the sentence groups of document as new documents labelled
// "<label> #1", "<label> #2", ... A blank document yields nothing.
func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Document, error) {
	sentences := c.splitter.FindAllString(document.Content, -1)
	if tail := strings.TrimSpace(c.splitter.ReplaceAllString(document.Content, "")); tail != "" {
		sentences = append(sentences, tail)
	}
	kept := sentences[:0]
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	var out []domain.Document
	for i, idx := 0, 0; i < len(kept); idx++ {
		end := min(i+c.sentencesPerChunk, len(kept))
		out = append(out, domain.Document{
			ID:      fmt.Sprintf("%s:%d", document.ID, idx),
			Label:   fmt.Sprintf("%s #%d", document.Label, idx+1),
			Path:    document.Path,
			Content: strings.Join(kept[i:end], " "),
		})
		if end == len(kept) {
			break
		}
		i = end - c.overlapSentences
	}
	return out, nil
}
