package domain

import (
	"fmt"
	"strings"
)

// Document represents a single text entered into the system.
type Document struct {
	ID      string
	Label   string
	Path    string
	Content string
}

// Blank reports whether the document has no visible content.
func (d Document) Blank() bool {
	return strings.TrimSpace(d.Content) == ""
}

// DocumentsFromTexts wraps plain strings as documents labelled "Doc 1", "Doc 2", ...
func DocumentsFromTexts(texts []string) []Document {
	docs := make([]Document, len(texts))
	for i, t := range texts {
		docs[i] = Document{
			ID:      fmt.Sprintf("doc-%d", i+1),
			Label:   fmt.Sprintf("Doc %d", i+1),
			Content: t,
		}
	}
	return docs
}
