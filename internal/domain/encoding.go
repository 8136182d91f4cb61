package domain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Encoding is a document-feature matrix together with its feature identifiers.
// Rows follow Documents and columns follow Features; the two are only ever
// built together through NewEncoding.
type Encoding struct {
	Strategy  Strategy
	Documents []Document
	Matrix    mat.Matrix
	Features  []string
}

// NewEncoding assembles an Encoding, rejecting a matrix whose shape disagrees
// with the documents or the feature identifiers.
func NewEncoding(strategy Strategy, docs []Document, m mat.Matrix, features []string) (*Encoding, error) {
	r, c := m.Dims()
	if r != len(docs) {
		return nil, fmt.Errorf("matrix has %d rows for %d documents", r, len(docs))
	}
	if c != len(features) {
		return nil, fmt.Errorf("matrix has %d columns for %d feature identifiers", c, len(features))
	}
	return &Encoding{Strategy: strategy, Documents: docs, Matrix: m, Features: features}, nil
}

// Dims returns the number of documents and features.
func (e *Encoding) Dims() (docs, features int) {
	return e.Matrix.Dims()
}

// Labels returns the display label of every document row.
func (e *Encoding) Labels() []string {
	out := make([]string, len(e.Documents))
	for i, d := range e.Documents {
		out[i] = d.Label
		if out[i] == "" {
			out[i] = fmt.Sprintf("Doc %d", i+1)
		}
	}
	return out
}
