package domain

// Normalizer turns a raw document into a normalized token sequence.
type Normalizer interface {
	Normalize(document string, cfg PreprocessingConfig) ([]string, error)
}

// Chunker splits one document into several smaller documents.
type Chunker interface {
	Chunk(document Document) ([]Document, error)
}
