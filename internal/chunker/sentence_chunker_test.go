package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textenc/internal/domain"
)

func TestSentenceChunker_Chunk(t *testing.T) {
	doc := domain.Document{ID: "notes", Label: "notes.txt", Content: "One. Two! Three? Four"}

	t.Run("Should group sentences and keep a trailing fragment", func(t *testing.T) {
		got, err := NewSentenceChunker(2, 0).Chunk(doc)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "One. Two!", got[0].Content)
		assert.Equal(t, "Three? Four", got[1].Content)
		assert.Equal(t, "notes.txt #2", got[1].Label)
		assert.Equal(t, "notes:1", got[1].ID)
	})

	t.Run("Should overlap consecutive chunks", func(t *testing.T) {
		got, err := NewSentenceChunker(2, 1).Chunk(doc)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Two! Three?", got[1].Content)
		assert.Equal(t, "Three? Four", got[2].Content)
	})

	t.Run("Should return nothing for a blank document", func(t *testing.T) {
		got, err := NewSentenceChunker(2, 0).Chunk(domain.Document{Content: "   "})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
