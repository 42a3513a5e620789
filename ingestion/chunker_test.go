package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker(1000, 200)

	chunks, err := c.Split("A short paragraph.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph.", chunks[0])
}

func TestChunker_SplitsLongText(t *testing.T) {
	c := NewChunker(100, 20)

	text := strings.Repeat("Each sentence adds a bit more text to the page. ", 30)
	chunks, err := c.Split(text)
	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		assert.LessOrEqual(t, len(chunk), 100)
	}
}

func TestChunker_DefaultsOnInvalidArgs(t *testing.T) {
	c := NewChunker(0, -1)

	chunks, err := c.Split("text")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}
