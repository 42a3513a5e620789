package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/answerit/ai/mock"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEmbedder maps known texts to fixed vectors so test distances are
// predictable. Unknown texts embed far from everything.
func fixedEmbedder(vectors map[string][]float32) *mock.MockEmbedder {
	e := mock.NewMockEmbedder()
	e.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		return []float32{100, 100, 100}, nil
	}
	e.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, t := range texts {
			out[i], _ = e.EmbedTextFunc(ctx, t)
		}
		return out, nil
	}
	return e
}

func TestRetrieveAndAssess_Sufficient(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = repo.AddPassages(ctx,
		&core.Passage{Document: "handbook.pdf", Page: 3, Content: "Returns are accepted within 30 days.", Vector: []float32{1, 0, 0}},
		&core.Passage{Document: "handbook.pdf", Page: 9, Content: "Shipping takes 3 to 5 business days.", Vector: []float32{0, 5, 0}},
	)
	require.NoError(t, err)

	embedder := fixedEmbedder(map[string][]float32{
		"What is the return policy?": {1, 0.1, 0},
	})

	r, err := NewRetriever(repo, embedder)
	require.NoError(t, err)

	passages, assessment, err := r.RetrieveAndAssess(ctx, "What is the return policy?")
	require.NoError(t, err)
	require.NotEmpty(t, passages)

	assert.Equal(t, "Returns are accepted within 30 days.", passages[0].Passage.Content)
	assert.True(t, assessment.Sufficient)
	assert.Greater(t, assessment.TopScore, 0.5)
	assert.Contains(t, assessment.Reason, "high relevance")
}

func TestRetrieveAndAssess_Insufficient(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = repo.AddPassages(ctx,
		&core.Passage{Document: "handbook.pdf", Page: 1, Content: "Office hours are 9 to 5.", Vector: []float32{0, 0, 1}},
	)
	require.NoError(t, err)

	// Far query: distance 1 gives similarity 0.5 at best, and the default
	// embedding here lands much further away.
	embedder := fixedEmbedder(nil)

	r, err := NewRetriever(repo, embedder)
	require.NoError(t, err)

	passages, assessment, err := r.RetrieveAndAssess(ctx, "Who won the World Cup in 2022?")
	require.NoError(t, err)
	require.NotEmpty(t, passages)

	assert.False(t, assessment.Sufficient)
	assert.Contains(t, assessment.Reason, "below threshold")
}

func TestRetrieveAndAssess_EmptyCorpus(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	r, err := NewRetriever(repo, mock.NewMockEmbedder())
	require.NoError(t, err)

	passages, assessment, err := r.RetrieveAndAssess(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, passages)
	assert.False(t, assessment.Sufficient)
	assert.Equal(t, "no passages retrieved", assessment.Reason)
}

func TestRetrieveAndAssess_EmptyQuestion(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	r, err := NewRetriever(repo, mock.NewMockEmbedder())
	require.NoError(t, err)

	_, _, err = r.RetrieveAndAssess(context.Background(), "   ")
	assert.ErrorIs(t, err, core.ErrEmptyQuestion)
}

func TestRetrieveAndAssess_EmbeddingFailure(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, errors.New("model unavailable")
	}

	r, err := NewRetriever(repo, embedder)
	require.NoError(t, err)

	_, _, err = r.RetrieveAndAssess(context.Background(), "a question")
	assert.ErrorIs(t, err, ErrRetrievalFailed)
}

func TestNewRetriever_Validation(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	_, err = NewRetriever(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewRetriever(repo, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestRetrieveAndAssess_TopK(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err = repo.AddPassages(ctx, &core.Passage{
			Document: "big.pdf",
			Page:     i + 1,
			Content:  strings.Repeat("x", i+1),
			Vector:   []float32{float32(i), 0, 0},
		})
		require.NoError(t, err)
	}

	embedder := fixedEmbedder(map[string][]float32{"q": {0, 0, 0}})

	r, err := NewRetriever(repo, embedder, WithTopK(3))
	require.NoError(t, err)

	passages, _, err := r.RetrieveAndAssess(ctx, "q")
	require.NoError(t, err)
	assert.Len(t, passages, 3)
}

func TestFormatContext(t *testing.T) {
	passages := []*core.ScoredPassage{
		{Passage: &core.Passage{Document: "a.pdf", Page: 2, Content: "First passage."}, Similarity: 0.9},
		{Passage: &core.Passage{Document: "a.pdf", Page: 5, Content: "Second passage."}, Similarity: 0.7},
	}

	got := FormatContext(passages)
	assert.Contains(t, got, "[Document 1 - Page 2]\nFirst passage.")
	assert.Contains(t, got, "[Document 2 - Page 5]\nSecond passage.")
}

func TestSourceMetadata_Dedupes(t *testing.T) {
	long := strings.Repeat("a", 250)
	passages := []*core.ScoredPassage{
		{Passage: &core.Passage{Document: "a.pdf", Page: 2, Content: long}, Similarity: 0.9},
		{Passage: &core.Passage{Document: "a.pdf", Page: 2, Content: "duplicate page"}, Similarity: 0.8},
		{Passage: &core.Passage{Document: "b.pdf", Page: 2, Content: "other doc, same page"}, Similarity: 0.7},
	}

	refs := SourceMetadata(passages)
	require.Len(t, refs, 2)

	assert.Equal(t, "2", refs[0].Locator)
	assert.Equal(t, strings.Repeat("a", 200)+"...", refs[0].Preview)
	assert.Equal(t, "other doc, same page", refs[1].Preview)
}
