package badger

import (
	"context"
	"testing"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPassages_PopulatesIDs(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	passages := []*core.Passage{
		{Document: "handbook.pdf", Page: 1, Content: "Opening hours are 9 to 5.", Vector: []float32{1, 0, 0}},
		{Document: "handbook.pdf", Page: 2, Content: "Refunds take 14 days.", Vector: []float32{0, 1, 0}},
	}

	added, err := repo.AddPassages(ctx, passages...)
	require.NoError(t, err)
	require.Len(t, added, 2)

	for _, p := range added {
		assert.NotZero(t, p.Id)
		assert.False(t, p.InsertedAt.IsZero())
	}

	// Content-based IDs make re-adding idempotent
	again, err := repo.AddPassages(ctx, &core.Passage{
		Document: "handbook.pdf", Page: 1, Content: "Opening hours are 9 to 5.", Vector: []float32{1, 0, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, added[0].Id, again[0].Id)

	count, err := repo.CountPassages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddPassages_Invalid(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	_, err = repo.AddPassages(context.Background(), &core.Passage{Document: "doc.pdf", Page: 1})
	assert.ErrorIs(t, err, core.ErrEmptyContent)
}

func TestGetPassage(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	added, err := repo.AddPassages(ctx, &core.Passage{
		Document: "handbook.pdf", Page: 7, Content: "Parking is free on weekends.",
	})
	require.NoError(t, err)

	got, err := repo.GetPassage(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Parking is free on weekends.", got.Content)
	assert.Equal(t, 7, got.Page)

	_, err = repo.GetPassage(ctx, core.ID(999999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindNearest_OrdersByDistance(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = repo.AddPassages(ctx,
		&core.Passage{Document: "d.pdf", Page: 1, Content: "far", Vector: []float32{10, 0, 0}},
		&core.Passage{Document: "d.pdf", Page: 2, Content: "near", Vector: []float32{1, 0, 0}},
		&core.Passage{Document: "d.pdf", Page: 3, Content: "mid", Vector: []float32{5, 0, 0}},
		&core.Passage{Document: "d.pdf", Page: 4, Content: "no vector"},
	)
	require.NoError(t, err)

	matches, err := repo.FindNearest(ctx, []float32{0, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "near", matches[0].Passage.Content)
	assert.Equal(t, "mid", matches[1].Passage.Content)
	assert.Less(t, matches[0].Distance, matches[1].Distance)
	assert.GreaterOrEqual(t, matches[0].Distance, 0.0)
}

func TestFindNearest_InvalidQuery(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = repo.FindNearest(ctx, []float32{1}, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = repo.FindNearest(ctx, nil, 5)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestFindNearest_EmptyCorpus(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	matches, err := repo.FindNearest(context.Background(), []float32{1, 2, 3}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDeleteDocument(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = repo.AddPassages(ctx,
		&core.Passage{Document: "old.pdf", Page: 1, Content: "stale A", Vector: []float32{1}},
		&core.Passage{Document: "old.pdf", Page: 2, Content: "stale B", Vector: []float32{2}},
		&core.Passage{Document: "new.pdf", Page: 1, Content: "fresh", Vector: []float32{3}},
	)
	require.NoError(t, err)

	deleted, err := repo.DeleteDocument(ctx, "old.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	count, err := repo.CountPassages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	matches, err := repo.FindNearest(ctx, []float32{3}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "fresh", matches[0].Passage.Content)
}
