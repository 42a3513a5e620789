package storage

import (
	"context"

	"github.com/poiesic/answerit/core"
)

// PassageRepository provides operations for managing corpus passages.
// Implementations must be thread-safe; FindNearest may run concurrently
// with other reads but the repository is never mutated mid-query.
type PassageRepository interface {
	// AddPassages adds one or more passages to storage.
	// For passages with ID=0, derives a content-based ID, which makes
	// repeated ingestion of the same chunk idempotent.
	// Sets InsertedAt if not already set.
	// Returns the passages with IDs and timestamps populated.
	AddPassages(ctx context.Context, passages ...*core.Passage) ([]*core.Passage, error)

	// GetPassage retrieves a single passage by ID.
	// Returns ErrNotFound if the passage doesn't exist.
	GetPassage(ctx context.Context, id core.ID) (*core.Passage, error)

	// FindNearest returns the k stored passages nearest to the query
	// vector, best match first. Each match carries the raw distance
	// (non-negative, smaller is closer). Passages without embeddings
	// are skipped. Returns fewer than k matches when the corpus is small.
	FindNearest(ctx context.Context, vector []float32, k int) ([]*core.Match, error)

	// CountPassages returns the number of stored passages.
	CountPassages(ctx context.Context) (int, error)

	// DeleteDocument removes all passages belonging to a document.
	// Returns the number of passages removed.
	DeleteDocument(ctx context.Context, document string) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
