// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/storage"
)

// PassageRepository implements storage.PassageRepository on a Badger backend.
// Nearest-neighbor lookup is a brute-force scan over stored embeddings
// inside a read transaction, which is adequate for corpora in the tens of
// thousands of passages.
type PassageRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.PassageRepository = (*PassageRepository)(nil)

// NewPassageRepository creates a passage repository on the given backend.
func NewPassageRepository(backend *Backend) (*PassageRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &PassageRepository{
		backend: backend,
		logger:  slog.Default().With("component", "badger-passages"),
	}, nil
}

// AddPassages adds one or more passages to storage.
func (r *PassageRepository) AddPassages(ctx context.Context, passages ...*core.Passage) ([]*core.Passage, error) {
	now := time.Now().UTC()

	for _, passage := range passages {
		if err := core.ValidatePassage(passage); err != nil {
			return nil, err
		}
		if passage.Id == 0 {
			passage.Id = core.IDFromContent(passage.Document + "|" + passage.Content)
		}
		if passage.InsertedAt.IsZero() {
			passage.InsertedAt = now
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, passage := range passages {
			if err := tx.Set(makePassageKey(passage.Id), storage.MarshalPassage(passage)); err != nil {
				return err
			}
			idBytes := make([]byte, 8)
			binary.BigEndian.PutUint64(idBytes, uint64(passage.Id))
			if err := tx.Set(makePassageDocKey(passage.Document, passage.Id), idBytes); err != nil {
				return err
			}
		}
		return nil
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("added passages", "count", len(passages))
	return passages, nil
}

// GetPassage retrieves a single passage by ID.
func (r *PassageRepository) GetPassage(ctx context.Context, id core.ID) (*core.Passage, error) {
	var passage *core.Passage

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePassageKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			passage, err = storage.UnmarshalPassage(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return passage, nil
}

// FindNearest returns the k stored passages nearest to the query vector.
func (r *PassageRepository) FindNearest(ctx context.Context, vector []float32, k int) ([]*core.Match, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive", storage.ErrInvalidQuery)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", storage.ErrInvalidQuery)
	}

	var matches []*core.Match

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(passagePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var passage *core.Passage
			err := iter.Item().Value(func(val []byte) error {
				var err error
				passage, err = storage.UnmarshalPassage(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip passages without embeddings
			if len(passage.Vector) == 0 {
				continue
			}

			matches = append(matches, &core.Match{
				Passage:  passage,
				Distance: euclideanDistance(vector, passage.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by distance ascending: best match first
	slices.SortFunc(matches, func(a, b *core.Match) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	return matches, nil
}

// CountPassages returns the number of stored passages.
func (r *PassageRepository) CountPassages(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(passagePrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteDocument removes all passages belonging to a document.
func (r *PassageRepository) DeleteDocument(ctx context.Context, document string) (int, error) {
	deleted := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialDocKey(document)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Collect keys first; deleting while iterating invalidates the iterator.
		var docKeys [][]byte
		var ids []core.ID
		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			docKeys = append(docKeys, item.KeyCopy(nil))
			err := item.Value(func(val []byte) error {
				ids = append(ids, core.ID(binary.BigEndian.Uint64(val)))
				return nil
			})
			if err != nil {
				return err
			}
		}

		for i, key := range docKeys {
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makePassageKey(ids[i])); err != nil {
				return err
			}
			deleted++
		}
		return nil
	}, true)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		r.logger.Debug("deleted document passages", "document", document, "count", deleted)
	}
	return deleted, nil
}

// Close releases repository resources. The backend owns the database
// handle and must be closed separately.
func (r *PassageRepository) Close() error {
	return nil
}

// euclideanDistance calculates the L2 distance between two vectors.
// When dimensions differ, only the overlapping prefix is compared.
func euclideanDistance(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	var sum float64
	for i := 0; i < minLen; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
