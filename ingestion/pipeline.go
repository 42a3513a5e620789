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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/storage"
)

// Pipeline loads documents, chunks them, and embeds the chunks into the
// passage store. Pages are processed concurrently through a worker pool.
type Pipeline struct {
	repo     storage.PassageRepository
	embedder ai.Embedder
	pool     *ants.Pool
	chunker  *Chunker
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunking overrides the chunk size and overlap.
func WithChunking(chunkSize, chunkOverlap int) Option {
	return func(p *Pipeline) error {
		p.chunker = NewChunker(chunkSize, chunkOverlap)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingestion")
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(repo storage.PassageRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repo:     repo,
		embedder: embedder,
		pool:     pool,
		chunker:  NewChunker(DefaultChunkSize, DefaultChunkOverlap),
		logger:   slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestFile loads a document from disk and ingests it under its base
// filename. Returns the number of passages stored.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (int, error) {
	pages, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	return p.IngestPages(ctx, filepath.Base(path), pages)
}

// IngestPages chunks, embeds, and stores the given pages under the
// document name. Any previously stored passages for the document are
// replaced. Pages are embedded concurrently; the first failure is
// returned after all workers finish.
func (p *Pipeline) IngestPages(ctx context.Context, document string, pages []PageText) (int, error) {
	if document == "" {
		return 0, core.ErrEmptyDocument
	}

	deleted, err := p.repo.DeleteDocument(ctx, document)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		p.logger.Info("replacing existing document", "document", document, "previous_passages", deleted)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		total    int
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, page := range pages {
		chunks, err := p.chunker.Split(page.Text)
		if err != nil {
			return 0, fmt.Errorf("splitting page %d: %w", page.Page, err)
		}
		if len(chunks) == 0 {
			continue
		}

		page := page
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			vectors, err := p.embedder.EmbedTexts(ctx, chunks)
			if err != nil {
				fail(fmt.Errorf("embedding page %d: %w", page.Page, err))
				return
			}
			if len(vectors) != len(chunks) {
				fail(fmt.Errorf("embedding result mismatch. expected %d, received %d", len(chunks), len(vectors)))
				return
			}

			passages := make([]*core.Passage, len(chunks))
			for i, chunk := range chunks {
				passages[i] = &core.Passage{
					Document: document,
					Page:     page.Page,
					Content:  chunk,
					Vector:   vectors[i],
				}
			}

			added, err := p.repo.AddPassages(ctx, passages...)
			if err != nil {
				fail(fmt.Errorf("storing page %d: %w", page.Page, err))
				return
			}

			mu.Lock()
			total += len(added)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return total, firstErr
	}

	p.logger.Info("document ingested", "document", document, "pages", len(pages), "passages", total)
	return total, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
