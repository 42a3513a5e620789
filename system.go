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


// Package answerit answers questions from a local document corpus,
// falling back to web search when the corpus is not relevant enough.
package answerit

import (
	"context"
	"log/slog"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/ai/openai"
	"github.com/poiesic/answerit/answer"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/ingestion"
	"github.com/poiesic/answerit/retrieval"
	"github.com/poiesic/answerit/storage"
	"github.com/poiesic/answerit/storage/badger"
	"github.com/poiesic/answerit/websearch"
	"github.com/poiesic/answerit/workflow"
)

// System wires storage, retrieval, generation, and web fallback into a
// single question answering service.
type System struct {
	backend   *badger.Backend
	repo      storage.PassageRepository
	provider  ai.AIProvider
	retriever *retrieval.Retriever
	assembler *answer.Assembler
	searcher  websearch.Searcher
	engine    *workflow.Engine
	logger    *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig     *ai.Config
	topK         int
	assessorOpts []retrieval.AssessorOption
	searcher     websearch.Searcher
	inMemory     bool
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithTopK sets how many passages are retrieved per question.
func WithTopK(k int) SystemOption {
	return func(o *systemOptions) {
		o.topK = k
	}
}

// WithRelevanceGates overrides the retrieval sufficiency thresholds.
func WithRelevanceGates(relevanceThreshold, minConfidence float64) SystemOption {
	return func(o *systemOptions) {
		o.assessorOpts = append(o.assessorOpts,
			retrieval.WithRelevanceThreshold(relevanceThreshold),
			retrieval.WithMinConfidence(minConfidence))
	}
}

// WithSearcher replaces the default DuckDuckGo web searcher.
func WithSearcher(searcher websearch.Searcher) SystemOption {
	return func(o *systemOptions) {
		if searcher != nil {
			o.searcher = searcher
		}
	}
}

// WithInMemoryStorage keeps the passage store in memory. Useful for
// tests and throwaway sessions.
func WithInMemoryStorage() SystemOption {
	return func(o *systemOptions) {
		o.inMemory = true
	}
}

// NewSystem opens (or creates) a question answering system backed by
// storage at filePath.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
		topK:     retrieval.DefaultTopK,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewPassageRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	retriever, err := retrieval.NewRetriever(repo, provider.Embedder(),
		retrieval.WithTopK(options.topK),
		retrieval.WithAssessor(retrieval.NewAssessor(options.assessorOpts...)))
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	assembler, err := answer.NewAssembler(provider.Generator())
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	searcher := options.searcher
	if searcher == nil {
		searcher = websearch.NewDuckDuckGo()
	}

	engine, err := workflow.NewEngine(retriever, assembler, searcher)
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &System{
		backend:   backend,
		repo:      repo,
		provider:  provider,
		retriever: retriever,
		assembler: assembler,
		searcher:  searcher,
		engine:    engine,
		logger:    slog.Default(),
	}, nil
}

// Ask answers a question, preferring the corpus and falling back to the
// web when retrieval is insufficient.
func (s *System) Ask(ctx context.Context, question string) (*core.Response, error) {
	return s.engine.Run(ctx, question)
}

// NewIngestionPipeline creates a pipeline for loading documents into
// the corpus. The caller must Release it when done.
func (s *System) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.repo, s.provider.Embedder(), opts...)
}

// IngestFile loads one document into the corpus and returns the number
// of passages stored.
func (s *System) IngestFile(ctx context.Context, path string) (int, error) {
	pipeline, err := s.NewIngestionPipeline()
	if err != nil {
		return 0, err
	}
	defer pipeline.Release()

	return pipeline.IngestFile(ctx, path)
}

// CountPassages returns the number of passages in the corpus.
func (s *System) CountPassages(ctx context.Context) (int, error) {
	return s.repo.CountPassages(ctx)
}

// PassageRepository exposes the underlying passage store.
func (s *System) PassageRepository() storage.PassageRepository {
	return s.repo
}

func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing passage repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
