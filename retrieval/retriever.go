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


package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/storage"
)

// DefaultTopK is the number of passages fetched per question.
const DefaultTopK = 5

const previewRunes = 200

// Retriever embeds a question, fetches the nearest passages, and assesses
// whether they are sufficient to answer from.
type Retriever struct {
	repo     storage.PassageRepository
	embedder ai.Embedder
	assessor *Assessor
	topK     int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithTopK sets how many passages are fetched per question.
func WithTopK(k int) Option {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithAssessor replaces the default relevance assessor.
func WithAssessor(assessor *Assessor) Option {
	return func(r *Retriever) {
		if assessor != nil {
			r.assessor = assessor
		}
	}
}

// WithLogger sets the logger used for retrieval events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger.With("component", "retriever")
		}
	}
}

// NewRetriever creates a Retriever over the given repository and embedder.
func NewRetriever(repo storage.PassageRepository, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrProviderRequired
	}

	r := &Retriever{
		repo:     repo,
		embedder: embedder,
		assessor: NewAssessor(),
		topK:     DefaultTopK,
		logger:   slog.Default().With("component", "retriever"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RetrieveAndAssess embeds the question, fetches the topK nearest passages
// with normalized similarity scores (best first), and assesses the set.
// Index and embedding failures are wrapped in ErrRetrievalFailed so the
// caller can degrade to web fallback instead of aborting.
func (r *Retriever) RetrieveAndAssess(ctx context.Context, question string) ([]*core.ScoredPassage, core.Assessment, error) {
	if err := core.ValidateQuestion(question); err != nil {
		return nil, core.Assessment{}, err
	}

	vector, err := r.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, core.Assessment{}, fmt.Errorf("%w: embedding question: %v", ErrRetrievalFailed, err)
	}

	matches, err := r.repo.FindNearest(ctx, vector, r.topK)
	if err != nil {
		return nil, core.Assessment{}, fmt.Errorf("%w: querying index: %v", ErrRetrievalFailed, err)
	}

	scored := make([]*core.ScoredPassage, 0, len(matches))
	for _, m := range matches {
		scored = append(scored, &core.ScoredPassage{
			Passage:    m.Passage,
			Similarity: SimilarityFromDistance(m.Distance),
		})
	}

	assessment := r.assessor.Assess(scored)

	r.logger.Debug("retrieval assessed",
		"passages", len(scored),
		"top_score", assessment.TopScore,
		"confidence", assessment.Confidence,
		"sufficient", assessment.Sufficient)

	return scored, assessment, nil
}

// FormatContext renders retrieved passages as a single prompt context block.
func FormatContext(passages []*core.ScoredPassage) string {
	blocks := make([]string, 0, len(passages))
	for i, p := range passages {
		blocks = append(blocks, fmt.Sprintf("[Document %d - Page %d]\n%s\n", i+1, p.Passage.Page, p.Passage.Content))
	}
	return strings.Join(blocks, "\n")
}

// SourceMetadata extracts citation references from retrieved passages,
// deduplicated by document and page. First occurrence wins, preserving
// relevance order.
func SourceMetadata(passages []*core.ScoredPassage) []core.SourceRef {
	seen := make(map[string]bool, len(passages))
	refs := make([]core.SourceRef, 0, len(passages))
	for _, p := range passages {
		key := p.Passage.Document + "|" + strconv.Itoa(p.Passage.Page)
		if seen[key] {
			continue
		}
		seen[key] = true
		refs = append(refs, core.SourceRef{
			Locator: strconv.Itoa(p.Passage.Page),
			Preview: previewOf(p.Passage.Content),
		})
	}
	return refs
}

func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes]) + "..."
}
