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
	"fmt"

	"github.com/poiesic/answerit/core"
)

const (
	// DefaultRelevanceThreshold is the minimum similarity the single best
	// passage must reach for the corpus to be considered relevant.
	DefaultRelevanceThreshold = 0.5

	// DefaultMinConfidence is the minimum rank-weighted confidence over
	// the whole retrieved set.
	DefaultMinConfidence = 0.4
)

// Assessor decides whether a retrieved passage set is good enough to answer
// from. Both gates must pass: a weak best match cannot be rescued by many
// mediocre ones, and a single lucky hit cannot carry an otherwise poor set.
type Assessor struct {
	relevanceThreshold float64
	minConfidence      float64
}

// AssessorOption configures an Assessor.
type AssessorOption func(*Assessor)

// WithRelevanceThreshold sets the top-score gate.
func WithRelevanceThreshold(threshold float64) AssessorOption {
	return func(a *Assessor) {
		a.relevanceThreshold = threshold
	}
}

// WithMinConfidence sets the weighted-confidence gate.
func WithMinConfidence(minimum float64) AssessorOption {
	return func(a *Assessor) {
		a.minConfidence = minimum
	}
}

// NewAssessor creates an Assessor with the default gates.
func NewAssessor(opts ...AssessorOption) *Assessor {
	a := &Assessor{
		relevanceThreshold: DefaultRelevanceThreshold,
		minConfidence:      DefaultMinConfidence,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess computes aggregate relevance statistics for passages ordered
// best-first. Confidence weights each passage by 1/(rank+1), so the top
// result dominates but the tail still contributes. An empty set is
// insufficient with zero confidence.
func (a *Assessor) Assess(passages []*core.ScoredPassage) core.Assessment {
	if len(passages) == 0 {
		return core.Assessment{
			Sufficient: false,
			Reason:     "no passages retrieved",
		}
	}

	topScore := passages[0].Similarity

	var sum, weightedSum, weightTotal float64
	for i, p := range passages {
		weight := 1.0 / float64(i+1)
		sum += p.Similarity
		weightedSum += p.Similarity * weight
		weightTotal += weight
	}
	avgScore := sum / float64(len(passages))
	confidence := weightedSum / weightTotal

	assessment := core.Assessment{
		Confidence:   confidence,
		TopScore:     topScore,
		AvgScore:     avgScore,
		PassageCount: len(passages),
	}

	switch {
	case topScore < a.relevanceThreshold:
		assessment.Reason = fmt.Sprintf("top similarity %.2f below threshold %.2f", topScore, a.relevanceThreshold)
	case confidence < a.minConfidence:
		assessment.Reason = fmt.Sprintf("overall confidence %.2f below minimum %.2f", confidence, a.minConfidence)
	default:
		assessment.Sufficient = true
		assessment.Reason = fmt.Sprintf("high relevance detected (top similarity: %.2f)", topScore)
	}

	return assessment
}
