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


// Package retrieval provides corpus retrieval with relevance assessment.
//
// The Retriever type composes three steps into one operation:
//   - Nearest-neighbor lookup against the passage store
//   - Distance-to-similarity normalization (SimilarityFromDistance)
//   - Aggregate relevance assessment (Assessor)
//
// The assessment applies a dual gate: the best passage must clear the
// relevance threshold AND the rank-weighted confidence over all passages
// must clear the minimum confidence. Failing either gate marks the
// retrieval as insufficient, which routes the workflow to web fallback.
package retrieval
