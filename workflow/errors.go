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


package workflow

import "errors"

var (
	// ErrRetrieverRequired is returned when no retriever is provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrAssemblerRequired is returned when no answer assembler is provided.
	ErrAssemblerRequired = errors.New("answer assembler required")

	// ErrSearcherRequired is returned when no web searcher is provided.
	ErrSearcherRequired = errors.New("web searcher required")

	// ErrInvalidPattern is returned when an insufficiency pattern does
	// not compile.
	ErrInvalidPattern = errors.New("invalid insufficiency pattern")
)
