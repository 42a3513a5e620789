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


package websearch

import "errors"

var (
	// ErrSearchFailed wraps transport and parsing failures during search.
	ErrSearchFailed = errors.New("web search failed")

	// ErrEmptyQuery is returned when the search query is blank.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrInvalidMaxAttempts is returned when a retry is configured with
	// zero or negative attempts.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
