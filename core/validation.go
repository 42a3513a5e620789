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


package core

import (
	"fmt"
	"strings"
)

// ValidatePassage validates a Passage according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Document must not be empty
//   - Page must be positive
//
// NOT validated (populated by the ingestion pipeline):
//   - Vector (can be empty until the embedding step runs)
//   - ID (derived from content at store time when zero)
func ValidatePassage(passage *Passage) error {
	if passage == nil {
		return fmt.Errorf("%w: passage is nil", ErrInvalidPassage)
	}

	if passage.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptyContent)
	}

	if passage.Document == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptyDocument)
	}

	if passage.Page < 1 {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidPassage, ErrInvalidPage, passage.Page)
	}

	return nil
}

// ValidateQuestion checks that an input question is answerable at all.
// A question that is empty after trimming whitespace cannot construct a
// workflow state and is the one fatal input error of the system.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}
