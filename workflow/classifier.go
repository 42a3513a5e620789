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

import (
	"fmt"
	"regexp"
)

// DefaultInsufficiencyPatterns match answers where the model hedges
// instead of answering, which means the retrieved context was not
// actually usable even though it scored well.
var DefaultInsufficiencyPatterns = []string{
	`(?i)don'?t have.*information`,
	`(?i)does not contain.*information`,
	`(?i)not mentioned in.*context`,
	`(?i)context does not.*enough`,
	`(?i)unable to provide`,
	`(?i)cannot answer`,
	`(?i)no information about`,
	`(?i)not included in.*context`,
	`(?i)unfortunately.*context`,
}

// InsufficiencyClassifier detects knowledge-base answers that admit the
// context was insufficient. A match triggers the web fallback even after
// retrieval was judged sufficient.
type InsufficiencyClassifier struct {
	patterns []*regexp.Regexp
}

// NewInsufficiencyClassifier compiles the given patterns. With no
// patterns it uses DefaultInsufficiencyPatterns.
func NewInsufficiencyClassifier(patterns ...string) (*InsufficiencyClassifier, error) {
	if len(patterns) == 0 {
		patterns = DefaultInsufficiencyPatterns
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p, err)
		}
		compiled = append(compiled, re)
	}

	return &InsufficiencyClassifier{patterns: compiled}, nil
}

// Indicates reports whether the answer text signals insufficient context.
func (c *InsufficiencyClassifier) Indicates(answerText string) bool {
	for _, re := range c.patterns {
		if re.MatchString(answerText) {
			return true
		}
	}
	return false
}
