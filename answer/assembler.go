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


package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/websearch"
)

// ErrGeneratorRequired is returned when no language model is provided.
var ErrGeneratorRequired = errors.New("generator required")

const (
	kbApology  = "I apologize, but I encountered an error generating the answer."
	webApology = "I apologize, but I encountered an error generating the answer from web sources."

	// Per-result cap when formatting web results into the prompt.
	webResultContentLimit = 500

	// Web citations list at most this many sources.
	maxCitedWebSources = 5
)

var questionWordPrefix = regexp.MustCompile(`^(what|how|when|where|why|who|which|can you|please)\s+`)

// Assembler generates final answers from corpus context or web results.
type Assembler struct {
	generator ai.Generator
	logger    *slog.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithLogger sets the logger used for generation events.
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger.With("component", "assembler")
		}
	}
}

// NewAssembler creates an Assembler over the given language model.
func NewAssembler(generator ai.Generator, opts ...AssemblerOption) (*Assembler, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	a := &Assembler{
		generator: generator,
		logger:    slog.Default().With("component", "assembler"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// GenerateKBAnswer produces an answer grounded in retrieved corpus
// context. Generation failure yields an apologetic record with Failed
// set instead of an error.
func (a *Assembler) GenerateKBAnswer(ctx context.Context, question, contextBlock string, sources []core.SourceRef) core.AnswerRecord {
	a.logger.Info("generating knowledge base answer")

	text, err := a.generator.Generate(ctx, []ai.Message{
		{Role: ai.RoleSystem, Text: kbSystemPrompt},
		{Role: ai.RoleHuman, Text: fmt.Sprintf(kbHumanTemplate, contextBlock, question)},
	})
	if err != nil {
		a.logger.Error("knowledge base answer generation failed", "error", err)
		return core.AnswerRecord{
			Text:   kbApology,
			Kind:   core.SourceKnowledgeBase,
			Failed: true,
		}
	}

	return core.AnswerRecord{
		Text:      text,
		Kind:      core.SourceKnowledgeBase,
		Citations: FormatCitations(sources, core.SourceKnowledgeBase),
		Sources:   sources,
	}
}

// GenerateWebAnswer produces an answer synthesized from web search
// results. At most the first five results are cited.
func (a *Assembler) GenerateWebAnswer(ctx context.Context, question string, results []websearch.Result) core.AnswerRecord {
	a.logger.Info("generating web answer", "results", len(results))

	text, err := a.generator.Generate(ctx, []ai.Message{
		{Role: ai.RoleSystem, Text: webSystemPrompt},
		{Role: ai.RoleHuman, Text: fmt.Sprintf(webHumanTemplate, formatWebResults(results), question)},
	})
	if err != nil {
		a.logger.Error("web answer generation failed", "error", err)
		return core.AnswerRecord{
			Text:   webApology,
			Kind:   core.SourceWeb,
			Failed: true,
		}
	}

	cited := results
	if len(cited) > maxCitedWebSources {
		cited = cited[:maxCitedWebSources]
	}
	sources := make([]core.SourceRef, 0, len(cited))
	for _, r := range cited {
		sources = append(sources, core.SourceRef{Locator: r.URL, Preview: r.Title})
	}

	return core.AnswerRecord{
		Text:      text,
		Kind:      core.SourceWeb,
		Citations: FormatCitations(sources, core.SourceWeb),
		Sources:   sources,
	}
}

// ReformulateQuery turns a question into a short search query using the
// language model, falling back to rule-based stripping when the model
// fails or returns something unusable.
func (a *Assembler) ReformulateQuery(ctx context.Context, question string) string {
	text, err := a.generator.Generate(ctx, []ai.Message{
		{Role: ai.RoleSystem, Text: reformulationSystemPrompt},
		{Role: ai.RoleHuman, Text: fmt.Sprintf(reformulationHumanTemplate, question)},
	})
	if err != nil {
		a.logger.Warn("query reformulation failed", "error", err)
		return simpleReformulation(question)
	}

	reformulated := strings.Trim(strings.TrimSpace(text), `"'`)
	if len(reformulated) < 3 || !isSearchable(reformulated) {
		reformulated = simpleReformulation(question)
	}

	a.logger.Info("query reformulated", "from", question, "to", reformulated)
	return reformulated
}

// simpleReformulation strips leading question words and the trailing
// question mark.
func simpleReformulation(question string) string {
	query := questionWordPrefix.ReplaceAllString(strings.ToLower(question), "")
	query = strings.TrimSuffix(query, "?")
	return strings.TrimSpace(query)
}

// isSearchable reports whether s looks like a plain keyword query:
// letters, digits, and spaces only.
func isSearchable(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return false
		}
	}
	return s != ""
}

func formatWebResults(results []websearch.Result) string {
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "No Title"
		}
		blocks = append(blocks, fmt.Sprintf("[%d] %s\nURL: %s\nContent: %s...\n", i+1, title, r.URL, truncate(r.Body(), webResultContentLimit)))
	}
	return strings.Join(blocks, "\n")
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
