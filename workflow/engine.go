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
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/retrieval"
	"github.com/poiesic/answerit/websearch"
)

const noAnswerText = "I apologize, but I couldn't find sufficient information " +
	"in either the knowledge base or the web to answer your question."

// Retriever fetches and assesses corpus passages for a question.
type Retriever interface {
	RetrieveAndAssess(ctx context.Context, question string) ([]*core.ScoredPassage, core.Assessment, error)
}

// Assembler generates answers and search queries with a language model.
type Assembler interface {
	GenerateKBAnswer(ctx context.Context, question, contextBlock string, sources []core.SourceRef) core.AnswerRecord
	GenerateWebAnswer(ctx context.Context, question string, results []websearch.Result) core.AnswerRecord
	ReformulateQuery(ctx context.Context, question string) string
}

type node int

const (
	nodeRetrieve node = iota
	nodeGenerateKB
	nodeNotifyFallback
	nodeSearchWeb
	nodeGenerateWeb
	nodeFormatOutput
	nodeDone
)

func (n node) String() string {
	switch n {
	case nodeRetrieve:
		return "retrieve_kb"
	case nodeGenerateKB:
		return "generate_kb_answer"
	case nodeNotifyFallback:
		return "notify_fallback"
	case nodeSearchWeb:
		return "search_web"
	case nodeGenerateWeb:
		return "generate_web_answer"
	case nodeFormatOutput:
		return "format_output"
	default:
		return "done"
	}
}

// Engine runs the question answering graph.
type Engine struct {
	retriever  Retriever
	assembler  Assembler
	searcher   websearch.Searcher
	classifier *InsufficiencyClassifier
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClassifier replaces the default insufficiency classifier.
func WithClassifier(classifier *InsufficiencyClassifier) EngineOption {
	return func(e *Engine) {
		if classifier != nil {
			e.classifier = classifier
		}
	}
}

// WithLogger sets the logger used for workflow events.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger.With("component", "workflow")
		}
	}
}

// NewEngine creates a workflow engine over the given components.
func NewEngine(retriever Retriever, assembler Assembler, searcher websearch.Searcher, opts ...EngineOption) (*Engine, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if assembler == nil {
		return nil, ErrAssemblerRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	classifier, err := NewInsufficiencyClassifier()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		retriever:  retriever,
		assembler:  assembler,
		searcher:   searcher,
		classifier: classifier,
		logger:     slog.Default().With("component", "workflow"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run answers a question, preferring the corpus and falling back to web
// search when retrieval is insufficient. The returned response always
// carries an answer; component failures degrade it instead of erroring.
// The only fatal input error is an empty question.
func (e *Engine) Run(ctx context.Context, question string) (*core.Response, error) {
	if err := core.ValidateQuestion(question); err != nil {
		return nil, err
	}

	e.logger.Info("running workflow", "question", question)

	state := newState(question)
	for n := nodeRetrieve; n != nodeDone; {
		e.logger.Debug("executing node", "node", n.String())
		n = e.step(ctx, n, state)
	}

	e.logger.Info("workflow complete", "source", state.SourceType.String())
	return state.response(), nil
}

func (e *Engine) step(ctx context.Context, n node, state *State) node {
	switch n {
	case nodeRetrieve:
		return e.retrieve(ctx, state)
	case nodeGenerateKB:
		return e.generateKB(ctx, state)
	case nodeNotifyFallback:
		return e.notifyFallback(state)
	case nodeSearchWeb:
		return e.searchWeb(ctx, state)
	case nodeGenerateWeb:
		return e.generateWeb(ctx, state)
	case nodeFormatOutput:
		return e.formatOutput(state)
	default:
		return nodeDone
	}
}

func (e *Engine) retrieve(ctx context.Context, state *State) node {
	passages, assessment, err := e.retriever.RetrieveAndAssess(ctx, state.Question)
	if err != nil {
		e.logger.Error("retrieval failed, falling back to web", "error", err)
		state.Err = err
		state.KBSufficient = false
		return nodeNotifyFallback
	}

	state.Passages = passages
	state.Assessment = assessment
	state.KBSufficient = assessment.Sufficient
	if len(passages) > 0 {
		state.Context = retrieval.FormatContext(passages)
		state.KBSources = retrieval.SourceMetadata(passages)
	}

	e.logger.Info("retrieval complete", "passages", len(passages), "sufficient", assessment.Sufficient)

	if state.KBSufficient {
		return nodeGenerateKB
	}
	return nodeNotifyFallback
}

func (e *Engine) generateKB(ctx context.Context, state *State) node {
	record := e.assembler.GenerateKBAnswer(ctx, state.Question, state.Context, state.KBSources)

	state.AnswerText = record.Text
	state.SourceType = record.Kind
	state.Citations = record.Citations

	if !record.Failed && e.classifier.Indicates(record.Text) {
		e.logger.Info("answer hedges on missing context, falling back to web")
		state.KBSufficient = false
		state.WebFallback = true
		return nodeNotifyFallback
	}

	return nodeFormatOutput
}

func (e *Engine) notifyFallback(state *State) node {
	state.Metadata[MetaFallbackNotification] = FallbackNotice
	e.logger.Info("falling back to web search")
	return nodeSearchWeb
}

func (e *Engine) searchWeb(ctx context.Context, state *State) node {
	state.WebQuery = e.assembler.ReformulateQuery(ctx, state.Question)

	results, err := e.searcher.Search(ctx, state.WebQuery)
	if err != nil {
		e.logger.Error("web search failed", "query", state.WebQuery, "error", err)
		if state.Err == nil {
			state.Err = fmt.Errorf("web search: %w", err)
		}
		state.WebResults = nil
		return nodeGenerateWeb
	}

	state.WebResults = results
	e.logger.Info("web search complete", "results", len(results))
	return nodeGenerateWeb
}

func (e *Engine) generateWeb(ctx context.Context, state *State) node {
	if len(state.WebResults) == 0 {
		state.AnswerText = noAnswerText
		state.SourceType = core.SourceNone
		state.Citations = ""
		return nodeFormatOutput
	}

	record := e.assembler.GenerateWebAnswer(ctx, state.Question, state.WebResults)
	state.AnswerText = record.Text
	state.SourceType = record.Kind
	state.Citations = record.Citations
	state.WebSources = record.Sources

	return nodeFormatOutput
}

func (e *Engine) formatOutput(state *State) node {
	state.Metadata[MetaConfidence] = state.Assessment.Confidence
	state.Metadata[MetaSourceCount] = len(state.usedSources())
	return nodeDone
}
