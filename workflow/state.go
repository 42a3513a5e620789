package workflow

import (
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/websearch"
)

// Metadata keys set on the final response.
const (
	MetaFallbackNotification = "fallback_notification"
	MetaConfidence           = "confidence"
	MetaSourceCount          = "source_count"
)

// FallbackNotice is surfaced to the user when the corpus cannot answer
// and the web search is about to run.
const FallbackNotice = "⚠️ The information was not found in the knowledge base. " +
	"Searching the web for an answer..."

// State carries a question through the workflow nodes. Each node reads
// and updates it in place.
type State struct {
	Question string

	// Knowledge-base path
	Passages     []*core.ScoredPassage
	Assessment   core.Assessment
	KBSufficient bool
	WebFallback  bool
	Context      string
	KBSources    []core.SourceRef

	// Web path
	WebQuery   string
	WebResults []websearch.Result
	WebSources []core.SourceRef

	// Output
	AnswerText string
	SourceType core.SourceKind
	Citations  string

	// Err records the first degraded component failure. It never aborts
	// the run.
	Err      error
	Metadata map[string]any
}

func newState(question string) *State {
	return &State{
		Question: question,
		Metadata: make(map[string]any),
	}
}

func (s *State) response() *core.Response {
	return &core.Response{
		Question:   s.Question,
		Answer:     s.AnswerText,
		SourceType: s.SourceType,
		Citations:  s.Citations,
		Metadata:   s.Metadata,
	}
}

// usedSources returns the references behind the answer that was
// actually produced.
func (s *State) usedSources() []core.SourceRef {
	switch s.SourceType {
	case core.SourceKnowledgeBase:
		return s.KBSources
	case core.SourceWeb:
		return s.WebSources
	default:
		return nil
	}
}
