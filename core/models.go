package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs, which makes
// corpus ingestion idempotent.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceKind identifies which answering path produced an answer.
type SourceKind int

const (
	// SourceNone means neither the knowledge base nor the web produced an answer.
	SourceNone SourceKind = iota
	// SourceKnowledgeBase means the answer was generated from corpus passages.
	SourceKnowledgeBase
	// SourceWeb means the answer was generated from web search results.
	SourceWeb
)

// String returns the wire representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceKnowledgeBase:
		return "knowledge_base"
	case SourceWeb:
		return "web"
	default:
		return "none"
	}
}

// Passage is a unit of text from the private corpus.
// Passages are created during ingestion and enriched with an embedding
// vector before being persisted.
type Passage struct {
	Id         ID
	Document   string // originating document identifier (e.g. PDF filename)
	Page       int    // 1-based page locator within the document
	Content    string
	Vector     []float32 // embedding for nearest-neighbor search
	InsertedAt time.Time
}

// Match is a passage returned by the vector index together with its raw
// distance. Smaller distance means more similar; the distance is unbounded
// above and never negative.
type Match struct {
	Passage  *Passage
	Distance float64
}

// ScoredPassage is a retrieved passage with a normalized similarity
// score in (0, 1].
type ScoredPassage struct {
	Passage    *Passage
	Similarity float64
}

// Assessment is the relevance verdict over one retrieval call.
// It is computed once per request and never mutated afterwards.
type Assessment struct {
	Sufficient   bool    // whether the passages can answer the question
	Confidence   float64 // rank-weighted aggregate score in [0, 1]
	TopScore     float64
	AvgScore     float64
	Reason       string // names the missed threshold when insufficient
	PassageCount int
}

// SourceRef is a formatted reference to the origin of answer material.
// For knowledge-base answers the locator is a page number; for web answers
// it is a URL. Preview carries a short excerpt or title.
type SourceRef struct {
	Locator string
	Preview string
}

// AnswerRecord is the output of one answering path. Exactly one record
// becomes the final answer of a workflow run.
type AnswerRecord struct {
	Text      string
	Kind      SourceKind
	Citations string
	Sources   []SourceRef
	Failed    bool // generation failed and Text holds the fixed apology
}

// Response is the externally visible output of a workflow run. Its shape
// is identical regardless of which internal path produced the answer.
type Response struct {
	Question   string
	Answer     string
	SourceType SourceKind
	Citations  string
	Metadata   map[string]any
}
