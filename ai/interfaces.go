package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Role tags a chat message with its speaker.
type Role int

const (
	// RoleSystem carries instructions to the model.
	RoleSystem Role = iota + 1
	// RoleHuman carries user-originated content.
	RoleHuman
)

// Message is one role-tagged message in a generation request.
type Message struct {
	Role Role
	Text string
}

// Generator produces a text completion from an ordered sequence of
// role-tagged messages. Calls are synchronous and blocking; cancellation
// and timeouts are the caller's responsibility via ctx.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate invokes the language model once and returns the raw
	// completion text. Returns an error if the model is unreachable or
	// produces no choices.
	Generate(ctx context.Context, messages []Message) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the answer generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
