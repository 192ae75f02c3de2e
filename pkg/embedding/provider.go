package embedding

import (
	"context"
	"errors"
)

// ErrEmbeddingService marks a failure of the external embedding service.
// Callers use errors.Is to distinguish it from programming errors.
var ErrEmbeddingService = errors.New("embedding service error")

// Task types passed through to providers that distinguish document vs query
// embeddings (Gemini does; Ollama ignores them).
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}
