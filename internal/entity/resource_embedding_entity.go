package entity

import (
	"time"

	"github.com/google/uuid"
)

type ResourceEmbedding struct {
	Id             uuid.UUID
	Content        string
	EmbeddingValue []float32
	ResourceId     uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// RetrievedChunk is a matched embedding row with its cosine similarity
// against the query vector.
type RetrievedChunk struct {
	Content    string
	ResourceId uuid.UUID
	Similarity float64
}
