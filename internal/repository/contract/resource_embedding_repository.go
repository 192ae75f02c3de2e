package contract

import (
	"context"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredResourceEmbedding wraps ResourceEmbedding with its similarity score
type ScoredResourceEmbedding struct {
	Embedding  *entity.ResourceEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ResourceEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ResourceEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.ResourceEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error
	DeleteBySubjectId(ctx context.Context, subjectId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResourceEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns chunks within a subject whose cosine
	// similarity against the query vector meets the threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, subjectId uuid.UUID, threshold float64) ([]*ScoredResourceEmbedding, error)
}
