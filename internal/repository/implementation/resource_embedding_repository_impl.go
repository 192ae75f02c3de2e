package implementation

import (
	"context"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/mapper"
	"study-tutor-be/internal/model"
	"study-tutor-be/internal/repository/contract"
	"study-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ResourceEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResourceEmbeddingMapper
}

func NewResourceEmbeddingRepository(db *gorm.DB) contract.ResourceEmbeddingRepository {
	return &ResourceEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewResourceEmbeddingMapper(),
	}
}

func (r *ResourceEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResourceEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ResourceEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResourceEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ResourceEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := make([]*model.ResourceEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Write generated IDs back to the entities
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ResourceEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ResourceEmbedding{}, id).Error
}

func (r *ResourceEmbeddingRepositoryImpl) DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("resource_id = ?", resourceId).Delete(&model.ResourceEmbedding{}).Error
}

func (r *ResourceEmbeddingRepositoryImpl) DeleteBySubjectId(ctx context.Context, subjectId uuid.UUID) error {
	subQuery := r.db.Table("resources").Select("id").Where("subject_id = ?", subjectId)
	return r.db.WithContext(ctx).Where("resource_id IN (?)", subQuery).Delete(&model.ResourceEmbedding{}).Error
}

func (r *ResourceEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResourceEmbedding, error) {
	var models []*model.ResourceEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ResourceEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ResourceEmbedding{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SearchSimilarWithScore joins against resources to scope retrieval to one
// subject. Cosine distance in pgvector is 1 - cosine_similarity, so
// similarity is computed as 1 - (embedding_value <=> query_vector).
func (r *ResourceEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, subjectId uuid.UUID, threshold float64) ([]*contract.ScoredResourceEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.ResourceEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("resource_embeddings").
		Select("resource_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN resources ON resources.id = resource_embeddings.resource_id").
		Where("resources.subject_id = ?", subjectId).
		Where("resource_embeddings.deleted_at IS NULL").
		Where("resources.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredResourceEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredResourceEmbedding{
			Embedding:  r.mapper.ToEntity(&res.ResourceEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
