package contract

import (
	"context"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySubjectId(ctx context.Context, subjectId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resource, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resource, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
