package contract

import (
	"context"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TermRepository interface {
	Create(ctx context.Context, term *entity.Term) error
	Update(ctx context.Context, term *entity.Term) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Term, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Term, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
