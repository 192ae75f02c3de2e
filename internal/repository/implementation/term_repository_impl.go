package implementation

import (
	"context"
	"errors"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/mapper"
	"study-tutor-be/internal/model"
	"study-tutor-be/internal/repository/contract"
	"study-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TermRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TermMapper
}

func NewTermRepository(db *gorm.DB) contract.TermRepository {
	return &TermRepositoryImpl{
		db:     db,
		mapper: mapper.NewTermMapper(),
	}
}

func (r *TermRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TermRepositoryImpl) Create(ctx context.Context, term *entity.Term) error {
	m := r.mapper.ToModel(term)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*term = *r.mapper.ToEntity(m)
	return nil
}

func (r *TermRepositoryImpl) Update(ctx context.Context, term *entity.Term) error {
	m := r.mapper.ToModel(term)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*term = *r.mapper.ToEntity(m)
	return nil
}

func (r *TermRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Term{}, id).Error
}

func (r *TermRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Term, error) {
	var m model.Term
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TermRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Term, error) {
	var models []*model.Term
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TermRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Term{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
