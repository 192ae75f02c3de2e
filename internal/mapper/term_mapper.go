package mapper

import (
	"time"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/model"

	"gorm.io/gorm"
)

type TermMapper struct{}

func NewTermMapper() *TermMapper {
	return &TermMapper{}
}

func (m *TermMapper) ToEntity(t *model.Term) *entity.Term {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		dt := t.DeletedAt.Time
		deletedAt = &dt
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ut := t.UpdatedAt
		updatedAt = &ut
	}

	return &entity.Term{
		Id:          t.Id,
		Title:       t.Title,
		Description: t.Description,
		UserId:      t.UserId,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   t.DeletedAt.Valid,
	}
}

func (m *TermMapper) ToModel(t *entity.Term) *model.Term {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Term{
		Id:          t.Id,
		Title:       t.Title,
		Description: t.Description,
		UserId:      t.UserId,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *TermMapper) ToEntities(terms []*model.Term) []*entity.Term {
	entities := make([]*entity.Term, len(terms))
	for i, t := range terms {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TermMapper) ToModels(terms []*entity.Term) []*model.Term {
	models := make([]*model.Term, len(terms))
	for i, t := range terms {
		models[i] = m.ToModel(t)
	}
	return models
}
