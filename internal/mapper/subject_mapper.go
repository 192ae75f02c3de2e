package mapper

import (
	"time"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/model"

	"gorm.io/gorm"
)

type SubjectMapper struct{}

func NewSubjectMapper() *SubjectMapper {
	return &SubjectMapper{}
}

func (m *SubjectMapper) ToEntity(s *model.Subject) *entity.Subject {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Subject{
		Id:        s.Id,
		Title:     s.Title,
		Color:     s.Color,
		TermId:    s.TermId,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *SubjectMapper) ToModel(s *entity.Subject) *model.Subject {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Subject{
		Id:        s.Id,
		Title:     s.Title,
		Color:     s.Color,
		TermId:    s.TermId,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *SubjectMapper) ToEntities(subjects []*model.Subject) []*entity.Subject {
	entities := make([]*entity.Subject, len(subjects))
	for i, s := range subjects {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *SubjectMapper) ToModels(subjects []*entity.Subject) []*model.Subject {
	models := make([]*model.Subject, len(subjects))
	for i, s := range subjects {
		models[i] = m.ToModel(s)
	}
	return models
}
