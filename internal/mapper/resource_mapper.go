package mapper

import (
	"encoding/json"
	"time"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResourceMapper struct{}

func NewResourceMapper() *ResourceMapper {
	return &ResourceMapper{}
}

func (m *ResourceMapper) ToEntity(r *model.Resource) *entity.Resource {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	var metadata *entity.ResourceMetadata
	if len(r.Metadata) > 0 {
		var md entity.ResourceMetadata
		if err := json.Unmarshal(r.Metadata, &md); err == nil {
			metadata = &md
		}
	}

	return &entity.Resource{
		Id:             r.Id,
		Title:          r.Title,
		Type:           r.Type,
		Url:            r.Url,
		ContentSummary: r.ContentSummary,
		Metadata:       metadata,
		SubjectId:      r.SubjectId,
		UserId:         r.UserId,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      r.DeletedAt.Valid,
	}
}

func (m *ResourceMapper) ToModel(r *entity.Resource) *model.Resource {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	var metadata datatypes.JSON
	if r.Metadata != nil {
		if raw, err := json.Marshal(r.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Resource{
		Id:             r.Id,
		Title:          r.Title,
		Type:           r.Type,
		Url:            r.Url,
		ContentSummary: r.ContentSummary,
		Metadata:       metadata,
		SubjectId:      r.SubjectId,
		UserId:         r.UserId,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *ResourceMapper) ToEntities(resources []*model.Resource) []*entity.Resource {
	entities := make([]*entity.Resource, len(resources))
	for i, r := range resources {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *ResourceMapper) ToModels(resources []*entity.Resource) []*model.Resource {
	models := make([]*model.Resource, len(resources))
	for i, r := range resources {
		models[i] = m.ToModel(r)
	}
	return models
}
