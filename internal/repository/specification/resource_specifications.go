package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByTermID struct {
	TermID uuid.UUID
}

func (s ByTermID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("term_id = ?", s.TermID)
}

type BySubjectID struct {
	SubjectID uuid.UUID
}

func (s BySubjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_id = ?", s.SubjectID)
}

type ByResourceType struct {
	Type string
}

func (s ByResourceType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ByResourceID struct {
	ResourceID uuid.UUID
}

func (s ByResourceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resource_id = ?", s.ResourceID)
}
