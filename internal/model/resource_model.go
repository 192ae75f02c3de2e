package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Resource struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Type           string         `gorm:"type:varchar(32);not null;index"` // pdf, youtube_video, youtube_playlist, link
	Url            string         `gorm:"type:text"`
	ContentSummary string         `gorm:"type:text"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	SubjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Resource) TableName() string {
	return "resources"
}
