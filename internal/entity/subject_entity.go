package entity

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	Id        uuid.UUID
	Title     string
	Color     string
	TermId    uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
