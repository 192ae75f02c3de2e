package entity

import (
	"time"

	"github.com/google/uuid"
)

type Term struct {
	Id          uuid.UUID
	Title       string
	Description string
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
