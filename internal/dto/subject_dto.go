package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSubjectRequest struct {
	Title  string    `json:"title" validate:"required"`
	Color  string    `json:"color"`
	TermId uuid.UUID `json:"term_id" validate:"required"`
}

type CreateSubjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowSubjectResponse struct {
	Id            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Color         string     `json:"color"`
	TermId        uuid.UUID  `json:"term_id"`
	ResourceCount int64      `json:"resource_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type UpdateSubjectRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
	Color string `json:"color"`
}

type UpdateSubjectResponse struct {
	Id uuid.UUID `json:"id"`
}
