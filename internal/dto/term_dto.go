package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTermRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type CreateTermResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowTermResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type UpdateTermRequest struct {
	Id          uuid.UUID
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type UpdateTermResponse struct {
	Id uuid.UUID `json:"id"`
}
