package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveNoteRequest struct {
	SubjectId uuid.UUID `json:"subject_id" validate:"required"`
	Content   string    `json:"content"`
}

type SaveNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowNoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	SubjectId uuid.UUID  `json:"subject_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
