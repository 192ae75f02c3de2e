package dto

import "github.com/google/uuid"

type ChatRequest struct {
	SubjectId uuid.UUID `json:"subject_id" validate:"required"`
	Question  string    `json:"question" validate:"required"`
}

// ChatSourceDTO is a retrieved chunk that grounded the answer.
type ChatSourceDTO struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

type ChatResponse struct {
	Answer  string          `json:"answer"`
	Sources []ChatSourceDTO `json:"sources"`
}
