package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadPDFRequest is populated from a multipart form. The file bytes
// arrive through the form file, not the JSON body.
type UploadPDFRequest struct {
	SubjectId uuid.UUID
	FileName  string
	Data      []byte
}

type AddVideoRequest struct {
	SubjectId uuid.UUID `json:"subject_id" validate:"required"`
	Url       string    `json:"url" validate:"required,url"`
}

type AddPlaylistRequest struct {
	SubjectId uuid.UUID `json:"subject_id" validate:"required"`
	Url       string    `json:"url" validate:"required,url"`
}

type AddLinkRequest struct {
	SubjectId uuid.UUID `json:"subject_id" validate:"required"`
	Url       string    `json:"url" validate:"required,url"`
	Title     string    `json:"title"`
	Content   string    `json:"content" validate:"required"`
}

type CreateResourceResponse struct {
	Id             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	ContentSummary string    `json:"content_summary"`
	ChunkCount     int       `json:"chunk_count"`
}

type PlaylistResourceResponse struct {
	Id              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	ContentSummary  string    `json:"content_summary"`
	TotalVideos     int       `json:"total_videos"`
	ProcessedVideos int       `json:"processed_videos"`
	FailedVideos    int       `json:"failed_videos"`
	ChunkCount      int       `json:"chunk_count"`
}

// ResourceIngestedMessage is the payload published on the internal bus
// once a resource finishes ingestion.
type ResourceIngestedMessage struct {
	ResourceId uuid.UUID `json:"resource_id"`
	SubjectId  uuid.UUID `json:"subject_id"`
	UserId     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	ChunkCount int       `json:"chunk_count"`
}

type ShowResourceResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Type           string     `json:"type"`
	Url            string     `json:"url"`
	ContentSummary string     `json:"content_summary"`
	SubjectId      uuid.UUID  `json:"subject_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
