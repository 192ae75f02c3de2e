package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ResourceTypePDF      = "pdf"
	ResourceTypeVideo    = "youtube_video"
	ResourceTypePlaylist = "youtube_playlist"
	ResourceTypeLink     = "link"
)

// ResourceMetadata carries type-specific details, stored as jsonb.
// Only playlists populate the video counters.
type ResourceMetadata struct {
	PlaylistId      string   `json:"playlist_id,omitempty"`
	VideoIds        []string `json:"video_ids,omitempty"`
	ProcessedVideos int      `json:"processed_videos,omitempty"`
	FailedVideos    int      `json:"failed_videos,omitempty"`
	FileSize        int64    `json:"file_size,omitempty"`
}

type Resource struct {
	Id             uuid.UUID
	Title          string
	Type           string
	Url            string
	ContentSummary string
	Metadata       *ResourceMetadata
	SubjectId      uuid.UUID
	UserId         uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
