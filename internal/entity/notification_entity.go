package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an ephemeral push payload. It is delivered over the
// WebSocket hub and never persisted.
type Notification struct {
	Id        uuid.UUID              `json:"id"`
	UserId    uuid.UUID              `json:"user_id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
