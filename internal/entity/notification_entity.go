package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is append-only; only the read-state ever changes after creation.
type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Message   string
	Metadata  map[string]interface{}
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
