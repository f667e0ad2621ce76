package entity

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	Id        uuid.UUID
	Name      string
	Type      string
	Breed     string
	Age       int
	Weight    float64
	OwnerId   uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
