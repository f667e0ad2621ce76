package model

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Type      string    `gorm:"type:varchar(50);not null"`
	Breed     string    `gorm:"type:varchar(100)"`
	Age       int       `gorm:"not null"`
	Weight    float64   `gorm:"not null"`
	OwnerId   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Pet) TableName() string {
	return "pets"
}
