package model

import (
	"time"

	"github.com/google/uuid"
)

type History struct {
	Id                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AppointmentRequestId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OwnerId                 uuid.UUID `gorm:"type:uuid;not null;index"`
	DateAccomplished        time.Time `gorm:"autoCreateTime"`
	ProceduresPerformed     string    `gorm:"type:text"`
	PetConditionAfter       string    `gorm:"type:text"`
	RecommendationsForOwner string    `gorm:"type:text"`
	VeterinariansNotes      string    `gorm:"type:text"`
	PaymentDate             time.Time `gorm:"not null"`
	PaymentMethod           string    `gorm:"type:varchar(50);not null"`
	Amount                  float64   `gorm:"not null"`
	CreatedAt               time.Time `gorm:"autoCreateTime"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime"`
}

func (History) TableName() string {
	return "histories"
}
