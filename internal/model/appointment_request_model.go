package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentRequest struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AppointmentDate    time.Time  `gorm:"not null;index"`
	AppointmentType    string     `gorm:"type:varchar(100);not null"`
	Status             string     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	Reason             string     `gorm:"type:text"`
	AdditionalComments string     `gorm:"type:text"`
	Remark             string     `gorm:"type:text"`
	RescheduleDate     *time.Time
	ApprovedAt         *time.Time
	DeclinedAt         *time.Time
	PetId              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	OwnerId            uuid.UUID  `gorm:"type:uuid;not null;index"`
	PreferredVetId     *uuid.UUID `gorm:"type:uuid;index"`
	AssignedVetId      *uuid.UUID `gorm:"type:uuid;index:idx_requests_assigned_vet_status,priority:1"`
	AdminId            *uuid.UUID `gorm:"type:uuid"`
	ApprovedBy         *uuid.UUID `gorm:"type:uuid"`
	DeclinedBy         *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (AppointmentRequest) TableName() string {
	return "appointment_requests"
}
