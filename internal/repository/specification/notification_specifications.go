package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForUser keeps notifications addressed to one recipient.
type ForUser struct {
	UserID uuid.UUID
}

func (s ForUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// UnreadOnly keeps notifications not yet read.
type UnreadOnly struct{}

func (s UnreadOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}

// ByAppointmentRequestID keeps records linked to one appointment request.
type ByAppointmentRequestID struct {
	AppointmentRequestID uuid.UUID
}

func (s ByAppointmentRequestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("appointment_request_id = ?", s.AppointmentRequestID)
}
