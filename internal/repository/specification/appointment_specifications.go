package specification

import (
	"vetcare-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy restricts requests to a single client.
type OwnedBy struct {
	OwnerID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

// ByStatus filters requests in a single workflow state.
type ByStatus struct {
	Status entity.RequestStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

// StatusNotIn excludes the given workflow states.
type StatusNotIn struct {
	Statuses []entity.RequestStatus
}

func (s StatusNotIn) Apply(db *gorm.DB) *gorm.DB {
	values := make([]string, len(s.Statuses))
	for i, status := range s.Statuses {
		values[i] = string(status)
	}
	return db.Where("status NOT IN ?", values)
}

// AssignedTo filters requests booked for a vet.
type AssignedTo struct {
	VetID uuid.UUID
}

func (s AssignedTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("assigned_vet_id = ?", s.VetID)
}
