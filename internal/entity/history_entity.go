package entity

import (
	"time"

	"github.com/google/uuid"
)

// History closes out an appointment request. Exactly one per request,
// created when the request transitions to Successful.
type History struct {
	Id                      uuid.UUID
	AppointmentRequestId    uuid.UUID
	OwnerId                 uuid.UUID
	DateAccomplished        time.Time
	ProceduresPerformed     string
	PetConditionAfter       string
	RecommendationsForOwner string
	VeterinariansNotes      string
	PaymentDate             time.Time
	PaymentMethod           string
	Amount                  float64
	CreatedAt               time.Time
	UpdatedAt               *time.Time
}
