package dto

import (
	"time"

	"github.com/google/uuid"
)

type FinalizeHistoryRequest struct {
	AppointmentRequestId    uuid.UUID `json:"appointment_request_id" validate:"required"`
	ProceduresPerformed     string    `json:"procedures_performed"`
	PetConditionAfter       string    `json:"pet_condition_after"`
	RecommendationsForOwner string    `json:"recommendations_for_owner"`
	VeterinariansNotes      string    `json:"veterinarians_notes"`
	PaymentDate             string    `json:"payment_date" validate:"required"`
	PaymentMethod           string    `json:"payment_method" validate:"required"`
	Amount                  float64   `json:"amount" validate:"gte=0"`
}

type HistoryResponse struct {
	Id                      uuid.UUID  `json:"id"`
	AppointmentRequestId    uuid.UUID  `json:"appointment_request_id"`
	DateAccomplished        time.Time  `json:"date_accomplished"`
	ProceduresPerformed     string     `json:"procedures_performed"`
	PetConditionAfter       string     `json:"pet_condition_after"`
	RecommendationsForOwner string     `json:"recommendations_for_owner"`
	VeterinariansNotes      string     `json:"veterinarians_notes"`
	PaymentDate             time.Time  `json:"payment_date"`
	PaymentMethod           string     `json:"payment_method"`
	Amount                  float64    `json:"amount"`
	UpdatedAt               *time.Time `json:"updated_at,omitempty"`
}

// PostAppointmentSummary is one row of the completed-appointment schedule.
type PostAppointmentSummary struct {
	Id               uuid.UUID    `json:"id"`
	Owner            *UserSummary `json:"owner"`
	Pet              *PetResponse `json:"pet"`
	AssignedVet      *UserSummary `json:"assigned_vet,omitempty"`
	AppointmentDate  time.Time    `json:"appointment_date"`
	AppointmentType  string       `json:"appointment_type"`
	DateAccomplished time.Time    `json:"date_accomplished"`
	HistoryId        uuid.UUID    `json:"history_id"`
}

type EditHistoryRequest struct {
	Id                      uuid.UUID
	ProceduresPerformed     string `json:"procedures_performed"`
	PetConditionAfter       string `json:"pet_condition_after"`
	RecommendationsForOwner string `json:"recommendations_for_owner"`
	VeterinariansNotes      string `json:"veterinarians_notes"`
}

type PaymentHistoryItem struct {
	Id            uuid.UUID    `json:"id"`
	PaymentDate   time.Time    `json:"payment_date"`
	OwnerId       uuid.UUID    `json:"owner_id"`
	PaymentMethod string       `json:"payment_method"`
	Amount        float64      `json:"amount"`
	AssignedVet   *UserSummary `json:"assigned_vet,omitempty"`
}

type PaymentHistoryDetail struct {
	Id            uuid.UUID    `json:"id"`
	PaymentDate   time.Time    `json:"payment_date"`
	PaymentMethod string       `json:"payment_method"`
	Amount        float64      `json:"amount"`
	Owner         *UserSummary `json:"owner,omitempty"`
}

type EditPaymentHistoryRequest struct {
	Id            uuid.UUID
	PaymentDate   string  `json:"payment_date" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
}

type StaffRemarksResponse struct {
	DateAccomplished        time.Time `json:"date_accomplished"`
	ProceduresPerformed     string    `json:"procedures_performed"`
	PetConditionAfter       string    `json:"pet_condition_after"`
	RecommendationsForOwner string    `json:"recommendations_for_owner"`
	VeterinariansNotes      string    `json:"veterinarians_notes"`
	AssignedVet             string    `json:"assigned_vet"`
}
