package dto

import (
	"time"

	"github.com/google/uuid"
)

// PetDetailsPayload carries pet data as submitted by the client form.
// Age and weight arrive as strings and are validated as non-negative
// numbers by the workflow engine.
type PetDetailsPayload struct {
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type" validate:"required"`
	Breed  string `json:"breed"`
	Age    string `json:"age" validate:"required"`
	Weight string `json:"weight" validate:"required"`
}

type SubmitRequestRequest struct {
	AppointmentDate    string            `json:"appointment_date" validate:"required"`
	AppointmentType    string            `json:"appointment_type" validate:"required"`
	PreferredVetId     *uuid.UUID        `json:"preferred_vet_id"`
	Reason             string            `json:"reason"`
	AdditionalComments string            `json:"additional_comments"`
	PetDetails         PetDetailsPayload `json:"pet_details" validate:"required"`
}

type AcceptRequestRequest struct {
	Id            uuid.UUID
	AssignedVetId *uuid.UUID `json:"assigned_vet_id"`
	Remark        string     `json:"remark"`
}

type DeclineRequestRequest struct {
	Id             uuid.UUID
	Remark         string     `json:"remark"`
	RescheduleDate *string    `json:"reschedule_date"`
	AssignedVetId  *uuid.UUID `json:"assigned_vet_id"`
}

type EditPetPayload struct {
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type" validate:"required"`
	Breed  string `json:"breed"`
	Age    string `json:"age" validate:"required"`
	Weight string `json:"weight" validate:"required"`
}

type EditRequestRequest struct {
	Id                 uuid.UUID
	AppointmentDate    string          `json:"appointment_date" validate:"required"`
	AppointmentType    string          `json:"appointment_type" validate:"required"`
	PreferredVetId     *uuid.UUID      `json:"preferred_vet_id"`
	Reason             string          `json:"reason"`
	AdditionalComments string          `json:"additional_comments"`
	Pet                *EditPetPayload `json:"pet"`
}

type RescheduleRequestRequest struct {
	Id                 uuid.UUID
	NewAppointmentDate string `json:"new_appointment_date" validate:"required"`
	Remark             string `json:"remark"`
	Approve            bool   `json:"approve"`
}

type PetResponse struct {
	Id     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Breed  string    `json:"breed"`
	Age    int       `json:"age"`
	Weight float64   `json:"weight"`
}

type RequestResponse struct {
	Id                 uuid.UUID    `json:"id"`
	AppointmentDate    time.Time    `json:"appointment_date"`
	AppointmentType    string       `json:"appointment_type"`
	Status             string       `json:"status"`
	Reason             string       `json:"reason"`
	AdditionalComments string       `json:"additional_comments"`
	Remark             string       `json:"remark,omitempty"`
	RescheduleDate     *time.Time   `json:"reschedule_date,omitempty"`
	ApprovedAt         *time.Time   `json:"approved_at,omitempty"`
	DeclinedAt         *time.Time   `json:"declined_at,omitempty"`
	Pet                *PetResponse `json:"pet,omitempty"`
	Owner              *UserSummary `json:"owner,omitempty"`
	PreferredVet       *UserSummary `json:"preferred_vet,omitempty"`
	AssignedVetId      *uuid.UUID   `json:"assigned_vet_id,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

type AvailabilityResponse struct {
	VetId     uuid.UUID `json:"vet_id"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Available bool      `json:"available"`
	Conflicts int       `json:"conflicts"`
}
