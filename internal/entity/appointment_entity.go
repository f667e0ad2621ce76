package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "Pending"
	RequestStatusApproved   RequestStatus = "Approved"
	RequestStatusDeclined   RequestStatus = "Declined"
	RequestStatusSuccessful RequestStatus = "Successful"
)

// ParseRequestStatus rejects any status string outside the known set.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDeclined, RequestStatusSuccessful:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("unknown request status: %q", s)
}

// Editable reports whether non-status fields may still be changed.
// Approved and Successful requests are frozen for the generic edit operation.
func (s RequestStatus) Editable() bool {
	return s == RequestStatusPending || s == RequestStatusDeclined
}

// Declinable reports whether the request may still be declined.
// Declining twice, or declining a finished request, is an invalid transition.
func (s RequestStatus) Declinable() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

type AppointmentRequest struct {
	Id                 uuid.UUID
	AppointmentDate    time.Time
	AppointmentType    string
	Status             RequestStatus
	Reason             string
	AdditionalComments string
	Remark             string
	RescheduleDate     *time.Time
	ApprovedAt         *time.Time
	DeclinedAt         *time.Time
	PetId              uuid.UUID
	OwnerId            uuid.UUID
	PreferredVetId     *uuid.UUID
	AssignedVetId      *uuid.UUID
	AdminId            *uuid.UUID
	ApprovedBy         *uuid.UUID
	DeclinedBy         *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
