package mapper

import (
	"time"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/model"
)

type AppointmentRequestMapper struct{}

func NewAppointmentRequestMapper() *AppointmentRequestMapper {
	return &AppointmentRequestMapper{}
}

func (m *AppointmentRequestMapper) ToEntity(r *model.AppointmentRequest) *entity.AppointmentRequest {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.AppointmentRequest{
		Id:                 r.Id,
		AppointmentDate:    r.AppointmentDate,
		AppointmentType:    r.AppointmentType,
		Status:             entity.RequestStatus(r.Status),
		Reason:             r.Reason,
		AdditionalComments: r.AdditionalComments,
		Remark:             r.Remark,
		RescheduleDate:     r.RescheduleDate,
		ApprovedAt:         r.ApprovedAt,
		DeclinedAt:         r.DeclinedAt,
		PetId:              r.PetId,
		OwnerId:            r.OwnerId,
		PreferredVetId:     r.PreferredVetId,
		AssignedVetId:      r.AssignedVetId,
		AdminId:            r.AdminId,
		ApprovedBy:         r.ApprovedBy,
		DeclinedBy:         r.DeclinedBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *AppointmentRequestMapper) ToModel(r *entity.AppointmentRequest) *model.AppointmentRequest {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.AppointmentRequest{
		Id:                 r.Id,
		AppointmentDate:    r.AppointmentDate,
		AppointmentType:    r.AppointmentType,
		Status:             string(r.Status),
		Reason:             r.Reason,
		AdditionalComments: r.AdditionalComments,
		Remark:             r.Remark,
		RescheduleDate:     r.RescheduleDate,
		ApprovedAt:         r.ApprovedAt,
		DeclinedAt:         r.DeclinedAt,
		PetId:              r.PetId,
		OwnerId:            r.OwnerId,
		PreferredVetId:     r.PreferredVetId,
		AssignedVetId:      r.AssignedVetId,
		AdminId:            r.AdminId,
		ApprovedBy:         r.ApprovedBy,
		DeclinedBy:         r.DeclinedBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *AppointmentRequestMapper) ToEntities(requests []*model.AppointmentRequest) []*entity.AppointmentRequest {
	entities := make([]*entity.AppointmentRequest, len(requests))
	for i, r := range requests {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
