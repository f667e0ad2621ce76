package mapper

import (
	"time"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/model"
)

type HistoryMapper struct{}

func NewHistoryMapper() *HistoryMapper {
	return &HistoryMapper{}
}

func (m *HistoryMapper) ToEntity(h *model.History) *entity.History {
	if h == nil {
		return nil
	}

	var updatedAt *time.Time
	if !h.UpdatedAt.IsZero() {
		t := h.UpdatedAt
		updatedAt = &t
	}

	return &entity.History{
		Id:                      h.Id,
		AppointmentRequestId:    h.AppointmentRequestId,
		OwnerId:                 h.OwnerId,
		DateAccomplished:        h.DateAccomplished,
		ProceduresPerformed:     h.ProceduresPerformed,
		PetConditionAfter:       h.PetConditionAfter,
		RecommendationsForOwner: h.RecommendationsForOwner,
		VeterinariansNotes:      h.VeterinariansNotes,
		PaymentDate:             h.PaymentDate,
		PaymentMethod:           h.PaymentMethod,
		Amount:                  h.Amount,
		CreatedAt:               h.CreatedAt,
		UpdatedAt:               updatedAt,
	}
}

func (m *HistoryMapper) ToModel(h *entity.History) *model.History {
	if h == nil {
		return nil
	}

	var updatedAt time.Time
	if h.UpdatedAt != nil {
		updatedAt = *h.UpdatedAt
	}

	return &model.History{
		Id:                      h.Id,
		AppointmentRequestId:    h.AppointmentRequestId,
		OwnerId:                 h.OwnerId,
		DateAccomplished:        h.DateAccomplished,
		ProceduresPerformed:     h.ProceduresPerformed,
		PetConditionAfter:       h.PetConditionAfter,
		RecommendationsForOwner: h.RecommendationsForOwner,
		VeterinariansNotes:      h.VeterinariansNotes,
		PaymentDate:             h.PaymentDate,
		PaymentMethod:           h.PaymentMethod,
		Amount:                  h.Amount,
		CreatedAt:               h.CreatedAt,
		UpdatedAt:               updatedAt,
	}
}

func (m *HistoryMapper) ToEntities(histories []*model.History) []*entity.History {
	entities := make([]*entity.History, len(histories))
	for i, h := range histories {
		entities[i] = m.ToEntity(h)
	}
	return entities
}
