package service

import (
	"context"
	"time"

	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/repository/memory"
	"vetcare-be/internal/repository/specification"
	"vetcare-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAvailabilityService interface {
	// CheckAvailability reports whether a vet already has approved
	// appointments inside [from, to). The answer is advisory only:
	// nothing stops an admin from double-booking past it.
	CheckAvailability(ctx context.Context, vetId uuid.UUID, from, to time.Time) (*dto.AvailabilityResponse, error)

	// InvalidateVet drops the cached snapshot after a schedule change.
	InvalidateVet(vetId uuid.UUID)
}

type availabilityService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.AvailabilityCache
}

func NewAvailabilityService(uowFactory unitofwork.RepositoryFactory, cache *memory.AvailabilityCache) IAvailabilityService {
	return &availabilityService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, vetId uuid.UUID, from, to time.Time) (*dto.AvailabilityResponse, error) {
	if !to.After(from) {
		return nil, apperror.NewValidation("availability window end must be after its start")
	}

	requests, found := s.cache.Get(vetId)
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		requests, err = uow.AppointmentRequestRepository().FindAll(ctx,
			specification.AssignedTo{VetID: vetId},
			specification.ByStatus{Status: entity.RequestStatusApproved},
		)
		if err != nil {
			return nil, err
		}
		s.cache.Set(vetId, requests)
	}

	conflicts := 0
	for _, request := range requests {
		if !request.AppointmentDate.Before(from) && request.AppointmentDate.Before(to) {
			conflicts++
		}
	}

	return &dto.AvailabilityResponse{
		VetId:     vetId,
		From:      from,
		To:        to,
		Available: conflicts == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *availabilityService) InvalidateVet(vetId uuid.UUID) {
	s.cache.Invalidate(vetId)
}
