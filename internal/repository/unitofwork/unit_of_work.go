package unitofwork

import (
	"context"

	"vetcare-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical operation. Workflow
// transitions that touch more than one table (request+pet, request+history)
// run between Begin and Commit so partial application cannot happen.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PetRepository() contract.PetRepository
	AppointmentRequestRepository() contract.AppointmentRequestRepository
	NotificationRepository() contract.NotificationRepository
	HistoryRepository() contract.HistoryRepository
}
