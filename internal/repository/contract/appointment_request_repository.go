package contract

import (
	"context"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AppointmentRequestRepository interface {
	Create(ctx context.Context, request *entity.AppointmentRequest) error
	Update(ctx context.Context, request *entity.AppointmentRequest) error

	// UpdateGuarded writes every field of request but only while the stored
	// status still equals expected. It reports false when another caller won
	// the transition race, leaving the row untouched.
	UpdateGuarded(ctx context.Context, request *entity.AppointmentRequest, expected entity.RequestStatus) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AppointmentRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AppointmentRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
