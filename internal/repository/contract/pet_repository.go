package contract

import (
	"context"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PetRepository interface {
	Create(ctx context.Context, pet *entity.Pet) error
	Update(ctx context.Context, pet *entity.Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
