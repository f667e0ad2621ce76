package contract

import (
	"context"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/repository/specification"

	"github.com/google/uuid"
)

type HistoryRepository interface {
	Create(ctx context.Context, history *entity.History) error
	Update(ctx context.Context, history *entity.History) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.History, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.History, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
