package implementation

import (
	"context"
	"errors"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/mapper"
	"vetcare-be/internal/model"
	"vetcare-be/internal/repository/contract"
	"vetcare-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AppointmentRequestMapper
}

func NewAppointmentRequestRepository(db *gorm.DB) contract.AppointmentRequestRepository {
	return &AppointmentRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewAppointmentRequestMapper(),
	}
}

func (r *AppointmentRequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AppointmentRequestRepositoryImpl) Create(ctx context.Context, request *entity.AppointmentRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *AppointmentRequestRepositoryImpl) Update(ctx context.Context, request *entity.AppointmentRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *AppointmentRequestRepositoryImpl) UpdateGuarded(ctx context.Context, request *entity.AppointmentRequest, expected entity.RequestStatus) (bool, error) {
	m := r.mapper.ToModel(request)

	// Select("*") so zero and nil values overwrite too; the status guard in
	// the WHERE clause is what makes concurrent transitions lose cleanly.
	result := r.db.WithContext(ctx).
		Model(&model.AppointmentRequest{}).
		Select("*").
		Omit("id", "created_at").
		Where("id = ? AND status = ?", m.Id, string(expected)).
		Updates(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AppointmentRequestRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AppointmentRequest{}, id).Error
}

func (r *AppointmentRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AppointmentRequest, error) {
	var m model.AppointmentRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AppointmentRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AppointmentRequest, error) {
	var models []*model.AppointmentRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AppointmentRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AppointmentRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
