package service

import (
	"context"
	"errors"
	"time"

	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/repository/specification"
	"vetcare-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IHistoryService interface {
	// Finalize closes out a request: it writes the clinical and payment
	// record and marks the request Successful in one transaction.
	Finalize(ctx context.Context, caller Caller, request *dto.FinalizeHistoryRequest) (*dto.HistoryResponse, error)

	GetPostAppointments(ctx context.Context) ([]*dto.PostAppointmentSummary, error)
	GetPostAppointmentById(ctx context.Context, historyId uuid.UUID) (*dto.HistoryResponse, error)
	EditClinical(ctx context.Context, request *dto.EditHistoryRequest) (*dto.HistoryResponse, error)
	DeleteHistory(ctx context.Context, historyId uuid.UUID) error

	GetPaymentHistory(ctx context.Context) ([]*dto.PaymentHistoryItem, error)
	GetPaymentHistoryById(ctx context.Context, historyId uuid.UUID) (*dto.PaymentHistoryDetail, error)
	EditPayment(ctx context.Context, request *dto.EditPaymentHistoryRequest) (*dto.HistoryResponse, error)

	GetStaffRemarks(ctx context.Context, requestId uuid.UUID) (*dto.StaffRemarksResponse, error)
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IHistoryService {
	return &historyService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *historyService) Finalize(ctx context.Context, caller Caller, request *dto.FinalizeHistoryRequest) (*dto.HistoryResponse, error) {
	if caller.Id == uuid.Nil {
		return nil, apperror.NewAuthorization("finalizing an appointment requires an authenticated caller")
	}

	paymentDate, err := parseTimestamp("payment_date", request.PaymentDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	appointment, err := uow.AppointmentRequestRepository().FindOne(ctx, specification.ByID{ID: request.AppointmentRequestId})
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFound("appointment request %s not found", request.AppointmentRequestId)
	}

	existing, err := uow.HistoryRepository().FindOne(ctx, specification.ByAppointmentRequestID{AppointmentRequestID: appointment.Id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("appointment request %s is already finalized", appointment.Id)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	history := entity.History{
		Id:                      uuid.New(),
		AppointmentRequestId:    appointment.Id,
		OwnerId:                 appointment.OwnerId,
		DateAccomplished:        time.Now(),
		ProceduresPerformed:     request.ProceduresPerformed,
		PetConditionAfter:       request.PetConditionAfter,
		RecommendationsForOwner: request.RecommendationsForOwner,
		VeterinariansNotes:      request.VeterinariansNotes,
		PaymentDate:             paymentDate,
		PaymentMethod:           request.PaymentMethod,
		Amount:                  request.Amount,
	}
	if err := uow.HistoryRepository().Create(ctx, &history); err != nil {
		uow.Rollback()
		// The unique index on appointment_request_id catches the race
		// where two finalizations pass the existence check together.
		// Anything else is a storage failure and surfaces as-is.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewConflict("appointment request %s is already finalized", appointment.Id)
		}
		return nil, err
	}

	appointment.Status = entity.RequestStatusSuccessful
	if err := uow.AppointmentRequestRepository().Update(ctx, appointment); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("HistoryService", "Appointment finalized", map[string]interface{}{
		"appointment_request_id": appointment.Id,
		"history_id":             history.Id,
	})
	return historyResponse(&history), nil
}

// GetPostAppointments lists every completed appointment with its owner,
// pet and assigned vet resolved.
func (s *historyService) GetPostAppointments(ctx context.Context) ([]*dto.PostAppointmentSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	histories, err := uow.HistoryRepository().FindAll(ctx,
		specification.OrderBy{Field: "date_accomplished", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if len(histories) == 0 {
		return []*dto.PostAppointmentSummary{}, nil
	}

	requestIds := make([]uuid.UUID, 0, len(histories))
	for _, history := range histories {
		requestIds = append(requestIds, history.AppointmentRequestId)
	}
	requests, err := uow.AppointmentRequestRepository().FindAll(ctx, specification.ByIDs{IDs: requestIds})
	if err != nil {
		return nil, err
	}
	requestById := map[uuid.UUID]*entity.AppointmentRequest{}
	petIds := make([]uuid.UUID, 0, len(requests))
	userIds := make([]uuid.UUID, 0, len(requests)*2)
	for _, request := range requests {
		requestById[request.Id] = request
		petIds = append(petIds, request.PetId)
		userIds = append(userIds, request.OwnerId)
		if request.AssignedVetId != nil {
			userIds = append(userIds, *request.AssignedVetId)
		}
	}

	pets := map[uuid.UUID]*entity.Pet{}
	petRows, err := uow.PetRepository().FindAll(ctx, specification.ByIDs{IDs: petIds})
	if err != nil {
		return nil, err
	}
	for _, pet := range petRows {
		pets[pet.Id] = pet
	}

	users := map[uuid.UUID]*entity.User{}
	userRows, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIds})
	if err != nil {
		return nil, err
	}
	for _, user := range userRows {
		users[user.Id] = user
	}

	summaries := make([]*dto.PostAppointmentSummary, 0, len(histories))
	for _, history := range histories {
		request, ok := requestById[history.AppointmentRequestId]
		if !ok {
			continue
		}
		summary := &dto.PostAppointmentSummary{
			Id:               request.Id,
			AppointmentDate:  request.AppointmentDate,
			AppointmentType:  request.AppointmentType,
			DateAccomplished: history.DateAccomplished,
			HistoryId:        history.Id,
		}
		if owner, ok := users[request.OwnerId]; ok {
			summary.Owner = userSummary(owner)
		}
		if pet, ok := pets[request.PetId]; ok {
			summary.Pet = &dto.PetResponse{
				Id:     pet.Id,
				Name:   pet.Name,
				Type:   pet.Type,
				Breed:  pet.Breed,
				Age:    pet.Age,
				Weight: pet.Weight,
			}
		}
		if request.AssignedVetId != nil {
			if vet, ok := users[*request.AssignedVetId]; ok {
				summary.AssignedVet = userSummary(vet)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *historyService) GetPostAppointmentById(ctx context.Context, historyId uuid.UUID) (*dto.HistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	history, err := s.findHistory(ctx, uow, historyId)
	if err != nil {
		return nil, err
	}
	return historyResponse(history), nil
}

func (s *historyService) EditClinical(ctx context.Context, request *dto.EditHistoryRequest) (*dto.HistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	history, err := s.findHistory(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}

	history.ProceduresPerformed = request.ProceduresPerformed
	history.PetConditionAfter = request.PetConditionAfter
	history.RecommendationsForOwner = request.RecommendationsForOwner
	history.VeterinariansNotes = request.VeterinariansNotes
	if err := uow.HistoryRepository().Update(ctx, history); err != nil {
		return nil, err
	}
	return historyResponse(history), nil
}

func (s *historyService) DeleteHistory(ctx context.Context, historyId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	history, err := s.findHistory(ctx, uow, historyId)
	if err != nil {
		return err
	}
	return uow.HistoryRepository().Delete(ctx, history.Id)
}

func (s *historyService) GetPaymentHistory(ctx context.Context) ([]*dto.PaymentHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	histories, err := uow.HistoryRepository().FindAll(ctx,
		specification.OrderBy{Field: "payment_date", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if len(histories) == 0 {
		return []*dto.PaymentHistoryItem{}, nil
	}

	requestIds := make([]uuid.UUID, 0, len(histories))
	for _, history := range histories {
		requestIds = append(requestIds, history.AppointmentRequestId)
	}
	requests, err := uow.AppointmentRequestRepository().FindAll(ctx, specification.ByIDs{IDs: requestIds})
	if err != nil {
		return nil, err
	}
	vetIds := make([]uuid.UUID, 0, len(requests))
	vetByRequest := map[uuid.UUID]uuid.UUID{}
	for _, request := range requests {
		if request.AssignedVetId != nil {
			vetByRequest[request.Id] = *request.AssignedVetId
			vetIds = append(vetIds, *request.AssignedVetId)
		}
	}
	vets := map[uuid.UUID]*entity.User{}
	if len(vetIds) > 0 {
		vetRows, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: vetIds})
		if err != nil {
			return nil, err
		}
		for _, vet := range vetRows {
			vets[vet.Id] = vet
		}
	}

	items := make([]*dto.PaymentHistoryItem, 0, len(histories))
	for _, history := range histories {
		item := &dto.PaymentHistoryItem{
			Id:            history.Id,
			PaymentDate:   history.PaymentDate,
			OwnerId:       history.OwnerId,
			PaymentMethod: history.PaymentMethod,
			Amount:        history.Amount,
		}
		if vetId, ok := vetByRequest[history.AppointmentRequestId]; ok {
			if vet, ok := vets[vetId]; ok {
				item.AssignedVet = userSummary(vet)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *historyService) GetPaymentHistoryById(ctx context.Context, historyId uuid.UUID) (*dto.PaymentHistoryDetail, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	history, err := s.findHistory(ctx, uow, historyId)
	if err != nil {
		return nil, err
	}

	detail := &dto.PaymentHistoryDetail{
		Id:            history.Id,
		PaymentDate:   history.PaymentDate,
		PaymentMethod: history.PaymentMethod,
		Amount:        history.Amount,
	}
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: history.OwnerId})
	if err != nil {
		return nil, err
	}
	if owner != nil {
		detail.Owner = userSummary(owner)
	}
	return detail, nil
}

func (s *historyService) EditPayment(ctx context.Context, request *dto.EditPaymentHistoryRequest) (*dto.HistoryResponse, error) {
	paymentDate, err := parseTimestamp("payment_date", request.PaymentDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	history, err := s.findHistory(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}

	history.PaymentDate = paymentDate
	history.PaymentMethod = request.PaymentMethod
	history.Amount = request.Amount
	if err := uow.HistoryRepository().Update(ctx, history); err != nil {
		return nil, err
	}
	return historyResponse(history), nil
}

// GetStaffRemarks is the client-facing view of a finalized appointment,
// looked up by the request rather than the history row.
func (s *historyService) GetStaffRemarks(ctx context.Context, requestId uuid.UUID) (*dto.StaffRemarksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := uow.HistoryRepository().FindOne(ctx, specification.ByAppointmentRequestID{AppointmentRequestID: requestId})
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, apperror.NewNotFound("no remarks recorded for appointment request %s", requestId)
	}

	response := &dto.StaffRemarksResponse{
		DateAccomplished:        history.DateAccomplished,
		ProceduresPerformed:     history.ProceduresPerformed,
		PetConditionAfter:       history.PetConditionAfter,
		RecommendationsForOwner: history.RecommendationsForOwner,
		VeterinariansNotes:      history.VeterinariansNotes,
	}

	request, err := uow.AppointmentRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request != nil && request.AssignedVetId != nil {
		vet, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *request.AssignedVetId})
		if err != nil {
			return nil, err
		}
		if vet != nil {
			response.AssignedVet = vet.FullName()
		}
	}
	return response, nil
}

func (s *historyService) findHistory(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.History, error) {
	history, err := uow.HistoryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, apperror.NewNotFound("history %s not found", id)
	}
	return history, nil
}

func historyResponse(history *entity.History) *dto.HistoryResponse {
	return &dto.HistoryResponse{
		Id:                      history.Id,
		AppointmentRequestId:    history.AppointmentRequestId,
		DateAccomplished:        history.DateAccomplished,
		ProceduresPerformed:     history.ProceduresPerformed,
		PetConditionAfter:       history.PetConditionAfter,
		RecommendationsForOwner: history.RecommendationsForOwner,
		VeterinariansNotes:      history.VeterinariansNotes,
		PaymentDate:             history.PaymentDate,
		PaymentMethod:           history.PaymentMethod,
		Amount:                  history.Amount,
		UpdatedAt:               history.UpdatedAt,
	}
}
