package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/repository/specification"
	"vetcare-be/internal/repository/unitofwork"
	"vetcare-be/pkg/events"

	"github.com/google/uuid"
)

// Caller identifies the authenticated user driving an operation. Controllers
// build it from the gateway identity and pass it down explicitly; services
// never read transport state.
type Caller struct {
	Id   uuid.UUID
	Role entity.UserRole
	Name string
}

func (c Caller) IsAdmin() bool { return c.Role == entity.UserRoleAdmin }

type IAppointmentService interface {
	Submit(ctx context.Context, caller Caller, request *dto.SubmitRequestRequest) (*dto.RequestResponse, error)
	ListPending(ctx context.Context, caller Caller) ([]*dto.RequestResponse, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*dto.RequestResponse, error)
	Accept(ctx context.Context, caller Caller, request *dto.AcceptRequestRequest) (*dto.RequestResponse, error)
	Decline(ctx context.Context, caller Caller, request *dto.DeclineRequestRequest) (*dto.RequestResponse, error)
	Edit(ctx context.Context, caller Caller, request *dto.EditRequestRequest) (*dto.RequestResponse, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) ([]*dto.RequestResponse, error)
	Reschedule(ctx context.Context, caller Caller, request *dto.RescheduleRequestRequest) (*dto.RequestResponse, error)
}

type appointmentService struct {
	uowFactory   unitofwork.RepositoryFactory
	notification INotificationService
	availability IAvailabilityService
	logger       logger.ILogger
}

func NewAppointmentService(
	uowFactory unitofwork.RepositoryFactory,
	notification INotificationService,
	availability IAvailabilityService,
	log logger.ILogger,
) IAppointmentService {
	return &appointmentService{
		uowFactory:   uowFactory,
		notification: notification,
		availability: availability,
		logger:       log,
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(field, value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.NewValidation("%s is not a valid timestamp: %q", field, value)
}

func parsePetNumbers(age, weight string) (int, float64, error) {
	ageValue, err := strconv.Atoi(age)
	if err != nil || ageValue < 0 {
		return 0, 0, apperror.NewValidation("pet age must be a non-negative whole number")
	}
	weightValue, err := strconv.ParseFloat(weight, 64)
	if err != nil || weightValue < 0 {
		return 0, 0, apperror.NewValidation("pet weight must be a non-negative number")
	}
	return ageValue, weightValue, nil
}

func notificationDate(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}

// Submit registers the pet and the request in one transaction, then tells
// every admin a new request is waiting.
func (s *appointmentService) Submit(ctx context.Context, caller Caller, request *dto.SubmitRequestRequest) (*dto.RequestResponse, error) {
	if caller.Id == uuid.Nil {
		return nil, apperror.NewAuthorization("submitting an appointment request requires an authenticated client")
	}

	appointmentDate, err := parseTimestamp("appointment_date", request.AppointmentDate)
	if err != nil {
		return nil, err
	}
	age, weight, err := parsePetNumbers(request.PetDetails.Age, request.PetDetails.Weight)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	pet := entity.Pet{
		Id:      uuid.New(),
		Name:    request.PetDetails.Name,
		Type:    request.PetDetails.Type,
		Breed:   request.PetDetails.Breed,
		Age:     age,
		Weight:  weight,
		OwnerId: caller.Id,
	}
	if err := uow.PetRepository().Create(ctx, &pet); err != nil {
		uow.Rollback()
		return nil, err
	}

	appointment := entity.AppointmentRequest{
		Id:                 uuid.New(),
		AppointmentDate:    appointmentDate,
		AppointmentType:    request.AppointmentType,
		Status:             entity.RequestStatusPending,
		Reason:             request.Reason,
		AdditionalComments: request.AdditionalComments,
		PetId:              pet.Id,
		OwnerId:            caller.Id,
		PreferredVetId:     request.PreferredVetId,
	}
	if err := uow.AppointmentRequestRepository().Create(ctx, &appointment); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, uow, fmt.Sprintf(
		"New appointment request from %s for %s on %s.",
		caller.Name, pet.Name, notificationDate(appointmentDate),
	), appointment.Id)

	return s.buildResponse(ctx, uow, &appointment)
}

func (s *appointmentService) notifyAdmins(ctx context.Context, uow unitofwork.UnitOfWork, message string, requestId uuid.UUID) {
	admins, err := uow.UserRepository().FindAll(ctx, specification.ByRole{Role: entity.UserRoleAdmin})
	if err != nil {
		s.logger.Error("AppointmentService", "Failed to load admins for notification", map[string]interface{}{"error": err.Error()})
		return
	}
	queued := make([]events.NotificationQueued, 0, len(admins))
	for _, admin := range admins {
		queued = append(queued, events.NotificationQueued{
			UserId:   admin.Id,
			Message:  message,
			Metadata: map[string]interface{}{"appointment_request_id": requestId.String()},
		})
	}
	s.notification.DispatchAll(ctx, queued)
}

// ListPending returns every request still awaiting action, oldest first.
// Admins and staff see the whole queue; clients see only their own.
func (s *appointmentService) ListPending(ctx context.Context, caller Caller) ([]*dto.RequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.StatusNotIn{Statuses: []entity.RequestStatus{
			entity.RequestStatusApproved,
			entity.RequestStatusSuccessful,
		}},
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if caller.Role == entity.UserRoleClient {
		specs = append(specs, specification.OwnedBy{OwnerID: caller.Id})
	}

	requests, err := uow.AppointmentRequestRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, uow, requests)
}

func (s *appointmentService) GetDetails(ctx context.Context, id uuid.UUID) (*dto.RequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	request, err := s.findRequest(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, uow, request)
}

// Accept moves a Pending request to Approved. The write is guarded on the
// stored status so that of two concurrent accepts exactly one wins; the
// loser gets an invalid-state error just as if it had arrived late.
func (s *appointmentService) Accept(ctx context.Context, caller Caller, request *dto.AcceptRequestRequest) (*dto.RequestResponse, error) {
	if caller.Id == uuid.Nil {
		return nil, apperror.NewAuthorization("accepting a request requires an authenticated admin")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := s.findRequest(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != entity.RequestStatusPending {
		return nil, apperror.NewInvalidState("request %s is %s and can no longer be accepted", appointment.Id, appointment.Status)
	}

	now := time.Now()
	appointment.Status = entity.RequestStatusApproved
	appointment.ApprovedAt = &now
	appointment.ApprovedBy = &caller.Id
	appointment.AdminId = &caller.Id
	if request.Remark != "" {
		appointment.Remark = request.Remark
	}
	if request.AssignedVetId != nil {
		appointment.AssignedVetId = request.AssignedVetId
	} else if appointment.PreferredVetId != nil {
		appointment.AssignedVetId = appointment.PreferredVetId
	}

	won, err := uow.AppointmentRequestRepository().UpdateGuarded(ctx, appointment, entity.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.NewInvalidState("request %s was already handled", appointment.Id)
	}

	if appointment.AssignedVetId != nil {
		s.availability.InvalidateVet(*appointment.AssignedVetId)
	}

	queued := []events.NotificationQueued{{
		UserId: appointment.OwnerId,
		Message: fmt.Sprintf("Your appointment on %s has been approved by %s.",
			notificationDate(appointment.AppointmentDate), caller.Name),
		Metadata: map[string]interface{}{"appointment_request_id": appointment.Id.String()},
	}}
	if appointment.AssignedVetId != nil {
		queued = append(queued, events.NotificationQueued{
			UserId: *appointment.AssignedVetId,
			Message: fmt.Sprintf("You have been assigned an appointment on %s.",
				notificationDate(appointment.AppointmentDate)),
			Metadata: map[string]interface{}{"appointment_request_id": appointment.Id.String()},
		})
	}
	s.notification.DispatchAll(ctx, queued)

	return s.buildResponse(ctx, uow, appointment)
}

// Decline is valid from Pending and from Approved (a cancellation after the
// fact). It may carry a proposed reschedule date for the client to act on.
func (s *appointmentService) Decline(ctx context.Context, caller Caller, request *dto.DeclineRequestRequest) (*dto.RequestResponse, error) {
	if caller.Id == uuid.Nil {
		return nil, apperror.NewAuthorization("declining a request requires an authenticated admin")
	}

	var rescheduleDate *time.Time
	if request.RescheduleDate != nil && *request.RescheduleDate != "" {
		parsed, err := parseTimestamp("reschedule_date", *request.RescheduleDate)
		if err != nil {
			return nil, err
		}
		rescheduleDate = &parsed
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := s.findRequest(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.Declinable() {
		return nil, apperror.NewInvalidState("request %s is %s and cannot be declined", appointment.Id, appointment.Status)
	}

	previous := appointment.Status
	now := time.Now()
	appointment.Status = entity.RequestStatusDeclined
	appointment.DeclinedAt = &now
	appointment.DeclinedBy = &caller.Id
	appointment.AdminId = &caller.Id
	appointment.Remark = request.Remark
	appointment.RescheduleDate = rescheduleDate
	if request.AssignedVetId != nil {
		appointment.AssignedVetId = request.AssignedVetId
	}

	won, err := uow.AppointmentRequestRepository().UpdateGuarded(ctx, appointment, previous)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.NewInvalidState("request %s was already handled", appointment.Id)
	}

	if previous == entity.RequestStatusApproved && appointment.AssignedVetId != nil {
		s.availability.InvalidateVet(*appointment.AssignedVetId)
	}

	message := "Your appointment request has been declined."
	if request.Remark != "" {
		message = fmt.Sprintf("Your appointment request has been declined. Reason: %s", request.Remark)
	}
	if rescheduleDate != nil {
		message += fmt.Sprintf(" A new date of %s has been proposed.", notificationDate(*rescheduleDate))
	}
	s.notification.DispatchAll(ctx, []events.NotificationQueued{{
		UserId:   appointment.OwnerId,
		Message:  message,
		Metadata: map[string]interface{}{"appointment_request_id": appointment.Id.String()},
	}})

	return s.buildResponse(ctx, uow, appointment)
}

// Edit rewrites the request's descriptive fields, and optionally the pet's,
// in one transaction. The workflow status is never touched here; only the
// transition handlers move it.
func (s *appointmentService) Edit(ctx context.Context, caller Caller, request *dto.EditRequestRequest) (*dto.RequestResponse, error) {
	appointmentDate, err := parseTimestamp("appointment_date", request.AppointmentDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := s.findRequest(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && caller.Id != appointment.OwnerId {
		return nil, apperror.NewAuthorization("only the owner or an admin may edit this request")
	}
	if !appointment.Status.Editable() {
		return nil, apperror.NewInvalidState("request %s is %s and can no longer be edited", appointment.Id, appointment.Status)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	appointment.AppointmentDate = appointmentDate
	appointment.AppointmentType = request.AppointmentType
	appointment.Reason = request.Reason
	appointment.AdditionalComments = request.AdditionalComments
	appointment.PreferredVetId = request.PreferredVetId
	if err := uow.AppointmentRequestRepository().Update(ctx, appointment); err != nil {
		uow.Rollback()
		return nil, err
	}

	if request.Pet != nil {
		age, weight, err := parsePetNumbers(request.Pet.Age, request.Pet.Weight)
		if err != nil {
			uow.Rollback()
			return nil, err
		}
		pet, err := uow.PetRepository().FindOne(ctx, specification.ByID{ID: appointment.PetId})
		if err != nil {
			uow.Rollback()
			return nil, err
		}
		if pet == nil {
			uow.Rollback()
			return nil, apperror.NewNotFound("pet %s not found", appointment.PetId)
		}
		pet.Name = request.Pet.Name
		pet.Type = request.Pet.Type
		pet.Breed = request.Pet.Breed
		pet.Age = age
		pet.Weight = weight
		if err := uow.PetRepository().Update(ctx, pet); err != nil {
			uow.Rollback()
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, uow, appointment)
}

// Delete removes the request outright and hands back the refreshed queue.
// The pet record stays; histories reference it through the owner.
func (s *appointmentService) Delete(ctx context.Context, caller Caller, id uuid.UUID) ([]*dto.RequestResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.NewAuthorization("only an admin may delete an appointment request")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := s.findRequest(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err := uow.AppointmentRequestRepository().Delete(ctx, appointment.Id); err != nil {
		return nil, err
	}
	if appointment.AssignedVetId != nil {
		s.availability.InvalidateVet(*appointment.AssignedVetId)
	}

	return s.ListPending(ctx, caller)
}

// Reschedule records the client's answer to a proposed new date. With
// approve the request jumps straight to Approved and the proposal is
// cleared; without it only the date and remark change.
func (s *appointmentService) Reschedule(ctx context.Context, caller Caller, request *dto.RescheduleRequestRequest) (*dto.RequestResponse, error) {
	newDate, err := parseTimestamp("new_appointment_date", request.NewAppointmentDate)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := s.findRequest(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && caller.Id != appointment.OwnerId {
		return nil, apperror.NewAuthorization("only the owner or an admin may reschedule this request")
	}

	previous := appointment.Status
	appointment.AppointmentDate = newDate
	if request.Remark != "" {
		appointment.Remark = request.Remark
	}
	if request.Approve {
		now := time.Now()
		appointment.Status = entity.RequestStatusApproved
		appointment.ApprovedAt = &now
		appointment.RescheduleDate = nil
	}

	won, err := uow.AppointmentRequestRepository().UpdateGuarded(ctx, appointment, previous)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.NewInvalidState("request %s was already handled", appointment.Id)
	}

	if request.Approve {
		if appointment.AssignedVetId != nil {
			s.availability.InvalidateVet(*appointment.AssignedVetId)
		}

		queued := make([]events.NotificationQueued, 0, 2)
		if appointment.PreferredVetId != nil {
			queued = append(queued, events.NotificationQueued{
				UserId: *appointment.PreferredVetId,
				Message: fmt.Sprintf("The appointment on %s has been approved.",
					notificationDate(newDate)),
				Metadata: map[string]interface{}{"appointment_request_id": appointment.Id.String()},
			})
		}
		// A request declined before any admin touched it has no admin to tell.
		if appointment.AdminId != nil {
			queued = append(queued, events.NotificationQueued{
				UserId: *appointment.AdminId,
				Message: fmt.Sprintf("%s accepted the rescheduled date %s for their appointment.",
					caller.Name, notificationDate(newDate)),
				Metadata: map[string]interface{}{"appointment_request_id": appointment.Id.String()},
			})
		}
		s.notification.DispatchAll(ctx, queued)
	}

	return s.buildResponse(ctx, uow, appointment)
}

func (s *appointmentService) findRequest(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.AppointmentRequest, error) {
	request, err := uow.AppointmentRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFound("appointment request %s not found", id)
	}
	return request, nil
}

func (s *appointmentService) buildResponse(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.AppointmentRequest) (*dto.RequestResponse, error) {
	responses, err := s.assemble(ctx, uow, []*entity.AppointmentRequest{request})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// assemble joins requests with their pets, owners and preferred vets using
// two batched lookups instead of one query per row.
func (s *appointmentService) assemble(ctx context.Context, uow unitofwork.UnitOfWork, requests []*entity.AppointmentRequest) ([]*dto.RequestResponse, error) {
	petIds := make([]uuid.UUID, 0, len(requests))
	userIds := make([]uuid.UUID, 0, len(requests)*2)
	for _, request := range requests {
		petIds = append(petIds, request.PetId)
		userIds = append(userIds, request.OwnerId)
		if request.PreferredVetId != nil {
			userIds = append(userIds, *request.PreferredVetId)
		}
	}

	pets := map[uuid.UUID]*entity.Pet{}
	users := map[uuid.UUID]*entity.User{}
	if len(requests) > 0 {
		petRows, err := uow.PetRepository().FindAll(ctx, specification.ByIDs{IDs: petIds})
		if err != nil {
			return nil, err
		}
		for _, pet := range petRows {
			pets[pet.Id] = pet
		}

		userRows, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIds})
		if err != nil {
			return nil, err
		}
		for _, user := range userRows {
			users[user.Id] = user
		}
	}

	responses := make([]*dto.RequestResponse, 0, len(requests))
	for _, request := range requests {
		response := &dto.RequestResponse{
			Id:                 request.Id,
			AppointmentDate:    request.AppointmentDate,
			AppointmentType:    request.AppointmentType,
			Status:             string(request.Status),
			Reason:             request.Reason,
			AdditionalComments: request.AdditionalComments,
			Remark:             request.Remark,
			RescheduleDate:     request.RescheduleDate,
			ApprovedAt:         request.ApprovedAt,
			DeclinedAt:         request.DeclinedAt,
			AssignedVetId:      request.AssignedVetId,
			CreatedAt:          request.CreatedAt,
		}
		if pet, ok := pets[request.PetId]; ok {
			response.Pet = &dto.PetResponse{
				Id:     pet.Id,
				Name:   pet.Name,
				Type:   pet.Type,
				Breed:  pet.Breed,
				Age:    pet.Age,
				Weight: pet.Weight,
			}
		}
		if owner, ok := users[request.OwnerId]; ok {
			response.Owner = userSummary(owner)
		}
		if request.PreferredVetId != nil {
			if vet, ok := users[*request.PreferredVetId]; ok {
				response.PreferredVet = userSummary(vet)
			}
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func userSummary(user *entity.User) *dto.UserSummary {
	return &dto.UserSummary{
		Id:        user.Id,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		ContactNo: user.ContactNo,
	}
}
