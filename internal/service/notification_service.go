package service

import (
	"context"
	"encoding/json"
	"time"

	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/repository/specification"
	"vetcare-be/internal/repository/unitofwork"
	"vetcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type INotificationService interface {
	Notify(ctx context.Context, userId uuid.UUID, message string, metadata map[string]interface{}) (*entity.Notification, error)
	DispatchAll(ctx context.Context, queued []events.NotificationQueued)
	GetNotifications(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.NotificationResponse, int64, error)
	GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userId, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  message.Publisher
	topicName  string
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	publisher message.Publisher,
	topicName string,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		publisher:  publisher,
		topicName:  topicName,
		logger:     log,
	}
}

// Notify persists the notification and queues delivery on the bus.
// Delivery is fire-and-forget: a publish failure is logged, never returned.
func (s *notificationService) Notify(ctx context.Context, userId uuid.UUID, msg string, metadata map[string]interface{}) (*entity.Notification, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recipient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apperror.NewNotFound("notification recipient %s not found", userId)
	}

	notification := entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Message:   msg,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	if err := uow.NotificationRepository().Create(ctx, &notification); err != nil {
		return nil, err
	}

	s.publishDelivery(&notification)

	return &notification, nil
}

// DispatchAll drains a transition's side-effect list. Failures are logged
// and skipped; the committed transition is never rolled back for them.
func (s *notificationService) DispatchAll(ctx context.Context, queued []events.NotificationQueued) {
	for _, q := range queued {
		if _, err := s.Notify(ctx, q.UserId, q.Message, q.Metadata); err != nil {
			s.logger.Error("NotificationService", "Failed to dispatch notification", map[string]interface{}{
				"user_id": q.UserId,
				"event":   q.EventType(),
				"error":   err.Error(),
			})
		}
	}
}

func (s *notificationService) publishDelivery(notification *entity.Notification) {
	s.publish(events.NotificationDelivery{
		NotificationId: notification.Id,
		UserId:         notification.UserId,
		Message:        notification.Message,
	})
}

func (s *notificationService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to marshal event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(s.topicName, msg); err != nil {
		s.logger.Error("NotificationService", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.NotificationResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	total, err := repo.Count(ctx, specification.ForUser{UserID: userId})
	if err != nil {
		return nil, 0, err
	}

	notifications, err := repo.FindAll(ctx,
		specification.ForUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &dto.NotificationResponse{
			Id:        n.Id,
			Message:   n.Message,
			Metadata:  n.Metadata,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return result, total, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().Count(ctx,
		specification.ForUser{UserID: userId},
		specification.UnreadOnly{},
	)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, userId, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, userId)
}
