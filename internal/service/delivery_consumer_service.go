package service

import (
	"context"
	"encoding/json"

	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/pkg/mailer"
	"vetcare-be/internal/repository/specification"
	"vetcare-be/internal/repository/unitofwork"
	"vetcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IDeliveryConsumerService interface {
	// Start subscribes to the delivery topic and consumes it until the
	// context is cancelled.
	Start(ctx context.Context) error
}

type deliveryConsumerService struct {
	subscriber message.Subscriber
	uowFactory unitofwork.RepositoryFactory
	email      mailer.IEmailService
	logger     logger.ILogger
}

func NewDeliveryConsumerService(
	subscriber message.Subscriber,
	uowFactory unitofwork.RepositoryFactory,
	email mailer.IEmailService,
	log logger.ILogger,
) IDeliveryConsumerService {
	return &deliveryConsumerService{
		subscriber: subscriber,
		uowFactory: uowFactory,
		email:      email,
		logger:     log,
	}
}

func (s *deliveryConsumerService) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, events.DeliveryTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.handle(ctx, msg)
			// Delivery is best effort; a failed channel is logged,
			// never redelivered.
			msg.Ack()
		}
	}()
	return nil
}

func (s *deliveryConsumerService) handle(ctx context.Context, msg *message.Message) {
	var delivery events.NotificationDelivery
	if err := json.Unmarshal(msg.Payload, &delivery); err != nil {
		s.logger.Error("DeliveryConsumer", "Malformed delivery message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	s.logger.Info("DeliveryConsumer", "Notification delivered", map[string]interface{}{
		"notification_id": delivery.NotificationId,
		"user_id":         delivery.UserId,
	})

	if s.email == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	recipient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: delivery.UserId})
	if err != nil || recipient == nil {
		s.logger.Warn("DeliveryConsumer", "Recipient lookup failed, skipping email", map[string]interface{}{
			"user_id": delivery.UserId,
		})
		return
	}

	if err := s.email.SendNotification(recipient.Email, delivery.Message); err != nil {
		s.logger.Error("DeliveryConsumer", "Email delivery failed", map[string]interface{}{
			"user_id": delivery.UserId,
			"error":   err.Error(),
		})
	}
}
