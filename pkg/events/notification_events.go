package events

import "github.com/google/uuid"

// DeliveryTopic carries committed notifications to out-of-band delivery
// channels.
const DeliveryTopic = "notification.delivery"

// NotificationQueued is one pending side effect of a workflow transition.
// Transitions collect these and the engine dispatches them only after the
// primary write has committed.
type NotificationQueued struct {
	UserId   uuid.UUID
	Message  string
	Metadata map[string]interface{}
}

func (NotificationQueued) EventType() string { return "notification.queued" }

// NotificationDelivery is published on the delivery bus once the
// notification row exists.
type NotificationDelivery struct {
	NotificationId uuid.UUID `json:"notification_id"`
	UserId         uuid.UUID `json:"user_id"`
	Message        string    `json:"message"`
}

func (NotificationDelivery) EventType() string { return DeliveryTopic }
